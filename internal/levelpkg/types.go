// Package levelpkg implements the `.level` ZIP container codec: it reads and
// writes the metadata.json / level.json / *.shape.json member triple into an
// in-memory archive. Together with internal/catalog's YAML loader it is one
// of the two places in this module that deal in bytes instead of typed
// values.
package levelpkg

import "github.com/katalvlaran/polycover/internal/shape"

// Metadata is the decoded form of metadata.json.
type Metadata struct {
	Version     int               `json:"version"`
	ShapeIndex  map[string]string `json:"shapeIndex"`
	ColorIndex  map[string]string `json:"colorIndex"`
	Author      string            `json:"author,omitempty"`
	Description string            `json:"description,omitempty"`
	CreatedAt   string            `json:"createdAt,omitempty"`
}

// LevelData is the decoded form of level.json.
type LevelData struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Difficulty int      `json:"difficulty"`
	Rows       int      `json:"rows"`
	Cols       int      `json:"cols"`
	Target     []string `json:"target,omitempty"`
	ShapeIDs   []string `json:"shapeIds"`
}

// ShapeFile is the decoded form of one *.shape.json member.
type ShapeFile struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Matrix    []string `json:"matrix"`
	AnchorRow int      `json:"anchorRow"`
	AnchorCol int      `json:"anchorCol"`
}

// Level is the fully resolved in-memory form of a decoded `.level` archive:
// metadata and level definition as parsed, plus every shape id resolved to a
// concrete Shape.
type Level struct {
	Metadata Metadata
	Data     LevelData
	Shapes   map[string]*shape.Shape
}

// BuiltinResolver resolves a "builtin:<name>" source to a concrete Shape. The
// catalog package supplies the production implementation; tests may supply a
// stub.
type BuiltinResolver func(name string) (*shape.Shape, error)
