// Package catalog resolves "builtin:<name>" shape sources for the level
// codec and loads custom shape catalogs from YAML manifests. It is the only
// other component besides internal/levelpkg allowed to touch I/O (the YAML
// manifest is read by the caller and handed in as bytes; catalog itself
// never opens a file), mirroring itohio-EasyRobot's x/marshaller/yaml
// convention of a thin gopkg.in/yaml.v3 wrapper around a plain Go struct.
package catalog

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/polycover/internal/shape"
)

// ErrUnknownShape indicates a requested name has no entry in the catalog.
var ErrUnknownShape = errors.New("catalog: unknown shape name")

// Entry is one shape manifest record, shared between the embedded builtin
// table and user-supplied YAML manifests.
type Entry struct {
	Name      string   `yaml:"name" json:"name"`
	Matrix    []string `yaml:"matrix" json:"matrix"`
	AnchorRow int      `yaml:"anchorRow" json:"anchorRow"`
	AnchorCol int      `yaml:"anchorCol" json:"anchorCol"`
}

// manifest is the top-level YAML document shape: a list of entries under a
// "shapes" key.
type manifest struct {
	Shapes []Entry `yaml:"shapes"`
}

// Catalog is a resolved, ready-to-query name -> Shape table.
type Catalog struct {
	shapes map[string]*shape.Shape
	names  []string // insertion order, for deterministic listing
}

// Builtin returns the catalog built from the embedded builtin manifest. Each
// call returns a fresh Catalog; shapes are immutable so the underlying
// *shape.Shape values may be shared freely.
func Builtin() (*Catalog, error) {
	return fromEntries(builtinManifest)
}

// LoadYAML parses a YAML manifest of the form:
//
//	shapes:
//	  - name: t-tetromino
//	    matrix: ["###", ".#."]
//	    anchorRow: 0
//	    anchorCol: 1
func LoadYAML(data []byte) (*Catalog, error) {
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("catalog: failed to parse manifest: %w", err)
	}
	return fromEntries(m.Shapes)
}

func fromEntries(entries []Entry) (*Catalog, error) {
	c := &Catalog{shapes: make(map[string]*shape.Shape, len(entries)), names: make([]string, 0, len(entries))}
	for _, e := range entries {
		sh, err := shape.FromEncoded(e.Matrix, e.AnchorRow, e.AnchorCol)
		if err != nil {
			return nil, fmt.Errorf("catalog: entry %q: %w", e.Name, err)
		}
		if _, dup := c.shapes[e.Name]; dup {
			return nil, fmt.Errorf("catalog: duplicate shape name %q", e.Name)
		}
		c.shapes[e.Name] = sh
		c.names = append(c.names, e.Name)
	}
	return c, nil
}

// Resolve looks up name, matching levelpkg.BuiltinResolver's signature so a
// Catalog can be passed directly as one.
func (c *Catalog) Resolve(name string) (*shape.Shape, error) {
	sh, ok := c.shapes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownShape, name)
	}
	return sh, nil
}

// Names returns every shape name in the catalog, in manifest order.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.names...)
}

// Shapes returns every shape in the catalog, in manifest order (the same
// order as Names; the names themselves are not included), in the slice form
// the shape selector takes as its catalog.
func (c *Catalog) Shapes() []*shape.Shape {
	result := make([]*shape.Shape, 0, len(c.names))
	for _, name := range c.names {
		result = append(result, c.shapes[name])
	}
	return result
}
