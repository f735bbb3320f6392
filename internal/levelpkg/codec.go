package levelpkg

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/katalvlaran/polycover/internal/shape"
)

const (
	metadataMember = "metadata.json"
	levelMember    = "level.json"

	builtinPrefix = "builtin:"
	customPrefix  = "custom:"
)

// Decode parses a `.level` archive from data. Unknown members are ignored.
// A missing metadata.json or level.json, a malformed JSON member, or a
// shapeIds entry that cannot be resolved (absent builtin, or absent
// custom file) is a fatal error wrapping one of the package's sentinels.
func Decode(data []byte, resolveBuiltin BuiltinResolver) (*Level, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("levelpkg: invalid zip archive: %w", err)
	}

	raw := make(map[string][]byte, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("levelpkg: failed to open member %s: %w", f.Name, err)
		}
		buf := new(bytes.Buffer)
		_, err = buf.ReadFrom(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("levelpkg: failed to read member %s: %w", f.Name, err)
		}
		raw[f.Name] = buf.Bytes()
	}

	metaBytes, ok := raw[metadataMember]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingMember, metadataMember)
	}
	levelBytes, ok := raw[levelMember]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingMember, levelMember)
	}

	var meta Metadata
	if err := json.Unmarshal(metaBytes, &meta); err != nil {
		return nil, fmt.Errorf("%w (%s): %v", ErrMalformedJSON, metadataMember, err)
	}
	if meta.Version < 1 {
		return nil, ErrInvalidVersion
	}

	var lvlData LevelData
	if err := json.Unmarshal(levelBytes, &lvlData); err != nil {
		return nil, fmt.Errorf("%w (%s): %v", ErrMalformedJSON, levelMember, err)
	}
	if lvlData.Difficulty < 1 || lvlData.Difficulty > 5 {
		return nil, ErrInvalidDifficulty
	}
	if lvlData.Target != nil {
		if len(lvlData.Target) != lvlData.Rows {
			return nil, ErrTargetMismatch
		}
		for _, row := range lvlData.Target {
			if len(row) != lvlData.Cols {
				return nil, ErrTargetMismatch
			}
		}
	}

	shapes := make(map[string]*shape.Shape, len(lvlData.ShapeIDs))
	for _, id := range lvlData.ShapeIDs {
		if _, done := shapes[id]; done {
			continue
		}
		source, ok := meta.ShapeIndex[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnresolvedShape, id)
		}
		sh, err := resolveShapeSource(id, source, raw, resolveBuiltin)
		if err != nil {
			return nil, err
		}
		shapes[id] = sh
	}

	return &Level{Metadata: meta, Data: lvlData, Shapes: shapes}, nil
}

func resolveShapeSource(id, source string, raw map[string][]byte, resolveBuiltin BuiltinResolver) (*shape.Shape, error) {
	switch {
	case strings.HasPrefix(source, builtinPrefix):
		name := strings.TrimPrefix(source, builtinPrefix)
		if resolveBuiltin == nil {
			return nil, fmt.Errorf("%w: %s (no builtin resolver configured)", ErrUnresolvedShape, id)
		}
		sh, err := resolveBuiltin(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %s (%v)", ErrUnresolvedShape, id, err)
		}
		return sh, nil
	case strings.HasPrefix(source, customPrefix):
		filename := strings.TrimPrefix(source, customPrefix)
		body, ok := raw[filename]
		if !ok {
			return nil, fmt.Errorf("%w: %s (missing file %s)", ErrUnresolvedShape, id, filename)
		}
		var sf ShapeFile
		if err := json.Unmarshal(body, &sf); err != nil {
			return nil, fmt.Errorf("%w (%s): %v", ErrMalformedJSON, filename, err)
		}
		sh, err := shape.FromEncoded(sf.Matrix, sf.AnchorRow, sf.AnchorCol)
		if err != nil {
			return nil, fmt.Errorf("%w: %s (%v)", ErrUnresolvedShape, id, err)
		}
		return sh, nil
	default:
		return nil, fmt.Errorf("%w: %s (unrecognized source %q)", ErrUnresolvedShape, id, source)
	}
}

// Encode serializes lvl into a `.level` archive. Member order is fixed
// (metadata.json, level.json, then *.shape.json sorted by file name) and every
// zip.FileHeader is left with its zero Modified time, so two Encode calls on
// equal input produce byte-identical output; only the flate compressor's own
// determinism is relied upon beyond that, which is an implementation
// property of compress/flate, not a configurable one.
func Encode(lvl *Level, customShapes map[string]ShapeFile) ([]byte, error) {
	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)

	if err := writeJSONMember(zw, metadataMember, lvl.Metadata); err != nil {
		return nil, err
	}
	if err := writeJSONMember(zw, levelMember, lvl.Data); err != nil {
		return nil, err
	}

	filenames := make([]string, 0, len(customShapes))
	for filename := range customShapes {
		filenames = append(filenames, filename)
	}
	sort.Strings(filenames)
	for _, filename := range filenames {
		if err := writeJSONMember(zw, filename, customShapes[filename]); err != nil {
			return nil, err
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("levelpkg: failed to finalize archive: %w", err)
	}
	return buf.Bytes(), nil
}

func writeJSONMember(zw *zip.Writer, name string, v any) error {
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("levelpkg: failed to create member %s: %w", name, err)
	}
	encoded, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("levelpkg: failed to marshal %s: %w", name, err)
	}
	if _, err := w.Write(encoded); err != nil {
		return fmt.Errorf("levelpkg: failed to write member %s: %w", name, err)
	}
	return nil
}

// NewCustomShapeFile builds the *.shape.json payload for a custom shape
// entry, for callers assembling a Level to pass to Encode.
func NewCustomShapeFile(id, name string, sh *shape.Shape) ShapeFile {
	return ShapeFile{
		ID:        id,
		Name:      name,
		Matrix:    sh.Encode(),
		AnchorRow: sh.AnchorRow(),
		AnchorCol: sh.AnchorCol(),
	}
}

// NewLevelID generates a fresh identifier for a level authored from scratch,
// for editor-style callers that don't yet have one to put in LevelData.ID.
func NewLevelID() string {
	return uuid.NewString()
}
