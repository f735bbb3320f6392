package levelpkg_test

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/polycover/internal/levelpkg"
	"github.com/katalvlaran/polycover/internal/shape"
)

func dotShape(t *testing.T) *shape.Shape {
	t.Helper()
	s, err := shape.New([][]bool{{true}})
	require.NoError(t, err)
	return s
}

func barShape(t *testing.T) *shape.Shape {
	t.Helper()
	s, err := shape.New([][]bool{{true, true}})
	require.NoError(t, err)
	return s
}

func sampleLevel(t *testing.T) (*levelpkg.Level, map[string]levelpkg.ShapeFile) {
	t.Helper()
	lvl := &levelpkg.Level{
		Metadata: levelpkg.Metadata{
			Version:    1,
			ShapeIndex: map[string]string{"dot": "builtin:dot", "bar": "custom:bar.shape.json"},
			ColorIndex: map[string]string{"dot": "#FF0000", "bar": "#00FF00"},
			Author:     "test-author",
		},
		Data: levelpkg.LevelData{
			ID:         "level-1",
			Name:       "Sample",
			Difficulty: 2,
			Rows:       1,
			Cols:       2,
			Target:     []string{"##"},
			ShapeIDs:   []string{"dot", "bar"},
		},
	}
	custom := map[string]levelpkg.ShapeFile{
		"bar.shape.json": levelpkg.NewCustomShapeFile("bar", "Bar", barShape(t)),
	}
	return lvl, custom
}

func builtinResolver(t *testing.T) levelpkg.BuiltinResolver {
	t.Helper()
	return func(name string) (*shape.Shape, error) {
		if name == "dot" {
			return dotShape(t), nil
		}
		return nil, shape.ErrZeroDimension
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	lvl, custom := sampleLevel(t)

	data, err := levelpkg.Encode(lvl, custom)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	decoded, err := levelpkg.Decode(data, builtinResolver(t))
	require.NoError(t, err)

	require.Equal(t, lvl.Metadata.Version, decoded.Metadata.Version)
	require.Equal(t, lvl.Data.ID, decoded.Data.ID)
	require.Equal(t, lvl.Data.Target, decoded.Data.Target)
	require.Len(t, decoded.Shapes, 2)
	require.Equal(t, 1, decoded.Shapes["dot"].CellCount())
	require.Equal(t, 2, decoded.Shapes["bar"].CellCount())
}

func TestEncodeIsDeterministic(t *testing.T) {
	lvl, custom := sampleLevel(t)

	first, err := levelpkg.Encode(lvl, custom)
	require.NoError(t, err)
	second, err := levelpkg.Encode(lvl, custom)
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestDecodeMissingMetadataMember(t *testing.T) {
	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)
	w, err := zw.Create("level.json")
	require.NoError(t, err)
	_, err = w.Write([]byte(`{"id":"x","difficulty":1,"rows":1,"cols":1,"shapeIds":[]}`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = levelpkg.Decode(buf.Bytes(), nil)
	require.ErrorIs(t, err, levelpkg.ErrMissingMember)
}

func TestDecodeRejectsInvalidVersion(t *testing.T) {
	lvl, custom := sampleLevel(t)
	lvl.Metadata.Version = 0
	data, err := levelpkg.Encode(lvl, custom)
	require.NoError(t, err)

	_, err = levelpkg.Decode(data, builtinResolver(t))
	require.ErrorIs(t, err, levelpkg.ErrInvalidVersion)
}

func TestDecodeRejectsInvalidDifficulty(t *testing.T) {
	lvl, custom := sampleLevel(t)
	lvl.Data.Difficulty = 0
	data, err := levelpkg.Encode(lvl, custom)
	require.NoError(t, err)

	_, err = levelpkg.Decode(data, builtinResolver(t))
	require.ErrorIs(t, err, levelpkg.ErrInvalidDifficulty)
}

func TestDecodeRejectsTargetDimensionMismatch(t *testing.T) {
	lvl, custom := sampleLevel(t)
	lvl.Data.Target = []string{"###"} // 3 chars, Cols == 2
	data, err := levelpkg.Encode(lvl, custom)
	require.NoError(t, err)

	_, err = levelpkg.Decode(data, builtinResolver(t))
	require.ErrorIs(t, err, levelpkg.ErrTargetMismatch)
}

func TestDecodeRejectsUnresolvedBuiltin(t *testing.T) {
	lvl, custom := sampleLevel(t)
	data, err := levelpkg.Encode(lvl, custom)
	require.NoError(t, err)

	_, err = levelpkg.Decode(data, nil)
	require.ErrorIs(t, err, levelpkg.ErrUnresolvedShape)
}

func TestDecodeRejectsMissingCustomFile(t *testing.T) {
	lvl, _ := sampleLevel(t)
	data, err := levelpkg.Encode(lvl, nil) // omit bar.shape.json
	require.NoError(t, err)

	_, err = levelpkg.Decode(data, builtinResolver(t))
	require.ErrorIs(t, err, levelpkg.ErrUnresolvedShape)
}

func TestNewLevelIDIsUniqueAndNonEmpty(t *testing.T) {
	a := levelpkg.NewLevelID()
	b := levelpkg.NewLevelID()
	require.NotEmpty(t, a)
	require.NotEqual(t, a, b)
}

func TestDecodeRejectsUnknownSourcePrefix(t *testing.T) {
	lvl, custom := sampleLevel(t)
	lvl.Metadata.ShapeIndex["dot"] = "mystery:dot"
	data, err := levelpkg.Encode(lvl, custom)
	require.NoError(t, err)

	_, err = levelpkg.Decode(data, builtinResolver(t))
	require.ErrorIs(t, err, levelpkg.ErrUnresolvedShape)
}
