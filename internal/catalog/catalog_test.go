package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/polycover/internal/catalog"
)

func TestBuiltinResolvesKnownShapes(t *testing.T) {
	c, err := catalog.Builtin()
	require.NoError(t, err)

	dot, err := c.Resolve("dot")
	require.NoError(t, err)
	require.Equal(t, 1, dot.CellCount())

	square, err := c.Resolve("square")
	require.NoError(t, err)
	require.Equal(t, 4, square.CellCount())
}

func TestBuiltinRejectsUnknownName(t *testing.T) {
	c, err := catalog.Builtin()
	require.NoError(t, err)

	_, err = c.Resolve("nonexistent")
	require.ErrorIs(t, err, catalog.ErrUnknownShape)
}

func TestLoadYAMLRoundTrip(t *testing.T) {
	data := []byte(`
shapes:
  - name: t-tetromino
    matrix: ["###", ".#."]
    anchorRow: 0
    anchorCol: 1
  - name: line3
    matrix: ["###"]
    anchorRow: -1
    anchorCol: -1
`)
	c, err := catalog.LoadYAML(data)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"t-tetromino", "line3"}, c.Names())

	tShape, err := c.Resolve("t-tetromino")
	require.NoError(t, err)
	require.Equal(t, 4, tShape.CellCount())
	require.Equal(t, 0, tShape.AnchorRow())
	require.Equal(t, 1, tShape.AnchorCol())
}

func TestLoadYAMLRejectsDuplicateNames(t *testing.T) {
	data := []byte(`
shapes:
  - name: dup
    matrix: ["#"]
    anchorRow: -1
    anchorCol: -1
  - name: dup
    matrix: ["##"]
    anchorRow: -1
    anchorCol: -1
`)
	_, err := catalog.LoadYAML(data)
	require.Error(t, err)
}

func TestLoadYAMLRejectsMalformedYAML(t *testing.T) {
	_, err := catalog.LoadYAML([]byte("shapes: [this is not a shape list"))
	require.Error(t, err)
}

func TestCatalogShapesMatchesNamesOrder(t *testing.T) {
	c, err := catalog.Builtin()
	require.NoError(t, err)

	names := c.Names()
	shapes := c.Shapes()
	require.Equal(t, len(names), len(shapes))
	for i, name := range names {
		resolved, err := c.Resolve(name)
		require.NoError(t, err)
		require.True(t, resolved.Equal(shapes[i]))
	}
}
