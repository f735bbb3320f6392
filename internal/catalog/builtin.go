package catalog

// builtinManifest is the embedded form of a builtin shape catalog manifest:
// the same {name, matrix, anchorRow, anchorCol} shape expected from a YAML
// manifest file (see catalog.go), expressed as a Go literal so the builtin
// set needs no filesystem access at runtime. Anchor -1 requests
// auto-centering, matching the *.shape.json wire convention.
var builtinManifest = []Entry{
	{Name: "dot", Matrix: []string{"#"}, AnchorRow: -1, AnchorCol: -1},
	{Name: "domino", Matrix: []string{"##"}, AnchorRow: -1, AnchorCol: -1},
	{Name: "square", Matrix: []string{"##", "##"}, AnchorRow: -1, AnchorCol: -1},
	{Name: "tromino-i", Matrix: []string{"###"}, AnchorRow: -1, AnchorCol: -1},
	{Name: "tromino-l", Matrix: []string{"#.", "##"}, AnchorRow: 0, AnchorCol: 0},
	{Name: "tetromino-i", Matrix: []string{"####"}, AnchorRow: -1, AnchorCol: -1},
	{Name: "tetromino-o", Matrix: []string{"##", "##"}, AnchorRow: -1, AnchorCol: -1},
	{Name: "tetromino-t", Matrix: []string{"###", ".#."}, AnchorRow: 0, AnchorCol: 1},
	{Name: "tetromino-s", Matrix: []string{".##", "##."}, AnchorRow: 0, AnchorCol: 1},
	{Name: "tetromino-l", Matrix: []string{"#.", "#.", "##"}, AnchorRow: 0, AnchorCol: 0},
	{Name: "pentomino-plus", Matrix: []string{".#.", "###", ".#."}, AnchorRow: 1, AnchorCol: 1},
}
