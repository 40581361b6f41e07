package tree

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"s3fetch/internal/models"
)

func TestRenderUnicode(t *testing.T) {
	entries := []models.ObjectEntry{
		{Key: "docs/readme.md", Size: 100},
		{Key: "docs/img/logo.png", Size: 50},
		{Key: "src/main.go", Size: 200},
		{Key: "zz.txt", Size: 1},
	}
	root, err := Build("", entrySeq(entries))
	require.NoError(t, err)

	var buf strings.Builder
	Render(&buf, root, "ska:sdc3-simdata", false)

	want := strings.Join([]string{
		"ska:sdc3-simdata/  [4 files, 351.00 B]",
		"├── docs/  [2 files, 150.00 B]",
		"│   └── img/  [1 files, 50.00 B]",
		"└── src/  [1 files, 200.00 B]",
		"",
	}, "\n")
	require.Equal(t, want, buf.String())
}

func TestRenderASCII(t *testing.T) {
	entries := []models.ObjectEntry{
		{Key: "docs/readme.md", Size: 100},
		{Key: "src/main.go", Size: 200},
	}
	root, err := Build("", entrySeq(entries))
	require.NoError(t, err)

	var buf strings.Builder
	Render(&buf, root, "bucket", true)

	want := strings.Join([]string{
		"bucket/  [2 files, 300.00 B]",
		"+-- docs/  [1 files, 100.00 B]",
		"+-- src/  [1 files, 200.00 B]",
		"",
	}, "\n")
	require.Equal(t, want, buf.String())
}

func TestRenderEmptyTree(t *testing.T) {
	root, err := Build("", entrySeq(nil))
	require.NoError(t, err)

	var buf strings.Builder
	Render(&buf, root, "bucket", false)

	require.Equal(t, "bucket/  [0 files, 0 B]\n", buf.String())
}

func TestRenderCaseInsensitiveOrder(t *testing.T) {
	entries := []models.ObjectEntry{
		{Key: "Beta/x", Size: 1},
		{Key: "alpha/y", Size: 1},
	}
	root, err := Build("", entrySeq(entries))
	require.NoError(t, err)

	var buf strings.Builder
	Render(&buf, root, "b", false)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	require.Contains(t, lines[1], "alpha/")
	require.Contains(t, lines[2], "Beta/")
}

func TestRenderContinuationGlyphs(t *testing.T) {
	// A non-last child's subtree must be indented with the trunk glyph,
	// a last child's with blank fill.
	entries := []models.ObjectEntry{
		{Key: "a/inner/x", Size: 1},
		{Key: "b/inner/y", Size: 1},
	}
	root, err := Build("", entrySeq(entries))
	require.NoError(t, err)

	var buf strings.Builder
	Render(&buf, root, "b", false)

	out := buf.String()
	require.Contains(t, out, "│   └── inner/")
	require.Contains(t, out, "    └── inner/")
}
