package tree

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"s3fetch/pkg/utils"
)

type glyphSet struct {
	last  string
	mid   string
	trunk string
	fill  string
}

var (
	unicodeGlyphs = glyphSet{last: "└── ", mid: "├── ", trunk: "│   ", fill: "    "}
	asciiGlyphs   = glyphSet{last: "+-- ", mid: "+-- ", trunk: "|   ", fill: "    "}
)

// Render writes the hierarchy depth-first, children sorted
// case-insensitively by name. Each directory line carries its subtree
// aggregate as "[N files, size]".
func Render(w io.Writer, root *Node, label string, asciiMode bool) {
	g := unicodeGlyphs
	if asciiMode {
		g = asciiGlyphs
	}
	fmt.Fprintf(w, "%s/  [%d files, %s]\n", label, root.FileCount, sizeLabel(root))
	walk(w, root, "", g)
}

func walk(w io.Writer, n *Node, indent string, g glyphSet) {
	kids := sortedChildren(n)
	for i, child := range kids {
		isLast := i == len(kids)-1
		branch := g.mid
		next := g.trunk
		if isLast {
			branch = g.last
			next = g.fill
		}
		fmt.Fprintf(w, "%s%s%s/  [%d files, %s]\n", indent, branch, child.Name, child.FileCount, sizeLabel(child))
		walk(w, child, indent+next, g)
	}
}

func sortedChildren(n *Node) []*Node {
	names := make([]string, 0, len(n.Children))
	for name := range n.Children {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})
	kids := make([]*Node, len(names))
	for i, name := range names {
		kids[i] = n.Children[name]
	}
	return kids
}

// sizeLabel avoids the ambiguous "0.00 B" on empty directories.
func sizeLabel(n *Node) string {
	if n.FileCount == 0 {
		return "0 B"
	}
	return utils.FormatBytes(n.TotalSize)
}
