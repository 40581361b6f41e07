// Package tree builds a directory hierarchy out of a flat object
// listing and renders it with aggregated per-directory counts and
// sizes. Only directories become nodes; files contribute to the
// aggregates of every ancestor.
package tree

import (
	"iter"
	"strings"

	"s3fetch/internal/models"
)

// Node is one directory in the hierarchy. FileCount and TotalSize cover
// the whole subtree, not just direct children; TotalSize counts only
// objects with a known positive size.
type Node struct {
	Name      string
	Children  map[string]*Node
	FileCount int
	TotalSize int64
}

func newNode(name string) *Node {
	return &Node{Name: name, Children: map[string]*Node{}}
}

// Build consumes the full object sequence and returns the aggregated
// root. The root's name is the listing prefix with its trailing slash
// stripped, or empty for a whole-bucket view.
func Build(prefix string, objects iter.Seq2[models.ObjectEntry, error]) (*Node, error) {
	root := newNode(strings.TrimSuffix(prefix, "/"))
	for entry, err := range objects {
		if err != nil {
			return nil, err
		}
		root.ingest(prefix, entry)
	}
	return root, nil
}

// ingest adds one object to the aggregates. Aggregation is purely
// additive, so the result does not depend on ingestion order.
func (n *Node) ingest(prefix string, entry models.ObjectEntry) {
	rel := entry.Key
	if prefix != "" && strings.HasPrefix(entry.Key, prefix) {
		rel = entry.Key[len(prefix):]
	}
	parts := splitSegments(rel)

	// Walk every intermediate directory segment, creating nodes as
	// needed; the final segment names the file and never becomes a node.
	if len(parts) > 1 {
		cur := n
		for _, seg := range parts[:len(parts)-1] {
			cur = cur.child(seg)
			cur.FileCount++
			if entry.Size > 0 {
				cur.TotalSize += entry.Size
			}
		}
	}

	// The root aggregate always covers the whole subtree, including
	// root-level files and keys equal to the prefix itself.
	n.FileCount++
	if entry.Size > 0 {
		n.TotalSize += entry.Size
	}
}

func (n *Node) child(name string) *Node {
	c, ok := n.Children[name]
	if !ok {
		c = newNode(name)
		n.Children[name] = c
	}
	return c
}

func splitSegments(path string) []string {
	var parts []string
	for _, p := range strings.Split(path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}
