package lang

import (
	"io"
	"iter"
	"log/slog"
	"strconv"
	"strings"
)

// Position is a location in source text.
// Line and Column are 1-based; Offset is a 0-based byte offset.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// Node is one element of the parse tree.
//
// Text holds the source text the node was parsed from, except for
// container nodes, where it holds the name they declare (if any).
type Node struct {
	Kind     Kind
	Text     string
	Pos      Position
	Children []*Node
}

// Child returns the i'th child of n, or nil if it does not exist.
func (n *Node) Child(i int) *Node {
	if n == nil || i < 0 || i >= len(n.Children) {
		return nil
	}

	return n.Children[i]
}

// All returns an iterator over the direct children of n.
func (n *Node) All() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		if n == nil {
			return
		}

		for _, c := range n.Children {
			if !yield(c) {
				return
			}
		}
	}
}

// Walk returns a depth-first, pre-order iterator over n and all of its
// descendants, paired with their depth relative to n.
func (n *Node) Walk() iter.Seq2[int, *Node] {
	return func(yield func(int, *Node) bool) {
		n.walk(0, yield)
	}
}

func (n *Node) walk(depth int, yield func(int, *Node) bool) bool {
	if n == nil {
		return true
	}

	if !yield(depth, n) {
		return false
	}

	for _, c := range n.Children {
		if !c.walk(depth+1, yield) {
			return false
		}
	}

	return true
}

// LogValue implements slog.LogValuer.
func (n *Node) LogValue() slog.Value {
	if n == nil {
		return slog.StringValue("<nil>")
	}

	attrs := []slog.Attr{slog.String("kind", n.Kind.String())}
	if n.Text != "" {
		attrs = append(attrs, slog.String("text", n.Text))
	}

	attrs = append(attrs, slog.String("pos", n.Pos.String()))

	return slog.GroupValue(attrs...)
}

// Print writes an indented dump of the tree rooted at n.
func (n *Node) Print(w io.Writer) error {
	put := writer(w)

	for depth, node := range n.Walk() {
		item := []string{strings.Repeat("  ", depth) + node.Kind.String()}
		if node.Text != "" {
			item = append(item, node.Text)
		}

		if err := put("\n", item...); err != nil {
			return err
		}
	}

	return nil
}

func writer(w io.Writer) func(eol string, item ...string) error {
	return func(eol string, item ...string) error {
		_, err := io.WriteString(w, strings.Join(item, ": ")+eol)

		return err
	}
}
