package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// NodeID uniquely identifies a node within a layout.
type NodeID string

// NewNodeID returns a fresh random node identifier.
func NewNodeID() NodeID {
	return NodeID(uuid.NewString())
}

// Kind discriminates the two node variants.
type Kind string

const (
	// KindLeaf holds editable text and no children.
	KindLeaf Kind = "leaf"
	// KindContainer holds a fixed grid of children and no text.
	KindContainer Kind = "container"
)

// Node is a cell of the layout tree.
//
// A Node is either a Leaf or a Container, never both. Children are owned by
// their parent's child slice only; the parent link is an ID resolved through
// the root (see Find), never a second ownership path.
type Node struct {
	id     NodeID
	parent NodeID
	kind   Kind

	// Leaf payload.
	content string

	// Container payload. Set once by Split.
	module   ModuleType
	children []*Node
}

// NewLeaf creates a detached empty leaf.
func NewLeaf() *Node {
	return &Node{
		id:   NewNodeID(),
		kind: KindLeaf,
	}
}

// ID returns the node identifier.
func (n *Node) ID() NodeID { return n.id }

// Parent returns the ID of the owning container, or "" for a root.
func (n *Node) Parent() NodeID { return n.parent }

// Kind returns the node variant.
func (n *Node) Kind() Kind { return n.kind }

// IsLeaf reports whether the node is a Leaf.
func (n *Node) IsLeaf() bool { return n.kind == KindLeaf }

// Content returns the text of a Leaf.
func (n *Node) Content() (string, error) {
	if n.kind != KindLeaf {
		return "", fmt.Errorf("%w: container %s has no content", ErrInvalidState, n.id)
	}
	return n.content, nil
}

// SetContent replaces the text of a Leaf. Containers are left untouched.
func (n *Node) SetContent(text string) error {
	if n.kind != KindLeaf {
		return fmt.Errorf("%w: container %s has no content", ErrInvalidState, n.id)
	}
	n.content = text
	return nil
}

// Children returns the ordered children (row-major). It is empty for a Leaf.
// The slice is a copy; the grid itself cannot be resized through it.
func (n *Node) Children() []*Node {
	if len(n.children) == 0 {
		return nil
	}
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Module returns the module that produced a Container.
func (n *Node) Module() (ModuleType, bool) {
	if n.kind != KindContainer {
		return ModuleType{}, false
	}
	return n.module, true
}

// Split turns a Leaf into a Container of m.Rows x m.Cols empty leaves.
//
// This is the only structural mutation of the tree. On error the node is
// unchanged.
func (n *Node) Split(m ModuleType) error {
	if n.kind != KindLeaf {
		return fmt.Errorf("%w (node %s)", ErrInvalidOperation, n.id)
	}
	if !m.Valid() {
		return fmt.Errorf("%w: %dx%d", ErrInvalidModule, m.Rows, m.Cols)
	}

	children := make([]*Node, 0, m.Cells())
	for r := 0; r < m.Rows; r++ {
		for c := 0; c < m.Cols; c++ {
			child := NewLeaf()
			child.parent = n.id
			children = append(children, child)
		}
	}

	n.content = ""
	n.module = m
	n.children = children
	n.kind = KindContainer
	return nil
}

// Walk visits the subtree in pre-order. Returning false from fn stops the walk.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int) bool, depth int) bool {
	if !fn(n, depth) {
		return false
	}
	for _, child := range n.children {
		if !child.walk(fn, depth+1) {
			return false
		}
	}
	return true
}

// Find looks up a node by ID within the subtree.
func (n *Node) Find(id NodeID) (*Node, bool) {
	var found *Node
	n.Walk(func(node *Node, _ int) bool {
		if node.id == id {
			found = node
			return false
		}
		return true
	})
	return found, found != nil
}

// Descend follows child indices from n. No indices returns n itself.
func (n *Node) Descend(indices ...int) (*Node, bool) {
	cur := n
	for _, i := range indices {
		if i < 0 || i >= len(cur.children) {
			return nil, false
		}
		cur = cur.children[i]
	}
	return cur, true
}

// Leaves returns every leaf of the subtree in document order.
func (n *Node) Leaves() []*Node {
	var out []*Node
	n.Walk(func(node *Node, _ int) bool {
		if node.IsLeaf() {
			out = append(out, node)
		}
		return true
	})
	return out
}

// Size returns the number of nodes in the subtree.
func (n *Node) Size() int {
	count := 0
	n.Walk(func(*Node, int) bool {
		count++
		return true
	})
	return count
}

// Depth returns the height of the subtree; a lone leaf has depth 0.
func (n *Node) Depth() int {
	deepest := 0
	n.Walk(func(_ *Node, depth int) bool {
		if depth > deepest {
			deepest = depth
		}
		return true
	})
	return deepest
}
