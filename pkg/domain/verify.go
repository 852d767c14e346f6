package domain

import "fmt"

// Verify checks the structural invariants of a whole tree rooted at root.
// Any violation is reported as ErrCorruptTree.
func Verify(root *Node) error {
	if root == nil {
		return fmt.Errorf("%w: nil root", ErrCorruptTree)
	}
	if root.parent != "" {
		return fmt.Errorf("%w: root %s has parent %s", ErrCorruptTree, root.id, root.parent)
	}
	seen := make(map[*Node]bool)
	ids := make(map[NodeID]bool)
	return verify(root, seen, ids)
}

func verify(n *Node, seen map[*Node]bool, ids map[NodeID]bool) error {
	if seen[n] {
		return fmt.Errorf("%w: node %s reached twice", ErrCorruptTree, n.id)
	}
	seen[n] = true
	if ids[n.id] {
		return fmt.Errorf("%w: duplicate id %s", ErrCorruptTree, n.id)
	}
	ids[n.id] = true

	switch n.kind {
	case KindLeaf:
		if len(n.children) != 0 {
			return fmt.Errorf("%w: leaf %s has %d children", ErrCorruptTree, n.id, len(n.children))
		}
		return nil
	case KindContainer:
		if n.content != "" {
			return fmt.Errorf("%w: container %s has content", ErrCorruptTree, n.id)
		}
		if want := n.module.Cells(); len(n.children) != want || want == 0 {
			return fmt.Errorf("%w: container %s has %d children, want %d", ErrCorruptTree, n.id, len(n.children), want)
		}
		for _, child := range n.children {
			if child == nil {
				return fmt.Errorf("%w: container %s has a nil child", ErrCorruptTree, n.id)
			}
			if child.parent != n.id {
				return fmt.Errorf("%w: child %s points at %s, owned by %s", ErrCorruptTree, child.id, child.parent, n.id)
			}
			if err := verify(child, seen, ids); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: node %s has unknown kind %q", ErrCorruptTree, n.id, n.kind)
	}
}
