package domain

// NodeView is a read-only snapshot of a subtree for UI collaborators.
type NodeView struct {
	ID       NodeID      `json:"id"`
	Parent   NodeID      `json:"parent,omitempty"`
	Kind     Kind        `json:"kind"`
	Content  string      `json:"content,omitempty"`
	Module   *ModuleType `json:"module,omitempty"`
	Children []NodeView  `json:"children,omitempty"`
}

// View snapshots the subtree rooted at n.
func (n *Node) View() NodeView {
	v := NodeView{
		ID:     n.id,
		Parent: n.parent,
		Kind:   n.kind,
	}
	if n.kind == KindLeaf {
		v.Content = n.content
		return v
	}
	m := n.module
	v.Module = &m
	v.Children = make([]NodeView, len(n.children))
	for i, child := range n.children {
		v.Children[i] = child.View()
	}
	return v
}
