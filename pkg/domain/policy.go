package domain

// CanAccept is the drop policy: a module may be dropped on a node iff the
// node is a Leaf. The module only selects how the leaf is split.
//
// Callers check it when showing a drag-over affordance and again at drop
// time, because the tree may have changed in between.
func CanAccept(node *Node, _ ModuleType) bool {
	return node != nil && node.IsLeaf()
}
