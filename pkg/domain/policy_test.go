package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanAccept_MatchesIsLeaf(t *testing.T) {
	root := NewLeaf()
	require.NoError(t, root.Split(mustModule(t, ModuleGrid)))
	inner, _ := root.Descend(0)
	require.NoError(t, inner.Split(mustModule(t, ModuleTripleColumn)))

	var nodes []*Node
	root.Walk(func(n *Node, _ int) bool {
		nodes = append(nodes, n)
		return true
	})

	for _, n := range nodes {
		for _, m := range Catalog() {
			assert.Equal(t, n.IsLeaf(), CanAccept(n, m), "node %s module %s", n.ID(), m.ID)
		}
	}
}

func TestCanAccept_Nil(t *testing.T) {
	assert.False(t, CanAccept(nil, mustModule(t, ModuleGrid)))
}
