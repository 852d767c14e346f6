package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerify(t *testing.T) {
	build := func(t *testing.T) *Node {
		root := NewLeaf()
		require.NoError(t, root.Split(mustModule(t, ModuleGrid)))
		return root
	}

	tests := []struct {
		name    string
		corrupt func(root *Node)
		wantErr bool
	}{
		{name: "Healthy", corrupt: func(*Node) {}},
		{name: "Resized Grid", corrupt: func(root *Node) {
			root.children = root.children[:3]
		}, wantErr: true},
		{name: "Wrong Parent", corrupt: func(root *Node) {
			root.children[1].parent = "elsewhere"
		}, wantErr: true},
		{name: "Cycle", corrupt: func(root *Node) {
			child := root.children[0]
			child.kind = KindContainer
			child.module = ModuleType{Rows: 1, Cols: 1}
			child.children = []*Node{root}
		}, wantErr: true},
		{name: "Leaf With Children", corrupt: func(root *Node) {
			root.children[2].children = []*Node{NewLeaf()}
		}, wantErr: true},
		{name: "Container With Content", corrupt: func(root *Node) {
			root.content = "stale"
		}, wantErr: true},
		{name: "Root With Parent", corrupt: func(root *Node) {
			root.parent = "ghost"
		}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := build(t)
			tt.corrupt(root)
			err := Verify(root)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrCorruptTree)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	assert.ErrorIs(t, Verify(nil), ErrCorruptTree)
}
