package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLeaf(t *testing.T) {
	n := NewLeaf()

	assert.True(t, n.IsLeaf())
	assert.Equal(t, KindLeaf, n.Kind())
	assert.NotEmpty(t, n.ID())
	assert.Empty(t, n.Parent())
	assert.Empty(t, n.Children())

	content, err := n.Content()
	require.NoError(t, err)
	assert.Equal(t, "", content)
}

func TestSplit_Postcondition(t *testing.T) {
	for _, m := range Catalog() {
		t.Run(m.ID, func(t *testing.T) {
			n := NewLeaf()
			require.NoError(t, n.Split(m))

			assert.False(t, n.IsLeaf())
			children := n.Children()
			require.Len(t, children, m.Rows*m.Cols)
			for _, child := range children {
				assert.True(t, child.IsLeaf())
				assert.Equal(t, n.ID(), child.Parent())
				content, err := child.Content()
				require.NoError(t, err)
				assert.Empty(t, content)
			}

			got, ok := n.Module()
			assert.True(t, ok)
			assert.Equal(t, m, got)
			assert.NoError(t, Verify(n))
		})
	}
}

func TestSplit_ClearsContent(t *testing.T) {
	n := NewLeaf()
	require.NoError(t, n.SetContent("hello"))
	require.NoError(t, n.Split(mustModule(t, ModuleDoubleRow)))

	_, err := n.Content()
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Equal(t, "", n.content)
}

func TestSplit_OnContainerFails(t *testing.T) {
	n := NewLeaf()
	require.NoError(t, n.Split(mustModule(t, ModuleGrid)))
	before := n.Children()

	for _, m := range Catalog() {
		err := n.Split(m)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidOperation))
		assert.Contains(t, err.Error(), "only a leaf cell may accept a new module")

		after := n.Children()
		require.Len(t, after, len(before))
		for i := range before {
			assert.Same(t, before[i], after[i])
		}
	}
}

func TestSplit_InvalidModule(t *testing.T) {
	n := NewLeaf()
	err := n.Split(ModuleType{ID: "0x2", Rows: 0, Cols: 2})

	assert.ErrorIs(t, err, ErrInvalidModule)
	assert.True(t, n.IsLeaf())
	assert.Empty(t, n.Children())
}

func TestSplit_RowMajorOrder(t *testing.T) {
	root := NewLeaf()
	require.NoError(t, root.Split(mustModule(t, ModuleGrid)))

	// Splitting the cell at row 1, col 0 must touch index 2.
	third, ok := root.Descend(2)
	require.True(t, ok)
	require.NoError(t, third.Split(mustModule(t, ModuleDoubleRow)))

	kinds := []Kind{}
	for _, c := range root.Children() {
		kinds = append(kinds, c.Kind())
	}
	assert.Equal(t, []Kind{KindLeaf, KindLeaf, KindContainer, KindLeaf}, kinds)
}

func TestContainerContent(t *testing.T) {
	n := NewLeaf()
	require.NoError(t, n.Split(mustModule(t, ModuleDoubleColumn)))

	_, err := n.Content()
	assert.ErrorIs(t, err, ErrInvalidState)

	err = n.SetContent("nope")
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Len(t, n.Children(), 2)
}

func TestChildrenIsACopy(t *testing.T) {
	n := NewLeaf()
	require.NoError(t, n.Split(mustModule(t, ModuleDoubleRow)))

	children := n.Children()
	children[0] = nil
	children = append(children, NewLeaf())

	assert.Len(t, n.Children(), 2)
	assert.NotNil(t, n.Children()[0])
}

func TestTraversal(t *testing.T) {
	root := NewLeaf()
	require.NoError(t, root.Split(mustModule(t, ModuleTripleRow)))
	mid, _ := root.Descend(1)
	require.NoError(t, mid.Split(mustModule(t, ModuleGrid)))
	deep, ok := root.Descend(1, 3)
	require.True(t, ok)

	found, ok := root.Find(deep.ID())
	require.True(t, ok)
	assert.Same(t, deep, found)

	parent, ok := root.Find(deep.Parent())
	require.True(t, ok)
	assert.Same(t, mid, parent)

	_, ok = root.Find("missing")
	assert.False(t, ok)
	_, ok = root.Descend(1, 4)
	assert.False(t, ok)
	_, ok = root.Descend(0, 0)
	assert.False(t, ok)

	assert.Equal(t, 1+3+4, root.Size())
	assert.Equal(t, 2, root.Depth())
	assert.Len(t, root.Leaves(), 2+4)
}

func TestWalkStops(t *testing.T) {
	root := NewLeaf()
	require.NoError(t, root.Split(mustModule(t, ModuleGrid)))

	visited := 0
	root.Walk(func(*Node, int) bool {
		visited++
		return visited < 2
	})
	assert.Equal(t, 2, visited)
}

func TestView(t *testing.T) {
	root := NewLeaf()
	require.NoError(t, root.Split(mustModule(t, ModuleDoubleRow)))
	first, _ := root.Descend(0)
	require.NoError(t, first.SetContent("logo"))

	v := root.View()
	assert.Equal(t, KindContainer, v.Kind)
	require.NotNil(t, v.Module)
	assert.Equal(t, ModuleDoubleRow, v.Module.ID)
	require.Len(t, v.Children, 2)
	assert.Equal(t, "logo", v.Children[0].Content)
	assert.Equal(t, root.ID(), v.Children[1].Parent)
}

func mustModule(t *testing.T, id string) ModuleType {
	t.Helper()
	m, ok := LookupModule(id)
	require.True(t, ok, "module %s not in catalog", id)
	return m
}
