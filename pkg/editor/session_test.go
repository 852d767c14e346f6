package editor_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aretw0/tessera/pkg/domain"
	"github.com/aretw0/tessera/pkg/editor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(opts ...editor.Option) *editor.Session {
	return editor.New(append([]editor.Option{editor.WithAssertions(true)}, opts...)...)
}

func TestNew_RootIsEmptyLeaf(t *testing.T) {
	s := newSession()
	root := s.Current()

	assert.True(t, root.IsLeaf())
	assert.Empty(t, root.Children())
	content, err := root.Content()
	require.NoError(t, err)
	assert.Empty(t, content)
}

func TestScenario_GridExportsColumn(t *testing.T) {
	ctx := context.Background()
	s := newSession()

	require.NoError(t, s.RequestDrop(ctx, s.Current().ID(), domain.ModuleGrid))

	children := s.Current().Children()
	require.Len(t, children, 4)
	for _, c := range children {
		assert.True(t, c.IsLeaf())
	}

	out := s.ExportMarkup(ctx)
	assert.True(t, strings.HasPrefix(out, `<div style="display: flex; flex-direction: column;`))
	assert.Equal(t, 4, strings.Count(out, "Empty cell"))
}

func TestScenario_DoubleRowExportsRow(t *testing.T) {
	ctx := context.Background()
	s := newSession()

	require.NoError(t, s.RequestDrop(ctx, s.Current().ID(), domain.ModuleDoubleRow))
	require.Len(t, s.Current().Children(), 2)
	assert.Contains(t, s.ExportMarkup(ctx), "flex-direction: row")
}

func TestScenario_DropOnContainerRejected(t *testing.T) {
	ctx := context.Background()
	s := newSession()
	root := s.Current()
	require.NoError(t, s.RequestDrop(ctx, root.ID(), domain.ModuleGrid))
	before := root.Children()

	for _, m := range domain.Catalog() {
		err := s.RequestDrop(ctx, root.ID(), m.ID)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrRejectedDrop))
		assert.Len(t, root.Children(), 4)
	}
	after := root.Children()
	for i := range before {
		assert.Same(t, before[i], after[i])
	}
}

func TestRequestDrop_Errors(t *testing.T) {
	ctx := context.Background()
	s := newSession()

	err := s.RequestDrop(ctx, s.Current().ID(), "9x9")
	assert.ErrorIs(t, err, domain.ErrUnknownModule)

	err = s.RequestDrop(ctx, "missing", domain.ModuleGrid)
	assert.ErrorIs(t, err, domain.ErrNodeNotFound)

	assert.True(t, s.Current().IsLeaf(), "failed drops must not mutate")
}

func TestCanAccept_RecheckedAtDrop(t *testing.T) {
	ctx := context.Background()
	s := newSession()
	target := s.Current().ID()

	// Two drags hover over the same cell; both see an accepting affordance.
	assert.True(t, s.CanAccept(target, domain.ModuleGrid))
	assert.True(t, s.CanAccept(target, domain.ModuleTripleRow))

	// The first drop wins, the second is checked again and declined.
	require.NoError(t, s.RequestDrop(ctx, target, domain.ModuleGrid))
	err := s.RequestDrop(ctx, target, domain.ModuleTripleRow)
	assert.ErrorIs(t, err, domain.ErrRejectedDrop)
	assert.Len(t, s.Current().Children(), 4)

	assert.False(t, s.CanAccept(target, domain.ModuleGrid))
	assert.False(t, s.CanAccept(target, "nope"))
	assert.False(t, s.CanAccept("missing", domain.ModuleGrid))
}

func TestReset_FromAnyState(t *testing.T) {
	ctx := context.Background()
	s := newSession()

	for round := 0; round < 3; round++ {
		for i := 0; i < round+1; i++ {
			leaves := s.Current().Leaves()
			require.NoError(t, s.RequestDrop(ctx, leaves[len(leaves)-1].ID(), domain.ModuleGrid))
		}
		old := s.Current()

		s.Reset(ctx)

		root := s.Current()
		assert.NotSame(t, old, root)
		assert.NotEqual(t, old.ID(), root.ID())
		assert.True(t, root.IsLeaf())
		assert.Empty(t, root.Children())
		content, err := root.Content()
		require.NoError(t, err)
		assert.Empty(t, content)
	}
}

func TestExport_IsPure(t *testing.T) {
	ctx := context.Background()
	s := newSession()
	require.NoError(t, s.RequestDrop(ctx, s.Current().ID(), domain.ModuleTripleColumn))
	before := s.Current().Children()

	first := s.ExportMarkup(ctx)
	second := s.ExportMarkup(ctx)

	assert.Equal(t, first, second)
	after := s.Current().Children()
	require.Len(t, after, len(before))
	for i := range before {
		assert.Same(t, before[i], after[i])
	}
}

func TestSetContent(t *testing.T) {
	ctx := context.Background()
	s := newSession()
	root := s.Current()
	require.NoError(t, s.SetContent(ctx, root.ID(), "draft"))
	require.NoError(t, s.RequestDrop(ctx, root.ID(), domain.ModuleHeaderContentFooter))

	err := s.SetContent(ctx, root.ID(), "nope")
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	header := root.Children()[0]
	require.NoError(t, s.SetContent(ctx, header.ID(), "Header"))
	assert.Contains(t, s.ExportMarkup(ctx), ">Header</div>")

	assert.ErrorIs(t, s.SetContent(ctx, "missing", "x"), domain.ErrNodeNotFound)
}

func TestParentOf(t *testing.T) {
	ctx := context.Background()
	s := newSession()
	root := s.Current()
	require.NoError(t, s.RequestDrop(ctx, root.ID(), domain.ModuleDoubleColumn))
	child := root.Children()[1]

	parent, ok := s.ParentOf(child.ID())
	require.True(t, ok)
	assert.Same(t, root, parent)

	_, ok = s.ParentOf(root.ID())
	assert.False(t, ok)
}

func TestHooks(t *testing.T) {
	ctx := context.Background()
	var splits, rejects, resets, contents, exports int
	var lastSplit *domain.SplitEvent

	s := newSession(editor.WithID("sess-1"), editor.WithHooks(domain.LifecycleHooks{
		OnSplit: func(_ context.Context, e *domain.SplitEvent) {
			splits++
			lastSplit = e
		},
		OnDropRejected:   func(context.Context, *domain.RejectEvent) { rejects++ },
		OnReset:          func(context.Context, *domain.ResetEvent) { resets++ },
		OnContentChanged: func(context.Context, *domain.ContentEvent) { contents++ },
		OnExport:         func(context.Context, *domain.ExportEvent) { exports++ },
	}))

	root := s.Current().ID()
	require.NoError(t, s.RequestDrop(ctx, root, domain.ModuleDoubleRow))
	_ = s.RequestDrop(ctx, root, domain.ModuleDoubleRow)
	require.NoError(t, s.SetContent(ctx, s.Current().Children()[0].ID(), "a"))
	s.ExportMarkup(ctx)
	s.Reset(ctx)

	assert.Equal(t, 1, splits)
	assert.Equal(t, 1, rejects)
	assert.Equal(t, 1, contents)
	assert.Equal(t, 1, exports)
	assert.Equal(t, 1, resets)

	require.NotNil(t, lastSplit)
	assert.Equal(t, "sess-1", lastSplit.SessionID)
	assert.Equal(t, domain.EventSplit, lastSplit.Type)
	assert.Equal(t, 3, lastSplit.Size)
}
