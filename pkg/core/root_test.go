package core_test

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/anchor/pkg/core"
	"github.com/go-drift/anchor/pkg/errors"
	"github.com/go-drift/anchor/pkg/focus"
	"github.com/go-drift/anchor/pkg/geometry"
	"github.com/go-drift/anchor/pkg/widgets"
)

// mountedScene mounts a 100x100 clipped box with two solid 10x10 leaves at
// (0,0) and (50,0), and runs one update.
func mountedScene(t *testing.T) (*core.Root, *widgets.Box, *widgets.Leaf, *widgets.Leaf) {
	t.Helper()
	root := core.NewRoot()
	top := widgets.NewBox("top")
	top.SetSize(geometry.Size{Width: 100, Height: 100})
	top.SetClip(geometry.Bounds{})
	require.NoError(t, root.Mount(top))

	solid := func(l *widgets.Leaf) {
		l.SetSize(geometry.Size{Width: 10, Height: 10})
		l.SetSolid(true)
	}
	a := addLeaf(t, top, "a", solid)
	b := addLeaf(t, top, "b", func(l *widgets.Leaf) {
		solid(l)
		l.SetOffset(geometry.Offset{X: 50})
	})
	root.Update()
	return root, top, a, b
}

func TestRoot_UpdateAssignsRenderIndices(t *testing.T) {
	root, top, a, b := mountedScene(t)
	assert.Equal(t, uint64(1), top.RenderIndex())
	assert.Equal(t, uint64(2), a.RenderIndex())
	assert.Equal(t, uint64(3), b.RenderIndex())

	root.Update()
	assert.Equal(t, uint64(4), top.RenderIndex())
	assert.Equal(t, uint64(5), a.RenderIndex())
	assert.Equal(t, uint64(6), b.RenderIndex())

	c := widgets.NewLeaf("c")
	assert.Equal(t, core.UnassignedRenderIndex, c.RenderIndex())
	assert.Equal(t, uint64(7), root.NextRenderIndex())
}

func TestRoot_UpdateFlushesLayout(t *testing.T) {
	root := core.NewRoot()
	top := widgets.NewBox("top")
	top.SetSize(geometry.Size{Width: 100, Height: 100})
	require.NoError(t, root.Mount(top))
	assert.True(t, root.Pipeline().NeedsLayout())

	end := addLeaf(t, top, "end", func(l *widgets.Leaf) {
		l.SetPlacement(core.PlacementEnd, core.PlacementEnd)
		l.SetSize(geometry.Size{Width: 10, Height: 10})
	})
	root.Update()
	assert.False(t, root.Pipeline().NeedsLayout())
	assert.Equal(t, geometry.Offset{X: 90, Y: 90}, end.AbsolutePosition())

	top.SetSize(geometry.Size{Width: 200, Height: 100})
	assert.True(t, top.NeedsLayout())
	assert.Equal(t, geometry.Offset{X: 90, Y: 90}, end.AbsolutePosition(), "rooted changes wait for Update")

	root.Update()
	assert.False(t, top.NeedsLayout())
	assert.Equal(t, geometry.Offset{X: 190, Y: 90}, end.AbsolutePosition())
}

func TestRoot_Mount(t *testing.T) {
	h := captureErrors(t)
	first := core.NewRoot()
	second := core.NewRoot()
	top := newParent(t)
	child := addLeaf(t, top, "child", nil)

	err := first.Mount(child)
	assert.True(t, stderrors.Is(err, errors.ErrAlreadyAttached))
	assert.Len(t, h.errs, 1)

	require.NoError(t, first.Mount(top))
	assert.Same(t, top, first.Top())
	assert.Same(t, first, child.Root())

	require.NoError(t, second.Mount(top))
	assert.Nil(t, first.Top(), "mounting elsewhere unmounts from the old root")
	assert.Same(t, second, child.Root())

	replacement := widgets.NewBox("replacement")
	require.NoError(t, second.Mount(replacement))
	assert.Nil(t, top.Root())
	assert.Nil(t, child.Root())
}

func TestRoot_EventObjectsOrder(t *testing.T) {
	root, _, a, b := mountedScene(t)
	assert.Equal(t, []core.Element{a, b}, root.EventObjects())

	b.SetZOffset(-1)
	root.Update()
	assert.Equal(t, []core.Element{b, a}, root.EventObjects())
}

func TestRoot_HitTest(t *testing.T) {
	root, top, a, b := mountedScene(t)

	assert.Same(t, a, root.HitTest(geometry.Offset{X: 5, Y: 5}))
	assert.Same(t, b, root.HitTest(geometry.Offset{X: 50, Y: 9}))
	assert.Nil(t, root.HitTest(geometry.Offset{X: 10, Y: 10}), "far edges are exclusive")
	assert.Nil(t, root.HitTest(geometry.Offset{X: 30, Y: 30}))

	over := addLeaf(t, top, "over", func(l *widgets.Leaf) {
		l.SetOffset(geometry.Offset{X: 5, Y: 5})
		l.SetSize(geometry.Size{Width: 10, Height: 10})
		l.SetSolid(true)
	})
	root.Update()
	assert.Same(t, over, root.HitTest(geometry.Offset{X: 7, Y: 7}), "later in draw order wins")

	over.SetVisible(false)
	assert.Same(t, a, root.HitTest(geometry.Offset{X: 7, Y: 7}))

	clipped := addLeaf(t, top, "clipped", func(l *widgets.Leaf) {
		l.SetOffset(geometry.Offset{X: 95, Y: 95})
		l.SetSize(geometry.Size{Width: 10, Height: 10})
		l.SetSolid(true)
	})
	root.Update()
	assert.Same(t, clipped, root.HitTest(geometry.Offset{X: 99, Y: 99}))
	assert.Nil(t, root.HitTest(geometry.Offset{X: 101, Y: 101}), "outside the inherited clip")
}

func TestRoot_DispatchPointer(t *testing.T) {
	root, _, a, _ := mountedScene(t)
	var got geometry.Offset
	a.Bind("press", func(ev *core.Event) {
		got = ev.Position
	})

	assert.True(t, root.DispatchPointer("press", "", geometry.Offset{X: 2, Y: 3}))
	assert.Equal(t, geometry.Offset{X: 2, Y: 3}, got)
	assert.False(t, root.DispatchPointer("press", "", geometry.Offset{X: 52, Y: 3}), "b has nothing bound")
	assert.False(t, root.DispatchPointer("press", "", geometry.Offset{X: 80, Y: 80}))
}

func TestRoot_Focus(t *testing.T) {
	root, top, a, b := mountedScene(t)
	assert.Nil(t, root.Focused())

	a.RequestFocus()
	assert.Same(t, a, root.Focused())
	assert.True(t, a.HasFocus())

	b.RequestFocus()
	assert.Same(t, b, root.Focused())
	assert.False(t, a.HasFocus(), "a newer request replaces the holder")

	assert.False(t, a.ReleaseFocus(), "a does not hold focus")
	assert.Same(t, b, root.Focused())
	assert.True(t, b.ReleaseFocus())
	assert.Nil(t, root.Focused())

	b.RequestFocus()
	a.Blur()
	assert.Nil(t, root.Focused(), "blur clears focus whichever element holds it")

	loose := widgets.NewLeaf("loose")
	loose.RequestFocus()
	assert.False(t, loose.HasFocus())

	var typed []string
	a.Bind("key", func(ev *core.Event) { typed = append(typed, ev.Message) })
	a.RequestFocus()
	assert.True(t, root.DispatchFocused("key", "x"))
	assert.Equal(t, []string{"x"}, typed)

	require.NoError(t, top.RemoveChild(a))
	assert.Nil(t, root.Focused(), "releasing the holder clears focus")
	assert.False(t, root.DispatchFocused("key", "y"))
}

func TestRoot_FocusTraversal(t *testing.T) {
	root, top, a, b := mountedScene(t)
	below := addLeaf(t, top, "below", func(l *widgets.Leaf) {
		l.SetOffset(geometry.Offset{Y: 50})
		l.SetSize(geometry.Size{Width: 10, Height: 10})
		l.SetSolid(true)
	})
	root.Update()

	require.True(t, root.FocusNext())
	assert.Same(t, a, root.Focused())
	require.True(t, root.FocusNext())
	assert.Same(t, b, root.Focused())
	require.True(t, root.FocusPrevious())
	assert.Same(t, a, root.Focused())
	require.True(t, root.FocusPrevious())
	assert.Same(t, below, root.Focused(), "wraps around")

	a.RequestFocus()
	require.True(t, root.MoveFocus(focus.TraversalDirectionRight))
	assert.Same(t, b, root.Focused())
	require.True(t, root.MoveFocus(focus.TraversalDirectionLeft))
	assert.Same(t, a, root.Focused())
	require.True(t, root.MoveFocus(focus.TraversalDirectionDown))
	assert.Same(t, below, root.Focused())

	b.SetVisible(false)
	a.RequestFocus()
	require.True(t, root.FocusNext())
	assert.Same(t, below, root.Focused(), "hidden elements are skipped")

	below.SetSolid(false)
	assert.Nil(t, root.Focused(), "no longer solid drops focus")
}
