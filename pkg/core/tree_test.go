package core_test

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/anchor/pkg/core"
	"github.com/go-drift/anchor/pkg/errors"
	"github.com/go-drift/anchor/pkg/geometry"
	"github.com/go-drift/anchor/pkg/widgets"
)

type recordingHandler struct {
	errs   []*errors.LayoutError
	panics []*errors.PanicError
}

func (h *recordingHandler) HandleError(err *errors.LayoutError) { h.errs = append(h.errs, err) }
func (h *recordingHandler) HandlePanic(err *errors.PanicError)  { h.panics = append(h.panics, err) }

func captureErrors(t *testing.T) *recordingHandler {
	t.Helper()
	h := &recordingHandler{}
	errors.SetHandler(h)
	t.Cleanup(func() { errors.SetHandler(nil) })
	return h
}

// plainParent holds children through Adopt without implementing Container.
type plainParent struct {
	core.ElementBase
}

func newPlainParent() *plainParent {
	p := &plainParent{}
	p.SetSelf(p)
	p.SetName("plain")
	return p
}

func TestReparentTo_MovesElement(t *testing.T) {
	from := newParent(t)
	to := widgets.NewBox("to")
	to.SetOffset(geometry.Offset{X: 30, Y: 40})
	require.NoError(t, from.AddChild(to))

	child := addLeaf(t, from, "child", func(l *widgets.Leaf) {
		l.SetOffset(geometry.Offset{X: 1, Y: 2})
	})
	require.Equal(t, geometry.Offset{X: 1, Y: 2}, child.AbsolutePosition())

	require.NoError(t, child.ReparentTo(to))

	assert.Same(t, to, child.Parent())
	assert.Equal(t, []core.Element{to}, from.Children())
	assert.Equal(t, []core.Element{child}, to.Children())
	assert.Equal(t, geometry.Offset{X: 31, Y: 42}, child.AbsolutePosition())
	assert.Equal(t, 2, child.Depth())
}

func TestReparentTo_NotContainer(t *testing.T) {
	h := captureErrors(t)
	parent := newParent(t)
	child := addLeaf(t, parent, "child", nil)
	other := addLeaf(t, parent, "other", nil)

	err := child.ReparentTo(other)
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrNotContainer))

	var le *errors.LayoutError
	require.True(t, stderrors.As(err, &le))
	assert.Equal(t, "core.ReparentTo", le.Op)
	assert.Equal(t, errors.KindUsage, le.Kind)
	assert.Equal(t, "*widgets.Leaf(child)", le.Element)

	require.Len(t, h.errs, 1)
	assert.Same(t, le, h.errs[0])
	assert.False(t, h.errs[0].Timestamp.IsZero())

	assert.Same(t, parent, child.Parent(), "tree is unchanged")
	assert.Equal(t, []core.Element{child, other}, parent.Children())
}

func TestReparentTo_Cycle(t *testing.T) {
	h := captureErrors(t)
	outer := newParent(t)
	inner := widgets.NewBox("inner")
	require.NoError(t, outer.AddChild(inner))

	err := outer.ReparentTo(inner)
	assert.True(t, stderrors.Is(err, errors.ErrCycle))
	err = inner.ReparentTo(inner)
	assert.True(t, stderrors.Is(err, errors.ErrCycle))

	assert.Len(t, h.errs, 2)
	assert.Same(t, outer, inner.Parent())
	assert.Nil(t, outer.Parent())
}

func TestReparentTo_ParentWithoutContainerPanics(t *testing.T) {
	captureErrors(t)
	plain := newPlainParent()
	child := widgets.NewLeaf("c")
	require.NoError(t, core.Adopt(plain, child))

	target := newParent(t)
	defer func() {
		r := recover()
		require.NotNil(t, r)
		pe, ok := r.(*errors.PreconditionError)
		require.True(t, ok, "expected *errors.PreconditionError, got %T", r)
		assert.Equal(t, "precondition violated in core.ReparentTo (element=*widgets.Leaf(c)): parent does not implement Container", pe.Error())
		assert.Same(t, plain, child.Parent())
		assert.Empty(t, target.Children())
	}()
	_ = child.ReparentTo(target)
	t.Fatal("ReparentTo did not panic")
}

func TestReparentTo_ParentDoesNotHoldChildPanics(t *testing.T) {
	box := newParent(t)
	child := widgets.NewLeaf("stray")
	// Linked without being stored: the parent cannot remove it.
	require.NoError(t, core.Adopt(box, child))

	assert.PanicsWithValue(t, &errors.PreconditionError{
		Op:      "core.Detach",
		Element: "*widgets.Leaf(stray)",
		Reason:  "parent does not hold element: widgets.RemoveChild [usage] element=*widgets.Leaf(stray): element is not a child of this container",
	}, child.Detach)
}

func TestAdopt(t *testing.T) {
	a := newParent(t)
	b := widgets.NewBox("b")
	child := widgets.NewLeaf("child")
	require.NoError(t, a.AddChild(child))

	err := b.AddChild(child)
	assert.True(t, stderrors.Is(err, errors.ErrAlreadyAttached))
	assert.Empty(t, b.Children(), "refused child is not stored")

	err = core.Adopt(child, a)
	assert.True(t, stderrors.Is(err, errors.ErrCycle))
}

func TestRemoveChild(t *testing.T) {
	parent := newParent(t)
	child := addLeaf(t, parent, "child", nil)
	stranger := widgets.NewLeaf("stranger")

	err := parent.RemoveChild(stranger)
	assert.True(t, stderrors.Is(err, errors.ErrNotChild))

	require.NoError(t, parent.RemoveChild(child))
	assert.Nil(t, child.Parent())
	assert.Empty(t, parent.Children())
	assert.Equal(t, 0, child.Depth())
}

func TestDetach(t *testing.T) {
	parent := newParent(t)
	child := addLeaf(t, parent, "child", nil)
	child.Detach()
	assert.Nil(t, child.Parent())
	assert.Empty(t, parent.Children())

	child.Detach()
	assert.Nil(t, child.Parent(), "detaching an orphan does nothing")
}

func TestSetZOffset(t *testing.T) {
	parent := newParent(t)
	a := addLeaf(t, parent, "a", nil)
	b := addLeaf(t, parent, "b", nil)
	c := addLeaf(t, parent, "c", nil)

	a.SetZOffset(5)
	assert.Equal(t, []core.Element{b, c, a}, parent.Children())
	assert.Equal(t, 5, a.ZOffset())

	c.SetZOffset(-1)
	assert.Equal(t, []core.Element{c, b, a}, parent.Children())

	orphan := widgets.NewLeaf("orphan")
	orphan.SetZOffset(3)
	assert.Equal(t, 3, orphan.ZOffset())

	d := widgets.NewLeaf("d")
	require.NoError(t, parent.AddChild(d))
	assert.Equal(t, []core.Element{c, b, d, a}, parent.Children(), "equal z keeps insertion order")
}

func TestSetZOffset_NonContainerParentPanics(t *testing.T) {
	plain := newPlainParent()
	child := widgets.NewLeaf("z")
	require.NoError(t, core.Adopt(plain, child))

	assert.PanicsWithValue(t, &errors.PreconditionError{
		Op:      "core.SetZOffset",
		Element: "*widgets.Leaf(z)",
		Reason:  "parent does not implement Container",
	}, func() { child.SetZOffset(1) })
}

func TestDepthAndRootPropagation(t *testing.T) {
	root := core.NewRoot()
	top := newParent(t)
	require.NoError(t, root.Mount(top))

	mid := widgets.NewBox("mid")
	leaf := addLeaf(t, mid, "leaf", nil)
	assert.Nil(t, leaf.Root())
	assert.Equal(t, 1, leaf.Depth())

	require.NoError(t, top.AddChild(mid))
	assert.Same(t, root, mid.Root())
	assert.Same(t, root, leaf.Root())
	assert.Equal(t, 1, mid.Depth())
	assert.Equal(t, 2, leaf.Depth())

	require.NoError(t, top.RemoveChild(mid))
	assert.Nil(t, mid.Root())
	assert.Nil(t, leaf.Root())
	assert.Equal(t, 0, mid.Depth())
	assert.Equal(t, 1, leaf.Depth())
}

func TestReparentTo_MountedTopLeavesOldRoot(t *testing.T) {
	rootA, rootB := core.NewRoot(), core.NewRoot()
	topA, topB := newParent(t), newParent(t)
	require.NoError(t, rootA.Mount(topA))
	require.NoError(t, rootB.Mount(topB))
	leaf := addLeaf(t, topA, "leaf", func(l *widgets.Leaf) { l.SetSolid(true) })
	require.True(t, rootA.IsEventObject(leaf))

	require.NoError(t, topA.ReparentTo(topB))

	assert.Nil(t, rootA.Top())
	assert.False(t, rootA.IsEventObject(leaf))
	assert.True(t, rootB.IsEventObject(leaf))
	assert.Same(t, rootB, leaf.Root())
	assert.Equal(t, 2, leaf.Depth())

	rootA.Unmount()
	assert.Same(t, topB, topA.Parent())
	assert.Same(t, rootB, topA.Root())
	assert.Same(t, rootB, leaf.Root())
}
