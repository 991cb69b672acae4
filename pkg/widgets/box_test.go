package widgets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/anchor/pkg/core"
	"github.com/go-drift/anchor/pkg/errors"
	"github.com/go-drift/anchor/pkg/geometry"
)

func TestBox_DrawOrder(t *testing.T) {
	box := NewBox("box")
	a, b, c := NewLeaf("a"), NewLeaf("b"), NewLeaf("c")
	c.SetZOffset(-2)
	for _, el := range []core.Element{a, b, c} {
		require.NoError(t, box.AddChild(el))
	}

	assert.Equal(t, []core.Element{c, a, b}, box.Children())

	var visited []string
	box.VisitChildren(func(el core.Element) bool {
		visited = append(visited, el.Base().Name())
		return len(visited) < 2
	})
	assert.Equal(t, []string{"c", "a"}, visited)
}

func TestBox_ChildrenIsACopy(t *testing.T) {
	box := NewBox("box")
	leaf := NewLeaf("leaf")
	require.NoError(t, box.AddChild(leaf))

	children := box.Children()
	children[0] = nil
	assert.Same(t, leaf, box.Children()[0], "mutating the returned slice changed the box")
}

func TestBox_RemoveChildNotChild(t *testing.T) {
	box := NewBox("box")
	assert.ErrorIs(t, box.RemoveChild(NewLeaf("x")), errors.ErrNotChild)
}

func TestBox_ChangeChildZOffsetForeignChild(t *testing.T) {
	box := NewBox("box")
	other := NewBox("other")
	stray := NewLeaf("stray")
	require.NoError(t, other.AddChild(stray))

	var pe *errors.PreconditionError
	func() {
		defer func() { pe, _ = recover().(*errors.PreconditionError) }()
		box.ChangeChildZOffset(stray, 4)
	}()
	require.NotNil(t, pe, "expected a precondition panic")
	assert.Equal(t, "widgets.ChangeChildZOffset", pe.Op)
	assert.Equal(t, 0, stray.ZOffset())
}

// card embeds Box and overrides a hook; children must see the card as parent.
type card struct {
	Box
	changes int
}

func newCard() *card {
	c := &card{}
	c.SetSelf(c)
	c.SetName("card")
	return c
}

func (c *card) OnChildChanged() {
	c.changes++
	c.Box.OnChildChanged()
}

func TestBox_EmbeddedOverridesReceiveHooks(t *testing.T) {
	c := newCard()
	c.SetSize(geometry.Size{Width: 50, Height: 50})
	c.RecomputePosition()
	leaf := NewLeaf("leaf")
	leaf.SetSize(geometry.Size{Width: 5, Height: 5})
	require.NoError(t, c.AddChild(leaf))

	require.Same(t, c, leaf.Parent())
	assert.Equal(t, 1, c.changes)

	leaf.SetZOffset(3)
	assert.Equal(t, 3, leaf.ZOffset())
}
