package widgets

import (
	"slices"

	"github.com/go-drift/anchor/pkg/core"
	"github.com/go-drift/anchor/pkg/errors"
)

// Box is a container whose children anchor themselves freely inside it.
//
// Children are drawn in ascending z offset; children with equal z offsets
// keep insertion order, so the last added is on top.
type Box struct {
	core.ElementBase
	children []core.Element
}

// NewBox creates an empty Box.
func NewBox(name string) *Box {
	b := &Box{}
	b.SetSelf(b)
	b.SetName(name)
	return b
}

// Children returns the children in draw order.
func (b *Box) Children() []core.Element {
	return slices.Clone(b.children)
}

// VisitChildren calls visitor for each child in draw order.
func (b *Box) VisitChildren(visitor func(core.Element) bool) {
	for _, child := range slices.Clone(b.children) {
		if !visitor(child) {
			return
		}
	}
}

// AddChild links child below the box and lays out the new subtree.
func (b *Box) AddChild(child core.Element) error {
	if err := addChild(b.Self(), &b.children, child); err != nil {
		return err
	}
	core.RecomputeTree(child)
	return nil
}

// RemoveChild unlinks child from the box.
func (b *Box) RemoveChild(child core.Element) error {
	return removeChild(&b.children, child)
}

// ChangeChildZOffset moves child within the draw order.
func (b *Box) ChangeChildZOffset(child core.Element, z int) {
	changeZOffset(b.Self(), b.children, child, z)
}

func addChild(parent core.Element, children *[]core.Element, child core.Element) error {
	if err := core.Adopt(parent, child); err != nil {
		return err
	}
	*children = append(*children, child)
	sortByZ(*children)
	return nil
}

func removeChild(children *[]core.Element, child core.Element) error {
	i := slices.Index(*children, child)
	if i < 0 {
		return errors.Usage("widgets.RemoveChild", child.Base().String(), errors.ErrNotChild)
	}
	*children = slices.Delete(*children, i, i+1)
	core.Release(child)
	return nil
}

func changeZOffset(parent core.Element, children []core.Element, child core.Element, z int) {
	if child.Base().Parent() != parent {
		errors.Precondition("widgets.ChangeChildZOffset", child.Base().String(), "element is not a child of this container")
	}
	child.Base().StoreZOffset(z)
	sortByZ(children)
	child.Base().MarkNeedsLayout()
}

func sortByZ(children []core.Element) {
	slices.SortStableFunc(children, func(a, b core.Element) int {
		return a.Base().ZOffset() - b.Base().ZOffset()
	})
}
