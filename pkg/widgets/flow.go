package widgets

import (
	"fmt"
	"slices"

	"github.com/go-drift/anchor/pkg/core"
)

// Axis is the main axis of a Flow.
type Axis int

const (
	// Vertical stacks children top to bottom.
	Vertical Axis = iota
	// Horizontal stacks children left to right.
	Horizontal
)

// String returns a human-readable representation of the axis.
func (a Axis) String() string {
	switch a {
	case Vertical:
		return "vertical"
	case Horizontal:
		return "horizontal"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// Flow stacks its visible children along one axis in draw order.
//
// A child's main-axis placement is forced to start and its main-axis offset
// is owned by the Flow; the cross axis keeps the child's own placement and
// offset. Whenever a child's bounds change the siblings are stacked again and
// a child_changed event is triggered on the Flow.
type Flow struct {
	core.ElementBase
	axis     Axis
	spacing  float64
	children []core.Element
}

// NewFlow creates an empty Flow.
func NewFlow(name string, axis Axis, spacing float64) *Flow {
	f := &Flow{axis: axis, spacing: spacing}
	f.SetSelf(f)
	f.SetName(name)
	return f
}

// Axis returns the main axis.
func (f *Flow) Axis() Axis {
	return f.axis
}

// Spacing returns the gap between consecutive children.
func (f *Flow) Spacing() float64 {
	return f.spacing
}

// SetSpacing changes the gap between children and restacks them.
func (f *Flow) SetSpacing(spacing float64) {
	if f.spacing == spacing {
		return
	}
	f.spacing = spacing
	f.restack()
}

// Children returns the children in draw order.
func (f *Flow) Children() []core.Element {
	return slices.Clone(f.children)
}

// VisitChildren calls visitor for each child in draw order.
func (f *Flow) VisitChildren(visitor func(core.Element) bool) {
	for _, child := range slices.Clone(f.children) {
		if !visitor(child) {
			return
		}
	}
}

// AddChild appends child to the flow.
func (f *Flow) AddChild(child core.Element) error {
	if err := addChild(f.Self(), &f.children, child); err != nil {
		return err
	}
	f.restack()
	core.RecomputeTree(child)
	return nil
}

// RemoveChild unlinks child and closes the gap it leaves.
func (f *Flow) RemoveChild(child core.Element) error {
	if err := removeChild(&f.children, child); err != nil {
		return err
	}
	f.restack()
	return nil
}

// ChangeChildZOffset reorders child, which also changes its slot.
func (f *Flow) ChangeChildZOffset(child core.Element, z int) {
	changeZOffset(f.Self(), f.children, child, z)
	f.restack()
}

// OnChildChanged restacks the siblings and then triggers child_changed.
func (f *Flow) OnChildChanged() {
	f.restack()
	f.ElementBase.OnChildChanged()
}

// restack assigns main-axis offsets. Children of an unrooted flow are
// recomputed immediately; rooted ones are picked up by the pipeline.
func (f *Flow) restack() {
	cursor := 0.0
	for _, child := range f.children {
		b := child.Base()
		if !b.IsVisible() {
			continue
		}
		px, py := b.Placement()
		off := b.Offset()
		size := b.Size()
		margin := b.Margin()
		if f.axis == Vertical {
			b.SetPlacement(px, core.PlacementStart)
			off.Y = cursor
			cursor += size.Height + margin.Vertical() + f.spacing
		} else {
			b.SetPlacement(core.PlacementStart, py)
			off.X = cursor
			cursor += size.Width + margin.Horizontal() + f.spacing
		}
		b.SetOffset(off)
		if b.Root() == nil && b.NeedsLayout() && !b.IsUpdating() {
			core.RecomputeTree(child)
		}
	}
}

// ContentExtent returns the main-axis length occupied by visible children,
// including spacing and margins.
func (f *Flow) ContentExtent() float64 {
	total := 0.0
	n := 0
	for _, child := range f.children {
		b := child.Base()
		if !b.IsVisible() {
			continue
		}
		if f.axis == Vertical {
			total += b.Size().Height + b.Margin().Vertical()
		} else {
			total += b.Size().Width + b.Margin().Horizontal()
		}
		n++
	}
	if n > 1 {
		total += f.spacing * float64(n-1)
	}
	return total
}

var (
	_ core.Container = (*Box)(nil)
	_ core.Container = (*Flow)(nil)
)
