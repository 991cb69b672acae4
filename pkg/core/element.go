package core

import (
	"fmt"

	"github.com/go-drift/anchor/pkg/focus"
	"github.com/go-drift/anchor/pkg/geometry"
	"github.com/go-drift/anchor/pkg/layout"
)

// UnassignedRenderIndex is the render index of an element that has not been
// visited by Root.Update yet. Issued indices start at 1.
const UnassignedRenderIndex uint64 = 0

// Element is a node of the layout tree. Concrete types embed ElementBase and
// may override the hook methods.
type Element interface {
	focus.Node
	layout.Node

	// Base returns the embedded ElementBase.
	Base() *ElementBase
	// OnBoundsChanged is called once per recomputation, after position and
	// clip are final and before the parent is notified.
	OnBoundsChanged()
	// OnVisibilityChanged is called when the visibility flag flips.
	OnVisibilityChanged()
	// OnChildChanged is called on a parent when a child's absolute bounds
	// changed during that child's recomputation.
	OnChildChanged()
}

// ElementBase carries the geometry inputs, resolved geometry, tree links and
// event handlers of an element. The zero value is a visible element anchored
// at the parent's start edges. It snaps to whole pixels and reports bounds
// changes to its parent.
type ElementBase struct {
	self Element
	name string

	// Geometry inputs.
	offset     geometry.Offset
	placementX Placement
	placementY Placement
	size       geometry.Size
	margin     geometry.Bounds
	padding    geometry.Bounds
	clip       *geometry.Bounds // nil inherits the parent clip
	hidden     bool
	topmost    bool
	solid      bool
	noSnap     bool
	quiet      bool // suppresses OnChildChanged on the parent
	zOffset    int

	// Resolved geometry.
	relPos         geometry.Offset
	absPos         geometry.Offset
	absClip        geometry.Rect
	lastBounds     geometry.Rect
	boundsRecorded bool
	renderIndex    uint64

	// Non-owning tree links.
	parent Element
	root   *Root
	depth  int

	handlers      map[EventName][]handlerEntry
	nextHandlerID HandlerID
	registered    bool

	needsLayout bool
	inUpdate    bool
}

// SetSelf registers the concrete element so hooks dispatch to it.
func (e *ElementBase) SetSelf(self Element) {
	e.self = self
	e.needsLayout = true
}

// element returns the concrete element, or e itself when none was registered.
func (e *ElementBase) element() Element {
	if e.self != nil {
		return e.self
	}
	return e
}

// Base returns e.
func (e *ElementBase) Base() *ElementBase {
	return e
}

// Self returns the concrete element registered via SetSelf, or e.
func (e *ElementBase) Self() Element {
	return e.element()
}

// OnBoundsChanged is a no-op by default.
func (e *ElementBase) OnBoundsChanged() {}

// OnVisibilityChanged is a no-op by default.
func (e *ElementBase) OnVisibilityChanged() {}

// OnChildChanged triggers a child_changed event on this element with an
// empty message and zero coordinates.
func (e *ElementBase) OnChildChanged() {
	e.TriggerEvent(EventChildChanged, "", geometry.Offset{})
}

// Name returns the diagnostic name of the element.
func (e *ElementBase) Name() string {
	return e.name
}

// SetName sets the diagnostic name of the element.
func (e *ElementBase) SetName(name string) {
	e.name = name
}

// String describes the element for logs and errors.
func (e *ElementBase) String() string {
	if e.name != "" {
		return fmt.Sprintf("%T(%s)", e.element(), e.name)
	}
	return fmt.Sprintf("%T", e.element())
}

// Parent returns the parent element, or nil.
func (e *ElementBase) Parent() Element {
	return e.parent
}

// Root returns the owning root, or nil when the element is not in a live tree.
func (e *ElementBase) Root() *Root {
	return e.root
}

// Depth returns the tree depth (root = 0).
func (e *ElementBase) Depth() int {
	return e.depth
}

// Offset returns the unresolved anchor offset.
func (e *ElementBase) Offset() geometry.Offset {
	return e.offset
}

// SetOffset sets the anchor offset.
func (e *ElementBase) SetOffset(offset geometry.Offset) {
	if e.offset == offset {
		return
	}
	e.offset = offset
	e.MarkNeedsLayout()
}

// Size returns the declared size.
func (e *ElementBase) Size() geometry.Size {
	return e.size
}

// SetSize sets the declared size.
func (e *ElementBase) SetSize(size geometry.Size) {
	if e.size == size {
		return
	}
	e.size = size
	e.MarkNeedsLayout()
}

// Placement returns the horizontal and vertical placement modes.
func (e *ElementBase) Placement() (x, y Placement) {
	return e.placementX, e.placementY
}

// SetPlacement sets the placement mode of each axis.
func (e *ElementBase) SetPlacement(x, y Placement) {
	if e.placementX == x && e.placementY == y {
		return
	}
	e.placementX, e.placementY = x, y
	e.MarkNeedsLayout()
}

// Margin returns the space applied outside the element.
func (e *ElementBase) Margin() geometry.Bounds {
	return e.margin
}

// SetMargin sets the margin.
func (e *ElementBase) SetMargin(margin geometry.Bounds) {
	if e.margin == margin {
		return
	}
	e.margin = margin
	e.MarkNeedsLayout()
}

// Padding returns the space reserved inside the element for its children.
func (e *ElementBase) Padding() geometry.Bounds {
	return e.padding
}

// SetPadding sets the padding. Children are laid out again.
func (e *ElementBase) SetPadding(padding geometry.Bounds) {
	if e.padding == padding {
		return
	}
	e.padding = padding
	e.MarkNeedsLayout()
}

// Clip returns the local clip insets and whether they are set.
func (e *ElementBase) Clip() (geometry.Bounds, bool) {
	if e.clip == nil {
		return geometry.Bounds{}, false
	}
	return *e.clip, true
}

// SetClip sets local clip insets. The element then clips to its own bounds
// shrunk by the insets, intersected with the inherited clip.
func (e *ElementBase) SetClip(insets geometry.Bounds) {
	if e.clip != nil && *e.clip == insets {
		return
	}
	e.clip = &insets
	e.MarkNeedsLayout()
}

// ClearClip removes the local clip insets so the parent clip is inherited.
func (e *ElementBase) ClearClip() {
	if e.clip == nil {
		return
	}
	e.clip = nil
	e.MarkNeedsLayout()
}

// IsVisible reports the element's own visibility flag.
func (e *ElementBase) IsVisible() bool {
	return !e.hidden
}

// SetVisible updates the visibility flag and calls OnVisibilityChanged on a
// transition.
func (e *ElementBase) SetVisible(visible bool) {
	if e.hidden == !visible {
		return
	}
	e.hidden = !visible
	e.element().OnVisibilityChanged()
}

// IsTopmost reports whether the element escapes its ancestors' clipping.
func (e *ElementBase) IsTopmost() bool {
	return e.topmost
}

// SetTopmost marks the element as a topmost layer.
func (e *ElementBase) SetTopmost(topmost bool) {
	if e.topmost == topmost {
		return
	}
	e.topmost = topmost
	e.MarkNeedsLayout()
}

// IsSolid reports whether the element takes part in input dispatch.
func (e *ElementBase) IsSolid() bool {
	return e.solid
}

// SetSolid marks the element as interactive and registers or unregisters it
// with its root accordingly.
func (e *ElementBase) SetSolid(solid bool) {
	if e.solid == solid {
		return
	}
	e.solid = solid
	if solid {
		e.RegisterEvents()
	} else {
		e.UnregisterEvents()
		e.ReleaseFocus()
	}
}

// SnapsToPixels reports whether the relative position is rounded up. It is
// on by default.
func (e *ElementBase) SnapsToPixels() bool {
	return !e.noSnap
}

// SetSnapToPixels toggles rounding the anchor-resolved position up to whole
// pixels.
func (e *ElementBase) SetSnapToPixels(snap bool) {
	if e.noSnap == !snap {
		return
	}
	e.noSnap = !snap
	e.MarkNeedsLayout()
}

// EmitsChanged reports whether bounds changes notify the parent.
func (e *ElementBase) EmitsChanged() bool {
	return !e.quiet
}

// SetEmitsChanged controls whether bounds changes notify the parent.
func (e *ElementBase) SetEmitsChanged(emits bool) {
	e.quiet = !emits
}

// RelativePosition returns the anchor-resolved position before margin,
// padding and ancestor translation.
func (e *ElementBase) RelativePosition() geometry.Offset {
	return e.relPos
}

// AbsolutePosition returns the resolved screen position.
func (e *ElementBase) AbsolutePosition() geometry.Offset {
	return e.absPos
}

// AbsoluteBounds returns the resolved screen rectangle, ignoring clipping.
func (e *ElementBase) AbsoluteBounds() geometry.Rect {
	return geometry.RectFromOffsetSize(e.absPos, e.size)
}

// AbsoluteClip returns the rectangle this element and its non-topmost
// descendants are clipped to.
func (e *ElementBase) AbsoluteClip() geometry.Rect {
	return e.absClip
}

// VisibleBounds returns the part of the element's bounds inside its clip.
func (e *ElementBase) VisibleBounds() geometry.Rect {
	return e.AbsoluteBounds().Intersect(e.absClip)
}

// RenderIndex returns the index assigned by the last Root.Update, or
// UnassignedRenderIndex.
func (e *ElementBase) RenderIndex() uint64 {
	return e.renderIndex
}

// ZOffset returns the element's z offset among its siblings.
func (e *ElementBase) ZOffset() int {
	return e.zOffset
}

// StoreZOffset records a z offset without asking the parent to reorder.
// Containers call it from ChangeChildZOffset.
func (e *ElementBase) StoreZOffset(z int) {
	e.zOffset = z
}

// IsShowing reports whether the element and all its ancestors are visible.
func (e *ElementBase) IsShowing() bool {
	for cur := e; cur != nil; {
		if cur.hidden {
			return false
		}
		if cur.parent == nil {
			return true
		}
		cur = cur.parent.Base()
	}
	return true
}

// IsUpdating reports whether RecomputePosition is running on the element.
func (e *ElementBase) IsUpdating() bool {
	return e.inUpdate
}

// NeedsLayout reports whether the element changed since its last
// recomputation.
func (e *ElementBase) NeedsLayout() bool {
	return e.needsLayout
}

// MarkNeedsLayout flags the element for recomputation and schedules it with
// the root's pipeline when the element is in a live tree.
func (e *ElementBase) MarkNeedsLayout() {
	e.needsLayout = true
	if e.root != nil {
		e.root.pipeline.ScheduleLayout(e.element())
	}
}

// PerformLayout recomputes the element and its subtree.
func (e *ElementBase) PerformLayout() {
	RecomputeTree(e.element())
}

// FocusRect returns the visible bounds used for directional focus traversal.
func (e *ElementBase) FocusRect() geometry.Rect {
	return e.VisibleBounds()
}

// CanRequestFocus reports whether the element can hold focus: it must be
// registered for input and showing.
func (e *ElementBase) CanRequestFocus() bool {
	return e.registered && e.IsShowing()
}

// RequestFocus makes this element the root's focused element, replacing any
// previous holder.
func (e *ElementBase) RequestFocus() {
	if e.root == nil {
		log().Debug("focus request ignored: element has no root", "element", e.String())
		return
	}
	e.root.focus.SetPrimary(e.element())
}

// Blur clears the root's focus, whichever element holds it.
func (e *ElementBase) Blur() {
	if e.root == nil {
		return
	}
	e.root.focus.SetPrimary(nil)
}

// ReleaseFocus clears the root's focus only if this element holds it.
func (e *ElementBase) ReleaseFocus() bool {
	if e.root == nil {
		return false
	}
	return e.root.focus.Release(e.element())
}

// HasFocus reports whether this element is the root's focused element.
func (e *ElementBase) HasFocus() bool {
	return e.root != nil && e.root.Focused() == e.element()
}
