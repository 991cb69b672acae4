// Package core provides the retained element tree: anchor-based placement,
// clip resolution, parent/child membership, focus and named event dispatch.
//
// # Elements
//
// Every node embeds ElementBase and registers itself with SetSelf so that the
// override points (OnBoundsChanged, OnVisibilityChanged, OnChildChanged)
// dispatch to the concrete type:
//
//	type label struct {
//	    core.ElementBase
//	}
//
//	func newLabel() *label {
//	    l := &label{}
//	    l.SetSelf(l)
//	    return l
//	}
//
// An element only holds non-owning references to its parent and Root.
// Children are owned by whatever type implements the Container capability.
//
// # Layout
//
// RecomputePosition resolves one element against its parent's already
// resolved geometry, so parents must be recomputed before children.
// RecomputeTree walks a subtree in that order, and a Root batches dirty
// elements through a layout.PipelineOwner which sorts them by depth.
//
// Per axis, the relative position is the anchor-resolved offset:
//
//	Start:  offset
//	End:    parentSize - offset - size
//	Center: (parentSize - size) / 2
//
// It is rounded up to whole pixels unless snapping is disabled, and only then are the
// margin and parent padding bias and the parent's absolute position added.
//
// # Events
//
// Handlers are bound per event name and run synchronously in bind order.
// Solid elements attached below a Root are registered with it for pointer
// dispatch and focus traversal.
package core
