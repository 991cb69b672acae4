package core

import "github.com/go-drift/anchor/pkg/geometry"

// RecomputePosition resolves the element's relative and absolute position and
// its absolute clip rectangle from its own inputs and its parent's resolved
// geometry. The parent must already be up to date.
//
// After the geometry is final OnBoundsChanged is called, then, if the element
// has a parent, emits changed events and its absolute bounds differ from the
// last recorded bounds, the parent's OnChildChanged is called once.
//
// A call made while the element is already recomputing is ignored.
func (e *ElementBase) RecomputePosition() {
	if e.inUpdate {
		log().Debug("recompute skipped: update in progress", "element", e.String())
		return
	}
	e.inUpdate = true
	defer func() { e.inUpdate = false }()
	e.needsLayout = false

	var parent *ElementBase
	if e.parent != nil {
		parent = e.parent.Base()
	}

	rel, bias := e.resolveAnchor(parent)
	if !e.noSnap {
		rel = rel.Ceil()
	}
	e.relPos = rel
	e.absPos = rel.Add(bias)
	if parent != nil {
		e.absPos = e.absPos.Add(parent.absPos)
	}
	e.absClip = e.resolveClip(parent)

	e.element().OnBoundsChanged()

	if e.parent == nil || e.quiet {
		return
	}
	bounds := e.AbsoluteBounds()
	if e.boundsRecorded && bounds == e.lastBounds {
		return
	}
	e.lastBounds = bounds
	e.boundsRecorded = true
	e.parent.OnChildChanged()
}

// resolveAnchor returns the anchor-resolved relative position and the
// margin/padding bias that is added after snapping.
func (e *ElementBase) resolveAnchor(parent *ElementBase) (rel, bias geometry.Offset) {
	if parent == nil {
		return e.offset, geometry.Offset{}
	}
	rel.X, bias.X = resolveAxis(e.placementX, e.offset.X, e.size.Width, parent.size.Width,
		e.margin.Left, e.margin.Right, parent.padding.Left, parent.padding.Right)
	rel.Y, bias.Y = resolveAxis(e.placementY, e.offset.Y, e.size.Height, parent.size.Height,
		e.margin.Top, e.margin.Bottom, parent.padding.Top, parent.padding.Bottom)
	return rel, bias
}

func resolveAxis(mode Placement, offset, size, parentSize, marginNear, marginFar, padNear, padFar float64) (rel, bias float64) {
	switch mode {
	case PlacementEnd:
		return parentSize - offset - size, -(marginFar + padFar)
	case PlacementCenter:
		return (parentSize - size) / 2, (marginNear - marginFar) + (padNear - padFar)
	default:
		return offset, marginNear + padNear
	}
}

// resolveClip computes the absolute clip rectangle once absPos is known.
func (e *ElementBase) resolveClip(parent *ElementBase) geometry.Rect {
	candidate := e.AbsoluteBounds()
	if e.clip != nil {
		candidate = candidate.Inset(*e.clip)
	}

	// A topmost layer under a non-topmost parent escapes ancestor clipping.
	// Nested topmost layers still clip against each other.
	ignoreAncestors := parent != nil && e.topmost && !parent.topmost

	if parent != nil && !ignoreAncestors {
		if e.clip == nil {
			return parent.absClip
		}
		return candidate.Intersect(parent.absClip)
	}
	if e.clip == nil {
		return geometry.Unbounded()
	}
	return candidate.Clamp()
}

// RecomputeTree recomputes el and then every descendant in pre-order, so
// each element sees its parent's fresh geometry.
func RecomputeTree(el Element) {
	el.Base().RecomputePosition()
	if v, ok := el.(ChildVisitor); ok {
		v.VisitChildren(func(child Element) bool {
			RecomputeTree(child)
			return true
		})
	}
}
