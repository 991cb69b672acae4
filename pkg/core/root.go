package core

import (
	"slices"

	"github.com/go-drift/anchor/pkg/errors"
	"github.com/go-drift/anchor/pkg/focus"
	"github.com/go-drift/anchor/pkg/geometry"
	"github.com/go-drift/anchor/pkg/layout"
)

// Root is the tree-wide context. It issues render indices, holds the focused
// element, tracks elements registered for event dispatch and batches layout.
// All references it holds into the tree are non-owning.
type Root struct {
	top             Element
	nextRenderIndex uint64
	focus           focus.Manager
	eventObjects    map[Element]uint64 // value is registration order
	nextEventSeq    uint64
	pipeline        layout.PipelineOwner
}

// NewRoot creates an empty Root.
func NewRoot() *Root {
	return &Root{eventObjects: make(map[Element]uint64)}
}

// Pipeline returns the layout pipeline of the tree.
func (r *Root) Pipeline() *layout.PipelineOwner {
	return &r.pipeline
}

// Top returns the mounted top-level element, or nil.
func (r *Root) Top() Element {
	return r.top
}

// Mount makes el the top-level element of the tree. el must not have a
// parent. Any previously mounted element is unmounted first.
func (r *Root) Mount(el Element) error {
	const op = "core.Root.Mount"
	b := el.Base()
	if b.parent != nil {
		err := errors.Usage(op, b.String(), errors.ErrAlreadyAttached)
		errors.Report(err)
		return err
	}
	if other := b.root; other != nil && other.top == el {
		other.Unmount()
	}
	r.Unmount()
	r.top = el
	b.boundsRecorded = false
	b.needsLayout = true
	attachSubtree(el, r, 0)
	return nil
}

// Unmount detaches the top-level element from the root.
func (r *Root) Unmount() {
	if r.top == nil {
		return
	}
	detachSubtree(r.top, 0)
	r.top = nil
}

// NextRenderIndex issues the next render index. Indices are strictly
// increasing for the lifetime of the root and are never reused.
func (r *Root) NextRenderIndex() uint64 {
	r.nextRenderIndex++
	return r.nextRenderIndex
}

// Update flushes pending layout, parents first, and then assigns fresh render
// indices to the mounted tree in draw order.
func (r *Root) Update() {
	r.pipeline.FlushLayout()
	if r.top != nil {
		r.assignRenderIndices(r.top)
	}
}

func (r *Root) assignRenderIndices(el Element) {
	el.Base().renderIndex = r.NextRenderIndex()
	if v, ok := el.(ChildVisitor); ok {
		v.VisitChildren(func(child Element) bool {
			r.assignRenderIndices(child)
			return true
		})
	}
}

// RegisterEventObject adds el to the dispatch set. Elements normally call it
// through RegisterEvents.
func (r *Root) RegisterEventObject(el Element) {
	if _, ok := r.eventObjects[el]; ok {
		return
	}
	r.nextEventSeq++
	r.eventObjects[el] = r.nextEventSeq
}

// UnregisterEventObject removes el from the dispatch set.
func (r *Root) UnregisterEventObject(el Element) {
	delete(r.eventObjects, el)
}

// IsEventObject reports whether el is in the dispatch set.
func (r *Root) IsEventObject(el Element) bool {
	_, ok := r.eventObjects[el]
	return ok
}

// EventObjects returns the dispatch set ordered by render index, then by
// registration order.
func (r *Root) EventObjects() []Element {
	out := make([]Element, 0, len(r.eventObjects))
	for el := range r.eventObjects {
		out = append(out, el)
	}
	slices.SortFunc(out, func(a, b Element) int {
		ia, ib := a.Base().renderIndex, b.Base().renderIndex
		if ia != ib {
			if ia < ib {
				return -1
			}
			return 1
		}
		return int(r.eventObjects[a]) - int(r.eventObjects[b])
	})
	return out
}

// Focused returns the focused element, or nil.
func (r *Root) Focused() Element {
	if n := r.focus.Primary(); n != nil {
		return n.(Element)
	}
	return nil
}

// MoveFocus moves focus among the registered elements to the best candidate
// in the given direction, falling back to render order.
func (r *Root) MoveFocus(direction focus.TraversalDirection) bool {
	objects := r.EventObjects()
	nodes := make([]focus.Node, len(objects))
	for i, el := range objects {
		nodes[i] = el
	}
	return r.focus.MoveInDirection(nodes, direction)
}

// FocusNext moves focus to the next registered element in render order.
func (r *Root) FocusNext() bool {
	return r.moveLinear(1)
}

// FocusPrevious moves focus to the previous registered element in render
// order.
func (r *Root) FocusPrevious() bool {
	return r.moveLinear(-1)
}

func (r *Root) moveLinear(delta int) bool {
	objects := r.EventObjects()
	nodes := make([]focus.Node, len(objects))
	for i, el := range objects {
		nodes[i] = el
	}
	return r.focus.Move(nodes, delta)
}

// HitTest returns the registered, showing element with the highest render
// index whose visible bounds contain pos, or nil.
func (r *Root) HitTest(pos geometry.Offset) Element {
	var best Element
	var bestIndex uint64
	var bestSeq uint64
	for el, seq := range r.eventObjects {
		b := el.Base()
		if !b.IsShowing() || !b.VisibleBounds().Contains(pos) {
			continue
		}
		if best == nil || b.renderIndex > bestIndex || (b.renderIndex == bestIndex && seq > bestSeq) {
			best, bestIndex, bestSeq = el, b.renderIndex, seq
		}
	}
	return best
}

// DispatchPointer triggers name on the element under pos with pos as the
// event coordinates. It reports whether an element was hit and had the
// event bound.
func (r *Root) DispatchPointer(name EventName, message string, pos geometry.Offset) bool {
	target := r.HitTest(pos)
	if target == nil {
		return false
	}
	return target.Base().TriggerEvent(name, message, pos)
}

// DispatchFocused triggers name on the focused element.
func (r *Root) DispatchFocused(name EventName, message string) bool {
	target := r.Focused()
	if target == nil {
		return false
	}
	return target.Base().TriggerEvent(name, message, geometry.Offset{})
}
