package core

import "github.com/go-drift/anchor/pkg/errors"

// Container is the capability of elements that own children.
//
// AddChild must link the child with Adopt, store it, and recompute the new
// subtree. RemoveChild must drop the child from storage and call Release.
// ChangeChildZOffset must store the offset with StoreZOffset and reorder.
type Container interface {
	Element
	AddChild(child Element) error
	RemoveChild(child Element) error
	ChangeChildZOffset(child Element, z int)
}

// ChildVisitor is implemented by elements that have children.
type ChildVisitor interface {
	// VisitChildren calls visitor for each child in draw order until it
	// returns false.
	VisitChildren(visitor func(Element) bool)
}

// ReparentTo moves the element under newParent.
//
// newParent must implement Container; otherwise a usage error is reported and
// returned and the tree is left unchanged. Moving an element below itself is
// rejected the same way. If the new parent refuses the child after it was
// detached, the error is reported and the element stays detached. If the
// current parent does not implement Container,
// or does not actually hold the element, the tree is corrupt and ReparentTo
// panics with *errors.PreconditionError.
func (e *ElementBase) ReparentTo(newParent Element) error {
	const op = "core.ReparentTo"
	self := e.element()

	target, ok := newParent.(Container)
	if !ok {
		err := errors.Usage(op, e.String(), errors.ErrNotContainer)
		log().Debug("reparent rejected", "element", e.String(), "err", err)
		errors.Report(err)
		return err
	}
	if isAncestorOrSelf(self, newParent) {
		err := errors.Usage(op, e.String(), errors.ErrCycle)
		errors.Report(err)
		return err
	}

	e.detach(op)
	if err := target.AddChild(self); err != nil {
		errors.Report(errors.Usage(op, e.String(), err))
		return err
	}
	return nil
}

// Detach removes the element from its current parent, if any.
func (e *ElementBase) Detach() {
	e.detach("core.Detach")
}

func (e *ElementBase) detach(op string) {
	if e.parent == nil {
		return
	}
	current, ok := e.parent.(Container)
	if !ok {
		errors.Precondition(op, e.String(), "parent does not implement Container")
	}
	if err := current.RemoveChild(e.element()); err != nil {
		errors.Precondition(op, e.String(), "parent does not hold element: "+err.Error())
	}
}

// SetZOffset changes the element's order among its siblings. With a parent
// the parent container performs the reordering; without one the value is only
// stored.
func (e *ElementBase) SetZOffset(z int) {
	if e.parent == nil {
		e.zOffset = z
		return
	}
	c, ok := e.parent.(Container)
	if !ok {
		errors.Precondition("core.SetZOffset", e.String(), "parent does not implement Container")
	}
	c.ChangeChildZOffset(e.element(), z)
}

// Adopt links child below parent: it sets the parent back-reference, hands
// down the parent's root and depth and registers solid elements for events.
// A child mounted as the top element of a Root is unmounted from it first.
// It fails with a usage error when the child already has a parent or when
// the link would create a cycle.
func Adopt(parent, child Element) error {
	const op = "core.Adopt"
	cb := child.Base()
	if cb.parent != nil {
		return errors.Usage(op, cb.String(), errors.ErrAlreadyAttached)
	}
	if isAncestorOrSelf(child, parent) {
		return errors.Usage(op, cb.String(), errors.ErrCycle)
	}

	// A mounted top element leaves its old root before joining the new tree.
	if old := cb.root; old != nil && old.top == child {
		old.Unmount()
	}

	pb := parent.Base()
	cb.parent = parent
	cb.boundsRecorded = false
	attachSubtree(child, pb.root, pb.depth+1)
	return nil
}

// Release unlinks child from its parent. It unregisters the subtree from
// event dispatch, drops focus held inside it and clears root references.
func Release(child Element) {
	cb := child.Base()
	detachSubtree(child, 0)
	cb.parent = nil
	cb.boundsRecorded = false
}

func attachSubtree(el Element, root *Root, depth int) {
	b := el.Base()
	b.root = root
	b.depth = depth
	b.RegisterEvents()
	if b.needsLayout && root != nil {
		root.pipeline.ScheduleLayout(el)
	}
	if v, ok := el.(ChildVisitor); ok {
		v.VisitChildren(func(child Element) bool {
			attachSubtree(child, root, depth+1)
			return true
		})
	}
}

func detachSubtree(el Element, depth int) {
	b := el.Base()
	if v, ok := el.(ChildVisitor); ok {
		v.VisitChildren(func(child Element) bool {
			detachSubtree(child, depth+1)
			return true
		})
	}
	b.UnregisterEvents()
	if root := b.root; root != nil {
		root.focus.Release(el)
		root.pipeline.Forget(el)
	}
	b.root = nil
	b.depth = depth
}

// isAncestorOrSelf reports whether target is candidate or lies inside
// candidate's subtree.
func isAncestorOrSelf(candidate, target Element) bool {
	for cur := target; cur != nil; cur = cur.Base().parent {
		if cur == candidate {
			return true
		}
	}
	return false
}
