// Package layout schedules position recomputation for dirty nodes and
// flushes it parents-first.
package layout

import "slices"

// Node is anything the pipeline can lay out.
type Node interface {
	// Depth returns the tree depth (root = 0).
	Depth() int
	// NeedsLayout reports whether the node is still dirty.
	NeedsLayout() bool
	// PerformLayout recomputes the node and its whole subtree and clears
	// the dirty flag of every node it visits.
	PerformLayout()
}

// PipelineOwner tracks nodes that need layout.
//
// Child geometry reads the parent's already-resolved position, size, padding
// and clip rectangle, so scheduled nodes are always processed in depth order.
// A parent's PerformLayout lays out its descendants as well, which clears any
// of them that were scheduled separately.
type PipelineOwner struct {
	dirtyLayout    []Node        // nodes needing layout, processed depth-first
	dirtyLayoutSet map[Node]bool // O(1) dedup check
	needsLayout    bool
	flushing       bool
}

// ScheduleLayout marks a node as needing layout.
func (p *PipelineOwner) ScheduleLayout(node Node) {
	if p.dirtyLayoutSet == nil {
		p.dirtyLayoutSet = make(map[Node]bool)
	}
	if p.dirtyLayoutSet[node] {
		return
	}
	p.dirtyLayoutSet[node] = true
	p.dirtyLayout = append(p.dirtyLayout, node)
	p.needsLayout = true
}

// NeedsLayout reports if any nodes need layout.
func (p *PipelineOwner) NeedsLayout() bool {
	return p.needsLayout
}

// Pending returns the number of scheduled nodes.
func (p *PipelineOwner) Pending() int {
	return len(p.dirtyLayout)
}

// FlushLayout lays out every scheduled node, parents first. Nodes scheduled
// while flushing (for example by a child_changed handler that moves
// siblings) are processed in a further batch before FlushLayout returns.
// A nested call made from inside a flush is a no-op.
func (p *PipelineOwner) FlushLayout() {
	if !p.needsLayout || p.flushing {
		return
	}
	p.flushing = true
	defer func() { p.flushing = false }()

	for len(p.dirtyLayout) > 0 {
		slices.SortStableFunc(p.dirtyLayout, func(a, b Node) int {
			return a.Depth() - b.Depth()
		})

		// Take current batch and clear for next iteration
		dirty := p.dirtyLayout
		p.dirtyLayout = nil
		p.dirtyLayoutSet = nil

		for _, node := range dirty {
			// A parent earlier in the batch may already have laid this node out.
			if node.NeedsLayout() {
				node.PerformLayout()
			}
		}
	}
	p.needsLayout = false
}

// Forget drops a node from the schedule, e.g. when it leaves the tree.
func (p *PipelineOwner) Forget(node Node) {
	if !p.dirtyLayoutSet[node] {
		return
	}
	delete(p.dirtyLayoutSet, node)
	p.dirtyLayout = slices.DeleteFunc(p.dirtyLayout, func(n Node) bool { return n == node })
	p.needsLayout = len(p.dirtyLayout) > 0
}
