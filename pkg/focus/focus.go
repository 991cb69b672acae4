// Package focus tracks the single focused node of a tree and picks the next
// node for linear or directional focus traversal.
package focus

import (
	"math"

	"github.com/go-drift/anchor/pkg/geometry"
)

// Node is a focusable participant.
type Node interface {
	// FocusRect returns the on-screen geometry used for directional traversal.
	FocusRect() geometry.Rect
	// CanRequestFocus reports whether the node currently accepts focus.
	CanRequestFocus() bool
}

// TraversalDirection indicates the focus traversal direction.
type TraversalDirection int

const (
	// TraversalDirectionUp moves focus upward.
	TraversalDirectionUp TraversalDirection = iota

	// TraversalDirectionDown moves focus downward.
	TraversalDirectionDown

	// TraversalDirectionLeft moves focus leftward.
	TraversalDirectionLeft

	// TraversalDirectionRight moves focus rightward.
	TraversalDirectionRight
)

// Manager holds a non-owning reference to the focused node.
// Setting a new primary replaces the old one unconditionally.
type Manager struct {
	primary Node
}

// Primary returns the focused node, or nil.
func (m *Manager) Primary() Node {
	return m.primary
}

// SetPrimary makes node the focused node. Nil clears focus.
func (m *Manager) SetPrimary(node Node) {
	m.primary = node
}

// Release clears focus if node holds it and reports whether it did.
func (m *Manager) Release(node Node) bool {
	if m.primary == nil || m.primary != node {
		return false
	}
	m.primary = nil
	return true
}

// Move focuses the candidate delta positions away from the current primary,
// wrapping around and skipping nodes that refuse focus. Candidates are
// expected in traversal order.
func (m *Manager) Move(candidates []Node, delta int) bool {
	count := len(candidates)
	if count == 0 {
		return false
	}

	current := -1
	for i, c := range candidates {
		if c == m.primary {
			current = i
			break
		}
	}
	if current < 0 && delta < 0 {
		current = count
	}

	for step := 1; step <= count; step++ {
		candidate := candidates[wrapIndex(current+delta*step, count)]
		if candidate.CanRequestFocus() {
			m.primary = candidate
			return true
		}
	}
	return false
}

// MoveInDirection focuses the best candidate in the given direction from the
// current primary. Without a usable current geometry, or when nothing lies in
// that direction, it falls back to linear traversal.
func (m *Manager) MoveInDirection(candidates []Node, direction TraversalDirection) bool {
	current := m.primary
	if current == nil {
		return m.Move(candidates, 1)
	}

	currentRect := current.FocusRect()
	if currentRect.IsEmpty() {
		return m.Move(candidates, linearDelta(direction))
	}

	var best Node
	bestScore := math.MaxFloat64
	for _, child := range candidates {
		if child == current || !child.CanRequestFocus() {
			continue
		}
		childRect := child.FocusRect()
		if childRect.IsEmpty() || !isInDirection(currentRect, childRect, direction) {
			continue
		}
		if score := directionalScore(currentRect, childRect, direction); score < bestScore {
			bestScore = score
			best = child
		}
	}

	if best == nil {
		return m.Move(candidates, linearDelta(direction))
	}
	m.primary = best
	return true
}

// linearDelta returns +1 or -1 for linear focus traversal based on direction.
func linearDelta(direction TraversalDirection) int {
	if direction == TraversalDirectionUp || direction == TraversalDirectionLeft {
		return -1
	}
	return 1
}

// isInDirection checks if target rect is in the specified direction from source.
func isInDirection(source, target geometry.Rect, direction TraversalDirection) bool {
	s := source.Center()
	t := target.Center()

	switch direction {
	case TraversalDirectionUp:
		return t.Y < s.Y
	case TraversalDirectionDown:
		return t.Y > s.Y
	case TraversalDirectionLeft:
		return t.X < s.X
	case TraversalDirectionRight:
		return t.X > s.X
	}
	return false
}

// directionalScore rates a target for directional focus; lower is better.
// Cross-axis distance weighs double so aligned targets win.
func directionalScore(source, target geometry.Rect, direction TraversalDirection) float64 {
	s := source.Center()
	t := target.Center()

	var primaryDist, crossDist float64
	switch direction {
	case TraversalDirectionUp, TraversalDirectionDown:
		primaryDist = math.Abs(t.Y - s.Y)
		crossDist = math.Abs(t.X - s.X)
	case TraversalDirectionLeft, TraversalDirectionRight:
		primaryDist = math.Abs(t.X - s.X)
		crossDist = math.Abs(t.Y - s.Y)
	}
	return primaryDist + crossDist*2
}

// wrapIndex wraps an index to stay within [0, count).
func wrapIndex(index, count int) int {
	index = index % count
	if index < 0 {
		index += count
	}
	return index
}
