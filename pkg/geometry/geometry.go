// Package geometry provides the value types used by layout: points, sizes,
// four-sided insets and axis-aligned rectangles.
package geometry

import "math"

// UnboundedExtent is the width and height of the clip rectangle given to
// elements that are not constrained by any ancestor.
const UnboundedExtent = 1 << 24

// Offset represents a 2D point or vector in pixel coordinates.
type Offset struct {
	X float64
	Y float64
}

// Add returns the component-wise sum of o and other.
func (o Offset) Add(other Offset) Offset {
	return Offset{X: o.X + other.X, Y: o.Y + other.Y}
}

// Ceil rounds both components up to the nearest integer.
func (o Offset) Ceil() Offset {
	return Offset{X: math.Ceil(o.X), Y: math.Ceil(o.Y)}
}

// Size represents width and height dimensions in pixels.
type Size struct {
	Width  float64
	Height float64
}

// Bounds is a four-sided inset used for margin, padding and clip insets.
// Values are expected to be non-negative but this is not enforced.
type Bounds struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// UniformBounds returns Bounds with the same inset on every side.
func UniformBounds(v float64) Bounds {
	return Bounds{Top: v, Right: v, Bottom: v, Left: v}
}

// Horizontal returns the sum of the left and right insets.
func (b Bounds) Horizontal() float64 {
	return b.Left + b.Right
}

// Vertical returns the sum of the top and bottom insets.
func (b Bounds) Vertical() float64 {
	return b.Top + b.Bottom
}

// Rect is an axis-aligned rectangle described by origin and extent.
// Two rects are equal when all four fields are equal.
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// RectFromOffsetSize builds a Rect anchored at o with extent s.
func RectFromOffsetSize(o Offset, s Size) Rect {
	return Rect{X: o.X, Y: o.Y, W: s.Width, H: s.Height}
}

// Unbounded returns the rectangle used when no clipping applies.
func Unbounded() Rect {
	return Rect{W: UnboundedExtent, H: UnboundedExtent}
}

// Right returns the far horizontal edge.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom returns the far vertical edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// Origin returns the top-left corner.
func (r Rect) Origin() Offset {
	return Offset{X: r.X, Y: r.Y}
}

// Size returns the extent of the rectangle.
func (r Rect) Size() Size {
	return Size{Width: r.W, Height: r.H}
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Offset {
	return Offset{X: r.X + r.W*0.5, Y: r.Y + r.H*0.5}
}

// IsEmpty reports whether the rectangle has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.W <= 0 || r.H <= 0
}

// Contains reports whether p lies inside r. The near edges are inclusive and
// the far edges exclusive, so adjacent rects never both contain a point.
func (r Rect) Contains(p Offset) bool {
	return p.X >= r.X && p.Y >= r.Y && p.X < r.Right() && p.Y < r.Bottom()
}

// Inset shrinks the rectangle by b: left and top move the near edges in,
// right and bottom move the far edges in. The result is not clamped.
func (r Rect) Inset(b Bounds) Rect {
	return Rect{
		X: r.X + b.Left,
		Y: r.Y + b.Top,
		W: r.W - b.Left - b.Right,
		H: r.H - b.Top - b.Bottom,
	}
}

// Clamp returns r with negative width or height replaced by zero.
func (r Rect) Clamp() Rect {
	r.W = math.Max(0, r.W)
	r.H = math.Max(0, r.H)
	return r
}

// Intersect returns the overlap of r and other. The origin is the
// component-wise max of the near edges; width and height are the distance to
// the nearer far edge, clamped to zero when the rects do not overlap.
func (r Rect) Intersect(other Rect) Rect {
	x := math.Max(r.X, other.X)
	y := math.Max(r.Y, other.Y)
	return Rect{
		X: x,
		Y: y,
		W: math.Max(0, math.Min(r.Right(), other.Right())-x),
		H: math.Max(0, math.Min(r.Bottom(), other.Bottom())-y),
	}
}

// Translate returns a new rect offset by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}
