package model

import "math"

// Point represents a 2D point.
type Point struct {
	X, Y float64
}

// BBox represents an axis-aligned bounding box.
type BBox struct {
	X      float64 // Left
	Y      float64 // Bottom (PDF coordinate system)
	Width  float64
	Height float64
}

// NewBBox creates a bounding box from an origin and dimensions.
func NewBBox(x, y, width, height float64) BBox {
	return BBox{X: x, Y: y, Width: width, Height: height}
}

// NewBBoxFromPoints creates a normalized bounding box from two corner points.
// The corners may be given in any order.
func NewBBoxFromPoints(p1, p2 Point) BBox {
	x := math.Min(p1.X, p2.X)
	y := math.Min(p1.Y, p2.Y)
	width := math.Abs(p2.X - p1.X)
	height := math.Abs(p2.Y - p1.Y)
	return BBox{X: x, Y: y, Width: width, Height: height}
}

// Left returns the left edge X coordinate.
func (b BBox) Left() float64 {
	return b.X
}

// Right returns the right edge X coordinate.
func (b BBox) Right() float64 {
	return b.X + b.Width
}

// Bottom returns the bottom edge Y coordinate.
func (b BBox) Bottom() float64 {
	return b.Y
}

// Top returns the top edge Y coordinate.
func (b BBox) Top() float64 {
	return b.Y + b.Height
}

// Union returns the union of two bounding boxes.
func (b BBox) Union(other BBox) BBox {
	x := math.Min(b.Left(), other.Left())
	y := math.Min(b.Bottom(), other.Bottom())
	right := math.Max(b.Right(), other.Right())
	top := math.Max(b.Top(), other.Top())

	return BBox{
		X:      x,
		Y:      y,
		Width:  right - x,
		Height: top - y,
	}
}

// IsEmpty returns true if the bounding box has zero area.
func (b BBox) IsEmpty() bool {
	return b.Width <= 0 || b.Height <= 0
}

// BBoxFromPoints calculates the bounding box of a set of points.
func BBoxFromPoints(points []Point) BBox {
	if len(points) == 0 {
		return BBox{}
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y

	for _, p := range points[1:] {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	return BBox{
		X:      minX,
		Y:      minY,
		Width:  maxX - minX,
		Height: maxY - minY,
	}
}

// CubicBounds returns the bounding box of the cubic Bézier segment with
// endpoints p0, p3 and control points p1, p2. Interior extrema are found by
// solving the derivative's quadratic per axis, so control points that pull
// the curve outside the endpoint hull are accounted for.
func CubicBounds(p0, p1, p2, p3 Point) BBox {
	minX, maxX := math.Min(p0.X, p3.X), math.Max(p0.X, p3.X)
	minY, maxY := math.Min(p0.Y, p3.Y), math.Max(p0.Y, p3.Y)

	for _, t := range cubicExtrema(p0.X, p1.X, p2.X, p3.X) {
		x := cubicAt(p0.X, p1.X, p2.X, p3.X, t)
		minX = math.Min(minX, x)
		maxX = math.Max(maxX, x)
	}
	for _, t := range cubicExtrema(p0.Y, p1.Y, p2.Y, p3.Y) {
		y := cubicAt(p0.Y, p1.Y, p2.Y, p3.Y, t)
		minY = math.Min(minY, y)
		maxY = math.Max(maxY, y)
	}

	return BBox{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// cubicAt evaluates the cubic Bézier polynomial at parameter t.
func cubicAt(c0, c1, c2, c3, t float64) float64 {
	u := 1 - t
	return u*u*u*c0 + 3*u*u*t*c1 + 3*u*t*t*c2 + t*t*t*c3
}

// cubicExtrema returns the parameters in (0, 1) where the cubic's derivative
// vanishes. The derivative is a quadratic in t; a degenerate leading
// coefficient reduces it to a linear equation.
func cubicExtrema(c0, c1, c2, c3 float64) []float64 {
	a := 3 * (-c0 + 3*c1 - 3*c2 + c3)
	b := 6 * (c0 - 2*c1 + c2)
	c := 3 * (c1 - c0)

	var roots []float64
	if math.Abs(a) < 1e-12 {
		if math.Abs(b) >= 1e-12 {
			roots = append(roots, -c/b)
		}
	} else {
		disc := b*b - 4*a*c
		if disc >= 0 {
			sq := math.Sqrt(disc)
			roots = append(roots, (-b+sq)/(2*a), (-b-sq)/(2*a))
		}
	}

	inRange := roots[:0]
	for _, t := range roots {
		if t > 0 && t < 1 {
			inRange = append(inRange, t)
		}
	}
	return inRange
}
