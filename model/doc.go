// Package model provides the geometric primitives shared by the renderer.
//
// The central type is Matrix, a six-element row-major affine transform in the
// PDF convention [a b c d e f], mapping (x, y) to (a·x + c·y + e,
// b·x + d·y + f). Matrices compose by right-composition: m.Multiply(other)
// applies m first, then other, which matches how a content stream's cm
// operator folds into the current transformation matrix.
//
// # Coordinate spaces
//
// Two coupled spaces drive rendering: user space (paths, images) and text
// space (glyph placement). Both are expressed with the same Matrix type; the
// renderer owns the composition rules.
//
// # Bounding boxes
//
// BBox is an axis-aligned box in whatever space its coordinates live in.
// Matrix.TransformBBox maps a box through a transform and returns the
// axis-aligned bounds of the result, which is what the overlay-suppression
// heuristic and tiling-pattern sizing need. CubicBounds returns the exact
// bounds of a cubic Bézier segment, including interior extrema.
package model
