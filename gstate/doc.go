// Package gstate provides the per-save-level graphics state record used
// during operator interpretation.
//
// The state mirrors the PDF graphics-state model: one record per save level
// holding path, color, line, font, and text-placement state together with
// references to the in-progress SVG nodes (the pending tspan, the path being
// built, the element the next paint operator will decorate).
//
// # Save and restore
//
// Save pushes are realized by the renderer as Clone calls: the clone copies
// every value field and takes defensive copies of the small mutable slices
// (dash pattern, glyph coordinate buffers) so that writes after a save never
// leak into the saved level. SVG node references are shared deliberately;
// restore simply reinstates the older record.
package gstate
