// Package render implements the graphics interpreter that translates a
// page's flattened operator stream into an SVG document tree.
//
// A Renderer is a stateful machine: it maintains the PDF-style graphics
// state stack, accumulates the current transformation matrix, and emits SVG
// nodes for drawing, text, image, and pattern operators. Saved/restored
// state ranges arrive pre-grouped by opstream.Flatten and are interpreted as
// nested scopes; gradients, tiling patterns, masks, and embedded fonts are
// routed through the document's <defs>.
//
// # Lifecycle
//
// Render drives one page: it validates the viewport, builds the root <svg>
// with its <defs> and base transform group, waits for every object named by
// a dependency operator to resolve, and then interprets the operator tree
// synchronously. Renderers are single-use and not safe for concurrent use;
// the id allocator they share is.
//
// # Error policy
//
// Malformed input shapes (invalid dimensions, unknown pattern IR types,
// bitmap-backed image masks, unbalanced restores) abort the page.
// Unimplemented operators, unknown graphics-state keys, mesh shadings, and
// not-yet-ready image objects log a warning and are skipped.
package render
