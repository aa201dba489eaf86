// Package opstream defines the flattened operator-stream vocabulary shared
// between the upstream content-stream producer and the SVG renderer.
//
// A page arrives as an OperatorList: two parallel slices, one of stable
// opcode ids and one of per-operator argument vectors. Opcode ids follow the
// producer's published numbering and are never renumbered; id 1 is the
// dependency marker and id 92 is reserved for the synthetic group operator
// that only the flattener emits.
//
// # Flattening
//
// Flatten converts the linear stream into a tree: every balanced
// save…restore range becomes a single group node carrying its children, and
// the save/restore markers themselves disappear. Trailing saves are
// tolerated as open groups; a restore with no matching save is rejected as a
// programmer error on the producer side.
//
// # Wire shapes
//
// Glyph, Font, ImageData and Viewport mirror the producer's object shapes.
// The JSON loader in this package decodes the interchange documents the
// command-line driver consumes.
package opstream
