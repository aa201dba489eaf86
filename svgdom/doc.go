// Package svgdom provides a minimal in-memory SVG document tree.
//
// The renderer speaks only three verbs: create an element in a namespace,
// set an attribute (optionally in a namespace), and append a child. Element
// implements those plus the removal and inspection hooks the renderer's
// group-pruning and overlay-suppression passes need, and a streaming XML
// serializer for writing the finished page.
//
// # Namespaces
//
// Elements default to the SVG namespace. Attributes carry a namespace only
// when set with SetAttrNS; the serializer emits the conventional xml: and
// xlink: prefixes for those and declares xmlns/xmlns:xlink on the root <svg>.
//
// # Formatting
//
// FormatFloat and FormatTransform produce the deterministic shortest
// sufficient decimal strings used for all numeric SVG output, so identical
// input pages serialize byte-identically.
package svgdom
