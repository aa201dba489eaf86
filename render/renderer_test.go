package render

import (
	"context"
	"strings"
	"testing"

	"github.com/tsawler/vellum/model"
	"github.com/tsawler/vellum/objstore"
	"github.com/tsawler/vellum/opstream"
	"github.com/tsawler/vellum/svgdom"
)

func testViewport(w, h float64) opstream.Viewport {
	return opstream.Viewport{Width: w, Height: h, Transform: model.Identity()}
}

func newTestRenderer(common, page *objstore.Store) *Renderer {
	return New(common, page, Config{IDs: &IDAllocator{}})
}

func renderOps(t *testing.T, r *Renderer, viewport opstream.Viewport, list *opstream.OperatorList) *svgdom.Element {
	t.Helper()
	root, err := r.Render(context.Background(), list, viewport)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	return root
}

// findAll returns every element with the given tag, in document order.
func findAll(root *svgdom.Element, tag string) []*svgdom.Element {
	var out []*svgdom.Element
	if root.Tag == tag {
		out = append(out, root)
	}
	for _, c := range root.Children() {
		out = append(out, findAll(c, tag)...)
	}
	return out
}

func findOne(t *testing.T, root *svgdom.Element, tag string) *svgdom.Element {
	t.Helper()
	matches := findAll(root, tag)
	if len(matches) != 1 {
		t.Fatalf("expected exactly one <%s>, found %d", tag, len(matches))
	}
	return matches[0]
}

func rectangleArgs(x, y, w, h float64) []interface{} {
	return []interface{}{
		[]interface{}{float64(opstream.OpRectangle)},
		[]interface{}{x, y, w, h},
	}
}

// TestSingleRectangleFill renders one filled rectangle on an identity
// viewport and checks the exact output structure
func TestSingleRectangleFill(t *testing.T) {
	list := &opstream.OperatorList{}
	list.Push(opstream.OpSetFillRGBColor, 255.0, 0.0, 0.0)
	list.Push(opstream.OpConstructPath, rectangleArgs(10, 20, 30, 40)...)
	list.Push(opstream.OpFill)

	r := newTestRenderer(nil, nil)
	root := renderOps(t, r, testViewport(100, 100), list)

	if got := root.Attr("viewBox"); got != "0 0 100 100" {
		t.Errorf("viewBox = %q", got)
	}

	// Root group at the (identity) viewport transform, containing the
	// transform group, containing the path.
	rootGroup := root.Children()[1]
	if rootGroup.Tag != "g" || rootGroup.Attr("transform") != "" {
		t.Fatalf("unexpected root group %q transform=%q", rootGroup.Tag, rootGroup.Attr("transform"))
	}
	tgrp := rootGroup.FirstChild()
	if tgrp == nil || tgrp.Tag != "g" || tgrp.Attr("transform") != "" {
		t.Fatal("missing identity transform group")
	}

	path := findOne(t, root, "path")
	if got := path.Attr("d"); got != "M 10 20 L 40 20 L 40 60 L 10 60 Z" {
		t.Errorf("d = %q", got)
	}
	if path.Attr("fill") != "#ff0000" || path.Attr("fill-opacity") != "1" {
		t.Errorf("fill = %q, fill-opacity = %q", path.Attr("fill"), path.Attr("fill-opacity"))
	}
	if path.Parent() != tgrp {
		t.Error("path not attached to the transform group")
	}
}

// TestSaveRestoreIsolation tests that state changes inside a save/restore
// range do not leak out
func TestSaveRestoreIsolation(t *testing.T) {
	list := &opstream.OperatorList{}
	list.Push(opstream.OpSave)
	list.Push(opstream.OpSetFillRGBColor, 0.0, 255.0, 0.0)
	list.Push(opstream.OpTransform, 1.0, 0.0, 0.0, 1.0, 5.0, 5.0)
	list.Push(opstream.OpConstructPath, rectangleArgs(0, 0, 1, 1)...)
	list.Push(opstream.OpFill)
	list.Push(opstream.OpRestore)
	list.Push(opstream.OpConstructPath, rectangleArgs(0, 0, 1, 1)...)
	list.Push(opstream.OpFill)

	r := newTestRenderer(nil, nil)
	root := renderOps(t, r, testViewport(100, 100), list)

	paths := findAll(root, "path")
	if len(paths) != 2 {
		t.Fatalf("expected 2 paths, got %d", len(paths))
	}
	if got := paths[0].Attr("fill"); got != "#00ff00" {
		t.Errorf("inner path fill = %q", got)
	}
	if got := paths[0].Parent().Attr("transform"); got != "translate(5 5)" {
		t.Errorf("inner transform group = %q", got)
	}
	if got := paths[1].Attr("fill"); got != "#000000" {
		t.Errorf("outer path fill = %q, want default black", got)
	}
	if got := paths[1].Parent().Attr("transform"); got != "" {
		t.Errorf("outer transform group = %q, want root CTM", got)
	}

	if len(r.transformStack) != 0 || len(r.extraStack) != 0 {
		t.Error("state stacks not balanced after render")
	}
}

// TestStackInvariant tests that both stacks stay the same depth through
// nested groups
func TestStackInvariant(t *testing.T) {
	r := newTestRenderer(nil, nil)
	r.svg = svgdom.New("g")

	r.save()
	r.save()
	if len(r.transformStack) != len(r.extraStack) {
		t.Fatal("stack lengths diverged after save")
	}
	if err := r.restore(); err != nil {
		t.Fatal(err)
	}
	if len(r.transformStack) != len(r.extraStack) {
		t.Fatal("stack lengths diverged after restore")
	}
	if err := r.restore(); err != nil {
		t.Fatal(err)
	}
	if err := r.restore(); err == nil {
		t.Error("expected error restoring past the bottom of the stack")
	}
}

// TestRestoreState tests observable state equality around a save/restore
// pair
func TestRestoreState(t *testing.T) {
	r := newTestRenderer(nil, nil)
	r.svg = svgdom.New("g")
	r.current.FillColor = "#123456"
	r.current.LineWidth = 3
	r.current.DashArray = []float64{2, 2}
	before := r.current
	beforeCTM := r.transform

	r.save()
	r.current.FillColor = "#ffffff"
	r.current.LineWidth = 9
	r.current.CharSpacing = 2
	r.current.DashArray[0] = 99
	r.transformOp(model.Translate(7, 7))
	if err := r.restore(); err != nil {
		t.Fatal(err)
	}

	if r.current != before {
		t.Fatal("restore did not reinstate the saved record")
	}
	if r.current.FillColor != "#123456" || r.current.LineWidth != 3 || r.current.CharSpacing != 0 {
		t.Error("graphics state not restored to pre-save values")
	}
	if r.current.DashArray[0] != 2 {
		t.Error("dash array write leaked through the save boundary")
	}
	if r.transform != beforeCTM {
		t.Error("CTM not restored to pre-save value")
	}
}

// TestEmptyTransformGroupPruned tests that transform-only activity leaves
// no empty groups behind
func TestEmptyTransformGroupPruned(t *testing.T) {
	list := &opstream.OperatorList{}
	list.Push(opstream.OpSave)
	list.Push(opstream.OpTransform, 2.0, 0.0, 0.0, 2.0, 0.0, 0.0)
	list.Push(opstream.OpRestore)

	r := newTestRenderer(nil, nil)
	root := renderOps(t, r, testViewport(50, 50), list)

	for _, g := range findAll(root, "g") {
		if g.ChildCount() == 0 && g.Parent() != nil && g.Parent().Tag == "g" {
			t.Errorf("empty transform group left in output: %s", g.String())
		}
	}
}

// TestOverlaySuppression tests that a page-covering painted path is dropped
func TestOverlaySuppression(t *testing.T) {
	list := &opstream.OperatorList{}
	list.Push(opstream.OpConstructPath,
		[]interface{}{
			float64(opstream.OpMoveTo), float64(opstream.OpLineTo),
			float64(opstream.OpLineTo), float64(opstream.OpLineTo),
			float64(opstream.OpClosePath),
		},
		[]interface{}{0.0, 0.0, 200.0, 0.0, 200.0, 300.0, 0.0, 300.0})
	list.Push(opstream.OpFill)

	r := newTestRenderer(nil, nil)
	root := renderOps(t, r, testViewport(200, 300), list)

	if paths := findAll(root, "path"); len(paths) != 0 {
		t.Errorf("expected page-covering path to be suppressed, found %d", len(paths))
	}
}

// TestOverlayKeepsPartialCoverage tests that a smaller painted path stays
func TestOverlayKeepsPartialCoverage(t *testing.T) {
	list := &opstream.OperatorList{}
	list.Push(opstream.OpConstructPath, rectangleArgs(0, 0, 100, 300)...)
	list.Push(opstream.OpFill)

	r := newTestRenderer(nil, nil)
	root := renderOps(t, r, testViewport(200, 300), list)

	if paths := findAll(root, "path"); len(paths) != 1 {
		t.Errorf("expected partially covering path to stay, found %d", len(paths))
	}
}

// TestOverlayKeepsUnpaintedPath tests that endPath without paint leaves the
// invisible path untouched
func TestOverlayKeepsUnpaintedPath(t *testing.T) {
	list := &opstream.OperatorList{}
	list.Push(opstream.OpConstructPath, rectangleArgs(0, 0, 200, 300)...)
	list.Push(opstream.OpEndPath)

	r := newTestRenderer(nil, nil)
	root := renderOps(t, r, testViewport(200, 300), list)

	paths := findAll(root, "path")
	if len(paths) != 1 || paths[0].Attr("fill") != "none" {
		t.Error("unpainted path should remain with fill=none")
	}
}

// TestStrokeAttributes tests the stroke attribute set
func TestStrokeAttributes(t *testing.T) {
	list := &opstream.OperatorList{}
	list.Push(opstream.OpSetStrokeRGBColor, 0.0, 0.0, 255.0)
	list.Push(opstream.OpSetLineWidth, 2.5)
	list.Push(opstream.OpSetLineCap, 1.0)
	list.Push(opstream.OpSetLineJoin, 2.0)
	list.Push(opstream.OpSetMiterLimit, 4.0)
	list.Push(opstream.OpSetDash, []interface{}{3.0, 1.0}, 0.5)
	list.Push(opstream.OpConstructPath, rectangleArgs(5, 5, 10, 10)...)
	list.Push(opstream.OpStroke)

	r := newTestRenderer(nil, nil)
	root := renderOps(t, r, testViewport(100, 100), list)

	path := findOne(t, root, "path")
	checks := map[string]string{
		"stroke":            "#0000ff",
		"stroke-width":      "2.5px",
		"stroke-linecap":    "round",
		"stroke-linejoin":   "bevel",
		"stroke-miterlimit": "4",
		"stroke-dasharray":  "3 1",
		"stroke-dashoffset": "0.5px",
		"fill":              "none",
	}
	for attr, want := range checks {
		if got := path.Attr(attr); got != want {
			t.Errorf("%s = %q, want %q", attr, got, want)
		}
	}
}

// TestFillStrokeOrder tests that fillStroke ends with both paints applied
func TestFillStrokeOrder(t *testing.T) {
	list := &opstream.OperatorList{}
	list.Push(opstream.OpSetFillRGBColor, 255.0, 255.0, 0.0)
	list.Push(opstream.OpConstructPath, rectangleArgs(5, 5, 10, 10)...)
	list.Push(opstream.OpFillStroke)

	r := newTestRenderer(nil, nil)
	root := renderOps(t, r, testViewport(100, 100), list)

	path := findOne(t, root, "path")
	if path.Attr("fill") != "#ffff00" {
		t.Errorf("fill = %q; stroke's fill=none must be overwritten", path.Attr("fill"))
	}
	if !path.HasAttr("stroke") {
		t.Error("stroke attributes missing")
	}
}

// TestEOFill tests the even-odd fill rule variant
func TestEOFill(t *testing.T) {
	list := &opstream.OperatorList{}
	list.Push(opstream.OpConstructPath, rectangleArgs(0, 0, 10, 10)...)
	list.Push(opstream.OpEOFill)

	r := newTestRenderer(nil, nil)
	root := renderOps(t, r, testViewport(100, 100), list)

	if got := findOne(t, root, "path").Attr("fill-rule"); got != "evenodd" {
		t.Errorf("fill-rule = %q", got)
	}
}

// TestPathConcatenation tests that a continuation sub-path extends the
// previous d instead of opening a new path
func TestPathConcatenation(t *testing.T) {
	list := &opstream.OperatorList{}
	list.Push(opstream.OpConstructPath,
		[]interface{}{float64(opstream.OpMoveTo), float64(opstream.OpLineTo)},
		[]interface{}{0.0, 0.0, 10.0, 0.0})
	list.Push(opstream.OpConstructPath,
		[]interface{}{float64(opstream.OpLineTo)},
		[]interface{}{10.0, 10.0})
	list.Push(opstream.OpFill)

	r := newTestRenderer(nil, nil)
	root := renderOps(t, r, testViewport(100, 100), list)

	path := findOne(t, root, "path")
	if got := path.Attr("d"); !strings.Contains(got, "L 10 10") || !strings.HasPrefix(got, "M 0 0") {
		t.Errorf("d = %q", got)
	}
}

// TestCurveOpcodes tests the three Bézier argument layouts
func TestCurveOpcodes(t *testing.T) {
	list := &opstream.OperatorList{}
	list.Push(opstream.OpConstructPath,
		[]interface{}{
			float64(opstream.OpMoveTo),
			float64(opstream.OpCurveTo),
			float64(opstream.OpCurveTo2),
			float64(opstream.OpCurveTo3),
		},
		[]interface{}{
			0.0, 0.0,
			1.0, 1.0, 2.0, 2.0, 3.0, 3.0,
			4.0, 4.0, 5.0, 5.0,
			6.0, 6.0, 7.0, 7.0,
		})
	list.Push(opstream.OpEndPath)

	r := newTestRenderer(nil, nil)
	root := renderOps(t, r, testViewport(100, 100), list)

	want := "M 0 0" +
		" C 1 1 2 2 3 3" + // both controls given
		" C 3 3 4 4 5 5" + // first control is the current point
		" C 6 6 7 7 7 7" // second control equals the endpoint
	if got := findOne(t, root, "path").Attr("d"); got != want {
		t.Errorf("d = %q, want %q", got, want)
	}
}

// TestSetGState tests the recognized ExtGState keys
func TestSetGState(t *testing.T) {
	list := &opstream.OperatorList{}
	list.Push(opstream.OpSetGState, []interface{}{
		[]interface{}{"LW", 7.0},
		[]interface{}{"CA", 0.5},
		[]interface{}{"ca", 0.25},
		[]interface{}{"XX", nil},
	})

	r := newTestRenderer(nil, nil)
	renderOps(t, r, testViewport(10, 10), list)

	if r.current.LineWidth != 7 {
		t.Errorf("LineWidth = %g", r.current.LineWidth)
	}
	if r.current.StrokeAlpha != 0.5 || r.current.FillAlpha != 0.25 {
		t.Errorf("alphas = %g / %g", r.current.StrokeAlpha, r.current.FillAlpha)
	}
}

// TestUnknownOperatorSkipped tests that unknown opcodes do not abort
func TestUnknownOperatorSkipped(t *testing.T) {
	list := &opstream.OperatorList{}
	list.Push(opstream.Opcode(200))
	list.Push(opstream.OpConstructPath, rectangleArgs(0, 0, 1, 1)...)
	list.Push(opstream.OpFill)

	r := newTestRenderer(nil, nil)
	root := renderOps(t, r, testViewport(100, 100), list)
	if len(findAll(root, "path")) != 1 {
		t.Error("render did not continue past the unknown operator")
	}
}
