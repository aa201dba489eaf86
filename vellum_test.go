package vellum

import (
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/tsawler/vellum/model"
	"github.com/tsawler/vellum/objstore"
	"github.com/tsawler/vellum/opstream"
	"github.com/tsawler/vellum/render"
	"github.com/tsawler/vellum/svgdom"
)

// TestRenderPage tests the facade end to end on a small page
func TestRenderPage(t *testing.T) {
	list := &opstream.OperatorList{}
	list.Push(opstream.OpSetFillRGBColor, 255.0, 0.0, 0.0)
	list.Push(opstream.OpConstructPath,
		[]interface{}{float64(opstream.OpRectangle)},
		[]interface{}{10.0, 20.0, 30.0, 40.0})
	list.Push(opstream.OpFill)

	viewport := opstream.Viewport{Width: 100, Height: 100, Transform: model.Identity()}
	svg, err := RenderPage(context.Background(), list, viewport, nil, nil,
		WithIDAllocator(&render.IDAllocator{}))
	if err != nil {
		t.Fatalf("RenderPage failed: %v", err)
	}

	out := svg.String()
	for _, want := range []string{
		`viewBox="0 0 100 100"`,
		`d="M 10 20 L 40 20 L 40 60 L 10 60 Z"`,
		`fill="#ff0000"`,
		`xmlns="http://www.w3.org/2000/svg"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

// TestRenderPageInvalidViewport tests the input-shape failure path
func TestRenderPageInvalidViewport(t *testing.T) {
	viewport := opstream.Viewport{Width: 0, Height: 100, Transform: model.Identity()}
	if _, err := RenderPage(context.Background(), &opstream.OperatorList{}, viewport, nil, nil); err == nil {
		t.Error("expected error for invalid viewport dimensions")
	}
}

// TestRenderPageWaitsForDependencies tests that objects resolved after the
// call are still picked up
func TestRenderPageWaitsForDependencies(t *testing.T) {
	page := objstore.New()
	img := &opstream.ImageData{
		Width: 1, Height: 1,
		Kind: opstream.ImageKindRGB24BPP,
		Data: []byte{9, 9, 9},
	}

	list := &opstream.OperatorList{}
	list.Push(opstream.OpDependency, "img_1")
	list.Push(opstream.OpPaintImageXObject, "img_1")

	go page.Resolve("img_1", img)

	viewport := opstream.Viewport{Width: 10, Height: 10, Transform: model.Identity()}
	svg, err := RenderPage(context.Background(), list, viewport, nil, page,
		WithIDAllocator(&render.IDAllocator{}))
	if err != nil {
		t.Fatalf("RenderPage failed: %v", err)
	}
	if !strings.Contains(svg.String(), "<image") {
		t.Error("image dependency was not rendered")
	}
}

// TestReferencesResolve tests that every url(#id) points at a defs node
func TestReferencesResolve(t *testing.T) {
	nested := &opstream.OperatorList{}
	nested.Push(opstream.OpConstructPath,
		[]interface{}{float64(opstream.OpRectangle)},
		[]interface{}{0.0, 0.0, 5.0, 5.0})
	nested.Push(opstream.OpFill)

	mask := &opstream.ImageData{
		Width: 8, Height: 1,
		Kind: opstream.ImageKindGrayscale1BPP,
		Data: []byte{0xaa},
	}

	list := &opstream.OperatorList{}
	list.Push(opstream.OpShadingFill,
		"RadialAxial", "axial", nil,
		[]interface{}{[]interface{}{0.0, "#ff0000"}},
		[]interface{}{0.0, 0.0}, []interface{}{10.0, 0.0})
	list.Push(opstream.OpSetFillColorN,
		"TilingPattern", []interface{}{0.0, 0.0, 0.0}, nested,
		[]interface{}{1.0, 0.0, 0.0, 1.0, 0.0, 0.0},
		[]interface{}{0.0, 0.0, 4.0, 4.0}, 4.0, 4.0, 1.0)
	list.Push(opstream.OpConstructPath,
		[]interface{}{float64(opstream.OpRectangle)},
		[]interface{}{0.0, 0.0, 9.0, 9.0})
	list.Push(opstream.OpFill)
	list.Push(opstream.OpPaintImageMaskXObject, mask)

	viewport := opstream.Viewport{Width: 100, Height: 100, Transform: model.Identity()}
	svg, err := RenderPage(context.Background(), list, viewport, nil, nil,
		WithIDAllocator(&render.IDAllocator{}))
	if err != nil {
		t.Fatalf("RenderPage failed: %v", err)
	}

	out := svg.String()
	ids := make(map[string]bool)
	collectIDs(svg, ids)

	for _, m := range regexp.MustCompile(`url\(#([^)]+)\)`).FindAllStringSubmatch(out, -1) {
		if !ids[m[1]] {
			t.Errorf("reference url(#%s) does not resolve to a defs node", m[1])
		}
	}
}

func collectIDs(e *svgdom.Element, ids map[string]bool) {
	if id := e.Attr("id"); id != "" {
		ids[id] = true
	}
	for _, c := range e.Children() {
		collectIDs(c, ids)
	}
}

// TestMust tests the panic helper
func TestMust(t *testing.T) {
	if got := Must(42, nil); got != 42 {
		t.Errorf("Must returned %d", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	Must(0, context.Canceled)
}
