package render

import (
	"strings"
	"testing"

	"github.com/tsawler/vellum/objstore"
	"github.com/tsawler/vellum/opstream"
	"github.com/tsawler/vellum/svgdom"
)

func testImage() *opstream.ImageData {
	return &opstream.ImageData{
		Width:  2,
		Height: 2,
		Kind:   opstream.ImageKindRGB24BPP,
		Data:   make([]byte, 2*2*3),
	}
}

// TestPaintInlineImage tests <image> element construction
func TestPaintInlineImage(t *testing.T) {
	list := &opstream.OperatorList{}
	list.Push(opstream.OpPaintInlineImageXObject, testImage())

	r := newTestRenderer(nil, nil)
	root := renderOps(t, r, testViewport(100, 100), list)

	img := findOne(t, root, "image")
	checks := map[string]string{
		"x":         "0",
		"y":         "-2",
		"width":     "2px",
		"height":    "2px",
		"transform": "scale(0.5 -0.5)",
	}
	for attr, want := range checks {
		if got := img.Attr(attr); got != want {
			t.Errorf("%s = %q, want %q", attr, got, want)
		}
	}
	if href := attrNS(img, svgdom.XLinkNamespace, "href"); !strings.HasPrefix(href, "data:image/png;base64,") {
		t.Errorf("href = %q", href)
	}
}

// attrNS reads a namespaced attribute value.
func attrNS(e *svgdom.Element, space, name string) string {
	for _, a := range e.Attrs() {
		if a.Space == space && a.Name == name {
			return a.Value
		}
	}
	return ""
}

// TestPaintImageXObject tests store resolution and the not-ready skip
func TestPaintImageXObject(t *testing.T) {
	page := objstore.New()
	page.Resolve("img_1", testImage())

	list := &opstream.OperatorList{}
	list.Push(opstream.OpDependency, "img_1")
	list.Push(opstream.OpPaintImageXObject, "img_1")
	list.Push(opstream.OpPaintImageXObject, "img_missing") // warn + skip

	r := newTestRenderer(nil, page)
	root := renderOps(t, r, testViewport(100, 100), list)

	if got := len(findAll(root, "image")); got != 1 {
		t.Errorf("expected 1 image, got %d", got)
	}
}

// TestPaintImageMask tests mask + stencil rect emission
func TestPaintImageMask(t *testing.T) {
	mask := &opstream.ImageData{
		Width:  4,
		Height: 4,
		Kind:   opstream.ImageKindGrayscale1BPP,
		Data:   []byte{0x0f, 0xf0, 0x0f, 0xf0},
	}

	list := &opstream.OperatorList{}
	list.Push(opstream.OpSetFillRGBColor, 255.0, 0.0, 0.0)
	list.Push(opstream.OpPaintImageMaskXObject, mask)

	r := newTestRenderer(nil, nil)
	root := renderOps(t, r, testViewport(100, 100), list)

	maskEl := findOne(t, root, "mask")
	if maskEl.Attr("id") != "mask0" {
		t.Errorf("mask id = %q", maskEl.Attr("id"))
	}
	if maskEl.Parent().Tag != "defs" {
		t.Error("mask not attached to defs")
	}
	if len(findAll(maskEl, "image")) != 1 {
		t.Error("mask missing its image content")
	}

	rect := findOne(t, root, "rect")
	if rect.Attr("fill") != "#ff0000" {
		t.Errorf("stencil rect fill = %q", rect.Attr("fill"))
	}
	if rect.Attr("mask") != "url(#mask0)" {
		t.Errorf("stencil rect mask = %q", rect.Attr("mask"))
	}
	if rect.Attr("width") != "4" || rect.Attr("height") != "4" {
		t.Errorf("stencil rect size = %s x %s", rect.Attr("width"), rect.Attr("height"))
	}
}

// TestBitmapMaskRejected tests the input-shape error
func TestBitmapMaskRejected(t *testing.T) {
	mask := &opstream.ImageData{
		Width:  1,
		Height: 1,
		Kind:   opstream.ImageKindGrayscale1BPP,
		Data:   []byte{0},
		Bitmap: struct{}{},
	}

	r := newTestRenderer(nil, nil)
	if err := r.paintImageMaskXObject(mask); err == nil {
		t.Error("expected error for bitmap-backed mask")
	}
}

// TestSolidColorImageMask tests the unit-rect emission
func TestSolidColorImageMask(t *testing.T) {
	list := &opstream.OperatorList{}
	list.Push(opstream.OpSetFillRGBColor, 0.0, 128.0, 0.0)
	list.Push(opstream.OpPaintSolidColorImageMask)

	r := newTestRenderer(nil, nil)
	root := renderOps(t, r, testViewport(100, 100), list)

	rect := findOne(t, root, "rect")
	if rect.Attr("width") != "1px" || rect.Attr("height") != "1px" {
		t.Errorf("rect size = %s x %s", rect.Attr("width"), rect.Attr("height"))
	}
	if rect.Attr("fill") != "#008000" {
		t.Errorf("rect fill = %q", rect.Attr("fill"))
	}
}
