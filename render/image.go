package render

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/tsawler/vellum/internal/pngenc"
	"github.com/tsawler/vellum/objstore"
	"github.com/tsawler/vellum/opstream"
	"github.com/tsawler/vellum/svgdom"
)

// paintSolidColorImageMask emits the degenerate 1×1 mask as a unit rect in
// the current fill color.
func (r *Renderer) paintSolidColorImageMask() {
	rect := svgdom.New("rect")
	rect.SetAttr("x", "0")
	rect.SetAttr("y", "0")
	rect.SetAttr("width", "1px")
	rect.SetAttr("height", "1px")
	rect.SetAttr("fill", r.current.FillColor)
	r.ensureTransformGroup().Append(rect)
}

// paintImageXObject resolves the image object and delegates to the inline
// painter. Dependencies are preloaded, so an unresolved object is a producer
// bug; it is skipped with a warning.
func (r *Renderer) paintImageXObject(objID string) error {
	store := r.objs
	if objstore.IsCommon(objID) {
		store = r.commonObjs
	}

	var img *opstream.ImageData
	if store != nil {
		if obj, ok := store.Cached(objID); ok {
			img, _ = obj.(*opstream.ImageData)
		}
	}
	if img == nil {
		r.log.Warn("dependent image is not ready", zap.String("id", objID))
		return nil
	}
	return r.paintInlineImageXObject(img, nil)
}

// paintInlineImageXObject encodes the pixels to a PNG URL and emits an
// <image> flipped into the PDF's bottom-up coordinate system. With a mask
// the image becomes the mask's content instead of page content.
func (r *Renderer) paintInlineImageXObject(img *opstream.ImageData, mask *svgdom.Element) error {
	width := float64(img.Width)
	height := float64(img.Height)

	url, err := pngenc.Encode(img, r.forceData, mask != nil)
	if err != nil {
		return fmt.Errorf("encoding image: %w", err)
	}

	imgEl := svgdom.New("image")
	imgEl.SetAttrNS(svgdom.XLinkNamespace, "href", url)
	imgEl.SetAttr("x", "0")
	imgEl.SetAttr("y", pf(-height))
	imgEl.SetAttr("width", pf(width)+"px")
	imgEl.SetAttr("height", pf(height)+"px")
	imgEl.SetAttr("transform", "scale("+pf(1/width)+" "+pf(-1/height)+")")

	if mask != nil {
		mask.Append(imgEl)
	} else {
		r.ensureTransformGroup().Append(imgEl)
	}
	return nil
}

// paintImageMaskXObject stencils the current fill color through the 1-bit
// image: a <mask> holding the encoded image plus a rect painted through it.
func (r *Renderer) paintImageMaskXObject(img *opstream.ImageData) error {
	if img.Bitmap != nil {
		return fmt.Errorf("bitmap-backed image masks are unsupported")
	}
	current := r.current

	current.MaskID = r.ids.MaskID()
	mask := svgdom.New("mask")
	mask.SetAttr("id", current.MaskID)

	rect := svgdom.New("rect")
	rect.SetAttr("x", "0")
	rect.SetAttr("y", "0")
	rect.SetAttr("width", pf(float64(img.Width)))
	rect.SetAttr("height", pf(float64(img.Height)))
	rect.SetAttr("fill", current.FillColor)
	rect.SetAttr("mask", "url(#"+current.MaskID+")")

	r.defs.Append(mask)
	r.ensureTransformGroup().Append(rect)

	return r.paintInlineImageXObject(img, mask)
}
