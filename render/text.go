package render

import (
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/tsawler/vellum/gstate"
	"github.com/tsawler/vellum/model"
	"github.com/tsawler/vellum/objstore"
	"github.com/tsawler/vellum/opstream"
	"github.com/tsawler/vellum/svgdom"
)

func (r *Renderer) beginText() {
	current := r.current
	current.TextMatrix = model.Identity()
	current.LineMatrix = model.Identity()
	current.TextMatrixScale = 1
	current.X, current.LineX = 0, 0
	current.Y, current.LineY = 0, 0
	current.XCoords = nil
	current.YCoords = nil
	current.Tspan = svgdom.New("tspan")
	current.TxtElement = svgdom.New("text")
	current.TxtGroup = svgdom.New("g")
}

// newLineTspan opens a fresh tspan for the next run of glyphs on the
// current line.
func (r *Renderer) newLineTspan() {
	current := r.current
	current.XCoords = nil
	current.YCoords = nil
	current.Tspan = svgdom.New("tspan")
	current.Tspan.SetAttr("font-family", current.FontFamily)
	current.Tspan.SetAttr("font-size", pf(current.FontSize)+"px")
	current.Tspan.SetAttr("y", pf(-current.Y))
}

func (r *Renderer) moveText(x, y float64) {
	current := r.current
	current.LineX += x
	current.X = current.LineX
	current.LineY += y
	current.Y = current.LineY
	r.newLineTspan()
}

func (r *Renderer) nextLine() {
	r.moveText(0, r.current.Leading)
}

func (r *Renderer) setTextMatrix(m model.Matrix) {
	current := r.current
	current.TextMatrix = m
	current.LineMatrix = m
	current.TextMatrixScale = math.Hypot(m[0], m[1])
	current.X, current.LineX = 0, 0
	current.Y, current.LineY = 0, 0
	r.newLineTspan()
}

// setFillColor updates the fill color. The pending tspan and its glyph
// coordinate buffers are reset as a side effect; downstream consumers
// depend on this behavior, so it is preserved as-is.
func (r *Renderer) setFillColor(color string) {
	current := r.current
	current.FillColor = color
	current.Tspan = svgdom.New("tspan")
	current.XCoords = nil
	current.YCoords = nil
}

func (r *Renderer) setFont(details []interface{}) {
	current := r.current
	name := opstream.Str(arg(details, 0))
	size := opstream.Num(arg(details, 1))

	font := r.lookupFont(name)
	if font == nil {
		r.log.Warn("font is not ready", zap.String("id", name))
		font = &opstream.Font{LoadedName: name, MissingFile: true}
	}
	current.Font = font

	if r.embedFonts && !font.MissingFile && !r.embeddedFonts[font.LoadedName] {
		r.addFontStyle(font)
		r.embeddedFonts[font.LoadedName] = true
	}

	if m, ok := opstream.AsMatrix(font.FontMatrix); ok {
		current.FontMatrix = m
	} else {
		current.FontMatrix = model.FontIdentity
	}

	switch {
	case font.Black:
		current.FontWeight = "900"
	case font.Bold:
		current.FontWeight = "bold"
	default:
		current.FontWeight = "normal"
	}
	if font.Italic {
		current.FontStyle = "italic"
	} else {
		current.FontStyle = "normal"
	}

	if size < 0 {
		size = -size
		current.FontDirection = -1
	} else {
		current.FontDirection = 1
	}
	current.FontSize = size
	current.FontFamily = font.LoadedName

	current.Tspan = svgdom.New("tspan")
	current.Tspan.SetAttr("y", pf(-current.Y))
	current.XCoords = nil
	current.YCoords = nil
}

// lookupFont resolves a font object. Fonts live in the common store; the
// page store is consulted as a fallback for producers that scope them
// per page.
func (r *Renderer) lookupFont(id string) *opstream.Font {
	for _, store := range []*objstore.Store{r.commonObjs, r.objs} {
		if store == nil {
			continue
		}
		if obj, ok := store.Cached(id); ok {
			if font, ok := obj.(*opstream.Font); ok {
				return font
			}
		}
	}
	return nil
}

// showText emits one run of glyphs into the pending tspan and advances the
// text position. Items are glyphs, numeric kerning adjustments (thousandths
// of the font size), or nil word breaks.
func (r *Renderer) showText(items []interface{}) {
	current := r.current
	font := current.Font
	if font == nil {
		font = &opstream.Font{MissingFile: true}
	}
	fontSize := current.FontSize
	if fontSize == 0 {
		return
	}

	fontSizeScale := current.FontSizeScale
	charSpacing := current.CharSpacing
	wordSpacing := current.WordSpacing
	fontDirection := current.FontDirection
	textHScale := current.TextHScale * fontDirection
	vertical := font.Vertical
	spacingDir := -1.0
	if vertical {
		spacingDir = 1.0
	}
	widthAdvanceScale := fontSize * current.FontMatrix[0]

	x := 0.0
	for _, item := range items {
		if item == nil {
			// Word break.
			x += fontDirection * wordSpacing
			continue
		}
		glyph, ok := item.(*opstream.Glyph)
		if !ok {
			x += spacingDir * opstream.Num(item) * fontSize / 1000
			continue
		}

		spacing := charSpacing
		if glyph.IsSpace {
			spacing += wordSpacing
		}

		width := glyph.Width
		var scaledX, scaledY float64
		if vertical {
			vmetric := glyph.VMetric
			if vmetric == nil {
				vmetric = font.DefaultVMetrics
			}
			vx := width * 0.5
			if glyph.VMetric != nil {
				vx = glyph.VMetric[1]
			}
			vx = -vx * widthAdvanceScale
			var vy float64
			if len(vmetric) == 3 {
				vy = vmetric[2] * widthAdvanceScale
				width = -vmetric[0]
			}
			scaledX = vx / fontSizeScale
			scaledY = (x + vy) / fontSizeScale
		} else {
			scaledX = x / fontSizeScale
			scaledY = 0
		}

		if glyph.IsInFont || font.MissingFile {
			current.XCoords = append(current.XCoords, current.X+scaledX)
			if vertical {
				current.YCoords = append(current.YCoords, -current.Y+scaledY)
			}
			current.Tspan.AppendText(glyph.FontChar)
		}
		// Glyphs outside the font are dropped when the font has its own file.

		if vertical {
			x += width*widthAdvanceScale - spacing*fontDirection
		} else {
			x += width*widthAdvanceScale + spacing*fontDirection
		}
	}

	current.Tspan.SetAttr("x", joinCoords(current.XCoords))
	if vertical {
		current.Tspan.SetAttr("y", joinCoords(current.YCoords))
	} else {
		current.Tspan.SetAttr("y", pf(-current.Y))
	}

	if vertical {
		current.Y -= x
	} else {
		current.X += x * textHScale
	}

	current.Tspan.SetAttr("font-family", current.FontFamily)
	current.Tspan.SetAttr("font-size", pf(current.FontSize)+"px")
	if current.FontStyle != "normal" {
		current.Tspan.SetAttr("font-style", current.FontStyle)
	}
	if current.FontWeight != "normal" {
		current.Tspan.SetAttr("font-weight", current.FontWeight)
	}

	fillStrokeMode := current.TextRenderMode & gstate.TextFillStrokeMask
	switch {
	case fillStrokeMode == gstate.TextFill || fillStrokeMode == gstate.TextFillStroke:
		if current.FillColor != "#000000" {
			current.Tspan.SetAttr("fill", current.FillColor)
		}
		if current.FillAlpha < 1 {
			current.Tspan.SetAttr("fill-opacity", pf(current.FillAlpha))
		}
	case current.TextRenderMode == gstate.TextAddToPath:
		// Path-only text still occupies space but paints nothing.
		current.Tspan.SetAttr("fill", "transparent")
	default:
		current.Tspan.SetAttr("fill", "none")
	}
	if fillStrokeMode == gstate.TextStroke || fillStrokeMode == gstate.TextFillStroke {
		lineWidthScale := 1.0
		if current.TextMatrixScale != 0 {
			lineWidthScale = 1 / current.TextMatrixScale
		}
		r.setStrokeAttributes(current.Tspan, lineWidthScale)
	}

	textMatrix := current.TextMatrix
	if current.TextRise != 0 {
		textMatrix[5] += current.TextRise
	}

	current.TxtElement.SetAttr("transform",
		svgdom.FormatTransform(textMatrix)+" scale("+pf(textHScale)+", -1)")
	current.TxtElement.SetAttrNS(svgdom.XMLNamespace, "space", "preserve")
	if dominantDirection(current.Tspan.Text()) == directionRTL {
		// Glyphs carry absolute positions in visual order; keep the UA's
		// bidi algorithm from reordering them.
		current.TxtElement.SetAttr("direction", "rtl")
		current.TxtElement.SetAttr("unicode-bidi", "bidi-override")
	}
	current.TxtElement.Append(current.Tspan)
	r.ensureTransformGroup().Append(current.TxtElement)
}

func joinCoords(coords []float64) string {
	parts := make([]string, len(coords))
	for i, v := range coords {
		parts[i] = pf(v)
	}
	return strings.Join(parts, " ")
}
