package render

import (
	"strconv"
	"strings"

	"github.com/tsawler/vellum/model"
	"github.com/tsawler/vellum/opstream"
	"github.com/tsawler/vellum/svgdom"
)

// constructPath interprets an inner opcode sub-sequence into SVG path data.
// The sub-sequence uses the same opcode ids as the outer stream; its
// coordinate arguments are consumed left to right.
func (r *Renderer) constructPath(ops []float64, coords []float64) {
	current := r.current
	x, y := current.X, current.Y

	var d []string
	j := 0
	take := func() float64 {
		if j >= len(coords) {
			return 0
		}
		v := coords[j]
		j++
		return v
	}

	for _, rawOp := range ops {
		switch opstream.Opcode(rawOp) {
		case opstream.OpRectangle:
			x = take()
			y = take()
			width := take()
			height := take()
			xw := x + width
			yh := y + height
			d = append(d,
				"M", pf(x), pf(y),
				"L", pf(xw), pf(y),
				"L", pf(xw), pf(yh),
				"L", pf(x), pf(yh),
				"Z")
		case opstream.OpMoveTo:
			x = take()
			y = take()
			d = append(d, "M", pf(x), pf(y))
		case opstream.OpLineTo:
			x = take()
			y = take()
			d = append(d, "L", pf(x), pf(y))
		case opstream.OpCurveTo:
			x1, y1 := take(), take()
			x2, y2 := take(), take()
			x, y = take(), take()
			d = append(d, "C", pf(x1), pf(y1), pf(x2), pf(y2), pf(x), pf(y))
		case opstream.OpCurveTo2:
			// First control point is the current point.
			x2, y2 := take(), take()
			x3, y3 := take(), take()
			d = append(d, "C", pf(x), pf(y), pf(x2), pf(y2), pf(x3), pf(y3))
			x, y = x3, y3
		case opstream.OpCurveTo3:
			// Second control point coincides with the endpoint.
			x1, y1 := take(), take()
			x, y = take(), take()
			d = append(d, "C", pf(x1), pf(y1), pf(x), pf(y), pf(x), pf(y))
		case opstream.OpClosePath:
			d = append(d, "Z")
		}
	}

	data := strings.Join(d, " ")
	// A sub-path that does not open with rectangle or moveTo continues the
	// path already being built, preserving multi-sub-path paints.
	if current.Path != nil && len(ops) > 0 &&
		opstream.Opcode(ops[0]) != opstream.OpRectangle &&
		opstream.Opcode(ops[0]) != opstream.OpMoveTo {
		data = current.Path.Attr("d") + data
	} else {
		current.Path = svgdom.New("path")
		r.ensureTransformGroup().Append(current.Path)
	}

	current.Path.SetAttr("d", data)
	current.Path.SetAttr("fill", "none")
	current.Element = current.Path
	current.X, current.Y = x, y
}

func (r *Renderer) closePath() {
	if r.current.Path == nil {
		return
	}
	r.current.Path.SetAttr("d", r.current.Path.Attr("d")+"Z")
}

func (r *Renderer) setFillRule(rule string) {
	if r.current.Element != nil {
		r.current.Element.SetAttr("fill-rule", rule)
	}
}

func (r *Renderer) fill() {
	current := r.current
	if current.Element != nil {
		current.Element.SetAttr("fill", current.FillColor)
		current.Element.SetAttr("fill-opacity", pf(current.FillAlpha))
	}
	r.endPath()
}

func (r *Renderer) eoFill() {
	r.setFillRule("evenodd")
	r.fill()
}

func (r *Renderer) stroke() {
	current := r.current
	if current.Element != nil {
		r.setStrokeAttributes(current.Element, 1)
		current.Element.SetAttr("fill", "none")
	}
	r.endPath()
}

// fillStroke strokes first: stroke forces fill to none, which the fill then
// overwrites.
func (r *Renderer) fillStroke() {
	r.stroke()
	r.fill()
}

// setStrokeAttributes applies the state's stroke style to element. The
// lineWidthScale compensates widths and dashes for text-matrix scaling when
// stroking glyph outlines.
func (r *Renderer) setStrokeAttributes(element *svgdom.Element, lineWidthScale float64) {
	current := r.current

	dashArray := current.DashArray
	if lineWidthScale != 1 && len(dashArray) > 0 {
		scaled := make([]float64, len(dashArray))
		for i, v := range dashArray {
			scaled[i] = lineWidthScale * v
		}
		dashArray = scaled
	}

	element.SetAttr("stroke", current.StrokeColor)
	element.SetAttr("stroke-opacity", pf(current.StrokeAlpha))
	element.SetAttr("stroke-miterlimit", pf(current.MiterLimit))
	element.SetAttr("stroke-linecap", current.LineCap)
	element.SetAttr("stroke-linejoin", current.LineJoin)
	element.SetAttr("stroke-width", pf(lineWidthScale*current.LineWidth)+"px")

	parts := make([]string, len(dashArray))
	for i, v := range dashArray {
		parts[i] = pf(v)
	}
	element.SetAttr("stroke-dasharray", strings.Join(parts, " "))
	element.SetAttr("stroke-dashoffset", pf(lineWidthScale*current.DashPhase)+"px")
}

// endPath commits the current path. A painted path whose device-space
// bounds cover the whole viewport to within one unit is dropped: such paths
// are page-background rectangles that would occlude everything beneath them.
func (r *Renderer) endPath() {
	current := r.current
	path := current.Path
	current.Path = nil
	if path == nil {
		return
	}

	deviceTransform := r.transform.Multiply(r.viewport.Transform)
	bounds, ok := pathBounds(path.Attr("d"), deviceTransform)
	if !ok {
		return
	}

	const slack = 1
	covers := bounds.Left() <= slack && bounds.Bottom() <= slack &&
		bounds.Right() >= r.viewport.Width-slack &&
		bounds.Top() >= r.viewport.Height-slack

	if covers && pathHasPaint(path) {
		path.Remove()
	}
}

// pathHasPaint reports whether a committed path would actually mark the
// page.
func pathHasPaint(path *svgdom.Element) bool {
	if fill := path.Attr("fill"); fill != "" && fill != "none" {
		return true
	}
	return path.HasAttr("stroke")
}

// pathBounds walks serialized path data, transforms every segment through m,
// and accumulates the device-space bounding box. Curve segments contribute
// their exact extrema; affine maps preserve Bézier control structure, so the
// control points are transformed before the extrema are solved.
func pathBounds(d string, m model.Matrix) (model.BBox, bool) {
	// Concatenated sub-paths and closePath append commands without a
	// separating space ("0L", "300Z"); split command letters off first.
	fields := strings.Fields(pathCommandSpacer.Replace(d))

	var (
		bounds  model.BBox
		have    bool
		pos     model.Point
		havePos bool
	)
	extend := func(b model.BBox) {
		if !have {
			bounds = b
			have = true
			return
		}
		bounds = bounds.Union(b)
	}

	i := 0
	num := func() float64 {
		if i >= len(fields) {
			return 0
		}
		v, _ := strconv.ParseFloat(fields[i], 64)
		i++
		return v
	}

	for i < len(fields) {
		cmd := fields[i]
		i++
		switch cmd {
		case "M", "L":
			p := m.Transform(model.Point{X: num(), Y: num()})
			extend(model.BBox{X: p.X, Y: p.Y})
			pos = p
			havePos = true
		case "C":
			c1 := m.Transform(model.Point{X: num(), Y: num()})
			c2 := m.Transform(model.Point{X: num(), Y: num()})
			end := m.Transform(model.Point{X: num(), Y: num()})
			start := pos
			if !havePos {
				start = end
			}
			extend(model.CubicBounds(start, c1, c2, end))
			pos = end
			havePos = true
		case "Z":
		default:
			// Unknown token in self-produced data; skip it.
		}
	}

	return bounds, have
}

var pathCommandSpacer = strings.NewReplacer("M", " M ", "L", " L ", "C", " C ", "Z", " Z ")

// pf is shorthand for the shared numeric formatter.
func pf(v float64) string {
	return svgdom.FormatFloat(v)
}
