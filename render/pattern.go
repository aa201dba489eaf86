package render

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/tsawler/vellum/model"
	"github.com/tsawler/vellum/opstream"
	"github.com/tsawler/vellum/svgdom"
)

// makeColorN builds a paint value for a setFillColorN/setStrokeColorN
// pattern argument: a url(#id) reference for realizable patterns, a literal
// color for placeholders.
func (r *Renderer) makeColorN(args []interface{}) (string, error) {
	if opstream.Str(arg(args, 0)) == "TilingPattern" {
		return r.makeTilingPattern(args)
	}
	return r.makeShadingPattern(args)
}

// shadingFill covers the visible region with the shading: the viewport is
// mapped back through the CTM so the emitted rect lands exactly on the page
// once the transform group applies.
func (r *Renderer) shadingFill(args []interface{}) error {
	ir := args
	if len(args) == 1 {
		if sub, ok := args[0].([]interface{}); ok {
			ir = sub
		}
	}

	fillColor, err := r.makeShadingPattern(ir)
	if err != nil {
		return err
	}
	if fillColor == "" {
		// Unrealizable shading (mesh); already warned.
		return nil
	}

	inv := r.transform.Inverse()
	bounds := inv.TransformBBox(model.NewBBox(0, 0, r.viewport.Width, r.viewport.Height))

	rect := svgdom.New("rect")
	rect.SetAttr("x", pf(bounds.X))
	rect.SetAttr("y", pf(bounds.Y))
	rect.SetAttr("width", pf(bounds.Width))
	rect.SetAttr("height", pf(bounds.Height))
	rect.SetAttr("fill", fillColor)
	if r.current.FillAlpha < 1 {
		rect.SetAttr("fill-opacity", pf(r.current.FillAlpha))
	}
	r.ensureTransformGroup().Append(rect)
	return nil
}

// makeShadingPattern realizes a shading IR value as a defs entry.
func (r *Renderer) makeShadingPattern(args []interface{}) (string, error) {
	switch kind := opstream.Str(arg(args, 0)); kind {
	case "TilingPattern":
		return r.makeTilingPattern(args)

	case "RadialAxial":
		shadingID := r.ids.ShadingID()
		colorStops, _ := arg(args, 3).([]interface{})

		var gradient *svgdom.Element
		switch shadingType := opstream.Str(arg(args, 1)); shadingType {
		case "axial":
			p0 := opstream.Nums(arg(args, 4))
			p1 := opstream.Nums(arg(args, 5))
			if len(p0) < 2 || len(p1) < 2 {
				return "", fmt.Errorf("axial shading: malformed axis points")
			}
			gradient = svgdom.New("linearGradient")
			gradient.SetAttr("id", shadingID)
			gradient.SetAttr("gradientUnits", "userSpaceOnUse")
			gradient.SetAttr("x1", pf(p0[0]))
			gradient.SetAttr("y1", pf(p0[1]))
			gradient.SetAttr("x2", pf(p1[0]))
			gradient.SetAttr("y2", pf(p1[1]))
		case "radial":
			p0 := opstream.Nums(arg(args, 4))
			p1 := opstream.Nums(arg(args, 5))
			if len(p0) < 2 || len(p1) < 2 {
				return "", fmt.Errorf("radial shading: malformed focal points")
			}
			r0 := opstream.Num(arg(args, 6))
			r1 := opstream.Num(arg(args, 7))
			gradient = svgdom.New("radialGradient")
			gradient.SetAttr("id", shadingID)
			gradient.SetAttr("gradientUnits", "userSpaceOnUse")
			gradient.SetAttr("cx", pf(p1[0]))
			gradient.SetAttr("cy", pf(p1[1]))
			gradient.SetAttr("r", pf(r1))
			gradient.SetAttr("fx", pf(p0[0]))
			gradient.SetAttr("fy", pf(p0[1]))
			gradient.SetAttr("fr", pf(r0))
		default:
			return "", fmt.Errorf("unknown RadialAxial type: %q", shadingType)
		}

		for _, cs := range colorStops {
			pair, ok := cs.([]interface{})
			if !ok || len(pair) < 2 {
				continue
			}
			stop := svgdom.New("stop")
			stop.SetAttr("offset", pf(opstream.Num(pair[0])))
			stop.SetAttr("stop-color", opstream.Str(pair[1]))
			gradient.Append(stop)
		}
		r.defs.Append(gradient)
		return "url(#" + shadingID + ")", nil

	case "Mesh":
		r.log.Warn("unimplemented pattern", zap.String("kind", "Mesh"))
		return "", nil

	case "Dummy":
		return "hotpink", nil

	default:
		return "", fmt.Errorf("unknown IR type: %q", kind)
	}
}

// makeTilingPattern realizes a tiling pattern by rendering its nested
// operator list into a sub-canvas adopted by an SVG <pattern>. The renderer
// state it borrows — output parent, CTM, transform group, fill and stroke —
// is restored on the way out.
func (r *Renderer) makeTilingPattern(args []interface{}) (string, error) {
	color := opstream.Nums(arg(args, 1))
	list, ok := arg(args, 2).(*opstream.OperatorList)
	if !ok {
		return "", fmt.Errorf("tiling pattern: missing nested operator list")
	}
	matrix, ok := opstream.AsMatrix(arg(args, 3))
	if !ok {
		matrix = model.Identity()
	}
	bbox := opstream.Nums(arg(args, 4))
	if len(bbox) != 4 {
		return "", fmt.Errorf("tiling pattern: malformed bbox %v", bbox)
	}
	xstep := opstream.Num(arg(args, 5))
	ystep := opstream.Num(arg(args, 6))
	paintType := int(opstream.Num(arg(args, 7)))

	tilingID := r.ids.ShadingID()

	p0 := matrix.Transform(model.Point{X: bbox[0], Y: bbox[1]})
	p1 := matrix.Transform(model.Point{X: bbox[2], Y: bbox[3]})
	tiles := model.NewBBoxFromPoints(p0, p1)

	xscale, yscale := matrix.Decompose()
	txstep := xstep * xscale
	tystep := ystep * yscale

	tiling := svgdom.New("pattern")
	tiling.SetAttr("id", tilingID)
	tiling.SetAttr("patternUnits", "userSpaceOnUse")
	tiling.SetAttr("width", pf(txstep))
	tiling.SetAttr("height", pf(tystep))
	tiling.SetAttr("x", pf(tiles.X))
	tiling.SetAttr("y", pf(tiles.Y))

	// Borrow the renderer for the nested list.
	savedSVG := r.svg
	savedTransform := r.transform
	savedTgrp := r.tgrp
	savedFill := r.current.FillColor
	savedStroke := r.current.StrokeColor

	canvas, err := svgdom.NewSVG(tiles.Width, tiles.Height)
	if err != nil {
		return "", fmt.Errorf("tiling pattern: %w", err)
	}
	r.svg = canvas
	r.transform = matrix
	r.tgrp = nil
	if paintType == 2 {
		cssColor := svgdom.HexColor(colorAt(color, 0), colorAt(color, 1), colorAt(color, 2))
		r.current.FillColor = cssColor
		r.current.StrokeColor = cssColor
	}

	tree, err := opstream.Flatten(list)
	if err == nil {
		err = r.executeTree(tree)
	}

	r.svg = savedSVG
	r.transform = savedTransform
	r.tgrp = savedTgrp
	r.current.FillColor = savedFill
	r.current.StrokeColor = savedStroke

	if err != nil {
		return "", fmt.Errorf("tiling pattern: %w", err)
	}

	if first := canvas.FirstChild(); first != nil {
		tiling.Append(first)
	}
	r.defs.Append(tiling)
	return "url(#" + tilingID + ")", nil
}

func colorAt(color []float64, i int) float64 {
	if i < len(color) {
		return color[i]
	}
	return 0
}
