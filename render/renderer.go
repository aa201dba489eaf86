package render

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/tsawler/vellum/gstate"
	"github.com/tsawler/vellum/model"
	"github.com/tsawler/vellum/objstore"
	"github.com/tsawler/vellum/opstream"
	"github.com/tsawler/vellum/svgdom"
)

// IDAllocator hands out the document-unique mask and shading ids referenced
// from defs. It is shared process-wide by default so that SVGs rendered from
// different pages can be concatenated without id collisions; all methods are
// safe for concurrent use.
type IDAllocator struct {
	mask    uint64
	shading uint64
}

// MaskID returns the next unique mask id.
func (a *IDAllocator) MaskID() string {
	return fmt.Sprintf("mask%d", atomic.AddUint64(&a.mask, 1)-1)
}

// ShadingID returns the next unique shading id. Tiling patterns and
// gradients draw from the same sequence.
func (a *IDAllocator) ShadingID() string {
	return fmt.Sprintf("shading%d", atomic.AddUint64(&a.shading, 1)-1)
}

// sharedIDs is the default process-wide allocator.
var sharedIDs = &IDAllocator{}

// Config carries the renderer's optional collaborators and switches.
type Config struct {
	// Log receives warnings for skipped operators and degraded output.
	// Nil disables logging.
	Log *zap.Logger

	// ForceDataURLs is forwarded to the PNG encoder.
	ForceDataURLs bool

	// EmbedFonts embeds @font-face rules for fonts that carry file data.
	EmbedFonts bool

	// IDs overrides the process-wide mask/shading id allocator.
	IDs *IDAllocator
}

// Renderer interprets one page's operator stream into an SVG tree.
type Renderer struct {
	log        *zap.Logger
	commonObjs *objstore.Store
	objs       *objstore.Store
	forceData  bool
	embedFonts bool
	ids        *IDAllocator

	viewport opstream.Viewport

	// transform is the CTM accumulated since page start, not including
	// the viewport's base transform.
	transform      model.Matrix
	transformStack []model.Matrix
	extraStack     []*gstate.State
	current        *gstate.State

	// svg is the current output parent: the page's root group, or the
	// pattern sub-canvas during tiling evaluation.
	svg  *svgdom.Element
	defs *svgdom.Element

	// tgrp is the lazily created group carrying the current CTM.
	tgrp *svgdom.Element

	cssStyle      *svgdom.Element
	embeddedFonts map[string]bool
}

// New creates a renderer reading fonts from common and image data from page.
func New(common, page *objstore.Store, cfg Config) *Renderer {
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}
	ids := cfg.IDs
	if ids == nil {
		ids = sharedIDs
	}
	return &Renderer{
		log:           log,
		commonObjs:    common,
		objs:          page,
		forceData:     cfg.ForceDataURLs,
		embedFonts:    cfg.EmbedFonts,
		ids:           ids,
		transform:     model.Identity(),
		current:       gstate.New(),
		embeddedFonts: make(map[string]bool),
	}
}

// Render interprets the operator list against the viewport and returns the
// root <svg> element. It blocks until every object named by a dependency
// operator has resolved, or ctx is cancelled.
func (r *Renderer) Render(ctx context.Context, list *opstream.OperatorList, viewport opstream.Viewport) (*svgdom.Element, error) {
	root, err := svgdom.NewSVG(viewport.Width, viewport.Height)
	if err != nil {
		return nil, err
	}
	r.viewport = viewport

	r.defs = svgdom.New("defs")
	root.Append(r.defs)

	rootGroup := svgdom.New("g")
	rootGroup.SetAttr("transform", svgdom.FormatTransform(viewport.Transform))
	root.Append(rootGroup)
	r.svg = rootGroup

	if err := objstore.Await(ctx, r.commonObjs, r.objs, list.Dependencies()); err != nil {
		return nil, fmt.Errorf("waiting for dependencies: %w", err)
	}

	tree, err := opstream.Flatten(list)
	if err != nil {
		return nil, err
	}

	r.transform = model.Identity()
	if err := r.executeTree(tree); err != nil {
		return nil, err
	}
	r.endTransformGroup()
	return root, nil
}

func (r *Renderer) executeTree(nodes []opstream.Node) error {
	for i := range nodes {
		if err := r.execute(&nodes[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) execute(n *opstream.Node) error {
	args := n.Args

	switch n.Op {
	case opstream.OpGroup:
		return r.group(n.Items)

	// State manipulation.
	case opstream.OpTransform:
		if m, ok := opstream.AsMatrix(args); ok {
			r.transformOp(m)
		}
	case opstream.OpSetGState:
		return r.setGState(args)
	case opstream.OpSetLineWidth:
		r.setLineWidth(opstream.Num(arg(args, 0)))
	case opstream.OpSetLineCap:
		r.setLineCap(int(opstream.Num(arg(args, 0))))
	case opstream.OpSetLineJoin:
		r.setLineJoin(int(opstream.Num(arg(args, 0))))
	case opstream.OpSetMiterLimit:
		r.current.MiterLimit = opstream.Num(arg(args, 0))
	case opstream.OpSetDash:
		r.setDash(opstream.Nums(arg(args, 0)), opstream.Num(arg(args, 1)))

	// Colors.
	case opstream.OpSetStrokeRGBColor, opstream.OpSetStrokeColor:
		r.current.StrokeColor = rgbArg(args)
	case opstream.OpSetFillRGBColor, opstream.OpSetFillColor:
		r.setFillColor(rgbArg(args))
	case opstream.OpSetStrokeGray:
		r.current.StrokeColor = grayArg(args)
	case opstream.OpSetFillGray:
		r.setFillColor(grayArg(args))
	case opstream.OpSetStrokeCMYKColor:
		r.current.StrokeColor = cmykArg(args)
	case opstream.OpSetFillCMYKColor:
		r.setFillColor(cmykArg(args))
	case opstream.OpSetStrokeColorN:
		color, err := r.makeColorN(args)
		if err != nil {
			return err
		}
		r.current.StrokeColor = color
	case opstream.OpSetFillColorN:
		color, err := r.makeColorN(args)
		if err != nil {
			return err
		}
		r.current.FillColor = color

	// Path construction and painting.
	case opstream.OpConstructPath:
		r.constructPath(opstream.Nums(arg(args, 0)), opstream.Nums(arg(args, 1)))
	case opstream.OpEndPath:
		r.endPath()
	case opstream.OpFill:
		r.fill()
	case opstream.OpEOFill:
		r.eoFill()
	case opstream.OpStroke:
		r.stroke()
	case opstream.OpFillStroke:
		r.fillStroke()
	case opstream.OpEOFillStroke:
		r.setFillRule("evenodd")
		r.fillStroke()
	case opstream.OpClosePath:
		r.closePath()
	case opstream.OpCloseStroke:
		r.closePath()
		r.stroke()
	case opstream.OpCloseFillStroke:
		r.closePath()
		r.fillStroke()
	case opstream.OpCloseEOFillStroke:
		r.closePath()
		r.setFillRule("evenodd")
		r.fillStroke()
	case opstream.OpShadingFill:
		return r.shadingFill(args)

	// Text.
	case opstream.OpBeginText:
		r.beginText()
	case opstream.OpSetLeading:
		r.current.Leading = -opstream.Num(arg(args, 0))
	case opstream.OpSetLeadingMoveText:
		r.current.Leading = -opstream.Num(arg(args, 1))
		r.moveText(opstream.Num(arg(args, 0)), opstream.Num(arg(args, 1)))
	case opstream.OpSetCharSpacing:
		r.current.CharSpacing = opstream.Num(arg(args, 0))
	case opstream.OpSetWordSpacing:
		r.current.WordSpacing = opstream.Num(arg(args, 0))
	case opstream.OpSetHScale:
		r.current.TextHScale = opstream.Num(arg(args, 0)) / 100
	case opstream.OpSetTextRise:
		r.current.TextRise = opstream.Num(arg(args, 0))
	case opstream.OpSetTextRenderingMode:
		r.current.TextRenderMode = gstate.TextRenderingMode(opstream.Num(arg(args, 0)))
	case opstream.OpSetFont:
		r.setFont(args)
	case opstream.OpMoveText:
		r.moveText(opstream.Num(arg(args, 0)), opstream.Num(arg(args, 1)))
	case opstream.OpNextLine:
		r.nextLine()
	case opstream.OpSetTextMatrix:
		if m, ok := opstream.AsMatrix(args); ok {
			r.setTextMatrix(m)
		}
	case opstream.OpShowText, opstream.OpShowSpacedText:
		r.showText(glyphItems(arg(args, 0)))
	case opstream.OpNextLineShowText:
		r.nextLine()
		r.showText(glyphItems(arg(args, 0)))
	case opstream.OpNextLineShowSpacedText:
		r.current.WordSpacing = opstream.Num(arg(args, 0))
		r.current.CharSpacing = opstream.Num(arg(args, 1))
		r.nextLine()
		r.showText(glyphItems(arg(args, 2)))

	// Images and form XObjects.
	case opstream.OpPaintSolidColorImageMask:
		r.paintSolidColorImageMask()
	case opstream.OpPaintImageXObject:
		return r.paintImageXObject(opstream.Str(arg(args, 0)))
	case opstream.OpPaintInlineImageXObject:
		img, ok := arg(args, 0).(*opstream.ImageData)
		if !ok {
			return fmt.Errorf("paintInlineImageXObject: unexpected argument %T", arg(args, 0))
		}
		return r.paintInlineImageXObject(img, nil)
	case opstream.OpPaintImageMaskXObject:
		img, ok := arg(args, 0).(*opstream.ImageData)
		if !ok {
			return fmt.Errorf("paintImageMaskXObject: unexpected argument %T", arg(args, 0))
		}
		return r.paintImageMaskXObject(img)
	case opstream.OpPaintFormXObjectBegin:
		if m, ok := opstream.AsMatrix(arg(args, 0)); ok {
			r.transformOp(m)
		}
	case opstream.OpPaintFormXObjectEnd:
		// Balanced by the producer's surrounding save/restore.

	// Accepted no-ops: dependencies are preloaded, clipping and marked
	// content are out of scope, endText has nothing to flush.
	case opstream.OpDependency, opstream.OpEndText,
		opstream.OpClip, opstream.OpEOClip,
		opstream.OpSetRenderingIntent, opstream.OpSetFlatness,
		opstream.OpMarkPoint, opstream.OpMarkPointProps,
		opstream.OpBeginMarkedContent, opstream.OpBeginMarkedContentProps,
		opstream.OpEndMarkedContent,
		opstream.OpBeginCompat, opstream.OpEndCompat,
		opstream.OpBeginAnnotations, opstream.OpEndAnnotations,
		opstream.OpBeginAnnotation, opstream.OpEndAnnotation:

	default:
		r.log.Warn("unimplemented operator", zap.Stringer("op", n.Op))
	}
	return nil
}

// save pushes the CTM and a field-level clone of the current state.
func (r *Renderer) save() {
	r.transformStack = append(r.transformStack, r.transform)
	r.extraStack = append(r.extraStack, r.current)
	r.current = r.current.Clone()
}

// restore pops both stacks and closes the current transform group.
func (r *Renderer) restore() error {
	if len(r.extraStack) == 0 || len(r.transformStack) == 0 {
		return fmt.Errorf("restore on empty state stack")
	}
	r.transform = r.transformStack[len(r.transformStack)-1]
	r.transformStack = r.transformStack[:len(r.transformStack)-1]
	r.current = r.extraStack[len(r.extraStack)-1]
	r.extraStack = r.extraStack[:len(r.extraStack)-1]
	r.endTransformGroup()
	return nil
}

// group evaluates a flattened save…restore range as a nested scope.
func (r *Renderer) group(items []opstream.Node) error {
	r.save()
	if err := r.executeTree(items); err != nil {
		return err
	}
	return r.restore()
}

// transformOp folds a cm matrix into the CTM. The current transform group
// is closed so the next emission opens a group at the new CTM.
func (r *Renderer) transformOp(m model.Matrix) {
	r.transform = m.Multiply(r.transform)
	r.endTransformGroup()
}

// ensureTransformGroup returns the group carrying the current CTM, creating
// and attaching it on first use.
func (r *Renderer) ensureTransformGroup() *svgdom.Element {
	if r.tgrp == nil {
		r.tgrp = svgdom.New("g")
		r.tgrp.SetAttr("transform", svgdom.FormatTransform(r.transform))
		r.svg.Append(r.tgrp)
	}
	return r.tgrp
}

// endTransformGroup closes the current transform group, removing it from
// the output when nothing was emitted into it.
func (r *Renderer) endTransformGroup() {
	if r.tgrp != nil && r.tgrp.ChildCount() == 0 {
		r.tgrp.Remove()
	}
	r.tgrp = nil
}

func (r *Renderer) setLineWidth(w float64) {
	if w > 0 {
		r.current.LineWidth = w
	}
}

var lineCapStyles = []string{"butt", "round", "square"}
var lineJoinStyles = []string{"miter", "round", "bevel"}

func (r *Renderer) setLineCap(style int) {
	if style >= 0 && style < len(lineCapStyles) {
		r.current.LineCap = lineCapStyles[style]
	}
}

func (r *Renderer) setLineJoin(style int) {
	if style >= 0 && style < len(lineJoinStyles) {
		r.current.LineJoin = lineJoinStyles[style]
	}
}

func (r *Renderer) setDash(dashes []float64, phase float64) {
	r.current.DashArray = dashes
	r.current.DashPhase = phase
}

// setGState applies an ExtGState parameter list of (key, value) pairs.
func (r *Renderer) setGState(args []interface{}) error {
	pairs, _ := arg(args, 0).([]interface{})
	for _, p := range pairs {
		pair, ok := p.([]interface{})
		if !ok || len(pair) < 2 {
			continue
		}
		key := opstream.Str(pair[0])
		value := pair[1]

		switch key {
		case "LW":
			r.setLineWidth(opstream.Num(value))
		case "LC":
			r.setLineCap(int(opstream.Num(value)))
		case "LJ":
			r.setLineJoin(int(opstream.Num(value)))
		case "ML":
			r.current.MiterLimit = opstream.Num(value)
		case "D":
			if dash, ok := value.([]interface{}); ok && len(dash) >= 2 {
				r.setDash(opstream.Nums(dash[0]), opstream.Num(dash[1]))
			}
		case "RI", "FL":
			// Rendering intent and flatness have no SVG counterpart.
		case "Font":
			if font, ok := value.([]interface{}); ok {
				r.setFont(font)
			}
		case "CA":
			r.current.StrokeAlpha = opstream.Num(value)
		case "ca":
			r.current.FillAlpha = opstream.Num(value)
		default:
			r.log.Warn("unimplemented graphic state operator", zap.String("key", key))
		}
	}
	return nil
}

// arg returns args[i], or nil when out of range.
func arg(args []interface{}, i int) interface{} {
	if i < 0 || i >= len(args) {
		return nil
	}
	return args[i]
}

// glyphItems extracts a showText argument's item slice.
func glyphItems(v interface{}) []interface{} {
	items, _ := v.([]interface{})
	return items
}

func rgbArg(args []interface{}) string {
	return svgdom.HexColor(
		opstream.Num(arg(args, 0)),
		opstream.Num(arg(args, 1)),
		opstream.Num(arg(args, 2)),
	)
}

func grayArg(args []interface{}) string {
	v := opstream.Num(arg(args, 0)) * 255
	return svgdom.HexColor(v, v, v)
}

func cmykArg(args []interface{}) string {
	c := opstream.Num(arg(args, 0))
	m := opstream.Num(arg(args, 1))
	y := opstream.Num(arg(args, 2))
	k := opstream.Num(arg(args, 3))
	return svgdom.HexColor(255*(1-c)*(1-k), 255*(1-m)*(1-k), 255*(1-y)*(1-k))
}
