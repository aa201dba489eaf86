package gstate

import (
	"github.com/tsawler/vellum/model"
	"github.com/tsawler/vellum/opstream"
	"github.com/tsawler/vellum/svgdom"
)

// TextRenderingMode is the Tr operator's bitfield: bits 0–1 select
// fill/stroke/both/invisible, bit 2 adds clip-path semantics.
type TextRenderingMode int

// Text rendering modes.
const (
	TextFill              TextRenderingMode = 0
	TextStroke            TextRenderingMode = 1
	TextFillStroke        TextRenderingMode = 2
	TextInvisible         TextRenderingMode = 3
	TextFillAddToPath     TextRenderingMode = 4
	TextStrokeAddToPath   TextRenderingMode = 5
	TextFillStrokeAddPath TextRenderingMode = 6
	TextAddToPath         TextRenderingMode = 7

	// TextFillStrokeMask selects the fill/stroke bits of a mode.
	TextFillStrokeMask TextRenderingMode = 3
)

// State is the graphics state for one save level.
type State struct {
	// Current user-space point, shared by path construction and text
	// placement.
	X, Y float64

	// Style.
	FillColor   string // hex color or url(#id) pattern reference
	StrokeColor string
	FillAlpha   float64
	StrokeAlpha float64
	LineWidth   float64
	LineCap     string
	LineJoin    string
	MiterLimit  float64
	DashArray   []float64
	DashPhase   float64

	// Font.
	Font          *opstream.Font
	FontMatrix    model.Matrix
	FontSize      float64
	FontSizeScale float64
	FontFamily    string
	FontWeight    string
	FontStyle     string
	FontDirection float64

	// Text placement.
	TextMatrix      model.Matrix
	LineMatrix      model.Matrix
	TextMatrixScale float64
	Leading         float64
	CharSpacing     float64
	WordSpacing     float64
	TextHScale      float64
	TextRise        float64
	TextRenderMode  TextRenderingMode
	LineX, LineY    float64

	// In-progress text nodes and per-glyph coordinate buffers.
	Tspan      *svgdom.Element
	TxtElement *svgdom.Element
	TxtGroup   *svgdom.Element
	XCoords    []float64
	YCoords    []float64

	// In-progress path nodes.
	Path    *svgdom.Element // the <path> whose d is being accumulated
	Element *svgdom.Element // the node the next paint operator decorates
	MaskID  string
}

// New returns a state record with PDF default values.
func New() *State {
	return &State{
		FillColor:   "#000000",
		StrokeColor: "#000000",
		FillAlpha:   1,
		StrokeAlpha: 1,
		LineWidth:   1,
		LineCap:     "butt",
		LineJoin:    "miter",
		MiterLimit:  10,

		FontMatrix:    model.FontIdentity,
		FontSizeScale: 1,
		FontWeight:    "normal",
		FontStyle:     "normal",
		FontDirection: 1,

		TextMatrix:      model.Identity(),
		LineMatrix:      model.Identity(),
		TextMatrixScale: 1,
		TextHScale:      1,
	}
}

// Clone returns a copy for a new save level. Value fields are copied; the
// dash pattern and glyph coordinate buffers are duplicated so later appends
// cannot reach the saved level through a shared backing array. Node
// references stay shared: restore reinstates whatever nodes were pending.
func (s *State) Clone() *State {
	clone := *s
	if s.DashArray != nil {
		clone.DashArray = append([]float64(nil), s.DashArray...)
	}
	if s.XCoords != nil {
		clone.XCoords = append([]float64(nil), s.XCoords...)
	}
	if s.YCoords != nil {
		clone.YCoords = append([]float64(nil), s.YCoords...)
	}
	return &clone
}
