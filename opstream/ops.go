package opstream

import "strconv"

// Opcode identifies a single graphics operator. The id space is stable
// across producer versions; ids are never renumbered.
type Opcode int

// Operator ids as published by the content-stream producer.
const (
	OpDependency                  Opcode = 1
	OpSetLineWidth                Opcode = 2
	OpSetLineCap                  Opcode = 3
	OpSetLineJoin                 Opcode = 4
	OpSetMiterLimit               Opcode = 5
	OpSetDash                     Opcode = 6
	OpSetRenderingIntent          Opcode = 7
	OpSetFlatness                 Opcode = 8
	OpSetGState                   Opcode = 9
	OpSave                        Opcode = 10
	OpRestore                     Opcode = 11
	OpTransform                   Opcode = 12
	OpMoveTo                      Opcode = 13
	OpLineTo                      Opcode = 14
	OpCurveTo                     Opcode = 15
	OpCurveTo2                    Opcode = 16
	OpCurveTo3                    Opcode = 17
	OpClosePath                   Opcode = 18
	OpRectangle                   Opcode = 19
	OpStroke                      Opcode = 20
	OpCloseStroke                 Opcode = 21
	OpFill                        Opcode = 22
	OpEOFill                      Opcode = 23
	OpFillStroke                  Opcode = 24
	OpEOFillStroke                Opcode = 25
	OpCloseFillStroke             Opcode = 26
	OpCloseEOFillStroke           Opcode = 27
	OpEndPath                     Opcode = 28
	OpClip                        Opcode = 29
	OpEOClip                      Opcode = 30
	OpBeginText                   Opcode = 31
	OpEndText                     Opcode = 32
	OpSetCharSpacing              Opcode = 33
	OpSetWordSpacing              Opcode = 34
	OpSetHScale                   Opcode = 35
	OpSetLeading                  Opcode = 36
	OpSetFont                     Opcode = 37
	OpSetTextRenderingMode        Opcode = 38
	OpSetTextRise                 Opcode = 39
	OpMoveText                    Opcode = 40
	OpSetLeadingMoveText          Opcode = 41
	OpSetTextMatrix               Opcode = 42
	OpNextLine                    Opcode = 43
	OpShowText                    Opcode = 44
	OpShowSpacedText              Opcode = 45
	OpNextLineShowText            Opcode = 46
	OpNextLineShowSpacedText      Opcode = 47
	OpSetCharWidth                Opcode = 48
	OpSetCharWidthAndBounds       Opcode = 49
	OpSetStrokeColorSpace         Opcode = 50
	OpSetFillColorSpace           Opcode = 51
	OpSetStrokeColor              Opcode = 52
	OpSetStrokeColorN             Opcode = 53
	OpSetFillColor                Opcode = 54
	OpSetFillColorN               Opcode = 55
	OpSetStrokeGray               Opcode = 56
	OpSetFillGray                 Opcode = 57
	OpSetStrokeRGBColor           Opcode = 58
	OpSetFillRGBColor             Opcode = 59
	OpSetStrokeCMYKColor          Opcode = 60
	OpSetFillCMYKColor            Opcode = 61
	OpShadingFill                 Opcode = 62
	OpBeginInlineImage            Opcode = 63
	OpBeginImageData              Opcode = 64
	OpEndInlineImage              Opcode = 65
	OpPaintXObject                Opcode = 66
	OpMarkPoint                   Opcode = 67
	OpMarkPointProps              Opcode = 68
	OpBeginMarkedContent          Opcode = 69
	OpBeginMarkedContentProps     Opcode = 70
	OpEndMarkedContent            Opcode = 71
	OpBeginCompat                 Opcode = 72
	OpEndCompat                   Opcode = 73
	OpPaintFormXObjectBegin       Opcode = 74
	OpPaintFormXObjectEnd         Opcode = 75
	OpBeginGroup                  Opcode = 76
	OpEndGroup                    Opcode = 77
	OpBeginAnnotations            Opcode = 78
	OpEndAnnotations              Opcode = 79
	OpBeginAnnotation             Opcode = 80
	OpEndAnnotation               Opcode = 81
	OpPaintJpegXObject            Opcode = 82
	OpPaintImageXObject           Opcode = 83
	OpPaintInlineImageXObject     Opcode = 84
	OpPaintInlineImageXObjectGrp  Opcode = 85
	OpPaintImageMaskXObject       Opcode = 86
	OpPaintImageMaskXObjectGroup  Opcode = 87
	OpPaintImageMaskXObjectRepeat Opcode = 88
	OpPaintImageXObjectRepeat     Opcode = 89
	OpPaintSolidColorImageMask    Opcode = 90
	OpConstructPath               Opcode = 91

	// OpGroup is synthetic: it never appears in a producer stream and is
	// emitted only by Flatten to wrap a save…restore range.
	OpGroup Opcode = 92
)

var opNames = map[Opcode]string{
	OpDependency:                  "dependency",
	OpSetLineWidth:                "setLineWidth",
	OpSetLineCap:                  "setLineCap",
	OpSetLineJoin:                 "setLineJoin",
	OpSetMiterLimit:               "setMiterLimit",
	OpSetDash:                     "setDash",
	OpSetRenderingIntent:          "setRenderingIntent",
	OpSetFlatness:                 "setFlatness",
	OpSetGState:                   "setGState",
	OpSave:                        "save",
	OpRestore:                     "restore",
	OpTransform:                   "transform",
	OpMoveTo:                      "moveTo",
	OpLineTo:                      "lineTo",
	OpCurveTo:                     "curveTo",
	OpCurveTo2:                    "curveTo2",
	OpCurveTo3:                    "curveTo3",
	OpClosePath:                   "closePath",
	OpRectangle:                   "rectangle",
	OpStroke:                      "stroke",
	OpCloseStroke:                 "closeStroke",
	OpFill:                        "fill",
	OpEOFill:                      "eoFill",
	OpFillStroke:                  "fillStroke",
	OpEOFillStroke:                "eoFillStroke",
	OpCloseFillStroke:             "closeFillStroke",
	OpCloseEOFillStroke:           "closeEOFillStroke",
	OpEndPath:                     "endPath",
	OpClip:                        "clip",
	OpEOClip:                      "eoClip",
	OpBeginText:                   "beginText",
	OpEndText:                     "endText",
	OpSetCharSpacing:              "setCharSpacing",
	OpSetWordSpacing:              "setWordSpacing",
	OpSetHScale:                   "setHScale",
	OpSetLeading:                  "setLeading",
	OpSetFont:                     "setFont",
	OpSetTextRenderingMode:        "setTextRenderingMode",
	OpSetTextRise:                 "setTextRise",
	OpMoveText:                    "moveText",
	OpSetLeadingMoveText:          "setLeadingMoveText",
	OpSetTextMatrix:               "setTextMatrix",
	OpNextLine:                    "nextLine",
	OpShowText:                    "showText",
	OpShowSpacedText:              "showSpacedText",
	OpNextLineShowText:            "nextLineShowText",
	OpNextLineShowSpacedText:      "nextLineShowSpacedText",
	OpSetCharWidth:                "setCharWidth",
	OpSetCharWidthAndBounds:       "setCharWidthAndBounds",
	OpSetStrokeColorSpace:         "setStrokeColorSpace",
	OpSetFillColorSpace:           "setFillColorSpace",
	OpSetStrokeColor:              "setStrokeColor",
	OpSetStrokeColorN:             "setStrokeColorN",
	OpSetFillColor:                "setFillColor",
	OpSetFillColorN:               "setFillColorN",
	OpSetStrokeGray:               "setStrokeGray",
	OpSetFillGray:                 "setFillGray",
	OpSetStrokeRGBColor:           "setStrokeRGBColor",
	OpSetFillRGBColor:             "setFillRGBColor",
	OpSetStrokeCMYKColor:          "setStrokeCMYKColor",
	OpSetFillCMYKColor:            "setFillCMYKColor",
	OpShadingFill:                 "shadingFill",
	OpBeginInlineImage:            "beginInlineImage",
	OpBeginImageData:              "beginImageData",
	OpEndInlineImage:              "endInlineImage",
	OpPaintXObject:                "paintXObject",
	OpMarkPoint:                   "markPoint",
	OpMarkPointProps:              "markPointProps",
	OpBeginMarkedContent:          "beginMarkedContent",
	OpBeginMarkedContentProps:     "beginMarkedContentProps",
	OpEndMarkedContent:            "endMarkedContent",
	OpBeginCompat:                 "beginCompat",
	OpEndCompat:                   "endCompat",
	OpPaintFormXObjectBegin:       "paintFormXObjectBegin",
	OpPaintFormXObjectEnd:         "paintFormXObjectEnd",
	OpBeginGroup:                  "beginGroup",
	OpEndGroup:                    "endGroup",
	OpBeginAnnotations:            "beginAnnotations",
	OpEndAnnotations:              "endAnnotations",
	OpBeginAnnotation:             "beginAnnotation",
	OpEndAnnotation:               "endAnnotation",
	OpPaintJpegXObject:            "paintJpegXObject",
	OpPaintImageXObject:           "paintImageXObject",
	OpPaintInlineImageXObject:     "paintInlineImageXObject",
	OpPaintInlineImageXObjectGrp:  "paintInlineImageXObjectGroup",
	OpPaintImageMaskXObject:       "paintImageMaskXObject",
	OpPaintImageMaskXObjectGroup:  "paintImageMaskXObjectGroup",
	OpPaintImageMaskXObjectRepeat: "paintImageMaskXObjectRepeat",
	OpPaintImageXObjectRepeat:     "paintImageXObjectRepeat",
	OpPaintSolidColorImageMask:    "paintSolidColorImageMask",
	OpConstructPath:               "constructPath",
	OpGroup:                       "group",
}

// String returns the operator's symbolic name, or its decimal id for
// opcodes outside the published table.
func (op Opcode) String() string {
	if name, ok := opNames[op]; ok {
		return name
	}
	return strconv.Itoa(int(op))
}
