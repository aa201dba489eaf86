package opstream

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/tsawler/vellum/model"
)

// Document is a decoded operator-stream interchange file: one entry per
// page, each carrying its viewport, operator list, and object stores.
type Document struct {
	Pages []Page
}

// Page is one page of a Document.
type Page struct {
	Viewport      Viewport
	List          *OperatorList
	Objects       map[string]interface{}
	CommonObjects map[string]interface{}
}

// jsonPage mirrors the interchange schema emitted by the upstream parser.
type jsonPage struct {
	Width         float64                    `json:"width"`
	Height        float64                    `json:"height"`
	Transform     []float64                  `json:"transform"`
	FnArray       []int                      `json:"fnArray"`
	ArgsArray     [][]interface{}            `json:"argsArray"`
	Objects       map[string]json.RawMessage `json:"objects"`
	CommonObjects map[string]json.RawMessage `json:"commonObjects"`
}

type jsonDocument struct {
	Pages []jsonPage `json:"pages"`
}

type jsonObject struct {
	Type string `json:"type"`

	// Font fields.
	LoadedName      string    `json:"loadedName"`
	FontMatrix      []float64 `json:"fontMatrix"`
	Vertical        bool      `json:"vertical"`
	Bold            bool      `json:"bold"`
	Black           bool      `json:"black"`
	Italic          bool      `json:"italic"`
	DefaultVMetrics []float64 `json:"defaultVMetrics"`
	MissingFile     bool      `json:"missingFile"`
	MIMEType        string    `json:"mimetype"`

	// Image fields.
	Width  int `json:"width"`
	Height int `json:"height"`
	Kind   int `json:"kind"`

	// Base64 payload shared by fonts and images.
	Data string `json:"data"`
}

// ReadDocument decodes an interchange document from r.
func ReadDocument(r io.Reader) (*Document, error) {
	var raw jsonDocument
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding operator document: %w", err)
	}

	doc := &Document{Pages: make([]Page, 0, len(raw.Pages))}
	for i, jp := range raw.Pages {
		page, err := convertPage(jp)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}
		doc.Pages = append(doc.Pages, page)
	}
	return doc, nil
}

// ReadDocumentFile decodes an interchange document from a file.
func ReadDocumentFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadDocument(f)
}

func convertPage(jp jsonPage) (Page, error) {
	if len(jp.FnArray) != len(jp.ArgsArray) {
		return Page{}, fmt.Errorf("fnArray and argsArray lengths differ (%d vs %d)",
			len(jp.FnArray), len(jp.ArgsArray))
	}

	transform := model.Identity()
	if len(jp.Transform) == 6 {
		copy(transform[:], jp.Transform)
	}

	list := &OperatorList{
		FnArray:   make([]Opcode, len(jp.FnArray)),
		ArgsArray: jp.ArgsArray,
	}
	for i, id := range jp.FnArray {
		list.FnArray[i] = Opcode(id)
	}
	if err := normalizeList(list); err != nil {
		return Page{}, err
	}

	objects, err := convertObjects(jp.Objects)
	if err != nil {
		return Page{}, err
	}
	commonObjects, err := convertObjects(jp.CommonObjects)
	if err != nil {
		return Page{}, err
	}

	return Page{
		Viewport: Viewport{
			Width:     jp.Width,
			Height:    jp.Height,
			Transform: transform,
		},
		List:          list,
		Objects:       objects,
		CommonObjects: commonObjects,
	}, nil
}

// normalizeList rewrites decoded argument vectors into their typed wire
// shapes: showText glyph maps become *Glyph values, and the nested operator
// lists carried by pattern arguments become *OperatorList, recursively.
func normalizeList(list *OperatorList) error {
	for i, op := range list.FnArray {
		args := list.ArgsArray[i]
		switch op {
		case OpShowText, OpShowSpacedText, OpNextLineShowText:
			if len(args) > 0 {
				args[0] = convertGlyphItems(args[0])
			}
		case OpNextLineShowSpacedText:
			if len(args) > 2 {
				args[2] = convertGlyphItems(args[2])
			}
		case OpSetFillColorN, OpSetStrokeColorN, OpShadingFill:
			if err := convertNestedLists(args); err != nil {
				return fmt.Errorf("operator %d (%s): %w", i, op, err)
			}
		}
	}
	return nil
}

// convertNestedLists replaces any {fnArray, argsArray} map in args with a
// normalized *OperatorList.
func convertNestedLists(args []interface{}) error {
	for i, a := range args {
		m, ok := a.(map[string]interface{})
		if !ok {
			continue
		}
		if _, hasFn := m["fnArray"]; !hasFn {
			continue
		}
		nested, err := convertRawList(m)
		if err != nil {
			return err
		}
		args[i] = nested
	}
	return nil
}

func convertRawList(m map[string]interface{}) (*OperatorList, error) {
	fnRaw, _ := m["fnArray"].([]interface{})
	argsRaw, _ := m["argsArray"].([]interface{})
	if len(fnRaw) != len(argsRaw) {
		return nil, fmt.Errorf("nested list shape mismatch (%d vs %d)", len(fnRaw), len(argsRaw))
	}

	list := &OperatorList{
		FnArray:   make([]Opcode, len(fnRaw)),
		ArgsArray: make([][]interface{}, len(argsRaw)),
	}
	for i := range fnRaw {
		list.FnArray[i] = Opcode(Num(fnRaw[i]))
		if args, ok := argsRaw[i].([]interface{}); ok {
			list.ArgsArray[i] = args
		}
	}
	if err := normalizeList(list); err != nil {
		return nil, err
	}
	return list, nil
}

// convertGlyphItems rewrites a decoded showText argument: glyph maps become
// *Glyph, numeric kerning adjustments and nil word breaks pass through.
func convertGlyphItems(v interface{}) interface{} {
	items, ok := v.([]interface{})
	if !ok {
		return v
	}
	for i, item := range items {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		g := &Glyph{
			FontChar: Str(m["fontChar"]),
			Width:    Num(m["width"]),
		}
		if b, ok := m["isSpace"].(bool); ok {
			g.IsSpace = b
		}
		if b, ok := m["isInFont"].(bool); ok {
			g.IsInFont = b
		}
		if vm := Nums(m["vmetric"]); len(vm) == 3 {
			g.VMetric = vm
		}
		items[i] = g
	}
	return items
}

func convertObjects(raw map[string]json.RawMessage) (map[string]interface{}, error) {
	if raw == nil {
		return nil, nil
	}
	out := make(map[string]interface{}, len(raw))
	for id, msg := range raw {
		var jo jsonObject
		if err := json.Unmarshal(msg, &jo); err != nil {
			return nil, fmt.Errorf("object %q: %w", id, err)
		}

		var data []byte
		if jo.Data != "" {
			var err error
			data, err = base64.StdEncoding.DecodeString(jo.Data)
			if err != nil {
				return nil, fmt.Errorf("object %q: decoding data: %w", id, err)
			}
		}

		switch jo.Type {
		case "font":
			out[id] = &Font{
				LoadedName:      jo.LoadedName,
				FontMatrix:      jo.FontMatrix,
				Vertical:        jo.Vertical,
				Bold:            jo.Bold,
				Black:           jo.Black,
				Italic:          jo.Italic,
				DefaultVMetrics: jo.DefaultVMetrics,
				MissingFile:     jo.MissingFile,
				Data:            data,
				MIMEType:        jo.MIMEType,
			}
		case "image":
			out[id] = &ImageData{
				Width:  jo.Width,
				Height: jo.Height,
				Kind:   jo.Kind,
				Data:   data,
			}
		default:
			return nil, fmt.Errorf("object %q: unknown type %q", id, jo.Type)
		}
	}
	return out, nil
}
