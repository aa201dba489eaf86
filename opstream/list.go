package opstream

import (
	"fmt"

	"github.com/tsawler/vellum/model"
)

// OperatorList is a page's flattened operator stream: two parallel slices,
// one of opcode ids and one of argument vectors. ArgsArray[i] may be nil for
// operators that take no arguments.
type OperatorList struct {
	FnArray   []Opcode
	ArgsArray [][]interface{}
}

// Len returns the number of operators in the list.
func (l *OperatorList) Len() int {
	return len(l.FnArray)
}

// Push appends an operator and its arguments.
func (l *OperatorList) Push(op Opcode, args ...interface{}) {
	l.FnArray = append(l.FnArray, op)
	l.ArgsArray = append(l.ArgsArray, args)
}

// Dependencies returns every object id referenced by a dependency operator,
// in stream order.
func (l *OperatorList) Dependencies() []string {
	var ids []string
	for i, op := range l.FnArray {
		if op != OpDependency {
			continue
		}
		for _, arg := range l.ArgsArray[i] {
			if id, ok := arg.(string); ok {
				ids = append(ids, id)
			}
		}
	}
	return ids
}

// Node is one operator in the flattened tree. Group nodes (Op == OpGroup)
// carry their children in Items and have no arguments of their own.
type Node struct {
	Op    Opcode
	Args  []interface{}
	Items []Node
}

// Flatten converts the linear operator stream into a tree in which every
// save…restore range becomes a group node. The save and restore markers do
// not appear in the output. Trailing saves are tolerated and remain as open
// groups; a restore without a matching save is a producer-side programmer
// error and is rejected.
func Flatten(list *OperatorList) ([]Node, error) {
	if len(list.FnArray) != len(list.ArgsArray) {
		return nil, fmt.Errorf("operator list shape mismatch: %d opcodes, %d argument vectors",
			len(list.FnArray), len(list.ArgsArray))
	}

	root := []Node{}
	current := &root
	var stack []*[]Node

	for i, op := range list.FnArray {
		switch op {
		case OpSave:
			*current = append(*current, Node{Op: OpGroup})
			stack = append(stack, current)
			current = &(*current)[len(*current)-1].Items
		case OpRestore:
			if len(stack) == 0 {
				return nil, fmt.Errorf("restore at operator %d without matching save", i)
			}
			current = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
		default:
			*current = append(*current, Node{Op: op, Args: list.ArgsArray[i]})
		}
	}

	return root, nil
}

// Viewport describes the page's output size and base transform. It is
// immutable for the duration of a render.
type Viewport struct {
	Width     float64
	Height    float64
	Transform model.Matrix
}

// Glyph is a single positioned glyph within a showText argument vector.
type Glyph struct {
	FontChar string
	Width    float64
	IsSpace  bool
	IsInFont bool

	// VMetric holds [advance, originX, originY] for vertical writing, in
	// glyph-space units. Nil when the font supplies no per-glyph metric.
	VMetric []float64
}

// Font mirrors the producer's font object shape as resolved through the
// common object store.
type Font struct {
	LoadedName      string
	FontMatrix      []float64
	Vertical        bool
	Bold            bool
	Black           bool
	Italic          bool
	DefaultVMetrics []float64
	MissingFile     bool
	Data            []byte
	MIMEType        string
}

// Image data kinds.
const (
	ImageKindGrayscale1BPP = 1
	ImageKindRGB24BPP      = 2
	ImageKindRGBA32BPP     = 3
)

// ImageData mirrors the producer's decoded image object shape. Bitmap is
// non-nil for bitmap-backed variants, which the renderer rejects.
type ImageData struct {
	Width  int
	Height int
	Kind   int
	Data   []byte
	Bitmap interface{}
}
