package svgdom

import (
	"fmt"
)

// Namespace URIs used in generated documents.
const (
	SVGNamespace   = "http://www.w3.org/2000/svg"
	XMLNamespace   = "http://www.w3.org/XML/1998/namespace"
	XLinkNamespace = "http://www.w3.org/1999/xlink"
)

// Attr is a single attribute. Space is empty for un-namespaced attributes.
type Attr struct {
	Space string
	Name  string
	Value string
}

// Element is a node in the SVG document tree. Character data is modeled as
// a text accumulator rather than separate text nodes; no element emitted by
// the renderer mixes text and element children.
type Element struct {
	Space string
	Tag   string

	attrs    []Attr
	children []*Element
	text     string
	parent   *Element
}

// New creates an element in the SVG namespace.
func New(tag string) *Element {
	return &Element{Space: SVGNamespace, Tag: tag}
}

// NewSVG creates a root <svg> container with a viewBox covering the given
// dimensions. Non-positive dimensions are an input-shape error.
func NewSVG(width, height float64) (*Element, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid SVG dimensions %gx%g", width, height)
	}

	svg := New("svg")
	svg.SetAttr("version", "1.1")
	svg.SetAttr("width", FormatFloat(width)+"px")
	svg.SetAttr("height", FormatFloat(height)+"px")
	svg.SetAttr("preserveAspectRatio", "none")
	svg.SetAttr("viewBox", fmt.Sprintf("0 0 %s %s", FormatFloat(width), FormatFloat(height)))
	return svg, nil
}

// SetAttr sets an un-namespaced attribute, replacing any previous value.
func (e *Element) SetAttr(name, value string) {
	e.setAttr("", name, value)
}

// SetAttrNS sets an attribute in the given namespace, replacing any previous
// value with the same namespace and name.
func (e *Element) SetAttrNS(space, name, value string) {
	e.setAttr(space, name, value)
}

func (e *Element) setAttr(space, name, value string) {
	for i := range e.attrs {
		if e.attrs[i].Space == space && e.attrs[i].Name == name {
			e.attrs[i].Value = value
			return
		}
	}
	e.attrs = append(e.attrs, Attr{Space: space, Name: name, Value: value})
}

// Attr returns the value of an un-namespaced attribute, or "" when absent.
func (e *Element) Attr(name string) string {
	for _, a := range e.attrs {
		if a.Space == "" && a.Name == name {
			return a.Value
		}
	}
	return ""
}

// HasAttr reports whether an un-namespaced attribute is present.
func (e *Element) HasAttr(name string) bool {
	for _, a := range e.attrs {
		if a.Space == "" && a.Name == name {
			return true
		}
	}
	return false
}

// Attrs returns the attributes in insertion order.
func (e *Element) Attrs() []Attr {
	return e.attrs
}

// Append adds child as the last child, detaching it from any previous parent.
func (e *Element) Append(child *Element) {
	if child.parent == e {
		// Re-appending moves the child to the end.
		e.removeChild(child)
	} else if child.parent != nil {
		child.parent.removeChild(child)
	}
	child.parent = e
	e.children = append(e.children, child)
}

// Remove detaches the element from its parent. Removing a parentless element
// is a no-op.
func (e *Element) Remove() {
	if e.parent != nil {
		e.parent.removeChild(e)
		e.parent = nil
	}
}

func (e *Element) removeChild(child *Element) {
	for i, c := range e.children {
		if c == child {
			e.children = append(e.children[:i], e.children[i+1:]...)
			return
		}
	}
}

// Parent returns the element's parent, or nil for a detached element.
func (e *Element) Parent() *Element {
	return e.parent
}

// Children returns the child elements in document order.
func (e *Element) Children() []*Element {
	return e.children
}

// FirstChild returns the first child element, or nil.
func (e *Element) FirstChild() *Element {
	if len(e.children) == 0 {
		return nil
	}
	return e.children[0]
}

// ChildCount returns the number of child elements.
func (e *Element) ChildCount() int {
	return len(e.children)
}

// AppendText appends character data to the element's text content.
func (e *Element) AppendText(s string) {
	e.text += s
}

// SetText replaces the element's text content.
func (e *Element) SetText(s string) {
	e.text = s
}

// Text returns the element's text content.
func (e *Element) Text() string {
	return e.text
}
