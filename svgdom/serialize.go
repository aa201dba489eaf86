package svgdom

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"
)

// prefix returns the conventional prefix for a namespaced attribute. Unknown
// namespaces fall back to the local name; the renderer only ever uses the
// xml and xlink namespaces.
func prefix(space string) string {
	switch space {
	case XMLNamespace:
		return "xml"
	case XLinkNamespace:
		return "xlink"
	default:
		return ""
	}
}

// WriteTo serializes the element and its subtree as XML. The root <svg>
// element additionally declares the SVG and XLink namespaces so the output
// is a standalone document.
func (e *Element) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	err := e.write(cw, true)
	return cw.n, err
}

// String serializes the element and its subtree to a string.
func (e *Element) String() string {
	var buf bytes.Buffer
	_, _ = e.WriteTo(&buf)
	return buf.String()
}

func (e *Element) write(w *countingWriter, root bool) error {
	if err := w.writeString("<" + e.Tag); err != nil {
		return err
	}

	if root && e.Tag == "svg" {
		if err := w.writeString(` xmlns="` + SVGNamespace + `" xmlns:xlink="` + XLinkNamespace + `"`); err != nil {
			return err
		}
	}

	for _, a := range e.attrs {
		name := a.Name
		if p := prefix(a.Space); p != "" && !strings.Contains(name, ":") {
			name = p + ":" + name
		}
		if err := w.writeString(" " + name + `="` + escape(a.Value) + `"`); err != nil {
			return err
		}
	}

	if len(e.children) == 0 && e.text == "" {
		return w.writeString("/>")
	}

	if err := w.writeString(">"); err != nil {
		return err
	}
	if e.text != "" {
		if err := w.writeString(escape(e.text)); err != nil {
			return err
		}
	}
	for _, c := range e.children {
		if err := c.write(w, false); err != nil {
			return err
		}
	}
	return w.writeString("</" + e.Tag + ">")
}

// escape XML-escapes character data and attribute values.
func escape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) writeString(s string) error {
	n, err := io.WriteString(cw.w, s)
	cw.n += int64(n)
	return err
}
