package main

import (
	"os"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// pageSVG pairs a rendered page with its number for the preview document.
type pageSVG struct {
	num    int
	markup string
}

// writePreview builds an HTML document embedding every rendered page inline
// and writes it to path. The document is assembled as an html.Node tree so
// the surrounding markup is always well formed; the SVG payloads are
// injected as raw nodes since they are already serialized XML.
func writePreview(path, title string, pages []pageSVG) error {
	body := element(atom.Body)
	for _, page := range pages {
		section := element(atom.Div)
		section.Attr = []html.Attribute{{Key: "class", Val: "page"}}
		section.AppendChild(&html.Node{Type: html.RawNode, Data: page.markup})
		body.AppendChild(section)
	}

	titleNode := element(atom.Title)
	titleNode.AppendChild(&html.Node{Type: html.TextNode, Data: title})
	head := element(atom.Head)
	head.AppendChild(titleNode)

	root := element(atom.Html)
	root.AppendChild(head)
	root.AppendChild(body)

	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	doc.AppendChild(root)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := html.Render(f, doc); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func element(a atom.Atom) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
	}
}
