// Package document provides the small, mutable HTML document model the
// theme controller reads and writes: the root element, <head>, class lists
// and attributes.
package document

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is a parsed HTML page.
type Document struct {
	node *html.Node
}

// Parse reads an HTML page. The parser always produces <html>, <head> and
// <body> even for fragments.
func Parse(r io.Reader) (*Document, error) {
	node, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return &Document{node: node}, nil
}

// ParseString is a convenience wrapper around Parse.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// Render writes the document as HTML.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.node)
}

// String renders the document, returning an empty string on error.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// Root returns the <html> element.
func (d *Document) Root() *Element {
	return d.findFirst(func(n *html.Node) bool { return n.DataAtom == atom.Html })
}

// Head returns the <head> element.
func (d *Document) Head() *Element {
	return d.findFirst(func(n *html.Node) bool { return n.DataAtom == atom.Head })
}

// Body returns the <body> element.
func (d *Document) Body() *Element {
	return d.findFirst(func(n *html.Node) bool { return n.DataAtom == atom.Body })
}

// FindByClass returns the first element carrying class, or nil.
func (d *Document) FindByClass(class string) *Element {
	return d.findFirst(func(n *html.Node) bool {
		return hasToken(attr(n, "class"), class)
	})
}

// FindMeta returns the first <meta name=...> element, or nil.
func (d *Document) FindMeta(name string) *Element {
	return d.findFirst(func(n *html.Node) bool {
		return n.DataAtom == atom.Meta && attr(n, "name") == name
	})
}

// CreateElement returns a detached element.
func (d *Document) CreateElement(tag string) *Element {
	return &Element{node: &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}}
}

func (d *Document) findFirst(match func(*html.Node) bool) *Element {
	var found *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found != nil {
			return
		}
		if n.Type == html.ElementNode && match(n) {
			found = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(d.node)
	if found == nil {
		return nil
	}
	return &Element{node: found}
}
