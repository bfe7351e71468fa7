package document

import (
	"slices"
	"strings"

	"golang.org/x/net/html"
)

// Element wraps an element node. Two Elements are the same element when
// Is reports true; the wrappers themselves are not compared.
type Element struct {
	node *html.Node
}

// Tag returns the element's tag name.
func (e *Element) Tag() string {
	return e.node.Data
}

// Is reports whether e and other wrap the same node.
func (e *Element) Is(other *Element) bool {
	return e != nil && other != nil && e.node == other.node
}

// Attr returns the attribute value and whether it is present.
func (e *Element) Attr(key string) (string, bool) {
	for _, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets or replaces an attribute.
func (e *Element) SetAttr(key, val string) {
	for i, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == key {
			e.node.Attr[i].Val = val
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr deletes an attribute if present.
func (e *Element) RemoveAttr(key string) {
	attrs := e.node.Attr[:0]
	for _, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		attrs = append(attrs, a)
	}
	e.node.Attr = attrs
}

// Dataset returns the value of data-<key>.
func (e *Element) Dataset(key string) string {
	v, _ := e.Attr("data-" + key)
	return v
}

// Classes returns the element's class list.
func (e *Element) Classes() []string {
	return strings.Fields(attr(e.node, "class"))
}

// HasClass reports whether class is in the class list.
func (e *Element) HasClass(class string) bool {
	return hasToken(attr(e.node, "class"), class)
}

// AddClass adds classes not already present.
func (e *Element) AddClass(classes ...string) {
	list := e.Classes()
	changed := false
	for _, c := range classes {
		if !slices.Contains(list, c) {
			list = append(list, c)
			changed = true
		}
	}
	if changed {
		e.SetAttr("class", strings.Join(list, " "))
	}
}

// RemoveClass removes every occurrence of the given classes. The class
// attribute is dropped once empty.
func (e *Element) RemoveClass(classes ...string) {
	if _, ok := e.Attr("class"); !ok {
		return
	}
	var kept []string
	for _, c := range e.Classes() {
		if !slices.Contains(classes, c) {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		e.RemoveAttr("class")
		return
	}
	e.SetAttr("class", strings.Join(kept, " "))
}

// Text returns the concatenated text content.
func (e *Element) Text() string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(e.node)
	return sb.String()
}

// SetText replaces all children with a single text node.
func (e *Element) SetText(text string) {
	for c := e.node.FirstChild; c != nil; {
		next := c.NextSibling
		e.node.RemoveChild(c)
		c = next
	}
	e.node.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

// AppendChild attaches child as the last child of e. child must be detached.
func (e *Element) AppendChild(child *Element) {
	e.node.AppendChild(child.node)
}

// Contains reports whether other is e or one of its descendants.
func (e *Element) Contains(other *Element) bool {
	if e == nil {
		return false
	}
	for n := other; n != nil; n = n.Parent() {
		if n.Is(e) {
			return true
		}
	}
	return false
}

// Parent returns the parent element, or nil at the top of the tree.
func (e *Element) Parent() *Element {
	if p := e.node.Parent; p != nil && p.Type == html.ElementNode {
		return &Element{node: p}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasToken(list, token string) bool {
	return slices.Contains(strings.Fields(list), token)
}

// FindByClass returns the first descendant of e carrying class, or nil.
func (e *Element) FindByClass(class string) *Element {
	all := e.findAll(class, 1)
	if len(all) == 0 {
		return nil
	}
	return all[0]
}

// FindAllByClass returns every descendant of e carrying class, in document
// order.
func (e *Element) FindAllByClass(class string) []*Element {
	return e.findAll(class, -1)
}

func (e *Element) findAll(class string, limit int) []*Element {
	var found []*Element
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if limit >= 0 && len(found) >= limit {
				return
			}
			if c.Type == html.ElementNode && hasToken(attr(c, "class"), class) {
				found = append(found, &Element{node: c})
			}
			walk(c)
		}
	}
	walk(e.node)
	return found
}
