// Package h is a small Go-native DSL for HTML composition on top of gomponents.
// Every element, attribute, and text node is a function that returns an [H] node.
//
// Example:
//
//	h.Div(
//		h.Class("App"),
//		h.Button(h.Text("Add")),
//	)
package h

import (
	"io"

	g "maragu.dev/gomponents"
	gc "maragu.dev/gomponents/components"
)

// H represents a DOM node.
type H interface {
	Render(w io.Writer) error
}

// Text creates a text node that renders the escaped string t.
func Text(t string) H {
	return g.Text(t)
}

// Textf creates a text node that renders the interpolated and escaped format.
func Textf(format string, a ...any) H {
	return g.Textf(format, a...)
}

// Raw creates a node that renders s unescaped.
func Raw(s string) H {
	return g.Raw(s)
}

// Attr creates an attribute node with a name and optional value.
// With only a name it is a boolean attribute (like "disabled").
// More than one value makes Attr panic.
func Attr(name string, value ...string) H {
	return g.Attr(name, value...)
}

// If returns n when condition holds and nil otherwise. Nil nodes are skipped
// when rendering children.
func If(condition bool, n H) H {
	if condition {
		return n
	}
	return nil
}

// Map renders one node per element of ts, in order.
func Map[T any](ts []T, cb func(T) H) []H {
	nodes := make([]H, 0, len(ts))
	for _, t := range ts {
		nodes = append(nodes, cb(t))
	}
	return nodes
}

// HTML5Props defines properties for HTML5 pages. Title is always set; Description
// and Language only if non-empty.
type HTML5Props struct {
	Title       string
	Description string
	Language    string
	Head        []H
	Body        []H
	HTMLAttrs   []H
}

// HTML5 document template.
func HTML5(p HTML5Props) H {
	return gc.HTML5(gc.HTML5Props{
		Title:       p.Title,
		Description: p.Description,
		Language:    p.Language,
		Head:        retype(p.Head),
		Body:        retype(p.Body),
		HTMLAttrs:   retype(p.HTMLAttrs),
	})
}

func retype(nodes []H) []g.Node {
	out := make([]g.Node, 0, len(nodes))
	for _, n := range nodes {
		if n == nil {
			continue
		}
		out = append(out, n)
	}
	return out
}
