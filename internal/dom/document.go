// Package dom provides the handful of document operations the navigation bar
// needs (lookup by id, lookup by class, inner HTML replacement, class list
// edits) on top of golang.org/x/net/html.
package dom

import (
	"bytes"
	"io"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

type Document struct {
	root *html.Node
}

func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &Document{root: root}, nil
}

func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

func (d *Document) Render(w io.Writer) error {
	if err := html.Render(w, d.root); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func (d *Document) String() string {
	var buff bytes.Buffer
	if err := d.Render(&buff); err != nil {
		return ""
	}

	return buff.String()
}

// ElementByID returns the first element whose id attribute equals id, or nil.
func (d *Document) ElementByID(id string) *Element {
	var found *Element

	walk(d.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && getAttr(n, "id") == id {
			found = &Element{n}
			return false
		}

		return true
	})

	return found
}

// QueryClass returns the elements carrying class, in document order.
func (d *Document) QueryClass(class string) []*Element {
	return queryClass(d.root, class)
}

func queryClass(root *html.Node, class string) []*Element {
	elements := make([]*Element, 0)

	walk(root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && hasClass(n, class) {
			elements = append(elements, &Element{n})
		}

		return true
	})

	return elements
}

// walk visits n and its descendants depth first until fn returns false.
func walk(n *html.Node, fn func(n *html.Node) bool) bool {
	if !fn(n) {
		return false
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, fn) {
			return false
		}
	}

	return true
}

func getAttr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val
		}
	}

	return ""
}

func contextAtom(n *html.Node) *html.Node {
	if n.DataAtom != 0 {
		return n
	}

	return &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
}
