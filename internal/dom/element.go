package dom

import (
	"bytes"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/html"
)

type Element struct {
	node *html.Node
}

func (e *Element) Attr(name string) string {
	return getAttr(e.node, name)
}

func (e *Element) SetAttr(name, value string) {
	for idx, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == name {
			e.node.Attr[idx].Val = value
			return
		}
	}

	e.node.Attr = append(e.node.Attr, html.Attribute{Key: name, Val: value})
}

func (e *Element) RemoveAttr(name string) {
	e.node.Attr = slices.DeleteFunc(e.node.Attr, func(a html.Attribute) bool {
		return a.Namespace == "" && a.Key == name
	})
}

func (e *Element) Classes() []string {
	return strings.Fields(e.Attr("class"))
}

func (e *Element) HasClass(class string) bool {
	return hasClass(e.node, class)
}

func (e *Element) AddClass(class string) {
	if e.HasClass(class) {
		return
	}

	e.SetAttr("class", strings.Join(append(e.Classes(), class), " "))
}

func (e *Element) RemoveClass(class string) {
	if !e.HasClass(class) {
		return
	}

	classes := slices.DeleteFunc(e.Classes(), func(c string) bool {
		return c == class
	})

	if len(classes) == 0 {
		e.RemoveAttr("class")
		return
	}

	e.SetAttr("class", strings.Join(classes, " "))
}

// QueryClass returns the descendants of e (e included) carrying class.
func (e *Element) QueryClass(class string) []*Element {
	return queryClass(e.node, class)
}

// SetInnerHTML replaces every child of e with the nodes parsed from fragment.
func (e *Element) SetInnerHTML(fragment string) error {
	nodes, err := html.ParseFragment(strings.NewReader(fragment), contextAtom(e.node))
	if err != nil {
		return errors.WithStack(err)
	}

	for c := e.node.FirstChild; c != nil; {
		next := c.NextSibling
		e.node.RemoveChild(c)
		c = next
	}

	for _, n := range nodes {
		e.node.AppendChild(n)
	}

	return nil
}

func (e *Element) InnerHTML() (string, error) {
	var buff bytes.Buffer

	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buff, c); err != nil {
			return "", errors.WithStack(err)
		}
	}

	return buff.String(), nil
}

// Text returns the concatenated text content of e.
func (e *Element) Text() string {
	var sb strings.Builder

	walk(e.node, func(n *html.Node) bool {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}

		return true
	})

	return sb.String()
}

func hasClass(n *html.Node, class string) bool {
	return slices.Contains(strings.Fields(getAttr(n, "class")), class)
}
