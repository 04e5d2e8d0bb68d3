// Package element decodes annotation markup into a generic tree of labeled
// elements. Callers walk the tree by element name and attributes without
// depending on the concrete markup decoder.
package element

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Element is a labeled node of the markup tree.
type Element struct {
	Name     string
	Attrs    map[string]string
	Children []*Element

	// Text is the character data directly inside the element, trimmed.
	Text string

	parent *Element
}

// Parse decodes r into an element tree. The returned element is a synthetic
// root whose children are the top-level elements of the document.
func Parse(r io.Reader) (*Element, error) {
	dec := xml.NewDecoder(r)

	root := &Element{Name: "", Attrs: map[string]string{}}
	cur := root
	texts := []*strings.Builder{{}}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("markup decoding error: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{
				Name:   t.Name.Local,
				Attrs:  make(map[string]string, len(t.Attr)),
				parent: cur,
			}
			for _, a := range t.Attr {
				el.Attrs[a.Name.Local] = a.Value
			}
			cur.Children = append(cur.Children, el)
			cur = el
			texts = append(texts, &strings.Builder{})

		case xml.EndElement:
			if cur.parent == nil {
				return nil, fmt.Errorf("markup decoding error: unexpected end element %q", t.Name.Local)
			}
			cur.Text = strings.TrimSpace(texts[len(texts)-1].String())
			texts = texts[:len(texts)-1]
			cur = cur.parent

		case xml.CharData:
			texts[len(texts)-1].Write(t)
		}
	}

	if cur != root {
		return nil, fmt.Errorf("markup decoding error: element %q not closed", cur.Name)
	}

	return root, nil
}

// ParseString is Parse over a string.
func ParseString(s string) (*Element, error) {
	return Parse(strings.NewReader(s))
}

// Attr returns the attribute value and whether it was present.
func (e *Element) Attr(name string) (string, bool) {
	if e == nil {
		return "", false
	}
	v, ok := e.Attrs[name]
	return v, ok
}

// HasAttr reports whether the attribute is present, whatever its value.
func (e *Element) HasAttr(name string) bool {
	_, ok := e.Attr(name)
	return ok
}

// Find returns the first descendant named name in document order, or nil.
// Names are compared case-insensitively.
func (e *Element) Find(name string) *Element {
	if e == nil {
		return nil
	}
	for _, c := range e.Children {
		if strings.EqualFold(c.Name, name) {
			return c
		}
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns all descendants named name in document order.
func (e *Element) FindAll(name string) []*Element {
	if e == nil {
		return nil
	}
	var found []*Element
	e.walk(func(c *Element) {
		if strings.EqualFold(c.Name, name) {
			found = append(found, c)
		}
	})
	return found
}

// FindWhere returns the first descendant named name whose attribute attr
// equals value, or nil.
func (e *Element) FindWhere(name, attr, value string) *Element {
	for _, c := range e.FindAll(name) {
		if v, ok := c.Attr(attr); ok && v == value {
			return c
		}
	}
	return nil
}

// Child returns the first direct child named name, or nil.
func (e *Element) Child(name string) *Element {
	if e == nil {
		return nil
	}
	for _, c := range e.Children {
		if strings.EqualFold(c.Name, name) {
			return c
		}
	}
	return nil
}

// ChildText returns the text of the first direct child named name.
func (e *Element) ChildText(name string) (string, bool) {
	c := e.Child(name)
	if c == nil {
		return "", false
	}
	return c.Text, true
}

func (e *Element) walk(fn func(*Element)) {
	for _, c := range e.Children {
		fn(c)
		c.walk(fn)
	}
}
