// Package srcxml parses the source-XML (srcml) output for one
// preprocessed function body into a lightweight element tree, and
// extracts the variable/call/statement facts the taint engine walks.
package srcxml

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Element is one node of the parsed srcml tree. Mixed content (text
// interleaved with child elements) is kept in source order so that
// reconstructing an element's text reproduces the original source slice.
type Element struct {
	Tag     string
	Parent  *Element
	content []contentNode
}

type contentNode struct {
	text string
	elem *Element
}

// Children returns this element's direct child elements, in source order.
func (e *Element) Children() []*Element {
	var out []*Element
	for _, c := range e.content {
		if c.elem != nil {
			out = append(out, c.elem)
		}
	}
	return out
}

// FindChild returns the first direct child with the given tag, or nil.
func (e *Element) FindChild(tag string) *Element {
	for _, c := range e.Children() {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

// RemoveChild unlinks child from e's content, dropping it and any text
// that was only reachable through it. Used to strip a <type> child before
// re-reading an element's text, mirroring the original analyzer unlinking
// the type node before recording a declaration's content.
func (e *Element) RemoveChild(child *Element) {
	out := e.content[:0]
	for _, c := range e.content {
		if c.elem == child {
			continue
		}
		out = append(out, c)
	}
	e.content = out
}

// Text concatenates this element's full text content, descending through
// every child in source order.
func (e *Element) Text() string {
	var b strings.Builder
	e.writeText(&b)
	return b.String()
}

func (e *Element) writeText(b *strings.Builder) {
	for _, c := range e.content {
		if c.elem != nil {
			c.elem.writeText(b)
		} else {
			b.WriteString(c.text)
		}
	}
}

// Ancestors walks up from e's parent to the root, inclusive of e's parent.
func (e *Element) Ancestors() []*Element {
	var out []*Element
	for p := e.Parent; p != nil; p = p.Parent {
		out = append(out, p)
	}
	return out
}

// HasAncestorTag reports whether any ancestor of e carries tag.
func (e *Element) HasAncestorTag(tag string) bool {
	for _, a := range e.Ancestors() {
		if a.Tag == tag {
			return true
		}
	}
	return false
}

// Walk visits e and every descendant, depth-first, in source order.
func Walk(e *Element, visit func(*Element)) {
	visit(e)
	for _, c := range e.Children() {
		Walk(c, visit)
	}
}

// Parse parses a fragment of srcml XML into a synthetic root element whose
// children are the fragment's top-level elements. Namespace prefixes (the
// srcml default "src:" namespace) are ignored; only local names are used.
func Parse(doc string) (*Element, error) {
	root := &Element{Tag: "#root"}
	stack := []*Element{root}

	dec := xml.NewDecoder(strings.NewReader(doc))
	dec.Strict = false
	for {
		tok, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("parse srcml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{Tag: t.Name.Local, Parent: stack[len(stack)-1]}
			top := stack[len(stack)-1]
			top.content = append(top.content, contentNode{elem: el})
			stack = append(stack, el)
		case xml.EndElement:
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			top := stack[len(stack)-1]
			top.content = append(top.content, contentNode{text: string(t)})
		}
	}
	return root, nil
}
