package xml

import (
	"encoding/xml"
)

// Namespace URIs used by the typed views.
const (
	WordNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	XMLNamespace  = "http://www.w3.org/XML/1998/namespace"
)

// Node is one item of a parsed part: *Element, CharData, Comment, ProcInst or Directive.
type Node interface {
	isNode()
}

// Element is an XML element as it appeared in the source: the prefix it was
// written with, its attributes in source order and its ordered children.
type Element struct {
	// Prefix is the namespace prefix as written ("w" for w:p).
	Prefix string
	// Local is the local name ("p" for w:p).
	Local string
	// Space is the namespace URI the prefix resolved to at parse time.
	Space string
	// Attrs keep the raw prefixes in Name.Space ("xmlns", "xml", "w", ...).
	Attrs    []xml.Attr
	Children []Node
}

func (*Element) isNode() {}

// CharData is character data, stored unescaped.
type CharData []byte

func (CharData) isNode() {}

// Comment is the body of an XML comment, without <!-- and -->.
type Comment []byte

func (Comment) isNode() {}

// ProcInst is a processing instruction such as the XML declaration.
type ProcInst struct {
	Target string
	Inst   []byte
}

func (ProcInst) isNode() {}

// Directive is the body of a <!...> directive.
type Directive []byte

func (Directive) isNode() {}

// Is reports whether the element has the given namespace URI and local name.
func (e *Element) Is(space, local string) bool {
	return e.Space == space && e.Local == local
}

// isW reports whether the element is a WordprocessingML element with the given local name.
func (e *Element) isW(local string) bool {
	return e.Is(WordNamespace, local)
}

// Elements returns the child elements, skipping character data and other nodes.
func (e *Element) Elements() []*Element {
	var out []*Element
	for _, child := range e.Children {
		if el, ok := child.(*Element); ok {
			out = append(out, el)
		}
	}
	return out
}

// childrenW returns the direct WordprocessingML children with the given local name.
func (e *Element) childrenW(local string) []*Element {
	var out []*Element
	for _, child := range e.Children {
		if el, ok := child.(*Element); ok && el.isW(local) {
			out = append(out, el)
		}
	}
	return out
}

// SetAttr sets or adds the attribute written as prefix:local.
func (e *Element) SetAttr(prefix, local, value string) {
	for i, a := range e.Attrs {
		if a.Name.Space == prefix && a.Name.Local == local {
			e.Attrs[i].Value = value
			return
		}
	}
	e.Attrs = append(e.Attrs, xml.Attr{Name: xml.Name{Space: prefix, Local: local}, Value: value})
}

// text returns the concatenated character data of the element's direct children.
func (e *Element) text() string {
	var n int
	for _, child := range e.Children {
		if cd, ok := child.(CharData); ok {
			n += len(cd)
		}
	}
	buf := make([]byte, 0, n)
	for _, child := range e.Children {
		if cd, ok := child.(CharData); ok {
			buf = append(buf, cd...)
		}
	}
	return string(buf)
}

// newChild creates an element in the same namespace and with the same prefix as e.
func (e *Element) newChild(local string) *Element {
	return &Element{Prefix: e.Prefix, Local: local, Space: e.Space}
}
