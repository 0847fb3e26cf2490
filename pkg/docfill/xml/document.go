package xml

import (
	"bytes"
	"fmt"
	"io"
)

// Document represents a parsed word/document.xml part
type Document struct {
	// Nodes holds the whole part, including the XML declaration.
	Nodes []Node
	// Root is the w:document element.
	Root *Element
	// Body is the view over w:body.
	Body *Body
}

// Body represents the document body
type Body struct {
	el *Element
}

// ParseDocument parses a Word document XML
func ParseDocument(r io.Reader) (*Document, error) {
	nodes, err := ParseNodes(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}

	doc := &Document{Nodes: nodes}
	for _, n := range nodes {
		if el, ok := n.(*Element); ok {
			doc.Root = el
			break
		}
	}
	if doc.Root == nil || !doc.Root.isW("document") {
		return nil, fmt.Errorf("failed to parse document: root element is not w:document")
	}

	bodies := doc.Root.childrenW("body")
	if len(bodies) == 0 {
		return nil, fmt.Errorf("failed to parse document: missing w:body")
	}
	doc.Body = &Body{el: bodies[0]}

	return doc, nil
}

// WriteTo encodes the document, implementing io.WriterTo.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	if err := EncodeNodes(&buf, d.Nodes); err != nil {
		return 0, err
	}
	return buf.WriteTo(w)
}

// Bytes returns the encoded document.
func (d *Document) Bytes() []byte {
	var buf bytes.Buffer
	_, _ = d.WriteTo(&buf)
	return buf.Bytes()
}

// Paragraphs returns the paragraphs directly inside the body, in document order.
func (b *Body) Paragraphs() []*Paragraph {
	return paragraphsOf(b.el)
}

// Tables returns the tables directly inside the body, in document order.
func (b *Body) Tables() []*Table {
	return tablesOf(b.el)
}

func paragraphsOf(el *Element) []*Paragraph {
	var out []*Paragraph
	for _, p := range el.childrenW("p") {
		out = append(out, &Paragraph{el: p})
	}
	return out
}

func tablesOf(el *Element) []*Table {
	var out []*Table
	for _, t := range el.childrenW("tbl") {
		out = append(out, &Table{el: t})
	}
	return out
}
