package xml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// ParseNodes decodes an XML part into a node list. Prefixes are kept as written
// and resolved against the xmlns declarations in scope.
func ParseNodes(r io.Reader) ([]Node, error) {
	decoder := xml.NewDecoder(r)

	var (
		roots  []Node
		stack  []*Element
		scopes = []map[string]string{{"xml": XMLNamespace}}
	)

	appendNode := func(n Node) {
		if len(stack) == 0 {
			roots = append(roots, n)
			return
		}
		parent := stack[len(stack)-1]
		parent.Children = append(parent.Children, n)
	}

	for {
		token, err := decoder.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode xml: %w", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			scope := declareNamespaces(scopes[len(scopes)-1], t.Attr)
			el := &Element{
				Prefix: t.Name.Space,
				Local:  t.Name.Local,
				Space:  scope[t.Name.Space],
				Attrs:  append([]xml.Attr(nil), t.Attr...),
			}
			appendNode(el)
			stack = append(stack, el)
			scopes = append(scopes, scope)
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, fmt.Errorf("unexpected closing tag </%s>", qualifiedName(t.Name.Space, t.Name.Local))
			}
			top := stack[len(stack)-1]
			if top.Prefix != t.Name.Space || top.Local != t.Name.Local {
				return nil, fmt.Errorf("closing tag </%s> does not match <%s>",
					qualifiedName(t.Name.Space, t.Name.Local), qualifiedName(top.Prefix, top.Local))
			}
			stack = stack[:len(stack)-1]
			scopes = scopes[:len(scopes)-1]
		case xml.CharData:
			appendNode(CharData(t.Copy()))
		case xml.Comment:
			appendNode(Comment(t.Copy()))
		case xml.ProcInst:
			appendNode(ProcInst{Target: t.Target, Inst: append([]byte(nil), t.Inst...)})
		case xml.Directive:
			appendNode(Directive(t.Copy()))
		}
	}

	if len(stack) > 0 {
		return nil, fmt.Errorf("unclosed element <%s>", qualifiedName(stack[len(stack)-1].Prefix, stack[len(stack)-1].Local))
	}

	return roots, nil
}

// declareNamespaces returns the scope for an element: the parent scope plus any
// xmlns declarations found in attrs. The parent map is never modified.
func declareNamespaces(parent map[string]string, attrs []xml.Attr) map[string]string {
	var scope map[string]string
	for _, a := range attrs {
		var prefix string
		switch {
		case a.Name.Space == "xmlns":
			prefix = a.Name.Local
		case a.Name.Space == "" && a.Name.Local == "xmlns":
			prefix = ""
		default:
			continue
		}
		if scope == nil {
			scope = make(map[string]string, len(parent)+1)
			for k, v := range parent {
				scope[k] = v
			}
		}
		scope[prefix] = a.Value
	}
	if scope == nil {
		return parent
	}
	return scope
}

// EncodeNodes writes nodes back as XML. Elements without children are written
// in their self-closing form.
func EncodeNodes(w io.Writer, nodes []Node) error {
	var buf bytes.Buffer
	for _, n := range nodes {
		encodeNode(&buf, n)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func encodeNode(buf *bytes.Buffer, n Node) {
	switch t := n.(type) {
	case *Element:
		buf.WriteByte('<')
		buf.WriteString(qualifiedName(t.Prefix, t.Local))
		for _, a := range t.Attrs {
			buf.WriteByte(' ')
			buf.WriteString(qualifiedName(a.Name.Space, a.Name.Local))
			buf.WriteString(`="`)
			attrEscaper.WriteString(buf, a.Value)
			buf.WriteByte('"')
		}
		if len(t.Children) == 0 {
			buf.WriteString("/>")
			return
		}
		buf.WriteByte('>')
		for _, child := range t.Children {
			encodeNode(buf, child)
		}
		buf.WriteString("</")
		buf.WriteString(qualifiedName(t.Prefix, t.Local))
		buf.WriteByte('>')
	case CharData:
		textEscaper.WriteString(buf, string(t))
	case Comment:
		buf.WriteString("<!--")
		buf.Write(t)
		buf.WriteString("-->")
	case ProcInst:
		buf.WriteString("<?")
		buf.WriteString(t.Target)
		if len(t.Inst) > 0 && !isXMLSpace(t.Inst[0]) {
			buf.WriteByte(' ')
		}
		buf.Write(t.Inst)
		buf.WriteString("?>")
	case Directive:
		buf.WriteString("<!")
		buf.Write(t)
		buf.WriteByte('>')
	}
}

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", "\r", "&#xD;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", `"`, "&quot;",
		"\t", "&#x9;", "\n", "&#xA;", "\r", "&#xD;")
)

func qualifiedName(prefix, local string) string {
	if prefix == "" {
		return local
	}
	return prefix + ":" + local
}

func isXMLSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
