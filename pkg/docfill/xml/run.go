package xml

import (
	"strings"
)

// Run represents a run of text with common properties
type Run struct {
	el *Element
}

// Text returns the text of the run. Tabs read as "\t", line breaks and carriage
// returns as "\n" and non-breaking hyphens as "-".
func (r *Run) Text() string {
	var sb strings.Builder
	for _, child := range r.el.Children {
		el, ok := child.(*Element)
		if !ok {
			continue
		}
		if s, ok := textOf(el); ok {
			sb.WriteString(s)
		}
	}
	return sb.String()
}

// SetText replaces the text of the run. Run properties and non-text content such
// as drawings keep their position; the text-bearing children are replaced by
// new ones placed where the first of them was. Setting the current text is a no-op.
func (r *Run) SetText(s string) {
	if r.Text() == s {
		return
	}

	var textIdx []int
	for i, child := range r.el.Children {
		if el, ok := child.(*Element); ok {
			if _, isText := textOf(el); isText {
				textIdx = append(textIdx, i)
			}
		}
	}

	// A single w:t is updated in place so its attributes survive.
	if len(textIdx) == 1 && !strings.ContainsAny(s, "\t\n") {
		if t := r.el.Children[textIdx[0]].(*Element); t.isW("t") {
			setTextContent(t, s)
			return
		}
	}

	replacement := r.textElements(s)
	insertAt := len(r.el.Children)
	if len(textIdx) > 0 {
		insertAt = textIdx[0]
	}

	skip := make(map[int]bool, len(textIdx))
	for _, i := range textIdx {
		skip[i] = true
	}

	children := make([]Node, 0, len(r.el.Children)-len(textIdx)+len(replacement))
	for i, child := range r.el.Children {
		if i == insertAt {
			children = append(children, replacement...)
		}
		if !skip[i] {
			children = append(children, child)
		}
	}
	if insertAt == len(r.el.Children) {
		children = append(children, replacement...)
	}
	r.el.Children = children
}

// textElements converts s into w:t, w:tab and w:br elements.
func (r *Run) textElements(s string) []Node {
	var nodes []Node
	var segment strings.Builder

	flush := func() {
		if segment.Len() == 0 {
			return
		}
		t := r.el.newChild("t")
		setTextContent(t, segment.String())
		nodes = append(nodes, t)
		segment.Reset()
	}

	for _, ch := range s {
		switch ch {
		case '\t':
			flush()
			nodes = append(nodes, r.el.newChild("tab"))
		case '\n':
			flush()
			nodes = append(nodes, r.el.newChild("br"))
		default:
			segment.WriteRune(ch)
		}
	}
	flush()

	return nodes
}

// textOf returns the text an element contributes to its run and whether it is
// text-bearing at all.
func textOf(el *Element) (string, bool) {
	if el.Space != WordNamespace {
		return "", false
	}
	switch el.Local {
	case "t":
		return el.text(), true
	case "tab", "ptab":
		return "\t", true
	case "cr":
		return "\n", true
	case "noBreakHyphen":
		return "-", true
	case "br":
		for _, a := range el.Attrs {
			if a.Name.Local == "type" && a.Value != "textWrapping" {
				return "", false
			}
		}
		return "\n", true
	}
	return "", false
}

// setTextContent sets the character data of a w:t element, marking it
// xml:space="preserve" when surrounding whitespace would otherwise be dropped.
func setTextContent(t *Element, s string) {
	if s == "" {
		t.Children = nil
	} else {
		t.Children = []Node{CharData(s)}
	}
	if strings.TrimSpace(s) != s {
		t.SetAttr("xml", "space", "preserve")
	}
}
