package xml

import "strings"

// Paragraph represents a paragraph in the document
type Paragraph struct {
	el *Element
}

// Runs returns the runs of the paragraph in document order: direct w:r children
// and the runs wrapped in hyperlinks.
func (p *Paragraph) Runs() []*Run {
	var runs []*Run
	for _, child := range p.el.Elements() {
		switch {
		case child.isW("r"):
			runs = append(runs, &Run{el: child})
		case child.isW("hyperlink"):
			for _, r := range child.childrenW("r") {
				runs = append(runs, &Run{el: r})
			}
		}
	}
	return runs
}

// GetText returns the text content of the paragraph
func (p *Paragraph) GetText() string {
	var sb strings.Builder
	for _, r := range p.Runs() {
		sb.WriteString(r.Text())
	}
	return sb.String()
}
