package xml

// Container holds paragraphs and tables: the document body or a table cell.
type Container interface {
	Paragraphs() []*Paragraph
	Tables() []*Table
}

// ParagraphFunc is called for each paragraph reached by WalkParagraphs. depth is
// the number of tables enclosing the paragraph.
type ParagraphFunc func(p *Paragraph, depth int) error

// WalkParagraphs visits every paragraph reachable from c in document order:
// the container's own paragraphs first, then its tables row by row, left to
// right. Inside a cell the cell's paragraphs come first, then its nested tables,
// which are walked completely before the next cell. An explicit stack is used,
// so nesting depth does not grow the call stack. The walk stops at the first
// error returned by fn.
func WalkParagraphs(c Container, fn ParagraphFunc) error {
	type frame struct {
		container Container
		depth     int
	}

	stack := []frame{{container: c}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, p := range f.container.Paragraphs() {
			if err := fn(p, f.depth); err != nil {
				return err
			}
		}

		// Push cells in reverse so the first cell is popped next.
		var cells []*TableCell
		for _, t := range f.container.Tables() {
			for _, row := range t.Rows() {
				cells = append(cells, row.Cells()...)
			}
		}
		for i := len(cells) - 1; i >= 0; i-- {
			stack = append(stack, frame{container: cells[i], depth: f.depth + 1})
		}
	}
	return nil
}
