package xml

import "strings"

// Table represents a table in the document
type Table struct {
	el *Element
}

// Rows returns the rows of the table in order.
func (t *Table) Rows() []*TableRow {
	var rows []*TableRow
	for _, tr := range t.el.childrenW("tr") {
		rows = append(rows, &TableRow{el: tr})
	}
	return rows
}

// TableRow represents a row in a table
type TableRow struct {
	el *Element
}

// Cells returns the cells of the row from left to right. A cell spanning
// several grid columns is returned once.
func (r *TableRow) Cells() []*TableCell {
	var cells []*TableCell
	for _, tc := range r.el.childrenW("tc") {
		cells = append(cells, &TableCell{el: tc})
	}
	return cells
}

// TableCell represents a cell in a table row
type TableCell struct {
	el *Element
}

// Paragraphs returns the paragraphs directly inside the cell.
func (c *TableCell) Paragraphs() []*Paragraph {
	return paragraphsOf(c.el)
}

// Tables returns the tables nested directly inside the cell.
func (c *TableCell) Tables() []*Table {
	return tablesOf(c.el)
}

// GetText returns the text content of the cell
func (c *TableCell) GetText() string {
	var parts []string
	for _, p := range c.Paragraphs() {
		parts = append(parts, p.GetText())
	}
	return strings.Join(parts, "\n")
}
