package xml

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func para(text string) string {
	return `<w:p><w:r><w:t>` + text + `</w:t></w:r></w:p>`
}

func table(rows ...[]string) string {
	var sb strings.Builder
	sb.WriteString(`<w:tbl>`)
	for _, row := range rows {
		sb.WriteString(`<w:tr>`)
		for _, cell := range row {
			sb.WriteString(`<w:tc>` + cell + `</w:tc>`)
		}
		sb.WriteString(`</w:tr>`)
	}
	sb.WriteString(`</w:tbl>`)
	return sb.String()
}

func collect(t *testing.T, c Container) ([]string, []int) {
	t.Helper()
	var texts []string
	var depths []int
	err := WalkParagraphs(c, func(p *Paragraph, depth int) error {
		texts = append(texts, p.GetText())
		depths = append(depths, depth)
		return nil
	})
	require.NoError(t, err)
	return texts, depths
}

func TestWalkParagraphs_Order(t *testing.T) {
	nested := table([]string{para("n1") + table([]string{para("deep")}), para("n2")})
	body := para("p1") +
		table(
			[]string{para("a1"), para("a2") + nested + para("a2-after")},
			[]string{para("b1"), para("b2")},
		) +
		para("p2") +
		table([]string{para("c1")})

	doc := mustParse(t, wrapBody(body))
	texts, depths := collect(t, doc.Body)

	// Paragraphs of a container come before its tables; a cell's nested
	// tables are walked before the next cell.
	assert.Equal(t, []string{
		"p1", "p2",
		"a1",
		"a2", "a2-after",
		"n1", "deep",
		"n2",
		"b1", "b2",
		"c1",
	}, texts)
	assert.Equal(t, []int{0, 0, 1, 1, 1, 2, 3, 2, 1, 1, 1}, depths)
}

func TestWalkParagraphs_DeepNesting(t *testing.T) {
	const levels = 200
	inner := para("bottom")
	for i := 0; i < levels; i++ {
		inner = table([]string{inner})
	}

	doc := mustParse(t, wrapBody(inner))
	texts, depths := collect(t, doc.Body)
	assert.Equal(t, []string{"bottom"}, texts)
	assert.Equal(t, []int{levels}, depths)
}

func TestWalkParagraphs_StopsOnError(t *testing.T) {
	doc := mustParse(t, wrapBody(para("1")+para("2")+para("3")))
	stop := errors.New("stop")

	var seen []string
	err := WalkParagraphs(doc.Body, func(p *Paragraph, depth int) error {
		seen = append(seen, p.GetText())
		if len(seen) == 2 {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, []string{"1", "2"}, seen)
}

func TestTableCell_GetText(t *testing.T) {
	doc := mustParse(t, wrapBody(table([]string{para("x") + para("y"), para("z")})))
	rows := doc.Body.Tables()[0].Rows()
	require.Len(t, rows, 1)
	cells := rows[0].Cells()
	require.Len(t, cells, 2)
	assert.Equal(t, "x\ny", cells[0].GetText())
	assert.Equal(t, "z", cells[1].GetText())
	assert.Empty(t, cells[1].Tables())
}
