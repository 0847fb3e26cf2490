package docfill

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjaminschreck/go-docfill/pkg/docfill/xml"
)

func paragraphTexts(t *testing.T, c xml.Container) []string {
	t.Helper()
	var texts []string
	err := xml.WalkParagraphs(c, func(p *xml.Paragraph, depth int) error {
		texts = append(texts, p.GetText())
		return nil
	})
	require.NoError(t, err)
	return texts
}

func TestSubstituter_ReplaceText(t *testing.T) {
	tests := []struct {
		name        string
		values      map[string]string
		text        string
		want        string
		wantChanged bool
		wantCounts  map[string]int
	}{
		{
			name:        "repeated token",
			values:      map[string]string{"A": "x"},
			text:        "[A] and [A]",
			want:        "x and x",
			wantChanged: true,
			wantCounts:  map[string]int{"A": 2},
		},
		{
			name:        "unknown token kept verbatim",
			values:      map[string]string{"A": "x"},
			text:        "[A] [B]",
			want:        "x [B]",
			wantChanged: true,
			wantCounts:  map[string]int{"A": 1},
		},
		{
			name:        "values are not rescanned",
			values:      map[string]string{"A": "[B]", "B": "y"},
			text:        "[A][B]",
			want:        "[B]y",
			wantChanged: true,
			wantCounts:  map[string]int{"A": 1, "B": 1},
		},
		{
			name:        "token inside extra brackets",
			values:      map[string]string{"A": "x"},
			text:        "[[A]]",
			want:        "[x]",
			wantChanged: true,
			wantCounts:  map[string]int{"A": 1},
		},
		{
			name:        "lower-case name matches upper-case token only",
			values:      map[string]string{"name": "Bob"},
			text:        "[NAME] [name]",
			want:        "Bob [name]",
			wantChanged: true,
			wantCounts:  map[string]int{"NAME": 1},
		},
		{
			name:        "empty value",
			values:      map[string]string{"A": ""},
			text:        "x[A]y",
			want:        "xy",
			wantChanged: true,
			wantCounts:  map[string]int{"A": 1},
		},
		{
			name:       "no tokens",
			values:     map[string]string{"A": "x"},
			text:       "plain text",
			want:       "plain text",
			wantCounts: map[string]int{},
		},
		{
			name:       "unterminated token",
			values:     map[string]string{"A": "x"},
			text:       "[A",
			want:       "[A",
			wantCounts: map[string]int{},
		},
		{
			name:       "name containing a closing bracket is ignored",
			values:     map[string]string{"A]": "x"},
			text:       "[A]]",
			want:       "[A]]",
			wantCounts: map[string]int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counts := make(map[string]int)
			got, changed := NewSubstituter(tt.values).ReplaceText(tt.text, counts)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantChanged, changed)
			assert.Equal(t, tt.wantCounts, counts)
		})
	}
}

func TestNewSubstituter_CaseCollision(t *testing.T) {
	// "NAME" sorts before "name", so the lower-case key is applied last.
	s := NewSubstituter(map[string]string{"NAME": "upper", "name": "lower"})
	got, _ := s.ReplaceText("[NAME]", nil)
	assert.Equal(t, "lower", got)
}

func TestSubstitute_NestedTables(t *testing.T) {
	body := `<w:p><w:r><w:t xml:space="preserve">Hello [NAME]</w:t></w:r><w:r><w:t>[NA</w:t></w:r><w:r><w:t>ME]</w:t></w:r></w:p>` +
		`<w:tbl><w:tr><w:tc><w:p><w:r><w:t>[AMOUNT]</w:t></w:r></w:p>` +
		`<w:tbl><w:tr><w:tc><w:p><w:r><w:t xml:space="preserve">lvl2 [NAME]</w:t></w:r></w:p>` +
		`<w:tbl><w:tr><w:tc><w:p><w:r><w:t xml:space="preserve">lvl3 [NAME] [AMOUNT]</w:t></w:r></w:p></w:tc></w:tr></w:tbl>` +
		`</w:tc></w:tr></w:tbl>` +
		`</w:tc></w:tr></w:tbl>`

	doc, err := ParseDocx(BuildDocx(body))
	require.NoError(t, err)

	stats := Substitute(doc.Body(), map[string]string{"NAME": "Bob", "AMOUNT": "100"})

	assert.Equal(t, 4, stats.Paragraphs)
	assert.Equal(t, 6, stats.Runs)
	assert.Equal(t, 4, stats.RunsChanged)
	assert.Equal(t, map[string]int{"NAME": 3, "AMOUNT": 2}, stats.Replaced)
	assert.Equal(t, 5, stats.Total())

	assert.Equal(t,
		[]string{"Hello Bob[NAME]", "100", "lvl2 Bob", "lvl3 Bob 100"},
		paragraphTexts(t, doc.Body()))
}

func TestSubstitute_SurvivesSave(t *testing.T) {
	doc, err := ParseDocx(BuildDocx(BuildParagraphs("Client: [CLIENT]")))
	require.NoError(t, err)

	Substitute(doc.Body(), map[string]string{"CLIENT": "Smith & <Sons>"})

	var buf bytes.Buffer
	_, err = doc.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, string(doc.Main.Bytes()), "Client: Smith &amp; &lt;Sons&gt;")

	reopened, err := ParseDocx(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, []string{"Client: Smith & <Sons>"}, paragraphTexts(t, reopened.Body()))
}

func TestSubstitute_KeepsRunFormatting(t *testing.T) {
	body := `<w:p><w:r><w:rPr><w:b/><w:color w:val="FF0000"/></w:rPr><w:t>[NAME]</w:t></w:r></w:p>`
	doc, err := ParseDocx(BuildDocx(body))
	require.NoError(t, err)

	Substitute(doc.Body(), map[string]string{"NAME": "Alice"})

	assert.Contains(t, string(doc.Main.Bytes()),
		`<w:p><w:r><w:rPr><w:b/><w:color w:val="FF0000"/></w:rPr><w:t>Alice</w:t></w:r></w:p>`)
}

func TestSubstitute_NoReplacements(t *testing.T) {
	original := BuildDocx(BuildParagraphs("[A]", "text"))
	doc, err := ParseDocx(original)
	require.NoError(t, err)

	stats := Substitute(doc.Body(), nil)
	assert.Equal(t, 0, stats.Total())
	assert.Equal(t, 0, stats.RunsChanged)

	part, err := doc.reader.GetPart(DocumentPartName)
	require.NoError(t, err)
	assert.Equal(t, part, doc.Main.Bytes())
}

func TestScanTokens(t *testing.T) {
	body := BuildParagraphs("[A] [b] [A]") +
		`<w:tbl><w:tr><w:tc><w:p><w:r><w:t>[[C]]</w:t></w:r></w:p></w:tc></w:tr></w:tbl>`
	doc, err := ParseDocx(BuildDocx(body))
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "b", "C"}, ScanTokens(doc.Body()))
}

func TestReplacements(t *testing.T) {
	r := Replacements{}
	r.Set("name", "Bob")
	r.Merge(map[string]string{"city": "Paris", "NAME": "Alice"})

	assert.Equal(t, []string{"CITY", "NAME"}, r.Names())
	assert.Equal(t, "Alice", r["NAME"])
	assert.Equal(t, "[CITY]", Token("city"))
}
