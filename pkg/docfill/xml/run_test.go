package xml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func firstRun(t *testing.T, doc *Document) *Run {
	t.Helper()
	paras := doc.Body.Paragraphs()
	require.NotEmpty(t, paras)
	runs := paras[0].Runs()
	require.NotEmpty(t, runs)
	return runs[0]
}

func TestRun_Text(t *testing.T) {
	tests := []struct {
		name string
		run  string
		want string
	}{
		{name: "plain", run: `<w:r><w:t>abc</w:t></w:r>`, want: "abc"},
		{name: "properties ignored", run: `<w:r><w:rPr><w:i/></w:rPr><w:t>abc</w:t></w:r>`, want: "abc"},
		{name: "tab and break", run: `<w:r><w:t>a</w:t><w:tab/><w:t>b</w:t><w:br/><w:t>c</w:t></w:r>`, want: "a\tb\nc"},
		{name: "page break is not text", run: `<w:r><w:t>a</w:t><w:br w:type="page"/></w:r>`, want: "a"},
		{name: "carriage return and hyphen", run: `<w:r><w:t>a</w:t><w:cr/><w:noBreakHyphen/></w:r>`, want: "a\n-"},
		{name: "empty", run: `<w:r/>`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustParse(t, wrapBody(`<w:p>`+tt.run+`</w:p>`))
			assert.Equal(t, tt.want, firstRun(t, doc).Text())
		})
	}
}

func TestRun_SetText(t *testing.T) {
	tests := []struct {
		name    string
		run     string
		text    string
		wantXML string
	}{
		{
			name:    "single text updated in place",
			run:     `<w:r><w:rPr><w:b/></w:rPr><w:t>[A]</w:t></w:r>`,
			text:    "value",
			wantXML: `<w:r><w:rPr><w:b/></w:rPr><w:t>value</w:t></w:r>`,
		},
		{
			name:    "surrounding space is preserved",
			run:     `<w:r><w:t>[A]</w:t></w:r>`,
			text:    " v ",
			wantXML: `<w:r><w:t xml:space="preserve"> v </w:t></w:r>`,
		},
		{
			name:    "multiple text children collapse",
			run:     `<w:r><w:t>x</w:t><w:tab/><w:t>y</w:t></w:r>`,
			text:    "xy",
			wantXML: `<w:r><w:t>xy</w:t></w:r>`,
		},
		{
			name:    "newline becomes break",
			run:     `<w:r><w:t>[A]</w:t></w:r>`,
			text:    "one\ntwo",
			wantXML: `<w:r><w:t>one</w:t><w:br/><w:t>two</w:t></w:r>`,
		},
		{
			name:    "drawing keeps its position",
			run:     `<w:r><w:rPr><w:b/></w:rPr><w:t>[A]</w:t><w:drawing><w:x/></w:drawing><w:tab/></w:r>`,
			text:    "v",
			wantXML: `<w:r><w:rPr><w:b/></w:rPr><w:t>v</w:t><w:drawing><w:x/></w:drawing></w:r>`,
		},
		{
			name:    "run without text gains text",
			run:     `<w:r><w:rPr><w:b/></w:rPr></w:r>`,
			text:    "v",
			wantXML: `<w:r><w:rPr><w:b/></w:rPr><w:t>v</w:t></w:r>`,
		},
		{
			name:    "unchanged text is a no-op",
			run:     `<w:r><w:t>a</w:t><w:tab/></w:r>`,
			text:    "a\t",
			wantXML: `<w:r><w:t>a</w:t><w:tab/></w:r>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustParse(t, wrapBody(`<w:p>`+tt.run+`</w:p>`))
			run := firstRun(t, doc)
			run.SetText(tt.text)

			assert.Equal(t, tt.text, run.Text())
			assert.Equal(t, wrapBody(`<w:p>`+tt.wantXML+`</w:p>`), string(doc.Bytes()))
		})
	}
}

func TestParagraph_RunsIncludeHyperlinks(t *testing.T) {
	doc := mustParse(t, wrapBody(`<w:p><w:r><w:t>a</w:t></w:r><w:hyperlink r:id="rId1"><w:r><w:t>b</w:t></w:r><w:r><w:t>c</w:t></w:r></w:hyperlink><w:r><w:t>d</w:t></w:r></w:p>`))

	runs := doc.Body.Paragraphs()[0].Runs()
	require.Len(t, runs, 4)
	var texts []string
	for _, r := range runs {
		texts = append(texts, r.Text())
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, texts)
	assert.Equal(t, "abcd", doc.Body.Paragraphs()[0].GetText())
}
