package xml

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wordNS = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"`

func wrapBody(body string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n" +
		`<w:document ` + wordNS + ` xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"><w:body>` +
		body +
		`<w:sectPr><w:pgSz w:w="11906" w:h="16838"/></w:sectPr></w:body></w:document>`
}

func mustParse(t *testing.T, s string) *Document {
	t.Helper()
	doc, err := ParseDocument(strings.NewReader(s))
	require.NoError(t, err)
	return doc
}

func TestParseDocument_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "formatted runs",
			body: `<w:p><w:pPr><w:jc w:val="center"/></w:pPr><w:r><w:rPr><w:b/><w:sz w:val="28"/></w:rPr><w:t xml:space="preserve">Hello &amp; </w:t></w:r><w:r><w:t>[NAME]</w:t></w:r></w:p>`,
		},
		{
			name: "comments and unknown elements",
			body: `<!-- generated --><w:p><w:bookmarkStart w:id="0" w:name="x"/><w:r><w:t>a&lt;b&gt;c</w:t></w:r><w:bookmarkEnd w:id="0"/></w:p>`,
		},
		{
			name: "nested table",
			body: `<w:tbl><w:tblPr><w:tblStyle w:val="Grid"/></w:tblPr><w:tr><w:tc><w:p><w:r><w:t>cell</w:t></w:r></w:p><w:tbl><w:tr><w:tc><w:p/></w:tc></w:tr></w:tbl></w:tc></w:tr></w:tbl>`,
		},
		{
			name: "attribute needing escapes",
			body: `<w:p><w:hyperlink r:id="rId1" w:tooltip="a &quot;b&quot; &amp; c"><w:r><w:t>link</w:t></w:r></w:hyperlink></w:p>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := wrapBody(tt.body)
			doc := mustParse(t, src)
			assert.Equal(t, src, string(doc.Bytes()))
		})
	}
}

func TestParseDocument_NormalizesEquivalentMarkup(t *testing.T) {
	decl := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`
	root := `<w:document ` + wordNS + `><w:body><w:p><w:r><w:t>say %s</w:t></w:r></w:p></w:body></w:document>`
	src := decl + "\r\n" + strings.Replace(root, "%s", "&quot;hi&quot;", 1)
	want := decl + "\n" + strings.Replace(root, "%s", `"hi"`, 1)

	doc := mustParse(t, src)
	out := string(doc.Bytes())
	assert.Equal(t, want, out)

	again := mustParse(t, out)
	assert.Equal(t, `say "hi"`, again.Body.Paragraphs()[0].GetText())
	assert.Equal(t, out, string(again.Bytes()))
}

func TestParseDocument_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "not a document", input: `<w:hdr ` + wordNS + `><w:p/></w:hdr>`},
		{name: "missing body", input: `<w:document ` + wordNS + `></w:document>`},
		{name: "unclosed", input: `<w:document ` + wordNS + `><w:body>`},
		{name: "mismatched", input: `<w:document ` + wordNS + `><w:body></w:p></w:document>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDocument(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestParseNodes_ResolvesPrefixes(t *testing.T) {
	// The body uses a non-conventional prefix for the main namespace.
	src := `<x:document xmlns:x="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><x:body><x:p><x:r><x:t>hi</x:t></x:r></x:p></x:body></x:document>`
	doc := mustParse(t, src)

	paras := doc.Body.Paragraphs()
	require.Len(t, paras, 1)
	assert.Equal(t, "hi", paras[0].GetText())

	paras[0].Runs()[0].SetText("a\tb")
	var buf bytes.Buffer
	_, err := doc.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `<x:r><x:t>a</x:t><x:tab/><x:t>b</x:t></x:r>`)
}

func TestBody_ParagraphsAndTables(t *testing.T) {
	doc := mustParse(t, wrapBody(`<w:p/><w:tbl><w:tr><w:tc><w:p/></w:tc></w:tr></w:tbl><w:p/>`))

	assert.Len(t, doc.Body.Paragraphs(), 2)
	require.Len(t, doc.Body.Tables(), 1)
	assert.Len(t, doc.Body.Tables()[0].Rows(), 1)
}
