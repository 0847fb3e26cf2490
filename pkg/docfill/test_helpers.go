// test_helpers.go contains functions used by tests and examples to build
// documents in memory. They are not needed to render real templates.

package docfill

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
)

// BuildDocx returns a minimal DOCX package whose body holds bodyXML. The w
// prefix is bound to the WordprocessingML namespace.
func BuildDocx(bodyXML string) []byte {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	// Add [Content_Types].xml
	ct, _ := w.Create("[Content_Types].xml")
	io.WriteString(ct, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`)

	// Add _rels/.rels
	rels, _ := w.Create("_rels/.rels")
	io.WriteString(rels, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`)

	// Add word/_rels/document.xml.rels
	wordRels, _ := w.Create("word/_rels/document.xml.rels")
	io.WriteString(wordRels, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
</Relationships>`)

	// Add word/document.xml
	doc, _ := w.Create(DocumentPartName)
	io.WriteString(doc, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`+
		bodyXML+
		`<w:sectPr/></w:body></w:document>`)

	w.Close()
	return buf.Bytes()
}

// BuildParagraphs returns body XML with one single-run paragraph per line.
// Lines are inserted as raw XML text, so they must already be escaped.
func BuildParagraphs(lines ...string) string {
	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(`<w:p><w:r><w:t xml:space="preserve">`)
		sb.WriteString(line)
		sb.WriteString(`</w:t></w:r></w:p>`)
	}
	return sb.String()
}
