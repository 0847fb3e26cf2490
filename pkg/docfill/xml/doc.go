// Package xml provides a structure-preserving object model for WordprocessingML
// parts of DOCX files.
//
// DOCX files are ZIP archives whose main part, word/document.xml, describes the
// document body. This package parses such a part into a tree of nodes that keeps
// every element, attribute, comment and processing instruction in the order and
// with the prefixes it was written, and exposes typed views over the parts of the
// tree the template engine cares about.
//
// # Structure Organization
//
//   - types.go: The generic node tree (Element, CharData, Comment, ProcInst, Directive)
//   - tree.go: Decoding a part into nodes and encoding nodes back to bytes
//   - document.go: Document and Body
//   - paragraph.go: Paragraph and its runs
//   - run.go: Run text access and in-place text replacement
//   - table.go: Table, TableRow and TableCell
//   - walk.go: Deterministic traversal of paragraphs through nested tables
//
// # Key Concepts
//
// Container: anything holding paragraphs and tables, i.e. the document body or a
// table cell. Cells may contain tables of their own, to any depth.
//
// Run: a contiguous sequence of text with consistent formatting. Runs are the atomic
// units of text formatting in DOCX files, and the smallest unit in which a
// placeholder token must appear whole.
//
// # Usage
//
//	doc, err := xml.ParseDocument(bytes.NewReader(documentXML))
//	if err != nil {
//	    return err
//	}
//	err = xml.WalkParagraphs(doc.Body, func(p *xml.Paragraph, depth int) error {
//	    for _, run := range p.Runs() {
//	        fmt.Println(run.Text())
//	    }
//	    return nil
//	})
//
// Only the text of runs is ever rewritten. Encoding an unmodified document yields
// equivalent markup: elements, attributes and their order are kept, while entity
// references in text and line endings outside the root element are normalized.
package xml
