// Package docfill fills bracketed placeholders in Microsoft Word (DOCX)
// templates and converts the result, typically to PDF.
//
// A template carries tokens such as [CLIENT_NAME] inside ordinary runs of text.
// Rendering copies the template, replaces every known token with its value,
// saves the copy and hands it to a Converter:
//
//	conv := docfill.NewLibreOfficeConverter("soffice")
//	r := docfill.NewRenderer(conv, docfill.WithLogger(logger))
//
//	res, err := r.Render(ctx, "templates/act.docx", "out/act-42.pdf", map[string]string{
//	    "CLIENT_NAME": "ООО Ромашка",
//	    "AMOUNT":      "1500",
//	})
//
// # Placeholders
//
// A token is the upper-cased field name in square brackets. Tokens are matched
// inside a single run only; a token split across runs by Word's editing
// history is left untouched. Unknown tokens stay in the document verbatim.
// Replacement values are inserted as plain text and are never scanned for
// tokens again.
//
// Body paragraphs, paragraphs inside table cells and paragraphs inside nested
// tables at any depth are processed. Headers, footers, footnotes and text
// boxes are not.
//
// # Records
//
// LoadRecords reads ';'-separated text or .xlsx spreadsheets into a
// RecordStore keyed by the first column. Headers colliding with the reserved
// field names fail the load.
//
// # Amounts
//
// AmountFormatter spells integer amounts in words and picks the matching
// currency noun from three plural forms:
//
//	f, _ := docfill.NewAmountFormatterForLanguage("ru")
//	s, _ := f.Format(22, []string{"рубль", "рубля", "рублей"})
//	// s == "двадцать два рубля"
package docfill
