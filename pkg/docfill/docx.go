package docfill

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/benjaminschreck/go-docfill/pkg/docfill/xml"
)

// DocumentPartName is the main part of a WordprocessingML package.
const DocumentPartName = "word/document.xml"

// DocxReader handles reading and parsing DOCX files
type DocxReader struct {
	reader *zip.Reader
	Parts  map[string]*zip.File
}

// NewDocxReader creates a new DOCX reader
func NewDocxReader(r io.ReaderAt, size int64) (*DocxReader, error) {
	zipReader, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to read zip file: %w", err)
	}

	dr := &DocxReader{
		reader: zipReader,
		Parts:  make(map[string]*zip.File),
	}

	// Index all parts by name
	for _, file := range zipReader.File {
		dr.Parts[file.Name] = file
	}

	if _, ok := dr.Parts[DocumentPartName]; !ok {
		return nil, fmt.Errorf("not a valid DOCX file: missing %s", DocumentPartName)
	}

	return dr, nil
}

// DocxReaderFromFile creates a DocxReader from a file path. The file is read
// into memory, so the same path may be overwritten while the reader is in use.
func DocxReaderFromFile(path string) (*DocxReader, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return NewDocxReader(bytes.NewReader(content), int64(len(content)))
}

// GetPart retrieves the content of a specific part
func (dr *DocxReader) GetPart(partName string) ([]byte, error) {
	file, ok := dr.Parts[partName]
	if !ok {
		return nil, fmt.Errorf("part %s not found", partName)
	}

	rc, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open part %s: %w", partName, err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read part %s: %w", partName, err)
	}

	return content, nil
}

// ListParts returns the sorted names of all parts in the DOCX
func (dr *DocxReader) ListParts() []string {
	parts := make([]string, 0, len(dr.Parts))
	for name := range dr.Parts {
		parts = append(parts, name)
	}
	sort.Strings(parts)
	return parts
}

// Write writes the package to w in its original part order. Parts named in
// overrides get the given content; all others are copied without recompression.
func (dr *DocxReader) Write(w io.Writer, overrides map[string][]byte) error {
	zw := zip.NewWriter(w)

	for _, file := range dr.reader.File {
		content, replace := overrides[file.Name]
		if !replace {
			if err := zw.Copy(file); err != nil {
				return fmt.Errorf("failed to copy %s: %w", file.Name, err)
			}
			continue
		}

		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     file.Name,
			Method:   zip.Deflate,
			Modified: file.Modified,
		})
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", file.Name, err)
		}
		if _, err := fw.Write(content); err != nil {
			return fmt.Errorf("failed to write %s: %w", file.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize zip: %w", err)
	}
	return nil
}

// Document is an opened DOCX package together with its parsed main part.
type Document struct {
	reader *DocxReader
	Main   *xml.Document
}

// OpenDocument reads and parses the DOCX file at path.
func OpenDocument(path string) (*Document, error) {
	dr, err := DocxReaderFromFile(path)
	if err != nil {
		return nil, NewDocumentError("open", path, err)
	}
	doc, err := newDocument(dr)
	if err != nil {
		return nil, NewDocumentError("open", path, err)
	}
	return doc, nil
}

// ParseDocx parses DOCX bytes held in memory.
func ParseDocx(data []byte) (*Document, error) {
	dr, err := NewDocxReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	return newDocument(dr)
}

func newDocument(dr *DocxReader) (*Document, error) {
	content, err := dr.GetPart(DocumentPartName)
	if err != nil {
		return nil, err
	}
	main, err := xml.ParseDocument(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}
	return &Document{reader: dr, Main: main}, nil
}

// Body returns the body of the main document part.
func (d *Document) Body() *xml.Body {
	return d.Main.Body
}

// WriteTo writes the package with the current state of the main part.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	err := d.reader.Write(&buf, map[string][]byte{
		DocumentPartName: d.Main.Bytes(),
	})
	if err != nil {
		return 0, err
	}
	return buf.WriteTo(w)
}

// Save writes the package to path, replacing any existing file.
func (d *Document) Save(path string) error {
	var buf bytes.Buffer
	if _, err := d.WriteTo(&buf); err != nil {
		return NewDocumentError("save", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return NewDocumentError("save", path, err)
	}
	return nil
}
