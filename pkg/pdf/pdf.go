package pdf

import (
	"bytes"
	"fmt"
	"strings"

	lpdf "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Document is a PDF held fully in memory. Parsing happens once at Open;
// page operations afterwards are read-only.
type Document struct {
	raw    []byte
	reader *lpdf.Reader
}

func Open(raw []byte) (*Document, error) {
	reader, err := lpdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse pdf: %w", err)
	}
	return &Document{raw: raw, reader: reader}, nil
}

func (d *Document) PageCount() int {
	return d.reader.NumPage()
}

// PageText extracts the plain text of pages [start, end), 0-based. Pages
// without extractable content contribute nothing.
func (d *Document) PageText(start, end int) (string, error) {
	if start < 0 || end > d.PageCount() || start > end {
		return "", fmt.Errorf("page range [%d, %d) out of bounds, document has %d pages", start, end, d.PageCount())
	}

	var sb strings.Builder
	for i := start; i < end; i++ {
		page := d.reader.Page(i + 1)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to extract text of page %d: %w", i+1, err)
		}
		sb.WriteString(text)
	}
	return sb.String(), nil
}

// ExtractRange writes a standalone PDF containing only pages [start, end),
// 0-based. Used to materialize chunk files for object storage.
func (d *Document) ExtractRange(start, end int) ([]byte, error) {
	if start < 0 || end > d.PageCount() || start >= end {
		return nil, fmt.Errorf("page range [%d, %d) out of bounds, document has %d pages", start, end, d.PageCount())
	}

	var buf bytes.Buffer
	selected := []string{fmt.Sprintf("%d-%d", start+1, end)}
	if err := api.Trim(bytes.NewReader(d.raw), &buf, selected, nil); err != nil {
		return nil, fmt.Errorf("failed to extract pages %d-%d: %w", start+1, end, err)
	}
	return buf.Bytes(), nil
}
