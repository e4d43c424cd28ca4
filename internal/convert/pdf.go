package convert

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFConverter extracts the plain text of a PDF into text items, one per
// line. PDF cell grids are not reconstructed; order sheets that only ship as
// scanned tables will fail layout extraction downstream and the document is
// kept with a failed status.
type PDFConverter struct{}

// NewPDFConverter returns a stateless PDF converter safe for concurrent use.
func NewPDFConverter() *PDFConverter {
	return &PDFConverter{}
}

func (p *PDFConverter) Convert(_ context.Context, r io.Reader) (*Result, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}

	reader, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}
	textBytes, err := io.ReadAll(plain)
	if err != nil {
		return nil, fmt.Errorf("read pdf text: %w", err)
	}

	b := &contentBuilder{}
	for _, line := range strings.Split(string(textBytes), "\n") {
		b.addText("paragraph", line)
	}

	if len(b.content.Blocks) == 0 {
		return nil, ErrEmptyDocument
	}

	return &Result{
		Markdown: ExportMarkdown(&b.content),
		Content:  b.content,
	}, nil
}
