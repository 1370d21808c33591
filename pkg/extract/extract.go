// Package extract pulls plain text out of supporting documents.
package extract

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// PDFExtractor reads the text layer of PDF files
type PDFExtractor struct {
	logger *zap.Logger
}

// NewPDFExtractor creates a PDF extractor. A nil logger discards output.
func NewPDFExtractor(logger *zap.Logger) *PDFExtractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PDFExtractor{logger: logger}
}

// Extract returns the text of every page of the PDF at path. It never fails:
// missing, unreadable or corrupt files yield "".
func (e *PDFExtractor) Extract(path string) string {
	text, err := readPDF(path)
	if err != nil {
		e.logger.Warn("failed to extract text from PDF", zap.String("path", path), zap.Error(err))
		return ""
	}
	return strings.TrimSpace(text)
}

func readPDF(path string) (text string, err error) {
	// The pdf reader panics on some malformed inputs
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("corrupt PDF: %v", r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	pages := make([]string, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		content, err := p.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to read text of page %d: %w", i, err)
		}
		pages = append(pages, content)
	}

	// Pages are newline-separated so words never fuse across a page break
	return strings.Join(pages, "\n"), nil
}
