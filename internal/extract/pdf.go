// Package extract turns uploaded resume files into plain text.
package extract

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog/log"

	"github.com/yourusername/resumeiq-api/internal/ats"
)

// pdfMagic is the header every PDF file starts with.
const pdfMagic = "%PDF"

// PDFExtractor reads the text layer of a PDF. It never attempts OCR.
type PDFExtractor struct{}

func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// IsPDF reports whether data starts with the PDF magic bytes.
func IsPDF(data []byte) bool {
	return bytes.HasPrefix(data, []byte(pdfMagic))
}

// Extract implements ats.Extractor. Apart from context cancellation every
// failure is an *ats.ExtractionError.
func (e *PDFExtractor) Extract(ctx context.Context, data []byte) (doc ats.Document, err error) {
	if !IsPDF(data) {
		return ats.Document{}, &ats.ExtractionError{Reason: "not a pdf file"}
	}

	// ledongthuc/pdf panics on some malformed cross-reference tables
	defer func() {
		if r := recover(); r != nil {
			doc = ats.Document{}
			err = &ats.ExtractionError{Reason: "corrupt pdf", Err: fmt.Errorf("%v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return ats.Document{}, &ats.ExtractionError{Reason: "corrupt pdf", Err: err}
	}

	var sb strings.Builder
	numPages := reader.NumPage()

	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return ats.Document{}, err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			log.Warn().Int("page", i).Err(err).Msg("Failed to extract text from PDF page")
			continue
		}

		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(text)
	}

	text := sb.String()
	if strings.TrimSpace(text) == "" {
		return ats.Document{}, &ats.ExtractionError{Reason: "no text layer; the pdf may be a scanned image"}
	}

	return ats.Document{Text: text, PageCount: numPages}, nil
}
