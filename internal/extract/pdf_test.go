package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/resumeiq-api/internal/ats"
)

// buildPDF lays out the numbered objects and computes the xref offsets so
// the file is structurally valid. Object 1 must be the catalog.
func buildPDF(objects []string) []byte {
	var sb strings.Builder
	sb.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = sb.Len()
		fmt.Fprintf(&sb, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := sb.Len()
	fmt.Fprintf(&sb, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&sb, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&sb, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return []byte(sb.String())
}

// blankPDF builds a one-page PDF with no content stream.
func blankPDF() []byte {
	return buildPDF([]string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>",
	})
}

// textPDF builds a PDF with one Helvetica text line per page. Page text
// must not contain parentheses or backslashes.
func textPDF(pages ...string) []byte {
	const firstPageObj = 4 // after catalog, page tree and font

	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", firstPageObj+2*i)
	}

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	}
	for i, text := range pages {
		content := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] "+
				"/Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", firstPageObj+2*i+1),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		)
	}
	return buildPDF(objects)
}

func TestIsPDF(t *testing.T) {
	assert.True(t, IsPDF([]byte("%PDF-1.7\n...")))
	assert.False(t, IsPDF([]byte("PK\x03\x04")))
	assert.False(t, IsPDF(nil))
}

func TestExtract_Failures(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "docx zip", data: []byte("PK\x03\x04 not a pdf")},
		{name: "plain text", data: []byte("jane doe, software engineer")},
		{name: "truncated pdf", data: []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog")},
		{name: "header only", data: []byte("%PDF")},
		{name: "no text layer", data: blankPDF()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := NewPDFExtractor().Extract(context.Background(), tt.data)

			require.Error(t, err)
			var extErr *ats.ExtractionError
			assert.True(t, errors.As(err, &extErr), "got %T: %v", err, err)
			assert.Empty(t, doc.Text)
		})
	}
}

func TestExtract_NotPDFReason(t *testing.T) {
	_, err := NewPDFExtractor().Extract(context.Background(), []byte("hello"))

	var extErr *ats.ExtractionError
	require.True(t, errors.As(err, &extErr))
	assert.Equal(t, "not a pdf file", extErr.Reason)
}

func TestAnalyzerWithPDFExtractor_RejectsGarbage(t *testing.T) {
	report, err := ats.NewAnalyzer(NewPDFExtractor()).Analyze(context.Background(), []byte("garbage bytes"), "")

	assert.Nil(t, report)
	var extErr *ats.ExtractionError
	assert.True(t, errors.As(err, &extErr))
}

func TestExtract_TextLayer(t *testing.T) {
	doc, err := NewPDFExtractor().Extract(context.Background(),
		textPDF("Experience Python Developer", "Education 2019"))
	require.NoError(t, err)

	assert.Equal(t, 2, doc.PageCount)
	assert.Contains(t, doc.Text, "Experience Python Developer")
	assert.Contains(t, doc.Text, "Education 2019")
	assert.Less(t, strings.Index(doc.Text, "Experience"), strings.Index(doc.Text, "Education"),
		"pages are joined in order")
	assert.Contains(t, doc.Text, "\n\n", "pages are separated by a blank line")
}

func TestExtract_SinglePage(t *testing.T) {
	doc, err := NewPDFExtractor().Extract(context.Background(), textPDF("Skills Docker Kubernetes"))
	require.NoError(t, err)

	assert.Equal(t, 1, doc.PageCount)
	assert.Equal(t, "Skills Docker Kubernetes", strings.TrimSpace(doc.Text))
}

func TestExtract_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewPDFExtractor().Extract(ctx, textPDF("Experience"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnalyzerWithPDFExtractor_ScoresTextPDF(t *testing.T) {
	pdfBytes := textPDF("Experience Python Developer", "Education 2019")

	report, err := ats.NewAnalyzer(NewPDFExtractor()).Analyze(context.Background(), pdfBytes, "Require python, kubernetes")
	require.NoError(t, err)

	assert.Equal(t, 2, report.PageCount)
	assert.Equal(t, 5, report.WordCount)
	assert.Contains(t, report.FoundKeywords, "python")
	assert.Contains(t, report.MissingKeywords, "kubernetes")
	assert.NotContains(t, report.MissingKeywords, "python")
	assert.Contains(t, report.Issues, ats.IssueTooShort)
	assert.GreaterOrEqual(t, report.ATSScore, 0)
	assert.LessOrEqual(t, report.ATSScore, 100)
}
