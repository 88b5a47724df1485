package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/resumeiq-api/internal/ats"
)

// Analysis sources
const (
	SourceUpload = "upload"
	SourceText   = "text"
)

// Analysis is one stored resume analysis. The report fields are inlined so
// the JSON shape matches what the upload endpoint has always returned.
type Analysis struct {
	ID             uuid.UUID `json:"id"`
	OwnerID        string    `json:"-"`
	Source         string    `json:"source"`
	FileName       string    `json:"fileName,omitempty"`
	FileSize       int64     `json:"fileSize,omitempty"`
	JobDescription string    `json:"jobDescription,omitempty"`
	ats.Report
	CreatedAt time.Time `json:"uploadDate"`
}

// AnalysisSummary is the list view of an analysis
type AnalysisSummary struct {
	ID         uuid.UUID `json:"id"`
	Source     string    `json:"source"`
	FileName   string    `json:"fileName,omitempty"`
	ATSScore   int       `json:"atsScore"`
	IssueCount int       `json:"issueCount"`
	CreatedAt  time.Time `json:"uploadDate"`
}

func (a *Analysis) Summary() AnalysisSummary {
	return AnalysisSummary{
		ID:         a.ID,
		Source:     a.Source,
		FileName:   a.FileName,
		ATSScore:   a.ATSScore,
		IssueCount: len(a.Issues),
		CreatedAt:  a.CreatedAt,
	}
}
