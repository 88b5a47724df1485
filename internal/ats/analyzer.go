// Package ats scores how well a resume is likely to survive an applicant
// tracking system. Scoring is a pure function of the resume text, its page
// count, an optional job description and a read-only keyword catalog.
package ats

import (
	"context"
	"strings"
)

// Document is the plain text of an uploaded resume.
type Document struct {
	Text      string
	PageCount int
}

// Extractor turns uploaded bytes into a Document. Implementations return an
// *ExtractionError for unreadable input.
type Extractor interface {
	Extract(ctx context.Context, data []byte) (Document, error)
}

// Input is one scoring request. ResumeText is already lowercased.
type Input struct {
	ResumeText     string
	PageCount      int
	JobDescription string
}

// Report is the result of one analysis.
type Report struct {
	WordCount int `json:"wordCount"`
	PageCount int `json:"pageCount"`

	FormatScore    float64 `json:"formatScore"`
	KeywordScore   float64 `json:"keywordScore"`
	StructureScore float64 `json:"structureScore"`
	ContentScore   float64 `json:"contentScore"`
	ATSScore       int     `json:"atsScore"`

	FoundKeywords          []string `json:"foundKeywords"`
	MissingKeywords        []string `json:"missingKeywords"`
	ActionVerbs            []string `json:"actionVerbs"`
	QuantifiedAchievements []string `json:"quantifiedAchievements"`

	Issues          []string `json:"issues"`
	Recommendations []string `json:"recommendations"`
	Strengths       []string `json:"strengths"`
}

// Analyzer runs the full pipeline: extract, score, aggregate.
type Analyzer struct {
	extractor Extractor
	catalog   *Catalog
}

// NewAnalyzer returns an Analyzer backed by DefaultCatalog.
func NewAnalyzer(extractor Extractor) *Analyzer {
	return &Analyzer{extractor: extractor, catalog: DefaultCatalog}
}

// WithCatalog returns a copy of the analyzer that scores against catalog.
func (a *Analyzer) WithCatalog(catalog *Catalog) *Analyzer {
	return &Analyzer{extractor: a.extractor, catalog: catalog}
}

// Analyze extracts text from a PDF upload and scores it. Extraction
// failures abort the call; no partial report is produced.
func (a *Analyzer) Analyze(ctx context.Context, data []byte, jobDescription string) (*Report, error) {
	if len(data) == 0 {
		return nil, &InputError{Field: "file", Msg: "no bytes supplied"}
	}
	if a.extractor == nil {
		return nil, &InputError{Field: "extractor", Msg: "not configured"}
	}

	doc, err := a.extractor.Extract(ctx, data)
	if err != nil {
		return nil, err
	}

	return a.AnalyzeText(doc.Text, doc.PageCount, jobDescription), nil
}

// AnalyzeText scores already-extracted text. It never fails; empty or
// degenerate text simply scores low.
func (a *Analyzer) AnalyzeText(text string, pageCount int, jobDescription string) *Report {
	return a.catalog.Score(Input{
		ResumeText:     strings.ToLower(text),
		PageCount:      pageCount,
		JobDescription: jobDescription,
	})
}

// Score builds a report for in. The resume text must already be lowercase.
func (c *Catalog) Score(in Input) *Report {
	r := &Report{
		WordCount: wordCount(in.ResumeText),
		PageCount: in.PageCount,

		FormatScore:    FormatScore(in.ResumeText, in.PageCount),
		KeywordScore:   KeywordScore(in.ResumeText, in.JobDescription),
		StructureScore: StructureScore(in.ResumeText),
		ContentScore:   c.ContentScore(in.ResumeText),

		FoundKeywords:          c.FindKeywords(in.ResumeText),
		MissingKeywords:        FindMissingKeywords(in.ResumeText, in.JobDescription),
		ActionVerbs:            c.FindActionVerbs(in.ResumeText),
		QuantifiedAchievements: FindQuantifiedAchievements(in.ResumeText),

		Issues:          c.FindIssues(in.ResumeText),
		Recommendations: c.GenerateRecommendations(in.ResumeText, in.JobDescription),
		Strengths:       c.FindStrengths(in.ResumeText),
	}
	r.ATSScore = Aggregate(r.FormatScore, r.KeywordScore, r.StructureScore, r.ContentScore)
	return r
}
