package ats

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubExtractor struct {
	doc   Document
	err   error
	calls int
}

func (s *stubExtractor) Extract(ctx context.Context, data []byte) (Document, error) {
	s.calls++
	return s.doc, s.err
}

func wellFormedResume() string {
	header := `jane doe
email: jane.doe@example.com | phone: 555-123-4567
summary
senior software engineer with leadership and communication strengths.
experience
acme corp, 2019 - 2022
developed a python and react platform on aws with docker and kubernetes.
implemented sql and postgresql database api services, improving latency by 40%.
managed a team of 6 people and led agile scrum ceremonies.
designed devops pipelines with git, reducing costs by 25% and raising revenue 30%.
created data analysis dashboards for 12 clients.
education
bs computer science, state university
skills
javascript, html, css, mongodb, machine learning
`
	filler := strings.Repeat("worked closely with partners to ship reliable software on schedule. ", 25)
	return header + filler
}

func TestAnalyzeText_WellFormedResume(t *testing.T) {
	a := NewAnalyzer(nil)
	r := a.AnalyzeText(wellFormedResume(), 1, "")

	assert.Equal(t, 100.0, r.FormatScore)
	assert.Equal(t, DefaultKeywordScore, r.KeywordScore)
	assert.Equal(t, 100.0, r.StructureScore)
	assert.Equal(t, 100.0, r.ContentScore)
	assert.Equal(t, 91, r.ATSScore)
	assert.Empty(t, r.Issues)
	assert.GreaterOrEqual(t, len(r.Strengths), 3)
	assert.GreaterOrEqual(t, r.WordCount, 200)
	assert.Equal(t, 1, r.PageCount)
	assert.Equal(t, genericMissingKeywords, r.MissingKeywords)
}

func TestAnalyzeText_ShortGarbage(t *testing.T) {
	r := NewAnalyzer(nil).AnalyzeText("hi", 1, "")

	assert.Less(t, r.FormatScore, 50.0)
	assert.Contains(t, r.Issues, IssueTooShort)
	assert.Less(t, r.ATSScore, 50)
	assert.Equal(t, 46, r.ATSScore)
}

func TestAnalyzeText_KeywordMatch(t *testing.T) {
	r := NewAnalyzer(nil).AnalyzeText("python, react, aws", 1, "Require python, react, docker, sql")

	assert.Equal(t, 50.0, r.KeywordScore)
	assert.Equal(t, []string{"require", "docker"}, r.MissingKeywords)
}

func TestAnalyzeText_LowercasesInput(t *testing.T) {
	a := NewAnalyzer(nil)
	assert.Equal(t, a.AnalyzeText("EXPERIENCE EDUCATION SKILLS", 1, ""), a.AnalyzeText("experience education skills", 1, ""))
}

func TestAnalyzeText_EmptyTextIsTotal(t *testing.T) {
	r := NewAnalyzer(nil).AnalyzeText("", 0, "")

	assert.Equal(t, 0, r.WordCount)
	assert.Equal(t, 35.0, r.FormatScore)
	assert.Equal(t, 10.0, r.StructureScore)
	assert.Equal(t, 70.0, r.ContentScore)

	raw, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"foundKeywords":[]`)
	assert.Contains(t, string(raw), `"actionVerbs":[]`)
	assert.Contains(t, string(raw), `"quantifiedAchievements":[]`)
	assert.Contains(t, string(raw), `"strengths":[]`)
}

func TestAnalyzeText_ScoreBounds(t *testing.T) {
	a := NewAnalyzer(nil)
	inputs := []struct {
		text  string
		pages int
		jd    string
	}{
		{"", 0, ""},
		{"hi", 1, "kubernetes"},
		{"�□", 50, ""},
		{wellFormedResume(), 1, ""},
		{wellFormedResume(), 4, "python golang rust terraform"},
		{strings.Repeat(wellFormedResume(), 5), 3, wellFormedResume()},
		{strings.Repeat("developed 10% ", 500), 1, "developed"},
	}

	for _, in := range inputs {
		r := a.AnalyzeText(in.text, in.pages, in.jd)
		for name, s := range map[string]float64{
			"format":    r.FormatScore,
			"keyword":   r.KeywordScore,
			"structure": r.StructureScore,
			"content":   r.ContentScore,
			"ats":       float64(r.ATSScore),
		} {
			assert.GreaterOrEqual(t, s, 0.0, name)
			assert.LessOrEqual(t, s, 100.0, name)
		}
		assert.LessOrEqual(t, len(r.MissingKeywords), 8)
		assert.Equal(t, Aggregate(r.FormatScore, r.KeywordScore, r.StructureScore, r.ContentScore), r.ATSScore)
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	ext := &stubExtractor{doc: Document{Text: wellFormedResume(), PageCount: 2}}
	a := NewAnalyzer(ext)

	first, err := a.Analyze(context.Background(), []byte("%PDF-1.4"), "python kubernetes terraform")
	require.NoError(t, err)
	second, err := a.Analyze(context.Background(), []byte("%PDF-1.4"), "python kubernetes terraform")
	require.NoError(t, err)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(firstJSON), string(secondJSON))
	assert.Equal(t, 2, first.PageCount)
}

func TestAnalyze_EmptyInput(t *testing.T) {
	ext := &stubExtractor{}
	_, err := NewAnalyzer(ext).Analyze(context.Background(), nil, "")

	var inputErr *InputError
	require.True(t, errors.As(err, &inputErr))
	assert.Equal(t, "file", inputErr.Field)
	assert.Zero(t, ext.calls, "extraction must not run for empty input")
}

func TestAnalyze_ExtractionFailure(t *testing.T) {
	cause := errors.New("malformed xref table")
	ext := &stubExtractor{err: &ExtractionError{Reason: "unreadable pdf", Err: cause}}

	report, err := NewAnalyzer(ext).Analyze(context.Background(), []byte("garbage"), "")

	assert.Nil(t, report)
	var extErr *ExtractionError
	require.True(t, errors.As(err, &extErr))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "malformed xref table")
}

func TestWithCatalog(t *testing.T) {
	custom := &Catalog{Technical: []string{"golang"}, Action: []string{"shipped"}}
	r := NewAnalyzer(nil).WithCatalog(custom).AnalyzeText("shipped golang services", 1, "")

	assert.Equal(t, []string{"golang"}, r.FoundKeywords)
	assert.Equal(t, []string{"shipped"}, r.ActionVerbs)
	// DefaultCatalog is untouched
	assert.NotContains(t, DefaultCatalog.Technical, "golang")
}
