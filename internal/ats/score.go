package ats

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"
)

// DefaultKeywordScore is returned when there is nothing to match against.
const DefaultKeywordScore = 70.0

// Component weights for the overall score. They sum to 1.
const (
	WeightFormat    = 0.25
	WeightKeyword   = 0.30
	WeightStructure = 0.25
	WeightContent   = 0.20
)

var datePattern = regexp.MustCompile(`\d{4}|\d{1,2}/\d{4}|jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec`)

// ── Component scorers ────────────────────────────────

// FormatScore penalizes signs that the text would ingest poorly: encoding
// damage, excess length, sparse content and missing headings.
func FormatScore(text string, pageCount int) float64 {
	score := 100.0

	if strings.ContainsRune(text, '�') || strings.ContainsRune(text, '□') {
		score -= 20
	}
	if pageCount > 2 {
		score -= 10
	}
	if utf8.RuneCountInString(text) < 500 {
		score -= 30
	}
	if wordCount(text) < 200 {
		score -= 20
	}
	if len(presentTerms(text, sectionHeadings)) < 3 {
		score -= 15
	}

	return clamp(score)
}

// KeywordScore is the share of job-description keywords the resume covers.
func KeywordScore(resumeText, jobDescription string) float64 {
	if !hasJobDescription(jobDescription) {
		return DefaultKeywordScore
	}

	matched, missing := splitJobKeywords(resumeText, jobDescription)
	total := len(matched) + len(missing)
	if total == 0 {
		return DefaultKeywordScore
	}

	return clamp(float64(len(matched)) / float64(total) * 100)
}

// StructureScore checks for the four sections every resume needs and for
// enough dates to suggest a chronology.
func StructureScore(text string) float64 {
	score := 100.0

	for _, section := range requiredSections {
		if !containsAny(text, section.triggers) {
			score -= 20
		}
	}

	if len(datePattern.FindAllString(text, -1)) < 2 {
		score -= 10
	}

	return clamp(score)
}

// ContentScore rewards action verbs, quantified results and catalog keywords
// on top of a base of 70. Each bonus is capped.
func (c *Catalog) ContentScore(text string) float64 {
	score := 70.0
	score += math.Min(float64(len(c.FindActionVerbs(text))*2), 20)
	score += math.Min(float64(len(FindQuantifiedAchievements(text))*3), 15)
	score += math.Min(float64(len(c.FindKeywords(text))), 15)
	return clamp(score)
}

// ── Aggregation ──────────────────────────────────────

// Aggregate combines the component scores into the overall ATS score.
func Aggregate(format, keyword, structure, content float64) int {
	weighted := format*WeightFormat +
		keyword*WeightKeyword +
		structure*WeightStructure +
		content*WeightContent
	return int(clamp(math.Round(weighted)))
}

func clamp(score float64) float64 {
	switch {
	case math.IsNaN(score), score < 0:
		return 0
	case score > 100:
		return 100
	default:
		return score
	}
}

func wordCount(text string) int {
	return len(strings.Fields(text))
}
