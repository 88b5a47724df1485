package ats

import (
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"
)

// maxMissingKeywords caps how many uncovered job keywords are reported.
const maxMissingKeywords = 8

// Issue messages. Recommendations key off these exact strings.
const (
	IssueTooShort       = "Resume appears too short"
	IssueTooLong        = "Resume appears too long"
	IssueMissingEmail   = "Missing email address"
	IssueMissingPhone   = "Missing phone number"
	IssueFewActionVerbs = "Insufficient action verbs"
	IssueFewQuantified  = "Lack of quantified achievements"
)

const (
	StrengthActionVerbs = "Good use of action verbs"
	StrengthQuantified  = "Well-quantified achievements"
	StrengthKeywords    = "Rich in relevant keywords"
	StrengthStructure   = "Complete resume structure"
)

const (
	recActionVerbs       = `Start bullet points with strong action verbs like "developed", "implemented", "managed"`
	recQuantify          = "Add specific numbers and percentages to quantify your achievements"
	recKeywords          = "Include more industry-relevant keywords and technical skills"
	recJobKeywords       = "Incorporate more keywords from the job description"
	recConsistentHeaders = "Use consistent formatting and clear section headers"
	recSimplePDF         = "Ensure your resume is saved as a simple PDF without complex formatting"
)

// achievementPatterns accept non-breaking spaces, which PDF text often
// carries between a number and its unit.
var achievementPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d+%`),
	regexp.MustCompile(`\$\d+`),
	regexp.MustCompile(`(?i)\d+[\s\x{00a0}]*(million|thousand|k|m)`),
	regexp.MustCompile(`(?i)\d+[\s\x{00a0}]*(years?|months?)`),
	regexp.MustCompile(`(?i)\d+[\s\x{00a0}]*(projects?|teams?|people|clients?|customers?)`),
}

var phonePattern = regexp.MustCompile(`\d{3}[-.]?\d{3}[-.]?\d{4}`)

// FindKeywords returns the catalog keywords present in text.
func (c *Catalog) FindKeywords(text string) []string {
	return presentTerms(text, c.keywordTerms())
}

// FindActionVerbs returns the catalog action verbs present in text.
func (c *Catalog) FindActionVerbs(text string) []string {
	return presentTerms(text, c.Action)
}

// FindMissingKeywords lists job-description keywords the resume does not
// cover, at most eight, in the order they first appear in the description.
// Without a description a generic list is returned.
func FindMissingKeywords(resumeText, jobDescription string) []string {
	if !hasJobDescription(jobDescription) {
		out := make([]string, len(genericMissingKeywords))
		copy(out, genericMissingKeywords)
		return out
	}

	_, missing := splitJobKeywords(resumeText, jobDescription)
	if len(missing) > maxMissingKeywords {
		missing = missing[:maxMissingKeywords]
	}
	if missing == nil {
		missing = []string{}
	}
	return missing
}

// FindQuantifiedAchievements returns every match of the achievement
// patterns, pattern by pattern. Overlapping matches are kept.
func FindQuantifiedAchievements(text string) []string {
	achievements := []string{}
	for _, re := range achievementPatterns {
		achievements = append(achievements, re.FindAllString(text, -1)...)
	}
	return achievements
}

// FindIssues lists the ATS problems detected in text, in a fixed order.
func (c *Catalog) FindIssues(text string) []string {
	issues := []string{}

	length := utf8.RuneCountInString(text)
	if length < 800 {
		issues = append(issues, IssueTooShort)
	}
	if length > 4000 {
		issues = append(issues, IssueTooLong)
	}
	if !strings.Contains(text, "@") {
		issues = append(issues, IssueMissingEmail)
	}
	if !strings.Contains(text, "phone") && !phonePattern.MatchString(text) {
		issues = append(issues, IssueMissingPhone)
	}
	if len(c.FindActionVerbs(text)) < 3 {
		issues = append(issues, IssueFewActionVerbs)
	}
	if len(FindQuantifiedAchievements(text)) < 2 {
		issues = append(issues, IssueFewQuantified)
	}

	return issues
}

// GenerateRecommendations turns detected issues into advice. The last two
// entries are always the generic formatting tips.
func (c *Catalog) GenerateRecommendations(resumeText, jobDescription string) []string {
	recs := []string{}
	issues := c.FindIssues(resumeText)

	if slices.Contains(issues, IssueFewActionVerbs) {
		recs = append(recs, recActionVerbs)
	}
	if slices.Contains(issues, IssueFewQuantified) {
		recs = append(recs, recQuantify)
	}
	if len(c.FindKeywords(resumeText)) < 10 {
		recs = append(recs, recKeywords)
	}
	if hasJobDescription(jobDescription) && len(FindMissingKeywords(resumeText, jobDescription)) > 5 {
		recs = append(recs, recJobKeywords)
	}

	return append(recs, recConsistentHeaders, recSimplePDF)
}

// FindStrengths lists what the resume already does well.
func (c *Catalog) FindStrengths(text string) []string {
	strengths := []string{}

	if len(c.FindActionVerbs(text)) >= 5 {
		strengths = append(strengths, StrengthActionVerbs)
	}
	if len(FindQuantifiedAchievements(text)) >= 3 {
		strengths = append(strengths, StrengthQuantified)
	}
	if len(c.FindKeywords(text)) >= 10 {
		strengths = append(strengths, StrengthKeywords)
	}
	if strings.Contains(text, "education") && strings.Contains(text, "experience") {
		strengths = append(strengths, StrengthStructure)
	}

	return strengths
}
