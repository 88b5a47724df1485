package ats

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	nonWordRe = regexp.MustCompile(`\W`)
	digitsRe  = regexp.MustCompile(`^\d+$`)
)

// extractKeywords tokenizes free text into a deduplicated keyword list in
// first-seen order. Tokens of three characters or fewer are dropped before
// punctuation is stripped, so a bare "sql" is dropped while "sql," survives
// as "sql".
func extractKeywords(text string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, word := range strings.Fields(text) {
		if utf8.RuneCountInString(word) <= 3 || digitsRe.MatchString(word) {
			continue
		}
		word = strings.ToLower(nonWordRe.ReplaceAllString(word, ""))
		if word == "" || seen[word] {
			continue
		}
		seen[word] = true
		if stopWords[word] {
			continue
		}
		out = append(out, word)
	}
	return out
}

// matchesAny reports whether keyword is contained in, or contains, any of
// the candidates. The loose containment tolerates plural and suffix
// differences and also lets "java" match "javascript".
func matchesAny(keyword string, candidates []string) bool {
	for _, c := range candidates {
		if strings.Contains(c, keyword) || strings.Contains(keyword, c) {
			return true
		}
	}
	return false
}

// splitJobKeywords partitions the job description's keywords into those
// the resume covers and those it does not, preserving first-seen order.
func splitJobKeywords(resumeText, jobDescription string) (matched, missing []string) {
	jobKeywords := extractKeywords(strings.ToLower(jobDescription))
	resumeKeywords := extractKeywords(resumeText)
	for _, kw := range jobKeywords {
		if matchesAny(kw, resumeKeywords) {
			matched = append(matched, kw)
		} else {
			missing = append(missing, kw)
		}
	}
	return matched, missing
}

// presentTerms returns the terms that occur as substrings of text.
func presentTerms(text string, terms []string) []string {
	found := []string{}
	seen := make(map[string]bool, len(terms))
	for _, term := range terms {
		if seen[term] {
			continue
		}
		seen[term] = true
		if strings.Contains(text, term) {
			found = append(found, term)
		}
	}
	return found
}

func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}

// hasJobDescription treats any non-empty string as a job description, even
// whitespace; such a description simply yields no keywords.
func hasJobDescription(jobDescription string) bool {
	return jobDescription != ""
}
