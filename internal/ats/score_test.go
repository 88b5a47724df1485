package ats

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatScore(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		pageCount int
		want      float64
	}{
		{name: "empty", text: "", pageCount: 1, want: 35},
		{name: "garbage", text: "hi", pageCount: 1, want: 35},
		{name: "mojibake", text: "hi �", pageCount: 1, want: 15},
		{name: "box glyph", text: "hi □", pageCount: 1, want: 15},
		{name: "too many pages", text: "hi", pageCount: 3, want: 25},
		{name: "sections present", text: "experience education skills", pageCount: 1, want: 50},
		{name: "every penalty", text: "�", pageCount: 9, want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatScore(tt.text, tt.pageCount))
		})
	}
}

func TestKeywordScore_NoJobDescription(t *testing.T) {
	assert.Equal(t, DefaultKeywordScore, KeywordScore("python react", ""))
	assert.Equal(t, DefaultKeywordScore, KeywordScore("python react", "   \n\t"))
}

func TestKeywordScore_NoExtractableJobKeywords(t *testing.T) {
	// every token is three characters or shorter
	assert.Equal(t, DefaultKeywordScore, KeywordScore("python react", "go sql aws c++"))
}

func TestKeywordScore_PartialMatch(t *testing.T) {
	score := KeywordScore("python, react, aws", "Require python, react, docker, sql")
	assert.Equal(t, 50.0, score)
}

func TestKeywordScore_SubstringMatchIsBidirectional(t *testing.T) {
	assert.Equal(t, 100.0, KeywordScore("javascript developer", "java"))
	assert.Equal(t, 100.0, KeywordScore("java developer", "javascript"))
}

func TestKeywordScore_EmptyResume(t *testing.T) {
	assert.Equal(t, 0.0, KeywordScore("", "kubernetes terraform"))
}

func TestStructureScore(t *testing.T) {
	assert.Equal(t, 10.0, StructureScore(""))
	assert.Equal(t, 100.0, StructureScore("email experience degree skills 2020 2021"))
	assert.Equal(t, 90.0, StructureScore("email experience degree skills"))
	assert.Equal(t, 80.0, StructureScore("experience degree skills 03/2020 jan"))
}

func TestContentScore(t *testing.T) {
	c := DefaultCatalog

	assert.Equal(t, 70.0, c.ContentScore(""))
	// developed, led: 2 verbs -> +4; 50% -> +3; no catalog keywords
	assert.Equal(t, 77.0, c.ContentScore("developed and led work for 50%"))

	rich := strings.Join(c.Action, " ") + " " + strings.Join(c.Technical, " ") +
		" 10% 20% 30% 40% 50% 60%"
	assert.Equal(t, 100.0, c.ContentScore(rich))
}

func TestAggregate(t *testing.T) {
	assert.Equal(t, 0, Aggregate(0, 0, 0, 0))
	assert.Equal(t, 100, Aggregate(100, 100, 100, 100))
	assert.Equal(t, 72, Aggregate(100, 50, 80, 60))
	assert.Equal(t, 46, Aggregate(35, 70, 10, 70))
}

func TestAggregate_MatchesWeightedSum(t *testing.T) {
	quads := [][4]float64{
		{35, 70, 10, 70},
		{100, 66.66666666666667, 90, 85},
		{55, 12.5, 40, 100},
		{0, 100, 0, 100},
	}
	for _, q := range quads {
		want := 0.25*q[0] + 0.30*q[1] + 0.25*q[2] + 0.20*q[3]
		got := Aggregate(q[0], q[1], q[2], q[3])
		assert.InDelta(t, want, float64(got), 0.5, "quad %v", q)
	}
}

func TestWeightsSumToOne(t *testing.T) {
	assert.InDelta(t, 1.0, WeightFormat+WeightKeyword+WeightStructure+WeightContent, 1e-9)
}

func TestScorersAreIdempotent(t *testing.T) {
	text := wellFormedResume()
	c := DefaultCatalog

	assert.Equal(t, FormatScore(text, 1), FormatScore(text, 1))
	assert.Equal(t, KeywordScore(text, "python kubernetes"), KeywordScore(text, "python kubernetes"))
	assert.Equal(t, StructureScore(text), StructureScore(text))
	assert.Equal(t, c.ContentScore(text), c.ContentScore(text))
}
