package ats

// Catalog holds the reference term lists used for presence checks.
// All terms are lowercase. A Catalog is never mutated after construction,
// so one value can be shared by any number of concurrent analyses.
type Catalog struct {
	Technical []string
	Soft      []string
	Action    []string
	Business  []string
}

// DefaultCatalog is the process-wide keyword catalog.
var DefaultCatalog = &Catalog{
	Technical: []string{
		"javascript", "python", "java", "react", "node.js", "sql", "aws", "docker",
		"kubernetes", "git", "api", "database", "html", "css", "mongodb", "postgresql",
		"machine learning", "ai", "data analysis", "cloud computing", "devops",
	},
	Soft: []string{
		"leadership", "communication", "teamwork", "problem solving", "analytical",
		"creative", "adaptable", "organized", "detail-oriented", "collaborative",
	},
	Action: []string{
		"developed", "implemented", "managed", "led", "created", "designed", "optimized",
		"improved", "increased", "reduced", "achieved", "delivered", "coordinated",
	},
	Business: []string{
		"agile", "scrum", "project management", "stakeholder", "requirements",
		"strategy", "process improvement", "cost reduction", "revenue growth",
	},
}

// genericMissingKeywords is reported when there is no job description to compare against.
var genericMissingKeywords = []string{
	"project management", "team collaboration", "problem solving", "analytical thinking",
}

// stopWords are dropped from extracted keyword sets.
var stopWords = map[string]bool{
	"the": true, "and": true, "for": true, "are": true, "but": true, "not": true,
	"you": true, "all": true, "can": true, "had": true, "her": true, "was": true,
	"one": true, "our": true, "out": true, "day": true, "get": true, "has": true,
	"him": true, "his": true, "how": true, "its": true, "may": true, "new": true,
	"now": true, "old": true, "see": true, "two": true, "who": true, "boy": true,
	"did": true, "she": true, "use": true, "air": true, "any": true, "say": true,
	"way": true, "oil": true, "sit": true, "set": true,
}

// sectionHeadings are the canonical headings the format check looks for.
var sectionHeadings = []string{"experience", "education", "skills", "summary", "objective"}

type requiredSection struct {
	name     string
	triggers []string
}

// requiredSections drive the structure check; a section counts as present
// when any of its triggers appears in the text.
var requiredSections = []requiredSection{
	{name: "contact", triggers: []string{"email", "phone", "@"}},
	{name: "experience", triggers: []string{"experience", "work", "employment"}},
	{name: "education", triggers: []string{"education", "degree", "university", "college"}},
	{name: "skills", triggers: []string{"skills", "technical", "proficient"}},
}

// keywordTerms returns technical, soft and business terms in catalog order.
// Action verbs are tracked separately.
func (c *Catalog) keywordTerms() []string {
	terms := make([]string, 0, len(c.Technical)+len(c.Soft)+len(c.Business))
	terms = append(terms, c.Technical...)
	terms = append(terms, c.Soft...)
	terms = append(terms, c.Business...)
	return terms
}
