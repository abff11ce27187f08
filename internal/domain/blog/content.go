package blog

import "github.com/shopspring/decimal"

// FAQItem is one question/answer pair as returned by the backend.
type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// FAQSchema is the schema.org FAQPage structured-data shape.
type FAQSchema struct {
	Context    string        `json:"@context"`
	Type       string        `json:"@type"`
	MainEntity []FAQQuestion `json:"mainEntity"`
}

type FAQQuestion struct {
	Type           string    `json:"@type"`
	Name           string    `json:"name"`
	AcceptedAnswer FAQAnswer `json:"acceptedAnswer"`
}

type FAQAnswer struct {
	Type string `json:"@type"`
	Text string `json:"text"`
}

// RecipeMeta is writer-specific metadata for recipe articles.
type RecipeMeta struct {
	EstimatedCost *decimal.Decimal `json:"estimatedCost,omitempty"`
	Servings      int              `json:"servings,omitempty"`
	CookingTime   string           `json:"cookingTime,omitempty"`
	Difficulty    string           `json:"difficulty,omitempty"`
}

// SavingsMeta is writer-specific metadata for money-saving articles.
type SavingsMeta struct {
	PotentialMonthlySavings *decimal.Decimal `json:"potentialMonthlySavings,omitempty"`
	SavingsTips             []string         `json:"savingsTips,omitempty"`
}

// BlogContent is produced (never persisted) by a generation.
type BlogContent struct {
	Title             string       `json:"title"`
	Summary           string       `json:"summary"`
	ContentMD         string       `json:"contentMd"`
	SEOTitle          string       `json:"seoTitle"`
	SEODescription    string       `json:"seoDescription"`
	SEOKeywords       []string     `json:"seoKeywords"`
	FAQJSONLD         FAQSchema    `json:"faqJsonLd"`
	InternalLinkSlugs []string     `json:"internalLinkSlugs"`
	Recipe            *RecipeMeta  `json:"recipe,omitempty"`
	Savings           *SavingsMeta `json:"savings,omitempty"`
}
