package steps

import (
	"strings"

	"github.com/yungbote/blogwriter-backend/internal/domain/blog"
	"github.com/yungbote/blogwriter-backend/internal/modules/blog/writers"
)

type AssembleInput struct {
	Topic     blog.Topic
	Article   Article
	Validated Validated
	Buckets   []writers.Bucket
	Attempts  int
}

// Assemble builds the success result: gaps filled, FAQ schema attached and writer metadata
// promoted to typed fields.
func Assemble(in AssembleInput) blog.BlogGenerationResult {
	v := in.Validated
	missing, gapDiags := FillGaps(in.Buckets, v.Missing)
	diags := append(append([]blog.Diagnostic{}, v.Diagnostics...), gapDiags...)

	a := in.Article
	content := blog.BlogContent{
		Title:             strings.TrimSpace(a.Title),
		Summary:           strings.TrimSpace(a.Summary),
		ContentMD:         strings.TrimSpace(a.ContentMD),
		SEOTitle:          strings.TrimSpace(a.SEOTitle),
		SEODescription:    strings.TrimSpace(a.SEODescription),
		SEOKeywords:       v.SEOKeywords,
		FAQJSONLD:         BuildFAQSchema(v.FAQs),
		InternalLinkSlugs: v.InternalLinks,
		Recipe:            recipeMeta(a),
		Savings:           savingsMeta(a),
	}
	if content.SEOKeywords == nil {
		content.SEOKeywords = []string{}
	}
	if content.InternalLinkSlugs == nil {
		content.InternalLinkSlugs = []string{}
	}

	res := blog.Succeeded(content, v.Products, missing, diags)
	res.TopicID = in.Topic.ID
	res.BlogType = in.Topic.BlogType
	res.Attempts = in.Attempts
	return res
}

// Fail builds the failure result for topic.
func Fail(topic blog.Topic, err error, diags []blog.Diagnostic, attempts int) blog.BlogGenerationResult {
	res := blog.Failed(err, diags)
	res.TopicID = topic.ID
	res.BlogType = topic.BlogType
	res.Attempts = attempts
	return res
}

func recipeMeta(a Article) *blog.RecipeMeta {
	if a.EstimatedCost == nil && a.Servings == nil && a.CookingTime == nil && a.Difficulty == nil {
		return nil
	}
	m := &blog.RecipeMeta{}
	if a.EstimatedCost != nil && !a.EstimatedCost.IsNegative() {
		c := a.EstimatedCost.Round(2)
		m.EstimatedCost = &c
	}
	if a.Servings != nil {
		m.Servings = *a.Servings
	}
	if a.CookingTime != nil {
		m.CookingTime = strings.TrimSpace(*a.CookingTime)
	}
	if a.Difficulty != nil {
		m.Difficulty = *a.Difficulty
	}
	return m
}

func savingsMeta(a Article) *blog.SavingsMeta {
	if a.PotentialMonthlySavings == nil && a.SavingsTips == nil {
		return nil
	}
	m := &blog.SavingsMeta{SavingsTips: NormalizeKeywords(a.SavingsTips)}
	if a.PotentialMonthlySavings != nil && !a.PotentialMonthlySavings.IsNegative() {
		s := a.PotentialMonthlySavings.Round(2)
		m.PotentialMonthlySavings = &s
	}
	return m
}
