package steps

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/yungbote/blogwriter-backend/internal/domain/blog"
)

// Rules bounds what a parsed article must satisfy to be accepted.
type Rules struct {
	MinFAQs int
	// Target word range; outside it is a warning.
	TargetMinWords int
	TargetMaxWords int
	// Hard word range; outside it the article is rejected.
	HardMinWords int
	HardMaxWords int
}

func DefaultRules() Rules {
	return Rules{
		MinFAQs:        3,
		TargetMinWords: 800,
		TargetMaxWords: 1500,
		HardMinWords:   400,
		HardMaxWords:   3000,
	}
}

type ValidateInput struct {
	Article Article
	// Candidates is the id set of bucketed products the prompt listed.
	Candidates    map[string]bool
	ExistingSlugs []string
	Rules         Rules
}

type Validated struct {
	Products      []blog.ProductRecommendation
	Missing       []blog.MissingProductInfo
	FAQs          []blog.FAQItem
	InternalLinks []string
	SEOKeywords   []string
	WordCount     int
	Diagnostics   []blog.Diagnostic
}

// Validate reconciles a parsed article against the catalog candidates and content rules.
// Recoverable problems are dropped and recorded as diagnostics; too few FAQs or a body far
// outside the word range fail with InsufficientContent. Diagnostics are returned either way.
func Validate(in ValidateInput) (Validated, error) {
	rules := in.Rules
	if rules.MinFAQs <= 0 {
		rules = DefaultRules()
	}
	var out Validated
	diag := func(kind blog.ErrorKind, sev blog.Severity, productID, msg string) {
		out.Diagnostics = append(out.Diagnostics, blog.Diagnostic{Kind: kind, Severity: sev, Message: msg, ProductID: productID})
	}

	out.Products = validateProducts(in.Article.RecommendedProducts, in.Candidates, diag)
	out.Missing = validateMissing(in.Article.MissingProducts, diag)
	out.InternalLinks = validateLinks(in.Article.InternalLinkSlugs, in.ExistingSlugs, diag)
	out.SEOKeywords = NormalizeKeywords(in.Article.SEOKeywords)

	for i, f := range in.Article.FAQs {
		q, a := strings.TrimSpace(f.Question), strings.TrimSpace(f.Answer)
		if q == "" || a == "" {
			diag(blog.KindInsufficientContent, blog.SeverityWarning, "", fmt.Sprintf("faq %d dropped: empty question or answer", i))
			continue
		}
		out.FAQs = append(out.FAQs, blog.FAQItem{Question: q, Answer: a})
	}
	if len(out.FAQs) < rules.MinFAQs {
		msg := fmt.Sprintf("expected at least %d FAQs, got %d", rules.MinFAQs, len(out.FAQs))
		diag(blog.KindInsufficientContent, blog.SeverityError, "", msg)
		return out, blog.NewError(blog.KindInsufficientContent, msg, nil)
	}

	out.WordCount = CountWords(in.Article.ContentMD)
	switch {
	case out.WordCount < rules.HardMinWords || out.WordCount > rules.HardMaxWords:
		msg := fmt.Sprintf("body has %d words, accepted range is %d-%d", out.WordCount, rules.HardMinWords, rules.HardMaxWords)
		diag(blog.KindInsufficientContent, blog.SeverityError, "", msg)
		return out, blog.NewError(blog.KindInsufficientContent, msg, nil)
	case out.WordCount < rules.TargetMinWords || out.WordCount > rules.TargetMaxWords:
		diag(blog.KindWordCount, blog.SeverityWarning, "", fmt.Sprintf("body has %d words, target is %d-%d", out.WordCount, rules.TargetMinWords, rules.TargetMaxWords))
	}
	return out, nil
}

type diagFunc func(kind blog.ErrorKind, sev blog.Severity, productID, msg string)

func validateProducts(in []ArticleProduct, candidates map[string]bool, diag diagFunc) []blog.ProductRecommendation {
	out := make([]blog.ProductRecommendation, 0, len(in))
	seen := map[string]bool{}
	for _, p := range in {
		id := strings.TrimSpace(p.ProductID)
		role := blog.RecommendationRole(strings.ToLower(strings.TrimSpace(p.Role)))
		if !candidates[id] {
			diag(blog.KindInvalidRecommendation, blog.SeverityWarning, id, "recommended product is not in the catalog snapshot")
			continue
		}
		if !role.Valid() {
			diag(blog.KindInvalidRecommendation, blog.SeverityWarning, id, fmt.Sprintf("unknown role %q", p.Role))
			continue
		}
		key := id + "|" + string(role)
		if seen[key] {
			continue
		}
		seen[key] = true
		rec := blog.ProductRecommendation{ProductID: id, Role: role, Notes: strings.TrimSpace(p.Notes)}
		if p.StepOrder != nil && *p.StepOrder > 0 {
			n := *p.StepOrder
			rec.StepOrder = &n
		}
		out = append(out, rec)
	}
	return out
}

func validateMissing(in []ArticleMissing, diag diagFunc) []blog.MissingProductInfo {
	out := make([]blog.MissingProductInfo, 0, len(in))
	for _, m := range in {
		name := strings.TrimSpace(m.Name)
		reason := strings.TrimSpace(m.Reason)
		if name == "" || reason == "" {
			diag(blog.KindInvalidMissingProduct, blog.SeverityWarning, "", fmt.Sprintf("missing product %q dropped: name and reason are required", name))
			continue
		}
		out = append(out, blog.MissingProductInfo{
			Name:               name,
			CategorySuggestion: strings.TrimSpace(m.CategorySuggestion),
			Reason:             reason,
		})
	}
	return out
}

func normalizeSlug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "/")
	s = strings.TrimPrefix(s, "blog/")
	return strings.Trim(s, "/")
}

func validateLinks(in, existing []string, diag diagFunc) []string {
	known := make(map[string]bool, len(existing))
	for _, s := range existing {
		if n := normalizeSlug(s); n != "" {
			known[n] = true
		}
	}
	out := make([]string, 0, len(in))
	seen := map[string]bool{}
	for _, s := range in {
		n := normalizeSlug(s)
		if n == "" || seen[n] {
			continue
		}
		if !known[n] {
			diag(blog.KindInvalidInternalLink, blog.SeverityWarning, "", fmt.Sprintf("internal link %q is not an existing blog slug", s))
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// NormalizeKeywords trims, drops empties and removes case-insensitive duplicates.
func NormalizeKeywords(in []string) []string {
	out := make([]string, 0, len(in))
	seen := map[string]bool{}
	for _, k := range in {
		k = strings.Join(strings.Fields(k), " ")
		if k == "" || seen[strings.ToLower(k)] {
			continue
		}
		seen[strings.ToLower(k)] = true
		out = append(out, k)
	}
	return out
}

// CountWords counts markdown words. Scripts written without spaces (Han, Hiragana, Katakana,
// Thai) count one word per character; elsewhere a word is a whitespace token with a letter or
// digit in it.
func CountWords(md string) int {
	n := 0
	for _, tok := range strings.Fields(md) {
		inWord := false
		for _, r := range tok {
			switch {
			case unspacedScript(r):
				n++
				inWord = false
			case !inWord && (unicode.IsLetter(r) || unicode.IsDigit(r)):
				n++
				inWord = true
			}
		}
	}
	return n
}

func unspacedScript(r rune) bool {
	return unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Thai)
}
