// Package catalog holds helpers the catalog snapshot provider applies before a snapshot
// reaches the writers: tag normalisation and bulk-pack annotation.
package catalog

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/yungbote/blogwriter-backend/internal/domain/blog"
)

// PackInfo is the structured packaging data the catalog keeps per product.
type PackInfo struct {
	// Count is the number of units in the pack (6 for a six-pack).
	Count int `json:"count" yaml:"count"`
	// NetQuantity with NetUnit is the total content, e.g. 5 kg or 2 l.
	NetQuantity decimal.Decimal `json:"netQuantity" yaml:"netQuantity"`
	NetUnit     string          `json:"netUnit" yaml:"netUnit"`
}

// BulkRule decides when a pack counts as a bulk/value purchase.
type BulkRule struct {
	MinCount int
	// Minimum net quantity expressed in base units (kg or l).
	MinBaseQuantity decimal.Decimal
}

func DefaultBulkRule() BulkRule {
	return BulkRule{MinCount: 4, MinBaseQuantity: decimal.NewFromInt(2)}
}

var unitToBase = map[string]decimal.Decimal{
	"kg":  decimal.NewFromInt(1),
	"g":   decimal.New(1, -3),
	"l":   decimal.NewFromInt(1),
	"ml":  decimal.New(1, -3),
	"lb":  decimal.RequireFromString("0.4536"),
	"oz":  decimal.RequireFromString("0.02835"),
	"gal": decimal.RequireFromString("3.785"),
}

func normalizeUnit(u string) string {
	u = strings.ToLower(strings.TrimSpace(u))
	switch u {
	case "liter", "litre", "liters", "litres", "lt":
		return "l"
	case "kilogram", "kilograms", "kgs":
		return "kg"
	case "gram", "grams", "gr":
		return "g"
	}
	return u
}

// IsBulk applies rule to pack.
func (r BulkRule) IsBulk(pack PackInfo) bool {
	if r.MinCount > 0 && pack.Count >= r.MinCount {
		return true
	}
	factor, ok := unitToBase[normalizeUnit(pack.NetUnit)]
	if !ok || pack.NetQuantity.LessThanOrEqual(decimal.Zero) || r.MinBaseQuantity.LessThanOrEqual(decimal.Zero) {
		return false
	}
	return pack.NetQuantity.Mul(factor).GreaterThanOrEqual(r.MinBaseQuantity)
}

// Annotate returns a copy of products with normalised tags and IsBulk computed from packs.
// Products without pack data keep whatever IsBulk the provider already set.
func Annotate(products []blog.AvailableProduct, packs map[string]PackInfo, rule BulkRule) []blog.AvailableProduct {
	out := make([]blog.AvailableProduct, 0, len(products))
	for _, p := range products {
		cp := p
		cp.Tags = NormalizeTags(p.Tags)
		if pack, ok := packs[p.ID]; ok {
			cp.IsBulk = rule.IsBulk(pack)
		}
		out = append(out, cp)
	}
	return out
}

// NormalizeTags lowercases, trims and de-duplicates tags preserving first-seen order.
func NormalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return []string{}
	}
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// HasAnyTag reports whether p carries any tag in vocab (vocab keys are lowercase).
func HasAnyTag(p blog.AvailableProduct, vocab map[string]bool) bool {
	for _, t := range p.Tags {
		if vocab[strings.ToLower(strings.TrimSpace(t))] {
			return true
		}
	}
	return false
}

// Set builds a lookup set from words.
func Set(words ...string) map[string]bool {
	out := make(map[string]bool, len(words))
	for _, w := range words {
		out[strings.ToLower(strings.TrimSpace(w))] = true
	}
	return out
}
