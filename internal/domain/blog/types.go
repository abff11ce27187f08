package blog

import (
	"strings"

	"github.com/shopspring/decimal"
)

type BlogType string

const (
	BlogTypeBeauty      BlogType = "BEAUTY"
	BlogTypeGrocery     BlogType = "GROCERY"
	BlogTypeMoneySaving BlogType = "MONEY_SAVING"
	BlogTypeRecipe      BlogType = "RECIPE"
)

// AllBlogTypes lists the blog types in a stable order.
func AllBlogTypes() []BlogType {
	return []BlogType{BlogTypeBeauty, BlogTypeGrocery, BlogTypeMoneySaving, BlogTypeRecipe}
}

// ParseBlogType accepts the canonical names plus lowercase/hyphenated variants.
func ParseBlogType(raw string) (BlogType, bool) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, "-", "_")
	for _, bt := range AllBlogTypes() {
		if string(bt) == s {
			return bt, true
		}
	}
	return "", false
}

type BudgetLevel string

const (
	BudgetLevelBudget  BudgetLevel = "BUDGET"
	BudgetLevelMid     BudgetLevel = "MID"
	BudgetLevelPremium BudgetLevel = "PREMIUM"
)

func (b BudgetLevel) Valid() bool {
	switch b {
	case BudgetLevelBudget, BudgetLevelMid, BudgetLevelPremium:
		return true
	}
	return false
}

// Topic is the editorial unit of work for one generation.
type Topic struct {
	ID            string   `json:"id" yaml:"id"`
	Title         string   `json:"title" yaml:"title"`
	Description   string   `json:"description,omitempty" yaml:"description,omitempty"`
	BlogType      BlogType `json:"blogType" yaml:"blogType"`
	GroupingBlock string   `json:"groupingBlock,omitempty" yaml:"groupingBlock,omitempty"`
}

// AvailableProduct is one entry of the read-only catalog snapshot.
// IsBulk is computed upstream by the catalog provider (see catalog.Annotate).
type AvailableProduct struct {
	ID             string          `json:"id" yaml:"id"`
	Name           string          `json:"name" yaml:"name"`
	Slug           string          `json:"slug" yaml:"slug"`
	SellingPrice   decimal.Decimal `json:"sellingPrice" yaml:"sellingPrice"`
	Tags           []string        `json:"tags" yaml:"tags"`
	IsIngredient   bool            `json:"isIngredient" yaml:"isIngredient"`
	IngredientType string          `json:"ingredientType,omitempty" yaml:"ingredientType,omitempty"`
	BudgetLevel    BudgetLevel     `json:"budgetLevel,omitempty" yaml:"budgetLevel,omitempty"`
	CategoryName   string          `json:"categoryName" yaml:"categoryName"`
	IsBulk         bool            `json:"isBulk,omitempty" yaml:"isBulk,omitempty"`
}

// HasTag reports whether the product carries tag (case-insensitive).
func (p AvailableProduct) HasTag(tag string) bool {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return false
	}
	for _, t := range p.Tags {
		if strings.ToLower(strings.TrimSpace(t)) == tag {
			return true
		}
	}
	return false
}

// WriterContext is assembled once per request and discarded afterwards.
type WriterContext struct {
	Topic             Topic              `json:"topic" yaml:"topic"`
	AvailableProducts []AvailableProduct `json:"availableProducts" yaml:"availableProducts"`
	ExistingBlogSlugs []string           `json:"existingBlogSlugs" yaml:"existingBlogSlugs"`
}

// ProductIDs returns the id set of the snapshot.
func (wc WriterContext) ProductIDs() map[string]bool {
	out := make(map[string]bool, len(wc.AvailableProducts))
	for _, p := range wc.AvailableProducts {
		if id := strings.TrimSpace(p.ID); id != "" {
			out[id] = true
		}
	}
	return out
}
