package writers

import (
	"github.com/yungbote/blogwriter-backend/internal/domain/blog"
	"github.com/yungbote/blogwriter-backend/internal/modules/blog/catalog"
	"github.com/yungbote/blogwriter-backend/internal/modules/blog/prompts"
)

var groceryTags = catalog.Set(
	"grocery", "pantry", "produce", "fruit", "vegetables", "dairy", "bakery",
	"beverages", "snacks", "frozen", "meat", "seafood", "spices", "organic",
)

// tierSpec is one budget tier bucket; an empty Level collects products without a tier.
type tierSpec struct {
	Level blog.BudgetLevel
	Key   string
	Label string
	Cap   int
}

var groceryTiers = []tierSpec{
	{Level: blog.BudgetLevelBudget, Key: "budget", Label: "BUDGET tier", Cap: 10},
	{Level: blog.BudgetLevelMid, Key: "mid", Label: "MID tier", Cap: 10},
	{Level: blog.BudgetLevelPremium, Key: "premium", Label: "PREMIUM tier", Cap: 10},
	{Level: "", Key: "unset", Label: "No budget tier", Cap: 15},
}

type Grocery struct{}

func (Grocery) BlogType() blog.BlogType        { return blog.BlogTypeGrocery }
func (Grocery) PromptName() prompts.PromptName { return prompts.PromptGroceryArticle }

func (Grocery) FilterCatalog(products []blog.AvailableProduct) []blog.AvailableProduct {
	return filter(products, func(p blog.AvailableProduct) bool {
		return p.IsIngredient || catalog.HasAnyTag(p, groceryTags)
	})
}

func (Grocery) BucketProducts(_ blog.Topic, products []blog.AvailableProduct) []Bucket {
	return bucketByTier(products, groceryTiers)
}

func (Grocery) BuildPromptSection(buckets []Bucket) string {
	return renderBuckets(buckets)
}

// bucketByTier groups products by budget level, preserving catalog order. Unknown levels
// count as unset.
func bucketByTier(products []blog.AvailableProduct, tiers []tierSpec) []Bucket {
	groups := make(map[blog.BudgetLevel][]blog.AvailableProduct, len(tiers))
	for _, p := range products {
		level := p.BudgetLevel
		if !level.Valid() {
			level = ""
		}
		groups[level] = append(groups[level], p)
	}
	out := make([]Bucket, 0, len(tiers))
	for _, t := range tiers {
		out = append(out, capped(t.Key, t.Label, groups[t.Level], t.Cap))
	}
	return out
}
