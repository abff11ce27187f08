package writers

import (
	"github.com/yungbote/blogwriter-backend/internal/domain/blog"
	"github.com/yungbote/blogwriter-backend/internal/modules/blog/prompts"
)

const moneySavingBulkCap = 10

var moneySavingTiers = []tierSpec{
	{Level: blog.BudgetLevelBudget, Key: "budget", Label: "BUDGET tier", Cap: 15},
	{Level: blog.BudgetLevelMid, Key: "mid", Label: "MID tier", Cap: 10},
	{Level: blog.BudgetLevelPremium, Key: "premium", Label: "PREMIUM tier", Cap: 10},
}

type MoneySaving struct{}

func (MoneySaving) BlogType() blog.BlogType        { return blog.BlogTypeMoneySaving }
func (MoneySaving) PromptName() prompts.PromptName { return prompts.PromptMoneySavingArticle }

func (MoneySaving) FilterCatalog(products []blog.AvailableProduct) []blog.AvailableProduct {
	return filter(products, func(p blog.AvailableProduct) bool {
		return p.BudgetLevel.Valid() || p.IsBulk
	})
}

// BucketProducts returns the three tiers followed by bulk opportunities. A bulk product
// with a tier appears in both.
func (MoneySaving) BucketProducts(_ blog.Topic, products []blog.AvailableProduct) []Bucket {
	out := bucketByTier(products, moneySavingTiers)
	var bulk []blog.AvailableProduct
	for _, p := range products {
		if p.IsBulk {
			bulk = append(bulk, p)
		}
	}
	return append(out, capped("bulk", "Bulk opportunities", bulk, moneySavingBulkCap))
}

func (MoneySaving) BuildPromptSection(buckets []Bucket) string {
	return renderBuckets(buckets)
}
