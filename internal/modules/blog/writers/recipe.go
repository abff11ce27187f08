package writers

import (
	"strings"

	"github.com/yungbote/blogwriter-backend/internal/domain/blog"
	"github.com/yungbote/blogwriter-backend/internal/modules/blog/prompts"
)

const (
	recipeTypeCap     = 8
	recipeOtherBucket = "other"
)

type Recipe struct{}

func (Recipe) BlogType() blog.BlogType        { return blog.BlogTypeRecipe }
func (Recipe) PromptName() prompts.PromptName { return prompts.PromptRecipeArticle }

func (Recipe) FilterCatalog(products []blog.AvailableProduct) []blog.AvailableProduct {
	return filter(products, func(p blog.AvailableProduct) bool { return p.IsIngredient })
}

// BucketProducts groups ingredients by type in order of first appearance.
func (Recipe) BucketProducts(_ blog.Topic, products []blog.AvailableProduct) []Bucket {
	var order []string
	groups := map[string][]blog.AvailableProduct{}
	for _, p := range products {
		t := strings.ToLower(strings.TrimSpace(p.IngredientType))
		if t == "" {
			t = recipeOtherBucket
		}
		if _, seen := groups[t]; !seen {
			order = append(order, t)
		}
		groups[t] = append(groups[t], p)
	}
	out := make([]Bucket, 0, len(order))
	for _, t := range order {
		out = append(out, capped(t, "Ingredients - "+t, groups[t], recipeTypeCap))
	}
	return out
}

func (Recipe) BuildPromptSection(buckets []Bucket) string {
	return renderBuckets(buckets)
}
