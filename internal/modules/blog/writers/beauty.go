package writers

import (
	"fmt"
	"strings"

	"github.com/yungbote/blogwriter-backend/internal/domain/blog"
	"github.com/yungbote/blogwriter-backend/internal/modules/blog/catalog"
	"github.com/yungbote/blogwriter-backend/internal/modules/blog/prompts"
)

const (
	beautyStepCap  = 8
	beautyOtherCap = 10
)

type routineStep struct {
	Tag   string
	Label string
}

var beautySteps = []routineStep{
	{Tag: "cleanser", Label: "Cleanser"},
	{Tag: "toner", Label: "Toner"},
	{Tag: "serum", Label: "Serum"},
	{Tag: "moisturizer", Label: "Moisturizer"},
	{Tag: "sunscreen", Label: "Sunscreen"},
}

var (
	skinTypeTags    = catalog.Set("dry", "oily", "combination", "sensitive", "normal")
	skinConcernTags = catalog.Set("acne", "aging", "anti-aging", "hyperpigmentation", "redness", "dullness", "wrinkles", "pores", "dark-spots")
	beautyTags      = catalog.Set("skincare", "beauty", "makeup", "haircare", "bodycare", "spf")
)

type Beauty struct{}

func (Beauty) BlogType() blog.BlogType        { return blog.BlogTypeBeauty }
func (Beauty) PromptName() prompts.PromptName { return prompts.PromptBeautyArticle }

func (Beauty) FilterCatalog(products []blog.AvailableProduct) []blog.AvailableProduct {
	return filter(products, func(p blog.AvailableProduct) bool {
		return len(stepsOf(p)) > 0 ||
			catalog.HasAnyTag(p, skinTypeTags) ||
			catalog.HasAnyTag(p, skinConcernTags) ||
			catalog.HasAnyTag(p, beautyTags)
	})
}

// stepsOf returns the zero-based indexes of every routine step the product is tagged for.
// A product covering several steps (an SPF moisturizer) is listed under each of them.
func stepsOf(p blog.AvailableProduct) []int {
	var out []int
	for i, s := range beautySteps {
		if p.HasTag(s.Tag) {
			out = append(out, i)
		}
	}
	return out
}

func (Beauty) BucketProducts(_ blog.Topic, products []blog.AvailableProduct) []Bucket {
	byStep := make([][]blog.AvailableProduct, len(beautySteps))
	var other []blog.AvailableProduct
	for _, p := range products {
		idx := stepsOf(p)
		if len(idx) == 0 {
			other = append(other, p)
			continue
		}
		for _, i := range idx {
			byStep[i] = append(byStep[i], p)
		}
	}
	out := make([]Bucket, 0, len(beautySteps)+1)
	for i, s := range beautySteps {
		b := capped(
			fmt.Sprintf("step_%d_%s", i+1, s.Tag),
			fmt.Sprintf("Step %d - %s", i+1, s.Label),
			byStep[i], beautyStepCap,
		)
		b.Required = true
		b.CategorySuggestion = strings.ToLower(s.Label)
		out = append(out, b)
	}
	out = append(out, capped("other", "Other skincare (skin type, concerns, general)", other, beautyOtherCap))
	return out
}

func (Beauty) BuildPromptSection(buckets []Bucket) string {
	return renderBuckets(buckets)
}
