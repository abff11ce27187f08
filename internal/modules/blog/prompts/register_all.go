package prompts

import "sync"

var registerOnce sync.Once

// articleUser is the user prompt shared by every writer; {{.ProductSection}} carries the
// writer-specific bucketed listing.
const articleUser = `
TOPIC: {{.TopicTitle}}
{{if .TopicDescription}}DESCRIPTION: {{.TopicDescription}}
{{end}}{{if .GroupingBlock}}GROUPING BLOCK: {{.GroupingBlock}}
{{end}}
AVAILABLE PRODUCTS (format: - [productId] name | price):
{{.ProductSection}}

EXISTING BLOG SLUGS (suggest internal links only from this list):
{{if .ExistingSlugs}}{{.ExistingSlugs}}{{else}}(none){{end}}

Rules:
- Write in the same language as the topic title.
- Body (contentMd) is markdown, {{.MinWords}}-{{.MaxWords}} words.
- Include at least {{.MinFAQs}} FAQs.
- Only use product IDs that appear in AVAILABLE PRODUCTS. Never invent IDs.
- Every section marked MARK AS MISSING must appear in missingProducts with a non-empty reason.
- internalLinkSlugs must come from EXISTING BLOG SLUGS.
- seoTitle under 60 characters, seoDescription under 160 characters.

{{.OutputContract}}`

func RegisterAll() {
	registerOnce.Do(registerAll)
}

func registerAll() {
	topicRequired := []Validator{
		RequireNonEmpty("TopicTitle", func(in Input) string { return in.TopicTitle }),
	}

	RegisterSpec(Spec{
		Name:       PromptBeautyArticle,
		Version:    1,
		SchemaName: "beauty_article",
		Schema:     ArticleSchema,
		System: `
You are a skincare editor writing routine-driven beauty articles.
Structure the article around the 5-step routine: cleanser, toner, serum, moisturizer, sunscreen.
Use role "step" with stepOrder 1-5 for routine products, and "alternative" for swaps.
When a step has no product, explain what to look for and report it in missingProducts.`,
		User:       articleUser,
		Validators: topicRequired,
	})

	RegisterSpec(Spec{
		Name:       PromptGroceryArticle,
		Version:    1,
		SchemaName: "grocery_article",
		Schema:     ArticleSchema,
		System: `
You are a grocery editor writing practical shopping guides.
Compare options across budget tiers (BUDGET, MID, PREMIUM) and explain when each is worth it.
Use role "recommended" for picks, "alternative" for cheaper or premium swaps and "combo" for items bought together.`,
		User:       articleUser,
		Validators: topicRequired,
	})

	RegisterSpec(Spec{
		Name:       PromptMoneySavingArticle,
		Version:    1,
		SchemaName: "money_saving_article",
		Schema:     MoneySavingArticleSchema,
		System: `
You are a household budget editor writing money-saving guides.
Favour budget-tier products and bulk opportunities; be concrete about how savings add up.
Estimate potentialMonthlySavings as a plain number in the store currency and list actionable savingsTips.
Do not put the savings estimate inside contentMd.`,
		User:       articleUser,
		Validators: topicRequired,
	})

	RegisterSpec(Spec{
		Name:       PromptRecipeArticle,
		Version:    1,
		SchemaName: "recipe_article",
		Schema:     RecipeArticleSchema,
		System: `
You are a recipe editor writing tested, home-cook friendly recipes.
Build the recipe from the listed ingredients; use role "ingredient" for each one you use.
Report estimatedCost (number), servings (integer), cookingTime and difficulty (easy|medium|hard) as fields.
Do not put cost, servings or time inside contentMd.`,
		User:       articleUser,
		Validators: topicRequired,
	})
}
