package prompts

// Roles a recommended product may play in an article.
var RecommendationRoles = []string{"recommended", "ingredient", "alternative", "combo", "step"}

func FAQItemSchema() map[string]any {
	return ObjectSchema(
		Prop{Name: "question", Schema: StringSchema(), Required: true},
		Prop{Name: "answer", Schema: StringSchema(), Required: true},
	)
}

func RecommendedProductSchema() map[string]any {
	return ObjectSchema(
		Prop{Name: "productId", Schema: StringSchema(), Required: true},
		Prop{Name: "role", Schema: EnumSchema(RecommendationRoles...), Required: true},
		Prop{Name: "stepOrder", Schema: IntSchema()},
		Prop{Name: "notes", Schema: StringSchema()},
	)
}

func MissingProductSchema() map[string]any {
	return ObjectSchema(
		Prop{Name: "name", Schema: StringSchema(), Required: true},
		Prop{Name: "categorySuggestion", Schema: StringSchema()},
		Prop{Name: "reason", Schema: StringSchema(), Required: true},
	)
}

func articleProps() []Prop {
	return []Prop{
		{Name: "title", Schema: StringSchema(), Required: true},
		{Name: "summary", Schema: StringSchema(), Required: true},
		{Name: "contentMd", Schema: StringSchema(), Required: true},
		{Name: "seoTitle", Schema: StringSchema(), Required: true},
		{Name: "seoDescription", Schema: StringSchema(), Required: true},
		{Name: "seoKeywords", Schema: StringArraySchema(), Required: true},
		{Name: "faqs", Schema: ArrayOf(FAQItemSchema()), Required: true},
		{Name: "internalLinkSlugs", Schema: StringArraySchema(), Required: true},
		{Name: "recommendedProducts", Schema: ArrayOf(RecommendedProductSchema()), Required: true},
		{Name: "missingProducts", Schema: ArrayOf(MissingProductSchema()), Required: true},
	}
}

// ArticleSchema is the response contract shared by every writer.
func ArticleSchema() map[string]any {
	return ObjectSchema(articleProps()...)
}

func RecipeArticleSchema() map[string]any {
	props := append(articleProps(),
		Prop{Name: "estimatedCost", Schema: NumberSchema()},
		Prop{Name: "servings", Schema: IntSchema()},
		Prop{Name: "cookingTime", Schema: StringSchema()},
		Prop{Name: "difficulty", Schema: EnumSchema("easy", "medium", "hard")},
	)
	return ObjectSchema(props...)
}

func MoneySavingArticleSchema() map[string]any {
	props := append(articleProps(),
		Prop{Name: "potentialMonthlySavings", Schema: NumberSchema()},
		Prop{Name: "savingsTips", Schema: StringArraySchema()},
	)
	return ObjectSchema(props...)
}
