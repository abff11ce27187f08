package prompts

type PromptName string

const (
	PromptBeautyArticle      PromptName = "beauty_article"
	PromptGroceryArticle     PromptName = "grocery_article"
	PromptMoneySavingArticle PromptName = "money_saving_article"
	PromptRecipeArticle      PromptName = "recipe_article"
)
