package steps

import (
	"strings"

	"github.com/yungbote/blogwriter-backend/internal/domain/blog"
	"github.com/yungbote/blogwriter-backend/internal/modules/blog/prompts"
	"github.com/yungbote/blogwriter-backend/internal/modules/blog/writers"
)

// MaxExistingSlugs bounds the internal-link suggestions listed in a prompt.
const MaxExistingSlugs = 10

// ComposePrompt renders the writer's prompt for a bucketed plan.
func ComposePrompt(plan writers.Plan, wc blog.WriterContext, rules Rules) (prompts.Prompt, error) {
	prompts.RegisterAll()
	if rules.MinFAQs <= 0 {
		rules = DefaultRules()
	}
	p, err := prompts.Build(plan.Strategy.PromptName(), prompts.Input{
		TopicTitle:       strings.TrimSpace(wc.Topic.Title),
		TopicDescription: strings.TrimSpace(wc.Topic.Description),
		GroupingBlock:    strings.TrimSpace(wc.Topic.GroupingBlock),
		ProductSection:   plan.Section,
		ExistingSlugs:    slugList(wc.ExistingBlogSlugs),
		MinFAQs:          rules.MinFAQs,
		MinWords:         rules.TargetMinWords,
		MaxWords:         rules.TargetMaxWords,
	})
	if err != nil {
		return prompts.Prompt{}, blog.NewError(blog.KindInvalidInput, "compose prompt", err)
	}
	return p, nil
}

func slugList(slugs []string) string {
	var b strings.Builder
	n := 0
	seen := map[string]bool{}
	for _, s := range slugs {
		s = normalizeSlug(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		b.WriteString("- " + s + "\n")
		n++
		if n == MaxExistingSlugs {
			break
		}
	}
	return strings.TrimSpace(b.String())
}
