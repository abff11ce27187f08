package steps

import "github.com/yungbote/blogwriter-backend/internal/domain/blog"

// BuildFAQSchema projects FAQ items 1:1 into a schema.org FAQPage.
func BuildFAQSchema(items []blog.FAQItem) blog.FAQSchema {
	s := blog.FAQSchema{
		Context:    "https://schema.org",
		Type:       "FAQPage",
		MainEntity: make([]blog.FAQQuestion, 0, len(items)),
	}
	for _, it := range items {
		s.MainEntity = append(s.MainEntity, blog.FAQQuestion{
			Type:           "Question",
			Name:           it.Question,
			AcceptedAnswer: blog.FAQAnswer{Type: "Answer", Text: it.Answer},
		})
	}
	return s
}
