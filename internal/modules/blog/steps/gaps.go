package steps

import (
	"fmt"
	"strings"

	"github.com/yungbote/blogwriter-backend/internal/domain/blog"
	"github.com/yungbote/blogwriter-backend/internal/modules/blog/writers"
)

// FillGaps cross-references empty required buckets with the reported missing products and
// appends an entry for every gap the backend did not report.
func FillGaps(buckets []writers.Bucket, missing []blog.MissingProductInfo) ([]blog.MissingProductInfo, []blog.Diagnostic) {
	out := append([]blog.MissingProductInfo{}, missing...)
	var diags []blog.Diagnostic
	for _, b := range buckets {
		if !b.Required || !b.Empty() {
			continue
		}
		term := strings.ToLower(strings.TrimSpace(b.CategorySuggestion))
		if term == "" {
			term = strings.ToLower(b.Key)
		}
		if reported(missing, term) {
			continue
		}
		out = append(out, blog.MissingProductInfo{
			Name:               b.Label,
			CategorySuggestion: b.CategorySuggestion,
			Reason:             fmt.Sprintf("No catalog product covers %s.", b.Label),
		})
		diags = append(diags, blog.Diagnostic{
			Kind:     blog.KindMissingBucket,
			Severity: blog.SeverityInfo,
			Message:  "empty bucket was not reported by the backend",
			Bucket:   b.Key,
		})
	}
	return out, diags
}

func reported(missing []blog.MissingProductInfo, term string) bool {
	for _, m := range missing {
		if strings.Contains(strings.ToLower(m.Name), term) || strings.Contains(strings.ToLower(m.CategorySuggestion), term) {
			return true
		}
	}
	return false
}
