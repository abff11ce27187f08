package writers

import (
	"fmt"
	"strings"

	"github.com/yungbote/blogwriter-backend/internal/domain/blog"
	"github.com/yungbote/blogwriter-backend/internal/modules/blog/prompts"
)

// MissingMarker is rendered for a required bucket that has no products.
const MissingMarker = "MARK AS MISSING"

// DomainStrategy is the per-writer part of the pipeline. Implementations are pure and
// deterministic for a fixed catalog snapshot.
type DomainStrategy interface {
	BlogType() blog.BlogType
	PromptName() prompts.PromptName
	FilterCatalog(products []blog.AvailableProduct) []blog.AvailableProduct
	BucketProducts(topic blog.Topic, products []blog.AvailableProduct) []Bucket
	BuildPromptSection(buckets []Bucket) string
}

// Bucket is a named, capped subset of the filtered catalog.
type Bucket struct {
	Key      string
	Label    string
	Products []blog.AvailableProduct
	// Total is the number of matching products before the cap was applied.
	Total int
	Cap   int
	// Required buckets are expected to be covered; an empty one is a catalog gap.
	Required bool
	// CategorySuggestion is reported when an empty required bucket becomes a missing product.
	CategorySuggestion string
}

func (b Bucket) Empty() bool { return len(b.Products) == 0 }

// Plan is the deterministic, backend-free part of a generation.
type Plan struct {
	Strategy DomainStrategy
	Filtered []blog.AvailableProduct
	Buckets  []Bucket
	Section  string
}

// Candidates is the id set a recommendation may reference.
func (p Plan) Candidates() map[string]bool {
	return Candidates(p.Buckets)
}

// Bucketize runs filter, bucket and section rendering for wc.
func Bucketize(s DomainStrategy, wc blog.WriterContext) Plan {
	filtered := s.FilterCatalog(wc.AvailableProducts)
	buckets := s.BucketProducts(wc.Topic, filtered)
	return Plan{
		Strategy: s,
		Filtered: filtered,
		Buckets:  buckets,
		Section:  s.BuildPromptSection(buckets),
	}
}

func Candidates(buckets []Bucket) map[string]bool {
	out := map[string]bool{}
	for _, b := range buckets {
		for _, p := range b.Products {
			if id := strings.TrimSpace(p.ID); id != "" {
				out[id] = true
			}
		}
	}
	return out
}

func filter(products []blog.AvailableProduct, keep func(blog.AvailableProduct) bool) []blog.AvailableProduct {
	out := make([]blog.AvailableProduct, 0, len(products))
	for _, p := range products {
		if strings.TrimSpace(p.ID) == "" {
			continue
		}
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

// capped keeps the first n products in their original order.
func capped(key, label string, products []blog.AvailableProduct, n int) Bucket {
	b := Bucket{Key: key, Label: label, Total: len(products), Cap: n}
	if n > 0 && len(products) > n {
		products = products[:n]
	}
	b.Products = append([]blog.AvailableProduct{}, products...)
	return b
}

// ProductLine renders one listing entry: - [id] name | price
func ProductLine(p blog.AvailableProduct) string {
	return fmt.Sprintf("- [%s] %s | %s", strings.TrimSpace(p.ID), strings.TrimSpace(p.Name), p.SellingPrice.StringFixed(2))
}

// renderBuckets is the listing format shared by all writers. Empty optional buckets are omitted.
func renderBuckets(buckets []Bucket) string {
	var b strings.Builder
	for _, bk := range buckets {
		if bk.Empty() {
			if bk.Required {
				fmt.Fprintf(&b, "%s: %s\n\n", bk.Label, MissingMarker)
			}
			continue
		}
		fmt.Fprintf(&b, "%s (%d):\n", bk.Label, len(bk.Products))
		for _, p := range bk.Products {
			b.WriteString(ProductLine(p))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	out := strings.TrimSpace(b.String())
	if out == "" {
		return "(no matching products in catalog)"
	}
	return out
}
