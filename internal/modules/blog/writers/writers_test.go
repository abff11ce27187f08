package writers

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"

	"github.com/yungbote/blogwriter-backend/internal/domain/blog"
)

func product(id string, tags ...string) blog.AvailableProduct {
	return blog.AvailableProduct{
		ID:           id,
		Name:         "Product " + id,
		Slug:         "product-" + id,
		SellingPrice: decimal.RequireFromString("4.50"),
		Tags:         tags,
	}
}

func bucketByKey(t *testing.T, buckets []Bucket, key string) Bucket {
	t.Helper()
	for _, b := range buckets {
		if b.Key == key {
			return b
		}
	}
	t.Fatalf("bucket %q not found", key)
	return Bucket{}
}

func TestBeautyMissingStepMarker(t *testing.T) {
	wc := blog.WriterContext{
		Topic:             blog.Topic{ID: "t1", Title: "Routine", BlogType: blog.BlogTypeBeauty},
		AvailableProducts: []blog.AvailableProduct{product("c1", "Cleanser"), product("x", "kitchen")},
	}
	plan := Bucketize(Beauty{}, wc)

	if len(plan.Filtered) != 1 {
		t.Fatalf("expected 1 filtered product, got %d", len(plan.Filtered))
	}
	step1 := bucketByKey(t, plan.Buckets, "step_1_cleanser")
	if len(step1.Products) != 1 || step1.Products[0].ID != "c1" {
		t.Fatalf("cleanser not in step 1: %+v", step1.Products)
	}
	step5 := bucketByKey(t, plan.Buckets, "step_5_sunscreen")
	if !step5.Empty() || !step5.Required {
		t.Fatalf("expected empty required step 5, got %+v", step5)
	}
	if !strings.Contains(plan.Section, "Step 5 - Sunscreen: "+MissingMarker) {
		t.Fatalf("missing marker not rendered:\n%s", plan.Section)
	}
	if !strings.Contains(plan.Section, "- [c1] Product c1 | 4.50") {
		t.Fatalf("product line not rendered:\n%s", plan.Section)
	}
}

func TestBeautyProductCoversEveryTaggedStep(t *testing.T) {
	wc := blog.WriterContext{
		Topic: blog.Topic{ID: "t1", Title: "Routine", BlogType: blog.BlogTypeBeauty},
		AvailableProducts: []blog.AvailableProduct{
			product("p1", "cleanser"),
			product("p2", "moisturizer", "sunscreen"),
			product("b", "oily"),
		},
	}
	plan := Bucketize(Beauty{}, wc)

	for _, key := range []string{"step_4_moisturizer", "step_5_sunscreen"} {
		got := bucketByKey(t, plan.Buckets, key)
		if len(got.Products) != 1 || got.Products[0].ID != "p2" {
			t.Fatalf("%s: expected p2, got %+v", key, got.Products)
		}
	}
	if strings.Contains(plan.Section, "Step 5 - Sunscreen: "+MissingMarker) {
		t.Fatalf("sunscreen step marked missing although p2 covers it:\n%s", plan.Section)
	}
	if got := bucketByKey(t, plan.Buckets, "other"); len(got.Products) != 1 || got.Required {
		t.Fatalf("expected skin-type product in optional other bucket")
	}
	if diff := cmp.Diff(map[string]bool{"p1": true, "p2": true, "b": true}, plan.Candidates()); diff != "" {
		t.Fatalf("candidates (-want +got):\n%s", diff)
	}
}

func TestGroceryBudgetCapKeepsOrder(t *testing.T) {
	var products []blog.AvailableProduct
	for i := 1; i <= 12; i++ {
		p := product(fmt.Sprintf("b%02d", i))
		p.IsIngredient = true
		p.BudgetLevel = blog.BudgetLevelBudget
		products = append(products, p)
	}
	plan := Bucketize(Grocery{}, blog.WriterContext{AvailableProducts: products})
	budget := bucketByKey(t, plan.Buckets, "budget")
	if budget.Total != 12 || len(budget.Products) != 10 {
		t.Fatalf("expected 10 of 12, got %d of %d", len(budget.Products), budget.Total)
	}
	for i, p := range budget.Products {
		if want := fmt.Sprintf("b%02d", i+1); p.ID != want {
			t.Fatalf("position %d: want %s got %s", i, want, p.ID)
		}
	}
	if strings.Contains(plan.Section, "[b11]") || !strings.Contains(plan.Section, "[b10]") {
		t.Fatalf("section should list exactly the first ten:\n%s", plan.Section)
	}
	if plan.Candidates()["b11"] {
		t.Fatalf("capped product must not be a candidate")
	}
}

func TestGroceryUnsetTierCap(t *testing.T) {
	var products []blog.AvailableProduct
	for i := 0; i < 20; i++ {
		products = append(products, product(fmt.Sprintf("u%d", i), "pantry"))
	}
	b := bucketByKey(t, Grocery{}.BucketProducts(blog.Topic{}, products), "unset")
	if len(b.Products) != 15 {
		t.Fatalf("expected cap 15, got %d", len(b.Products))
	}
}

func TestMoneySavingBulkUsesAttribute(t *testing.T) {
	named := product("n1")
	named.Name = "Rice 5kg bundle pack"
	named.BudgetLevel = blog.BudgetLevelMid
	bulk := product("k1")
	bulk.IsBulk = true

	plan := Bucketize(MoneySaving{}, blog.WriterContext{AvailableProducts: []blog.AvailableProduct{named, bulk}})
	got := bucketByKey(t, plan.Buckets, "bulk")
	if len(got.Products) != 1 || got.Products[0].ID != "k1" {
		t.Fatalf("bulk bucket should come from IsBulk only, got %+v", got.Products)
	}
	if mid := bucketByKey(t, plan.Buckets, "mid"); len(mid.Products) != 1 {
		t.Fatalf("expected tiered product in mid")
	}
}

func TestRecipeBucketsByIngredientType(t *testing.T) {
	mk := func(id, typ string) blog.AvailableProduct {
		p := product(id)
		p.IsIngredient = true
		p.IngredientType = typ
		return p
	}
	products := []blog.AvailableProduct{mk("a", "Vegetable"), mk("b", "protein"), mk("c", ""), mk("d", "vegetable"), product("z")}
	for i := 0; i < 10; i++ {
		products = append(products, mk(fmt.Sprintf("s%d", i), "spice"))
	}
	buckets := Recipe{}.BucketProducts(blog.Topic{}, Recipe{}.FilterCatalog(products))
	var keys []string
	for _, b := range buckets {
		keys = append(keys, b.Key)
	}
	if diff := cmp.Diff([]string{"vegetable", "protein", "other", "spice"}, keys); diff != "" {
		t.Fatalf("bucket order mismatch (-want +got):\n%s", diff)
	}
	if len(bucketByKey(t, buckets, "vegetable").Products) != 2 {
		t.Fatalf("expected case-insensitive grouping")
	}
	if len(bucketByKey(t, buckets, "spice").Products) != recipeTypeCap {
		t.Fatalf("expected cap %d", recipeTypeCap)
	}
}

func TestBucketingIsDeterministic(t *testing.T) {
	var products []blog.AvailableProduct
	tags := []string{"cleanser", "toner", "serum", "moisturizer", "sunscreen", "acne", "pantry"}
	for i := 0; i < 40; i++ {
		p := product(fmt.Sprintf("p%d", i), tags[i%len(tags)])
		p.IsIngredient = i%2 == 0
		p.IngredientType = []string{"grain", "dairy", ""}[i%3]
		p.BudgetLevel = []blog.BudgetLevel{blog.BudgetLevelBudget, blog.BudgetLevelMid, blog.BudgetLevelPremium, ""}[i%4]
		p.IsBulk = i%5 == 0
		products = append(products, p)
	}
	wc := blog.WriterContext{AvailableProducts: products}
	for _, s := range []DomainStrategy{Beauty{}, Grocery{}, MoneySaving{}, Recipe{}} {
		first := Bucketize(s, wc)
		for i := 0; i < 5; i++ {
			again := Bucketize(s, wc)
			if diff := cmp.Diff(first.Buckets, again.Buckets); diff != "" {
				t.Fatalf("%s: buckets differ (-first +again):\n%s", s.BlogType(), diff)
			}
			if first.Section != again.Section {
				t.Fatalf("%s: section differs", s.BlogType())
			}
		}
	}
}

func TestEmptyCatalogSection(t *testing.T) {
	if got := (Recipe{}).BuildPromptSection(nil); got != "(no matching products in catalog)" {
		t.Fatalf("unexpected section %q", got)
	}
}

func TestRegistryLookup(t *testing.T) {
	r := DefaultRegistry()
	for _, bt := range blog.AllBlogTypes() {
		s, err := r.Lookup(bt)
		if err != nil || s.BlogType() != bt {
			t.Fatalf("lookup %s: %v", bt, err)
		}
	}
	if diff := cmp.Diff(blog.AllBlogTypes(), r.BlogTypes()); diff != "" {
		t.Fatalf("blog types (-want +got):\n%s", diff)
	}
	_, err := r.Lookup("FASHION")
	if blog.KindOf(err) != blog.KindUnknownBlogType {
		t.Fatalf("expected UnknownBlogType, got %v", err)
	}
}
