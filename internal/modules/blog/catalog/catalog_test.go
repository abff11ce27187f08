package catalog

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/yungbote/blogwriter-backend/internal/domain/blog"
)

func TestBulkRule_IsBulk(t *testing.T) {
	r := DefaultBulkRule()
	cases := []struct {
		name string
		pack PackInfo
		want bool
	}{
		{"six pack", PackInfo{Count: 6}, true},
		{"single", PackInfo{Count: 1, NetQuantity: decimal.NewFromInt(500), NetUnit: "g"}, false},
		{"5kg rice", PackInfo{Count: 1, NetQuantity: decimal.NewFromInt(5), NetUnit: "kg"}, true},
		{"2 liters", PackInfo{NetQuantity: decimal.NewFromInt(2), NetUnit: "Liter"}, true},
		{"1500 ml", PackInfo{NetQuantity: decimal.NewFromInt(1500), NetUnit: "ml"}, false},
		{"unknown unit", PackInfo{NetQuantity: decimal.NewFromInt(10), NetUnit: "box"}, false},
	}
	for _, tc := range cases {
		if got := r.IsBulk(tc.pack); got != tc.want {
			t.Fatalf("%s: IsBulk=%v want %v", tc.name, got, tc.want)
		}
	}
}

func TestAnnotate_ComputesBulkFromStructuredPacks(t *testing.T) {
	// Names mentioning "kg" or "pack" must not matter; only pack data does.
	products := []blog.AvailableProduct{
		{ID: "a", Name: "Rice 5kg", Tags: []string{" Pantry ", "pantry", "GRAIN"}},
		{ID: "b", Name: "Snack pack"},
		{ID: "c", Name: "Water", IsBulk: true},
	}
	packs := map[string]PackInfo{
		"a": {Count: 1, NetQuantity: decimal.NewFromInt(5), NetUnit: "kg"},
		"b": {Count: 1, NetQuantity: decimal.NewFromInt(40), NetUnit: "g"},
	}
	out := Annotate(products, packs, DefaultBulkRule())
	if !out[0].IsBulk || out[1].IsBulk || !out[2].IsBulk {
		t.Fatalf("unexpected bulk flags: %v %v %v", out[0].IsBulk, out[1].IsBulk, out[2].IsBulk)
	}
	if len(out[0].Tags) != 2 || out[0].Tags[0] != "pantry" || out[0].Tags[1] != "grain" {
		t.Fatalf("tags not normalised: %#v", out[0].Tags)
	}
	if products[0].IsBulk {
		t.Fatalf("input must not be mutated")
	}
}
