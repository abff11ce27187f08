package blog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	types "github.com/yungbote/blogwriter-backend/internal/domain/blog"
	"github.com/yungbote/blogwriter-backend/internal/modules/blog/generation"
	"github.com/yungbote/blogwriter-backend/internal/platform/llm"
	"github.com/yungbote/blogwriter-backend/internal/platform/logger"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func noSleep(ctx context.Context, _ time.Duration) error { return ctx.Err() }

func newUsecases(fn llm.BackendFunc) Usecases {
	opts := generation.DefaultOptions()
	opts.Timeout = 2 * time.Second
	gen := generation.NewClient(logger.Nop(), fn, opts, generation.WithSleep(noSleep))
	return New(UsecasesDeps{Log: logger.Nop(), Gen: gen})
}

func article(products []map[string]any, mutate func(map[string]any)) string {
	m := map[string]any{
		"title":          "Your morning skincare routine",
		"summary":        "Five steps.",
		"contentMd":      "## Routine\n" + strings.TrimSpace(strings.Repeat("glow ", 900)),
		"seoTitle":       "Morning routine",
		"seoDescription": "A simple routine.",
		"seoKeywords":    []string{"skincare"},
		"faqs": []map[string]any{
			{"question": "How often?", "answer": "Daily."},
			{"question": "Which order?", "answer": "Thin to thick."},
			{"question": "SPF indoors?", "answer": "Yes."},
		},
		"internalLinkSlugs":   []string{"night-routine"},
		"recommendedProducts": products,
		"missingProducts":     []map[string]any{},
	}
	if mutate != nil {
		mutate(m)
	}
	b, _ := json.Marshal(m)
	return string(b)
}

func beautyContext() types.WriterContext {
	return types.WriterContext{
		Topic: types.Topic{ID: "topic-1", Title: "Morning routine", BlogType: types.BlogTypeBeauty},
		AvailableProducts: []types.AvailableProduct{
			{ID: "c1", Name: "Gel Cleanser", SellingPrice: decimal.RequireFromString("9.90"), Tags: []string{"cleanser"}},
			{ID: "m1", Name: "Day Cream", SellingPrice: decimal.RequireFromString("19.00"), Tags: []string{"moisturizer"}},
			{ID: "k1", Name: "Chef Knife", SellingPrice: decimal.RequireFromString("39.00"), Tags: []string{"kitchen"}},
		},
		ExistingBlogSlugs: []string{"night-routine"},
	}
}

func TestGenerateSuccess(t *testing.T) {
	var sawPrompt string
	u := newUsecases(func(_ context.Context, req llm.Request) (llm.Completion, error) {
		sawPrompt = req.User
		return llm.Completion{Text: article([]map[string]any{
			{"productId": "c1", "role": "step", "stepOrder": 1},
			{"productId": "m1", "role": "step", "stepOrder": 4},
		}, nil)}, nil
	})
	res := u.Generate(context.Background(), beautyContext())

	require.True(t, res.Success, res.Error)
	require.NotNil(t, res.Content)
	assert.GreaterOrEqual(t, len(res.Content.FAQJSONLD.MainEntity), 3)
	assert.Len(t, res.Products, 2)
	assert.Equal(t, 1, res.Attempts)
	assert.Equal(t, "topic-1", res.TopicID)
	assert.Equal(t, []string{"night-routine"}, res.Content.InternalLinkSlugs)
	assert.Contains(t, sawPrompt, "Step 5 - Sunscreen: MARK AS MISSING")
	assert.NotContains(t, sawPrompt, "Chef Knife")

	// toner, serum and sunscreen were empty and unreported
	assert.Len(t, res.MissingProducts, 3)
	for _, m := range res.MissingProducts {
		assert.NotEmpty(t, m.Reason)
	}
}

func TestGenerateEmptyBody(t *testing.T) {
	u := newUsecases(func(context.Context, llm.Request) (llm.Completion, error) {
		return llm.Completion{Text: ""}, nil
	})
	res := u.Generate(context.Background(), beautyContext())

	assert.False(t, res.Success)
	assert.Equal(t, "No content generated", res.Error)
	assert.Equal(t, types.KindEmptyCompletion, res.ErrorKind)
	assert.Nil(t, res.Content)
	assert.Equal(t, []types.ProductRecommendation{}, res.Products)
	assert.Equal(t, []types.MissingProductInfo{}, res.MissingProducts)
	assert.Equal(t, 3, res.Attempts)

	b, err := json.Marshal(res)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"products":[]`)
	assert.Contains(t, string(b), `"missingProducts":[]`)
	assert.NotContains(t, string(b), `"content"`)
}

func TestGenerateDropsInvalidRecommendation(t *testing.T) {
	u := newUsecases(func(context.Context, llm.Request) (llm.Completion, error) {
		return llm.Completion{Text: article([]map[string]any{
			{"productId": "c1", "role": "step", "stepOrder": 1},
			{"productId": "not-in-catalog", "role": "recommended"},
			{"productId": "k1", "role": "recommended"},
		}, nil)}, nil
	})
	wc := beautyContext()
	res := u.Generate(context.Background(), wc)
	require.True(t, res.Success, res.Error)

	ids := wc.ProductIDs()
	for _, p := range res.Products {
		assert.True(t, ids[p.ProductID], "product %s not in snapshot", p.ProductID)
	}
	require.Len(t, res.Products, 1)

	var flagged []string
	for _, d := range res.Diagnostics {
		if d.Kind == types.KindInvalidRecommendation {
			flagged = append(flagged, d.ProductID)
		}
	}
	// k1 is in the snapshot but was filtered out of the beauty candidates.
	assert.Equal(t, []string{"not-in-catalog", "k1"}, flagged)
}

func TestGenerateMalformedResponse(t *testing.T) {
	u := newUsecases(func(context.Context, llm.Request) (llm.Completion, error) {
		return llm.Completion{Text: article(nil, func(m map[string]any) { delete(m, "seoTitle") })}, nil
	})
	res := u.Generate(context.Background(), beautyContext())
	assert.False(t, res.Success)
	assert.Equal(t, types.KindMalformedResponse, res.ErrorKind)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, types.SeverityError, res.Diagnostics[0].Severity)
	assert.Empty(t, res.Products)
}

func TestGenerateInsufficientFAQs(t *testing.T) {
	u := newUsecases(func(context.Context, llm.Request) (llm.Completion, error) {
		return llm.Completion{Text: article(nil, func(m map[string]any) {
			m["faqs"] = []map[string]any{{"question": "Only one?", "answer": "Yes."}}
		})}, nil
	})
	res := u.Generate(context.Background(), beautyContext())
	assert.False(t, res.Success)
	assert.Equal(t, types.KindInsufficientContent, res.ErrorKind)
	assert.Nil(t, res.Content)
}

func TestGenerateUnknownBlogTypeSkipsBackend(t *testing.T) {
	var calls atomic.Int32
	u := newUsecases(func(context.Context, llm.Request) (llm.Completion, error) {
		calls.Add(1)
		return llm.Completion{}, nil
	})
	wc := beautyContext()
	wc.Topic.BlogType = "FASHION"
	res := u.Generate(context.Background(), wc)
	assert.False(t, res.Success)
	assert.Equal(t, types.KindUnknownBlogType, res.ErrorKind)
	assert.Zero(t, calls.Load())
}

func TestGenerateCancelled(t *testing.T) {
	u := newUsecases(func(ctx context.Context, _ llm.Request) (llm.Completion, error) {
		<-ctx.Done()
		return llm.Completion{}, ctx.Err()
	})
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	res := u.Generate(ctx, beautyContext())
	assert.True(t, IsCancelled(res), "got %s: %s", res.ErrorKind, res.Error)
	assert.Empty(t, res.Products)
}

func TestGenerateBatchKeepsOrder(t *testing.T) {
	u := newUsecases(func(_ context.Context, req llm.Request) (llm.Completion, error) {
		if strings.Contains(req.User, "TOPIC: fail") {
			return llm.Completion{}, nil
		}
		return llm.Completion{Text: article(nil, nil)}, nil
	})
	var batch []types.WriterContext
	for i := 0; i < 7; i++ {
		wc := beautyContext()
		wc.Topic.ID = fmt.Sprintf("t%d", i)
		if i == 3 {
			wc.Topic.Title = "fail"
		}
		batch = append(batch, wc)
	}
	results := u.GenerateBatch(context.Background(), batch)
	require.Len(t, results, 7)
	for i, r := range results {
		assert.Equal(t, fmt.Sprintf("t%d", i), r.TopicID)
		assert.Equal(t, i != 3, r.Success, "result %d", i)
	}
}

func TestPromptPreviewAndWriters(t *testing.T) {
	u := New(UsecasesDeps{})
	pv, err := u.Prompt(beautyContext())
	require.NoError(t, err)
	assert.Contains(t, pv.Prompt.User, "- [c1] Gel Cleanser | 9.90")
	assert.True(t, pv.Plan.Candidates()["m1"])

	infos := u.Writers()
	require.Len(t, infos, 4)
	assert.Equal(t, types.BlogTypeBeauty, infos[0].BlogType)
	assert.Equal(t, "beauty_article", infos[0].SchemaName)
}
