package blog

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	types "github.com/yungbote/blogwriter-backend/internal/domain/blog"
	"github.com/yungbote/blogwriter-backend/internal/modules/blog/generation"
	"github.com/yungbote/blogwriter-backend/internal/modules/blog/prompts"
	"github.com/yungbote/blogwriter-backend/internal/modules/blog/steps"
	"github.com/yungbote/blogwriter-backend/internal/modules/blog/writers"
	"github.com/yungbote/blogwriter-backend/internal/observability"
	"github.com/yungbote/blogwriter-backend/internal/platform/ctxutil"
	"github.com/yungbote/blogwriter-backend/internal/platform/logger"
)

const defaultBatchConcurrency = 4

type UsecasesDeps struct {
	Log     *logger.Logger
	Writers *writers.Registry
	Gen     *generation.Client
	Rules   steps.Rules
	// BatchConcurrency bounds how many invocations of a batch run at once.
	BatchConcurrency int
}

type Usecases struct {
	deps UsecasesDeps
}

func New(deps UsecasesDeps) Usecases {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	if deps.Writers == nil {
		deps.Writers = writers.DefaultRegistry()
	}
	if deps.Rules.MinFAQs <= 0 {
		deps.Rules = steps.DefaultRules()
	}
	if deps.BatchConcurrency <= 0 {
		deps.BatchConcurrency = defaultBatchConcurrency
	}
	return Usecases{deps: deps}
}

// WriterInfo describes one registered writer.
type WriterInfo struct {
	BlogType   types.BlogType `json:"blogType"`
	Prompt     string         `json:"prompt"`
	SchemaName string         `json:"schemaName"`
}

func (u Usecases) Writers() []WriterInfo {
	prompts.RegisterAll()
	var out []WriterInfo
	for _, bt := range u.deps.Writers.BlogTypes() {
		s, err := u.deps.Writers.Lookup(bt)
		if err != nil {
			continue
		}
		name, _, _ := prompts.Schema(s.PromptName())
		out = append(out, WriterInfo{BlogType: bt, Prompt: string(s.PromptName()), SchemaName: name})
	}
	return out
}

// Preview is the backend-free half of a generation: buckets plus the rendered prompt.
type Preview struct {
	Plan   writers.Plan
	Prompt prompts.Prompt
}

// Prompt renders the prompt for wc without calling the backend.
func (u Usecases) Prompt(wc types.WriterContext) (Preview, error) {
	s, err := u.deps.Writers.Lookup(wc.Topic.BlogType)
	if err != nil {
		return Preview{}, err
	}
	plan := writers.Bucketize(s, wc)
	p, err := steps.ComposePrompt(plan, wc, u.deps.Rules)
	if err != nil {
		return Preview{}, err
	}
	return Preview{Plan: plan, Prompt: p}, nil
}

// Generate runs one invocation. It never returns an error: failures are reported in the
// result with an ErrorKind and diagnostics.
func (u Usecases) Generate(ctx context.Context, wc types.WriterContext) types.BlogGenerationResult {
	ctx, span := observability.Tracer().Start(ctx, "blog.generate", trace.WithAttributes(
		attribute.String("blog.topic_id", wc.Topic.ID),
		attribute.String("blog.type", string(wc.Topic.BlogType)),
		attribute.Int("blog.catalog_size", len(wc.AvailableProducts)),
	))
	defer span.End()

	log := u.deps.Log.With(append(ctxutil.LogFields(ctx), "topic_id", wc.Topic.ID, "blog_type", string(wc.Topic.BlogType))...)
	start := time.Now()

	res := u.generate(ctx, log, wc)

	outcome := "success"
	if !res.Success {
		outcome = string(res.ErrorKind)
		span.SetStatus(codes.Error, res.Error)
	}
	span.SetAttributes(
		attribute.String("blog.generation_id", res.GenerationID.String()),
		attribute.Int("blog.attempts", res.Attempts),
		attribute.Int("blog.products", len(res.Products)),
		attribute.Int("blog.missing_products", len(res.MissingProducts)),
	)
	m := observability.Current()
	m.ObserveGeneration(ctx, string(wc.Topic.BlogType), outcome)
	for _, d := range res.Diagnostics {
		m.ObserveDiagnostic(ctx, string(wc.Topic.BlogType), string(d.Kind))
	}

	kv := []any{
		"generation_id", res.GenerationID.String(),
		"success", res.Success,
		"attempts", res.Attempts,
		"products", len(res.Products),
		"missing_products", len(res.MissingProducts),
		"diagnostics", len(res.Diagnostics),
		"elapsed_ms", time.Since(start).Milliseconds(),
	}
	if res.Success {
		log.Info("blog generation finished", kv...)
	} else {
		log.Warn("blog generation failed", append(kv, "error_kind", string(res.ErrorKind), "error", res.Error)...)
	}
	return res
}

func (u Usecases) generate(ctx context.Context, log *logger.Logger, wc types.WriterContext) types.BlogGenerationResult {
	topic := wc.Topic
	s, err := u.deps.Writers.Lookup(topic.BlogType)
	if err != nil {
		return steps.Fail(topic, err, nil, 0)
	}
	if err := ctx.Err(); err != nil {
		return steps.Fail(topic, types.NewError(types.KindCancelled, "generation cancelled", err), nil, 0)
	}

	plan := writers.Bucketize(s, wc)
	p, err := steps.ComposePrompt(plan, wc, u.deps.Rules)
	if err != nil {
		return steps.Fail(topic, err, nil, 0)
	}
	log.Debug("prompt composed",
		"prompt", p.Name,
		"prompt_version", p.Version,
		"fingerprint", p.Fingerprint(),
		"filtered_products", len(plan.Filtered),
		"buckets", len(plan.Buckets),
	)

	out, err := u.deps.Gen.Generate(ctx, p.System, p.User)
	if err != nil {
		return steps.Fail(topic, err, nil, out.Attempts)
	}

	article, err := steps.ParseArticle(out.Completion.Text, p.Schema)
	if err != nil {
		return steps.Fail(topic, err, []types.Diagnostic{{
			Kind:     types.KindOf(err),
			Severity: types.SeverityError,
			Message:  err.Error(),
		}}, out.Attempts)
	}

	v, err := steps.Validate(steps.ValidateInput{
		Article:       article,
		Candidates:    plan.Candidates(),
		ExistingSlugs: wc.ExistingBlogSlugs,
		Rules:         u.deps.Rules,
	})
	if err != nil {
		return steps.Fail(topic, err, v.Diagnostics, out.Attempts)
	}

	return steps.Assemble(steps.AssembleInput{
		Topic:     topic,
		Article:   article,
		Validated: v,
		Buckets:   plan.Buckets,
		Attempts:  out.Attempts,
	})
}

// GenerateBatch runs every context concurrently (bounded) and returns results in input
// order. A cancelled parent context yields Cancelled results for unstarted items.
func (u Usecases) GenerateBatch(ctx context.Context, batch []types.WriterContext) []types.BlogGenerationResult {
	results := make([]types.BlogGenerationResult, len(batch))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(u.deps.BatchConcurrency)
	for i := range batch {
		i := i
		g.Go(func() error {
			results[i] = u.Generate(gctx, batch[i])
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// IsCancelled reports whether res failed because its context was cancelled.
func IsCancelled(res types.BlogGenerationResult) bool {
	return !res.Success && res.ErrorKind == types.KindCancelled
}
