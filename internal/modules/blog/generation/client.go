package generation

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/yungbote/blogwriter-backend/internal/domain/blog"
	"github.com/yungbote/blogwriter-backend/internal/observability"
	"github.com/yungbote/blogwriter-backend/internal/platform/httpx"
	"github.com/yungbote/blogwriter-backend/internal/platform/llm"
	"github.com/yungbote/blogwriter-backend/internal/platform/logger"
)

// RateLimiter gates calls against a shared backend budget (see redislimit).
type RateLimiter interface {
	Wait(ctx context.Context) error
}

type Options struct {
	// Temperature <= 0 means unset and falls back to 0.7.
	Temperature     float64
	MaxOutputTokens int
	// Concurrency bounds in-flight backend calls across all invocations sharing the client.
	Concurrency int64
	// Timeout applies to each attempt, not the whole call.
	Timeout     time.Duration
	MaxAttempts int
	BaseBackoff time.Duration
	MaxBackoff  time.Duration
}

func DefaultOptions() Options {
	return Options{
		Temperature:     0.7,
		MaxOutputTokens: 4000,
		Concurrency:     4,
		Timeout:         120 * time.Second,
		MaxAttempts:     3,
		BaseBackoff:     time.Second,
		MaxBackoff:      10 * time.Second,
	}
}

func (o Options) normalized() Options {
	d := DefaultOptions()
	if o.Temperature <= 0 {
		o.Temperature = d.Temperature
	}
	if o.MaxOutputTokens <= 0 {
		o.MaxOutputTokens = d.MaxOutputTokens
	}
	if o.Concurrency <= 0 {
		o.Concurrency = d.Concurrency
	}
	if o.Timeout <= 0 {
		o.Timeout = d.Timeout
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = d.MaxAttempts
	}
	if o.BaseBackoff < 0 {
		o.BaseBackoff = 0
	}
	if o.MaxBackoff <= 0 {
		o.MaxBackoff = d.MaxBackoff
	}
	return o
}

// Client wraps a Backend with bounded concurrency, a per-attempt deadline and
// retry-with-backoff on transient failures.
type Client struct {
	log     *logger.Logger
	backend llm.Backend
	sem     *semaphore.Weighted
	limiter RateLimiter
	opts    Options
	sleep   func(ctx context.Context, d time.Duration) error
}

type Option func(*Client)

func WithRateLimiter(l RateLimiter) Option {
	return func(c *Client) { c.limiter = l }
}

// WithSleep replaces the backoff sleeper (tests use it to skip real waits).
func WithSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(c *Client) {
		if fn != nil {
			c.sleep = fn
		}
	}
}

func NewClient(log *logger.Logger, backend llm.Backend, opts Options, extra ...Option) *Client {
	if log == nil {
		log = logger.Nop()
	}
	opts = opts.normalized()
	c := &Client{
		log:     log.With("service", "GenerationClient"),
		backend: backend,
		sem:     semaphore.NewWeighted(opts.Concurrency),
		opts:    opts,
		sleep:   httpx.SleepContext,
	}
	for _, o := range extra {
		o(c)
	}
	return c
}

func (c *Client) Options() Options { return c.opts }

// Outcome is a successful completion plus the number of attempts it took.
type Outcome struct {
	Completion llm.Completion
	Attempts   int
}

// Generate returns a non-empty completion or a *blog.GenerationError whose kind is one of
// BackendUnavailable, EmptyCompletion or Cancelled. The returned attempt count is valid
// on failure too.
func (c *Client) Generate(ctx context.Context, system, user string) (Outcome, error) {
	if c == nil || c.backend == nil {
		return Outcome{}, blog.NewError(blog.KindBackendUnavailable, "no generative backend configured", nil)
	}
	req := llm.Request{
		System:          system,
		User:            user,
		Temperature:     c.opts.Temperature,
		MaxOutputTokens: c.opts.MaxOutputTokens,
	}

	var lastErr error
	attempts := 0
	for attempt := 0; attempt < c.opts.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return Outcome{Attempts: attempts}, cancelled(err)
		}
		attempts++
		comp, err := c.attempt(ctx, req, attempt)
		if err == nil {
			return Outcome{Completion: comp, Attempts: attempts}, nil
		}
		lastErr = err
		if isPermanent(err) || !blog.KindOf(err).Retryable() || attempt == c.opts.MaxAttempts-1 {
			break
		}

		backoff := httpx.Backoff(c.opts.BaseBackoff, c.opts.MaxBackoff, attempt)
		sleepFor := httpx.JitterSleep(httpx.RetryAfterDuration(err, backoff, c.opts.MaxBackoff))
		c.log.Warn("generation retrying",
			"backend", c.backend.Name(),
			"attempt", attempts,
			"max_attempts", c.opts.MaxAttempts,
			"sleep", sleepFor.String(),
			"error", err.Error(),
		)
		if err := c.sleep(ctx, sleepFor); err != nil {
			return Outcome{Attempts: attempts}, cancelled(err)
		}
	}
	return Outcome{Attempts: attempts}, lastErr
}

func (c *Client) attempt(ctx context.Context, req llm.Request, attempt int) (llm.Completion, error) {
	if err := c.sem.Acquire(ctx, 1); err != nil {
		return llm.Completion{}, cancelled(err)
	}
	defer c.sem.Release(1)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return llm.Completion{}, cancelled(ctx.Err())
			}
			return llm.Completion{}, blog.NewError(blog.KindBackendUnavailable, "rate limiter unavailable", err)
		}
	}

	actx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	start := time.Now()
	comp, err := c.backend.CompleteJSON(actx, req)
	elapsed := time.Since(start)

	status := "ok"
	switch {
	case err != nil:
		status = statusOf(err)
	case strings.TrimSpace(comp.Text) == "":
		status = "empty"
	}
	observability.Current().ObserveLLMRequest(ctx, c.backend.Name(), status, elapsed, comp.InputTokens, comp.OutputTokens)
	c.log.Debug("llm call finished",
		"backend", c.backend.Name(),
		"attempt", attempt+1,
		"elapsed_ms", elapsed.Milliseconds(),
		"status", status,
		"output_tokens", comp.OutputTokens,
	)

	if err != nil {
		if ctx.Err() != nil {
			return llm.Completion{}, cancelled(ctx.Err())
		}
		return llm.Completion{}, classify(err)
	}
	if strings.TrimSpace(comp.Text) == "" {
		return llm.Completion{}, blog.NewError(blog.KindEmptyCompletion, "", blog.ErrNoContent)
	}
	return comp, nil
}

func cancelled(err error) error {
	return blog.NewError(blog.KindCancelled, "generation cancelled", err)
}

// classify maps a backend error to BackendUnavailable. Only transient failures (timeouts,
// transport errors, 408/429/5xx) stay retryable; auth, request and decode errors do not.
func classify(err error) error {
	var sc httpx.HTTPStatusCoder
	if errors.As(err, &sc) {
		if !httpx.IsRetryableHTTPStatus(sc.HTTPStatusCode()) {
			return &permanentError{blog.NewError(blog.KindBackendUnavailable, "backend rejected request", err)}
		}
		return blog.NewError(blog.KindBackendUnavailable, "backend unavailable", err)
	}
	if !httpx.IsRetryableError(err) {
		return &permanentError{blog.NewError(blog.KindBackendUnavailable, "backend call failed", err)}
	}
	return blog.NewError(blog.KindBackendUnavailable, "backend unavailable", err)
}

// permanentError keeps the BackendUnavailable kind for reporting but stops the retry loop.
type permanentError struct {
	*blog.GenerationError
}

func (p *permanentError) Unwrap() error { return p.GenerationError }

func isPermanent(err error) bool {
	var p *permanentError
	return errors.As(err, &p)
}

func statusOf(err error) string {
	var sc httpx.HTTPStatusCoder
	if errors.As(err, &sc) {
		return strconv.Itoa(sc.HTTPStatusCode())
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	return "error"
}
