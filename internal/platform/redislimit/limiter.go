// Package redislimit shares a per-minute request budget for the generative backend across
// every process pointed at the same redis.
package redislimit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yungbote/blogwriter-backend/internal/platform/httpx"
)

type Config struct {
	Addr     string
	Password string
	DB       int
	// Key prefix for window counters.
	Prefix string
	// PerMinute is the budget per one-minute window; <=0 disables limiting.
	PerMinute int
}

// Limiter is a fixed-window counter: INCR the current minute's key, EXPIRE on first hit.
type Limiter struct {
	rdb       redis.Cmdable
	prefix    string
	perMinute int64
	window    time.Duration
	now       func() time.Time
}

func New(cfg Config) (*Limiter, *redis.Client, error) {
	if strings.TrimSpace(cfg.Addr) == "" {
		return nil, nil, fmt.Errorf("redis addr required")
	}
	rdb := redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
	return NewWithClient(rdb, cfg.Prefix, cfg.PerMinute), rdb, nil
}

func NewWithClient(rdb redis.Cmdable, prefix string, perMinute int) *Limiter {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "blogwriter:llm"
	}
	return &Limiter{rdb: rdb, prefix: prefix, perMinute: int64(perMinute), window: time.Minute, now: time.Now}
}

// Wait blocks until a slot in the current or a later window is acquired.
func (l *Limiter) Wait(ctx context.Context) error {
	if l == nil || l.perMinute <= 0 {
		return nil
	}
	for {
		now := l.now()
		ok, err := l.take(ctx, now)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		next := now.Truncate(l.window).Add(l.window)
		if err := httpx.SleepContext(ctx, next.Sub(now)); err != nil {
			return err
		}
	}
}

func (l *Limiter) take(ctx context.Context, now time.Time) (bool, error) {
	key := fmt.Sprintf("%s:%d", l.prefix, now.Truncate(l.window).Unix())
	pipe := l.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, 2*l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("rate limit incr: %w", err)
	}
	return incr.Val() <= l.perMinute, nil
}
