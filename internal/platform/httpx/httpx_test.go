package httpx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"syscall"
	"testing"
	"time"
)

type statusErr int

func (s statusErr) Error() string       { return fmt.Sprintf("status %d", int(s)) }
func (s statusErr) HTTPStatusCode() int { return int(s) }

type hintErr time.Duration

func (h hintErr) Error() string             { return "rate limited" }
func (h hintErr) RetryAfter() time.Duration { return time.Duration(h) }

func TestIsRetryableError(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{context.Canceled, false},
		{context.DeadlineExceeded, true},
		{fmt.Errorf("wrapped: %w", statusErr(429)), true},
		{statusErr(503), true},
		{statusErr(400), false},
		{statusErr(401), false},
		{&net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}, true},
		{fmt.Errorf("read body: %w", io.ErrUnexpectedEOF), true},
		{errors.New("openai decode error: invalid character"), false},
	}
	for _, tc := range cases {
		if got := IsRetryableError(tc.err); got != tc.want {
			t.Fatalf("IsRetryableError(%v)=%v want %v", tc.err, got, tc.want)
		}
	}
}

func TestBackoff(t *testing.T) {
	if got := Backoff(time.Second, 10*time.Second, 0); got != time.Second {
		t.Fatalf("attempt 0: %v", got)
	}
	if got := Backoff(time.Second, 10*time.Second, 2); got != 4*time.Second {
		t.Fatalf("attempt 2: %v", got)
	}
	if got := Backoff(time.Second, 10*time.Second, 8); got != 10*time.Second {
		t.Fatalf("attempt 8 should cap: %v", got)
	}
}

func TestRetryAfter(t *testing.T) {
	h := http.Header{}
	h.Set("Retry-After", "3")
	if got := ParseRetryAfter(h); got != 3*time.Second {
		t.Fatalf("ParseRetryAfter=%v", got)
	}
	if got := RetryAfterDuration(hintErr(30*time.Second), time.Second, 10*time.Second); got != 10*time.Second {
		t.Fatalf("hint should be capped: %v", got)
	}
	if got := RetryAfterDuration(statusErr(500), 2*time.Second, 10*time.Second); got != 2*time.Second {
		t.Fatalf("fallback expected: %v", got)
	}
}

func TestSleepContext_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := SleepContext(ctx, time.Hour); err == nil {
		t.Fatalf("expected cancellation")
	}
}
