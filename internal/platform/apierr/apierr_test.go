package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	cause := errors.New("title is required")
	if got := New(http.StatusBadRequest, "invalid_request", cause).Error(); got != "title is required" {
		t.Fatalf("message: %q", got)
	}
	if got := New(http.StatusBadRequest, "invalid_request", nil).Error(); got != "invalid_request" {
		t.Fatalf("code fallback: %q", got)
	}
	if got := New(http.StatusTeapot, "", nil).Error(); got != "api error (418)" {
		t.Fatalf("status fallback: %q", got)
	}
	var nilErr *Error
	if nilErr.Error() != "" {
		t.Fatalf("nil error should render empty")
	}
}

func TestAsUnwrapsWrapped(t *testing.T) {
	cause := errors.New("boom")
	wrapped := fmt.Errorf("items[2]: %w", BadRequest("unknown_blog_type", cause))
	ae, ok := As(wrapped)
	if !ok {
		t.Fatalf("expected *Error in chain")
	}
	if ae.Status != http.StatusBadRequest || ae.Code != "unknown_blog_type" {
		t.Fatalf("unexpected: %+v", ae)
	}
	if !errors.Is(wrapped, cause) {
		t.Fatalf("cause lost")
	}
	if _, ok := As(cause); ok {
		t.Fatalf("plain error should not match")
	}
	if _, ok := As(nil); ok {
		t.Fatalf("nil should not match")
	}
}
