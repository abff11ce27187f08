// Package llm holds the backend-neutral contract shared by the generative text backends.
package llm

import "context"

// Request is one JSON-object completion request.
type Request struct {
	System          string
	User            string
	Temperature     float64
	MaxOutputTokens int
}

// Completion is the raw backend output. Text may be empty; callers decide what that means.
type Completion struct {
	Text         string
	Model        string
	InputTokens  int
	OutputTokens int
}

// Backend produces a single JSON object for a system+user instruction pair.
type Backend interface {
	Name() string
	CompleteJSON(ctx context.Context, req Request) (Completion, error)
}

// BackendFunc adapts a function to Backend.
type BackendFunc func(ctx context.Context, req Request) (Completion, error)

func (f BackendFunc) Name() string { return "func" }

func (f BackendFunc) CompleteJSON(ctx context.Context, req Request) (Completion, error) {
	return f(ctx, req)
}
