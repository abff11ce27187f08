package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/yungbote/blogwriter-backend/internal/platform/llm"
	"github.com/yungbote/blogwriter-backend/internal/platform/logger"
)

type Config struct {
	APIKey string
	Model  string
}

// contentGenerator is the subset of *genai.Models the client uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client generates JSON objects with Google's Gemini API.
type Client struct {
	log    *logger.Logger
	models contentGenerator
	model  string
}

var _ llm.Backend = (*Client)(nil)

func NewClient(ctx context.Context, log *logger.Logger, cfg Config) (*Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("missing GEMINI_API_KEY")
	}
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  strings.TrimSpace(cfg.APIKey),
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return newWithGenerator(log, gc.Models, cfg.Model), nil
}

func newWithGenerator(log *logger.Logger, g contentGenerator, model string) *Client {
	model = strings.TrimSpace(model)
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &Client{log: log.With("service", "GeminiClient"), models: g, model: model}
}

func (c *Client) Name() string { return "gemini:" + c.model }

func (c *Client) CompleteJSON(ctx context.Context, in llm.Request) (llm.Completion, error) {
	temp := float32(in.Temperature)
	cfg := &genai.GenerateContentConfig{
		Temperature:      &temp,
		MaxOutputTokens:  int32(in.MaxOutputTokens),
		ResponseMIMEType: "application/json",
	}
	if strings.TrimSpace(in.System) != "" {
		cfg.SystemInstruction = genai.NewContentFromText(in.System, genai.RoleUser)
	}
	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(in.User), cfg)
	if err != nil {
		return llm.Completion{}, wrapAPIError(err)
	}
	out := llm.Completion{Model: c.model}
	if resp == nil {
		return out, nil
	}
	out.Text = resp.Text()
	if resp.UsageMetadata != nil {
		out.InputTokens = int(resp.UsageMetadata.PromptTokenCount)
		out.OutputTokens = int(resp.UsageMetadata.CandidatesTokenCount)
	}
	if strings.TrimSpace(out.Text) == "" && len(resp.Candidates) > 0 && resp.Candidates[0] != nil {
		c.log.Warn("gemini returned no text", "finish_reason", string(resp.Candidates[0].FinishReason))
	}
	return out, nil
}

// StatusError exposes the API status code so the retry policy can classify it.
type StatusError struct {
	Code int
	Err  error
}

func (e *StatusError) Error() string       { return fmt.Sprintf("gemini api %d: %v", e.Code, e.Err) }
func (e *StatusError) Unwrap() error       { return e.Err }
func (e *StatusError) HTTPStatusCode() int { return e.Code }

func wrapAPIError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &StatusError{Code: apiErr.Code, Err: err}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return &StatusError{Code: apiErrPtr.Code, Err: err}
	}
	return err
}
