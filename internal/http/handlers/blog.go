package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	types "github.com/yungbote/blogwriter-backend/internal/domain/blog"
	response "github.com/yungbote/blogwriter-backend/internal/http/response"
	blogmod "github.com/yungbote/blogwriter-backend/internal/modules/blog"
	"github.com/yungbote/blogwriter-backend/internal/platform/apierr"
)

// MaxBatchItems bounds a single batch request.
const MaxBatchItems = 50

// BlogUsecases is the slice of the blog module the handler needs.
type BlogUsecases interface {
	Generate(ctx context.Context, wc types.WriterContext) types.BlogGenerationResult
	GenerateBatch(ctx context.Context, batch []types.WriterContext) []types.BlogGenerationResult
	Prompt(wc types.WriterContext) (blogmod.Preview, error)
	Writers() []blogmod.WriterInfo
}

type BlogHandler struct {
	uc BlogUsecases
}

func NewBlogHandler(uc BlogUsecases) *BlogHandler {
	return &BlogHandler{uc: uc}
}

type topicRequest struct {
	ID            string `json:"id"`
	Title         string `json:"title" binding:"required"`
	Description   string `json:"description"`
	BlogType      string `json:"blogType" binding:"required"`
	GroupingBlock string `json:"groupingBlock"`
}

type writerContextRequest struct {
	Topic             topicRequest             `json:"topic"`
	AvailableProducts []types.AvailableProduct `json:"availableProducts"`
	ExistingBlogSlugs []string                 `json:"existingBlogSlugs"`
}

type batchRequest struct {
	Items []writerContextRequest `json:"items" binding:"required,min=1,dive"`
}

type batchResponse struct {
	Results   []types.BlogGenerationResult `json:"results"`
	Succeeded int                          `json:"succeeded"`
	Failed    int                          `json:"failed"`
}

var errUnknownBlogType = errors.New("unknown blog type")

// toWriterContext resolves the blog type leniently (case, hyphens) before dispatch.
func (r writerContextRequest) toWriterContext() (types.WriterContext, error) {
	bt, ok := types.ParseBlogType(r.Topic.BlogType)
	if !ok {
		return types.WriterContext{}, apierr.BadRequest("unknown_blog_type", fmt.Errorf("%w: %q", errUnknownBlogType, r.Topic.BlogType))
	}
	return types.WriterContext{
		Topic: types.Topic{
			ID:            strings.TrimSpace(r.Topic.ID),
			Title:         strings.TrimSpace(r.Topic.Title),
			Description:   r.Topic.Description,
			BlogType:      bt,
			GroupingBlock: r.Topic.GroupingBlock,
		},
		AvailableProducts: r.AvailableProducts,
		ExistingBlogSlugs: r.ExistingBlogSlugs,
	}, nil
}

func bindWriterContext(c *gin.Context) (types.WriterContext, bool) {
	var req writerContextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondAPIError(c, apierr.BadRequest("invalid_request", err))
		return types.WriterContext{}, false
	}
	wc, err := req.toWriterContext()
	if err != nil {
		response.RespondAPIError(c, err)
		return types.WriterContext{}, false
	}
	return wc, true
}

// POST /api/blog/generate
func (h *BlogHandler) Generate(c *gin.Context) {
	wc, ok := bindWriterContext(c)
	if !ok {
		return
	}
	response.RespondResult(c, h.uc.Generate(c.Request.Context(), wc))
}

// POST /api/blog/generate/batch
func (h *BlogHandler) GenerateBatch(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondAPIError(c, apierr.BadRequest("invalid_request", err))
		return
	}
	if len(req.Items) > MaxBatchItems {
		response.RespondAPIError(c, apierr.BadRequest("batch_too_large", fmt.Errorf("at most %d items per batch", MaxBatchItems)))
		return
	}
	batch := make([]types.WriterContext, 0, len(req.Items))
	for i, item := range req.Items {
		wc, err := item.toWriterContext()
		if err != nil {
			response.RespondAPIError(c, fmt.Errorf("items[%d]: %w", i, err))
			return
		}
		batch = append(batch, wc)
	}
	out := batchResponse{Results: h.uc.GenerateBatch(c.Request.Context(), batch)}
	for _, r := range out.Results {
		if r.Success {
			out.Succeeded++
		} else {
			out.Failed++
		}
	}
	response.RespondOK(c, out)
}

type bucketView struct {
	Key        string   `json:"key"`
	Label      string   `json:"label"`
	ProductIDs []string `json:"productIds"`
	Total      int      `json:"total"`
	Cap        int      `json:"cap"`
	Required   bool     `json:"required"`
}

type promptView struct {
	Name        string       `json:"name"`
	Version     int          `json:"version"`
	Fingerprint string       `json:"fingerprint"`
	System      string       `json:"system"`
	User        string       `json:"user"`
	Buckets     []bucketView `json:"buckets"`
}

// POST /api/blog/prompt renders the prompt without calling the backend.
func (h *BlogHandler) Prompt(c *gin.Context) {
	wc, ok := bindWriterContext(c)
	if !ok {
		return
	}
	pv, err := h.uc.Prompt(wc)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	out := promptView{
		Name:        pv.Prompt.Name,
		Version:     pv.Prompt.Version,
		Fingerprint: pv.Prompt.Fingerprint(),
		System:      pv.Prompt.System,
		User:        pv.Prompt.User,
		Buckets:     make([]bucketView, 0, len(pv.Plan.Buckets)),
	}
	for _, b := range pv.Plan.Buckets {
		ids := make([]string, 0, len(b.Products))
		for _, p := range b.Products {
			ids = append(ids, p.ID)
		}
		out.Buckets = append(out.Buckets, bucketView{
			Key: b.Key, Label: b.Label, ProductIDs: ids, Total: b.Total, Cap: b.Cap, Required: b.Required,
		})
	}
	response.RespondOK(c, out)
}

// GET /api/blog/writers
func (h *BlogHandler) ListWriters(c *gin.Context) {
	response.RespondOK(c, gin.H{"writers": h.uc.Writers()})
}
