package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/blogwriter-backend/internal/domain/blog"
	"github.com/yungbote/blogwriter-backend/internal/platform/apierr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondAPIError picks status and code from an *apierr.Error in the chain, falling back to
// the generation error kind.
func RespondAPIError(c *gin.Context, err error) {
	if ae, ok := apierr.As(err); ok {
		status := ae.Status
		if status == 0 {
			status = http.StatusBadRequest
		}
		RespondError(c, status, ae.Code, err)
		return
	}
	kind := blog.KindOf(err)
	if kind == "" || kind == blog.KindInternal {
		RespondError(c, http.StatusInternalServerError, "internal", err)
		return
	}
	RespondError(c, StatusForKind(kind), string(kind), err)
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// StatusForKind maps a generation failure kind to an HTTP status. An empty kind is success.
func StatusForKind(kind blog.ErrorKind) int {
	switch kind {
	case "":
		return http.StatusOK
	case blog.KindUnknownBlogType, blog.KindInvalidInput:
		return http.StatusBadRequest
	case blog.KindMalformedResponse, blog.KindInsufficientContent, blog.KindInvalidRecommendation:
		return http.StatusUnprocessableEntity
	case blog.KindBackendUnavailable, blog.KindEmptyCompletion:
		return http.StatusBadGateway
	case blog.KindCancelled:
		return http.StatusRequestTimeout
	}
	return http.StatusInternalServerError
}

// RespondResult writes a generation result; failures keep the full result body so callers
// see the error kind and diagnostics.
func RespondResult(c *gin.Context, res blog.BlogGenerationResult) {
	if res.Success {
		c.JSON(http.StatusOK, res)
		return
	}
	c.JSON(StatusForKind(res.ErrorKind), res)
}
