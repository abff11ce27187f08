package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/blogwriter-backend/internal/domain/blog"
	"github.com/yungbote/blogwriter-backend/internal/platform/apierr"
)

func TestStatusForKind(t *testing.T) {
	cases := map[blog.ErrorKind]int{
		"":                           http.StatusOK,
		blog.KindUnknownBlogType:     http.StatusBadRequest,
		blog.KindMalformedResponse:   http.StatusUnprocessableEntity,
		blog.KindInsufficientContent: http.StatusUnprocessableEntity,
		blog.KindEmptyCompletion:     http.StatusBadGateway,
		blog.KindBackendUnavailable:  http.StatusBadGateway,
		blog.KindCancelled:           http.StatusRequestTimeout,
		blog.KindInternal:            http.StatusInternalServerError,
	}
	for kind, want := range cases {
		if got := StatusForKind(kind); got != want {
			t.Fatalf("%q: got %d want %d", kind, got, want)
		}
	}
}

func TestRespondAPIError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"api error", fmt.Errorf("items[0]: %w", apierr.BadRequest("unknown_blog_type", errors.New("bad"))), http.StatusBadRequest, "unknown_blog_type"},
		{"generation kind", blog.NewError(blog.KindInvalidInput, "topic title is required", nil), http.StatusBadRequest, string(blog.KindInvalidInput)},
		{"plain", errors.New("boom"), http.StatusInternalServerError, "internal"},
		{"internal kind", blog.NewError(blog.KindInternal, "assemble failed", nil), http.StatusInternalServerError, "internal"},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)
		RespondAPIError(c, tc.err)
		if rec.Code != tc.wantStatus {
			t.Fatalf("%s: status %d want %d", tc.name, rec.Code, tc.wantStatus)
		}
		var env ErrorEnvelope
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("%s: decode: %v", tc.name, err)
		}
		if env.Error.Code != tc.wantCode {
			t.Fatalf("%s: code %q want %q", tc.name, env.Error.Code, tc.wantCode)
		}
	}
}
