package steps

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/yungbote/blogwriter-backend/internal/domain/blog"
	"github.com/yungbote/blogwriter-backend/internal/modules/blog/prompts"
)

// Article is the strictly-decoded backend response. Writer-specific fields are nil unless
// the writer's schema declares them and the backend returned them.
type Article struct {
	Title               string           `json:"title" validate:"required"`
	Summary             string           `json:"summary" validate:"required"`
	ContentMD           string           `json:"contentMd" validate:"required"`
	SEOTitle            string           `json:"seoTitle" validate:"required"`
	SEODescription      string           `json:"seoDescription" validate:"required"`
	SEOKeywords         []string         `json:"seoKeywords"`
	FAQs                []ArticleFAQ     `json:"faqs"`
	InternalLinkSlugs   []string         `json:"internalLinkSlugs"`
	RecommendedProducts []ArticleProduct `json:"recommendedProducts"`
	MissingProducts     []ArticleMissing `json:"missingProducts"`

	EstimatedCost *decimal.Decimal `json:"estimatedCost,omitempty"`
	Servings      *int             `json:"servings,omitempty" validate:"omitempty,min=1"`
	CookingTime   *string          `json:"cookingTime,omitempty"`
	Difficulty    *string          `json:"difficulty,omitempty" validate:"omitempty,oneof=easy medium hard"`

	PotentialMonthlySavings *decimal.Decimal `json:"potentialMonthlySavings,omitempty"`
	SavingsTips             []string         `json:"savingsTips,omitempty"`
}

type ArticleFAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type ArticleProduct struct {
	ProductID string `json:"productId"`
	Role      string `json:"role"`
	StepOrder *int   `json:"stepOrder,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

type ArticleMissing struct {
	Name               string `json:"name"`
	CategorySuggestion string `json:"categorySuggestion,omitempty"`
	Reason             string `json:"reason"`
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

func malformed(format string, args ...any) error {
	return blog.NewError(blog.KindMalformedResponse, fmt.Sprintf(format, args...), nil)
}

// ParseArticle decodes raw backend text against schema. It rejects anything that is not a
// single JSON object, omits a required key, carries a key the schema does not declare or
// has a mistyped value.
func ParseArticle(raw string, schema map[string]any) (Article, error) {
	body := stripCodeFence(raw)
	if body == "" {
		return Article{}, blog.NewError(blog.KindEmptyCompletion, "", blog.ErrNoContent)
	}
	var top map[string]json.RawMessage
	if err := decodeSingle([]byte(body), &top, false); err != nil {
		return Article{}, malformed("response is not a JSON object: %v", err)
	}
	if top == nil {
		return Article{}, malformed("response is not a JSON object")
	}
	if err := checkKeys("", top, schema); err != nil {
		return Article{}, err
	}
	for _, key := range []string{"faqs", "recommendedProducts", "missingProducts"} {
		if err := checkItems(key, top[key], prompts.ItemSchema(schema, key)); err != nil {
			return Article{}, err
		}
	}

	var a Article
	if err := decodeSingle([]byte(body), &a, true); err != nil {
		return Article{}, malformed("response has mistyped fields: %v", err)
	}
	if err := structValidator().Struct(a); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fe.Field()+" ("+fe.Tag()+")")
			}
			return Article{}, malformed("invalid fields: %s", strings.Join(fields, ", "))
		}
		return Article{}, malformed("validation: %v", err)
	}
	return a, nil
}

func decodeSingle(b []byte, v any, strict bool) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	if strict {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return errors.New("trailing data after JSON object")
	}
	return nil
}

func checkKeys(path string, obj map[string]json.RawMessage, schema map[string]any) error {
	if schema == nil {
		return nil
	}
	var missing []string
	for _, k := range prompts.RequiredKeys(schema) {
		if _, ok := obj[k]; !ok {
			missing = append(missing, path+k)
		}
	}
	if len(missing) > 0 {
		return malformed("missing required keys: %s", strings.Join(missing, ", "))
	}
	props := prompts.Properties(schema)
	var unknown []string
	for k := range obj {
		if _, ok := props[k]; !ok {
			unknown = append(unknown, path+k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return malformed("unexpected keys: %s", strings.Join(unknown, ", "))
	}
	return nil
}

func checkItems(key string, raw json.RawMessage, itemSchema map[string]any) error {
	if itemSchema == nil || len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var items []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return malformed("%s must be an array of objects", key)
	}
	for i, item := range items {
		if err := checkKeys(fmt.Sprintf("%s[%d].", key, i), item, itemSchema); err != nil {
			return err
		}
	}
	return nil
}

// stripCodeFence removes a surrounding ```json fence some models add despite JSON mode.
func stripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		return ""
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
