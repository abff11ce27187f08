package blog

import "github.com/google/uuid"

type RecommendationRole string

const (
	RoleRecommended RecommendationRole = "recommended"
	RoleIngredient  RecommendationRole = "ingredient"
	RoleAlternative RecommendationRole = "alternative"
	RoleCombo       RecommendationRole = "combo"
	RoleStep        RecommendationRole = "step"
)

func (r RecommendationRole) Valid() bool {
	switch r {
	case RoleRecommended, RoleIngredient, RoleAlternative, RoleCombo, RoleStep:
		return true
	}
	return false
}

type ProductRecommendation struct {
	ProductID string             `json:"productId"`
	Role      RecommendationRole `json:"role"`
	StepOrder *int               `json:"stepOrder,omitempty"`
	Notes     string             `json:"notes,omitempty"`
}

// MissingProductInfo signals a catalog gap. Reason is never empty.
type MissingProductInfo struct {
	Name               string `json:"name"`
	CategorySuggestion string `json:"categorySuggestion,omitempty"`
	Reason             string `json:"reason"`
}

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Diagnostic is one actionable finding recorded while validating a generation.
type Diagnostic struct {
	Kind      ErrorKind `json:"kind"`
	Severity  Severity  `json:"severity"`
	Message   string    `json:"message"`
	ProductID string    `json:"productId,omitempty"`
	Bucket    string    `json:"bucket,omitempty"`
}

// BlogGenerationResult is terminal and single-use. Exactly one of Content/Error is set.
type BlogGenerationResult struct {
	GenerationID    uuid.UUID               `json:"generationId"`
	TopicID         string                  `json:"topicId"`
	BlogType        BlogType                `json:"blogType"`
	Success         bool                    `json:"success"`
	Content         *BlogContent            `json:"content,omitempty"`
	Products        []ProductRecommendation `json:"products"`
	MissingProducts []MissingProductInfo    `json:"missingProducts"`
	Error           string                  `json:"error,omitempty"`
	ErrorKind       ErrorKind               `json:"errorKind,omitempty"`
	Diagnostics     []Diagnostic            `json:"diagnostics"`
	Attempts        int                     `json:"attempts"`
}

// Succeeded builds the success shape. Nil slices are normalised to empty ones.
func Succeeded(content BlogContent, products []ProductRecommendation, missing []MissingProductInfo, diags []Diagnostic) BlogGenerationResult {
	if products == nil {
		products = []ProductRecommendation{}
	}
	if missing == nil {
		missing = []MissingProductInfo{}
	}
	if diags == nil {
		diags = []Diagnostic{}
	}
	c := content
	return BlogGenerationResult{
		GenerationID:    uuid.New(),
		Success:         true,
		Content:         &c,
		Products:        products,
		MissingProducts: missing,
		Diagnostics:     diags,
	}
}

// Failed builds the failure shape: no content, empty product and missing lists.
func Failed(err error, diags []Diagnostic) BlogGenerationResult {
	msg := "generation failed"
	if err != nil {
		msg = err.Error()
	}
	if diags == nil {
		diags = []Diagnostic{}
	}
	return BlogGenerationResult{
		GenerationID:    uuid.New(),
		Success:         false,
		Products:        []ProductRecommendation{},
		MissingProducts: []MissingProductInfo{},
		Error:           msg,
		ErrorKind:       KindOf(err),
		Diagnostics:     diags,
	}
}
