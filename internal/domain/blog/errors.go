package blog

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindBackendUnavailable    ErrorKind = "BackendUnavailable"
	KindEmptyCompletion       ErrorKind = "EmptyCompletion"
	KindMalformedResponse     ErrorKind = "MalformedResponse"
	KindInvalidRecommendation ErrorKind = "InvalidRecommendation"
	KindInsufficientContent   ErrorKind = "InsufficientContent"
	KindUnknownBlogType       ErrorKind = "UnknownBlogType"
	KindInvalidInput          ErrorKind = "InvalidInput"
	KindCancelled             ErrorKind = "Cancelled"
	KindMissingBucket         ErrorKind = "MissingBucket"
	KindInvalidMissingProduct ErrorKind = "InvalidMissingProduct"
	KindInvalidInternalLink   ErrorKind = "InvalidInternalLink"
	KindWordCount             ErrorKind = "WordCount"
	KindInternal              ErrorKind = "Internal"
)

// Retryable reports whether a failure of this kind is worth another backend attempt.
func (k ErrorKind) Retryable() bool {
	return k == KindBackendUnavailable || k == KindEmptyCompletion
}

var (
	ErrUnknownBlogType = errors.New("unknown blog type")
	ErrNoContent       = errors.New("No content generated")
)

// GenerationError carries a taxonomy kind alongside the underlying cause.
type GenerationError struct {
	Kind   ErrorKind
	Detail string
	Err    error
}

func (e *GenerationError) Error() string {
	if e == nil {
		return ""
	}
	switch {
	case e.Detail != "" && e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Detail, e.Err)
	case e.Detail != "":
		return e.Detail
	case e.Err != nil:
		return e.Err.Error()
	}
	return string(e.Kind)
}

func (e *GenerationError) Unwrap() error { return e.Err }

func NewError(kind ErrorKind, detail string, err error) *GenerationError {
	return &GenerationError{Kind: kind, Detail: detail, Err: err}
}

// KindOf extracts the taxonomy kind of err; unknown errors are Internal.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var ge *GenerationError
	if errors.As(err, &ge) && ge.Kind != "" {
		return ge.Kind
	}
	if errors.Is(err, ErrUnknownBlogType) {
		return KindUnknownBlogType
	}
	return KindInternal
}
