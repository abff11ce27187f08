// Package apierr carries an HTTP status and a stable error code alongside a cause, so
// request-decoding failures can travel as plain errors until the handler responds.
package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// BadRequest is the common 400 case.
func BadRequest(code string, err error) *Error {
	return New(http.StatusBadRequest, code, err)
}

// As unwraps err to an *Error; ok is false for nil or foreign errors.
func As(err error) (*Error, bool) {
	var ae *Error
	if err == nil || !errors.As(err, &ae) || ae == nil {
		return nil, false
	}
	return ae, true
}
