package service

import (
	"errors"
	"fmt"
)

// Kind classifies a service failure for the HTTP boundary.
type Kind int

const (
	// KindInvalidInput is a client mistake; the request can be fixed and retried.
	KindInvalidInput Kind = iota + 1
	// KindUpstream is a failure of the object store, search index or model.
	KindUpstream
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindUpstream:
		return "upstream"
	default:
		return "unknown"
	}
}

var (
	ErrEmptyFilename   = errors.New("no selected file")
	ErrNotPDF          = errors.New("invalid file type, only pdf is allowed")
	ErrInvalidFilename = errors.New("invalid filename")
	ErrNoFilename      = errors.New("no filename provided")
	ErrNoPrompt        = errors.New("no prompt provided")
	ErrReaderNil       = errors.New("reader is nil")
)

// Error is the result of a failed service operation. Op names the step that
// failed and is used as the message prefix for upstream failures.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func invalid(err error) error {
	return &Error{Kind: KindInvalidInput, Err: err}
}

func upstream(op string, err error) error {
	return &Error{Kind: KindUpstream, Op: op, Err: err}
}

// KindOf returns the Kind of err, or 0 if err is not a service error.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return 0
}
