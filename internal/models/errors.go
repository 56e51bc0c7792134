package models

import (
	"errors"
	"fmt"
)

// ErrorType represents different categories of errors
type ErrorType int

const (
	ErrFetch ErrorType = iota
	ErrCacheRead
	ErrMissingData
	ErrSchema
	ErrFileOp
	ErrInvalidConfig
	ErrRender
	ErrSigning
	ErrPublish
)

// String returns the string representation of ErrorType
func (e ErrorType) String() string {
	switch e {
	case ErrFetch:
		return "Fetch"
	case ErrCacheRead:
		return "CacheRead"
	case ErrMissingData:
		return "MissingData"
	case ErrSchema:
		return "Schema"
	case ErrFileOp:
		return "FileOp"
	case ErrInvalidConfig:
		return "InvalidConfig"
	case ErrRender:
		return "Render"
	case ErrSigning:
		return "Signing"
	case ErrPublish:
		return "Publish"
	default:
		return "Unknown"
	}
}

// AnalysisError represents an error raised by one of the pipeline stages.
// Source names the feed, file or URL involved, if any.
type AnalysisError struct {
	Type   ErrorType
	Source string
	Err    error
}

// Error implements the error interface
func (e *AnalysisError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Source, e.Err)
	}
	return fmt.Sprintf("[%s] %v", e.Type, e.Err)
}

// Unwrap returns the wrapped error
func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// NewError builds an AnalysisError of the given type.
func NewError(t ErrorType, source string, err error) *AnalysisError {
	return &AnalysisError{Type: t, Source: source, Err: err}
}

// IsErrorType reports whether any AnalysisError in err's chain has type t.
func IsErrorType(err error, t ErrorType) bool {
	for err != nil {
		var ae *AnalysisError
		if !errors.As(err, &ae) {
			return false
		}
		if ae.Type == t {
			return true
		}
		err = ae.Err
	}
	return false
}
