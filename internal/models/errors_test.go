package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalysisErrorMessage(t *testing.T) {
	err := NewError(ErrFetch, "classifiers", errors.New("status 503"))
	assert.Equal(t, "[Fetch] classifiers: status 503", err.Error())

	err = NewError(ErrMissingData, "", errors.New("feeds not loaded"))
	assert.Equal(t, "[MissingData] feeds not loaded", err.Error())
}

func TestIsErrorType(t *testing.T) {
	inner := NewError(ErrSchema, "extended", errors.New("license: invalid type"))
	outer := NewError(ErrCacheRead, "data/extended_summary.json", inner)
	wrapped := fmt.Errorf("fetch feeds: %w", outer)

	assert.True(t, IsErrorType(wrapped, ErrCacheRead))
	assert.True(t, IsErrorType(wrapped, ErrSchema))
	assert.False(t, IsErrorType(wrapped, ErrFetch))
	assert.False(t, IsErrorType(errors.New("plain"), ErrFetch))
	assert.False(t, IsErrorType(nil, ErrFetch))
}

func TestErrorTypeString(t *testing.T) {
	assert.Equal(t, "CacheRead", ErrCacheRead.String())
	assert.Equal(t, "Unknown", ErrorType(99).String())
}
