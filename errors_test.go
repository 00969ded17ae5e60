package assistant

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestErrorCategories(t *testing.T) {
	t.Run("transient", func(t *testing.T) {
		err := NewTransientError("rate limited", 429, nil)
		assert.Equal(t, ErrorTransient, err.Category())
		assert.True(t, err.Retryable())
		assert.Equal(t, 429, err.StatusCode())
	})

	t.Run("transient with retry delay", func(t *testing.T) {
		err := NewTransientErrorWithRetry("overloaded", 529, 30*time.Second, nil)
		assert.Equal(t, 30*time.Second, err.RetryAfter())
	})

	t.Run("permanent", func(t *testing.T) {
		err := NewPermanentError("invalid API key", 401, nil)
		assert.Equal(t, ErrorPermanent, err.Category())
		assert.False(t, err.Retryable())
	})

	t.Run("user input", func(t *testing.T) {
		err := NewUserInputError("bad request", 400, nil)
		assert.Equal(t, ErrorUserInput, err.Category())
		assert.False(t, err.Retryable())
	})
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewTransientError("request failed", 0, cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "request failed")
	assert.Contains(t, err.Error(), "connection reset")
}

func TestCategoryHelpers(t *testing.T) {
	transient := NewTransientErrorWithRetry("rate limited", 429, 5*time.Second, nil)
	permanent := NewPermanentError("forbidden", 403, nil)

	assert.True(t, IsTransient(transient))
	assert.False(t, IsTransient(permanent))
	assert.True(t, IsPermanent(permanent))
	assert.False(t, IsPermanent(transient))
	assert.Equal(t, 429, StatusCodeOf(transient))
	assert.Equal(t, 5*time.Second, RetryAfterOf(transient))

	t.Run("wrapped errors are unwrapped", func(t *testing.T) {
		wrapped := fmt.Errorf("chat: %w", transient)
		assert.True(t, IsTransient(wrapped))
		assert.Equal(t, 429, StatusCodeOf(wrapped))
	})

	t.Run("plain errors are uncategorized", func(t *testing.T) {
		plain := errors.New("boom")
		assert.False(t, IsTransient(plain))
		assert.False(t, IsPermanent(plain))
		assert.Equal(t, 0, StatusCodeOf(plain))
		assert.Equal(t, time.Duration(0), RetryAfterOf(plain))
	})
}
