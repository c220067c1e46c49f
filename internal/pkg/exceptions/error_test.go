package exceptions

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsRetryable(t *testing.T) {
	t.Run("retryable provider errors are detected", func(t *testing.T) {
		err := ErrWorkingHoursProvider(errors.New("connection refused"))
		assert.True(t, IsRetryable(err))
	})

	t.Run("wrapped retryable errors are still detected", func(t *testing.T) {
		err := fmt.Errorf("fetching schedule: %w", ErrBookingLookup(errors.New("timeout")))
		assert.True(t, IsRetryable(err))
	})

	t.Run("validation errors are not retryable", func(t *testing.T) {
		assert.False(t, IsRetryable(ErrInvalidDate(errors.New("bad date"))))
	})

	t.Run("plain errors are not retryable", func(t *testing.T) {
		assert.False(t, IsRetryable(errors.New("boom")))
	})
}
