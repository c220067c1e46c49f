package bookings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRefreshInterval(t *testing.T) {
	t.Run("normal TTL halves", func(t *testing.T) {
		assert.Equal(t, 30*time.Second, refreshInterval(60*time.Second))
	})

	t.Run("tiny TTL is clamped to a positive interval", func(t *testing.T) {
		assert.Equal(t, time.Second, refreshInterval(0))
		assert.Equal(t, time.Second, refreshInterval(time.Second))
	})
}
