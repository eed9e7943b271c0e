package netx

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsTransportError(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.False(t, IsTransportError(nil))
	})

	t.Run("plain error", func(t *testing.T) {
		assert.False(t, IsTransportError(errors.New("boom")))
	})

	t.Run("closed server", func(t *testing.T) {
		ts := httptest.NewServer(http.NotFoundHandler())
		ts.Close()

		_, err := http.Get(ts.URL)
		require.Error(t, err)
		assert.True(t, IsTransportError(err))
	})

	t.Run("wrapped deadline", func(t *testing.T) {
		err := fmt.Errorf("list contacts: %w", context.DeadlineExceeded)
		assert.True(t, IsTransportError(err))
		assert.True(t, IsTimeout(err))
	})

	t.Run("client timeout", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer ts.Close()

		c := &http.Client{Timeout: 20 * time.Millisecond}
		_, err := c.Get(ts.URL)
		require.Error(t, err)
		assert.True(t, IsTransportError(err))
		assert.True(t, IsTimeout(err))
	})
}
