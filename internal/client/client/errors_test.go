package client

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"message field", `{"message":"Name is required","error":"Bad Request"}`, "Name is required"},
		{"error field", `{"error":"Forbidden"}`, "Forbidden"},
		{"blank message falls through", `{"message":"  ","error":"Conflict"}`, "Conflict"},
		{"field errors joined", `{"name":"must not be blank","address":"too long"}`, "must not be blank, too long"},
		{"nested field errors", `{"errors":{"name":"must not be blank"},"status":400}`, "must not be blank"},
		{"array values", `{"errors":["a","b"]}`, "a, b"},
		{"not an object", `["oops"]`, ""},
		{"plain text", `Internal Server Error`, ""},
		{"empty", ``, ""},
		{"broken json", `{"message":`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractMessage([]byte(tt.body)))
		})
	}
}

func TestAPIError_UnwrapsToSentinel(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{401, ErrUnauthorized},
		{403, ErrUnauthorized},
		{404, ErrNotFound},
		{400, ErrValidation},
		{422, ErrValidation},
		{503, ErrUnavailable},
		{500, ErrUnexpectedStatus},
		{409, ErrUnexpectedStatus},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.status), func(t *testing.T) {
			err := fmt.Errorf("op: %w", newAPIError(tt.status, nil))
			require.ErrorIs(t, err, tt.want)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.Status)
		})
	}
}

func TestMessageOf(t *testing.T) {
	withMsg := fmt.Errorf("create: %w", newAPIError(400, []byte(`{"message":"Bad name"}`)))
	assert.Equal(t, "Bad name", MessageOf(withMsg, "fallback"))

	noMsg := fmt.Errorf("create: %w", newAPIError(500, []byte(`oops`)))
	assert.Equal(t, "fallback", MessageOf(noMsg, "fallback"))

	assert.Equal(t, "fallback", MessageOf(errors.New("dial tcp"), "fallback"))
}
