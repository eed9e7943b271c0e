package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	ErrUnavailable       = errors.New("server unavailable")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("validation failed")
	ErrUnexpectedStatus  = errors.New("unexpected status")
	ErrMalformedResponse = errors.New("malformed response")
)

// APIError is a non-success HTTP response. It unwraps to one of the sentinel
// errors above, so callers can keep using errors.Is.
type APIError struct {
	Kind    error
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s (status %d)", e.Kind, e.Message, e.Status)
	}
	return fmt.Sprintf("%s (status %d)", e.Kind, e.Status)
}

func (e *APIError) Unwrap() error { return e.Kind }

// MessageOf returns the server supplied message carried by err, or fallback
// when there is none.
func MessageOf(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

func kindForStatus(status int) error {
	switch {
	case status == 401 || status == 403:
		return ErrUnauthorized
	case status == 404:
		return ErrNotFound
	case status == 400 || status == 422:
		return ErrValidation
	case status == 502 || status == 503 || status == 504:
		return ErrUnavailable
	default:
		return ErrUnexpectedStatus
	}
}

func newAPIError(status int, body []byte) *APIError {
	return &APIError{Kind: kindForStatus(status), Status: status, Message: ExtractMessage(body)}
}

// ExtractMessage builds a human readable message from an error body.
//
// A "message" field wins, then an "error" field; otherwise every string value
// in the object (including values of nested field-error objects) is joined
// with ", " in document order. Bodies that are not JSON objects yield "".
func ExtractMessage(body []byte) string {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '{' {
		return ""
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil {
		return ""
	}
	for _, key := range []string{"message", "error"} {
		var s string
		if raw, ok := top[key]; ok && json.Unmarshal(raw, &s) == nil && strings.TrimSpace(s) != "" {
			return s
		}
	}

	values, err := orderedStrings(body)
	if err != nil {
		return ""
	}
	return strings.Join(values, ", ")
}

// orderedStrings walks a JSON document and collects string values (never
// keys) in the order they appear.
func orderedStrings(body []byte) ([]string, error) {
	type frame struct {
		object  bool
		wantKey bool
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	var (
		out   []string
		stack []frame
	)
	valueDone := func() {
		if n := len(stack); n > 0 && stack[n-1].object {
			stack[n-1].wantKey = true
		}
	}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}

		switch v := tok.(type) {
		case json.Delim:
			switch v {
			case '{':
				stack = append(stack, frame{object: true, wantKey: true})
			case '[':
				stack = append(stack, frame{})
			case '}', ']':
				stack = stack[:len(stack)-1]
				valueDone()
			}
		case string:
			if n := len(stack); n > 0 && stack[n-1].object && stack[n-1].wantKey {
				stack[n-1].wantKey = false
				continue
			}
			if strings.TrimSpace(v) != "" {
				out = append(out, v)
			}
			valueDone()
		default:
			valueDone()
		}
	}
}
