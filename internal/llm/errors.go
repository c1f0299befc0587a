package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net"

	"github.com/joestump/pagegen/internal/errcode"
)

// transportError classifies a failed round trip.
func transportError(provider string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return errcode.Wrap(errcode.APITimeout, err, "%s request timed out", provider)
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return errcode.Wrap(errcode.APITimeout, err, "%s request timed out", provider)
	}
	return errcode.Wrap(errcode.APIError, err, "%s request failed", provider)
}

// apiErrorBody is the error envelope shared by OpenAI-compatible and
// Anthropic responses.
type apiErrorBody struct {
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// upstreamMessage returns the message of an error object in body, if any.
func upstreamMessage(body []byte) (string, bool) {
	var e apiErrorBody
	if err := json.Unmarshal(body, &e); err != nil || e.Error == nil {
		return "", false
	}
	if e.Error.Message == "" {
		return e.Error.Type, true
	}
	return e.Error.Message, true
}

// statusError builds the api_error for a non-200 response.
func statusError(provider string, status int, body []byte) error {
	e := errcode.New(errcode.APIError, "%s API returned %d", provider, status)
	if msg, ok := upstreamMessage(body); ok {
		e.Message += ": " + msg
	}
	e.Status = status
	return e
}
