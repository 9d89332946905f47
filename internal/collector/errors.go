package collector

import (
	"errors"
	"fmt"

	"MacroLens/internal/calculator"
	"MacroLens/internal/model"
)

// ErrNotConfigured is returned when no usable API key is set. No request is made.
var ErrNotConfigured = errors.New("fred api key not configured")

// RequestError is a non-success HTTP response from the upstream API.
type RequestError struct {
	SeriesID   string
	StatusCode int
	Body       string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("fetch %s: status %d, body: %s", e.SeriesID, e.StatusCode, e.Body)
}

// DecodeError is a response body that is not the expected JSON document.
type DecodeError struct {
	SeriesID string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.SeriesID, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Reason classifies a pipeline error into one of the model.Reason* values.
func Reason(err error) string {
	if err == nil {
		return model.ReasonNone
	}
	var reqErr *RequestError
	var decErr *DecodeError
	var parseErr *calculator.ParseError
	switch {
	case errors.Is(err, ErrNotConfigured):
		return model.ReasonNotConfigured
	case errors.As(err, &reqErr):
		return model.ReasonRequest
	case errors.As(err, &decErr), errors.As(err, &parseErr):
		return model.ReasonParse
	default:
		return model.ReasonTransport
	}
}
