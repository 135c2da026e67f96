package api

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Envelope status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope is the uniform response wrapper the backend returns for every
// resource. Client methods normalize every outcome, including transport
// failures, into this shape so callers never need to distinguish an exception
// from an HTTP error.
type Envelope struct {
	Status     string          `json:"status"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data,omitempty"`
	StatusCode int             `json:"status_code"`
}

// OK reports whether the envelope carries a success status.
func (e *Envelope) OK() bool {
	return e.Status == StatusSuccess
}

// NotFound reports whether the envelope carries HTTP 404. List fetches for
// categories and shelves reinterpret this as "zero items".
func (e *Envelope) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// Decode unmarshals the envelope's data into v.
func (e *Envelope) Decode(v any) error {
	if len(e.Data) == 0 {
		return fmt.Errorf("envelope has no data")
	}
	if err := json.Unmarshal(e.Data, v); err != nil {
		return fmt.Errorf("failed to decode envelope data: %w", err)
	}
	return nil
}

// MessageOr returns the envelope message, or fallback when empty.
func (e *Envelope) MessageOr(fallback string) string {
	if e.Message != "" {
		return e.Message
	}
	return fallback
}

// Success builds a success envelope around data. Used by local repositories
// that simulate the backend contract.
func Success(message string, data any) *Envelope {
	raw, err := json.Marshal(data)
	if err != nil {
		return Error("failed to encode response data", http.StatusInternalServerError)
	}
	return &Envelope{
		Status:     StatusSuccess,
		Message:    message,
		Data:       raw,
		StatusCode: http.StatusOK,
	}
}

// Error builds an error envelope.
func Error(message string, code int) *Envelope {
	return &Envelope{
		Status:     StatusError,
		Message:    message,
		StatusCode: code,
	}
}
