// Package httpapi renders the JSON envelopes shared by the API controllers.
package httpapi

import (
	"encoding/json"
	"net/http"
)

// ErrorEnvelope is the shape of every error response: a stable machine code,
// a human-readable message and optional metadata such as field names or a
// request id.
type ErrorEnvelope struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Meta    map[string]string `json:"meta,omitempty"`
}

// WriteJSON writes payload with the JSON content type. A nil payload sends
// the status line only.
func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	if w == nil {
		return nil
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(payload)
}

// WriteError wraps code and message in an ErrorEnvelope.
func WriteError(w http.ResponseWriter, status int, code, message string, meta map[string]string) error {
	return WriteJSON(w, status, &ErrorEnvelope{
		Code:    code,
		Message: message,
		Meta:    meta,
	})
}
