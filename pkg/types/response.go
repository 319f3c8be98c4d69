// Package types holds the wire envelopes shared by every API surface.
package types

// SuccessEnvelope wraps all 2xx JSON payloads under "data".
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the client-visible error body. Details carry field
// level validation messages when the code allows them.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps all error JSON payloads under "error".
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
