// Package apierror defines the JSON error envelope shared by every endpoint.
package apierror

import "time"

// CodeTokenExpired tells API clients the bearer token merely aged out, so the
// right reaction is a refresh rather than a full re-authentication.
const CodeTokenExpired = 4001

// Response is the canonical error body. ErrorCode is omitted when zero; most
// errors are fully described by their HTTP status.
type Response struct {
	ErrorMessage string `json:"errorMessage"`
	ErrorCode    int    `json:"errorCode,omitempty"`
	Timestamp    string `json:"timestamp"`
}

// New builds a Response stamped with the current UTC time.
func New(message string, code int) Response {
	return Response{
		ErrorMessage: message,
		ErrorCode:    code,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
	}
}
