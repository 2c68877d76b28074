package api

import (
	"net/http"

	"github.com/go-chi/render"
)

// Error is the JSON error envelope for every non-2xx response.
type Error struct {
	Status  int      `json:"-"`
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
}

func (e *Error) Render(_ http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.Status)
	return nil
}

func ErrBadRequest(msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: "bad_request", Message: msg}
}

func ErrValidation(msg string, fields []string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: "validation_failed", Message: msg, Fields: fields}
}

func ErrSessionNotFound() *Error {
	return &Error{Status: http.StatusNotFound, Code: "session_not_found", Message: "unknown or expired session"}
}

func ErrPayloadTooLarge(msg string) *Error {
	return &Error{Status: http.StatusRequestEntityTooLarge, Code: "payload_too_large", Message: msg}
}

func ErrUnsupportedFile(msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: "unsupported_file", Message: msg}
}

func ErrInternal(msg string) *Error {
	return &Error{Status: http.StatusInternalServerError, Code: "internal", Message: msg}
}
