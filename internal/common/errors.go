package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Common application errors
var (
	ErrNotFound          = errors.New("resource not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrUpstream          = errors.New("upstream vision call failed")
	ErrMalformedResponse = errors.New("no parsable JSON in model response")
	ErrInternal          = errors.New("internal error")
	ErrDatabase          = errors.New("database error")
)

// NewAppError builds an AppError with an optional cause.
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// HTTP error helpers. Handlers pass sentinel-wrapped errors here and get
// a consistent JSON error body.

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// WriteError maps err onto an HTTP status and writes a JSON error body.
func WriteError(w http.ResponseWriter, logger *slog.Logger, err error) {
	if logger == nil {
		logger = slog.Default()
	}
	status := http.StatusInternalServerError
	code := "INTERNAL"
	switch {
	case errors.Is(err, ErrInvalidInput):
		status, code = http.StatusBadRequest, "INVALID_INPUT"
	case errors.Is(err, ErrNotFound):
		status, code = http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, ErrUpstream):
		status, code = http.StatusBadGateway, "UPSTREAM"
	}
	if status >= 500 {
		logger.Error("http.request_failed", "code", code, "error", err)
	}
	WriteJSON(w, status, errorBody{Error: err.Error(), Code: code})
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func InvalidInputf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidInput)
}
