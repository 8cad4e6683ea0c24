package errors

import (
	stderrors "errors"
	"fmt"
)

// Error codes
const (
	CodeNotFound   = "NOT_FOUND"
	CodeRemote     = "REMOTE_ERROR"
	CodeNetwork    = "NETWORK_ERROR"
	CodeCancelled  = "CANCELLED"
	CodeValidation = "VALIDATION_ERROR"
)

// User-facing messages
const (
	MessageNotFound = "Pokémon not found. Try a name (pikachu) or numeric ID (25)."
	MessageNetwork  = "Network error. Check your connection and try again."
	MessageGeneric  = "Something went wrong"
)

type DexError struct {
	Message    string
	Code       string
	StatusCode int
	Context    map[string]any
	Cause      error
}

func (e *DexError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DexError) Unwrap() error {
	return e.Cause
}

// As lets errors.As reach the embedded *DexError of the typed wrappers below.
func (e *DexError) As(target any) bool {
	if t, ok := target.(**DexError); ok {
		*t = e
		return true
	}
	return false
}

func NewDexError(message, code string, statusCode int, context map[string]any) *DexError {
	return &DexError{
		Message:    message,
		Code:       code,
		StatusCode: statusCode,
		Context:    context,
	}
}

func (e *DexError) WithCause(cause error) *DexError {
	e.Cause = cause
	return e
}

// NotFoundError reports a 404 from the remote API.
type NotFoundError struct {
	*DexError
	Key string
}

func NewNotFoundError(key, url string) *NotFoundError {
	return &NotFoundError{
		DexError: NewDexError(MessageNotFound, CodeNotFound, 404, map[string]any{
			"key": key,
			"url": url,
		}),
		Key: key,
	}
}

// RemoteError reports any other non-2xx response, or a 2xx body that could not be decoded.
type RemoteError struct {
	*DexError
}

func NewRemoteError(statusCode int, context map[string]any, cause error) *RemoteError {
	return &RemoteError{
		DexError: NewDexError(fmt.Sprintf("PokeAPI error (%d)", statusCode), CodeRemote, statusCode, context).
			WithCause(cause),
	}
}

type NetworkError struct {
	*DexError
}

func NewNetworkError(url string, cause error) *NetworkError {
	return &NetworkError{
		DexError: NewDexError(MessageNetwork, CodeNetwork, 0, map[string]any{
			"url": url,
		}).WithCause(cause),
	}
}

// CancelledError marks a request abandoned because its context was cancelled.
// It is a control-flow signal and never shown to users.
type CancelledError struct {
	*DexError
}

func NewCancelledError(url string, cause error) *CancelledError {
	return &CancelledError{
		DexError: NewDexError("request cancelled", CodeCancelled, 0, map[string]any{
			"url": url,
		}).WithCause(cause),
	}
}

type ValidationError struct {
	*DexError
	Field string
	Value interface{}
}

func NewValidationError(message, field string, value interface{}) *ValidationError {
	return &ValidationError{
		DexError: NewDexError(message, CodeValidation, 400, map[string]any{
			"field": field,
			"value": value,
		}),
		Field: field,
		Value: value,
	}
}

func IsNotFound(err error) bool {
	var e *NotFoundError
	return stderrors.As(err, &e)
}

func IsRemote(err error) bool {
	var e *RemoteError
	return stderrors.As(err, &e)
}

func IsNetwork(err error) bool {
	var e *NetworkError
	return stderrors.As(err, &e)
}

func IsCancelled(err error) bool {
	var e *CancelledError
	return stderrors.As(err, &e)
}

func IsValidation(err error) bool {
	var e *ValidationError
	return stderrors.As(err, &e)
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var e *DexError
	if stderrors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}

// UserMessage returns the text shown to users for err. Causes are never included.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var dexErr *DexError
	if stderrors.As(err, &dexErr) && dexErr.Message != "" {
		return dexErr.Message
	}
	return MessageGeneric
}
