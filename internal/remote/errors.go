package remote

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"syscall"
)

// ErrorType represents the category of a REST API failure
type ErrorType int

const (
	// ErrTypeNetwork covers unreachable hosts, timeouts and non-2xx statuses
	ErrTypeNetwork ErrorType = iota
	// ErrTypeDecode indicates a 2xx response whose body is not the expected JSON
	ErrTypeDecode
	// ErrTypeValidation indicates a request rejected before any network I/O
	ErrTypeValidation
)

// NetworkErrorSubtype provides more specific network error classification.
// It is used for logs only; user-facing policy only distinguishes ErrorType.
type NetworkErrorSubtype int

const (
	NetworkErrorGeneral NetworkErrorSubtype = iota
	NetworkErrorTimeout
	NetworkErrorConnectionRefused
	NetworkErrorDNS
	NetworkErrorHostUnreachable
	NetworkErrorStatus
	NetworkErrorCanceled
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeNetwork:
		return "Network Error"
	case ErrTypeDecode:
		return "Decode Error"
	case ErrTypeValidation:
		return "Validation Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// String returns a short name for the subtype
func (st NetworkErrorSubtype) String() string {
	switch st {
	case NetworkErrorTimeout:
		return "timeout"
	case NetworkErrorConnectionRefused:
		return "connection_refused"
	case NetworkErrorDNS:
		return "dns"
	case NetworkErrorHostUnreachable:
		return "host_unreachable"
	case NetworkErrorStatus:
		return "http_status"
	case NetworkErrorCanceled:
		return "canceled"
	default:
		return "general"
	}
}

// APIError is the failure half of every Client call.
type APIError struct {
	Type           ErrorType           // Category of error
	NetworkSubtype NetworkErrorSubtype // More specific network error type
	Method         string              // HTTP method
	Path           string              // Resource path, for log context
	StatusCode     int                 // HTTP status code (if applicable)
	Message        string              // Human-readable error message
	Err            error               // Underlying error (if any)
	Retryable      bool                // Whether a GET may be retried
}

// Error implements the error interface
func (e *APIError) Error() string {
	where := e.Path
	if e.Method != "" {
		where = e.Method + " " + e.Path
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s (caused by: %v)", e.Type, where, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", e.Type, where, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *APIError) Unwrap() error {
	return e.Err
}

// classifyNetworkError maps a transport error onto a subtype.
func classifyNetworkError(err error) (NetworkErrorSubtype, bool) {
	if errors.Is(err, context.Canceled) {
		return NetworkErrorCanceled, false
	}

	if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
		return NetworkErrorTimeout, true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return NetworkErrorDNS, false
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if errors.Is(opErr.Err, syscall.ECONNREFUSED) {
			return NetworkErrorConnectionRefused, true
		}
		if errors.Is(opErr.Err, syscall.EHOSTUNREACH) || errors.Is(opErr.Err, syscall.ENETUNREACH) {
			return NetworkErrorHostUnreachable, true
		}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return classifyNetworkError(urlErr.Err)
	}

	return NetworkErrorGeneral, true
}

// NewNetworkError creates a network-level error with automatic classification
func NewNetworkError(method, path, message string, err error) *APIError {
	subtype, retryable := classifyNetworkError(err)
	return &APIError{
		Type:           ErrTypeNetwork,
		NetworkSubtype: subtype,
		Method:         method,
		Path:           path,
		Message:        message,
		Err:            err,
		Retryable:      retryable,
	}
}

// NewStatusError creates an error for a non-2xx response
func NewStatusError(method, path string, statusCode int, body string) *APIError {
	message := fmt.Sprintf("unexpected status code: %d", statusCode)
	if body != "" {
		message += ": " + body
	}
	return &APIError{
		Type:           ErrTypeNetwork,
		NetworkSubtype: NetworkErrorStatus,
		Method:         method,
		Path:           path,
		StatusCode:     statusCode,
		Message:        message,
		Retryable:      statusCode >= 500, // Server errors are retryable
	}
}

// NewDecodeError creates a decoding error
func NewDecodeError(method, path string, err error) *APIError {
	return &APIError{
		Type:    ErrTypeDecode,
		Method:  method,
		Path:    path,
		Message: "response body is not valid JSON",
		Err:     err,
	}
}

// NewValidationError creates an error for a request refused before sending
func NewValidationError(path, message string) *APIError {
	return &APIError{
		Type:    ErrTypeValidation,
		Path:    path,
		Message: message,
	}
}

func asAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}

// IsNetworkError checks if an error is a network error (including timeouts and HTTP statuses)
func IsNetworkError(err error) bool {
	apiErr, ok := asAPIError(err)
	return ok && apiErr.Type == ErrTypeNetwork
}

// IsTimeout checks if an error is a network timeout
func IsTimeout(err error) bool {
	apiErr, ok := asAPIError(err)
	return ok && apiErr.Type == ErrTypeNetwork && apiErr.NetworkSubtype == NetworkErrorTimeout
}

// IsDecodeError checks if an error is a decode error
func IsDecodeError(err error) bool {
	apiErr, ok := asAPIError(err)
	return ok && apiErr.Type == ErrTypeDecode
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	apiErr, ok := asAPIError(err)
	return ok && apiErr.Type == ErrTypeValidation
}

// IsRetryable checks if an error should be retried
func IsRetryable(err error) bool {
	apiErr, ok := asAPIError(err)
	return ok && apiErr.Retryable
}

// PathOf returns the resource path recorded on an APIError, or "".
func PathOf(err error) string {
	if apiErr, ok := asAPIError(err); ok {
		return apiErr.Path
	}
	return ""
}
