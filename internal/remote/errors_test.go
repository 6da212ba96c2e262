package remote

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"syscall"
	"testing"
)

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

func TestNewNetworkError_Classification(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		wantSubtype   NetworkErrorSubtype
		wantRetryable bool
	}{
		{
			name:          "timeout",
			err:           &url.Error{Op: "Get", URL: "http://x", Err: &net.OpError{Op: "dial", Net: "tcp", Err: timeoutError{}}},
			wantSubtype:   NetworkErrorTimeout,
			wantRetryable: true,
		},
		{
			name:          "deadline exceeded",
			err:           fmt.Errorf("wrapped: %w", context.DeadlineExceeded),
			wantSubtype:   NetworkErrorTimeout,
			wantRetryable: true,
		},
		{
			name:          "connection refused",
			err:           &url.Error{Op: "Get", URL: "http://x", Err: &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}},
			wantSubtype:   NetworkErrorConnectionRefused,
			wantRetryable: true,
		},
		{
			name:          "dns",
			err:           &net.DNSError{Err: "no such host", Name: "api.invalid", IsNotFound: true},
			wantSubtype:   NetworkErrorDNS,
			wantRetryable: false,
		},
		{
			name:          "canceled",
			err:           context.Canceled,
			wantSubtype:   NetworkErrorCanceled,
			wantRetryable: false,
		},
		{
			name:          "generic",
			err:           errors.New("something odd"),
			wantSubtype:   NetworkErrorGeneral,
			wantRetryable: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := NewNetworkError("GET", "/api/site", "request failed", tt.err)

			if apiErr.Type != ErrTypeNetwork {
				t.Errorf("Type = %v, want %v", apiErr.Type, ErrTypeNetwork)
			}
			if apiErr.NetworkSubtype != tt.wantSubtype {
				t.Errorf("NetworkSubtype = %v, want %v", apiErr.NetworkSubtype, tt.wantSubtype)
			}
			if apiErr.Retryable != tt.wantRetryable {
				t.Errorf("Retryable = %v, want %v", apiErr.Retryable, tt.wantRetryable)
			}
			if !errors.Is(apiErr, tt.err) {
				t.Error("APIError should unwrap to the cause")
			}
		})
	}
}

func TestNewStatusError(t *testing.T) {
	if !NewStatusError("GET", "/api/site", 503, "").Retryable {
		t.Error("5xx should be retryable")
	}
	if NewStatusError("GET", "/api/site", 404, "").Retryable {
		t.Error("4xx should not be retryable")
	}

	err := NewStatusError("POST", "/api/batteries/x/operation-mode", 400, "bad mode")
	if !strings.Contains(err.Error(), "POST /api/batteries/x/operation-mode") {
		t.Errorf("Error() = %s, want method and path", err.Error())
	}
	if !strings.Contains(err.Error(), "bad mode") {
		t.Errorf("Error() = %s, want body snippet", err.Error())
	}
}

func TestPredicates_WrappedErrors(t *testing.T) {
	err := fmt.Errorf("handler: %w", NewDecodeError("GET", "/api/vehicle", errors.New("eof")))

	if !IsDecodeError(err) {
		t.Error("IsDecodeError should see through wrapping")
	}
	if IsNetworkError(err) {
		t.Error("decode error is not a network error")
	}
	if PathOf(err) != "/api/vehicle" {
		t.Errorf("PathOf() = %s, want /api/vehicle", PathOf(err))
	}
	if PathOf(errors.New("plain")) != "" {
		t.Error("PathOf(plain) should be empty")
	}
}

func TestErrorTypeString(t *testing.T) {
	tests := []struct {
		et   ErrorType
		want string
	}{
		{ErrTypeNetwork, "Network Error"},
		{ErrTypeDecode, "Decode Error"},
		{ErrTypeValidation, "Validation Error"},
		{ErrorType(42), "ErrorType(42)"},
	}
	for _, tt := range tests {
		if got := tt.et.String(); got != tt.want {
			t.Errorf("ErrorType(%d).String() = %s, want %s", tt.et, got, tt.want)
		}
	}
}
