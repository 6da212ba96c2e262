package callback

import (
	"errors"
	"fmt"
)

// ErrorType classifies why a token could not be decoded
type ErrorType int

const (
	// ErrTypeInvalid means the token names a known action but its
	// parameters do not fit the shape that action requires
	ErrTypeInvalid ErrorType = iota
	// ErrTypeUnknown means the token matches no known action
	ErrTypeUnknown
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeInvalid:
		return "Invalid Callback"
	case ErrTypeUnknown:
		return "Unknown Callback"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// DecodeError is returned by Decode for any token it cannot turn into an Action.
type DecodeError struct {
	Type   ErrorType
	Tag    Tag    // Action the token claimed to be, TagUnknown if none
	Token  string // Raw token as received
	Reason string
}

// Error implements the error interface
func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: %q: %s", e.Type, e.Token, e.Reason)
}

func newInvalid(tag Tag, token, reason string) *DecodeError {
	return &DecodeError{Type: ErrTypeInvalid, Tag: tag, Token: token, Reason: reason}
}

func newUnknown(token string) *DecodeError {
	return &DecodeError{Type: ErrTypeUnknown, Tag: TagUnknown, Token: token, Reason: "no action matches token"}
}

// IsInvalid checks if an error is an invalid-callback decode error
func IsInvalid(err error) bool {
	var decErr *DecodeError
	return errors.As(err, &decErr) && decErr.Type == ErrTypeInvalid
}

// IsUnknown checks if an error is an unknown-callback decode error
func IsUnknown(err error) bool {
	var decErr *DecodeError
	return errors.As(err, &decErr) && decErr.Type == ErrTypeUnknown
}

// Encoding errors
var (
	// ErrEmptyParam is returned when an action parameter is empty
	ErrEmptyParam = errors.New("callback: empty action parameter")
	// ErrTooLong is returned when a token would exceed MaxTokenLength
	ErrTooLong = errors.New("callback: token exceeds maximum length")
	// ErrInvalidMode is returned for a SetOperationMode with an unsupported mode
	ErrInvalidMode = errors.New("callback: unsupported operation mode")
)
