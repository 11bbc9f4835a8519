package transport

import (
	"errors"
	"fmt"
	"strings"
)

// Kind is one of the error kinds the Tool Surface maps into the MCP result
// envelope, per the taxonomy fixed by the external interface contract.
type Kind string

const (
	KindNotConnected    Kind = "NotConnected"
	KindBusyError       Kind = "BusyError"
	KindTimeout         Kind = "Timeout"
	KindLinkLost        Kind = "LinkLost"
	KindInvalidArgument Kind = "InvalidArgument"
	KindMalformedPayload Kind = "MalformedPayload"
	KindNotPermitted    Kind = "NotPermitted"
	KindAdapterBusy     Kind = "AdapterBusy"
	KindNotFound        Kind = "NotFound"
	KindNotConfigured   Kind = "NotConfigured"
)

// Error is the structured error type every Transport and Session failure is
// normalized to before it reaches the Tool Surface.
type Error struct {
	Kind    Kind
	Msg     string
	Details map[string]string
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Msg == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// Is allows errors.Is to compare Errors by Kind alone, so sentinels below
// can be matched without caring about Msg/Details.
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinel errors, one per Kind, for use with errors.Is.
var (
	ErrNotConnected     = &Error{Kind: KindNotConnected}
	ErrBusy             = &Error{Kind: KindBusyError}
	ErrTimeout          = &Error{Kind: KindTimeout}
	ErrLinkLost         = &Error{Kind: KindLinkLost}
	ErrInvalidArgument  = &Error{Kind: KindInvalidArgument}
	ErrMalformedPayload = &Error{Kind: KindMalformedPayload}
	ErrNotPermitted     = &Error{Kind: KindNotPermitted}
	ErrAdapterBusy      = &Error{Kind: KindAdapterBusy}
	ErrNotFound         = &Error{Kind: KindNotFound}
	ErrNotConfigured    = &Error{Kind: KindNotConfigured}
)

// NewInvalidArgument builds an InvalidArgument error carrying the offending
// field name and a human-readable reason, per the Tool Surface's argument
// validation contract.
func NewInvalidArgument(field, reason string) *Error {
	return &Error{
		Kind:    KindInvalidArgument,
		Msg:     fmt.Sprintf("%s: %s", field, reason),
		Details: map[string]string{"field": field, "reason": reason},
	}
}

// NewMalformedPayload builds a MalformedPayload error naming the
// characteristic and the length mismatch observed.
func NewMalformedPayload(uuid string, length, expected int) *Error {
	return &Error{
		Kind: KindMalformedPayload,
		Msg:  fmt.Sprintf("%s: got %d bytes, expected %d", uuid, length, expected),
		Details: map[string]string{
			"uuid":     uuid,
			"length":   fmt.Sprintf("%d", length),
			"expected": fmt.Sprintf("%d", expected),
		},
	}
}

// NewNotConfigured builds a NotConfigured error naming the configuration
// call the caller must make first.
func NewNotConfigured(required string) *Error {
	return &Error{
		Kind:    KindNotConfigured,
		Msg:     fmt.Sprintf("motion not configured: call %s first", required),
		Details: map[string]string{"required_call": required},
	}
}

// NormalizeError maps known go-ble error strings to structured *Error
// values, so an upstream library's wording never leaks to the Tool Surface
// as an opaque error.
func NormalizeError(err error) error {
	if err == nil {
		return nil
	}
	var te *Error
	if errors.As(err, &te) {
		return err
	}

	msg := err.Error()
	switch {
	case containsIgnoreCase(msg, "context deadline exceeded"), containsIgnoreCase(msg, "timeout"):
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	case containsIgnoreCase(msg, "not connected"), containsIgnoreCase(msg, "disconnected"):
		return fmt.Errorf("%w: %v", ErrNotConnected, err)
	case containsIgnoreCase(msg, "not found"):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case containsIgnoreCase(msg, "not permitted"), containsIgnoreCase(msg, "not supported"):
		return fmt.Errorf("%w: %v", ErrNotPermitted, err)
	case containsIgnoreCase(msg, "busy"):
		return fmt.Errorf("%w: %v", ErrAdapterBusy, err)
	default:
		return err
	}
}

func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// IsKind reports whether err is an *Error of the given Kind.
func IsKind(err error, kind Kind) bool {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind == kind
	}
	return false
}
