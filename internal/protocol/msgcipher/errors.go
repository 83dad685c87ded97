package msgcipher

import (
	"errors"
	"fmt"
)

// Kind classifies message cipher failures.
type Kind int

const (
	// NoSession means there is no usable session to encrypt with.
	NoSession Kind = iota + 1
	// SessionMismatch means the message is bound to another session.
	SessionMismatch
	// AuthenticationFailed covers every failure after the session check.
	AuthenticationFailed
)

func (k Kind) String() string {
	switch k {
	case NoSession:
		return "no session"
	case SessionMismatch:
		return "session mismatch"
	case AuthenticationFailed:
		return "authentication failed"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

var (
	// ErrNoSession matches any *Error of kind NoSession.
	ErrNoSession = errors.New("msgcipher: no session")
	// ErrSessionMismatch matches any *Error of kind SessionMismatch.
	ErrSessionMismatch = errors.New("msgcipher: session mismatch")
	// ErrAuthenticationFailed matches any *Error of kind AuthenticationFailed.
	ErrAuthenticationFailed = errors.New("msgcipher: authentication failed")
)

// Error is returned by Encrypt and Decrypt. It never carries the underlying
// AEAD or KDF error.
type Error struct {
	Kind Kind
}

func (e *Error) Error() string { return "msgcipher: " + e.Kind.String() }

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrNoSession:
		return e.Kind == NoSession
	case ErrSessionMismatch:
		return e.Kind == SessionMismatch
	case ErrAuthenticationFailed:
		return e.Kind == AuthenticationFailed
	}
	return false
}

// KindOf returns the Kind of err, or zero if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
