package x3dh

import (
	"errors"
	"fmt"
)

// Kind classifies key agreement failures.
type Kind int

const (
	// MalformedKey means a required key is empty, has the wrong length or
	// cannot be opened with its password.
	MalformedKey Kind = iota + 1
	// WeakKey means a Diffie-Hellman step produced a known-invalid result or
	// a peer key reflected our own.
	WeakKey
)

func (k Kind) String() string {
	switch k {
	case MalformedKey:
		return "malformed key"
	case WeakKey:
		return "weak key"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

var (
	// ErrMalformedKey matches any *Error of kind MalformedKey.
	ErrMalformedKey = errors.New("x3dh: malformed key")
	// ErrWeakKey matches any *Error of kind WeakKey.
	ErrWeakKey = errors.New("x3dh: weak key")
)

// Error is returned by InitiatorSession and ResponderSession. Key names the
// offending input, e.g. "responder long-term".
type Error struct {
	Kind Kind
	Key  string
	Err  error
}

func (e *Error) Error() string {
	msg := "x3dh: " + e.Kind.String()
	if e.Key != "" {
		msg += " (" + e.Key + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrMalformedKey:
		return e.Kind == MalformedKey
	case ErrWeakKey:
		return e.Kind == WeakKey
	}
	return false
}

func (e *Error) Unwrap() error { return e.Err }

func malformed(key string, err error) error {
	return &Error{Kind: MalformedKey, Key: key, Err: err}
}

func weak(key string, err error) error {
	return &Error{Kind: WeakKey, Key: key, Err: err}
}
