// Package encoding converts wire values to and from base58 text, the form
// the CLI prints and accepts.
package encoding

import (
	"errors"
	"strings"

	"github.com/mr-tron/base58"

	"asyncpfs/internal/domain"
)

// ErrInvalidText is returned for input that is not valid base58.
var ErrInvalidText = errors.New("encoding: invalid base58 text")

// EncodeBytes returns the base58 form of b.
func EncodeBytes(b []byte) string { return base58.Encode(b) }

// DecodeBytes parses base58 text. Surrounding whitespace is ignored.
func DecodeBytes(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ErrInvalidText
	}
	b, err := base58.Decode(s)
	if err != nil {
		return nil, ErrInvalidText
	}
	return b, nil
}

// EncodeMessage returns the base58 form of the message's binary encoding.
func EncodeMessage(m domain.EncryptedMessage) (string, error) {
	b, err := m.MarshalBinary()
	if err != nil {
		return "", err
	}
	return base58.Encode(b), nil
}

// DecodeMessage is the inverse of EncodeMessage.
func DecodeMessage(s string) (domain.EncryptedMessage, error) {
	b, err := DecodeBytes(s)
	if err != nil {
		return domain.EncryptedMessage{}, err
	}
	var m domain.EncryptedMessage
	if err := m.UnmarshalBinary(b); err != nil {
		return domain.EncryptedMessage{}, err
	}
	return m, nil
}
