package types

import (
	"encoding/binary"
	"errors"
)

// messageFormatVersion is the leading byte of an encoded EncryptedMessage.
const messageFormatVersion = 0x01

// ErrMalformedMessage is returned when an encoded message cannot be parsed.
var ErrMalformedMessage = errors.New("types: malformed encrypted message")

// EncryptedMessage is one sealed message bound to a session.
type EncryptedMessage struct {
	SessionIdentifier []byte `json:"session_identifier"`
	Salt              []byte `json:"salt"`
	CipherText        []byte `json:"cipher_text"`
}

// MarshalBinary encodes the message as a version byte followed by three
// uvarint length-prefixed fields.
func (m EncryptedMessage) MarshalBinary() ([]byte, error) {
	n := 1 + 3*binary.MaxVarintLen64 + len(m.SessionIdentifier) + len(m.Salt) + len(m.CipherText)
	out := make([]byte, 0, n)
	out = append(out, messageFormatVersion)
	for _, f := range [][]byte{m.SessionIdentifier, m.Salt, m.CipherText} {
		out = binary.AppendUvarint(out, uint64(len(f)))
		out = append(out, f...)
	}
	return out, nil
}

// UnmarshalBinary is the inverse of MarshalBinary. Truncated input, trailing
// bytes and unknown versions are rejected with ErrMalformedMessage.
func (m *EncryptedMessage) UnmarshalBinary(data []byte) error {
	if len(data) == 0 || data[0] != messageFormatVersion {
		return ErrMalformedMessage
	}
	rest := data[1:]
	fields := make([][]byte, 3)
	for i := range fields {
		l, n := binary.Uvarint(rest)
		if n <= 0 {
			return ErrMalformedMessage
		}
		rest = rest[n:]
		if l > uint64(len(rest)) {
			return ErrMalformedMessage
		}
		fields[i] = clone(rest[:l])
		rest = rest[l:]
	}
	if len(rest) != 0 {
		return ErrMalformedMessage
	}
	m.SessionIdentifier, m.Salt, m.CipherText = fields[0], fields[1], fields[2]
	return nil
}

// InitiatorHello tells a responder which of its keys an initiator used.
// An empty OneTimeKeyID means the agreement ran without a one-time key.
type InitiatorHello struct {
	Responder     Username            `json:"responder"`
	Info          InitiatorPublicInfo `json:"info"`
	LongTermKeyID LongTermKeyID       `json:"long_term_key_id"`
	OneTimeKeyID  OneTimeKeyID        `json:"one_time_key_id,omitempty"`
}
