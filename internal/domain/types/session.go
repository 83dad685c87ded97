package types

// Session is the result of a key agreement: an identifier shared by both
// parties, one key per direction and the associated data every message is
// authenticated with.
//
// A Session is treated as immutable; derive a new one instead of editing
// fields. The zero value is the empty session.
type Session struct {
	Identifier          []byte `json:"identifier"`
	EncryptionSecretKey []byte `json:"encryption_secret_key"`
	DecryptionSecretKey []byte `json:"decryption_secret_key"`
	AdditionalData      []byte `json:"additional_data"`
}

// NewSession copies its arguments into a new Session.
func NewSession(identifier, encryptionKey, decryptionKey, additionalData []byte) Session {
	return Session{
		Identifier:          clone(identifier),
		EncryptionSecretKey: clone(encryptionKey),
		DecryptionSecretKey: clone(decryptionKey),
		AdditionalData:      clone(additionalData),
	}
}

// IsEmpty reports whether the session is unusable.
func (s Session) IsEmpty() bool {
	return len(s.Identifier) == 0 ||
		len(s.EncryptionSecretKey) == 0 ||
		len(s.DecryptionSecretKey) == 0
}

// Clone returns a deep copy.
func (s Session) Clone() Session {
	return NewSession(s.Identifier, s.EncryptionSecretKey, s.DecryptionSecretKey, s.AdditionalData)
}

// Wipe zeroes the secret keys in place.
func (s Session) Wipe() {
	zero(s.EncryptionSecretKey)
	zero(s.DecryptionSecretKey)
}
