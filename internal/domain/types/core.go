package types

// Username names an account registered with the key directory.
type Username string

// String returns the string form of the username.
func (u Username) String() string { return string(u) }

// Fingerprint is a short identifier for public keys presented to users.
type Fingerprint string

// String returns the string form of the fingerprint.
func (f Fingerprint) String() string { return string(f) }

// LongTermKeyID identifies a published long-term key.
type LongTermKeyID string

// String returns the string form of the identifier.
func (id LongTermKeyID) String() string { return string(id) }

// OneTimeKeyID identifies a published one-time key.
type OneTimeKeyID string

// String returns the string form of the identifier.
func (id OneTimeKeyID) String() string { return string(id) }
