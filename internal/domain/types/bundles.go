package types

// InitiatorPrivateInfo is the key material an initiator uses for one
// session attempt. Identifier names the initiator and is bound into the
// session key derivation, so the responder must see the same value in
// InitiatorPublicInfo.
type InitiatorPrivateInfo struct {
	Identifier          string
	IdentityPrivateKey  PrivateKey
	EphemeralPrivateKey PrivateKey
}

// Wipe zeroes the private key material.
func (i InitiatorPrivateInfo) Wipe() {
	i.IdentityPrivateKey.Wipe()
	i.EphemeralPrivateKey.Wipe()
}

// InitiatorPublicInfo is what the responder learns about the initiator.
type InitiatorPublicInfo struct {
	Identifier         string    `json:"identifier"`
	IdentityPublicKey  PublicKey `json:"identity_public_key"`
	EphemeralPublicKey PublicKey `json:"ephemeral_public_key"`
}

// ResponderPrivateInfo is the responder's key material. OneTimePrivateKey
// may be empty, in which case the agreement runs without it.
type ResponderPrivateInfo struct {
	Identifier         string
	IdentityPrivateKey PrivateKey
	LongTermPrivateKey PrivateKey
	OneTimePrivateKey  PrivateKey
}

// HasOneTimeKey reports whether a one-time key is present.
func (r ResponderPrivateInfo) HasOneTimeKey() bool { return !r.OneTimePrivateKey.IsEmpty() }

// Wipe zeroes the private key material.
func (r ResponderPrivateInfo) Wipe() {
	r.IdentityPrivateKey.Wipe()
	r.LongTermPrivateKey.Wipe()
	r.OneTimePrivateKey.Wipe()
}

// ResponderPublicInfo mirrors ResponderPrivateInfo with public keys.
// Identifier is informational (directory username) and is not mixed into
// the key derivation.
type ResponderPublicInfo struct {
	Identifier        string    `json:"identifier,omitempty"`
	IdentityPublicKey PublicKey `json:"identity_public_key"`
	LongTermPublicKey PublicKey `json:"long_term_public_key"`
	OneTimePublicKey  PublicKey `json:"one_time_public_key,omitzero"`
}

// HasOneTimeKey reports whether a one-time key is present.
func (r ResponderPublicInfo) HasOneTimeKey() bool { return !r.OneTimePublicKey.IsEmpty() }
