package types

// Identity holds the local long-term X25519 identity key pair.
type Identity struct {
	Public  X25519Public  `json:"pub"`
	Private X25519Private `json:"priv"`
}

// PrivateKey returns the private half as agreement key material.
func (id Identity) PrivateKey() PrivateKey { return PrivateKeyFromX25519(id.Private) }

// PublicKey returns the public half as agreement key material.
func (id Identity) PublicKey() PublicKey { return PublicKeyFromX25519(id.Public) }
