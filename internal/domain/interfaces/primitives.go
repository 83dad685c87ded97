package interfaces

// DH is a Diffie-Hellman function over fixed-size keys.
type DH interface {
	// DH combines a local private key with a peer public key. A result that
	// is a known-weak value is an error.
	DH(priv, pub []byte) ([]byte, error)
	// PublicKey returns the public key belonging to priv.
	PublicKey(priv []byte) ([]byte, error)
	// KeySize is the length of both private and public keys.
	KeySize() int
}

// KDF expands input key material into length bytes bound to salt and info.
type KDF interface {
	Derive(ikm, salt, info []byte, length int) ([]byte, error)
}

// AEAD is a keyed authenticated cipher where the key is supplied per call.
type AEAD interface {
	Seal(key, nonce, ad, plaintext []byte) ([]byte, error)
	Open(key, nonce, ad, ciphertext []byte) ([]byte, error)
	KeySize() int
	NonceSize() int
}
