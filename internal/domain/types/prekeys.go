package types

// LongTermKeyPair is the full long-term key stored locally.
type LongTermKeyPair struct {
	ID      LongTermKeyID `json:"id"`
	Private X25519Private `json:"priv"`
	Public  X25519Public  `json:"pub"`
	Created int64         `json:"created"`
}

// OneTimeKeyPair is the full one-time key stored locally.
type OneTimeKeyPair struct {
	ID      OneTimeKeyID  `json:"id"`
	Private X25519Private `json:"priv"`
	Public  X25519Public  `json:"pub"`
}

// OneTimePublicKey is only the public half, as sent to the directory.
type OneTimePublicKey struct {
	ID  OneTimeKeyID `json:"id"`
	Key PublicKey    `json:"key"`
}

// ResponderBundle is what a responder registers with the directory.
// Info carries no one-time key; those travel in OneTimeKeys.
type ResponderBundle struct {
	Username      Username            `json:"username"`
	Info          ResponderPublicInfo `json:"info"`
	LongTermKeyID LongTermKeyID       `json:"long_term_key_id"`
	OneTimeKeys   []OneTimePublicKey  `json:"one_time_keys,omitempty"`
}

// PublishedBundle is what the directory hands out for one lookup. Info holds
// at most one one-time key, identified by OneTimeKeyID.
type PublishedBundle struct {
	Username      Username            `json:"username"`
	Info          ResponderPublicInfo `json:"info"`
	LongTermKeyID LongTermKeyID       `json:"long_term_key_id"`
	OneTimeKeyID  OneTimeKeyID        `json:"one_time_key_id,omitempty"`
}
