// Package msgcipher encrypts and decrypts individual messages under an
// established Session.
//
// Every message carries a fresh 32-byte random salt. The message key is
// HKDF(session key, salt, session identifier), so a leaked message key
// exposes only that message. The sender uses its encryption key and the
// receiver its decryption key; the key agreement makes those equal.
//
// There is no chaining or counter state: Encrypt and Decrypt are pure
// functions of the session and their input.
package msgcipher
