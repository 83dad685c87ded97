// Package prekey manages the long-term and one-time keys a responder
// publishes.
//
// It rotates the current long-term key, assembles the bundle registered with
// the directory and, when a hello arrives, loads the matching private keys
// while retiring the one-time key it names.
package prekey
