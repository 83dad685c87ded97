// Package x3dh implements the asynchronous key agreement that turns a
// responder's published keys and an initiator's identity and ephemeral keys
// into a Session.
//
// # Overview
//
// The responder publishes an identity key, a long-term key and optionally a
// one-time key. The initiator combines them with its own identity key and a
// fresh ephemeral key:
//
//	DH(IKa, LTKb) || DH(EKa, IKb) || DH(EKa, LTKb) [|| DH(EKa, OTKb)]
//
// The responder computes the same values from the other side. The
// concatenation is fed to HKDF with a zero salt and an info string binding a
// version label, the initiator's identifier and a responder marker. The
// 96-byte output is split into a session identifier, an initiator-to-responder
// key and a responder-to-initiator key. The initiator encrypts with the
// first key and the responder with the second.
//
// # Errors
//
// Every failure is an *Error. ErrMalformedKey matches empty, wrongly sized or
// unopenable keys; ErrWeakKey matches low-order points and reflected keys.
//
// # Security notes
//
// One-time keys are optional and their single use is not enforced here; the
// directory and the local prekey store retire them. All intermediate secrets
// are wiped before returning.
package x3dh
