package domain

import "crypto/ed25519"

// Ed25519Verifier is the default Verifier. Waves-style chains sign
// transactions with Ed25519, and the language spec requires malformed
// signatures or keys to verify false rather than error, which is exactly
// ed25519.Verify's contract (it panics only on a wrong-length public key,
// which is guarded against here).
type Ed25519Verifier struct{}

func (Ed25519Verifier) Verify(sig, msg, pk []byte) bool {
	if len(pk) != ed25519.PublicKeySize || len(sig) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pk), msg, sig)
}
