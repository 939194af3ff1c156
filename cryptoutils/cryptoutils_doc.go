// Package cryptoutils provides the cryptographic primitives of the signature
// registry.
//
// # Key Functions
//
//   - GenerateKeyPair: RSA key pair, SPKI public and PKCS#8 private PEM
//   - Sign: RSASSA-PKCS1-v1_5 over SHA-256, base64 output
//   - Verify: the matching check, returning (false, nil) on mismatch
//   - NewCredential / Credential.Verify: bcrypt password credential
//
// # Error Model
//
// Verify distinguishes a signature that does not match (a normal false
// result) from a check that could not be attempted (an error wrapping
// ErrVerification). Callers should never collapse the two: a malformed
// request and a forged signature are different conditions.
//
// Credential.Verify fails closed. An uninitialised credential returns
// ErrCredentialNotReady and never a match.
package cryptoutils
