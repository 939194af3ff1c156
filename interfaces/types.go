package interfaces

import "github.com/ruteri/signature-registry/cryptoutils"

// SignatureRequest is a message together with its base64 signature. It is
// built per verification call and never persisted.
type SignatureRequest struct {
	Message   string `json:"message"`
	Signature string `json:"signature"`
}

// Registration is the body of a public key submission.
type Registration struct {
	PublicKey cryptoutils.PublicKeyPEM `json:"publicKey"`
}

// VerificationResult is the outcome of a completed verification.
type VerificationResult struct {
	Valid bool `json:"valid"`
}
