package cryptoutils

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
)

// Sign produces an RSASSA-PKCS1-v1_5 signature over the SHA-256 digest of
// message and returns it in standard base64. The result is deterministic for
// a given key and message.
func Sign(privateKey PrivateKeyPEM, message []byte) (string, error) {
	key, err := privateKey.RSAPrivateKey()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSigning, err)
	}

	digest := sha256.Sum256(message)
	sig, err := rsa.SignPKCS1v15(rand.Reader, key, crypto.SHA256, digest[:])
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSigning, err)
	}

	return base64.StdEncoding.EncodeToString(sig), nil
}

// Verify checks a base64 signature produced by Sign against publicKey.
//
// A signature that does not match the message returns (false, nil). An
// error wrapping ErrVerification is returned only when the check cannot be
// attempted: empty inputs, a signature that is not base64, or a public key
// that is not a usable RSA key.
func Verify(publicKey PublicKeyPEM, message []byte, signature string) (bool, error) {
	sig, err := decodeSignatureInput(message, signature)
	if err != nil {
		return false, err
	}

	key, err := publicKey.RSAPublicKey()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrVerification, err)
	}

	digest := sha256.Sum256(message)
	err = rsa.VerifyPKCS1v15(key, crypto.SHA256, digest[:], sig)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, rsa.ErrVerification):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %w", ErrVerification, err)
	}
}

// ValidateSignatureInput reports whether (message, signature) is a request
// Verify can attempt, independent of any key. The error wraps
// ErrVerification and either ErrMissingInput or ErrMalformedSignature.
func ValidateSignatureInput(message []byte, signature string) error {
	_, err := decodeSignatureInput(message, signature)
	return err
}

func decodeSignatureInput(message []byte, signature string) ([]byte, error) {
	if len(message) == 0 || signature == "" {
		return nil, fmt.Errorf("%w: %w", ErrVerification, ErrMissingInput)
	}

	sig, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return nil, fmt.Errorf("%w: %w: %w", ErrVerification, ErrMalformedSignature, err)
	}
	return sig, nil
}
