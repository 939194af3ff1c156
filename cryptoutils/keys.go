package cryptoutils

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
)

const (
	// DefaultKeyBits is the modulus length used when none is requested.
	DefaultKeyBits = 2048

	// MinKeyBits is the smallest modulus GenerateKeyPair accepts.
	MinKeyBits = 2048
)

// GenerateKeyPair creates a fresh RSA key pair with the given modulus
// length. A zero bits value selects DefaultKeyBits. The public half is
// encoded as SPKI PEM and the private half as PKCS#8 PEM.
func GenerateKeyPair(bits int) (*KeyPair, error) {
	if bits == 0 {
		bits = DefaultKeyBits
	}
	if bits < MinKeyBits {
		return nil, fmt.Errorf("%w: %w: %d < %d bits", ErrGeneration, ErrWeakKey, bits, MinKeyBits)
	}

	privateKey, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGeneration, err)
	}

	privateKeyBytes, err := x509.MarshalPKCS8PrivateKey(privateKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGeneration, err)
	}
	privateKeyPEM := pem.EncodeToMemory(&pem.Block{
		Type:  PrivateKeyBlockType,
		Bytes: privateKeyBytes,
	})

	publicKeyPEM, err := encodePublicKey(&privateKey.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGeneration, err)
	}

	return &KeyPair{
		PublicKey:  publicKeyPEM,
		PrivateKey: PrivateKeyPEM(privateKeyPEM),
	}, nil
}
