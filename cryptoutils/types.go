package cryptoutils

import (
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/hex"
	"encoding/pem"
	"fmt"
)

// PEM block types produced by GenerateKeyPair. Parsing also accepts the
// PKCS#1 variants.
const (
	PublicKeyBlockType     = "PUBLIC KEY"
	PrivateKeyBlockType    = "PRIVATE KEY"
	RSAPublicKeyBlockType  = "RSA PUBLIC KEY"
	RSAPrivateKeyBlockType = "RSA PRIVATE KEY"
)

// PublicKeyPEM is an RSA public key in PEM text form, either SPKI
// ("PUBLIC KEY") or PKCS#1 ("RSA PUBLIC KEY").
type PublicKeyPEM string

// NewPublicKeyPEM creates a public key value from PEM data with validation.
func NewPublicKeyPEM(data []byte) (PublicKeyPEM, error) {
	pub := PublicKeyPEM(data)
	if _, err := pub.RSAPublicKey(); err != nil {
		return "", err
	}
	return pub, nil
}

// Validate checks that the key decodes to an RSA public key.
func (pub PublicKeyPEM) Validate() error {
	_, err := pub.RSAPublicKey()
	return err
}

// RSAPublicKey returns the parsed RSA public key.
func (pub PublicKeyPEM) RSAPublicKey() (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(pub))
	if block == nil {
		return nil, fmt.Errorf("%w: not in PEM format", ErrInvalidKey)
	}

	switch block.Type {
	case PublicKeyBlockType:
		key, err := x509.ParsePKIXPublicKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidKey, err)
		}
		rsaKey, ok := key.(*rsa.PublicKey)
		if !ok {
			return nil, fmt.Errorf("%w: unsupported public key type %T", ErrInvalidKey, key)
		}
		return rsaKey, nil
	case RSAPublicKeyBlockType:
		key, err := x509.ParsePKCS1PublicKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidKey, err)
		}
		return key, nil
	default:
		return nil, fmt.Errorf("%w: unexpected PEM block %q", ErrInvalidKey, block.Type)
	}
}

// Fingerprint returns a short hex fingerprint of the key for logs and
// display: the first 10 bytes of SHA-256 over the SPKI DER encoding.
func (pub PublicKeyPEM) Fingerprint() (string, error) {
	key, err := pub.RSAPublicKey()
	if err != nil {
		return "", err
	}
	der, err := x509.MarshalPKIXPublicKey(key)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}
	sum := sha256.Sum256(der)
	return hex.EncodeToString(sum[:10]), nil
}

// PrivateKeyPEM is an RSA private key in PEM text form, either PKCS#8
// ("PRIVATE KEY") or PKCS#1 ("RSA PRIVATE KEY").
type PrivateKeyPEM string

// NewPrivateKeyPEM creates a private key value from PEM data with validation.
func NewPrivateKeyPEM(data []byte) (PrivateKeyPEM, error) {
	priv := PrivateKeyPEM(data)
	if _, err := priv.RSAPrivateKey(); err != nil {
		return "", err
	}
	return priv, nil
}

// Validate checks that the key decodes to an RSA private key.
func (priv PrivateKeyPEM) Validate() error {
	_, err := priv.RSAPrivateKey()
	return err
}

// RSAPrivateKey returns the parsed RSA private key.
func (priv PrivateKeyPEM) RSAPrivateKey() (*rsa.PrivateKey, error) {
	block, _ := pem.Decode([]byte(priv))
	if block == nil {
		return nil, fmt.Errorf("%w: not in PEM format", ErrInvalidKey)
	}

	switch block.Type {
	case PrivateKeyBlockType:
		key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidKey, err)
		}
		rsaKey, ok := key.(*rsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("%w: unsupported private key type %T", ErrInvalidKey, key)
		}
		return rsaKey, nil
	case RSAPrivateKeyBlockType:
		key, err := x509.ParsePKCS1PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidKey, err)
		}
		return key, nil
	default:
		return nil, fmt.Errorf("%w: unexpected PEM block %q", ErrInvalidKey, block.Type)
	}
}

// PublicKey derives the SPKI PEM public half of the private key.
func (priv PrivateKeyPEM) PublicKey() (PublicKeyPEM, error) {
	key, err := priv.RSAPrivateKey()
	if err != nil {
		return "", err
	}
	return encodePublicKey(&key.PublicKey)
}

// KeyPair holds both halves of an RSA key in PEM text form.
type KeyPair struct {
	PublicKey  PublicKeyPEM
	PrivateKey PrivateKeyPEM
}

func encodePublicKey(key *rsa.PublicKey) (PublicKeyPEM, error) {
	der, err := x509.MarshalPKIXPublicKey(key)
	if err != nil {
		return "", err
	}
	return PublicKeyPEM(pem.EncodeToMemory(&pem.Block{Type: PublicKeyBlockType, Bytes: der})), nil
}
