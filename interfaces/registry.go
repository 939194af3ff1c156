package interfaces

import "github.com/ruteri/signature-registry/cryptoutils"

// KeyRegistry holds the single registered public key of the registry
// service and checks signatures against it.
//
// Implementations must make Register atomic with respect to Verify: a
// concurrent Verify observes either the previous key or the new one.
type KeyRegistry interface {
	// Register replaces the registered key with publicKey if password
	// matches the service credential. The key text is not validated.
	Register(password string, publicKey cryptoutils.PublicKeyPEM) error

	// Verify checks signature over message against the registered key.
	// A mismatch is (false, nil); an error means the check could not be
	// attempted.
	Verify(message []byte, signature string) (bool, error)
}

// KeyStore persists the Identity Holder's key material.
type KeyStore interface {
	SaveKeyPair(kp *cryptoutils.KeyPair) error
	LoadPrivateKey() (cryptoutils.PrivateKeyPEM, error)
	LoadPublicKey() (cryptoutils.PublicKeyPEM, error)
}
