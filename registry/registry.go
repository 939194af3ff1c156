package registry

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/ruteri/signature-registry/cryptoutils"
	"github.com/ruteri/signature-registry/interfaces"
)

// Registry is the in-memory state of the registry service: the password
// credential and the single registered public key.
//
// The credential is fixed at construction. The key slot is guarded by a
// RWMutex so that Register replaces it atomically with respect to Verify.
type Registry struct {
	credential *cryptoutils.Credential
	log        *slog.Logger

	mu  sync.RWMutex
	key cryptoutils.PublicKeyPEM
}

var _ interfaces.KeyRegistry = (*Registry)(nil)

// NewRegistry creates an empty registry gated by credential. It refuses a
// nil credential so that no request is ever served against an
// uninitialised password.
func NewRegistry(credential *cryptoutils.Credential, log *slog.Logger) (*Registry, error) {
	if credential == nil {
		return nil, cryptoutils.ErrCredentialNotReady
	}
	if log == nil {
		log = slog.Default()
	}
	return &Registry{credential: credential, log: log}, nil
}

// Register replaces the registered key with publicKey when password matches
// the credential. Any failure leaves the previous key in place.
//
// The key text is stored as given; malformed keys surface at Verify time.
func (r *Registry) Register(password string, publicKey cryptoutils.PublicKeyPEM) error {
	if password == "" {
		return ErrUnauthenticated
	}

	ok, err := r.credential.Verify(password)
	if err != nil {
		r.log.Error("Password comparison failed", "err", err)
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}
	if !ok {
		r.log.Warn("Rejected public key registration: invalid password")
		return ErrInvalidCredential
	}

	r.mu.Lock()
	r.key = publicKey
	r.mu.Unlock()

	if fp, err := publicKey.Fingerprint(); err == nil {
		r.log.Info("Public key registered", "fingerprint", fp)
	} else {
		r.log.Warn("Registered public key is not a valid RSA key", "err", err)
	}
	return nil
}

// Verify checks a base64 signature over message against the registered key.
//
// A signature that does not match is (false, nil). Errors wrap
// cryptoutils.ErrVerification: missing inputs, a malformed signature, no
// registered key (ErrNoRegisteredKey) or a registered key that cannot be
// parsed.
func (r *Registry) Verify(message []byte, signature string) (bool, error) {
	if err := cryptoutils.ValidateSignatureInput(message, signature); err != nil {
		return false, err
	}

	key, ok := r.RegisteredKey()
	if !ok {
		return false, ErrNoRegisteredKey
	}

	return cryptoutils.Verify(key, message, signature)
}

// RegisteredKey returns a copy of the current key and whether one is set.
func (r *Registry) RegisteredKey() (cryptoutils.PublicKeyPEM, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.key, r.key != ""
}
