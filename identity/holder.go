package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ruteri/signature-registry/api"
	"github.com/ruteri/signature-registry/cryptoutils"
	"github.com/ruteri/signature-registry/interfaces"
)

// ErrEmptyMessage is returned when asked to sign an empty message.
var ErrEmptyMessage = errors.New("message is empty")

// Holder owns a key pair and talks to the registry service.
type Holder struct {
	store    interfaces.KeyStore
	registry api.RegistryProvider
	log      *slog.Logger
}

// NewHolder creates a Holder over the given key store and registry client.
func NewHolder(store interfaces.KeyStore, registry api.RegistryProvider, log *slog.Logger) *Holder {
	return &Holder{
		store:    store,
		registry: registry,
		log:      log,
	}
}

// GenerateKeys creates a new key pair of the given modulus size (0 for the
// default) and saves it, replacing any previous pair.
func (h *Holder) GenerateKeys(bits int) (*cryptoutils.KeyPair, error) {
	kp, err := cryptoutils.GenerateKeyPair(bits)
	if err != nil {
		return nil, err
	}

	if err := h.store.SaveKeyPair(kp); err != nil {
		return nil, fmt.Errorf("could not store key pair: %w", err)
	}

	fingerprint, err := kp.PublicKey.Fingerprint()
	if err == nil {
		h.log.Debug("Generated key pair", slog.String("fingerprint", fingerprint))
	}

	return kp, nil
}

// SubmitPublicKey sends the stored public key to the registry using
// password as proof of authorization.
func (h *Holder) SubmitPublicKey(ctx context.Context, password string) error {
	publicKey, err := h.store.LoadPublicKey()
	if err != nil {
		return fmt.Errorf("could not load public key: %w", err)
	}

	if err := h.registry.SubmitPublicKey(ctx, password, publicKey); err != nil {
		return fmt.Errorf("could not submit public key: %w", err)
	}

	h.log.Debug("Submitted public key")
	return nil
}

// SignMessage signs message with the stored private key.
func (h *Holder) SignMessage(message string) (*interfaces.SignatureRequest, error) {
	if message == "" {
		return nil, fmt.Errorf("%w: %w", cryptoutils.ErrSigning, ErrEmptyMessage)
	}

	privateKey, err := h.store.LoadPrivateKey()
	if err != nil {
		return nil, fmt.Errorf("could not load private key: %w", err)
	}

	signature, err := cryptoutils.Sign(privateKey, []byte(message))
	if err != nil {
		return nil, err
	}

	return &interfaces.SignatureRequest{Message: message, Signature: signature}, nil
}

// VerifyMessage asks the registry whether signature is a valid signature
// over message under the registered key.
func (h *Holder) VerifyMessage(ctx context.Context, message string, signature string) (*api.VerifyResponse, error) {
	resp, err := h.registry.VerifyMessage(ctx, message, signature)
	if err != nil {
		return nil, fmt.Errorf("could not verify message: %w", err)
	}
	return resp, nil
}
