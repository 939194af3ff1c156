package cryptoutils

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost matches the cost factor the registry has always used.
const DefaultBcryptCost = 10

// Credential is a bcrypt hash of the shared registration password. It is
// created once at startup and never changes.
type Credential struct {
	hash []byte
}

// NewCredential hashes password with the given bcrypt cost. A zero cost
// selects DefaultBcryptCost.
func NewCredential(password string, cost int) (*Credential, error) {
	if password == "" {
		return nil, ErrEmptyPassword
	}
	if cost == 0 {
		cost = DefaultBcryptCost
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, fmt.Errorf("could not hash password: %w", err)
	}
	return &Credential{hash: hash}, nil
}

// Cost returns the bcrypt cost factor of the stored hash.
func (c *Credential) Cost() (int, error) {
	if c == nil || len(c.hash) == 0 {
		return 0, ErrCredentialNotReady
	}
	return bcrypt.Cost(c.hash)
}

// Verify reports whether password matches the credential. A mismatch is
// (false, nil). An uninitialised credential or a failing comparison is an
// error, never a match.
func (c *Credential) Verify(password string) (bool, error) {
	if c == nil || len(c.hash) == 0 {
		return false, ErrCredentialNotReady
	}

	err := bcrypt.CompareHashAndPassword(c.hash, []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword),
		errors.Is(err, bcrypt.ErrPasswordTooLong):
		// bcrypt only looks at 72 bytes; anything longer can't be ours.
		return false, nil
	default:
		return false, fmt.Errorf("%w: %w", ErrCredentialCheck, err)
	}
}
