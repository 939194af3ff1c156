package registry

import (
	"errors"
	"fmt"

	"github.com/ruteri/signature-registry/cryptoutils"
)

var (
	// ErrAuth is the parent of all client-correctable authentication
	// failures.
	ErrAuth = errors.New("authentication failed")

	// ErrUnauthenticated is returned when no usable password was presented.
	ErrUnauthenticated = fmt.Errorf("%w: credentials missing or malformed", ErrAuth)

	// ErrInvalidCredential is returned when the password does not match.
	ErrInvalidCredential = fmt.Errorf("%w: invalid password", ErrAuth)

	// ErrInternal is returned when the credential check itself fails.
	ErrInternal = errors.New("internal registry fault")

	// ErrNoRegisteredKey is returned by Verify before any successful
	// registration. It wraps cryptoutils.ErrVerification.
	ErrNoRegisteredKey = fmt.Errorf("%w: no public key registered", cryptoutils.ErrVerification)
)
