package cryptoutils

import "errors"

var (
	// ErrGeneration is returned when a key pair cannot be produced.
	ErrGeneration = errors.New("key generation failed")

	// ErrSigning is returned when a message cannot be signed, usually
	// because the private key material is malformed.
	ErrSigning = errors.New("signing failed")

	// ErrVerification is returned when a verification could not be
	// attempted at all. A signature that simply does not match is not an
	// error.
	ErrVerification = errors.New("verification failed")

	// ErrMissingInput is wrapped by ErrVerification when the message or
	// signature is empty.
	ErrMissingInput = errors.New("message or signature missing")

	// ErrMalformedSignature is wrapped by ErrVerification when the
	// signature is not valid base64.
	ErrMalformedSignature = errors.New("malformed signature encoding")

	// ErrInvalidKey is returned when PEM key material cannot be decoded
	// into an RSA key.
	ErrInvalidKey = errors.New("invalid RSA key material")

	// ErrWeakKey is returned when a requested modulus is below MinKeyBits.
	ErrWeakKey = errors.New("RSA modulus too small")

	// ErrCredentialNotReady is returned when a password is checked against a
	// credential that was never initialised.
	ErrCredentialNotReady = errors.New("credential not initialised")

	// ErrCredentialCheck is returned when the password hash comparison
	// itself fails for a reason other than a mismatch.
	ErrCredentialCheck = errors.New("credential comparison failed")

	// ErrEmptyPassword is returned when a credential is created from an
	// empty password.
	ErrEmptyPassword = errors.New("password must not be empty")
)
