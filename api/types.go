package api

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/ruteri/signature-registry/cryptoutils"
	"github.com/ruteri/signature-registry/interfaces"
)

// Routes served by the registry service.
const (
	SubmitPublicKeyPath = "/submit-public-key"
	VerifyMessagePath   = "/verify-message"
)

// Response bodies shared by the handler and the client.
const (
	MsgPublicKeyReceived = "Public key received"
	MsgAuthMissing       = "Authorization header missing or invalid"
	MsgInvalidPassword   = "Invalid password"
	MsgInternalError     = "Internal server error"
	MsgInvalidBody       = "Invalid request body"
	MsgInputMissing      = "Message or signature missing"
	MsgInvalidSignature  = "Signature is not valid base64"
	MsgVerifyError       = "Error verifying signature"
)

// MaxBodySize is the maximum accepted request body size (1MB).
const MaxBodySize = 1024 * 1024

const basicAuthPrefix = "Basic "

// ErrMalformedAuthorization is returned when the Authorization header is
// absent or is not "Basic " followed by base64 text.
var ErrMalformedAuthorization = errors.New("authorization header missing or malformed")

// RegisterRequest is the JSON body of POST /submit-public-key.
type RegisterRequest = interfaces.Registration

// VerifyRequest is the JSON body of POST /verify-message.
type VerifyRequest = interfaces.SignatureRequest

// VerifyResponse is the JSON body returned by POST /verify-message.
type VerifyResponse = interfaces.VerificationResult

// RegistryProvider is the client view of the registry service.
type RegistryProvider interface {
	// SubmitPublicKey registers publicKey using password as proof.
	SubmitPublicKey(ctx context.Context, password string, publicKey cryptoutils.PublicKeyPEM) error

	// VerifyMessage asks the service to check signature over message.
	VerifyMessage(ctx context.Context, message string, signature string) (*VerifyResponse, error)
}

// RequestError provides structured error information for HTTP responses.
// It includes both an HTTP status code and the underlying error.
type RequestError struct {
	// StatusCode is the HTTP status code returned by the server.
	StatusCode int

	// Err is the underlying error.
	Err error
}

// Error returns the status and the message from the underlying error.
func (e *RequestError) Error() string {
	return fmt.Sprintf("%d %s: %v", e.StatusCode, http.StatusText(e.StatusCode), e.Err)
}

// Unwrap returns the underlying error.
func (e *RequestError) Unwrap() error {
	return e.Err
}

// PasswordAuthorization builds the Authorization header value carrying
// password: "Basic " followed by base64 of the plaintext, with no username.
func PasswordAuthorization(password string) string {
	return basicAuthPrefix + base64.StdEncoding.EncodeToString([]byte(password))
}

// PasswordFromAuthorization extracts the password from a header built by
// PasswordAuthorization. Absent, non-Basic, non-base64 or empty values are
// rejected with ErrMalformedAuthorization.
func PasswordFromAuthorization(header string) (string, error) {
	encoded, ok := strings.CutPrefix(header, basicAuthPrefix)
	if !ok {
		return "", ErrMalformedAuthorization
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedAuthorization, err)
	}
	if len(decoded) == 0 {
		return "", ErrMalformedAuthorization
	}
	return string(decoded), nil
}
