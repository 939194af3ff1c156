package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ruteri/signature-registry/api"
	"github.com/ruteri/signature-registry/cryptoutils"
	"github.com/stretchr/testify/mock"
)

// RegistryClient implements api.RegistryProvider over HTTP.
type RegistryClient struct {
	// ServerAddr is the base URL of the registry service
	ServerAddr string

	// HTTP is the client used for requests; http.DefaultClient when nil
	HTTP *http.Client
}

var _ api.RegistryProvider = (*RegistryClient)(nil)

// NewRegistryClient returns a client for the registry at serverAddr.
func NewRegistryClient(serverAddr string) *RegistryClient {
	return &RegistryClient{
		ServerAddr: strings.TrimRight(serverAddr, "/"),
		HTTP:       http.DefaultClient,
	}
}

// SubmitPublicKey registers publicKey with the registry, proving knowledge
// of the service password via the Authorization header.
func (c *RegistryClient) SubmitPublicKey(ctx context.Context, password string, publicKey cryptoutils.PublicKeyPEM) error {
	body, err := json.Marshal(api.RegisterRequest{PublicKey: publicKey})
	if err != nil {
		return fmt.Errorf("could not encode registration: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.ServerAddr+api.SubmitPublicKeyPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("could not initialize request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", api.PasswordAuthorization(password))

	resp, err := c.client().Do(req)
	if err != nil {
		return fmt.Errorf("could not request registration endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return responseError(resp)
	}
	return nil
}

// VerifyMessage asks the registry to check signature over message against
// the registered key. A signature that does not match is a non-nil
// response with Valid false, not an error.
func (c *RegistryClient) VerifyMessage(ctx context.Context, message string, signature string) (*api.VerifyResponse, error) {
	body, err := json.Marshal(api.VerifyRequest{Message: message, Signature: signature})
	if err != nil {
		return nil, fmt.Errorf("could not encode verification request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.ServerAddr+api.VerifyMessagePath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("could not initialize request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client().Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not request verification endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, responseError(resp)
	}

	var parsedResponse api.VerifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsedResponse); err != nil {
		return nil, fmt.Errorf("could not parse verification response: %w", err)
	}
	return &parsedResponse, nil
}

func (c *RegistryClient) client() *http.Client {
	if c.HTTP == nil {
		return http.DefaultClient
	}
	return c.HTTP
}

// responseError turns a non-200 response into an *api.RequestError carrying
// the server's message verbatim.
func responseError(resp *http.Response) error {
	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, api.MaxBodySize))
	if err != nil || len(bytes.TrimSpace(bodyBytes)) == 0 {
		return &api.RequestError{StatusCode: resp.StatusCode, Err: errors.New(http.StatusText(resp.StatusCode))}
	}
	return &api.RequestError{StatusCode: resp.StatusCode, Err: errors.New(strings.TrimSpace(string(bodyBytes)))}
}

// MockRegistryProvider implements a mock api.RegistryProvider for testing.
type MockRegistryProvider struct {
	mock.Mock
}

var _ api.RegistryProvider = (*MockRegistryProvider)(nil)

// SubmitPublicKey implements the RegistryProvider interface for testing.
func (m *MockRegistryProvider) SubmitPublicKey(ctx context.Context, password string, publicKey cryptoutils.PublicKeyPEM) error {
	args := m.Called(ctx, password, publicKey)
	return args.Error(0)
}

// VerifyMessage implements the RegistryProvider interface for testing.
func (m *MockRegistryProvider) VerifyMessage(ctx context.Context, message string, signature string) (*api.VerifyResponse, error) {
	args := m.Called(ctx, message, signature)
	resp, _ := args.Get(0).(*api.VerifyResponse)
	return resp, args.Error(1)
}
