package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/ruteri/signature-registry/api"
	"github.com/ruteri/signature-registry/cryptoutils"
	"github.com/ruteri/signature-registry/metrics"
	"github.com/ruteri/signature-registry/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testPassword = "secret123"

// setupTestRouter creates a router backed by a real registry
func setupTestRouter(t *testing.T) (*chi.Mux, *registry.Registry) {
	t.Helper()

	// Create logger with no output for tests
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cred, err := cryptoutils.NewCredential(testPassword, bcrypt.MinCost)
	require.NoError(t, err)
	reg, err := registry.NewRegistry(cred, logger)
	require.NoError(t, err)

	handler := NewHandler(reg, metrics.NewMetrics("test", prometheus.NewRegistry()), logger)
	mux := chi.NewRouter()
	handler.RegisterRoutes(mux)
	return mux, reg
}

func submitKey(t *testing.T, mux http.Handler, authorization string, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, api.SubmitPublicKeyPath, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w.Result()
}

func registrationBody(t *testing.T, publicKey cryptoutils.PublicKeyPEM) string {
	t.Helper()
	b, err := json.Marshal(api.RegisterRequest{PublicKey: publicKey})
	require.NoError(t, err)
	return string(b)
}

func verifyMessage(t *testing.T, mux http.Handler, message, signature string) *http.Response {
	t.Helper()
	b, err := json.Marshal(api.VerifyRequest{Message: message, Signature: signature})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, api.VerifyMessagePath, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w.Result()
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func decodeVerify(t *testing.T, resp *http.Response) api.VerifyResponse {
	t.Helper()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var result api.VerifyResponse
	body := readBody(t, resp)
	require.NoError(t, json.Unmarshal([]byte(body), &result), body)
	return result
}

// Test the full register/sign/verify scenario over HTTP
func TestHandler_Scenario(t *testing.T) {
	mux, _ := setupTestRouter(t)

	k1, err := cryptoutils.GenerateKeyPair(cryptoutils.DefaultKeyBits)
	require.NoError(t, err)
	k2, err := cryptoutils.GenerateKeyPair(cryptoutils.DefaultKeyBits)
	require.NoError(t, err)

	resp := submitKey(t, mux, api.PasswordAuthorization(testPassword), registrationBody(t, k1.PublicKey))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, api.MsgPublicKeyReceived, readBody(t, resp))

	sig, err := cryptoutils.Sign(k1.PrivateKey, []byte("hello-world"))
	require.NoError(t, err)

	assert.True(t, decodeVerify(t, verifyMessage(t, mux, "hello-world", sig)).Valid)
	assert.False(t, decodeVerify(t, verifyMessage(t, mux, "hello-world-tampered", sig)).Valid)

	resp = submitKey(t, mux, api.PasswordAuthorization("wrong"), registrationBody(t, k2.PublicKey))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), api.MsgInvalidPassword)

	assert.True(t, decodeVerify(t, verifyMessage(t, mux, "hello-world", sig)).Valid)
}

func TestHandleSubmitPublicKey_Unauthenticated(t *testing.T) {
	mux, reg := setupTestRouter(t)
	body := `{"publicKey":"key"}`

	testCases := []struct {
		name          string
		authorization string
	}{
		{name: "Missing header", authorization: ""},
		{name: "Wrong scheme", authorization: "Bearer c2VjcmV0MTIz"},
		{name: "Not base64", authorization: "Basic %%%"},
		{name: "Empty password", authorization: "Basic "},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp := submitKey(t, mux, tc.authorization, body)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.Contains(t, readBody(t, resp), api.MsgAuthMissing)
		})
	}

	_, ok := reg.RegisteredKey()
	assert.False(t, ok)
}

func TestHandleSubmitPublicKey_InvalidBody(t *testing.T) {
	mux, reg := setupTestRouter(t)

	resp := submitKey(t, mux, api.PasswordAuthorization(testPassword), `{"publicKey":`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), api.MsgInvalidBody)

	_, ok := reg.RegisteredKey()
	assert.False(t, ok)
}

func TestHandleSubmitPublicKey_InternalError(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mockRegistry := new(registry.MockRegistry)
	mockRegistry.On("Register", testPassword, cryptoutils.PublicKeyPEM("key")).
		Return(errors.Join(registry.ErrInternal, cryptoutils.ErrCredentialCheck))

	mux := chi.NewRouter()
	NewHandler(mockRegistry, nil, logger).RegisterRoutes(mux)

	resp := submitKey(t, mux, api.PasswordAuthorization(testPassword), `{"publicKey":"key"}`)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body := readBody(t, resp)
	assert.Contains(t, body, api.MsgInternalError)
	assert.NotContains(t, body, "credential", "internal details must not leak")

	mockRegistry.AssertExpectations(t)
}

func TestHandleVerifyMessage_BeforeRegistration(t *testing.T) {
	mux, _ := setupTestRouter(t)

	kp, err := cryptoutils.GenerateKeyPair(cryptoutils.DefaultKeyBits)
	require.NoError(t, err)
	sig, err := cryptoutils.Sign(kp.PrivateKey, []byte("hello-world"))
	require.NoError(t, err)

	resp := verifyMessage(t, mux, "hello-world", sig)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), api.MsgVerifyError)
}

func TestHandleVerifyMessage_BadRequest(t *testing.T) {
	mux, _ := setupTestRouter(t)

	testCases := []struct {
		name     string
		body     string
		wantBody string
	}{
		{name: "Missing message", body: `{"signature":"c2ln"}`, wantBody: api.MsgInputMissing},
		{name: "Missing signature", body: `{"message":"hello-world"}`, wantBody: api.MsgInputMissing},
		{name: "Empty object", body: `{}`, wantBody: api.MsgInputMissing},
		{name: "Signature not base64", body: `{"message":"hello-world","signature":"%%%"}`, wantBody: api.MsgInvalidSignature},
		{name: "Not JSON", body: `hello`, wantBody: api.MsgInvalidBody},
		{name: "Wrong types", body: `{"message":1,"signature":true}`, wantBody: api.MsgInvalidBody},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, api.VerifyMessagePath, strings.NewReader(tc.body))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			resp := w.Result()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Contains(t, readBody(t, resp), tc.wantBody)
		})
	}
}

func TestHandleVerifyMessage_MalformedRegisteredKey(t *testing.T) {
	mux, _ := setupTestRouter(t)

	resp := submitKey(t, mux, api.PasswordAuthorization(testPassword), `{"publicKey":"not a key"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = verifyMessage(t, mux, "hello-world", "c2ln")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), api.MsgVerifyError)
}

func TestHandleVerifyMessage_UsesRegistry(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mockRegistry := new(registry.MockRegistry)
	mockRegistry.On("Verify", []byte("hello-world"), "c2ln").Return(false, nil).Once()
	mockRegistry.On("Verify", mock.Anything, mock.Anything).
		Return(false, cryptoutils.ErrVerification)

	mux := chi.NewRouter()
	NewHandler(mockRegistry, nil, logger).RegisterRoutes(mux)

	assert.False(t, decodeVerify(t, verifyMessage(t, mux, "hello-world", "c2ln")).Valid)

	resp := verifyMessage(t, mux, "hello-world", "c2ln")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	mockRegistry.AssertExpectations(t)
}
