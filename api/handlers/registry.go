package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/ruteri/signature-registry/api"
	"github.com/ruteri/signature-registry/cryptoutils"
	"github.com/ruteri/signature-registry/interfaces"
	"github.com/ruteri/signature-registry/metrics"
	"github.com/ruteri/signature-registry/registry"
)

// Handler processes HTTP requests for the signature registry.
// It translates registry outcomes into status codes and response bodies.
type Handler struct {
	registry interfaces.KeyRegistry
	metrics  *metrics.Metrics
	log      *slog.Logger
}

// NewHandler creates a new HTTP request handler with the specified dependencies.
//
// Parameters:
//   - reg: Key registry holding the credential and the registered key
//   - m: Metrics to record outcomes into; may be nil
//   - log: Structured logger for operational insights
//
// Returns a configured Handler instance.
func NewHandler(reg interfaces.KeyRegistry, m *metrics.Metrics, log *slog.Logger) *Handler {
	return &Handler{
		registry: reg,
		metrics:  m,
		log:      log,
	}
}

// RegisterRoutes configures the HTTP router with the registry endpoints:
//   - POST /submit-public-key - Register a public key (password required)
//   - POST /verify-message - Verify a signature against the registered key
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post(api.SubmitPublicKeyPath, h.HandleSubmitPublicKey)
	r.Post(api.VerifyMessagePath, h.HandleVerifyMessage)
}

// HandleSubmitPublicKey processes public key registration requests.
//
// URL format: POST /submit-public-key
// Required headers:
//   - Authorization: "Basic " + base64(password)
//
// Request body: JSON-encoded api.RegisterRequest
//
// Status codes:
//   - 200 OK: Key registered, replacing any previous key
//   - 400 Bad Request: Body is not a valid registration
//   - 401 Unauthorized: Header missing or malformed, or wrong password
//   - 500 Internal Server Error: Password comparison failed
func (h *Handler) HandleSubmitPublicKey(w http.ResponseWriter, r *http.Request) {
	password, err := api.PasswordFromAuthorization(r.Header.Get("Authorization"))
	if err != nil {
		h.log.Warn("Rejected registration", "err", err)
		h.metrics.RecordRegistration(metrics.OutcomeUnauthorized)
		http.Error(w, api.MsgAuthMissing, http.StatusUnauthorized)
		return
	}

	var req api.RegisterRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, api.MaxBodySize)).Decode(&req); err != nil {
		h.log.Warn("Failed to decode registration body", "err", err)
		h.metrics.RecordRegistration(metrics.OutcomeBadRequest)
		http.Error(w, api.MsgInvalidBody, http.StatusBadRequest)
		return
	}

	err = h.registry.Register(password, req.PublicKey)
	switch {
	case err == nil:
	case errors.Is(err, registry.ErrUnauthenticated):
		h.metrics.RecordRegistration(metrics.OutcomeUnauthorized)
		http.Error(w, api.MsgAuthMissing, http.StatusUnauthorized)
		return
	case errors.Is(err, registry.ErrInvalidCredential):
		h.metrics.RecordRegistration(metrics.OutcomeUnauthorized)
		http.Error(w, api.MsgInvalidPassword, http.StatusUnauthorized)
		return
	default:
		h.log.Error("Registration failed", "err", err)
		h.metrics.RecordRegistration(metrics.OutcomeError)
		http.Error(w, api.MsgInternalError, http.StatusInternalServerError)
		return
	}

	h.metrics.RecordRegistration(metrics.OutcomeAccepted)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(api.MsgPublicKeyReceived))
}

// HandleVerifyMessage checks a signature against the registered key.
//
// URL format: POST /verify-message
//
// Request body: JSON-encoded api.VerifyRequest
//
// Response: JSON-encoded api.VerifyResponse. A signature that does not
// match is a 200 with "valid": false.
//
// Status codes:
//   - 200 OK: Verification completed
//   - 400 Bad Request: Message or signature missing, or signature not base64
//   - 500 Internal Server Error: No key registered, registered key unusable,
//     or the verification primitive failed
func (h *Handler) HandleVerifyMessage(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req api.VerifyRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, api.MaxBodySize)).Decode(&req); err != nil {
		h.log.Warn("Failed to decode verification body", "err", err)
		h.metrics.RecordVerification(metrics.OutcomeBadRequest, time.Since(start))
		http.Error(w, api.MsgInvalidBody, http.StatusBadRequest)
		return
	}

	valid, err := h.registry.Verify([]byte(req.Message), req.Signature)
	switch {
	case err == nil:
	case errors.Is(err, cryptoutils.ErrMissingInput):
		h.metrics.RecordVerification(metrics.OutcomeBadRequest, time.Since(start))
		http.Error(w, api.MsgInputMissing, http.StatusBadRequest)
		return
	case errors.Is(err, cryptoutils.ErrMalformedSignature):
		h.metrics.RecordVerification(metrics.OutcomeBadRequest, time.Since(start))
		http.Error(w, api.MsgInvalidSignature, http.StatusBadRequest)
		return
	default:
		h.log.Error("Error verifying signature", "err", err)
		h.metrics.RecordVerification(metrics.OutcomeError, time.Since(start))
		http.Error(w, api.MsgVerifyError, http.StatusInternalServerError)
		return
	}

	outcome := metrics.OutcomeInvalid
	if valid {
		outcome = metrics.OutcomeValid
	}
	h.metrics.RecordVerification(outcome, time.Since(start))
	h.log.Debug("Signature verification", "valid", valid)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(api.VerifyResponse{Valid: valid}); err != nil {
		h.log.Error("Failed to encode response", "err", err)
	}
}
