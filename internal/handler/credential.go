package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fairdesk/fairdesk-go/internal/credential"
	"github.com/fairdesk/fairdesk-go/internal/model"
	"github.com/fairdesk/fairdesk-go/internal/service"
)

// CredentialHandler handles HTTP requests for credential generation and
// password verification.
type CredentialHandler struct {
	service *service.CredentialService
}

// NewCredentialHandler creates a new CredentialHandler.
func NewCredentialHandler(svc *service.CredentialService) *CredentialHandler {
	return &CredentialHandler{service: svc}
}

// Routes mounts the credential endpoints on r behind limit.
func (h *CredentialHandler) Routes(r chi.Router, limit func(http.Handler) http.Handler) {
	r.With(limit).Post("/generate", h.HandleGenerate)
	r.With(limit).Post("/verify", h.HandleVerify)
}

// HandleGenerate handles POST /api/credentials/generate requests.
func (h *CredentialHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var req model.CredentialRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Generate(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, credential.ErrInvalidArgument):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleVerify handles POST /api/credentials/verify requests. The response
// body is a bare JSON boolean.
func (h *CredentialHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	var req model.PasswordVerificationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	writeJSON(w, http.StatusOK, h.service.Verify(r.Context(), req))
}
