package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fairdesk/fairdesk-go/internal/model"
	"github.com/fairdesk/fairdesk-go/internal/service"
)

// CustomerHandler handles HTTP requests for customer operations.
type CustomerHandler struct {
	service *service.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(svc *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{service: svc}
}

// Routes mounts the customer endpoints on r. Credential updates are wrapped
// in serviceAuth.
func (h *CustomerHandler) Routes(r chi.Router, serviceAuth func(http.Handler) http.Handler) {
	r.Get("/", h.HandleList)
	r.Post("/", h.HandleCreate)
	r.Get("/{id}", h.HandleGet)
	r.Delete("/{id}", h.HandleDelete)
	r.With(serviceAuth).Patch("/{id}/credentials", h.HandleReplaceCredentials)
}

// HandleList handles GET /api/customers requests.
func (h *CustomerHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	customers, err := h.service.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, customers)
}

// HandleGet handles GET /api/customers/{id} requests.
func (h *CustomerHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid customer id"))
		return
	}

	customer, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, customer)
}

// HandleCreate handles POST /api/customers requests.
func (h *CustomerHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req model.CustomerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	customer, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, customer)
}

// HandleDelete handles DELETE /api/customers/{id} requests.
func (h *CustomerHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid customer id"))
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleReplaceCredentials handles PATCH /api/customers/{id}/credentials requests.
func (h *CustomerHandler) HandleReplaceCredentials(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid customer id"))
		return
	}

	var req model.CredentialUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	customer, err := h.service.ReplaceCredentials(r.Context(), id, req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, customer)
}

func (h *CustomerHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNameRequired), errors.Is(err, service.ErrCredentialsRequired):
		writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, service.ErrCustomerNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
	}
}
