package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fairdesk/fairdesk-go/internal/model"
	"github.com/fairdesk/fairdesk-go/internal/service"
)

// ExhibitionHandler handles HTTP requests for exhibition operations.
type ExhibitionHandler struct {
	service *service.ExhibitionService
}

// NewExhibitionHandler creates a new ExhibitionHandler.
func NewExhibitionHandler(svc *service.ExhibitionService) *ExhibitionHandler {
	return &ExhibitionHandler{service: svc}
}

// Routes mounts the exhibition endpoints on r.
func (h *ExhibitionHandler) Routes(r chi.Router) {
	r.Get("/", h.HandleList)
	r.Post("/", h.HandleCreate)
	r.Get("/category/{category}", h.HandleListByCategory)
	r.Get("/date/{date}", h.HandleListByDate)
	r.Get("/{id}", h.HandleGet)
	r.Patch("/{id}", h.HandleUpdate)
	r.Delete("/{id}", h.HandleDelete)
	r.Patch("/{id}/customers/{customerId}", h.HandleAddCustomer)
	r.Delete("/{id}/customers/{customerId}", h.HandleRemoveCustomer)
}

// HandleList handles GET /api/exhibitions requests.
func (h *ExhibitionHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	exhibitions, err := h.service.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, exhibitions)
}

// HandleListByCategory handles GET /api/exhibitions/category/{category} requests.
func (h *ExhibitionHandler) HandleListByCategory(w http.ResponseWriter, r *http.Request) {
	exhibitions, err := h.service.ListByCategory(r.Context(), chi.URLParam(r, "category"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, exhibitions)
}

// HandleListByDate handles GET /api/exhibitions/date/{date} requests.
func (h *ExhibitionHandler) HandleListByDate(w http.ResponseWriter, r *http.Request) {
	exhibitions, err := h.service.ListByDate(r.Context(), chi.URLParam(r, "date"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, exhibitions)
}

// HandleGet handles GET /api/exhibitions/{id} requests.
func (h *ExhibitionHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid exhibition id"))
		return
	}

	exhibition, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, exhibition)
}

// HandleCreate handles POST /api/exhibitions requests.
func (h *ExhibitionHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req model.ExhibitionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	exhibition, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, exhibition)
}

// HandleUpdate handles PATCH /api/exhibitions/{id} requests.
func (h *ExhibitionHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid exhibition id"))
		return
	}

	var req model.ExhibitionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	exhibition, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, exhibition)
}

// HandleDelete handles DELETE /api/exhibitions/{id} requests.
func (h *ExhibitionHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid exhibition id"))
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleAddCustomer handles PATCH /api/exhibitions/{exhibitionId}/customers/{customerId} requests.
func (h *ExhibitionHandler) HandleAddCustomer(w http.ResponseWriter, r *http.Request) {
	exhibitionID, customerID, ok := registrationParams(w, r)
	if !ok {
		return
	}

	exhibition, err := h.service.AddCustomer(r.Context(), exhibitionID, customerID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, exhibition)
}

// HandleRemoveCustomer handles DELETE /api/exhibitions/{exhibitionId}/customers/{customerId} requests.
func (h *ExhibitionHandler) HandleRemoveCustomer(w http.ResponseWriter, r *http.Request) {
	exhibitionID, customerID, ok := registrationParams(w, r)
	if !ok {
		return
	}

	exhibition, err := h.service.RemoveCustomer(r.Context(), exhibitionID, customerID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, exhibition)
}

func registrationParams(w http.ResponseWriter, r *http.Request) (int64, int64, bool) {
	exhibitionID, err := idParam(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid exhibition id"))
		return 0, 0, false
	}
	customerID, err := idParam(r, "customerId")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid customer id"))
		return 0, 0, false
	}
	return exhibitionID, customerID, true
}

func (h *ExhibitionHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrDateRequired),
		errors.Is(err, service.ErrCategoryRequired),
		errors.Is(err, service.ErrInvalidDate):
		writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, service.ErrExhibitionNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
	}
}
