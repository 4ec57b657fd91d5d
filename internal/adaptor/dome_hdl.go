package adaptor

import (
	"net/http"

	"planetarium-booking/internal/dto/request"
	"planetarium-booking/internal/usecase"
	"planetarium-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type DomeHandler struct {
	service usecase.DomeService
	log     *zap.Logger
}

func NewDomeHandler(service usecase.DomeService, log *zap.Logger) *DomeHandler {
	return &DomeHandler{
		service: service,
		log:     log.With(zap.String("handler", "dome")),
	}
}

// GetDomes handles GET /api/planetarium/planetarium-domes
func (h *DomeHandler) GetDomes(w http.ResponseWriter, r *http.Request) {
	domes, err := h.service.GetDomes(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get domes")
		return
	}

	utils.ResponseSuccess(w, "success", domes)
}

// GetDomeByID handles GET /api/planetarium/planetarium-domes/{id}
func (h *DomeHandler) GetDomeByID(w http.ResponseWriter, r *http.Request) {
	dome, err := h.service.GetDomeByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get dome")
		return
	}

	utils.ResponseSuccess(w, "success", dome)
}

// CreateDome handles POST /api/planetarium/planetarium-domes (admin)
func (h *DomeHandler) CreateDome(w http.ResponseWriter, r *http.Request) {
	var req request.DomeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	dome, err := h.service.CreateDome(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create dome")
		return
	}

	utils.ResponseCreated(w, "Planetarium dome created", dome)
}

// UpdateDome handles PUT/PATCH /api/planetarium/planetarium-domes/{id} (admin)
func (h *DomeHandler) UpdateDome(w http.ResponseWriter, r *http.Request) {
	var req request.DomeUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	dome, err := h.service.UpdateDome(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update dome")
		return
	}

	utils.ResponseSuccess(w, "Planetarium dome updated", dome)
}

// DeleteDome handles DELETE /api/planetarium/planetarium-domes/{id} (admin)
func (h *DomeHandler) DeleteDome(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteDome(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete dome")
		return
	}

	utils.ResponseNoContent(w)
}
