package adaptor

import (
	"net/http"

	"planetarium-booking/internal/dto/request"
	"planetarium-booking/internal/usecase"
	"planetarium-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ReservationHandler struct {
	service usecase.ReservationService
	log     *zap.Logger
}

func NewReservationHandler(service usecase.ReservationService, log *zap.Logger) *ReservationHandler {
	return &ReservationHandler{
		service: service,
		log:     log.With(zap.String("handler", "reservation")),
	}
}

// CreateReservation handles POST /api/planetarium/reservations
func (h *ReservationHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req request.CreateReservationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	reservation, err := h.service.CreateReservation(r.Context(), userID.String(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create reservation")
		return
	}

	utils.ResponseCreated(w, "Reservation created", reservation)
}

// GetReservations handles GET /api/planetarium/reservations?page=&per_page=
func (h *ReservationHandler) GetReservations(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	reservations, err := h.service.ListReservations(r.Context(), userID.String(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "get reservations")
		return
	}

	utils.ResponseSuccess(w, "success", reservations)
}

// GetReservationByID handles GET /api/planetarium/reservations/{id}
func (h *ReservationHandler) GetReservationByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	reservation, err := h.service.GetReservation(r.Context(), userID.String(), utils.IsAdminFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get reservation")
		return
	}

	utils.ResponseSuccess(w, "success", reservation)
}

// DeleteReservation handles DELETE /api/planetarium/reservations/{id}
func (h *ReservationHandler) DeleteReservation(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	err := h.service.DeleteReservation(r.Context(), userID.String(), utils.IsAdminFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "delete reservation")
		return
	}

	utils.ResponseNoContent(w)
}
