package adaptor

import (
	"net/http"

	"planetarium-booking/internal/dto/request"
	"planetarium-booking/internal/usecase"
	"planetarium-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type SessionHandler struct {
	service usecase.SessionService
	log     *zap.Logger
}

func NewSessionHandler(service usecase.SessionService, log *zap.Logger) *SessionHandler {
	return &SessionHandler{
		service: service,
		log:     log.With(zap.String("handler", "show_session")),
	}
}

// GetSessions handles GET /api/planetarium/show-sessions?date=&astronomy_show=
func (h *SessionHandler) GetSessions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := &request.ShowSessionFilter{
		Date:          query.Get("date"),
		AstronomyShow: query.Get("astronomy_show"),
	}

	sessions, err := h.service.GetSessions(r.Context(), filter)
	if err != nil {
		handleServiceError(w, h.log, err, "get show sessions")
		return
	}

	utils.ResponseSuccess(w, "success", sessions)
}

// GetSessionByID handles GET /api/planetarium/show-sessions/{id}
func (h *SessionHandler) GetSessionByID(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.GetSessionByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get show session")
		return
	}

	utils.ResponseSuccess(w, "success", session)
}

// CreateSession handles POST /api/planetarium/show-sessions (admin)
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req request.ShowSessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	session, err := h.service.CreateSession(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create show session")
		return
	}

	utils.ResponseCreated(w, "Show session created", session)
}

// UpdateSession handles PUT/PATCH /api/planetarium/show-sessions/{id} (admin)
func (h *SessionHandler) UpdateSession(w http.ResponseWriter, r *http.Request) {
	var req request.ShowSessionUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	session, err := h.service.UpdateSession(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update show session")
		return
	}

	utils.ResponseSuccess(w, "Show session updated", session)
}

// DeleteSession handles DELETE /api/planetarium/show-sessions/{id} (admin)
func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteSession(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete show session")
		return
	}

	utils.ResponseNoContent(w)
}
