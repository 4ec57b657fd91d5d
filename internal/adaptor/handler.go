package adaptor

import (
	"encoding/json"
	"net/http"

	"planetarium-booking/internal/usecase"
	"planetarium-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth        *AuthHandler
	User        *UserHandler
	Dome        *DomeHandler
	Theme       *ThemeHandler
	Show        *ShowHandler
	Session     *SessionHandler
	Reservation *ReservationHandler
}

func NewHandler(service *usecase.Service, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(service.Auth, log),
		User:        NewUserHandler(service.User, log),
		Dome:        NewDomeHandler(service.Dome, log),
		Theme:       NewThemeHandler(service.Theme, log),
		Show:        NewShowHandler(service.Show, config.Upload.MaxSizeBytes, log),
		Session:     NewSessionHandler(service.Session, log),
		Reservation: NewReservationHandler(service.Reservation, log),
	}
}

// decodeJSON writes a 400 and returns false when the body is not valid JSON.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}
	return true
}
