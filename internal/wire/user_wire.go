package wire

import (
	"net/http"

	"planetarium-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireUser(r chi.Router, userHandler *adaptor.UserHandler, auth func(http.Handler) http.Handler) {
	r.With(auth).Get("/api/user/me", userHandler.GetProfile)
}
