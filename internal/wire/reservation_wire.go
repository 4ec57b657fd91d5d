package wire

import (
	"planetarium-booking/internal/adaptor"
	"planetarium-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireReservation mounts reservation routes. Ownership is enforced by the
// service; creation is rate limited when a limiter is configured.
func wireReservation(r chi.Router, h *adaptor.ReservationHandler, limiter middleware.Limiter, log *zap.Logger) {
	r.Route("/reservations", func(r chi.Router) {
		r.Get("/", h.GetReservations)
		r.Get("/{id}", h.GetReservationByID)
		r.Delete("/{id}", h.DeleteReservation)

		if limiter != nil {
			r.With(middleware.RateLimit(limiter, log)).Post("/", h.CreateReservation)
		} else {
			r.Post("/", h.CreateReservation)
		}
	})
}
