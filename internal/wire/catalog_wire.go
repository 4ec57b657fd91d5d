package wire

import (
	"net/http"

	"planetarium-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// Reads are open to any authenticated user, writes need admin.

func wireTheme(r chi.Router, h *adaptor.ThemeHandler, admin func(http.Handler) http.Handler) {
	r.Route("/show-themes", func(r chi.Router) {
		r.Get("/", h.GetThemes)

		r.With(admin).Post("/", h.CreateTheme)
		r.With(admin).Delete("/{id}", h.DeleteTheme)
	})
}

func wireShow(r chi.Router, h *adaptor.ShowHandler, admin func(http.Handler) http.Handler) {
	r.Route("/astronomy-shows", func(r chi.Router) {
		r.Get("/", h.GetShows)
		r.Get("/{id}", h.GetShowByID)

		r.Group(func(r chi.Router) {
			r.Use(admin)
			r.Post("/", h.CreateShow)
			r.Put("/{id}", h.UpdateShow)
			r.Patch("/{id}", h.UpdateShow)
			r.Delete("/{id}", h.DeleteShow)
			r.Post("/{id}/upload-image", h.UploadImage)
		})
	})
}

func wireDome(r chi.Router, h *adaptor.DomeHandler, admin func(http.Handler) http.Handler) {
	r.Route("/planetarium-domes", func(r chi.Router) {
		r.Get("/", h.GetDomes)
		r.Get("/{id}", h.GetDomeByID)

		r.Group(func(r chi.Router) {
			r.Use(admin)
			r.Post("/", h.CreateDome)
			r.Put("/{id}", h.UpdateDome)
			r.Patch("/{id}", h.UpdateDome)
			r.Delete("/{id}", h.DeleteDome)
		})
	})
}

func wireSession(r chi.Router, h *adaptor.SessionHandler, admin func(http.Handler) http.Handler) {
	r.Route("/show-sessions", func(r chi.Router) {
		r.Get("/", h.GetSessions)
		r.Get("/{id}", h.GetSessionByID)

		r.Group(func(r chi.Router) {
			r.Use(admin)
			r.Post("/", h.CreateSession)
			r.Put("/{id}", h.UpdateSession)
			r.Patch("/{id}", h.UpdateSession)
			r.Delete("/{id}", h.DeleteSession)
		})
	})
}
