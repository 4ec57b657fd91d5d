package adaptor

import (
	"net/http"

	"planetarium-booking/internal/dto/request"
	"planetarium-booking/internal/usecase"
	"planetarium-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ThemeHandler struct {
	service usecase.ThemeService
	log     *zap.Logger
}

func NewThemeHandler(service usecase.ThemeService, log *zap.Logger) *ThemeHandler {
	return &ThemeHandler{
		service: service,
		log:     log.With(zap.String("handler", "show_theme")),
	}
}

// GetThemes handles GET /api/planetarium/show-themes
func (h *ThemeHandler) GetThemes(w http.ResponseWriter, r *http.Request) {
	themes, err := h.service.GetThemes(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get show themes")
		return
	}

	utils.ResponseSuccess(w, "success", themes)
}

// CreateTheme handles POST /api/planetarium/show-themes (admin)
func (h *ThemeHandler) CreateTheme(w http.ResponseWriter, r *http.Request) {
	var req request.ShowThemeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	theme, err := h.service.CreateTheme(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create show theme")
		return
	}

	utils.ResponseCreated(w, "Show theme created", theme)
}

// DeleteTheme handles DELETE /api/planetarium/show-themes/{id} (admin)
func (h *ThemeHandler) DeleteTheme(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteTheme(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete show theme")
		return
	}

	utils.ResponseNoContent(w)
}
