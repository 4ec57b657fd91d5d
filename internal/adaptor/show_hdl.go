package adaptor

import (
	"errors"
	"net/http"

	"planetarium-booking/internal/dto/request"
	"planetarium-booking/internal/usecase"
	"planetarium-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// multipart overhead allowed on top of the file itself
const uploadSlack = 1 << 20

type ShowHandler struct {
	service   usecase.ShowService
	maxUpload int64
	log       *zap.Logger
}

func NewShowHandler(service usecase.ShowService, maxUpload int64, log *zap.Logger) *ShowHandler {
	return &ShowHandler{
		service:   service,
		maxUpload: maxUpload,
		log:       log.With(zap.String("handler", "astronomy_show")),
	}
}

// GetShows handles GET /api/planetarium/astronomy-shows?title=&show_themes=
func (h *ShowHandler) GetShows(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	shows, err := h.service.GetShows(r.Context(), query.Get("title"), query.Get("show_themes"))
	if err != nil {
		handleServiceError(w, h.log, err, "get astronomy shows")
		return
	}

	utils.ResponseSuccess(w, "success", shows)
}

// GetShowByID handles GET /api/planetarium/astronomy-shows/{id}
func (h *ShowHandler) GetShowByID(w http.ResponseWriter, r *http.Request) {
	show, err := h.service.GetShowByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get astronomy show")
		return
	}

	utils.ResponseSuccess(w, "success", show)
}

// CreateShow handles POST /api/planetarium/astronomy-shows (admin)
func (h *ShowHandler) CreateShow(w http.ResponseWriter, r *http.Request) {
	var req request.AstronomyShowRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	show, err := h.service.CreateShow(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create astronomy show")
		return
	}

	utils.ResponseCreated(w, "Astronomy show created", show)
}

// UpdateShow handles PUT/PATCH /api/planetarium/astronomy-shows/{id} (admin)
func (h *ShowHandler) UpdateShow(w http.ResponseWriter, r *http.Request) {
	var req request.AstronomyShowUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	show, err := h.service.UpdateShow(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update astronomy show")
		return
	}

	utils.ResponseSuccess(w, "Astronomy show updated", show)
}

// DeleteShow handles DELETE /api/planetarium/astronomy-shows/{id} (admin)
func (h *ShowHandler) DeleteShow(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteShow(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete astronomy show")
		return
	}

	utils.ResponseNoContent(w)
}

// UploadImage handles POST /api/planetarium/astronomy-shows/{id}/upload-image (admin)
func (h *ShowHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload+uploadSlack)

	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.ResponseBadRequest(w, utils.ErrFileTooLarge.Error(), map[string]string{"image": utils.ErrFileTooLarge.Error()})
			return
		}
		utils.ResponseBadRequest(w, "Invalid multipart form", nil)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		utils.ResponseBadRequest(w, "Validation failed", map[string]string{"image": "This field is required"})
		return
	}
	defer file.Close()

	show, err := h.service.UploadImage(r.Context(), chi.URLParam(r, "id"), file, header)
	if err != nil {
		handleServiceError(w, h.log, err, "upload show image")
		return
	}

	utils.ResponseSuccess(w, "Image uploaded", show)
}
