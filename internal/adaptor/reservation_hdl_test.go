package adaptor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"planetarium-booking/internal/data/repository"
	"planetarium-booking/internal/dto/request"
	"planetarium-booking/internal/dto/response"
	"planetarium-booking/internal/usecase"
	"planetarium-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubReservations struct {
	createErr error
	lastUser  string
	lastAdmin bool
	lastID    string
	lastPage  *request.PaginatedRequest
	created   *request.CreateReservationRequest
}

func (s *stubReservations) CreateReservation(_ context.Context, userID string, req *request.CreateReservationRequest) (*response.ReservationResponse, error) {
	s.lastUser = userID
	s.created = req
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &response.ReservationResponse{ID: uuid.NewString()}, nil
}

func (s *stubReservations) ListReservations(_ context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReservationResponse], error) {
	s.lastUser = userID
	s.lastPage = req
	return response.NewPaginatedResponse([]response.ReservationResponse{}, req.Page, req.PerPage, 0), nil
}

func (s *stubReservations) GetReservation(_ context.Context, userID string, isAdmin bool, id string) (*response.ReservationResponse, error) {
	s.lastUser, s.lastAdmin, s.lastID = userID, isAdmin, id
	return nil, repository.ErrNotFound
}

func (s *stubReservations) DeleteReservation(_ context.Context, userID string, isAdmin bool, id string) error {
	s.lastUser, s.lastAdmin, s.lastID = userID, isAdmin, id
	return nil
}

func reservationRouter(h *ReservationHandler, userID uuid.UUID, role string) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if userID != uuid.Nil {
				req = req.WithContext(utils.SetUserContext(req.Context(), userID, role))
			}
			next.ServeHTTP(w, req)
		})
	})
	r.Get("/reservations", h.GetReservations)
	r.Post("/reservations", h.CreateReservation)
	r.Get("/reservations/{id}", h.GetReservationByID)
	r.Delete("/reservations/{id}", h.DeleteReservation)
	return r
}

func serveJSON(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestReservationHandler_Create(t *testing.T) {
	svc := &stubReservations{}
	user := uuid.New()
	router := reservationRouter(NewReservationHandler(svc, zap.NewNop()), user, "customer")

	sessionID := uuid.NewString()
	rec := serveJSON(router, http.MethodPost, "/reservations",
		`{"tickets":[{"show_session":"`+sessionID+`","row":1,"seat":1},{"show_session":"`+sessionID+`","row":2,"seat":3}]}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, user.String(), svc.lastUser)
	require.Len(t, svc.created.Tickets, 2)
	assert.Equal(t, request.TicketRequest{ShowSession: sessionID, Row: 2, Seat: 3}, svc.created.Tickets[1])
}

func TestReservationHandler_CreateConflict(t *testing.T) {
	svc := &stubReservations{createErr: &usecase.ConflictError{Index: 0, SessionID: uuid.New(), Row: 1, Seat: 1}}
	router := reservationRouter(NewReservationHandler(svc, zap.NewNop()), uuid.New(), "customer")

	rec := serveJSON(router, http.MethodPost, "/reservations", `{"tickets":[{"show_session":"x","row":1,"seat":1}]}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"tickets[0]"`)
}

func TestReservationHandler_BadBody(t *testing.T) {
	svc := &stubReservations{}
	router := reservationRouter(NewReservationHandler(svc, zap.NewNop()), uuid.New(), "customer")

	rec := serveJSON(router, http.MethodPost, "/reservations", `{"tickets":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, svc.created)
}

func TestReservationHandler_Unauthenticated(t *testing.T) {
	router := reservationRouter(NewReservationHandler(&stubReservations{}, zap.NewNop()), uuid.Nil, "")

	rec := serveJSON(router, http.MethodGet, "/reservations", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestReservationHandler_ListPagination(t *testing.T) {
	svc := &stubReservations{}
	router := reservationRouter(NewReservationHandler(svc, zap.NewNop()), uuid.New(), "customer")

	rec := serveJSON(router, http.MethodGet, "/reservations?page=3&per_page=25", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, &request.PaginatedRequest{Page: 3, PerPage: 25}, svc.lastPage)

	serveJSON(router, http.MethodGet, "/reservations?page=abc", "")
	assert.Equal(t, &request.PaginatedRequest{Page: 1, PerPage: 10}, svc.lastPage)
}

func TestReservationHandler_GetAndDelete(t *testing.T) {
	svc := &stubReservations{}
	router := reservationRouter(NewReservationHandler(svc, zap.NewNop()), uuid.New(), utils.RoleAdmin)
	id := uuid.NewString()

	rec := serveJSON(router, http.MethodGet, "/reservations/"+id, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, id, svc.lastID)
	assert.True(t, svc.lastAdmin)

	rec = serveJSON(router, http.MethodDelete, "/reservations/"+id, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
