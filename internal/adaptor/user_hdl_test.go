package adaptor

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"planetarium-booking/internal/data/entity"
	"planetarium-booking/internal/data/repository"
	"planetarium-booking/internal/dto/response"
	"planetarium-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubProfiles struct {
	profiles map[string]*response.UserResponse
}

func (s *stubProfiles) GetProfile(_ context.Context, userID string) (*response.UserResponse, error) {
	p, ok := s.profiles[userID]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", userID, repository.ErrNotFound)
	}
	return p, nil
}

func profileRouter(svc *stubProfiles, userID uuid.UUID) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if userID != uuid.Nil {
				req = req.WithContext(utils.SetUserContext(req.Context(), userID, "customer"))
			}
			next.ServeHTTP(w, req)
		})
	})
	r.Get("/api/user/me", NewUserHandler(svc, zap.NewNop()).GetProfile)
	return r
}

func TestUserHandler_GetProfile(t *testing.T) {
	known := uuid.New()
	svc := &stubProfiles{profiles: map[string]*response.UserResponse{
		known.String(): {ID: known.String(), Username: "stargazer", Role: entity.RoleCustomer, IsActive: true},
	}}

	rec := serveJSON(profileRouter(svc, known), http.MethodGet, "/api/user/me", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"stargazer"`)

	rec = serveJSON(profileRouter(svc, uuid.New()), http.MethodGet, "/api/user/me", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serveJSON(profileRouter(svc, uuid.Nil), http.MethodGet, "/api/user/me", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"status":false,"message":"Authentication required"}`, rec.Body.String())
}
