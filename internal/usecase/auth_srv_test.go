package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"planetarium-booking/internal/data/entity"
	"planetarium-booking/internal/data/repository"
	"planetarium-booking/internal/dto/request"
	"planetarium-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memUsers struct {
	users     []*entity.User
	createErr error
}

func (r *memUsers) Create(_ context.Context, u *entity.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.users = append(r.users, u)
	return nil
}

func (r *memUsers) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memUsers) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

type memAuthSessions struct {
	sessions map[string]*entity.AuthSession
}

func (r *memAuthSessions) Create(_ context.Context, s *entity.AuthSession) error {
	r.sessions[s.Token.String()] = s
	return nil
}

func (r *memAuthSessions) FindValidSession(_ context.Context, token string) (*entity.AuthSession, error) {
	s := r.sessions[token]
	if s == nil || s.RevokedAt != nil || time.Now().After(s.ExpiresAt) {
		return nil, nil
	}
	return s, nil
}

func (r *memAuthSessions) Revoke(_ context.Context, token string) error {
	s := r.sessions[token]
	if s == nil || s.RevokedAt != nil {
		return repository.ErrNotFound
	}
	now := time.Now()
	s.RevokedAt = &now
	return nil
}

func (r *memAuthSessions) CleanExpiredSessions(context.Context) (int64, error) {
	var n int64
	for token, s := range r.sessions {
		if time.Now().After(s.ExpiresAt) {
			delete(r.sessions, token)
			n++
		}
	}
	return n, nil
}

func newTestAuthService() (AuthService, *memUsers, *memAuthSessions) {
	users := &memUsers{}
	sessions := &memAuthSessions{sessions: map[string]*entity.AuthSession{}}
	repo := &repository.Repository{User: users, AuthSession: sessions}

	config := &utils.Config{Session: utils.SessionConfig{ExpiryHours: 2}}
	return NewAuthService(repo, config, zap.NewNop()), users, sessions
}

func register(t *testing.T, srv AuthService, username, email string) {
	t.Helper()
	_, err := srv.Register(context.Background(), &request.RegisterRequest{
		Username: username,
		Email:    email,
		Password: "stargazer",
	}, ClientInfo{})
	require.NoError(t, err)
}

func TestRegister(t *testing.T) {
	srv, users, sessions := newTestAuthService()

	resp, err := srv.Register(context.Background(), &request.RegisterRequest{
		Username: "carl",
		Email:    "carl@example.com",
		Password: "stargazer",
	}, ClientInfo{UserAgent: "curl/8", IPAddress: "10.0.0.5"})
	require.NoError(t, err)

	require.Len(t, users.users, 1)
	user := users.users[0]
	assert.Equal(t, entity.RoleCustomer, user.Role)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "stargazer", user.PasswordHash)
	assert.True(t, utils.CheckPasswordHash("stargazer", user.PasswordHash))

	require.NotEmpty(t, resp.Token)
	session := sessions.sessions[resp.Token]
	require.NotNil(t, session)
	assert.Equal(t, user.ID, session.UserID)
	assert.Equal(t, "curl/8", *session.UserAgent)
	assert.WithinDuration(t, time.Now().Add(2*time.Hour), session.ExpiresAt, time.Minute)
}

func TestRegister_Duplicates(t *testing.T) {
	srv, _, _ := newTestAuthService()
	register(t, srv, "carl", "carl@example.com")

	_, err := srv.Register(context.Background(), &request.RegisterRequest{
		Username: "other", Email: "carl@example.com", Password: "stargazer",
	}, ClientInfo{})
	var exists *AlreadyExistsError
	require.ErrorAs(t, err, &exists)
	assert.Equal(t, "email", exists.Field)

	_, err = srv.Register(context.Background(), &request.RegisterRequest{
		Username: "carl", Email: "other@example.com", Password: "stargazer",
	}, ClientInfo{})
	require.ErrorAs(t, err, &exists)
	assert.Equal(t, "username", exists.Field)
}

func TestRegister_RaceOnUniqueIndex(t *testing.T) {
	srv, users, _ := newTestAuthService()
	users.createErr = repository.ErrConflict

	_, err := srv.Register(context.Background(), &request.RegisterRequest{
		Username: "carl", Email: "carl@example.com", Password: "stargazer",
	}, ClientInfo{})

	var exists *AlreadyExistsError
	assert.ErrorAs(t, err, &exists)
}

func TestRegister_Validation(t *testing.T) {
	srv, users, _ := newTestAuthService()

	_, err := srv.Register(context.Background(), &request.RegisterRequest{
		Username: "c", Email: "not-an-email", Password: "123",
	}, ClientInfo{})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "username")
	assert.Contains(t, verr.Fields, "email")
	assert.Contains(t, verr.Fields, "password")
	assert.Empty(t, users.users)
}

func TestLogin(t *testing.T) {
	srv, users, _ := newTestAuthService()
	register(t, srv, "carl", "carl@example.com")

	tests := []struct {
		name       string
		identifier string
		password   string
		wantErr    error
	}{
		{name: "by username", identifier: "carl", password: "stargazer"},
		{name: "by email", identifier: "carl@example.com", password: "stargazer"},
		{name: "wrong password", identifier: "carl", password: "moonwalker", wantErr: ErrInvalidCredentials},
		{name: "unknown user", identifier: "hubble", password: "stargazer", wantErr: ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := srv.Login(context.Background(), &request.LoginRequest{
				Username: tt.identifier,
				Password: tt.password,
			}, ClientInfo{})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, users.users[0].ID.String(), resp.UserID)
			assert.NotEmpty(t, resp.Token)
		})
	}
}

func TestLogin_Deactivated(t *testing.T) {
	srv, users, _ := newTestAuthService()
	register(t, srv, "carl", "carl@example.com")
	users.users[0].IsActive = false

	_, err := srv.Login(context.Background(), &request.LoginRequest{
		Username: "carl", Password: "stargazer",
	}, ClientInfo{})

	assert.ErrorIs(t, err, ErrAccountDeactivated)
}

func TestLogout(t *testing.T) {
	srv, _, sessions := newTestAuthService()
	resp, err := srv.Register(context.Background(), &request.RegisterRequest{
		Username: "carl", Email: "carl@example.com", Password: "stargazer",
	}, ClientInfo{})
	require.NoError(t, err)

	require.NoError(t, srv.Logout(context.Background(), resp.Token))

	s, err := sessions.FindValidSession(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.Nil(t, s)

	err = srv.Logout(context.Background(), resp.Token)
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestCleanExpiredSessions(t *testing.T) {
	srv, _, sessions := newTestAuthService()
	expired := uuid.New()
	sessions.sessions[expired.String()] = &entity.AuthSession{Token: expired, ExpiresAt: time.Now().Add(-time.Hour)}
	live := uuid.New()
	sessions.sessions[live.String()] = &entity.AuthSession{Token: live, ExpiresAt: time.Now().Add(time.Hour)}

	n, err := srv.CleanExpiredSessions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Contains(t, sessions.sessions, live.String())
}
