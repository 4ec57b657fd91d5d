package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"planetarium-booking/internal/data/entity"
	"planetarium-booking/internal/data/repository"
	"planetarium-booking/internal/dto/request"
	"planetarium-booking/internal/dto/response"
	"planetarium-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ClientInfo is recorded on the session created at login.
type ClientInfo struct {
	UserAgent string
	IPAddress string
}

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest, client ClientInfo) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest, client ClientInfo) (*response.AuthResponse, error)
	Logout(ctx context.Context, token string) error
	CleanExpiredSessions(ctx context.Context) (int64, error)
}

type authService struct {
	repo   *repository.Repository
	expiry time.Duration
	log    *zap.Logger
}

func NewAuthService(repo *repository.Repository, config *utils.Config, log *zap.Logger) AuthService {
	expiry := time.Duration(config.Session.ExpiryHours) * time.Hour
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}
	return &authService{
		repo:   repo,
		expiry: expiry,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest, client ClientInfo) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, &ValidationError{Fields: errs}
	}

	existing, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, &AlreadyExistsError{Resource: "user", Field: "email", Value: req.Email}
	}

	existing, err = s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if existing != nil {
		return nil, &AlreadyExistsError{Resource: "user", Field: "username", Value: req.Username}
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := &entity.User{
		SoftDeleteRecord: entity.SoftDeleteRecord{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashed,
		Role:         entity.RoleCustomer,
		IsActive:     true,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, repository.ErrConflict) {
			return nil, &AlreadyExistsError{Resource: "user", Field: "username or email", Value: req.Username}
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	session, err := s.createSession(ctx, user.ID, client)
	if err != nil {
		s.log.Warn("Failed to create session after register",
			zap.Error(err),
			zap.String("user_id", user.ID.String()),
		)
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
	)

	resp := response.AuthToResponse(user, session)
	return &resp, nil
}

// Login accepts either the email or the username as identifier.
func (s *authService) Login(ctx context.Context, req *request.LoginRequest, client ClientInfo) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	user, err := s.repo.User.FindByEmail(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	if user == nil {
		user, err = s.repo.User.FindByUsername(ctx, req.Username)
		if err != nil {
			return nil, fmt.Errorf("find user by username: %w", err)
		}
	}

	if user == nil || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Login rejected", zap.String("identifier", req.Username))
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		s.log.Warn("Inactive user tried to login", zap.String("user_id", user.ID.String()))
		return nil, ErrAccountDeactivated
	}

	session, err := s.createSession(ctx, user.ID, client)
	if err != nil {
		s.log.Error("Failed to create session", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
	)

	resp := response.AuthToResponse(user, session)
	return &resp, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if err := s.repo.AuthSession.Revoke(ctx, token); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	s.log.Info("User logged out")
	return nil
}

func (s *authService) CleanExpiredSessions(ctx context.Context) (int64, error) {
	n, err := s.repo.AuthSession.CleanExpiredSessions(ctx)
	if err != nil {
		return 0, fmt.Errorf("clean expired sessions: %w", err)
	}
	if n > 0 {
		s.log.Info("Expired sessions removed", zap.Int64("count", n))
	}
	return n, nil
}

func (s *authService) createSession(ctx context.Context, userID uuid.UUID, client ClientInfo) (*entity.AuthSession, error) {
	now := time.Now()
	session := &entity.AuthSession{
		CreatedRecord: entity.NewCreatedRecord(now),
		UserID:        userID,
		Token:         uuid.New(),
		UserAgent:     optional(client.UserAgent),
		IPAddress:     optional(client.IPAddress),
		ExpiresAt:     now.Add(s.expiry),
	}

	if err := s.repo.AuthSession.Create(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
