package repository

import (
	"context"
	"errors"
	"fmt"

	"planetarium-booking/internal/data/entity"
	"planetarium-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type AuthSessionRepository interface {
	Create(ctx context.Context, session *entity.AuthSession) error
	FindValidSession(ctx context.Context, token string) (*entity.AuthSession, error)
	Revoke(ctx context.Context, token string) error
	CleanExpiredSessions(ctx context.Context) (int64, error)
}

type authSessionRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewAuthSessionRepository(db database.Querier, log *zap.Logger) AuthSessionRepository {
	return &authSessionRepository{
		db:  db,
		log: log.With(zap.String("repository", "auth_session")),
	}
}

func (r *authSessionRepository) Create(ctx context.Context, session *entity.AuthSession) error {
	query := `
		INSERT INTO auth_sessions (id, user_id, token, user_agent, ip_address,
		                           expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		session.ID,
		session.UserID,
		session.Token,
		session.UserAgent,
		session.IPAddress,
		session.ExpiresAt,
		session.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create session",
			zap.Error(err),
			zap.String("user_id", session.UserID.String()),
		)
		return wrapDBErr("create session", err)
	}

	return nil
}

func (r *authSessionRepository) FindValidSession(ctx context.Context, token string) (*entity.AuthSession, error) {
	tokenID, err := uuid.Parse(token)
	if err != nil {
		return nil, nil
	}

	query := `
		SELECT id, user_id, token, user_agent, ip_address,
		       expires_at, revoked_at, created_at
		FROM auth_sessions
		WHERE token = $1
		  AND revoked_at IS NULL
		  AND expires_at > NOW()
	`

	var session entity.AuthSession
	err = r.db.QueryRow(ctx, query, tokenID).Scan(
		&session.ID,
		&session.UserID,
		&session.Token,
		&session.UserAgent,
		&session.IPAddress,
		&session.ExpiresAt,
		&session.RevokedAt,
		&session.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find valid session", zap.Error(err))
		return nil, wrapDBErr("find session", err)
	}

	return &session, nil
}

func (r *authSessionRepository) Revoke(ctx context.Context, token string) error {
	tokenID, err := uuid.Parse(token)
	if err != nil {
		return fmt.Errorf("revoke session: %w", ErrNotFound)
	}

	query := `
		UPDATE auth_sessions
		SET revoked_at = NOW()
		WHERE token = $1 AND revoked_at IS NULL
	`

	result, err := r.db.Exec(ctx, query, tokenID)
	if err != nil {
		r.log.Error("Failed to revoke session", zap.Error(err))
		return wrapDBErr("revoke session", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("revoke session: %w", ErrNotFound)
	}

	return nil
}

// CleanExpiredSessions removes sessions expired for more than a week.
func (r *authSessionRepository) CleanExpiredSessions(ctx context.Context) (int64, error) {
	query := `DELETE FROM auth_sessions WHERE expires_at < NOW() - INTERVAL '7 days'`

	result, err := r.db.Exec(ctx, query)
	if err != nil {
		r.log.Error("Failed to clean expired sessions", zap.Error(err))
		return 0, wrapDBErr("clean sessions", err)
	}

	return result.RowsAffected(), nil
}
