package entity

import (
	"time"

	"github.com/google/uuid"
)

// AuthSession is a login session identified by an opaque bearer token.
type AuthSession struct {
	CreatedRecord
	UserID    uuid.UUID  `db:"user_id"`
	Token     uuid.UUID  `db:"token"`
	UserAgent *string    `db:"user_agent"`
	IPAddress *string    `db:"ip_address"`
	ExpiresAt time.Time  `db:"expires_at"`
	RevokedAt *time.Time `db:"revoked_at"`
}
