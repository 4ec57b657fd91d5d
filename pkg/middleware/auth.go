package middleware

import (
	"net/http"
	"strings"

	"planetarium-booking/internal/data/repository"
	"planetarium-booking/pkg/utils"

	"go.uber.org/zap"
)

// AuthSession resolves "Authorization: Bearer <token>" into the current
// user id and role.
func AuthSession(sessions repository.AuthSessionRepository, users repository.UserRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	logger = logger.With(zap.String("middleware", "auth"))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				utils.ResponseUnauthorized(w, "Missing or malformed authorization token. Use: Bearer <token>")
				return
			}

			session, err := sessions.FindValidSession(r.Context(), token)
			if err != nil {
				logger.Error("Failed to validate session", zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}
			if session == nil {
				utils.ResponseUnauthorized(w, "Invalid or expired session")
				return
			}

			user, err := users.FindByID(r.Context(), session.UserID)
			if err != nil {
				logger.Error("Failed to load session user",
					zap.Error(err),
					zap.String("user_id", session.UserID.String()),
				)
				utils.ResponseInternalError(w, "Internal server error")
				return
			}
			if user == nil || !user.IsActive || user.IsDeleted() {
				logger.Warn("Session of missing or inactive user", zap.String("user_id", session.UserID.String()))
				utils.ResponseUnauthorized(w, "Invalid or expired session")
				return
			}

			ctx := utils.SetUserContext(r.Context(), user.ID, string(user.Role))
			ctx = utils.SetTokenContext(ctx, token)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Admin requires the role set by AuthSession to be admin.
func Admin(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := utils.GetUserIDFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			if !utils.IsAdminFromContext(r.Context()) {
				logger.Warn("Non-admin access attempt",
					zap.String("user_id", userID.String()),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
				)
				utils.ResponseForbidden(w, "Admin access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
