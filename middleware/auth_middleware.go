package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/phonestore/backend/googleauth"
	"github.com/phonestore/backend/models"
	"github.com/phonestore/backend/services"
	"github.com/phonestore/backend/utils"
	"go.uber.org/zap"
)

// TokenValidator defines the interface for validating Google ID tokens
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*googleauth.Identity, error)
}

// UserResolver maps a verified Google subject to the local directory record
type UserResolver interface {
	ResolveGoogleID(ctx context.Context, googleID string) (*models.User, error)
}

// AuthMiddleware provides authentication middleware functionality
type AuthMiddleware struct {
	validator TokenValidator
	users     UserResolver
	logger    *zap.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(validator TokenValidator, users UserResolver, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		validator: validator,
		users:     users,
		logger:    logger,
	}
}

// authTokenCookieName is the cookie name set by the hosted OAuth callback.
// The Authorization header takes precedence when both are present.
const authTokenCookieName = "auth_token"

const (
	msgNoToken      = "Unauthorized: No token provided"
	msgInvalidToken = "Unauthorized: Invalid token"
)

// RequireAuth is a middleware that requires a valid Google ID token belonging
// to a known user. A structurally absent or malformed credential is rejected
// before any network call.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		requestID := GetRequestIDFromContext(ctx)

		token := extractToken(r)
		if token == "" {
			m.logger.Warn("missing token",
				zap.String("request_id", requestID))
			_ = utils.WriteUnauthorized(w, msgNoToken)
			return
		}

		identity, err := m.validator.ValidateToken(ctx, token)
		if err != nil {
			m.logger.Warn("token validation failed",
				zap.String("request_id", requestID),
				zap.Error(err))
			_ = utils.WriteUnauthorized(w, msgInvalidToken)
			return
		}

		// A verified token with no directory record is still a 401:
		// verification proves identity, not membership.
		user, err := m.users.ResolveGoogleID(ctx, identity.Subject)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				m.logger.Warn("verified token for unknown user",
					zap.String("request_id", requestID),
					zap.String("sub", identity.Subject))
				_ = utils.WriteUnauthorized(w, msgInvalidToken)
				return
			}
			m.logger.Error("user resolution failed",
				zap.String("request_id", requestID),
				zap.Error(err))
			_ = utils.WriteInternalServerError(w, "")
			return
		}

		ctx = WithPrincipal(ctx, &Principal{
			UserID:   user.UID,
			GoogleID: user.GoogleID,
			Email:    user.Email,
		})

		m.logger.Debug("authentication successful",
			zap.String("request_id", requestID),
			zap.String("uid", user.UID.String()),
			zap.String("email", user.Email))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// extractToken extracts the credential from the Authorization header
// ("Bearer TOKEN") or the auth_token cookie set by the OAuth callback.
func extractToken(r *http.Request) string {
	if token := extractBearerToken(r); token != "" {
		return token
	}
	if cookie, err := r.Cookie(authTokenCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return ""
}

// extractBearerToken extracts the Bearer token from the Authorization header
func extractBearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
