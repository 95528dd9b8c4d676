package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/phonestore/backend/googleauth"
	"github.com/phonestore/backend/models"
	"github.com/phonestore/backend/repositories"
	"go.uber.org/zap"
)

// TokenVerifier validates a Google ID token and returns the verified identity
type TokenVerifier interface {
	ValidateToken(ctx context.Context, tokenString string) (*googleauth.Identity, error)
}

// SignInResult is the outcome of a successful Google sign-in.
// Credential is the bearer credential the client presents on later requests;
// its lifetime is coupled to the Google token's own expiry.
type SignInResult struct {
	User       *models.User
	Credential string
	ExpiresAt  time.Time
}

// AuthService reconciles Google identities with the local user directory
type AuthService struct {
	verifier TokenVerifier
	users    repositories.UserRepository
	logger   *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(verifier TokenVerifier, users repositories.UserRepository, logger *zap.Logger) *AuthService {
	return &AuthService{
		verifier: verifier,
		users:    users,
		logger:   logger,
	}
}

// SignInWithGoogle verifies a Google ID token and returns the matching local
// user, creating the directory record on first sign-in. An explicit fullName
// takes precedence over the token's name claim for new users.
func (s *AuthService) SignInWithGoogle(ctx context.Context, idToken, fullName string) (*SignInResult, error) {
	if idToken == "" {
		return nil, ErrMissingToken
	}

	identity, err := s.verifier.ValidateToken(ctx, idToken)
	if err != nil {
		return nil, s.mapVerifierError(err)
	}

	user, err := s.users.GetByGoogleID(ctx, identity.Subject)
	switch {
	case err == nil:
		s.touchLastLogin(ctx, user)
	case errors.Is(err, repositories.ErrNotFound):
		user, err = s.registerUser(ctx, identity, fullName)
		if err != nil {
			return nil, err
		}
	default:
		return nil, WrapInternal("failed to look up user", err)
	}

	return &SignInResult{
		User:       user,
		Credential: idToken,
		ExpiresAt:  identity.ExpiresAt,
	}, nil
}

// GetUser retrieves a user from the directory by internal id
func (s *AuthService) GetUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, WrapInternal("failed to get user", err)
	}
	return user, nil
}

// ResolveGoogleID looks up the directory record for a verified Google subject
func (s *AuthService) ResolveGoogleID(ctx context.Context, googleID string) (*models.User, error) {
	user, err := s.users.GetByGoogleID(ctx, googleID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, WrapInternal("failed to resolve user", err)
	}
	return user, nil
}

// registerUser creates a directory record for a first-time identity. On a
// unique-constraint conflict a concurrent sign-in won the race, so the
// canonical row is re-fetched instead.
func (s *AuthService) registerUser(ctx context.Context, identity *googleauth.Identity, fullName string) (*models.User, error) {
	displayName := fullName
	if displayName == "" {
		displayName = identity.Name
	}

	user := models.NewUser(identity.Subject, identity.Email, displayName, identity.Picture)

	err := s.users.Create(ctx, user)
	if err == nil {
		s.logger.Info("registered new user",
			zap.String("uid", user.UID.String()),
			zap.String("email", user.Email))
		return user, nil
	}

	if errors.Is(err, repositories.ErrDuplicateGoogleID) {
		existing, fetchErr := s.users.GetByGoogleID(ctx, identity.Subject)
		if fetchErr != nil {
			return nil, WrapInternal("failed to resolve user after duplicate sign-in", fetchErr)
		}
		s.touchLastLogin(ctx, existing)
		return existing, nil
	}

	return nil, WrapInternal("failed to create user", err)
}

// touchLastLogin records the sign-in time. Failure is logged, never fatal.
func (s *AuthService) touchLastLogin(ctx context.Context, user *models.User) {
	now := time.Now().UTC()
	if err := s.users.TouchLastLogin(ctx, user.UID); err != nil {
		s.logger.Warn("failed to update last login",
			zap.String("uid", user.UID.String()),
			zap.Error(err))
	}
	user.LastLogin = now
}

func (s *AuthService) mapVerifierError(err error) error {
	switch {
	case errors.Is(err, googleauth.ErrTokenExpired):
		return NewDomainError(ErrorTypeUnauthorized, "authentication token expired", err)
	case errors.Is(err, googleauth.ErrJWKSFetchFailed):
		return WrapExternal("identity provider unavailable", err)
	default:
		return NewDomainError(ErrorTypeUnauthorized, "invalid authentication token", err)
	}
}
