package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/phonestore/backend/services"
	"github.com/phonestore/backend/utils"
	"go.uber.org/zap"
)

// GoogleSignInRequest represents a request to sign in with a Google ID token
type GoogleSignInRequest struct {
	IDToken  string `json:"idToken"`
	FullName string `json:"fullName,omitempty"`
}

// SignInService defines the interface for sign-in operations
type SignInService interface {
	SignInWithGoogle(ctx context.Context, idToken, fullName string) (*services.SignInResult, error)
}

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	auth   SignInService
	logger *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(auth SignInService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		auth:   auth,
		logger: logger,
	}
}

// HandleGoogleSignIn handles POST /api/auth/google
func (h *AuthHandler) HandleGoogleSignIn(w http.ResponseWriter, r *http.Request) {
	var req GoogleSignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request body")
		return
	}

	if req.IDToken == "" {
		_ = utils.WriteBadRequest(w, "ID token is required")
		return
	}

	result, err := h.auth.SignInWithGoogle(r.Context(), req.IDToken, req.FullName)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	h.logger.Info("user signed in",
		zap.String("uid", result.User.UID.String()),
		zap.String("email", result.User.Email))

	_ = utils.WriteOKWithMessage(w, "Authentication successful", result.User)
}
