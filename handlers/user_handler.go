package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/phonestore/backend/middleware"
	"github.com/phonestore/backend/models"
	"github.com/phonestore/backend/utils"
	"go.uber.org/zap"
)

// UserDirectory defines the interface for user profile reads
type UserDirectory interface {
	GetUser(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

// UserHandler handles user profile HTTP requests
type UserHandler struct {
	users  UserDirectory
	logger *zap.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(users UserDirectory, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		users:  users,
		logger: logger,
	}
}

// HandleGetMe handles GET /api/users/me
func (h *UserHandler) HandleGetMe(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipalFromContext(r.Context())
	if principal == nil {
		_ = utils.WriteUnauthorized(w, "")
		return
	}

	// The record can vanish between authentication and this read
	user, err := h.users.GetUser(r.Context(), principal.UserID)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, user)
}
