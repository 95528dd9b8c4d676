package handlers

import (
	"errors"
	"net/http"

	"github.com/phonestore/backend/services"
	"github.com/phonestore/backend/utils"
	"go.uber.org/zap"
)

// HandleServiceError maps domain errors to HTTP responses
func HandleServiceError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if err == nil {
		return
	}

	switch {
	case services.IsNotFoundError(err):
		if err := utils.WriteNotFound(w, errorMessage(err)); err != nil {
			logger.Error("failed to write not found response", zap.Error(err))
		}

	case services.IsValidationError(err):
		if err := utils.WriteBadRequest(w, errorMessage(err)); err != nil {
			logger.Error("failed to write bad request response", zap.Error(err))
		}

	case services.IsUnauthorizedError(err):
		if err := utils.WriteUnauthorized(w, errorMessage(err)); err != nil {
			logger.Error("failed to write unauthorized response", zap.Error(err))
		}

	case services.IsForbiddenError(err):
		if err := utils.WriteForbidden(w, errorMessage(err)); err != nil {
			logger.Error("failed to write forbidden response", zap.Error(err))
		}

	case services.IsConflictError(err):
		if err := utils.WriteConflict(w, errorMessage(err)); err != nil {
			logger.Error("failed to write conflict response", zap.Error(err))
		}

	case services.IsExternalError(err):
		// Upstream identity provider failures surface as 502
		logger.Error("external dependency failure", zap.Error(err))
		if err := utils.WriteJSON(w, http.StatusBadGateway, utils.APIResponse{
			Success: false,
			Message: errorMessage(err),
		}); err != nil {
			logger.Error("failed to write bad gateway response", zap.Error(err))
		}

	default:
		// Internal errors never leak their cause to the client
		logger.Error("internal error", zap.Error(err))
		if err := utils.WriteInternalServerError(w, ""); err != nil {
			logger.Error("failed to write internal error response", zap.Error(err))
		}
	}
}

// errorMessage returns the client-facing message of a domain error,
// without the wrapped cause
func errorMessage(err error) string {
	var domainErr *services.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}
	return err.Error()
}
