package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phonestore/backend/middleware"
	"github.com/phonestore/backend/models"
	"github.com/phonestore/backend/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func authedRequest(method, target string, user *models.User) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	ctx := middleware.WithPrincipal(req.Context(), &middleware.Principal{
		UserID:   user.UID,
		GoogleID: user.GoogleID,
		Email:    user.Email,
	})
	return req.WithContext(ctx)
}

func TestHandleGetMe_Success(t *testing.T) {
	users := new(MockUserDirectory)
	handler := NewUserHandler(users, zap.NewNop())

	user := models.NewUser("google-sub-123", "ada@example.com", "Ada", "")
	users.On("GetUser", mock.Anything, user.UID).Return(user, nil)

	rec := httptest.NewRecorder()
	handler.HandleGetMe(rec, authedRequest(http.MethodGet, "/api/users/me", user))

	assert.Equal(t, http.StatusOK, rec.Code)
	success, _, data := decodeEnvelope(t, rec)
	assert.True(t, success)

	var got models.User
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, user.UID, got.UID)
}

func TestHandleGetMe_NoPrincipal(t *testing.T) {
	users := new(MockUserDirectory)
	handler := NewUserHandler(users, zap.NewNop())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	handler.HandleGetMe(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	users.AssertNotCalled(t, "GetUser", mock.Anything, mock.Anything)
}

func TestHandleGetMe_RecordVanished(t *testing.T) {
	users := new(MockUserDirectory)
	handler := NewUserHandler(users, zap.NewNop())

	user := models.NewUser("google-sub-123", "ada@example.com", "Ada", "")
	users.On("GetUser", mock.Anything, user.UID).Return(nil, services.ErrUserNotFound)

	rec := httptest.NewRecorder()
	handler.HandleGetMe(rec, authedRequest(http.MethodGet, "/api/users/me", user))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
