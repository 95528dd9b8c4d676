package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/phonestore/backend/models"
	"github.com/phonestore/backend/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serverUser() *models.User {
	return models.NewUser("g-123", "a@example.com", "Ada Lovelace", "")
}

// newAPIServer returns a test server speaking the API envelope
func newAPIServer(t *testing.T, user *models.User) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/google", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			IDToken string `json:"idToken"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.IDToken == "" {
			_ = utils.WriteBadRequest(w, "ID token is required")
			return
		}
		if req.IDToken == "bad-token" {
			_ = utils.WriteUnauthorized(w, "Unauthorized: Invalid token")
			return
		}
		_ = utils.WriteOKWithMessage(w, "Authentication successful", user)
	})
	mux.HandleFunc("/api/users/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer good-token" {
			_ = utils.WriteUnauthorized(w, "Unauthorized: Invalid token")
			return
		}
		_ = utils.WriteOK(w, user)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestLogin_ThenCurrentUser(t *testing.T) {
	user := serverUser()
	srv := newAPIServer(t, user)
	c := New(srv.URL)

	got, err := c.Login(context.Background(), "good-token", "")
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", got.Email)

	// login then current_user must reflect the just-logged-in user
	current := c.CurrentUser()
	require.NotNil(t, current)
	assert.Equal(t, user.UID, current.UID)
	assert.Equal(t, "g-123", current.GoogleID)
	assert.True(t, c.IsAuthenticated())
	assert.Equal(t, StateConfirmed, c.State())
}

func TestLogin_FailureLeavesSessionUnchanged(t *testing.T) {
	srv := newAPIServer(t, serverUser())
	c := New(srv.URL)

	_, err := c.Login(context.Background(), "bad-token", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)

	assert.False(t, c.IsAuthenticated())
	assert.Nil(t, c.CurrentUser())
	assert.Equal(t, StateUnknown, c.State())
}

func TestLogin_PersistsSession(t *testing.T) {
	user := serverUser()
	srv := newAPIServer(t, user)
	storage := NewMemoryStorage()
	c := New(srv.URL, WithStorage(storage))

	_, err := c.Login(context.Background(), "good-token", "")
	require.NoError(t, err)

	token, err := storage.Get(StorageKeyToken)
	require.NoError(t, err)
	assert.Equal(t, "good-token", token)

	raw, err := storage.Get(StorageKeyUser)
	require.NoError(t, err)
	var persisted models.User
	require.NoError(t, json.Unmarshal([]byte(raw), &persisted))
	assert.Equal(t, user.UID, persisted.UID)
}

func TestResume_OptimisticThenConfirmed(t *testing.T) {
	user := serverUser()
	srv := newAPIServer(t, user)
	storage := NewMemoryStorage()
	require.NoError(t, storage.Set(StorageKeyToken, "good-token"))

	c := New(srv.URL, WithStorage(storage))
	require.NoError(t, c.Resume(context.Background()))

	// optimistically authenticated before the server answered
	assert.True(t, c.IsAuthenticated())

	require.NoError(t, c.Revalidate(context.Background()))
	assert.Equal(t, StateConfirmed, c.State())
	require.NotNil(t, c.CurrentUser())
	assert.Equal(t, user.UID, c.CurrentUser().UID)
}

func TestResume_NoPersistedSession(t *testing.T) {
	srv := newAPIServer(t, serverUser())
	c := New(srv.URL)

	require.NoError(t, c.Resume(context.Background()))
	assert.False(t, c.IsAuthenticated())
	assert.Equal(t, StateUnknown, c.State())
}

func TestRevalidate_AuthFailureRevokes(t *testing.T) {
	srv := newAPIServer(t, serverUser())
	storage := NewMemoryStorage()
	require.NoError(t, storage.Set(StorageKeyToken, "stale-token"))

	c := New(srv.URL, WithStorage(storage))
	require.NoError(t, c.Resume(context.Background()))

	// the explicit call and the background revalidation race benignly;
	// either one demotes the session
	_ = c.Revalidate(context.Background())
	require.Eventually(t, func() bool { return c.State() == StateRevoked }, time.Second, 10*time.Millisecond)
	assert.False(t, c.IsAuthenticated())

	// both keys cleared together
	_, err := storage.Get(StorageKeyToken)
	assert.ErrorIs(t, err, ErrNoValue)
	_, err = storage.Get(StorageKeyUser)
	assert.ErrorIs(t, err, ErrNoValue)
}

func TestRevalidate_NetworkFailureStaysOptimistic(t *testing.T) {
	storage := NewMemoryStorage()
	require.NoError(t, storage.Set(StorageKeyToken, "good-token"))

	// server that is already gone
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	c := New(srv.URL, WithStorage(storage))
	require.NoError(t, c.Resume(context.Background()))

	err := c.Revalidate(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnauthorized)

	// offline must not force logout
	assert.True(t, c.IsAuthenticated())
	assert.Equal(t, StateOptimistic, c.State())
}

func TestLogout_StaleRevalidationCannotResurrect(t *testing.T) {
	user := serverUser()
	release := make(chan struct{})
	mux := http.NewServeMux()
	mux.HandleFunc("/api/users/me", func(w http.ResponseWriter, r *http.Request) {
		<-release
		_ = utils.WriteOK(w, user)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	storage := NewMemoryStorage()
	require.NoError(t, storage.Set(StorageKeyToken, "good-token"))

	c := New(srv.URL, WithStorage(storage))
	require.NoError(t, c.Resume(context.Background()))

	done := make(chan error, 1)
	go func() { done <- c.Revalidate(context.Background()) }()

	// let the fetch get in flight, then log out
	time.Sleep(50 * time.Millisecond)
	c.Logout()
	assert.False(t, c.IsAuthenticated())

	close(release)
	require.NoError(t, <-done)

	// the late response must not flip the session back
	assert.False(t, c.IsAuthenticated())
	assert.Nil(t, c.CurrentUser())
	assert.Equal(t, StateUnknown, c.State())
}

func TestFetchProfile_RefreshesSnapshot(t *testing.T) {
	user := serverUser()
	srv := newAPIServer(t, user)
	c := New(srv.URL)

	_, err := c.Login(context.Background(), "good-token", "")
	require.NoError(t, err)

	got, err := c.FetchProfile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, user.UID, got.UID)
	assert.Equal(t, StateConfirmed, c.State())
}

func TestFetchProfile_WithoutSession(t *testing.T) {
	srv := newAPIServer(t, serverUser())
	c := New(srv.URL)

	_, err := c.FetchProfile(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestListOrders_UnauthorizedClearsSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/orders", func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteUnauthorized(w, "Unauthorized: Invalid token")
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	storage := NewMemoryStorage()
	require.NoError(t, storage.Set(StorageKeyToken, "expired-token"))

	c := New(srv.URL, WithStorage(storage))
	require.NoError(t, c.Resume(context.Background()))
	require.True(t, c.IsAuthenticated())

	_, err := c.ListOrders(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.False(t, c.IsAuthenticated())
	assert.Equal(t, StateRevoked, c.State())
}

func TestSubscribe_NotifiesOnTransitions(t *testing.T) {
	srv := newAPIServer(t, serverUser())
	c := New(srv.URL)

	var seen []SessionState
	unsubscribe := c.Subscribe(func(s SessionState) { seen = append(seen, s) })

	_, err := c.Login(context.Background(), "good-token", "")
	require.NoError(t, err)
	c.Logout()

	assert.Equal(t, []SessionState{StateConfirmed, StateUnknown}, seen)

	unsubscribe()
	_, _ = c.Login(context.Background(), "good-token", "")
	assert.Len(t, seen, 2)
}

func TestFileStorage_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	storage, err := NewFileStorage(path)
	require.NoError(t, err)

	require.NoError(t, storage.Set(StorageKeyToken, "tok"))
	require.NoError(t, storage.Set(StorageKeyUser, `{"email":"a@example.com"}`))

	// a fresh instance sees the persisted values
	reopened, err := NewFileStorage(path)
	require.NoError(t, err)

	token, err := reopened.Get(StorageKeyToken)
	require.NoError(t, err)
	assert.Equal(t, "tok", token)

	require.NoError(t, reopened.Delete(StorageKeyToken))
	_, err = reopened.Get(StorageKeyToken)
	assert.ErrorIs(t, err, ErrNoValue)
}

func TestSessionResumeAcrossProcesses(t *testing.T) {
	user := serverUser()
	srv := newAPIServer(t, user)
	path := filepath.Join(t.TempDir(), "session.json")

	storage, err := NewFileStorage(path)
	require.NoError(t, err)
	first := New(srv.URL, WithStorage(storage))
	_, err = first.Login(context.Background(), "good-token", "")
	require.NoError(t, err)

	// a second client sharing the file resumes the same session
	storage2, err := NewFileStorage(path)
	require.NoError(t, err)
	second := New(srv.URL, WithStorage(storage2))
	require.NoError(t, second.Resume(context.Background()))
	require.NoError(t, second.Revalidate(context.Background()))

	assert.Equal(t, StateConfirmed, second.State())
	assert.Equal(t, user.UID, second.CurrentUser().UID)
}
