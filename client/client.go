// Package client is the Go SDK for the phone store API. It owns the
// client-side session: the bearer credential, the cached user snapshot, and
// their reconciliation with server truth on login, resume, and profile fetch.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/phonestore/backend/models"
)

// SessionState is the lifecycle state of the client session
type SessionState int

const (
	// StateUnknown means no session exists (fresh start or after logout)
	StateUnknown SessionState = iota
	// StateOptimistic means a persisted session was restored but not yet
	// revalidated against the server
	StateOptimistic
	// StateConfirmed means the server has vouched for the session
	StateConfirmed
	// StateRevoked means the server explicitly rejected the credential
	StateRevoked
)

func (s SessionState) String() string {
	switch s {
	case StateOptimistic:
		return "optimistic"
	case StateConfirmed:
		return "confirmed"
	case StateRevoked:
		return "revoked"
	default:
		return "unknown"
	}
}

var (
	// ErrNotAuthenticated is returned when an operation requires a session
	ErrNotAuthenticated = errors.New("client: not authenticated")
	// ErrUnauthorized is returned when the server rejects the credential
	ErrUnauthorized = errors.New("client: unauthorized")
)

// APIError is a non-2xx response carrying the server's envelope message
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("client: server returned %d: %s", e.StatusCode, e.Message)
}

// Is maps 401 responses onto ErrUnauthorized for errors.Is checks
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.StatusCode == http.StatusUnauthorized
}

// envelope mirrors the server's response shape
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Count   *int            `json:"count"`
}

// Client is the session-owning API client. All session mutations are
// serialized through its mutex; reads are cheap snapshots.
type Client struct {
	baseURL    string
	httpClient *http.Client
	storage    Storage

	mu          sync.Mutex
	state       SessionState
	user        *models.User
	credential  string
	epoch       uint64
	subscribers map[int]func(SessionState)
	nextSubID   int
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithStorage overrides the default in-memory storage
func WithStorage(s Storage) Option {
	return func(c *Client) { c.storage = s }
}

// New creates a Client for the API at baseURL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:     baseURL,
		httpClient:  &http.Client{Timeout: 15 * time.Second},
		storage:     NewMemoryStorage(),
		state:       StateUnknown,
		subscribers: make(map[int]func(SessionState)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Login exchanges a Google ID token for a session. On success the session is
// stored before the user is returned, so CurrentUser observed immediately
// after Login reflects the just-logged-in user. On failure the session is
// unchanged.
func (c *Client) Login(ctx context.Context, idToken, fullName string) (*models.User, error) {
	payload, err := json.Marshal(map[string]string{
		"idToken":  idToken,
		"fullName": fullName,
	})
	if err != nil {
		return nil, err
	}

	body, err := c.do(ctx, http.MethodPost, "/api/auth/google", "", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := json.Unmarshal(body.Data, &user); err != nil {
		return nil, fmt.Errorf("client: malformed user payload: %w", err)
	}

	c.mu.Lock()
	c.credential = idToken
	c.user = &user
	c.epoch++
	c.persistLocked()
	c.setStateLocked(StateConfirmed)
	c.mu.Unlock()

	return &user, nil
}

// Resume restores a persisted session, optimistically marks it authenticated,
// and revalidates it against the server in the background. Revalidation
// demotes the session only on an explicit authorization failure; network
// failures leave the optimistic session in place.
func (c *Client) Resume(ctx context.Context) error {
	token, err := c.storage.Get(StorageKeyToken)
	if err != nil {
		if errors.Is(err, ErrNoValue) {
			return nil
		}
		return err
	}

	var user *models.User
	if raw, err := c.storage.Get(StorageKeyUser); err == nil {
		var u models.User
		if json.Unmarshal([]byte(raw), &u) == nil {
			user = &u
		}
	}

	c.mu.Lock()
	c.credential = token
	c.user = user
	c.setStateLocked(StateOptimistic)
	c.mu.Unlock()

	go func() { _ = c.Revalidate(context.WithoutCancel(ctx)) }()
	return nil
}

// Revalidate re-fetches the profile for the current session. A session
// change (login or logout) while the fetch is in flight makes the result a
// no-op, so a slow response can never resurrect a cleared session.
func (c *Client) Revalidate(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateOptimistic && c.state != StateConfirmed {
		c.mu.Unlock()
		return nil
	}
	epoch := c.epoch
	credential := c.credential
	c.mu.Unlock()

	user, err := c.getProfile(ctx, credential)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.epoch != epoch {
		// session was replaced or cleared while the fetch was in flight
		return nil
	}

	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			c.clearLocked()
			c.setStateLocked(StateRevoked)
			return err
		}
		// transient failure: stay optimistic, tolerate offline
		return err
	}

	c.user = user
	c.persistLocked()
	c.setStateLocked(StateConfirmed)
	return nil
}

// FetchProfile fetches the canonical profile and refreshes the local
// snapshot. An authorization failure clears the session.
func (c *Client) FetchProfile(ctx context.Context) (*models.User, error) {
	c.mu.Lock()
	if c.credential == "" {
		c.mu.Unlock()
		return nil, ErrNotAuthenticated
	}
	epoch := c.epoch
	credential := c.credential
	c.mu.Unlock()

	user, err := c.getProfile(ctx, credential)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.epoch != epoch {
		if err != nil {
			return nil, err
		}
		return user, nil
	}

	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			c.clearLocked()
			c.setStateLocked(StateRevoked)
		}
		return nil, err
	}

	c.user = user
	c.persistLocked()
	c.setStateLocked(StateConfirmed)
	return user, nil
}

// Logout clears the session. It always succeeds locally; any late responses
// from in-flight revalidations are discarded.
func (c *Client) Logout() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.epoch++
	c.clearLocked()
	c.setStateLocked(StateUnknown)
}

// IsAuthenticated reports whether the session is usable (optimistic or confirmed)
func (c *Client) IsAuthenticated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == StateOptimistic || c.state == StateConfirmed
}

// CurrentUser returns the cached user snapshot, or nil
func (c *Client) CurrentUser() *models.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.user == nil {
		return nil
	}
	snapshot := *c.user
	return &snapshot
}

// State returns the current session state
func (c *Client) State() SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe registers a callback invoked on every state change. The returned
// function unsubscribes it. Callbacks run synchronously under the session
// lock and must not call back into the Client.
func (c *Client) Subscribe(fn func(SessionState)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSubID
	c.nextSubID++
	c.subscribers[id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subscribers, id)
	}
}

// ListProducts fetches the catalog, optionally filtered by brand
func (c *Client) ListProducts(ctx context.Context, brand string) ([]*models.Product, error) {
	path := "/api/products"
	if brand != "" {
		path += "?brand=" + brand
	}

	body, err := c.do(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return nil, err
	}

	var products []*models.Product
	if err := json.Unmarshal(body.Data, &products); err != nil {
		return nil, fmt.Errorf("client: malformed product payload: %w", err)
	}
	return products, nil
}

// ListOrders fetches the caller's order history, newest first
func (c *Client) ListOrders(ctx context.Context) ([]*models.Order, error) {
	body, err := c.authedDo(ctx, http.MethodGet, "/api/orders", nil)
	if err != nil {
		return nil, err
	}

	var orders []*models.Order
	if err := json.Unmarshal(body.Data, &orders); err != nil {
		return nil, fmt.Errorf("client: malformed order payload: %w", err)
	}
	return orders, nil
}

// PlaceOrder submits a new order
func (c *Client) PlaceOrder(ctx context.Context, items []models.OrderItem, totalAmount float64) (*models.Order, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"products":    items,
		"totalAmount": totalAmount,
	})
	if err != nil {
		return nil, err
	}

	body, err := c.authedDo(ctx, http.MethodPost, "/api/orders", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}

	var order models.Order
	if err := json.Unmarshal(body.Data, &order); err != nil {
		return nil, fmt.Errorf("client: malformed order payload: %w", err)
	}
	return &order, nil
}

// getProfile fetches /api/users/me with an explicit credential
func (c *Client) getProfile(ctx context.Context, credential string) (*models.User, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/users/me", credential, nil)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := json.Unmarshal(body.Data, &user); err != nil {
		return nil, fmt.Errorf("client: malformed user payload: %w", err)
	}
	return &user, nil
}

// authedDo performs a request with the session credential, clearing the
// session on a 401 response
func (c *Client) authedDo(ctx context.Context, method, path string, body io.Reader) (*envelope, error) {
	c.mu.Lock()
	if c.credential == "" {
		c.mu.Unlock()
		return nil, ErrNotAuthenticated
	}
	epoch := c.epoch
	credential := c.credential
	c.mu.Unlock()

	resp, err := c.do(ctx, method, path, credential, body)
	if err != nil && errors.Is(err, ErrUnauthorized) {
		c.mu.Lock()
		if c.epoch == epoch {
			c.clearLocked()
			c.setStateLocked(StateRevoked)
		}
		c.mu.Unlock()
	}
	return resp, err
}

// do performs a single HTTP round trip and decodes the response envelope
func (c *Client) do(ctx context.Context, method, path, credential string, body io.Reader) (*envelope, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if credential != "" {
		req.Header.Set("Authorization", "Bearer "+credential)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var env envelope
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil, fmt.Errorf("client: malformed response: %w", err)
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: env.Message}
	}

	return &env, nil
}

// persistLocked writes the session to storage; callers hold the mutex
func (c *Client) persistLocked() {
	if c.credential != "" {
		_ = c.storage.Set(StorageKeyToken, c.credential)
	}
	if c.user != nil {
		if raw, err := json.Marshal(c.user); err == nil {
			_ = c.storage.Set(StorageKeyUser, string(raw))
		}
	}
}

// clearLocked drops the credential and snapshot everywhere; callers hold the mutex
func (c *Client) clearLocked() {
	c.credential = ""
	c.user = nil
	_ = c.storage.Delete(StorageKeyToken)
	_ = c.storage.Delete(StorageKeyUser)
}

// setStateLocked transitions the state and notifies subscribers; callers hold the mutex
func (c *Client) setStateLocked(next SessionState) {
	if c.state == next {
		return
	}
	c.state = next
	for _, fn := range c.subscribers {
		fn(next)
	}
}
