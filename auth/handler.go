package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"strings"
	"time"

	"github.com/phonestore/backend/config"
	"github.com/phonestore/backend/services"
	"github.com/phonestore/backend/utils"
	"go.uber.org/zap"
)

const (
	// StateCookieName is the cookie name for OAuth state (CSRF)
	StateCookieName = "oauth_state"
	// SessionCookieName is the cookie name for the session credential
	SessionCookieName = "auth_token"

	stateCookieMaxAge = 600
)

// timeNow is a test seam for cookie lifetime calculations
var timeNow = time.Now

// TokenExchanger builds consent URLs and exchanges authorization codes for ID tokens
type TokenExchanger interface {
	AuthCodeURL(state string) string
	ExchangeCode(ctx context.Context, code string) (idToken string, err error)
}

// SignInService reconciles a verified Google identity with the user directory
type SignInService interface {
	SignInWithGoogle(ctx context.Context, idToken, fullName string) (*services.SignInResult, error)
}

// Handler handles the hosted OAuth2 flow (login, callback, logout)
type Handler struct {
	cfg       config.GoogleConfig
	exchanger TokenExchanger
	signIn    SignInService
	logger    *zap.Logger
}

// NewHandler creates a new auth handler
func NewHandler(cfg config.GoogleConfig, exchanger TokenExchanger, signIn SignInService, logger *zap.Logger) *Handler {
	return &Handler{
		cfg:       cfg,
		exchanger: exchanger,
		signIn:    signIn,
		logger:    logger,
	}
}

// HandleLogin redirects to the Google consent page
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if h.cfg.ClientID == "" {
		h.logger.Error("google oauth not configured")
		_ = utils.WriteInternalServerError(w, "Authentication not configured")
		return
	}

	state, err := generateSecureState()
	if err != nil {
		h.logger.Error("failed to generate state", zap.Error(err))
		_ = utils.WriteInternalServerError(w, "Failed to initiate login")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     StateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   stateCookieMaxAge,
		HttpOnly: true,
		Secure:   h.secureCookies(),
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.exchanger.AuthCodeURL(state), http.StatusFound)
}

// HandleCallback exchanges the authorization code, signs the user in, and
// sets the session cookie
func (h *Handler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	state := r.URL.Query().Get("state")

	if code == "" {
		_ = utils.WriteBadRequest(w, "Missing authorization code")
		return
	}
	if state == "" {
		_ = utils.WriteBadRequest(w, "Missing state parameter")
		return
	}

	stateCookie, err := r.Cookie(StateCookieName)
	if err != nil || stateCookie.Value != state {
		_ = utils.WriteBadRequest(w, "Invalid or expired state")
		return
	}

	h.clearCookie(w, StateCookieName)

	idToken, err := h.exchanger.ExchangeCode(r.Context(), code)
	if err != nil {
		h.logger.Warn("token exchange failed", zap.Error(err))
		_ = utils.WriteUnauthorized(w, "Authentication failed")
		return
	}

	result, err := h.signIn.SignInWithGoogle(r.Context(), idToken, "")
	if err != nil {
		h.logger.Warn("sign-in failed", zap.Error(err))
		_ = utils.WriteUnauthorized(w, "Authentication failed")
		return
	}

	// Cookie lifetime tracks the Google token's own expiry
	maxAge := int(result.ExpiresAt.Sub(timeNow()).Seconds())
	if maxAge <= 0 {
		maxAge = 3600
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    result.Credential,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secureCookies(),
		SameSite: http.SameSiteLaxMode,
	})

	redirectURL := h.cfg.FrontEndURL
	if redirectURL == "" {
		redirectURL = "/"
	}
	http.Redirect(w, r, redirectURL, http.StatusFound)
}

// HandleLogout clears the session cookie and redirects to the front end
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.clearCookie(w, SessionCookieName)

	redirectURL := h.cfg.FrontEndURL
	if redirectURL == "" {
		redirectURL = "/"
	}
	http.Redirect(w, r, redirectURL, http.StatusFound)
}

func (h *Handler) clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies(),
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) secureCookies() bool {
	return strings.HasPrefix(h.cfg.RedirectURI, "https")
}

func generateSecureState() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
