package auth

import (
	"context"
	"fmt"

	"github.com/phonestore/backend/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// GoogleTokenExchanger exchanges authorization codes for Google ID tokens
type GoogleTokenExchanger struct {
	oauth *oauth2.Config
}

// NewGoogleTokenExchanger creates a new token exchanger for the Google endpoint
func NewGoogleTokenExchanger(cfg config.GoogleConfig) *GoogleTokenExchanger {
	return &GoogleTokenExchanger{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

// AuthCodeURL returns the Google consent page URL for the given CSRF state
func (e *GoogleTokenExchanger) AuthCodeURL(state string) string {
	return e.oauth.AuthCodeURL(state)
}

// ExchangeCode exchanges an authorization code for the ID token embedded in
// the token response
func (e *GoogleTokenExchanger) ExchangeCode(ctx context.Context, code string) (string, error) {
	token, err := e.oauth.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("code exchange failed: %w", err)
	}

	idToken, ok := token.Extra("id_token").(string)
	if !ok || idToken == "" {
		return "", fmt.Errorf("no id_token in token response")
	}

	return idToken, nil
}
