// Package tokencache caches verified token identities so repeated requests
// within a token's validity window skip signature verification.
package tokencache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/phonestore/backend/googleauth"
	"go.uber.org/zap"
)

// ErrCacheMiss is returned by a Store when the key is absent
var ErrCacheMiss = errors.New("tokencache: cache miss")

// Store is the key-value backend for cached identities
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// Validator verifies a raw token and returns the identity it asserts
type Validator interface {
	ValidateToken(ctx context.Context, token string) (*googleauth.Identity, error)
}

const keyPrefix = "tokencache:"

// CachingValidator decorates a Validator with a Store. Entries never outlive
// the token's own expiry, so a hit is always within the validity window.
// Store failures fall back to direct verification.
type CachingValidator struct {
	inner  Validator
	store  Store
	maxTTL time.Duration
	logger *zap.Logger
}

// NewCachingValidator creates a new CachingValidator. maxTTL bounds how long
// an entry may live regardless of token lifetime.
func NewCachingValidator(inner Validator, store Store, maxTTL time.Duration, logger *zap.Logger) *CachingValidator {
	if maxTTL <= 0 {
		maxTTL = 5 * time.Minute
	}
	return &CachingValidator{
		inner:  inner,
		store:  store,
		maxTTL: maxTTL,
		logger: logger,
	}
}

// ValidateToken returns the cached identity for the token, verifying and
// caching on a miss
func (v *CachingValidator) ValidateToken(ctx context.Context, token string) (*googleauth.Identity, error) {
	key := cacheKey(token)

	if cached, err := v.store.Get(ctx, key); err == nil {
		var identity googleauth.Identity
		if jsonErr := json.Unmarshal([]byte(cached), &identity); jsonErr == nil {
			if time.Now().Before(identity.ExpiresAt) {
				return &identity, nil
			}
			// expired entry that outlived its TTL bound
			_ = v.store.Del(ctx, key)
		}
	} else if !errors.Is(err, ErrCacheMiss) {
		v.logger.Warn("token cache read failed", zap.Error(err))
	}

	identity, err := v.inner.ValidateToken(ctx, token)
	if err != nil {
		return nil, err
	}

	v.cache(ctx, key, identity)
	return identity, nil
}

// Invalidate drops the cached identity for a token
func (v *CachingValidator) Invalidate(ctx context.Context, token string) error {
	return v.store.Del(ctx, cacheKey(token))
}

func (v *CachingValidator) cache(ctx context.Context, key string, identity *googleauth.Identity) {
	ttl := time.Until(identity.ExpiresAt)
	if ttl <= 0 {
		return
	}
	if ttl > v.maxTTL {
		ttl = v.maxTTL
	}

	payload, err := json.Marshal(identity)
	if err != nil {
		v.logger.Warn("failed to marshal identity for cache", zap.Error(err))
		return
	}

	if err := v.store.Set(ctx, key, string(payload), ttl); err != nil {
		v.logger.Warn("token cache write failed", zap.Error(err))
	}
}

// cacheKey hashes the raw token so credentials are never stored as keys
func cacheKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return keyPrefix + hex.EncodeToString(sum[:])
}
