package googleauth

import "time"

// Identity is the verified external identity extracted from a Google ID
// token. It contains facts asserted by the issuer only; no user-directory
// decisions are made at this layer.
type Identity struct {
	Subject       string // Google's stable subject identifier (sub)
	Email         string
	EmailVerified bool
	Name          string
	Picture       string
	IssuedAt      time.Time
	ExpiresAt     time.Time
}

// identityFromClaims builds an Identity from validated token claims.
// Callers must have checked Subject is non-empty.
func identityFromClaims(claims *Claims) *Identity {
	id := &Identity{
		Subject:       claims.Subject,
		Email:         claims.Email,
		EmailVerified: claims.EmailVerified,
		Name:          claims.Name,
		Picture:       claims.Picture,
	}
	if claims.IssuedAt != nil {
		id.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		id.ExpiresAt = claims.ExpiresAt.Time
	}
	return id
}
