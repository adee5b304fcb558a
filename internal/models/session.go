package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is the gateway-side session record replacing the old browser
// localStorage token cache. It binds a gateway session ID to the upstream
// API token and the authenticated user's profile, and is torn down
// explicitly on logout.
type Session struct {
	ID            string    `json:"id"`
	UpstreamToken string    `json:"upstream_token"`
	UserID        int       `json:"user_id"`
	Nome          string    `json:"nome"`
	Tipo          UserTipo  `json:"tipo"`
	CT            int       `json:"ct,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	ExpiresAt     time.Time `json:"expires_at"`
}

// SessionClaims are the JWT claims carried by the gateway session token.
type SessionClaims struct {
	SessionID string   `json:"sid"`
	UserID    int      `json:"uid"`
	Tipo      UserTipo `json:"tipo"`
	jwt.RegisteredClaims
}
