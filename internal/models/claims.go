package models

import "github.com/golang-jwt/jwt/v5"

// SessionClaims identifies the checkout session a client is driving.
type SessionClaims struct {
	jwt.RegisteredClaims
	SessionID string `json:"session_id"`
}
