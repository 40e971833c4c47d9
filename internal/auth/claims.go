package auth

import "github.com/golang-jwt/jwt/v5"

// Claims are the only supported JWT claims shape for this service.
// The role claim is a snapshot taken at issuance; authorization decisions
// must use the account state reloaded per request, never this field alone.
type Claims struct {
	jwt.RegisteredClaims

	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}
