package utils

import (
	"github.com/dgrijalva/jwt-go"
)

// JwtKey verifies incoming identity tokens. It is loaded from JWT_SECRET at
// startup; the server itself never mints tokens, the identity provider does.
var JwtKey []byte

// Claims is the verified identity attached to a request: the subject's
// email plus the role snapshot embedded when the token was issued. The
// stored user record, not this snapshot, decides admin access.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.StandardClaims
}
