package auth

import "github.com/golang-jwt/jwt/v5"

// Claims is the JWT claims structure for zistal sessions. It embeds
// jwt.RegisteredClaims for the standard fields (exp, iat) and adds the
// username the session belongs to.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}
