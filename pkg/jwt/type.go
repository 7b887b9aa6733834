package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Config holds JWT configuration
type Config struct {
	SecretKey string
	Issuer    string
	TTL       time.Duration
}

// Claims represents the session token claims. Subject carries the user id.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type managerImpl struct {
	secretKey []byte
	issuer    string
	ttl       time.Duration
}
