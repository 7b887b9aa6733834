package jwt

import "fmt"

// Manager verifies and issues HS256 session tokens.
// Implementations are safe for concurrent use.
type Manager interface {
	Verify(token string) (*Claims, error)
	Generate(userID, role string) (string, error)
}

// New creates a Manager. The secret must be at least MinSecretKeyLen bytes.
func New(cfg Config) (Manager, error) {
	if len(cfg.SecretKey) < MinSecretKeyLen {
		return nil, fmt.Errorf("%w: need at least %d characters, got %d", ErrSecretTooShort, MinSecretKeyLen, len(cfg.SecretKey))
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &managerImpl{
		secretKey: []byte(cfg.SecretKey),
		issuer:    cfg.Issuer,
		ttl:       ttl,
	}, nil
}
