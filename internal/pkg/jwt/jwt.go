package jwt

import (
	"fmt"

	"github.com/advwell/scheduling-backend/internal/config"
	"github.com/golang-jwt/jwt/v4"
)

type InvalidTokenError struct {
	reason string
}

func (e *InvalidTokenError) Error() string {
	return "invalid token: " + e.reason
}

// Manager verifies the access tokens issued by the firm's identity service;
// both sides share the signing secret. This service never mints tokens.
type Manager struct {
	secret []byte
}

func NewManager() *Manager {
	return &Manager{
		secret: []byte(config.Secret()),
	}
}

func (m *Manager) GetIdFromToken(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return "", &InvalidTokenError{reason: err.Error()}
	}

	if !parsed.Valid || claims.Subject == "" {
		return "", &InvalidTokenError{reason: "missing subject"}
	}

	return claims.Subject, nil
}
