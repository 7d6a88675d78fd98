package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

func signedToken(t *testing.T, secret string, claims jwt.RegisteredClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestGetIdFromToken(t *testing.T) {
	m := &Manager{secret: []byte("test-secret")}

	token := signedToken(t, "test-secret", jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})

	id, err := m.GetIdFromToken(token)
	if err != nil {
		t.Fatalf("GetIdFromToken error: %v", err)
	}
	if id != "user-1" {
		t.Errorf("id = %q, want user-1", id)
	}
}

func TestGetIdFromTokenRejects(t *testing.T) {
	m := &Manager{secret: []byte("test-secret")}

	tests := []struct {
		name  string
		token string
	}{
		{"wrong secret", signedToken(t, "other-secret", jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})},
		{"expired", signedToken(t, "test-secret", jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		})},
		{"missing subject", signedToken(t, "test-secret", jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})},
		{"garbage", "not.a.token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.GetIdFromToken(tt.token)

			invalidErr := &InvalidTokenError{}
			if !errors.As(err, &invalidErr) {
				t.Fatalf("err = %v, want InvalidTokenError", err)
			}
		})
	}
}
