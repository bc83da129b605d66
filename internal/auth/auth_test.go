// server/internal/auth/auth_test.go
package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatalf("hash must not equal the plain password")
	}
	if !CheckPasswordHash("s3cret-pass", hash) {
		t.Fatalf("expected the password to verify")
	}
	if CheckPasswordHash("wrong-pass", hash) {
		t.Fatalf("expected a wrong password to fail")
	}
}

func TestGenerateJWT(t *testing.T) {
	JwtSecret = []byte("test-secret")

	tokenString, err := GenerateJWT("eve@acme.test", "Eve", "employee")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	claims := &JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return JwtSecret, nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("expected a valid token, got %v", err)
	}
	if claims.Email != "eve@acme.test" || claims.Name != "Eve" || claims.Role != "employee" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}
