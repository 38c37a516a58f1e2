package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func signToken(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func runAuth(secret, header string) (*httptest.ResponseRecorder, string, bool) {
	var (
		seen   string
		called bool
	)
	handler := OptionalAuth(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		seen = UserIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec, seen, called
}

func TestOptionalAuthAnonymous(t *testing.T) {
	rec, userID, called := runAuth(testSecret, "")
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("expected pass-through, got status %d called=%v", rec.Code, called)
	}
	if userID != "" {
		t.Fatalf("expected anonymous user, got %q", userID)
	}
}

func TestOptionalAuthValidToken(t *testing.T) {
	tests := []struct {
		name string
		sub  interface{}
		want string
	}{
		{"string subject", "user-42", "user-42"},
		{"numeric subject", float64(42), "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{
				"sub": tt.sub,
				"exp": time.Now().Add(time.Hour).Unix(),
			})
			rec, userID, called := runAuth(testSecret, "Bearer "+token)
			if !called || rec.Code != http.StatusOK {
				t.Fatalf("expected success, got status %d", rec.Code)
			}
			if userID != tt.want {
				t.Fatalf("expected user %q, got %q", tt.want, userID)
			}
		})
	}
}

func TestOptionalAuthRejectsBadTokens(t *testing.T) {
	expired := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	wrongKey := signToken(t, jwt.SigningMethodHS256, []byte("other"), jwt.MapClaims{"sub": "user-1"})
	noSubject := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})

	tests := []struct {
		name   string
		header string
	}{
		{"expired", "Bearer " + expired},
		{"wrong key", "Bearer " + wrongKey},
		{"no subject", "Bearer " + noSubject},
		{"wrong scheme", "Basic abc"},
		{"empty bearer", "Bearer "},
		{"garbage", "Bearer not-a-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _, called := runAuth(testSecret, tt.header)
			if called {
				t.Fatal("handler should not be called")
			}
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestOptionalAuthDisabled(t *testing.T) {
	rec, userID, called := runAuth("", "Bearer whatever")
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("expected pass-through when secret is empty, got %d", rec.Code)
	}
	if userID != "" {
		t.Fatalf("expected no user, got %q", userID)
	}
}
