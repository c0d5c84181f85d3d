package server

import (
	"net/http"
	"testing"

	"github.com/foliotrack/foliotrack/internal/common"
	"github.com/foliotrack/foliotrack/internal/models"
)

func TestSignAndValidateJWT_RoundTrip(t *testing.T) {
	cfg := &common.AuthConfig{
		JWTSecret:   "test-secret-key",
		TokenExpiry: "1h",
	}
	user := &models.User{
		Username: "alice",
		Email:    "alice@example.com",
	}

	token, err := signJWT(user, cfg)
	if err != nil {
		t.Fatalf("signJWT failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	claims, err := validateJWT(token, []byte(cfg.JWTSecret))
	if err != nil {
		t.Fatalf("validateJWT failed: %v", err)
	}
	if claims["sub"] != "alice" {
		t.Errorf("expected sub=alice, got %v", claims["sub"])
	}
	if claims["email"] != "alice@example.com" {
		t.Errorf("expected email=alice@example.com, got %v", claims["email"])
	}
	if claims["iss"] != "foliotrack-server" {
		t.Errorf("expected iss=foliotrack-server, got %v", claims["iss"])
	}
}

func TestValidateJWT_ExpiredToken(t *testing.T) {
	cfg := &common.AuthConfig{
		JWTSecret:   "test-secret-key",
		TokenExpiry: "-1h", // negative duration = already expired
	}
	user := &models.User{Username: "alice"}

	token, err := signJWT(user, cfg)
	if err != nil {
		t.Fatalf("signJWT failed: %v", err)
	}

	if _, err := validateJWT(token, []byte(cfg.JWTSecret)); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestValidateJWT_WrongSecret(t *testing.T) {
	cfg := &common.AuthConfig{
		JWTSecret:   "test-secret-key",
		TokenExpiry: "1h",
	}
	token, err := signJWT(&models.User{Username: "alice"}, cfg)
	if err != nil {
		t.Fatalf("signJWT failed: %v", err)
	}

	if _, err := validateJWT(token, []byte("other-secret")); err == nil {
		t.Error("expected error for wrong secret")
	}
}

func TestRegister_CreatesUserAndReturnsToken(t *testing.T) {
	h := newTestServer(t, &stubQuotes{})

	rec := doJSON(t, h, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "hunter22",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	data := envelope(t, rec)
	if data["token"] == "" {
		t.Error("expected a token")
	}
	user, _ := data["user"].(map[string]interface{})
	if user["username"] != "alice" {
		t.Errorf("expected username alice, got %v", user["username"])
	}
	if _, hasHash := user["password_hash"]; hasHash {
		t.Error("password hash must never appear in responses")
	}
}

func TestRegister_Validation(t *testing.T) {
	h := newTestServer(t, &stubQuotes{})

	cases := []struct {
		name string
		body map[string]string
	}{
		{"missing username", map[string]string{"email": "a@b.com", "password": "hunter22"}},
		{"missing email", map[string]string{"username": "alice", "password": "hunter22"}},
		{"missing password", map[string]string{"username": "alice", "email": "a@b.com"}},
		{"short password", map[string]string{"username": "alice", "email": "a@b.com", "password": "abc"}},
		{"bad email", map[string]string{"username": "alice", "email": "nope", "password": "hunter22"}},
	}
	for _, tc := range cases {
		rec := doJSON(t, h, http.MethodPost, "/api/auth/register", "", tc.body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", tc.name, rec.Code)
		}
	}
}

func TestRegister_DuplicateUsernameAndEmail(t *testing.T) {
	h := newTestServer(t, &stubQuotes{})
	registerUser(t, h, "alice", "alice@example.com")

	rec := doJSON(t, h, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "alice",
		"email":    "other@example.com",
		"password": "hunter22",
	})
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409 for duplicate username, got %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "bob",
		"email":    "alice@example.com",
		"password": "hunter22",
	})
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409 for duplicate email, got %d", rec.Code)
	}
}

func TestLogin_ValidAndInvalidCredentials(t *testing.T) {
	h := newTestServer(t, &stubQuotes{})
	registerUser(t, h, "alice", "alice@example.com")

	rec := doJSON(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "alice",
		"password": "hunter22",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if envelope(t, rec)["token"] == "" {
		t.Error("expected a token from login")
	}

	rec = doJSON(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "alice",
		"password": "wrong-password",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for bad password, got %d", rec.Code)
	}

	// unknown user gets the same response as a bad password
	rec = doJSON(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "nobody",
		"password": "hunter22",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for unknown user, got %d", rec.Code)
	}
}

func TestAuthMe_ReturnsCurrentUser(t *testing.T) {
	h := newTestServer(t, &stubQuotes{})
	token := registerUser(t, h, "alice", "alice@example.com")

	rec := doJSON(t, h, http.MethodGet, "/api/auth/me", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	data := envelope(t, rec)
	if data["username"] != "alice" {
		t.Errorf("expected username alice, got %v", data["username"])
	}
	if data["email"] != "alice@example.com" {
		t.Errorf("expected email alice@example.com, got %v", data["email"])
	}
}

func TestAuthMe_RequiresToken(t *testing.T) {
	h := newTestServer(t, &stubQuotes{})

	rec := doJSON(t, h, http.MethodGet, "/api/auth/me", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/auth/me", "not-a-jwt", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for invalid token, got %d", rec.Code)
	}
}
