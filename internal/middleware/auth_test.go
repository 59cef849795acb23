package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"social-chat-backend/internal/services"
)

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	users := services.NewUserService(nil, nil, "secret")
	handler := AuthMiddleware(users)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a token")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/friends", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("error body is not valid JSON: %v", err)
	}
	if body["message"] == "" {
		t.Fatal("expected a message field")
	}
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	users := services.NewUserService(nil, nil, "secret")
	handler := AuthMiddleware(users)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with a malformed header")
	}))

	req := httptest.NewRequest("GET", "/friends", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("error body is not valid JSON: %v", err)
	}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	users := services.NewUserService(nil, nil, "secret")
	token, err := users.GenerateToken("u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	called := false
	handler := AuthMiddleware(users)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if got := GetUserID(r.Context()); got != "u1" {
			t.Errorf("expected user id u1 in context, got %q", got)
		}
	}))

	req := httptest.NewRequest("GET", "/friends", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if !called {
		t.Fatal("expected handler to run")
	}
}

func TestGetUserID_Unset(t *testing.T) {
	if got := GetUserID(httptest.NewRequest("GET", "/", nil).Context()); got != "" {
		t.Fatalf("expected empty user id, got %q", got)
	}
}
