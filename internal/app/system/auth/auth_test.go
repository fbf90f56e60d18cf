package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const testSecret = "unit-test-secret-0123456789"

func newTestManager(t *testing.T, expiry time.Duration) *Manager {
	t.Helper()
	m, err := NewManager(testSecret, expiry, zap.NewNop())
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	return m
}

func TestNewManager_RejectsShortSecret(t *testing.T) {
	if _, err := NewManager("short", time.Hour, zap.NewNop()); err == nil {
		t.Error("expected error for short secret")
	}
}

func TestIssueAndVerify(t *testing.T) {
	m := newTestManager(t, time.Hour)
	uid := primitive.NewObjectID()

	tok, err := m.IssueToken(uid, "user@example.com")
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	id, err := m.Verify(tok)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if id.UserID != uid {
		t.Errorf("UserID: got %v, want %v", id.UserID, uid)
	}
	if id.Email != "user@example.com" {
		t.Errorf("Email: got %q, want %q", id.Email, "user@example.com")
	}
}

func TestVerify_RejectsExpired(t *testing.T) {
	m := newTestManager(t, -time.Minute)
	tok, err := m.IssueToken(primitive.NewObjectID(), "user@example.com")
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}
	if _, err := m.Verify(tok); err == nil {
		t.Error("expected expired token to be rejected")
	}
}

func TestVerify_RejectsForeignSignature(t *testing.T) {
	m := newTestManager(t, time.Hour)
	other, err := NewManager("another-secret-0123456789", time.Hour, zap.NewNop())
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	tok, err := other.IssueToken(primitive.NewObjectID(), "user@example.com")
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}
	if _, err := m.Verify(tok); err == nil {
		t.Error("expected token signed with a different secret to be rejected")
	}
}

func TestRequireSignedIn(t *testing.T) {
	m := newTestManager(t, time.Hour)
	uid := primitive.NewObjectID()

	var seen Identity
	var called bool
	h := m.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = CurrentUser(r)
		called = true
	}))

	// No token -> 401
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no token: got status %d, want 401", rec.Code)
	}
	if called {
		t.Error("handler must not run without a token")
	}

	// Garbage token -> 401
	rec = httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad token: got status %d, want 401", rec.Code)
	}

	// Valid token -> handler runs with identity in context
	tok, err := m.IssueToken(uid, "user@example.com")
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}
	rec = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	h.ServeHTTP(rec, req)
	if !called {
		t.Fatal("handler did not run with a valid token")
	}
	if seen.UserID != uid {
		t.Errorf("context identity: got %v, want %v", seen.UserID, uid)
	}
}

func TestLoadIdentity_PassesThroughWithoutToken(t *testing.T) {
	m := newTestManager(t, time.Hour)

	var ok bool
	h := m.LoadIdentity(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok = CurrentUser(r)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("got status %d, want 200", rec.Code)
	}
	if ok {
		t.Error("expected no identity in context without a token")
	}
}
