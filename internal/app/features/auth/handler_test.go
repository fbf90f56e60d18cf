package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	authfeature "github.com/studyhive/studyhive/internal/app/features/auth"
	sysauth "github.com/studyhive/studyhive/internal/app/system/auth"
	"github.com/studyhive/studyhive/internal/app/system/ratelimit"
	"github.com/studyhive/studyhive/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

type envelope struct {
	Success bool                       `json:"success"`
	Message string                     `json:"message"`
	Data    map[string]json.RawMessage `json:"data"`
	Error   *struct {
		Message string `json:"message"`
		Code    string `json:"code"`
		Details []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"details"`
	} `json:"error"`
}

func newTestHandler(t *testing.T) (*authfeature.Handler, *sysauth.Manager, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	mgr, err := sysauth.NewManager("test-secret-0123456789", time.Hour, zap.NewNop())
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	return authfeature.NewHandler(db, mgr, zap.NewNop()), mgr, testutil.NewFixtures(t, db)
}

func TestHandleRegister_Success(t *testing.T) {
	handler, mgr, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	req := testutil.JSONRequest(t, "POST", "/register", map[string]any{
		"username": "newstudent",
		"email":    "Student@Example.com",
		"password": "supersecret",
	})
	rec := httptest.NewRecorder()
	handler.HandleRegister(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d (body %s)", rec.Code, http.StatusCreated, rec.Body.String())
	}

	var resp envelope
	testutil.DecodeBody(t, rec, &resp)
	if !resp.Success {
		t.Fatal("expected success envelope")
	}

	var token string
	if err := json.Unmarshal(resp.Data["token"], &token); err != nil {
		t.Fatalf("token missing from response: %v", err)
	}
	identity, err := mgr.Verify(token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if identity.Email != "student@example.com" {
		t.Errorf("token email: got %q, want normalized address", identity.Email)
	}

	count, err := fixtures.DB().Collection("users").CountDocuments(ctx, bson.M{"email": "student@example.com"})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 user, got %d", count)
	}
}

func TestHandleRegister_DuplicateEmail(t *testing.T) {
	handler, _, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateUser(ctx, "existing", "taken@example.com", "password")

	req := testutil.JSONRequest(t, "POST", "/register", map[string]any{
		"username": "someoneelse",
		"email":    "taken@example.com",
		"password": "supersecret",
	})
	rec := httptest.NewRecorder()
	handler.HandleRegister(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusConflict)
	}
	var resp envelope
	testutil.DecodeBody(t, rec, &resp)
	if resp.Error == nil || resp.Error.Code != "EMAIL_EXISTS" {
		t.Errorf("expected EMAIL_EXISTS, got %+v", resp.Error)
	}
}

func TestHandleRegister_Validation(t *testing.T) {
	handler, _, _ := newTestHandler(t)

	req := testutil.JSONRequest(t, "POST", "/register", map[string]any{
		"username": "ab", // too short
		"email":    "not-an-email",
		"password": "123", // too short
	})
	rec := httptest.NewRecorder()
	handler.HandleRegister(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
	var resp envelope
	testutil.DecodeBody(t, rec, &resp)
	if resp.Error == nil || resp.Error.Code != "VALIDATION_ERROR" {
		t.Fatalf("expected VALIDATION_ERROR, got %+v", resp.Error)
	}
	if len(resp.Error.Details) != 3 {
		t.Errorf("expected 3 field errors, got %d: %+v", len(resp.Error.Details), resp.Error.Details)
	}
}

func TestHandleLogin(t *testing.T) {
	handler, mgr, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateUser(ctx, "loginuser", "login@example.com", "correcthorse")

	req := testutil.JSONRequest(t, "POST", "/login", map[string]any{
		"email":    "login@example.com",
		"password": "correcthorse",
	})
	rec := httptest.NewRecorder()
	handler.HandleLogin(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d (body %s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	var resp envelope
	testutil.DecodeBody(t, rec, &resp)
	var token string
	if err := json.Unmarshal(resp.Data["token"], &token); err != nil {
		t.Fatalf("token missing from response: %v", err)
	}
	if _, err := mgr.Verify(token); err != nil {
		t.Errorf("login token does not verify: %v", err)
	}

	// Wrong password and unknown email both get the same response.
	for _, creds := range []map[string]any{
		{"email": "login@example.com", "password": "wrong"},
		{"email": "ghost@example.com", "password": "correcthorse"},
	} {
		req := testutil.JSONRequest(t, "POST", "/login", creds)
		rec := httptest.NewRecorder()
		handler.HandleLogin(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status for %v: got %d, want %d", creds, rec.Code, http.StatusUnauthorized)
		}
		var resp envelope
		testutil.DecodeBody(t, rec, &resp)
		if resp.Error == nil || resp.Error.Code != "INVALID_CREDENTIALS" {
			t.Errorf("expected INVALID_CREDENTIALS, got %+v", resp.Error)
		}
	}
}

func TestHandleVerify(t *testing.T) {
	handler, _, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "verified", "verified@example.com", "password")

	req := httptest.NewRequest("GET", "/verify", nil)
	req = testutil.WithIdentity(req, user.ID, user.Email)
	rec := httptest.NewRecorder()
	handler.HandleVerify(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestRoutes_RateLimitsAuthEndpoints(t *testing.T) {
	handler, _, _ := newTestHandler(t)

	limiter := ratelimit.New(2, time.Minute)
	router := authfeature.Routes(handler, limiter)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := testutil.JSONRequest(t, "POST", "/login", map[string]any{
			"email":    "limited@example.com",
			"password": "whatever",
		})
		req.RemoteAddr = "203.0.113.9:4000"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	if codes[2] != http.StatusTooManyRequests {
		t.Errorf("third request: got %d, want %d (codes %v)", codes[2], http.StatusTooManyRequests, codes)
	}
}
