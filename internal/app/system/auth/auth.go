// Package auth issues and verifies the bearer tokens that authenticate
// API requests, and provides the middleware that loads the token's
// identity into the request context.
//
// Tokens are HS256 JWTs carrying the user id as subject and the email as
// a private claim. The core treats the user id as opaque; handlers get it
// back as a primitive.ObjectID via CurrentUser.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/studyhive/studyhive/internal/app/system/respond"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// MinSecretLen guards against accidentally shipping a trivial signing key.
const MinSecretLen = 16

// Identity is what the middleware caches in the request context.
type Identity struct {
	UserID primitive.ObjectID
	Email  string
}

// Claims is the JWT payload for issued tokens.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type ctxKey string

const identityKey ctxKey = "authIdentity"

// Manager issues and verifies tokens and exposes auth middleware.
type Manager struct {
	secret []byte
	expiry time.Duration
	log    *zap.Logger
}

// NewManager builds a Manager. The secret must be at least MinSecretLen
// bytes; expiry must be positive.
func NewManager(secret string, expiry time.Duration, logger *zap.Logger) (*Manager, error) {
	if len(secret) < MinSecretLen {
		return nil, errors.New("auth: jwt secret too short")
	}
	if expiry <= 0 {
		return nil, errors.New("auth: token expiry must be positive")
	}
	return &Manager{secret: []byte(secret), expiry: expiry, log: logger}, nil
}

// IssueToken signs a token for the given user.
func (m *Manager) IssueToken(userID primitive.ObjectID, email string) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.Hex(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(m.secret)
}

// Verify parses and validates a token string and returns the identity it
// carries. Any failure (bad signature, expiry, malformed subject) is
// reported as a single opaque error.
func (m *Manager) Verify(tokenString string) (Identity, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return Identity{}, err
	}
	oid, err := primitive.ObjectIDFromHex(claims.Subject)
	if err != nil {
		return Identity{}, errors.New("auth: malformed token subject")
	}
	return Identity{UserID: oid, Email: claims.Email}, nil
}

// CurrentUser returns the identity loaded by the middleware, if any.
func CurrentUser(r *http.Request) (Identity, bool) {
	id, ok := r.Context().Value(identityKey).(Identity)
	return id, ok
}

// WithIdentity returns a request whose context carries the given identity.
// Exposed for handler tests.
func WithIdentity(r *http.Request, id Identity) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), identityKey, id))
}

// bearerToken extracts the token from an "Authorization: Bearer X" header.
func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// RequireSignedIn rejects requests without a valid bearer token and loads
// the token identity into the context for the wrapped handler.
func (m *Manager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok := bearerToken(r)
		if tok == "" {
			respond.Error(w, http.StatusUnauthorized, "Access token required", respond.CodeNoToken)
			return
		}
		id, err := m.Verify(tok)
		if err != nil {
			respond.Error(w, http.StatusUnauthorized, "Invalid or expired token", respond.CodeInvalidToken)
			return
		}
		next.ServeHTTP(w, WithIdentity(r, id))
	})
}

// LoadIdentity loads the identity when a valid bearer token is present but
// never rejects the request. Used on endpoints that are public for open
// groups and member-gated for private ones.
func (m *Manager) LoadIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if tok := bearerToken(r); tok != "" {
			if id, err := m.Verify(tok); err == nil {
				r = WithIdentity(r, id)
			} else {
				m.log.Debug("ignoring invalid bearer token", zap.Error(err))
			}
		}
		next.ServeHTTP(w, r)
	})
}
