// internal/app/features/auth/login.go
package auth

import (
	"context"
	"net/http"

	userstore "github.com/studyhive/studyhive/internal/app/store/users"
	"github.com/studyhive/studyhive/internal/app/system/payload"
	"github.com/studyhive/studyhive/internal/app/system/respond"
	"github.com/studyhive/studyhive/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleLogin processes POST /login. Wrong password and unknown email get
// the same 401 so the endpoint cannot be used to probe for accounts.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !payload.DecodeValid(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	store := userstore.New(h.DB)
	u, err := store.VerifyCredentials(ctx, req.Email, req.Password)
	if err == userstore.ErrInvalidCredentials {
		respond.Error(w, http.StatusUnauthorized, "Invalid email or password", respond.CodeInvalidCredentials)
		return
	}
	if err != nil {
		h.Log.Error("login: verify credentials", zap.Error(err))
		respond.ServerError(w)
		return
	}

	token, err := h.Auth.IssueToken(u.ID, u.Email)
	if err != nil {
		h.Log.Error("login: issue token", zap.Error(err))
		respond.ServerError(w)
		return
	}

	respond.OK(w, "Login successful", map[string]any{
		"user":  u,
		"token": token,
	})
}
