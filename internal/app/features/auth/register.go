// internal/app/features/auth/register.go
package auth

import (
	"context"
	"net/http"

	userstore "github.com/studyhive/studyhive/internal/app/store/users"
	"github.com/studyhive/studyhive/internal/app/system/htmlsanitize"
	"github.com/studyhive/studyhive/internal/app/system/payload"
	"github.com/studyhive/studyhive/internal/app/system/respond"
	"github.com/studyhive/studyhive/internal/app/system/timeouts"
	"github.com/studyhive/studyhive/internal/domain/models"
	"go.uber.org/zap"
)

// HandleRegister processes POST /register. On success it returns 201 with
// the created account and a signed token so the client is logged in
// immediately.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !payload.DecodeValid(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u := models.User{
		Username:    htmlsanitize.Text(req.Username),
		Email:       req.Email,
		DateOfBirth: req.DateOfBirth,
		CollegeName: htmlsanitize.Text(req.CollegeName),
		CurrentYear: req.CurrentYear,
	}

	store := userstore.New(h.DB)
	created, err := store.Create(ctx, u, req.Password)
	switch err {
	case nil:
	case userstore.ErrEmailExists:
		respond.Error(w, http.StatusConflict, "Email is already registered", respond.CodeEmailExists)
		return
	case userstore.ErrUsernameExists:
		respond.Error(w, http.StatusConflict, "Username is already taken", respond.CodeUsernameExists)
		return
	default:
		h.Log.Error("register: create user", zap.Error(err))
		respond.ServerError(w)
		return
	}

	token, err := h.Auth.IssueToken(created.ID, created.Email)
	if err != nil {
		h.Log.Error("register: issue token", zap.Error(err))
		respond.ServerError(w)
		return
	}

	respond.Created(w, "User registered successfully", map[string]any{
		"user":  created,
		"token": token,
	})
}
