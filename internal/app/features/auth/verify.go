// internal/app/features/auth/verify.go
package auth

import (
	"context"
	"net/http"

	userstore "github.com/studyhive/studyhive/internal/app/store/users"
	sysauth "github.com/studyhive/studyhive/internal/app/system/auth"
	"github.com/studyhive/studyhive/internal/app/system/respond"
	"github.com/studyhive/studyhive/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleVerify processes GET /verify. The middleware has already validated
// the token; this reloads the account so a deleted user's token stops
// working even before it expires.
func (h *Handler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	id, ok := sysauth.CurrentUser(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "Access token required", respond.CodeNoToken)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	store := userstore.New(h.DB)
	u, err := store.GetByID(ctx, id.UserID)
	if err == mongo.ErrNoDocuments {
		respond.Error(w, http.StatusNotFound, "User not found", respond.CodeUserNotFound)
		return
	}
	if err != nil {
		h.Log.Error("verify: load user", zap.Error(err))
		respond.ServerError(w)
		return
	}

	respond.OK(w, "Token is valid", map[string]any{"user": u})
}
