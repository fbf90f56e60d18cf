// internal/app/features/groups/view.go
package groups

import (
	"context"
	"net/http"

	"github.com/studyhive/studyhive/internal/app/policy/grouppolicy"
	groupstore "github.com/studyhive/studyhive/internal/app/store/groups"
	sysauth "github.com/studyhive/studyhive/internal/app/system/auth"
	"github.com/studyhive/studyhive/internal/app/system/respond"
	"github.com/studyhive/studyhive/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleGetGroup processes GET /{id}. Public groups are visible to anyone;
// private groups only to their members.
func (h *Handler) HandleGetGroup(w http.ResponseWriter, r *http.Request) {
	groupID, ok := pathID(r, "id")
	if !ok {
		respond.Error(w, http.StatusNotFound, "Study group not found", respond.CodeGroupNotFound)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	store := groupstore.New(h.DB)
	g, err := store.GetByID(ctx, groupID)
	if err == mongo.ErrNoDocuments {
		respond.Error(w, http.StatusNotFound, "Study group not found", respond.CodeGroupNotFound)
		return
	}
	if err != nil {
		h.Log.Error("groups: get", zap.Error(err))
		respond.ServerError(w)
		return
	}

	id, signedIn := sysauth.CurrentUser(r)
	if !grouppolicy.CanViewResources(&g, id.UserID, signedIn) {
		respond.Error(w, http.StatusForbidden, "This group is private", respond.CodeAccessDenied)
		return
	}

	view, err := h.detail(ctx, g)
	if err != nil {
		h.Log.Error("groups: get view", zap.Error(err))
		respond.ServerError(w)
		return
	}
	respond.OK(w, "", map[string]any{"group": view})
}
