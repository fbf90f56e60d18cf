// internal/app/features/groups/resourcelist.go
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

// HandleListResources processes GET /{id}/resources. Resources of a public
// group are open to anyone; a private group's resources require membership.
func (h *Handler) HandleListResources(w http.ResponseWriter, r *http.Request) {
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
		h.Log.Error("groups: list resources", zap.Error(err))
		respond.ServerError(w)
		return
	}

	id, signedIn := sysauth.CurrentUser(r)
	if !grouppolicy.CanViewResources(&g, id.UserID, signedIn) {
		respond.Error(w, http.StatusForbidden, "Only members can view this group's resources", respond.CodeAccessDenied)
		return
	}

	respond.OK(w, "", map[string]any{"resources": g.Resources})
}
