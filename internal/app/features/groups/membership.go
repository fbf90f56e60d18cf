// internal/app/features/groups/membership.go
package groups

import (
	"context"
	"net/http"

	groupstore "github.com/studyhive/studyhive/internal/app/store/groups"
	sysauth "github.com/studyhive/studyhive/internal/app/system/auth"
	"github.com/studyhive/studyhive/internal/app/system/respond"
	"github.com/studyhive/studyhive/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleJoinGroup processes POST /{id}/join. The store applies membership
// and capacity as one conditional update, so concurrent joins on the last
// seat cannot both succeed.
func (h *Handler) HandleJoinGroup(w http.ResponseWriter, r *http.Request) {
	id, ok := sysauth.CurrentUser(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "Access token required", respond.CodeNoToken)
		return
	}
	groupID, ok := pathID(r, "id")
	if !ok {
		respond.Error(w, http.StatusNotFound, "Study group not found", respond.CodeGroupNotFound)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	store := groupstore.New(h.DB)
	g, err := store.AddMember(ctx, groupID, id.UserID)
	switch err {
	case nil:
	case groupstore.ErrAlreadyMember:
		respond.Error(w, http.StatusBadRequest, "You are already a member of this group", respond.CodeAlreadyMember)
		return
	case groupstore.ErrGroupFull:
		respond.Error(w, http.StatusBadRequest, "This group is full", respond.CodeGroupFull)
		return
	case mongo.ErrNoDocuments:
		respond.Error(w, http.StatusNotFound, "Study group not found", respond.CodeGroupNotFound)
		return
	default:
		h.Log.Error("groups: join", zap.Error(err))
		respond.ServerError(w)
		return
	}

	view, err := h.detail(ctx, g)
	if err != nil {
		h.Log.Error("groups: join view", zap.Error(err))
		respond.ServerError(w)
		return
	}
	respond.OK(w, "Joined the group successfully", map[string]any{"group": view})
}

// HandleLeaveGroup processes POST /{id}/leave. Non-members get a 400, and
// the creator can never leave their own group.
func (h *Handler) HandleLeaveGroup(w http.ResponseWriter, r *http.Request) {
	id, ok := sysauth.CurrentUser(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "Access token required", respond.CodeNoToken)
		return
	}
	groupID, ok := pathID(r, "id")
	if !ok {
		respond.Error(w, http.StatusNotFound, "Study group not found", respond.CodeGroupNotFound)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	store := groupstore.New(h.DB)

	// Membership is checked against a fresh read so a non-member gets a
	// clear error instead of a silent no-op pull.
	current, err := store.GetByID(ctx, groupID)
	if err == mongo.ErrNoDocuments {
		respond.Error(w, http.StatusNotFound, "Study group not found", respond.CodeGroupNotFound)
		return
	}
	if err != nil {
		h.Log.Error("groups: leave lookup", zap.Error(err))
		respond.ServerError(w)
		return
	}
	if !current.HasMember(id.UserID) {
		respond.Error(w, http.StatusBadRequest, "You are not a member of this group", respond.CodeNotAMember)
		return
	}

	g, err := store.RemoveMember(ctx, groupID, id.UserID)
	switch err {
	case nil:
	case groupstore.ErrCreatorCannotLeave:
		respond.Error(w, http.StatusBadRequest, "The creator cannot leave the group", respond.CodeCreatorCannotLeave)
		return
	case mongo.ErrNoDocuments:
		respond.Error(w, http.StatusNotFound, "Study group not found", respond.CodeGroupNotFound)
		return
	default:
		h.Log.Error("groups: leave", zap.Error(err))
		respond.ServerError(w)
		return
	}

	view, err := h.detail(ctx, g)
	if err != nil {
		h.Log.Error("groups: leave view", zap.Error(err))
		respond.ServerError(w)
		return
	}
	respond.OK(w, "Left the group successfully", map[string]any{"group": view})
}
