// internal/app/features/groups/create.go
package groups

import (
	"context"
	"net/http"

	groupstore "github.com/studyhive/studyhive/internal/app/store/groups"
	sysauth "github.com/studyhive/studyhive/internal/app/system/auth"
	"github.com/studyhive/studyhive/internal/app/system/htmlsanitize"
	"github.com/studyhive/studyhive/internal/app/system/payload"
	"github.com/studyhive/studyhive/internal/app/system/respond"
	"github.com/studyhive/studyhive/internal/app/system/timeouts"
	"github.com/studyhive/studyhive/internal/domain/models"
	"go.uber.org/zap"
)

// HandleCreateGroup processes POST /. The caller becomes the creator and
// the first member; visibility defaults to public when is_public is
// omitted.
func (h *Handler) HandleCreateGroup(w http.ResponseWriter, r *http.Request) {
	id, ok := sysauth.CurrentUser(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "Access token required", respond.CodeNoToken)
		return
	}

	var req createGroupRequest
	if !payload.DecodeValid(w, r, &req) {
		return
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	store := groupstore.New(h.DB)
	g, err := store.Create(ctx, models.StudyGroup{
		Name:        htmlsanitize.Text(req.Name),
		Description: htmlsanitize.Text(req.Description),
		Subject:     req.Subject,
		Creator:     id.UserID,
		MaxMembers:  req.MaxMembers,
		IsPublic:    isPublic,
	})
	if err != nil {
		h.Log.Error("groups: create", zap.Error(err))
		respond.ServerError(w)
		return
	}

	view, err := h.detail(ctx, g)
	if err != nil {
		h.Log.Error("groups: create view", zap.Error(err))
		respond.ServerError(w)
		return
	}
	respond.Created(w, "Study group created successfully", map[string]any{"group": view})
}
