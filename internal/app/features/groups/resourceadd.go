// internal/app/features/groups/resourceadd.go
package groups

import (
	"context"
	"net/http"

	"github.com/studyhive/studyhive/internal/app/policy/grouppolicy"
	groupstore "github.com/studyhive/studyhive/internal/app/store/groups"
	sysauth "github.com/studyhive/studyhive/internal/app/system/auth"
	"github.com/studyhive/studyhive/internal/app/system/htmlsanitize"
	"github.com/studyhive/studyhive/internal/app/system/inputval"
	"github.com/studyhive/studyhive/internal/app/system/payload"
	"github.com/studyhive/studyhive/internal/app/system/respond"
	"github.com/studyhive/studyhive/internal/app/system/timeouts"
	"github.com/studyhive/studyhive/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleAddResource processes POST /{id}/resources. Only members can add;
// a link resource must carry a valid http(s) URL, a note needs none.
func (h *Handler) HandleAddResource(w http.ResponseWriter, r *http.Request) {
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

	var req addResourceRequest
	if !payload.DecodeValid(w, r, &req) {
		return
	}
	resType := req.Type
	if resType == "" {
		resType = models.ResourceTypeLink
	}
	if resType == models.ResourceTypeLink && !inputval.IsValidHTTPURL(req.URL) {
		respond.ValidationFailed(w, []respond.FieldError{
			{Field: "url", Message: "A valid http(s) URL is required for a link resource"},
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	store := groupstore.New(h.DB)
	g, err := store.GetByID(ctx, groupID)
	if err == mongo.ErrNoDocuments {
		respond.Error(w, http.StatusNotFound, "Study group not found", respond.CodeGroupNotFound)
		return
	}
	if err != nil {
		h.Log.Error("groups: add resource lookup", zap.Error(err))
		respond.ServerError(w)
		return
	}
	if !grouppolicy.CanAddResource(&g, id.UserID) {
		respond.Error(w, http.StatusForbidden, "Only members can add resources to this group", respond.CodeNotAMember)
		return
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	res, err := store.AddResource(ctx, groupID, models.Resource{
		Title:       htmlsanitize.Text(req.Title),
		URL:         req.URL,
		Description: htmlsanitize.Text(req.Description),
		Type:        resType,
		Creator:     id.UserID,
		IsPublic:    isPublic,
	})
	if err == mongo.ErrNoDocuments {
		respond.Error(w, http.StatusNotFound, "Study group not found", respond.CodeGroupNotFound)
		return
	}
	if err != nil {
		h.Log.Error("groups: add resource", zap.Error(err))
		respond.ServerError(w)
		return
	}

	respond.Created(w, "Resource added successfully", map[string]any{"resource": res})
}
