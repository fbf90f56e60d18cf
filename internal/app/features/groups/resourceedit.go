// internal/app/features/groups/resourceedit.go
package groups

import (
	"context"
	"net/http"

	"github.com/studyhive/studyhive/internal/app/policy/resourcepolicy"
	groupstore "github.com/studyhive/studyhive/internal/app/store/groups"
	sysauth "github.com/studyhive/studyhive/internal/app/system/auth"
	"github.com/studyhive/studyhive/internal/app/system/htmlsanitize"
	"github.com/studyhive/studyhive/internal/app/system/inputval"
	"github.com/studyhive/studyhive/internal/app/system/payload"
	"github.com/studyhive/studyhive/internal/app/system/respond"
	"github.com/studyhive/studyhive/internal/app/system/timeouts"
	"github.com/studyhive/studyhive/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleUpdateResource processes PUT /{id}/resources/{resourceID}. Only the
// resource creator or the group creator may edit; omitted fields are left
// unchanged.
func (h *Handler) HandleUpdateResource(w http.ResponseWriter, r *http.Request) {
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
	resourceID, ok := pathID(r, "resourceID")
	if !ok {
		respond.Error(w, http.StatusNotFound, "Resource not found", respond.CodeResourceNotFound)
		return
	}

	var req updateResourceRequest
	if !payload.DecodeValid(w, r, &req) {
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
		h.Log.Error("groups: update resource lookup", zap.Error(err))
		respond.ServerError(w)
		return
	}

	res := g.ResourceByID(resourceID)
	if res == nil {
		respond.Error(w, http.StatusNotFound, "Resource not found", respond.CodeResourceNotFound)
		return
	}
	if !resourcepolicy.CanManage(&g, res, id.UserID) {
		respond.Error(w, http.StatusForbidden, "You do not have permission to modify this resource", respond.CodePermissionDenied)
		return
	}

	// A link resource must keep a valid URL through the edit.
	effectiveType := res.Type
	if req.Type != nil {
		effectiveType = *req.Type
	}
	effectiveURL := res.URL
	if req.URL != nil {
		effectiveURL = *req.URL
	}
	if effectiveType == models.ResourceTypeLink && !inputval.IsValidHTTPURL(effectiveURL) {
		respond.ValidationFailed(w, []respond.FieldError{
			{Field: "url", Message: "A valid http(s) URL is required for a link resource"},
		})
		return
	}

	fields := bson.M{}
	if req.Title != nil {
		fields["title"] = htmlsanitize.Text(*req.Title)
	}
	if req.URL != nil {
		fields["url"] = *req.URL
	}
	if req.Description != nil {
		fields["description"] = htmlsanitize.Text(*req.Description)
	}
	if req.Type != nil {
		fields["type"] = *req.Type
	}
	if req.IsPublic != nil {
		fields["is_public"] = *req.IsPublic
	}
	if len(fields) == 0 {
		respond.OK(w, "Resource updated successfully", map[string]any{"resource": res})
		return
	}

	updated, err := store.UpdateResource(ctx, groupID, resourceID, fields)
	if err == groupstore.ErrResourceNotFound {
		respond.Error(w, http.StatusNotFound, "Resource not found", respond.CodeResourceNotFound)
		return
	}
	if err != nil {
		h.Log.Error("groups: update resource", zap.Error(err))
		respond.ServerError(w)
		return
	}

	respond.OK(w, "Resource updated successfully", map[string]any{"resource": updated.ResourceByID(resourceID)})
}

// HandleDeleteResource processes DELETE /{id}/resources/{resourceID} under
// the same permission rule as updates.
func (h *Handler) HandleDeleteResource(w http.ResponseWriter, r *http.Request) {
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
	resourceID, ok := pathID(r, "resourceID")
	if !ok {
		respond.Error(w, http.StatusNotFound, "Resource not found", respond.CodeResourceNotFound)
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
		h.Log.Error("groups: delete resource lookup", zap.Error(err))
		respond.ServerError(w)
		return
	}

	res := g.ResourceByID(resourceID)
	if res == nil {
		respond.Error(w, http.StatusNotFound, "Resource not found", respond.CodeResourceNotFound)
		return
	}
	if !resourcepolicy.CanManage(&g, res, id.UserID) {
		respond.Error(w, http.StatusForbidden, "You do not have permission to delete this resource", respond.CodePermissionDenied)
		return
	}

	if err := store.RemoveResource(ctx, groupID, resourceID); err != nil {
		if err == groupstore.ErrResourceNotFound {
			respond.Error(w, http.StatusNotFound, "Resource not found", respond.CodeResourceNotFound)
			return
		}
		h.Log.Error("groups: delete resource", zap.Error(err))
		respond.ServerError(w)
		return
	}

	respond.OK(w, "Resource deleted successfully", nil)
}
