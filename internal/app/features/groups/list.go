// internal/app/features/groups/list.go
package groups

import (
	"context"
	"net/http"
	"strconv"

	groupstore "github.com/studyhive/studyhive/internal/app/store/groups"
	sysauth "github.com/studyhive/studyhive/internal/app/system/auth"
	"github.com/studyhive/studyhive/internal/app/system/respond"
	"github.com/studyhive/studyhive/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// queryInt64 parses a positive integer query parameter, returning def when
// absent or unparseable.
func queryInt64(r *http.Request, name string, def int64) int64 {
	v, err := strconv.ParseInt(r.URL.Query().Get(name), 10, 64)
	if err != nil || v < 1 {
		return def
	}
	return v
}

// HandleListGroups processes GET /. Only public groups are listed; the
// subject and search filters come from query parameters.
func (h *Handler) HandleListGroups(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	q := r.URL.Query()
	opt := groupstore.ListOptions{
		Subject: q.Get("subject"),
		Search:  q.Get("search"),
		Page:    queryInt64(r, "page", 1),
		Limit:   queryInt64(r, "limit", 10),
	}

	store := groupstore.New(h.DB)
	gs, total, err := store.List(ctx, opt)
	if err != nil {
		h.Log.Error("groups: list", zap.Error(err))
		respond.ServerError(w)
		return
	}

	items, err := h.listItems(ctx, gs)
	if err != nil {
		h.Log.Error("groups: list view", zap.Error(err))
		respond.ServerError(w)
		return
	}

	respond.OK(w, "", map[string]any{
		"groups":     items,
		"pagination": newPagination(opt.Page, opt.Limit, total),
	})
}

// HandleMyGroups processes GET /my-groups: every group the caller belongs
// to, public or private.
func (h *Handler) HandleMyGroups(w http.ResponseWriter, r *http.Request) {
	id, ok := sysauth.CurrentUser(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "Access token required", respond.CodeNoToken)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	page := queryInt64(r, "page", 1)
	limit := queryInt64(r, "limit", 10)

	store := groupstore.New(h.DB)
	gs, total, err := store.ListByMember(ctx, id.UserID, page, limit)
	if err != nil {
		h.Log.Error("groups: list mine", zap.Error(err))
		respond.ServerError(w)
		return
	}

	items, err := h.listItems(ctx, gs)
	if err != nil {
		h.Log.Error("groups: list mine view", zap.Error(err))
		respond.ServerError(w)
		return
	}

	respond.OK(w, "", map[string]any{
		"groups":     items,
		"pagination": newPagination(page, limit, total),
	})
}
