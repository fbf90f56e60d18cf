// internal/app/features/sessions/list.go
package sessions

import (
	"context"
	"net/http"
	"strconv"

	sessionstore "github.com/studyhive/studyhive/internal/app/store/sessions"
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

// HandleListSessions processes GET /. Only public sessions are listed;
// status defaults to "scheduled" and date filters to one calendar day.
func (h *Handler) HandleListSessions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	q := r.URL.Query()
	opt := sessionstore.ListOptions{
		Status:  q.Get("status"),
		Subject: q.Get("subject"),
		Page:    queryInt64(r, "page", 1),
		Limit:   queryInt64(r, "limit", 10),
	}
	if raw := q.Get("date"); raw != "" {
		day, err := parseDay(raw)
		if err != nil {
			respond.ValidationFailed(w, []respond.FieldError{
				{Field: "date", Message: "date must be formatted as YYYY-MM-DD"},
			})
			return
		}
		opt.Date = day
	}

	store := sessionstore.New(h.DB)
	ss, total, err := store.List(ctx, opt)
	if err != nil {
		h.Log.Error("sessions: list", zap.Error(err))
		respond.ServerError(w)
		return
	}

	items, err := h.listItems(ctx, ss)
	if err != nil {
		h.Log.Error("sessions: list view", zap.Error(err))
		respond.ServerError(w)
		return
	}

	respond.OK(w, "", map[string]any{
		"sessions":   items,
		"pagination": newPagination(opt.Page, opt.Limit, total),
	})
}

// HandleMySessions processes GET /my-sessions: sessions the caller
// organizes and sessions they joined, as two separate lists.
func (h *Handler) HandleMySessions(w http.ResponseWriter, r *http.Request) {
	id, ok := sysauth.CurrentUser(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "Access token required", respond.CodeNoToken)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	store := sessionstore.New(h.DB)
	organized, err := store.ListByOrganizer(ctx, id.UserID)
	if err != nil {
		h.Log.Error("sessions: list organized", zap.Error(err))
		respond.ServerError(w)
		return
	}
	joined, err := store.ListJoined(ctx, id.UserID)
	if err != nil {
		h.Log.Error("sessions: list joined", zap.Error(err))
		respond.ServerError(w)
		return
	}

	organizedItems, err := h.listItems(ctx, organized)
	if err != nil {
		h.Log.Error("sessions: organized view", zap.Error(err))
		respond.ServerError(w)
		return
	}
	joinedItems, err := h.listItems(ctx, joined)
	if err != nil {
		h.Log.Error("sessions: joined view", zap.Error(err))
		respond.ServerError(w)
		return
	}

	respond.OK(w, "", map[string]any{
		"organized": organizedItems,
		"joined":    joinedItems,
	})
}
