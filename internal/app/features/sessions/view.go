// internal/app/features/sessions/view.go
package sessions

import (
	"context"
	"net/http"

	"github.com/studyhive/studyhive/internal/app/policy/sessionpolicy"
	sessionstore "github.com/studyhive/studyhive/internal/app/store/sessions"
	sysauth "github.com/studyhive/studyhive/internal/app/system/auth"
	"github.com/studyhive/studyhive/internal/app/system/respond"
	"github.com/studyhive/studyhive/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleGetSession processes GET /{id}. Public sessions are visible to
// anyone; private sessions only to the organizer and participants.
func (h *Handler) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := pathID(r, "id")
	if !ok {
		respond.Error(w, http.StatusNotFound, "Study session not found", respond.CodeSessionNotFound)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	store := sessionstore.New(h.DB)
	sess, err := store.GetByID(ctx, sessionID)
	if err == mongo.ErrNoDocuments {
		respond.Error(w, http.StatusNotFound, "Study session not found", respond.CodeSessionNotFound)
		return
	}
	if err != nil {
		h.Log.Error("sessions: get", zap.Error(err))
		respond.ServerError(w)
		return
	}

	if !sess.IsPublic {
		id, signedIn := sysauth.CurrentUser(r)
		involved := signedIn && (!sessionpolicy.CanJoin(&sess, id.UserID) || sess.HasParticipant(id.UserID))
		if !involved {
			respond.Error(w, http.StatusForbidden, "This session is private", respond.CodeAccessDenied)
			return
		}
	}

	view, err := h.detail(ctx, sess)
	if err != nil {
		h.Log.Error("sessions: get view", zap.Error(err))
		respond.ServerError(w)
		return
	}
	respond.OK(w, "", map[string]any{"session": view})
}
