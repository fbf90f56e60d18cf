// internal/app/features/sessions/participants.go
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

// HandleJoinSession processes POST /{id}/join. The organizer cannot join
// their own session; capacity and duplicate joins are enforced by the
// store's conditional update.
func (h *Handler) HandleJoinSession(w http.ResponseWriter, r *http.Request) {
	id, ok := sysauth.CurrentUser(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "Access token required", respond.CodeNoToken)
		return
	}
	sessionID, ok := pathID(r, "id")
	if !ok {
		respond.Error(w, http.StatusNotFound, "Study session not found", respond.CodeSessionNotFound)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	store := sessionstore.New(h.DB)
	current, err := store.GetByID(ctx, sessionID)
	if err == mongo.ErrNoDocuments {
		respond.Error(w, http.StatusNotFound, "Study session not found", respond.CodeSessionNotFound)
		return
	}
	if err != nil {
		h.Log.Error("sessions: join lookup", zap.Error(err))
		respond.ServerError(w)
		return
	}
	if !sessionpolicy.CanJoin(&current, id.UserID) {
		respond.Error(w, http.StatusBadRequest, "You cannot join your own session", respond.CodeCannotJoinOwnSession)
		return
	}

	sess, err := store.AddParticipant(ctx, sessionID, id.UserID)
	switch err {
	case nil:
	case sessionstore.ErrSessionFull:
		respond.Error(w, http.StatusBadRequest, "This session is full", respond.CodeSessionFull)
		return
	case sessionstore.ErrAlreadyJoined:
		respond.Error(w, http.StatusBadRequest, "You have already joined this session", respond.CodeAlreadyJoined)
		return
	case mongo.ErrNoDocuments:
		respond.Error(w, http.StatusNotFound, "Study session not found", respond.CodeSessionNotFound)
		return
	default:
		h.Log.Error("sessions: join", zap.Error(err))
		respond.ServerError(w)
		return
	}

	view, err := h.detail(ctx, sess)
	if err != nil {
		h.Log.Error("sessions: join view", zap.Error(err))
		respond.ServerError(w)
		return
	}
	respond.OK(w, "Joined the session successfully", map[string]any{"session": view})
}

// HandleLeaveSession processes POST /{id}/leave.
func (h *Handler) HandleLeaveSession(w http.ResponseWriter, r *http.Request) {
	id, ok := sysauth.CurrentUser(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "Access token required", respond.CodeNoToken)
		return
	}
	sessionID, ok := pathID(r, "id")
	if !ok {
		respond.Error(w, http.StatusNotFound, "Study session not found", respond.CodeSessionNotFound)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	store := sessionstore.New(h.DB)
	current, err := store.GetByID(ctx, sessionID)
	if err == mongo.ErrNoDocuments {
		respond.Error(w, http.StatusNotFound, "Study session not found", respond.CodeSessionNotFound)
		return
	}
	if err != nil {
		h.Log.Error("sessions: leave lookup", zap.Error(err))
		respond.ServerError(w)
		return
	}
	if !current.HasParticipant(id.UserID) {
		respond.Error(w, http.StatusBadRequest, "You have not joined this session", respond.CodeNotAParticipant)
		return
	}

	sess, err := store.RemoveParticipant(ctx, sessionID, id.UserID)
	if err == mongo.ErrNoDocuments {
		respond.Error(w, http.StatusNotFound, "Study session not found", respond.CodeSessionNotFound)
		return
	}
	if err != nil {
		h.Log.Error("sessions: leave", zap.Error(err))
		respond.ServerError(w)
		return
	}

	view, err := h.detail(ctx, sess)
	if err != nil {
		h.Log.Error("sessions: leave view", zap.Error(err))
		respond.ServerError(w)
		return
	}
	respond.OK(w, "Left the session successfully", map[string]any{"session": view})
}
