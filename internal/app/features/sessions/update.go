// internal/app/features/sessions/update.go
package sessions

import (
	"context"
	"net/http"

	"github.com/studyhive/studyhive/internal/app/policy/sessionpolicy"
	sessionstore "github.com/studyhive/studyhive/internal/app/store/sessions"
	sysauth "github.com/studyhive/studyhive/internal/app/system/auth"
	"github.com/studyhive/studyhive/internal/app/system/htmlsanitize"
	"github.com/studyhive/studyhive/internal/app/system/inputval"
	"github.com/studyhive/studyhive/internal/app/system/payload"
	"github.com/studyhive/studyhive/internal/app/system/respond"
	"github.com/studyhive/studyhive/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleUpdateSession processes PUT /{id}. Only the organizer may update;
// omitted fields are left unchanged and the edited times must still form a
// valid range.
func (h *Handler) HandleUpdateSession(w http.ResponseWriter, r *http.Request) {
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

	var req updateSessionRequest
	if !payload.DecodeValid(w, r, &req) {
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
		h.Log.Error("sessions: update lookup", zap.Error(err))
		respond.ServerError(w)
		return
	}
	if !sessionpolicy.CanManage(&current, id.UserID) {
		respond.Error(w, http.StatusForbidden, "Only the organizer can update this session", respond.CodeNotAuthorized)
		return
	}

	var details []respond.FieldError
	if req.StartTime != nil && !inputval.IsValidTimeHHMM(*req.StartTime) {
		details = append(details, respond.FieldError{Field: "start_time", Message: "start_time must be formatted as HH:MM"})
	}
	if req.EndTime != nil && !inputval.IsValidTimeHHMM(*req.EndTime) {
		details = append(details, respond.FieldError{Field: "end_time", Message: "end_time must be formatted as HH:MM"})
	}

	fields := bson.M{}
	if req.Date != nil {
		day, err := parseDay(*req.Date)
		if err != nil {
			details = append(details, respond.FieldError{Field: "date", Message: "date must be formatted as YYYY-MM-DD"})
		} else {
			fields["date"] = day
		}
	}
	if details != nil {
		respond.ValidationFailed(w, details)
		return
	}

	start, end := current.StartTime, current.EndTime
	if req.StartTime != nil {
		start = *req.StartTime
		fields["start_time"] = start
	}
	if req.EndTime != nil {
		end = *req.EndTime
		fields["end_time"] = end
	}
	if inputval.MinutesOfDay(end) <= inputval.MinutesOfDay(start) {
		respond.Error(w, http.StatusBadRequest, "End time must be after start time", respond.CodeInvalidTimeRange)
		return
	}

	if req.Title != nil {
		fields["title"] = htmlsanitize.Text(*req.Title)
	}
	if req.Description != nil {
		fields["description"] = htmlsanitize.Text(*req.Description)
	}
	if req.Subject != nil {
		fields["subject"] = htmlsanitize.Text(*req.Subject)
	}
	if req.Location != nil {
		fields["location"] = htmlsanitize.Text(*req.Location)
	}
	if req.MaxParticipants != nil {
		fields["max_participants"] = *req.MaxParticipants
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.IsPublic != nil {
		fields["is_public"] = *req.IsPublic
	}

	sess, err := store.Update(ctx, sessionID, fields)
	if err == mongo.ErrNoDocuments {
		respond.Error(w, http.StatusNotFound, "Study session not found", respond.CodeSessionNotFound)
		return
	}
	if err != nil {
		h.Log.Error("sessions: update", zap.Error(err))
		respond.ServerError(w)
		return
	}

	view, err := h.detail(ctx, sess)
	if err != nil {
		h.Log.Error("sessions: update view", zap.Error(err))
		respond.ServerError(w)
		return
	}
	respond.OK(w, "Session updated successfully", map[string]any{"session": view})
}

// HandleDeleteSession processes DELETE /{id}; organizer only.
func (h *Handler) HandleDeleteSession(w http.ResponseWriter, r *http.Request) {
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
		h.Log.Error("sessions: delete lookup", zap.Error(err))
		respond.ServerError(w)
		return
	}
	if !sessionpolicy.CanManage(&current, id.UserID) {
		respond.Error(w, http.StatusForbidden, "Only the organizer can delete this session", respond.CodeNotAuthorized)
		return
	}

	deleted, err := store.Delete(ctx, sessionID)
	if err != nil {
		h.Log.Error("sessions: delete", zap.Error(err))
		respond.ServerError(w)
		return
	}
	if deleted == 0 {
		respond.Error(w, http.StatusNotFound, "Study session not found", respond.CodeSessionNotFound)
		return
	}

	respond.OK(w, "Session deleted successfully", nil)
}
