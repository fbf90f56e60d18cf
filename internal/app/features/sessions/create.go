// internal/app/features/sessions/create.go
package sessions

import (
	"context"
	"net/http"
	"time"

	sessionstore "github.com/studyhive/studyhive/internal/app/store/sessions"
	sysauth "github.com/studyhive/studyhive/internal/app/system/auth"
	"github.com/studyhive/studyhive/internal/app/system/htmlsanitize"
	"github.com/studyhive/studyhive/internal/app/system/inputval"
	"github.com/studyhive/studyhive/internal/app/system/payload"
	"github.com/studyhive/studyhive/internal/app/system/respond"
	"github.com/studyhive/studyhive/internal/app/system/timeouts"
	"github.com/studyhive/studyhive/internal/domain/models"
	"go.uber.org/zap"
)

// parseDay accepts a calendar date as "2006-01-02" or a full RFC 3339
// timestamp, normalized to midnight UTC.
func parseDay(s string) (time.Time, error) {
	if d, err := time.Parse("2006-01-02", s); err == nil {
		return d.UTC(), nil
	}
	d, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return d.UTC().Truncate(24 * time.Hour), nil
}

// HandleCreateSession processes POST /. The caller becomes the organizer;
// the organizer is never listed as a participant.
func (h *Handler) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	id, ok := sysauth.CurrentUser(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "Access token required", respond.CodeNoToken)
		return
	}

	var req createSessionRequest
	if !payload.DecodeValid(w, r, &req) {
		return
	}

	var details []respond.FieldError
	day, err := parseDay(req.Date)
	if err != nil {
		details = append(details, respond.FieldError{Field: "date", Message: "date must be formatted as YYYY-MM-DD"})
	} else if !day.After(time.Now().UTC()) {
		// Midnight of the current day is already behind the clock, so a
		// same-day date is rejected along with past ones.
		details = append(details, respond.FieldError{Field: "date", Message: "Session date must be in the future"})
	}
	if !inputval.IsValidTimeHHMM(req.StartTime) {
		details = append(details, respond.FieldError{Field: "start_time", Message: "start_time must be formatted as HH:MM"})
	}
	if !inputval.IsValidTimeHHMM(req.EndTime) {
		details = append(details, respond.FieldError{Field: "end_time", Message: "end_time must be formatted as HH:MM"})
	}
	if details != nil {
		respond.ValidationFailed(w, details)
		return
	}
	if inputval.MinutesOfDay(req.EndTime) <= inputval.MinutesOfDay(req.StartTime) {
		respond.Error(w, http.StatusBadRequest, "End time must be after start time", respond.CodeInvalidTimeRange)
		return
	}

	maxParticipants := req.MaxParticipants
	if maxParticipants == 0 {
		maxParticipants = defaultMaxParticipants
	}
	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	store := sessionstore.New(h.DB)
	sess, err := store.Create(ctx, models.Session{
		Title:           htmlsanitize.Text(req.Title),
		Description:     htmlsanitize.Text(req.Description),
		Subject:         htmlsanitize.Text(req.Subject),
		Date:            day,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		Location:        htmlsanitize.Text(req.Location),
		MaxParticipants: maxParticipants,
		Organizer:       id.UserID,
		IsPublic:        isPublic,
	})
	if err != nil {
		h.Log.Error("sessions: create", zap.Error(err))
		respond.ServerError(w)
		return
	}

	view, err := h.detail(ctx, sess)
	if err != nil {
		h.Log.Error("sessions: create view", zap.Error(err))
		respond.ServerError(w)
		return
	}
	respond.Created(w, "Study session created successfully", map[string]any{"session": view})
}
