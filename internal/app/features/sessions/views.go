// internal/app/features/sessions/views.go
package sessions

import (
	"context"

	userstore "github.com/studyhive/studyhive/internal/app/store/users"
	"github.com/studyhive/studyhive/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// listItems builds the listing projection for a set of sessions, resolving
// every organizer in one batched lookup.
func (h *Handler) listItems(ctx context.Context, ss []models.Session) ([]sessionListItem, error) {
	ids := make([]primitive.ObjectID, 0, len(ss))
	for _, s := range ss {
		ids = append(ids, s.Organizer)
	}

	users := userstore.New(h.DB)
	summaries, err := users.SummariesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]sessionListItem, 0, len(ss))
	for _, s := range ss {
		items = append(items, sessionListItem{
			ID:               s.ID,
			Title:            s.Title,
			Description:      s.Description,
			Subject:          s.Subject,
			Date:             s.Date,
			StartTime:        s.StartTime,
			EndTime:          s.EndTime,
			Location:         s.Location,
			Organizer:        summaries[s.Organizer],
			ParticipantCount: len(s.Participants),
			MaxParticipants:  s.MaxParticipants,
			Status:           s.Status,
			IsPublic:         s.IsPublic,
			CreatedAt:        s.CreatedAt,
		})
	}
	return items, nil
}

// detail builds the full single-session projection. Participants whose
// account no longer resolves are dropped from the view.
func (h *Handler) detail(ctx context.Context, s models.Session) (sessionDetail, error) {
	ids := []primitive.ObjectID{s.Organizer}
	for _, p := range s.Participants {
		ids = append(ids, p.User)
	}

	users := userstore.New(h.DB)
	summaries, err := users.SummariesByIDs(ctx, ids)
	if err != nil {
		return sessionDetail{}, err
	}

	participants := make([]participantView, 0, len(s.Participants))
	for _, p := range s.Participants {
		if sum, ok := summaries[p.User]; ok {
			participants = append(participants, participantView{User: sum, JoinedAt: p.JoinedAt})
		}
	}

	return sessionDetail{
		ID:              s.ID,
		Title:           s.Title,
		Description:     s.Description,
		Subject:         s.Subject,
		Date:            s.Date,
		StartTime:       s.StartTime,
		EndTime:         s.EndTime,
		Location:        s.Location,
		Organizer:       summaries[s.Organizer],
		Participants:    participants,
		MaxParticipants: s.MaxParticipants,
		Status:          s.Status,
		IsPublic:        s.IsPublic,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}, nil
}
