// internal/app/features/groups/views.go
package groups

import (
	"context"

	userstore "github.com/studyhive/studyhive/internal/app/store/users"
	"github.com/studyhive/studyhive/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// listItems builds the listing projection for a page of groups, resolving
// every creator in one batched lookup.
func (h *Handler) listItems(ctx context.Context, gs []models.StudyGroup) ([]groupListItem, error) {
	ids := make([]primitive.ObjectID, 0, len(gs))
	for _, g := range gs {
		ids = append(ids, g.Creator)
	}

	users := userstore.New(h.DB)
	summaries, err := users.SummariesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]groupListItem, 0, len(gs))
	for _, g := range gs {
		items = append(items, groupListItem{
			ID:          g.ID,
			Name:        g.Name,
			Description: g.Description,
			Subject:     g.Subject,
			Creator:     summaries[g.Creator],
			MemberCount: len(g.Members),
			MaxMembers:  g.MaxMembers,
			IsPublic:    g.IsPublic,
			CreatedAt:   g.CreatedAt,
			UpdatedAt:   g.UpdatedAt,
		})
	}
	return items, nil
}

// detail builds the full single-group projection. Members that no longer
// resolve to an account (deleted users) are dropped from the view; the
// stored member list is left untouched.
func (h *Handler) detail(ctx context.Context, g models.StudyGroup) (groupDetail, error) {
	ids := append([]primitive.ObjectID{g.Creator}, g.Members...)

	users := userstore.New(h.DB)
	summaries, err := users.SummariesByIDs(ctx, ids)
	if err != nil {
		return groupDetail{}, err
	}

	members := make([]models.UserSummary, 0, len(g.Members))
	for _, m := range g.Members {
		if sum, ok := summaries[m]; ok {
			members = append(members, sum)
		}
	}

	return groupDetail{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		Subject:     g.Subject,
		Creator:     summaries[g.Creator],
		Members:     members,
		MaxMembers:  g.MaxMembers,
		IsPublic:    g.IsPublic,
		Resources:   g.Resources,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}, nil
}
