// internal/app/features/groups/types.go
package groups

import (
	"time"

	"github.com/studyhive/studyhive/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// createGroupRequest defines validation rules for creating a study group.
type createGroupRequest struct {
	Name        string `json:"name" validate:"required,min=3,max=100"`
	Description string `json:"description" validate:"required,min=10,max=500"`
	Subject     string `json:"subject" validate:"required,oneof=Mathematics Physics Chemistry Biology 'Computer Science' English History Other"`
	MaxMembers  int    `json:"max_members" validate:"omitempty,gte=2,lte=500"`
	IsPublic    *bool  `json:"is_public"`
}

// addResourceRequest defines validation rules for attaching a resource.
// URL is required for type "resource" and checked separately in the
// handler because the rule depends on the type field.
type addResourceRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	URL         string `json:"url"`
	Description string `json:"description" validate:"omitempty,max=1000"`
	Type        string `json:"type" validate:"omitempty,oneof=resource note"`
	IsPublic    *bool  `json:"is_public"`
}

// updateResourceRequest carries the optional fields of a resource update.
// Nil pointers mean "leave unchanged".
type updateResourceRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=200"`
	URL         *string `json:"url"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Type        *string `json:"type" validate:"omitempty,oneof=resource note"`
	IsPublic    *bool   `json:"is_public"`
}

// paginationView is the paging block attached to list responses.
type paginationView struct {
	Page  int64 `json:"page"`
	Limit int64 `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

func newPagination(page, limit, total int64) paginationView {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	return paginationView{Page: page, Limit: limit, Total: total, Pages: pages}
}

// groupListItem is the narrowed listing projection; the member list is
// reduced to a count and the creator to a user summary.
type groupListItem struct {
	ID          primitive.ObjectID `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Subject     string             `json:"subject"`
	Creator     models.UserSummary `json:"creator"`
	MemberCount int                `json:"member_count"`
	MaxMembers  int                `json:"max_members"`
	IsPublic    bool               `json:"is_public"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// groupDetail is the full single-group projection with creator and members
// expanded to user summaries.
type groupDetail struct {
	ID          primitive.ObjectID   `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Subject     string               `json:"subject"`
	Creator     models.UserSummary   `json:"creator"`
	Members     []models.UserSummary `json:"members"`
	MaxMembers  int                  `json:"max_members"`
	IsPublic    bool                 `json:"is_public"`
	Resources   []models.Resource    `json:"resources"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}
