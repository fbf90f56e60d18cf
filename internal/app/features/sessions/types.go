// internal/app/features/sessions/types.go
package sessions

import (
	"time"

	"github.com/studyhive/studyhive/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// defaultMaxParticipants is used when a session is created without a
// capacity.
const defaultMaxParticipants = 10

// createSessionRequest defines validation rules for scheduling a session.
// Date arrives as "YYYY-MM-DD"; start/end times as "HH:MM". Their shape
// and ordering are checked in the handler because the rules span fields.
type createSessionRequest struct {
	Title           string `json:"title" validate:"required,max=100"`
	Description     string `json:"description" validate:"omitempty,max=500"`
	Subject         string `json:"subject" validate:"required,max=50"`
	Date            string `json:"date" validate:"required"`
	StartTime       string `json:"start_time" validate:"required"`
	EndTime         string `json:"end_time" validate:"required"`
	Location        string `json:"location" validate:"required,max=100"`
	MaxParticipants int    `json:"max_participants" validate:"omitempty,gte=1,lte=50"`
	IsPublic        *bool  `json:"is_public"`
}

// updateSessionRequest carries the optional fields of a session update.
// Nil pointers mean "leave unchanged".
type updateSessionRequest struct {
	Title           *string `json:"title" validate:"omitempty,max=100"`
	Description     *string `json:"description" validate:"omitempty,max=500"`
	Subject         *string `json:"subject" validate:"omitempty,max=50"`
	Date            *string `json:"date"`
	StartTime       *string `json:"start_time"`
	EndTime         *string `json:"end_time"`
	Location        *string `json:"location" validate:"omitempty,max=100"`
	MaxParticipants *int    `json:"max_participants" validate:"omitempty,gte=1,lte=50"`
	Status          *string `json:"status" validate:"omitempty,oneof=scheduled ongoing completed cancelled"`
	IsPublic        *bool   `json:"is_public"`
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

// sessionListItem is the narrowed listing projection.
type sessionListItem struct {
	ID               primitive.ObjectID `json:"id"`
	Title            string             `json:"title"`
	Description      string             `json:"description,omitempty"`
	Subject          string             `json:"subject"`
	Date             time.Time          `json:"date"`
	StartTime        string             `json:"start_time"`
	EndTime          string             `json:"end_time"`
	Location         string             `json:"location"`
	Organizer        models.UserSummary `json:"organizer"`
	ParticipantCount int                `json:"participant_count"`
	MaxParticipants  int                `json:"max_participants"`
	Status           string             `json:"status"`
	IsPublic         bool               `json:"is_public"`
	CreatedAt        time.Time          `json:"created_at"`
}

// participantView expands one participant entry to a user summary.
type participantView struct {
	User     models.UserSummary `json:"user"`
	JoinedAt time.Time          `json:"joined_at"`
}

// sessionDetail is the full single-session projection.
type sessionDetail struct {
	ID              primitive.ObjectID `json:"id"`
	Title           string             `json:"title"`
	Description     string             `json:"description,omitempty"`
	Subject         string             `json:"subject"`
	Date            time.Time          `json:"date"`
	StartTime       string             `json:"start_time"`
	EndTime         string             `json:"end_time"`
	Location        string             `json:"location"`
	Organizer       models.UserSummary `json:"organizer"`
	Participants    []participantView  `json:"participants"`
	MaxParticipants int                `json:"max_participants"`
	Status          string             `json:"status"`
	IsPublic        bool               `json:"is_public"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}
