// internal/domain/models/session.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Session status values.
const (
	SessionScheduled = "scheduled"
	SessionOngoing   = "ongoing"
	SessionCompleted = "completed"
	SessionCancelled = "cancelled"
)

// IsAllowedSessionStatus reports whether s is a recognized session status.
func IsAllowedSessionStatus(s string) bool {
	switch s {
	case SessionScheduled, SessionOngoing, SessionCompleted, SessionCancelled:
		return true
	}
	return false
}

// Participant records a user who joined a session and when.
type Participant struct {
	User     primitive.ObjectID `bson:"user" json:"user"`
	JoinedAt time.Time          `bson:"joined_at" json:"joined_at"`
}

// Session is a scheduled study event with a bounded participant list.
//
// Invariants:
//   - Organizer never appears in Participants (enforced at the handler
//     boundary; the store does not special-case the organizer).
//   - Participant users are unique; len(Participants) <= MaxParticipants.
type Session struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Subject     string             `bson:"subject" json:"subject"`

	Date      time.Time `bson:"date" json:"date"`
	StartTime string    `bson:"start_time" json:"start_time"` // "HH:MM"
	EndTime   string    `bson:"end_time" json:"end_time"`     // "HH:MM"
	Location  string    `bson:"location" json:"location"`

	MaxParticipants int                `bson:"max_participants" json:"max_participants"`
	Organizer       primitive.ObjectID `bson:"organizer" json:"organizer"`
	Participants    []Participant      `bson:"participants" json:"participants"`

	Status   string `bson:"status" json:"status"`
	IsPublic bool   `bson:"is_public" json:"is_public"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// HasParticipant reports whether userID has joined the session.
func (s *Session) HasParticipant(userID primitive.ObjectID) bool {
	for _, p := range s.Participants {
		if p.User == userID {
			return true
		}
	}
	return false
}

// IsFull reports whether the participant list has reached capacity.
func (s *Session) IsFull() bool {
	return len(s.Participants) >= s.MaxParticipants
}
