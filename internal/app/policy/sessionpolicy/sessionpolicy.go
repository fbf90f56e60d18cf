// Package sessionpolicy provides authorization policies for study sessions.
//
// Authorization rules:
//   - The organizer may update or delete their session
//   - The organizer may never join their own session as a participant
//   - Any other account may join or leave
//
// The store's participant updates do not special-case the organizer;
// CanJoin is the only place that rule lives.
package sessionpolicy

import (
	"github.com/studyhive/studyhive/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CanManage reports whether the caller may update or delete the session.
func CanManage(s *models.Session, userID primitive.ObjectID) bool {
	return s.Organizer == userID
}

// CanJoin reports whether the caller may join as a participant.
func CanJoin(s *models.Session, userID primitive.ObjectID) bool {
	return s.Organizer != userID
}
