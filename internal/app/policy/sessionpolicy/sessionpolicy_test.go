package sessionpolicy

import (
	"testing"

	"github.com/studyhive/studyhive/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCanManage(t *testing.T) {
	organizer := primitive.NewObjectID()
	other := primitive.NewObjectID()
	s := &models.Session{Organizer: organizer}

	if !CanManage(s, organizer) {
		t.Error("organizer should manage their session")
	}
	if CanManage(s, other) {
		t.Error("non-organizer should not manage the session")
	}
}

func TestCanJoin(t *testing.T) {
	organizer := primitive.NewObjectID()
	other := primitive.NewObjectID()
	s := &models.Session{Organizer: organizer}

	if CanJoin(s, organizer) {
		t.Error("organizer should not join their own session")
	}
	if !CanJoin(s, other) {
		t.Error("any other account should be able to join")
	}
}
