package grouppolicy

import (
	"testing"

	"github.com/studyhive/studyhive/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCanViewResources(t *testing.T) {
	creator := primitive.NewObjectID()
	member := primitive.NewObjectID()
	outsider := primitive.NewObjectID()

	private := &models.StudyGroup{
		Creator: creator,
		Members: []primitive.ObjectID{creator, member},
	}
	public := &models.StudyGroup{
		Creator:  creator,
		Members:  []primitive.ObjectID{creator},
		IsPublic: true,
	}

	cases := []struct {
		name        string
		group       *models.StudyGroup
		user        primitive.ObjectID
		hasIdentity bool
		want        bool
	}{
		{"public group, anonymous", public, primitive.NilObjectID, false, true},
		{"public group, outsider", public, outsider, true, true},
		{"private group, member", private, member, true, true},
		{"private group, outsider", private, outsider, true, false},
		{"private group, anonymous", private, primitive.NilObjectID, false, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanViewResources(tc.group, tc.user, tc.hasIdentity); got != tc.want {
				t.Errorf("CanViewResources = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCanAddResource(t *testing.T) {
	member := primitive.NewObjectID()
	outsider := primitive.NewObjectID()
	g := &models.StudyGroup{Members: []primitive.ObjectID{member}}

	if !CanAddResource(g, member) {
		t.Error("member should be able to add resources")
	}
	if CanAddResource(g, outsider) {
		t.Error("non-member should not be able to add resources")
	}
}

func TestCanLeave(t *testing.T) {
	creator := primitive.NewObjectID()
	member := primitive.NewObjectID()
	g := &models.StudyGroup{Creator: creator, Members: []primitive.ObjectID{creator, member}}

	if CanLeave(g, creator) {
		t.Error("creator should not be able to leave their own group")
	}
	if !CanLeave(g, member) {
		t.Error("ordinary member should be able to leave")
	}
}
