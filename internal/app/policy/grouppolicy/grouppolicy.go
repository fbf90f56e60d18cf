// Package grouppolicy provides authorization policies for study groups.
//
// Authorization rules:
//   - Any member of a group may add resources to it
//   - Resources of a public group are visible to everyone
//   - Resources of a private group are visible to current members only
//   - The creator may never leave their own group
//
// All checks are pure functions over the loaded group document; the
// caller identity is the opaque account id from the auth layer.
package grouppolicy

import (
	"github.com/studyhive/studyhive/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CanViewResources reports whether the given caller may list the group's
// resources. hasIdentity is false for unauthenticated requests, which are
// allowed only on public groups.
func CanViewResources(g *models.StudyGroup, userID primitive.ObjectID, hasIdentity bool) bool {
	if g.IsPublic {
		return true
	}
	return hasIdentity && g.HasMember(userID)
}

// CanAddResource reports whether the caller may attach a resource.
// Only current members can.
func CanAddResource(g *models.StudyGroup, userID primitive.ObjectID) bool {
	return g.HasMember(userID)
}

// CanLeave reports whether the caller may leave the group. The creator is
// pinned to their group for its lifetime.
func CanLeave(g *models.StudyGroup, userID primitive.ObjectID) bool {
	return g.Creator != userID
}
