// Package resourcepolicy provides authorization policies for the resources
// embedded in a study group.
//
// Authorization rules:
//   - The resource creator may update or delete their own resource
//   - The owning group's creator may update or delete any resource in it
//   - Nobody else may mutate a resource
package resourcepolicy

import (
	"github.com/studyhive/studyhive/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CanManage reports whether the caller may update or delete the resource.
func CanManage(g *models.StudyGroup, res *models.Resource, userID primitive.ObjectID) bool {
	return res.Creator == userID || g.Creator == userID
}
