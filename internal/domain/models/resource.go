// internal/domain/models/resource.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Resource types.
const (
	ResourceTypeLink = "resource"
	ResourceTypeNote = "note"
)

// IsAllowedResourceType reports whether t is "resource" or "note".
func IsAllowedResourceType(t string) bool {
	return t == ResourceTypeLink || t == ResourceTypeNote
}

// Resource is a shareable link or note embedded in a StudyGroup document.
//
// Creator is fixed at creation; only the resource creator or the owning
// group's creator may update or delete it. IsPublic is stored as a
// pass-through attribute and is not used as an access filter.
type Resource struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Title       string             `bson:"title" json:"title"`
	URL         string             `bson:"url,omitempty" json:"url,omitempty"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Type        string             `bson:"type" json:"type"` // "resource" | "note"
	Creator     primitive.ObjectID `bson:"creator" json:"creator"`
	IsPublic    bool               `bson:"is_public" json:"is_public"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}
