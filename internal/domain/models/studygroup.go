// internal/domain/models/studygroup.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AllowedSubjects are the accepted study-group subjects.
var AllowedSubjects = []string{
	"Mathematics", "Physics", "Chemistry", "Biology",
	"Computer Science", "English", "History", "Other",
}

// IsAllowedSubject reports whether subject is one of the enumerated subjects.
func IsAllowedSubject(subject string) bool {
	for _, s := range AllowedSubjects {
		if s == subject {
			return true
		}
	}
	return false
}

// DefaultMaxMembers is used when a group is created without a capacity.
const DefaultMaxMembers = 50

// StudyGroup is a capacity-bounded collection of users around a subject.
//
// Invariants:
//   - Creator is always present in Members.
//   - Members entries are unique; len(Members) <= MaxMembers.
//   - Resources are owned by the group document; creator per entry.
type StudyGroup struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Name        string             `bson:"name" json:"name"`
	NameCI      string             `bson:"name_ci" json:"-"`
	Description string             `bson:"description" json:"description"`
	Subject     string             `bson:"subject" json:"subject"`

	Creator    primitive.ObjectID   `bson:"creator" json:"creator"`
	Members    []primitive.ObjectID `bson:"members" json:"members"`
	MaxMembers int                  `bson:"max_members" json:"max_members"`
	IsPublic   bool                 `bson:"is_public" json:"is_public"`

	Resources []Resource `bson:"resources" json:"resources"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// HasMember reports whether userID is in the member list.
func (g *StudyGroup) HasMember(userID primitive.ObjectID) bool {
	for _, m := range g.Members {
		if m == userID {
			return true
		}
	}
	return false
}

// IsFull reports whether the member list has reached capacity.
func (g *StudyGroup) IsFull() bool {
	return len(g.Members) >= g.MaxMembers
}

// ResourceByID returns the embedded resource with the given id, or nil.
func (g *StudyGroup) ResourceByID(id primitive.ObjectID) *Resource {
	for i := range g.Resources {
		if g.Resources[i].ID == id {
			return &g.Resources[i]
		}
	}
	return nil
}
