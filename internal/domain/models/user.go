// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AllowedYears are the accepted values for a user's current year of study.
var AllowedYears = []string{"1st Year", "2nd Year", "3rd Year", "4th Year", "Other"}

// IsAllowedYear reports whether year is one of the enumerated study years.
func IsAllowedYear(year string) bool {
	for _, y := range AllowedYears {
		if y == year {
			return true
		}
	}
	return false
}

// User represents a registered student account.
//
// NOTE:
//   - PasswordHash is bcrypt output and is never serialized to JSON.
//   - UsernameCI is the lowercase shadow backing the unique username index.
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username   string             `bson:"username" json:"username"`
	UsernameCI string             `bson:"username_ci" json:"-"`
	Email      string             `bson:"email" json:"email"` // normalized lowercase

	PasswordHash string `bson:"password_hash" json:"-"`

	DateOfBirth *time.Time `bson:"date_of_birth,omitempty" json:"date_of_birth,omitempty"`
	CollegeName string     `bson:"college_name,omitempty" json:"college_name,omitempty"`
	CurrentYear string     `bson:"current_year,omitempty" json:"current_year,omitempty"` // one of AllowedYears

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// UserSummary is the narrowed projection attached wherever another document
// references a user. Only the display handle and email are ever exposed.
type UserSummary struct {
	ID       primitive.ObjectID `bson:"_id" json:"id"`
	Username string             `bson:"username" json:"username"`
	Email    string             `bson:"email" json:"email"`
}
