package testutil

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/studyhive/studyhive/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a test account. The password hash is bcrypt at
// MinCost so login tests stay fast.
func (f *Fixtures) CreateUser(ctx context.Context, username, email, password string) models.User {
	f.t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		f.t.Fatalf("failed to hash fixture password: %v", err)
	}

	now := time.Now().UTC()
	user := models.User{
		ID:           primitive.NewObjectID(),
		Username:     username,
		UsernameCI:   strings.ToLower(username),
		Email:        strings.ToLower(email),
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateGroup creates a study group with the creator seeded as the first
// member.
func (f *Fixtures) CreateGroup(ctx context.Context, name string, creator primitive.ObjectID, isPublic bool, maxMembers int) models.StudyGroup {
	f.t.Helper()

	now := time.Now().UTC()
	group := models.StudyGroup{
		ID:          primitive.NewObjectID(),
		Name:        name,
		NameCI:      strings.ToLower(name),
		Description: "A fixture group for testing purposes",
		Subject:     "Mathematics",
		Creator:     creator,
		Members:     []primitive.ObjectID{creator},
		MaxMembers:  maxMembers,
		IsPublic:    isPublic,
		Resources:   []models.Resource{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := f.db.Collection("study_groups").InsertOne(ctx, group); err != nil {
		f.t.Fatalf("failed to create test group: %v", err)
	}
	return group
}

// AddGroupMember appends a member directly, bypassing capacity checks.
func (f *Fixtures) AddGroupMember(ctx context.Context, groupID, userID primitive.ObjectID) {
	f.t.Helper()
	_, err := f.db.Collection("study_groups").UpdateByID(ctx, groupID,
		map[string]any{"$push": map[string]any{"members": userID}})
	if err != nil {
		f.t.Fatalf("failed to add test member: %v", err)
	}
}

// AddResource appends a resource entry directly to a group.
func (f *Fixtures) AddResource(ctx context.Context, groupID primitive.ObjectID, title string, creator primitive.ObjectID) models.Resource {
	f.t.Helper()

	res := models.Resource{
		ID:        primitive.NewObjectID(),
		Title:     title,
		URL:       "https://example.com/material",
		Type:      models.ResourceTypeLink,
		Creator:   creator,
		IsPublic:  true,
		CreatedAt: time.Now().UTC(),
	}
	_, err := f.db.Collection("study_groups").UpdateByID(ctx, groupID,
		map[string]any{"$push": map[string]any{"resources": res}})
	if err != nil {
		f.t.Fatalf("failed to add test resource: %v", err)
	}
	return res
}

// CreateSession creates a study session scheduled for tomorrow.
func (f *Fixtures) CreateSession(ctx context.Context, title string, organizer primitive.ObjectID, isPublic bool, maxParticipants int) models.Session {
	f.t.Helper()

	now := time.Now().UTC()
	session := models.Session{
		ID:              primitive.NewObjectID(),
		Title:           title,
		Subject:         "Physics",
		Date:            now.Truncate(24 * time.Hour).Add(24 * time.Hour),
		StartTime:       "14:00",
		EndTime:         "16:00",
		Location:        "Library Room 2",
		MaxParticipants: maxParticipants,
		Organizer:       organizer,
		Participants:    []models.Participant{},
		Status:          models.SessionScheduled,
		IsPublic:        isPublic,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if _, err := f.db.Collection("sessions").InsertOne(ctx, session); err != nil {
		f.t.Fatalf("failed to create test session: %v", err)
	}
	return session
}

// AddParticipant appends a participant entry directly, bypassing capacity
// checks.
func (f *Fixtures) AddParticipant(ctx context.Context, sessionID, userID primitive.ObjectID) {
	f.t.Helper()
	_, err := f.db.Collection("sessions").UpdateByID(ctx, sessionID,
		map[string]any{"$push": map[string]any{"participants": models.Participant{
			User:     userID,
			JoinedAt: time.Now().UTC(),
		}}})
	if err != nil {
		f.t.Fatalf("failed to add test participant: %v", err)
	}
}
