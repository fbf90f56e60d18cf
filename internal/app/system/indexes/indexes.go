// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

/*
EnsureAll is called at startup. Index creation is idempotent; we aggregate
errors so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureStudyGroups(ctx, db); err != nil {
		problems = append(problems, "study_groups: "+err.Error())
	}
	if err := ensureSessions(ctx, db); err != nil {
		problems = append(problems, "sessions: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("users")
	_, err := c.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("uniq_email").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "username_ci", Value: 1}},
			Options: options.Index().SetName("uniq_username_ci").SetUnique(true),
		},
	})
	return err
}

func ensureStudyGroups(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("study_groups")
	_, err := c.Indexes().CreateMany(ctx, []mongo.IndexModel{
		// Public listing with subject filter, newest first.
		{
			Keys:    bson.D{{Key: "is_public", Value: 1}, {Key: "subject", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("public_subject_created"),
		},
		// "my groups" lookups.
		{
			Keys:    bson.D{{Key: "members", Value: 1}},
			Options: options.Index().SetName("members"),
		},
		{
			Keys:    bson.D{{Key: "creator", Value: 1}},
			Options: options.Index().SetName("creator"),
		},
	})
	return err
}

func ensureSessions(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("sessions")
	_, err := c.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "date", Value: 1}, {Key: "start_time", Value: 1}},
			Options: options.Index().SetName("date_start"),
		},
		{
			Keys:    bson.D{{Key: "organizer", Value: 1}},
			Options: options.Index().SetName("organizer"),
		},
		{
			Keys:    bson.D{{Key: "participants.user", Value: 1}},
			Options: options.Index().SetName("participants_user"),
		},
	})
	return err
}
