// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// EnsureAll creates collections (if missing) and tries to attach JSON-Schema
// validators. On servers that don't support collMod/validators (e.g. some
// DocumentDB versions), we log and skip gracefully.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	ensure := func(coll string, schema bson.M) {
		if err := ensureCollection(ctx, db, coll); err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		if schema == nil {
			return
		}
		if err := setValidator(ctx, db, coll, schema); err != nil {
			if isNoSuchCommand(err) || isNotImplemented(err) {
				zap.L().Info("validator skipped (unsupported)", zap.String("collection", coll))
				return
			}
			problems = append(problems, coll+": "+err.Error())
		}
	}

	ensure("users", usersSchema())
	ensure("study_groups", studyGroupsSchema())
	ensure("sessions", sessionsSchema())

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* ---------------------- collection helpers ---------------------- */

// ensureCollection idempotently makes sure <name> exists.
func ensureCollection(ctx context.Context, db *mongo.Database, name string) error {
	if err := db.CreateCollection(ctx, name); err != nil {
		// NamespaceExists / already exists is fine (race or prior run).
		if isNamespaceExistsErr(err) {
			return nil
		}
		return err
	}
	zap.L().Info("created collection", zap.String("collection", name))
	return nil
}

func setValidator(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	var out bson.M
	if err := db.RunCommand(ctx, cmd).Decode(&out); err != nil {
		return err
	}
	zap.L().Info("validator ensured", zap.String("collection", name))
	return nil
}

/* ------------------------------ schemas ------------------------------- */

// The schemas intentionally enforce only structural shape and hard ranges;
// field-level messages come from payload validation before the store is
// ever touched.

func usersSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": []string{"username", "username_ci", "email", "password_hash", "created_at", "updated_at"},
			"properties": bson.M{
				"username":      bson.M{"bsonType": "string", "minLength": 3, "maxLength": 30},
				"username_ci":   bson.M{"bsonType": "string"},
				"email":         bson.M{"bsonType": "string"},
				"password_hash": bson.M{"bsonType": "string"},
				"current_year": bson.M{
					"enum": []string{"1st Year", "2nd Year", "3rd Year", "4th Year", "Other"},
				},
			},
		},
	}
}

func studyGroupsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": []string{"name", "description", "subject", "creator", "members", "max_members", "is_public"},
			"properties": bson.M{
				"name":        bson.M{"bsonType": "string", "minLength": 3, "maxLength": 100},
				"description": bson.M{"bsonType": "string", "minLength": 10, "maxLength": 500},
				"subject": bson.M{
					"enum": []string{"Mathematics", "Physics", "Chemistry", "Biology", "Computer Science", "English", "History", "Other"},
				},
				"members":     bson.M{"bsonType": "array"},
				"max_members": bson.M{"bsonType": "int", "minimum": 2, "maximum": 500},
				"is_public":   bson.M{"bsonType": "bool"},
				"resources":   bson.M{"bsonType": "array"},
			},
		},
	}
}

func sessionsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": []string{"title", "subject", "date", "start_time", "end_time", "location", "max_participants", "organizer", "status"},
			"properties": bson.M{
				"title":            bson.M{"bsonType": "string", "maxLength": 100},
				"description":      bson.M{"bsonType": "string", "maxLength": 500},
				"subject":          bson.M{"bsonType": "string", "maxLength": 50},
				"start_time":       bson.M{"bsonType": "string", "pattern": `^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`},
				"end_time":         bson.M{"bsonType": "string", "pattern": `^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`},
				"location":         bson.M{"bsonType": "string", "maxLength": 100},
				"max_participants": bson.M{"bsonType": "int", "minimum": 1, "maximum": 50},
				"participants":     bson.M{"bsonType": "array"},
				"status": bson.M{
					"enum": []string{"scheduled", "ongoing", "completed", "cancelled"},
				},
			},
		},
	}
}

/* ------------------------- error helpers ------------------------- */

func isNamespaceExistsErr(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 48 || strings.Contains(strings.ToLower(ce.Message), "already exists")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "already exists") || strings.Contains(s, "namespace exists")
}

func isNoSuchCommand(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 59 || strings.Contains(strings.ToLower(ce.Message), "no such command")) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "no such command")
}

func isNotImplemented(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 238 || strings.Contains(strings.ToLower(ce.Message), "not implemented")) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "not implemented")
}
