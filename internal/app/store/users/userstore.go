// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/studyhive/studyhive/internal/app/system/normalize"
	"github.com/studyhive/studyhive/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost matches the cost used across the app for credential hashing.
const bcryptCost = 12

type Store struct {
	c *mongo.Collection
}

var (
	ErrEmailExists        = errors.New("email already registered")
	ErrUsernameExists     = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// Create registers a new account. The plaintext password is hashed here and
// never stored. Email and username uniqueness is checked up front so the
// caller can report which field collided; the unique indexes remain the
// authoritative guard against races.
func (s *Store) Create(ctx context.Context, u models.User, password string) (models.User, error) {
	now := time.Now().UTC()
	u.ID = primitive.NewObjectID()
	u.Email = normalize.Email(u.Email)
	u.Username = normalize.Username(u.Username)
	u.UsernameCI = normalize.Fold(u.Username)
	u.CreatedAt = now
	u.UpdatedAt = now

	var existing struct {
		Email      string `bson:"email"`
		UsernameCI string `bson:"username_ci"`
	}
	err := s.c.FindOne(ctx, bson.M{
		"$or": []bson.M{
			{"email": u.Email},
			{"username_ci": u.UsernameCI},
		},
	}).Decode(&existing)
	switch {
	case err == nil:
		if existing.Email == u.Email {
			return models.User{}, ErrEmailExists
		}
		return models.User{}, ErrUsernameExists
	case err != mongo.ErrNoDocuments:
		return models.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return models.User{}, err
	}
	u.PasswordHash = string(hash)

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			// Lost the race; we can't tell which field without re-reading,
			// and email is by far the common collision.
			return models.User{}, ErrEmailExists
		}
		return models.User{}, err
	}
	return u, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (s *Store) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// VerifyCredentials looks up the account by email and compares the bcrypt
// hash. Both "no such account" and "wrong password" collapse into
// ErrInvalidCredentials so callers cannot probe for registered emails.
func (s *Store) VerifyCredentials(ctx context.Context, email, password string) (models.User, error) {
	u, err := s.GetByEmail(ctx, email)
	if err == mongo.ErrNoDocuments {
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return u, nil
}

// SummariesByIDs returns the narrowed {id, username, email} projection for
// the given users, keyed by id. Missing ids are simply absent from the map.
func (s *Store) SummariesByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.UserSummary, error) {
	out := make(map[primitive.ObjectID]models.UserSummary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	proj := options.Find().SetProjection(bson.M{"_id": 1, "username": 1, "email": 1})
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, proj)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var sum models.UserSummary
		if err := cur.Decode(&sum); err != nil {
			return nil, err
		}
		out[sum.ID] = sum
	}
	return out, cur.Err()
}
