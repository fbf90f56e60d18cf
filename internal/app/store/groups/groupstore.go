// internal/app/store/groups/groupstore.go
package groupstore

import (
	"context"
	"errors"
	"time"

	"github.com/studyhive/studyhive/internal/app/system/normalize"
	"github.com/studyhive/studyhive/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var (
	ErrAlreadyMember      = errors.New("user is already a member of this group")
	ErrGroupFull          = errors.New("group is full")
	ErrCreatorCannotLeave = errors.New("creator cannot leave the group")
	ErrResourceNotFound   = errors.New("resource not found")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("study_groups")}
}

// Create inserts a new group. The creator is always seeded as the first
// member regardless of what the caller put in Members.
func (s *Store) Create(ctx context.Context, g models.StudyGroup) (models.StudyGroup, error) {
	now := time.Now().UTC()
	g.ID = primitive.NewObjectID()
	g.NameCI = normalize.Fold(g.Name)
	g.Members = []primitive.ObjectID{g.Creator}
	if g.MaxMembers == 0 {
		g.MaxMembers = models.DefaultMaxMembers
	}
	if g.Resources == nil {
		g.Resources = []models.Resource{}
	}
	g.CreatedAt = now
	g.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, g); err != nil {
		return models.StudyGroup{}, err
	}
	return g, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.StudyGroup, error) {
	var g models.StudyGroup
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&g); err != nil {
		return models.StudyGroup{}, err
	}
	return g, nil
}

// AddMember appends userID to the member list as a single conditional
// update: the filter excludes documents where the user is already present
// or the list is at capacity, so two racing joins can never push the group
// past max_members. A failed match is classified with one follow-up read,
// membership first so a duplicate join reports ErrAlreadyMember even when
// the group is also full.
func (s *Store) AddMember(ctx context.Context, groupID, userID primitive.ObjectID) (models.StudyGroup, error) {
	filter := bson.M{
		"_id":     groupID,
		"members": bson.M{"$ne": userID},
		"$expr":   bson.M{"$lt": bson.A{bson.M{"$size": "$members"}, "$max_members"}},
	}
	update := bson.M{
		"$push": bson.M{"members": userID},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var g models.StudyGroup
	err := s.c.FindOneAndUpdate(ctx, filter, update, opts).Decode(&g)
	if err == nil {
		return g, nil
	}
	if err != mongo.ErrNoDocuments {
		return models.StudyGroup{}, err
	}

	current, err := s.GetByID(ctx, groupID)
	if err != nil {
		return models.StudyGroup{}, err // mongo.ErrNoDocuments when the group is gone
	}
	if current.HasMember(userID) {
		return models.StudyGroup{}, ErrAlreadyMember
	}
	return models.StudyGroup{}, ErrGroupFull
}

// RemoveMember pulls userID from the member list. The creator can never
// leave; removing an absent user is a no-op that still returns the group.
func (s *Store) RemoveMember(ctx context.Context, groupID, userID primitive.ObjectID) (models.StudyGroup, error) {
	filter := bson.M{
		"_id":     groupID,
		"creator": bson.M{"$ne": userID},
	}
	update := bson.M{
		"$pull": bson.M{"members": userID},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var g models.StudyGroup
	err := s.c.FindOneAndUpdate(ctx, filter, update, opts).Decode(&g)
	if err == nil {
		return g, nil
	}
	if err != mongo.ErrNoDocuments {
		return models.StudyGroup{}, err
	}

	if _, err := s.GetByID(ctx, groupID); err != nil {
		return models.StudyGroup{}, err
	}
	return models.StudyGroup{}, ErrCreatorCannotLeave
}

// ListOptions narrows and pages the public group listing.
type ListOptions struct {
	Subject string // exact match when non-empty
	Search  string // case-insensitive substring over name/description
	Page    int64  // 1-based
	Limit   int64
}

// List returns public groups, newest first, plus the total match count.
func (s *Store) List(ctx context.Context, opt ListOptions) ([]models.StudyGroup, int64, error) {
	filter := bson.M{"is_public": true}
	if opt.Subject != "" {
		filter["subject"] = opt.Subject
	}
	if opt.Search != "" {
		filter["$or"] = []bson.M{
			{"name": bson.M{"$regex": opt.Search, "$options": "i"}},
			{"description": bson.M{"$regex": opt.Search, "$options": "i"}},
		}
	}
	return s.page(ctx, filter, opt.Page, opt.Limit, bson.D{{Key: "created_at", Value: -1}})
}

// ListByMember returns every group userID belongs to, newest first.
func (s *Store) ListByMember(ctx context.Context, userID primitive.ObjectID, page, limit int64) ([]models.StudyGroup, int64, error) {
	return s.page(ctx, bson.M{"members": userID}, page, limit, bson.D{{Key: "created_at", Value: -1}})
}

func (s *Store) page(ctx context.Context, filter bson.M, page, limit int64, sort bson.D) ([]models.StudyGroup, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	opts := options.Find().
		SetSort(sort).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	groups := []models.StudyGroup{}
	if err := cur.All(ctx, &groups); err != nil {
		return nil, 0, err
	}

	total, err := s.c.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return groups, total, nil
}

/* ------------------------- resource sub-ledger ------------------------- */

// AddResource appends a resource to the group's embedded list. The caller
// has already verified membership; creator and created_at are stamped here.
func (s *Store) AddResource(ctx context.Context, groupID primitive.ObjectID, res models.Resource) (models.Resource, error) {
	res.ID = primitive.NewObjectID()
	res.CreatedAt = time.Now().UTC()
	if res.Type == "" {
		res.Type = models.ResourceTypeLink
	}

	result, err := s.c.UpdateByID(ctx, groupID, bson.M{
		"$push": bson.M{"resources": res},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return models.Resource{}, err
	}
	if result.MatchedCount == 0 {
		return models.Resource{}, mongo.ErrNoDocuments
	}
	return res, nil
}

// UpdateResource applies the given allow-listed field set to one embedded
// resource. Permission checks happen in the handler against the loaded
// group; fields maps bson keys (title, url, description, type, is_public)
// to their new values.
func (s *Store) UpdateResource(ctx context.Context, groupID, resourceID primitive.ObjectID, fields bson.M) (models.StudyGroup, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	for k, v := range fields {
		set["resources.$[res]."+k] = v
	}

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetArrayFilters(options.ArrayFilters{Filters: []interface{}{bson.M{"res._id": resourceID}}})

	var g models.StudyGroup
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": groupID, "resources._id": resourceID}, bson.M{"$set": set}, opts).Decode(&g)
	if err == mongo.ErrNoDocuments {
		return models.StudyGroup{}, ErrResourceNotFound
	}
	if err != nil {
		return models.StudyGroup{}, err
	}
	return g, nil
}

// RemoveResource deletes one embedded resource by id. ErrResourceNotFound
// covers both a missing group and a missing entry; callers that need to
// distinguish have already loaded the group.
func (s *Store) RemoveResource(ctx context.Context, groupID, resourceID primitive.ObjectID) error {
	result, err := s.c.UpdateOne(ctx,
		bson.M{"_id": groupID, "resources._id": resourceID},
		bson.M{
			"$pull": bson.M{"resources": bson.M{"_id": resourceID}},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrResourceNotFound
	}
	return nil
}
