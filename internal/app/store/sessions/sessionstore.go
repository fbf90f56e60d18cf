// internal/app/store/sessions/sessionstore.go
package sessionstore

import (
	"context"
	"errors"
	"time"

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
	ErrSessionFull   = errors.New("session is full")
	ErrAlreadyJoined = errors.New("user already joined this session")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("sessions")}
}

func (s *Store) Create(ctx context.Context, sess models.Session) (models.Session, error) {
	now := time.Now().UTC()
	sess.ID = primitive.NewObjectID()
	if sess.Status == "" {
		sess.Status = models.SessionScheduled
	}
	if sess.Participants == nil {
		sess.Participants = []models.Participant{}
	}
	sess.CreatedAt = now
	sess.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, sess); err != nil {
		return models.Session{}, err
	}
	return sess, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Session, error) {
	var sess models.Session
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&sess); err != nil {
		return models.Session{}, err
	}
	return sess, nil
}

// AddParticipant appends {userID, now} under the same conditional-update
// scheme as the group join, so concurrent joins cannot exceed capacity.
// Classification of a failed match is capacity-first: a full session
// reports ErrSessionFull even if the user had also already joined.
// The organizer guard lives in the handler, not here.
func (s *Store) AddParticipant(ctx context.Context, sessionID, userID primitive.ObjectID) (models.Session, error) {
	filter := bson.M{
		"_id":               sessionID,
		"participants.user": bson.M{"$ne": userID},
		"$expr":             bson.M{"$lt": bson.A{bson.M{"$size": "$participants"}, "$max_participants"}},
	}
	update := bson.M{
		"$push": bson.M{"participants": models.Participant{User: userID, JoinedAt: time.Now().UTC()}},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var sess models.Session
	err := s.c.FindOneAndUpdate(ctx, filter, update, opts).Decode(&sess)
	if err == nil {
		return sess, nil
	}
	if err != mongo.ErrNoDocuments {
		return models.Session{}, err
	}

	current, err := s.GetByID(ctx, sessionID)
	if err != nil {
		return models.Session{}, err
	}
	if current.IsFull() {
		return models.Session{}, ErrSessionFull
	}
	return models.Session{}, ErrAlreadyJoined
}

// RemoveParticipant pulls userID unconditionally; leaving a session one
// never joined is a no-op, not an error.
func (s *Store) RemoveParticipant(ctx context.Context, sessionID, userID primitive.ObjectID) (models.Session, error) {
	update := bson.M{
		"$pull": bson.M{"participants": bson.M{"user": userID}},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var sess models.Session
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": sessionID}, update, opts).Decode(&sess); err != nil {
		return models.Session{}, err
	}
	return sess, nil
}

// ListOptions narrows and pages the public session listing.
type ListOptions struct {
	Status  string    // defaults to "scheduled"
	Subject string    // case-insensitive substring
	Date    time.Time // match sessions on this calendar day when non-zero
	Page    int64
	Limit   int64
}

// List returns public sessions ordered by (date, start_time).
func (s *Store) List(ctx context.Context, opt ListOptions) ([]models.Session, int64, error) {
	status := opt.Status
	if status == "" {
		status = models.SessionScheduled
	}
	filter := bson.M{"is_public": true, "status": status}
	if opt.Subject != "" {
		filter["subject"] = bson.M{"$regex": opt.Subject, "$options": "i"}
	}
	if !opt.Date.IsZero() {
		day := opt.Date.Truncate(24 * time.Hour)
		filter["date"] = bson.M{"$gte": day, "$lt": day.Add(24 * time.Hour)}
	}

	page, limit := opt.Page, opt.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: 1}, {Key: "start_time", Value: 1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	sessions := []models.Session{}
	if err := cur.All(ctx, &sessions); err != nil {
		return nil, 0, err
	}

	total, err := s.c.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return sessions, total, nil
}

// ListByOrganizer returns every session the user organizes.
func (s *Store) ListByOrganizer(ctx context.Context, userID primitive.ObjectID) ([]models.Session, error) {
	return s.findSorted(ctx, bson.M{"organizer": userID})
}

// ListJoined returns sessions the user participates in but does not organize.
func (s *Store) ListJoined(ctx context.Context, userID primitive.ObjectID) ([]models.Session, error) {
	return s.findSorted(ctx, bson.M{
		"participants.user": userID,
		"organizer":         bson.M{"$ne": userID},
	})
}

func (s *Store) findSorted(ctx context.Context, filter bson.M) ([]models.Session, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "start_time", Value: 1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	sessions := []models.Session{}
	if err := cur.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// Update applies an allow-listed field set (already translated to bson
// keys by the handler) and returns the updated document.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (models.Session, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	for k, v := range fields {
		set[k] = v
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var sess models.Session
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&sess); err != nil {
		return models.Session{}, err
	}
	return sess, nil
}

// Delete removes a session by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
