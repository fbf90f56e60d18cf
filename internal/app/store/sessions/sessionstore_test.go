package sessionstore_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	sessionstore "github.com/studyhive/studyhive/internal/app/store/sessions"
	"github.com/studyhive/studyhive/internal/domain/models"
	"github.com/studyhive/studyhive/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestCreate_Defaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := sessionstore.New(db)
	sess, err := store.Create(ctx, models.Session{
		Title:           "Thermo review",
		Subject:         "Physics",
		Date:            time.Now().UTC().Add(48 * time.Hour),
		StartTime:       "10:00",
		EndTime:         "12:00",
		Location:        "Room 12",
		MaxParticipants: 5,
		Organizer:       primitive.NewObjectID(),
		IsPublic:        true,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if sess.Status != models.SessionScheduled {
		t.Errorf("default status: got %q, want %q", sess.Status, models.SessionScheduled)
	}
	if sess.Participants == nil {
		t.Error("Participants should be an empty slice, not nil")
	}
}

func TestAddParticipant(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures := testutil.NewFixtures(t, db)
	organizer := primitive.NewObjectID()
	session := fixtures.CreateSession(ctx, "Small Session", organizer, true, 2)

	store := sessionstore.New(db)
	first := primitive.NewObjectID()

	sess, err := store.AddParticipant(ctx, session.ID, first)
	if err != nil {
		t.Fatalf("AddParticipant failed: %v", err)
	}
	if !sess.HasParticipant(first) {
		t.Error("participant missing after join")
	}

	if _, err := store.AddParticipant(ctx, session.ID, first); err != sessionstore.ErrAlreadyJoined {
		t.Errorf("duplicate join: got %v, want ErrAlreadyJoined", err)
	}

	second := primitive.NewObjectID()
	if _, err := store.AddParticipant(ctx, session.ID, second); err != nil {
		t.Fatalf("second join failed: %v", err)
	}

	if _, err := store.AddParticipant(ctx, session.ID, primitive.NewObjectID()); err != sessionstore.ErrSessionFull {
		t.Errorf("join full session: got %v, want ErrSessionFull", err)
	}

	// Capacity wins over membership when the session is both full and
	// already joined.
	if _, err := store.AddParticipant(ctx, session.ID, first); err != sessionstore.ErrSessionFull {
		t.Errorf("rejoin full session: got %v, want ErrSessionFull", err)
	}

	if _, err := store.AddParticipant(ctx, primitive.NewObjectID(), first); err != mongo.ErrNoDocuments {
		t.Errorf("join missing session: got %v, want ErrNoDocuments", err)
	}
}

func TestAddParticipant_ConcurrentLastSeat(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures := testutil.NewFixtures(t, db)
	organizer := primitive.NewObjectID()
	session := fixtures.CreateSession(ctx, "One Spot", organizer, true, 1)

	store := sessionstore.New(db)

	const contenders = 8
	var wg sync.WaitGroup
	var joined int64
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.AddParticipant(ctx, session.ID, primitive.NewObjectID()); err == nil {
				atomic.AddInt64(&joined, 1)
			}
		}()
	}
	wg.Wait()

	if joined != 1 {
		t.Errorf("expected exactly 1 successful join, got %d", joined)
	}

	final, err := store.GetByID(ctx, session.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(final.Participants) != 1 {
		t.Errorf("participant count: got %d, want 1", len(final.Participants))
	}
}

func TestRemoveParticipant_IsIdempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures := testutil.NewFixtures(t, db)
	organizer := primitive.NewObjectID()
	user := primitive.NewObjectID()
	session := fixtures.CreateSession(ctx, "Leavable", organizer, true, 5)
	fixtures.AddParticipant(ctx, session.ID, user)

	store := sessionstore.New(db)

	sess, err := store.RemoveParticipant(ctx, session.ID, user)
	if err != nil {
		t.Fatalf("RemoveParticipant failed: %v", err)
	}
	if sess.HasParticipant(user) {
		t.Error("participant still present after leave")
	}

	// Leaving again is a no-op.
	if _, err := store.RemoveParticipant(ctx, session.ID, user); err != nil {
		t.Errorf("second leave: got %v, want nil", err)
	}
}

func TestList_StatusSubjectAndDate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures := testutil.NewFixtures(t, db)
	organizer := primitive.NewObjectID()

	a := fixtures.CreateSession(ctx, "Morning Physics", organizer, true, 5)
	fixtures.CreateSession(ctx, "Private Study", organizer, false, 5)
	b := fixtures.CreateSession(ctx, "Evening Chem", organizer, true, 5)

	// Move b to a different day and subject.
	otherDay := time.Now().UTC().Truncate(24 * time.Hour).Add(72 * time.Hour)
	if _, err := db.Collection("sessions").UpdateByID(ctx, b.ID, bson.M{
		"$set": bson.M{"date": otherDay, "subject": "Chemistry"},
	}); err != nil {
		t.Fatalf("fixture update failed: %v", err)
	}

	store := sessionstore.New(db)

	ss, total, err := store.List(ctx, sessionstore.ListOptions{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if total != 2 {
		t.Errorf("public scheduled total: got %d, want 2", total)
	}
	if len(ss) != 2 {
		t.Errorf("page size: got %d, want 2", len(ss))
	}

	_, total, err = store.List(ctx, sessionstore.ListOptions{Subject: "chem"})
	if err != nil {
		t.Fatalf("List by subject failed: %v", err)
	}
	if total != 1 {
		t.Errorf("subject total: got %d, want 1", total)
	}

	ss, total, err = store.List(ctx, sessionstore.ListOptions{Date: a.Date})
	if err != nil {
		t.Fatalf("List by date failed: %v", err)
	}
	if total != 1 || ss[0].ID != a.ID {
		t.Errorf("date filter: got total=%d, want the morning session only", total)
	}
}

func TestListByOrganizerAndJoined(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures := testutil.NewFixtures(t, db)
	organizer := primitive.NewObjectID()
	user := primitive.NewObjectID()

	own := fixtures.CreateSession(ctx, "Organized", user, true, 5)
	joined := fixtures.CreateSession(ctx, "Joined", organizer, true, 5)
	fixtures.AddParticipant(ctx, joined.ID, user)
	fixtures.CreateSession(ctx, "Unrelated", organizer, true, 5)

	store := sessionstore.New(db)

	organized, err := store.ListByOrganizer(ctx, user)
	if err != nil {
		t.Fatalf("ListByOrganizer failed: %v", err)
	}
	if len(organized) != 1 || organized[0].ID != own.ID {
		t.Errorf("organized: got %d sessions, want the organized one only", len(organized))
	}

	joinedList, err := store.ListJoined(ctx, user)
	if err != nil {
		t.Fatalf("ListJoined failed: %v", err)
	}
	if len(joinedList) != 1 || joinedList[0].ID != joined.ID {
		t.Errorf("joined: got %d sessions, want the joined one only", len(joinedList))
	}
}

func TestUpdateAndDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures := testutil.NewFixtures(t, db)
	organizer := primitive.NewObjectID()
	session := fixtures.CreateSession(ctx, "Mutable", organizer, true, 5)

	store := sessionstore.New(db)

	sess, err := store.Update(ctx, session.ID, bson.M{"title": "Renamed", "status": models.SessionCancelled})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if sess.Title != "Renamed" || sess.Status != models.SessionCancelled {
		t.Errorf("update not applied: %+v", sess)
	}

	deleted, err := store.Delete(ctx, session.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted count: got %d, want 1", deleted)
	}

	deleted, err = store.Delete(ctx, session.ID)
	if err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}
	if deleted != 0 {
		t.Errorf("second delete count: got %d, want 0", deleted)
	}
}
