package groupstore_test

import (
	"sync"
	"sync/atomic"
	"testing"

	groupstore "github.com/studyhive/studyhive/internal/app/store/groups"
	"github.com/studyhive/studyhive/internal/domain/models"
	"github.com/studyhive/studyhive/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestCreate_SeedsCreatorAndDefaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := primitive.NewObjectID()
	store := groupstore.New(db)
	g, err := store.Create(ctx, models.StudyGroup{
		Name:        "Calc Crew",
		Description: "Weekly calculus practice",
		Subject:     "Mathematics",
		Creator:     creator,
		IsPublic:    true,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if len(g.Members) != 1 || g.Members[0] != creator {
		t.Errorf("creator not seeded as first member: %v", g.Members)
	}
	if g.MaxMembers != models.DefaultMaxMembers {
		t.Errorf("MaxMembers: got %d, want default %d", g.MaxMembers, models.DefaultMaxMembers)
	}
	if g.NameCI != "calc crew" {
		t.Errorf("NameCI: got %q", g.NameCI)
	}
	if g.Resources == nil {
		t.Error("Resources should be an empty slice, not nil")
	}
}

func TestAddMember(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures := testutil.NewFixtures(t, db)
	creator := primitive.NewObjectID()
	group := fixtures.CreateGroup(ctx, "Physics Circle", creator, true, 3)

	store := groupstore.New(db)
	member := primitive.NewObjectID()

	g, err := store.AddMember(ctx, group.ID, member)
	if err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}
	if !g.HasMember(member) {
		t.Error("member missing after join")
	}

	if _, err := store.AddMember(ctx, group.ID, member); err != groupstore.ErrAlreadyMember {
		t.Errorf("duplicate join: got %v, want ErrAlreadyMember", err)
	}

	third := primitive.NewObjectID()
	if _, err := store.AddMember(ctx, group.ID, third); err != nil {
		t.Fatalf("third join failed: %v", err)
	}

	// Capacity reached; a newcomer is refused.
	if _, err := store.AddMember(ctx, group.ID, primitive.NewObjectID()); err != groupstore.ErrGroupFull {
		t.Errorf("join full group: got %v, want ErrGroupFull", err)
	}

	// An existing member of a full group still gets the membership error.
	if _, err := store.AddMember(ctx, group.ID, member); err != groupstore.ErrAlreadyMember {
		t.Errorf("member joining full group: got %v, want ErrAlreadyMember", err)
	}

	if _, err := store.AddMember(ctx, primitive.NewObjectID(), member); err != mongo.ErrNoDocuments {
		t.Errorf("join missing group: got %v, want ErrNoDocuments", err)
	}
}

func TestAddMember_ConcurrentLastSeat(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures := testutil.NewFixtures(t, db)
	creator := primitive.NewObjectID()
	group := fixtures.CreateGroup(ctx, "One Seat Left", creator, true, 2)

	store := groupstore.New(db)

	const contenders = 8
	var wg sync.WaitGroup
	var joined int64
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.AddMember(ctx, group.ID, primitive.NewObjectID()); err == nil {
				atomic.AddInt64(&joined, 1)
			}
		}()
	}
	wg.Wait()

	if joined != 1 {
		t.Errorf("expected exactly 1 successful join, got %d", joined)
	}

	final, err := store.GetByID(ctx, group.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(final.Members) != 2 {
		t.Errorf("member count: got %d, want 2", len(final.Members))
	}
}

func TestRemoveMember(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures := testutil.NewFixtures(t, db)
	creator := primitive.NewObjectID()
	member := primitive.NewObjectID()
	group := fixtures.CreateGroup(ctx, "Leavers", creator, true, 10)
	fixtures.AddGroupMember(ctx, group.ID, member)

	store := groupstore.New(db)

	if _, err := store.RemoveMember(ctx, group.ID, creator); err != groupstore.ErrCreatorCannotLeave {
		t.Errorf("creator leave: got %v, want ErrCreatorCannotLeave", err)
	}

	g, err := store.RemoveMember(ctx, group.ID, member)
	if err != nil {
		t.Fatalf("RemoveMember failed: %v", err)
	}
	if g.HasMember(member) {
		t.Error("member still present after leave")
	}

	if _, err := store.RemoveMember(ctx, primitive.NewObjectID(), member); err != mongo.ErrNoDocuments {
		t.Errorf("leave missing group: got %v, want ErrNoDocuments", err)
	}
}

func TestList_FiltersAndPaginates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := groupstore.New(db)
	creator := primitive.NewObjectID()

	mk := func(name, subject string, public bool) {
		t.Helper()
		_, err := store.Create(ctx, models.StudyGroup{
			Name:        name,
			Description: "Description long enough to pass",
			Subject:     subject,
			Creator:     creator,
			IsPublic:    public,
		})
		if err != nil {
			t.Fatalf("Create %q failed: %v", name, err)
		}
	}

	mk("Algebra Study", "Mathematics", true)
	mk("Linear Algebra Lab", "Mathematics", true)
	mk("Organic Chemistry", "Chemistry", true)
	mk("Secret Math Club", "Mathematics", false)

	gs, total, err := store.List(ctx, groupstore.ListOptions{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if total != 3 {
		t.Errorf("public total: got %d, want 3", total)
	}
	if len(gs) != 3 {
		t.Errorf("page size: got %d, want 3", len(gs))
	}

	_, total, err = store.List(ctx, groupstore.ListOptions{Subject: "Mathematics"})
	if err != nil {
		t.Fatalf("List by subject failed: %v", err)
	}
	if total != 2 {
		t.Errorf("subject total: got %d, want 2", total)
	}

	gs, total, err = store.List(ctx, groupstore.ListOptions{Search: "algebra"})
	if err != nil {
		t.Fatalf("List by search failed: %v", err)
	}
	if total != 2 {
		t.Errorf("search total: got %d, want 2", total)
	}

	gs, _, err = store.List(ctx, groupstore.ListOptions{Page: 2, Limit: 2})
	if err != nil {
		t.Fatalf("List page 2 failed: %v", err)
	}
	if len(gs) != 1 {
		t.Errorf("page 2 size: got %d, want 1", len(gs))
	}
}

func TestListByMember(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures := testutil.NewFixtures(t, db)
	creator := primitive.NewObjectID()
	member := primitive.NewObjectID()

	mine := fixtures.CreateGroup(ctx, "Mine Private", member, false, 10)
	joined := fixtures.CreateGroup(ctx, "Joined Group", creator, true, 10)
	fixtures.AddGroupMember(ctx, joined.ID, member)
	fixtures.CreateGroup(ctx, "Unrelated", creator, true, 10)

	store := groupstore.New(db)
	gs, total, err := store.ListByMember(ctx, member, 1, 10)
	if err != nil {
		t.Fatalf("ListByMember failed: %v", err)
	}
	if total != 2 {
		t.Errorf("total: got %d, want 2", total)
	}

	seen := map[primitive.ObjectID]bool{}
	for _, g := range gs {
		seen[g.ID] = true
	}
	if !seen[mine.ID] || !seen[joined.ID] {
		t.Errorf("expected both member groups, got %v", seen)
	}
}

func TestResources_Lifecycle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures := testutil.NewFixtures(t, db)
	creator := primitive.NewObjectID()
	group := fixtures.CreateGroup(ctx, "Resourceful", creator, true, 10)

	store := groupstore.New(db)

	res, err := store.AddResource(ctx, group.ID, models.Resource{
		Title:   "Lecture notes",
		URL:     "https://example.com/notes",
		Creator: creator,
	})
	if err != nil {
		t.Fatalf("AddResource failed: %v", err)
	}
	if res.ID.IsZero() {
		t.Error("resource id not stamped")
	}
	if res.Type != models.ResourceTypeLink {
		t.Errorf("default type: got %q, want %q", res.Type, models.ResourceTypeLink)
	}

	g, err := store.UpdateResource(ctx, group.ID, res.ID, map[string]interface{}{"title": "Updated notes"})
	if err != nil {
		t.Fatalf("UpdateResource failed: %v", err)
	}
	updated := g.ResourceByID(res.ID)
	if updated == nil || updated.Title != "Updated notes" {
		t.Errorf("resource title not updated: %+v", updated)
	}

	if _, err := store.UpdateResource(ctx, group.ID, primitive.NewObjectID(), map[string]interface{}{"title": "x"}); err != groupstore.ErrResourceNotFound {
		t.Errorf("update missing resource: got %v, want ErrResourceNotFound", err)
	}

	if err := store.RemoveResource(ctx, group.ID, res.ID); err != nil {
		t.Fatalf("RemoveResource failed: %v", err)
	}
	if err := store.RemoveResource(ctx, group.ID, res.ID); err != groupstore.ErrResourceNotFound {
		t.Errorf("remove twice: got %v, want ErrResourceNotFound", err)
	}
}
