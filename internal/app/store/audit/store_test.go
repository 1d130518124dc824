package audit

import (
	"testing"

	"github.com/dalemusser/stratadocs/internal/testutil"
)

func TestStore_LogAndQuery(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	events := []Event{
		{Category: CategoryAuth, EventType: EventLoginSuccess, ActorID: "u1", IP: "1.2.3.4", Success: true},
		{Category: CategoryContent, EventType: EventPageCreated, ActorID: "u1", TargetID: "p1", IP: "1.2.3.4", Success: true},
		{Category: CategoryContent, EventType: EventPageDeleted, ActorID: "u2", TargetID: "p2", IP: "5.6.7.8", Success: true},
	}
	for _, e := range events {
		if err := store.Log(ctx, e); err != nil {
			t.Fatalf("Log() error = %v", err)
		}
	}

	byActor, err := store.Query(ctx, QueryFilter{ActorID: "u1"})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(byActor) != 2 {
		t.Errorf("actor query returned %d events, want 2", len(byActor))
	}

	byCategory, err := store.Query(ctx, QueryFilter{Category: CategoryContent})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(byCategory) != 2 {
		t.Errorf("category query returned %d events, want 2", len(byCategory))
	}

	byTarget, err := store.Query(ctx, QueryFilter{TargetID: "p2"})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(byTarget) != 1 || byTarget[0].EventType != EventPageDeleted {
		t.Errorf("target query = %+v", byTarget)
	}

	for _, e := range byActor {
		if e.CreatedAt.IsZero() {
			t.Error("CreatedAt should be stamped on insert")
		}
	}
}

func TestStore_Query_Limit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for i := 0; i < 5; i++ {
		store.Log(ctx, Event{Category: CategoryAdmin, EventType: EventBackupCreated, Success: true})
	}

	got, err := store.Query(ctx, QueryFilter{Limit: 3})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(got) != 3 {
		t.Errorf("len(got) = %d, want 3", len(got))
	}
}
