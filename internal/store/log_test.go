package store

import (
	"testing"
	"time"
)

func TestListByItemNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	group := seedGroup(t, db, user.ID)
	items := NewItemStore(db)
	logs := NewLogStore(db)

	freq := 24
	sink, _ := items.Create(group.ID, nil, "Sink", "", &freq, 10)

	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	insertLog(t, db, sink.ID, user.ID, group.ID, 100, 12, base)
	insertLog(t, db, sink.ID, user.ID, group.ID, 50, 10, base.Add(time.Hour))

	got, err := logs.ListByItem(sink.ID, 10)
	if err != nil {
		t.Fatalf("list by item: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("entries = %d, want 2", len(got))
	}
	if !got[0].CleanedAt.After(got[1].CleanedAt) {
		t.Errorf("order = %v then %v, want newest first", got[0].CleanedAt, got[1].CleanedAt)
	}

	limited, err := logs.ListByItem(sink.ID, 1)
	if err != nil {
		t.Fatalf("list limited: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("limited entries = %d, want 1", len(limited))
	}
}

func TestRecentActivityJoinsNames(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	group := seedGroup(t, db, user.ID)
	items := NewItemStore(db)
	logs := NewLogStore(db)

	freq := 24
	sink, _ := items.Create(group.ID, nil, "Kitchen Sink", "", &freq, 10)
	insertLog(t, db, sink.ID, user.ID, group.ID, 100, 12, time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))

	entries, err := logs.RecentActivity(group.ID, 10)
	if err != nil {
		t.Fatalf("recent activity: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	if entries[0].ItemName != "Kitchen Sink" {
		t.Errorf("item name = %q, want %q", entries[0].ItemName, "Kitchen Sink")
	}
	if entries[0].UserName != user.Name {
		t.Errorf("user name = %q, want %q", entries[0].UserName, user.Name)
	}
	if entries[0].CoinsEarned != 12 {
		t.Errorf("coins = %d, want 12", entries[0].CoinsEarned)
	}
}
