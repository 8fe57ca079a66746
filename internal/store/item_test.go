package store

import (
	"errors"
	"testing"
)

func TestItemCRUD(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	group := seedGroup(t, db, user.ID)
	items := NewItemStore(db)

	freq := 24
	item, err := items.Create(group.ID, nil, "Kitchen Sink", "the big one", &freq, 50)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if item.Name != "Kitchen Sink" {
		t.Errorf("name = %q, want %q", item.Name, "Kitchen Sink")
	}
	if item.CleaningFrequencyHours == nil || *item.CleaningFrequencyHours != 24 {
		t.Errorf("frequency = %v, want 24", item.CleaningFrequencyHours)
	}
	if item.SortOrder != 0 {
		t.Errorf("sort_order = %d, want 0", item.SortOrder)
	}

	updated, err := items.Update(item.ID, "Kitchen Sink", "", nil, 75)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.CleaningFrequencyHours != nil {
		t.Errorf("frequency = %v, want nil after clearing", updated.CleaningFrequencyHours)
	}
	if updated.BaseCoinReward != 75 {
		t.Errorf("base reward = %d, want 75", updated.BaseCoinReward)
	}

	if err := items.Delete(item.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, err := items.GetByID(item.ID)
	if err != nil {
		t.Fatalf("get after delete: %v", err)
	}
	if got != nil {
		t.Error("item still present after delete")
	}
}

func TestItemSortOrderPerSiblingList(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	group := seedGroup(t, db, user.ID)
	items := NewItemStore(db)

	root1, _ := items.Create(group.ID, nil, "Kitchen", "", nil, 0)
	root2, _ := items.Create(group.ID, nil, "Bathroom", "", nil, 0)
	if root1.SortOrder != 0 || root2.SortOrder != 1 {
		t.Errorf("root orders = %d, %d, want 0, 1", root1.SortOrder, root2.SortOrder)
	}

	// Children start their own sequence.
	child, err := items.Create(group.ID, &root1.ID, "Sink", "", nil, 0)
	if err != nil {
		t.Fatalf("create child: %v", err)
	}
	if child.SortOrder != 0 {
		t.Errorf("child sort_order = %d, want 0", child.SortOrder)
	}
}

func TestItemCreateValidatesParent(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	group := seedGroup(t, db, user.ID)
	other := seedGroup(t, db, user.ID)
	items := NewItemStore(db)

	missing := int64(9999)
	if _, err := items.Create(group.ID, &missing, "Sink", "", nil, 0); !errors.Is(err, ErrParentNotFound) {
		t.Errorf("err = %v, want ErrParentNotFound", err)
	}

	foreign, _ := items.Create(other.ID, nil, "Elsewhere", "", nil, 0)
	if _, err := items.Create(group.ID, &foreign.ID, "Sink", "", nil, 0); !errors.Is(err, ErrCrossGroupParent) {
		t.Errorf("err = %v, want ErrCrossGroupParent", err)
	}
}

func TestItemTreeListing(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	group := seedGroup(t, db, user.ID)
	items := NewItemStore(db)

	kitchen, _ := items.Create(group.ID, nil, "Kitchen", "", nil, 0)
	items.Create(group.ID, &kitchen.ID, "Sink", "", nil, 0)
	items.Create(group.ID, &kitchen.ID, "Stove", "", nil, 0)
	items.Create(group.ID, nil, "Bathroom", "", nil, 0)

	roots, err := items.ListRoots(group.ID)
	if err != nil {
		t.Fatalf("list roots: %v", err)
	}
	if len(roots) != 2 {
		t.Errorf("roots = %d, want 2", len(roots))
	}

	children, err := items.ListChildren(kitchen.ID)
	if err != nil {
		t.Fatalf("list children: %v", err)
	}
	if len(children) != 2 {
		t.Errorf("children = %d, want 2", len(children))
	}

	all, err := items.ListByGroup(group.ID)
	if err != nil {
		t.Fatalf("list by group: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("all = %d, want 4", len(all))
	}
}

func TestItemMove(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	group := seedGroup(t, db, user.ID)
	items := NewItemStore(db)

	kitchen, _ := items.Create(group.ID, nil, "Kitchen", "", nil, 0)
	bathroom, _ := items.Create(group.ID, nil, "Bathroom", "", nil, 0)
	sink, _ := items.Create(group.ID, &kitchen.ID, "Sink", "", nil, 0)

	moved, err := items.Move(sink.ID, &bathroom.ID)
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if moved.ParentID == nil || *moved.ParentID != bathroom.ID {
		t.Errorf("parent = %v, want %d", moved.ParentID, bathroom.ID)
	}

	// Promote to root.
	moved, err = items.Move(sink.ID, nil)
	if err != nil {
		t.Fatalf("move to root: %v", err)
	}
	if moved.ParentID != nil {
		t.Errorf("parent = %v, want nil", moved.ParentID)
	}
	if moved.SortOrder != 2 {
		t.Errorf("sort_order = %d, want 2 (appended after existing roots)", moved.SortOrder)
	}
}

func TestItemMoveRejectsCycles(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	group := seedGroup(t, db, user.ID)
	items := NewItemStore(db)

	a, _ := items.Create(group.ID, nil, "A", "", nil, 0)
	b, _ := items.Create(group.ID, &a.ID, "B", "", nil, 0)
	c, _ := items.Create(group.ID, &b.ID, "C", "", nil, 0)

	if _, err := items.Move(a.ID, &a.ID); !errors.Is(err, ErrMoveIntoSelf) {
		t.Errorf("move into self: err = %v, want ErrMoveIntoSelf", err)
	}
	if _, err := items.Move(a.ID, &b.ID); !errors.Is(err, ErrMoveIntoChild) {
		t.Errorf("move into child: err = %v, want ErrMoveIntoChild", err)
	}
	if _, err := items.Move(a.ID, &c.ID); !errors.Is(err, ErrMoveIntoChild) {
		t.Errorf("move into grandchild: err = %v, want ErrMoveIntoChild", err)
	}
}

func TestItemMoveRejectsCrossGroup(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	group := seedGroup(t, db, user.ID)
	other := seedGroup(t, db, user.ID)
	items := NewItemStore(db)

	item, _ := items.Create(group.ID, nil, "Sink", "", nil, 0)
	foreign, _ := items.Create(other.ID, nil, "Elsewhere", "", nil, 0)

	if _, err := items.Move(item.ID, &foreign.ID); !errors.Is(err, ErrCrossGroupParent) {
		t.Errorf("err = %v, want ErrCrossGroupParent", err)
	}
}

func TestItemDeleteCascades(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	group := seedGroup(t, db, user.ID)
	items := NewItemStore(db)

	kitchen, _ := items.Create(group.ID, nil, "Kitchen", "", nil, 0)
	sink, _ := items.Create(group.ID, &kitchen.ID, "Sink", "", nil, 0)

	if err := items.Delete(kitchen.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	got, err := items.GetByID(sink.ID)
	if err != nil {
		t.Fatalf("get child: %v", err)
	}
	if got != nil {
		t.Error("child survived parent deletion")
	}
}

func TestItemReorder(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	group := seedGroup(t, db, user.ID)
	items := NewItemStore(db)

	a, _ := items.Create(group.ID, nil, "A", "", nil, 0)
	b, _ := items.Create(group.ID, nil, "B", "", nil, 0)

	if err := items.Reorder(map[int64]int{a.ID: 1, b.ID: 0}); err != nil {
		t.Fatalf("reorder: %v", err)
	}

	roots, err := items.ListRoots(group.ID)
	if err != nil {
		t.Fatalf("list roots: %v", err)
	}
	if roots[0].ID != b.ID || roots[1].ID != a.ID {
		t.Errorf("order = [%d %d], want [%d %d]", roots[0].ID, roots[1].ID, b.ID, a.ID)
	}
}
