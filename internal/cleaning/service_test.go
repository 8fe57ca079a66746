package cleaning

import (
	"database/sql"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/squeakyapp/squeaky/internal/database"
	"github.com/squeakyapp/squeaky/internal/model"
	"github.com/squeakyapp/squeaky/internal/store"
)

// stepClock lets a test move time forward between cleanings.
type stepClock struct {
	t time.Time
}

func (c *stepClock) Now() time.Time { return c.t }

type fixture struct {
	db    *sql.DB
	svc   *Service
	clock *stepClock
	user  *model.User
	group *model.Group
	items *store.ItemStore
	users *store.UserStore
}

func setupService(t *testing.T) *fixture {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	users := store.NewUserStore(db)
	groups := store.NewGroupStore(db)
	items := store.NewItemStore(db)

	user, err := users.Create("Ada", "ada@example.com", "hunter22")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	group, err := groups.Create(user.ID, "Flat 4B", "")
	if err != nil {
		t.Fatalf("create group: %v", err)
	}

	clk := &stepClock{t: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)}
	return &fixture{
		db:    db,
		svc:   NewService(db, clk, slog.Default()),
		clock: clk,
		user:  user,
		group: group,
		items: items,
		users: users,
	}
}

func (f *fixture) createItem(t *testing.T, freq int, base int) *model.Item {
	t.Helper()
	item, err := f.items.Create(f.group.ID, nil, "Bathroom Mirror", "", &freq, base)
	if err != nil {
		t.Fatalf("create item: %v", err)
	}
	return item
}

func TestFirstCleanOfDirtyItem(t *testing.T) {
	f := setupService(t)
	item := f.createItem(t, 24, 100)

	// Never cleaned: 100% dirtiness, perfect bonus, no streak tier,
	// first cleaning starts the streak.
	entry, err := f.svc.MarkAsCleaned(item.ID, f.user.ID, "scrubbed")
	if err != nil {
		t.Fatalf("mark as cleaned: %v", err)
	}

	if entry.DirtinessAtClean != 100.0 {
		t.Errorf("dirtiness = %v, want 100", entry.DirtinessAtClean)
	}
	if entry.CoinsEarned != 125 {
		t.Errorf("coins = %d, want 125", entry.CoinsEarned)
	}
	if entry.GroupID != f.group.ID {
		t.Errorf("group_id = %d, want %d", entry.GroupID, f.group.ID)
	}
	if entry.Notes != "scrubbed" {
		t.Errorf("notes = %q, want %q", entry.Notes, "scrubbed")
	}

	user, err := f.users.GetByID(f.user.ID)
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if user.TotalCoins != 125 {
		t.Errorf("total coins = %d, want 125", user.TotalCoins)
	}
	if user.CurrentStreak != 1 {
		t.Errorf("streak = %d, want 1", user.CurrentStreak)
	}

	got, err := f.items.GetByID(item.ID)
	if err != nil {
		t.Fatalf("reload item: %v", err)
	}
	if got.LastCleanedAt == nil || !got.LastCleanedAt.Equal(f.clock.t) {
		t.Errorf("last_cleaned_at = %v, want %v", got.LastCleanedAt, f.clock.t)
	}
	if got.LastCleanedBy == nil || *got.LastCleanedBy != f.user.ID {
		t.Errorf("last_cleaned_by = %v, want %d", got.LastCleanedBy, f.user.ID)
	}
}

func TestRewardUsesStreakBeforeAdvance(t *testing.T) {
	f := setupService(t)
	item := f.createItem(t, 24, 100)

	// Walk the streak up to 7 with one cleaning per day. The first clean
	// sees 100% dirtiness; subsequent ones see exactly 24h elapsed, also 100%.
	for day := 0; day < 7; day++ {
		if _, err := f.svc.MarkAsCleaned(item.ID, f.user.ID, ""); err != nil {
			t.Fatalf("day %d: %v", day, err)
		}
		f.clock.t = f.clock.t.AddDate(0, 0, 1)
	}

	user, err := f.users.GetByID(f.user.ID)
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if user.CurrentStreak != 7 {
		t.Fatalf("streak = %d, want 7", user.CurrentStreak)
	}

	// Day 8: the user walks in holding a 7-day streak, so the 10% tier
	// applies. 100% dirtiness adds the perfect bonus: 100 * 1.35.
	entry, err := f.svc.MarkAsCleaned(item.ID, f.user.ID, "")
	if err != nil {
		t.Fatalf("day 8: %v", err)
	}
	if entry.CoinsEarned != 135 {
		t.Errorf("coins = %d, want 135", entry.CoinsEarned)
	}
}

func TestSameDayCleaningsKeepStreakAtOne(t *testing.T) {
	f := setupService(t)
	item := f.createItem(t, 24, 50)

	if _, err := f.svc.MarkAsCleaned(item.ID, f.user.ID, ""); err != nil {
		t.Fatalf("first clean: %v", err)
	}
	f.clock.t = f.clock.t.Add(2 * time.Hour)
	if _, err := f.svc.MarkAsCleaned(item.ID, f.user.ID, ""); err != nil {
		t.Fatalf("second clean: %v", err)
	}

	user, err := f.users.GetByID(f.user.ID)
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if user.CurrentStreak != 1 {
		t.Errorf("streak = %d, want 1", user.CurrentStreak)
	}
}

func TestFreshCleanEarnsSpeedBonus(t *testing.T) {
	f := setupService(t)
	item := f.createItem(t, 24, 100)

	if _, err := f.svc.MarkAsCleaned(item.ID, f.user.ID, ""); err != nil {
		t.Fatalf("first clean: %v", err)
	}

	// 6 hours later: 25% dirtiness, speed bonus only.
	f.clock.t = f.clock.t.Add(6 * time.Hour)
	entry, err := f.svc.MarkAsCleaned(item.ID, f.user.ID, "")
	if err != nil {
		t.Fatalf("second clean: %v", err)
	}
	if entry.DirtinessAtClean != 25.0 {
		t.Errorf("dirtiness = %v, want 25", entry.DirtinessAtClean)
	}
	if entry.CoinsEarned != 105 {
		t.Errorf("coins = %d, want 105", entry.CoinsEarned)
	}
}

func TestContainerPaysNothing(t *testing.T) {
	f := setupService(t)
	container, err := f.items.Create(f.group.ID, nil, "Kitchen", "", nil, 50)
	if err != nil {
		t.Fatalf("create container: %v", err)
	}

	// Dirtiness 0 still earns the speed bonus on the base reward.
	entry, err := f.svc.MarkAsCleaned(container.ID, f.user.ID, "")
	if err != nil {
		t.Fatalf("mark as cleaned: %v", err)
	}
	if entry.DirtinessAtClean != 0.0 {
		t.Errorf("dirtiness = %v, want 0", entry.DirtinessAtClean)
	}
	if entry.CoinsEarned != 53 {
		t.Errorf("coins = %d, want 53", entry.CoinsEarned)
	}
}

func TestUnknownItem(t *testing.T) {
	f := setupService(t)

	_, err := f.svc.MarkAsCleaned(9999, f.user.ID, "")
	if !errors.Is(err, ErrItemNotFound) {
		t.Errorf("err = %v, want ErrItemNotFound", err)
	}
}

func TestUnknownUser(t *testing.T) {
	f := setupService(t)
	item := f.createItem(t, 24, 50)

	_, err := f.svc.MarkAsCleaned(item.ID, 9999, "")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}
}

func TestFailedCleanLeavesNoTrace(t *testing.T) {
	f := setupService(t)
	f.createItem(t, 24, 50)

	if _, err := f.svc.MarkAsCleaned(9999, f.user.ID, ""); err == nil {
		t.Fatal("expected error")
	}

	var count int
	if err := f.db.QueryRow("SELECT COUNT(*) FROM cleaning_logs").Scan(&count); err != nil {
		t.Fatalf("count logs: %v", err)
	}
	if count != 0 {
		t.Errorf("log count = %d, want 0", count)
	}
}
