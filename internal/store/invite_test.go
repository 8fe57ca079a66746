package store

import (
	"strings"
	"testing"
	"time"

	"github.com/squeakyapp/squeaky/internal/model"
)

func TestInviteCreateAndLookup(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	group := seedGroup(t, db, user.ID)
	invites := NewInviteStore(db)

	inv, err := invites.Create(group.ID, user.ID, model.InvitePermanent, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(inv.Code) != 10 {
		t.Errorf("code %q has length %d, want 10", inv.Code, len(inv.Code))
	}
	if inv.Code != strings.ToUpper(inv.Code) {
		t.Errorf("code %q is not uppercase", inv.Code)
	}
	if inv.ExpiresAt != nil || inv.UsedAt != nil {
		t.Errorf("fresh invite has expires_at=%v used_at=%v, want nil", inv.ExpiresAt, inv.UsedAt)
	}

	// Lookup is case-insensitive.
	got, err := invites.GetByCode(strings.ToLower(inv.Code))
	if err != nil {
		t.Fatalf("get by code: %v", err)
	}
	if got == nil || got.ID != inv.ID {
		t.Errorf("got = %v, want invite %d", got, inv.ID)
	}
}

func TestInviteValidity(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)
	used := now.Add(-time.Minute)

	tests := []struct {
		name   string
		invite model.GroupInvite
		want   bool
	}{
		{"permanent", model.GroupInvite{Type: model.InvitePermanent}, true},
		{"future expiry", model.GroupInvite{Type: model.InviteTimeLimited, ExpiresAt: &future}, true},
		{"past expiry", model.GroupInvite{Type: model.InviteTimeLimited, ExpiresAt: &past}, false},
		{"expiring this instant", model.GroupInvite{Type: model.InviteTimeLimited, ExpiresAt: &now}, false},
		{"already used", model.GroupInvite{Type: model.InviteSingleUse, UsedAt: &used}, false},
		{"unused single use", model.GroupInvite{Type: model.InviteSingleUse}, true},
	}
	for _, tt := range tests {
		if got := tt.invite.IsValid(now); got != tt.want {
			t.Errorf("%s: IsValid = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestInviteMarkUsed(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	joiner := seedUser(t, db)
	group := seedGroup(t, db, user.ID)
	invites := NewInviteStore(db)

	inv, err := invites.Create(group.ID, user.ID, model.InviteSingleUse, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	usedAt := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	if err := invites.MarkUsed(inv.ID, joiner.ID, usedAt); err != nil {
		t.Fatalf("mark used: %v", err)
	}

	got, err := invites.GetByID(inv.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.UsedBy == nil || *got.UsedBy != joiner.ID {
		t.Errorf("used_by = %v, want %d", got.UsedBy, joiner.ID)
	}
	if got.UsedAt == nil {
		t.Fatal("used_at not set")
	}
	if got.IsValid(usedAt.Add(time.Minute)) {
		t.Error("used invite still valid")
	}
}

func TestDeleteExpired(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	group := seedGroup(t, db, user.ID)
	invites := NewInviteStore(db)

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	expired, _ := invites.Create(group.ID, user.ID, model.InviteTimeLimited, &past)
	live, _ := invites.Create(group.ID, user.ID, model.InviteTimeLimited, &future)
	permanent, _ := invites.Create(group.ID, user.ID, model.InvitePermanent, nil)

	deleted, err := invites.DeleteExpired(now)
	if err != nil {
		t.Fatalf("delete expired: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, want 1", deleted)
	}

	if got, _ := invites.GetByID(expired.ID); got != nil {
		t.Error("expired invite survived the sweep")
	}
	if got, _ := invites.GetByID(live.ID); got == nil {
		t.Error("live invite was deleted")
	}
	if got, _ := invites.GetByID(permanent.ID); got == nil {
		t.Error("permanent invite was deleted")
	}

	// Second sweep finds nothing.
	deleted, err = invites.DeleteExpired(now)
	if err != nil {
		t.Fatalf("second sweep: %v", err)
	}
	if deleted != 0 {
		t.Errorf("second sweep deleted = %d, want 0", deleted)
	}
}
