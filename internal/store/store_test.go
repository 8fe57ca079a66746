package store

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/squeakyapp/squeaky/internal/database"
	"github.com/squeakyapp/squeaky/internal/model"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

var userSeq int

func seedUser(t *testing.T, db *sql.DB) *model.User {
	t.Helper()
	userSeq++
	user, err := NewUserStore(db).Create(
		fmt.Sprintf("User %d", userSeq),
		fmt.Sprintf("user%d@example.com", userSeq),
		"hunter22",
	)
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func seedGroup(t *testing.T, db *sql.DB, ownerID int64) *model.Group {
	t.Helper()
	group, err := NewGroupStore(db).Create(ownerID, "Test Flat", "")
	if err != nil {
		t.Fatalf("seed group: %v", err)
	}
	return group
}
