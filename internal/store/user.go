package store

import (
	"database/sql"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/squeakyapp/squeaky/internal/model"
)

type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

const userCols = `id, name, email, total_coins, current_streak, longest_streak, last_cleaned_at, created_at, updated_at`

func scanUser(scanner interface{ Scan(...any) error }) (*model.User, error) {
	var u model.User
	var lastCleaned sql.NullTime

	err := scanner.Scan(
		&u.ID, &u.Name, &u.Email, &u.TotalCoins,
		&u.CurrentStreak, &u.LongestStreak, &lastCleaned,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lastCleaned.Valid {
		u.LastCleanedAt = &lastCleaned.Time
	}
	return &u, nil
}

func (s *UserStore) Create(name, email, password string) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	result, err := s.db.Exec(
		`INSERT INTO users (name, email, password_hash) VALUES (?, ?, ?)`,
		name, email, string(hash),
	)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *UserStore) GetByID(id int64) (*model.User, error) {
	row := s.db.QueryRow(`SELECT `+userCols+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (s *UserStore) GetByEmail(email string) (*model.User, error) {
	row := s.db.QueryRow(`SELECT `+userCols+` FROM users WHERE email = ?`, email)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// VerifyPassword checks a candidate password against the stored hash.
func (s *UserStore) VerifyPassword(id int64, password string) (bool, error) {
	var hash string
	err := s.db.QueryRow(`SELECT password_hash FROM users WHERE id = ?`, id).Scan(&hash)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get password hash: %w", err)
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil, nil
}

// ResetStaleStreaks zeroes current_streak for every user whose last
// cleaning predates the cutoff. Longest streaks are untouched. Safe to run
// repeatedly; returns the number of users reset.
func (s *UserStore) ResetStaleStreaks(cutoff time.Time) (int64, error) {
	result, err := s.db.Exec(
		`UPDATE users SET current_streak = 0, updated_at = ?
		 WHERE current_streak > 0 AND last_cleaned_at IS NOT NULL AND last_cleaned_at < ?`,
		time.Now().UTC(), cutoff.UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("reset stale streaks: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}
