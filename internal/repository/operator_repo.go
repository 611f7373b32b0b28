package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"climate_station/internal/models"
)

// ErrOperatorExists is returned by Create when the username is already taken.
var ErrOperatorExists = errors.New("operator already exists")

// sqliteConstraintUnique is SQLITE_CONSTRAINT_UNIQUE.
const sqliteConstraintUnique = 2067

// OperatorSQLite stores the operators allowed to change thresholds. Usernames
// are kept trimmed and lower-cased, so "Night-Shift" and "night-shift" are one
// account.
type OperatorSQLite struct {
	db *sql.DB
}

func NewOperatorSQLite(db *sql.DB) *OperatorSQLite { return &OperatorSQLite{db: db} }

var _ Authorization = (*OperatorSQLite)(nil)

const (
	insertOperatorSQL = `INSERT INTO users (username, password_hash) VALUES (?, ?)`
	selectOperatorSQL = `SELECT id, username, password_hash FROM users WHERE username = ?`
)

func canonicalUsername(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Create inserts an operator and returns its id.
func (r *OperatorSQLite) Create(ctx context.Context, username, passwordHash string) (int, error) {
	name := canonicalUsername(username)
	res, err := r.db.ExecContext(ctx, insertOperatorSQL, name, passwordHash)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: %q", ErrOperatorExists, name)
		}
		return 0, fmt.Errorf("insert operator %q: %w", name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("operator %q id: %w", name, err)
	}
	return int(id), nil
}

// GetByUsername returns (nil, nil) when no such operator exists.
func (r *OperatorSQLite) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	name := canonicalUsername(username)
	if name == "" {
		return nil, nil
	}
	var u models.User
	err := r.db.QueryRowContext(ctx, selectOperatorSQL, name).Scan(&u.ID, &u.Username, &u.PasswordHash)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("select operator %q: %w", name, err)
	}
	return &u, nil
}

// isUniqueViolation recognises the driver's error by code, or by message when
// the error has been flattened to text.
func isUniqueViolation(err error) bool {
	var coded interface{ Code() int }
	if errors.As(err, &coded) && coded.Code() == sqliteConstraintUnique {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
