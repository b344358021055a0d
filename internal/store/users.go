package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/erazemk/najdeno/internal/model"
)

// CreateUser creates a new user. The email is normalized before it is stored.
// A second account for the same email fails with ErrDuplicateEmail.
func CreateUser(ctx context.Context, db *sql.DB, fullname, email, passwordHash string) (*model.User, error) {
	email = model.NormalizeEmail(email)

	existing, err := GetUserByEmail(ctx, db, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	id := uuid.NewString()
	_, err = db.ExecContext(ctx,
		`INSERT INTO users (id, fullname, email, password_hash, created_at) VALUES (?, ?, ?, ?, ?)`,
		id, fullname, email, passwordHash, now(),
	)
	if err != nil {
		// Lost a race against a concurrent signup for the same email.
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, persistence("creating user", err)
	}

	return GetUser(ctx, db, id)
}

func isUniqueViolation(err error) bool {
	var serr *sqlite.Error
	return errors.As(err, &serr) && serr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}

// GetUser returns a user by ID, or nil if there is none.
func GetUser(ctx context.Context, db *sql.DB, id string) (*model.User, error) {
	u := &model.User{}
	err := db.QueryRowContext(ctx,
		`SELECT id, fullname, email, password_hash, created_at FROM users WHERE id = ?`, id,
	).Scan(&u.ID, &u.Fullname, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, persistence("getting user", err)
	}
	return u, nil
}

// GetUserByEmail returns a user by email address, or nil if there is none.
func GetUserByEmail(ctx context.Context, db *sql.DB, email string) (*model.User, error) {
	u := &model.User{}
	err := db.QueryRowContext(ctx,
		`SELECT id, fullname, email, password_hash, created_at FROM users WHERE email = ?`,
		model.NormalizeEmail(email),
	).Scan(&u.ID, &u.Fullname, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, persistence("getting user by email", err)
	}
	return u, nil
}
