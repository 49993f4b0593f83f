package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/chronicleberg/chronicle-be/internal/models"
)

// SQLiteUserStore is the sqlite-backed credential store adapter.
type SQLiteUserStore struct {
	db *sql.DB
}

// NewSQLiteUserStore creates a new SQLiteUserStore.
func NewSQLiteUserStore(db *sql.DB) *SQLiteUserStore {
	return &SQLiteUserStore{db: db}
}

const userColumns = "id, name, email, phone, education, role, password_hash, avatar_id, avatar_url, created_at"

func scanUser(row interface{ Scan(...any) error }) (models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Phone, &user.Education,
		&user.Role, &user.PasswordHash, &user.Avatar.PublicID, &user.Avatar.URL, &user.CreatedAt)
	return user, err
}

// Create inserts a new user record.
func (s *SQLiteUserStore) Create(ctx context.Context, user models.User) error {
	stmt, err := s.db.PrepareContext(ctx,
		"INSERT INTO users(id, name, email, phone, education, role, password_hash, avatar_id, avatar_url) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, user.ID, user.Name, user.Email, user.Phone, user.Education,
		user.Role, user.PasswordHash, user.Avatar.PublicID, user.Avatar.URL)
	return err
}

// FindByID retrieves a single user by ID. The password hash is included;
// callers scrub it before returning the record to a client.
func (s *SQLiteUserStore) FindByID(ctx context.Context, id string) (models.User, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id)
	user, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// FindByEmail retrieves a single user by email, including the password hash.
func (s *SQLiteUserStore) FindByEmail(ctx context.Context, email string) (models.User, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE email = ?", email)
	user, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// FindByRole retrieves all users holding the given role.
func (s *SQLiteUserStore) FindByRole(ctx context.Context, role string) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+userColumns+" FROM users WHERE role = ? ORDER BY created_at DESC", role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning user row: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// Count returns the number of registered users.
func (s *SQLiteUserStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&n)
	return n, err
}
