package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/gym-admin/internal/application"
	"github.com/example/gym-admin/internal/persistence"
)

// CreateUser inserts a directory user. Email uniqueness is enforced by the
// schema.
func (s *Store) CreateUser(ctx context.Context, u application.User) (application.User, error) {
	if u.ID == "" {
		return application.User{}, fmt.Errorf("%w: user id is empty", persistence.ErrConstraintViolation)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, name, email, category, role, status, last_active, subscription)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Name, u.Email, string(u.Category), u.Role, string(u.Status), u.LastActive, nullString(u.Subscription),
	)
	if err != nil {
		return application.User{}, mapSQLError(err)
	}
	return u, nil
}

// UpdateUser replaces a directory user.
func (s *Store) UpdateUser(ctx context.Context, u application.User) (application.User, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET name = ?, email = ?, category = ?, role = ?, status = ?, last_active = ?, subscription = ?
		WHERE id = ?`,
		u.Name, u.Email, string(u.Category), u.Role, string(u.Status), u.LastActive, nullString(u.Subscription), u.ID,
	)
	if err != nil {
		return application.User{}, mapSQLError(err)
	}
	if err := requireRow(result, "user", u.ID); err != nil {
		return application.User{}, err
	}
	return u, nil
}

// GetUser reads one directory user.
func (s *Store) GetUser(ctx context.Context, id string) (application.User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, email, category, role, status, last_active, subscription
		FROM users WHERE id = ?`, id)
	return scanUser(row)
}

// ListUsers reads all directory users.
func (s *Store) ListUsers(ctx context.Context) ([]application.User, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email, category, role, status, last_active, subscription
		FROM users`)
	if err != nil {
		return nil, mapSQLError(err)
	}
	defer rows.Close()

	out := make([]application.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// DeleteUser removes a directory user.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return mapSQLError(err)
	}
	return requireRow(result, "user", id)
}

func scanUser(row rowScanner) (application.User, error) {
	var u application.User
	var category, status string
	var subscription sql.NullString
	err := row.Scan(&u.ID, &u.Name, &u.Email, &category, &u.Role, &status, &u.LastActive, &subscription)
	if err != nil {
		return application.User{}, mapSQLError(err)
	}
	u.Category = application.UserCategory(category)
	u.Status = application.UserStatus(status)
	u.Subscription = stringPtr(subscription)
	return u, nil
}
