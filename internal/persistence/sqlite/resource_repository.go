package sqlite

import (
	"context"
	"fmt"

	"github.com/example/gym-admin/internal/application"
	"github.com/example/gym-admin/internal/persistence"
)

// CreateStaff inserts a trainer or masseur.
func (s *Store) CreateStaff(ctx context.Context, member application.StaffMember) (application.StaffMember, error) {
	if member.ID == "" {
		return application.StaffMember{}, fmt.Errorf("%w: staff id is empty", persistence.ErrConstraintViolation)
	}
	availability, err := encodeJSON(member.Availability)
	if err != nil {
		return application.StaffMember{}, err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO staff_members (id, kind, name, specialization, availability, status)
		VALUES (?, ?, ?, ?, ?, ?)`,
		member.ID, string(member.Kind), member.Name, member.Specialization, availability, string(member.Status),
	)
	if err != nil {
		return application.StaffMember{}, mapSQLError(err)
	}
	return member, nil
}

// UpdateStaff replaces a staff member. The kind column never changes.
func (s *Store) UpdateStaff(ctx context.Context, member application.StaffMember) (application.StaffMember, error) {
	availability, err := encodeJSON(member.Availability)
	if err != nil {
		return application.StaffMember{}, err
	}
	result, err := s.db.ExecContext(ctx, `
		UPDATE staff_members
		SET name = ?, specialization = ?, availability = ?, status = ?
		WHERE id = ? AND kind = ?`,
		member.Name, member.Specialization, availability, string(member.Status), member.ID, string(member.Kind),
	)
	if err != nil {
		return application.StaffMember{}, mapSQLError(err)
	}
	if err := requireRow(result, "staff", member.ID); err != nil {
		return application.StaffMember{}, err
	}
	return member, nil
}

// GetStaff reads one staff member of the given kind.
func (s *Store) GetStaff(ctx context.Context, kind application.StaffKind, id string) (application.StaffMember, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, kind, name, specialization, availability, status
		FROM staff_members WHERE id = ? AND kind = ?`, id, string(kind))
	return scanStaff(row)
}

// ListStaff reads all staff of the given kind.
func (s *Store) ListStaff(ctx context.Context, kind application.StaffKind) ([]application.StaffMember, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, kind, name, specialization, availability, status
		FROM staff_members WHERE kind = ?`, string(kind))
	if err != nil {
		return nil, mapSQLError(err)
	}
	defer rows.Close()

	out := make([]application.StaffMember, 0)
	for rows.Next() {
		member, err := scanStaff(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, member)
	}
	return out, rows.Err()
}

// DeleteStaff removes a staff member of the given kind.
func (s *Store) DeleteStaff(ctx context.Context, kind application.StaffKind, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM staff_members WHERE id = ? AND kind = ?`, id, string(kind))
	if err != nil {
		return mapSQLError(err)
	}
	return requireRow(result, "staff", id)
}

// CreateCourt inserts a court.
func (s *Store) CreateCourt(ctx context.Context, c application.Court) (application.Court, error) {
	if c.ID == "" {
		return application.Court{}, fmt.Errorf("%w: court id is empty", persistence.ErrConstraintViolation)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO courts (id, name, type, capacity, status)
		VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Type, c.Capacity, string(c.Status),
	)
	if err != nil {
		return application.Court{}, mapSQLError(err)
	}
	return c, nil
}

// UpdateCourt replaces a court.
func (s *Store) UpdateCourt(ctx context.Context, c application.Court) (application.Court, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE courts SET name = ?, type = ?, capacity = ?, status = ? WHERE id = ?`,
		c.Name, c.Type, c.Capacity, string(c.Status), c.ID,
	)
	if err != nil {
		return application.Court{}, mapSQLError(err)
	}
	if err := requireRow(result, "court", c.ID); err != nil {
		return application.Court{}, err
	}
	return c, nil
}

// GetCourt reads one court.
func (s *Store) GetCourt(ctx context.Context, id string) (application.Court, error) {
	var c application.Court
	var status string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, type, capacity, status FROM courts WHERE id = ?`, id).
		Scan(&c.ID, &c.Name, &c.Type, &c.Capacity, &status)
	if err != nil {
		return application.Court{}, mapSQLError(err)
	}
	c.Status = application.CourtStatus(status)
	return c, nil
}

// ListCourts reads all courts.
func (s *Store) ListCourts(ctx context.Context) ([]application.Court, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, type, capacity, status FROM courts`)
	if err != nil {
		return nil, mapSQLError(err)
	}
	defer rows.Close()

	out := make([]application.Court, 0)
	for rows.Next() {
		var c application.Court
		var status string
		if err := rows.Scan(&c.ID, &c.Name, &c.Type, &c.Capacity, &status); err != nil {
			return nil, mapSQLError(err)
		}
		c.Status = application.CourtStatus(status)
		out = append(out, c)
	}
	return out, rows.Err()
}

// DeleteCourt removes a court.
func (s *Store) DeleteCourt(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM courts WHERE id = ?`, id)
	if err != nil {
		return mapSQLError(err)
	}
	return requireRow(result, "court", id)
}

func scanStaff(row rowScanner) (application.StaffMember, error) {
	var member application.StaffMember
	var kind, availability, status string
	err := row.Scan(&member.ID, &kind, &member.Name, &member.Specialization, &availability, &status)
	if err != nil {
		return application.StaffMember{}, mapSQLError(err)
	}
	member.Kind = application.StaffKind(kind)
	member.Status = application.StaffStatus(status)
	if err := decodeJSON(availability, &member.Availability); err != nil {
		return application.StaffMember{}, err
	}
	return member, nil
}
