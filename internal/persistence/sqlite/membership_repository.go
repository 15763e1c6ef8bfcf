package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/gym-admin/internal/application"
	"github.com/example/gym-admin/internal/persistence"
)

// freezeRow and prolongRow are the JSON column shapes for lifecycle history.
type freezeRow struct {
	StartDate time.Time  `json:"startDate"`
	EndDate   *time.Time `json:"endDate,omitempty"`
	Reason    string     `json:"reason"`
}

type prolongRow struct {
	Date   time.Time `json:"date"`
	Days   int       `json:"days"`
	Reason string    `json:"reason"`
}

// CreateMembershipType inserts a catalog entry.
func (s *Store) CreateMembershipType(ctx context.Context, t application.MembershipType) (application.MembershipType, error) {
	if t.ID == "" {
		return application.MembershipType{}, fmt.Errorf("%w: membership type id is empty", persistence.ErrConstraintViolation)
	}
	features, err := encodeJSON(t.Features)
	if err != nil {
		return application.MembershipType{}, err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO membership_types (id, name, description, price, duration_days, features, max_attendance, is_popular)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Name, t.Description, t.Price, t.DurationDays, features, nullInt(t.MaxAttendance), t.IsPopular,
	)
	if err != nil {
		return application.MembershipType{}, mapSQLError(err)
	}
	return t, nil
}

// UpdateMembershipType replaces a catalog entry.
func (s *Store) UpdateMembershipType(ctx context.Context, t application.MembershipType) (application.MembershipType, error) {
	features, err := encodeJSON(t.Features)
	if err != nil {
		return application.MembershipType{}, err
	}
	result, err := s.db.ExecContext(ctx, `
		UPDATE membership_types
		SET name = ?, description = ?, price = ?, duration_days = ?, features = ?, max_attendance = ?, is_popular = ?
		WHERE id = ?`,
		t.Name, t.Description, t.Price, t.DurationDays, features, nullInt(t.MaxAttendance), t.IsPopular, t.ID,
	)
	if err != nil {
		return application.MembershipType{}, mapSQLError(err)
	}
	if err := requireRow(result, "membership type", t.ID); err != nil {
		return application.MembershipType{}, err
	}
	return t, nil
}

// GetMembershipType reads one catalog entry.
func (s *Store) GetMembershipType(ctx context.Context, id string) (application.MembershipType, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, description, price, duration_days, features, max_attendance, is_popular
		FROM membership_types WHERE id = ?`, id)
	return scanMembershipType(row)
}

// ListMembershipTypes reads the whole catalog.
func (s *Store) ListMembershipTypes(ctx context.Context) ([]application.MembershipType, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, price, duration_days, features, max_attendance, is_popular
		FROM membership_types`)
	if err != nil {
		return nil, mapSQLError(err)
	}
	defer rows.Close()

	out := make([]application.MembershipType, 0)
	for rows.Next() {
		t, err := scanMembershipType(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// CreateClientMembership inserts a membership.
func (s *Store) CreateClientMembership(ctx context.Context, m application.ClientMembership) (application.ClientMembership, error) {
	if m.ID == "" {
		return application.ClientMembership{}, fmt.Errorf("%w: membership id is empty", persistence.ErrConstraintViolation)
	}
	freezes, prolongs, err := encodeHistories(m)
	if err != nil {
		return application.ClientMembership{}, err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO client_memberships
			(id, client_id, membership_type_id, membership_name, start_date, end_date,
			 status, attendance_count, max_attendance, freeze_history, prolong_history, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.ClientID, m.MembershipTypeID, m.MembershipName,
		encodeTime(m.StartDate), encodeTime(m.EndDate),
		string(m.Status), m.AttendanceCount, nullInt(m.MaxAttendance), freezes, prolongs, m.Notes,
	)
	if err != nil {
		return application.ClientMembership{}, mapSQLError(err)
	}
	return m, nil
}

// UpdateClientMembership replaces a membership.
func (s *Store) UpdateClientMembership(ctx context.Context, m application.ClientMembership) (application.ClientMembership, error) {
	freezes, prolongs, err := encodeHistories(m)
	if err != nil {
		return application.ClientMembership{}, err
	}
	result, err := s.db.ExecContext(ctx, `
		UPDATE client_memberships
		SET client_id = ?, membership_type_id = ?, membership_name = ?, start_date = ?, end_date = ?,
		    status = ?, attendance_count = ?, max_attendance = ?, freeze_history = ?, prolong_history = ?, notes = ?
		WHERE id = ?`,
		m.ClientID, m.MembershipTypeID, m.MembershipName,
		encodeTime(m.StartDate), encodeTime(m.EndDate),
		string(m.Status), m.AttendanceCount, nullInt(m.MaxAttendance), freezes, prolongs, m.Notes, m.ID,
	)
	if err != nil {
		return application.ClientMembership{}, mapSQLError(err)
	}
	if err := requireRow(result, "membership", m.ID); err != nil {
		return application.ClientMembership{}, err
	}
	return m, nil
}

// GetClientMembership reads one membership.
func (s *Store) GetClientMembership(ctx context.Context, id string) (application.ClientMembership, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, client_id, membership_type_id, membership_name, start_date, end_date,
		       status, attendance_count, max_attendance, freeze_history, prolong_history, notes
		FROM client_memberships WHERE id = ?`, id)
	return scanMembership(row)
}

// ListClientMemberships reads all memberships.
func (s *Store) ListClientMemberships(ctx context.Context) ([]application.ClientMembership, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, client_id, membership_type_id, membership_name, start_date, end_date,
		       status, attendance_count, max_attendance, freeze_history, prolong_history, notes
		FROM client_memberships`)
	if err != nil {
		return nil, mapSQLError(err)
	}
	defer rows.Close()

	out := make([]application.ClientMembership, 0)
	for rows.Next() {
		m, err := scanMembership(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMembershipType(row rowScanner) (application.MembershipType, error) {
	var t application.MembershipType
	var features string
	var maxAttendance sql.NullInt64
	err := row.Scan(&t.ID, &t.Name, &t.Description, &t.Price, &t.DurationDays, &features, &maxAttendance, &t.IsPopular)
	if err != nil {
		return application.MembershipType{}, mapSQLError(err)
	}
	if err := decodeJSON(features, &t.Features); err != nil {
		return application.MembershipType{}, err
	}
	t.MaxAttendance = intPtr(maxAttendance)
	return t, nil
}

func scanMembership(row rowScanner) (application.ClientMembership, error) {
	var m application.ClientMembership
	var startDate, endDate, status, freezes, prolongs string
	var maxAttendance sql.NullInt64
	err := row.Scan(&m.ID, &m.ClientID, &m.MembershipTypeID, &m.MembershipName, &startDate, &endDate,
		&status, &m.AttendanceCount, &maxAttendance, &freezes, &prolongs, &m.Notes)
	if err != nil {
		return application.ClientMembership{}, mapSQLError(err)
	}
	if m.StartDate, err = decodeTime(startDate); err != nil {
		return application.ClientMembership{}, err
	}
	if m.EndDate, err = decodeTime(endDate); err != nil {
		return application.ClientMembership{}, err
	}
	m.Status = application.MembershipStatus(status)
	m.MaxAttendance = intPtr(maxAttendance)

	var freezeRows []freezeRow
	if err := decodeJSON(freezes, &freezeRows); err != nil {
		return application.ClientMembership{}, err
	}
	for _, fr := range freezeRows {
		m.FreezeHistory = append(m.FreezeHistory, application.FreezeRecord(fr))
	}
	var prolongRows []prolongRow
	if err := decodeJSON(prolongs, &prolongRows); err != nil {
		return application.ClientMembership{}, err
	}
	for _, pr := range prolongRows {
		m.ProlongHistory = append(m.ProlongHistory, application.ProlongRecord(pr))
	}
	return m, nil
}

func encodeHistories(m application.ClientMembership) (freezes string, prolongs string, err error) {
	freezeRows := make([]freezeRow, len(m.FreezeHistory))
	for i, rec := range m.FreezeHistory {
		freezeRows[i] = freezeRow(rec)
	}
	if freezes, err = encodeJSON(freezeRows); err != nil {
		return "", "", err
	}
	prolongRows := make([]prolongRow, len(m.ProlongHistory))
	for i, rec := range m.ProlongHistory {
		prolongRows[i] = prolongRow(rec)
	}
	if prolongs, err = encodeJSON(prolongRows); err != nil {
		return "", "", err
	}
	return freezes, prolongs, nil
}

// requireRow converts a zero-row UPDATE or DELETE into ErrNotFound.
func requireRow(result sql.Result, entity, id string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s %q", persistence.ErrNotFound, entity, id)
	}
	return nil
}