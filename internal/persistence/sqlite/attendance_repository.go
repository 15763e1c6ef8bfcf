package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/gym-admin/internal/application"
	"github.com/example/gym-admin/internal/persistence"
)

// AppendAttendance inserts the record and bumps the membership's attendance
// counter in the same transaction, then returns the updated membership.
func (s *Store) AppendAttendance(ctx context.Context, rec application.AttendanceRecord) (application.AttendanceRecord, application.ClientMembership, error) {
	if rec.ID == "" {
		return application.AttendanceRecord{}, application.ClientMembership{}, fmt.Errorf("%w: attendance id is empty", persistence.ErrConstraintViolation)
	}

	var membership application.ClientMembership
	err := s.withTransaction(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE client_memberships SET attendance_count = attendance_count + 1 WHERE id = ?`,
			rec.ClientMembershipID,
		)
		if err != nil {
			return mapSQLError(err)
		}
		if err := requireRow(result, "membership", rec.ClientMembershipID); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO attendance_records (id, client_membership_id, date, check_in_time, check_out_time, facility, notes)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			rec.ID, rec.ClientMembershipID, encodeTime(rec.Date), rec.CheckInTime,
			nullString(rec.CheckOutTime), rec.Facility, nullString(rec.Notes),
		); err != nil {
			return mapSQLError(err)
		}

		row := tx.QueryRowContext(ctx, `
			SELECT id, client_id, membership_type_id, membership_name, start_date, end_date,
			       status, attendance_count, max_attendance, freeze_history, prolong_history, notes
			FROM client_memberships WHERE id = ?`, rec.ClientMembershipID)
		membership, err = scanMembership(row)
		return err
	})
	if err != nil {
		return application.AttendanceRecord{}, application.ClientMembership{}, err
	}
	return rec, membership, nil
}

// ListAttendance reads the ledger entries for one membership.
func (s *Store) ListAttendance(ctx context.Context, clientMembershipID string) ([]application.AttendanceRecord, error) {
	return s.queryAttendance(ctx, `
		SELECT id, client_membership_id, date, check_in_time, check_out_time, facility, notes
		FROM attendance_records WHERE client_membership_id = ?`, clientMembershipID)
}

// ListAllAttendance reads the whole ledger.
func (s *Store) ListAllAttendance(ctx context.Context) ([]application.AttendanceRecord, error) {
	return s.queryAttendance(ctx, `
		SELECT id, client_membership_id, date, check_in_time, check_out_time, facility, notes
		FROM attendance_records`)
}

func (s *Store) queryAttendance(ctx context.Context, query string, args ...any) ([]application.AttendanceRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapSQLError(err)
	}
	defer rows.Close()

	out := make([]application.AttendanceRecord, 0)
	for rows.Next() {
		var rec application.AttendanceRecord
		var date string
		var checkOut, notes sql.NullString
		if err := rows.Scan(&rec.ID, &rec.ClientMembershipID, &date, &rec.CheckInTime, &checkOut, &rec.Facility, &notes); err != nil {
			return nil, mapSQLError(err)
		}
		if rec.Date, err = decodeTime(date); err != nil {
			return nil, err
		}
		rec.CheckOutTime = stringPtr(checkOut)
		rec.Notes = stringPtr(notes)
		out = append(out, rec)
	}
	return out, rows.Err()
}
