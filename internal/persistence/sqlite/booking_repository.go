package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/gym-admin/internal/application"
	"github.com/example/gym-admin/internal/persistence"
)

// CreateBooking inserts a booking.
func (s *Store) CreateBooking(ctx context.Context, b application.Booking) (application.Booking, error) {
	if b.ID == "" {
		return application.Booking{}, fmt.Errorf("%w: booking id is empty", persistence.ErrConstraintViolation)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO bookings (id, title, start_time, end_time, client, trainer, court, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.Title, encodeTime(b.Start), encodeTime(b.End), b.Client, nullString(b.Trainer), b.Court, string(b.Status),
	)
	if err != nil {
		return application.Booking{}, mapSQLError(err)
	}
	return b, nil
}

// UpdateBooking replaces a booking.
func (s *Store) UpdateBooking(ctx context.Context, b application.Booking) (application.Booking, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE bookings
		SET title = ?, start_time = ?, end_time = ?, client = ?, trainer = ?, court = ?, status = ?
		WHERE id = ?`,
		b.Title, encodeTime(b.Start), encodeTime(b.End), b.Client, nullString(b.Trainer), b.Court, string(b.Status), b.ID,
	)
	if err != nil {
		return application.Booking{}, mapSQLError(err)
	}
	if err := requireRow(result, "booking", b.ID); err != nil {
		return application.Booking{}, err
	}
	return b, nil
}

// GetBooking reads one booking.
func (s *Store) GetBooking(ctx context.Context, id string) (application.Booking, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, start_time, end_time, client, trainer, court, status
		FROM bookings WHERE id = ?`, id)
	return scanBooking(row)
}

// ListBookings reads all bookings.
func (s *Store) ListBookings(ctx context.Context) ([]application.Booking, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, start_time, end_time, client, trainer, court, status
		FROM bookings`)
	if err != nil {
		return nil, mapSQLError(err)
	}
	defer rows.Close()

	out := make([]application.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// DeleteBooking removes a booking.
func (s *Store) DeleteBooking(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id)
	if err != nil {
		return mapSQLError(err)
	}
	return requireRow(result, "booking", id)
}

func scanBooking(row rowScanner) (application.Booking, error) {
	var b application.Booking
	var start, end, status string
	var trainer sql.NullString
	err := row.Scan(&b.ID, &b.Title, &start, &end, &b.Client, &trainer, &b.Court, &status)
	if err != nil {
		return application.Booking{}, mapSQLError(err)
	}
	if b.Start, err = decodeTime(start); err != nil {
		return application.Booking{}, err
	}
	if b.End, err = decodeTime(end); err != nil {
		return application.Booking{}, err
	}
	b.Trainer = stringPtr(trainer)
	b.Status = application.BookingStatus(status)
	return b, nil
}
