package application

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

// BookingRepository captures the persistence operations for bookings.
type BookingRepository interface {
	CreateBooking(ctx context.Context, booking Booking) (Booking, error)
	UpdateBooking(ctx context.Context, booking Booking) (Booking, error)
	GetBooking(ctx context.Context, id string) (Booking, error)
	ListBookings(ctx context.Context) ([]Booking, error)
	DeleteBooking(ctx context.Context, id string) error
}

// BookingService manages court bookings. Bookings are validated for required
// fields only; the registry performs no overlap, capacity, or availability
// checks against courts or staff.
type BookingService struct {
	bookings    BookingRepository
	idGenerator func() string
	logger      *slog.Logger
}

// NewBookingService constructs a booking service with the provided dependencies.
func NewBookingService(bookings BookingRepository, idGenerator func() string) *BookingService {
	return NewBookingServiceWithLogger(bookings, idGenerator, nil)
}

// NewBookingServiceWithLogger constructs a booking service with a specified logger.
func NewBookingServiceWithLogger(bookings BookingRepository, idGenerator func() string, logger *slog.Logger) *BookingService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	return &BookingService{bookings: bookings, idGenerator: idGenerator, logger: defaultLogger(logger)}
}

func (s *BookingService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "BookingService", operation, attrs...)
}

// ListBookings returns all bookings ordered by start time.
func (s *BookingService) ListBookings(ctx context.Context) ([]Booking, error) {
	if s == nil || s.bookings == nil {
		return nil, fmt.Errorf("booking repository not configured")
	}

	bookings, err := s.bookings.ListBookings(ctx)
	if err != nil {
		return nil, mapRepoError(err)
	}

	out := make([]Booking, len(bookings))
	copy(out, bookings)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Start.Equal(out[j].Start) {
			return out[i].ID < out[j].ID
		}
		return out[i].Start.Before(out[j].Start)
	})
	return out, nil
}

// CreateBooking validates required fields and persists a new booking.
func (s *BookingService) CreateBooking(ctx context.Context, input BookingInput) (booking Booking, err error) {
	if s == nil || s.bookings == nil {
		err = fmt.Errorf("booking repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "CreateBooking", "court", input.Court)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create booking", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("booking_id", booking.ID).InfoContext(ctx, "booking created")
	}()

	vErr := validateBookingInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	status := input.Status
	if status == "" {
		status = BookingPending
	}

	booking = Booking{
		ID:      s.idGenerator(),
		Title:   strings.TrimSpace(input.Title),
		Start:   input.Start,
		End:     input.End,
		Client:  strings.TrimSpace(input.Client),
		Trainer: normalizeOptionalString(input.Trainer),
		Court:   strings.TrimSpace(input.Court),
		Status:  status,
	}

	persisted, perr := s.bookings.CreateBooking(ctx, booking)
	if perr != nil {
		err = mapRepoError(perr)
		return
	}
	booking = persisted
	return
}

// UpdateBooking validates input and replaces an existing booking's fields.
func (s *BookingService) UpdateBooking(ctx context.Context, id string, input BookingInput) (booking Booking, err error) {
	if s == nil || s.bookings == nil {
		err = fmt.Errorf("booking repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "UpdateBooking", "booking_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update booking", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "booking updated")
	}()

	existing, gerr := s.bookings.GetBooking(ctx, id)
	if gerr != nil {
		err = mapRepoError(gerr)
		return
	}

	vErr := validateBookingInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	updated := existing
	updated.Title = strings.TrimSpace(input.Title)
	updated.Start = input.Start
	updated.End = input.End
	updated.Client = strings.TrimSpace(input.Client)
	updated.Trainer = normalizeOptionalString(input.Trainer)
	updated.Court = strings.TrimSpace(input.Court)
	if input.Status != "" {
		updated.Status = input.Status
	}

	persisted, perr := s.bookings.UpdateBooking(ctx, updated)
	if perr != nil {
		err = mapRepoError(perr)
		return
	}
	booking = persisted
	return
}

// CancelBooking marks a booking cancelled. The record is kept for history.
func (s *BookingService) CancelBooking(ctx context.Context, id string) (Booking, error) {
	if s == nil || s.bookings == nil {
		return Booking{}, fmt.Errorf("booking repository not configured")
	}

	logger := s.loggerWith(ctx, "CancelBooking", "booking_id", id)

	existing, err := s.bookings.GetBooking(ctx, id)
	if err != nil {
		err = mapRepoError(err)
		logger.ErrorContext(ctx, "failed to cancel booking", "error", err, "error_kind", ErrorKind(err))
		return Booking{}, err
	}

	existing.Status = BookingCancelled
	persisted, err := s.bookings.UpdateBooking(ctx, existing)
	if err != nil {
		err = mapRepoError(err)
		logger.ErrorContext(ctx, "failed to cancel booking", "error", err, "error_kind", ErrorKind(err))
		return Booking{}, err
	}

	logger.InfoContext(ctx, "booking cancelled")
	return persisted, nil
}

// DeleteBooking removes a booking entirely.
func (s *BookingService) DeleteBooking(ctx context.Context, id string) error {
	if s == nil || s.bookings == nil {
		return fmt.Errorf("booking repository not configured")
	}
	if err := s.bookings.DeleteBooking(ctx, id); err != nil {
		return mapRepoError(err)
	}
	return nil
}

func validateBookingInput(input BookingInput) *ValidationError {
	vErr := &ValidationError{}
	if strings.TrimSpace(input.Title) == "" {
		vErr.add("title", "title is required")
	}
	if input.Start.IsZero() {
		vErr.add("start", "start is required")
	}
	if input.End.IsZero() {
		vErr.add("end", "end is required")
	} else if !input.Start.IsZero() && !input.End.After(input.Start) {
		vErr.add("end", "end must be after start")
	}
	if strings.TrimSpace(input.Client) == "" {
		vErr.add("client", "client is required")
	}
	if strings.TrimSpace(input.Court) == "" {
		vErr.add("court", "court is required")
	}
	if input.Status != "" {
		switch input.Status {
		case BookingConfirmed, BookingPending, BookingCancelled:
		default:
			vErr.add("status", "status is invalid")
		}
	}
	return vErr
}

func normalizeOptionalString(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
