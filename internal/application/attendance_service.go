package application

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"
)

// AttendanceLedger captures the append-only persistence surface for check-ins.
// AppendAttendance must increment the owning membership's attendance count in
// the same store operation as the record insert.
type AttendanceLedger interface {
	AppendAttendance(ctx context.Context, record AttendanceRecord) (AttendanceRecord, ClientMembership, error)
	ListAttendance(ctx context.Context, clientMembershipID string) ([]AttendanceRecord, error)
	ListAllAttendance(ctx context.Context) ([]AttendanceRecord, error)
}

// AttendanceResult bundles the appended record with the updated membership so
// callers can refresh their counters without a second lookup.
type AttendanceResult struct {
	Record     AttendanceRecord
	Membership ClientMembership
}

// AttendanceService records facility check-ins against client memberships.
type AttendanceService struct {
	ledger      AttendanceLedger
	memberships ClientMembershipRepository
	idGenerator func() string
	logger      *slog.Logger
}

// NewAttendanceService constructs an attendance service with the provided dependencies.
func NewAttendanceService(ledger AttendanceLedger, memberships ClientMembershipRepository, idGenerator func() string) *AttendanceService {
	return NewAttendanceServiceWithLogger(ledger, memberships, idGenerator, nil)
}

// NewAttendanceServiceWithLogger constructs an attendance service with a specified logger.
func NewAttendanceServiceWithLogger(ledger AttendanceLedger, memberships ClientMembershipRepository, idGenerator func() string, logger *slog.Logger) *AttendanceService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	return &AttendanceService{
		ledger:      ledger,
		memberships: memberships,
		idGenerator: idGenerator,
		logger:      defaultLogger(logger),
	}
}

var timeOfDayPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// AddAttendance appends a check-in record and increments the owning
// membership's attendance counter by exactly one. The attendance cap copied
// from the membership type is intentionally not enforced; the source system
// allowed check-ins past the cap and callers rely on that.
func (s *AttendanceService) AddAttendance(ctx context.Context, input AttendanceInput) (result AttendanceResult, err error) {
	if s == nil || s.ledger == nil || s.memberships == nil {
		err = fmt.Errorf("attendance ledger not configured")
		return
	}

	logger := serviceLogger(ctx, s.logger, "AttendanceService", "AddAttendance",
		"membership_id", input.ClientMembershipID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to add attendance", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("attendance_id", result.Record.ID, "attendance_count", result.Membership.AttendanceCount).
			InfoContext(ctx, "attendance recorded")
	}()

	vErr := validateAttendanceInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	membership, gerr := s.memberships.GetClientMembership(ctx, input.ClientMembershipID)
	if gerr != nil {
		err = mapRepoError(gerr)
		return
	}
	if membership.Status == MembershipCancelled {
		vErr.add("status", "membership is cancelled")
		err = vErr
		return
	}

	record := AttendanceRecord{
		ID:                 s.idGenerator(),
		ClientMembershipID: membership.ID,
		Date:               input.Date,
		CheckInTime:        input.CheckInTime,
		CheckOutTime:       cloneOptionalString(input.CheckOutTime),
		Facility:           strings.TrimSpace(input.Facility),
		Notes:              cloneOptionalString(input.Notes),
	}

	appended, updated, aerr := s.ledger.AppendAttendance(ctx, record)
	if aerr != nil {
		err = mapRepoError(aerr)
		return
	}

	result = AttendanceResult{Record: appended, Membership: updated}
	return
}

// ListAttendance returns the check-in history for a membership, oldest first.
func (s *AttendanceService) ListAttendance(ctx context.Context, clientMembershipID string) ([]AttendanceRecord, error) {
	if s == nil || s.ledger == nil {
		return nil, fmt.Errorf("attendance ledger not configured")
	}

	records, err := s.ledger.ListAttendance(ctx, clientMembershipID)
	if err != nil {
		return nil, mapRepoError(err)
	}

	out := make([]AttendanceRecord, len(records))
	copy(out, records)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].CheckInTime < out[j].CheckInTime
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}

func validateAttendanceInput(input AttendanceInput) *ValidationError {
	vErr := &ValidationError{}
	if strings.TrimSpace(input.ClientMembershipID) == "" {
		vErr.add("client_membership_id", "membership id is required")
	}
	if input.Date.IsZero() {
		vErr.add("date", "date is required")
	}
	if !timeOfDayPattern.MatchString(input.CheckInTime) {
		vErr.add("check_in_time", "check-in time must be HH:MM")
	}
	if input.CheckOutTime != nil {
		if !timeOfDayPattern.MatchString(*input.CheckOutTime) {
			vErr.add("check_out_time", "check-out time must be HH:MM")
		} else if timeOfDayPattern.MatchString(input.CheckInTime) && *input.CheckOutTime < input.CheckInTime {
			vErr.add("check_out_time", "check-out time must not precede check-in time")
		}
	}
	if strings.TrimSpace(input.Facility) == "" {
		vErr.add("facility", "facility is required")
	}
	return vErr
}

func cloneOptionalString(value *string) *string {
	if value == nil {
		return nil
	}
	clone := *value
	return &clone
}
