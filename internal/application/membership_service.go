package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/example/gym-admin/internal/persistence"
)

// MembershipTypeRepository captures the persistence operations for membership types.
type MembershipTypeRepository interface {
	CreateMembershipType(ctx context.Context, membershipType MembershipType) (MembershipType, error)
	UpdateMembershipType(ctx context.Context, membershipType MembershipType) (MembershipType, error)
	GetMembershipType(ctx context.Context, id string) (MembershipType, error)
	ListMembershipTypes(ctx context.Context) ([]MembershipType, error)
}

// ClientMembershipRepository captures the persistence operations for client memberships.
type ClientMembershipRepository interface {
	CreateClientMembership(ctx context.Context, membership ClientMembership) (ClientMembership, error)
	UpdateClientMembership(ctx context.Context, membership ClientMembership) (ClientMembership, error)
	GetClientMembership(ctx context.Context, id string) (ClientMembership, error)
	ListClientMemberships(ctx context.Context) ([]ClientMembership, error)
}

// MembershipService enacts the membership lifecycle commands and manages the
// membership type catalog.
type MembershipService struct {
	types       MembershipTypeRepository
	memberships ClientMembershipRepository
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewMembershipService constructs a membership service with the provided dependencies.
func NewMembershipService(types MembershipTypeRepository, memberships ClientMembershipRepository, idGenerator func() string, now func() time.Time) *MembershipService {
	return NewMembershipServiceWithLogger(types, memberships, idGenerator, now, nil)
}

// NewMembershipServiceWithLogger constructs a membership service with a specified logger.
func NewMembershipServiceWithLogger(types MembershipTypeRepository, memberships ClientMembershipRepository, idGenerator func() string, now func() time.Time, logger *slog.Logger) *MembershipService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &MembershipService{
		types:       types,
		memberships: memberships,
		idGenerator: idGenerator,
		now:         now,
		logger:      defaultLogger(logger),
	}
}

func (s *MembershipService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "MembershipService", operation, attrs...)
}

// ListMembershipTypes returns the membership type catalog ordered by name.
func (s *MembershipService) ListMembershipTypes(ctx context.Context) ([]MembershipType, error) {
	if s == nil || s.types == nil {
		return nil, fmt.Errorf("membership type repository not configured")
	}

	types, err := s.types.ListMembershipTypes(ctx)
	if err != nil {
		return nil, mapRepoError(err)
	}

	out := make([]MembershipType, len(types))
	copy(out, types)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name == out[j].Name {
			return out[i].ID < out[j].ID
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// CreateMembershipType validates input and persists a new membership type.
func (s *MembershipService) CreateMembershipType(ctx context.Context, input MembershipTypeInput) (membershipType MembershipType, err error) {
	if s == nil || s.types == nil {
		err = fmt.Errorf("membership type repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "CreateMembershipType")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create membership type", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("membership_type_id", membershipType.ID).InfoContext(ctx, "membership type created")
	}()

	vErr := validateMembershipTypeInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	membershipType = MembershipType{
		ID:            s.idGenerator(),
		Name:          strings.TrimSpace(input.Name),
		Description:   strings.TrimSpace(input.Description),
		Price:         input.Price,
		DurationDays:  input.DurationDays,
		Features:      append([]string(nil), input.Features...),
		MaxAttendance: cloneInt(input.MaxAttendance),
		IsPopular:     input.IsPopular,
	}

	persisted, perr := s.types.CreateMembershipType(ctx, membershipType)
	if perr != nil {
		err = mapRepoError(perr)
		return
	}
	membershipType = persisted
	return
}

// UpdateMembershipType validates input and updates an existing membership type.
// Existing memberships keep their snapshotted name and attendance cap.
func (s *MembershipService) UpdateMembershipType(ctx context.Context, id string, input MembershipTypeInput) (membershipType MembershipType, err error) {
	if s == nil || s.types == nil {
		err = fmt.Errorf("membership type repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "UpdateMembershipType", "membership_type_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update membership type", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "membership type updated")
	}()

	existing, gerr := s.types.GetMembershipType(ctx, id)
	if gerr != nil {
		err = mapRepoError(gerr)
		return
	}

	vErr := validateMembershipTypeInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	updated := existing
	updated.Name = strings.TrimSpace(input.Name)
	updated.Description = strings.TrimSpace(input.Description)
	updated.Price = input.Price
	updated.DurationDays = input.DurationDays
	updated.Features = append([]string(nil), input.Features...)
	updated.MaxAttendance = cloneInt(input.MaxAttendance)
	updated.IsPopular = input.IsPopular

	persisted, perr := s.types.UpdateMembershipType(ctx, updated)
	if perr != nil {
		err = mapRepoError(perr)
		return
	}
	membershipType = persisted
	return
}

// ListClientMemberships returns every client membership, newest start first.
func (s *MembershipService) ListClientMemberships(ctx context.Context) ([]ClientMembership, error) {
	if s == nil || s.memberships == nil {
		return nil, fmt.Errorf("client membership repository not configured")
	}

	memberships, err := s.memberships.ListClientMemberships(ctx)
	if err != nil {
		return nil, mapRepoError(err)
	}

	out := make([]ClientMembership, len(memberships))
	copy(out, memberships)
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].ID < out[j].ID
		}
		return out[i].StartDate.After(out[j].StartDate)
	})
	return out, nil
}

// AssignMembership creates an active membership for a client, snapshotting the
// type's name and attendance cap at assignment time.
func (s *MembershipService) AssignMembership(ctx context.Context, params AssignMembershipParams) (membership ClientMembership, err error) {
	if s == nil || s.types == nil || s.memberships == nil {
		err = fmt.Errorf("membership repositories not configured")
		return
	}

	logger := s.loggerWith(ctx, "AssignMembership",
		"client_id", params.ClientID,
		"membership_type_id", params.MembershipTypeID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to assign membership", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("membership_id", membership.ID).InfoContext(ctx, "membership assigned")
	}()

	vErr := &ValidationError{}
	if strings.TrimSpace(params.ClientID) == "" {
		vErr.add("client_id", "client id is required")
	}
	if strings.TrimSpace(params.MembershipTypeID) == "" {
		vErr.add("membership_type_id", "membership type id is required")
	}
	if params.StartDate.IsZero() {
		vErr.add("start_date", "start date is required")
	}
	if params.EndDate.IsZero() {
		vErr.add("end_date", "end date is required")
	} else if !params.StartDate.IsZero() && params.EndDate.Before(params.StartDate) {
		vErr.add("end_date", "end date must not precede start date")
	}
	if vErr.HasErrors() {
		err = vErr
		return
	}

	membershipType, terr := s.types.GetMembershipType(ctx, params.MembershipTypeID)
	if terr != nil {
		err = mapRepoError(terr)
		return
	}

	membership = ClientMembership{
		ID:               s.idGenerator(),
		ClientID:         params.ClientID,
		MembershipTypeID: membershipType.ID,
		MembershipName:   membershipType.Name,
		StartDate:        params.StartDate,
		EndDate:          params.EndDate,
		Status:           MembershipActive,
		AttendanceCount:  0,
		MaxAttendance:    cloneInt(membershipType.MaxAttendance),
		Notes:            strings.TrimSpace(params.Notes),
	}

	persisted, perr := s.memberships.CreateClientMembership(ctx, membership)
	if perr != nil {
		err = mapRepoError(perr)
		return
	}
	membership = persisted
	return
}

// FreezeMembership suspends a membership and extends its end date by the freeze
// duration in calendar days.
func (s *MembershipService) FreezeMembership(ctx context.Context, params FreezeMembershipParams) (ClientMembership, error) {
	return s.applyLifecycle(ctx, "FreezeMembership", params.MembershipID, func(m ClientMembership) (ClientMembership, *ValidationError) {
		return freezeMembership(m, params.Days, strings.TrimSpace(params.Reason), s.now())
	})
}

// UnfreezeMembership reactivates a frozen membership and closes the open freeze
// history entry. The end-date extension applied at freeze time remains.
func (s *MembershipService) UnfreezeMembership(ctx context.Context, membershipID string) (ClientMembership, error) {
	return s.applyLifecycle(ctx, "UnfreezeMembership", membershipID, func(m ClientMembership) (ClientMembership, *ValidationError) {
		return unfreezeMembership(m, s.now())
	})
}

// ProlongMembership extends a membership's end date without changing its status.
func (s *MembershipService) ProlongMembership(ctx context.Context, params ProlongMembershipParams) (ClientMembership, error) {
	return s.applyLifecycle(ctx, "ProlongMembership", params.MembershipID, func(m ClientMembership) (ClientMembership, *ValidationError) {
		return prolongMembership(m, params.Days, strings.TrimSpace(params.Reason), s.now())
	})
}

// CancelMembership terminates a membership. The reason is required and the
// transition is terminal.
func (s *MembershipService) CancelMembership(ctx context.Context, membershipID, reason string) (ClientMembership, error) {
	return s.applyLifecycle(ctx, "CancelMembership", membershipID, func(m ClientMembership) (ClientMembership, *ValidationError) {
		return cancelMembership(m, strings.TrimSpace(reason))
	})
}

func (s *MembershipService) applyLifecycle(ctx context.Context, operation, membershipID string, transition func(ClientMembership) (ClientMembership, *ValidationError)) (membership ClientMembership, err error) {
	if s == nil || s.memberships == nil {
		err = fmt.Errorf("client membership repository not configured")
		return
	}

	logger := s.loggerWith(ctx, operation, "membership_id", membershipID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "lifecycle command failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("status", string(membership.Status)).InfoContext(ctx, "lifecycle command applied")
	}()

	existing, gerr := s.memberships.GetClientMembership(ctx, membershipID)
	if gerr != nil {
		err = mapRepoError(gerr)
		return
	}

	updated, vErr := transition(existing)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	persisted, perr := s.memberships.UpdateClientMembership(ctx, updated)
	if perr != nil {
		err = mapRepoError(perr)
		return
	}
	membership = persisted
	return
}

func validateMembershipTypeInput(input MembershipTypeInput) *ValidationError {
	vErr := &ValidationError{}
	if strings.TrimSpace(input.Name) == "" {
		vErr.add("name", "name is required")
	}
	if input.Price < 0 {
		vErr.add("price", "price must not be negative")
	}
	if input.DurationDays <= 0 {
		vErr.add("duration", "duration must be positive")
	}
	if input.MaxAttendance != nil && *input.MaxAttendance <= 0 {
		vErr.add("max_attendance", "max attendance must be positive")
	}
	return vErr
}

func mapRepoError(err error) error {
	if errors.Is(err, persistence.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func cloneInt(value *int) *int {
	if value == nil {
		return nil
	}
	clone := *value
	return &clone
}
