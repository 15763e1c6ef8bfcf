package application

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

// StaffRepository captures the persistence operations for trainers and
// masseurs. The two registries share a shape and are addressed by kind.
type StaffRepository interface {
	CreateStaff(ctx context.Context, member StaffMember) (StaffMember, error)
	UpdateStaff(ctx context.Context, member StaffMember) (StaffMember, error)
	GetStaff(ctx context.Context, kind StaffKind, id string) (StaffMember, error)
	ListStaff(ctx context.Context, kind StaffKind) ([]StaffMember, error)
	DeleteStaff(ctx context.Context, kind StaffKind, id string) error
}

// CourtRepository captures the persistence operations for courts.
type CourtRepository interface {
	CreateCourt(ctx context.Context, court Court) (Court, error)
	UpdateCourt(ctx context.Context, court Court) (Court, error)
	GetCourt(ctx context.Context, id string) (Court, error)
	ListCourts(ctx context.Context) ([]Court, error)
	DeleteCourt(ctx context.Context, id string) error
}

// ResourceService manages the bookable resource registries: trainers, masseurs,
// and courts. Status changes have no side effects on bookings that reference
// the resource.
type ResourceService struct {
	staff       StaffRepository
	courts      CourtRepository
	idGenerator func() string
	logger      *slog.Logger
}

// NewResourceService constructs a resource service with the provided dependencies.
func NewResourceService(staff StaffRepository, courts CourtRepository, idGenerator func() string) *ResourceService {
	return NewResourceServiceWithLogger(staff, courts, idGenerator, nil)
}

// NewResourceServiceWithLogger constructs a resource service with a specified logger.
func NewResourceServiceWithLogger(staff StaffRepository, courts CourtRepository, idGenerator func() string, logger *slog.Logger) *ResourceService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	return &ResourceService{staff: staff, courts: courts, idGenerator: idGenerator, logger: defaultLogger(logger)}
}

func (s *ResourceService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "ResourceService", operation, attrs...)
}

// ListStaff returns the trainer or masseur registry ordered by name.
func (s *ResourceService) ListStaff(ctx context.Context, kind StaffKind) ([]StaffMember, error) {
	if s == nil || s.staff == nil {
		return nil, fmt.Errorf("staff repository not configured")
	}
	if err := validateStaffKind(kind); err != nil {
		return nil, err
	}

	members, err := s.staff.ListStaff(ctx, kind)
	if err != nil {
		return nil, mapRepoError(err)
	}

	out := make([]StaffMember, len(members))
	copy(out, members)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name == out[j].Name {
			return out[i].ID < out[j].ID
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// CreateStaff validates input and adds a trainer or masseur. New members start active.
func (s *ResourceService) CreateStaff(ctx context.Context, kind StaffKind, input StaffInput) (member StaffMember, err error) {
	if s == nil || s.staff == nil {
		err = fmt.Errorf("staff repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "CreateStaff", "kind", string(kind))
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create staff member", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("staff_id", member.ID).InfoContext(ctx, "staff member created")
	}()

	if err = validateStaffKind(kind); err != nil {
		return
	}
	vErr := validateStaffInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	member = StaffMember{
		ID:             s.idGenerator(),
		Kind:           kind,
		Name:           strings.TrimSpace(input.Name),
		Specialization: strings.TrimSpace(input.Specialization),
		Availability:   append([]string(nil), input.Availability...),
		Status:         StaffActive,
	}

	persisted, perr := s.staff.CreateStaff(ctx, member)
	if perr != nil {
		err = mapRepoError(perr)
		return
	}
	member = persisted
	return
}

// UpdateStaff validates input and updates an existing trainer or masseur.
func (s *ResourceService) UpdateStaff(ctx context.Context, kind StaffKind, id string, input StaffInput) (member StaffMember, err error) {
	if s == nil || s.staff == nil {
		err = fmt.Errorf("staff repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "UpdateStaff", "kind", string(kind), "staff_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update staff member", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "staff member updated")
	}()

	if err = validateStaffKind(kind); err != nil {
		return
	}

	existing, gerr := s.staff.GetStaff(ctx, kind, id)
	if gerr != nil {
		err = mapRepoError(gerr)
		return
	}

	vErr := validateStaffInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	updated := existing
	updated.Name = strings.TrimSpace(input.Name)
	updated.Specialization = strings.TrimSpace(input.Specialization)
	updated.Availability = append([]string(nil), input.Availability...)

	persisted, perr := s.staff.UpdateStaff(ctx, updated)
	if perr != nil {
		err = mapRepoError(perr)
		return
	}
	member = persisted
	return
}

// ToggleStaffStatus flips a staff member between active and inactive.
func (s *ResourceService) ToggleStaffStatus(ctx context.Context, kind StaffKind, id string) (StaffMember, error) {
	if s == nil || s.staff == nil {
		return StaffMember{}, fmt.Errorf("staff repository not configured")
	}
	if err := validateStaffKind(kind); err != nil {
		return StaffMember{}, err
	}

	existing, err := s.staff.GetStaff(ctx, kind, id)
	if err != nil {
		return StaffMember{}, mapRepoError(err)
	}

	if existing.Status == StaffActive {
		existing.Status = StaffInactive
	} else {
		existing.Status = StaffActive
	}

	persisted, err := s.staff.UpdateStaff(ctx, existing)
	if err != nil {
		return StaffMember{}, mapRepoError(err)
	}
	return persisted, nil
}

// DeleteStaff removes a trainer or masseur. Bookings naming them are untouched.
func (s *ResourceService) DeleteStaff(ctx context.Context, kind StaffKind, id string) error {
	if s == nil || s.staff == nil {
		return fmt.Errorf("staff repository not configured")
	}
	if err := validateStaffKind(kind); err != nil {
		return err
	}
	if err := s.staff.DeleteStaff(ctx, kind, id); err != nil {
		return mapRepoError(err)
	}
	return nil
}

// ListCourts returns the court registry ordered by name.
func (s *ResourceService) ListCourts(ctx context.Context) ([]Court, error) {
	if s == nil || s.courts == nil {
		return nil, fmt.Errorf("court repository not configured")
	}

	courts, err := s.courts.ListCourts(ctx)
	if err != nil {
		return nil, mapRepoError(err)
	}

	out := make([]Court, len(courts))
	copy(out, courts)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name == out[j].Name {
			return out[i].ID < out[j].ID
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// CreateCourt validates input and adds a court. New courts start available.
func (s *ResourceService) CreateCourt(ctx context.Context, input CourtInput) (court Court, err error) {
	if s == nil || s.courts == nil {
		err = fmt.Errorf("court repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "CreateCourt")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create court", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("court_id", court.ID).InfoContext(ctx, "court created")
	}()

	vErr := validateCourtInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	court = Court{
		ID:       s.idGenerator(),
		Name:     strings.TrimSpace(input.Name),
		Type:     strings.TrimSpace(input.Type),
		Capacity: input.Capacity,
		Status:   CourtAvailable,
	}

	persisted, perr := s.courts.CreateCourt(ctx, court)
	if perr != nil {
		err = mapRepoError(perr)
		return
	}
	court = persisted
	return
}

// UpdateCourt validates input and updates an existing court.
func (s *ResourceService) UpdateCourt(ctx context.Context, id string, input CourtInput) (court Court, err error) {
	if s == nil || s.courts == nil {
		err = fmt.Errorf("court repository not configured")
		return
	}

	existing, gerr := s.courts.GetCourt(ctx, id)
	if gerr != nil {
		err = mapRepoError(gerr)
		return
	}

	vErr := validateCourtInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	updated := existing
	updated.Name = strings.TrimSpace(input.Name)
	updated.Type = strings.TrimSpace(input.Type)
	updated.Capacity = input.Capacity

	persisted, perr := s.courts.UpdateCourt(ctx, updated)
	if perr != nil {
		err = mapRepoError(perr)
		return
	}
	court = persisted
	return
}

// CycleCourtStatus rotates a court through available → blocked → maintenance →
// available. Existing bookings on the court are not affected.
func (s *ResourceService) CycleCourtStatus(ctx context.Context, id string) (Court, error) {
	if s == nil || s.courts == nil {
		return Court{}, fmt.Errorf("court repository not configured")
	}

	existing, err := s.courts.GetCourt(ctx, id)
	if err != nil {
		return Court{}, mapRepoError(err)
	}

	switch existing.Status {
	case CourtAvailable:
		existing.Status = CourtBlocked
	case CourtBlocked:
		existing.Status = CourtMaintenance
	default:
		existing.Status = CourtAvailable
	}

	persisted, err := s.courts.UpdateCourt(ctx, existing)
	if err != nil {
		return Court{}, mapRepoError(err)
	}
	return persisted, nil
}

// DeleteCourt removes a court. Bookings naming it are untouched.
func (s *ResourceService) DeleteCourt(ctx context.Context, id string) error {
	if s == nil || s.courts == nil {
		return fmt.Errorf("court repository not configured")
	}
	if err := s.courts.DeleteCourt(ctx, id); err != nil {
		return mapRepoError(err)
	}
	return nil
}

func validateStaffKind(kind StaffKind) error {
	switch kind {
	case StaffTrainer, StaffMasseur:
		return nil
	}
	vErr := &ValidationError{}
	vErr.add("kind", "staff kind is invalid")
	return vErr
}

func validateStaffInput(input StaffInput) *ValidationError {
	vErr := &ValidationError{}
	if strings.TrimSpace(input.Name) == "" {
		vErr.add("name", "name is required")
	}
	if strings.TrimSpace(input.Specialization) == "" {
		vErr.add("specialization", "specialization is required")
	}
	return vErr
}

func validateCourtInput(input CourtInput) *ValidationError {
	vErr := &ValidationError{}
	if strings.TrimSpace(input.Name) == "" {
		vErr.add("name", "name is required")
	}
	if strings.TrimSpace(input.Type) == "" {
		vErr.add("type", "type is required")
	}
	if input.Capacity <= 0 {
		vErr.add("capacity", "capacity must be positive")
	}
	return vErr
}
