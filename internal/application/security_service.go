package application

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/example/gym-admin/internal/compliance"
)

// RoleRepository captures the persistence operations for roles.
type RoleRepository interface {
	CreateRole(ctx context.Context, role Role) (Role, error)
	UpdateRole(ctx context.Context, role Role) (Role, error)
	GetRole(ctx context.Context, id string) (Role, error)
	ListRoles(ctx context.Context) ([]Role, error)
	DeleteRole(ctx context.Context, id string) error
}

// PermissionRepository captures the read operations for the permission catalog.
// The catalog is seeded at startup and not editable through the service.
type PermissionRepository interface {
	ListPermissions(ctx context.Context) ([]Permission, error)
}

// DataProtectionRepository captures the persistence operations for compliance items.
type DataProtectionRepository interface {
	UpdateDataProtectionItem(ctx context.Context, item DataProtectionItem) (DataProtectionItem, error)
	GetDataProtectionItem(ctx context.Context, id string) (DataProtectionItem, error)
	ListDataProtectionItems(ctx context.Context) ([]DataProtectionItem, error)
}

// ActionLogRepository captures the persistence operations for the audit trail.
type ActionLogRepository interface {
	AppendActionLog(ctx context.Context, entry ActionLogEntry) (ActionLogEntry, error)
	ListActionLogs(ctx context.Context) ([]ActionLogEntry, error)
}

// SystemStatusRepository captures the read operations for the monitored
// subsystem list. Entries are seeded at startup and not editable through the
// service.
type SystemStatusRepository interface {
	ListSystemStatus(ctx context.Context) ([]SystemStatusItem, error)
}

// ComplianceOverview pairs the data-protection items with their aggregate score.
type ComplianceOverview struct {
	Items []DataProtectionItem
	Score int
}

// SecurityService manages roles, the permission catalog, data-protection
// compliance items, the monitored subsystem list, and the administrative
// action log.
type SecurityService struct {
	roles       RoleRepository
	permissions PermissionRepository
	protection  DataProtectionRepository
	actions     ActionLogRepository
	status      SystemStatusRepository
	idGenerator func() string
	logger      *slog.Logger
}

// NewSecurityService constructs a security service with the provided dependencies.
func NewSecurityService(roles RoleRepository, permissions PermissionRepository, protection DataProtectionRepository, actions ActionLogRepository, status SystemStatusRepository, idGenerator func() string) *SecurityService {
	return NewSecurityServiceWithLogger(roles, permissions, protection, actions, status, idGenerator, nil)
}

// NewSecurityServiceWithLogger constructs a security service with a specified logger.
func NewSecurityServiceWithLogger(roles RoleRepository, permissions PermissionRepository, protection DataProtectionRepository, actions ActionLogRepository, status SystemStatusRepository, idGenerator func() string, logger *slog.Logger) *SecurityService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	return &SecurityService{
		roles:       roles,
		permissions: permissions,
		protection:  protection,
		actions:     actions,
		status:      status,
		idGenerator: idGenerator,
		logger:      defaultLogger(logger),
	}
}

func (s *SecurityService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "SecurityService", operation, attrs...)
}

// ListRoles returns all roles ordered by name.
func (s *SecurityService) ListRoles(ctx context.Context) ([]Role, error) {
	if s == nil || s.roles == nil {
		return nil, fmt.Errorf("role repository not configured")
	}

	roles, err := s.roles.ListRoles(ctx)
	if err != nil {
		return nil, mapRepoError(err)
	}

	out := make([]Role, len(roles))
	copy(out, roles)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name == out[j].Name {
			return out[i].ID < out[j].ID
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// CreateRole validates input and adds a role. Roles created through the
// service are never protected.
func (s *SecurityService) CreateRole(ctx context.Context, input RoleInput) (role Role, err error) {
	if s == nil || s.roles == nil {
		err = fmt.Errorf("role repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "CreateRole")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create role", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("role_id", role.ID).InfoContext(ctx, "role created")
	}()

	vErr := validateRoleInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	role = Role{
		ID:          s.idGenerator(),
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Permissions: append([]string(nil), input.Permissions...),
	}

	persisted, perr := s.roles.CreateRole(ctx, role)
	if perr != nil {
		err = mapRepoError(perr)
		return
	}
	role = persisted
	return
}

// UpdateRole validates input and updates an existing role. Protected roles may
// be edited; only deletion is restricted.
func (s *SecurityService) UpdateRole(ctx context.Context, id string, input RoleInput) (role Role, err error) {
	if s == nil || s.roles == nil {
		err = fmt.Errorf("role repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "UpdateRole", "role_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update role", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "role updated")
	}()

	existing, gerr := s.roles.GetRole(ctx, id)
	if gerr != nil {
		err = mapRepoError(gerr)
		return
	}

	vErr := validateRoleInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	updated := existing
	updated.Name = strings.TrimSpace(input.Name)
	updated.Description = strings.TrimSpace(input.Description)
	updated.Permissions = append([]string(nil), input.Permissions...)

	persisted, perr := s.roles.UpdateRole(ctx, updated)
	if perr != nil {
		err = mapRepoError(perr)
		return
	}
	role = persisted
	return
}

// DeleteRole removes a role. Protected roles cannot be deleted.
func (s *SecurityService) DeleteRole(ctx context.Context, id string) (err error) {
	if s == nil || s.roles == nil {
		return fmt.Errorf("role repository not configured")
	}

	logger := s.loggerWith(ctx, "DeleteRole", "role_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to delete role", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "role deleted")
	}()

	existing, gerr := s.roles.GetRole(ctx, id)
	if gerr != nil {
		err = mapRepoError(gerr)
		return
	}
	if existing.Protected {
		err = ErrProtectedRole
		return
	}

	if derr := s.roles.DeleteRole(ctx, id); derr != nil {
		err = mapRepoError(derr)
	}
	return
}

// ListPermissions returns the permission catalog grouped by module name, then
// permission name.
func (s *SecurityService) ListPermissions(ctx context.Context) ([]Permission, error) {
	if s == nil || s.permissions == nil {
		return nil, fmt.Errorf("permission repository not configured")
	}

	perms, err := s.permissions.ListPermissions(ctx)
	if err != nil {
		return nil, mapRepoError(err)
	}

	out := make([]Permission, len(perms))
	copy(out, perms)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Module == out[j].Module {
			return out[i].Name < out[j].Name
		}
		return out[i].Module < out[j].Module
	})
	return out, nil
}

// ComplianceOverview returns the data-protection items with the aggregate
// score recomputed from their current statuses.
func (s *SecurityService) ComplianceOverview(ctx context.Context) (ComplianceOverview, error) {
	if s == nil || s.protection == nil {
		return ComplianceOverview{}, fmt.Errorf("data protection repository not configured")
	}

	items, err := s.protection.ListDataProtectionItems(ctx)
	if err != nil {
		return ComplianceOverview{}, mapRepoError(err)
	}

	out := make([]DataProtectionItem, len(items))
	copy(out, items)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	statuses := make([]compliance.Status, len(out))
	for i, item := range out {
		statuses[i] = item.Status
	}
	return ComplianceOverview{Items: out, Score: compliance.Score(statuses)}, nil
}

// UpdateDataProtectionItem changes the status and audit labels of one
// compliance item.
func (s *SecurityService) UpdateDataProtectionItem(ctx context.Context, id string, status compliance.Status, lastAudit, dueDate *string) (item DataProtectionItem, err error) {
	if s == nil || s.protection == nil {
		err = fmt.Errorf("data protection repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "UpdateDataProtectionItem", "item_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update data protection item", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("status", string(status)).InfoContext(ctx, "data protection item updated")
	}()

	if !status.Valid() {
		vErr := &ValidationError{}
		vErr.add("status", "status is invalid")
		err = vErr
		return
	}

	existing, gerr := s.protection.GetDataProtectionItem(ctx, id)
	if gerr != nil {
		err = mapRepoError(gerr)
		return
	}

	existing.Status = status
	if lastAudit != nil {
		existing.LastAudit = cloneString(lastAudit)
	}
	if dueDate != nil {
		existing.DueDate = cloneString(dueDate)
	}

	persisted, perr := s.protection.UpdateDataProtectionItem(ctx, existing)
	if perr != nil {
		err = mapRepoError(perr)
		return
	}
	item = persisted
	return
}

// ListActionLogs returns the audit trail newest first.
func (s *SecurityService) ListActionLogs(ctx context.Context) ([]ActionLogEntry, error) {
	if s == nil || s.actions == nil {
		return nil, fmt.Errorf("action log repository not configured")
	}

	entries, err := s.actions.ListActionLogs(ctx)
	if err != nil {
		return nil, mapRepoError(err)
	}

	out := make([]ActionLogEntry, len(entries))
	copy(out, entries)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].ID > out[j].ID
		}
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}

// ListSystemStatus returns the monitored subsystems ordered by title.
func (s *SecurityService) ListSystemStatus(ctx context.Context) ([]SystemStatusItem, error) {
	if s == nil || s.status == nil {
		return nil, fmt.Errorf("system status repository not configured")
	}

	items, err := s.status.ListSystemStatus(ctx)
	if err != nil {
		return nil, mapRepoError(err)
	}

	out := make([]SystemStatusItem, len(items))
	copy(out, items)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Title == out[j].Title {
			return out[i].ID < out[j].ID
		}
		return out[i].Title < out[j].Title
	})
	return out, nil
}

// RecordAction appends an entry to the audit trail.
func (s *SecurityService) RecordAction(ctx context.Context, entry ActionLogEntry) (ActionLogEntry, error) {
	if s == nil || s.actions == nil {
		return ActionLogEntry{}, fmt.Errorf("action log repository not configured")
	}
	if entry.ID == "" {
		entry.ID = s.idGenerator()
	}
	persisted, err := s.actions.AppendActionLog(ctx, entry)
	if err != nil {
		return ActionLogEntry{}, mapRepoError(err)
	}
	return persisted, nil
}

func validateRoleInput(input RoleInput) *ValidationError {
	vErr := &ValidationError{}
	if strings.TrimSpace(input.Name) == "" {
		vErr.add("name", "name is required")
	}
	if strings.TrimSpace(input.Description) == "" {
		vErr.add("description", "description is required")
	}
	return vErr
}
