package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/gym-admin/internal/application"
	"github.com/example/gym-admin/internal/compliance"
	"github.com/example/gym-admin/internal/persistence"
)

// CreateRole inserts a role.
func (s *Store) CreateRole(ctx context.Context, r application.Role) (application.Role, error) {
	if r.ID == "" {
		return application.Role{}, fmt.Errorf("%w: role id is empty", persistence.ErrConstraintViolation)
	}
	perms, err := encodeJSON(r.Permissions)
	if err != nil {
		return application.Role{}, err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO roles (id, name, description, permissions, users_count, protected)
		VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.Name, r.Description, perms, r.UsersCount, r.Protected,
	)
	if err != nil {
		return application.Role{}, mapSQLError(err)
	}
	return r, nil
}

// UpdateRole replaces a role.
func (s *Store) UpdateRole(ctx context.Context, r application.Role) (application.Role, error) {
	perms, err := encodeJSON(r.Permissions)
	if err != nil {
		return application.Role{}, err
	}
	result, err := s.db.ExecContext(ctx, `
		UPDATE roles SET name = ?, description = ?, permissions = ?, users_count = ?, protected = ?
		WHERE id = ?`,
		r.Name, r.Description, perms, r.UsersCount, r.Protected, r.ID,
	)
	if err != nil {
		return application.Role{}, mapSQLError(err)
	}
	if err := requireRow(result, "role", r.ID); err != nil {
		return application.Role{}, err
	}
	return r, nil
}

// GetRole reads one role.
func (s *Store) GetRole(ctx context.Context, id string) (application.Role, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, description, permissions, users_count, protected
		FROM roles WHERE id = ?`, id)
	return scanRole(row)
}

// ListRoles reads all roles.
func (s *Store) ListRoles(ctx context.Context) ([]application.Role, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, permissions, users_count, protected FROM roles`)
	if err != nil {
		return nil, mapSQLError(err)
	}
	defer rows.Close()

	out := make([]application.Role, 0)
	for rows.Next() {
		r, err := scanRole(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// DeleteRole removes a role. Protection is enforced by the service layer.
func (s *Store) DeleteRole(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM roles WHERE id = ?`, id)
	if err != nil {
		return mapSQLError(err)
	}
	return requireRow(result, "role", id)
}

// InsertPermission seeds one catalog entry.
func (s *Store) InsertPermission(ctx context.Context, p application.Permission) error {
	if p.ID == "" {
		return fmt.Errorf("%w: permission id is empty", persistence.ErrConstraintViolation)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO permissions (id, name, description, module) VALUES (?, ?, ?, ?)`,
		p.ID, p.Name, p.Description, p.Module,
	)
	return mapSQLError(err)
}

// ListPermissions reads the catalog.
func (s *Store) ListPermissions(ctx context.Context) ([]application.Permission, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, description, module FROM permissions`)
	if err != nil {
		return nil, mapSQLError(err)
	}
	defer rows.Close()

	out := make([]application.Permission, 0)
	for rows.Next() {
		var p application.Permission
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Module); err != nil {
			return nil, mapSQLError(err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// InsertDataProtectionItem seeds one compliance item.
func (s *Store) InsertDataProtectionItem(ctx context.Context, item application.DataProtectionItem) error {
	if item.ID == "" {
		return fmt.Errorf("%w: data protection item id is empty", persistence.ErrConstraintViolation)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO data_protection_items (id, name, description, status, last_audit, due_date)
		VALUES (?, ?, ?, ?, ?, ?)`,
		item.ID, item.Name, item.Description, string(item.Status), nullString(item.LastAudit), nullString(item.DueDate),
	)
	return mapSQLError(err)
}

// UpdateDataProtectionItem replaces one compliance item.
func (s *Store) UpdateDataProtectionItem(ctx context.Context, item application.DataProtectionItem) (application.DataProtectionItem, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE data_protection_items SET name = ?, description = ?, status = ?, last_audit = ?, due_date = ?
		WHERE id = ?`,
		item.Name, item.Description, string(item.Status), nullString(item.LastAudit), nullString(item.DueDate), item.ID,
	)
	if err != nil {
		return application.DataProtectionItem{}, mapSQLError(err)
	}
	if err := requireRow(result, "data protection item", item.ID); err != nil {
		return application.DataProtectionItem{}, err
	}
	return item, nil
}

// GetDataProtectionItem reads one compliance item.
func (s *Store) GetDataProtectionItem(ctx context.Context, id string) (application.DataProtectionItem, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, description, status, last_audit, due_date
		FROM data_protection_items WHERE id = ?`, id)
	return scanProtectionItem(row)
}

// ListDataProtectionItems reads all compliance items.
func (s *Store) ListDataProtectionItems(ctx context.Context) ([]application.DataProtectionItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, status, last_audit, due_date FROM data_protection_items`)
	if err != nil {
		return nil, mapSQLError(err)
	}
	defer rows.Close()

	out := make([]application.DataProtectionItem, 0)
	for rows.Next() {
		item, err := scanProtectionItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// InsertSystemStatusItem seeds one monitored subsystem.
func (s *Store) InsertSystemStatusItem(ctx context.Context, item application.SystemStatusItem) error {
	if item.ID == "" {
		return fmt.Errorf("%w: system status item id is empty", persistence.ErrConstraintViolation)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO system_status_items (id, title, description, status, last_checked, uptime, details)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.Title, item.Description, string(item.Status), item.LastChecked, item.Uptime, nullString(item.Details),
	)
	return mapSQLError(err)
}

// ListSystemStatus reads the monitored subsystem list.
func (s *Store) ListSystemStatus(ctx context.Context) ([]application.SystemStatusItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, status, last_checked, uptime, details
		FROM system_status_items`)
	if err != nil {
		return nil, mapSQLError(err)
	}
	defer rows.Close()

	out := make([]application.SystemStatusItem, 0)
	for rows.Next() {
		var item application.SystemStatusItem
		var status string
		var details sql.NullString
		if err := rows.Scan(&item.ID, &item.Title, &item.Description, &status, &item.LastChecked, &item.Uptime, &details); err != nil {
			return nil, mapSQLError(err)
		}
		item.Status = application.SystemHealth(status)
		item.Details = stringPtr(details)
		out = append(out, item)
	}
	return out, rows.Err()
}

// AppendActionLog adds an audit trail entry.
func (s *Store) AppendActionLog(ctx context.Context, entry application.ActionLogEntry) (application.ActionLogEntry, error) {
	if entry.ID == "" {
		return application.ActionLogEntry{}, fmt.Errorf("%w: action log id is empty", persistence.ErrConstraintViolation)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO action_logs (id, actor_id, actor_name, actor_email, actor_role, action, timestamp, ip_address, status, details)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Actor.ID, entry.Actor.Name, entry.Actor.Email, entry.Actor.Role, entry.Action,
		encodeTime(entry.Timestamp), entry.IPAddress, string(entry.Status), nullString(entry.Details),
	)
	if err != nil {
		return application.ActionLogEntry{}, mapSQLError(err)
	}
	return entry, nil
}

// ListActionLogs reads the whole audit trail.
func (s *Store) ListActionLogs(ctx context.Context) ([]application.ActionLogEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, actor_id, actor_name, actor_email, actor_role, action, timestamp, ip_address, status, details
		FROM action_logs`)
	if err != nil {
		return nil, mapSQLError(err)
	}
	defer rows.Close()

	out := make([]application.ActionLogEntry, 0)
	for rows.Next() {
		var entry application.ActionLogEntry
		var timestamp, status string
		var details sql.NullString
		if err := rows.Scan(&entry.ID, &entry.Actor.ID, &entry.Actor.Name, &entry.Actor.Email, &entry.Actor.Role,
			&entry.Action, &timestamp, &entry.IPAddress, &status, &details); err != nil {
			return nil, mapSQLError(err)
		}
		if entry.Timestamp, err = decodeTime(timestamp); err != nil {
			return nil, err
		}
		entry.Status = application.ActionStatus(status)
		entry.Details = stringPtr(details)
		out = append(out, entry)
	}
	return out, rows.Err()
}

func scanRole(row rowScanner) (application.Role, error) {
	var r application.Role
	var perms string
	err := row.Scan(&r.ID, &r.Name, &r.Description, &perms, &r.UsersCount, &r.Protected)
	if err != nil {
		return application.Role{}, mapSQLError(err)
	}
	if err := decodeJSON(perms, &r.Permissions); err != nil {
		return application.Role{}, err
	}
	return r, nil
}

func scanProtectionItem(row rowScanner) (application.DataProtectionItem, error) {
	var item application.DataProtectionItem
	var status string
	var lastAudit, dueDate sql.NullString
	err := row.Scan(&item.ID, &item.Name, &item.Description, &status, &lastAudit, &dueDate)
	if err != nil {
		return application.DataProtectionItem{}, mapSQLError(err)
	}
	item.Status = compliance.Status(status)
	item.LastAudit = stringPtr(lastAudit)
	item.DueDate = stringPtr(dueDate)
	return item, nil
}
