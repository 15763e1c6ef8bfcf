package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/example/gym-admin/internal/application"
	"github.com/example/gym-admin/internal/compliance"
)

type securityService interface {
	ListRoles(ctx context.Context) ([]application.Role, error)
	CreateRole(ctx context.Context, input application.RoleInput) (application.Role, error)
	UpdateRole(ctx context.Context, id string, input application.RoleInput) (application.Role, error)
	DeleteRole(ctx context.Context, id string) error
	ListPermissions(ctx context.Context) ([]application.Permission, error)
	ComplianceOverview(ctx context.Context) (application.ComplianceOverview, error)
	UpdateDataProtectionItem(ctx context.Context, id string, status compliance.Status, lastAudit, dueDate *string) (application.DataProtectionItem, error)
	ListActionLogs(ctx context.Context) ([]application.ActionLogEntry, error)
	ListSystemStatus(ctx context.Context) ([]application.SystemStatusItem, error)
}

type SecurityHandler struct {
	service   securityService
	responder responder
	logger    *slog.Logger
}

func NewSecurityHandler(service securityService, logger *slog.Logger) *SecurityHandler {
	base := defaultLogger(logger)
	return &SecurityHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *SecurityHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "SecurityHandler", operation, attrs...)
}

func (h *SecurityHandler) ListRoles(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger := h.log(r.Context(), "ListRoles")
	roles, err := h.service.ListRoles(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "role list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(roles)).InfoContext(r.Context(), "roles listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listRolesResponse{Roles: toRoleDTOs(roles)})
}

func (h *SecurityHandler) CreateRole(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req roleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "CreateRole", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode role request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "CreateRole")
	role, err := h.service.CreateRole(r.Context(), req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "role creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("role_id", role.ID).InfoContext(r.Context(), "role created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, roleResponse{Role: toRoleDTO(role)})
}

func (h *SecurityHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		h.log(r.Context(), "UpdateRole", "error_kind", "bad_request").ErrorContext(r.Context(), "missing role id")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidID)
		return
	}

	var req roleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "UpdateRole", "role_id", id, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode role request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "UpdateRole", "role_id", id)
	role, err := h.service.UpdateRole(r.Context(), id, req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "role update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "role updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, roleResponse{Role: toRoleDTO(role)})
}

func (h *SecurityHandler) DeleteRole(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		h.log(r.Context(), "DeleteRole", "error_kind", "bad_request").ErrorContext(r.Context(), "missing role id")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidID)
		return
	}

	logger := h.log(r.Context(), "DeleteRole", "role_id", id)
	if err := h.service.DeleteRole(r.Context(), id); err != nil {
		logger.ErrorContext(r.Context(), "role delete failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "role deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func (h *SecurityHandler) ListPermissions(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger := h.log(r.Context(), "ListPermissions")
	permissions, err := h.service.ListPermissions(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "permission list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(permissions)).InfoContext(r.Context(), "permissions listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listPermissionsResponse{Permissions: toPermissionDTOs(permissions)})
}

// DataProtection returns the compliance items together with the weighted score.
func (h *SecurityHandler) DataProtection(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger := h.log(r.Context(), "DataProtection")
	overview, err := h.service.ComplianceOverview(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "compliance overview failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("score", overview.Score, "result_count", len(overview.Items)).InfoContext(r.Context(), "compliance overview served")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, complianceResponse{
		Items: toProtectionItemDTOs(overview.Items),
		Score: overview.Score,
	})
}

func (h *SecurityHandler) UpdateDataProtection(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		h.log(r.Context(), "UpdateDataProtection", "error_kind", "bad_request").ErrorContext(r.Context(), "missing data protection item id")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidID)
		return
	}

	var req protectionItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "UpdateDataProtection", "item_id", id, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode data protection request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "UpdateDataProtection", "item_id", id)
	item, err := h.service.UpdateDataProtectionItem(r.Context(), id, compliance.Status(strings.TrimSpace(req.Status)), req.LastAudit, req.DueDate)
	if err != nil {
		logger.ErrorContext(r.Context(), "data protection update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("status", string(item.Status)).InfoContext(r.Context(), "data protection item updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, protectionItemResponse{Item: toProtectionItemDTO(item)})
}

func (h *SecurityHandler) ListActionLogs(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger := h.log(r.Context(), "ListActionLogs")
	entries, err := h.service.ListActionLogs(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "action log list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(entries)).InfoContext(r.Context(), "action logs listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listActionLogsResponse{Logs: toActionLogDTOs(entries)})
}

// SystemStatus returns the monitored subsystem list for the dashboard.
func (h *SecurityHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger := h.log(r.Context(), "SystemStatus")
	items, err := h.service.ListSystemStatus(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "system status list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(items)).InfoContext(r.Context(), "system status listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listSystemStatusResponse{Items: toSystemStatusDTOs(items)})
}

type roleRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions"`
}

func (r roleRequest) toInput() application.RoleInput {
	return application.RoleInput{
		Name:        strings.TrimSpace(r.Name),
		Description: strings.TrimSpace(r.Description),
		Permissions: r.Permissions,
	}
}

type protectionItemRequest struct {
	Status    string  `json:"status"`
	LastAudit *string `json:"lastAudit"`
	DueDate   *string `json:"dueDate"`
}

type roleResponse struct {
	Role roleDTO `json:"role"`
}

type listRolesResponse struct {
	Roles []roleDTO `json:"roles"`
}

type listPermissionsResponse struct {
	Permissions []permissionDTO `json:"permissions"`
}

type complianceResponse struct {
	Items []protectionItemDTO `json:"items"`
	Score int                 `json:"score"`
}

type protectionItemResponse struct {
	Item protectionItemDTO `json:"item"`
}

type listActionLogsResponse struct {
	Logs []actionLogDTO `json:"logs"`
}

type listSystemStatusResponse struct {
	Items []systemStatusDTO `json:"items"`
}

type systemStatusDTO struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	LastChecked string  `json:"lastChecked"`
	Uptime      string  `json:"uptime"`
	Details     *string `json:"details,omitempty"`
}

type roleDTO struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions,omitempty"`
	UsersCount  int      `json:"usersCount"`
	Protected   bool     `json:"protected"`
}

type permissionDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Module      string `json:"module"`
}

type protectionItemDTO struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	LastAudit   *string `json:"lastAudit,omitempty"`
	DueDate     *string `json:"dueDate,omitempty"`
}

type actionActorDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type actionLogDTO struct {
	ID        string         `json:"id"`
	Actor     actionActorDTO `json:"actor"`
	Action    string         `json:"action"`
	Timestamp string         `json:"timestamp"`
	IPAddress string         `json:"ipAddress"`
	Status    string         `json:"status"`
	Details   *string        `json:"details,omitempty"`
}

func toRoleDTO(role application.Role) roleDTO {
	return roleDTO{
		ID:          role.ID,
		Name:        role.Name,
		Description: role.Description,
		Permissions: role.Permissions,
		UsersCount:  role.UsersCount,
		Protected:   role.Protected,
	}
}

func toRoleDTOs(roles []application.Role) []roleDTO {
	if len(roles) == 0 {
		return nil
	}
	out := make([]roleDTO, 0, len(roles))
	for _, role := range roles {
		out = append(out, toRoleDTO(role))
	}
	return out
}

func toPermissionDTOs(permissions []application.Permission) []permissionDTO {
	if len(permissions) == 0 {
		return nil
	}
	out := make([]permissionDTO, 0, len(permissions))
	for _, p := range permissions {
		out = append(out, permissionDTO{ID: p.ID, Name: p.Name, Description: p.Description, Module: p.Module})
	}
	return out
}

func toProtectionItemDTO(item application.DataProtectionItem) protectionItemDTO {
	return protectionItemDTO{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Status:      string(item.Status),
		LastAudit:   item.LastAudit,
		DueDate:     item.DueDate,
	}
}

func toProtectionItemDTOs(items []application.DataProtectionItem) []protectionItemDTO {
	if len(items) == 0 {
		return nil
	}
	out := make([]protectionItemDTO, 0, len(items))
	for _, item := range items {
		out = append(out, toProtectionItemDTO(item))
	}
	return out
}

func toSystemStatusDTOs(items []application.SystemStatusItem) []systemStatusDTO {
	if len(items) == 0 {
		return nil
	}
	out := make([]systemStatusDTO, 0, len(items))
	for _, item := range items {
		out = append(out, systemStatusDTO{
			ID:          item.ID,
			Title:       item.Title,
			Description: item.Description,
			Status:      string(item.Status),
			LastChecked: item.LastChecked,
			Uptime:      item.Uptime,
			Details:     item.Details,
		})
	}
	return out
}

func toActionLogDTOs(entries []application.ActionLogEntry) []actionLogDTO {
	if len(entries) == 0 {
		return nil
	}
	out := make([]actionLogDTO, 0, len(entries))
	for _, entry := range entries {
		out = append(out, actionLogDTO{
			ID: entry.ID,
			Actor: actionActorDTO{
				ID:    entry.Actor.ID,
				Name:  entry.Actor.Name,
				Email: entry.Actor.Email,
				Role:  entry.Actor.Role,
			},
			Action:    entry.Action,
			Timestamp: entry.Timestamp.UTC().Format(time.RFC3339),
			IPAddress: entry.IPAddress,
			Status:    string(entry.Status),
			Details:   entry.Details,
		})
	}
	return out
}
