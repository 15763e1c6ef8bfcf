package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/gym-admin/internal/application"
)

type resourceService interface {
	ListStaff(ctx context.Context, kind application.StaffKind) ([]application.StaffMember, error)
	CreateStaff(ctx context.Context, kind application.StaffKind, input application.StaffInput) (application.StaffMember, error)
	UpdateStaff(ctx context.Context, kind application.StaffKind, id string, input application.StaffInput) (application.StaffMember, error)
	ToggleStaffStatus(ctx context.Context, kind application.StaffKind, id string) (application.StaffMember, error)
	DeleteStaff(ctx context.Context, kind application.StaffKind, id string) error
	ListCourts(ctx context.Context) ([]application.Court, error)
	CreateCourt(ctx context.Context, input application.CourtInput) (application.Court, error)
	UpdateCourt(ctx context.Context, id string, input application.CourtInput) (application.Court, error)
	CycleCourtStatus(ctx context.Context, id string) (application.Court, error)
	DeleteCourt(ctx context.Context, id string) error
}

// ResourceHandler serves the trainer, masseur, and court registries. Trainer
// and masseur routes share the same staff code paths, split by kind.
type ResourceHandler struct {
	service   resourceService
	responder responder
	logger    *slog.Logger
}

func NewResourceHandler(service resourceService, logger *slog.Logger) *ResourceHandler {
	base := defaultLogger(logger)
	return &ResourceHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *ResourceHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "ResourceHandler", operation, attrs...)
}

func (h *ResourceHandler) ListTrainers(w http.ResponseWriter, r *http.Request) {
	h.listStaff(w, r, application.StaffTrainer)
}

func (h *ResourceHandler) CreateTrainer(w http.ResponseWriter, r *http.Request) {
	h.createStaff(w, r, application.StaffTrainer)
}

func (h *ResourceHandler) UpdateTrainer(w http.ResponseWriter, r *http.Request) {
	h.updateStaff(w, r, application.StaffTrainer)
}

func (h *ResourceHandler) ToggleTrainer(w http.ResponseWriter, r *http.Request) {
	h.toggleStaff(w, r, application.StaffTrainer)
}

func (h *ResourceHandler) DeleteTrainer(w http.ResponseWriter, r *http.Request) {
	h.deleteStaff(w, r, application.StaffTrainer)
}

func (h *ResourceHandler) ListMasseurs(w http.ResponseWriter, r *http.Request) {
	h.listStaff(w, r, application.StaffMasseur)
}

func (h *ResourceHandler) CreateMasseur(w http.ResponseWriter, r *http.Request) {
	h.createStaff(w, r, application.StaffMasseur)
}

func (h *ResourceHandler) UpdateMasseur(w http.ResponseWriter, r *http.Request) {
	h.updateStaff(w, r, application.StaffMasseur)
}

func (h *ResourceHandler) ToggleMasseur(w http.ResponseWriter, r *http.Request) {
	h.toggleStaff(w, r, application.StaffMasseur)
}

func (h *ResourceHandler) DeleteMasseur(w http.ResponseWriter, r *http.Request) {
	h.deleteStaff(w, r, application.StaffMasseur)
}

func (h *ResourceHandler) listStaff(w http.ResponseWriter, r *http.Request, kind application.StaffKind) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger := h.log(r.Context(), "ListStaff", "kind", string(kind))
	members, err := h.service.ListStaff(r.Context(), kind)
	if err != nil {
		logger.ErrorContext(r.Context(), "staff list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(members)).InfoContext(r.Context(), "staff listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listStaffResponse{Staff: toStaffDTOs(members)})
}

func (h *ResourceHandler) createStaff(w http.ResponseWriter, r *http.Request, kind application.StaffKind) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req staffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "CreateStaff", "kind", string(kind), "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode staff request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "CreateStaff", "kind", string(kind))
	member, err := h.service.CreateStaff(r.Context(), kind, req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "staff creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("staff_id", member.ID).InfoContext(r.Context(), "staff created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, staffResponse{Staff: toStaffDTO(member)})
}

func (h *ResourceHandler) updateStaff(w http.ResponseWriter, r *http.Request, kind application.StaffKind) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		h.log(r.Context(), "UpdateStaff", "kind", string(kind), "error_kind", "bad_request").ErrorContext(r.Context(), "missing staff id")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidID)
		return
	}

	var req staffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "UpdateStaff", "kind", string(kind), "staff_id", id, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode staff request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "UpdateStaff", "kind", string(kind), "staff_id", id)
	member, err := h.service.UpdateStaff(r.Context(), kind, id, req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "staff update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "staff updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, staffResponse{Staff: toStaffDTO(member)})
}

func (h *ResourceHandler) toggleStaff(w http.ResponseWriter, r *http.Request, kind application.StaffKind) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		h.log(r.Context(), "ToggleStaff", "kind", string(kind), "error_kind", "bad_request").ErrorContext(r.Context(), "missing staff id")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidID)
		return
	}

	logger := h.log(r.Context(), "ToggleStaff", "kind", string(kind), "staff_id", id)
	member, err := h.service.ToggleStaffStatus(r.Context(), kind, id)
	if err != nil {
		logger.ErrorContext(r.Context(), "staff status toggle failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("status", string(member.Status)).InfoContext(r.Context(), "staff status toggled")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, staffResponse{Staff: toStaffDTO(member)})
}

func (h *ResourceHandler) deleteStaff(w http.ResponseWriter, r *http.Request, kind application.StaffKind) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		h.log(r.Context(), "DeleteStaff", "kind", string(kind), "error_kind", "bad_request").ErrorContext(r.Context(), "missing staff id")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidID)
		return
	}

	logger := h.log(r.Context(), "DeleteStaff", "kind", string(kind), "staff_id", id)
	if err := h.service.DeleteStaff(r.Context(), kind, id); err != nil {
		logger.ErrorContext(r.Context(), "staff delete failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "staff deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func (h *ResourceHandler) ListCourts(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger := h.log(r.Context(), "ListCourts")
	courts, err := h.service.ListCourts(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "court list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(courts)).InfoContext(r.Context(), "courts listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listCourtsResponse{Courts: toCourtDTOs(courts)})
}

func (h *ResourceHandler) CreateCourt(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req courtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "CreateCourt", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode court request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "CreateCourt")
	court, err := h.service.CreateCourt(r.Context(), req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "court creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("court_id", court.ID).InfoContext(r.Context(), "court created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, courtResponse{Court: toCourtDTO(court)})
}

func (h *ResourceHandler) UpdateCourt(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		h.log(r.Context(), "UpdateCourt", "error_kind", "bad_request").ErrorContext(r.Context(), "missing court id")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidID)
		return
	}

	var req courtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "UpdateCourt", "court_id", id, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode court request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "UpdateCourt", "court_id", id)
	court, err := h.service.UpdateCourt(r.Context(), id, req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "court update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "court updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, courtResponse{Court: toCourtDTO(court)})
}

func (h *ResourceHandler) CycleCourt(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		h.log(r.Context(), "CycleCourt", "error_kind", "bad_request").ErrorContext(r.Context(), "missing court id")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidID)
		return
	}

	logger := h.log(r.Context(), "CycleCourt", "court_id", id)
	court, err := h.service.CycleCourtStatus(r.Context(), id)
	if err != nil {
		logger.ErrorContext(r.Context(), "court status cycle failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("status", string(court.Status)).InfoContext(r.Context(), "court status cycled")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, courtResponse{Court: toCourtDTO(court)})
}

func (h *ResourceHandler) DeleteCourt(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		h.log(r.Context(), "DeleteCourt", "error_kind", "bad_request").ErrorContext(r.Context(), "missing court id")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidID)
		return
	}

	logger := h.log(r.Context(), "DeleteCourt", "court_id", id)
	if err := h.service.DeleteCourt(r.Context(), id); err != nil {
		logger.ErrorContext(r.Context(), "court delete failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "court deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

type staffRequest struct {
	Name           string   `json:"name"`
	Specialization string   `json:"specialization"`
	Availability   []string `json:"availability"`
}

func (r staffRequest) toInput() application.StaffInput {
	return application.StaffInput{
		Name:           strings.TrimSpace(r.Name),
		Specialization: strings.TrimSpace(r.Specialization),
		Availability:   r.Availability,
	}
}

type courtRequest struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Capacity int    `json:"capacity"`
}

func (r courtRequest) toInput() application.CourtInput {
	return application.CourtInput{
		Name:     strings.TrimSpace(r.Name),
		Type:     strings.TrimSpace(r.Type),
		Capacity: r.Capacity,
	}
}

type staffResponse struct {
	Staff staffDTO `json:"staff"`
}

type listStaffResponse struct {
	Staff []staffDTO `json:"staff"`
}

type courtResponse struct {
	Court courtDTO `json:"court"`
}

type listCourtsResponse struct {
	Courts []courtDTO `json:"courts"`
}

type staffDTO struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Specialization string   `json:"specialization"`
	Availability   []string `json:"availability,omitempty"`
	Status         string   `json:"status"`
}

type courtDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Capacity int    `json:"capacity"`
	Status   string `json:"status"`
}

func toStaffDTO(member application.StaffMember) staffDTO {
	return staffDTO{
		ID:             member.ID,
		Name:           member.Name,
		Specialization: member.Specialization,
		Availability:   member.Availability,
		Status:         string(member.Status),
	}
}

func toStaffDTOs(members []application.StaffMember) []staffDTO {
	if len(members) == 0 {
		return nil
	}
	out := make([]staffDTO, 0, len(members))
	for _, member := range members {
		out = append(out, toStaffDTO(member))
	}
	return out
}

func toCourtDTO(court application.Court) courtDTO {
	return courtDTO{
		ID:       court.ID,
		Name:     court.Name,
		Type:     court.Type,
		Capacity: court.Capacity,
		Status:   string(court.Status),
	}
}

func toCourtDTOs(courts []application.Court) []courtDTO {
	if len(courts) == 0 {
		return nil
	}
	out := make([]courtDTO, 0, len(courts))
	for _, court := range courts {
		out = append(out, toCourtDTO(court))
	}
	return out
}
