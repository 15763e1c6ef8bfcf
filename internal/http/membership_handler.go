package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/example/gym-admin/internal/application"
)

type membershipService interface {
	ListMembershipTypes(ctx context.Context) ([]application.MembershipType, error)
	CreateMembershipType(ctx context.Context, input application.MembershipTypeInput) (application.MembershipType, error)
	UpdateMembershipType(ctx context.Context, id string, input application.MembershipTypeInput) (application.MembershipType, error)
	ListClientMemberships(ctx context.Context) ([]application.ClientMembership, error)
	AssignMembership(ctx context.Context, params application.AssignMembershipParams) (application.ClientMembership, error)
	FreezeMembership(ctx context.Context, params application.FreezeMembershipParams) (application.ClientMembership, error)
	UnfreezeMembership(ctx context.Context, membershipID string) (application.ClientMembership, error)
	ProlongMembership(ctx context.Context, params application.ProlongMembershipParams) (application.ClientMembership, error)
	CancelMembership(ctx context.Context, membershipID, reason string) (application.ClientMembership, error)
}

type attendanceService interface {
	AddAttendance(ctx context.Context, input application.AttendanceInput) (application.AttendanceResult, error)
	ListAttendance(ctx context.Context, clientMembershipID string) ([]application.AttendanceRecord, error)
}

type MembershipHandler struct {
	service    membershipService
	attendance attendanceService
	responder  responder
	logger     *slog.Logger
	now        func() time.Time
}

func NewMembershipHandler(service membershipService, attendance attendanceService, logger *slog.Logger) *MembershipHandler {
	base := defaultLogger(logger)
	return &MembershipHandler{
		service:    service,
		attendance: attendance,
		responder:  newResponder(base),
		logger:     base,
		now:        time.Now,
	}
}

func (h *MembershipHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "MembershipHandler", operation, attrs...)
}

func (h *MembershipHandler) ListTypes(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger := h.log(r.Context(), "ListTypes")
	types, err := h.service.ListMembershipTypes(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "membership type list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(types)).InfoContext(r.Context(), "membership types listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listMembershipTypesResponse{MembershipTypes: toMembershipTypeDTOs(types)})
}

func (h *MembershipHandler) CreateType(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req membershipTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "CreateType", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode membership type request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "CreateType")
	membershipType, err := h.service.CreateMembershipType(r.Context(), req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "membership type creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("membership_type_id", membershipType.ID).InfoContext(r.Context(), "membership type created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, membershipTypeResponse{MembershipType: toMembershipTypeDTO(membershipType)})
}

func (h *MembershipHandler) UpdateType(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		h.log(r.Context(), "UpdateType", "error_kind", "bad_request").ErrorContext(r.Context(), "missing membership type id")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidID)
		return
	}

	var req membershipTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "UpdateType", "membership_type_id", id, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode membership type request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "UpdateType", "membership_type_id", id)
	membershipType, err := h.service.UpdateMembershipType(r.Context(), id, req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "membership type update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "membership type updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, membershipTypeResponse{MembershipType: toMembershipTypeDTO(membershipType)})
}

func (h *MembershipHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger := h.log(r.Context(), "List")
	memberships, err := h.service.ListClientMemberships(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "membership list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(memberships)).InfoContext(r.Context(), "memberships listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listMembershipsResponse{Memberships: h.toMembershipDTOs(memberships)})
}

func (h *MembershipHandler) Assign(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req assignMembershipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Assign", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode assignment request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	params, err := req.toParams()
	if err != nil {
		h.log(r.Context(), "Assign", "error_kind", "bad_request").ErrorContext(r.Context(), "invalid assignment dates", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, err)
		return
	}

	logger := h.log(r.Context(), "Assign", "client_id", params.ClientID, "membership_type_id", params.MembershipTypeID)
	membership, err := h.service.AssignMembership(r.Context(), params)
	if err != nil {
		logger.ErrorContext(r.Context(), "membership assignment failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("membership_id", membership.ID).InfoContext(r.Context(), "membership assigned")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, membershipResponse{Membership: h.toMembershipDTO(membership)})
}

func (h *MembershipHandler) Freeze(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, "Freeze", func(ctx context.Context, id string, req lifecycleRequest) (application.ClientMembership, error) {
		return h.service.FreezeMembership(ctx, application.FreezeMembershipParams{
			MembershipID: id,
			Days:         req.Days,
			Reason:       req.Reason,
		})
	})
}

func (h *MembershipHandler) Unfreeze(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, "Unfreeze", func(ctx context.Context, id string, _ lifecycleRequest) (application.ClientMembership, error) {
		return h.service.UnfreezeMembership(ctx, id)
	})
}

func (h *MembershipHandler) Prolong(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, "Prolong", func(ctx context.Context, id string, req lifecycleRequest) (application.ClientMembership, error) {
		return h.service.ProlongMembership(ctx, application.ProlongMembershipParams{
			MembershipID: id,
			Days:         req.Days,
			Reason:       req.Reason,
		})
	})
}

func (h *MembershipHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, "Cancel", func(ctx context.Context, id string, req lifecycleRequest) (application.ClientMembership, error) {
		return h.service.CancelMembership(ctx, id, req.Reason)
	})
}

// lifecycle factors the shared shape of the four membership state commands.
// The request body is optional for commands that take no arguments.
func (h *MembershipHandler) lifecycle(w http.ResponseWriter, r *http.Request, operation string, apply func(context.Context, string, lifecycleRequest) (application.ClientMembership, error)) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		h.log(r.Context(), operation, "error_kind", "bad_request").ErrorContext(r.Context(), "missing membership id")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidID)
		return
	}

	var req lifecycleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.log(r.Context(), operation, "membership_id", id, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode lifecycle request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), operation, "membership_id", id)
	membership, err := apply(r.Context(), id, req)
	if err != nil {
		logger.ErrorContext(r.Context(), "lifecycle command failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("status", string(membership.Status)).InfoContext(r.Context(), "lifecycle command applied")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, membershipResponse{Membership: h.toMembershipDTO(membership)})
}

func (h *MembershipHandler) ListAttendance(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.attendance == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		h.log(r.Context(), "ListAttendance", "error_kind", "bad_request").ErrorContext(r.Context(), "missing membership id")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidID)
		return
	}

	logger := h.log(r.Context(), "ListAttendance", "membership_id", id)
	records, err := h.attendance.ListAttendance(r.Context(), id)
	if err != nil {
		logger.ErrorContext(r.Context(), "attendance list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(records)).InfoContext(r.Context(), "attendance listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listAttendanceResponse{Attendance: toAttendanceDTOs(records)})
}

func (h *MembershipHandler) AddAttendance(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.attendance == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		h.log(r.Context(), "AddAttendance", "error_kind", "bad_request").ErrorContext(r.Context(), "missing membership id")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidID)
		return
	}

	var req attendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "AddAttendance", "membership_id", id, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode attendance request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	input, err := req.toInput(id)
	if err != nil {
		h.log(r.Context(), "AddAttendance", "membership_id", id, "error_kind", "bad_request").ErrorContext(r.Context(), "invalid attendance date", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, err)
		return
	}

	logger := h.log(r.Context(), "AddAttendance", "membership_id", id)
	result, err := h.attendance.AddAttendance(r.Context(), input)
	if err != nil {
		logger.ErrorContext(r.Context(), "attendance append failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("attendance_id", result.Record.ID, "attendance_count", result.Membership.AttendanceCount).InfoContext(r.Context(), "attendance recorded")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, attendanceResponse{
		Record:     toAttendanceDTO(result.Record),
		Membership: h.toMembershipDTO(result.Membership),
	})
}

type membershipTypeRequest struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	DurationDays  int      `json:"durationDays"`
	Features      []string `json:"features"`
	MaxAttendance *int     `json:"maxAttendance"`
	IsPopular     bool     `json:"isPopular"`
}

func (r membershipTypeRequest) toInput() application.MembershipTypeInput {
	return application.MembershipTypeInput{
		Name:          strings.TrimSpace(r.Name),
		Description:   strings.TrimSpace(r.Description),
		Price:         r.Price,
		DurationDays:  r.DurationDays,
		Features:      r.Features,
		MaxAttendance: r.MaxAttendance,
		IsPopular:     r.IsPopular,
	}
}

type assignMembershipRequest struct {
	ClientID         string `json:"clientId"`
	MembershipTypeID string `json:"membershipTypeId"`
	StartDate        string `json:"startDate"`
	EndDate          string `json:"endDate"`
	Notes            string `json:"notes"`
}

func (r assignMembershipRequest) toParams() (application.AssignMembershipParams, error) {
	start, err := parseDate(r.StartDate)
	if err != nil {
		return application.AssignMembershipParams{}, err
	}
	end, err := parseDate(r.EndDate)
	if err != nil {
		return application.AssignMembershipParams{}, err
	}
	return application.AssignMembershipParams{
		ClientID:         strings.TrimSpace(r.ClientID),
		MembershipTypeID: strings.TrimSpace(r.MembershipTypeID),
		StartDate:        start,
		EndDate:          end,
		Notes:            r.Notes,
	}, nil
}

type lifecycleRequest struct {
	Days   int    `json:"days"`
	Reason string `json:"reason"`
}

type attendanceRequest struct {
	Date         string  `json:"date"`
	CheckInTime  string  `json:"checkInTime"`
	CheckOutTime *string `json:"checkOutTime"`
	Facility     string  `json:"facility"`
	Notes        *string `json:"notes"`
}

func (r attendanceRequest) toInput(membershipID string) (application.AttendanceInput, error) {
	date, err := parseDate(r.Date)
	if err != nil {
		return application.AttendanceInput{}, err
	}
	return application.AttendanceInput{
		ClientMembershipID: membershipID,
		Date:               date,
		CheckInTime:        strings.TrimSpace(r.CheckInTime),
		CheckOutTime:       r.CheckOutTime,
		Facility:           strings.TrimSpace(r.Facility),
		Notes:              r.Notes,
	}, nil
}

type membershipTypeResponse struct {
	MembershipType membershipTypeDTO `json:"membershipType"`
}

type listMembershipTypesResponse struct {
	MembershipTypes []membershipTypeDTO `json:"membershipTypes"`
}

type membershipResponse struct {
	Membership membershipDTO `json:"membership"`
}

type listMembershipsResponse struct {
	Memberships []membershipDTO `json:"memberships"`
}

type attendanceResponse struct {
	Record     attendanceDTO `json:"record"`
	Membership membershipDTO `json:"membership"`
}

type listAttendanceResponse struct {
	Attendance []attendanceDTO `json:"attendance"`
}

type membershipTypeDTO struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	DurationDays  int      `json:"durationDays"`
	Features      []string `json:"features"`
	MaxAttendance *int     `json:"maxAttendance,omitempty"`
	IsPopular     bool     `json:"isPopular"`
}

type freezeRecordDTO struct {
	StartDate string  `json:"startDate"`
	EndDate   *string `json:"endDate,omitempty"`
	Reason    string  `json:"reason"`
}

type prolongRecordDTO struct {
	Date   string `json:"date"`
	Days   int    `json:"days"`
	Reason string `json:"reason"`
}

type membershipDTO struct {
	ID               string            `json:"id"`
	ClientID         string            `json:"clientId"`
	MembershipTypeID string            `json:"membershipTypeId"`
	MembershipName   string            `json:"membershipName"`
	StartDate        string            `json:"startDate"`
	EndDate          string            `json:"endDate"`
	Status           string            `json:"status"`
	AttendanceCount  int               `json:"attendanceCount"`
	MaxAttendance    *int              `json:"maxAttendance,omitempty"`
	FreezeHistory    []freezeRecordDTO `json:"freezeHistory,omitempty"`
	ProlongHistory   []prolongRecordDTO `json:"prolongHistory,omitempty"`
	Notes            string            `json:"notes,omitempty"`
}

type attendanceDTO struct {
	ID                 string  `json:"id"`
	ClientMembershipID string  `json:"clientMembershipId"`
	Date               string  `json:"date"`
	CheckInTime        string  `json:"checkInTime"`
	CheckOutTime       *string `json:"checkOutTime,omitempty"`
	Facility           string  `json:"facility"`
	Notes              *string `json:"notes,omitempty"`
}

func toMembershipTypeDTO(t application.MembershipType) membershipTypeDTO {
	return membershipTypeDTO{
		ID:            t.ID,
		Name:          t.Name,
		Description:   t.Description,
		Price:         t.Price,
		DurationDays:  t.DurationDays,
		Features:      t.Features,
		MaxAttendance: t.MaxAttendance,
		IsPopular:     t.IsPopular,
	}
}

func toMembershipTypeDTOs(types []application.MembershipType) []membershipTypeDTO {
	if len(types) == 0 {
		return nil
	}
	out := make([]membershipTypeDTO, 0, len(types))
	for _, t := range types {
		out = append(out, toMembershipTypeDTO(t))
	}
	return out
}

func (h *MembershipHandler) toMembershipDTO(m application.ClientMembership) membershipDTO {
	now := time.Now()
	if h != nil && h.now != nil {
		now = h.now()
	}
	dto := membershipDTO{
		ID:               m.ID,
		ClientID:         m.ClientID,
		MembershipTypeID: m.MembershipTypeID,
		MembershipName:   m.MembershipName,
		StartDate:        formatDate(m.StartDate),
		EndDate:          formatDate(m.EndDate),
		Status:           string(application.EffectiveStatus(m, now)),
		AttendanceCount:  m.AttendanceCount,
		MaxAttendance:    m.MaxAttendance,
		Notes:            m.Notes,
	}
	for _, record := range m.FreezeHistory {
		dto.FreezeHistory = append(dto.FreezeHistory, freezeRecordDTO{
			StartDate: formatDate(record.StartDate),
			EndDate:   formatDatePtr(record.EndDate),
			Reason:    record.Reason,
		})
	}
	for _, record := range m.ProlongHistory {
		dto.ProlongHistory = append(dto.ProlongHistory, prolongRecordDTO{
			Date:   formatDate(record.Date),
			Days:   record.Days,
			Reason: record.Reason,
		})
	}
	return dto
}

func (h *MembershipHandler) toMembershipDTOs(memberships []application.ClientMembership) []membershipDTO {
	if len(memberships) == 0 {
		return nil
	}
	out := make([]membershipDTO, 0, len(memberships))
	for _, m := range memberships {
		out = append(out, h.toMembershipDTO(m))
	}
	return out
}

func toAttendanceDTO(record application.AttendanceRecord) attendanceDTO {
	return attendanceDTO{
		ID:                 record.ID,
		ClientMembershipID: record.ClientMembershipID,
		Date:               formatDate(record.Date),
		CheckInTime:        record.CheckInTime,
		CheckOutTime:       record.CheckOutTime,
		Facility:           record.Facility,
		Notes:              record.Notes,
	}
}

func toAttendanceDTOs(records []application.AttendanceRecord) []attendanceDTO {
	if len(records) == 0 {
		return nil
	}
	out := make([]attendanceDTO, 0, len(records))
	for _, record := range records {
		out = append(out, toAttendanceDTO(record))
	}
	return out
}
