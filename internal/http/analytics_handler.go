package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/example/gym-admin/internal/application"
)

type analyticsService interface {
	AttendanceAnalytics(ctx context.Context, from, to time.Time) (application.AttendanceAnalytics, error)
	SalesAnalytics(ctx context.Context, from, to time.Time) (application.SalesAnalytics, error)
}

type AnalyticsHandler struct {
	service   analyticsService
	responder responder
	logger    *slog.Logger
}

func NewAnalyticsHandler(service analyticsService, logger *slog.Logger) *AnalyticsHandler {
	base := defaultLogger(logger)
	return &AnalyticsHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *AnalyticsHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "AnalyticsHandler", operation, attrs...)
}

// Attendance aggregates the ledger over an optional from/to date range.
func (h *AnalyticsHandler) Attendance(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	from, to, err := rangeFromQuery(r)
	if err != nil {
		h.log(r.Context(), "Attendance", "error_kind", "bad_request").ErrorContext(r.Context(), "invalid analytics range", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, err)
		return
	}

	logger := h.log(r.Context(), "Attendance")
	analytics, err := h.service.AttendanceAnalytics(r.Context(), from, to)
	if err != nil {
		logger.ErrorContext(r.Context(), "attendance analytics failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("total_visits", analytics.TotalVisits).InfoContext(r.Context(), "attendance analytics served")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, attendanceAnalyticsResponse{
		TotalVisits: analytics.TotalVisits,
		ByDay:       toChartPointDTOs(analytics.ByDay),
		ByHour:      toChartPointDTOs(analytics.ByHour),
		ByFacility:  toChartPointDTOs(analytics.ByFacility),
	})
}

// Sales aggregates membership revenue over an optional from/to date range.
func (h *AnalyticsHandler) Sales(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	from, to, err := rangeFromQuery(r)
	if err != nil {
		h.log(r.Context(), "Sales", "error_kind", "bad_request").ErrorContext(r.Context(), "invalid analytics range", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, err)
		return
	}

	logger := h.log(r.Context(), "Sales")
	analytics, err := h.service.SalesAnalytics(r.Context(), from, to)
	if err != nil {
		logger.ErrorContext(r.Context(), "sales analytics failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("total_revenue", analytics.TotalRevenue).InfoContext(r.Context(), "sales analytics served")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, salesAnalyticsResponse{
		TotalRevenue:     analytics.TotalRevenue,
		ByMembershipType: toChartPointDTOs(analytics.ByMembershipType),
		MonthlyTrend:     toChartPointDTOs(analytics.MonthlyTrend),
	})
}

// rangeFromQuery reads the optional from/to date query parameters. Missing
// parameters leave the corresponding bound open.
func rangeFromQuery(r *http.Request) (time.Time, time.Time, error) {
	from, err := parseDate(r.URL.Query().Get("from"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := parseDate(r.URL.Query().Get("to"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}

type chartPointDTO struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

type attendanceAnalyticsResponse struct {
	TotalVisits int             `json:"totalVisits"`
	ByDay       []chartPointDTO `json:"byDay,omitempty"`
	ByHour      []chartPointDTO `json:"byHour,omitempty"`
	ByFacility  []chartPointDTO `json:"byFacility,omitempty"`
}

type salesAnalyticsResponse struct {
	TotalRevenue     float64         `json:"totalRevenue"`
	ByMembershipType []chartPointDTO `json:"byMembershipType,omitempty"`
	MonthlyTrend     []chartPointDTO `json:"monthlyTrend,omitempty"`
}

func toChartPointDTOs(points []application.ChartPoint) []chartPointDTO {
	if len(points) == 0 {
		return nil
	}
	out := make([]chartPointDTO, 0, len(points))
	for _, point := range points {
		out = append(out, chartPointDTO{Name: point.Name, Value: point.Value})
	}
	return out
}
