package application

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"
)

// AnalyticsService derives reporting aggregates from the attendance ledger and
// the membership registry. It holds no state of its own.
type AnalyticsService struct {
	ledger      AttendanceLedger
	memberships ClientMembershipRepository
	types       MembershipTypeRepository
	logger      *slog.Logger
}

// NewAnalyticsService constructs an analytics service with the provided dependencies.
func NewAnalyticsService(ledger AttendanceLedger, memberships ClientMembershipRepository, types MembershipTypeRepository) *AnalyticsService {
	return NewAnalyticsServiceWithLogger(ledger, memberships, types, nil)
}

// NewAnalyticsServiceWithLogger constructs an analytics service with a specified logger.
func NewAnalyticsServiceWithLogger(ledger AttendanceLedger, memberships ClientMembershipRepository, types MembershipTypeRepository, logger *slog.Logger) *AnalyticsService {
	return &AnalyticsService{ledger: ledger, memberships: memberships, types: types, logger: defaultLogger(logger)}
}

// AttendanceAnalytics aggregates ledger entries whose date falls within
// [from, to] inclusive. Zero bounds leave that side of the range open.
func (s *AnalyticsService) AttendanceAnalytics(ctx context.Context, from, to time.Time) (AttendanceAnalytics, error) {
	if s == nil || s.ledger == nil {
		return AttendanceAnalytics{}, fmt.Errorf("attendance ledger not configured")
	}
	if err := validateRange(from, to); err != nil {
		return AttendanceAnalytics{}, err
	}

	records, err := s.ledger.ListAllAttendance(ctx)
	if err != nil {
		return AttendanceAnalytics{}, mapRepoError(err)
	}

	byDay := map[string]float64{}
	byHour := map[string]float64{}
	byFacility := map[string]float64{}
	total := 0
	for _, rec := range records {
		if !inRange(rec.Date, from, to) {
			continue
		}
		total++
		byDay[rec.Date.Weekday().String()]++
		if len(rec.CheckInTime) >= 2 {
			byHour[rec.CheckInTime[:2]+":00"]++
		}
		byFacility[rec.Facility]++
	}

	return AttendanceAnalytics{
		TotalVisits: total,
		ByDay:       weekdayPoints(byDay),
		ByHour:      sortedPoints(byHour),
		ByFacility:  sortedPoints(byFacility),
	}, nil
}

// SalesAnalytics totals the price of memberships whose start date falls within
// [from, to] inclusive, grouped by membership type and by calendar month.
// Prices are resolved from the current type catalog; memberships whose type no
// longer exists contribute zero revenue but still appear in the type grouping.
func (s *AnalyticsService) SalesAnalytics(ctx context.Context, from, to time.Time) (SalesAnalytics, error) {
	if s == nil || s.memberships == nil || s.types == nil {
		return SalesAnalytics{}, fmt.Errorf("membership repositories not configured")
	}
	if err := validateRange(from, to); err != nil {
		return SalesAnalytics{}, err
	}

	memberships, err := s.memberships.ListClientMemberships(ctx)
	if err != nil {
		return SalesAnalytics{}, mapRepoError(err)
	}
	types, err := s.types.ListMembershipTypes(ctx)
	if err != nil {
		return SalesAnalytics{}, mapRepoError(err)
	}

	priceByType := make(map[string]float64, len(types))
	for _, t := range types {
		priceByType[t.ID] = t.Price
	}

	byType := map[string]float64{}
	byMonth := map[string]float64{}
	total := 0.0
	for _, m := range memberships {
		if !inRange(m.StartDate, from, to) {
			continue
		}
		price := priceByType[m.MembershipTypeID]
		total += price
		byType[m.MembershipName] += price
		byMonth[m.StartDate.Format("2006-01")] += price
	}

	return SalesAnalytics{
		TotalRevenue:     total,
		ByMembershipType: sortedPoints(byType),
		MonthlyTrend:     sortedPoints(byMonth),
	}, nil
}

func validateRange(from, to time.Time) error {
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		vErr := &ValidationError{}
		vErr.add("to", "end of range must not be before start")
		return vErr
	}
	return nil
}

func inRange(t, from, to time.Time) bool {
	if !from.IsZero() && t.Before(from) {
		return false
	}
	if !to.IsZero() && t.After(to) {
		return false
	}
	return true
}

// sortedPoints flattens a counter map into chart points ordered by name so
// repeated calls over the same data produce identical series.
func sortedPoints(counts map[string]float64) []ChartPoint {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	points := make([]ChartPoint, 0, len(names))
	for _, name := range names {
		points = append(points, ChartPoint{Name: name, Value: counts[name]})
	}
	return points
}

// weekdayPoints orders day-of-week counters Monday through Sunday, skipping
// days with no visits.
func weekdayPoints(counts map[string]float64) []ChartPoint {
	order := []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
		time.Friday, time.Saturday, time.Sunday,
	}
	points := make([]ChartPoint, 0, len(counts))
	for _, day := range order {
		if value, ok := counts[day.String()]; ok {
			points = append(points, ChartPoint{Name: day.String(), Value: value})
		}
	}
	return points
}
