package application

import (
	"context"
	"errors"
	"testing"
	"time"
)

type ledgerStub struct {
	memberships *membershipRepoStub
	records     []AttendanceRecord
	appendErr   error
}

func (l *ledgerStub) AppendAttendance(ctx context.Context, record AttendanceRecord) (AttendanceRecord, ClientMembership, error) {
	if l.appendErr != nil {
		return AttendanceRecord{}, ClientMembership{}, l.appendErr
	}
	membership, err := l.memberships.GetClientMembership(ctx, record.ClientMembershipID)
	if err != nil {
		return AttendanceRecord{}, ClientMembership{}, err
	}
	membership.AttendanceCount++
	l.memberships.memberships[membership.ID] = membership
	l.records = append(l.records, record)
	return record, membership, nil
}

func (l *ledgerStub) ListAttendance(ctx context.Context, clientMembershipID string) ([]AttendanceRecord, error) {
	var out []AttendanceRecord
	for _, record := range l.records {
		if record.ClientMembershipID == clientMembershipID {
			out = append(out, record)
		}
	}
	return out, nil
}

func (l *ledgerStub) ListAllAttendance(ctx context.Context) ([]AttendanceRecord, error) {
	out := make([]AttendanceRecord, len(l.records))
	copy(out, l.records)
	return out, nil
}

func newAttendanceService(m ClientMembership) (*AttendanceService, *ledgerStub) {
	repo := &membershipRepoStub{memberships: map[string]ClientMembership{m.ID: m}}
	ledger := &ledgerStub{memberships: repo}
	svc := NewAttendanceService(ledger, repo, func() string { return "att-1" })
	return svc, ledger
}

func validInput(membershipID string) AttendanceInput {
	return AttendanceInput{
		ClientMembershipID: membershipID,
		Date:               date(2025, time.April, 20),
		CheckInTime:        "09:30",
		Facility:           "Main Gym",
	}
}

func TestAttendanceService_AddAttendance(t *testing.T) {
	t.Run("appends a record and increments the counter by one", func(t *testing.T) {
		svc, ledger := newAttendanceService(ClientMembership{ID: "m-1", Status: MembershipActive, AttendanceCount: 7})

		result, err := svc.AddAttendance(context.Background(), validInput("m-1"))
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}

		if result.Record.ID != "att-1" {
			t.Fatalf("expected generated record id, got %q", result.Record.ID)
		}
		if result.Membership.AttendanceCount != 8 {
			t.Fatalf("expected counter 8, got %d", result.Membership.AttendanceCount)
		}
		if len(ledger.records) != 1 {
			t.Fatalf("expected one ledger record, got %d", len(ledger.records))
		}
	})

	t.Run("allows check-ins past the attendance cap", func(t *testing.T) {
		cap := 10
		svc, _ := newAttendanceService(ClientMembership{
			ID:              "m-1",
			Status:          MembershipActive,
			AttendanceCount: 10,
			MaxAttendance:   &cap,
		})

		result, err := svc.AddAttendance(context.Background(), validInput("m-1"))
		if err != nil {
			t.Fatalf("expected cap overage to be permitted, got %v", err)
		}
		if result.Membership.AttendanceCount != 11 {
			t.Fatalf("expected counter 11, got %d", result.Membership.AttendanceCount)
		}
	})

	t.Run("rejects cancelled memberships", func(t *testing.T) {
		svc, _ := newAttendanceService(ClientMembership{ID: "m-1", Status: MembershipCancelled})

		_, err := svc.AddAttendance(context.Background(), validInput("m-1"))
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if _, ok := vErr.FieldErrors["status"]; !ok {
			t.Fatalf("expected status validation error, got %v", vErr.FieldErrors)
		}
	})

	t.Run("propagates ErrNotFound for unknown memberships", func(t *testing.T) {
		svc, _ := newAttendanceService(ClientMembership{ID: "m-1"})

		_, err := svc.AddAttendance(context.Background(), validInput("missing"))
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("validates the time of day fields", func(t *testing.T) {
		svc, _ := newAttendanceService(ClientMembership{ID: "m-1", Status: MembershipActive})

		input := validInput("m-1")
		input.CheckInTime = "25:99"
		_, err := svc.AddAttendance(context.Background(), input)
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if _, ok := vErr.FieldErrors["check_in_time"]; !ok {
			t.Fatalf("expected check_in_time validation error, got %v", vErr.FieldErrors)
		}

		input = validInput("m-1")
		out := "08:00"
		input.CheckOutTime = &out
		_, err = svc.AddAttendance(context.Background(), input)
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if _, ok := vErr.FieldErrors["check_out_time"]; !ok {
			t.Fatalf("expected check_out_time validation error, got %v", vErr.FieldErrors)
		}
	})
}

func TestAttendanceService_ListAttendance(t *testing.T) {
	svc, ledger := newAttendanceService(ClientMembership{ID: "m-1", Status: MembershipActive})
	ledger.records = []AttendanceRecord{
		{ID: "a-2", ClientMembershipID: "m-1", Date: date(2025, time.April, 21), CheckInTime: "10:00"},
		{ID: "a-1", ClientMembershipID: "m-1", Date: date(2025, time.April, 20), CheckInTime: "18:00"},
		{ID: "a-3", ClientMembershipID: "m-1", Date: date(2025, time.April, 20), CheckInTime: "07:00"},
		{ID: "other", ClientMembershipID: "m-2", Date: date(2025, time.April, 19), CheckInTime: "08:00"},
	}

	records, err := svc.ListAttendance(context.Background(), "m-1")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	for i, want := range []string{"a-3", "a-1", "a-2"} {
		if records[i].ID != want {
			t.Fatalf("expected %q at position %d, got %q", want, i, records[i].ID)
		}
	}
}
