package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/gym-admin/internal/persistence"
)

type typeRepoStub struct {
	types     map[string]MembershipType
	created   MembershipType
	createErr error
	updated   MembershipType
	updateErr error
	listErr   error
}

func (r *typeRepoStub) CreateMembershipType(ctx context.Context, membershipType MembershipType) (MembershipType, error) {
	if r.createErr != nil {
		return MembershipType{}, r.createErr
	}
	r.created = membershipType
	return membershipType, nil
}

func (r *typeRepoStub) UpdateMembershipType(ctx context.Context, membershipType MembershipType) (MembershipType, error) {
	if r.updateErr != nil {
		return MembershipType{}, r.updateErr
	}
	r.updated = membershipType
	return membershipType, nil
}

func (r *typeRepoStub) GetMembershipType(ctx context.Context, id string) (MembershipType, error) {
	if t, ok := r.types[id]; ok {
		return t, nil
	}
	return MembershipType{}, persistence.ErrNotFound
}

func (r *typeRepoStub) ListMembershipTypes(ctx context.Context) ([]MembershipType, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]MembershipType, 0, len(r.types))
	for _, t := range r.types {
		out = append(out, t)
	}
	return out, nil
}

type membershipRepoStub struct {
	memberships map[string]ClientMembership
	created     ClientMembership
	updated     ClientMembership
	createErr   error
	updateErr   error
}

func (r *membershipRepoStub) CreateClientMembership(ctx context.Context, membership ClientMembership) (ClientMembership, error) {
	if r.createErr != nil {
		return ClientMembership{}, r.createErr
	}
	r.created = membership
	return membership, nil
}

func (r *membershipRepoStub) UpdateClientMembership(ctx context.Context, membership ClientMembership) (ClientMembership, error) {
	if r.updateErr != nil {
		return ClientMembership{}, r.updateErr
	}
	r.updated = membership
	if r.memberships != nil {
		r.memberships[membership.ID] = membership
	}
	return membership, nil
}

func (r *membershipRepoStub) GetClientMembership(ctx context.Context, id string) (ClientMembership, error) {
	if m, ok := r.memberships[id]; ok {
		return m, nil
	}
	return ClientMembership{}, persistence.ErrNotFound
}

func (r *membershipRepoStub) ListClientMemberships(ctx context.Context) ([]ClientMembership, error) {
	out := make([]ClientMembership, 0, len(r.memberships))
	for _, m := range r.memberships {
		out = append(out, m)
	}
	return out, nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newLifecycleService(m ClientMembership, now time.Time) (*MembershipService, *membershipRepoStub) {
	repo := &membershipRepoStub{memberships: map[string]ClientMembership{m.ID: m}}
	svc := NewMembershipService(&typeRepoStub{}, repo, func() string { return "generated-id" }, func() time.Time { return now })
	return svc, repo
}

func TestMembershipService_AssignMembership(t *testing.T) {
	t.Run("rejects unknown membership types", func(t *testing.T) {
		svc := NewMembershipService(&typeRepoStub{}, &membershipRepoStub{}, func() string { return "m-1" }, time.Now)

		_, err := svc.AssignMembership(context.Background(), AssignMembershipParams{
			ClientID:         "client-1",
			MembershipTypeID: "missing",
			StartDate:        date(2025, time.April, 1),
			EndDate:          date(2025, time.May, 1),
		})

		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("validates required fields", func(t *testing.T) {
		svc := NewMembershipService(&typeRepoStub{}, &membershipRepoStub{}, nil, nil)

		_, err := svc.AssignMembership(context.Background(), AssignMembershipParams{})

		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		for _, field := range []string{"client_id", "membership_type_id", "start_date", "end_date"} {
			if _, ok := vErr.FieldErrors[field]; !ok {
				t.Fatalf("expected %s validation error, got %v", field, vErr.FieldErrors)
			}
		}
	})

	t.Run("rejects an end date before the start date", func(t *testing.T) {
		svc := NewMembershipService(&typeRepoStub{}, &membershipRepoStub{}, nil, nil)

		_, err := svc.AssignMembership(context.Background(), AssignMembershipParams{
			ClientID:         "client-1",
			MembershipTypeID: "5",
			StartDate:        date(2025, time.May, 1),
			EndDate:          date(2025, time.April, 1),
		})

		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if _, ok := vErr.FieldErrors["end_date"]; !ok {
			t.Fatalf("expected end_date validation error, got %v", vErr.FieldErrors)
		}
	})

	t.Run("snapshots the type name and attendance cap", func(t *testing.T) {
		cap := 10
		types := &typeRepoStub{types: map[string]MembershipType{
			"5": {ID: "5", Name: "Class Pass", Price: 99.99, DurationDays: 30, MaxAttendance: &cap},
		}}
		repo := &membershipRepoStub{}
		svc := NewMembershipService(types, repo, func() string { return "m-1" }, time.Now)

		membership, err := svc.AssignMembership(context.Background(), AssignMembershipParams{
			ClientID:         "client-1",
			MembershipTypeID: "5",
			StartDate:        date(2025, time.April, 1),
			EndDate:          date(2025, time.May, 1),
			Notes:            "  onboarding  ",
		})
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}

		if membership.ID != "m-1" {
			t.Fatalf("expected generated id, got %q", membership.ID)
		}
		if membership.MembershipName != "Class Pass" {
			t.Fatalf("expected snapshotted name, got %q", membership.MembershipName)
		}
		if membership.MaxAttendance == nil || *membership.MaxAttendance != 10 {
			t.Fatalf("expected snapshotted cap 10, got %v", membership.MaxAttendance)
		}
		if membership.Status != MembershipActive {
			t.Fatalf("expected active status, got %q", membership.Status)
		}
		if membership.AttendanceCount != 0 {
			t.Fatalf("expected zero attendance, got %d", membership.AttendanceCount)
		}
		if membership.Notes != "onboarding" {
			t.Fatalf("expected trimmed notes, got %q", membership.Notes)
		}
	})
}

func TestMembershipService_FreezeMembership(t *testing.T) {
	now := date(2025, time.April, 10)

	t.Run("extends the end date and records an open freeze entry", func(t *testing.T) {
		svc, repo := newLifecycleService(ClientMembership{
			ID:        "m-1",
			Status:    MembershipActive,
			StartDate: date(2025, time.April, 1),
			EndDate:   date(2025, time.May, 1),
		}, now)

		frozen, err := svc.FreezeMembership(context.Background(), FreezeMembershipParams{
			MembershipID: "m-1",
			Days:         5,
			Reason:       "vacation",
		})
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}

		if frozen.Status != MembershipFrozen {
			t.Fatalf("expected frozen status, got %q", frozen.Status)
		}
		if want := date(2025, time.May, 6); !frozen.EndDate.Equal(want) {
			t.Fatalf("expected end date %v, got %v", want, frozen.EndDate)
		}
		if len(frozen.FreezeHistory) != 1 {
			t.Fatalf("expected one freeze entry, got %d", len(frozen.FreezeHistory))
		}
		entry := frozen.FreezeHistory[0]
		if entry.EndDate != nil {
			t.Fatalf("expected open freeze entry, got end %v", entry.EndDate)
		}
		if entry.Reason != "vacation" || !entry.StartDate.Equal(now) {
			t.Fatalf("unexpected freeze entry %+v", entry)
		}
		if !repo.updated.EndDate.Equal(frozen.EndDate) {
			t.Fatalf("expected updated membership persisted")
		}
	})

	t.Run("rejects freezing an already frozen membership", func(t *testing.T) {
		svc, _ := newLifecycleService(ClientMembership{ID: "m-1", Status: MembershipFrozen, EndDate: date(2025, time.May, 1)}, now)

		_, err := svc.FreezeMembership(context.Background(), FreezeMembershipParams{MembershipID: "m-1", Days: 5, Reason: "again"})

		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if _, ok := vErr.FieldErrors["status"]; !ok {
			t.Fatalf("expected status validation error, got %v", vErr.FieldErrors)
		}
	})

	t.Run("requires positive days and a reason", func(t *testing.T) {
		svc, _ := newLifecycleService(ClientMembership{ID: "m-1", Status: MembershipActive, EndDate: date(2025, time.May, 1)}, now)

		_, err := svc.FreezeMembership(context.Background(), FreezeMembershipParams{MembershipID: "m-1", Days: 0, Reason: "  "})

		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if _, ok := vErr.FieldErrors["days"]; !ok {
			t.Fatalf("expected days validation error, got %v", vErr.FieldErrors)
		}
		if _, ok := vErr.FieldErrors["reason"]; !ok {
			t.Fatalf("expected reason validation error, got %v", vErr.FieldErrors)
		}
	})

	t.Run("propagates ErrNotFound for unknown memberships", func(t *testing.T) {
		svc, _ := newLifecycleService(ClientMembership{ID: "m-1"}, now)

		_, err := svc.FreezeMembership(context.Background(), FreezeMembershipParams{MembershipID: "missing", Days: 5, Reason: "vacation"})
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestMembershipService_UnfreezeMembership(t *testing.T) {
	t.Run("keeps the freeze extension and closes the open entry", func(t *testing.T) {
		// Class Pass, 2025-04-01 through 2025-05-01, frozen five days into April.
		freezeStart := date(2025, time.April, 10)
		unfreezeAt := date(2025, time.April, 12)
		svc, _ := newLifecycleService(ClientMembership{
			ID:            "m-1",
			Status:        MembershipFrozen,
			StartDate:     date(2025, time.April, 1),
			EndDate:       date(2025, time.May, 6),
			FreezeHistory: []FreezeRecord{{StartDate: freezeStart, Reason: "vacation"}},
		}, unfreezeAt)

		active, err := svc.UnfreezeMembership(context.Background(), "m-1")
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}

		if active.Status != MembershipActive {
			t.Fatalf("expected active status, got %q", active.Status)
		}
		if want := date(2025, time.May, 6); !active.EndDate.Equal(want) {
			t.Fatalf("expected end date to stay %v, got %v", want, active.EndDate)
		}
		if len(active.FreezeHistory) != 1 {
			t.Fatalf("expected one freeze entry, got %d", len(active.FreezeHistory))
		}
		closed := active.FreezeHistory[0]
		if closed.EndDate == nil || !closed.EndDate.Equal(unfreezeAt) {
			t.Fatalf("expected freeze entry closed at %v, got %v", unfreezeAt, closed.EndDate)
		}
	})

	t.Run("rejects cancelled memberships", func(t *testing.T) {
		svc, _ := newLifecycleService(ClientMembership{ID: "m-1", Status: MembershipCancelled}, date(2025, time.April, 12))

		_, err := svc.UnfreezeMembership(context.Background(), "m-1")
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})
}

func TestMembershipService_ProlongMembership(t *testing.T) {
	now := date(2025, time.April, 20)

	t.Run("extends the end date and appends one history record", func(t *testing.T) {
		svc, _ := newLifecycleService(ClientMembership{
			ID:      "m-1",
			Status:  MembershipActive,
			EndDate: date(2025, time.May, 1),
		}, now)

		prolonged, err := svc.ProlongMembership(context.Background(), ProlongMembershipParams{
			MembershipID: "m-1",
			Days:         14,
			Reason:       "loyalty bonus",
		})
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}

		if want := date(2025, time.May, 15); !prolonged.EndDate.Equal(want) {
			t.Fatalf("expected end date %v, got %v", want, prolonged.EndDate)
		}
		if prolonged.Status != MembershipActive {
			t.Fatalf("expected status unchanged, got %q", prolonged.Status)
		}
		if len(prolonged.ProlongHistory) != 1 {
			t.Fatalf("expected one prolong record, got %d", len(prolonged.ProlongHistory))
		}
		record := prolonged.ProlongHistory[0]
		if record.Days != 14 || record.Reason != "loyalty bonus" || !record.Date.Equal(now) {
			t.Fatalf("unexpected prolong record %+v", record)
		}
	})

	t.Run("prolonging keeps a frozen membership frozen", func(t *testing.T) {
		svc, _ := newLifecycleService(ClientMembership{ID: "m-1", Status: MembershipFrozen, EndDate: date(2025, time.May, 1)}, now)

		prolonged, err := svc.ProlongMembership(context.Background(), ProlongMembershipParams{MembershipID: "m-1", Days: 7, Reason: "gift"})
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if prolonged.Status != MembershipFrozen {
			t.Fatalf("expected frozen status preserved, got %q", prolonged.Status)
		}
	})
}

func TestMembershipService_CancelMembership(t *testing.T) {
	now := date(2025, time.April, 20)

	t.Run("requires a reason", func(t *testing.T) {
		svc, _ := newLifecycleService(ClientMembership{ID: "m-1", Status: MembershipActive}, now)

		_, err := svc.CancelMembership(context.Background(), "m-1", "   ")

		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if _, ok := vErr.FieldErrors["reason"]; !ok {
			t.Fatalf("expected reason validation error, got %v", vErr.FieldErrors)
		}
	})

	t.Run("cancellation is terminal", func(t *testing.T) {
		svc, repo := newLifecycleService(ClientMembership{ID: "m-1", Status: MembershipActive, EndDate: date(2025, time.May, 1)}, now)

		cancelled, err := svc.CancelMembership(context.Background(), "m-1", "moving away")
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if cancelled.Status != MembershipCancelled {
			t.Fatalf("expected cancelled status, got %q", cancelled.Status)
		}

		repo.memberships["m-1"] = cancelled
		if _, err := svc.CancelMembership(context.Background(), "m-1", "again"); err == nil {
			t.Fatal("expected second cancel to fail")
		}
		if _, err := svc.FreezeMembership(context.Background(), FreezeMembershipParams{MembershipID: "m-1", Days: 3, Reason: "no"}); err == nil {
			t.Fatal("expected freeze after cancel to fail")
		}
		if _, err := svc.ProlongMembership(context.Background(), ProlongMembershipParams{MembershipID: "m-1", Days: 3, Reason: "no"}); err == nil {
			t.Fatal("expected prolong after cancel to fail")
		}
	})
}

func TestEffectiveStatus(t *testing.T) {
	endDate := date(2025, time.May, 1)

	cases := []struct {
		name   string
		status MembershipStatus
		now    time.Time
		want   MembershipStatus
	}{
		{"active before end date", MembershipActive, date(2025, time.April, 20), MembershipActive},
		{"active past end date reads expired", MembershipActive, date(2025, time.May, 2), MembershipExpired},
		{"frozen past end date stays frozen", MembershipFrozen, date(2025, time.May, 2), MembershipFrozen},
		{"cancelled past end date stays cancelled", MembershipCancelled, date(2025, time.May, 2), MembershipCancelled},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := ClientMembership{Status: tc.status, EndDate: endDate}
			if got := EffectiveStatus(m, tc.now); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
