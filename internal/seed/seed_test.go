package seed

import (
	"context"
	"reflect"
	"sort"
	"testing"

	"github.com/example/gym-admin/internal/persistence/memory"
	"github.com/example/gym-admin/internal/testfixtures"
)

func applyToFreshStore(t *testing.T, seed int64) *memory.Storage {
	t.Helper()
	store := memory.NewStorage()
	clock := testfixtures.NewClock(testfixtures.ReferenceTime())
	if err := Apply(context.Background(), store, Options{Seed: seed, Now: clock.NowFunc()}); err != nil {
		t.Fatalf("apply seed: %v", err)
	}
	return store
}

func TestApply(t *testing.T) {
	ctx := context.Background()
	store := applyToFreshStore(t, 1)

	t.Run("attendance counters match their configured targets", func(t *testing.T) {
		want := map[string]int{"1": 8, "2": 45, "3": 7, "4": 3, "5": 22}
		memberships, err := store.ListClientMemberships(ctx)
		if err != nil {
			t.Fatalf("list memberships: %v", err)
		}
		if len(memberships) != len(want) {
			t.Fatalf("expected %d memberships, got %d", len(want), len(memberships))
		}
		total := 0
		for _, m := range memberships {
			if m.AttendanceCount != want[m.ID] {
				t.Fatalf("membership %s: expected counter %d, got %d", m.ID, want[m.ID], m.AttendanceCount)
			}
			total += m.AttendanceCount
		}

		records, err := store.ListAllAttendance(ctx)
		if err != nil {
			t.Fatalf("list attendance: %v", err)
		}
		if len(records) != total {
			t.Fatalf("expected %d ledger entries, got %d", total, len(records))
		}
	})

	t.Run("loads the security catalogs", func(t *testing.T) {
		permissions, err := store.ListPermissions(ctx)
		if err != nil {
			t.Fatalf("list permissions: %v", err)
		}
		if len(permissions) != 17 {
			t.Fatalf("expected 17 permissions, got %d", len(permissions))
		}

		roles, err := store.ListRoles(ctx)
		if err != nil {
			t.Fatalf("list roles: %v", err)
		}
		if len(roles) != 5 {
			t.Fatalf("expected 5 roles, got %d", len(roles))
		}
		protected := 0
		for _, role := range roles {
			if role.Protected {
				protected++
				if role.ID != "r1" {
					t.Fatalf("expected only r1 protected, got %s", role.ID)
				}
			}
		}
		if protected != 1 {
			t.Fatalf("expected one protected role, got %d", protected)
		}

		items, err := store.ListDataProtectionItems(ctx)
		if err != nil {
			t.Fatalf("list data protection items: %v", err)
		}
		if len(items) != 8 {
			t.Fatalf("expected 8 data protection items, got %d", len(items))
		}

		status, err := store.ListSystemStatus(ctx)
		if err != nil {
			t.Fatalf("list system status: %v", err)
		}
		if len(status) != 6 {
			t.Fatalf("expected 6 system status items, got %d", len(status))
		}
		wantChecked := testfixtures.ReferenceTime().Format("Jan 2, 3:04 PM")
		for _, item := range status {
			if item.LastChecked != wantChecked {
				t.Fatalf("expected last checked %q for %s, got %q", wantChecked, item.ID, item.LastChecked)
			}
		}
	})

	t.Run("fills the audit trail", func(t *testing.T) {
		logs, err := store.ListActionLogs(ctx)
		if err != nil {
			t.Fatalf("list action logs: %v", err)
		}
		if len(logs) != actionLogCount {
			t.Fatalf("expected %d action log entries, got %d", actionLogCount, len(logs))
		}
	})
}

func TestApply_Deterministic(t *testing.T) {
	ctx := context.Background()
	first := applyToFreshStore(t, 42)
	second := applyToFreshStore(t, 42)

	a, err := first.ListAllAttendance(ctx)
	if err != nil {
		t.Fatalf("list attendance: %v", err)
	}
	b, err := second.ListAllAttendance(ctx)
	if err != nil {
		t.Fatalf("list attendance: %v", err)
	}

	sort.Slice(a, func(i, j int) bool { return a[i].ID < a[j].ID })
	sort.Slice(b, func(i, j int) bool { return b[i].ID < b[j].ID })
	if !reflect.DeepEqual(a, b) {
		t.Fatal("same seed produced different attendance ledgers")
	}
}
