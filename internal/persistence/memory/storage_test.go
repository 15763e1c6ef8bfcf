package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/example/gym-admin/internal/application"
	"github.com/example/gym-admin/internal/persistence"
	"github.com/example/gym-admin/internal/testfixtures"
)

func TestStorage_AppendAttendance(t *testing.T) {
	t.Run("increments the membership counter with the record", func(t *testing.T) {
		storage := NewStorage()
		membership := testfixtures.NewMembershipFixture().Application()
		if _, err := storage.CreateClientMembership(context.Background(), membership); err != nil {
			t.Fatalf("create membership: %v", err)
		}

		rec := application.AttendanceRecord{
			ID:                 "att-1",
			ClientMembershipID: membership.ID,
			Date:               testfixtures.ReferenceTime(),
			CheckInTime:        "09:00",
			Facility:           "Main Gym",
		}

		stored, updated, err := storage.AppendAttendance(context.Background(), rec)
		if err != nil {
			t.Fatalf("append attendance: %v", err)
		}
		if stored.ID != "att-1" {
			t.Fatalf("expected stored record, got %+v", stored)
		}
		if updated.AttendanceCount != membership.AttendanceCount+1 {
			t.Fatalf("expected counter %d, got %d", membership.AttendanceCount+1, updated.AttendanceCount)
		}

		persisted, err := storage.GetClientMembership(context.Background(), membership.ID)
		if err != nil {
			t.Fatalf("get membership: %v", err)
		}
		if persisted.AttendanceCount != updated.AttendanceCount {
			t.Fatalf("stored counter %d diverged from returned %d", persisted.AttendanceCount, updated.AttendanceCount)
		}
	})

	t.Run("counter stays exact under concurrent appends", func(t *testing.T) {
		storage := NewStorage()
		membership := testfixtures.NewMembershipFixture().Application()
		membership.AttendanceCount = 0
		if _, err := storage.CreateClientMembership(context.Background(), membership); err != nil {
			t.Fatalf("create membership: %v", err)
		}

		const appends = 50
		ids := testfixtures.NewIDGenerator("att")
		recordIDs := make([]string, appends)
		for i := range recordIDs {
			recordIDs[i] = ids.Next()
		}

		var wg sync.WaitGroup
		for _, id := range recordIDs {
			wg.Add(1)
			go func(id string) {
				defer wg.Done()
				_, _, err := storage.AppendAttendance(context.Background(), application.AttendanceRecord{
					ID:                 id,
					ClientMembershipID: membership.ID,
					Date:               testfixtures.ReferenceTime(),
					CheckInTime:        "08:00",
					Facility:           "Main Gym",
				})
				if err != nil {
					t.Errorf("append attendance %s: %v", id, err)
				}
			}(id)
		}
		wg.Wait()

		persisted, err := storage.GetClientMembership(context.Background(), membership.ID)
		if err != nil {
			t.Fatalf("get membership: %v", err)
		}
		if persisted.AttendanceCount != appends {
			t.Fatalf("expected counter %d, got %d", appends, persisted.AttendanceCount)
		}
		records, err := storage.ListAttendance(context.Background(), membership.ID)
		if err != nil {
			t.Fatalf("list attendance: %v", err)
		}
		if len(records) != appends {
			t.Fatalf("expected %d ledger entries, got %d", appends, len(records))
		}
	})

	t.Run("rejects records for a missing membership", func(t *testing.T) {
		storage := NewStorage()
		_, _, err := storage.AppendAttendance(context.Background(), application.AttendanceRecord{
			ID:                 "att-1",
			ClientMembershipID: "missing",
		})
		if !errors.Is(err, persistence.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestStorage_CreateUser(t *testing.T) {
	t.Run("enforces email uniqueness", func(t *testing.T) {
		storage := NewStorage()
		first := testfixtures.NewUserFixture().Application()
		if _, err := storage.CreateUser(context.Background(), first); err != nil {
			t.Fatalf("create user: %v", err)
		}

		duplicate := testfixtures.NewUserFixture().Application()
		duplicate.Email = first.Email
		_, err := storage.CreateUser(context.Background(), duplicate)
		if !errors.Is(err, persistence.ErrConstraintViolation) {
			t.Fatalf("expected constraint violation, got %v", err)
		}
	})

	t.Run("update keeps the user's own email available", func(t *testing.T) {
		storage := NewStorage()
		user := testfixtures.NewUserFixture().Application()
		if _, err := storage.CreateUser(context.Background(), user); err != nil {
			t.Fatalf("create user: %v", err)
		}

		user.Name = "Renamed"
		if _, err := storage.UpdateUser(context.Background(), user); err != nil {
			t.Fatalf("update user: %v", err)
		}
	})
}

func TestStorage_Staff(t *testing.T) {
	t.Run("kinds are isolated", func(t *testing.T) {
		storage := NewStorage()
		trainer := application.StaffMember{ID: "s-1", Kind: application.StaffTrainer, Name: "Jonas", Status: application.StaffActive}
		masseur := application.StaffMember{ID: "s-2", Kind: application.StaffMasseur, Name: "Mira", Status: application.StaffActive}
		for _, member := range []application.StaffMember{trainer, masseur} {
			if _, err := storage.CreateStaff(context.Background(), member); err != nil {
				t.Fatalf("create staff: %v", err)
			}
		}

		if _, err := storage.GetStaff(context.Background(), application.StaffMasseur, "s-1"); !errors.Is(err, persistence.ErrNotFound) {
			t.Fatalf("expected ErrNotFound across kinds, got %v", err)
		}

		trainers, err := storage.ListStaff(context.Background(), application.StaffTrainer)
		if err != nil {
			t.Fatalf("list staff: %v", err)
		}
		if len(trainers) != 1 || trainers[0].ID != "s-1" {
			t.Fatalf("expected only the trainer, got %+v", trainers)
		}

		if err := storage.DeleteStaff(context.Background(), application.StaffTrainer, "s-2"); !errors.Is(err, persistence.ErrNotFound) {
			t.Fatalf("expected ErrNotFound deleting across kinds, got %v", err)
		}
	})
}

func TestStorage_CloneIsolation(t *testing.T) {
	t.Run("callers cannot alias freeze history", func(t *testing.T) {
		storage := NewStorage()
		membership := testfixtures.NewMembershipFixture(
			testfixtures.WithOpenFreeze(testfixtures.ReferenceTime(), "vacation"),
		).Application()
		if _, err := storage.CreateClientMembership(context.Background(), membership); err != nil {
			t.Fatalf("create membership: %v", err)
		}

		got, err := storage.GetClientMembership(context.Background(), membership.ID)
		if err != nil {
			t.Fatalf("get membership: %v", err)
		}
		got.FreezeHistory[0].Reason = "mutated"
		closed := time.Now()
		got.FreezeHistory[0].EndDate = &closed

		again, err := storage.GetClientMembership(context.Background(), membership.ID)
		if err != nil {
			t.Fatalf("get membership: %v", err)
		}
		if again.FreezeHistory[0].Reason != "vacation" || again.FreezeHistory[0].EndDate != nil {
			t.Fatalf("stored freeze history was mutated through a returned copy: %+v", again.FreezeHistory[0])
		}
	})

	t.Run("callers cannot alias role permissions", func(t *testing.T) {
		storage := NewStorage()
		role := application.Role{ID: "r-1", Name: "Manager", Permissions: []string{"users.read"}}
		if _, err := storage.CreateRole(context.Background(), role); err != nil {
			t.Fatalf("create role: %v", err)
		}

		got, err := storage.GetRole(context.Background(), "r-1")
		if err != nil {
			t.Fatalf("get role: %v", err)
		}
		got.Permissions[0] = "users.delete"

		again, err := storage.GetRole(context.Background(), "r-1")
		if err != nil {
			t.Fatalf("get role: %v", err)
		}
		if again.Permissions[0] != "users.read" {
			t.Fatalf("stored permissions were mutated through a returned copy: %v", again.Permissions)
		}
	})
}

func TestStorage_NotFoundWrapping(t *testing.T) {
	storage := NewStorage()
	ctx := context.Background()

	checks := []struct {
		name string
		call func() error
	}{
		{"membership type", func() error { _, err := storage.GetMembershipType(ctx, "x"); return err }},
		{"membership", func() error { _, err := storage.GetClientMembership(ctx, "x"); return err }},
		{"booking", func() error { return storage.DeleteBooking(ctx, "x") }},
		{"court", func() error { _, err := storage.GetCourt(ctx, "x"); return err }},
		{"user", func() error { return storage.DeleteUser(ctx, "x") }},
		{"role", func() error { _, err := storage.GetRole(ctx, "x"); return err }},
		{"data protection item", func() error { _, err := storage.GetDataProtectionItem(ctx, "x"); return err }},
		{"news", func() error { _, err := storage.GetNews(ctx, "x"); return err }},
		{"tournament", func() error { return storage.DeleteTournament(ctx, "x") }},
		{"media", func() error { return storage.DeleteMedia(ctx, "x") }},
	}
	for _, check := range checks {
		if err := check.call(); !errors.Is(err, persistence.ErrNotFound) {
			t.Fatalf("%s: expected ErrNotFound, got %v", check.name, err)
		}
	}
}
