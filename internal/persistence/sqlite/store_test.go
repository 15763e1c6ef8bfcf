package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/example/gym-admin/internal/application"
	"github.com/example/gym-admin/internal/persistence"
	"github.com/example/gym-admin/internal/testfixtures"
)

func setupStoreTest(t *testing.T) *Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := Open("file:" + dbPath)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("Close failed: %v", err)
		}
	})

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	return store
}

func TestStore_MembershipTypeRoundTrip(t *testing.T) {
	store := setupStoreTest(t)
	ctx := context.Background()

	in := testfixtures.NewMembershipTypeFixture().Application()
	if _, err := store.CreateMembershipType(ctx, in); err != nil {
		t.Fatalf("CreateMembershipType failed: %v", err)
	}

	got, err := store.GetMembershipType(ctx, in.ID)
	if err != nil {
		t.Fatalf("GetMembershipType failed: %v", err)
	}
	if got.Name != in.Name || got.Price != in.Price || got.DurationDays != in.DurationDays {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, in)
	}
	if len(got.Features) != len(in.Features) {
		t.Fatalf("expected %d features, got %d", len(in.Features), len(got.Features))
	}
	for i, feature := range in.Features {
		if got.Features[i] != feature {
			t.Errorf("feature %d: got %q, want %q", i, got.Features[i], feature)
		}
	}
	if (got.MaxAttendance == nil) != (in.MaxAttendance == nil) {
		t.Errorf("max attendance pointer mismatch: got %v, want %v", got.MaxAttendance, in.MaxAttendance)
	}
}

func TestStore_MembershipRoundTrip(t *testing.T) {
	store := setupStoreTest(t)
	ctx := context.Background()

	freezeEnd := testfixtures.ReferenceTime().AddDate(0, 0, 7)
	in := testfixtures.NewMembershipFixture(
		testfixtures.WithMembershipID("m-roundtrip"),
		testfixtures.WithMembershipAttendance(4),
		testfixtures.WithMembershipMaxAttendance(20),
		testfixtures.WithOpenFreeze(testfixtures.ReferenceTime(), "travel"),
	).Application()
	in.FreezeHistory[0].EndDate = &freezeEnd
	in.ProlongHistory = append(in.ProlongHistory, application.ProlongRecord{
		Date:   testfixtures.ReferenceTime(),
		Days:   14,
		Reason: "loyalty bonus",
	})

	if _, err := store.CreateClientMembership(ctx, in); err != nil {
		t.Fatalf("CreateClientMembership failed: %v", err)
	}

	got, err := store.GetClientMembership(ctx, "m-roundtrip")
	if err != nil {
		t.Fatalf("GetClientMembership failed: %v", err)
	}
	if got.ClientID != in.ClientID || got.MembershipName != in.MembershipName || got.Status != in.Status {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, in)
	}
	if !got.StartDate.Equal(in.StartDate) || !got.EndDate.Equal(in.EndDate) {
		t.Errorf("period mismatch: got %v..%v, want %v..%v", got.StartDate, got.EndDate, in.StartDate, in.EndDate)
	}
	if got.AttendanceCount != 4 {
		t.Errorf("expected attendance count 4, got %d", got.AttendanceCount)
	}
	if got.MaxAttendance == nil || *got.MaxAttendance != 20 {
		t.Errorf("expected max attendance 20, got %v", got.MaxAttendance)
	}

	if len(got.FreezeHistory) != 1 {
		t.Fatalf("expected 1 freeze record, got %d", len(got.FreezeHistory))
	}
	freeze := got.FreezeHistory[0]
	if !freeze.StartDate.Equal(testfixtures.ReferenceTime()) || freeze.Reason != "travel" {
		t.Errorf("unexpected freeze record: %+v", freeze)
	}
	if freeze.EndDate == nil || !freeze.EndDate.Equal(freezeEnd) {
		t.Errorf("expected freeze end %v, got %v", freezeEnd, freeze.EndDate)
	}

	if len(got.ProlongHistory) != 1 {
		t.Fatalf("expected 1 prolong record, got %d", len(got.ProlongHistory))
	}
	prolong := got.ProlongHistory[0]
	if prolong.Days != 14 || prolong.Reason != "loyalty bonus" {
		t.Errorf("unexpected prolong record: %+v", prolong)
	}
}

func TestStore_UpdateClientMembership(t *testing.T) {
	store := setupStoreTest(t)
	ctx := context.Background()

	in := testfixtures.NewMembershipFixture(testfixtures.WithMembershipID("m-update")).Application()
	if _, err := store.CreateClientMembership(ctx, in); err != nil {
		t.Fatalf("CreateClientMembership failed: %v", err)
	}

	in.Status = application.MembershipCancelled
	in.Notes = "cancelled by administrator"
	if _, err := store.UpdateClientMembership(ctx, in); err != nil {
		t.Fatalf("UpdateClientMembership failed: %v", err)
	}

	got, err := store.GetClientMembership(ctx, "m-update")
	if err != nil {
		t.Fatalf("GetClientMembership failed: %v", err)
	}
	if got.Status != application.MembershipCancelled {
		t.Errorf("expected status %q, got %q", application.MembershipCancelled, got.Status)
	}
	if got.Notes != "cancelled by administrator" {
		t.Errorf("unexpected notes %q", got.Notes)
	}
}

func TestStore_MembershipNotFound(t *testing.T) {
	store := setupStoreTest(t)
	ctx := context.Background()

	if _, err := store.GetClientMembership(ctx, "missing"); !errors.Is(err, persistence.ErrNotFound) {
		t.Errorf("GetClientMembership: expected ErrNotFound, got %v", err)
	}
	missing := testfixtures.NewMembershipFixture(testfixtures.WithMembershipID("missing")).Application()
	if _, err := store.UpdateClientMembership(ctx, missing); !errors.Is(err, persistence.ErrNotFound) {
		t.Errorf("UpdateClientMembership: expected ErrNotFound, got %v", err)
	}
}

func TestStore_AppendAttendance(t *testing.T) {
	store := setupStoreTest(t)
	ctx := context.Background()

	membership := testfixtures.NewMembershipFixture(
		testfixtures.WithMembershipID("m-visits"),
		testfixtures.WithMembershipAttendance(8),
	).Application()
	if _, err := store.CreateClientMembership(ctx, membership); err != nil {
		t.Fatalf("CreateClientMembership failed: %v", err)
	}

	record := application.AttendanceRecord{
		ID:                 "att-1",
		ClientMembershipID: "m-visits",
		Date:               testfixtures.ReferenceTime(),
		CheckInTime:        "09:15",
		Facility:           "Main Gym",
	}
	_, updated, err := store.AppendAttendance(ctx, record)
	if err != nil {
		t.Fatalf("AppendAttendance failed: %v", err)
	}
	if updated.AttendanceCount != 9 {
		t.Errorf("expected attendance count 9, got %d", updated.AttendanceCount)
	}

	ledger, err := store.ListAttendance(ctx, "m-visits")
	if err != nil {
		t.Fatalf("ListAttendance failed: %v", err)
	}
	if len(ledger) != 1 {
		t.Fatalf("expected 1 ledger entry, got %d", len(ledger))
	}
	if ledger[0].ID != "att-1" || ledger[0].CheckInTime != "09:15" || ledger[0].Facility != "Main Gym" {
		t.Errorf("unexpected ledger entry: %+v", ledger[0])
	}

	persisted, err := store.GetClientMembership(ctx, "m-visits")
	if err != nil {
		t.Fatalf("GetClientMembership failed: %v", err)
	}
	if persisted.AttendanceCount != updated.AttendanceCount {
		t.Errorf("persisted count %d does not match returned count %d", persisted.AttendanceCount, updated.AttendanceCount)
	}
}

func TestStore_AppendAttendance_MissingMembership(t *testing.T) {
	store := setupStoreTest(t)
	ctx := context.Background()

	record := application.AttendanceRecord{
		ID:                 "att-orphan",
		ClientMembershipID: "missing",
		Date:               testfixtures.ReferenceTime(),
		CheckInTime:        "09:15",
		Facility:           "Main Gym",
	}
	if _, _, err := store.AppendAttendance(ctx, record); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// The transaction must roll back the ledger insert along with the counter.
	ledger, err := store.ListAllAttendance(ctx)
	if err != nil {
		t.Fatalf("ListAllAttendance failed: %v", err)
	}
	if len(ledger) != 0 {
		t.Errorf("expected empty ledger after rollback, got %d entries", len(ledger))
	}
}

func TestStore_CreateUser_DuplicateEmail(t *testing.T) {
	store := setupStoreTest(t)
	ctx := context.Background()

	first := testfixtures.NewUserFixture(testfixtures.WithUserEmail("shared@example.com")).Application()
	if _, err := store.CreateUser(ctx, first); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	second := testfixtures.NewUserFixture(testfixtures.WithUserEmail("shared@example.com")).Application()
	if _, err := store.CreateUser(ctx, second); !errors.Is(err, persistence.ErrConstraintViolation) {
		t.Fatalf("expected ErrConstraintViolation, got %v", err)
	}
}
