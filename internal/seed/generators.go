package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/example/gym-admin/internal/application"
)

var facilities = []string{"Gym", "Pool", "Tennis Court", "Group Class", "Yoga Studio", "Basketball Court"}

var actionActors = []application.ActionActor{
	{ID: "1", Name: "Admin User", Email: "admin@example.com", Role: "Administrator"},
	{ID: "2", Name: "John Manager", Email: "john@example.com", Role: "Manager"},
	{ID: "3", Name: "Sarah Staff", Email: "sarah@example.com", Role: "Staff"},
	{ID: "4", Name: "Mike Trainer", Email: "mike@example.com", Role: "Trainer"},
}

var actionNames = []string{
	"User login",
	"User logout",
	"Password change",
	"User profile update",
	"Created new membership",
	"Updated client record",
	"Deleted booking",
	"Exported client data",
	"Changed system settings",
	"Added new role",
	"Modified permissions",
	"Reset user password",
}

var actionStatuses = []application.ActionStatus{
	application.ActionSuccess,
	application.ActionWarning,
	application.ActionError,
	application.ActionInfo,
}

var actionIPs = []string{"192.168.1.1", "10.0.0.5", "172.16.254.1", "192.168.0.100", "10.10.10.10"}

const actionLogCount = 100

// generateAttendance produces ledger entries through the store's append path
// until each membership's counter reaches its configured target. Dates fall in
// the 30 days before now.
func generateAttendance(ctx context.Context, store Store, rng *rand.Rand, now time.Time, membershipIDs []string, targets map[string]int) (int, error) {
	total := 0
	for _, id := range membershipIDs {
		for i := 0; i < targets[id]; i++ {
			date := now.AddDate(0, 0, -rng.Intn(30))
			date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

			checkInHour := 7 + rng.Intn(12)
			checkIn := fmt.Sprintf("%02d:%02d", checkInHour, rng.Intn(60))

			var checkOut *string
			if rng.Float64() > 0.3 {
				checkOutHour := checkInHour + 1 + rng.Intn(3)
				if checkOutHour > 21 {
					checkOutHour = 21
				}
				out := fmt.Sprintf("%02d:%02d", checkOutHour, rng.Intn(60))
				checkOut = &out
			}

			var notes *string
			if rng.Float64() > 0.7 {
				n := "Regular visit"
				notes = &n
			}

			rec := application.AttendanceRecord{
				ID:                 fmt.Sprintf("%s-%d", id, i),
				ClientMembershipID: id,
				Date:               date,
				CheckInTime:        checkIn,
				CheckOutTime:       checkOut,
				Facility:           facilities[rng.Intn(len(facilities))],
				Notes:              notes,
			}
			if _, _, err := store.AppendAttendance(ctx, rec); err != nil {
				return total, fmt.Errorf("seed attendance for membership %s: %w", id, err)
			}
			total++
		}
	}
	return total, nil
}

// generateActionLogs fills the audit trail with entries spread over the 30
// days before now.
func generateActionLogs(ctx context.Context, store Store, rng *rand.Rand, now time.Time) error {
	for i := 0; i < actionLogCount; i++ {
		actor := actionActors[rng.Intn(len(actionActors))]
		action := actionNames[rng.Intn(len(actionNames))]
		status := actionStatuses[rng.Intn(len(actionStatuses))]

		ts := now.AddDate(0, 0, -rng.Intn(30))
		ts = time.Date(ts.Year(), ts.Month(), ts.Day(), rng.Intn(24), rng.Intn(60), rng.Intn(60), 0, time.UTC)

		var details *string
		if status == application.ActionError || status == application.ActionWarning {
			d := fmt.Sprintf("Details about the %s action that resulted in %s status.", action, status)
			details = &d
		}

		entry := application.ActionLogEntry{
			ID:        fmt.Sprintf("log-%d", i),
			Actor:     actor,
			Action:    action,
			Timestamp: ts,
			IPAddress: actionIPs[rng.Intn(len(actionIPs))],
			Status:    status,
			Details:   details,
		}
		if _, err := store.AppendActionLog(ctx, entry); err != nil {
			return fmt.Errorf("seed action log %d: %w", i, err)
		}
	}
	return nil
}
