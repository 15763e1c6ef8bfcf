// Package seed loads the embedded demo dataset into a store at startup and
// generates the synthetic attendance ledger and audit trail from a seeded
// random source, so a given seed always produces the same database.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/example/gym-admin/internal/application"
	"github.com/example/gym-admin/internal/compliance"
)

//go:embed seed.yaml
var seedYAML []byte

// Store is the write surface the seeder needs. Both the memory and sqlite
// stores satisfy it.
type Store interface {
	CreateMembershipType(ctx context.Context, t application.MembershipType) (application.MembershipType, error)
	CreateClientMembership(ctx context.Context, m application.ClientMembership) (application.ClientMembership, error)
	AppendAttendance(ctx context.Context, rec application.AttendanceRecord) (application.AttendanceRecord, application.ClientMembership, error)
	CreateBooking(ctx context.Context, b application.Booking) (application.Booking, error)
	CreateStaff(ctx context.Context, member application.StaffMember) (application.StaffMember, error)
	CreateCourt(ctx context.Context, c application.Court) (application.Court, error)
	CreateUser(ctx context.Context, u application.User) (application.User, error)
	CreateRole(ctx context.Context, r application.Role) (application.Role, error)
	InsertPermission(ctx context.Context, p application.Permission) error
	InsertDataProtectionItem(ctx context.Context, item application.DataProtectionItem) error
	InsertSystemStatusItem(ctx context.Context, item application.SystemStatusItem) error
	AppendActionLog(ctx context.Context, entry application.ActionLogEntry) (application.ActionLogEntry, error)
	CreateNews(ctx context.Context, item application.NewsItem) (application.NewsItem, error)
	CreateTournament(ctx context.Context, t application.Tournament) (application.Tournament, error)
}

// Options configures dataset generation.
type Options struct {
	// Seed drives the random source for synthetic records.
	Seed int64
	// Now anchors the generated dates. Defaults to time.Now.
	Now func() time.Time
	// Logger receives a summary line when seeding completes.
	Logger *slog.Logger
}

type dataset struct {
	MembershipTypes     []membershipTypeRow  `yaml:"membership_types"`
	ClientMemberships   []membershipRow      `yaml:"client_memberships"`
	Bookings            []bookingRow         `yaml:"bookings"`
	Trainers            []staffRow           `yaml:"trainers"`
	Masseurs            []staffRow           `yaml:"masseurs"`
	Courts              []courtRow           `yaml:"courts"`
	Users               []userRow            `yaml:"users"`
	Permissions         []permissionRow      `yaml:"permissions"`
	Roles               []roleRow            `yaml:"roles"`
	DataProtectionItems []protectionRow      `yaml:"data_protection_items"`
	SystemStatus        []systemStatusRow    `yaml:"system_status"`
	News                []newsRow            `yaml:"news"`
	Tournaments         []tournamentRow      `yaml:"tournaments"`
}

type membershipTypeRow struct {
	ID            string   `yaml:"id"`
	Name          string   `yaml:"name"`
	Description   string   `yaml:"description"`
	Price         float64  `yaml:"price"`
	DurationDays  int      `yaml:"duration_days"`
	Features      []string `yaml:"features"`
	MaxAttendance *int     `yaml:"max_attendance"`
	IsPopular     bool     `yaml:"is_popular"`
}

type membershipRow struct {
	ID               string      `yaml:"id"`
	ClientID         string      `yaml:"client_id"`
	MembershipTypeID string      `yaml:"membership_type_id"`
	MembershipName   string      `yaml:"membership_name"`
	StartDate        time.Time   `yaml:"start_date"`
	EndDate          time.Time   `yaml:"end_date"`
	Status           string      `yaml:"status"`
	AttendanceCount  int         `yaml:"attendance_count"`
	MaxAttendance    *int        `yaml:"max_attendance"`
	FreezeHistory    []freezeRow `yaml:"freeze_history"`
}

type freezeRow struct {
	StartDate time.Time  `yaml:"start_date"`
	EndDate   *time.Time `yaml:"end_date"`
	Reason    string     `yaml:"reason"`
}

type bookingRow struct {
	ID      string    `yaml:"id"`
	Title   string    `yaml:"title"`
	Start   time.Time `yaml:"start"`
	End     time.Time `yaml:"end"`
	Client  string    `yaml:"client"`
	Trainer *string   `yaml:"trainer"`
	Court   string    `yaml:"court"`
	Status  string    `yaml:"status"`
}

type staffRow struct {
	ID             string   `yaml:"id"`
	Name           string   `yaml:"name"`
	Specialization string   `yaml:"specialization"`
	Availability   []string `yaml:"availability"`
	Status         string   `yaml:"status"`
}

type courtRow struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Capacity int    `yaml:"capacity"`
	Status   string `yaml:"status"`
}

type userRow struct {
	ID           string  `yaml:"id"`
	Name         string  `yaml:"name"`
	Email        string  `yaml:"email"`
	Category     string  `yaml:"category"`
	Role         string  `yaml:"role"`
	Status       string  `yaml:"status"`
	LastActive   string  `yaml:"last_active"`
	Subscription *string `yaml:"subscription"`
}

type permissionRow struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Module      string `yaml:"module"`
}

type roleRow struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Permissions []string `yaml:"permissions"`
	UsersCount  int      `yaml:"users_count"`
	Protected   bool     `yaml:"protected"`
}

type protectionRow struct {
	ID          string  `yaml:"id"`
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Status      string  `yaml:"status"`
	LastAudit   *string `yaml:"last_audit"`
	DueDate     *string `yaml:"due_date"`
}

type systemStatusRow struct {
	ID          string  `yaml:"id"`
	Title       string  `yaml:"title"`
	Description string  `yaml:"description"`
	Status      string  `yaml:"status"`
	Uptime      string  `yaml:"uptime"`
	Details     *string `yaml:"details"`
}

type newsRow struct {
	ID         string   `yaml:"id"`
	Title      string   `yaml:"title"`
	Body       string   `yaml:"body"`
	Language   string   `yaml:"language"`
	Slug       string   `yaml:"slug"`
	Author     string   `yaml:"author"`
	Categories []string `yaml:"categories"`
}

type tournamentRow struct {
	ID              string    `yaml:"id"`
	Name            string    `yaml:"name"`
	Description     string    `yaml:"description"`
	StartDate       time.Time `yaml:"start_date"`
	EndDate         time.Time `yaml:"end_date"`
	Status          string    `yaml:"status"`
	Location        string    `yaml:"location"`
	RegistrationURL string    `yaml:"registration_url"`
	Language        string    `yaml:"language"`
	MaxParticipants *int      `yaml:"max_participants"`
}

// Apply loads the embedded dataset into store. Memberships are created with a
// zero attendance counter; the generated ledger entries bring each counter
// back to its configured value through the store's own append path.
func Apply(ctx context.Context, store Store, opts Options) error {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var data dataset
	if err := yaml.Unmarshal(seedYAML, &data); err != nil {
		return fmt.Errorf("parse embedded dataset: %w", err)
	}

	for _, row := range data.MembershipTypes {
		t := application.MembershipType{
			ID:            row.ID,
			Name:          row.Name,
			Description:   row.Description,
			Price:         row.Price,
			DurationDays:  row.DurationDays,
			Features:      row.Features,
			MaxAttendance: row.MaxAttendance,
			IsPopular:     row.IsPopular,
		}
		if _, err := store.CreateMembershipType(ctx, t); err != nil {
			return fmt.Errorf("seed membership type %s: %w", row.ID, err)
		}
	}

	targetCounts := make(map[string]int, len(data.ClientMemberships))
	membershipIDs := make([]string, 0, len(data.ClientMemberships))
	for _, row := range data.ClientMemberships {
		m := application.ClientMembership{
			ID:               row.ID,
			ClientID:         row.ClientID,
			MembershipTypeID: row.MembershipTypeID,
			MembershipName:   row.MembershipName,
			StartDate:        row.StartDate,
			EndDate:          row.EndDate,
			Status:           application.MembershipStatus(row.Status),
			MaxAttendance:    row.MaxAttendance,
		}
		for _, fr := range row.FreezeHistory {
			m.FreezeHistory = append(m.FreezeHistory, application.FreezeRecord{
				StartDate: fr.StartDate,
				EndDate:   fr.EndDate,
				Reason:    fr.Reason,
			})
		}
		if _, err := store.CreateClientMembership(ctx, m); err != nil {
			return fmt.Errorf("seed membership %s: %w", row.ID, err)
		}
		targetCounts[row.ID] = row.AttendanceCount
		membershipIDs = append(membershipIDs, row.ID)
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	attendanceTotal, err := generateAttendance(ctx, store, rng, now(), membershipIDs, targetCounts)
	if err != nil {
		return err
	}

	for _, row := range data.Bookings {
		b := application.Booking{
			ID:      row.ID,
			Title:   row.Title,
			Start:   row.Start,
			End:     row.End,
			Client:  row.Client,
			Trainer: row.Trainer,
			Court:   row.Court,
			Status:  application.BookingStatus(row.Status),
		}
		if _, err := store.CreateBooking(ctx, b); err != nil {
			return fmt.Errorf("seed booking %s: %w", row.ID, err)
		}
	}

	for kind, rows := range map[application.StaffKind][]staffRow{
		application.StaffTrainer: data.Trainers,
		application.StaffMasseur: data.Masseurs,
	} {
		for _, row := range rows {
			member := application.StaffMember{
				ID:             row.ID,
				Kind:           kind,
				Name:           row.Name,
				Specialization: row.Specialization,
				Availability:   row.Availability,
				Status:         application.StaffStatus(row.Status),
			}
			if _, err := store.CreateStaff(ctx, member); err != nil {
				return fmt.Errorf("seed staff %s: %w", row.ID, err)
			}
		}
	}

	for _, row := range data.Courts {
		c := application.Court{
			ID:       row.ID,
			Name:     row.Name,
			Type:     row.Type,
			Capacity: row.Capacity,
			Status:   application.CourtStatus(row.Status),
		}
		if _, err := store.CreateCourt(ctx, c); err != nil {
			return fmt.Errorf("seed court %s: %w", row.ID, err)
		}
	}

	for _, row := range data.Users {
		u := application.User{
			ID:           row.ID,
			Name:         row.Name,
			Email:        row.Email,
			Category:     application.UserCategory(row.Category),
			Role:         row.Role,
			Status:       application.UserStatus(row.Status),
			LastActive:   row.LastActive,
			Subscription: row.Subscription,
		}
		if _, err := store.CreateUser(ctx, u); err != nil {
			return fmt.Errorf("seed user %s: %w", row.ID, err)
		}
	}

	for _, row := range data.Permissions {
		p := application.Permission{ID: row.ID, Name: row.Name, Description: row.Description, Module: row.Module}
		if err := store.InsertPermission(ctx, p); err != nil {
			return fmt.Errorf("seed permission %s: %w", row.ID, err)
		}
	}

	for _, row := range data.Roles {
		r := application.Role{
			ID:          row.ID,
			Name:        row.Name,
			Description: row.Description,
			Permissions: row.Permissions,
			UsersCount:  row.UsersCount,
			Protected:   row.Protected,
		}
		if _, err := store.CreateRole(ctx, r); err != nil {
			return fmt.Errorf("seed role %s: %w", row.ID, err)
		}
	}

	for _, row := range data.DataProtectionItems {
		item := application.DataProtectionItem{
			ID:          row.ID,
			Name:        row.Name,
			Description: row.Description,
			Status:      compliance.Status(row.Status),
			LastAudit:   row.LastAudit,
			DueDate:     row.DueDate,
		}
		if err := store.InsertDataProtectionItem(ctx, item); err != nil {
			return fmt.Errorf("seed data protection item %s: %w", row.ID, err)
		}
	}

	lastChecked := now().Format("Jan 2, 3:04 PM")
	for _, row := range data.SystemStatus {
		item := application.SystemStatusItem{
			ID:          row.ID,
			Title:       row.Title,
			Description: row.Description,
			Status:      application.SystemHealth(row.Status),
			LastChecked: lastChecked,
			Uptime:      row.Uptime,
			Details:     row.Details,
		}
		if err := store.InsertSystemStatusItem(ctx, item); err != nil {
			return fmt.Errorf("seed system status item %s: %w", row.ID, err)
		}
	}

	if err := generateActionLogs(ctx, store, rng, now()); err != nil {
		return err
	}

	for _, row := range data.News {
		item := application.NewsItem{
			ID:         row.ID,
			Title:      row.Title,
			Body:       row.Body,
			Language:   row.Language,
			Slug:       row.Slug,
			Author:     row.Author,
			Categories: row.Categories,
		}
		if _, err := store.CreateNews(ctx, item); err != nil {
			return fmt.Errorf("seed news %s: %w", row.ID, err)
		}
	}

	for _, row := range data.Tournaments {
		t := application.Tournament{
			ID:              row.ID,
			Name:            row.Name,
			Description:     row.Description,
			StartDate:       row.StartDate,
			EndDate:         row.EndDate,
			Status:          application.TournamentStatus(row.Status),
			Location:        row.Location,
			RegistrationURL: row.RegistrationURL,
			Language:        row.Language,
			MaxParticipants: row.MaxParticipants,
		}
		if _, err := store.CreateTournament(ctx, t); err != nil {
			return fmt.Errorf("seed tournament %s: %w", row.ID, err)
		}
	}

	logger.InfoContext(ctx, "demo dataset loaded",
		"membership_types", len(data.MembershipTypes),
		"memberships", len(data.ClientMemberships),
		"attendance_records", attendanceTotal,
		"users", len(data.Users),
	)
	return nil
}
