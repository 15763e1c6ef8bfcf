package application

import (
	"time"

	"github.com/example/gym-admin/internal/compliance"
)

// MembershipStatus tracks the stored lifecycle state of a client membership.
// "expired" is derived from the end date at read time and never written.
type MembershipStatus string

const (
	// MembershipActive marks a membership currently in force.
	MembershipActive MembershipStatus = "active"
	// MembershipFrozen marks a membership suspended by a freeze command.
	MembershipFrozen MembershipStatus = "frozen"
	// MembershipExpired marks a membership whose end date has passed.
	MembershipExpired MembershipStatus = "expired"
	// MembershipCancelled marks a membership terminated by the client. Terminal.
	MembershipCancelled MembershipStatus = "cancelled"
)

// MembershipType is immutable reference data describing a sellable plan.
type MembershipType struct {
	ID            string
	Name          string
	Description   string
	Price         float64
	DurationDays  int
	Features      []string
	MaxAttendance *int
	IsPopular     bool
}

// FreezeRecord is one entry in a membership's freeze history. EndDate stays nil
// while the freeze is still open.
type FreezeRecord struct {
	StartDate time.Time
	EndDate   *time.Time
	Reason    string
}

// ProlongRecord is one entry in a membership's prolongation history.
type ProlongRecord struct {
	Date   time.Time
	Days   int
	Reason string
}

// ClientMembership binds a client to a membership type for a period of time.
//
// MembershipName and MaxAttendance are snapshots copied from the type at
// assignment; later edits to the type deliberately do not propagate.
type ClientMembership struct {
	ID               string
	ClientID         string
	MembershipTypeID string
	MembershipName   string
	StartDate        time.Time
	EndDate          time.Time
	Status           MembershipStatus
	AttendanceCount  int
	MaxAttendance    *int
	FreezeHistory    []FreezeRecord
	ProlongHistory   []ProlongRecord
	Notes            string
}

// AttendanceRecord is an append-only check-in entry tied to a membership.
type AttendanceRecord struct {
	ID                 string
	ClientMembershipID string
	Date               time.Time
	CheckInTime        string
	CheckOutTime       *string
	Facility           string
	Notes              *string
}

// BookingStatus tracks the confirmation state of a booking.
type BookingStatus string

const (
	// BookingConfirmed marks an accepted booking.
	BookingConfirmed BookingStatus = "confirmed"
	// BookingPending marks a booking awaiting confirmation.
	BookingPending BookingStatus = "pending"
	// BookingCancelled marks a withdrawn booking.
	BookingCancelled BookingStatus = "cancelled"
)

// Booking reserves a court, optionally with a trainer, for a client. Client,
// trainer, and court are display names, not foreign keys; no overlap checking
// is performed against other bookings.
type Booking struct {
	ID      string
	Title   string
	Start   time.Time
	End     time.Time
	Client  string
	Trainer *string
	Court   string
	Status  BookingStatus
}

// StaffKind distinguishes the two bookable staff registries.
type StaffKind string

const (
	// StaffTrainer identifies the trainer registry.
	StaffTrainer StaffKind = "trainer"
	// StaffMasseur identifies the masseur registry.
	StaffMasseur StaffKind = "masseur"
)

// StaffStatus tracks whether a staff member accepts bookings.
type StaffStatus string

const (
	// StaffActive marks staff available for bookings.
	StaffActive StaffStatus = "active"
	// StaffInactive marks staff hidden from booking forms.
	StaffInactive StaffStatus = "inactive"
)

// StaffMember is a bookable trainer or masseur.
type StaffMember struct {
	ID             string
	Kind           StaffKind
	Name           string
	Specialization string
	Availability   []string
	Status         StaffStatus
}

// CourtStatus cycles available → blocked → maintenance → available.
type CourtStatus string

const (
	// CourtAvailable marks a court open for bookings.
	CourtAvailable CourtStatus = "available"
	// CourtBlocked marks a court administratively closed.
	CourtBlocked CourtStatus = "blocked"
	// CourtMaintenance marks a court under maintenance.
	CourtMaintenance CourtStatus = "maintenance"
)

// Court is a bookable facility space.
type Court struct {
	ID       string
	Name     string
	Type     string
	Capacity int
	Status   CourtStatus
}

// UserCategory collapses the source's four parallel user collections into a
// single tagged registry.
type UserCategory string

const (
	// CategoryClient tags gym clients.
	CategoryClient UserCategory = "client"
	// CategoryTrainer tags trainers.
	CategoryTrainer UserCategory = "trainer"
	// CategoryMasseur tags masseurs.
	CategoryMasseur UserCategory = "masseur"
	// CategoryManager tags facility managers.
	CategoryManager UserCategory = "manager"
)

// UserStatus tracks a user's account state.
type UserStatus string

const (
	// UserActive marks a user in good standing.
	UserActive UserStatus = "active"
	// UserInactive marks a dormant user.
	UserInactive UserStatus = "inactive"
	// UserBlocked marks a user denied access by an administrator.
	UserBlocked UserStatus = "blocked"
)

// User is an entry in the facility's user directory.
type User struct {
	ID           string
	Name         string
	Email        string
	Category     UserCategory
	Role         string
	Status       UserStatus
	LastActive   string
	Subscription *string
}

// Role groups permission identifiers under an assignable name. UsersCount is a
// denormalized display figure, not reconciled with actual assignments.
type Role struct {
	ID          string
	Name        string
	Description string
	Permissions []string
	UsersCount  int
	Protected   bool
}

// Permission is a grantable capability grouped by module.
type Permission struct {
	ID          string
	Name        string
	Description string
	Module      string
}

// DataProtectionItem tracks one compliance requirement. Audit dates are the
// free-text labels the dashboard displays.
type DataProtectionItem struct {
	ID          string
	Name        string
	Description string
	Status      compliance.Status
	LastAudit   *string
	DueDate     *string
}

// SystemHealth classifies a monitored subsystem on the security dashboard.
type SystemHealth string

const (
	// SystemOnline marks a subsystem operating normally.
	SystemOnline SystemHealth = "online"
	// SystemOffline marks a subsystem that is unreachable.
	SystemOffline SystemHealth = "offline"
	// SystemWarning marks a subsystem with degraded behaviour.
	SystemWarning SystemHealth = "warning"
	// SystemMaintenance marks a subsystem under planned maintenance.
	SystemMaintenance SystemHealth = "maintenance"
)

// SystemStatusItem is one monitored subsystem as shown on the security
// dashboard. LastChecked and Uptime are display strings produced by the
// monitoring source.
type SystemStatusItem struct {
	ID          string
	Title       string
	Description string
	Status      SystemHealth
	LastChecked string
	Uptime      string
	Details     *string
}

// ActionStatus classifies the outcome recorded in an action log entry.
type ActionStatus string

const (
	// ActionSuccess marks a completed action.
	ActionSuccess ActionStatus = "success"
	// ActionWarning marks an action that completed with warnings.
	ActionWarning ActionStatus = "warning"
	// ActionError marks a failed action.
	ActionError ActionStatus = "error"
	// ActionInfo marks an informational entry.
	ActionInfo ActionStatus = "info"
)

// ActionActor identifies who performed a logged action.
type ActionActor struct {
	ID    string
	Name  string
	Email string
	Role  string
}

// ActionLogEntry is one row of the security audit trail.
type ActionLogEntry struct {
	ID        string
	Actor     ActionActor
	Action    string
	Timestamp time.Time
	IPAddress string
	Status    ActionStatus
	Details   *string
}

// NewsItem is a language-tagged article. Body holds the authored Markdown;
// BodyHTML holds the rendered form produced when the item is published.
type NewsItem struct {
	ID          string
	Title       string
	Body        string
	BodyHTML    string
	PublishDate *time.Time
	Published   bool
	Language    string
	Slug        string
	Author      string
	Categories  []string
}

// TournamentStatus tracks a tournament through its calendar life.
type TournamentStatus string

const (
	// TournamentUpcoming marks a tournament not yet started.
	TournamentUpcoming TournamentStatus = "upcoming"
	// TournamentOngoing marks a tournament in progress.
	TournamentOngoing TournamentStatus = "ongoing"
	// TournamentCompleted marks a finished tournament.
	TournamentCompleted TournamentStatus = "completed"
	// TournamentCancelled marks a cancelled tournament.
	TournamentCancelled TournamentStatus = "cancelled"
)

// Tournament is a published facility event.
type Tournament struct {
	ID                  string
	Name                string
	Description         string
	StartDate           time.Time
	EndDate             time.Time
	Status              TournamentStatus
	Location            string
	RegistrationURL     string
	Language            string
	MaxParticipants     *int
	CurrentParticipants *int
}

// MediaType distinguishes gallery entries.
type MediaType string

const (
	// MediaImage tags image entries.
	MediaImage MediaType = "image"
	// MediaVideo tags video entries.
	MediaVideo MediaType = "video"
)

// MediaItem is gallery metadata; no file bytes are stored.
type MediaItem struct {
	ID           string
	Type         MediaType
	URL          string
	Title        string
	Description  *string
	Thumbnail    *string
	DateUploaded time.Time
}

// NotificationAudience selects who a notification targets.
type NotificationAudience string

const (
	// AudienceAll targets every user.
	AudienceAll NotificationAudience = "all"
	// AudienceMembers targets clients only.
	AudienceMembers NotificationAudience = "members"
	// AudienceStaff targets staff only.
	AudienceStaff NotificationAudience = "staff"
	// AudienceCustom targets the listed custom groups.
	AudienceCustom NotificationAudience = "custom"
)

// Notification is a sent announcement. Delivery is out of scope; SentAt records
// when the send was accepted.
type Notification struct {
	ID           string
	Title        string
	Message      string
	Audience     NotificationAudience
	CustomGroups []string
	ScheduledFor *time.Time
	SentAt       time.Time
	Language     string
}

// ChartPoint is one labelled value in an analytics series.
type ChartPoint struct {
	Name  string
	Value float64
}

// AttendanceAnalytics summarises ledger activity over a date range.
type AttendanceAnalytics struct {
	TotalVisits int
	ByDay       []ChartPoint
	ByHour      []ChartPoint
	ByFacility  []ChartPoint
}

// SalesAnalytics summarises membership revenue over a date range.
type SalesAnalytics struct {
	TotalRevenue     float64
	ByMembershipType []ChartPoint
	MonthlyTrend     []ChartPoint
}

// AssignMembershipParams carries the data required to assign a membership.
type AssignMembershipParams struct {
	ClientID         string
	MembershipTypeID string
	StartDate        time.Time
	EndDate          time.Time
	Notes            string
}

// FreezeMembershipParams carries the data required to freeze a membership.
type FreezeMembershipParams struct {
	MembershipID string
	Days         int
	Reason       string
}

// ProlongMembershipParams carries the data required to prolong a membership.
type ProlongMembershipParams struct {
	MembershipID string
	Days         int
	Reason       string
}

// MembershipTypeInput captures caller provided membership type fields.
type MembershipTypeInput struct {
	Name          string
	Description   string
	Price         float64
	DurationDays  int
	Features      []string
	MaxAttendance *int
	IsPopular     bool
}

// AttendanceInput captures caller provided check-in fields.
type AttendanceInput struct {
	ClientMembershipID string
	Date               time.Time
	CheckInTime        string
	CheckOutTime       *string
	Facility           string
	Notes              *string
}

// BookingInput captures caller provided booking fields.
type BookingInput struct {
	Title   string
	Start   time.Time
	End     time.Time
	Client  string
	Trainer *string
	Court   string
	Status  BookingStatus
}

// StaffInput captures caller provided trainer/masseur fields.
type StaffInput struct {
	Name           string
	Specialization string
	Availability   []string
}

// CourtInput captures caller provided court fields.
type CourtInput struct {
	Name     string
	Type     string
	Capacity int
}

// UserUpdate captures the partial update surface for a directory user. Nil
// fields are left unchanged.
type UserUpdate struct {
	Name         *string
	Email        *string
	Role         *string
	Status       *UserStatus
	LastActive   *string
	Subscription *string
}

// RoleInput captures caller provided role fields.
type RoleInput struct {
	Name        string
	Description string
	Permissions []string
}

// NewsInput captures caller provided news fields.
type NewsInput struct {
	Title      string
	Body       string
	Language   string
	Slug       string
	Author     string
	Categories []string
}

// TournamentInput captures caller provided tournament fields.
type TournamentInput struct {
	Name            string
	Description     string
	StartDate       time.Time
	EndDate         time.Time
	Status          TournamentStatus
	Location        string
	RegistrationURL string
	Language        string
	MaxParticipants *int
}

// MediaInput captures caller provided media metadata.
type MediaInput struct {
	Type        MediaType
	URL         string
	Title       string
	Description *string
	Thumbnail   *string
}

// NotificationInput captures caller provided notification fields.
type NotificationInput struct {
	Title        string
	Message      string
	Audience     NotificationAudience
	CustomGroups []string
	ScheduledFor *time.Time
	Language     string
}
