package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/gym-admin/internal/application"
)

var (
	typeCounter       uint64
	membershipCounter uint64
	bookingCounter    uint64
	userCounter       uint64
)

var referenceTime = time.Date(2025, time.April, 15, 10, 0, 0, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// ------------------------- Membership type fixtures -----------------------

// MembershipTypeFixture represents a deterministic plan catalog entry.
type MembershipTypeFixture struct {
	ID            string
	Name          string
	Description   string
	Price         float64
	DurationDays  int
	Features      []string
	MaxAttendance *int
	IsPopular     bool
}

// MembershipTypeOption configures the generated membership type fixture.
type MembershipTypeOption func(*MembershipTypeFixture)

// NewMembershipTypeFixture returns a deterministic type fixture with optional
// overrides.
func NewMembershipTypeFixture(opts ...MembershipTypeOption) MembershipTypeFixture {
	idx := atomic.AddUint64(&typeCounter, 1)
	fixture := MembershipTypeFixture{
		ID:           fmt.Sprintf("type-%03d", idx),
		Name:         fmt.Sprintf("Plan %03d", idx),
		Description:  "Standard plan",
		Price:        49.99,
		DurationDays: 30,
		Features:     []string{"Gym access"},
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithTypeID overrides the generated type ID.
func WithTypeID(id string) MembershipTypeOption {
	return func(f *MembershipTypeFixture) {
		f.ID = id
	}
}

// WithTypeName overrides the generated plan name.
func WithTypeName(name string) MembershipTypeOption {
	return func(f *MembershipTypeFixture) {
		f.Name = name
	}
}

// WithTypePrice overrides the generated price.
func WithTypePrice(price float64) MembershipTypeOption {
	return func(f *MembershipTypeFixture) {
		f.Price = price
	}
}

// WithTypeDuration overrides the plan duration in days.
func WithTypeDuration(days int) MembershipTypeOption {
	return func(f *MembershipTypeFixture) {
		f.DurationDays = days
	}
}

// WithTypeMaxAttendance sets the attendance cap on the fixture.
func WithTypeMaxAttendance(cap int) MembershipTypeOption {
	return func(f *MembershipTypeFixture) {
		value := cap
		f.MaxAttendance = &value
	}
}

// Application returns the fixture as an application.MembershipType value.
func (f MembershipTypeFixture) Application() application.MembershipType {
	return application.MembershipType{
		ID:            f.ID,
		Name:          f.Name,
		Description:   f.Description,
		Price:         f.Price,
		DurationDays:  f.DurationDays,
		Features:      append([]string(nil), f.Features...),
		MaxAttendance: copyIntPtr(f.MaxAttendance),
		IsPopular:     f.IsPopular,
	}
}

// Input returns the fixture as an application.MembershipTypeInput.
func (f MembershipTypeFixture) Input() application.MembershipTypeInput {
	return application.MembershipTypeInput{
		Name:          f.Name,
		Description:   f.Description,
		Price:         f.Price,
		DurationDays:  f.DurationDays,
		Features:      append([]string(nil), f.Features...),
		MaxAttendance: copyIntPtr(f.MaxAttendance),
		IsPopular:     f.IsPopular,
	}
}

// ------------------------- Client membership fixtures ---------------------

// MembershipFixture represents a deterministic client membership record.
type MembershipFixture struct {
	ID               string
	ClientID         string
	MembershipTypeID string
	MembershipName   string
	StartDate        time.Time
	EndDate          time.Time
	Status           application.MembershipStatus
	AttendanceCount  int
	MaxAttendance    *int
	FreezeHistory    []application.FreezeRecord
	ProlongHistory   []application.ProlongRecord
	Notes            string
}

// MembershipOption configures the generated membership fixture.
type MembershipOption func(*MembershipFixture)

// NewMembershipFixture returns a deterministic membership fixture. The default
// runs for thirty days starting at ReferenceTime.
func NewMembershipFixture(opts ...MembershipOption) MembershipFixture {
	idx := atomic.AddUint64(&membershipCounter, 1)
	start := referenceTime
	fixture := MembershipFixture{
		ID:               fmt.Sprintf("membership-%03d", idx),
		ClientID:         fmt.Sprintf("client-%03d", idx),
		MembershipTypeID: fmt.Sprintf("type-%03d", idx),
		MembershipName:   fmt.Sprintf("Plan %03d", idx),
		StartDate:        start,
		EndDate:          start.AddDate(0, 0, 30),
		Status:           application.MembershipActive,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithMembershipID overrides the generated membership ID.
func WithMembershipID(id string) MembershipOption {
	return func(f *MembershipFixture) {
		f.ID = id
	}
}

// WithMembershipClient sets the client ID.
func WithMembershipClient(id string) MembershipOption {
	return func(f *MembershipFixture) {
		f.ClientID = id
	}
}

// WithMembershipType sets the plan snapshot fields.
func WithMembershipType(typeID, name string) MembershipOption {
	return func(f *MembershipFixture) {
		f.MembershipTypeID = typeID
		f.MembershipName = name
	}
}

// WithMembershipPeriod sets the start and end dates.
func WithMembershipPeriod(start, end time.Time) MembershipOption {
	return func(f *MembershipFixture) {
		f.StartDate = start
		f.EndDate = end
	}
}

// WithMembershipStatus sets the stored status.
func WithMembershipStatus(status application.MembershipStatus) MembershipOption {
	return func(f *MembershipFixture) {
		f.Status = status
	}
}

// WithMembershipAttendance sets the denormalized attendance counter.
func WithMembershipAttendance(count int) MembershipOption {
	return func(f *MembershipFixture) {
		f.AttendanceCount = count
	}
}

// WithMembershipMaxAttendance sets the attendance cap snapshot.
func WithMembershipMaxAttendance(cap int) MembershipOption {
	return func(f *MembershipFixture) {
		value := cap
		f.MaxAttendance = &value
	}
}

// WithOpenFreeze appends an open freeze entry and marks the membership frozen.
func WithOpenFreeze(start time.Time, reason string) MembershipOption {
	return func(f *MembershipFixture) {
		f.Status = application.MembershipFrozen
		f.FreezeHistory = append(f.FreezeHistory, application.FreezeRecord{StartDate: start, Reason: reason})
	}
}

// Application returns the fixture as an application.ClientMembership value.
func (f MembershipFixture) Application() application.ClientMembership {
	return application.ClientMembership{
		ID:               f.ID,
		ClientID:         f.ClientID,
		MembershipTypeID: f.MembershipTypeID,
		MembershipName:   f.MembershipName,
		StartDate:        f.StartDate,
		EndDate:          f.EndDate,
		Status:           f.Status,
		AttendanceCount:  f.AttendanceCount,
		MaxAttendance:    copyIntPtr(f.MaxAttendance),
		FreezeHistory:    append([]application.FreezeRecord(nil), f.FreezeHistory...),
		ProlongHistory:   append([]application.ProlongRecord(nil), f.ProlongHistory...),
		Notes:            f.Notes,
	}
}

// ----------------------------- Booking fixtures ---------------------------

// BookingFixture represents a deterministic booking record.
type BookingFixture struct {
	ID      string
	Title   string
	Start   time.Time
	End     time.Time
	Client  string
	Trainer *string
	Court   string
	Status  application.BookingStatus
}

// BookingOption configures the generated booking fixture.
type BookingOption func(*BookingFixture)

// NewBookingFixture returns a deterministic booking fixture with optional
// overrides.
func NewBookingFixture(opts ...BookingOption) BookingFixture {
	idx := atomic.AddUint64(&bookingCounter, 1)
	start := referenceTime.Add(time.Duration(idx) * time.Hour)
	fixture := BookingFixture{
		ID:     fmt.Sprintf("booking-%03d", idx),
		Title:  fmt.Sprintf("Session %03d", idx),
		Start:  start,
		End:    start.Add(time.Hour),
		Client: fmt.Sprintf("Client %03d", idx),
		Court:  "Court 1",
		Status: application.BookingConfirmed,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithBookingID overrides the generated booking ID.
func WithBookingID(id string) BookingOption {
	return func(f *BookingFixture) {
		f.ID = id
	}
}

// WithBookingPeriod sets the start and end times.
func WithBookingPeriod(start, end time.Time) BookingOption {
	return func(f *BookingFixture) {
		f.Start = start
		f.End = end
	}
}

// WithBookingTrainer sets the optional trainer name.
func WithBookingTrainer(name string) BookingOption {
	return func(f *BookingFixture) {
		value := name
		f.Trainer = &value
	}
}

// WithBookingStatus sets the booking status.
func WithBookingStatus(status application.BookingStatus) BookingOption {
	return func(f *BookingFixture) {
		f.Status = status
	}
}

// Application returns the fixture as an application.Booking value.
func (f BookingFixture) Application() application.Booking {
	return application.Booking{
		ID:      f.ID,
		Title:   f.Title,
		Start:   f.Start,
		End:     f.End,
		Client:  f.Client,
		Trainer: copyStringPtr(f.Trainer),
		Court:   f.Court,
		Status:  f.Status,
	}
}

// Input returns the fixture as an application.BookingInput.
func (f BookingFixture) Input() application.BookingInput {
	return application.BookingInput{
		Title:   f.Title,
		Start:   f.Start,
		End:     f.End,
		Client:  f.Client,
		Trainer: copyStringPtr(f.Trainer),
		Court:   f.Court,
		Status:  f.Status,
	}
}

// ------------------------------ User fixtures -----------------------------

// UserFixture represents a deterministic directory user.
type UserFixture struct {
	ID       string
	Name     string
	Email    string
	Category application.UserCategory
	Role     string
	Status   application.UserStatus
}

// UserOption configures the generated user fixture.
type UserOption func(*UserFixture)

// NewUserFixture returns a deterministic user fixture with optional overrides.
func NewUserFixture(opts ...UserOption) UserFixture {
	idx := atomic.AddUint64(&userCounter, 1)
	id := fmt.Sprintf("user-%03d", idx)
	fixture := UserFixture{
		ID:       id,
		Name:     fmt.Sprintf("User %03d", idx),
		Email:    fmt.Sprintf("%s@example.com", id),
		Category: application.CategoryClient,
		Role:     "Member",
		Status:   application.UserActive,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithUserID overrides the generated user ID.
func WithUserID(id string) UserOption {
	return func(f *UserFixture) {
		f.ID = id
	}
}

// WithUserEmail overrides the generated email address.
func WithUserEmail(email string) UserOption {
	return func(f *UserFixture) {
		f.Email = email
	}
}

// WithUserCategory sets the directory category.
func WithUserCategory(category application.UserCategory) UserOption {
	return func(f *UserFixture) {
		f.Category = category
	}
}

// WithUserStatus sets the account status.
func WithUserStatus(status application.UserStatus) UserOption {
	return func(f *UserFixture) {
		f.Status = status
	}
}

// Application returns the fixture as an application.User value.
func (f UserFixture) Application() application.User {
	return application.User{
		ID:       f.ID,
		Name:     f.Name,
		Email:    f.Email,
		Category: f.Category,
		Role:     f.Role,
		Status:   f.Status,
	}
}

func copyStringPtr(src *string) *string {
	if src == nil {
		return nil
	}
	value := *src
	return &value
}

func copyIntPtr(src *int) *int {
	if src == nil {
		return nil
	}
	value := *src
	return &value
}
