// Package memory provides a mutex-guarded in-memory store implementing every
// repository interface of the application layer. It is the default backend
// and the one the test suites run against.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/example/gym-admin/internal/application"
	"github.com/example/gym-admin/internal/persistence"
)

// Storage holds all registries behind a single RWMutex. Values are deep-copied
// on the way in and out so callers can never alias stored state.
type Storage struct {
	mu sync.RWMutex

	membershipTypes map[string]application.MembershipType
	memberships     map[string]application.ClientMembership
	attendance      map[string]application.AttendanceRecord
	bookings        map[string]application.Booking
	staff           map[string]application.StaffMember
	courts          map[string]application.Court
	users           map[string]application.User
	roles           map[string]application.Role
	permissions     map[string]application.Permission
	protection      map[string]application.DataProtectionItem
	systemStatus    map[string]application.SystemStatusItem
	actionLogs      []application.ActionLogEntry
	news            map[string]application.NewsItem
	tournaments     map[string]application.Tournament
	media           map[string]application.MediaItem
	notifications   map[string]application.Notification
}

// NewStorage returns an empty store.
func NewStorage() *Storage {
	return &Storage{
		membershipTypes: map[string]application.MembershipType{},
		memberships:     map[string]application.ClientMembership{},
		attendance:      map[string]application.AttendanceRecord{},
		bookings:        map[string]application.Booking{},
		staff:           map[string]application.StaffMember{},
		courts:          map[string]application.Court{},
		users:           map[string]application.User{},
		roles:           map[string]application.Role{},
		permissions:     map[string]application.Permission{},
		protection:      map[string]application.DataProtectionItem{},
		systemStatus:    map[string]application.SystemStatusItem{},
		news:            map[string]application.NewsItem{},
		tournaments:     map[string]application.Tournament{},
		media:           map[string]application.MediaItem{},
		notifications:   map[string]application.Notification{},
	}
}

// CreateMembershipType stores a new catalog entry.
func (s *Storage) CreateMembershipType(_ context.Context, t application.MembershipType) (application.MembershipType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == "" {
		return application.MembershipType{}, fmt.Errorf("%w: membership type id is empty", persistence.ErrConstraintViolation)
	}
	if _, exists := s.membershipTypes[t.ID]; exists {
		return application.MembershipType{}, fmt.Errorf("%w: membership type %q already exists", persistence.ErrConstraintViolation, t.ID)
	}
	s.membershipTypes[t.ID] = cloneMembershipType(t)
	return cloneMembershipType(t), nil
}

// UpdateMembershipType replaces an existing catalog entry.
func (s *Storage) UpdateMembershipType(_ context.Context, t application.MembershipType) (application.MembershipType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.membershipTypes[t.ID]; !exists {
		return application.MembershipType{}, fmt.Errorf("%w: membership type %q", persistence.ErrNotFound, t.ID)
	}
	s.membershipTypes[t.ID] = cloneMembershipType(t)
	return cloneMembershipType(t), nil
}

// GetMembershipType returns one catalog entry.
func (s *Storage) GetMembershipType(_ context.Context, id string) (application.MembershipType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, exists := s.membershipTypes[id]
	if !exists {
		return application.MembershipType{}, fmt.Errorf("%w: membership type %q", persistence.ErrNotFound, id)
	}
	return cloneMembershipType(t), nil
}

// ListMembershipTypes returns the catalog in map order.
func (s *Storage) ListMembershipTypes(_ context.Context) ([]application.MembershipType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]application.MembershipType, 0, len(s.membershipTypes))
	for _, t := range s.membershipTypes {
		out = append(out, cloneMembershipType(t))
	}
	return out, nil
}

// CreateClientMembership stores a new membership.
func (s *Storage) CreateClientMembership(_ context.Context, m application.ClientMembership) (application.ClientMembership, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m.ID == "" {
		return application.ClientMembership{}, fmt.Errorf("%w: membership id is empty", persistence.ErrConstraintViolation)
	}
	if _, exists := s.memberships[m.ID]; exists {
		return application.ClientMembership{}, fmt.Errorf("%w: membership %q already exists", persistence.ErrConstraintViolation, m.ID)
	}
	s.memberships[m.ID] = cloneMembership(m)
	return cloneMembership(m), nil
}

// UpdateClientMembership replaces an existing membership.
func (s *Storage) UpdateClientMembership(_ context.Context, m application.ClientMembership) (application.ClientMembership, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.memberships[m.ID]; !exists {
		return application.ClientMembership{}, fmt.Errorf("%w: membership %q", persistence.ErrNotFound, m.ID)
	}
	s.memberships[m.ID] = cloneMembership(m)
	return cloneMembership(m), nil
}

// GetClientMembership returns one membership.
func (s *Storage) GetClientMembership(_ context.Context, id string) (application.ClientMembership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, exists := s.memberships[id]
	if !exists {
		return application.ClientMembership{}, fmt.Errorf("%w: membership %q", persistence.ErrNotFound, id)
	}
	return cloneMembership(m), nil
}

// ListClientMemberships returns all memberships in map order.
func (s *Storage) ListClientMemberships(_ context.Context) ([]application.ClientMembership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]application.ClientMembership, 0, len(s.memberships))
	for _, m := range s.memberships {
		out = append(out, cloneMembership(m))
	}
	return out, nil
}

// AppendAttendance stores the record and increments the membership's
// attendance counter under the same lock, so the two never diverge.
func (s *Storage) AppendAttendance(_ context.Context, rec application.AttendanceRecord) (application.AttendanceRecord, application.ClientMembership, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec.ID == "" {
		return application.AttendanceRecord{}, application.ClientMembership{}, fmt.Errorf("%w: attendance id is empty", persistence.ErrConstraintViolation)
	}
	if _, exists := s.attendance[rec.ID]; exists {
		return application.AttendanceRecord{}, application.ClientMembership{}, fmt.Errorf("%w: attendance %q already exists", persistence.ErrConstraintViolation, rec.ID)
	}
	m, exists := s.memberships[rec.ClientMembershipID]
	if !exists {
		return application.AttendanceRecord{}, application.ClientMembership{}, fmt.Errorf("%w: membership %q", persistence.ErrNotFound, rec.ClientMembershipID)
	}
	m.AttendanceCount++
	s.memberships[m.ID] = cloneMembership(m)
	s.attendance[rec.ID] = cloneAttendance(rec)
	return cloneAttendance(rec), cloneMembership(m), nil
}

// ListAttendance returns the ledger entries for one membership in map order.
func (s *Storage) ListAttendance(_ context.Context, clientMembershipID string) ([]application.AttendanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]application.AttendanceRecord, 0)
	for _, rec := range s.attendance {
		if rec.ClientMembershipID == clientMembershipID {
			out = append(out, cloneAttendance(rec))
		}
	}
	return out, nil
}

// ListAllAttendance returns the whole ledger in map order.
func (s *Storage) ListAllAttendance(_ context.Context) ([]application.AttendanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]application.AttendanceRecord, 0, len(s.attendance))
	for _, rec := range s.attendance {
		out = append(out, cloneAttendance(rec))
	}
	return out, nil
}

// CreateBooking stores a new booking.
func (s *Storage) CreateBooking(_ context.Context, b application.Booking) (application.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b.ID == "" {
		return application.Booking{}, fmt.Errorf("%w: booking id is empty", persistence.ErrConstraintViolation)
	}
	if _, exists := s.bookings[b.ID]; exists {
		return application.Booking{}, fmt.Errorf("%w: booking %q already exists", persistence.ErrConstraintViolation, b.ID)
	}
	s.bookings[b.ID] = cloneBooking(b)
	return cloneBooking(b), nil
}

// UpdateBooking replaces an existing booking.
func (s *Storage) UpdateBooking(_ context.Context, b application.Booking) (application.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.bookings[b.ID]; !exists {
		return application.Booking{}, fmt.Errorf("%w: booking %q", persistence.ErrNotFound, b.ID)
	}
	s.bookings[b.ID] = cloneBooking(b)
	return cloneBooking(b), nil
}

// GetBooking returns one booking.
func (s *Storage) GetBooking(_ context.Context, id string) (application.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, exists := s.bookings[id]
	if !exists {
		return application.Booking{}, fmt.Errorf("%w: booking %q", persistence.ErrNotFound, id)
	}
	return cloneBooking(b), nil
}

// ListBookings returns all bookings in map order.
func (s *Storage) ListBookings(_ context.Context) ([]application.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]application.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		out = append(out, cloneBooking(b))
	}
	return out, nil
}

// DeleteBooking removes a booking.
func (s *Storage) DeleteBooking(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.bookings[id]; !exists {
		return fmt.Errorf("%w: booking %q", persistence.ErrNotFound, id)
	}
	delete(s.bookings, id)
	return nil
}

// CreateStaff stores a new trainer or masseur.
func (s *Storage) CreateStaff(_ context.Context, member application.StaffMember) (application.StaffMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if member.ID == "" {
		return application.StaffMember{}, fmt.Errorf("%w: staff id is empty", persistence.ErrConstraintViolation)
	}
	if _, exists := s.staff[member.ID]; exists {
		return application.StaffMember{}, fmt.Errorf("%w: staff %q already exists", persistence.ErrConstraintViolation, member.ID)
	}
	s.staff[member.ID] = cloneStaff(member)
	return cloneStaff(member), nil
}

// UpdateStaff replaces an existing staff member. The kind tag is part of the
// stored record and never changes on update.
func (s *Storage) UpdateStaff(_ context.Context, member application.StaffMember) (application.StaffMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, exists := s.staff[member.ID]
	if !exists || existing.Kind != member.Kind {
		return application.StaffMember{}, fmt.Errorf("%w: staff %q", persistence.ErrNotFound, member.ID)
	}
	s.staff[member.ID] = cloneStaff(member)
	return cloneStaff(member), nil
}

// GetStaff returns one staff member of the given kind.
func (s *Storage) GetStaff(_ context.Context, kind application.StaffKind, id string) (application.StaffMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	member, exists := s.staff[id]
	if !exists || member.Kind != kind {
		return application.StaffMember{}, fmt.Errorf("%w: staff %q", persistence.ErrNotFound, id)
	}
	return cloneStaff(member), nil
}

// ListStaff returns all staff of the given kind in map order.
func (s *Storage) ListStaff(_ context.Context, kind application.StaffKind) ([]application.StaffMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]application.StaffMember, 0)
	for _, member := range s.staff {
		if member.Kind == kind {
			out = append(out, cloneStaff(member))
		}
	}
	return out, nil
}

// DeleteStaff removes a staff member of the given kind.
func (s *Storage) DeleteStaff(_ context.Context, kind application.StaffKind, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	member, exists := s.staff[id]
	if !exists || member.Kind != kind {
		return fmt.Errorf("%w: staff %q", persistence.ErrNotFound, id)
	}
	delete(s.staff, id)
	return nil
}

// CreateCourt stores a new court.
func (s *Storage) CreateCourt(_ context.Context, c application.Court) (application.Court, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == "" {
		return application.Court{}, fmt.Errorf("%w: court id is empty", persistence.ErrConstraintViolation)
	}
	if _, exists := s.courts[c.ID]; exists {
		return application.Court{}, fmt.Errorf("%w: court %q already exists", persistence.ErrConstraintViolation, c.ID)
	}
	s.courts[c.ID] = c
	return c, nil
}

// UpdateCourt replaces an existing court.
func (s *Storage) UpdateCourt(_ context.Context, c application.Court) (application.Court, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.courts[c.ID]; !exists {
		return application.Court{}, fmt.Errorf("%w: court %q", persistence.ErrNotFound, c.ID)
	}
	s.courts[c.ID] = c
	return c, nil
}

// GetCourt returns one court.
func (s *Storage) GetCourt(_ context.Context, id string) (application.Court, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, exists := s.courts[id]
	if !exists {
		return application.Court{}, fmt.Errorf("%w: court %q", persistence.ErrNotFound, id)
	}
	return c, nil
}

// ListCourts returns all courts in map order.
func (s *Storage) ListCourts(_ context.Context) ([]application.Court, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]application.Court, 0, len(s.courts))
	for _, c := range s.courts {
		out = append(out, c)
	}
	return out, nil
}

// DeleteCourt removes a court.
func (s *Storage) DeleteCourt(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.courts[id]; !exists {
		return fmt.Errorf("%w: court %q", persistence.ErrNotFound, id)
	}
	delete(s.courts, id)
	return nil
}

// CreateUser stores a new directory user.
func (s *Storage) CreateUser(_ context.Context, u application.User) (application.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == "" {
		return application.User{}, fmt.Errorf("%w: user id is empty", persistence.ErrConstraintViolation)
	}
	if _, exists := s.users[u.ID]; exists {
		return application.User{}, fmt.Errorf("%w: user %q already exists", persistence.ErrConstraintViolation, u.ID)
	}
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return application.User{}, fmt.Errorf("%w: email %q already registered", persistence.ErrConstraintViolation, u.Email)
		}
	}
	s.users[u.ID] = cloneUser(u)
	return cloneUser(u), nil
}

// UpdateUser replaces an existing directory user.
func (s *Storage) UpdateUser(_ context.Context, u application.User) (application.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[u.ID]; !exists {
		return application.User{}, fmt.Errorf("%w: user %q", persistence.ErrNotFound, u.ID)
	}
	for id, existing := range s.users {
		if id != u.ID && existing.Email == u.Email {
			return application.User{}, fmt.Errorf("%w: email %q already registered", persistence.ErrConstraintViolation, u.Email)
		}
	}
	s.users[u.ID] = cloneUser(u)
	return cloneUser(u), nil
}

// GetUser returns one directory user.
func (s *Storage) GetUser(_ context.Context, id string) (application.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, exists := s.users[id]
	if !exists {
		return application.User{}, fmt.Errorf("%w: user %q", persistence.ErrNotFound, id)
	}
	return cloneUser(u), nil
}

// ListUsers returns all directory users in map order.
func (s *Storage) ListUsers(_ context.Context) ([]application.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]application.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

// DeleteUser removes a directory user.
func (s *Storage) DeleteUser(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[id]; !exists {
		return fmt.Errorf("%w: user %q", persistence.ErrNotFound, id)
	}
	delete(s.users, id)
	return nil
}

// CreateRole stores a new role.
func (s *Storage) CreateRole(_ context.Context, r application.Role) (application.Role, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID == "" {
		return application.Role{}, fmt.Errorf("%w: role id is empty", persistence.ErrConstraintViolation)
	}
	if _, exists := s.roles[r.ID]; exists {
		return application.Role{}, fmt.Errorf("%w: role %q already exists", persistence.ErrConstraintViolation, r.ID)
	}
	s.roles[r.ID] = cloneRole(r)
	return cloneRole(r), nil
}

// UpdateRole replaces an existing role.
func (s *Storage) UpdateRole(_ context.Context, r application.Role) (application.Role, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.roles[r.ID]; !exists {
		return application.Role{}, fmt.Errorf("%w: role %q", persistence.ErrNotFound, r.ID)
	}
	s.roles[r.ID] = cloneRole(r)
	return cloneRole(r), nil
}

// GetRole returns one role.
func (s *Storage) GetRole(_ context.Context, id string) (application.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, exists := s.roles[id]
	if !exists {
		return application.Role{}, fmt.Errorf("%w: role %q", persistence.ErrNotFound, id)
	}
	return cloneRole(r), nil
}

// ListRoles returns all roles in map order.
func (s *Storage) ListRoles(_ context.Context) ([]application.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]application.Role, 0, len(s.roles))
	for _, r := range s.roles {
		out = append(out, cloneRole(r))
	}
	return out, nil
}

// DeleteRole removes a role.
func (s *Storage) DeleteRole(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.roles[id]; !exists {
		return fmt.Errorf("%w: role %q", persistence.ErrNotFound, id)
	}
	delete(s.roles, id)
	return nil
}

// InsertPermission seeds one catalog entry. The catalog has no service-level
// write path.
func (s *Storage) InsertPermission(_ context.Context, p application.Permission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		return fmt.Errorf("%w: permission id is empty", persistence.ErrConstraintViolation)
	}
	if _, exists := s.permissions[p.ID]; exists {
		return fmt.Errorf("%w: permission %q already exists", persistence.ErrConstraintViolation, p.ID)
	}
	s.permissions[p.ID] = p
	return nil
}

// ListPermissions returns the catalog in map order.
func (s *Storage) ListPermissions(_ context.Context) ([]application.Permission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]application.Permission, 0, len(s.permissions))
	for _, p := range s.permissions {
		out = append(out, p)
	}
	return out, nil
}

// InsertDataProtectionItem seeds one compliance item. Items are seeded at
// startup; the service only updates them afterwards.
func (s *Storage) InsertDataProtectionItem(_ context.Context, item application.DataProtectionItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if item.ID == "" {
		return fmt.Errorf("%w: data protection item id is empty", persistence.ErrConstraintViolation)
	}
	if _, exists := s.protection[item.ID]; exists {
		return fmt.Errorf("%w: data protection item %q already exists", persistence.ErrConstraintViolation, item.ID)
	}
	s.protection[item.ID] = cloneProtectionItem(item)
	return nil
}

// UpdateDataProtectionItem replaces an existing compliance item.
func (s *Storage) UpdateDataProtectionItem(_ context.Context, item application.DataProtectionItem) (application.DataProtectionItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.protection[item.ID]; !exists {
		return application.DataProtectionItem{}, fmt.Errorf("%w: data protection item %q", persistence.ErrNotFound, item.ID)
	}
	s.protection[item.ID] = cloneProtectionItem(item)
	return cloneProtectionItem(item), nil
}

// GetDataProtectionItem returns one compliance item.
func (s *Storage) GetDataProtectionItem(_ context.Context, id string) (application.DataProtectionItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, exists := s.protection[id]
	if !exists {
		return application.DataProtectionItem{}, fmt.Errorf("%w: data protection item %q", persistence.ErrNotFound, id)
	}
	return cloneProtectionItem(item), nil
}

// ListDataProtectionItems returns all compliance items in map order.
func (s *Storage) ListDataProtectionItems(_ context.Context) ([]application.DataProtectionItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]application.DataProtectionItem, 0, len(s.protection))
	for _, item := range s.protection {
		out = append(out, cloneProtectionItem(item))
	}
	return out, nil
}

// InsertSystemStatusItem seeds one monitored subsystem. The list is read-only
// after startup.
func (s *Storage) InsertSystemStatusItem(_ context.Context, item application.SystemStatusItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if item.ID == "" {
		return fmt.Errorf("%w: system status item id is empty", persistence.ErrConstraintViolation)
	}
	if _, exists := s.systemStatus[item.ID]; exists {
		return fmt.Errorf("%w: system status item %q already exists", persistence.ErrConstraintViolation, item.ID)
	}
	s.systemStatus[item.ID] = cloneSystemStatus(item)
	return nil
}

// ListSystemStatus returns the monitored subsystems in map order.
func (s *Storage) ListSystemStatus(_ context.Context) ([]application.SystemStatusItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]application.SystemStatusItem, 0, len(s.systemStatus))
	for _, item := range s.systemStatus {
		out = append(out, cloneSystemStatus(item))
	}
	return out, nil
}

// AppendActionLog adds an entry to the audit trail.
func (s *Storage) AppendActionLog(_ context.Context, entry application.ActionLogEntry) (application.ActionLogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry.ID == "" {
		return application.ActionLogEntry{}, fmt.Errorf("%w: action log id is empty", persistence.ErrConstraintViolation)
	}
	s.actionLogs = append(s.actionLogs, cloneActionLog(entry))
	return cloneActionLog(entry), nil
}

// ListActionLogs returns the audit trail in insertion order.
func (s *Storage) ListActionLogs(_ context.Context) ([]application.ActionLogEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]application.ActionLogEntry, 0, len(s.actionLogs))
	for _, entry := range s.actionLogs {
		out = append(out, cloneActionLog(entry))
	}
	return out, nil
}

// CreateNews stores a new article.
func (s *Storage) CreateNews(_ context.Context, item application.NewsItem) (application.NewsItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if item.ID == "" {
		return application.NewsItem{}, fmt.Errorf("%w: news id is empty", persistence.ErrConstraintViolation)
	}
	if _, exists := s.news[item.ID]; exists {
		return application.NewsItem{}, fmt.Errorf("%w: news %q already exists", persistence.ErrConstraintViolation, item.ID)
	}
	s.news[item.ID] = cloneNews(item)
	return cloneNews(item), nil
}

// UpdateNews replaces an existing article.
func (s *Storage) UpdateNews(_ context.Context, item application.NewsItem) (application.NewsItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.news[item.ID]; !exists {
		return application.NewsItem{}, fmt.Errorf("%w: news %q", persistence.ErrNotFound, item.ID)
	}
	s.news[item.ID] = cloneNews(item)
	return cloneNews(item), nil
}

// GetNews returns one article.
func (s *Storage) GetNews(_ context.Context, id string) (application.NewsItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, exists := s.news[id]
	if !exists {
		return application.NewsItem{}, fmt.Errorf("%w: news %q", persistence.ErrNotFound, id)
	}
	return cloneNews(item), nil
}

// ListNews returns all articles in map order.
func (s *Storage) ListNews(_ context.Context) ([]application.NewsItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]application.NewsItem, 0, len(s.news))
	for _, item := range s.news {
		out = append(out, cloneNews(item))
	}
	return out, nil
}

// DeleteNews removes an article.
func (s *Storage) DeleteNews(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.news[id]; !exists {
		return fmt.Errorf("%w: news %q", persistence.ErrNotFound, id)
	}
	delete(s.news, id)
	return nil
}

// CreateTournament stores a new tournament.
func (s *Storage) CreateTournament(_ context.Context, t application.Tournament) (application.Tournament, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == "" {
		return application.Tournament{}, fmt.Errorf("%w: tournament id is empty", persistence.ErrConstraintViolation)
	}
	if _, exists := s.tournaments[t.ID]; exists {
		return application.Tournament{}, fmt.Errorf("%w: tournament %q already exists", persistence.ErrConstraintViolation, t.ID)
	}
	s.tournaments[t.ID] = cloneTournament(t)
	return cloneTournament(t), nil
}

// UpdateTournament replaces an existing tournament.
func (s *Storage) UpdateTournament(_ context.Context, t application.Tournament) (application.Tournament, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.tournaments[t.ID]; !exists {
		return application.Tournament{}, fmt.Errorf("%w: tournament %q", persistence.ErrNotFound, t.ID)
	}
	s.tournaments[t.ID] = cloneTournament(t)
	return cloneTournament(t), nil
}

// GetTournament returns one tournament.
func (s *Storage) GetTournament(_ context.Context, id string) (application.Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, exists := s.tournaments[id]
	if !exists {
		return application.Tournament{}, fmt.Errorf("%w: tournament %q", persistence.ErrNotFound, id)
	}
	return cloneTournament(t), nil
}

// ListTournaments returns all tournaments in map order.
func (s *Storage) ListTournaments(_ context.Context) ([]application.Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]application.Tournament, 0, len(s.tournaments))
	for _, t := range s.tournaments {
		out = append(out, cloneTournament(t))
	}
	return out, nil
}

// DeleteTournament removes a tournament.
func (s *Storage) DeleteTournament(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.tournaments[id]; !exists {
		return fmt.Errorf("%w: tournament %q", persistence.ErrNotFound, id)
	}
	delete(s.tournaments, id)
	return nil
}

// CreateMedia stores a new gallery entry.
func (s *Storage) CreateMedia(_ context.Context, item application.MediaItem) (application.MediaItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if item.ID == "" {
		return application.MediaItem{}, fmt.Errorf("%w: media id is empty", persistence.ErrConstraintViolation)
	}
	if _, exists := s.media[item.ID]; exists {
		return application.MediaItem{}, fmt.Errorf("%w: media %q already exists", persistence.ErrConstraintViolation, item.ID)
	}
	s.media[item.ID] = cloneMedia(item)
	return cloneMedia(item), nil
}

// ListMedia returns all gallery entries in map order.
func (s *Storage) ListMedia(_ context.Context) ([]application.MediaItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]application.MediaItem, 0, len(s.media))
	for _, item := range s.media {
		out = append(out, cloneMedia(item))
	}
	return out, nil
}

// DeleteMedia removes a gallery entry.
func (s *Storage) DeleteMedia(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.media[id]; !exists {
		return fmt.Errorf("%w: media %q", persistence.ErrNotFound, id)
	}
	delete(s.media, id)
	return nil
}

// CreateNotification stores a new notification.
func (s *Storage) CreateNotification(_ context.Context, n application.Notification) (application.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n.ID == "" {
		return application.Notification{}, fmt.Errorf("%w: notification id is empty", persistence.ErrConstraintViolation)
	}
	if _, exists := s.notifications[n.ID]; exists {
		return application.Notification{}, fmt.Errorf("%w: notification %q already exists", persistence.ErrConstraintViolation, n.ID)
	}
	s.notifications[n.ID] = cloneNotification(n)
	return cloneNotification(n), nil
}

// ListNotifications returns all notifications in map order.
func (s *Storage) ListNotifications(_ context.Context) ([]application.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]application.Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		out = append(out, cloneNotification(n))
	}
	return out, nil
}
