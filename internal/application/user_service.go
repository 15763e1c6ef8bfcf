package application

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"sort"
	"strings"
)

// UserRepository captures the persistence operations for the user directory.
type UserRepository interface {
	CreateUser(ctx context.Context, user User) (User, error)
	UpdateUser(ctx context.Context, user User) (User, error)
	GetUser(ctx context.Context, id string) (User, error)
	ListUsers(ctx context.Context) ([]User, error)
	DeleteUser(ctx context.Context, id string) error
}

// UserService manages the unified user directory. The directory is a flat
// administrative view; it does not drive authentication.
type UserService struct {
	users       UserRepository
	idGenerator func() string
	logger      *slog.Logger
}

// NewUserService constructs a user service with the provided dependencies.
func NewUserService(users UserRepository, idGenerator func() string) *UserService {
	return NewUserServiceWithLogger(users, idGenerator, nil)
}

// NewUserServiceWithLogger constructs a user service with a specified logger.
func NewUserServiceWithLogger(users UserRepository, idGenerator func() string, logger *slog.Logger) *UserService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	return &UserService{users: users, idGenerator: idGenerator, logger: defaultLogger(logger)}
}

func (s *UserService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "UserService", operation, attrs...)
}

// ListUsers returns directory users ordered by name. When category is
// non-empty only users tagged with that category are returned.
func (s *UserService) ListUsers(ctx context.Context, category UserCategory) ([]User, error) {
	if s == nil || s.users == nil {
		return nil, fmt.Errorf("user repository not configured")
	}
	if category != "" && !validUserCategory(category) {
		vErr := &ValidationError{}
		vErr.add("category", "category is invalid")
		return nil, vErr
	}

	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, mapRepoError(err)
	}

	out := make([]User, 0, len(users))
	for _, u := range users {
		if category != "" && u.Category != category {
			continue
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name == out[j].Name {
			return out[i].ID < out[j].ID
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// GetUser returns a single directory user.
func (s *UserService) GetUser(ctx context.Context, id string) (User, error) {
	if s == nil || s.users == nil {
		return User{}, fmt.Errorf("user repository not configured")
	}
	user, err := s.users.GetUser(ctx, id)
	if err != nil {
		return User{}, mapRepoError(err)
	}
	return user, nil
}

// CreateUser validates input and adds a directory entry. New users start active.
func (s *UserService) CreateUser(ctx context.Context, name, email string, category UserCategory, role string) (user User, err error) {
	if s == nil || s.users == nil {
		err = fmt.Errorf("user repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "CreateUser", "category", string(category))
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create user", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("user_id", user.ID).InfoContext(ctx, "user created")
	}()

	vErr := &ValidationError{}
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" {
		vErr.add("name", "name is required")
	}
	if email == "" {
		vErr.add("email", "email is required")
	} else if _, perr := mail.ParseAddress(email); perr != nil {
		vErr.add("email", "email is invalid")
	}
	if !validUserCategory(category) {
		vErr.add("category", "category is invalid")
	}
	if vErr.HasErrors() {
		err = vErr
		return
	}

	user = User{
		ID:       s.idGenerator(),
		Name:     name,
		Email:    email,
		Category: category,
		Role:     strings.TrimSpace(role),
		Status:   UserActive,
	}

	persisted, perr := s.users.CreateUser(ctx, user)
	if perr != nil {
		err = mapRepoError(perr)
		return
	}
	user = persisted
	return
}

// UpdateUser applies a partial update to a directory user. Nil fields in the
// update are left unchanged; the category tag is immutable after creation.
func (s *UserService) UpdateUser(ctx context.Context, id string, update UserUpdate) (user User, err error) {
	if s == nil || s.users == nil {
		err = fmt.Errorf("user repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "UpdateUser", "user_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update user", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "user updated")
	}()

	existing, gerr := s.users.GetUser(ctx, id)
	if gerr != nil {
		err = mapRepoError(gerr)
		return
	}

	vErr := &ValidationError{}
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			vErr.add("name", "name is required")
		}
		existing.Name = name
	}
	if update.Email != nil {
		email := strings.TrimSpace(*update.Email)
		if email == "" {
			vErr.add("email", "email is required")
		} else if _, perr := mail.ParseAddress(email); perr != nil {
			vErr.add("email", "email is invalid")
		}
		existing.Email = email
	}
	if update.Role != nil {
		existing.Role = strings.TrimSpace(*update.Role)
	}
	if update.Status != nil {
		switch *update.Status {
		case UserActive, UserInactive, UserBlocked:
			existing.Status = *update.Status
		default:
			vErr.add("status", "status is invalid")
		}
	}
	if update.LastActive != nil {
		existing.LastActive = *update.LastActive
	}
	if update.Subscription != nil {
		existing.Subscription = cloneString(update.Subscription)
	}
	if vErr.HasErrors() {
		err = vErr
		return
	}

	persisted, perr := s.users.UpdateUser(ctx, existing)
	if perr != nil {
		err = mapRepoError(perr)
		return
	}
	user = persisted
	return
}

// BlockUser denies a user access. Blocking is idempotent.
func (s *UserService) BlockUser(ctx context.Context, id string) (User, error) {
	return s.setUserStatus(ctx, "BlockUser", id, UserBlocked)
}

// UnblockUser restores a blocked user to active. Unblocking a user who is not
// blocked leaves the status unchanged.
func (s *UserService) UnblockUser(ctx context.Context, id string) (User, error) {
	if s == nil || s.users == nil {
		return User{}, fmt.Errorf("user repository not configured")
	}
	existing, err := s.users.GetUser(ctx, id)
	if err != nil {
		return User{}, mapRepoError(err)
	}
	if existing.Status != UserBlocked {
		return existing, nil
	}
	return s.setUserStatus(ctx, "UnblockUser", id, UserActive)
}

// DeleteUser removes a directory entry.
func (s *UserService) DeleteUser(ctx context.Context, id string) (err error) {
	if s == nil || s.users == nil {
		return fmt.Errorf("user repository not configured")
	}

	logger := s.loggerWith(ctx, "DeleteUser", "user_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to delete user", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "user deleted")
	}()

	if derr := s.users.DeleteUser(ctx, id); derr != nil {
		err = mapRepoError(derr)
	}
	return
}

func (s *UserService) setUserStatus(ctx context.Context, operation, id string, status UserStatus) (user User, err error) {
	if s == nil || s.users == nil {
		err = fmt.Errorf("user repository not configured")
		return
	}

	logger := s.loggerWith(ctx, operation, "user_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to change user status", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("status", string(status)).InfoContext(ctx, "user status changed")
	}()

	existing, gerr := s.users.GetUser(ctx, id)
	if gerr != nil {
		err = mapRepoError(gerr)
		return
	}

	existing.Status = status
	persisted, perr := s.users.UpdateUser(ctx, existing)
	if perr != nil {
		err = mapRepoError(perr)
		return
	}
	user = persisted
	return
}

func validUserCategory(category UserCategory) bool {
	switch category {
	case CategoryClient, CategoryTrainer, CategoryMasseur, CategoryManager:
		return true
	}
	return false
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
