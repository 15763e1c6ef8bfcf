package application

import (
	"context"
	"errors"
	"testing"

	"github.com/example/gym-admin/internal/persistence"
)

type userRepoStub struct {
	users map[string]User
}

func newUserRepoStub(users ...User) *userRepoStub {
	stub := &userRepoStub{users: make(map[string]User)}
	for _, user := range users {
		stub.users[user.ID] = user
	}
	return stub
}

func (r *userRepoStub) CreateUser(ctx context.Context, user User) (User, error) {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return User{}, persistence.ErrConstraintViolation
		}
	}
	r.users[user.ID] = user
	return user, nil
}

func (r *userRepoStub) UpdateUser(ctx context.Context, user User) (User, error) {
	if _, ok := r.users[user.ID]; !ok {
		return User{}, persistence.ErrNotFound
	}
	r.users[user.ID] = user
	return user, nil
}

func (r *userRepoStub) GetUser(ctx context.Context, id string) (User, error) {
	user, ok := r.users[id]
	if !ok {
		return User{}, persistence.ErrNotFound
	}
	return user, nil
}

func (r *userRepoStub) ListUsers(ctx context.Context) ([]User, error) {
	out := make([]User, 0, len(r.users))
	for _, user := range r.users {
		out = append(out, user)
	}
	return out, nil
}

func (r *userRepoStub) DeleteUser(ctx context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return persistence.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func TestUserService_CreateUser(t *testing.T) {
	t.Run("validates the email address format", func(t *testing.T) {
		svc := NewUserService(newUserRepoStub(), nil)

		_, err := svc.CreateUser(context.Background(), "Sam", "not-an-email", CategoryClient, "Member")
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if _, ok := vErr.FieldErrors["email"]; !ok {
			t.Fatalf("expected email validation error, got %v", vErr.FieldErrors)
		}
	})

	t.Run("rejects unknown categories", func(t *testing.T) {
		svc := NewUserService(newUserRepoStub(), nil)

		_, err := svc.CreateUser(context.Background(), "Sam", "sam@example.com", UserCategory("alien"), "Member")
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if _, ok := vErr.FieldErrors["category"]; !ok {
			t.Fatalf("expected category validation error, got %v", vErr.FieldErrors)
		}
	})

	t.Run("new users start active", func(t *testing.T) {
		svc := NewUserService(newUserRepoStub(), func() string { return "u-1" })

		user, err := svc.CreateUser(context.Background(), "Sam", "sam@example.com", CategoryClient, "Member")
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if user.ID != "u-1" || user.Status != UserActive {
			t.Fatalf("unexpected user %+v", user)
		}
	})
}

func TestUserService_ListUsers(t *testing.T) {
	repo := newUserRepoStub(
		User{ID: "u-1", Name: "Zoe", Category: CategoryClient},
		User{ID: "u-2", Name: "Adam", Category: CategoryTrainer},
		User{ID: "u-3", Name: "Mia", Category: CategoryClient},
	)
	svc := NewUserService(repo, nil)

	t.Run("returns all users sorted by name", func(t *testing.T) {
		users, err := svc.ListUsers(context.Background(), "")
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if len(users) != 3 || users[0].Name != "Adam" || users[2].Name != "Zoe" {
			t.Fatalf("unexpected ordering %+v", users)
		}
	})

	t.Run("filters by category", func(t *testing.T) {
		users, err := svc.ListUsers(context.Background(), CategoryClient)
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if len(users) != 2 {
			t.Fatalf("expected 2 clients, got %d", len(users))
		}
	})

	t.Run("rejects invalid categories", func(t *testing.T) {
		_, err := svc.ListUsers(context.Background(), UserCategory("alien"))
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})
}

func TestUserService_BlockUnblock(t *testing.T) {
	t.Run("block marks the user blocked", func(t *testing.T) {
		repo := newUserRepoStub(User{ID: "u-1", Name: "Sam", Status: UserActive})
		svc := NewUserService(repo, nil)

		user, err := svc.BlockUser(context.Background(), "u-1")
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if user.Status != UserBlocked {
			t.Fatalf("expected blocked, got %q", user.Status)
		}
	})

	t.Run("unblock restores active status", func(t *testing.T) {
		repo := newUserRepoStub(User{ID: "u-1", Name: "Sam", Status: UserBlocked})
		svc := NewUserService(repo, nil)

		user, err := svc.UnblockUser(context.Background(), "u-1")
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if user.Status != UserActive {
			t.Fatalf("expected active, got %q", user.Status)
		}
	})

	t.Run("unblocking a non-blocked user is a no-op", func(t *testing.T) {
		repo := newUserRepoStub(User{ID: "u-1", Name: "Sam", Status: UserInactive})
		svc := NewUserService(repo, nil)

		user, err := svc.UnblockUser(context.Background(), "u-1")
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if user.Status != UserInactive {
			t.Fatalf("expected inactive preserved, got %q", user.Status)
		}
	})

	t.Run("propagates ErrNotFound", func(t *testing.T) {
		svc := NewUserService(newUserRepoStub(), nil)
		if _, err := svc.BlockUser(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestUserService_UpdateUser(t *testing.T) {
	t.Run("applies only the provided fields", func(t *testing.T) {
		repo := newUserRepoStub(User{ID: "u-1", Name: "Sam", Email: "sam@example.com", Category: CategoryClient, Role: "Member", Status: UserActive})
		svc := NewUserService(repo, nil)

		name := "Samuel"
		user, err := svc.UpdateUser(context.Background(), "u-1", UserUpdate{Name: &name})
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if user.Name != "Samuel" {
			t.Fatalf("expected updated name, got %q", user.Name)
		}
		if user.Email != "sam@example.com" || user.Role != "Member" {
			t.Fatalf("expected untouched fields preserved, got %+v", user)
		}
	})

	t.Run("rejects invalid status values", func(t *testing.T) {
		repo := newUserRepoStub(User{ID: "u-1", Name: "Sam", Status: UserActive})
		svc := NewUserService(repo, nil)

		bad := UserStatus("frozen")
		_, err := svc.UpdateUser(context.Background(), "u-1", UserUpdate{Status: &bad})
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})
}
