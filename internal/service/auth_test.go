package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"team-collab-backend/internal/apperrors"
	"team-collab-backend/internal/domain/models"
	"team-collab-backend/internal/lib/hasher"
)

type fakeUserRepo struct {
	users  map[string]models.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]models.User)}
}

func (f *fakeUserRepo) CreateUser(user models.User) (models.User, error) {
	if _, ok := f.users[user.Email]; ok {
		return models.User{}, fmt.Errorf("repo: %w", apperrors.ErrEmailTaken)
	}
	f.nextID++
	user.ID = f.nextID
	f.users[user.Email] = user
	return user, nil
}

func (f *fakeUserRepo) EmailExists(email string) (bool, error) {
	_, ok := f.users[email]
	return ok, nil
}

func (f *fakeUserRepo) GetByEmail(email string) (models.User, error) {
	user, ok := f.users[email]
	if !ok {
		return models.User{}, fmt.Errorf("repo: %w", apperrors.ErrUserNotFound)
	}
	return user, nil
}

func (f *fakeUserRepo) ListUsers() ([]models.User, error) {
	users := make([]models.User, 0, len(f.users))
	for _, user := range f.users {
		users = append(users, user)
	}
	return users, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newAuthService(repo *fakeUserRepo) *AuthService {
	return NewAuthService(discardLogger(), repo, hasher.New(4))
}

func TestSignupAssignsUniqueIDs(t *testing.T) {
	svc := newAuthService(newFakeUserRepo())

	ana, err := svc.Signup(context.Background(), models.User{Name: "Ana", Email: "ana@x.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	bob, err := svc.Signup(context.Background(), models.User{Name: "Bob", Email: "bob@x.com", Password: "secret2"})
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	if ana.ID == bob.ID {
		t.Fatalf("expected distinct user ids, both got %d", ana.ID)
	}
	if ana.Password == "secret1" {
		t.Fatal("plaintext password was persisted")
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc := newAuthService(newFakeUserRepo())

	if _, err := svc.Signup(context.Background(), models.User{Name: "Ana", Email: "ana@x.com", Password: "secret1"}); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}

	_, err := svc.Signup(context.Background(), models.User{Name: "Ana Again", Email: "ana@x.com", Password: "secret1"})
	if !errors.Is(err, apperrors.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo)

	created, err := svc.Signup(context.Background(), models.User{Name: "Ana", Email: "ana@x.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	user, err := svc.Login(context.Background(), "ana@x.com", "secret1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.ID != created.ID {
		t.Fatalf("expected user %d, got %d", created.ID, user.ID)
	}

	_, err = svc.Login(context.Background(), "ana@x.com", "wrongpass")
	if !errors.Is(err, apperrors.ErrWrongPassword) {
		t.Fatalf("expected ErrWrongPassword, got %v", err)
	}

	_, err = svc.Login(context.Background(), "nobody@x.com", "secret1")
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
