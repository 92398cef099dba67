package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"team-collab-backend/internal/apperrors"
	"team-collab-backend/internal/domain/models"
	"team-collab-backend/internal/lib/logger/sl"
)

type AuthService struct {
	log      *slog.Logger
	userRepo UserProvider
	hasher   PasswordHasher
}

type UserProvider interface {
	CreateUser(user models.User) (models.User, error)
	EmailExists(email string) (bool, error)
	GetByEmail(email string) (models.User, error)
	ListUsers() ([]models.User, error)
}

type PasswordHasher interface {
	Hash(password []byte) (string, error)
	Compare(hash string, password []byte) error
}

func NewAuthService(
	log *slog.Logger,
	userRepo UserProvider,
	hasher PasswordHasher) *AuthService {
	return &AuthService{
		log:      log,
		userRepo: userRepo,
		hasher:   hasher,
	}
}

// Signup registers a new user, storing only the bcrypt hash of the password.
// A duplicate email fails with apperrors.ErrEmailTaken; two racing signups
// resolve through the unique index on users.email to the same error.
func (s *AuthService) Signup(ctx context.Context, user models.User) (models.User, error) {
	const op = "service.auth.Signup"

	log := s.log.With(
		slog.String("op", op),
		slog.String("email", user.Email),
	)

	log.Info("attempting to sign up user")

	taken, err := s.userRepo.EmailExists(user.Email)
	if err != nil {
		log.Error("failed to check email", sl.Err(err))
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}
	if taken {
		log.Warn("email already registered")
		return models.User{}, fmt.Errorf("%s: %w", op, apperrors.ErrEmailTaken)
	}

	hash, err := s.hasher.Hash([]byte(user.Password))
	if err != nil {
		log.Error("failed to hash password", sl.Err(err))
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}
	user.Password = hash

	created, err := s.userRepo.CreateUser(user)
	if err != nil {
		log.Error("failed to create user", sl.Err(err))
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user signed up successfully", slog.Int("user_id", created.ID))

	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (models.User, error) {
	const op = "service.auth.Login"

	log := s.log.With(
		slog.String("op", op),
		slog.String("email", email),
	)

	log.Info("attempting to log in user")

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			log.Warn("no account with this email")
		} else {
			log.Error("failed to get user", sl.Err(err))
		}
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.hasher.Compare(user.Password, []byte(password)); err != nil {
		log.Warn("password mismatch")
		return models.User{}, fmt.Errorf("%s: %w", op, apperrors.ErrWrongPassword)
	}

	log.Info("user logged in successfully", slog.Int("user_id", user.ID))

	return user, nil
}

func (s *AuthService) ListUsers(ctx context.Context) ([]models.User, error) {
	const op = "service.auth.ListUsers"

	log := s.log.With(slog.String("op", op))

	users, err := s.userRepo.ListUsers()
	if err != nil {
		log.Error("failed to list users", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("users listed successfully", slog.Int("count", len(users)))

	return users, nil
}
