package repo

import (
	"database/sql"
	"errors"
	"fmt"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"team-collab-backend/internal/apperrors"
	"team-collab-backend/internal/domain/models"
)

type UserRepo struct {
	storage *sqlx.DB
}

func NewUserRepo(storage *sqlx.DB) *UserRepo {
	return &UserRepo{storage: storage}
}

func (r *UserRepo) CreateUser(user models.User) (models.User, error) {
	const op = "repo.user.CreateUser"

	query := `
		INSERT INTO users (name, email, password, is_admin, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, email, password, is_admin, role
	`

	var created models.User
	err := r.storage.QueryRowx(query,
		user.Name, user.Email, user.Password, user.IsAdmin, user.Role).StructScan(&created)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, fmt.Errorf("%s: %w", op, apperrors.ErrEmailTaken)
		}
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return created, nil
}

func (r *UserRepo) EmailExists(email string) (bool, error) {
	const op = "repo.user.EmailExists"

	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`

	var exists bool
	err := r.storage.Get(&exists, query, email)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return exists, nil
}

func (r *UserRepo) GetByEmail(email string) (models.User, error) {
	const op = "repo.user.GetByEmail"

	query := `SELECT id, name, email, password, is_admin, role FROM users WHERE email = $1`

	var user models.User
	err := r.storage.Get(&user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, fmt.Errorf("%s: %w", op, apperrors.ErrUserNotFound)
		}
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

func (r *UserRepo) ListUsers() ([]models.User, error) {
	const op = "repo.user.ListUsers"

	query := `SELECT id, name, email, password, is_admin, role FROM users ORDER BY id`

	var users []models.User
	err := r.storage.Select(&users, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return users, nil
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation (code 23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
