package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"team-collab-backend/internal/apperrors"
	"team-collab-backend/internal/domain/models"
	"team-collab-backend/internal/lib/logger/sl"
	"team-collab-backend/internal/service"
)

type (
	SignupRequest struct {
		Name     string  `json:"name"`
		Email    string  `json:"email"`
		Password string  `json:"password"`
		IsAdmin  bool    `json:"is_admin"`
		Role     *string `json:"role"`
	}

	LoginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
)

type AuthHandler struct {
	authService *service.AuthService
	log         *slog.Logger
}

func NewAuthHandler(authService *service.AuthService, log *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		log:         log,
	}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	const op = "handler.auth.Signup"

	log := h.log.With(slog.String("op", op))

	var req SignupRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("invalid request body", sl.Err(err))
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if len(req.Name) < 3 {
		log.Error("name must be at least 3 characters")
		writeError(w, http.StatusBadRequest, "name must be at least 3 characters", nil)
		return
	}

	if !strings.Contains(req.Email, "@") {
		log.Error("invalid email address")
		writeError(w, http.StatusBadRequest, "a valid email is required", nil)
		return
	}

	if len(req.Password) < 6 {
		log.Error("password must be at least 6 characters")
		writeError(w, http.StatusBadRequest, "password must be at least 6 characters", nil)
		return
	}

	user, err := h.authService.Signup(r.Context(), models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		IsAdmin:  req.IsAdmin,
		Role:     req.Role,
	})
	if err != nil {
		log.Error("failed to sign up user", sl.Err(err))

		if errors.Is(err, apperrors.ErrEmailTaken) {
			writeError(w, http.StatusConflict, "email already registered", err)
		} else {
			writeError(w, http.StatusInternalServerError, "failed to sign up user", err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, user)
	log.Info("user signed up successfully")
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	const op = "handler.auth.Login"

	log := h.log.With(slog.String("op", op))

	var req LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("invalid request body", sl.Err(err))
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if req.Email == "" || req.Password == "" {
		log.Error("email and password are required")
		writeError(w, http.StatusBadRequest, "email and password are required", nil)
		return
	}

	user, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		log.Error("failed to log in user", sl.Err(err))

		switch {
		case errors.Is(err, apperrors.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "no account found with this email", err)
		case errors.Is(err, apperrors.ErrWrongPassword):
			writeError(w, http.StatusUnauthorized, "the password you entered is incorrect", err)
		default:
			writeError(w, http.StatusInternalServerError, "failed to log in", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, user)
	log.Info("user logged in successfully")
}

func (h *AuthHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	const op = "handler.auth.ListUsers"

	log := h.log.With(slog.String("op", op))

	users, err := h.authService.ListUsers(r.Context())
	if err != nil {
		log.Error("failed to list users", sl.Err(err))
		writeError(w, http.StatusInternalServerError, "failed to list users", err)
		return
	}

	if users == nil {
		users = []models.User{}
	}

	writeJSON(w, http.StatusOK, users)
	log.Info("users listed successfully", slog.Int("count", len(users)))
}
