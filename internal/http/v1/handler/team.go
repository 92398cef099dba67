package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"team-collab-backend/internal/apperrors"
	"team-collab-backend/internal/domain/models"
	"team-collab-backend/internal/lib/logger/sl"
	"team-collab-backend/internal/service"
)

type CreateTeamRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	MemberIDs   []int   `json:"member_ids"`
}

type TeamHandler struct {
	teamService *service.TeamService
	log         *slog.Logger
}

func NewTeamHandler(teamService *service.TeamService, log *slog.Logger) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
		log:         log,
	}
}

func (h *TeamHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	const op = "handler.team.CreateTeam"

	log := h.log.With(slog.String("op", op))

	adminID, ok := intQuery(r, "admin_id")
	if !ok {
		log.Error("admin_id is required")
		writeError(w, http.StatusBadRequest, "admin_id query parameter is required", nil)
		return
	}

	var req CreateTeamRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("invalid request body", sl.Err(err))
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if req.Name == "" {
		log.Error("name is required")
		writeError(w, http.StatusBadRequest, "name is required", nil)
		return
	}

	team, err := h.teamService.CreateTeam(r.Context(), models.Team{
		Name:        req.Name,
		Description: req.Description,
		CreatedBy:   adminID,
	}, req.MemberIDs)
	if err != nil {
		log.Error("failed to create team", sl.Err(err))

		if errors.Is(err, apperrors.ErrMemberNotFound) {
			writeError(w, http.StatusBadRequest, "one or more user IDs are invalid", err)
		} else {
			writeError(w, http.StatusInternalServerError, "failed to create team", err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, team)
	log.Info("team created successfully")
}

func (h *TeamHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	const op = "handler.team.ListTeams"

	log := h.log.With(slog.String("op", op))

	teams, err := h.teamService.ListTeams(r.Context())
	if err != nil {
		log.Error("failed to list teams", sl.Err(err))
		writeError(w, http.StatusInternalServerError, "failed to list teams", err)
		return
	}

	if teams == nil {
		teams = []models.TeamSummary{}
	}

	writeJSON(w, http.StatusOK, teams)
	log.Info("teams listed successfully", slog.Int("count", len(teams)))
}
