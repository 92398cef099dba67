package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"team-collab-backend/internal/apperrors"
	"team-collab-backend/internal/domain/models"
	"team-collab-backend/internal/lib/logger/sl"
	"team-collab-backend/internal/service"
)

type (
	CreateProjectRequest struct {
		Name        string  `json:"name"`
		Description *string `json:"description"`
		TeamID      int     `json:"team_id"`
	}

	MemberTaskRequest struct {
		UserID    int     `json:"user_id"`
		TaskTitle string  `json:"task_title"`
		TaskDesc  *string `json:"task_desc"`
	}

	ProjectWithTasksRequest struct {
		Name        string              `json:"name"`
		Description *string             `json:"description"`
		TeamID      int                 `json:"team_id"`
		Members     []MemberTaskRequest `json:"members"`
	}

	ProjectWithTasksResponse struct {
		Project models.Project `json:"project"`
		Tasks   []models.Task  `json:"tasks"`
	}
)

type ProjectHandler struct {
	projectService *service.ProjectService
	log            *slog.Logger
}

func NewProjectHandler(projectService *service.ProjectService, log *slog.Logger) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		log:            log,
	}
}

func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	const op = "handler.project.CreateProject"

	log := h.log.With(slog.String("op", op))

	adminID, ok := intQuery(r, "admin_id")
	if !ok {
		log.Error("admin_id is required")
		writeError(w, http.StatusBadRequest, "admin_id query parameter is required", nil)
		return
	}

	var req CreateProjectRequest

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

	project, err := h.projectService.CreateProject(r.Context(), models.Project{
		Name:        req.Name,
		Description: req.Description,
		TeamID:      req.TeamID,
		CreatedBy:   adminID,
	})
	if err != nil {
		log.Error("failed to create project", sl.Err(err))

		if errors.Is(err, apperrors.ErrNotTeamMember) {
			writeError(w, http.StatusBadRequest, "admin must be part of the team", err)
		} else {
			writeError(w, http.StatusInternalServerError, "failed to create project", err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, project)
	log.Info("project created successfully")
}

func (h *ProjectHandler) CreateProjectWithTasks(w http.ResponseWriter, r *http.Request) {
	const op = "handler.project.CreateProjectWithTasks"

	log := h.log.With(slog.String("op", op))

	adminID, ok := intQuery(r, "admin_id")
	if !ok {
		log.Error("admin_id is required")
		writeError(w, http.StatusBadRequest, "admin_id query parameter is required", nil)
		return
	}

	var req ProjectWithTasksRequest

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

	for i, member := range req.Members {
		if member.TaskTitle == "" {
			log.Error("task_title is required for all members", slog.Int("member_index", i))
			writeError(w, http.StatusBadRequest,
				fmt.Sprintf("task_title is required for member at index %d", i), nil)
			return
		}
	}

	members := make([]service.MemberTask, 0, len(req.Members))
	for _, member := range req.Members {
		members = append(members, service.MemberTask{
			UserID:      member.UserID,
			Title:       member.TaskTitle,
			Description: member.TaskDesc,
		})
	}

	project, tasks, err := h.projectService.CreateProjectWithTasks(r.Context(), models.Project{
		Name:        req.Name,
		Description: req.Description,
		TeamID:      req.TeamID,
		CreatedBy:   adminID,
	}, members)
	if err != nil {
		log.Error("failed to create project with tasks", sl.Err(err))

		if errors.Is(err, apperrors.ErrNotTeamMember) {
			writeError(w, http.StatusBadRequest, "admin must be in the team", err)
		} else {
			writeError(w, http.StatusInternalServerError, "failed to create project with tasks", err)
		}
		return
	}

	if tasks == nil {
		tasks = []models.Task{}
	}

	writeJSON(w, http.StatusCreated, ProjectWithTasksResponse{
		Project: project,
		Tasks:   tasks,
	})
	log.Info("project with tasks created successfully", slog.Int("task_count", len(tasks)))
}

func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	const op = "handler.project.ListProjects"

	log := h.log.With(slog.String("op", op))

	teamID, ok := intQuery(r, "team_id")
	if !ok {
		log.Error("team_id is required")
		writeError(w, http.StatusBadRequest, "team_id query parameter is required", nil)
		return
	}

	projects, err := h.projectService.ListProjects(r.Context(), teamID)
	if err != nil {
		log.Error("failed to list projects", sl.Err(err))
		writeError(w, http.StatusInternalServerError, "failed to list projects", err)
		return
	}

	if projects == nil {
		projects = []models.Project{}
	}

	writeJSON(w, http.StatusOK, projects)
	log.Info("projects listed successfully", slog.Int("count", len(projects)))
}
