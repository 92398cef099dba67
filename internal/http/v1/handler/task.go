package handler

import (
	"encoding/json"
	"errors"
	"github.com/go-chi/chi/v5"
	"log/slog"
	"net/http"
	"strconv"
	"team-collab-backend/internal/apperrors"
	"team-collab-backend/internal/domain/models"
	"team-collab-backend/internal/lib/logger/sl"
	"team-collab-backend/internal/service"
)

type (
	CreateTaskRequest struct {
		Title       string  `json:"title"`
		Description *string `json:"description"`
		AssignedTo  int     `json:"assigned_to"`
	}

	BulkTasksRequest struct {
		Title       string  `json:"title"`
		Description *string `json:"description"`
		AssignedTo  []int   `json:"assigned_to"`
	}

	UpdateTaskStatusRequest struct {
		Status string `json:"status"`
	}
)

type TaskHandler struct {
	taskService *service.TaskService
	log         *slog.Logger
}

func NewTaskHandler(taskService *service.TaskService, log *slog.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		log:         log,
	}
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	const op = "handler.task.CreateTask"

	log := h.log.With(slog.String("op", op))

	projectID, ok := intQuery(r, "project_id")
	if !ok {
		log.Error("project_id is required")
		writeError(w, http.StatusBadRequest, "project_id query parameter is required", nil)
		return
	}

	var req CreateTaskRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("invalid request body", sl.Err(err))
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if req.Title == "" {
		log.Error("title is required")
		writeError(w, http.StatusBadRequest, "title is required", nil)
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), models.Task{
		Title:       req.Title,
		Description: req.Description,
		ProjectID:   projectID,
		AssignedTo:  req.AssignedTo,
	})
	if err != nil {
		log.Error("failed to create task", sl.Err(err))
		h.writeTaskError(w, err, "failed to create task")
		return
	}

	writeJSON(w, http.StatusCreated, task)
	log.Info("task created successfully")
}

func (h *TaskHandler) BulkCreateTasks(w http.ResponseWriter, r *http.Request) {
	const op = "handler.task.BulkCreateTasks"

	log := h.log.With(slog.String("op", op))

	projectID, err := strconv.Atoi(chi.URLParam(r, "project_id"))
	if err != nil {
		log.Error("invalid project_id", sl.Err(err))
		writeError(w, http.StatusBadRequest, "invalid project_id", err)
		return
	}

	var req BulkTasksRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("invalid request body", sl.Err(err))
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if req.Title == "" {
		log.Error("title is required")
		writeError(w, http.StatusBadRequest, "title is required", nil)
		return
	}

	if len(req.AssignedTo) == 0 {
		log.Error("assigned_to must not be empty")
		writeError(w, http.StatusBadRequest, "assigned_to must not be empty", nil)
		return
	}

	tasks, err := h.taskService.BulkCreateTasks(r.Context(), projectID, req.Title, req.Description, req.AssignedTo)
	if err != nil {
		log.Error("failed to bulk create tasks", sl.Err(err))
		h.writeTaskError(w, err, "failed to bulk create tasks")
		return
	}

	writeJSON(w, http.StatusCreated, tasks)
	log.Info("tasks created successfully", slog.Int("task_count", len(tasks)))
}

func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	const op = "handler.task.ListTasks"

	log := h.log.With(slog.String("op", op))

	userID, ok := optionalIntQuery(r, "user_id")
	if !ok {
		log.Error("invalid user_id")
		writeError(w, http.StatusBadRequest, "user_id must be an integer", nil)
		return
	}

	projectID, ok := optionalIntQuery(r, "project_id")
	if !ok {
		log.Error("invalid project_id")
		writeError(w, http.StatusBadRequest, "project_id must be an integer", nil)
		return
	}

	tasks, err := h.taskService.ListTasks(r.Context(), userID, projectID)
	if err != nil {
		log.Error("failed to list tasks", sl.Err(err))
		writeError(w, http.StatusInternalServerError, "failed to list tasks", err)
		return
	}

	if tasks == nil {
		tasks = []models.Task{}
	}

	writeJSON(w, http.StatusOK, tasks)
	log.Info("tasks listed successfully", slog.Int("count", len(tasks)))
}

func (h *TaskHandler) UpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	const op = "handler.task.UpdateTaskStatus"

	log := h.log.With(slog.String("op", op))

	taskID, err := strconv.Atoi(chi.URLParam(r, "task_id"))
	if err != nil {
		log.Error("invalid task_id", sl.Err(err))
		writeError(w, http.StatusBadRequest, "invalid task_id", err)
		return
	}

	userID, ok := intQuery(r, "user_id")
	if !ok {
		log.Error("user_id is required")
		writeError(w, http.StatusBadRequest, "user_id query parameter is required", nil)
		return
	}

	var req UpdateTaskStatusRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("invalid request body", sl.Err(err))
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	task, err := h.taskService.UpdateStatus(r.Context(), taskID, req.Status, userID)
	if err != nil {
		log.Error("failed to update task status", sl.Err(err))

		switch {
		case errors.Is(err, apperrors.ErrInvalidStatus):
			writeError(w, http.StatusBadRequest, "status must be one of To-Do, In Progress, Completed", err)
		case errors.Is(err, apperrors.ErrTaskNotFound):
			writeError(w, http.StatusNotFound, "task not found", err)
		case errors.Is(err, apperrors.ErrNotAssignee):
			writeError(w, http.StatusForbidden, "not your task", err)
		default:
			writeError(w, http.StatusInternalServerError, "failed to update task status", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, task)
	log.Info("task status updated successfully")
}

func (h *TaskHandler) AdminTasks(w http.ResponseWriter, r *http.Request) {
	const op = "handler.task.AdminTasks"

	log := h.log.With(slog.String("op", op))

	views, err := h.taskService.AdminTasks(r.Context())
	if err != nil {
		log.Error("failed to get admin tasks", sl.Err(err))
		writeError(w, http.StatusInternalServerError, "failed to get admin tasks", err)
		return
	}

	if views == nil {
		views = []models.TaskAdminView{}
	}

	writeJSON(w, http.StatusOK, views)
	log.Info("admin tasks retrieved successfully", slog.Int("count", len(views)))
}

func (h *TaskHandler) MemberTasks(w http.ResponseWriter, r *http.Request) {
	const op = "handler.task.MemberTasks"

	log := h.log.With(slog.String("op", op))

	userID, ok := intQuery(r, "user_id")
	if !ok {
		log.Error("user_id is required")
		writeError(w, http.StatusBadRequest, "user_id query parameter is required", nil)
		return
	}

	views, err := h.taskService.MemberTasks(r.Context(), userID)
	if err != nil {
		log.Error("failed to get member tasks", sl.Err(err))
		writeError(w, http.StatusInternalServerError, "failed to get member tasks", err)
		return
	}

	if views == nil {
		views = []models.TaskMemberView{}
	}

	writeJSON(w, http.StatusOK, views)
	log.Info("member tasks retrieved successfully", slog.Int("count", len(views)))
}

func (h *TaskHandler) writeTaskError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrProjectNotFound):
		writeError(w, http.StatusNotFound, "project not found", err)
	case errors.Is(err, apperrors.ErrNotTeamMember):
		writeError(w, http.StatusBadRequest, "one or more users are not in the project team", err)
	default:
		writeError(w, http.StatusInternalServerError, fallback, err)
	}
}
