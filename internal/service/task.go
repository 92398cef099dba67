package service

import (
	"context"
	"fmt"
	"log/slog"
	"team-collab-backend/internal/apperrors"
	"team-collab-backend/internal/domain/models"
	"team-collab-backend/internal/lib/logger/sl"
)

type TaskService struct {
	log      *slog.Logger
	taskRepo TaskProvider
}

type TaskProvider interface {
	GetProject(projectID int) (models.Project, error)
	IsTeamMember(teamID, userID int) (bool, error)
	TeamMemberIDsAmong(teamID int, userIDs []int) ([]int, error)
	CreateTask(task models.Task) (models.Task, error)
	BulkCreateTasks(projectID int, title string, description *string, assigneeIDs []int) ([]models.Task, error)
	ListTasks(userID, projectID *int) ([]models.Task, error)
	GetTask(taskID int) (models.Task, error)
	UpdateStatus(taskID int, status string) (models.Task, error)
	AdminTaskViews() ([]models.TaskAdminView, error)
	MemberTaskViews(userID int) ([]models.TaskMemberView, error)
}

func NewTaskService(
	log *slog.Logger,
	taskRepo TaskProvider) *TaskService {
	return &TaskService{
		log:      log,
		taskRepo: taskRepo,
	}
}

// CreateTask creates a task in a project. The assignee must be a member of
// the team owning the project.
func (s *TaskService) CreateTask(ctx context.Context, task models.Task) (models.Task, error) {
	const op = "service.task.CreateTask"

	log := s.log.With(
		slog.String("op", op),
		slog.Int("project_id", task.ProjectID),
		slog.Int("assigned_to", task.AssignedTo),
	)

	log.Info("attempting to create task")

	project, err := s.taskRepo.GetProject(task.ProjectID)
	if err != nil {
		log.Error("failed to get project", sl.Err(err))
		return models.Task{}, fmt.Errorf("%s: %w", op, err)
	}

	isMember, err := s.taskRepo.IsTeamMember(project.TeamID, task.AssignedTo)
	if err != nil {
		log.Error("failed to check assignee membership", sl.Err(err))
		return models.Task{}, fmt.Errorf("%s: %w", op, err)
	}
	if !isMember {
		log.Warn("assignee is not a member of the project team")
		return models.Task{}, fmt.Errorf("%s: %w", op, apperrors.ErrNotTeamMember)
	}

	created, err := s.taskRepo.CreateTask(task)
	if err != nil {
		log.Error("failed to create task", sl.Err(err))
		return models.Task{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("task created successfully", slog.Int("task_id", created.ID))

	return created, nil
}

// BulkCreateTasks creates one identical task per assignee. Every assignee
// must resolve to a member of the project's team or nothing is created.
func (s *TaskService) BulkCreateTasks(ctx context.Context, projectID int, title string, description *string, assigneeIDs []int) ([]models.Task, error) {
	const op = "service.task.BulkCreateTasks"

	log := s.log.With(
		slog.String("op", op),
		slog.Int("project_id", projectID),
	)

	log.Info("attempting to bulk create tasks", slog.Int("assignee_count", len(assigneeIDs)))

	project, err := s.taskRepo.GetProject(projectID)
	if err != nil {
		log.Error("failed to get project", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	members, err := s.taskRepo.TeamMemberIDsAmong(project.TeamID, assigneeIDs)
	if err != nil {
		log.Error("failed to resolve team members", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(members) != len(assigneeIDs) {
		log.Warn("one or more assignees are not in the project team")
		return nil, fmt.Errorf("%s: %w", op, apperrors.ErrNotTeamMember)
	}

	tasks, err := s.taskRepo.BulkCreateTasks(projectID, title, description, assigneeIDs)
	if err != nil {
		log.Error("failed to bulk create tasks", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("tasks created successfully", slog.Int("task_count", len(tasks)))

	return tasks, nil
}

// ListTasks filters by assignee and/or project, intersecting when both
// filters are present.
func (s *TaskService) ListTasks(ctx context.Context, userID, projectID *int) ([]models.Task, error) {
	const op = "service.task.ListTasks"

	log := s.log.With(slog.String("op", op))

	tasks, err := s.taskRepo.ListTasks(userID, projectID)
	if err != nil {
		log.Error("failed to list tasks", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("tasks listed successfully", slog.Int("count", len(tasks)))

	return tasks, nil
}

// UpdateStatus sets a task's status. Only the current assignee may update it,
// and the value must be one of the three known statuses. There are no
// transition rules between statuses.
func (s *TaskService) UpdateStatus(ctx context.Context, taskID int, status string, userID int) (models.Task, error) {
	const op = "service.task.UpdateStatus"

	log := s.log.With(
		slog.String("op", op),
		slog.Int("task_id", taskID),
		slog.Int("user_id", userID),
	)

	log.Info("attempting to update task status", slog.String("status", status))

	if !models.ValidStatus(status) {
		log.Warn("invalid status value")
		return models.Task{}, fmt.Errorf("%s: %w", op, apperrors.ErrInvalidStatus)
	}

	task, err := s.taskRepo.GetTask(taskID)
	if err != nil {
		log.Error("failed to get task", sl.Err(err))
		return models.Task{}, fmt.Errorf("%s: %w", op, err)
	}

	if task.AssignedTo != userID {
		log.Warn("caller is not the task assignee", slog.Int("assigned_to", task.AssignedTo))
		return models.Task{}, fmt.Errorf("%s: %w", op, apperrors.ErrNotAssignee)
	}

	updated, err := s.taskRepo.UpdateStatus(taskID, status)
	if err != nil {
		log.Error("failed to update task status", sl.Err(err))
		return models.Task{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("task status updated successfully")

	return updated, nil
}

func (s *TaskService) AdminTasks(ctx context.Context) ([]models.TaskAdminView, error) {
	const op = "service.task.AdminTasks"

	log := s.log.With(slog.String("op", op))

	views, err := s.taskRepo.AdminTaskViews()
	if err != nil {
		log.Error("failed to get admin task views", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("admin task views retrieved", slog.Int("count", len(views)))

	return views, nil
}

func (s *TaskService) MemberTasks(ctx context.Context, userID int) ([]models.TaskMemberView, error) {
	const op = "service.task.MemberTasks"

	log := s.log.With(
		slog.String("op", op),
		slog.Int("user_id", userID),
	)

	views, err := s.taskRepo.MemberTaskViews(userID)
	if err != nil {
		log.Error("failed to get member task views", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("member task views retrieved", slog.Int("count", len(views)))

	return views, nil
}
