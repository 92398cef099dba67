package service

import (
	"context"
	"fmt"
	"log/slog"
	"team-collab-backend/internal/apperrors"
	"team-collab-backend/internal/domain/models"
	"team-collab-backend/internal/lib/logger/sl"
)

type ProjectService struct {
	log         *slog.Logger
	projectRepo ProjectProvider
}

type ProjectProvider interface {
	IsTeamMember(teamID, userID int) (bool, error)
	CreateProject(project models.Project) (models.Project, error)
	CreateProjectWithTasks(project models.Project, tasks []models.Task) (models.Project, []models.Task, error)
	ListProjects(teamID int) ([]models.Project, error)
}

// MemberTask is one per-member task entry of the project-with-tasks flow.
type MemberTask struct {
	UserID      int
	Title       string
	Description *string
}

func NewProjectService(
	log *slog.Logger,
	projectRepo ProjectProvider) *ProjectService {
	return &ProjectService{
		log:         log,
		projectRepo: projectRepo,
	}
}

// CreateProject creates a project under a team. The creating admin must be a
// member of that team.
func (s *ProjectService) CreateProject(ctx context.Context, project models.Project) (models.Project, error) {
	const op = "service.project.CreateProject"

	log := s.log.With(
		slog.String("op", op),
		slog.String("project_name", project.Name),
		slog.Int("team_id", project.TeamID),
	)

	log.Info("attempting to create project")

	isMember, err := s.projectRepo.IsTeamMember(project.TeamID, project.CreatedBy)
	if err != nil {
		log.Error("failed to check admin membership", sl.Err(err))
		return models.Project{}, fmt.Errorf("%s: %w", op, err)
	}
	if !isMember {
		log.Warn("admin is not a member of the team", slog.Int("admin_id", project.CreatedBy))
		return models.Project{}, fmt.Errorf("%s: %w", op, apperrors.ErrNotTeamMember)
	}

	created, err := s.projectRepo.CreateProject(project)
	if err != nil {
		log.Error("failed to create project", sl.Err(err))
		return models.Project{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("project created successfully", slog.Int("project_id", created.ID))

	return created, nil
}

// CreateProjectWithTasks creates a project and one task per member entry in
// the same logical operation. Only the creating admin's membership is
// verified; the per-member assignees are not checked against the team, which
// matches the single-task path's historic behavior gap.
func (s *ProjectService) CreateProjectWithTasks(ctx context.Context, project models.Project, members []MemberTask) (models.Project, []models.Task, error) {
	const op = "service.project.CreateProjectWithTasks"

	log := s.log.With(
		slog.String("op", op),
		slog.String("project_name", project.Name),
		slog.Int("team_id", project.TeamID),
	)

	log.Info("attempting to create project with tasks")

	isMember, err := s.projectRepo.IsTeamMember(project.TeamID, project.CreatedBy)
	if err != nil {
		log.Error("failed to check admin membership", sl.Err(err))
		return models.Project{}, nil, fmt.Errorf("%s: %w", op, err)
	}
	if !isMember {
		log.Warn("admin is not a member of the team", slog.Int("admin_id", project.CreatedBy))
		return models.Project{}, nil, fmt.Errorf("%s: %w", op, apperrors.ErrNotTeamMember)
	}

	tasks := make([]models.Task, 0, len(members))
	for _, member := range members {
		tasks = append(tasks, models.Task{
			Title:       member.Title,
			Description: member.Description,
			AssignedTo:  member.UserID,
		})
	}

	created, createdTasks, err := s.projectRepo.CreateProjectWithTasks(project, tasks)
	if err != nil {
		log.Error("failed to create project with tasks", sl.Err(err))
		return models.Project{}, nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("project created successfully",
		slog.Int("project_id", created.ID),
		slog.Int("task_count", len(createdTasks)))

	return created, createdTasks, nil
}

func (s *ProjectService) ListProjects(ctx context.Context, teamID int) ([]models.Project, error) {
	const op = "service.project.ListProjects"

	log := s.log.With(
		slog.String("op", op),
		slog.Int("team_id", teamID),
	)

	projects, err := s.projectRepo.ListProjects(teamID)
	if err != nil {
		log.Error("failed to list projects", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("projects listed successfully", slog.Int("count", len(projects)))

	return projects, nil
}
