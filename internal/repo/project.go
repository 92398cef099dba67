package repo

import (
	"fmt"
	"github.com/jmoiron/sqlx"
	"team-collab-backend/internal/domain/models"
)

type ProjectRepo struct {
	storage *sqlx.DB
}

func NewProjectRepo(storage *sqlx.DB) *ProjectRepo {
	return &ProjectRepo{storage: storage}
}

func (r *ProjectRepo) IsTeamMember(teamID, userID int) (bool, error) {
	const op = "repo.project.IsTeamMember"

	query := `SELECT EXISTS(SELECT 1 FROM team_members WHERE team_id = $1 AND user_id = $2)`

	var isMember bool
	err := r.storage.Get(&isMember, query, teamID, userID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return isMember, nil
}

func (r *ProjectRepo) CreateProject(project models.Project) (models.Project, error) {
	const op = "repo.project.CreateProject"

	query := `
		INSERT INTO projects (name, description, team_id, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, description, team_id, created_by
	`

	var created models.Project
	err := r.storage.QueryRowx(query,
		project.Name, project.Description, project.TeamID, project.CreatedBy).StructScan(&created)
	if err != nil {
		return models.Project{}, fmt.Errorf("%s: %w", op, err)
	}

	return created, nil
}

// CreateProjectWithTasks inserts the project and its initial tasks in one
// transaction. The tasks' ProjectID is taken from the new project row.
func (r *ProjectRepo) CreateProjectWithTasks(project models.Project, tasks []models.Task) (models.Project, []models.Task, error) {
	const op = "repo.project.CreateProjectWithTasks"

	tx, err := r.storage.Beginx()
	if err != nil {
		return models.Project{}, nil, fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback()

	projectQuery := `
		INSERT INTO projects (name, description, team_id, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, description, team_id, created_by
	`

	var created models.Project
	err = tx.QueryRowx(projectQuery,
		project.Name, project.Description, project.TeamID, project.CreatedBy).StructScan(&created)
	if err != nil {
		return models.Project{}, nil, fmt.Errorf("%s: failed to create project: %w", op, err)
	}

	taskQuery := `
		INSERT INTO tasks (title, description, status, project_id, assigned_to)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, title, description, status, project_id, assigned_to
	`

	createdTasks := make([]models.Task, 0, len(tasks))
	for _, task := range tasks {
		var createdTask models.Task
		err = tx.QueryRowx(taskQuery,
			task.Title, task.Description, models.StatusToDo, created.ID, task.AssignedTo).StructScan(&createdTask)
		if err != nil {
			return models.Project{}, nil, fmt.Errorf("%s: failed to create task for user %d: %w", op, task.AssignedTo, err)
		}
		createdTasks = append(createdTasks, createdTask)
	}

	if err := tx.Commit(); err != nil {
		return models.Project{}, nil, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	return created, createdTasks, nil
}

func (r *ProjectRepo) ListProjects(teamID int) ([]models.Project, error) {
	const op = "repo.project.ListProjects"

	query := `SELECT id, name, description, team_id, created_by FROM projects WHERE team_id = $1 ORDER BY id`

	var projects []models.Project
	err := r.storage.Select(&projects, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return projects, nil
}
