package repo

import (
	"database/sql"
	"errors"
	"fmt"
	"github.com/jmoiron/sqlx"
	"team-collab-backend/internal/apperrors"
	"team-collab-backend/internal/domain/models"
)

type TaskRepo struct {
	storage *sqlx.DB
}

func NewTaskRepo(storage *sqlx.DB) *TaskRepo {
	return &TaskRepo{storage: storage}
}

func (r *TaskRepo) GetProject(projectID int) (models.Project, error) {
	const op = "repo.task.GetProject"

	query := `SELECT id, name, description, team_id, created_by FROM projects WHERE id = $1`

	var project models.Project
	err := r.storage.Get(&project, query, projectID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Project{}, fmt.Errorf("%s: %w", op, apperrors.ErrProjectNotFound)
		}
		return models.Project{}, fmt.Errorf("%s: %w", op, err)
	}

	return project, nil
}

func (r *TaskRepo) IsTeamMember(teamID, userID int) (bool, error) {
	const op = "repo.task.IsTeamMember"

	query := `SELECT EXISTS(SELECT 1 FROM team_members WHERE team_id = $1 AND user_id = $2)`

	var isMember bool
	err := r.storage.Get(&isMember, query, teamID, userID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return isMember, nil
}

// TeamMemberIDsAmong returns the subset of userIDs that are linked to teamID.
func (r *TaskRepo) TeamMemberIDsAmong(teamID int, userIDs []int) ([]int, error) {
	const op = "repo.task.TeamMemberIDsAmong"

	if len(userIDs) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(
		`SELECT user_id FROM team_members WHERE team_id = ? AND user_id IN (?)`, teamID, userIDs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	query = r.storage.Rebind(query)

	var found []int
	err = r.storage.Select(&found, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return found, nil
}

func (r *TaskRepo) CreateTask(task models.Task) (models.Task, error) {
	const op = "repo.task.CreateTask"

	query := `
		INSERT INTO tasks (title, description, status, project_id, assigned_to)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, title, description, status, project_id, assigned_to
	`

	var created models.Task
	err := r.storage.QueryRowx(query,
		task.Title, task.Description, models.StatusToDo, task.ProjectID, task.AssignedTo).StructScan(&created)
	if err != nil {
		return models.Task{}, fmt.Errorf("%s: %w", op, err)
	}

	return created, nil
}

// BulkCreateTasks inserts one task per assignee with the same title and
// description, all in one transaction.
func (r *TaskRepo) BulkCreateTasks(projectID int, title string, description *string, assigneeIDs []int) ([]models.Task, error) {
	const op = "repo.task.BulkCreateTasks"

	tx, err := r.storage.Beginx()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO tasks (title, description, status, project_id, assigned_to)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, title, description, status, project_id, assigned_to
	`

	tasks := make([]models.Task, 0, len(assigneeIDs))
	for _, assigneeID := range assigneeIDs {
		var task models.Task
		err = tx.QueryRowx(query, title, description, models.StatusToDo, projectID, assigneeID).StructScan(&task)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to create task for user %d: %w", op, assigneeID, err)
		}
		tasks = append(tasks, task)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	return tasks, nil
}

// ListTasks filters by assignee and/or project; a nil filter means no
// restriction on that column.
func (r *TaskRepo) ListTasks(userID, projectID *int) ([]models.Task, error) {
	const op = "repo.task.ListTasks"

	query := `SELECT id, title, description, status, project_id, assigned_to FROM tasks`
	var args []interface{}

	where := ""
	if userID != nil {
		args = append(args, *userID)
		where = fmt.Sprintf(" WHERE assigned_to = $%d", len(args))
	}
	if projectID != nil {
		args = append(args, *projectID)
		if where == "" {
			where = fmt.Sprintf(" WHERE project_id = $%d", len(args))
		} else {
			where += fmt.Sprintf(" AND project_id = $%d", len(args))
		}
	}
	query += where + " ORDER BY id"

	var tasks []models.Task
	err := r.storage.Select(&tasks, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return tasks, nil
}

func (r *TaskRepo) GetTask(taskID int) (models.Task, error) {
	const op = "repo.task.GetTask"

	query := `SELECT id, title, description, status, project_id, assigned_to FROM tasks WHERE id = $1`

	var task models.Task
	err := r.storage.Get(&task, query, taskID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Task{}, fmt.Errorf("%s: %w", op, apperrors.ErrTaskNotFound)
		}
		return models.Task{}, fmt.Errorf("%s: %w", op, err)
	}

	return task, nil
}

func (r *TaskRepo) UpdateStatus(taskID int, status string) (models.Task, error) {
	const op = "repo.task.UpdateStatus"

	query := `
		UPDATE tasks SET status = $1 WHERE id = $2
		RETURNING id, title, description, status, project_id, assigned_to
	`

	var task models.Task
	err := r.storage.QueryRowx(query, status, taskID).StructScan(&task)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Task{}, fmt.Errorf("%s: %w", op, apperrors.ErrTaskNotFound)
		}
		return models.Task{}, fmt.Errorf("%s: %w", op, err)
	}

	return task, nil
}

func (r *TaskRepo) AdminTaskViews() ([]models.TaskAdminView, error) {
	const op = "repo.task.AdminTaskViews"

	query := `
		SELECT
			t.id,
			t.title,
			t.description,
			t.status,
			p.name AS project_name,
			tm.name AS team_name,
			u.name AS member_name
		FROM tasks t
		JOIN projects p ON t.project_id = p.id
		JOIN teams tm ON p.team_id = tm.id
		JOIN users u ON t.assigned_to = u.id
		ORDER BY t.id
	`

	var views []models.TaskAdminView
	err := r.storage.Select(&views, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return views, nil
}

func (r *TaskRepo) MemberTaskViews(userID int) ([]models.TaskMemberView, error) {
	const op = "repo.task.MemberTaskViews"

	query := `
		SELECT
			t.id,
			t.title,
			t.description,
			t.status,
			p.name AS project_name
		FROM tasks t
		JOIN projects p ON t.project_id = p.id
		WHERE t.assigned_to = $1
		ORDER BY t.id
	`

	var views []models.TaskMemberView
	err := r.storage.Select(&views, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return views, nil
}
