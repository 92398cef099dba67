package models

const (
	StatusToDo       = "To-Do"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
)

// ValidStatus reports whether s is one of the three task statuses. The status
// field has no transition rules; any valid value may replace any other.
func ValidStatus(s string) bool {
	return s == StatusToDo || s == StatusInProgress || s == StatusCompleted
}

type Task struct {
	ID          int     `db:"id" json:"id"`
	Title       string  `db:"title" json:"title"`
	Description *string `db:"description" json:"description"`
	Status      string  `db:"status" json:"status"`
	ProjectID   int     `db:"project_id" json:"project_id"`
	AssignedTo  int     `db:"assigned_to" json:"assigned_to"`
}

// TaskAdminView is the denormalized admin listing row, joining the task with
// its project, owning team and assignee.
type TaskAdminView struct {
	ID          int     `db:"id" json:"id"`
	Title       string  `db:"title" json:"title"`
	Description *string `db:"description" json:"description"`
	Status      string  `db:"status" json:"status"`
	ProjectName string  `db:"project_name" json:"project_name"`
	TeamName    string  `db:"team_name" json:"team_name"`
	MemberName  string  `db:"member_name" json:"member_name"`
}

// TaskMemberView is the per-member listing row; the team name is omitted.
type TaskMemberView struct {
	ID          int     `db:"id" json:"id"`
	Title       string  `db:"title" json:"title"`
	Description *string `db:"description" json:"description"`
	Status      string  `db:"status" json:"status"`
	ProjectName string  `db:"project_name" json:"project_name"`
}
