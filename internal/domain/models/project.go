package models

type Project struct {
	ID          int     `db:"id" json:"id"`
	Name        string  `db:"name" json:"name"`
	Description *string `db:"description" json:"description"`
	TeamID      int     `db:"team_id" json:"team_id"`
	CreatedBy   int     `db:"created_by" json:"created_by"`
}
