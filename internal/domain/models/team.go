package models

type Team struct {
	ID          int     `db:"id" json:"id"`
	Name        string  `db:"name" json:"name"`
	Description *string `db:"description" json:"description"`
	CreatedBy   int     `db:"created_by" json:"created_by"`
}

type TeamMemberLink struct {
	TeamID int `db:"team_id"`
	UserID int `db:"user_id"`
}

// TeamRead is the shape returned right after creation: the member id list is
// echoed back as supplied rather than re-queried.
type TeamRead struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	CreatedBy   int     `json:"created_by"`
	MemberIDs   []int   `json:"member_ids"`
}

// TeamSummary is the listing view with the creator name resolved and member
// ids re-derived from the link table.
type TeamSummary struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	Description   *string `json:"description"`
	CreatedByName string  `json:"created_by_name"`
	MemberIDs     []int   `json:"member_ids"`
}
