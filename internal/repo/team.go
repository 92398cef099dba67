package repo

import (
	"database/sql"
	"errors"
	"fmt"
	"github.com/jmoiron/sqlx"
	"team-collab-backend/internal/domain/models"
)

type TeamRepo struct {
	storage *sqlx.DB
}

func NewTeamRepo(storage *sqlx.DB) *TeamRepo {
	return &TeamRepo{storage: storage}
}

// ExistingUserIDs returns the subset of ids that resolve to registered users.
func (r *TeamRepo) ExistingUserIDs(ids []int) ([]int, error) {
	const op = "repo.team.ExistingUserIDs"

	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`SELECT id FROM users WHERE id IN (?)`, ids)
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

// CreateTeamWithMembers inserts the team row and one link row per member in a
// single transaction, so a failed insert persists nothing.
func (r *TeamRepo) CreateTeamWithMembers(team models.Team, memberIDs []int) (models.Team, error) {
	const op = "repo.team.CreateTeamWithMembers"

	tx, err := r.storage.Beginx()
	if err != nil {
		return models.Team{}, fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback()

	teamQuery := `
		INSERT INTO teams (name, description, created_by)
		VALUES ($1, $2, $3)
		RETURNING id, name, description, created_by
	`

	var created models.Team
	err = tx.QueryRowx(teamQuery, team.Name, team.Description, team.CreatedBy).StructScan(&created)
	if err != nil {
		return models.Team{}, fmt.Errorf("%s: failed to create team: %w", op, err)
	}

	linkQuery := `INSERT INTO team_members (team_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`

	for _, memberID := range memberIDs {
		_, err = tx.Exec(linkQuery, created.ID, memberID)
		if err != nil {
			return models.Team{}, fmt.Errorf("%s: failed to add team member %d: %w", op, memberID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Team{}, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	return created, nil
}

// ListTeamSummaries re-derives each team's member ids from the link table and
// resolves the creator name, falling back to "Unknown" for a missing creator.
func (r *TeamRepo) ListTeamSummaries() ([]models.TeamSummary, error) {
	const op = "repo.team.ListTeamSummaries"

	var teams []models.Team
	err := r.storage.Select(&teams, `SELECT id, name, description, created_by FROM teams ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	summaries := make([]models.TeamSummary, 0, len(teams))
	for _, team := range teams {
		memberIDs := make([]int, 0)
		err = r.storage.Select(&memberIDs,
			`SELECT user_id FROM team_members WHERE team_id = $1 ORDER BY user_id`, team.ID)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to get team members: %w", op, err)
		}

		var creatorName string
		err = r.storage.Get(&creatorName, `SELECT name FROM users WHERE id = $1`, team.CreatedBy)
		if err != nil {
			if !errors.Is(err, sql.ErrNoRows) {
				return nil, fmt.Errorf("%s: failed to resolve creator: %w", op, err)
			}
			creatorName = "Unknown"
		}

		summaries = append(summaries, models.TeamSummary{
			ID:            team.ID,
			Name:          team.Name,
			Description:   team.Description,
			CreatedByName: creatorName,
			MemberIDs:     memberIDs,
		})
	}

	return summaries, nil
}
