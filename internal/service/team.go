package service

import (
	"context"
	"fmt"
	"log/slog"
	"team-collab-backend/internal/apperrors"
	"team-collab-backend/internal/domain/models"
	"team-collab-backend/internal/lib/logger/sl"
)

type TeamService struct {
	log      *slog.Logger
	teamRepo TeamProvider
}

type TeamProvider interface {
	ExistingUserIDs(ids []int) ([]int, error)
	CreateTeamWithMembers(team models.Team, memberIDs []int) (models.Team, error)
	ListTeamSummaries() ([]models.TeamSummary, error)
}

func NewTeamService(
	log *slog.Logger,
	teamRepo TeamProvider) *TeamService {
	return &TeamService{
		log:      log,
		teamRepo: teamRepo,
	}
}

// CreateTeam validates that every supplied member id resolves to a registered
// user before anything is written, then creates the team and its link rows.
// The returned member id list is echoed as supplied, not re-queried.
func (s *TeamService) CreateTeam(ctx context.Context, team models.Team, memberIDs []int) (*models.TeamRead, error) {
	const op = "service.team.CreateTeam"

	log := s.log.With(
		slog.String("op", op),
		slog.String("team_name", team.Name),
	)

	log.Info("attempting to create team with members")

	existing, err := s.teamRepo.ExistingUserIDs(memberIDs)
	if err != nil {
		log.Error("failed to resolve member ids", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	known := make(map[int]bool, len(existing))
	for _, id := range existing {
		known[id] = true
	}
	for _, id := range memberIDs {
		if !known[id] {
			log.Warn("unknown member id", slog.Int("user_id", id))
			return nil, fmt.Errorf("%s: %w", op, apperrors.ErrMemberNotFound)
		}
	}

	created, err := s.teamRepo.CreateTeamWithMembers(team, memberIDs)
	if err != nil {
		log.Error("failed to create team", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("team created successfully",
		slog.Int("team_id", created.ID),
		slog.Int("member_count", len(memberIDs)))

	return &models.TeamRead{
		ID:          created.ID,
		Name:        created.Name,
		Description: created.Description,
		CreatedBy:   created.CreatedBy,
		MemberIDs:   append([]int{}, memberIDs...),
	}, nil
}

func (s *TeamService) ListTeams(ctx context.Context) ([]models.TeamSummary, error) {
	const op = "service.team.ListTeams"

	log := s.log.With(slog.String("op", op))

	teams, err := s.teamRepo.ListTeamSummaries()
	if err != nil {
		log.Error("failed to list teams", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("teams listed successfully", slog.Int("count", len(teams)))

	return teams, nil
}
