package service

import (
	"context"
	"errors"
	"testing"

	"team-collab-backend/internal/apperrors"
	"team-collab-backend/internal/domain/models"
)

type fakeTeamRepo struct {
	knownUsers map[int]bool
	created    []models.Team
}

func (f *fakeTeamRepo) ExistingUserIDs(ids []int) ([]int, error) {
	var found []int
	for _, id := range ids {
		if f.knownUsers[id] {
			found = append(found, id)
		}
	}
	return found, nil
}

func (f *fakeTeamRepo) CreateTeamWithMembers(team models.Team, memberIDs []int) (models.Team, error) {
	team.ID = len(f.created) + 1
	f.created = append(f.created, team)
	return team, nil
}

func (f *fakeTeamRepo) ListTeamSummaries() ([]models.TeamSummary, error) {
	return nil, nil
}

func TestCreateTeamUnknownMember(t *testing.T) {
	repo := &fakeTeamRepo{knownUsers: map[int]bool{1: true, 2: true}}
	svc := NewTeamService(discardLogger(), repo)

	_, err := svc.CreateTeam(context.Background(), models.Team{Name: "Eng", CreatedBy: 1}, []int{1, 2, 999})
	if !errors.Is(err, apperrors.ErrMemberNotFound) {
		t.Fatalf("expected ErrMemberNotFound, got %v", err)
	}

	if len(repo.created) != 0 {
		t.Fatalf("expected no team persisted, got %d", len(repo.created))
	}
}

func TestCreateTeamEchoesMemberIDs(t *testing.T) {
	repo := &fakeTeamRepo{knownUsers: map[int]bool{1: true, 2: true}}
	svc := NewTeamService(discardLogger(), repo)

	team, err := svc.CreateTeam(context.Background(), models.Team{Name: "Eng", CreatedBy: 1}, []int{2, 1})
	if err != nil {
		t.Fatalf("create team failed: %v", err)
	}

	if len(team.MemberIDs) != 2 || team.MemberIDs[0] != 2 || team.MemberIDs[1] != 1 {
		t.Fatalf("member ids not echoed as supplied: %v", team.MemberIDs)
	}
	if team.CreatedBy != 1 {
		t.Fatalf("expected created_by 1, got %d", team.CreatedBy)
	}
}
