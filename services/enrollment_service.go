package services

import (
	"context"
	"fmt"

	"github.com/ndcacricket/registration-system/models"
	"github.com/ndcacricket/registration-system/repositories"
)

type EnrollmentService interface {
	EnrollTeam(ctx context.Context, input EnrollTeamInput) (int, error)
	ListByPlayer(ctx context.Context, playerID int) ([]models.Enrollment, error)
	ListByTournament(ctx context.Context, tournamentID string) ([]models.Enrollment, error)
}

type EnrollTeamInput struct {
	TeamID         string
	TeamName       string
	TournamentID   string
	TournamentName string
	PlayerIDs      []int
}

type enrollmentService struct {
	enrollments repositories.EnrollmentRepository
	feed        LiveFeed
}

func NewEnrollmentService(enrollments repositories.EnrollmentRepository, feed LiveFeed) EnrollmentService {
	return &enrollmentService{enrollments: enrollments, feed: feed}
}

// EnrollTeam records one row per selected player, all carrying the same team
// and tournament labels. Only the two ids and the player list are required;
// missing display names are stored as empty labels. Nothing deduplicates
// against earlier enrollments of the same squad: submitting twice doubles
// the rows.
func (s *enrollmentService) EnrollTeam(ctx context.Context, input EnrollTeamInput) (int, error) {
	if input.TeamID == "" || input.TournamentID == "" || len(input.PlayerIDs) == 0 {
		return 0, ErrMissingRequiredData
	}

	rows := make([]models.Enrollment, 0, len(input.PlayerIDs))
	for _, playerID := range input.PlayerIDs {
		rows = append(rows, models.Enrollment{
			PlayerID:       playerID,
			TeamID:         input.TeamID,
			TeamName:       input.TeamName,
			TournamentID:   input.TournamentID,
			TournamentName: input.TournamentName,
		})
	}

	if err := s.enrollments.CreateBatch(ctx, rows); err != nil {
		return 0, fmt.Errorf("failed to enroll team %s: %w", input.TeamID, err)
	}

	if s.feed != nil {
		s.feed.Publish("team_enrolled", map[string]any{
			"team_id":       input.TeamID,
			"tournament_id": input.TournamentID,
			"players":       len(rows),
		})
	}
	return len(rows), nil
}

// ListByPlayer treats an empty result as not found, matching the admin panel
// which renders a missing-enrollment notice off the 404.
func (s *enrollmentService) ListByPlayer(ctx context.Context, playerID int) ([]models.Enrollment, error) {
	rows, err := s.enrollments.ListByPlayerID(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return rows, nil
}

func (s *enrollmentService) ListByTournament(ctx context.Context, tournamentID string) ([]models.Enrollment, error) {
	rows, err := s.enrollments.ListByTournamentID(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return rows, nil
}
