package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/ndcacricket/registration-system/models"
	"github.com/ndcacricket/registration-system/repositories"
)

type DashboardService interface {
	GetStats(ctx context.Context) (models.DashboardStats, error)
}

type dashboardService struct {
	tournaments repositories.TournamentRepository
	teams       repositories.TeamRepository
	players     repositories.PlayerRepository
	news        repositories.NewsRepository
}

func NewDashboardService(
	tournaments repositories.TournamentRepository,
	teams repositories.TeamRepository,
	players repositories.PlayerRepository,
	news repositories.NewsRepository,
) DashboardService {
	return &dashboardService{
		tournaments: tournaments,
		teams:       teams,
		players:     players,
		news:        news,
	}
}

// GetStats counts each entity in parallel; the first failing count cancels
// the rest.
func (s *dashboardService) GetStats(ctx context.Context) (models.DashboardStats, error) {
	var stats models.DashboardStats

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.TournamentsTotal, err = s.tournaments.Count(ctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TeamsTotal, err = s.teams.Count(ctx)
		return err
	})
	g.Go(func() (err error) {
		stats.PlayersTotal, err = s.players.Count(ctx)
		return err
	})
	g.Go(func() (err error) {
		stats.NewsTotal, err = s.news.Count(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return models.DashboardStats{}, err
	}
	return stats, nil
}
