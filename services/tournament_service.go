package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ndcacricket/registration-system/models"
	"github.com/ndcacricket/registration-system/repositories"
	"github.com/ndcacricket/registration-system/storage"
)

type TournamentService interface {
	Create(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error)
	List(ctx context.Context) ([]models.Tournament, error)
	ListNames(ctx context.Context) ([]models.TournamentName, error)
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	Update(ctx context.Context, id int, input UpdateTournamentInput) (*models.Tournament, error)
	Delete(ctx context.Context, id int) error
}

type CreateTournamentInput struct {
	AgeGroup       string
	Name           string
	Format         string
	StartDate      string
	EndDate        string
	NumberOfTeams  int
	CrickheroesURL *string
	SportlinkURL   *string
	Logo           *UploadedFile
}

// UpdateTournamentInput deliberately has no scoreboard link fields: the
// admin panel only edits them at creation time.
type UpdateTournamentInput struct {
	AgeGroup      string
	Name          string
	Format        string
	StartDate     string
	EndDate       string
	NumberOfTeams int
	Logo          *UploadedFile
}

type tournamentService struct {
	tournaments repositories.TournamentRepository
	uploads     *storage.UploadStore
	logger      *slog.Logger
}

func NewTournamentService(
	tournaments repositories.TournamentRepository,
	uploads *storage.UploadStore,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		tournaments: tournaments,
		uploads:     uploads,
		logger:      logger,
	}
}

func (s *tournamentService) Create(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error) {
	startDate, err := parseDate(input.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := parseDate(input.EndDate)
	if err != nil {
		return nil, err
	}

	logoPath, err := saveUpload(ctx, s.uploads, storage.OpTournamentCreate, input.Logo)
	if err != nil {
		return nil, err
	}

	tournament := &models.Tournament{
		AgeGroup:       input.AgeGroup,
		Name:           input.Name,
		Format:         input.Format,
		StartDate:      startDate,
		EndDate:        endDate,
		NumberOfTeams:  input.NumberOfTeams,
		LogoPath:       logoPath,
		CrickheroesURL: input.CrickheroesURL,
		SportlinkURL:   input.SportlinkURL,
	}

	if err := s.tournaments.Create(ctx, tournament); err != nil {
		logOrphanedUploads(s.logger, err, logoPath)
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}
	return tournament, nil
}

func (s *tournamentService) List(ctx context.Context) ([]models.Tournament, error) {
	return s.tournaments.List(ctx)
}

func (s *tournamentService) ListNames(ctx context.Context) ([]models.TournamentName, error) {
	return s.tournaments.ListNames(ctx)
}

func (s *tournamentService) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	tournament, err := s.tournaments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return tournament, nil
}

// Update reads the current row first so an absent logo upload keeps the
// stored path. The read and the write are two sequential statements, not a
// transaction; concurrent updates to the same row can interleave.
func (s *tournamentService) Update(ctx context.Context, id int, input UpdateTournamentInput) (*models.Tournament, error) {
	startDate, err := parseDate(input.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := parseDate(input.EndDate)
	if err != nil {
		return nil, err
	}

	current, err := s.tournaments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	newLogoPath, err := saveUpload(ctx, s.uploads, storage.OpTournamentUpdate, input.Logo)
	if err != nil {
		return nil, err
	}

	tournament := &models.Tournament{
		ID:             id,
		AgeGroup:       input.AgeGroup,
		Name:           input.Name,
		Format:         input.Format,
		StartDate:      startDate,
		EndDate:        endDate,
		NumberOfTeams:  input.NumberOfTeams,
		LogoPath:       mergeFileField(newLogoPath, current.LogoPath),
		CrickheroesURL: current.CrickheroesURL,
		SportlinkURL:   current.SportlinkURL,
		CreatedAt:      current.CreatedAt,
	}

	if err := s.tournaments.Update(ctx, tournament); err != nil {
		logOrphanedUploads(s.logger, err, newLogoPath)
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to update tournament %d: %w", id, err)
	}
	return tournament, nil
}

func (s *tournamentService) Delete(ctx context.Context, id int) error {
	err := s.tournaments.Delete(ctx, id)
	if errors.Is(err, repositories.ErrTournamentNotFound) {
		return ErrTournamentNotFound
	}
	return err
}
