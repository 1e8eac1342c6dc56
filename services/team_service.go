package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ndcacricket/registration-system/credentials"
	"github.com/ndcacricket/registration-system/models"
	"github.com/ndcacricket/registration-system/repositories"
	"github.com/ndcacricket/registration-system/storage"
)

type TeamService interface {
	Register(ctx context.Context, input RegisterTeamInput) (*models.Team, error)
	List(ctx context.Context) ([]models.Team, error)
	GetByID(ctx context.Context, id int) (*models.Team, error)
	Update(ctx context.Context, id int, input UpdateTeamInput) (*models.Team, error)
	Delete(ctx context.Context, id int) error
}

type RegisterTeamInput struct {
	TeamName        string
	ClubName        string
	CaptainName     string
	ContactNumber   string
	Email           string
	AadhaarNumber   string
	Username        string
	Password        string
	ConfirmPassword string
	ReceiptNumber   *string
	TeamLogo        *UploadedFile
	Receipt         *UploadedFile
}

type UpdateTeamInput struct {
	TeamName        string
	CaptainName     string
	ContactNumber   string
	Email           string
	AadhaarNumber   string
	Username        string
	Password        string
	ConfirmPassword string
	TeamLogo        *UploadedFile
}

type teamService struct {
	teams    repositories.TeamRepository
	uploads  *storage.UploadStore
	mailer   Mailer
	verifier credentials.Verifier
	feed     LiveFeed
	logger   *slog.Logger
}

func NewTeamService(
	teams repositories.TeamRepository,
	uploads *storage.UploadStore,
	mailer Mailer,
	verifier credentials.Verifier,
	feed LiveFeed,
	logger *slog.Logger,
) TeamService {
	return &teamService{
		teams:    teams,
		uploads:  uploads,
		mailer:   mailer,
		verifier: verifier,
		feed:     feed,
		logger:   logger,
	}
}

// Register persists a new team and emails the captain their credentials.
// The email is sent synchronously and a delivery failure fails the whole
// call even though the row is already persisted: registration is not
// considered complete until the captain can log in, and the credentials only
// exist in that mail.
//
// The username pre-check and the insert are two separate statements; two
// concurrent registrations can both pass the check, in which case the unique
// index catches the second insert.
func (s *teamService) Register(ctx context.Context, input RegisterTeamInput) (*models.Team, error) {
	if input.Password != input.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	count, err := s.teams.CountByUsername(ctx, input.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if count > 0 {
		return nil, ErrDuplicateUsername
	}

	logoPath, err := saveUpload(ctx, s.uploads, storage.OpTeamCreate, input.TeamLogo)
	if err != nil {
		return nil, err
	}
	receiptPath, err := saveUpload(ctx, s.uploads, storage.OpTeamCreate, input.Receipt)
	if err != nil {
		return nil, err
	}

	token, err := generateTeamToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate team token: %w", err)
	}

	storedPassword, err := s.verifier.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare password: %w", err)
	}

	team := &models.Team{
		TeamID:        token,
		TeamName:      input.TeamName,
		ClubName:      input.ClubName,
		CaptainName:   input.CaptainName,
		ContactNumber: input.ContactNumber,
		Email:         input.Email,
		AadhaarNumber: input.AadhaarNumber,
		Username:      input.Username,
		Password:      storedPassword,
		LogoPath:      logoPath,
		ReceiptNumber: input.ReceiptNumber,
		ReceiptPath:   receiptPath,
	}

	if err := s.teams.Create(ctx, team); err != nil {
		logOrphanedUploads(s.logger, err, logoPath, receiptPath)
		if errors.Is(err, repositories.ErrTeamUsernameConflict) {
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	if err := s.mailer.SendTeamRegistered(team, input.Password); err != nil {
		s.logger.Error("team registration email failed",
			slog.Int("team_id", team.ID),
			slog.String("email", team.Email),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("%w: %v", ErrEmailDeliveryFailed, err)
	}

	if s.feed != nil {
		s.feed.Publish("team_registered", map[string]any{"id": team.ID, "team_name": team.TeamName})
	}
	return team, nil
}

func (s *teamService) List(ctx context.Context) ([]models.Team, error) {
	return s.teams.List(ctx)
}

func (s *teamService) GetByID(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teams.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return team, nil
}

// Update re-reads the current row to keep the stored logo when no new one
// was uploaded and to detect credential changes for the notification email.
// Unlike registration the email does not gate the response: it is sent from
// a detached goroutine and failures are only logged.
func (s *teamService) Update(ctx context.Context, id int, input UpdateTeamInput) (*models.Team, error) {
	if input.Password != input.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	current, err := s.teams.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	newLogoPath, err := saveUpload(ctx, s.uploads, storage.OpTeamUpdate, input.TeamLogo)
	if err != nil {
		return nil, err
	}

	storedPassword, err := s.verifier.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare password: %w", err)
	}

	team := &models.Team{
		ID:            id,
		TeamID:        current.TeamID,
		TeamName:      input.TeamName,
		ClubName:      current.ClubName,
		CaptainName:   input.CaptainName,
		ContactNumber: input.ContactNumber,
		Email:         input.Email,
		AadhaarNumber: input.AadhaarNumber,
		Username:      input.Username,
		Password:      storedPassword,
		LogoPath:      mergeFileField(newLogoPath, current.LogoPath),
		ReceiptNumber: current.ReceiptNumber,
		ReceiptPath:   current.ReceiptPath,
		CreatedAt:     current.CreatedAt,
	}

	if err := s.teams.Update(ctx, team); err != nil {
		logOrphanedUploads(s.logger, err, newLogoPath)
		switch {
		case errors.Is(err, repositories.ErrTeamNotFound):
			return nil, ErrTeamNotFound
		case errors.Is(err, repositories.ErrTeamUsernameConflict):
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("failed to update team %d: %w", id, err)
	}

	usernameChanged := team.Username != current.Username
	passwordChanged := team.Password != current.Password
	go func() {
		if err := s.mailer.SendTeamUpdated(team, usernameChanged, passwordChanged); err != nil {
			s.logger.Error("team update email failed",
				slog.Int("team_id", team.ID),
				slog.String("email", team.Email),
				slog.Any("error", err),
			)
		}
	}()

	return team, nil
}

func (s *teamService) Delete(ctx context.Context, id int) error {
	err := s.teams.Delete(ctx, id)
	if errors.Is(err, repositories.ErrTeamNotFound) {
		return ErrTeamNotFound
	}
	return err
}

// generateTeamToken returns the short random identifier embedded in team
// rows and enrollment references.
func generateTeamToken() (string, error) {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
