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

type PlayerService interface {
	Register(ctx context.Context, input RegisterPlayerInput) (*models.Player, error)
	List(ctx context.Context) ([]models.Player, error)
	ListByTeamID(ctx context.Context, teamID string) ([]models.Player, error)
	GetByID(ctx context.Context, id int) (*models.Player, error)
	Update(ctx context.Context, id int, input UpdatePlayerInput) (*models.Player, error)
	UpdateStatus(ctx context.Context, id int, status string) error
	Delete(ctx context.Context, id int) error
}

// PlayerProfile carries the non-document registration fields; it is shared
// between register and update inputs.
type PlayerProfile struct {
	AadhaarNumber         string
	FirstName             string
	MiddleName            string
	LastName              string
	Gender                string
	BloodGroup            string
	Email                 string
	Mobile                string
	PermanentAddress      string
	CorrespondenceAddress string
	BirthCertNumber       string
	BirthCertDate         string
	BirthCertPlace        string
	SchoolCertNumber      string
	SSCCertDate           string
	FatherName            string
	MotherName            string
	GuardianName          string
	RelationType          string
	GuardianAddress       string
	EmergencyContact      string
	DateOfBirth           string
	Age                   int
	PlayerType            string
	BattingStyle          string
	BowlingStyle          string
	BattingPosition       string
	LastAssociation       string
	LastYear              string
	Status                string
}

type RegisterPlayerInput struct {
	TeamID string
	PlayerProfile

	// Supporting documents, each optional.
	AadhaarDoc        *UploadedFile
	BirthCertificate  *UploadedFile
	SSCCertificate    *UploadedFile
	SchoolLeavingCert *UploadedFile
	Passport          *UploadedFile
}

type UpdatePlayerInput struct {
	PlayerProfile
}

type playerService struct {
	players repositories.PlayerRepository
	uploads *storage.UploadStore
	logger  *slog.Logger
}

func NewPlayerService(
	players repositories.PlayerRepository,
	uploads *storage.UploadStore,
	logger *slog.Logger,
) PlayerService {
	return &playerService{
		players: players,
		uploads: uploads,
		logger:  logger,
	}
}

// Register checks the aadhaar number for an existing registration before
// inserting. The check and the insert are sequential statements; the unique
// index backs the check up under concurrency.
func (s *playerService) Register(ctx context.Context, input RegisterPlayerInput) (*models.Player, error) {
	count, err := s.players.CountByAadhaar(ctx, input.AadhaarNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to check aadhaar number: %w", err)
	}
	if count > 0 {
		return nil, ErrDuplicateAadhaar
	}

	// Documents are stored one by one, in a fixed order; each lands in the
	// team_document bucket under its own timestamped name.
	documents := []*UploadedFile{
		input.AadhaarDoc, input.BirthCertificate, input.SSCCertificate,
		input.SchoolLeavingCert, input.Passport,
	}
	paths := make([]*string, len(documents))
	for i, doc := range documents {
		paths[i], err = saveUpload(ctx, s.uploads, storage.OpPlayerCreate, doc)
		if err != nil {
			return nil, err
		}
	}

	player := &models.Player{TeamID: input.TeamID}
	applyPlayerProfile(player, input.PlayerProfile)
	player.AadhaarDocPath = paths[0]
	player.BirthCertificatePath = paths[1]
	player.SSCCertificatePath = paths[2]
	player.SchoolLeavingCertPath = paths[3]
	player.PassportPath = paths[4]

	if err := s.players.Create(ctx, player); err != nil {
		logOrphanedUploads(s.logger, err, paths...)
		if errors.Is(err, repositories.ErrPlayerAadhaarConflict) {
			return nil, ErrDuplicateAadhaar
		}
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	return player, nil
}

func (s *playerService) List(ctx context.Context) ([]models.Player, error) {
	return s.players.List(ctx)
}

func (s *playerService) ListByTeamID(ctx context.Context, teamID string) ([]models.Player, error) {
	return s.players.ListByTeamID(ctx, teamID)
}

func (s *playerService) GetByID(ctx context.Context, id int) (*models.Player, error) {
	player, err := s.players.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return player, nil
}

// Update replaces the profile fields wholesale; documents and team binding
// are untouched.
func (s *playerService) Update(ctx context.Context, id int, input UpdatePlayerInput) (*models.Player, error) {
	player := &models.Player{ID: id}
	applyPlayerProfile(player, input.PlayerProfile)

	if err := s.players.Update(ctx, player); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to update player %d: %w", id, err)
	}
	return s.GetByID(ctx, id)
}

func (s *playerService) UpdateStatus(ctx context.Context, id int, status string) error {
	err := s.players.UpdateStatus(ctx, id, status)
	if errors.Is(err, repositories.ErrPlayerNotFound) {
		return ErrPlayerNotFound
	}
	return err
}

func (s *playerService) Delete(ctx context.Context, id int) error {
	err := s.players.Delete(ctx, id)
	if errors.Is(err, repositories.ErrPlayerNotFound) {
		return ErrPlayerNotFound
	}
	return err
}

func applyPlayerProfile(p *models.Player, in PlayerProfile) {
	p.AadhaarNumber = in.AadhaarNumber
	p.FirstName = in.FirstName
	p.MiddleName = in.MiddleName
	p.LastName = in.LastName
	p.Gender = in.Gender
	p.BloodGroup = in.BloodGroup
	p.Email = in.Email
	p.Mobile = in.Mobile
	p.PermanentAddress = in.PermanentAddress
	p.CorrespondenceAddress = in.CorrespondenceAddress
	p.BirthCertNumber = in.BirthCertNumber
	p.BirthCertDate = in.BirthCertDate
	p.BirthCertPlace = in.BirthCertPlace
	p.SchoolCertNumber = in.SchoolCertNumber
	p.SSCCertDate = in.SSCCertDate
	p.FatherName = in.FatherName
	p.MotherName = in.MotherName
	p.GuardianName = in.GuardianName
	p.RelationType = in.RelationType
	p.GuardianAddress = in.GuardianAddress
	p.EmergencyContact = in.EmergencyContact
	p.DateOfBirth = in.DateOfBirth
	p.Age = in.Age
	p.PlayerType = in.PlayerType
	p.BattingStyle = in.BattingStyle
	p.BowlingStyle = in.BowlingStyle
	p.BattingPosition = in.BattingPosition
	p.LastAssociation = in.LastAssociation
	p.LastYear = in.LastYear
	p.Status = in.Status
}
