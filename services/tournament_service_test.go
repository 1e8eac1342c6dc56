package services

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/ndcacricket/registration-system/models"
	"github.com/ndcacricket/registration-system/repositories"
)

type fakeTournamentRepo struct {
	tournaments map[int]*models.Tournament
	createErr   error
	updateErr   error
}

func newFakeTournamentRepo() *fakeTournamentRepo {
	return &fakeTournamentRepo{tournaments: map[int]*models.Tournament{}}
}

func (r *fakeTournamentRepo) Create(ctx context.Context, t *models.Tournament) error {
	if r.createErr != nil {
		return r.createErr
	}
	t.ID = len(r.tournaments) + 1
	copied := *t
	r.tournaments[t.ID] = &copied
	return nil
}

func (r *fakeTournamentRepo) List(ctx context.Context) ([]models.Tournament, error) {
	out := []models.Tournament{}
	for _, t := range r.tournaments {
		out = append(out, *t)
	}
	return out, nil
}

func (r *fakeTournamentRepo) ListNames(ctx context.Context) ([]models.TournamentName, error) {
	out := []models.TournamentName{}
	for _, t := range r.tournaments {
		out = append(out, models.TournamentName{ID: t.ID, Name: t.Name})
	}
	return out, nil
}

func (r *fakeTournamentRepo) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	t, ok := r.tournaments[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	copied := *t
	return &copied, nil
}

func (r *fakeTournamentRepo) Update(ctx context.Context, t *models.Tournament) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.tournaments[t.ID]; !ok {
		return repositories.ErrTournamentNotFound
	}
	copied := *t
	r.tournaments[t.ID] = &copied
	return nil
}

func (r *fakeTournamentRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.tournaments[id]; !ok {
		return repositories.ErrTournamentNotFound
	}
	delete(r.tournaments, id)
	return nil
}

func (r *fakeTournamentRepo) Count(ctx context.Context) (int, error) {
	return len(r.tournaments), nil
}

func validTournamentInput() CreateTournamentInput {
	crick := "https://crickheroes.example/t/1"
	return CreateTournamentInput{
		AgeGroup:       "U-19",
		Name:           "Winter Cup",
		Format:         "T20",
		StartDate:      "2026-11-01",
		EndDate:        "2026-11-15",
		NumberOfTeams:  8,
		CrickheroesURL: &crick,
	}
}

func TestCreateTournamentParsesDates(t *testing.T) {
	repo := newFakeTournamentRepo()
	svc := NewTournamentService(repo, newTestUploadStore(&recordingUploader{}), testLogger(t))

	tournament, err := svc.Create(context.Background(), validTournamentInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
	if !tournament.StartDate.Equal(want) {
		t.Errorf("start date = %v", tournament.StartDate)
	}
	if tournament.CrickheroesURL == nil {
		t.Error("crickheroes link dropped")
	}
}

func TestCreateTournamentInvalidDate(t *testing.T) {
	svc := NewTournamentService(newFakeTournamentRepo(), newTestUploadStore(&recordingUploader{}), testLogger(t))

	input := validTournamentInput()
	input.StartDate = "01-11-2026"

	_, err := svc.Create(context.Background(), input)
	if !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("got %v, want ErrInvalidDate", err)
	}
}

func TestCreateTournamentStoresLogo(t *testing.T) {
	repo := newFakeTournamentRepo()
	uploader := &recordingUploader{}
	svc := NewTournamentService(repo, newTestUploadStore(uploader), testLogger(t))

	input := validTournamentInput()
	input.Logo = &UploadedFile{
		Field: "Logo", Name: "cup.png", ContentType: "image/png",
		Size: 100, Reader: strings.NewReader("logo"),
	}

	tournament, err := svc.Create(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tournament.LogoPath == nil || !strings.HasPrefix(*tournament.LogoPath, "/uploads/tournament_logo/") {
		t.Errorf("logo path = %v", tournament.LogoPath)
	}
}

func TestUpdateTournamentKeepsLinksAndLogo(t *testing.T) {
	repo := newFakeTournamentRepo()
	svc := NewTournamentService(repo, newTestUploadStore(&recordingUploader{}), testLogger(t))

	input := validTournamentInput()
	input.Logo = &UploadedFile{
		Field: "Logo", Name: "cup.png", ContentType: "image/png",
		Size: 100, Reader: strings.NewReader("logo"),
	}
	created, err := svc.Create(context.Background(), input)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(context.Background(), created.ID, UpdateTournamentInput{
		AgeGroup:      "U-19",
		Name:          "Winter Cup 2026",
		Format:        "T20",
		StartDate:     "2026-11-02",
		EndDate:       "2026-11-16",
		NumberOfTeams: 10,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.LogoPath == nil || *updated.LogoPath != *created.LogoPath {
		t.Errorf("logo path changed without a new upload")
	}
	// Scoreboard links are set at creation only; updates carry them forward.
	if updated.CrickheroesURL == nil || *updated.CrickheroesURL != *created.CrickheroesURL {
		t.Errorf("crickheroes link lost on update")
	}
	if updated.Name != "Winter Cup 2026" {
		t.Errorf("name = %q", updated.Name)
	}
}

// A logo stored just before the row disappears is logged as orphaned even
// though the caller only sees the not-found error.
func TestUpdateTournamentLogsOrphanOnConcurrentDelete(t *testing.T) {
	repo := newFakeTournamentRepo()
	created, err := NewTournamentService(repo, newTestUploadStore(&recordingUploader{}), testLogger(t)).
		Create(context.Background(), validTournamentInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	repo.updateErr = repositories.ErrTournamentNotFound

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	svc := NewTournamentService(repo, newTestUploadStore(&recordingUploader{}), logger)

	input := UpdateTournamentInput{
		AgeGroup:      "U-19",
		Name:          "Winter Cup",
		Format:        "T20",
		StartDate:     "2026-11-01",
		EndDate:       "2026-11-15",
		NumberOfTeams: 8,
		Logo: &UploadedFile{
			Field: "Logo", Name: "cup.png", ContentType: "image/png",
			Size: 100, Reader: strings.NewReader("logo"),
		},
	}
	_, err = svc.Update(context.Background(), created.ID, input)
	if !errors.Is(err, ErrTournamentNotFound) {
		t.Fatalf("got %v, want ErrTournamentNotFound", err)
	}
	if !strings.Contains(logs.String(), "orphaned upload") {
		t.Errorf("orphaned logo not logged: %q", logs.String())
	}
}

func TestUpdateTournamentNotFound(t *testing.T) {
	svc := NewTournamentService(newFakeTournamentRepo(), newTestUploadStore(&recordingUploader{}), testLogger(t))

	_, err := svc.Update(context.Background(), 99, UpdateTournamentInput{
		StartDate: "2026-11-01",
		EndDate:   "2026-11-02",
	})
	if !errors.Is(err, ErrTournamentNotFound) {
		t.Fatalf("got %v, want ErrTournamentNotFound", err)
	}
}
