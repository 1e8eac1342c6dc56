package services

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/ndcacricket/registration-system/models"
	"github.com/ndcacricket/registration-system/repositories"
	"github.com/ndcacricket/registration-system/storage"
)

func testLogger(t *testing.T) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// recordingUploader counts what reaches the storage backend.
type recordingUploader struct {
	keys []string
	err  error
}

func (u *recordingUploader) Upload(ctx context.Context, key, contentType string, r io.Reader) (*storage.UploadResult, error) {
	if u.err != nil {
		return nil, u.err
	}
	if _, err := io.Copy(io.Discard, r); err != nil {
		return nil, err
	}
	u.keys = append(u.keys, key)
	return &storage.UploadResult{Key: key}, nil
}

func (u *recordingUploader) Delete(ctx context.Context, key string) error { return nil }

func (u *recordingUploader) GetPublicURL(key string) string { return "/uploads/" + key }

func newTestUploadStore(u storage.FileUploader) *storage.UploadStore {
	return storage.NewUploadStore(u)
}

type fakeTeamRepo struct {
	teams         map[int]*models.Team
	usernameCount int
	createErr     error
	updateErr     error
	created       []*models.Team
	updated       []*models.Team
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{teams: map[int]*models.Team{}}
}

func (r *fakeTeamRepo) Create(ctx context.Context, team *models.Team) error {
	if r.createErr != nil {
		return r.createErr
	}
	team.ID = len(r.teams) + 1
	copied := *team
	r.teams[team.ID] = &copied
	r.created = append(r.created, &copied)
	return nil
}

func (r *fakeTeamRepo) List(ctx context.Context) ([]models.Team, error) {
	out := []models.Team{}
	for _, t := range r.teams {
		out = append(out, *t)
	}
	return out, nil
}

func (r *fakeTeamRepo) GetByID(ctx context.Context, id int) (*models.Team, error) {
	t, ok := r.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	copied := *t
	return &copied, nil
}

func (r *fakeTeamRepo) GetByUsername(ctx context.Context, username string) (*models.Team, error) {
	for _, t := range r.teams {
		if t.Username == username {
			copied := *t
			return &copied, nil
		}
	}
	return nil, repositories.ErrTeamNotFound
}

func (r *fakeTeamRepo) Update(ctx context.Context, team *models.Team) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.teams[team.ID]; !ok {
		return repositories.ErrTeamNotFound
	}
	copied := *team
	r.teams[team.ID] = &copied
	r.updated = append(r.updated, &copied)
	return nil
}

func (r *fakeTeamRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.teams[id]; !ok {
		return repositories.ErrTeamNotFound
	}
	delete(r.teams, id)
	return nil
}

func (r *fakeTeamRepo) CountByUsername(ctx context.Context, username string) (int, error) {
	return r.usernameCount, nil
}

func (r *fakeTeamRepo) Count(ctx context.Context) (int, error) {
	return len(r.teams), nil
}

// fakeMailer records sends; wg lets tests wait for detached goroutines.
type fakeMailer struct {
	mu          sync.Mutex
	wg          sync.WaitGroup
	registered  []string
	updated     []string
	registerErr error
	updateErr   error
}

func (m *fakeMailer) SendTeamRegistered(team *models.Team, password string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.registerErr != nil {
		return m.registerErr
	}
	m.registered = append(m.registered, team.Email)
	return nil
}

func (m *fakeMailer) SendTeamUpdated(team *models.Team, usernameChanged, passwordChanged bool) error {
	defer m.wg.Done()
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updated = append(m.updated, team.Email)
	return nil
}

type fakeFeed struct {
	mu     sync.Mutex
	events []string
}

func (f *fakeFeed) Publish(event string, payload any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
}

type fakeNewsRepo struct {
	items     map[int]*models.NewsItem
	patches   []repositories.NewsPatch
	createErr error
}

func newFakeNewsRepo() *fakeNewsRepo {
	return &fakeNewsRepo{items: map[int]*models.NewsItem{}}
}

func (r *fakeNewsRepo) Create(ctx context.Context, item *models.NewsItem) error {
	if r.createErr != nil {
		return r.createErr
	}
	item.ID = len(r.items) + 1
	copied := *item
	r.items[item.ID] = &copied
	return nil
}

func (r *fakeNewsRepo) List(ctx context.Context) ([]models.NewsItem, error) {
	out := []models.NewsItem{}
	for _, n := range r.items {
		out = append(out, *n)
	}
	return out, nil
}

func (r *fakeNewsRepo) GetByID(ctx context.Context, id int) (*models.NewsItem, error) {
	n, ok := r.items[id]
	if !ok {
		return nil, repositories.ErrNewsNotFound
	}
	copied := *n
	return &copied, nil
}

func (r *fakeNewsRepo) UpdateFields(ctx context.Context, id int, patch repositories.NewsPatch) error {
	n, ok := r.items[id]
	if !ok {
		return repositories.ErrNewsNotFound
	}
	r.patches = append(r.patches, patch)
	if patch.Headline != nil {
		n.Headline = *patch.Headline
	}
	if patch.Description != nil {
		n.Description = *patch.Description
	}
	if patch.Category != nil {
		n.Category = *patch.Category
	}
	if patch.Image1 != nil {
		n.Image1 = patch.Image1
	}
	if patch.Image2 != nil {
		n.Image2 = patch.Image2
	}
	if patch.Image3 != nil {
		n.Image3 = patch.Image3
	}
	return nil
}

func (r *fakeNewsRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.items[id]; !ok {
		return repositories.ErrNewsNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeNewsRepo) Count(ctx context.Context) (int, error) {
	return len(r.items), nil
}

type fakePlayerRepo struct {
	players      map[int]*models.Player
	aadhaarCount int
	createErr    error
}

func newFakePlayerRepo() *fakePlayerRepo {
	return &fakePlayerRepo{players: map[int]*models.Player{}}
}

func (r *fakePlayerRepo) Create(ctx context.Context, player *models.Player) error {
	if r.createErr != nil {
		return r.createErr
	}
	player.ID = len(r.players) + 1
	copied := *player
	r.players[player.ID] = &copied
	return nil
}

func (r *fakePlayerRepo) List(ctx context.Context) ([]models.Player, error) {
	out := []models.Player{}
	for _, p := range r.players {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakePlayerRepo) ListByTeamID(ctx context.Context, teamID string) ([]models.Player, error) {
	out := []models.Player{}
	for _, p := range r.players {
		if p.TeamID == teamID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePlayerRepo) GetByID(ctx context.Context, id int) (*models.Player, error) {
	p, ok := r.players[id]
	if !ok {
		return nil, repositories.ErrPlayerNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *fakePlayerRepo) Update(ctx context.Context, player *models.Player) error {
	existing, ok := r.players[player.ID]
	if !ok {
		return repositories.ErrPlayerNotFound
	}
	teamID := existing.TeamID
	copied := *player
	copied.TeamID = teamID
	r.players[player.ID] = &copied
	return nil
}

func (r *fakePlayerRepo) UpdateStatus(ctx context.Context, id int, status string) error {
	p, ok := r.players[id]
	if !ok {
		return repositories.ErrPlayerNotFound
	}
	p.Status = status
	return nil
}

func (r *fakePlayerRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.players[id]; !ok {
		return repositories.ErrPlayerNotFound
	}
	delete(r.players, id)
	return nil
}

func (r *fakePlayerRepo) CountByAadhaar(ctx context.Context, aadhaarNumber string) (int, error) {
	return r.aadhaarCount, nil
}

func (r *fakePlayerRepo) Count(ctx context.Context) (int, error) {
	return len(r.players), nil
}

type fakeEnrollmentRepo struct {
	rows      []models.Enrollment
	createErr error
}

func (r *fakeEnrollmentRepo) CreateBatch(ctx context.Context, enrollments []models.Enrollment) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.rows = append(r.rows, enrollments...)
	return nil
}

func (r *fakeEnrollmentRepo) ListByPlayerID(ctx context.Context, playerID int) ([]models.Enrollment, error) {
	out := []models.Enrollment{}
	for _, e := range r.rows {
		if e.PlayerID == playerID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEnrollmentRepo) ListByTournamentID(ctx context.Context, tournamentID string) ([]models.Enrollment, error) {
	out := []models.Enrollment{}
	for _, e := range r.rows {
		if e.TournamentID == tournamentID {
			out = append(out, e)
		}
	}
	return out, nil
}
