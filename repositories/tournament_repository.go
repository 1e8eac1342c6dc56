package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ndcacricket/registration-system/models"
)

var ErrTournamentNotFound = errors.New("tournament not found")

type TournamentRepository interface {
	Create(ctx context.Context, tournament *models.Tournament) error
	List(ctx context.Context) ([]models.Tournament, error)
	ListNames(ctx context.Context) ([]models.TournamentName, error)
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	Update(ctx context.Context, tournament *models.Tournament) error
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (int, error)
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

func (r *postgresTournamentRepository) Create(ctx context.Context, t *models.Tournament) error {
	query := `
		INSERT INTO tournaments (
			age_group, name, format, start_date, end_date, number_of_teams,
			logo_path, crickheroes_url, sportlink_url
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`

	return r.db.QueryRowContext(ctx, query,
		t.AgeGroup, t.Name, t.Format, t.StartDate, t.EndDate, t.NumberOfTeams,
		t.LogoPath, t.CrickheroesURL, t.SportlinkURL,
	).Scan(&t.ID, &t.CreatedAt)
}

func (r *postgresTournamentRepository) List(ctx context.Context) ([]models.Tournament, error) {
	query := `
		SELECT id, age_group, name, format, start_date, end_date, number_of_teams,
		       logo_path, crickheroes_url, sportlink_url, created_at
		FROM tournaments`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tournaments := []models.Tournament{}
	for rows.Next() {
		var t models.Tournament
		if err := rows.Scan(
			&t.ID, &t.AgeGroup, &t.Name, &t.Format, &t.StartDate, &t.EndDate, &t.NumberOfTeams,
			&t.LogoPath, &t.CrickheroesURL, &t.SportlinkURL, &t.CreatedAt,
		); err != nil {
			return nil, err
		}
		tournaments = append(tournaments, t)
	}
	return tournaments, rows.Err()
}

func (r *postgresTournamentRepository) ListNames(ctx context.Context) ([]models.TournamentName, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM tournaments`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := []models.TournamentName{}
	for rows.Next() {
		var n models.TournamentName
		if err := rows.Scan(&n.ID, &n.Name); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	query := `
		SELECT id, age_group, name, format, start_date, end_date, number_of_teams,
		       logo_path, crickheroes_url, sportlink_url, created_at
		FROM tournaments
		WHERE id = $1`

	t := &models.Tournament{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.AgeGroup, &t.Name, &t.Format, &t.StartDate, &t.EndDate, &t.NumberOfTeams,
		&t.LogoPath, &t.CrickheroesURL, &t.SportlinkURL, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *postgresTournamentRepository) Update(ctx context.Context, t *models.Tournament) error {
	query := `
		UPDATE tournaments
		SET age_group = $1, name = $2, format = $3, start_date = $4, end_date = $5,
		    number_of_teams = $6, logo_path = $7
		WHERE id = $8`

	result, err := r.db.ExecContext(ctx, query,
		t.AgeGroup, t.Name, t.Format, t.StartDate, t.EndDate, t.NumberOfTeams,
		t.LogoPath, t.ID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tournaments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tournaments`).Scan(&count)
	return count, err
}
