package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/ndcacricket/registration-system/models"
)

var (
	ErrTeamNotFound         = errors.New("team not found")
	ErrTeamUsernameConflict = errors.New("team username conflict")
)

type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	List(ctx context.Context) ([]models.Team, error)
	GetByID(ctx context.Context, id int) (*models.Team, error)
	GetByUsername(ctx context.Context, username string) (*models.Team, error)
	Update(ctx context.Context, team *models.Team) error
	Delete(ctx context.Context, id int) error
	CountByUsername(ctx context.Context, username string) (int, error)
	Count(ctx context.Context) (int, error)
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

const teamColumns = `
	id, team_id, team_name, club_name, captain_name, contact_number, email,
	aadhaar_number, username, password, logo_path, receipt_number, receipt_path,
	created_at`

func (r *postgresTeamRepository) Create(ctx context.Context, t *models.Team) error {
	query := `
		INSERT INTO teams (
			team_id, team_name, club_name, captain_name, contact_number, email,
			aadhaar_number, username, password, logo_path, receipt_number, receipt_path
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		t.TeamID, t.TeamName, t.ClubName, t.CaptainName, t.ContactNumber, t.Email,
		t.AadhaarNumber, t.Username, t.Password, t.LogoPath, t.ReceiptNumber, t.ReceiptPath,
	).Scan(&t.ID, &t.CreatedAt)

	if err != nil {
		// Backstop behind the service-level pre-check: the check and the
		// insert are not atomic, so a concurrent registration can still trip
		// the unique index.
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" && pqErr.Constraint == "teams_username_key" {
			return ErrTeamUsernameConflict
		}
		return err
	}
	return nil
}

func (r *postgresTeamRepository) List(ctx context.Context) ([]models.Team, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT`+teamColumns+` FROM teams`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := []models.Team{}
	for rows.Next() {
		var t models.Team
		if err := scanTeam(rows.Scan, &t); err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	row := r.db.QueryRowContext(ctx, `SELECT`+teamColumns+` FROM teams WHERE id = $1`, id)
	return r.scanOne(row)
}

func (r *postgresTeamRepository) GetByUsername(ctx context.Context, username string) (*models.Team, error) {
	row := r.db.QueryRowContext(ctx, `SELECT`+teamColumns+` FROM teams WHERE username = $1`, username)
	return r.scanOne(row)
}

func (r *postgresTeamRepository) scanOne(row *sql.Row) (*models.Team, error) {
	t := &models.Team{}
	if err := scanTeam(row.Scan, t); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return t, nil
}

func scanTeam(scan func(dest ...any) error, t *models.Team) error {
	return scan(
		&t.ID, &t.TeamID, &t.TeamName, &t.ClubName, &t.CaptainName, &t.ContactNumber,
		&t.Email, &t.AadhaarNumber, &t.Username, &t.Password, &t.LogoPath,
		&t.ReceiptNumber, &t.ReceiptPath, &t.CreatedAt,
	)
}

func (r *postgresTeamRepository) Update(ctx context.Context, t *models.Team) error {
	query := `
		UPDATE teams
		SET team_name = $1, logo_path = $2, captain_name = $3, contact_number = $4,
		    email = $5, aadhaar_number = $6, username = $7, password = $8
		WHERE id = $9`

	result, err := r.db.ExecContext(ctx, query,
		t.TeamName, t.LogoPath, t.CaptainName, t.ContactNumber,
		t.Email, t.AadhaarNumber, t.Username, t.Password, t.ID,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" && pqErr.Constraint == "teams_username_key" {
			return ErrTeamUsernameConflict
		}
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) CountByUsername(ctx context.Context, username string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM teams WHERE username = $1`, username).Scan(&count)
	return count, err
}

func (r *postgresTeamRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM teams`).Scan(&count)
	return count, err
}
