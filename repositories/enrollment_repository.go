package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/ndcacricket/registration-system/models"
)

var ErrEnrollmentNotFound = errors.New("enrollment not found")

type EnrollmentRepository interface {
	// CreateBatch inserts all rows in a single multi-row statement.
	CreateBatch(ctx context.Context, enrollments []models.Enrollment) error
	ListByPlayerID(ctx context.Context, playerID int) ([]models.Enrollment, error)
	ListByTournamentID(ctx context.Context, tournamentID string) ([]models.Enrollment, error)
}

type postgresEnrollmentRepository struct {
	db *sql.DB
}

func NewPostgresEnrollmentRepository(db *sql.DB) EnrollmentRepository {
	return &postgresEnrollmentRepository{db: db}
}

func (r *postgresEnrollmentRepository) CreateBatch(ctx context.Context, enrollments []models.Enrollment) error {
	if len(enrollments) == 0 {
		return nil
	}

	valueClauses := make([]string, 0, len(enrollments))
	args := make([]any, 0, len(enrollments)*5)
	for i, e := range enrollments {
		base := i * 5
		valueClauses = append(valueClauses, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5))
		args = append(args, e.PlayerID, e.TeamID, e.TeamName, e.TournamentID, e.TournamentName)
	}

	query := `
		INSERT INTO tournament_teams (player_id, team_id, team_name, tournament_id, tournament_name)
		VALUES ` + strings.Join(valueClauses, ", ")

	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

func (r *postgresEnrollmentRepository) ListByPlayerID(ctx context.Context, playerID int) ([]models.Enrollment, error) {
	query := `
		SELECT id, player_id, team_id, team_name, tournament_id, tournament_name
		FROM tournament_teams
		WHERE player_id = $1`
	return r.queryEnrollments(ctx, query, playerID)
}

func (r *postgresEnrollmentRepository) ListByTournamentID(ctx context.Context, tournamentID string) ([]models.Enrollment, error) {
	query := `
		SELECT id, player_id, team_id, team_name, tournament_id, tournament_name
		FROM tournament_teams
		WHERE tournament_id = $1`
	return r.queryEnrollments(ctx, query, tournamentID)
}

func (r *postgresEnrollmentRepository) queryEnrollments(ctx context.Context, query string, arg any) ([]models.Enrollment, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	enrollments := []models.Enrollment{}
	for rows.Next() {
		var e models.Enrollment
		if err := rows.Scan(&e.ID, &e.PlayerID, &e.TeamID, &e.TeamName, &e.TournamentID, &e.TournamentName); err != nil {
			return nil, err
		}
		enrollments = append(enrollments, e)
	}
	return enrollments, rows.Err()
}
