package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/ndcacricket/registration-system/models"
)

var (
	ErrPlayerNotFound        = errors.New("player not found")
	ErrPlayerAadhaarConflict = errors.New("player aadhaar number conflict")
)

type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) error
	List(ctx context.Context) ([]models.Player, error)
	ListByTeamID(ctx context.Context, teamID string) ([]models.Player, error)
	GetByID(ctx context.Context, id int) (*models.Player, error)
	Update(ctx context.Context, player *models.Player) error
	UpdateStatus(ctx context.Context, id int, status string) error
	Delete(ctx context.Context, id int) error
	CountByAadhaar(ctx context.Context, aadhaarNumber string) (int, error)
	Count(ctx context.Context) (int, error)
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

const playerColumns = `
	id, team_id, aadhaar_number, first_name, middle_name, last_name, gender,
	blood_group, email, mobile, permanent_address, correspondence_address,
	birth_cert_number, birth_cert_date, birth_cert_place, school_cert_number,
	ssc_cert_date, father_name, mother_name, guardian_name, relation_type,
	guardian_address, emergency_contact, date_of_birth, age, player_type,
	batting_style, bowling_style, batting_position, last_association, last_year,
	aadhaar_doc_path, birth_certificate_path, ssc_certificate_path,
	school_leaving_cert_path, passport_path, status, created_at`

func (r *postgresPlayerRepository) Create(ctx context.Context, p *models.Player) error {
	query := `
		INSERT INTO players (
			team_id, aadhaar_number, first_name, middle_name, last_name, gender,
			blood_group, email, mobile, permanent_address, correspondence_address,
			birth_cert_number, birth_cert_date, birth_cert_place, school_cert_number,
			ssc_cert_date, father_name, mother_name, guardian_name, relation_type,
			guardian_address, emergency_contact, date_of_birth, age, player_type,
			batting_style, bowling_style, batting_position, last_association, last_year,
			aadhaar_doc_path, birth_certificate_path, ssc_certificate_path,
			school_leaving_cert_path, passport_path, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
			$17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30,
			$31, $32, $33, $34, $35, $36
		)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		p.TeamID, p.AadhaarNumber, p.FirstName, p.MiddleName, p.LastName, p.Gender,
		p.BloodGroup, p.Email, p.Mobile, p.PermanentAddress, p.CorrespondenceAddress,
		p.BirthCertNumber, p.BirthCertDate, p.BirthCertPlace, p.SchoolCertNumber,
		p.SSCCertDate, p.FatherName, p.MotherName, p.GuardianName, p.RelationType,
		p.GuardianAddress, p.EmergencyContact, p.DateOfBirth, p.Age, p.PlayerType,
		p.BattingStyle, p.BowlingStyle, p.BattingPosition, p.LastAssociation, p.LastYear,
		p.AadhaarDocPath, p.BirthCertificatePath, p.SSCCertificatePath,
		p.SchoolLeavingCertPath, p.PassportPath, p.Status,
	).Scan(&p.ID, &p.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" && pqErr.Constraint == "players_aadhaar_number_key" {
			return ErrPlayerAadhaarConflict
		}
		return err
	}
	return nil
}

func (r *postgresPlayerRepository) List(ctx context.Context) ([]models.Player, error) {
	return r.queryPlayers(ctx, `SELECT`+playerColumns+` FROM players`)
}

func (r *postgresPlayerRepository) ListByTeamID(ctx context.Context, teamID string) ([]models.Player, error) {
	return r.queryPlayers(ctx, `SELECT`+playerColumns+` FROM players WHERE team_id = $1`, teamID)
}

func (r *postgresPlayerRepository) queryPlayers(ctx context.Context, query string, args ...any) ([]models.Player, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := []models.Player{}
	for rows.Next() {
		var p models.Player
		if err := scanPlayer(rows.Scan, &p); err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, id int) (*models.Player, error) {
	row := r.db.QueryRowContext(ctx, `SELECT`+playerColumns+` FROM players WHERE id = $1`, id)

	p := &models.Player{}
	if err := scanPlayer(row.Scan, p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return p, nil
}

func scanPlayer(scan func(dest ...any) error, p *models.Player) error {
	return scan(
		&p.ID, &p.TeamID, &p.AadhaarNumber, &p.FirstName, &p.MiddleName, &p.LastName,
		&p.Gender, &p.BloodGroup, &p.Email, &p.Mobile, &p.PermanentAddress,
		&p.CorrespondenceAddress, &p.BirthCertNumber, &p.BirthCertDate, &p.BirthCertPlace,
		&p.SchoolCertNumber, &p.SSCCertDate, &p.FatherName, &p.MotherName, &p.GuardianName,
		&p.RelationType, &p.GuardianAddress, &p.EmergencyContact, &p.DateOfBirth, &p.Age,
		&p.PlayerType, &p.BattingStyle, &p.BowlingStyle, &p.BattingPosition,
		&p.LastAssociation, &p.LastYear, &p.AadhaarDocPath, &p.BirthCertificatePath,
		&p.SSCCertificatePath, &p.SchoolLeavingCertPath, &p.PassportPath, &p.Status,
		&p.CreatedAt,
	)
}

// Update replaces every profile field; the five document paths are written
// only at registration and are deliberately excluded here.
func (r *postgresPlayerRepository) Update(ctx context.Context, p *models.Player) error {
	query := `
		UPDATE players SET
			aadhaar_number = $1, first_name = $2, middle_name = $3, last_name = $4,
			gender = $5, blood_group = $6, email = $7, mobile = $8,
			permanent_address = $9, correspondence_address = $10,
			birth_cert_number = $11, birth_cert_date = $12, birth_cert_place = $13,
			school_cert_number = $14, ssc_cert_date = $15, father_name = $16,
			mother_name = $17, guardian_name = $18, relation_type = $19,
			guardian_address = $20, emergency_contact = $21, date_of_birth = $22,
			age = $23, player_type = $24, batting_style = $25, bowling_style = $26,
			batting_position = $27, last_association = $28, last_year = $29,
			status = $30
		WHERE id = $31`

	result, err := r.db.ExecContext(ctx, query,
		p.AadhaarNumber, p.FirstName, p.MiddleName, p.LastName, p.Gender, p.BloodGroup,
		p.Email, p.Mobile, p.PermanentAddress, p.CorrespondenceAddress,
		p.BirthCertNumber, p.BirthCertDate, p.BirthCertPlace, p.SchoolCertNumber,
		p.SSCCertDate, p.FatherName, p.MotherName, p.GuardianName, p.RelationType,
		p.GuardianAddress, p.EmergencyContact, p.DateOfBirth, p.Age, p.PlayerType,
		p.BattingStyle, p.BowlingStyle, p.BattingPosition, p.LastAssociation,
		p.LastYear, p.Status, p.ID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) UpdateStatus(ctx context.Context, id int, status string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE players SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) CountByAadhaar(ctx context.Context, aadhaarNumber string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM players WHERE aadhaar_number = $1`, aadhaarNumber).Scan(&count)
	return count, err
}

func (r *postgresPlayerRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM players`).Scan(&count)
	return count, err
}
