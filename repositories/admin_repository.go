package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ndcacricket/registration-system/models"
)

var ErrAdminNotFound = errors.New("admin not found")

type AdminRepository interface {
	GetByUsername(ctx context.Context, username string) (*models.Admin, error)
}

type postgresAdminRepository struct {
	db *sql.DB
}

func NewPostgresAdminRepository(db *sql.DB) AdminRepository {
	return &postgresAdminRepository{db: db}
}

func (r *postgresAdminRepository) GetByUsername(ctx context.Context, username string) (*models.Admin, error) {
	query := `SELECT id, username, password FROM admin_logins WHERE username = $1`

	a := &models.Admin{}
	err := r.db.QueryRowContext(ctx, query, username).Scan(&a.ID, &a.Username, &a.Password)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return a, nil
}
