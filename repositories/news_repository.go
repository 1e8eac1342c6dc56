package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/ndcacricket/registration-system/models"
)

var (
	ErrNewsNotFound = errors.New("news item not found")
	ErrNewsNoFields = errors.New("news update contains no fields")
)

// NewsPatch carries the fields of a partial update. Nil pointers are left
// untouched in storage; only supplied fields end up in the SET clause.
type NewsPatch struct {
	Headline    *string
	Description *string
	Category    *string
	Image1      *string
	Image2      *string
	Image3      *string
}

func (p NewsPatch) IsEmpty() bool {
	return p.Headline == nil && p.Description == nil && p.Category == nil &&
		p.Image1 == nil && p.Image2 == nil && p.Image3 == nil
}

type NewsRepository interface {
	Create(ctx context.Context, item *models.NewsItem) error
	List(ctx context.Context) ([]models.NewsItem, error)
	GetByID(ctx context.Context, id int) (*models.NewsItem, error)
	UpdateFields(ctx context.Context, id int, patch NewsPatch) error
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (int, error)
}

type postgresNewsRepository struct {
	db *sql.DB
}

func NewPostgresNewsRepository(db *sql.DB) NewsRepository {
	return &postgresNewsRepository{db: db}
}

func (r *postgresNewsRepository) Create(ctx context.Context, n *models.NewsItem) error {
	query := `
		INSERT INTO news (headline, description, publication_date, category, image1, image2, image3)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	return r.db.QueryRowContext(ctx, query,
		n.Headline, n.Description, n.PublicationDate, n.Category,
		n.Image1, n.Image2, n.Image3,
	).Scan(&n.ID, &n.CreatedAt)
}

func (r *postgresNewsRepository) List(ctx context.Context) ([]models.NewsItem, error) {
	query := `
		SELECT id, headline, description, publication_date, category,
		       image1, image2, image3, created_at
		FROM news`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.NewsItem{}
	for rows.Next() {
		var n models.NewsItem
		if err := rows.Scan(
			&n.ID, &n.Headline, &n.Description, &n.PublicationDate, &n.Category,
			&n.Image1, &n.Image2, &n.Image3, &n.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	return items, rows.Err()
}

func (r *postgresNewsRepository) GetByID(ctx context.Context, id int) (*models.NewsItem, error) {
	query := `
		SELECT id, headline, description, publication_date, category,
		       image1, image2, image3, created_at
		FROM news
		WHERE id = $1`

	n := &models.NewsItem{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&n.ID, &n.Headline, &n.Description, &n.PublicationDate, &n.Category,
		&n.Image1, &n.Image2, &n.Image3, &n.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNewsNotFound
		}
		return nil, err
	}
	return n, nil
}

// UpdateFields builds the SET clause from the supplied fields only. Column
// names come from the fixed list below and values are always bound as
// parameters; nothing user-controlled is concatenated into the statement.
func (r *postgresNewsRepository) UpdateFields(ctx context.Context, id int, patch NewsPatch) error {
	query, args, err := buildNewsUpdate(id, patch)
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrNewsNotFound)
}

func buildNewsUpdate(id int, patch NewsPatch) (string, []any, error) {
	assignments := []string{}
	args := []any{}

	add := func(column string, value *string) {
		if value == nil {
			return
		}
		args = append(args, *value)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	add("headline", patch.Headline)
	add("description", patch.Description)
	add("category", patch.Category)
	add("image1", patch.Image1)
	add("image2", patch.Image2)
	add("image3", patch.Image3)

	if len(assignments) == 0 {
		return "", nil, ErrNewsNoFields
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE news SET %s WHERE id = $%d", strings.Join(assignments, ", "), len(args))
	return query, args, nil
}

func (r *postgresNewsRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM news WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrNewsNotFound)
}

func (r *postgresNewsRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM news`).Scan(&count)
	return count, err
}
