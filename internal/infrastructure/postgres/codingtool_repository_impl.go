package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mentorbit/lms-api/internal/domain/entity"
	"github.com/mentorbit/lms-api/internal/domain/repository"
)

type CodingToolRepository struct {
	pool *pgxpool.Pool
	db   DBTX
}

func NewCodingToolRepository(pool *pgxpool.Pool) *CodingToolRepository {
	return &CodingToolRepository{pool: pool, db: pool}
}

func (r *CodingToolRepository) Create(ctx context.Context, t *entity.CodingTool) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO coding_tools (name, description, url, icon_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, t.Name, t.Description, t.URL, t.IconURL)

	return mapError(row.Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt))
}

func (r *CodingToolRepository) GetByID(ctx context.Context, id string) (*entity.CodingTool, error) {
	t := &entity.CodingTool{}
	row := r.db.QueryRow(ctx, `
		SELECT id, name, description, url, icon_url, created_at, updated_at
		FROM coding_tools
		WHERE id = $1
	`, id)

	if err := row.Scan(&t.ID, &t.Name, &t.Description, &t.URL, &t.IconURL, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, mapError(err)
	}
	return t, nil
}

func (r *CodingToolRepository) Update(ctx context.Context, t *entity.CodingTool) error {
	t.UpdatedAt = time.Now()

	res, err := r.db.Exec(ctx, `
		UPDATE coding_tools
		SET name = $1, description = $2, url = $3, icon_url = $4, updated_at = $5
		WHERE id = $6
	`, t.Name, t.Description, t.URL, t.IconURL, t.UpdatedAt, t.ID)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CodingToolRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.Exec(ctx, `DELETE FROM coding_tools WHERE id = $1`, id)
	if err != nil {
		return false, mapError(err)
	}
	return res.RowsAffected() > 0, nil
}

func (r *CodingToolRepository) GetPaginated(ctx context.Context, page, size int) ([]entity.CodingTool, int64, error) {
	if page < 1 {
		page = 1
	}
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM coding_tools`).Scan(&total); err != nil {
		return nil, 0, mapError(err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, name, description, url, icon_url, created_at, updated_at
		FROM coding_tools
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, size, (page-1)*size)
	if err != nil {
		return nil, 0, mapError(err)
	}
	defer rows.Close()

	var tools []entity.CodingTool
	for rows.Next() {
		var t entity.CodingTool
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.URL, &t.IconURL, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, 0, err
		}
		tools = append(tools, t)
	}
	return tools, total, rows.Err()
}

var _ repository.CodingToolRepository = (*CodingToolRepository)(nil)
