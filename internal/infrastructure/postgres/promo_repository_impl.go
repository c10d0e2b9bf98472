package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mentorbit/lms-api/internal/domain/entity"
	"github.com/mentorbit/lms-api/internal/domain/repository"
)

type PromoRepository struct {
	pool *pgxpool.Pool
	db   DBTX
}

func NewPromoRepository(pool *pgxpool.Pool) *PromoRepository {
	return &PromoRepository{pool: pool, db: pool}
}

func (r *PromoRepository) Create(ctx context.Context, p *entity.Promo) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO promos (course_id, code, percentage, starts_at, ends_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, p.CourseID, p.Code, p.Percentage, p.StartsAt, p.EndsAt)

	return mapError(row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt))
}

func (r *PromoRepository) GetByID(ctx context.Context, id string) (*entity.Promo, error) {
	p := &entity.Promo{}
	row := r.db.QueryRow(ctx, `
		SELECT id, course_id, code, percentage, starts_at, ends_at, created_at, updated_at
		FROM promos
		WHERE id = $1
	`, id)

	if err := row.Scan(&p.ID, &p.CourseID, &p.Code, &p.Percentage, &p.StartsAt, &p.EndsAt,
		&p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, mapError(err)
	}
	return p, nil
}

func (r *PromoRepository) Update(ctx context.Context, p *entity.Promo) error {
	p.UpdatedAt = time.Now()

	res, err := r.db.Exec(ctx, `
		UPDATE promos
		SET course_id = $1, code = $2, percentage = $3, starts_at = $4, ends_at = $5, updated_at = $6
		WHERE id = $7
	`, p.CourseID, p.Code, p.Percentage, p.StartsAt, p.EndsAt, p.UpdatedAt, p.ID)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PromoRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.Exec(ctx, `DELETE FROM promos WHERE id = $1`, id)
	if err != nil {
		return false, mapError(err)
	}
	return res.RowsAffected() > 0, nil
}

func (r *PromoRepository) GetPaginated(ctx context.Context, page, size int) ([]entity.Promo, int64, error) {
	if page < 1 {
		page = 1
	}
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM promos`).Scan(&total); err != nil {
		return nil, 0, mapError(err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, course_id, code, percentage, starts_at, ends_at, created_at, updated_at
		FROM promos
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, size, (page-1)*size)
	if err != nil {
		return nil, 0, mapError(err)
	}
	defer rows.Close()

	var promos []entity.Promo
	for rows.Next() {
		var p entity.Promo
		if err := rows.Scan(&p.ID, &p.CourseID, &p.Code, &p.Percentage, &p.StartsAt, &p.EndsAt,
			&p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, err
		}
		promos = append(promos, p)
	}
	return promos, total, rows.Err()
}

var _ repository.PromoRepository = (*PromoRepository)(nil)
