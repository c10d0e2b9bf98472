package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mentorbit/lms-api/internal/domain/entity"
	"github.com/mentorbit/lms-api/internal/domain/repository"
)

type TierRepository struct {
	pool *pgxpool.Pool
	db   DBTX
}

func NewTierRepository(pool *pgxpool.Pool) *TierRepository {
	return &TierRepository{pool: pool, db: pool}
}

func (r *TierRepository) withTx(tx pgx.Tx) *TierRepository {
	return &TierRepository{pool: r.pool, db: tx}
}

func (r *TierRepository) InTx(ctx context.Context, fn func(repository.TierRepository) error) error {
	return runInTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(r.withTx(tx))
	})
}

// Create relies on the unique index on tiers.name; a violation surfaces as
// ErrDuplicate.
func (r *TierRepository) Create(ctx context.Context, t *entity.Tier) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO tiers (name)
		VALUES ($1)
		RETURNING id, created_at, updated_at
	`, t.Name)

	return mapError(row.Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt))
}

func (r *TierRepository) GetByID(ctx context.Context, id string) (*entity.Tier, error) {
	return r.getOne(ctx, `WHERE id = $1`, id)
}

func (r *TierRepository) GetByName(ctx context.Context, name string) (*entity.Tier, error) {
	return r.getOne(ctx, `WHERE name = $1`, name)
}

func (r *TierRepository) getOne(ctx context.Context, where string, arg any) (*entity.Tier, error) {
	t := &entity.Tier{}
	row := r.db.QueryRow(ctx, `
		SELECT id, name, created_at, updated_at
		FROM tiers
	`+where, arg)

	if err := row.Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, mapError(err)
	}
	return t, nil
}

func (r *TierRepository) Update(ctx context.Context, t *entity.Tier) error {
	t.UpdatedAt = time.Now()

	res, err := r.db.Exec(ctx, `
		UPDATE tiers SET name = $1, updated_at = $2 WHERE id = $3
	`, t.Name, t.UpdatedAt, t.ID)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *TierRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.Exec(ctx, `DELETE FROM tiers WHERE id = $1`, id)
	if err != nil {
		return false, mapError(err)
	}
	return res.RowsAffected() > 0, nil
}

func (r *TierRepository) GetPaginated(ctx context.Context, page, size int) ([]entity.Tier, int64, error) {
	if page < 1 {
		page = 1
	}
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM tiers`).Scan(&total); err != nil {
		return nil, 0, mapError(err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, name, created_at, updated_at
		FROM tiers
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, size, (page-1)*size)
	if err != nil {
		return nil, 0, mapError(err)
	}
	defer rows.Close()

	var tiers []entity.Tier
	for rows.Next() {
		var t entity.Tier
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, 0, err
		}
		tiers = append(tiers, t)
	}
	return tiers, total, rows.Err()
}

var _ repository.TierRepository = (*TierRepository)(nil)
