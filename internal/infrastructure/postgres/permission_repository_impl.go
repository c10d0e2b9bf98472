package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mentorbit/lms-api/internal/domain/entity"
	"github.com/mentorbit/lms-api/internal/domain/repository"
)

type PermissionRepository struct {
	pool *pgxpool.Pool
	db   DBTX
}

func NewPermissionRepository(pool *pgxpool.Pool) *PermissionRepository {
	return &PermissionRepository{pool: pool, db: pool}
}

func (r *PermissionRepository) Create(ctx context.Context, p *entity.Permission) error {
	p.Guard = guardOrDefault(p.Guard)
	row := r.db.QueryRow(ctx, `
		INSERT INTO permissions (name, guard, group_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, p.Name, p.Guard, p.GroupID)

	return mapError(row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt))
}

func (r *PermissionRepository) GetByID(ctx context.Context, id string) (*entity.Permission, error) {
	p := &entity.Permission{}
	row := r.db.QueryRow(ctx, `
		SELECT id, name, guard, group_id, created_at, updated_at
		FROM permissions
		WHERE id = $1
	`, id)

	if err := row.Scan(&p.ID, &p.Name, &p.Guard, &p.GroupID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, mapError(err)
	}
	return p, nil
}

func (r *PermissionRepository) Update(ctx context.Context, p *entity.Permission) error {
	p.UpdatedAt = time.Now()

	res, err := r.db.Exec(ctx, `
		UPDATE permissions SET name = $1, guard = $2, group_id = $3, updated_at = $4 WHERE id = $5
	`, p.Name, p.Guard, p.GroupID, p.UpdatedAt, p.ID)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PermissionRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.Exec(ctx, `DELETE FROM permissions WHERE id = $1`, id)
	if err != nil {
		return false, mapError(err)
	}
	return res.RowsAffected() > 0, nil
}

func (r *PermissionRepository) GetPaginated(ctx context.Context, page, size int) ([]entity.Permission, int64, error) {
	if page < 1 {
		page = 1
	}
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM permissions`).Scan(&total); err != nil {
		return nil, 0, mapError(err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, name, guard, group_id, created_at, updated_at
		FROM permissions
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, size, (page-1)*size)
	if err != nil {
		return nil, 0, mapError(err)
	}
	defer rows.Close()

	var perms []entity.Permission
	for rows.Next() {
		var p entity.Permission
		if err := rows.Scan(&p.ID, &p.Name, &p.Guard, &p.GroupID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, err
		}
		perms = append(perms, p)
	}
	return perms, total, rows.Err()
}

var _ repository.PermissionRepository = (*PermissionRepository)(nil)

type PermissionGroupRepository struct {
	pool *pgxpool.Pool
	db   DBTX
}

func NewPermissionGroupRepository(pool *pgxpool.Pool) *PermissionGroupRepository {
	return &PermissionGroupRepository{pool: pool, db: pool}
}

func (r *PermissionGroupRepository) Create(ctx context.Context, g *entity.PermissionGroup) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO permission_groups (name)
		VALUES ($1)
		RETURNING id, created_at, updated_at
	`, g.Name)

	return mapError(row.Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt))
}

func (r *PermissionGroupRepository) GetByID(ctx context.Context, id string) (*entity.PermissionGroup, error) {
	g := &entity.PermissionGroup{}
	row := r.db.QueryRow(ctx, `
		SELECT id, name, created_at, updated_at
		FROM permission_groups
		WHERE id = $1
	`, id)

	if err := row.Scan(&g.ID, &g.Name, &g.CreatedAt, &g.UpdatedAt); err != nil {
		return nil, mapError(err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, name, guard, group_id, created_at, updated_at
		FROM permissions
		WHERE group_id = $1
		ORDER BY name
	`, id)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()
	for rows.Next() {
		var p entity.Permission
		if err := rows.Scan(&p.ID, &p.Name, &p.Guard, &p.GroupID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		g.Permissions = append(g.Permissions, p)
	}
	return g, rows.Err()
}

func (r *PermissionGroupRepository) Update(ctx context.Context, g *entity.PermissionGroup) error {
	g.UpdatedAt = time.Now()

	res, err := r.db.Exec(ctx, `
		UPDATE permission_groups SET name = $1, updated_at = $2 WHERE id = $3
	`, g.Name, g.UpdatedAt, g.ID)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PermissionGroupRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.Exec(ctx, `DELETE FROM permission_groups WHERE id = $1`, id)
	if err != nil {
		return false, mapError(err)
	}
	return res.RowsAffected() > 0, nil
}

func (r *PermissionGroupRepository) GetPaginated(ctx context.Context, page, size int) ([]entity.PermissionGroup, int64, error) {
	if page < 1 {
		page = 1
	}
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM permission_groups`).Scan(&total); err != nil {
		return nil, 0, mapError(err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, name, created_at, updated_at
		FROM permission_groups
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, size, (page-1)*size)
	if err != nil {
		return nil, 0, mapError(err)
	}
	defer rows.Close()

	var groups []entity.PermissionGroup
	for rows.Next() {
		var g entity.PermissionGroup
		if err := rows.Scan(&g.ID, &g.Name, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, 0, err
		}
		groups = append(groups, g)
	}
	return groups, total, rows.Err()
}

var _ repository.PermissionGroupRepository = (*PermissionGroupRepository)(nil)
