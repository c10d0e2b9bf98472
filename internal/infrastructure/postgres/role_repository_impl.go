package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mentorbit/lms-api/internal/domain/entity"
	"github.com/mentorbit/lms-api/internal/domain/repository"
)

type RoleRepository struct {
	pool *pgxpool.Pool
	db   DBTX
}

func NewRoleRepository(pool *pgxpool.Pool) *RoleRepository {
	return &RoleRepository{pool: pool, db: pool}
}

// withTx returns a copy of the repository bound to tx.
func (r *RoleRepository) withTx(tx pgx.Tx) *RoleRepository {
	return &RoleRepository{pool: r.pool, db: tx}
}

func (r *RoleRepository) InTx(ctx context.Context, fn func(repository.RoleRepository) error) error {
	return runInTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(r.withTx(tx))
	})
}

func (r *RoleRepository) Create(ctx context.Context, role *entity.Role) error {
	role.Guard = guardOrDefault(role.Guard)
	row := r.db.QueryRow(ctx, `
		INSERT INTO roles (name, guard)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`, role.Name, role.Guard)

	return mapError(row.Scan(&role.ID, &role.CreatedAt, &role.UpdatedAt))
}

func (r *RoleRepository) GetByID(ctx context.Context, id string) (*entity.Role, error) {
	return r.getOne(ctx, `WHERE id = $1`, id)
}

func (r *RoleRepository) GetByName(ctx context.Context, name string) (*entity.Role, error) {
	return r.getOne(ctx, `WHERE name = $1`, name)
}

func (r *RoleRepository) getOne(ctx context.Context, where string, arg any) (*entity.Role, error) {
	role := &entity.Role{}
	row := r.db.QueryRow(ctx, `
		SELECT id, name, guard, created_at, updated_at
		FROM roles
	`+where, arg)

	if err := row.Scan(&role.ID, &role.Name, &role.Guard, &role.CreatedAt, &role.UpdatedAt); err != nil {
		return nil, mapError(err)
	}

	perms, err := r.GetPermissions(ctx, role.ID)
	if err != nil {
		return nil, err
	}
	role.Permissions = perms
	return role, nil
}

func (r *RoleRepository) Update(ctx context.Context, role *entity.Role) error {
	role.UpdatedAt = time.Now()

	res, err := r.db.Exec(ctx, `
		UPDATE roles SET name = $1, guard = $2, updated_at = $3 WHERE id = $4
	`, role.Name, role.Guard, role.UpdatedAt, role.ID)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RoleRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.Exec(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		return false, mapError(err)
	}
	return res.RowsAffected() > 0, nil
}

func (r *RoleRepository) GetPaginated(ctx context.Context, page, size int) ([]entity.Role, int64, error) {
	if page < 1 {
		page = 1
	}
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM roles`).Scan(&total); err != nil {
		return nil, 0, mapError(err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, name, guard, created_at, updated_at
		FROM roles
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, size, (page-1)*size)
	if err != nil {
		return nil, 0, mapError(err)
	}
	defer rows.Close()

	var roles []entity.Role
	for rows.Next() {
		var role entity.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Guard, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, 0, err
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	// Load the permission sets for the page in one query.
	if len(roles) > 0 {
		ids := make([]string, len(roles))
		byID := make(map[string]*entity.Role, len(roles))
		for i := range roles {
			ids[i] = roles[i].ID
			byID[roles[i].ID] = &roles[i]
		}
		prows, err := r.db.Query(ctx, `
			SELECT rp.role_id, p.id, p.name, p.guard, p.group_id, p.created_at, p.updated_at
			FROM role_permissions rp
			JOIN permissions p ON p.id = rp.permission_id
			WHERE rp.role_id = ANY($1)
		`, ids)
		if err != nil {
			return nil, 0, mapError(err)
		}
		defer prows.Close()
		for prows.Next() {
			var roleID string
			var p entity.Permission
			if err := prows.Scan(&roleID, &p.ID, &p.Name, &p.Guard, &p.GroupID, &p.CreatedAt, &p.UpdatedAt); err != nil {
				return nil, 0, err
			}
			if role, ok := byID[roleID]; ok {
				role.Permissions = append(role.Permissions, p)
			}
		}
		if err := prows.Err(); err != nil {
			return nil, 0, err
		}
	}
	return roles, total, nil
}

// SyncPermissions replaces the role's permission set with exactly the given
// ids. Callers that need atomicity with other writes wrap it via InTx.
func (r *RoleRepository) SyncPermissions(ctx context.Context, roleID string, permissionIDs []string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM role_permissions WHERE role_id = $1`, roleID); err != nil {
		return mapError(err)
	}
	for _, pid := range permissionIDs {
		if _, err := r.db.Exec(ctx, `
			INSERT INTO role_permissions (role_id, permission_id)
			VALUES ($1, $2)
			ON CONFLICT (role_id, permission_id) DO NOTHING
		`, roleID, pid); err != nil {
			return mapError(err)
		}
	}
	return nil
}

func (r *RoleRepository) GetPermissions(ctx context.Context, roleID string) ([]entity.Permission, error) {
	rows, err := r.db.Query(ctx, `
		SELECT p.id, p.name, p.guard, p.group_id, p.created_at, p.updated_at
		FROM permissions p
		JOIN role_permissions rp ON rp.permission_id = p.id
		WHERE rp.role_id = $1
		ORDER BY p.name
	`, roleID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var perms []entity.Permission
	for rows.Next() {
		var p entity.Permission
		if err := rows.Scan(&p.ID, &p.Name, &p.Guard, &p.GroupID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		perms = append(perms, p)
	}
	return perms, rows.Err()
}

var _ repository.RoleRepository = (*RoleRepository)(nil)
