package repository

import (
	"context"

	"github.com/mentorbit/lms-api/internal/domain/entity"
)

// RoleRepository mediates all writes to roles and their permission links.
type RoleRepository interface {
	Create(ctx context.Context, r *entity.Role) error
	GetByID(ctx context.Context, id string) (*entity.Role, error)
	GetByName(ctx context.Context, name string) (*entity.Role, error)
	Update(ctx context.Context, r *entity.Role) error
	Delete(ctx context.Context, id string) (bool, error)
	GetPaginated(ctx context.Context, page, size int) ([]entity.Role, int64, error)
	// SyncPermissions replaces the role's entire permission set with exactly
	// the given permission ids.
	SyncPermissions(ctx context.Context, roleID string, permissionIDs []string) error
	GetPermissions(ctx context.Context, roleID string) ([]entity.Permission, error)
	// InTx runs fn against a transaction-scoped copy of the repository.
	// Writes inside fn either all commit or all roll back.
	InTx(ctx context.Context, fn func(RoleRepository) error) error
}

// PermissionRepository mediates writes to permissions.
type PermissionRepository interface {
	Create(ctx context.Context, p *entity.Permission) error
	GetByID(ctx context.Context, id string) (*entity.Permission, error)
	Update(ctx context.Context, p *entity.Permission) error
	Delete(ctx context.Context, id string) (bool, error)
	GetPaginated(ctx context.Context, page, size int) ([]entity.Permission, int64, error)
}

// PermissionGroupRepository mediates writes to permission groups. Reads
// eagerly load the owned permissions.
type PermissionGroupRepository interface {
	Create(ctx context.Context, g *entity.PermissionGroup) error
	GetByID(ctx context.Context, id string) (*entity.PermissionGroup, error)
	Update(ctx context.Context, g *entity.PermissionGroup) error
	Delete(ctx context.Context, id string) (bool, error)
	GetPaginated(ctx context.Context, page, size int) ([]entity.PermissionGroup, int64, error)
}

// TierRepository mediates writes to account tiers.
type TierRepository interface {
	Create(ctx context.Context, t *entity.Tier) error
	GetByID(ctx context.Context, id string) (*entity.Tier, error)
	GetByName(ctx context.Context, name string) (*entity.Tier, error)
	Update(ctx context.Context, t *entity.Tier) error
	Delete(ctx context.Context, id string) (bool, error)
	GetPaginated(ctx context.Context, page, size int) ([]entity.Tier, int64, error)
	// InTx runs fn against a transaction-scoped copy of the repository.
	InTx(ctx context.Context, fn func(TierRepository) error) error
}
