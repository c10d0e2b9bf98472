package application

import (
	"context"

	"github.com/mentorbit/lms-api/internal/domain/entity"
	repo "github.com/mentorbit/lms-api/internal/domain/repository"
)

// RoleService composes role writes with permission-set synchronization
// inside a single transaction.
type RoleService struct {
	Repo repo.RoleRepository
}

// RoleInput carries role fields. PermissionIDs of nil means "leave the
// permission set alone"; a non-nil slice (including empty) replaces the set
// with exactly that list.
type RoleInput struct {
	Name          string
	Guard         string
	PermissionIDs []string
}

// CreateRole creates the role and, when a permission list is supplied,
// syncs its permission set to exactly that list. Both writes commit or
// roll back together.
func (s *RoleService) CreateRole(ctx context.Context, in RoleInput) (*entity.Role, error) {
	role := &entity.Role{Name: in.Name, Guard: in.Guard}
	var out *entity.Role
	err := s.Repo.InTx(ctx, func(r repo.RoleRepository) error {
		if err := r.Create(ctx, role); err != nil {
			return err
		}
		if in.PermissionIDs != nil {
			if err := r.SyncPermissions(ctx, role.ID, in.PermissionIDs); err != nil {
				return err
			}
		}
		// Re-read inside the transaction so the returned role carries the
		// synced permission set without a read after commit.
		var err error
		out, err = r.GetByID(ctx, role.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateRole applies the supplied fields and re-syncs permissions when a
// list is given. Sync is idempotent: syncing the same list twice leaves the
// same set.
func (s *RoleService) UpdateRole(ctx context.Context, id string, in RoleInput) (*entity.Role, error) {
	var out *entity.Role
	err := s.Repo.InTx(ctx, func(r repo.RoleRepository) error {
		role, err := r.GetByID(ctx, id)
		if err != nil {
			return err
		}
		role.Name = in.Name
		if in.Guard != "" {
			role.Guard = in.Guard
		}
		if err := r.Update(ctx, role); err != nil {
			return err
		}
		if in.PermissionIDs != nil {
			if err := r.SyncPermissions(ctx, id, in.PermissionIDs); err != nil {
				return err
			}
		}
		out, err = r.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteRole removes the role and its permission links atomically.
func (s *RoleService) DeleteRole(ctx context.Context, id string) (bool, error) {
	var deleted bool
	err := s.Repo.InTx(ctx, func(r repo.RoleRepository) error {
		if err := r.SyncPermissions(ctx, id, nil); err != nil {
			return err
		}
		ok, err := r.Delete(ctx, id)
		deleted = ok
		return err
	})
	return deleted, err
}

func (s *RoleService) GetRole(ctx context.Context, id string) (*entity.Role, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *RoleService) ListRoles(ctx context.Context, page, size int) ([]entity.Role, int64, error) {
	return s.Repo.GetPaginated(ctx, page, size)
}
