package application

import (
	"context"

	"github.com/mentorbit/lms-api/internal/domain/entity"
	repo "github.com/mentorbit/lms-api/internal/domain/repository"
)

// PermissionService is a pass-through over the permission repository; no
// extra invariant lives here.
type PermissionService struct {
	Repo repo.PermissionRepository
}

func (s *PermissionService) Create(ctx context.Context, name, guard, groupID string) (*entity.Permission, error) {
	p := &entity.Permission{Name: name, Guard: guard, GroupID: groupID}
	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PermissionService) Update(ctx context.Context, id, name, guard, groupID string) (*entity.Permission, error) {
	p, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Name = name
	if guard != "" {
		p.Guard = guard
	}
	if groupID != "" {
		p.GroupID = groupID
	}
	if err := s.Repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PermissionService) Delete(ctx context.Context, id string) (bool, error) {
	return s.Repo.Delete(ctx, id)
}

func (s *PermissionService) Get(ctx context.Context, id string) (*entity.Permission, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *PermissionService) List(ctx context.Context, page, size int) ([]entity.Permission, int64, error) {
	return s.Repo.GetPaginated(ctx, page, size)
}

// PermissionGroupService is a pass-through over the group repository.
type PermissionGroupService struct {
	Repo repo.PermissionGroupRepository
}

func (s *PermissionGroupService) Create(ctx context.Context, name string) (*entity.PermissionGroup, error) {
	g := &entity.PermissionGroup{Name: name}
	if err := s.Repo.Create(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *PermissionGroupService) Update(ctx context.Context, id, name string) (*entity.PermissionGroup, error) {
	g, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	g.Name = name
	if err := s.Repo.Update(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *PermissionGroupService) Delete(ctx context.Context, id string) (bool, error) {
	return s.Repo.Delete(ctx, id)
}

func (s *PermissionGroupService) Get(ctx context.Context, id string) (*entity.PermissionGroup, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *PermissionGroupService) List(ctx context.Context, page, size int) ([]entity.PermissionGroup, int64, error) {
	return s.Repo.GetPaginated(ctx, page, size)
}
