package application

import (
	"context"
	"errors"

	"github.com/mentorbit/lms-api/internal/domain/entity"
	repo "github.com/mentorbit/lms-api/internal/domain/repository"
)

// ErrTierNameTaken is the duplicate-name conflict for tier creation.
var ErrTierNameTaken = errors.New("tier name already exists")

// TierService guards tier-name uniqueness. The name check is a fast path
// only; the authoritative guard is the store's unique index, whose
// violation also maps to ErrTierNameTaken.
type TierService struct {
	Repo repo.TierRepository
}

func (s *TierService) CreateTier(ctx context.Context, name string) (*entity.Tier, error) {
	t := &entity.Tier{Name: name}
	err := s.Repo.InTx(ctx, func(r repo.TierRepository) error {
		if existing, err := r.GetByName(ctx, name); err == nil && existing != nil {
			return ErrTierNameTaken
		} else if err != nil && !errors.Is(err, repo.ErrNotFound) {
			return err
		}
		if err := r.Create(ctx, t); err != nil {
			if errors.Is(err, repo.ErrDuplicate) {
				return ErrTierNameTaken
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TierService) UpdateTier(ctx context.Context, id, name string) (*entity.Tier, error) {
	var t *entity.Tier
	err := s.Repo.InTx(ctx, func(r repo.TierRepository) error {
		var err error
		t, err = r.GetByID(ctx, id)
		if err != nil {
			return err
		}
		t.Name = name
		if err := r.Update(ctx, t); err != nil {
			if errors.Is(err, repo.ErrDuplicate) {
				return ErrTierNameTaken
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TierService) DeleteTier(ctx context.Context, id string) (bool, error) {
	return s.Repo.Delete(ctx, id)
}

func (s *TierService) GetTier(ctx context.Context, id string) (*entity.Tier, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *TierService) ListTiers(ctx context.Context, page, size int) ([]entity.Tier, int64, error) {
	return s.Repo.GetPaginated(ctx, page, size)
}
