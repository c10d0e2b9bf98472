package application

import (
	"context"

	"github.com/mentorbit/lms-api/internal/domain/entity"
	repo "github.com/mentorbit/lms-api/internal/domain/repository"
)

// PromoService is a pass-through over the promo repository.
type PromoService struct {
	Repo repo.PromoRepository
}

func (s *PromoService) Create(ctx context.Context, p *entity.Promo) (*entity.Promo, error) {
	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PromoService) Update(ctx context.Context, p *entity.Promo) (*entity.Promo, error) {
	if _, err := s.Repo.GetByID(ctx, p.ID); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PromoService) Delete(ctx context.Context, id string) (bool, error) {
	return s.Repo.Delete(ctx, id)
}

func (s *PromoService) Get(ctx context.Context, id string) (*entity.Promo, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *PromoService) List(ctx context.Context, page, size int) ([]entity.Promo, int64, error) {
	return s.Repo.GetPaginated(ctx, page, size)
}

// CodingToolService is a pass-through over the coding-tool repository.
type CodingToolService struct {
	Repo repo.CodingToolRepository
}

func (s *CodingToolService) Create(ctx context.Context, t *entity.CodingTool) (*entity.CodingTool, error) {
	if err := s.Repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *CodingToolService) Update(ctx context.Context, t *entity.CodingTool) (*entity.CodingTool, error) {
	if _, err := s.Repo.GetByID(ctx, t.ID); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *CodingToolService) Delete(ctx context.Context, id string) (bool, error) {
	return s.Repo.Delete(ctx, id)
}

func (s *CodingToolService) Get(ctx context.Context, id string) (*entity.CodingTool, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *CodingToolService) List(ctx context.Context, page, size int) ([]entity.CodingTool, int64, error) {
	return s.Repo.GetPaginated(ctx, page, size)
}
