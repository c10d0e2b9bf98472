package application

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorbit/lms-api/internal/domain/entity"
	repo "github.com/mentorbit/lms-api/internal/domain/repository"
)

// fakeTierRepo enforces name uniqueness on Create, like the unique index in
// the real store. hideFromLookup simulates a concurrent insert: GetByName
// misses but the index still rejects the write.
type fakeTierRepo struct {
	tiers          map[string]*entity.Tier
	hideFromLookup bool
	seq            int
}

func newFakeTierRepo() *fakeTierRepo {
	return &fakeTierRepo{tiers: map[string]*entity.Tier{}}
}

func (f *fakeTierRepo) Create(_ context.Context, t *entity.Tier) error {
	for _, existing := range f.tiers {
		if existing.Name == t.Name {
			return repo.ErrDuplicate
		}
	}
	f.seq++
	t.ID = fmt.Sprintf("tier-%d", f.seq)
	cp := *t
	f.tiers[t.ID] = &cp
	return nil
}

func (f *fakeTierRepo) GetByID(_ context.Context, id string) (*entity.Tier, error) {
	t, ok := f.tiers[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTierRepo) GetByName(_ context.Context, name string) (*entity.Tier, error) {
	if f.hideFromLookup {
		return nil, repo.ErrNotFound
	}
	for _, t := range f.tiers {
		if t.Name == name {
			cp := *t
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeTierRepo) Update(_ context.Context, t *entity.Tier) error {
	if _, ok := f.tiers[t.ID]; !ok {
		return repo.ErrNotFound
	}
	for id, existing := range f.tiers {
		if id != t.ID && existing.Name == t.Name {
			return repo.ErrDuplicate
		}
	}
	cp := *t
	f.tiers[t.ID] = &cp
	return nil
}

func (f *fakeTierRepo) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := f.tiers[id]; !ok {
		return false, nil
	}
	delete(f.tiers, id)
	return true, nil
}

func (f *fakeTierRepo) GetPaginated(_ context.Context, page, size int) ([]entity.Tier, int64, error) {
	var out []entity.Tier
	for _, t := range f.tiers {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (f *fakeTierRepo) InTx(_ context.Context, fn func(repo.TierRepository) error) error {
	return fn(f)
}

var _ repo.TierRepository = (*fakeTierRepo)(nil)

func TestCreateTier(t *testing.T) {
	f := newFakeTierRepo()
	svc := &TierService{Repo: f}

	tier, err := svc.CreateTier(context.Background(), "pro")
	require.NoError(t, err)
	assert.NotEmpty(t, tier.ID)
	assert.Equal(t, "pro", tier.Name)
}

func TestCreateTierDuplicateName(t *testing.T) {
	f := newFakeTierRepo()
	svc := &TierService{Repo: f}

	_, err := svc.CreateTier(context.Background(), "pro")
	require.NoError(t, err)

	_, err = svc.CreateTier(context.Background(), "pro")
	assert.ErrorIs(t, err, ErrTierNameTaken)
	assert.Len(t, f.tiers, 1)
}

func TestCreateTierDuplicateCaughtByStore(t *testing.T) {
	f := newFakeTierRepo()
	svc := &TierService{Repo: f}

	_, err := svc.CreateTier(context.Background(), "pro")
	require.NoError(t, err)

	// Name check misses; the unique index is the authoritative guard.
	f.hideFromLookup = true
	_, err = svc.CreateTier(context.Background(), "pro")
	assert.ErrorIs(t, err, ErrTierNameTaken)
	assert.Len(t, f.tiers, 1)
}

func TestUpdateTierToTakenName(t *testing.T) {
	f := newFakeTierRepo()
	svc := &TierService{Repo: f}

	_, err := svc.CreateTier(context.Background(), "pro")
	require.NoError(t, err)
	free, err := svc.CreateTier(context.Background(), "free")
	require.NoError(t, err)

	_, err = svc.UpdateTier(context.Background(), free.ID, "pro")
	assert.ErrorIs(t, err, ErrTierNameTaken)
}

func TestUpdateTierNotFound(t *testing.T) {
	svc := &TierService{Repo: newFakeTierRepo()}

	_, err := svc.UpdateTier(context.Background(), "missing", "pro")
	assert.ErrorIs(t, err, repo.ErrNotFound)
}
