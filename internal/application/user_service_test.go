package application

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorbit/lms-api/internal/domain/entity"
	repo "github.com/mentorbit/lms-api/internal/domain/repository"
	"github.com/mentorbit/lms-api/pkg/helpers"
)

type fakeUserRepo struct {
	users map[string]*entity.User
	perms map[string][]entity.Permission
	seq   int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}, perms: map[string][]entity.Permission{}}
}

func (f *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return repo.ErrDuplicate
		}
	}
	f.seq++
	u.ID = fmt.Sprintf("user-%d", f.seq)
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return repo.ErrNotFound
	}
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := f.users[id]; !ok {
		return false, nil
	}
	delete(f.users, id)
	return true, nil
}

func (f *fakeUserRepo) GetPaginated(_ context.Context, page, size int) ([]entity.User, int64, error) {
	var out []entity.User
	for _, u := range f.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (f *fakeUserRepo) AssignTier(_ context.Context, userID, tierID string) error {
	u, ok := f.users[userID]
	if !ok {
		return repo.ErrNotFound
	}
	u.TierID = tierID
	return nil
}

func (f *fakeUserRepo) AssignRole(_ context.Context, userID, roleID string) error {
	if _, ok := f.users[userID]; !ok {
		return repo.ErrNotFound
	}
	return nil
}

func (f *fakeUserRepo) PermissionsFor(_ context.Context, userID string) ([]entity.Permission, error) {
	return append([]entity.Permission(nil), f.perms[userID]...), nil
}

var _ repo.UserRepository = (*fakeUserRepo)(nil)

func TestRegisterWithoutAvatar(t *testing.T) {
	f := newFakeUserRepo()
	svc := &UserService{Repo: f}

	u, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "supersecret",
		Phone:    "+6281234567890",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Empty(t, u.AvatarURL)
	assert.NotEqual(t, "supersecret", u.Password, "password must be stored hashed")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newFakeUserRepo()
	svc := &UserService{Repo: f}

	_, err := svc.Register(context.Background(), RegisterInput{
		Name: "Alice", Email: "alice@example.com", Password: "supersecret",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterInput{
		Name: "Impostor", Email: "alice@example.com", Password: "othersecret",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.Len(t, f.users, 1)
}

func TestAuthenticate(t *testing.T) {
	f := newFakeUserRepo()
	svc := &UserService{Repo: f}

	_, err := svc.Register(context.Background(), RegisterInput{
		Name: "Alice", Email: "alice@example.com", Password: "supersecret",
	})
	require.NoError(t, err)

	u, err := svc.Authenticate(context.Background(), "alice@example.com", "supersecret")
	require.NoError(t, err)
	assert.Equal(t, "Alice", u.Name)

	_, err = svc.Authenticate(context.Background(), "alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(context.Background(), "nobody@example.com", "supersecret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshIssuesNewPair(t *testing.T) {
	f := newFakeUserRepo()
	svc := &UserService{
		Repo: f,
		JWT:  helpers.NewJWTManager("access-secret", "refresh-secret", time.Minute, time.Hour),
	}

	u, err := svc.Register(context.Background(), RegisterInput{
		Name: "Alice", Email: "alice@example.com", Password: "supersecret",
	})
	require.NoError(t, err)

	pair, err := svc.IssueTokens(context.Background(), u)
	require.NoError(t, err)

	got, next, err := svc.Refresh(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.NotEmpty(t, next.AccessToken)
	assert.NotEmpty(t, next.RefreshToken)
}

func TestRefreshRejectsBadTokens(t *testing.T) {
	f := newFakeUserRepo()
	svc := &UserService{
		Repo: f,
		JWT:  helpers.NewJWTManager("access-secret", "refresh-secret", time.Minute, time.Hour),
	}

	u, err := svc.Register(context.Background(), RegisterInput{
		Name: "Alice", Email: "alice@example.com", Password: "supersecret",
	})
	require.NoError(t, err)

	pair, err := svc.IssueTokens(context.Background(), u)
	require.NoError(t, err)

	// An access token is signed with the wrong secret for refresh.
	_, _, err = svc.Refresh(context.Background(), pair.AccessToken)
	assert.ErrorIs(t, err, ErrSessionExpired)

	_, _, err = svc.Refresh(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrSessionExpired)

	// A valid token for a deleted account cannot be redeemed.
	_, err = f.Delete(context.Background(), u.ID)
	require.NoError(t, err)
	_, _, err = svc.Refresh(context.Background(), pair.RefreshToken)
	assert.ErrorIs(t, err, ErrSessionExpired)
}

func TestAssignTierChecksTierExists(t *testing.T) {
	users := newFakeUserRepo()
	tiers := newFakeTierRepo()
	svc := &UserService{Repo: users, Tiers: tiers}

	u, err := svc.Register(context.Background(), RegisterInput{
		Name: "Alice", Email: "alice@example.com", Password: "supersecret",
	})
	require.NoError(t, err)

	err = svc.AssignTier(context.Background(), u.ID, "missing-tier")
	assert.ErrorIs(t, err, repo.ErrNotFound)

	tier := &entity.Tier{Name: "pro"}
	require.NoError(t, tiers.Create(context.Background(), tier))

	require.NoError(t, svc.AssignTier(context.Background(), u.ID, tier.ID))
	stored, err := users.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, tier.ID, stored.TierID)
}

func TestAssignRoleRequiresExistingUser(t *testing.T) {
	f := newFakeUserRepo()
	svc := &UserService{Repo: f}

	err := svc.AssignRole(context.Background(), "ghost", "role-1")
	assert.ErrorIs(t, err, ErrUserNotFound)

	u, err := svc.Register(context.Background(), RegisterInput{
		Name: "Alice", Email: "alice@example.com", Password: "supersecret",
	})
	require.NoError(t, err)
	assert.NoError(t, svc.AssignRole(context.Background(), u.ID, "role-1"))
}

func TestPermissionsForUser(t *testing.T) {
	f := newFakeUserRepo()
	svc := &UserService{Repo: f}

	u, err := svc.Register(context.Background(), RegisterInput{
		Name: "Alice", Email: "alice@example.com", Password: "supersecret",
	})
	require.NoError(t, err)
	f.perms[u.ID] = []entity.Permission{{ID: "p1", Name: "courses.manage"}}

	perms, err := svc.PermissionsForUser(context.Background(), u.ID)
	require.NoError(t, err)
	require.Len(t, perms, 1)
	assert.Equal(t, "courses.manage", perms[0].Name)
}
