package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorbit/lms-api/internal/domain/entity"
	repo "github.com/mentorbit/lms-api/internal/domain/repository"
)

// fakeRoleRepo keeps roles and permission links in memory. InTx works on a
// clone and copies it back only when fn succeeds, so a failed callback
// leaves the repo untouched, same as a rolled-back transaction.
type fakeRoleRepo struct {
	roles   map[string]*entity.Role
	links   map[string][]string
	badPerm string
	seq     int

	inTx       bool // set on InTx clones
	outerReads int  // GetByID calls outside a transaction
}

func newFakeRoleRepo() *fakeRoleRepo {
	return &fakeRoleRepo{roles: map[string]*entity.Role{}, links: map[string][]string{}}
}

func (f *fakeRoleRepo) clone() *fakeRoleRepo {
	c := &fakeRoleRepo{roles: map[string]*entity.Role{}, links: map[string][]string{}, badPerm: f.badPerm, seq: f.seq, inTx: true}
	for id, r := range f.roles {
		cp := *r
		c.roles[id] = &cp
	}
	for id, perms := range f.links {
		c.links[id] = append([]string(nil), perms...)
	}
	return c
}

func (f *fakeRoleRepo) Create(_ context.Context, r *entity.Role) error {
	for _, existing := range f.roles {
		if existing.Name == r.Name {
			return repo.ErrDuplicate
		}
	}
	f.seq++
	r.ID = fmt.Sprintf("role-%d", f.seq)
	cp := *r
	f.roles[r.ID] = &cp
	return nil
}

func (f *fakeRoleRepo) GetByID(_ context.Context, id string) (*entity.Role, error) {
	if !f.inTx {
		f.outerReads++
	}
	r, ok := f.roles[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *r
	cp.Permissions = nil
	for _, pid := range f.links[id] {
		cp.Permissions = append(cp.Permissions, entity.Permission{ID: pid})
	}
	return &cp, nil
}

func (f *fakeRoleRepo) GetByName(_ context.Context, name string) (*entity.Role, error) {
	for _, r := range f.roles {
		if r.Name == name {
			cp := *r
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeRoleRepo) Update(_ context.Context, r *entity.Role) error {
	if _, ok := f.roles[r.ID]; !ok {
		return repo.ErrNotFound
	}
	cp := *r
	f.roles[r.ID] = &cp
	return nil
}

func (f *fakeRoleRepo) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := f.roles[id]; !ok {
		return false, nil
	}
	delete(f.roles, id)
	return true, nil
}

func (f *fakeRoleRepo) GetPaginated(_ context.Context, page, size int) ([]entity.Role, int64, error) {
	var out []entity.Role
	for _, r := range f.roles {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (f *fakeRoleRepo) SyncPermissions(_ context.Context, roleID string, permissionIDs []string) error {
	for _, pid := range permissionIDs {
		if f.badPerm != "" && pid == f.badPerm {
			return errors.New("foreign key violation")
		}
	}
	if len(permissionIDs) == 0 {
		delete(f.links, roleID)
		return nil
	}
	seen := map[string]bool{}
	var uniq []string
	for _, pid := range permissionIDs {
		if !seen[pid] {
			seen[pid] = true
			uniq = append(uniq, pid)
		}
	}
	f.links[roleID] = uniq
	return nil
}

func (f *fakeRoleRepo) GetPermissions(_ context.Context, roleID string) ([]entity.Permission, error) {
	var out []entity.Permission
	for _, pid := range f.links[roleID] {
		out = append(out, entity.Permission{ID: pid})
	}
	return out, nil
}

func (f *fakeRoleRepo) InTx(_ context.Context, fn func(repo.RoleRepository) error) error {
	tx := f.clone()
	if err := fn(tx); err != nil {
		return err
	}
	f.roles = tx.roles
	f.links = tx.links
	f.seq = tx.seq
	return nil
}

var _ repo.RoleRepository = (*fakeRoleRepo)(nil)

func permIDs(perms []entity.Permission) []string {
	out := make([]string, 0, len(perms))
	for _, p := range perms {
		out = append(out, p.ID)
	}
	return out
}

func TestCreateRoleSyncsPermissions(t *testing.T) {
	f := newFakeRoleRepo()
	svc := &RoleService{Repo: f}

	role, err := svc.CreateRole(context.Background(), RoleInput{
		Name:          "editor",
		Guard:         "api",
		PermissionIDs: []string{"p1", "p2"},
	})
	require.NoError(t, err)
	assert.Equal(t, "editor", role.Name)
	assert.ElementsMatch(t, []string{"p1", "p2"}, permIDs(role.Permissions))
}

func TestCreateRoleWithoutPermissionList(t *testing.T) {
	f := newFakeRoleRepo()
	svc := &RoleService{Repo: f}

	role, err := svc.CreateRole(context.Background(), RoleInput{Name: "viewer", Guard: "api"})
	require.NoError(t, err)
	assert.Empty(t, role.Permissions)
}

func TestCreateRoleRollsBackOnSyncFailure(t *testing.T) {
	f := newFakeRoleRepo()
	f.badPerm = "p-missing"
	svc := &RoleService{Repo: f}

	_, err := svc.CreateRole(context.Background(), RoleInput{
		Name:          "editor",
		PermissionIDs: []string{"p1", "p-missing"},
	})
	require.Error(t, err)
	assert.Empty(t, f.roles, "failed sync must not leave the role behind")
}

func TestRoleWritesReadBackInsideTx(t *testing.T) {
	f := newFakeRoleRepo()
	svc := &RoleService{Repo: f}

	role, err := svc.CreateRole(context.Background(), RoleInput{
		Name:          "editor",
		PermissionIDs: []string{"p1"},
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"p1"}, permIDs(role.Permissions))

	_, err = svc.UpdateRole(context.Background(), role.ID, RoleInput{
		Name:          "editor",
		PermissionIDs: []string{"p2"},
	})
	require.NoError(t, err)

	assert.Zero(t, f.outerReads,
		"create/update must assemble the returned role inside the transaction")
}

func TestUpdateRoleReplacesPermissionSet(t *testing.T) {
	f := newFakeRoleRepo()
	svc := &RoleService{Repo: f}

	role, err := svc.CreateRole(context.Background(), RoleInput{
		Name:          "editor",
		PermissionIDs: []string{"p1", "p2", "p3"},
	})
	require.NoError(t, err)

	updated, err := svc.UpdateRole(context.Background(), role.ID, RoleInput{
		Name:          "editor",
		PermissionIDs: []string{"p2", "p4"},
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"p2", "p4"}, permIDs(updated.Permissions))
}

func TestUpdateRoleNilPermissionsLeavesSetAlone(t *testing.T) {
	f := newFakeRoleRepo()
	svc := &RoleService{Repo: f}

	role, err := svc.CreateRole(context.Background(), RoleInput{
		Name:          "editor",
		PermissionIDs: []string{"p1"},
	})
	require.NoError(t, err)

	updated, err := svc.UpdateRole(context.Background(), role.ID, RoleInput{Name: "renamed"})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Name)
	assert.ElementsMatch(t, []string{"p1"}, permIDs(updated.Permissions))
}

func TestSyncPermissionsIdempotent(t *testing.T) {
	f := newFakeRoleRepo()
	svc := &RoleService{Repo: f}

	role, err := svc.CreateRole(context.Background(), RoleInput{
		Name:          "editor",
		PermissionIDs: []string{"p1", "p2"},
	})
	require.NoError(t, err)

	again, err := svc.UpdateRole(context.Background(), role.ID, RoleInput{
		Name:          "editor",
		PermissionIDs: []string{"p1", "p2"},
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"p1", "p2"}, permIDs(again.Permissions))
}

func TestDeleteRoleClearsLinks(t *testing.T) {
	f := newFakeRoleRepo()
	svc := &RoleService{Repo: f}

	role, err := svc.CreateRole(context.Background(), RoleInput{
		Name:          "editor",
		PermissionIDs: []string{"p1"},
	})
	require.NoError(t, err)

	ok, err := svc.DeleteRole(context.Background(), role.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, f.links)

	_, err = svc.GetRole(context.Background(), role.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}
