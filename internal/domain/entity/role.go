package entity

import "time"

// Role represents an authorization role.
// Many-to-many with User via user_roles and with Permission via role_permissions.
type Role struct {
	ID          string
	Name        string
	Guard       string
	Permissions []Permission
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Permission is a single named capability, owned by exactly one group.
type Permission struct {
	ID        string
	Name      string
	Guard     string
	GroupID   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PermissionGroup is a named collection owning zero or more permissions.
type PermissionGroup struct {
	ID          string
	Name        string
	Permissions []Permission
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
