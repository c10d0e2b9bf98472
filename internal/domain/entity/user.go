package entity

import (
	"time"
)

// User is the aggregate root for the account domain.
// Passwords are stored as bcrypt hashes in Password field.
type User struct {
	ID        string
	Email     string
	Password  string
	Name      string
	Phone     string
	AvatarURL string
	TierID    string // empty until a tier is assigned
	Roles     []Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Tier is a named account classification assignable to users.
// Names are unique, enforced by the store.
type Tier struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
