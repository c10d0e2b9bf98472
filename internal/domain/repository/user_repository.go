package repository

import (
	"context"

	"github.com/mentorbit/lms-api/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, id string) (bool, error)
	GetPaginated(ctx context.Context, page, size int) ([]entity.User, int64, error)
	AssignTier(ctx context.Context, userID, tierID string) error
	AssignRole(ctx context.Context, userID, roleID string) error
	// PermissionsFor loads every permission the user holds through its roles
	// in a single join query.
	PermissionsFor(ctx context.Context, userID string) ([]entity.Permission, error)
}
