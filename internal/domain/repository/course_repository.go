package repository

import (
	"context"

	"github.com/mentorbit/lms-api/internal/domain/entity"
)

// CourseRepository mediates all writes to courses and their owned records
// (images, mentor assignments, sub-courses, videos).
type CourseRepository interface {
	Create(ctx context.Context, c *entity.Course) error
	// GetByID eagerly loads images, mentors and sub-courses with their videos.
	GetByID(ctx context.Context, id string) (*entity.Course, error)
	Update(ctx context.Context, c *entity.Course) error
	Delete(ctx context.Context, id string) (bool, error)
	GetPaginated(ctx context.Context, page, size int) ([]entity.Course, int64, error)
	SetPublished(ctx context.Context, id string, published bool) error

	AddImage(ctx context.Context, img *entity.CourseImage) error
	// AssignMentor is idempotent: repeated assignments of the same
	// (course, user) pair leave a single row.
	AssignMentor(ctx context.Context, courseID, userID string) error
	GetMentors(ctx context.Context, courseID string) ([]entity.Mentor, error)
	RemoveMentor(ctx context.Context, courseID, userID string) (bool, error)

	// CreateSubCourse nested-creates the sub-course's videos in one pass,
	// skipping entries missing a title or URL. Returns the number skipped.
	CreateSubCourse(ctx context.Context, sc *entity.SubCourse) (skipped int, err error)
	DeleteSubCourse(ctx context.Context, id string) (bool, error)
}

// PromoRepository mediates writes to promotional pricing entries.
type PromoRepository interface {
	Create(ctx context.Context, p *entity.Promo) error
	GetByID(ctx context.Context, id string) (*entity.Promo, error)
	Update(ctx context.Context, p *entity.Promo) error
	Delete(ctx context.Context, id string) (bool, error)
	GetPaginated(ctx context.Context, page, size int) ([]entity.Promo, int64, error)
}

// CodingToolRepository mediates writes to the coding-tool catalog.
type CodingToolRepository interface {
	Create(ctx context.Context, t *entity.CodingTool) error
	GetByID(ctx context.Context, id string) (*entity.CodingTool, error)
	Update(ctx context.Context, t *entity.CodingTool) error
	Delete(ctx context.Context, id string) (bool, error)
	GetPaginated(ctx context.Context, page, size int) ([]entity.CodingTool, int64, error)
}
