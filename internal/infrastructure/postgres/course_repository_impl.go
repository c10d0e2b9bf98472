package postgres

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mentorbit/lms-api/internal/domain/entity"
	"github.com/mentorbit/lms-api/internal/domain/repository"
)

type CourseRepository struct {
	pool *pgxpool.Pool
	db   DBTX
}

func NewCourseRepository(pool *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{pool: pool, db: pool}
}

func (r *CourseRepository) Create(ctx context.Context, c *entity.Course) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO courses (title, slug, description, price, discount_price, cover_url, published)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, c.Title, c.Slug, c.Description, c.Price, c.DiscountPrice, c.CoverURL, c.Published)

	return mapError(row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt))
}

// GetByID eagerly loads every owned relation: images, mentors, sub-courses
// and their videos.
func (r *CourseRepository) GetByID(ctx context.Context, id string) (*entity.Course, error) {
	c := &entity.Course{}
	row := r.db.QueryRow(ctx, `
		SELECT id, title, slug, description, price, discount_price, cover_url, published, created_at, updated_at
		FROM courses
		WHERE id = $1
	`, id)
	if err := row.Scan(&c.ID, &c.Title, &c.Slug, &c.Description, &c.Price, &c.DiscountPrice,
		&c.CoverURL, &c.Published, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, mapError(err)
	}

	imgs, err := r.getImages(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Images = imgs

	mentors, err := r.GetMentors(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Mentors = mentors

	subs, err := r.getSubCourses(ctx, id)
	if err != nil {
		return nil, err
	}
	c.SubCourses = subs
	return c, nil
}

func (r *CourseRepository) Update(ctx context.Context, c *entity.Course) error {
	c.UpdatedAt = time.Now()

	res, err := r.db.Exec(ctx, `
		UPDATE courses
		SET title = $1, slug = $2, description = $3, price = $4, discount_price = $5,
		    cover_url = $6, updated_at = $7
		WHERE id = $8
	`, c.Title, c.Slug, c.Description, c.Price, c.DiscountPrice, c.CoverURL, c.UpdatedAt, c.ID)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CourseRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return false, mapError(err)
	}
	return res.RowsAffected() > 0, nil
}

func (r *CourseRepository) GetPaginated(ctx context.Context, page, size int) ([]entity.Course, int64, error) {
	if page < 1 {
		page = 1
	}
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM courses`).Scan(&total); err != nil {
		return nil, 0, mapError(err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, title, slug, description, price, discount_price, cover_url, published, created_at, updated_at
		FROM courses
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, size, (page-1)*size)
	if err != nil {
		return nil, 0, mapError(err)
	}
	defer rows.Close()

	var courses []entity.Course
	for rows.Next() {
		var c entity.Course
		if err := rows.Scan(&c.ID, &c.Title, &c.Slug, &c.Description, &c.Price, &c.DiscountPrice,
			&c.CoverURL, &c.Published, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, err
		}
		courses = append(courses, c)
	}
	return courses, total, rows.Err()
}

func (r *CourseRepository) SetPublished(ctx context.Context, id string, published bool) error {
	res, err := r.db.Exec(ctx, `
		UPDATE courses SET published = $1, updated_at = now() WHERE id = $2
	`, published, id)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CourseRepository) AddImage(ctx context.Context, img *entity.CourseImage) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO course_images (course_id, url)
		VALUES ($1, $2)
		RETURNING id, created_at
	`, img.CourseID, img.URL)
	return mapError(row.Scan(&img.ID, &img.CreatedAt))
}

func (r *CourseRepository) getImages(ctx context.Context, courseID string) ([]entity.CourseImage, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, course_id, url, created_at
		FROM course_images
		WHERE course_id = $1
		ORDER BY created_at
	`, courseID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var imgs []entity.CourseImage
	for rows.Next() {
		var img entity.CourseImage
		if err := rows.Scan(&img.ID, &img.CourseID, &img.URL, &img.CreatedAt); err != nil {
			return nil, err
		}
		imgs = append(imgs, img)
	}
	return imgs, rows.Err()
}

// AssignMentor inserts the (course, user) pair; repeated assignments are
// absorbed by ON CONFLICT DO NOTHING so exactly one row survives.
func (r *CourseRepository) AssignMentor(ctx context.Context, courseID, userID string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO course_mentors (course_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (course_id, user_id) DO NOTHING
	`, courseID, userID)
	return mapError(err)
}

func (r *CourseRepository) GetMentors(ctx context.Context, courseID string) ([]entity.Mentor, error) {
	rows, err := r.db.Query(ctx, `
		SELECT cm.id, cm.course_id, cm.user_id, u.name, u.email
		FROM course_mentors cm
		JOIN users u ON u.id = cm.user_id
		WHERE cm.course_id = $1
		ORDER BY u.name
	`, courseID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var mentors []entity.Mentor
	for rows.Next() {
		var m entity.Mentor
		if err := rows.Scan(&m.ID, &m.CourseID, &m.UserID, &m.Name, &m.Email); err != nil {
			return nil, err
		}
		mentors = append(mentors, m)
	}
	return mentors, rows.Err()
}

func (r *CourseRepository) RemoveMentor(ctx context.Context, courseID, userID string) (bool, error) {
	res, err := r.db.Exec(ctx, `
		DELETE FROM course_mentors WHERE course_id = $1 AND user_id = $2
	`, courseID, userID)
	if err != nil {
		return false, mapError(err)
	}
	return res.RowsAffected() > 0, nil
}

// CreateSubCourse creates the sub-course and its videos in one transaction.
// Video entries missing a title or URL are skipped; the skipped count is
// returned so callers can surface it.
func (r *CourseRepository) CreateSubCourse(ctx context.Context, sc *entity.SubCourse) (int, error) {
	skipped := 0
	err := runInTx(ctx, r.pool, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `
			INSERT INTO sub_courses (course_id, title, position)
			VALUES ($1, $2, $3)
			RETURNING id, created_at, updated_at
		`, sc.CourseID, sc.Title, sc.Position)
		if err := row.Scan(&sc.ID, &sc.CreatedAt, &sc.UpdatedAt); err != nil {
			return mapError(err)
		}

		kept := sc.Videos[:0]
		pos := 0
		for _, v := range sc.Videos {
			if strings.TrimSpace(v.Title) == "" || strings.TrimSpace(v.URL) == "" {
				skipped++
				continue
			}
			v.SubCourseID = sc.ID
			v.Position = pos
			pos++
			vrow := tx.QueryRow(ctx, `
				INSERT INTO videos (sub_course_id, title, url, duration_seconds, position)
				VALUES ($1, $2, $3, $4, $5)
				RETURNING id, created_at
			`, v.SubCourseID, v.Title, v.URL, v.DurationSeconds, v.Position)
			if err := vrow.Scan(&v.ID, &v.CreatedAt); err != nil {
				return mapError(err)
			}
			kept = append(kept, v)
		}
		sc.Videos = kept
		return nil
	})
	if err != nil {
		return 0, err
	}
	return skipped, nil
}

func (r *CourseRepository) DeleteSubCourse(ctx context.Context, id string) (bool, error) {
	res, err := r.db.Exec(ctx, `DELETE FROM sub_courses WHERE id = $1`, id)
	if err != nil {
		return false, mapError(err)
	}
	return res.RowsAffected() > 0, nil
}

func (r *CourseRepository) getSubCourses(ctx context.Context, courseID string) ([]entity.SubCourse, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, course_id, title, position, created_at, updated_at
		FROM sub_courses
		WHERE course_id = $1
		ORDER BY position
	`, courseID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var subs []entity.SubCourse
	for rows.Next() {
		var sc entity.SubCourse
		if err := rows.Scan(&sc.ID, &sc.CourseID, &sc.Title, &sc.Position, &sc.CreatedAt, &sc.UpdatedAt); err != nil {
			return nil, err
		}
		subs = append(subs, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(subs) == 0 {
		return subs, nil
	}
	ids := make([]string, len(subs))
	byID := make(map[string]*entity.SubCourse, len(subs))
	for i := range subs {
		ids[i] = subs[i].ID
		byID[subs[i].ID] = &subs[i]
	}
	vrows, err := r.db.Query(ctx, `
		SELECT id, sub_course_id, title, url, duration_seconds, position, created_at
		FROM videos
		WHERE sub_course_id = ANY($1)
		ORDER BY position
	`, ids)
	if err != nil {
		return nil, mapError(err)
	}
	defer vrows.Close()
	for vrows.Next() {
		var v entity.Video
		if err := vrows.Scan(&v.ID, &v.SubCourseID, &v.Title, &v.URL, &v.DurationSeconds, &v.Position, &v.CreatedAt); err != nil {
			return nil, err
		}
		if sc, ok := byID[v.SubCourseID]; ok {
			sc.Videos = append(sc.Videos, v)
		}
	}
	return subs, vrows.Err()
}

var _ repository.CourseRepository = (*CourseRepository)(nil)
