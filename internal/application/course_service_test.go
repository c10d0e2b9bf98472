package application

import (
	"context"
	"fmt"
	"io"
	"sort"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorbit/lms-api/internal/domain/entity"
	repo "github.com/mentorbit/lms-api/internal/domain/repository"
)

type fakeCourseRepo struct {
	courses    map[string]*entity.Course
	mentors    map[string][]entity.Mentor
	subCourses map[string]*entity.SubCourse
	seq        int
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{
		courses:    map[string]*entity.Course{},
		mentors:    map[string][]entity.Mentor{},
		subCourses: map[string]*entity.SubCourse{},
	}
}

func (f *fakeCourseRepo) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s-%d", prefix, f.seq)
}

func (f *fakeCourseRepo) Create(_ context.Context, c *entity.Course) error {
	c.ID = f.nextID("course")
	cp := *c
	f.courses[c.ID] = &cp
	return nil
}

func (f *fakeCourseRepo) GetByID(_ context.Context, id string) (*entity.Course, error) {
	c, ok := f.courses[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *c
	cp.Mentors = append([]entity.Mentor(nil), f.mentors[id]...)
	return &cp, nil
}

func (f *fakeCourseRepo) Update(_ context.Context, c *entity.Course) error {
	if _, ok := f.courses[c.ID]; !ok {
		return repo.ErrNotFound
	}
	cp := *c
	f.courses[c.ID] = &cp
	return nil
}

func (f *fakeCourseRepo) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := f.courses[id]; !ok {
		return false, nil
	}
	delete(f.courses, id)
	return true, nil
}

func (f *fakeCourseRepo) GetPaginated(_ context.Context, page, size int) ([]entity.Course, int64, error) {
	var out []entity.Course
	for _, c := range f.courses {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (f *fakeCourseRepo) SetPublished(_ context.Context, id string, published bool) error {
	c, ok := f.courses[id]
	if !ok {
		return repo.ErrNotFound
	}
	c.Published = published
	return nil
}

func (f *fakeCourseRepo) AddImage(_ context.Context, img *entity.CourseImage) error {
	c, ok := f.courses[img.CourseID]
	if !ok {
		return repo.ErrNotFound
	}
	img.ID = f.nextID("img")
	c.Images = append(c.Images, *img)
	return nil
}

func (f *fakeCourseRepo) AssignMentor(_ context.Context, courseID, userID string) error {
	if _, ok := f.courses[courseID]; !ok {
		return repo.ErrNotFound
	}
	for _, m := range f.mentors[courseID] {
		if m.UserID == userID {
			return nil
		}
	}
	f.mentors[courseID] = append(f.mentors[courseID], entity.Mentor{
		ID:       f.nextID("mentor"),
		CourseID: courseID,
		UserID:   userID,
	})
	return nil
}

func (f *fakeCourseRepo) GetMentors(_ context.Context, courseID string) ([]entity.Mentor, error) {
	return append([]entity.Mentor(nil), f.mentors[courseID]...), nil
}

func (f *fakeCourseRepo) RemoveMentor(_ context.Context, courseID, userID string) (bool, error) {
	list := f.mentors[courseID]
	for i, m := range list {
		if m.UserID == userID {
			f.mentors[courseID] = append(list[:i], list[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCourseRepo) CreateSubCourse(_ context.Context, sc *entity.SubCourse) (int, error) {
	if _, ok := f.courses[sc.CourseID]; !ok {
		return 0, repo.ErrNotFound
	}
	sc.ID = f.nextID("sub")
	skipped := 0
	kept := sc.Videos[:0]
	for _, v := range sc.Videos {
		if v.Title == "" || v.URL == "" {
			skipped++
			continue
		}
		v.ID = f.nextID("video")
		v.SubCourseID = sc.ID
		v.Position = len(kept)
		kept = append(kept, v)
	}
	sc.Videos = kept
	cp := *sc
	f.subCourses[sc.ID] = &cp
	return skipped, nil
}

func (f *fakeCourseRepo) DeleteSubCourse(_ context.Context, id string) (bool, error) {
	if _, ok := f.subCourses[id]; !ok {
		return false, nil
	}
	delete(f.subCourses, id)
	return true, nil
}

var _ repo.CourseRepository = (*fakeCourseRepo)(nil)

func newCourseService(f *fakeCourseRepo) *CourseService {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return &CourseService{Repo: f, Logger: logger}
}

func TestCreateCourseSlugsTitle(t *testing.T) {
	f := newFakeCourseRepo()
	svc := newCourseService(f)

	c, err := svc.CreateCourse(context.Background(), CourseInput{
		Title: "Go for Backend Engineers!",
		Price: 150000,
	})
	require.NoError(t, err)
	assert.Equal(t, "go-for-backend-engineers", c.Slug)
	assert.False(t, c.Published)
}

func TestUpdateCourseReslugs(t *testing.T) {
	f := newFakeCourseRepo()
	svc := newCourseService(f)

	c, err := svc.CreateCourse(context.Background(), CourseInput{Title: "Old Title", Price: 100})
	require.NoError(t, err)

	updated, err := svc.UpdateCourse(context.Background(), c.ID, CourseInput{Title: "New  Title", Price: 100})
	require.NoError(t, err)
	assert.Equal(t, "new-title", updated.Slug)
}

func TestAssignMentorIdempotent(t *testing.T) {
	f := newFakeCourseRepo()
	svc := newCourseService(f)

	c, err := svc.CreateCourse(context.Background(), CourseInput{Title: "Go", Price: 100})
	require.NoError(t, err)

	mentors, err := svc.AssignMentor(context.Background(), c.ID, "user-1")
	require.NoError(t, err)
	require.Len(t, mentors, 1)

	mentors, err = svc.AssignMentor(context.Background(), c.ID, "user-1")
	require.NoError(t, err)
	assert.Len(t, mentors, 1, "repeated assignment must keep a single row")
}

func TestAssignMentorUnknownCourse(t *testing.T) {
	svc := newCourseService(newFakeCourseRepo())

	_, err := svc.AssignMentor(context.Background(), "missing", "user-1")
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestCreateSubCourseSkipsIncompleteVideos(t *testing.T) {
	f := newFakeCourseRepo()
	svc := newCourseService(f)

	c, err := svc.CreateCourse(context.Background(), CourseInput{Title: "Go", Price: 100})
	require.NoError(t, err)

	res, err := svc.CreateSubCourse(context.Background(), c.ID, SubCourseInput{
		Title: "Basics",
		Videos: []VideoInput{
			{Title: "Intro", URL: "https://youtu.be/dQw4w9WgXcQ"},
			{Title: "", URL: "https://youtu.be/abc"},
			{Title: "No link", URL: ""},
			{Title: "Closures", URL: "https://youtu.be/xyz"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Skipped)
	require.Len(t, res.SubCourse.Videos, 2)
	assert.Equal(t, "Intro", res.SubCourse.Videos[0].Title)
	assert.Equal(t, "Closures", res.SubCourse.Videos[1].Title)
}

func TestSetPublished(t *testing.T) {
	f := newFakeCourseRepo()
	svc := newCourseService(f)

	c, err := svc.CreateCourse(context.Background(), CourseInput{Title: "Go", Price: 100})
	require.NoError(t, err)

	published, err := svc.SetPublished(context.Background(), c.ID, true)
	require.NoError(t, err)
	assert.True(t, published.Published)

	draft, err := svc.SetPublished(context.Background(), c.ID, false)
	require.NoError(t, err)
	assert.False(t, draft.Published)
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Hello World":          "hello-world",
		"  Spaces  Everywhere": "spaces-everywhere",
		"Go 1.22 & Beyond!":    "go-1-22-beyond",
		"---":                  "",
	}
	for in, want := range cases {
		assert.Equal(t, want, slugify(in), "slugify(%q)", in)
	}
}
