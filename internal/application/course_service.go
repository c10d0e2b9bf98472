package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mentorbit/lms-api/internal/domain/entity"
	repo "github.com/mentorbit/lms-api/internal/domain/repository"
	"github.com/mentorbit/lms-api/pkg/helpers"
	"github.com/mentorbit/lms-api/pkg/videometa"
)

// CourseService orchestrates catalog authoring: course CRUD, image uploads,
// mentor assignment, sub-course creation with video metadata resolution,
// publication, and search indexing.
type CourseService struct {
	Repo      repo.CourseRepository
	GCS       *storage.Client
	GCSBucket string
	GCSBase   string
	ES        *elasticsearch.Client
	ESIndex   string
	Video     *videometa.Client
	Logger    *logrus.Logger
}

type CourseInput struct {
	Title         string
	Description   string
	Price         int64
	DiscountPrice int64
	CoverURL      string
}

func (s *CourseService) CreateCourse(ctx context.Context, in CourseInput) (*entity.Course, error) {
	c := &entity.Course{
		Title:         in.Title,
		Slug:          slugify(in.Title),
		Description:   in.Description,
		Price:         in.Price,
		DiscountPrice: in.DiscountPrice,
		CoverURL:      in.CoverURL,
	}
	if err := s.Repo.Create(ctx, c); err != nil {
		return nil, err
	}
	s.indexCourse(ctx, c)
	return c, nil
}

func (s *CourseService) UpdateCourse(ctx context.Context, id string, in CourseInput) (*entity.Course, error) {
	c, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Title = in.Title
	c.Slug = slugify(in.Title)
	c.Description = in.Description
	c.Price = in.Price
	c.DiscountPrice = in.DiscountPrice
	if in.CoverURL != "" {
		c.CoverURL = in.CoverURL
	}
	if err := s.Repo.Update(ctx, c); err != nil {
		return nil, err
	}
	s.indexCourse(ctx, c)
	return c, nil
}

func (s *CourseService) DeleteCourse(ctx context.Context, id string) (bool, error) {
	ok, err := s.Repo.Delete(ctx, id)
	if err == nil && ok {
		s.deleteFromIndex(ctx, id)
	}
	return ok, err
}

func (s *CourseService) GetCourse(ctx context.Context, id string) (*entity.Course, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *CourseService) ListCourses(ctx context.Context, page, size int) ([]entity.Course, int64, error) {
	return s.Repo.GetPaginated(ctx, page, size)
}

// SetPublished toggles the binary draft/published state. No readiness
// validation happens before publishing.
func (s *CourseService) SetPublished(ctx context.Context, id string, published bool) (*entity.Course, error) {
	if err := s.Repo.SetPublished(ctx, id, published); err != nil {
		return nil, err
	}
	c, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.indexCourse(ctx, c)
	return c, nil
}

// UploadImage stores a gallery image in object storage and records it on
// the course.
func (s *CourseService) UploadImage(ctx context.Context, courseID string, r io.Reader, filename, contentType string) (*entity.CourseImage, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return nil, errors.New("object storage not configured")
	}
	if _, err := s.Repo.GetByID(ctx, courseID); err != nil {
		return nil, err
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("courses", courseID, uuid.NewString()+ext))
	if err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r); err != nil {
		return nil, err
	}
	img := &entity.CourseImage{
		CourseID: courseID,
		URL:      helpers.PublicURL(s.GCSBase, s.GCSBucket, objectPath),
	}
	if err := s.Repo.AddImage(ctx, img); err != nil {
		return nil, err
	}
	return img, nil
}

// AssignMentor is idempotent per (course, user) pair.
func (s *CourseService) AssignMentor(ctx context.Context, courseID, userID string) ([]entity.Mentor, error) {
	if err := s.Repo.AssignMentor(ctx, courseID, userID); err != nil {
		return nil, err
	}
	return s.Repo.GetMentors(ctx, courseID)
}

func (s *CourseService) RemoveMentor(ctx context.Context, courseID, userID string) (bool, error) {
	return s.Repo.RemoveMentor(ctx, courseID, userID)
}

type VideoInput struct {
	Title string
	URL   string
}

type SubCourseInput struct {
	Title    string
	Position int
	Videos   []VideoInput
}

// SubCourseResult reports what was persisted plus how many video entries
// were dropped for missing a title or URL.
type SubCourseResult struct {
	SubCourse *entity.SubCourse
	Skipped   int
}

// CreateSubCourse nested-creates the sub-course with its videos. Durations
// are resolved through the video-metadata client when the URL is a
// recognizable video link; lookup failures degrade to zero duration.
func (s *CourseService) CreateSubCourse(ctx context.Context, courseID string, in SubCourseInput) (*SubCourseResult, error) {
	sc := &entity.SubCourse{
		CourseID: courseID,
		Title:    in.Title,
		Position: in.Position,
	}
	for _, v := range in.Videos {
		video := entity.Video{Title: v.Title, URL: v.URL}
		if s.Video != nil && v.URL != "" {
			if meta := s.Video.Lookup(ctx, v.URL); meta != nil {
				video.DurationSeconds = meta.DurationSeconds
				if video.Title == "" && meta.Title != "" {
					video.Title = meta.Title
				}
			}
		}
		sc.Videos = append(sc.Videos, video)
	}

	skipped, err := s.Repo.CreateSubCourse(ctx, sc)
	if err != nil {
		return nil, err
	}
	if skipped > 0 && s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"course_id": courseID, "skipped": skipped}).
			Warn("sub-course videos skipped for missing title or url")
	}
	return &SubCourseResult{SubCourse: sc, Skipped: skipped}, nil
}

func (s *CourseService) DeleteSubCourse(ctx context.Context, id string) (bool, error) {
	return s.Repo.DeleteSubCourse(ctx, id)
}

// indexCourse mirrors the course into Elasticsearch. Indexing is best
// effort; failures are logged and never block the write path.
func (s *CourseService) indexCourse(ctx context.Context, c *entity.Course) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	doc := map[string]any{
		"id":          c.ID,
		"title":       c.Title,
		"slug":        c.Slug,
		"description": c.Description,
		"price":       c.Price,
		"published":   c.Published,
		"updated_at":  c.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: c.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	cctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(cctx, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("course_id", c.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("course_id", c.ID).Warn("es index response error")
	}
}

func (s *CourseService) deleteFromIndex(ctx context.Context, id string) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESIndex, DocumentID: id}
	cctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if res, err := req.Do(cctx, s.ES); err == nil {
		_ = res.Body.Close()
	}
}

// SearchCourses performs a multi_match query on title and description.
func (s *CourseService) SearchCourses(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "description"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	cctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(cctx),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = slugRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
