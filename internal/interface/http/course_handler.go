package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mentorbit/lms-api/internal/application"
	"github.com/mentorbit/lms-api/pkg/response"
	"github.com/mentorbit/lms-api/pkg/validation"
	"github.com/mentorbit/lms-api/pkg/videometa"
)

const maxCourseImageBytes = 5 << 20 // 5 MiB

type CourseHandler struct {
	Svc      *application.CourseService
	Video    *videometa.Client
	Logger   *logrus.Logger
	PageSize int
}

type courseRequest struct {
	Title         string `json:"title" binding:"required,min=3"`
	Description   string `json:"description" binding:"omitempty,max=5000"`
	Price         int64  `json:"price" binding:"required,gt=0"`
	DiscountPrice int64  `json:"discount_price" binding:"omitempty,gt=0,ltfield=Price"`
	CoverURL      string `json:"cover_url" binding:"omitempty,url"`
}

func (h *CourseHandler) Create(c *gin.Context) {
	var req courseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	course, err := h.Svc.CreateCourse(c.Request.Context(), application.CourseInput{
		Title:         req.Title,
		Description:   req.Description,
		Price:         req.Price,
		DiscountPrice: req.DiscountPrice,
		CoverURL:      req.CoverURL,
	})
	if err != nil {
		fail(c, h.Logger, "course.create", err)
		return
	}
	response.Success(c, http.StatusCreated, courseView(course), "course created", nil)
}

func (h *CourseHandler) Update(c *gin.Context) {
	var req courseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	course, err := h.Svc.UpdateCourse(c.Request.Context(), c.Param("id"), application.CourseInput{
		Title:         req.Title,
		Description:   req.Description,
		Price:         req.Price,
		DiscountPrice: req.DiscountPrice,
		CoverURL:      req.CoverURL,
	})
	if err != nil {
		fail(c, h.Logger, "course.update", err)
		return
	}
	response.Success(c, http.StatusOK, courseView(course), "course updated", nil)
}

func (h *CourseHandler) Delete(c *gin.Context) {
	ok, err := h.Svc.DeleteCourse(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.Logger, "course.delete", err)
		return
	}
	if !ok {
		response.Error[any](c, http.StatusNotFound, "not found", nil)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "course deleted", nil)
}

// Get returns the full aggregate: images, mentors, sub-courses and videos.
func (h *CourseHandler) Get(c *gin.Context) {
	course, err := h.Svc.GetCourse(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.Logger, "course.get", err)
		return
	}
	response.Success(c, http.StatusOK, courseView(course), "course", nil)
}

func (h *CourseHandler) List(c *gin.Context) {
	page, size := pageParams(c, h.PageSize)
	courses, total, err := h.Svc.ListCourses(c.Request.Context(), page, size)
	if err != nil {
		fail(c, h.Logger, "course.list", err)
		return
	}
	response.Success(c, http.StatusOK, courseViews(courses), "courses", response.PageMeta{Page: page, PageSize: size, Total: total})
}

type publishRequest struct {
	Published *bool `json:"published" binding:"required"`
}

func (h *CourseHandler) SetPublished(c *gin.Context) {
	var req publishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	course, err := h.Svc.SetPublished(c.Request.Context(), c.Param("id"), *req.Published)
	if err != nil {
		fail(c, h.Logger, "course.publish", err)
		return
	}
	response.Success(c, http.StatusOK, courseView(course), "course publication updated", nil)
}

func (h *CourseHandler) UploadImage(c *gin.Context) {
	fh, err := c.FormFile("image")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload",
			map[string]string{"image": "is required"})
		return
	}
	if fh.Size > maxCourseImageBytes {
		response.Error[any](c, http.StatusBadRequest, "invalid payload",
			map[string]string{"image": "must be at most 5MB"})
		return
	}
	contentType := fh.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		response.Error[any](c, http.StatusBadRequest, "invalid payload",
			map[string]string{"image": "must be a jpeg, png or webp image"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		fail(c, h.Logger, "course.upload_image.open", err)
		return
	}
	defer func() { _ = f.Close() }()

	img, err := h.Svc.UploadImage(c.Request.Context(), c.Param("id"), f, fh.Filename, contentType)
	if err != nil {
		fail(c, h.Logger, "course.upload_image", err)
		return
	}
	response.Success(c, http.StatusCreated, courseImageView(img), "image uploaded", nil)
}

type assignMentorRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
}

func (h *CourseHandler) AssignMentor(c *gin.Context) {
	var req assignMentorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	mentors, err := h.Svc.AssignMentor(c.Request.Context(), c.Param("id"), req.UserID)
	if err != nil {
		fail(c, h.Logger, "course.assign_mentor", err)
		return
	}
	response.Success(c, http.StatusOK, mentorViews(mentors), "mentor assigned", nil)
}

func (h *CourseHandler) RemoveMentor(c *gin.Context) {
	ok, err := h.Svc.RemoveMentor(c.Request.Context(), c.Param("id"), c.Param("userID"))
	if err != nil {
		fail(c, h.Logger, "course.remove_mentor", err)
		return
	}
	if !ok {
		response.Error[any](c, http.StatusNotFound, "not found", nil)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "mentor removed", nil)
}

type videoRequest struct {
	Title string `json:"title" binding:"omitempty,max=255"`
	URL   string `json:"url" binding:"omitempty,url"`
}

type subCourseRequest struct {
	Title    string         `json:"title" binding:"required,min=2"`
	Position int            `json:"position" binding:"omitempty,gte=0"`
	Videos   []videoRequest `json:"videos" binding:"omitempty,dive"`
}

// CreateSubCourse persists the sub-course with its videos. Entries missing
// a title or URL are dropped and reported in the skipped_videos meta field.
func (h *CourseHandler) CreateSubCourse(c *gin.Context) {
	var req subCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	in := application.SubCourseInput{Title: req.Title, Position: req.Position}
	for _, v := range req.Videos {
		in.Videos = append(in.Videos, application.VideoInput{Title: v.Title, URL: v.URL})
	}
	res, err := h.Svc.CreateSubCourse(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		fail(c, h.Logger, "course.create_sub_course", err)
		return
	}
	response.Success(c, http.StatusCreated, subCourseView(res.SubCourse), "sub-course created",
		gin.H{"skipped_videos": res.Skipped})
}

func (h *CourseHandler) DeleteSubCourse(c *gin.Context) {
	ok, err := h.Svc.DeleteSubCourse(c.Request.Context(), c.Param("subID"))
	if err != nil {
		fail(c, h.Logger, "course.delete_sub_course", err)
		return
	}
	if !ok {
		response.Error[any](c, http.StatusNotFound, "not found", nil)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "sub-course deleted", nil)
}

func (h *CourseHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "invalid payload",
			map[string]string{"q": "is required"})
		return
	}
	_, size := pageParams(c, h.PageSize)
	hits, err := h.Svc.SearchCourses(c.Request.Context(), q, size)
	if err != nil {
		fail(c, h.Logger, "course.search", err)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", nil)
}

// PreviewVideo resolves metadata for a video URL before it is attached to a
// sub-course. Unrecognizable URLs yield a null payload, not an error.
func (h *CourseHandler) PreviewVideo(c *gin.Context) {
	url := c.Query("url")
	if url == "" {
		response.Error[any](c, http.StatusBadRequest, "invalid payload",
			map[string]string{"url": "is required"})
		return
	}
	meta := h.Video.Lookup(c.Request.Context(), url)
	response.Success(c, http.StatusOK, meta, "video metadata", nil)
}
