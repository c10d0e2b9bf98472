package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mentorbit/lms-api/internal/application"
	"github.com/mentorbit/lms-api/internal/container"
	handlers "github.com/mentorbit/lms-api/internal/interface/http"
	"github.com/mentorbit/lms-api/internal/interface/middleware"
	"github.com/mentorbit/lms-api/pkg/helpers"
)

// CatalogModule wires the course catalog. Listing, detail and search are
// public; authoring routes require the courses.manage permission.
type CatalogModule struct {
	Courses *handlers.CourseHandler
	Promos  *handlers.PromoHandler
	Tools   *handlers.CodingToolHandler
	UserSvc *application.UserService
	JWT     *helpers.JWTManager
}

func NewCatalogModule(courses *handlers.CourseHandler, promos *handlers.PromoHandler, tools *handlers.CodingToolHandler, svc *application.UserService, jwt *helpers.JWTManager) *CatalogModule {
	return &CatalogModule{Courses: courses, Promos: promos, Tools: tools, UserSvc: svc, JWT: jwt}
}

func (m *CatalogModule) Register(rg *gin.RouterGroup) {
	publicLimiter := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP())

	rg.GET("/courses", publicLimiter, m.Courses.List)
	rg.GET("/courses/search", publicLimiter, m.Courses.Search)
	rg.GET("/courses/:id", publicLimiter, m.Courses.Get)
	rg.GET("/coding-tools", publicLimiter, m.Tools.List)
	rg.GET("/coding-tools/:id", publicLimiter, m.Tools.Get)

	authoring := rg.Group("/")
	authoring.Use(middleware.Auth(container.GetRedis(), m.JWT))
	authoring.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID()))
	authoring.Use(middleware.RequirePermission(m.UserSvc, "courses.manage"))
	{
		authoring.POST("/courses", m.Courses.Create)
		authoring.PUT("/courses/:id", m.Courses.Update)
		authoring.DELETE("/courses/:id", m.Courses.Delete)
		authoring.PUT("/courses/:id/publish", m.Courses.SetPublished)
		authoring.POST("/courses/:id/images", m.Courses.UploadImage)
		authoring.POST("/courses/:id/mentors", m.Courses.AssignMentor)
		authoring.DELETE("/courses/:id/mentors/:userID", m.Courses.RemoveMentor)
		authoring.POST("/courses/:id/sub-courses", m.Courses.CreateSubCourse)
		authoring.DELETE("/sub-courses/:subID", m.Courses.DeleteSubCourse)
		authoring.GET("/videos/preview", m.Courses.PreviewVideo)

		authoring.POST("/promos", m.Promos.Create)
		authoring.GET("/promos", m.Promos.List)
		authoring.GET("/promos/:id", m.Promos.Get)
		authoring.PUT("/promos/:id", m.Promos.Update)
		authoring.DELETE("/promos/:id", m.Promos.Delete)

		authoring.POST("/coding-tools", m.Tools.Create)
		authoring.PUT("/coding-tools/:id", m.Tools.Update)
		authoring.DELETE("/coding-tools/:id", m.Tools.Delete)
	}
}
