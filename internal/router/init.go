package router

import (
	"github.com/mentorbit/lms-api/internal/application"
	"github.com/mentorbit/lms-api/internal/container"
	pginfra "github.com/mentorbit/lms-api/internal/infrastructure/postgres"
	handlers "github.com/mentorbit/lms-api/internal/interface/http"
	"github.com/mentorbit/lms-api/internal/router/modules"
)

// InitModules builds every feature module from the container singletons and
// registers it with the router registry. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	pool := container.GetPGPool()
	logger := container.GetLogger()

	userRepo := pginfra.NewUserRepository(pool)
	tierRepo := pginfra.NewTierRepository(pool)
	roleRepo := pginfra.NewRoleRepository(pool)
	permRepo := pginfra.NewPermissionRepository(pool)
	groupRepo := pginfra.NewPermissionGroupRepository(pool)
	courseRepo := pginfra.NewCourseRepository(pool)
	promoRepo := pginfra.NewPromoRepository(pool)
	toolRepo := pginfra.NewCodingToolRepository(pool)

	userSvc := &application.UserService{
		Repo:      userRepo,
		Tiers:     tierRepo,
		JWT:       container.GetJWT(),
		GCS:       container.GetGCS(),
		GCSBucket: cfg.GCSBucket,
		GCSBase:   cfg.GCSBaseURL,
		Redis:     container.GetRedis(),
		Pub:       container.GetRabbitPub(),
		Logger:    logger,
		MailOn:    cfg.MailSendEnabled,
	}
	roleSvc := &application.RoleService{Repo: roleRepo}
	tierSvc := &application.TierService{Repo: tierRepo}
	permSvc := &application.PermissionService{Repo: permRepo}
	groupSvc := &application.PermissionGroupService{Repo: groupRepo}
	courseSvc := &application.CourseService{
		Repo:      courseRepo,
		GCS:       container.GetGCS(),
		GCSBucket: cfg.GCSBucket,
		GCSBase:   cfg.GCSBaseURL,
		ES:        container.GetES(),
		ESIndex:   cfg.ESCoursesIndex,
		Video:     container.GetVideoMeta(),
		Logger:    logger,
	}
	promoSvc := &application.PromoService{Repo: promoRepo}
	toolSvc := &application.CodingToolService{Repo: toolRepo}
	paySvc := &application.PaymentService{
		Courses: courseRepo,
		Promos:  promoRepo,
		Pay:     container.GetPayment(),
		Logger:  logger,
	}

	size := cfg.DefaultPageSize

	authH := handlers.NewAuthHandler(userSvc, logger, cfg.CookieDomain, cfg.CookieSecure)
	userH := &handlers.UserHandler{Svc: userSvc, Logger: logger, PageSize: size}
	roleH := &handlers.RoleHandler{Svc: roleSvc, Logger: logger, PageSize: size}
	tierH := &handlers.TierHandler{Svc: tierSvc, Logger: logger, PageSize: size}
	permH := &handlers.PermissionHandler{Svc: permSvc, Groups: groupSvc, Logger: logger, PageSize: size}
	courseH := &handlers.CourseHandler{Svc: courseSvc, Video: container.GetVideoMeta(), Logger: logger, PageSize: size}
	promoH := &handlers.PromoHandler{Svc: promoSvc, Logger: logger, PageSize: size}
	toolH := &handlers.CodingToolHandler{Svc: toolSvc, Logger: logger, PageSize: size}
	payH := &handlers.PaymentHandler{Svc: paySvc, Logger: logger}

	r.Add(modules.NewAuthModule(authH, container.GetJWT()))
	r.Add(modules.NewAccessModule(roleH, permH, tierH, userH, userSvc, container.GetJWT()))
	r.Add(modules.NewCatalogModule(courseH, promoH, toolH, userSvc, container.GetJWT()))
	r.Add(modules.NewPaymentModule(payH, container.GetJWT()))
}
