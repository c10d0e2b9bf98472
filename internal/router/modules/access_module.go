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

// AccessModule wires the access-control admin surface: roles, permissions,
// permission groups, tiers and user administration. Every route requires an
// authenticated session plus the matching management permission.
type AccessModule struct {
	Roles       *handlers.RoleHandler
	Permissions *handlers.PermissionHandler
	Tiers       *handlers.TierHandler
	Users       *handlers.UserHandler
	UserSvc     *application.UserService
	JWT         *helpers.JWTManager
}

func NewAccessModule(roles *handlers.RoleHandler, perms *handlers.PermissionHandler, tiers *handlers.TierHandler, users *handlers.UserHandler, svc *application.UserService, jwt *helpers.JWTManager) *AccessModule {
	return &AccessModule{Roles: roles, Permissions: perms, Tiers: tiers, Users: users, UserSvc: svc, JWT: jwt}
}

func (m *AccessModule) Register(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.Use(middleware.Auth(container.GetRedis(), m.JWT))
	admin.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID()))

	roles := admin.Group("/roles", middleware.RequirePermission(m.UserSvc, "roles.manage"))
	{
		roles.POST("", m.Roles.Create)
		roles.GET("", m.Roles.List)
		roles.GET("/:id", m.Roles.Get)
		roles.PUT("/:id", m.Roles.Update)
		roles.DELETE("/:id", m.Roles.Delete)
	}

	perms := admin.Group("/permissions", middleware.RequirePermission(m.UserSvc, "permissions.manage"))
	{
		perms.POST("", m.Permissions.Create)
		perms.GET("", m.Permissions.List)
		perms.GET("/:id", m.Permissions.Get)
		perms.PUT("/:id", m.Permissions.Update)
		perms.DELETE("/:id", m.Permissions.Delete)
	}

	groups := admin.Group("/permission-groups", middleware.RequirePermission(m.UserSvc, "permissions.manage"))
	{
		groups.POST("", m.Permissions.CreateGroup)
		groups.GET("", m.Permissions.ListGroups)
		groups.GET("/:id", m.Permissions.GetGroup)
		groups.PUT("/:id", m.Permissions.UpdateGroup)
		groups.DELETE("/:id", m.Permissions.DeleteGroup)
	}

	tiers := admin.Group("/tiers", middleware.RequirePermission(m.UserSvc, "tiers.manage"))
	{
		tiers.POST("", m.Tiers.Create)
		tiers.GET("", m.Tiers.List)
		tiers.GET("/:id", m.Tiers.Get)
		tiers.PUT("/:id", m.Tiers.Update)
		tiers.DELETE("/:id", m.Tiers.Delete)
	}

	users := admin.Group("/users", middleware.RequirePermission(m.UserSvc, "users.manage"))
	{
		users.GET("", m.Users.List)
		users.PUT("/:id/tier", m.Users.AssignTier)
		users.PUT("/:id/role", m.Users.AssignRole)
	}
}
