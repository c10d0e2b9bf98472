package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mentorbit/lms-api/internal/application"
	"github.com/mentorbit/lms-api/pkg/response"
	"github.com/mentorbit/lms-api/pkg/validation"
)

// UserHandler exposes the administrative user operations. Self-service
// routes (profile, permissions) live on AuthHandler.
type UserHandler struct {
	Svc      *application.UserService
	Logger   *logrus.Logger
	PageSize int
}

func (h *UserHandler) List(c *gin.Context) {
	page, size := pageParams(c, h.PageSize)
	users, total, err := h.Svc.ListUsers(c.Request.Context(), page, size)
	if err != nil {
		fail(c, h.Logger, "user.list", err)
		return
	}
	out := make([]gin.H, 0, len(users))
	for _, u := range users {
		out = append(out, gin.H{
			"id":         u.ID,
			"email":      u.Email,
			"name":       u.Name,
			"phone":      u.Phone,
			"avatar_url": u.AvatarURL,
			"tier_id":    u.TierID,
			"created_at": u.CreatedAt,
		})
	}
	response.Success(c, http.StatusOK, out, "users", response.PageMeta{Page: page, PageSize: size, Total: total})
}

type assignTierRequest struct {
	TierID string `json:"tier_id" binding:"required,uuid"`
}

func (h *UserHandler) AssignTier(c *gin.Context) {
	var req assignTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.AssignTier(c.Request.Context(), c.Param("id"), req.TierID); err != nil {
		fail(c, h.Logger, "user.assign_tier", err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "tier assigned", nil)
}

type assignRoleRequest struct {
	RoleID string `json:"role_id" binding:"required,uuid"`
}

func (h *UserHandler) AssignRole(c *gin.Context) {
	var req assignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.AssignRole(c.Request.Context(), c.Param("id"), req.RoleID); err != nil {
		fail(c, h.Logger, "user.assign_role", err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "role assigned", nil)
}
