package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mentorbit/lms-api/internal/application"
	"github.com/mentorbit/lms-api/pkg/response"
	"github.com/mentorbit/lms-api/pkg/validation"
)

type RoleHandler struct {
	Svc      *application.RoleService
	Logger   *logrus.Logger
	PageSize int
}

type roleRequest struct {
	Name string `json:"name" binding:"required,min=2"`
	// Guard defaults to "api" when omitted.
	Guard string `json:"guard" binding:"omitempty,oneof=api web"`
	// Permissions of null leaves the current set alone; an array (even
	// empty) replaces the set with exactly that list.
	Permissions []string `json:"permissions"`
}

func (h *RoleHandler) Create(c *gin.Context) {
	var req roleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	role, err := h.Svc.CreateRole(c.Request.Context(), application.RoleInput{
		Name:          req.Name,
		Guard:         req.Guard,
		PermissionIDs: req.Permissions,
	})
	if err != nil {
		fail(c, h.Logger, "role.create", err)
		return
	}
	response.Success(c, http.StatusCreated, roleView(role), "role created", nil)
}

func (h *RoleHandler) Update(c *gin.Context) {
	var req roleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	role, err := h.Svc.UpdateRole(c.Request.Context(), c.Param("id"), application.RoleInput{
		Name:          req.Name,
		Guard:         req.Guard,
		PermissionIDs: req.Permissions,
	})
	if err != nil {
		fail(c, h.Logger, "role.update", err)
		return
	}
	response.Success(c, http.StatusOK, roleView(role), "role updated", nil)
}

func (h *RoleHandler) Delete(c *gin.Context) {
	ok, err := h.Svc.DeleteRole(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.Logger, "role.delete", err)
		return
	}
	if !ok {
		response.Error[any](c, http.StatusNotFound, "not found", nil)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "role deleted", nil)
}

func (h *RoleHandler) Get(c *gin.Context) {
	role, err := h.Svc.GetRole(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.Logger, "role.get", err)
		return
	}
	response.Success(c, http.StatusOK, roleView(role), "role", nil)
}

func (h *RoleHandler) List(c *gin.Context) {
	page, size := pageParams(c, h.PageSize)
	roles, total, err := h.Svc.ListRoles(c.Request.Context(), page, size)
	if err != nil {
		fail(c, h.Logger, "role.list", err)
		return
	}
	response.Success(c, http.StatusOK, roleViews(roles), "roles", response.PageMeta{Page: page, PageSize: size, Total: total})
}
