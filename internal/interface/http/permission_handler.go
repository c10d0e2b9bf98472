package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mentorbit/lms-api/internal/application"
	"github.com/mentorbit/lms-api/pkg/response"
	"github.com/mentorbit/lms-api/pkg/validation"
)

type PermissionHandler struct {
	Svc      *application.PermissionService
	Groups   *application.PermissionGroupService
	Logger   *logrus.Logger
	PageSize int
}

type permissionRequest struct {
	Name    string `json:"name" binding:"required,min=2"`
	Guard   string `json:"guard" binding:"omitempty,oneof=api web"`
	GroupID string `json:"group_id" binding:"omitempty,uuid"`
}

func (h *PermissionHandler) Create(c *gin.Context) {
	var req permissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.Create(c.Request.Context(), req.Name, req.Guard, req.GroupID)
	if err != nil {
		fail(c, h.Logger, "permission.create", err)
		return
	}
	response.Success(c, http.StatusCreated, permissionView(p), "permission created", nil)
}

func (h *PermissionHandler) Update(c *gin.Context) {
	var req permissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.Update(c.Request.Context(), c.Param("id"), req.Name, req.Guard, req.GroupID)
	if err != nil {
		fail(c, h.Logger, "permission.update", err)
		return
	}
	response.Success(c, http.StatusOK, permissionView(p), "permission updated", nil)
}

func (h *PermissionHandler) Delete(c *gin.Context) {
	ok, err := h.Svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.Logger, "permission.delete", err)
		return
	}
	if !ok {
		response.Error[any](c, http.StatusNotFound, "not found", nil)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "permission deleted", nil)
}

func (h *PermissionHandler) Get(c *gin.Context) {
	p, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.Logger, "permission.get", err)
		return
	}
	response.Success(c, http.StatusOK, permissionView(p), "permission", nil)
}

func (h *PermissionHandler) List(c *gin.Context) {
	page, size := pageParams(c, h.PageSize)
	perms, total, err := h.Svc.List(c.Request.Context(), page, size)
	if err != nil {
		fail(c, h.Logger, "permission.list", err)
		return
	}
	response.Success(c, http.StatusOK, permissionViews(perms), "permissions", response.PageMeta{Page: page, PageSize: size, Total: total})
}

type permissionGroupRequest struct {
	Name string `json:"name" binding:"required,min=2"`
}

func (h *PermissionHandler) CreateGroup(c *gin.Context) {
	var req permissionGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	g, err := h.Groups.Create(c.Request.Context(), req.Name)
	if err != nil {
		fail(c, h.Logger, "permission_group.create", err)
		return
	}
	response.Success(c, http.StatusCreated, permissionGroupView(g), "permission group created", nil)
}

func (h *PermissionHandler) UpdateGroup(c *gin.Context) {
	var req permissionGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	g, err := h.Groups.Update(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		fail(c, h.Logger, "permission_group.update", err)
		return
	}
	response.Success(c, http.StatusOK, permissionGroupView(g), "permission group updated", nil)
}

func (h *PermissionHandler) DeleteGroup(c *gin.Context) {
	ok, err := h.Groups.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.Logger, "permission_group.delete", err)
		return
	}
	if !ok {
		response.Error[any](c, http.StatusNotFound, "not found", nil)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "permission group deleted", nil)
}

// GetGroup returns the group with its owned permissions eagerly loaded.
func (h *PermissionHandler) GetGroup(c *gin.Context) {
	g, err := h.Groups.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.Logger, "permission_group.get", err)
		return
	}
	response.Success(c, http.StatusOK, permissionGroupView(g), "permission group", nil)
}

func (h *PermissionHandler) ListGroups(c *gin.Context) {
	page, size := pageParams(c, h.PageSize)
	groups, total, err := h.Groups.List(c.Request.Context(), page, size)
	if err != nil {
		fail(c, h.Logger, "permission_group.list", err)
		return
	}
	response.Success(c, http.StatusOK, permissionGroupViews(groups), "permission groups", response.PageMeta{Page: page, PageSize: size, Total: total})
}
