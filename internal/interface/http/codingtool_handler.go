package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mentorbit/lms-api/internal/application"
	"github.com/mentorbit/lms-api/internal/domain/entity"
	"github.com/mentorbit/lms-api/pkg/response"
	"github.com/mentorbit/lms-api/pkg/validation"
)

type CodingToolHandler struct {
	Svc      *application.CodingToolService
	Logger   *logrus.Logger
	PageSize int
}

type codingToolRequest struct {
	Name        string `json:"name" binding:"required,min=2"`
	Description string `json:"description" binding:"omitempty,max=2000"`
	URL         string `json:"url" binding:"required,url"`
	IconURL     string `json:"icon_url" binding:"omitempty,url"`
}

func (h *CodingToolHandler) Create(c *gin.Context) {
	var req codingToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	t, err := h.Svc.Create(c.Request.Context(), &entity.CodingTool{
		Name:        req.Name,
		Description: req.Description,
		URL:         req.URL,
		IconURL:     req.IconURL,
	})
	if err != nil {
		fail(c, h.Logger, "coding_tool.create", err)
		return
	}
	response.Success(c, http.StatusCreated, codingToolView(t), "coding tool created", nil)
}

func (h *CodingToolHandler) Update(c *gin.Context) {
	var req codingToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	t, err := h.Svc.Update(c.Request.Context(), &entity.CodingTool{
		ID:          c.Param("id"),
		Name:        req.Name,
		Description: req.Description,
		URL:         req.URL,
		IconURL:     req.IconURL,
	})
	if err != nil {
		fail(c, h.Logger, "coding_tool.update", err)
		return
	}
	response.Success(c, http.StatusOK, codingToolView(t), "coding tool updated", nil)
}

func (h *CodingToolHandler) Delete(c *gin.Context) {
	ok, err := h.Svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.Logger, "coding_tool.delete", err)
		return
	}
	if !ok {
		response.Error[any](c, http.StatusNotFound, "not found", nil)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "coding tool deleted", nil)
}

func (h *CodingToolHandler) Get(c *gin.Context) {
	t, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.Logger, "coding_tool.get", err)
		return
	}
	response.Success(c, http.StatusOK, codingToolView(t), "coding tool", nil)
}

func (h *CodingToolHandler) List(c *gin.Context) {
	page, size := pageParams(c, h.PageSize)
	tools, total, err := h.Svc.List(c.Request.Context(), page, size)
	if err != nil {
		fail(c, h.Logger, "coding_tool.list", err)
		return
	}
	response.Success(c, http.StatusOK, codingToolViews(tools), "coding tools", response.PageMeta{Page: page, PageSize: size, Total: total})
}
