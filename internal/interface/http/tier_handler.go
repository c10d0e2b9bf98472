package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mentorbit/lms-api/internal/application"
	"github.com/mentorbit/lms-api/pkg/response"
	"github.com/mentorbit/lms-api/pkg/validation"
)

type TierHandler struct {
	Svc      *application.TierService
	Logger   *logrus.Logger
	PageSize int
}

type tierRequest struct {
	Name string `json:"name" binding:"required,min=2"`
}

func (h *TierHandler) Create(c *gin.Context) {
	var req tierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	t, err := h.Svc.CreateTier(c.Request.Context(), req.Name)
	if err != nil {
		fail(c, h.Logger, "tier.create", err)
		return
	}
	response.Success(c, http.StatusCreated, tierView(t), "tier created", nil)
}

func (h *TierHandler) Update(c *gin.Context) {
	var req tierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	t, err := h.Svc.UpdateTier(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		fail(c, h.Logger, "tier.update", err)
		return
	}
	response.Success(c, http.StatusOK, tierView(t), "tier updated", nil)
}

func (h *TierHandler) Delete(c *gin.Context) {
	ok, err := h.Svc.DeleteTier(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.Logger, "tier.delete", err)
		return
	}
	if !ok {
		response.Error[any](c, http.StatusNotFound, "not found", nil)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "tier deleted", nil)
}

func (h *TierHandler) Get(c *gin.Context) {
	t, err := h.Svc.GetTier(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.Logger, "tier.get", err)
		return
	}
	response.Success(c, http.StatusOK, tierView(t), "tier", nil)
}

func (h *TierHandler) List(c *gin.Context) {
	page, size := pageParams(c, h.PageSize)
	tiers, total, err := h.Svc.ListTiers(c.Request.Context(), page, size)
	if err != nil {
		fail(c, h.Logger, "tier.list", err)
		return
	}
	response.Success(c, http.StatusOK, tierViews(tiers), "tiers", response.PageMeta{Page: page, PageSize: size, Total: total})
}
