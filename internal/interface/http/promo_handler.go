package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mentorbit/lms-api/internal/application"
	"github.com/mentorbit/lms-api/internal/domain/entity"
	"github.com/mentorbit/lms-api/pkg/response"
	"github.com/mentorbit/lms-api/pkg/validation"
)

type PromoHandler struct {
	Svc      *application.PromoService
	Logger   *logrus.Logger
	PageSize int
}

type promoRequest struct {
	CourseID   string    `json:"course_id" binding:"required,uuid"`
	Code       string    `json:"code" binding:"required,min=3,max=32"`
	Percentage int       `json:"percentage" binding:"required,gt=0,lte=100"`
	StartsAt   time.Time `json:"starts_at" binding:"required"`
	EndsAt     time.Time `json:"ends_at" binding:"required,gtfield=StartsAt"`
}

func (h *PromoHandler) Create(c *gin.Context) {
	var req promoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.Create(c.Request.Context(), &entity.Promo{
		CourseID:   req.CourseID,
		Code:       req.Code,
		Percentage: req.Percentage,
		StartsAt:   req.StartsAt,
		EndsAt:     req.EndsAt,
	})
	if err != nil {
		fail(c, h.Logger, "promo.create", err)
		return
	}
	response.Success(c, http.StatusCreated, promoView(p), "promo created", nil)
}

func (h *PromoHandler) Update(c *gin.Context) {
	var req promoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.Update(c.Request.Context(), &entity.Promo{
		ID:         c.Param("id"),
		CourseID:   req.CourseID,
		Code:       req.Code,
		Percentage: req.Percentage,
		StartsAt:   req.StartsAt,
		EndsAt:     req.EndsAt,
	})
	if err != nil {
		fail(c, h.Logger, "promo.update", err)
		return
	}
	response.Success(c, http.StatusOK, promoView(p), "promo updated", nil)
}

func (h *PromoHandler) Delete(c *gin.Context) {
	ok, err := h.Svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.Logger, "promo.delete", err)
		return
	}
	if !ok {
		response.Error[any](c, http.StatusNotFound, "not found", nil)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "promo deleted", nil)
}

func (h *PromoHandler) Get(c *gin.Context) {
	p, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.Logger, "promo.get", err)
		return
	}
	response.Success(c, http.StatusOK, promoView(p), "promo", nil)
}

func (h *PromoHandler) List(c *gin.Context) {
	page, size := pageParams(c, h.PageSize)
	promos, total, err := h.Svc.List(c.Request.Context(), page, size)
	if err != nil {
		fail(c, h.Logger, "promo.list", err)
		return
	}
	response.Success(c, http.StatusOK, promoViews(promos), "promos", response.PageMeta{Page: page, PageSize: size, Total: total})
}
