package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mentorbit/lms-api/internal/application"
	"github.com/mentorbit/lms-api/internal/domain/repository"
	"github.com/mentorbit/lms-api/pkg/response"
	"github.com/mentorbit/lms-api/pkg/validation"
)

type PaymentHandler struct {
	Svc    *application.PaymentService
	Logger *logrus.Logger
}

type createIntentRequest struct {
	CourseID string `json:"course_id" binding:"required,uuid"`
	Currency string `json:"currency" binding:"omitempty,iso4217"`
	PromoID  string `json:"promo_id" binding:"omitempty,uuid"`
}

func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	var req createIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	intent, err := h.Svc.CreateIntent(c.Request.Context(), req.CourseID, c.GetString("userID"), req.Currency, req.PromoID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Error[any](c, http.StatusNotFound, "not found", nil)
			return
		}
		h.Logger.WithError(err).WithField("course_id", req.CourseID).Error("payment intent creation failed")
		response.Error[any](c, http.StatusBadGateway, "payment provider error", nil)
		return
	}
	response.Success(c, http.StatusCreated, intent, "payment intent created", nil)
}

type updateIntentRequest struct {
	Amount int64 `json:"amount" binding:"required,gt=0"`
}

func (h *PaymentHandler) UpdateIntent(c *gin.Context) {
	var req updateIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	intent, err := h.Svc.UpdateIntent(c.Request.Context(), c.Param("id"), req.Amount)
	if err != nil {
		h.Logger.WithError(err).WithField("intent_id", c.Param("id")).Error("payment intent update failed")
		response.Error[any](c, http.StatusBadGateway, "payment provider error", nil)
		return
	}
	response.Success(c, http.StatusOK, intent, "payment intent updated", nil)
}
