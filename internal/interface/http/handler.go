package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mentorbit/lms-api/internal/application"
	"github.com/mentorbit/lms-api/internal/domain/repository"
	"github.com/mentorbit/lms-api/pkg/response"
)

// pageParams reads ?page= and ?page_size= with the configured default size.
func pageParams(c *gin.Context, defaultSize int) (page, size int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	size, _ = strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultSize)))
	if size < 1 || size > 100 {
		size = defaultSize
	}
	return page, size
}

// fail maps service-layer errors onto HTTP statuses. Unexpected errors are
// logged with context and surface as a generic server error; internals are
// never exposed to the caller.
func fail(c *gin.Context, logger *logrus.Logger, op string, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		response.Error[any](c, http.StatusNotFound, "not found", nil)
	case errors.Is(err, application.ErrTierNameTaken), errors.Is(err, repository.ErrDuplicate):
		response.Error[any](c, http.StatusConflict, "duplicate", err.Error())
	case errors.Is(err, application.ErrEmailTaken):
		response.Error[any](c, http.StatusConflict, "email already registered", nil)
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil)
	case errors.Is(err, application.ErrUserNotFound):
		response.Error[any](c, http.StatusNotFound, "user not found", nil)
	default:
		if logger != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"op":         op,
				"request_id": c.GetString("request_id"),
				"path":       c.FullPath(),
			}).Error("unexpected error")
		}
		response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
	}
}
