package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/mentorbit/lms-api/internal/application"
	"github.com/mentorbit/lms-api/internal/domain/repository"
)

func testContext(t *testing.T, url string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, url, nil)
	return c, w
}

func TestPageParamsDefaults(t *testing.T) {
	c, _ := testContext(t, "/api/courses")
	page, size := pageParams(c, 10)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, size)
}

func TestPageParamsExplicit(t *testing.T) {
	c, _ := testContext(t, "/api/courses?page=3&page_size=25")
	page, size := pageParams(c, 10)
	assert.Equal(t, 3, page)
	assert.Equal(t, 25, size)
}

func TestPageParamsRejectsOutOfRange(t *testing.T) {
	c, _ := testContext(t, "/api/courses?page=-2&page_size=5000")
	page, size := pageParams(c, 10)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, size)
}

func TestFailStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{repository.ErrNotFound, http.StatusNotFound},
		{repository.ErrDuplicate, http.StatusConflict},
		{application.ErrTierNameTaken, http.StatusConflict},
		{application.ErrEmailTaken, http.StatusConflict},
		{application.ErrInvalidCredentials, http.StatusUnauthorized},
		{application.ErrUserNotFound, http.StatusNotFound},
		{errors.New("broken pipe"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		c, w := testContext(t, "/api/anything")
		fail(c, nil, "test", tc.err)
		assert.Equal(t, tc.want, w.Code, "err=%v", tc.err)
	}
}
