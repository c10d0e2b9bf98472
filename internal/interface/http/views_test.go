package handlers

import (
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorbit/lms-api/internal/domain/entity"
)

func TestViewsUseSnakeCaseKeys(t *testing.T) {
	now := time.Now()

	role := roleView(&entity.Role{
		ID: "r1", Name: "editor", Guard: "api",
		Permissions: []entity.Permission{{ID: "p1", Name: "courses.manage"}},
		CreatedAt:   now, UpdatedAt: now,
	})
	for _, key := range []string{"id", "name", "guard", "permissions", "created_at", "updated_at"} {
		assert.Contains(t, role, key)
	}
	assert.NotContains(t, role, "CreatedAt")

	course := courseView(&entity.Course{
		ID: "c1", Title: "Go Basics", Slug: "go-basics",
		DiscountPrice: 500, CoverURL: "https://cdn.example.com/c1.png",
		SubCourses: []entity.SubCourse{{
			ID: "sc1", Videos: []entity.Video{{ID: "v1", DurationSeconds: 120}},
		}},
	})
	assert.Contains(t, course, "discount_price")
	assert.Contains(t, course, "cover_url")

	subs, ok := course["sub_courses"].([]gin.H)
	require.True(t, ok)
	require.Len(t, subs, 1)
	videos, ok := subs[0]["videos"].([]gin.H)
	require.True(t, ok)
	require.Len(t, videos, 1)
	assert.Contains(t, videos[0], "duration_seconds")
}

func TestViewsEmptyCollectionsStayArrays(t *testing.T) {
	role := roleView(&entity.Role{ID: "r1", Name: "viewer"})
	perms, ok := role["permissions"].([]gin.H)
	require.True(t, ok)
	assert.Empty(t, perms)

	group := permissionGroupView(&entity.PermissionGroup{ID: "g1", Name: "administration"})
	perms, ok = group["permissions"].([]gin.H)
	require.True(t, ok)
	assert.Empty(t, perms)
}
