package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/mentorbit/lms-api/internal/domain/entity"
)

// Response shapes for domain entities. Entities stay tag-free; handlers map
// them here so payload keys match the envelope's snake_case convention.

func tierView(t *entity.Tier) gin.H {
	return gin.H{
		"id":         t.ID,
		"name":       t.Name,
		"created_at": t.CreatedAt,
		"updated_at": t.UpdatedAt,
	}
}

func tierViews(tiers []entity.Tier) []gin.H {
	out := make([]gin.H, 0, len(tiers))
	for i := range tiers {
		out = append(out, tierView(&tiers[i]))
	}
	return out
}

func permissionView(p *entity.Permission) gin.H {
	return gin.H{
		"id":         p.ID,
		"name":       p.Name,
		"guard":      p.Guard,
		"group_id":   p.GroupID,
		"created_at": p.CreatedAt,
		"updated_at": p.UpdatedAt,
	}
}

func permissionViews(perms []entity.Permission) []gin.H {
	out := make([]gin.H, 0, len(perms))
	for i := range perms {
		out = append(out, permissionView(&perms[i]))
	}
	return out
}

func permissionGroupView(g *entity.PermissionGroup) gin.H {
	return gin.H{
		"id":          g.ID,
		"name":        g.Name,
		"permissions": permissionViews(g.Permissions),
		"created_at":  g.CreatedAt,
		"updated_at":  g.UpdatedAt,
	}
}

func permissionGroupViews(groups []entity.PermissionGroup) []gin.H {
	out := make([]gin.H, 0, len(groups))
	for i := range groups {
		out = append(out, permissionGroupView(&groups[i]))
	}
	return out
}

func roleView(r *entity.Role) gin.H {
	return gin.H{
		"id":          r.ID,
		"name":        r.Name,
		"guard":       r.Guard,
		"permissions": permissionViews(r.Permissions),
		"created_at":  r.CreatedAt,
		"updated_at":  r.UpdatedAt,
	}
}

func roleViews(roles []entity.Role) []gin.H {
	out := make([]gin.H, 0, len(roles))
	for i := range roles {
		out = append(out, roleView(&roles[i]))
	}
	return out
}

func courseImageView(img *entity.CourseImage) gin.H {
	return gin.H{
		"id":         img.ID,
		"course_id":  img.CourseID,
		"url":        img.URL,
		"created_at": img.CreatedAt,
	}
}

func courseImageViews(images []entity.CourseImage) []gin.H {
	out := make([]gin.H, 0, len(images))
	for i := range images {
		out = append(out, courseImageView(&images[i]))
	}
	return out
}

func mentorView(m *entity.Mentor) gin.H {
	return gin.H{
		"id":        m.ID,
		"course_id": m.CourseID,
		"user_id":   m.UserID,
		"name":      m.Name,
		"email":     m.Email,
	}
}

func mentorViews(mentors []entity.Mentor) []gin.H {
	out := make([]gin.H, 0, len(mentors))
	for i := range mentors {
		out = append(out, mentorView(&mentors[i]))
	}
	return out
}

func videoView(v *entity.Video) gin.H {
	return gin.H{
		"id":               v.ID,
		"sub_course_id":    v.SubCourseID,
		"title":            v.Title,
		"url":              v.URL,
		"duration_seconds": v.DurationSeconds,
		"position":         v.Position,
		"created_at":       v.CreatedAt,
	}
}

func videoViews(videos []entity.Video) []gin.H {
	out := make([]gin.H, 0, len(videos))
	for i := range videos {
		out = append(out, videoView(&videos[i]))
	}
	return out
}

func subCourseView(sc *entity.SubCourse) gin.H {
	return gin.H{
		"id":         sc.ID,
		"course_id":  sc.CourseID,
		"title":      sc.Title,
		"position":   sc.Position,
		"videos":     videoViews(sc.Videos),
		"created_at": sc.CreatedAt,
		"updated_at": sc.UpdatedAt,
	}
}

func subCourseViews(subs []entity.SubCourse) []gin.H {
	out := make([]gin.H, 0, len(subs))
	for i := range subs {
		out = append(out, subCourseView(&subs[i]))
	}
	return out
}

func courseView(c *entity.Course) gin.H {
	return gin.H{
		"id":             c.ID,
		"title":          c.Title,
		"slug":           c.Slug,
		"description":    c.Description,
		"price":          c.Price,
		"discount_price": c.DiscountPrice,
		"cover_url":      c.CoverURL,
		"published":      c.Published,
		"images":         courseImageViews(c.Images),
		"mentors":        mentorViews(c.Mentors),
		"sub_courses":    subCourseViews(c.SubCourses),
		"created_at":     c.CreatedAt,
		"updated_at":     c.UpdatedAt,
	}
}

func courseViews(courses []entity.Course) []gin.H {
	out := make([]gin.H, 0, len(courses))
	for i := range courses {
		out = append(out, courseView(&courses[i]))
	}
	return out
}

func promoView(p *entity.Promo) gin.H {
	return gin.H{
		"id":         p.ID,
		"course_id":  p.CourseID,
		"code":       p.Code,
		"percentage": p.Percentage,
		"starts_at":  p.StartsAt,
		"ends_at":    p.EndsAt,
		"created_at": p.CreatedAt,
		"updated_at": p.UpdatedAt,
	}
}

func promoViews(promos []entity.Promo) []gin.H {
	out := make([]gin.H, 0, len(promos))
	for i := range promos {
		out = append(out, promoView(&promos[i]))
	}
	return out
}

func codingToolView(t *entity.CodingTool) gin.H {
	return gin.H{
		"id":          t.ID,
		"name":        t.Name,
		"description": t.Description,
		"url":         t.URL,
		"icon_url":    t.IconURL,
		"created_at":  t.CreatedAt,
		"updated_at":  t.UpdatedAt,
	}
}

func codingToolViews(tools []entity.CodingTool) []gin.H {
	out := make([]gin.H, 0, len(tools))
	for i := range tools {
		out = append(out, codingToolView(&tools[i]))
	}
	return out
}
