package entity

import "time"

// Course is the aggregate root for the catalog domain. It owns images,
// mentor assignments and sub-courses; sub-courses own ordered videos.
type Course struct {
	ID            string
	Title         string
	Slug          string
	Description   string
	Price         int64 // smallest currency unit
	DiscountPrice int64
	CoverURL      string
	Published     bool
	Images        []CourseImage
	Mentors       []Mentor
	SubCourses    []SubCourse
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CourseImage is a gallery image attached to a course.
type CourseImage struct {
	ID        string
	CourseID  string
	URL       string
	CreatedAt time.Time
}

// Mentor is a user assigned to teach a course. The (course, user) pair is
// unique; repeated assignments are ignored.
type Mentor struct {
	ID       string
	CourseID string
	UserID   string
	Name     string
	Email    string
}

// SubCourse is a chapter of a course, owning ordered videos.
type SubCourse struct {
	ID        string
	CourseID  string
	Title     string
	Position  int
	Videos    []Video
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Video is a single lesson inside a sub-course.
type Video struct {
	ID              string
	SubCourseID     string
	Title           string
	URL             string
	DurationSeconds int
	Position        int
	CreatedAt       time.Time
}

// Promo applies a discount to one course within a date window.
type Promo struct {
	ID         string
	CourseID   string
	Code       string
	Percentage int
	StartsAt   time.Time
	EndsAt     time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CodingTool is a catalog entry for an external tool recommended to students.
type CodingTool struct {
	ID          string
	Name        string
	Description string
	URL         string
	IconURL     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
