package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mentorbit/lms-api/internal/application"
	"github.com/mentorbit/lms-api/pkg/helpers"
	"github.com/mentorbit/lms-api/pkg/response"
	"github.com/mentorbit/lms-api/pkg/validation"
)

// avatar upload constraints
const (
	maxAvatarBytes = 2 << 20 // 2 MiB
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

type AuthHandler struct {
	Svc     *application.UserService
	Logger  *logrus.Logger
	Cookies *helpers.Manager
}

func NewAuthHandler(svc *application.UserService, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type registerRequest struct {
	Name                 string `form:"name" binding:"required,min=2"`
	Email                string `form:"email" binding:"required,email"`
	Password             string `form:"password" binding:"required,pwd"`
	PasswordConfirmation string `form:"password_confirmation" binding:"required,eqfield=Password"`
	Phone                string `form:"phone" binding:"omitempty,phone"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

// Register accepts multipart form data with an optional profile image,
// creates the account, and establishes an authenticated session.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	in := application.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	}

	if fh, err := c.FormFile("image"); err == nil && fh != nil {
		if fh.Size > maxAvatarBytes {
			response.Error[any](c, http.StatusBadRequest, "invalid payload",
				map[string]string{"image": "must be at most 2MB"})
			return
		}
		contentType := fh.Header.Get("Content-Type")
		if !allowedImageTypes[contentType] {
			response.Error[any](c, http.StatusBadRequest, "invalid payload",
				map[string]string{"image": "must be a jpeg, png or webp image"})
			return
		}
		f, err := fh.Open()
		if err != nil {
			fail(c, h.Logger, "register.open_image", err)
			return
		}
		defer func() { _ = f.Close() }()
		in.Avatar = f
		in.AvatarFilename = fh.Filename
		in.AvatarContentType = contentType
	}

	u, err := h.Svc.Register(c.Request.Context(), in)
	if err != nil {
		fail(c, h.Logger, "register", err)
		return
	}

	pair, err := h.Svc.IssueTokens(c.Request.Context(), u)
	if err != nil {
		fail(c, h.Logger, "register.issue_tokens", err)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)

	response.Success(c, http.StatusCreated, gin.H{
		"id":         u.ID,
		"email":      u.Email,
		"name":       u.Name,
		"avatar_url": u.AvatarURL,
	}, "registered", gin.H{"redirect": "/dashboard"})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, pair, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, gin.H{
		"id":    u.ID,
		"email": u.Email,
		"name":  u.Name,
	}, "login successful", gin.H{"access_expires_at": pair.AccessTokenExpiry})
}

// Refresh rotates the session from the refresh token cookie. A token that
// no longer matches the live session clears both cookies.
func (h *AuthHandler) Refresh(c *gin.Context) {
	token, err := c.Cookie("refresh_token")
	if err != nil || token == "" {
		response.Error[any](c, http.StatusUnauthorized, "missing refresh token", nil)
		return
	}

	u, pair, err := h.Svc.Refresh(c.Request.Context(), token)
	if err != nil {
		h.Cookies.Clear(c)
		response.Error[any](c, http.StatusUnauthorized, "session expired", nil)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, gin.H{
		"id":    u.ID,
		"email": u.Email,
		"name":  u.Name,
	}, "token refreshed", gin.H{"access_expires_at": pair.AccessTokenExpiry})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.Svc.Logout(c.Request.Context(), c.GetString("userID"))
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, gin.H{"logged_out": true}, "logged out", nil)
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	u, err := h.Svc.GetProfile(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		fail(c, h.Logger, "profile", err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"id":         u.ID,
		"email":      u.Email,
		"name":       u.Name,
		"phone":      u.Phone,
		"avatar_url": u.AvatarURL,
		"tier_id":    u.TierID,
		"created_at": u.CreatedAt,
		"updated_at": u.UpdatedAt,
	}, "profile", nil)
}

// MyPermissions lists every permission the caller holds through its roles.
func (h *AuthHandler) MyPermissions(c *gin.Context) {
	perms, err := h.Svc.PermissionsForUser(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		fail(c, h.Logger, "my_permissions", err)
		return
	}
	names := make([]string, 0, len(perms))
	for _, p := range perms {
		names = append(names, p.Name)
	}
	response.Success(c, http.StatusOK, names, "permissions", nil)
}
