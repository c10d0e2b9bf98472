package application

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/mentorbit/lms-api/internal/domain/entity"
	repo "github.com/mentorbit/lms-api/internal/domain/repository"
	"github.com/mentorbit/lms-api/pkg/helpers"
	"github.com/mentorbit/lms-api/pkg/mailer"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrSessionExpired     = errors.New("session expired")
)

// UserService handles registration, authentication and profile operations.
type UserService struct {
	Repo      repo.UserRepository
	Tiers     repo.TierRepository
	JWT       *helpers.JWTManager
	GCS       *storage.Client
	GCSBucket string
	GCSBase   string
	Redis     *redis.Client
	Pub       *helpers.RabbitPublisher
	Logger    *logrus.Logger
	MailOn    bool
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

func sessionKey(userID string) string {
	return "user:session:" + userID
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// RegisterInput carries validated registration fields. Avatar is optional;
// when nil the created user keeps an empty avatar URL.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string

	Avatar            io.Reader
	AvatarFilename    string
	AvatarContentType string
}

// Register creates the user account. The avatar, when supplied, is uploaded
// to object storage first; an upload failure aborts registration, but a row
// failure after a successful upload leaves the object in place (no
// compensating cleanup). A welcome email job is enqueued on success.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	if existing, err := s.Repo.GetByEmail(ctx, in.Email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := &entity.User{
		Email:    in.Email,
		Password: hash,
		Name:     in.Name,
		Phone:    in.Phone,
	}

	if in.Avatar != nil {
		url, err := s.uploadAvatar(ctx, in.Avatar, in.AvatarFilename, in.AvatarContentType)
		if err != nil {
			return nil, err
		}
		u.AvatarURL = url
	}

	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.notifyRegistered(ctx, u)
	return u, nil
}

func (s *UserService) uploadAvatar(ctx context.Context, r io.Reader, filename, contentType string) (string, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("object storage not configured")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("avatars", uuid.NewString()+ext))
	if err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r); err != nil {
		return "", err
	}
	return helpers.PublicURL(s.GCSBase, s.GCSBucket, objectPath), nil
}

// notifyRegistered enqueues the welcome email. Queue failures are logged,
// never surfaced: registration already succeeded.
func (s *UserService) notifyRegistered(ctx context.Context, u *entity.User) {
	if s.Pub == nil || !s.MailOn {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: mailer.TemplateWelcome,
		Data:     map[string]any{"Name": u.Name, "Email": u.Email},
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("enqueue welcome email failed")
	}
}

// Authenticate validates email/password and returns the user without issuing tokens.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil || u == nil {
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// IssueTokens generates access/refresh tokens and records a session in Redis.
func (s *UserService) IssueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	sid := uuid.NewString()
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID, sid)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID, sid)
	if err != nil {
		return TokenPair{}, err
	}

	if s.Redis != nil {
		fields := map[string]any{
			"user_id":    u.ID,
			"email":      u.Email,
			"name":       u.Name,
			"avatar_url": u.AvatarURL,
			"sid":        sid,
			"logged_in":  true,
			"created_at": nowRFC3339(),
		}
		key := sessionKey(u.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, fields)
		pipe.Expire(ctx, key, 24*time.Hour)
		if _, rErr := pipe.Exec(ctx); rErr != nil && s.Logger != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}

	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (*entity.User, TokenPair, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, TokenPair{}, err
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

// Refresh exchanges a valid refresh token for a new pair. The token's
// session id must still match the live session; reissuing rotates the
// session id, so the old pair stops working.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*entity.User, TokenPair, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, TokenPair{}, ErrSessionExpired
	}
	if s.Redis != nil {
		sid, rErr := s.Redis.HGet(ctx, sessionKey(claims.UserID), "sid").Result()
		if rErr != nil || sid != claims.SessionID {
			return nil, TokenPair{}, ErrSessionExpired
		}
	}
	u, err := s.Repo.GetByID(ctx, claims.UserID)
	if err != nil || u == nil {
		return nil, TokenPair{}, ErrSessionExpired
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

func (s *UserService) Logout(ctx context.Context, userID string) {
	if s.Redis != nil && userID != "" {
		_ = s.Redis.Del(ctx, sessionKey(userID)).Err()
	}
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// AssignTier points the user at an existing tier.
func (s *UserService) AssignTier(ctx context.Context, userID, tierID string) error {
	if _, err := s.Tiers.GetByID(ctx, tierID); err != nil {
		return err
	}
	return s.Repo.AssignTier(ctx, userID, tierID)
}

// AssignRole links the user to a role; repeated assignments are absorbed.
func (s *UserService) AssignRole(ctx context.Context, userID, roleID string) error {
	if _, err := s.Repo.GetByID(ctx, userID); err != nil {
		return ErrUserNotFound
	}
	return s.Repo.AssignRole(ctx, userID, roleID)
}

// PermissionsForUser returns every permission the user holds through its
// roles, as an explicit typed slice.
func (s *UserService) PermissionsForUser(ctx context.Context, userID string) ([]entity.Permission, error) {
	return s.Repo.PermissionsFor(ctx, userID)
}

func (s *UserService) ListUsers(ctx context.Context, page, size int) ([]entity.User, int64, error) {
	return s.Repo.GetPaginated(ctx, page, size)
}
