package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/DriveFleet/DriveFleet/internal/common/apperr"
	"github.com/DriveFleet/DriveFleet/internal/common/auth"
	"github.com/DriveFleet/DriveFleet/internal/common/config"
	"github.com/DriveFleet/DriveFleet/internal/common/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service 账号注册与登录，签发 access token。
type Service struct {
	repo *Repo
	cfg  config.AuthConfig
	log  logger.Logger
}

func NewService(repo *Repo, cfg config.AuthConfig, log logger.Logger) *Service {
	return &Service{repo: repo, cfg: cfg, log: log}
}

// SignUpInput 注册入参；Roles 为空时默认 "staff"。
type SignUpInput struct {
	Username string
	Password string
	Email    string
	StaffID  string
	Roles    []string
}

func (s *Service) SignUp(ctx context.Context, in SignUpInput) (*User, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return nil, apperr.New(apperr.CodeInvalid, "username required")
	}
	if len(in.Password) < 6 {
		return nil, apperr.New(apperr.CodeInvalid, "password must be at least 6 characters")
	}

	exists, err := s.repo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.New(apperr.CodeAlreadyExists, "username %s already taken", username)
	}

	salt, err := GenerateSaltHex()
	if err != nil {
		return nil, err
	}
	hash, err := HashPassword(in.Password, salt)
	if err != nil {
		return nil, err
	}

	roles := in.Roles
	if len(roles) == 0 {
		roles = []string{"staff"}
	}
	u := &User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		PasswordSalt: salt,
		StaffID:      strings.TrimSpace(in.StaffID),
		Email:        strings.TrimSpace(in.Email),
		Roles:        RolesJoin(roles),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	s.log.WithField("username", u.Username).Info("user signed up")
	return u, nil
}

// SignIn 校验口令并签发 token。用户名不存在和口令错误返回
// 同一个错误，不让调用方枚举账号。
func (s *Service) SignIn(ctx context.Context, username, password string) (token string, expiresAt time.Time, err error) {
	if s == nil || s.repo == nil {
		return "", time.Time{}, fmt.Errorf("service not initialized")
	}
	username = strings.TrimSpace(username)

	u, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", time.Time{}, apperr.New(apperr.CodeUnauthorized, "invalid username or password")
		}
		return "", time.Time{}, err
	}
	if !VerifyPassword(password, u.PasswordSalt, u.PasswordHash) {
		return "", time.Time{}, apperr.New(apperr.CodeUnauthorized, "invalid username or password")
	}

	token, expiresAt, err = auth.GenerateAccessToken(s.cfg, u.ID, u.RolesSlice(), 0)
	if err != nil {
		return "", time.Time{}, err
	}
	s.log.WithField("username", u.Username).Info("user signed in")
	return token, expiresAt, nil
}
