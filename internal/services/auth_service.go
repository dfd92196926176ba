// internal/services/auth_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/mittirang/mittirang-backend/internal/config"
	"github.com/mittirang/mittirang-backend/internal/models"
	"github.com/mittirang/mittirang-backend/internal/utils"
)

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CreateAdminRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,strong_password"`
}

type AuthResponse struct {
	Admin       *models.AdminUser `json:"admin"`
	AccessToken string            `json:"access_token"`
	TokenType   string            `json:"token_type"`
	ExpiresIn   int               `json:"expires_in"` // in seconds
	ExpiresAt   time.Time         `json:"expires_at"`
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{
		db:  db,
		cfg: cfg,
	}
}

// Login never reveals whether the email or the password was wrong.
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var admin models.AdminUser
	if err := s.db.WithContext(ctx).Where("email = ?", models.NormalizeEmail(req.Email)).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := admin.CheckPassword(req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	if err := s.db.WithContext(ctx).Model(&admin).Update("last_login_at", now).Error; err != nil {
		logrus.WithError(err).WithField("admin_id", admin.ID).Warn("Failed to update last login time")
	}
	admin.LastLoginAt = &now

	ttl := s.cfg.JWT.AccessTokenTTL
	accessToken, err := utils.GenerateJWT(admin.ID, admin.Email, ttl)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &AuthResponse{
		Admin:       &admin,
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int(ttl.Seconds()),
		ExpiresAt:   now.Add(ttl),
	}, nil
}

func (s *AuthService) CreateAdmin(ctx context.Context, req *CreateAdminRequest) (*models.AdminUser, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	return s.createAdmin(ctx, req.Email, req.Password)
}

// EnsureDefaultAdmin creates the configured default admin unless an account
// with that email already exists.
func (s *AuthService) EnsureDefaultAdmin(ctx context.Context) error {
	if !s.cfg.Admin.SeedDefault {
		return nil
	}

	_, err := s.createAdmin(ctx, s.cfg.Admin.DefaultEmail, s.cfg.Admin.DefaultPassword)
	switch {
	case errors.Is(err, ErrAdminExists):
		return nil
	case err != nil:
		return err
	}

	logrus.WithField("email", models.NormalizeEmail(s.cfg.Admin.DefaultEmail)).Info("Default admin user created")
	return nil
}

func (s *AuthService) GetAdmin(ctx context.Context, id uint) (*models.AdminUser, error) {
	var admin models.AdminUser
	if err := s.db.WithContext(ctx).First(&admin, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &admin, nil
}

func (s *AuthService) createAdmin(ctx context.Context, email, password string) (*models.AdminUser, error) {
	admin := &models.AdminUser{Email: models.NormalizeEmail(email)}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.AdminUser{}).Where("email = ?", admin.Email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if count > 0 {
		return nil, ErrAdminExists
	}

	if err := admin.SetPassword(password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.db.WithContext(ctx).Create(admin).Error; err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}
	return admin, nil
}
