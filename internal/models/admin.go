// internal/models/admin.go
package models

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type AdminUser struct {
	BaseModel
	Email        string     `json:"email" gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string     `json:"-" gorm:"size:255;not null"`
	LastLoginAt  *time.Time `json:"last_login_at"`
}

func (AdminUser) TableName() string {
	return "admin_users"
}

func (a *AdminUser) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.PasswordHash = string(hashedPassword)
	return nil
}

func (a *AdminUser) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password))
}

// NormalizeEmail is the form emails are stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type AuditLog struct {
	BaseModel
	AdminID      *uint  `json:"admin_id" gorm:"index"`
	RequestID    string `json:"request_id" gorm:"size:36"`
	Action       string `json:"action" gorm:"size:100;not null;index"`
	ResourceType string `json:"resource_type" gorm:"size:50;not null;index"`
	ResourceID   *uint  `json:"resource_id" gorm:"index"`
	NewValues    JSONB  `json:"new_values"`
	StatusCode   int    `json:"status_code"`
	IPAddress    string `json:"ip_address" gorm:"size:45"`
	UserAgent    string `json:"user_agent" gorm:"type:text"`
}
