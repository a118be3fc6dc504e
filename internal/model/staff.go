package model

import (
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	PermissionVaultView      = "VAULT_VIEW"
	PermissionVaultEdit      = "VAULT_EDIT"
	PermissionFeedbackManage = "FEEDBACK_MANAGE"
)

// AllPermissions is the full set granted to the master credential.
func AllPermissions() []string {
	return []string{PermissionVaultView, PermissionVaultEdit, PermissionFeedbackManage}
}

// StaffAccount is a non-master credential record granting a subset of
// admin permissions. Passwords are bcrypt-hashed before they hit the DB.
type StaffAccount struct {
	ID           string     `gorm:"primaryKey;size:12" json:"id"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	LastLogin    *time.Time `json:"last_login"`
	Username     string     `gorm:"uniqueIndex;not null" json:"username"`
	Password     string     `gorm:"not null" json:"-"`
	Role         string     `gorm:"default:'staff'" json:"role"`
	Permissions  []string   `gorm:"serializer:json" json:"permissions"`
	TokenVersion int64      `gorm:"default:1" json:"-"`

	// TelegramChatID, when set, subscribes the account to feedback
	// notifications from the site bot.
	TelegramChatID int64 `gorm:"index" json:"telegram_chat_id"`
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func (a *StaffAccount) BeforeCreate(tx *gorm.DB) (err error) {
	if a.Password != "" {
		a.Password, err = HashPassword(a.Password)
	}
	return
}

// HasPermission reports whether the account carries the named permission.
func (a *StaffAccount) HasPermission(perm string) bool {
	for _, p := range a.Permissions {
		if p == perm {
			return true
		}
	}
	return false
}
