package handler

import (
	"net/http"

	"core-nexus/internal/api/middleware"
	"core-nexus/internal/auth"
	"core-nexus/internal/model"
	"core-nexus/internal/store"

	"github.com/gin-gonic/gin"
)

func validPermissions(perms []string) bool {
	for _, p := range perms {
		switch p {
		case model.PermissionVaultView, model.PermissionVaultEdit, model.PermissionFeedbackManage:
		default:
			return false
		}
	}
	return true
}

func ListStaff(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		accounts, err := s.StaffAccounts()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list staff accounts"})
			return
		}
		c.JSON(http.StatusOK, accounts)
	}
}

func CreateStaff(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Username       string   `json:"username" binding:"required,min=3"`
			Password       string   `json:"password" binding:"required,min=6"`
			Role           string   `json:"role"`
			Permissions    []string `json:"permissions"`
			TelegramChatID int64    `json:"telegram_chat_id"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if !validPermissions(input.Permissions) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown permission"})
			return
		}

		account := model.StaffAccount{
			Username:       input.Username,
			Password:       input.Password, // BeforeCreate hook hashes this
			Role:           input.Role,
			Permissions:    input.Permissions,
			TelegramChatID: input.TelegramChatID,
		}
		if account.Role == "" {
			account.Role = "staff"
		}

		if err := s.AddStaff(&account); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create staff account"})
			return
		}
		c.JSON(http.StatusCreated, account)
	}
}

func UpdateStaff(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		account, err := s.StaffByID(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load staff account"})
			return
		}
		if account == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "staff account not found"})
			return
		}

		var input struct {
			Username       string   `json:"username" binding:"required,min=3"`
			Role           string   `json:"role"`
			Permissions    []string `json:"permissions"`
			TelegramChatID int64    `json:"telegram_chat_id"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if !validPermissions(input.Permissions) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown permission"})
			return
		}

		// Password changes go through ResetStaffPassword
		account.Username = input.Username
		account.Role = input.Role
		account.Permissions = input.Permissions
		account.TelegramChatID = input.TelegramChatID

		if err := s.SaveStaff(account); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update staff account"})
			return
		}
		c.JSON(http.StatusOK, account)
	}
}

func DeleteStaff(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := s.DeleteStaff(c.Param("id")); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete staff account"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "staff account deleted"})
	}
}

// ResetStaffPassword sets a new password and invalidates the account's
// outstanding sessions.
func ResetStaffPassword(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		account, err := s.StaffByID(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load staff account"})
			return
		}
		if account == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "staff account not found"})
			return
		}

		var input struct {
			NewPassword string `json:"new_password" binding:"required,min=6"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := auth.SetPassword(s, account, input.NewPassword); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to set password"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "password reset"})
	}
}

// ChangePassword lets a logged-in staff member change their own
// password after confirming the current one.
func ChangePassword(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := middleware.SessionFrom(c)
		if !ok || session.StaffID == "" {
			c.JSON(http.StatusForbidden, gin.H{"error": "only staff accounts have a stored password"})
			return
		}

		var input struct {
			CurrentPassword string `json:"current_password" binding:"required"`
			NewPassword     string `json:"new_password" binding:"required,min=6"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		account, err := s.StaffByID(session.StaffID)
		if err != nil || account == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "staff account not found"})
			return
		}

		if !auth.CheckPassword(account, input.CurrentPassword) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "current password incorrect"})
			return
		}

		if err := auth.SetPassword(s, account, input.NewPassword); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to set password"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "password updated"})
	}
}
