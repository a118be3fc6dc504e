package handler

import (
	"errors"
	"net/http"

	"core-nexus/internal/api/middleware"
	"core-nexus/internal/auth"

	"github.com/gin-gonic/gin"
)

// Login runs the credential check and returns a signed session token.
// Error responses carry a machine-readable code for the login form.
func Login(verifier *auth.Verifier, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Identifier string `json:"identifier"`
			Key        string `json:"key"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		session, err := verifier.Verify(input.Identifier, input.Key)
		if err != nil {
			var credErr *auth.CredentialError
			if errors.As(err, &credErr) {
				status := http.StatusUnauthorized
				if credErr.Code != auth.CodeAccessDenied {
					status = http.StatusBadRequest
				}
				c.JSON(status, gin.H{"error": credErr.Message, "code": credErr.Code})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
			return
		}

		tokenVersion := int64(1)
		if session.StaffID != "" {
			account, err := verifier.Store.StaffByID(session.StaffID)
			if err != nil || account == nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
				return
			}
			tokenVersion = account.TokenVersion
		}

		token, err := auth.IssueToken(session, tokenVersion, jwtSecret)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"token": token, "session": session})
	}
}

// GetSession echoes the caller's session, for the SPA to restore its
// state after a reload.
func GetSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := middleware.SessionFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.JSON(http.StatusOK, session)
	}
}
