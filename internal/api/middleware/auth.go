package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"core-nexus/internal/auth"
	"core-nexus/internal/store"

	"github.com/gin-gonic/gin"
)

const sessionKey = "session"

// AuthMiddleware validates the JWT and attaches the session to the
// context. Staff tokens are checked against the account's current token
// version so password changes kill old sessions.
func AuthMiddleware(s *store.Store, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := getToken(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		claims, err := auth.ParseToken(tokenString, jwtSecret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		if !claims.IsMaster {
			account, err := s.StaffByID(claims.StaffID)
			if err != nil || account == nil {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "account not found"})
				c.Abort()
				return
			}
			if account.TokenVersion != claims.TokenVersion {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "session expired, please login again"})
				c.Abort()
				return
			}
		}

		c.Set(sessionKey, auth.SessionFromClaims(claims))
		c.Next()
	}
}

// SessionFrom returns the session attached by AuthMiddleware.
func SessionFrom(c *gin.Context) (*auth.Session, bool) {
	value, exists := c.Get(sessionKey)
	if !exists {
		return nil, false
	}
	session, ok := value.(*auth.Session)
	return session, ok
}

// PermissionCheck rejects sessions lacking the named permission. The
// master session passes every check.
func PermissionCheck(perm string) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := SessionFrom(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "session not found in context"})
			c.Abort()
			return
		}

		if !session.IsMaster && !session.HasPermission(perm) {
			c.JSON(http.StatusForbidden, gin.H{"error": fmt.Sprintf("requires %s permission", perm)})
			c.Abort()
			return
		}

		c.Next()
	}
}

// MasterOnly restricts an endpoint to the master session.
func MasterOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := SessionFrom(c)
		if !ok || !session.IsMaster {
			c.JSON(http.StatusForbidden, gin.H{"error": "requires master access"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func getToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			return parts[1], nil
		}
	}

	return "", errors.New("authorization token required")
}

// CORSMiddleware sets up CORS headers
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
