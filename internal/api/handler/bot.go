package handler

import (
	"net/http"

	"core-nexus/internal/bots"

	"github.com/gin-gonic/gin"
)

// ListBots serves the static bot catalog.
func ListBots() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, bots.Catalog)
	}
}

func GetBot() gin.HandlerFunc {
	return func(c *gin.Context) {
		profile := bots.ByID(c.Param("id"))
		if profile == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "bot not found"})
			return
		}
		c.JSON(http.StatusOK, profile)
	}
}
