package handler

import (
	"net/http"
	"strconv"

	"core-nexus/internal/store"

	"github.com/gin-gonic/gin"
)

const defaultHistoryLimit = 96

// GetStatsHistory returns recent activity snapshots for the master
// dashboard, newest first.
func GetStatsHistory(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := defaultHistoryLimit
		if raw := c.Query("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
				return
			}
			limit = parsed
		}

		snaps, err := s.StatsHistory(limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats history"})
			return
		}
		c.JSON(http.StatusOK, snaps)
	}
}
