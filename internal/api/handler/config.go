package handler

import (
	"net/http"

	"core-nexus/internal/model"
	"core-nexus/internal/store"

	"github.com/gin-gonic/gin"
)

// GetNotifierConfig retrieves the Telegram bot token and site URL used
// by the feedback notifier.
func GetNotifierConfig(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		botToken, err := s.ConfigValue(model.ConfigKeyTelegramBotToken)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve bot token"})
			return
		}

		siteURL, err := s.ConfigValue(model.ConfigKeySiteURL)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve site URL"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"bot_token": botToken,
			"site_url":  siteURL,
		})
	}
}

// UpdateNotifierConfig updates the notifier settings. Takes effect on
// the next restart; the poller is not rebuilt on the fly.
func UpdateNotifierConfig(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			BotToken string `json:"bot_token"`
			SiteURL  string `json:"site_url"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := s.SetConfigValue(model.ConfigKeyTelegramBotToken, input.BotToken); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update bot token"})
			return
		}
		if err := s.SetConfigValue(model.ConfigKeySiteURL, input.SiteURL); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update site URL"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "notifier configuration updated"})
	}
}
