package handler

import (
	"net/http"

	"core-nexus/internal/model"
	"core-nexus/internal/store"

	"github.com/gin-gonic/gin"
)

// FeedbackNotifier receives feedback entries after they are stored.
// Satisfied by notify.Notifier; nil means notifications are off.
type FeedbackNotifier interface {
	FeedbackReceived(f *model.Feedback)
}

// SubmitFeedback stores a feedback entry from the public modal. The
// notifier (when configured) is informed asynchronously; a slow
// Telegram API must not delay the response.
func SubmitFeedback(s *store.Store, notifier FeedbackNotifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Type        string `json:"type" binding:"required"`
			Message     string `json:"message" binding:"required"`
			ThemeAtTime string `json:"theme_at_time"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if !model.ValidFeedbackType(input.Type) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown feedback type"})
			return
		}

		feedback := model.Feedback{
			Type:        input.Type,
			Message:     input.Message,
			ThemeAtTime: input.ThemeAtTime,
		}
		if err := s.AddFeedback(&feedback); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not store feedback"})
			return
		}

		if notifier != nil {
			go notifier.FeedbackReceived(&feedback)
		}

		c.JSON(http.StatusCreated, gin.H{"message": "feedback received", "id": feedback.ID})
	}
}

func ListFeedback(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		feedback, err := s.Feedback()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load feedback"})
			return
		}
		c.JSON(http.StatusOK, feedback)
	}
}

func DeleteFeedback(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := s.DeleteFeedback(c.Param("id")); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete feedback"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "feedback deleted"})
	}
}
