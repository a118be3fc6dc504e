package handler

import (
	"net/http"

	"core-nexus/internal/assistant"

	"github.com/gin-gonic/gin"
)

// AssistantChat answers one prompt. The assistant never errors; an
// offline or failing upstream comes back as a canned reply with 200.
func AssistantChat(a *assistant.Assistant) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Message string `json:"message" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		reply := a.Respond(c.Request.Context(), input.Message)
		c.JSON(http.StatusOK, gin.H{"reply": reply, "online": a.Online()})
	}
}
