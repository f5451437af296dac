package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edulearn/edulearn-backend/internal/logger"
	"github.com/edulearn/edulearn-backend/internal/services"
)

type ChatHandler struct {
	log     *logger.Logger
	chatSvc services.ChatService
}

func NewChatHandler(log *logger.Logger, chatSvc services.ChatService) *ChatHandler {
	return &ChatHandler{
		log:     log.With("handler", "ChatHandler"),
		chatSvc: chatSvc,
	}
}

// POST /tutor-chat
func (h *ChatHandler) TutorChat(c *gin.Context) {
	var req struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondSoftError(c, "Invalid request body")
		return
	}
	reply := h.chatSvc.Reply(c.Request.Context(), req.Message)
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
