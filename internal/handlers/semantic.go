package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edulearn/edulearn-backend/internal/logger"
	"github.com/edulearn/edulearn-backend/internal/services"
)

type SemanticHandler struct {
	log         *logger.Logger
	semanticSvc services.SemanticService
}

func NewSemanticHandler(log *logger.Logger, semanticSvc services.SemanticService) *SemanticHandler {
	return &SemanticHandler{
		log:         log.With("handler", "SemanticHandler"),
		semanticSvc: semanticSvc,
	}
}

// POST /semantic-search
func (h *SemanticHandler) SemanticSearch(c *gin.Context) {
	var req struct {
		Question string `json:"question"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondSoftError(c, "Invalid request body")
		return
	}
	result, err := h.semanticSvc.UniversalSearch(c.Request.Context(), req.Question)
	if err != nil {
		if errors.Is(err, services.ErrNoVideos) {
			RespondSoftError(c, "No related videos found.")
			return
		}
		h.log.Warn("Universal search failed", "question", req.Question, "error", err)
		RespondSoftError(c, "Could not process request.")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":       "success",
		"videoUrl":     result.VideoURL,
		"title":        result.Title,
		"timestamp":    result.Timestamp,
		"short_note":   result.ShortNote,
		"matched_line": result.MatchedLine,
		"ai_note":      result.AINote,
	})
}
