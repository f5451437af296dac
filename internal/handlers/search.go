package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edulearn/edulearn-backend/internal/logger"
	"github.com/edulearn/edulearn-backend/internal/services"
)

const defaultClass = "class7"

type SearchHandler struct {
	log       *logger.Logger
	searchSvc services.SearchService
}

func NewSearchHandler(log *logger.Logger, searchSvc services.SearchService) *SearchHandler {
	return &SearchHandler{
		log:       log.With("handler", "SearchHandler"),
		searchSvc: searchSvc,
	}
}

// GET /get-class-videos?class_name=class7
func (h *SearchHandler) GetClassVideos(c *gin.Context) {
	className := c.DefaultQuery("class_name", defaultClass)
	subjects, err := h.searchSvc.ClassVideos(className)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"status": "error", "message": "Class not found", "data": gin.H{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": subjects})
}

// POST /smart-search
func (h *SearchHandler) SmartSearch(c *gin.Context) {
	var req struct {
		Question     string `json:"question"`
		StudentClass string `json:"student_class"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondSoftError(c, "Invalid request body")
		return
	}
	if req.StudentClass == "" {
		req.StudentClass = defaultClass
	}
	result := h.searchSvc.SmartSearch(c.Request.Context(), req.Question, req.StudentClass)
	RespondOK(c, result)
}
