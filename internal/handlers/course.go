package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edulearn/edulearn-backend/internal/logger"
	"github.com/edulearn/edulearn-backend/internal/services"
)

type CourseHandler struct {
	log       *logger.Logger
	courseSvc services.CourseService
}

func NewCourseHandler(log *logger.Logger, courseSvc services.CourseService) *CourseHandler {
	return &CourseHandler{
		log:       log.With("handler", "CourseHandler"),
		courseSvc: courseSvc,
	}
}

// GET /get-class-data/:class_id
func (h *CourseHandler) GetClassData(c *gin.Context) {
	classID := c.Param("class_id")
	topics, err := h.courseSvc.ClassData(classID)
	if err != nil {
		RespondSoftError(c, "Class not found.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "class": classID, "videos": topics})
}

// POST /get-course-quiz
func (h *CourseHandler) GetCourseQuiz(c *gin.Context) {
	var req struct {
		ClassID string `json:"class_id"`
		TopicID int    `json:"topic_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondSoftError(c, "Invalid request body")
		return
	}
	topic, err := h.courseSvc.Quiz(req.ClassID, req.TopicID)
	if err != nil {
		RespondSoftError(c, "Quiz not found.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "title": topic.Title, "questions": topic.Quiz})
}
