package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"learnsphere-backend/internal/core"
	"learnsphere-backend/internal/middleware"
)

// ProgressHandler serves lesson completion and progress reads.
type ProgressHandler struct {
	progressService *core.ProgressService
	logger          *zap.Logger
}

// NewProgressHandler creates a ProgressHandler.
func NewProgressHandler(progressService *core.ProgressService, logger *zap.Logger) *ProgressHandler {
	return &ProgressHandler{progressService: progressService, logger: logger}
}

// CompleteLesson handles POST /courses/:courseId/lessons/:lessonId/complete.
func (h *ProgressHandler) CompleteLesson(c *gin.Context) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	progress, err := h.progressService.MarkLessonComplete(
		c.Request.Context(), user.UID, c.Param("courseId"), c.Param("lessonId"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, ProgressUpdateResponse{Progress: progress})
}

// GetProgress handles GET /courses/:courseId/progress.
func (h *ProgressHandler) GetProgress(c *gin.Context) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	info, err := h.progressService.Progress(c.Request.Context(), user.UID, c.Param("courseId"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, info)
}
