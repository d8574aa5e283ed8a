package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"learnsphere-backend/internal/core"
	"learnsphere-backend/internal/middleware"
	"learnsphere-backend/internal/models"
)

// InstructorHandler serves the authoring surface: course and lesson CRUD,
// publishing, and the multi-step creation wizard.
type InstructorHandler struct {
	authoringService *core.AuthoringService
	logger           *zap.Logger
}

// NewInstructorHandler creates an InstructorHandler.
func NewInstructorHandler(authoringService *core.AuthoringService, logger *zap.Logger) *InstructorHandler {
	return &InstructorHandler{authoringService: authoringService, logger: logger}
}

// CreateCourse handles POST /instructor/courses.
func (h *InstructorHandler) CreateCourse(c *gin.Context) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	course, err := h.authoringService.CreateCourse(c.Request.Context(), user.UID, user.Email, req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, course)
}

// SubmitWizard handles POST /instructor/courses/wizard. The endpoint
// accepts the full accumulated form and replays it through the creation
// state machine, so server-side validation matches the step order the
// client walked through.
func (h *InstructorHandler) SubmitWizard(c *gin.Context) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	var req struct {
		Details    core.DraftDetails    `json:"details"`
		Instructor core.DraftInstructor `json:"instructor"`
		Lessons    []core.DraftLesson   `json:"lessons"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	wizard := core.NewCourseWizard()
	steps := []func() error{
		func() error { return wizard.SetDetails(req.Details) },
		func() error { return wizard.SetInstructor(req.Instructor) },
		func() error {
			for _, lesson := range req.Lessons {
				if err := wizard.AddLesson(lesson); err != nil {
					return err
				}
			}
			return wizard.FinishLessons()
		},
	}
	for _, step := range steps {
		if err := step(); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
	}

	draft, err := wizard.Draft()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	course, err := h.authoringService.SubmitDraft(c.Request.Context(), user.UID, user.Email, draft)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, course)
}

// ListCourses handles GET /instructor/courses.
func (h *InstructorHandler) ListCourses(c *gin.Context) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	courses, err := h.authoringService.ListCourses(c.Request.Context(), user.UID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, courses)
}

// GetCourse handles GET /instructor/courses/:courseId.
func (h *InstructorHandler) GetCourse(c *gin.Context) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	course, err := h.authoringService.GetOwnedCourse(c.Request.Context(), user.UID, c.Param("courseId"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

// UpdateCourse handles PUT /instructor/courses/:courseId.
func (h *InstructorHandler) UpdateCourse(c *gin.Context) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	course, err := h.authoringService.UpdateCourse(c.Request.Context(), user.UID, c.Param("courseId"), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

// SetPublished handles PATCH /instructor/courses/:courseId/publish.
func (h *InstructorHandler) SetPublished(c *gin.Context) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	var req struct {
		Published *bool `json:"published" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	course, err := h.authoringService.SetPublished(c.Request.Context(), user.UID, c.Param("courseId"), *req.Published)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

// DeleteCourse handles DELETE /instructor/courses/:courseId. The course's
// lessons go with it.
func (h *InstructorHandler) DeleteCourse(c *gin.Context) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	if err := h.authoringService.DeleteCourse(c.Request.Context(), user.UID, c.Param("courseId")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Course deleted"})
}

// AddLesson handles POST /instructor/courses/:courseId/lessons.
func (h *InstructorHandler) AddLesson(c *gin.Context) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.CreateLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	lesson, err := h.authoringService.AddLesson(c.Request.Context(), user.UID, c.Param("courseId"), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, lesson)
}

// UpdateLesson handles PUT /instructor/lessons/:lessonId.
func (h *InstructorHandler) UpdateLesson(c *gin.Context) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.UpdateLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	lesson, err := h.authoringService.UpdateLesson(c.Request.Context(), user.UID, c.Param("lessonId"), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, lesson)
}

// DeleteLesson handles DELETE /instructor/lessons/:lessonId.
func (h *InstructorHandler) DeleteLesson(c *gin.Context) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	if err := h.authoringService.DeleteLesson(c.Request.Context(), user.UID, c.Param("lessonId")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Lesson deleted"})
}
