package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"learnsphere-backend/internal/core"
	"learnsphere-backend/internal/middleware"
)

// CourseHandler serves the public course catalog.
type CourseHandler struct {
	courseService *core.CourseService
	reviewService *core.ReviewService
	logger        *zap.Logger
}

// NewCourseHandler creates a CourseHandler.
func NewCourseHandler(courseService *core.CourseService, reviewService *core.ReviewService, logger *zap.Logger) *CourseHandler {
	return &CourseHandler{courseService: courseService, reviewService: reviewService, logger: logger}
}

// ListCourses handles GET /courses with optional category and level
// filters. Only published courses are visible here.
func (h *CourseHandler) ListCourses(c *gin.Context) {
	courses, err := h.courseService.ListPublished(c.Request.Context(), c.Query("category"), c.Query("level"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, courses)
}

// GetCourse handles GET /courses/:courseId.
func (h *CourseHandler) GetCourse(c *gin.Context) {
	course, err := h.courseService.Get(c.Request.Context(), c.Param("courseId"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

// ListLessons handles GET /courses/:courseId/lessons, ordered by position.
func (h *CourseHandler) ListLessons(c *gin.Context) {
	lessons, err := h.courseService.Lessons(c.Request.Context(), c.Param("courseId"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, lessons)
}

// ListReviews handles GET /courses/:courseId/reviews, newest first.
func (h *CourseHandler) ListReviews(c *gin.Context) {
	reviews, err := h.reviewService.List(c.Request.Context(), c.Param("courseId"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// GetAccess handles GET /courses/:courseId/access. It reports whether the
// caller may watch the course's lessons; for approval-gated courses only
// an approved enrollment opens the content.
func (h *CourseHandler) GetAccess(c *gin.Context) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	enrolled, err := h.courseService.IsEnrolled(c.Request.Context(), user.UID, c.Param("courseId"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, AccessResponse{Enrolled: enrolled})
}

// GetRating handles GET /courses/:courseId/rating: average, count and the
// star distribution.
func (h *CourseHandler) GetRating(c *gin.Context) {
	summary, err := h.reviewService.Summary(c.Request.Context(), c.Param("courseId"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
