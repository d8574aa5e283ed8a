package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"learnsphere-backend/internal/core"
	"learnsphere-backend/internal/middleware"
)

// EnrollmentHandler serves enrollment requests, the instructor approval
// queue, and the caller's enrolled course listing.
type EnrollmentHandler struct {
	enrollmentService *core.EnrollmentService
	logger            *zap.Logger
}

// NewEnrollmentHandler creates an EnrollmentHandler.
func NewEnrollmentHandler(enrollmentService *core.EnrollmentService, logger *zap.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{enrollmentService: enrollmentService, logger: logger}
}

// Enroll handles POST /courses/:courseId/enroll. Idempotent: repeated
// calls report the existing status instead of duplicating the enrollment.
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	result, err := h.enrollmentService.Enroll(c.Request.Context(), user.UID, c.Param("courseId"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	status := http.StatusCreated
	if result.AlreadyExisted {
		status = http.StatusOK
	}
	c.JSON(status, result)
}

// GetStatus handles GET /courses/:courseId/enrollment.
func (h *EnrollmentHandler) GetStatus(c *gin.Context) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	status, err := h.enrollmentService.Status(c.Request.Context(), user.UID, c.Param("courseId"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, EnrollmentStatusResponse{Status: status})
}

// ListMyCourses handles GET /me/courses.
func (h *EnrollmentHandler) ListMyCourses(c *gin.Context) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	courses, err := h.enrollmentService.ListEnrolledCourses(c.Request.Context(), user.UID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, courses)
}

// ListPending handles GET /instructor/enrollments/pending.
func (h *EnrollmentHandler) ListPending(c *gin.Context) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	pending, err := h.enrollmentService.ListPending(c.Request.Context(), user.UID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, pending)
}

// Approve handles PATCH /instructor/enrollments/:enrollmentId/approve.
func (h *EnrollmentHandler) Approve(c *gin.Context) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	if err := h.enrollmentService.Approve(c.Request.Context(), c.Param("enrollmentId"), user.UID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Enrollment approved"})
}

// Reject handles PATCH /instructor/enrollments/:enrollmentId/reject. The
// enrollment is removed entirely; the student may enroll again.
func (h *EnrollmentHandler) Reject(c *gin.Context) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	if err := h.enrollmentService.Reject(c.Request.Context(), c.Param("enrollmentId"), user.UID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Enrollment rejected"})
}
