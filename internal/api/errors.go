package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"learnsphere-backend/internal/core"
)

// respondError maps a service error to an HTTP status and writes the
// error envelope. Anything outside the domain taxonomy is an upstream
// failure: logged server-side, surfaced as an opaque 500.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	var status int
	switch {
	case errors.Is(err, core.ErrCourseNotFound),
		errors.Is(err, core.ErrLessonNotFound),
		errors.Is(err, core.ErrEnrollmentNotFound),
		errors.Is(err, core.ErrReviewNotFound),
		errors.Is(err, core.ErrProfileNotFound):
		status = http.StatusNotFound
	case errors.Is(err, core.ErrForbidden),
		errors.Is(err, core.ErrNotApproved):
		status = http.StatusForbidden
	case errors.Is(err, core.ErrAlreadyReviewed),
		errors.Is(err, core.ErrCapacityExceeded):
		status = http.StatusConflict
	case errors.Is(err, core.ErrNotEnrolled),
		errors.Is(err, core.ErrInvalidRating),
		errors.Is(err, core.ErrCertificateNotEarned):
		status = http.StatusBadRequest
	default:
		logger.Error("Unhandled service error",
			zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "An unexpected internal server error occurred."})
		return
	}
	c.JSON(status, ErrorResponse{Error: err.Error()})
}
