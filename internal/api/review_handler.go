package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"learnsphere-backend/internal/core"
	"learnsphere-backend/internal/middleware"
	"learnsphere-backend/internal/models"
)

// ReviewHandler serves authenticated review writes. Review reads are
// public and live on the course handler.
type ReviewHandler struct {
	reviewService *core.ReviewService
	logger        *zap.Logger
}

// NewReviewHandler creates a ReviewHandler.
func NewReviewHandler(reviewService *core.ReviewService, logger *zap.Logger) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService, logger: logger}
}

// AddReview handles POST /courses/:courseId/reviews.
func (h *ReviewHandler) AddReview(c *gin.Context) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	author := core.ReviewAuthor{ID: user.UID, Name: user.DisplayName, PhotoURL: user.PhotoURL}
	review, err := h.reviewService.Add(c.Request.Context(), author, c.Param("courseId"), req.Rating, req.Comment)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

// DeleteReview handles DELETE /reviews/:reviewId.
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	if err := h.reviewService.Delete(c.Request.Context(), c.Param("reviewId"), user.UID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Review deleted"})
}
