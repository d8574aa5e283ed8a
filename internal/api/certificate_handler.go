package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"learnsphere-backend/internal/core"
	"learnsphere-backend/internal/middleware"
)

// CertificateHandler issues completion certificates. Issuance is gated on
// full course progress here, so the service below it can stay a pure
// idempotent id factory.
type CertificateHandler struct {
	certificateService *core.CertificateService
	progressService    *core.ProgressService
	logger             *zap.Logger
}

// NewCertificateHandler creates a CertificateHandler.
func NewCertificateHandler(certificateService *core.CertificateService, progressService *core.ProgressService, logger *zap.Logger) *CertificateHandler {
	return &CertificateHandler{
		certificateService: certificateService,
		progressService:    progressService,
		logger:             logger,
	}
}

// GetCertificate handles GET /courses/:courseId/certificate.
func (h *CertificateHandler) GetCertificate(c *gin.Context) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}
	courseID := c.Param("courseId")

	info, err := h.progressService.Progress(c.Request.Context(), user.UID, courseID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if info.Progress < 100 {
		respondError(c, h.logger, core.ErrCertificateNotEarned)
		return
	}

	certificateID, err := h.certificateService.GetOrCreate(c.Request.Context(), user.UID, courseID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, CertificateResponse{CertificateID: certificateID})
}
