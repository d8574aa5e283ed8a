package api

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"learnsphere-backend/internal/uploader"
)

// Uploads larger than this are rejected before touching the asset host.
const maxUploadBytes = 512 << 20

// UploadHandler pushes lesson videos and images to the asset host and
// returns their durable URLs.
type UploadHandler struct {
	uploadService *uploader.Service
	logger        *zap.Logger
}

// NewUploadHandler creates an UploadHandler.
func NewUploadHandler(uploadService *uploader.Service, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{uploadService: uploadService, logger: logger}
}

// UploadVideo handles POST /uploads/video. Expects a multipart form with
// a "file" part.
func (h *UploadHandler) UploadVideo(c *gin.Context) {
	file, ok := h.openUpload(c)
	if !ok {
		return
	}
	defer file.Close()

	result, err := h.uploadService.UploadVideo(c.Request.Context(), file)
	if err != nil {
		h.logger.Error("video upload failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Upload failed"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// UploadImage handles POST /uploads/image.
func (h *UploadHandler) UploadImage(c *gin.Context) {
	file, ok := h.openUpload(c)
	if !ok {
		return
	}
	defer file.Close()

	result, err := h.uploadService.UploadImage(c.Request.Context(), file)
	if err != nil {
		h.logger.Error("image upload failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Upload failed"})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *UploadHandler) openUpload(c *gin.Context) (multipart.File, bool) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "A multipart \"file\" part is required"})
		return nil, false
	}
	if header.Size > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "File exceeds the upload size limit"})
		return nil, false
	}
	file, err := header.Open()
	if err != nil {
		h.logger.Error("failed to open uploaded file", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to read uploaded file"})
		return nil, false
	}
	return file, true
}
