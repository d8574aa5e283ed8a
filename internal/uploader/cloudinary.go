// Package uploader wraps the Cloudinary asset host. Media files are pushed
// here before the documents referencing them are written; only the durable
// URLs end up in the store.
package uploader

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// UploadResult is the durable outcome of an upload.
type UploadResult struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
	// Duration is the "m:ss" playback length, set for video uploads only.
	Duration string `json:"duration,omitempty"`
}

// Service uploads videos and images to Cloudinary.
type Service struct {
	cld *cloudinary.Cloudinary
}

// New creates an upload Service from a cloudinary:// connection URL.
func New(cloudinaryURL string) (*Service, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to configure cloudinary: %w", err)
	}
	return &Service{cld: cld}, nil
}

// UploadVideo uploads a lesson video and returns its secure URL together
// with the formatted playback duration.
func (s *Service) UploadVideo(ctx context.Context, file io.Reader) (*UploadResult, error) {
	resp, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:     "lessons/" + uuid.NewString(),
		ResourceType: "video",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload video: %w", err)
	}
	return &UploadResult{
		URL:      resp.SecureURL,
		PublicID: resp.PublicID,
		Duration: FormatDuration(resp.Duration),
	}, nil
}

// UploadImage uploads a thumbnail or avatar image.
func (s *Service) UploadImage(ctx context.Context, file io.Reader) (*UploadResult, error) {
	resp, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:     "images/" + uuid.NewString(),
		ResourceType: "image",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}
	return &UploadResult{URL: resp.SecureURL, PublicID: resp.PublicID}, nil
}

// FormatDuration renders a length in seconds as "m:ss".
func FormatDuration(seconds float64) string {
	if seconds <= 0 {
		return "0:00"
	}
	total := int(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
