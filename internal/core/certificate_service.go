package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"learnsphere-backend/internal/db"
	"learnsphere-backend/internal/models"
)

// CertificateService issues per-(user, course) certificate identifiers.
// Issuance is idempotent: once a certificate exists, every further call
// returns the same identifier. The service does NOT verify that the
// course was completed; callers gate on progress before issuing.
type CertificateService struct {
	certificateRepo db.CertificateRepository
	now             func() time.Time
}

// NewCertificateService creates a CertificateService.
func NewCertificateService(certificateRepo db.CertificateRepository) *CertificateService {
	return &CertificateService{certificateRepo: certificateRepo, now: time.Now}
}

// GetOrCreate returns the certificate id for the pair, creating one when
// none exists. Concurrent first calls collapse onto a single certificate
// through the store's uniqueness on the pair document.
func (s *CertificateService) GetOrCreate(ctx context.Context, userID, courseID string) (string, error) {
	existing, err := s.certificateRepo.GetByUserAndCourse(ctx, userID, courseID)
	if err == nil {
		return existing.CertificateID, nil
	}
	if !errors.Is(err, db.ErrNotFound) {
		return "", fmt.Errorf("failed to look up certificate: %w", err)
	}

	certificate := &models.Certificate{
		UserID:        userID,
		CourseID:      courseID,
		CertificateID: s.buildCertificateID(userID, courseID),
	}
	if _, err := s.certificateRepo.Create(ctx, certificate); err != nil {
		if errors.Is(err, db.ErrAlreadyExists) {
			// Another request created the certificate between lookup and
			// create; return theirs so both callers see the same id.
			winner, getErr := s.certificateRepo.GetByUserAndCourse(ctx, userID, courseID)
			if getErr != nil {
				return "", fmt.Errorf("failed to read concurrently issued certificate: %w", getErr)
			}
			return winner.CertificateID, nil
		}
		return "", fmt.Errorf("failed to create certificate: %w", err)
	}
	return certificate.CertificateID, nil
}

// buildCertificateID synthesizes the human-readable certificate id:
// NN-<first 4 chars of courseId, uppercased>-<first 4 chars of userId>-
// <8-digit zero-padded suffix derived from unix seconds>.
func (s *CertificateService) buildCertificateID(userID, courseID string) string {
	suffix := s.now().Unix() % 100000000
	return fmt.Sprintf("NN-%s-%s-%08d",
		strings.ToUpper(prefix4(courseID)), prefix4(userID), suffix)
}

func prefix4(s string) string {
	if len(s) > 4 {
		return s[:4]
	}
	return s
}
