package db

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"learnsphere-backend/internal/models"
)

const certificatesCollection = "certificates"

type firestoreCertificateRepository struct {
	client *firestore.Client
}

// NewFirestoreCertificateRepository creates a CertificateRepository backed
// by the "certificates" collection.
func NewFirestoreCertificateRepository(client *firestore.Client) CertificateRepository {
	return &firestoreCertificateRepository{client: client}
}

// Create inserts the certificate under the deterministic pair ID. Under
// concurrent issuance exactly one Create wins; the loser gets
// ErrAlreadyExists and re-reads the winner's certificate.
func (r *firestoreCertificateRepository) Create(ctx context.Context, certificate *models.Certificate) (string, error) {
	docID := PairDocID(certificate.UserID, certificate.CourseID)
	certificate.ID = docID
	if _, err := r.client.Collection(certificatesCollection).Doc(docID).Create(ctx, certificate); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return "", fmt.Errorf("certificate %q: %w", docID, ErrAlreadyExists)
		}
		return "", fmt.Errorf("failed to create certificate %q: %w", docID, err)
	}
	return docID, nil
}

func (r *firestoreCertificateRepository) GetByUserAndCourse(ctx context.Context, userID, courseID string) (*models.Certificate, error) {
	docID := PairDocID(userID, courseID)
	snap, err := r.client.Collection(certificatesCollection).Doc(docID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("certificate %q: %w", docID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get certificate %q: %w", docID, err)
	}
	var certificate models.Certificate
	if err := snap.DataTo(&certificate); err != nil {
		return nil, fmt.Errorf("failed to decode certificate %q: %w", docID, err)
	}
	certificate.ID = snap.Ref.ID
	return &certificate, nil
}
