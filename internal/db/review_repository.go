package db

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"learnsphere-backend/internal/models"
)

const reviewsCollection = "reviews"

type firestoreReviewRepository struct {
	client *firestore.Client
}

// NewFirestoreReviewRepository creates a ReviewRepository backed by the
// "reviews" collection.
func NewFirestoreReviewRepository(client *firestore.Client) ReviewRepository {
	return &firestoreReviewRepository{client: client}
}

// Create inserts the review under the deterministic pair ID, so a second
// review by the same user for the same course fails with ErrAlreadyExists.
func (r *firestoreReviewRepository) Create(ctx context.Context, review *models.Review) (string, error) {
	docID := PairDocID(review.UserID, review.CourseID)
	review.ID = docID
	if _, err := r.client.Collection(reviewsCollection).Doc(docID).Create(ctx, review); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return "", fmt.Errorf("review %q: %w", docID, ErrAlreadyExists)
		}
		return "", fmt.Errorf("failed to create review %q: %w", docID, err)
	}
	return docID, nil
}

func (r *firestoreReviewRepository) GetByID(ctx context.Context, reviewID string) (*models.Review, error) {
	snap, err := r.client.Collection(reviewsCollection).Doc(reviewID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("review %q: %w", reviewID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get review %q: %w", reviewID, err)
	}
	var review models.Review
	if err := snap.DataTo(&review); err != nil {
		return nil, fmt.Errorf("failed to decode review %q: %w", reviewID, err)
	}
	review.ID = snap.Ref.ID
	return &review, nil
}

func (r *firestoreReviewRepository) GetByUserAndCourse(ctx context.Context, userID, courseID string) (*models.Review, error) {
	return r.GetByID(ctx, PairDocID(userID, courseID))
}

// ListByCourse returns the course's reviews in store order; callers sort.
func (r *firestoreReviewRepository) ListByCourse(ctx context.Context, courseID string) ([]*models.Review, error) {
	iter := r.client.Collection(reviewsCollection).
		Where("courseId", "==", courseID).
		Documents(ctx)
	defer iter.Stop()

	var reviews []*models.Review
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate reviews for course %q: %w", courseID, err)
		}
		var review models.Review
		if err := doc.DataTo(&review); err != nil {
			return nil, fmt.Errorf("failed to decode review %q: %w", doc.Ref.ID, err)
		}
		review.ID = doc.Ref.ID
		reviews = append(reviews, &review)
	}
	return reviews, nil
}

func (r *firestoreReviewRepository) Delete(ctx context.Context, reviewID string) error {
	if _, err := r.client.Collection(reviewsCollection).Doc(reviewID).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete review %q: %w", reviewID, err)
	}
	return nil
}
