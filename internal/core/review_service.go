package core

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"learnsphere-backend/internal/db"
	"learnsphere-backend/internal/models"
)

// ReviewService manages course reviews and their aggregation into rating
// summaries.
type ReviewService struct {
	reviewRepo     db.ReviewRepository
	enrollmentRepo db.EnrollmentRepository
}

// NewReviewService creates a ReviewService.
func NewReviewService(reviewRepo db.ReviewRepository, enrollmentRepo db.EnrollmentRepository) *ReviewService {
	return &ReviewService{reviewRepo: reviewRepo, enrollmentRepo: enrollmentRepo}
}

// Add stores a review for a course. The reviewer must hold an enrollment
// record of any status; approval is not required. A user can review a
// course at most once.
func (s *ReviewService) Add(ctx context.Context, user ReviewAuthor, courseID string, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	if _, err := s.enrollmentRepo.GetByUserAndCourse(ctx, user.ID, courseID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrNotEnrolled
		}
		return nil, fmt.Errorf("failed to check enrollment before review: %w", err)
	}

	name := user.Name
	if name == "" {
		name = "Anonymous"
	}
	review := &models.Review{
		CourseID:     courseID,
		UserID:       user.ID,
		UserName:     name,
		UserPhotoURL: user.PhotoURL,
		Rating:       rating,
		Comment:      comment,
	}
	if _, err := s.reviewRepo.Create(ctx, review); err != nil {
		if errors.Is(err, db.ErrAlreadyExists) {
			return nil, ErrAlreadyReviewed
		}
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return review, nil
}

// ReviewAuthor is the denormalized snapshot of the reviewer stored on the
// review at write time.
type ReviewAuthor struct {
	ID       string
	Name     string
	PhotoURL string
}

// List returns the course's reviews newest first. The store query does not
// guarantee order, so sorting happens here.
func (s *ReviewService) List(ctx context.Context, courseID string) ([]*models.Review, error) {
	reviews, err := s.reviewRepo.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	sort.Slice(reviews, func(i, j int) bool {
		return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
	})
	return reviews, nil
}

// Summary aggregates a course's reviews: average rounded to one decimal
// (0 when there are no reviews), total count, and star bucket counts
// ordered 5 stars first. Ratings outside [1,5] are dropped from the
// buckets by policy rather than rejected.
func (s *ReviewService) Summary(ctx context.Context, courseID string) (*models.RatingSummary, error) {
	reviews, err := s.reviewRepo.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews for summary: %w", err)
	}

	summary := &models.RatingSummary{Count: len(reviews)}
	if len(reviews) == 0 {
		return summary, nil
	}

	sum := 0
	for _, review := range reviews {
		sum += review.Rating
		if review.Rating >= 1 && review.Rating <= 5 {
			// Distribution[0] is the 5-star bucket.
			summary.Distribution[5-review.Rating]++
		}
	}
	average := float64(sum) / float64(len(reviews))
	summary.Average = math.Round(average*10) / 10
	return summary, nil
}

// Delete removes a review. Only its author may delete it.
func (s *ReviewService) Delete(ctx context.Context, reviewID, callerID string) error {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return ErrReviewNotFound
		}
		return fmt.Errorf("failed to load review: %w", err)
	}
	if review.UserID != callerID {
		return ErrForbidden
	}
	if err := s.reviewRepo.Delete(ctx, reviewID); err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	return nil
}
