package core

import (
	"context"
	"errors"
	"fmt"
	"math"

	"learnsphere-backend/internal/db"
	"learnsphere-backend/internal/models"
)

// ProgressService recomputes per-user completion percentages from lesson
// completion sets.
type ProgressService struct {
	enrollmentRepo db.EnrollmentRepository
	lessonRepo     db.LessonRepository
}

// NewProgressService creates a ProgressService.
func NewProgressService(enrollmentRepo db.EnrollmentRepository, lessonRepo db.LessonRepository) *ProgressService {
	return &ProgressService{enrollmentRepo: enrollmentRepo, lessonRepo: lessonRepo}
}

// MarkLessonComplete records a lesson completion and returns the updated
// progress percentage. Completion requires an approved enrollment and a
// lesson that actually belongs to the course. Re-completing a lesson is a
// no-op, not an error.
func (s *ProgressService) MarkLessonComplete(ctx context.Context, userID, courseID, lessonID string) (int, error) {
	enrollment, err := s.enrollmentRepo.GetByUserAndCourse(ctx, userID, courseID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return 0, ErrNotEnrolled
		}
		return 0, fmt.Errorf("failed to load enrollment: %w", err)
	}
	if enrollment.Status != models.EnrollmentStatusApproved {
		return 0, ErrNotApproved
	}

	lessons, err := s.lessonRepo.ListByCourse(ctx, courseID)
	if err != nil {
		return 0, fmt.Errorf("failed to load lessons: %w", err)
	}

	found := false
	for _, lesson := range lessons {
		if lesson.ID == lessonID {
			found = true
			break
		}
	}
	if !found {
		return 0, ErrLessonNotFound
	}

	completed := len(enrollment.CompletedLessons)
	if !enrollment.HasCompleted(lessonID) {
		completed++
	}

	progress := computeProgress(completed, len(lessons))
	if err := s.enrollmentRepo.RecordLessonCompletion(ctx, enrollment.ID, lessonID, progress); err != nil {
		return 0, fmt.Errorf("failed to persist lesson completion: %w", err)
	}
	return progress, nil
}

// Progress returns the user's completion state for a course.
func (s *ProgressService) Progress(ctx context.Context, userID, courseID string) (*models.ProgressInfo, error) {
	enrollment, err := s.enrollmentRepo.GetByUserAndCourse(ctx, userID, courseID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrNotEnrolled
		}
		return nil, fmt.Errorf("failed to load enrollment: %w", err)
	}
	completed := enrollment.CompletedLessons
	if completed == nil {
		completed = []string{}
	}
	return &models.ProgressInfo{Progress: enrollment.Progress, CompletedLessons: completed}, nil
}

// computeProgress rounds completed/total to a percentage. When every
// lesson is complete the result is forced to exactly 100, so rounding
// can never report 99 or 101 on the final lesson. A course with no
// lessons is always at 0.
func computeProgress(completed, total int) int {
	if total == 0 {
		return 0
	}
	if completed >= total {
		return 100
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}
