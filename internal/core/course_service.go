package core

import (
	"context"
	"errors"
	"fmt"

	"learnsphere-backend/internal/db"
	"learnsphere-backend/internal/models"
)

// CourseService serves the public course catalog: published courses, their
// lessons, and enrollment convenience checks.
type CourseService struct {
	courseRepo     db.CourseRepository
	lessonRepo     db.LessonRepository
	enrollmentRepo db.EnrollmentRepository
}

// NewCourseService creates a CourseService.
func NewCourseService(courseRepo db.CourseRepository, lessonRepo db.LessonRepository, enrollmentRepo db.EnrollmentRepository) *CourseService {
	return &CourseService{courseRepo: courseRepo, lessonRepo: lessonRepo, enrollmentRepo: enrollmentRepo}
}

// ListPublished returns the published courses, optionally narrowed by
// category and level.
func (s *CourseService) ListPublished(ctx context.Context, category, level string) ([]*models.Course, error) {
	courses, err := s.courseRepo.ListPublished(ctx, db.CourseFilter{Category: category, Level: level})
	if err != nil {
		return nil, fmt.Errorf("failed to list published courses: %w", err)
	}
	if courses == nil {
		courses = []*models.Course{}
	}
	return courses, nil
}

// Get returns a course by id. Unpublished courses resolve too; the
// instructor surface relies on that.
func (s *CourseService) Get(ctx context.Context, courseID string) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	return course, nil
}

// Lessons returns the course's lessons in position order.
func (s *CourseService) Lessons(ctx context.Context, courseID string) ([]*models.Lesson, error) {
	lessons, err := s.lessonRepo.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list lessons: %w", err)
	}
	if lessons == nil {
		lessons = []*models.Lesson{}
	}
	return lessons, nil
}

// IsEnrolled reports whether the user can access the course's content.
// For approval-gated courses only an approved enrollment counts; otherwise
// any enrollment record does.
func (s *CourseService) IsEnrolled(ctx context.Context, userID, courseID string) (bool, error) {
	enrollment, err := s.enrollmentRepo.GetByUserAndCourse(ctx, userID, courseID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check enrollment: %w", err)
	}

	course, err := s.Get(ctx, courseID)
	if err != nil {
		return false, err
	}
	if course.RequiresApproval {
		return enrollment.Status == models.EnrollmentStatusApproved, nil
	}
	return true, nil
}
