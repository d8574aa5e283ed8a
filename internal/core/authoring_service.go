package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"learnsphere-backend/internal/db"
	"learnsphere-backend/internal/models"
)

// AuthoringService owns the instructor side of the catalog: draft course
// creation, lesson management, publishing, and cascading deletion.
// Course and lesson writes are independent store operations with no
// rollback; a failure mid-sequence leaves earlier writes in place and
// surfaces to the caller.
type AuthoringService struct {
	courseRepo db.CourseRepository
	lessonRepo db.LessonRepository
}

// NewAuthoringService creates an AuthoringService.
func NewAuthoringService(courseRepo db.CourseRepository, lessonRepo db.LessonRepository) *AuthoringService {
	return &AuthoringService{courseRepo: courseRepo, lessonRepo: lessonRepo}
}

// CreateCourse creates an unpublished draft course owned by the
// instructor. Tags are normalized to a lower-cased set.
func (s *AuthoringService) CreateCourse(ctx context.Context, instructorID, instructorEmail string, req models.CreateCourseRequest) (*models.Course, error) {
	level := req.Level
	if level == "" {
		level = models.LevelBeginner
	}
	course := &models.Course{
		Title:            req.Title,
		Description:      req.Description,
		Level:            level,
		Category:         req.Category,
		Tags:             NormalizeTags(req.Tags),
		Duration:         req.Duration,
		InstructorID:     instructorID,
		InstructorName:   req.InstructorName,
		InstructorAvatar: req.InstructorAvatar,
		InstructorEmail:  instructorEmail,
		Thumbnail:        req.Thumbnail,
		Published:        false,
		EnrollmentsCount: 0,
		RequiresApproval: req.RequiresApproval,
		EnrollmentLimit:  req.EnrollmentLimit,
	}
	if _, err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}
	return course, nil
}

// ListCourses returns every course owned by the instructor, published or
// not.
func (s *AuthoringService) ListCourses(ctx context.Context, instructorID string) ([]*models.Course, error) {
	courses, err := s.courseRepo.ListByInstructor(ctx, instructorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list instructor courses: %w", err)
	}
	if courses == nil {
		courses = []*models.Course{}
	}
	return courses, nil
}

// GetOwnedCourse returns the course if the instructor owns it.
func (s *AuthoringService) GetOwnedCourse(ctx context.Context, instructorID, courseID string) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to load course: %w", err)
	}
	if course.InstructorID != instructorID {
		return nil, ErrForbidden
	}
	return course, nil
}

// UpdateCourse applies the provided fields to an owned course.
func (s *AuthoringService) UpdateCourse(ctx context.Context, instructorID, courseID string, req models.UpdateCourseRequest) (*models.Course, error) {
	course, err := s.GetOwnedCourse(ctx, instructorID, courseID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Level != nil {
		course.Level = *req.Level
	}
	if req.Category != nil {
		course.Category = *req.Category
	}
	if req.Tags != nil {
		course.Tags = NormalizeTags(*req.Tags)
	}
	if req.Duration != nil {
		course.Duration = *req.Duration
	}
	if req.InstructorName != nil {
		course.InstructorName = *req.InstructorName
	}
	if req.InstructorAvatar != nil {
		course.InstructorAvatar = *req.InstructorAvatar
	}
	if req.Thumbnail != nil {
		course.Thumbnail = *req.Thumbnail
	}
	if req.RequiresApproval != nil {
		course.RequiresApproval = *req.RequiresApproval
	}
	if req.EnrollmentLimit != nil {
		course.EnrollmentLimit = *req.EnrollmentLimit
	}
	course.UpdatedAt = time.Now().UTC()

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to update course: %w", err)
	}
	return course, nil
}

// SetPublished toggles a course's visibility in the public catalog.
func (s *AuthoringService) SetPublished(ctx context.Context, instructorID, courseID string, published bool) (*models.Course, error) {
	course, err := s.GetOwnedCourse(ctx, instructorID, courseID)
	if err != nil {
		return nil, err
	}
	course.Published = published
	course.UpdatedAt = time.Now().UTC()
	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to update course publication: %w", err)
	}
	return course, nil
}

// AddLesson appends a lesson to an owned course. The lesson's video must
// already be uploaded; only its URL is stored.
func (s *AuthoringService) AddLesson(ctx context.Context, instructorID, courseID string, req models.CreateLessonRequest) (*models.Lesson, error) {
	if _, err := s.GetOwnedCourse(ctx, instructorID, courseID); err != nil {
		return nil, err
	}

	lesson := &models.Lesson{
		CourseID:    courseID,
		Title:       req.Title,
		Description: req.Description,
		VideoURL:    req.VideoURL,
		Duration:    req.Duration,
		Order:       req.Order,
	}
	if _, err := s.lessonRepo.Create(ctx, lesson); err != nil {
		return nil, fmt.Errorf("failed to create lesson: %w", err)
	}
	return lesson, nil
}

// UpdateLesson applies the provided fields to a lesson of an owned course.
func (s *AuthoringService) UpdateLesson(ctx context.Context, instructorID, lessonID string, req models.UpdateLessonRequest) (*models.Lesson, error) {
	lesson, err := s.ownedLesson(ctx, instructorID, lessonID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		lesson.Title = *req.Title
	}
	if req.Description != nil {
		lesson.Description = *req.Description
	}
	if req.VideoURL != nil {
		lesson.VideoURL = *req.VideoURL
	}
	if req.Duration != nil {
		lesson.Duration = *req.Duration
	}
	if req.Order != nil {
		lesson.Order = *req.Order
	}
	lesson.UpdatedAt = time.Now().UTC()

	if err := s.lessonRepo.Update(ctx, lesson); err != nil {
		return nil, fmt.Errorf("failed to update lesson: %w", err)
	}
	return lesson, nil
}

// DeleteLesson removes a single lesson from an owned course.
func (s *AuthoringService) DeleteLesson(ctx context.Context, instructorID, lessonID string) error {
	if _, err := s.ownedLesson(ctx, instructorID, lessonID); err != nil {
		return err
	}
	if err := s.lessonRepo.Delete(ctx, lessonID); err != nil {
		return fmt.Errorf("failed to delete lesson: %w", err)
	}
	return nil
}

// DeleteCourse removes an owned course and all its lessons. Lessons are
// deleted first, fanned out and joined, so a successful return means no
// orphaned lessons remain.
func (s *AuthoringService) DeleteCourse(ctx context.Context, instructorID, courseID string) error {
	if _, err := s.GetOwnedCourse(ctx, instructorID, courseID); err != nil {
		return err
	}

	lessons, err := s.lessonRepo.ListByCourse(ctx, courseID)
	if err != nil {
		return fmt.Errorf("failed to list lessons for cascade delete: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, lesson := range lessons {
		lessonID := lesson.ID
		g.Go(func() error {
			return s.lessonRepo.Delete(gctx, lessonID)
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to delete lessons of course %q: %w", courseID, err)
	}

	if err := s.courseRepo.Delete(ctx, courseID); err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}
	return nil
}

// ownedLesson loads a lesson and verifies the caller owns its course.
func (s *AuthoringService) ownedLesson(ctx context.Context, instructorID, lessonID string) (*models.Lesson, error) {
	lesson, err := s.lessonRepo.GetByID(ctx, lessonID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrLessonNotFound
		}
		return nil, fmt.Errorf("failed to load lesson: %w", err)
	}
	if _, err := s.GetOwnedCourse(ctx, instructorID, lesson.CourseID); err != nil {
		return nil, err
	}
	return lesson, nil
}

// NormalizeTags lower-cases, trims and de-duplicates tag tokens. Order is
// first-seen, but tags carry set semantics so callers must not rely on it.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	normalized := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		normalized = append(normalized, tag)
	}
	return normalized
}
