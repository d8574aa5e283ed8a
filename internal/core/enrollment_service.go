package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"learnsphere-backend/internal/db"
	"learnsphere-backend/internal/models"
)

// Notifier delivers best-effort notifications about enrollment decisions.
// Failures are logged, never propagated; the enrollment state change is
// the source of truth, the email is a courtesy.
type Notifier interface {
	EnrollmentDecision(ctx context.Context, recipient, courseTitle string, approved bool) error
}

// EnrollmentService owns the enrollment approval workflow: enroll requests,
// capacity limiting, the instructor approval queue, and the joined course
// listings built from enrollment records.
type EnrollmentService struct {
	enrollmentRepo db.EnrollmentRepository
	courseRepo     db.CourseRepository
	profileRepo    db.ProfileRepository
	notifier       Notifier
	logger         *zap.Logger
}

// NewEnrollmentService creates an EnrollmentService. notifier may be nil
// when notifications are not configured.
func NewEnrollmentService(
	enrollmentRepo db.EnrollmentRepository,
	courseRepo db.CourseRepository,
	profileRepo db.ProfileRepository,
	notifier Notifier,
	logger *zap.Logger,
) *EnrollmentService {
	return &EnrollmentService{
		enrollmentRepo: enrollmentRepo,
		courseRepo:     courseRepo,
		profileRepo:    profileRepo,
		notifier:       notifier,
		logger:         logger,
	}
}

// Status reports the enrollment state of a (user, course) pair:
// "none", "pending" or "approved".
func (s *EnrollmentService) Status(ctx context.Context, userID, courseID string) (string, error) {
	enrollment, err := s.enrollmentRepo.GetByUserAndCourse(ctx, userID, courseID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return models.EnrollmentStatusNone, nil
		}
		return "", fmt.Errorf("failed to get enrollment status: %w", err)
	}
	return enrollment.Status, nil
}

// Enroll requests enrollment of a user in a course. The operation is
// idempotent: if an enrollment already exists the existing status is
// returned without creating a duplicate. Courses with requiresApproval
// start in "pending"; otherwise the enrollment is approved immediately and
// the course's enrollment counter is incremented.
func (s *EnrollmentService) Enroll(ctx context.Context, userID, courseID string) (*models.EnrollResult, error) {
	existing, err := s.Status(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if existing != models.EnrollmentStatusNone {
		return &models.EnrollResult{Status: existing, AlreadyExisted: true}, nil
	}

	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to load course for enrollment: %w", err)
	}

	if course.EnrollmentLimit > 0 {
		active, err := s.enrollmentRepo.CountActiveByCourse(ctx, courseID)
		if err != nil {
			return nil, fmt.Errorf("failed to count enrollments for capacity check: %w", err)
		}
		if active >= course.EnrollmentLimit {
			return nil, ErrCapacityExceeded
		}
	}

	status := models.EnrollmentStatusApproved
	if course.RequiresApproval {
		status = models.EnrollmentStatusPending
	}

	enrollment := &models.Enrollment{
		UserID:           userID,
		CourseID:         courseID,
		Status:           status,
		Progress:         0,
		CompletedLessons: []string{},
	}
	if _, err := s.enrollmentRepo.Create(ctx, enrollment); err != nil {
		if errors.Is(err, db.ErrAlreadyExists) {
			// Lost a race against another request from the same user; the
			// store-level uniqueness held, so report the winner's status.
			current, statusErr := s.Status(ctx, userID, courseID)
			if statusErr != nil {
				return nil, statusErr
			}
			return &models.EnrollResult{Status: current, AlreadyExisted: true}, nil
		}
		return nil, fmt.Errorf("failed to create enrollment: %w", err)
	}

	if status == models.EnrollmentStatusApproved {
		if err := s.courseRepo.IncrementEnrollments(ctx, courseID, 1); err != nil {
			// The enrollment itself stands; the counter is eventually
			// consistent by contract.
			s.logger.Warn("Failed to increment enrollment counter",
				zap.String("courseId", courseID), zap.Error(err))
		}
	}

	return &models.EnrollResult{Status: status}, nil
}

// Approve transitions a pending enrollment to approved. Only the
// instructor owning the course may approve.
func (s *EnrollmentService) Approve(ctx context.Context, enrollmentID, callerID string) error {
	enrollment, course, err := s.loadForDecision(ctx, enrollmentID, callerID)
	if err != nil {
		return err
	}

	if err := s.enrollmentRepo.SetApproved(ctx, enrollmentID, time.Now().UTC()); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return ErrEnrollmentNotFound
		}
		return fmt.Errorf("failed to approve enrollment: %w", err)
	}

	if err := s.courseRepo.IncrementEnrollments(ctx, course.ID, 1); err != nil {
		s.logger.Warn("Failed to increment enrollment counter after approval",
			zap.String("courseId", course.ID), zap.Error(err))
	}

	s.notifyDecision(ctx, enrollment.UserID, course.Title, true)
	return nil
}

// Reject hard-deletes a pending enrollment. No audit trail is kept; the
// user may enroll again afterwards.
func (s *EnrollmentService) Reject(ctx context.Context, enrollmentID, callerID string) error {
	enrollment, course, err := s.loadForDecision(ctx, enrollmentID, callerID)
	if err != nil {
		return err
	}

	if err := s.enrollmentRepo.Delete(ctx, enrollmentID); err != nil {
		return fmt.Errorf("failed to reject enrollment: %w", err)
	}

	s.notifyDecision(ctx, enrollment.UserID, course.Title, false)
	return nil
}

// ListPending returns the pending enrollments across all courses owned by
// the instructor, joined with student and course display data.
func (s *EnrollmentService) ListPending(ctx context.Context, instructorID string) ([]*models.PendingEnrollment, error) {
	courses, err := s.courseRepo.ListByInstructor(ctx, instructorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list instructor courses: %w", err)
	}
	if len(courses) == 0 {
		return []*models.PendingEnrollment{}, nil
	}

	courseByID := make(map[string]*models.Course, len(courses))
	courseIDs := make([]string, 0, len(courses))
	for _, course := range courses {
		courseByID[course.ID] = course
		courseIDs = append(courseIDs, course.ID)
	}

	enrollments, err := s.enrollmentRepo.ListPendingByCourses(ctx, courseIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending enrollments: %w", err)
	}

	pending := make([]*models.PendingEnrollment, 0, len(enrollments))
	for _, enrollment := range enrollments {
		entry := &models.PendingEnrollment{
			Enrollment: *enrollment,
			User:       models.EnrollmentUser{ID: enrollment.UserID, Name: "Unknown User"},
			Course:     models.EnrollmentCourse{ID: enrollment.CourseID, Title: "Unknown Course"},
		}
		if profile, err := s.profileRepo.Get(ctx, enrollment.UserID); err == nil {
			entry.User.Name = profile.Name
			entry.User.Email = profile.Email
		}
		if course, ok := courseByID[enrollment.CourseID]; ok {
			entry.Course.Title = course.Title
		}
		pending = append(pending, entry)
	}
	return pending, nil
}

// ListEnrolledCourses returns every course the user is enrolled in, joined
// with the enrollment's progress and status. A course that fails to load
// is reported as a placeholder rather than failing the whole listing.
func (s *EnrollmentService) ListEnrolledCourses(ctx context.Context, userID string) ([]*models.EnrolledCourse, error) {
	enrollments, err := s.enrollmentRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}

	enrolled := make([]*models.EnrolledCourse, 0, len(enrollments))
	for _, enrollment := range enrollments {
		entry := &models.EnrolledCourse{
			Progress:         enrollment.Progress,
			CompletedLessons: enrollment.CompletedLessons,
			EnrolledAt:       enrollment.EnrolledAt,
			Status:           enrollment.Status,
		}
		course, err := s.courseRepo.GetByID(ctx, enrollment.CourseID)
		if err != nil {
			s.logger.Warn("Failed to load enrolled course",
				zap.String("courseId", enrollment.CourseID), zap.Error(err))
			entry.Course = models.Course{ID: enrollment.CourseID, Title: "Unavailable Course"}
		} else {
			entry.Course = *course
		}
		enrolled = append(enrolled, entry)
	}
	return enrolled, nil
}

// loadForDecision loads the enrollment and its course and verifies the
// caller owns the course.
func (s *EnrollmentService) loadForDecision(ctx context.Context, enrollmentID, callerID string) (*models.Enrollment, *models.Course, error) {
	enrollment, err := s.enrollmentRepo.GetByID(ctx, enrollmentID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, nil, ErrEnrollmentNotFound
		}
		return nil, nil, fmt.Errorf("failed to load enrollment: %w", err)
	}

	course, err := s.courseRepo.GetByID(ctx, enrollment.CourseID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, nil, ErrCourseNotFound
		}
		return nil, nil, fmt.Errorf("failed to load course for enrollment decision: %w", err)
	}

	if course.InstructorID != callerID {
		return nil, nil, ErrForbidden
	}
	return enrollment, course, nil
}

func (s *EnrollmentService) notifyDecision(ctx context.Context, userID, courseTitle string, approved bool) {
	if s.notifier == nil {
		return
	}
	profile, err := s.profileRepo.Get(ctx, userID)
	if err != nil || profile.Email == "" {
		return
	}
	if err := s.notifier.EnrollmentDecision(ctx, profile.Email, courseTitle, approved); err != nil {
		s.logger.Warn("Failed to send enrollment decision notification",
			zap.String("userId", userID), zap.Error(err))
	}
}
