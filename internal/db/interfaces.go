package db

import (
	"context"
	"time"

	"learnsphere-backend/internal/models"
)

// CourseFilter narrows course listings. Empty fields are ignored.
type CourseFilter struct {
	Category string
	Level    string
}

// CourseRepository defines storage operations for course documents.
type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) (string, error)
	GetByID(ctx context.Context, courseID string) (*models.Course, error)
	ListPublished(ctx context.Context, filter CourseFilter) ([]*models.Course, error)
	ListByInstructor(ctx context.Context, instructorID string) ([]*models.Course, error)
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, courseID string) error
	// IncrementEnrollments atomically adjusts enrollmentsCount by delta.
	IncrementEnrollments(ctx context.Context, courseID string, delta int) error
}

// LessonRepository defines storage operations for lesson documents.
type LessonRepository interface {
	Create(ctx context.Context, lesson *models.Lesson) (string, error)
	GetByID(ctx context.Context, lessonID string) (*models.Lesson, error)
	ListByCourse(ctx context.Context, courseID string) ([]*models.Lesson, error)
	Update(ctx context.Context, lesson *models.Lesson) error
	Delete(ctx context.Context, lessonID string) error
}

// EnrollmentRepository defines storage operations for enrollment documents.
// Creation uses the deterministic "<userId>_<courseId>" document ID and
// fails with ErrAlreadyExists when the pair is already enrolled.
type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *models.Enrollment) (string, error)
	GetByID(ctx context.Context, enrollmentID string) (*models.Enrollment, error)
	GetByUserAndCourse(ctx context.Context, userID, courseID string) (*models.Enrollment, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Enrollment, error)
	ListPendingByCourses(ctx context.Context, courseIDs []string) ([]*models.Enrollment, error)
	// CountActiveByCourse counts approved plus pending enrollments, the
	// population that consumes an enrollment limit.
	CountActiveByCourse(ctx context.Context, courseID string) (int, error)
	SetApproved(ctx context.Context, enrollmentID string, approvedAt time.Time) error
	// RecordLessonCompletion adds the lesson to the completed set
	// (set semantics, duplicates ignored) and stores the new progress.
	RecordLessonCompletion(ctx context.Context, enrollmentID, lessonID string, progress int) error
	Delete(ctx context.Context, enrollmentID string) error
}

// ReviewRepository defines storage operations for review documents.
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) (string, error)
	GetByID(ctx context.Context, reviewID string) (*models.Review, error)
	GetByUserAndCourse(ctx context.Context, userID, courseID string) (*models.Review, error)
	ListByCourse(ctx context.Context, courseID string) ([]*models.Review, error)
	Delete(ctx context.Context, reviewID string) error
}

// CertificateRepository defines storage operations for certificate
// documents, keyed by the "<userId>_<courseId>" pair.
type CertificateRepository interface {
	Create(ctx context.Context, certificate *models.Certificate) (string, error)
	GetByUserAndCourse(ctx context.Context, userID, courseID string) (*models.Certificate, error)
}

// ProfileRepository defines storage operations for profile documents,
// keyed by the Firebase Auth UID.
type ProfileRepository interface {
	Get(ctx context.Context, userID string) (*models.Profile, error)
	Save(ctx context.Context, profile *models.Profile) error
}

// PairDocID builds the deterministic document ID used by the enrollments,
// reviews and certificates collections to enforce per-(user, course)
// uniqueness in the store.
func PairDocID(userID, courseID string) string {
	return userID + "_" + courseID
}
