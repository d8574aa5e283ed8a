package core

import (
	"context"
	"fmt"
	"sync"
	"time"

	"learnsphere-backend/internal/db"
	"learnsphere-backend/internal/models"
)

// In-memory fakes for the storage interfaces. They reproduce the store
// behaviors the services lean on: pair-keyed uniqueness on enrollments,
// reviews and certificates, and atomic enrollment counter updates.

type fakeCourseRepo struct {
	mu      sync.Mutex
	courses map[string]*models.Course
	seq     int

	incrementErr error
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{courses: make(map[string]*models.Course)}
}

func (r *fakeCourseRepo) Create(_ context.Context, course *models.Course) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	course.ID = fmt.Sprintf("course-%d", r.seq)
	course.CreatedAt = time.Now().UTC()
	r.courses[course.ID] = course
	return course.ID, nil
}

func (r *fakeCourseRepo) GetByID(_ context.Context, courseID string) (*models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	course, ok := r.courses[courseID]
	if !ok {
		return nil, db.ErrNotFound
	}
	return course, nil
}

func (r *fakeCourseRepo) ListPublished(_ context.Context, filter db.CourseFilter) ([]*models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Course
	for _, course := range r.courses {
		if !course.Published {
			continue
		}
		if filter.Category != "" && course.Category != filter.Category {
			continue
		}
		if filter.Level != "" && course.Level != filter.Level {
			continue
		}
		out = append(out, course)
	}
	return out, nil
}

func (r *fakeCourseRepo) ListByInstructor(_ context.Context, instructorID string) ([]*models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Course
	for _, course := range r.courses {
		if course.InstructorID == instructorID {
			out = append(out, course)
		}
	}
	return out, nil
}

func (r *fakeCourseRepo) Update(_ context.Context, course *models.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.courses[course.ID]; !ok {
		return db.ErrNotFound
	}
	r.courses[course.ID] = course
	return nil
}

func (r *fakeCourseRepo) Delete(_ context.Context, courseID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.courses, courseID)
	return nil
}

func (r *fakeCourseRepo) IncrementEnrollments(_ context.Context, courseID string, delta int) error {
	if r.incrementErr != nil {
		return r.incrementErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	course, ok := r.courses[courseID]
	if !ok {
		return db.ErrNotFound
	}
	course.EnrollmentsCount += delta
	return nil
}

type fakeLessonRepo struct {
	mu      sync.Mutex
	lessons map[string]*models.Lesson
	seq     int
}

func newFakeLessonRepo() *fakeLessonRepo {
	return &fakeLessonRepo{lessons: make(map[string]*models.Lesson)}
}

func (r *fakeLessonRepo) Create(_ context.Context, lesson *models.Lesson) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	lesson.ID = fmt.Sprintf("lesson-%d", r.seq)
	r.lessons[lesson.ID] = lesson
	return lesson.ID, nil
}

func (r *fakeLessonRepo) GetByID(_ context.Context, lessonID string) (*models.Lesson, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lesson, ok := r.lessons[lessonID]
	if !ok {
		return nil, db.ErrNotFound
	}
	return lesson, nil
}

func (r *fakeLessonRepo) ListByCourse(_ context.Context, courseID string) ([]*models.Lesson, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Lesson
	for _, lesson := range r.lessons {
		if lesson.CourseID == courseID {
			out = append(out, lesson)
		}
	}
	return out, nil
}

func (r *fakeLessonRepo) Update(_ context.Context, lesson *models.Lesson) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.lessons[lesson.ID]; !ok {
		return db.ErrNotFound
	}
	r.lessons[lesson.ID] = lesson
	return nil
}

func (r *fakeLessonRepo) Delete(_ context.Context, lessonID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.lessons, lessonID)
	return nil
}

type fakeEnrollmentRepo struct {
	mu          sync.Mutex
	enrollments map[string]*models.Enrollment

	createErr error
}

func newFakeEnrollmentRepo() *fakeEnrollmentRepo {
	return &fakeEnrollmentRepo{enrollments: make(map[string]*models.Enrollment)}
}

func (r *fakeEnrollmentRepo) Create(_ context.Context, enrollment *models.Enrollment) (string, error) {
	if r.createErr != nil {
		return "", r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	id := db.PairDocID(enrollment.UserID, enrollment.CourseID)
	if _, ok := r.enrollments[id]; ok {
		return "", db.ErrAlreadyExists
	}
	enrollment.ID = id
	enrollment.EnrolledAt = time.Now().UTC()
	r.enrollments[id] = enrollment
	return id, nil
}

func (r *fakeEnrollmentRepo) GetByID(_ context.Context, enrollmentID string) (*models.Enrollment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	enrollment, ok := r.enrollments[enrollmentID]
	if !ok {
		return nil, db.ErrNotFound
	}
	return enrollment, nil
}

func (r *fakeEnrollmentRepo) GetByUserAndCourse(_ context.Context, userID, courseID string) (*models.Enrollment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	enrollment, ok := r.enrollments[db.PairDocID(userID, courseID)]
	if !ok {
		return nil, db.ErrNotFound
	}
	return enrollment, nil
}

func (r *fakeEnrollmentRepo) ListByUser(_ context.Context, userID string) ([]*models.Enrollment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Enrollment
	for _, enrollment := range r.enrollments {
		if enrollment.UserID == userID {
			out = append(out, enrollment)
		}
	}
	return out, nil
}

func (r *fakeEnrollmentRepo) ListPendingByCourses(_ context.Context, courseIDs []string) ([]*models.Enrollment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	wanted := make(map[string]bool, len(courseIDs))
	for _, id := range courseIDs {
		wanted[id] = true
	}
	var out []*models.Enrollment
	for _, enrollment := range r.enrollments {
		if enrollment.Status == models.EnrollmentStatusPending && wanted[enrollment.CourseID] {
			out = append(out, enrollment)
		}
	}
	return out, nil
}

func (r *fakeEnrollmentRepo) CountActiveByCourse(_ context.Context, courseID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, enrollment := range r.enrollments {
		if enrollment.CourseID == courseID {
			count++
		}
	}
	return count, nil
}

func (r *fakeEnrollmentRepo) SetApproved(_ context.Context, enrollmentID string, approvedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	enrollment, ok := r.enrollments[enrollmentID]
	if !ok {
		return db.ErrNotFound
	}
	enrollment.Status = models.EnrollmentStatusApproved
	enrollment.ApprovedAt = &approvedAt
	return nil
}

func (r *fakeEnrollmentRepo) RecordLessonCompletion(_ context.Context, enrollmentID, lessonID string, progress int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	enrollment, ok := r.enrollments[enrollmentID]
	if !ok {
		return db.ErrNotFound
	}
	if !enrollment.HasCompleted(lessonID) {
		enrollment.CompletedLessons = append(enrollment.CompletedLessons, lessonID)
	}
	enrollment.Progress = progress
	return nil
}

func (r *fakeEnrollmentRepo) Delete(_ context.Context, enrollmentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.enrollments, enrollmentID)
	return nil
}

type fakeReviewRepo struct {
	mu      sync.Mutex
	reviews map[string]*models.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[string]*models.Review)}
}

func (r *fakeReviewRepo) Create(_ context.Context, review *models.Review) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := db.PairDocID(review.UserID, review.CourseID)
	if _, ok := r.reviews[id]; ok {
		return "", db.ErrAlreadyExists
	}
	review.ID = id
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now().UTC()
	}
	r.reviews[id] = review
	return id, nil
}

func (r *fakeReviewRepo) GetByID(_ context.Context, reviewID string) (*models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	review, ok := r.reviews[reviewID]
	if !ok {
		return nil, db.ErrNotFound
	}
	return review, nil
}

func (r *fakeReviewRepo) GetByUserAndCourse(_ context.Context, userID, courseID string) (*models.Review, error) {
	return r.GetByID(context.Background(), db.PairDocID(userID, courseID))
}

func (r *fakeReviewRepo) ListByCourse(_ context.Context, courseID string) ([]*models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Review
	for _, review := range r.reviews {
		if review.CourseID == courseID {
			out = append(out, review)
		}
	}
	return out, nil
}

func (r *fakeReviewRepo) Delete(_ context.Context, reviewID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.reviews, reviewID)
	return nil
}

type fakeCertificateRepo struct {
	mu           sync.Mutex
	certificates map[string]*models.Certificate

	// preemptOnCreate simulates a concurrent winner: the first Create call
	// stores this certificate before failing with ErrAlreadyExists.
	preemptOnCreate *models.Certificate
}

func newFakeCertificateRepo() *fakeCertificateRepo {
	return &fakeCertificateRepo{certificates: make(map[string]*models.Certificate)}
}

func (r *fakeCertificateRepo) Create(_ context.Context, certificate *models.Certificate) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := db.PairDocID(certificate.UserID, certificate.CourseID)
	if r.preemptOnCreate != nil {
		winner := r.preemptOnCreate
		r.preemptOnCreate = nil
		winner.ID = id
		r.certificates[id] = winner
		return "", db.ErrAlreadyExists
	}
	if _, ok := r.certificates[id]; ok {
		return "", db.ErrAlreadyExists
	}
	certificate.ID = id
	certificate.IssueDate = time.Now().UTC()
	r.certificates[id] = certificate
	return id, nil
}

func (r *fakeCertificateRepo) GetByUserAndCourse(_ context.Context, userID, courseID string) (*models.Certificate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	certificate, ok := r.certificates[db.PairDocID(userID, courseID)]
	if !ok {
		return nil, db.ErrNotFound
	}
	return certificate, nil
}

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]*models.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[string]*models.Profile)}
}

func (r *fakeProfileRepo) Get(_ context.Context, userID string) (*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	profile, ok := r.profiles[userID]
	if !ok {
		return nil, db.ErrNotFound
	}
	return profile, nil
}

func (r *fakeProfileRepo) Save(_ context.Context, profile *models.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[profile.UserID] = profile
	return nil
}

// fakeNotifier records enrollment decision notifications.
type fakeNotifier struct {
	mu    sync.Mutex
	calls []notification
}

type notification struct {
	recipient   string
	courseTitle string
	approved    bool
}

func (n *fakeNotifier) EnrollmentDecision(_ context.Context, recipient, courseTitle string, approved bool) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, notification{recipient: recipient, courseTitle: courseTitle, approved: approved})
	return nil
}
