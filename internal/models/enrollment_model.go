package models

import "time"

// Enrollment statuses. Rejected enrollments are hard-deleted rather than
// tombstoned, so these two values are the only ones that persist.
const (
	EnrollmentStatusPending  = "pending"
	EnrollmentStatusApproved = "approved"

	// EnrollmentStatusNone is reported to callers when no enrollment
	// document exists for a (user, course) pair. Never stored.
	EnrollmentStatusNone = "none"
)

// Enrollment represents an enrollment document in the "enrollments"
// collection. The document ID is the deterministic "<userId>_<courseId>"
// key, which makes the at-most-one-enrollment-per-pair invariant a store
// constraint instead of a query-before-insert convention.
type Enrollment struct {
	ID               string     `json:"id" firestore:"-"`
	UserID           string     `json:"userId" firestore:"userId"`
	CourseID         string     `json:"courseId" firestore:"courseId"`
	Status           string     `json:"status" firestore:"status"`
	Progress         int        `json:"progress" firestore:"progress"` // 0-100
	CompletedLessons []string   `json:"completedLessons" firestore:"completedLessons"`
	EnrolledAt       time.Time  `json:"enrolledAt" firestore:"enrolledAt,serverTimestamp"`
	ApprovedAt       *time.Time `json:"approvedAt,omitempty" firestore:"approvedAt,omitempty"`
}

// HasCompleted reports whether the lesson is already in the completed set.
func (e *Enrollment) HasCompleted(lessonID string) bool {
	for _, id := range e.CompletedLessons {
		if id == lessonID {
			return true
		}
	}
	return false
}

// PendingEnrollment is an enrollment joined with denormalized user and
// course display data for the instructor's approval queue.
type PendingEnrollment struct {
	Enrollment
	User   EnrollmentUser   `json:"user"`
	Course EnrollmentCourse `json:"course"`
}

// EnrollmentUser is the display snapshot of the enrolling student.
type EnrollmentUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// EnrollmentCourse is the display snapshot of the enrolled course.
type EnrollmentCourse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// EnrolledCourse is a course joined with the caller's enrollment state,
// returned by the "my courses" listing.
type EnrolledCourse struct {
	Course
	Progress         int       `json:"progress"`
	CompletedLessons []string  `json:"completedLessons"`
	EnrolledAt       time.Time `json:"enrolledAt"`
	Status           string    `json:"status"`
}
