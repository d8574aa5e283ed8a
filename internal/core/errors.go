package core

import "errors"

// Domain errors surfaced by the services. Handlers translate these into
// HTTP statuses; everything not listed here is treated as an upstream
// failure of the single action that triggered it.
var (
	ErrCourseNotFound     = errors.New("course not found")
	ErrLessonNotFound     = errors.New("lesson not found")
	ErrEnrollmentNotFound = errors.New("enrollment not found")
	ErrReviewNotFound     = errors.New("review not found")
	ErrProfileNotFound    = errors.New("profile not found")

	// ErrForbidden covers every ownership or role mismatch: approving
	// enrollments for someone else's course, editing a course you do not
	// own, deleting another user's review.
	ErrForbidden = errors.New("you do not have permission for this action")

	// ErrCapacityExceeded is returned when a course with a positive
	// enrollment limit has no seats left (approved + pending both count).
	ErrCapacityExceeded = errors.New("this course has reached its enrollment limit")

	// ErrNotApproved guards progress actions on enrollments still waiting
	// for instructor approval.
	ErrNotApproved = errors.New("enrollment is not approved yet")

	// ErrNotEnrolled is returned when an action requires an enrollment
	// record and none exists for the (user, course) pair.
	ErrNotEnrolled = errors.New("you must be enrolled in this course")

	ErrAlreadyReviewed = errors.New("you have already reviewed this course")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")

	// ErrCertificateNotEarned is returned by the certificate endpoint when
	// the caller's progress is below 100. The issuer itself does not check
	// this precondition; its callers must.
	ErrCertificateNotEarned = errors.New("course is not completed yet")
)
