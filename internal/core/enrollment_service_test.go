package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"learnsphere-backend/internal/models"
)

type enrollmentFixture struct {
	courses     *fakeCourseRepo
	enrollments *fakeEnrollmentRepo
	profiles    *fakeProfileRepo
	notifier    *fakeNotifier
	service     *EnrollmentService
}

func newEnrollmentFixture() *enrollmentFixture {
	f := &enrollmentFixture{
		courses:     newFakeCourseRepo(),
		enrollments: newFakeEnrollmentRepo(),
		profiles:    newFakeProfileRepo(),
		notifier:    &fakeNotifier{},
	}
	f.service = NewEnrollmentService(f.enrollments, f.courses, f.profiles, f.notifier, zap.NewNop())
	return f
}

func (f *enrollmentFixture) addCourse(t *testing.T, course *models.Course) *models.Course {
	t.Helper()
	_, err := f.courses.Create(context.Background(), course)
	require.NoError(t, err)
	return course
}

func TestEnrollOpenCourseApprovesImmediately(t *testing.T) {
	f := newEnrollmentFixture()
	course := f.addCourse(t, &models.Course{Title: "Go Basics", InstructorID: "instructor-1"})

	result, err := f.service.Enroll(context.Background(), "student-1", course.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentStatusApproved, result.Status)
	assert.False(t, result.AlreadyExisted)
	assert.Equal(t, 1, course.EnrollmentsCount)
}

func TestEnrollApprovalCourseStartsPending(t *testing.T) {
	f := newEnrollmentFixture()
	course := f.addCourse(t, &models.Course{Title: "Advanced Go", InstructorID: "instructor-1", RequiresApproval: true})

	result, err := f.service.Enroll(context.Background(), "student-1", course.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentStatusPending, result.Status)
	assert.Equal(t, 0, course.EnrollmentsCount, "pending enrollments must not count")

	status, err := f.service.Status(context.Background(), "student-1", course.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentStatusPending, status)
}

func TestEnrollIsIdempotent(t *testing.T) {
	f := newEnrollmentFixture()
	course := f.addCourse(t, &models.Course{Title: "Go Basics", InstructorID: "instructor-1"})

	first, err := f.service.Enroll(context.Background(), "student-1", course.ID)
	require.NoError(t, err)
	require.False(t, first.AlreadyExisted)

	second, err := f.service.Enroll(context.Background(), "student-1", course.ID)
	require.NoError(t, err)
	assert.True(t, second.AlreadyExisted)
	assert.Equal(t, models.EnrollmentStatusApproved, second.Status)
	assert.Equal(t, 1, course.EnrollmentsCount, "re-enrolling must not double count")
}

func TestEnrollUnknownCourse(t *testing.T) {
	f := newEnrollmentFixture()

	_, err := f.service.Enroll(context.Background(), "student-1", "missing")
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestEnrollRejectsWhenCapacityReached(t *testing.T) {
	f := newEnrollmentFixture()
	course := f.addCourse(t, &models.Course{Title: "Small Cohort", InstructorID: "instructor-1", EnrollmentLimit: 2})

	for _, user := range []string{"student-1", "student-2"} {
		_, err := f.service.Enroll(context.Background(), user, course.ID)
		require.NoError(t, err)
	}

	_, err := f.service.Enroll(context.Background(), "student-3", course.ID)
	assert.ErrorIs(t, err, ErrCapacityExceeded)

	// Already enrolled users still get their status back at full capacity.
	result, err := f.service.Enroll(context.Background(), "student-1", course.ID)
	require.NoError(t, err)
	assert.True(t, result.AlreadyExisted)
}

func TestEnrollPendingCountsAgainstCapacity(t *testing.T) {
	f := newEnrollmentFixture()
	course := f.addCourse(t, &models.Course{Title: "Gated", InstructorID: "instructor-1", RequiresApproval: true, EnrollmentLimit: 1})

	_, err := f.service.Enroll(context.Background(), "student-1", course.ID)
	require.NoError(t, err)

	_, err = f.service.Enroll(context.Background(), "student-2", course.ID)
	assert.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestEnrollZeroLimitMeansUnlimited(t *testing.T) {
	f := newEnrollmentFixture()
	course := f.addCourse(t, &models.Course{Title: "Open Course", InstructorID: "instructor-1"})

	for _, user := range []string{"a", "b", "c", "d", "e"} {
		_, err := f.service.Enroll(context.Background(), user, course.ID)
		require.NoError(t, err)
	}
	assert.Equal(t, 5, course.EnrollmentsCount)
}

func TestEnrollSurvivesCounterFailure(t *testing.T) {
	f := newEnrollmentFixture()
	course := f.addCourse(t, &models.Course{Title: "Go Basics", InstructorID: "instructor-1"})
	f.courses.incrementErr = errors.New("store unavailable")

	result, err := f.service.Enroll(context.Background(), "student-1", course.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentStatusApproved, result.Status)
}

func TestApproveTransitionsAndNotifies(t *testing.T) {
	f := newEnrollmentFixture()
	course := f.addCourse(t, &models.Course{Title: "Gated Course", InstructorID: "instructor-1", RequiresApproval: true})
	require.NoError(t, f.profiles.Save(context.Background(), &models.Profile{UserID: "student-1", Name: "Ada", Email: "ada@example.com"}))

	_, err := f.service.Enroll(context.Background(), "student-1", course.ID)
	require.NoError(t, err)

	enrollment, err := f.enrollments.GetByUserAndCourse(context.Background(), "student-1", course.ID)
	require.NoError(t, err)

	require.NoError(t, f.service.Approve(context.Background(), enrollment.ID, "instructor-1"))

	status, err := f.service.Status(context.Background(), "student-1", course.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentStatusApproved, status)
	assert.Equal(t, 1, course.EnrollmentsCount)
	require.Len(t, f.notifier.calls, 1)
	assert.Equal(t, "ada@example.com", f.notifier.calls[0].recipient)
	assert.True(t, f.notifier.calls[0].approved)
}

func TestApproveRequiresCourseOwnership(t *testing.T) {
	f := newEnrollmentFixture()
	course := f.addCourse(t, &models.Course{Title: "Gated Course", InstructorID: "instructor-1", RequiresApproval: true})

	_, err := f.service.Enroll(context.Background(), "student-1", course.ID)
	require.NoError(t, err)
	enrollment, err := f.enrollments.GetByUserAndCourse(context.Background(), "student-1", course.ID)
	require.NoError(t, err)

	err = f.service.Approve(context.Background(), enrollment.ID, "someone-else")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestRejectDeletesAndAllowsReenrollment(t *testing.T) {
	f := newEnrollmentFixture()
	course := f.addCourse(t, &models.Course{Title: "Gated Course", InstructorID: "instructor-1", RequiresApproval: true})

	_, err := f.service.Enroll(context.Background(), "student-1", course.ID)
	require.NoError(t, err)
	enrollment, err := f.enrollments.GetByUserAndCourse(context.Background(), "student-1", course.ID)
	require.NoError(t, err)

	require.NoError(t, f.service.Reject(context.Background(), enrollment.ID, "instructor-1"))

	status, err := f.service.Status(context.Background(), "student-1", course.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentStatusNone, status)

	// The pair key is free again, so the student may ask once more.
	result, err := f.service.Enroll(context.Background(), "student-1", course.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentStatusPending, result.Status)
	assert.False(t, result.AlreadyExisted)
}

func TestListPendingJoinsUserAndCourse(t *testing.T) {
	f := newEnrollmentFixture()
	gated := f.addCourse(t, &models.Course{Title: "Gated Course", InstructorID: "instructor-1", RequiresApproval: true})
	f.addCourse(t, &models.Course{Title: "Other Instructor", InstructorID: "instructor-2", RequiresApproval: true})
	require.NoError(t, f.profiles.Save(context.Background(), &models.Profile{UserID: "student-1", Name: "Ada", Email: "ada@example.com"}))

	_, err := f.service.Enroll(context.Background(), "student-1", gated.ID)
	require.NoError(t, err)
	_, err = f.service.Enroll(context.Background(), "student-2", gated.ID)
	require.NoError(t, err)

	pending, err := f.service.ListPending(context.Background(), "instructor-1")
	require.NoError(t, err)
	require.Len(t, pending, 2)

	byUser := make(map[string]*models.PendingEnrollment)
	for _, p := range pending {
		byUser[p.UserID] = p
	}
	assert.Equal(t, "Ada", byUser["student-1"].User.Name)
	assert.Equal(t, "ada@example.com", byUser["student-1"].User.Email)
	assert.Equal(t, "Gated Course", byUser["student-1"].Course.Title)
	assert.Equal(t, "Unknown User", byUser["student-2"].User.Name, "missing profile falls back to a placeholder")
}

func TestListPendingNoCourses(t *testing.T) {
	f := newEnrollmentFixture()

	pending, err := f.service.ListPending(context.Background(), "instructor-1")
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestListEnrolledCoursesJoinsProgress(t *testing.T) {
	f := newEnrollmentFixture()
	course := f.addCourse(t, &models.Course{Title: "Go Basics", InstructorID: "instructor-1"})

	_, err := f.service.Enroll(context.Background(), "student-1", course.ID)
	require.NoError(t, err)
	enrollment, err := f.enrollments.GetByUserAndCourse(context.Background(), "student-1", course.ID)
	require.NoError(t, err)
	require.NoError(t, f.enrollments.RecordLessonCompletion(context.Background(), enrollment.ID, "lesson-1", 50))

	enrolled, err := f.service.ListEnrolledCourses(context.Background(), "student-1")
	require.NoError(t, err)
	require.Len(t, enrolled, 1)
	assert.Equal(t, "Go Basics", enrolled[0].Title)
	assert.Equal(t, 50, enrolled[0].Progress)
	assert.Equal(t, []string{"lesson-1"}, enrolled[0].CompletedLessons)
}

func TestListEnrolledCoursesPlaceholderForMissingCourse(t *testing.T) {
	f := newEnrollmentFixture()
	course := f.addCourse(t, &models.Course{Title: "Vanishing", InstructorID: "instructor-1"})

	_, err := f.service.Enroll(context.Background(), "student-1", course.ID)
	require.NoError(t, err)
	require.NoError(t, f.courses.Delete(context.Background(), course.ID))

	enrolled, err := f.service.ListEnrolledCourses(context.Background(), "student-1")
	require.NoError(t, err)
	require.Len(t, enrolled, 1)
	assert.Equal(t, "Unavailable Course", enrolled[0].Title)
	assert.Equal(t, course.ID, enrolled[0].Course.ID)
}
