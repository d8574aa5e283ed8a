package core

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnsphere-backend/internal/models"
)

type progressFixture struct {
	enrollments *fakeEnrollmentRepo
	lessons     *fakeLessonRepo
	service     *ProgressService
}

func newProgressFixture(t *testing.T, lessonCount int, status string) (*progressFixture, []string) {
	t.Helper()
	f := &progressFixture{
		enrollments: newFakeEnrollmentRepo(),
		lessons:     newFakeLessonRepo(),
	}
	f.service = NewProgressService(f.enrollments, f.lessons)

	lessonIDs := make([]string, 0, lessonCount)
	for i := 1; i <= lessonCount; i++ {
		lesson := &models.Lesson{CourseID: "course-1", Title: fmt.Sprintf("Lesson %d", i), Order: i}
		id, err := f.lessons.Create(context.Background(), lesson)
		require.NoError(t, err)
		lessonIDs = append(lessonIDs, id)
	}

	_, err := f.enrollments.Create(context.Background(), &models.Enrollment{
		UserID:           "student-1",
		CourseID:         "course-1",
		Status:           status,
		CompletedLessons: []string{},
	})
	require.NoError(t, err)
	return f, lessonIDs
}

func TestMarkLessonCompleteRoundsProgress(t *testing.T) {
	f, lessonIDs := newProgressFixture(t, 3, models.EnrollmentStatusApproved)

	progress, err := f.service.MarkLessonComplete(context.Background(), "student-1", "course-1", lessonIDs[0])
	require.NoError(t, err)
	assert.Equal(t, 33, progress)

	progress, err = f.service.MarkLessonComplete(context.Background(), "student-1", "course-1", lessonIDs[1])
	require.NoError(t, err)
	assert.Equal(t, 67, progress)

	progress, err = f.service.MarkLessonComplete(context.Background(), "student-1", "course-1", lessonIDs[2])
	require.NoError(t, err)
	assert.Equal(t, 100, progress, "finishing the last lesson must land exactly on 100")
}

func TestMarkLessonCompleteIsIdempotent(t *testing.T) {
	f, lessonIDs := newProgressFixture(t, 2, models.EnrollmentStatusApproved)

	first, err := f.service.MarkLessonComplete(context.Background(), "student-1", "course-1", lessonIDs[0])
	require.NoError(t, err)
	again, err := f.service.MarkLessonComplete(context.Background(), "student-1", "course-1", lessonIDs[0])
	require.NoError(t, err)
	assert.Equal(t, first, again)

	info, err := f.service.Progress(context.Background(), "student-1", "course-1")
	require.NoError(t, err)
	assert.Equal(t, []string{lessonIDs[0]}, info.CompletedLessons, "completed set must not grow on repeat")
	assert.Equal(t, 50, info.Progress)
}

func TestMarkLessonCompleteRequiresEnrollment(t *testing.T) {
	f, lessonIDs := newProgressFixture(t, 1, models.EnrollmentStatusApproved)

	_, err := f.service.MarkLessonComplete(context.Background(), "stranger", "course-1", lessonIDs[0])
	assert.ErrorIs(t, err, ErrNotEnrolled)
}

func TestMarkLessonCompleteRequiresApproval(t *testing.T) {
	f, lessonIDs := newProgressFixture(t, 1, models.EnrollmentStatusPending)

	_, err := f.service.MarkLessonComplete(context.Background(), "student-1", "course-1", lessonIDs[0])
	assert.ErrorIs(t, err, ErrNotApproved)
}

func TestMarkLessonCompleteChecksCourseMembership(t *testing.T) {
	f, _ := newProgressFixture(t, 2, models.EnrollmentStatusApproved)

	foreign := &models.Lesson{CourseID: "course-2", Title: "Elsewhere", Order: 1}
	foreignID, err := f.lessons.Create(context.Background(), foreign)
	require.NoError(t, err)

	_, err = f.service.MarkLessonComplete(context.Background(), "student-1", "course-1", foreignID)
	assert.ErrorIs(t, err, ErrLessonNotFound)
}

func TestProgressForUnknownEnrollment(t *testing.T) {
	f, _ := newProgressFixture(t, 1, models.EnrollmentStatusApproved)

	_, err := f.service.Progress(context.Background(), "stranger", "course-1")
	assert.ErrorIs(t, err, ErrNotEnrolled)
}

func TestComputeProgress(t *testing.T) {
	tests := []struct {
		completed, total, want int
	}{
		{0, 0, 0},
		{3, 0, 0},
		{0, 10, 0},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13},
		{3, 3, 100},
		{5, 3, 100},
	}
	for _, tt := range tests {
		assert.Equalf(t, tt.want, computeProgress(tt.completed, tt.total),
			"computeProgress(%d, %d)", tt.completed, tt.total)
	}
}
