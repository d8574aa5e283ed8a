package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnsphere-backend/internal/models"
)

type reviewFixture struct {
	reviews     *fakeReviewRepo
	enrollments *fakeEnrollmentRepo
	service     *ReviewService
}

func newReviewFixture() *reviewFixture {
	f := &reviewFixture{
		reviews:     newFakeReviewRepo(),
		enrollments: newFakeEnrollmentRepo(),
	}
	f.service = NewReviewService(f.reviews, f.enrollments)
	return f
}

func (f *reviewFixture) enroll(t *testing.T, userID, courseID, status string) {
	t.Helper()
	_, err := f.enrollments.Create(context.Background(), &models.Enrollment{
		UserID: userID, CourseID: courseID, Status: status,
	})
	require.NoError(t, err)
}

func TestAddReview(t *testing.T) {
	f := newReviewFixture()
	f.enroll(t, "student-1", "course-1", models.EnrollmentStatusApproved)

	review, err := f.service.Add(context.Background(),
		ReviewAuthor{ID: "student-1", Name: "Ada", PhotoURL: "https://example.com/a.png"},
		"course-1", 5, "Great course")
	require.NoError(t, err)
	assert.Equal(t, "Ada", review.UserName)
	assert.Equal(t, 5, review.Rating)
	assert.NotEmpty(t, review.ID)
}

func TestAddReviewPendingEnrollmentSuffices(t *testing.T) {
	f := newReviewFixture()
	f.enroll(t, "student-1", "course-1", models.EnrollmentStatusPending)

	_, err := f.service.Add(context.Background(), ReviewAuthor{ID: "student-1"}, "course-1", 4, "")
	assert.NoError(t, err)
}

func TestAddReviewRequiresEnrollment(t *testing.T) {
	f := newReviewFixture()

	_, err := f.service.Add(context.Background(), ReviewAuthor{ID: "stranger"}, "course-1", 4, "")
	assert.ErrorIs(t, err, ErrNotEnrolled)
}

func TestAddReviewRejectsOutOfRangeRating(t *testing.T) {
	f := newReviewFixture()
	f.enroll(t, "student-1", "course-1", models.EnrollmentStatusApproved)

	for _, rating := range []int{0, -1, 6, 100} {
		_, err := f.service.Add(context.Background(), ReviewAuthor{ID: "student-1"}, "course-1", rating, "")
		assert.ErrorIsf(t, err, ErrInvalidRating, "rating %d", rating)
	}
}

func TestAddReviewOncePerUser(t *testing.T) {
	f := newReviewFixture()
	f.enroll(t, "student-1", "course-1", models.EnrollmentStatusApproved)

	_, err := f.service.Add(context.Background(), ReviewAuthor{ID: "student-1"}, "course-1", 5, "")
	require.NoError(t, err)

	_, err = f.service.Add(context.Background(), ReviewAuthor{ID: "student-1"}, "course-1", 3, "changed my mind")
	assert.ErrorIs(t, err, ErrAlreadyReviewed)

	stored, err := f.reviews.GetByUserAndCourse(context.Background(), "student-1", "course-1")
	require.NoError(t, err)
	assert.Equal(t, 5, stored.Rating, "the original review is unaffected")
}

func TestAddReviewAnonymousFallback(t *testing.T) {
	f := newReviewFixture()
	f.enroll(t, "student-1", "course-1", models.EnrollmentStatusApproved)

	review, err := f.service.Add(context.Background(), ReviewAuthor{ID: "student-1"}, "course-1", 4, "")
	require.NoError(t, err)
	assert.Equal(t, "Anonymous", review.UserName)
}

func TestListReviewsNewestFirst(t *testing.T) {
	f := newReviewFixture()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, userID := range []string{"u1", "u2", "u3"} {
		_, err := f.reviews.Create(context.Background(), &models.Review{
			CourseID:  "course-1",
			UserID:    userID,
			Rating:    4,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}

	reviews, err := f.service.List(context.Background(), "course-1")
	require.NoError(t, err)
	require.Len(t, reviews, 3)
	assert.Equal(t, "u3", reviews[0].UserID)
	assert.Equal(t, "u2", reviews[1].UserID)
	assert.Equal(t, "u1", reviews[2].UserID)
}

func TestSummaryAggregates(t *testing.T) {
	f := newReviewFixture()
	for userID, rating := range map[string]int{"u1": 5, "u2": 4, "u3": 3} {
		_, err := f.reviews.Create(context.Background(), &models.Review{
			CourseID: "course-1", UserID: userID, Rating: rating,
		})
		require.NoError(t, err)
	}

	summary, err := f.service.Summary(context.Background(), "course-1")
	require.NoError(t, err)
	assert.Equal(t, 4.0, summary.Average)
	assert.Equal(t, 3, summary.Count)
	assert.Equal(t, [5]int{1, 1, 1, 0, 0}, summary.Distribution, "buckets run five stars first")
}

func TestSummaryRoundsToOneDecimal(t *testing.T) {
	f := newReviewFixture()
	for userID, rating := range map[string]int{"u1": 5, "u2": 4, "u3": 4} {
		_, err := f.reviews.Create(context.Background(), &models.Review{
			CourseID: "course-1", UserID: userID, Rating: rating,
		})
		require.NoError(t, err)
	}

	summary, err := f.service.Summary(context.Background(), "course-1")
	require.NoError(t, err)
	assert.Equal(t, 4.3, summary.Average)
}

func TestSummaryEmptyCourse(t *testing.T) {
	f := newReviewFixture()

	summary, err := f.service.Summary(context.Background(), "course-1")
	require.NoError(t, err)
	assert.Equal(t, 0.0, summary.Average)
	assert.Equal(t, 0, summary.Count)
	assert.Equal(t, [5]int{}, summary.Distribution)
}

func TestDeleteReviewAuthorOnly(t *testing.T) {
	f := newReviewFixture()
	f.enroll(t, "student-1", "course-1", models.EnrollmentStatusApproved)
	review, err := f.service.Add(context.Background(), ReviewAuthor{ID: "student-1"}, "course-1", 5, "")
	require.NoError(t, err)

	err = f.service.Delete(context.Background(), review.ID, "someone-else")
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, f.service.Delete(context.Background(), review.ID, "student-1"))

	err = f.service.Delete(context.Background(), review.ID, "student-1")
	assert.ErrorIs(t, err, ErrReviewNotFound)
}
