package db

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"learnsphere-backend/internal/models"
)

const enrollmentsCollection = "enrollments"

// Firestore caps "in" filters at this many values per query.
const inQueryLimit = 10

type firestoreEnrollmentRepository struct {
	client *firestore.Client
}

// NewFirestoreEnrollmentRepository creates an EnrollmentRepository backed
// by the "enrollments" collection.
func NewFirestoreEnrollmentRepository(client *firestore.Client) EnrollmentRepository {
	return &firestoreEnrollmentRepository{client: client}
}

// Create inserts the enrollment under the deterministic pair ID. A second
// enrollment attempt for the same (user, course) fails with
// ErrAlreadyExists instead of silently producing a duplicate document.
func (r *firestoreEnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) (string, error) {
	docID := PairDocID(enrollment.UserID, enrollment.CourseID)
	enrollment.ID = docID
	if _, err := r.client.Collection(enrollmentsCollection).Doc(docID).Create(ctx, enrollment); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return "", fmt.Errorf("enrollment %q: %w", docID, ErrAlreadyExists)
		}
		return "", fmt.Errorf("failed to create enrollment %q: %w", docID, err)
	}
	return docID, nil
}

func (r *firestoreEnrollmentRepository) GetByID(ctx context.Context, enrollmentID string) (*models.Enrollment, error) {
	snap, err := r.client.Collection(enrollmentsCollection).Doc(enrollmentID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("enrollment %q: %w", enrollmentID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get enrollment %q: %w", enrollmentID, err)
	}
	return r.decode(snap)
}

func (r *firestoreEnrollmentRepository) GetByUserAndCourse(ctx context.Context, userID, courseID string) (*models.Enrollment, error) {
	return r.GetByID(ctx, PairDocID(userID, courseID))
}

func (r *firestoreEnrollmentRepository) ListByUser(ctx context.Context, userID string) ([]*models.Enrollment, error) {
	iter := r.client.Collection(enrollmentsCollection).
		Where("userId", "==", userID).
		Documents(ctx)
	return r.collect(iter)
}

// ListPendingByCourses returns all pending enrollments whose course is in
// courseIDs, chunking the query to stay under the in-filter limit.
func (r *firestoreEnrollmentRepository) ListPendingByCourses(ctx context.Context, courseIDs []string) ([]*models.Enrollment, error) {
	var pending []*models.Enrollment
	for start := 0; start < len(courseIDs); start += inQueryLimit {
		end := start + inQueryLimit
		if end > len(courseIDs) {
			end = len(courseIDs)
		}
		iter := r.client.Collection(enrollmentsCollection).
			Where("courseId", "in", courseIDs[start:end]).
			Where("status", "==", models.EnrollmentStatusPending).
			Documents(ctx)
		chunk, err := r.collect(iter)
		if err != nil {
			return nil, err
		}
		pending = append(pending, chunk...)
	}
	return pending, nil
}

// CountActiveByCourse counts the enrollments holding a seat: approved plus
// pending. Snapshots are iterated rather than aggregated; per-course
// enrollment counts stay small enough for this to be acceptable.
func (r *firestoreEnrollmentRepository) CountActiveByCourse(ctx context.Context, courseID string) (int, error) {
	iter := r.client.Collection(enrollmentsCollection).
		Where("courseId", "==", courseID).
		Where("status", "in", []string{models.EnrollmentStatusApproved, models.EnrollmentStatusPending}).
		Documents(ctx)
	defer iter.Stop()

	count := 0
	for {
		_, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("failed to count enrollments for course %q: %w", courseID, err)
		}
		count++
	}
	return count, nil
}

func (r *firestoreEnrollmentRepository) SetApproved(ctx context.Context, enrollmentID string, approvedAt time.Time) error {
	_, err := r.client.Collection(enrollmentsCollection).Doc(enrollmentID).Update(ctx, []firestore.Update{
		{Path: "status", Value: models.EnrollmentStatusApproved},
		{Path: "approvedAt", Value: approvedAt},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("enrollment %q: %w", enrollmentID, ErrNotFound)
		}
		return fmt.Errorf("failed to approve enrollment %q: %w", enrollmentID, err)
	}
	return nil
}

// RecordLessonCompletion appends the lesson via ArrayUnion, which keeps
// completedLessons a set no matter how many times a lesson is re-completed,
// and stores the recomputed progress in the same write.
func (r *firestoreEnrollmentRepository) RecordLessonCompletion(ctx context.Context, enrollmentID, lessonID string, progress int) error {
	_, err := r.client.Collection(enrollmentsCollection).Doc(enrollmentID).Update(ctx, []firestore.Update{
		{Path: "completedLessons", Value: firestore.ArrayUnion(lessonID)},
		{Path: "progress", Value: progress},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("enrollment %q: %w", enrollmentID, ErrNotFound)
		}
		return fmt.Errorf("failed to record lesson completion on enrollment %q: %w", enrollmentID, err)
	}
	return nil
}

func (r *firestoreEnrollmentRepository) Delete(ctx context.Context, enrollmentID string) error {
	if _, err := r.client.Collection(enrollmentsCollection).Doc(enrollmentID).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete enrollment %q: %w", enrollmentID, err)
	}
	return nil
}

func (r *firestoreEnrollmentRepository) decode(snap *firestore.DocumentSnapshot) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	if err := snap.DataTo(&enrollment); err != nil {
		return nil, fmt.Errorf("failed to decode enrollment %q: %w", snap.Ref.ID, err)
	}
	enrollment.ID = snap.Ref.ID
	return &enrollment, nil
}

func (r *firestoreEnrollmentRepository) collect(iter *firestore.DocumentIterator) ([]*models.Enrollment, error) {
	defer iter.Stop()

	var enrollments []*models.Enrollment
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate enrollments: %w", err)
		}
		enrollment, err := r.decode(doc)
		if err != nil {
			return nil, err
		}
		enrollments = append(enrollments, enrollment)
	}
	return enrollments, nil
}
