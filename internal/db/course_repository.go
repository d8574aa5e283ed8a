package db

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"learnsphere-backend/internal/models"
)

const coursesCollection = "courses"

type firestoreCourseRepository struct {
	client *firestore.Client
}

// NewFirestoreCourseRepository creates a CourseRepository backed by the
// "courses" collection.
func NewFirestoreCourseRepository(client *firestore.Client) CourseRepository {
	return &firestoreCourseRepository{client: client}
}

func (r *firestoreCourseRepository) Create(ctx context.Context, course *models.Course) (string, error) {
	docRef := r.client.Collection(coursesCollection).NewDoc()
	course.ID = docRef.ID
	if _, err := docRef.Create(ctx, course); err != nil {
		return "", fmt.Errorf("failed to create course: %w", err)
	}
	return docRef.ID, nil
}

func (r *firestoreCourseRepository) GetByID(ctx context.Context, courseID string) (*models.Course, error) {
	snap, err := r.client.Collection(coursesCollection).Doc(courseID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("course %q: %w", courseID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get course %q: %w", courseID, err)
	}
	var course models.Course
	if err := snap.DataTo(&course); err != nil {
		return nil, fmt.Errorf("failed to decode course %q: %w", courseID, err)
	}
	course.ID = snap.Ref.ID
	return &course, nil
}

func (r *firestoreCourseRepository) ListPublished(ctx context.Context, filter CourseFilter) ([]*models.Course, error) {
	query := r.client.Collection(coursesCollection).Where("published", "==", true)
	if filter.Category != "" {
		query = query.Where("category", "==", filter.Category)
	}
	if filter.Level != "" {
		query = query.Where("level", "==", filter.Level)
	}
	return r.collect(ctx, query.Documents(ctx))
}

func (r *firestoreCourseRepository) ListByInstructor(ctx context.Context, instructorID string) ([]*models.Course, error) {
	query := r.client.Collection(coursesCollection).Where("instructorId", "==", instructorID)
	return r.collect(ctx, query.Documents(ctx))
}

func (r *firestoreCourseRepository) Update(ctx context.Context, course *models.Course) error {
	if course.ID == "" {
		return fmt.Errorf("course ID is required for update")
	}
	if _, err := r.client.Collection(coursesCollection).Doc(course.ID).Set(ctx, course); err != nil {
		return fmt.Errorf("failed to update course %q: %w", course.ID, err)
	}
	return nil
}

func (r *firestoreCourseRepository) Delete(ctx context.Context, courseID string) error {
	if _, err := r.client.Collection(coursesCollection).Doc(courseID).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete course %q: %w", courseID, err)
	}
	return nil
}

func (r *firestoreCourseRepository) IncrementEnrollments(ctx context.Context, courseID string, delta int) error {
	_, err := r.client.Collection(coursesCollection).Doc(courseID).Update(ctx, []firestore.Update{
		{Path: "enrollmentsCount", Value: firestore.Increment(delta)},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("course %q: %w", courseID, ErrNotFound)
		}
		return fmt.Errorf("failed to increment enrollments for course %q: %w", courseID, err)
	}
	return nil
}

func (r *firestoreCourseRepository) collect(ctx context.Context, iter *firestore.DocumentIterator) ([]*models.Course, error) {
	defer iter.Stop()

	var courses []*models.Course
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate courses: %w", err)
		}
		var course models.Course
		if err := doc.DataTo(&course); err != nil {
			return nil, fmt.Errorf("failed to decode course %q: %w", doc.Ref.ID, err)
		}
		course.ID = doc.Ref.ID
		courses = append(courses, &course)
	}
	return courses, nil
}
