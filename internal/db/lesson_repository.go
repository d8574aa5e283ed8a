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

const lessonsCollection = "lessons"

type firestoreLessonRepository struct {
	client *firestore.Client
}

// NewFirestoreLessonRepository creates a LessonRepository backed by the
// "lessons" collection.
func NewFirestoreLessonRepository(client *firestore.Client) LessonRepository {
	return &firestoreLessonRepository{client: client}
}

func (r *firestoreLessonRepository) Create(ctx context.Context, lesson *models.Lesson) (string, error) {
	docRef := r.client.Collection(lessonsCollection).NewDoc()
	lesson.ID = docRef.ID
	if _, err := docRef.Create(ctx, lesson); err != nil {
		return "", fmt.Errorf("failed to create lesson: %w", err)
	}
	return docRef.ID, nil
}

func (r *firestoreLessonRepository) GetByID(ctx context.Context, lessonID string) (*models.Lesson, error) {
	snap, err := r.client.Collection(lessonsCollection).Doc(lessonID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("lesson %q: %w", lessonID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get lesson %q: %w", lessonID, err)
	}
	var lesson models.Lesson
	if err := snap.DataTo(&lesson); err != nil {
		return nil, fmt.Errorf("failed to decode lesson %q: %w", lessonID, err)
	}
	lesson.ID = snap.Ref.ID
	return &lesson, nil
}

// ListByCourse returns the course's lessons ordered by their position.
func (r *firestoreLessonRepository) ListByCourse(ctx context.Context, courseID string) ([]*models.Lesson, error) {
	iter := r.client.Collection(lessonsCollection).
		Where("courseId", "==", courseID).
		OrderBy("order", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var lessons []*models.Lesson
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate lessons for course %q: %w", courseID, err)
		}
		var lesson models.Lesson
		if err := doc.DataTo(&lesson); err != nil {
			return nil, fmt.Errorf("failed to decode lesson %q: %w", doc.Ref.ID, err)
		}
		lesson.ID = doc.Ref.ID
		lessons = append(lessons, &lesson)
	}
	return lessons, nil
}

func (r *firestoreLessonRepository) Update(ctx context.Context, lesson *models.Lesson) error {
	if lesson.ID == "" {
		return fmt.Errorf("lesson ID is required for update")
	}
	if _, err := r.client.Collection(lessonsCollection).Doc(lesson.ID).Set(ctx, lesson); err != nil {
		return fmt.Errorf("failed to update lesson %q: %w", lesson.ID, err)
	}
	return nil
}

func (r *firestoreLessonRepository) Delete(ctx context.Context, lessonID string) error {
	if _, err := r.client.Collection(lessonsCollection).Doc(lessonID).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete lesson %q: %w", lessonID, err)
	}
	return nil
}
