package models

import "time"

// Lesson represents a lesson document in the "lessons" collection.
// Lessons reference their course through CourseID; ordering within a course
// is the caller-maintained 1-based Order field.
type Lesson struct {
	ID          string    `json:"id" firestore:"-"` // Document ID, auto-generated
	CourseID    string    `json:"courseId" firestore:"courseId"`
	Title       string    `json:"title" firestore:"title"`
	Description string    `json:"description,omitempty" firestore:"description,omitempty"`
	VideoURL    string    `json:"videoUrl" firestore:"videoUrl"`
	Duration    string    `json:"duration,omitempty" firestore:"duration,omitempty"` // free text, e.g. "12:34"
	Order       int       `json:"order" firestore:"order"`
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt   time.Time `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}
