package models

import "time"

// Course levels accepted by the catalog.
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

// Course represents a course document in the "courses" collection.
type Course struct {
	ID               string    `json:"id" firestore:"-"` // Document ID, auto-generated
	Title            string    `json:"title" firestore:"title"`
	Description      string    `json:"description" firestore:"description"`
	Level            string    `json:"level" firestore:"level"` // beginner | intermediate | advanced
	Category         string    `json:"category" firestore:"category"`
	Tags             []string  `json:"tags,omitempty" firestore:"tags,omitempty"` // lower-cased, de-duplicated
	Duration         string    `json:"duration,omitempty" firestore:"duration,omitempty"`
	InstructorID     string    `json:"instructorId" firestore:"instructorId"` // Firebase Auth UID of the owner
	InstructorName   string    `json:"instructorName,omitempty" firestore:"instructorName,omitempty"`
	InstructorAvatar string    `json:"instructorAvatar,omitempty" firestore:"instructorAvatar,omitempty"`
	InstructorEmail  string    `json:"instructorEmail,omitempty" firestore:"instructorEmail,omitempty"`
	Thumbnail        string    `json:"thumbnail,omitempty" firestore:"thumbnail,omitempty"`
	Published        bool      `json:"published" firestore:"published"`
	EnrollmentsCount int       `json:"enrollmentsCount" firestore:"enrollmentsCount"`
	RequiresApproval bool      `json:"requiresApproval" firestore:"requiresApproval"`
	EnrollmentLimit  int       `json:"enrollmentLimit" firestore:"enrollmentLimit"` // 0 = unlimited
	CreatedAt        time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt        time.Time `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}
