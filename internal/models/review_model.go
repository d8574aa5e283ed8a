package models

import "time"

// Review represents a review document in the "reviews" collection.
// UserName and UserPhotoURL are denormalized snapshots taken at write time.
// The document ID is "<userId>_<courseId>", enforcing at most one review
// per (user, course) pair in the store itself.
type Review struct {
	ID           string    `json:"id" firestore:"-"`
	CourseID     string    `json:"courseId" firestore:"courseId"`
	UserID       string    `json:"userId" firestore:"userId"`
	UserName     string    `json:"userName" firestore:"userName"`
	UserPhotoURL string    `json:"userPhotoURL,omitempty" firestore:"userPhotoURL,omitempty"`
	Rating       int       `json:"rating" firestore:"rating"` // 1-5
	Comment      string    `json:"comment,omitempty" firestore:"comment,omitempty"`
	CreatedAt    time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
}

// RatingSummary aggregates the reviews of a course.
// Distribution holds bucket counts ordered 5 stars first, matching how the
// rating bars are rendered. Ratings outside [1,5] are dropped from the
// buckets by policy, not treated as errors.
type RatingSummary struct {
	Average      float64 `json:"average"` // rounded to 1 decimal, 0 when Count == 0
	Count        int     `json:"count"`
	Distribution [5]int  `json:"distribution"`
}
