package models

import "time"

// Roles stored on profiles.
const (
	RoleStudent    = "student"
	RoleInstructor = "instructor"
)

// Education is one entry of a profile's education history.
type Education struct {
	Degree      string `json:"degree" firestore:"degree"`
	Institution string `json:"institution" firestore:"institution"`
	Year        string `json:"year,omitempty" firestore:"year,omitempty"`
}

// Profile represents a profile document in the "profiles" collection,
// keyed by the Firebase Auth UID.
type Profile struct {
	UserID     string      `json:"userId" firestore:"userId"`
	Name       string      `json:"name,omitempty" firestore:"name,omitempty"`
	Email      string      `json:"email,omitempty" firestore:"email,omitempty"`
	Role       string      `json:"role" firestore:"role"` // student | instructor
	Bio        string      `json:"bio,omitempty" firestore:"bio,omitempty"`
	Profession string      `json:"profession,omitempty" firestore:"profession,omitempty"`
	Website    string      `json:"website,omitempty" firestore:"website,omitempty"`
	Location   string      `json:"location,omitempty" firestore:"location,omitempty"`
	Education  []Education `json:"education,omitempty" firestore:"education,omitempty"`
	Interests  []string    `json:"interests,omitempty" firestore:"interests,omitempty"`
	CreatedAt  time.Time   `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt  time.Time   `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}
