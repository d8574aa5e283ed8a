package models

// CreateCourseRequest is the request body for creating a draft course.
// Media URLs are produced by the upload endpoints before this call.
type CreateCourseRequest struct {
	Title            string   `json:"title" binding:"required"`
	Description      string   `json:"description" binding:"required"`
	Level            string   `json:"level" binding:"omitempty,oneof=beginner intermediate advanced"`
	Category         string   `json:"category"`
	Tags             []string `json:"tags"`
	Duration         string   `json:"duration"`
	InstructorName   string   `json:"instructorName"`
	InstructorAvatar string   `json:"instructorAvatar"`
	Thumbnail        string   `json:"thumbnail"`
	RequiresApproval bool     `json:"requiresApproval"`
	EnrollmentLimit  int      `json:"enrollmentLimit" binding:"omitempty,min=0"`
}

// UpdateCourseRequest is the request body for editing a course.
// Pointer fields distinguish "not provided" from zero values.
type UpdateCourseRequest struct {
	Title            *string   `json:"title"`
	Description      *string   `json:"description"`
	Level            *string   `json:"level" binding:"omitempty,oneof=beginner intermediate advanced"`
	Category         *string   `json:"category"`
	Tags             *[]string `json:"tags"`
	Duration         *string   `json:"duration"`
	InstructorName   *string   `json:"instructorName"`
	InstructorAvatar *string   `json:"instructorAvatar"`
	Thumbnail        *string   `json:"thumbnail"`
	RequiresApproval *bool     `json:"requiresApproval"`
	EnrollmentLimit  *int      `json:"enrollmentLimit" binding:"omitempty,min=0"`
}

// CreateLessonRequest is the request body for appending a lesson to a
// course. The video must already be uploaded; only its URL travels here.
type CreateLessonRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	VideoURL    string `json:"videoUrl" binding:"required,url"`
	Duration    string `json:"duration"`
	Order       int    `json:"order" binding:"required,min=1"`
}

// UpdateLessonRequest is the request body for editing a lesson.
type UpdateLessonRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	VideoURL    *string `json:"videoUrl" binding:"omitempty,url"`
	Duration    *string `json:"duration"`
	Order       *int    `json:"order" binding:"omitempty,min=1"`
}

// AddReviewRequest is the request body for reviewing a course.
type AddReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// UpdateProfileRequest is the request body for profile updates.
type UpdateProfileRequest struct {
	Name       *string      `json:"name"`
	Bio        *string      `json:"bio"`
	Profession *string      `json:"profession"`
	Website    *string      `json:"website"`
	Location   *string      `json:"location"`
	Education  *[]Education `json:"education"`
	Interests  *[]string    `json:"interests"`
}

// EnrollResult is returned by the enroll operation. Status reflects the
// enrollment's state after the call, whether it was just created or
// already existed.
type EnrollResult struct {
	Status         string `json:"status"` // pending | approved
	AlreadyExisted bool   `json:"alreadyExisted"`
}

// ProgressInfo is the per-user completion state of a course.
type ProgressInfo struct {
	Progress         int      `json:"progress"`
	CompletedLessons []string `json:"completedLessons"`
}
