package core

import (
	"context"
	"errors"
	"fmt"

	"learnsphere-backend/internal/models"
)

// WizardStep identifies a state of the course creation wizard.
type WizardStep int

// Wizard states, in submission order.
const (
	StepDetails WizardStep = iota + 1
	StepInstructor
	StepLessons
	StepReview
)

func (s WizardStep) String() string {
	switch s {
	case StepDetails:
		return "details"
	case StepInstructor:
		return "instructor"
	case StepLessons:
		return "lessons"
	case StepReview:
		return "review"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// Wizard validation errors.
var (
	ErrWizardWrongStep      = errors.New("operation not valid in the current wizard step")
	ErrWizardTitleRequired  = errors.New("course title and description are required")
	ErrWizardNameRequired   = errors.New("instructor name is required")
	ErrWizardLessonInvalid  = errors.New("each lesson needs a title and an uploaded video")
	ErrWizardLessonsMissing = errors.New("at least one lesson is required")
	ErrWizardNotReviewed    = errors.New("draft can only be submitted from the review step")
)

// DraftDetails is the accumulator for the details step.
type DraftDetails struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Level            string   `json:"level"`
	Category         string   `json:"category"`
	Duration         string   `json:"duration"`
	Tags             []string `json:"tags"`
	Thumbnail        string   `json:"thumbnail"`
	RequiresApproval bool     `json:"requiresApproval"`
	EnrollmentLimit  int      `json:"enrollmentLimit"`
}

// DraftInstructor is the accumulator for the instructor step.
type DraftInstructor struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl"`
}

// DraftLesson is the accumulator for one lesson of the lessons step.
// VideoURL must point at an already-uploaded asset.
type DraftLesson struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	VideoURL    string `json:"videoUrl"`
	Duration    string `json:"duration"`
}

// CourseDraft is the typed accumulator the wizard fills step by step.
type CourseDraft struct {
	Details    DraftDetails
	Instructor DraftInstructor
	Lessons    []DraftLesson
}

// CourseWizard is an explicit state machine for multi-step course
// creation: details → instructor → lessons → review. Each transition
// validates the fields of the step it leaves, so an invalid draft can
// never reach submission.
type CourseWizard struct {
	step  WizardStep
	draft CourseDraft
}

// NewCourseWizard starts a wizard in the details step.
func NewCourseWizard() *CourseWizard {
	return &CourseWizard{step: StepDetails}
}

// Step returns the wizard's current state.
func (w *CourseWizard) Step() WizardStep {
	return w.step
}

// SetDetails records the details step and advances to the instructor step.
func (w *CourseWizard) SetDetails(details DraftDetails) error {
	if w.step != StepDetails {
		return ErrWizardWrongStep
	}
	if details.Title == "" || details.Description == "" {
		return ErrWizardTitleRequired
	}
	w.draft.Details = details
	w.step = StepInstructor
	return nil
}

// SetInstructor records the instructor step and advances to lessons.
func (w *CourseWizard) SetInstructor(instructor DraftInstructor) error {
	if w.step != StepInstructor {
		return ErrWizardWrongStep
	}
	if instructor.Name == "" {
		return ErrWizardNameRequired
	}
	w.draft.Instructor = instructor
	w.step = StepLessons
	return nil
}

// AddLesson appends a lesson while in the lessons step.
func (w *CourseWizard) AddLesson(lesson DraftLesson) error {
	if w.step != StepLessons {
		return ErrWizardWrongStep
	}
	if lesson.Title == "" || lesson.VideoURL == "" {
		return ErrWizardLessonInvalid
	}
	w.draft.Lessons = append(w.draft.Lessons, lesson)
	return nil
}

// FinishLessons closes the lessons step and advances to review.
func (w *CourseWizard) FinishLessons() error {
	if w.step != StepLessons {
		return ErrWizardWrongStep
	}
	if len(w.draft.Lessons) == 0 {
		return ErrWizardLessonsMissing
	}
	w.step = StepReview
	return nil
}

// Back returns to the previous step without discarding accumulated data,
// mirroring the back button of the form.
func (w *CourseWizard) Back() {
	if w.step > StepDetails {
		w.step--
	}
}

// Draft returns the accumulated draft. Only legal in the review step.
func (w *CourseWizard) Draft() (CourseDraft, error) {
	if w.step != StepReview {
		return CourseDraft{}, ErrWizardNotReviewed
	}
	return w.draft, nil
}

// SubmitDraft persists a reviewed draft: the course first, then its
// lessons in order. The operations are independent; if a lesson write
// fails, the course and earlier lessons remain and the error surfaces so
// the instructor can retry from the dashboard.
func (s *AuthoringService) SubmitDraft(ctx context.Context, instructorID, instructorEmail string, draft CourseDraft) (*models.Course, error) {
	course, err := s.CreateCourse(ctx, instructorID, instructorEmail, models.CreateCourseRequest{
		Title:            draft.Details.Title,
		Description:      draft.Details.Description,
		Level:            draft.Details.Level,
		Category:         draft.Details.Category,
		Tags:             draft.Details.Tags,
		Duration:         draft.Details.Duration,
		Thumbnail:        draft.Details.Thumbnail,
		InstructorName:   draft.Instructor.Name,
		InstructorAvatar: draft.Instructor.AvatarURL,
		RequiresApproval: draft.Details.RequiresApproval,
		EnrollmentLimit:  draft.Details.EnrollmentLimit,
	})
	if err != nil {
		return nil, err
	}

	for i, draftLesson := range draft.Lessons {
		lesson := &models.Lesson{
			CourseID:    course.ID,
			Title:       draftLesson.Title,
			Description: draftLesson.Description,
			VideoURL:    draftLesson.VideoURL,
			Duration:    draftLesson.Duration,
			Order:       i + 1,
		}
		if _, err := s.lessonRepo.Create(ctx, lesson); err != nil {
			return nil, fmt.Errorf("failed to create lesson %d of draft course %q: %w", i+1, course.ID, err)
		}
	}
	return course, nil
}
