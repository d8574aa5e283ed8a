package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"learnsphere-backend/internal/middleware"
)

// Handlers bundles every route handler the server exposes. Upload may be
// nil when no asset host is configured; its routes are then not mounted.
type Handlers struct {
	Course      *CourseHandler
	Enrollment  *EnrollmentHandler
	Progress    *ProgressHandler
	Certificate *CertificateHandler
	Review      *ReviewHandler
	Instructor  *InstructorHandler
	Profile     *ProfileHandler
	Upload      *UploadHandler
}

// SetupRoutes mounts the API under /api/v1 plus a public /health probe.
// Global middleware (request logging, recovery, CORS) is expected to be
// applied to the engine before this is called.
func SetupRoutes(router *gin.Engine, authMW *middleware.AuthMiddleware, h Handlers, logger *zap.Logger) {
	apiV1 := router.Group("/api/v1")
	{
		// Catalog reads are public; everything a learner does to a course
		// requires a verified identity.
		courses := apiV1.Group("/courses")
		{
			courses.GET("", h.Course.ListCourses)
			courses.GET("/:courseId", h.Course.GetCourse)
			courses.GET("/:courseId/lessons", h.Course.ListLessons)
			courses.GET("/:courseId/reviews", h.Course.ListReviews)
			courses.GET("/:courseId/rating", h.Course.GetRating)

			courses.GET("/:courseId/access", authMW.VerifyToken(), h.Course.GetAccess)
			courses.POST("/:courseId/enroll", authMW.VerifyToken(), h.Enrollment.Enroll)
			courses.GET("/:courseId/enrollment", authMW.VerifyToken(), h.Enrollment.GetStatus)
			courses.POST("/:courseId/lessons/:lessonId/complete", authMW.VerifyToken(), h.Progress.CompleteLesson)
			courses.GET("/:courseId/progress", authMW.VerifyToken(), h.Progress.GetProgress)
			courses.GET("/:courseId/certificate", authMW.VerifyToken(), h.Certificate.GetCertificate)
			courses.POST("/:courseId/reviews", authMW.VerifyToken(), h.Review.AddReview)
		}

		apiV1.DELETE("/reviews/:reviewId", authMW.VerifyToken(), h.Review.DeleteReview)

		me := apiV1.Group("/me", authMW.VerifyToken())
		{
			me.GET("/courses", h.Enrollment.ListMyCourses)
		}

		profile := apiV1.Group("/profile", authMW.VerifyToken())
		{
			profile.GET("", h.Profile.GetProfile)
			profile.PUT("", h.Profile.UpdateProfile)
			profile.GET("/role", h.Profile.GetRole)
		}

		instructor := apiV1.Group("/instructor", authMW.VerifyToken())
		{
			instructor.POST("/courses", h.Instructor.CreateCourse)
			instructor.POST("/courses/wizard", h.Instructor.SubmitWizard)
			instructor.GET("/courses", h.Instructor.ListCourses)
			instructor.GET("/courses/:courseId", h.Instructor.GetCourse)
			instructor.PUT("/courses/:courseId", h.Instructor.UpdateCourse)
			instructor.PATCH("/courses/:courseId/publish", h.Instructor.SetPublished)
			instructor.DELETE("/courses/:courseId", h.Instructor.DeleteCourse)

			instructor.POST("/courses/:courseId/lessons", h.Instructor.AddLesson)
			instructor.PUT("/lessons/:lessonId", h.Instructor.UpdateLesson)
			instructor.DELETE("/lessons/:lessonId", h.Instructor.DeleteLesson)

			instructor.GET("/enrollments/pending", h.Enrollment.ListPending)
			instructor.PATCH("/enrollments/:enrollmentId/approve", h.Enrollment.Approve)
			instructor.PATCH("/enrollments/:enrollmentId/reject", h.Enrollment.Reject)
		}

		if h.Upload != nil {
			uploads := apiV1.Group("/uploads", authMW.VerifyToken())
			{
				uploads.POST("/video", h.Upload.UploadVideo)
				uploads.POST("/image", h.Upload.UploadImage)
			}
		} else {
			logger.Warn("Upload routes not mounted: no asset host configured")
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP"})
	})

	logger.Info("API routes configured under /api/v1")
}
