package app

import (
	"net/http"
	"time"

	"github.com/edusphere/elearning-platform/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/riandyrn/otelchi"
)

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)

	r.Use(middleware.Logger)
	r.Use(middleware.RequestID)
	r.Use(otelchi.Middleware("elearning-api", otelchi.WithChiRoutes(r)))
	r.Use(app.requestLogger)
	r.Use(app.recoverPanic)

	// The webhook must see the raw request body, so it stays outside the
	// session middleware.
	r.Post("/payments/webhook", app.PaymentWebhookHandler)

	r.Group(func(r chi.Router) {
		r.Use(app.sessionManager.LoadAndSave)

		r.Get("/health", app.GetHealth)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", app.RegisterUser)
			r.Post("/activate", app.ActivateUser)
			r.Post("/login", app.Login)
			r.Post("/logout", app.Logout)

			r.With(app.requireAuthentication).Get("/me", app.GetCurrentUser)
			r.With(app.requireAuthentication).Patch("/me", app.UpdateCurrentUser)
		})

		r.With(app.requireAuthentication, app.requireRole(domain.RoleStudent)).
			Route("/student", func(r chi.Router) {
				r.Get("/profile", app.GetStudentProfile)
				r.Patch("/profile", app.UpdateStudentProfile)
				r.Get("/dashboard", app.GetStudentDashboard)
			})

		r.With(app.requireAuthentication, app.requireRole(domain.RoleTeacher)).
			Route("/teacher", func(r chi.Router) {
				r.Get("/profile", app.GetTeacherProfile)
				r.Patch("/profile", app.UpdateTeacherProfile)
				r.Get("/courses", app.GetTeacherCourses)
				r.Get("/earnings", app.GetTeacherEarnings)
				r.Get("/subscription", app.GetTeacherSubscription)
				r.Post("/verification-document", app.UploadVerificationDocument)
			})

		r.Route("/courses", func(r chi.Router) {
			r.Get("/", app.GetCourses)
			r.Get("/{courseId}", app.GetCourse)

			r.Group(func(r chi.Router) {
				r.Use(app.requireAuthentication, app.requireRole(domain.RoleTeacher, domain.RoleAdmin))

				r.Post("/", app.CreateCourse)
				r.Patch("/{courseId}", app.UpdateCourse)
				r.Delete("/{courseId}", app.DeleteCourse)
				r.Post("/{courseId}/publish", app.PublishCourse)
			})
		})

		r.With(app.requireAuthentication, app.requireRole(domain.RoleStudent)).
			Route("/enrollments", func(r chi.Router) {
				r.Post("/", app.CreateEnrollment)
				r.Get("/", app.GetMyEnrollments)
				r.Get("/status/{courseId}", app.GetEnrollmentStatus)
				r.Patch("/{enrollmentId}/progress", app.UpdateEnrollmentProgress)
				r.Post("/{enrollmentId}/complete", app.CompleteEnrollment)
			})

		r.Route("/reviews", func(r chi.Router) {
			r.Get("/", app.GetReviews)

			r.Group(func(r chi.Router) {
				r.Use(app.requireAuthentication, app.requireRole(domain.RoleStudent))

				r.Post("/", app.CreateReview)
				r.Patch("/{reviewId}", app.UpdateReview)
				r.Delete("/{reviewId}", app.DeleteReview)
			})
		})

		r.With(app.requireAuthentication).Route("/payments", func(r chi.Router) {
			r.With(app.requireRole(domain.RoleStudent)).Post("/create-order", app.CreateCoursePaymentOrder)
			r.With(app.requireRole(domain.RoleStudent)).Post("/verify", app.VerifyCoursePayment)
			r.With(app.requireRole(domain.RoleTeacher)).Post("/subscription/create-order", app.CreateSubscriptionOrder)
			r.With(app.requireRole(domain.RoleTeacher)).Post("/subscription/verify", app.VerifySubscriptionPayment)
			r.Get("/history", app.GetPaymentHistory)
		})

		r.Route("/media", func(r chi.Router) {
			r.Get("/stream/{filename}", app.StreamVideo)
			r.Get("/info/{kind}/{filename}", app.GetMediaInfo)

			r.Group(func(r chi.Router) {
				r.Use(app.requireAuthentication)

				r.Post("/upload", app.UploadMedia)
				r.Delete("/{kind}/{filename}", app.DeleteMedia)
			})
		})

		r.With(app.requireAuthentication, app.requireRole(domain.RoleAdmin)).
			Route("/admin", func(r chi.Router) {
				r.Get("/stats", app.GetAdminDashboardStats)
				r.Get("/system", app.GetAdminSystemStats)
				r.Get("/courses", app.GetAdminCourses)
				r.Get("/teachers", app.GetAdminTeachers)
				r.Get("/students", app.GetAdminStudents)
				r.Get("/payments", app.GetAdminPayments)
				r.Get("/messages", app.GetContactMessages)
				r.Patch("/messages/{messageId}/read", app.MarkContactMessageRead)
			})

		r.With(app.rateLimit(5, time.Hour)).Post("/contact", app.CreateContactMessage)
	})

	return r
}
