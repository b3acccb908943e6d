package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lojf/kindernet/internal/dashboard"
	"github.com/lojf/kindernet/internal/handlers"
	"github.com/lojf/kindernet/internal/report"
)

func Router(s *dashboard.Store, p *report.Projector) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", handlers.Health)

	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.AllowContentType("application/json"))

		// State
		api.Get("/state", handlers.State(s))
		api.Get("/settings", handlers.Settings(s))
		api.Patch("/settings", handlers.UpdateSettings(s))
		api.Post("/actions", handlers.Actions(s))

		// Platform
		api.Get("/overview", handlers.Overview(s))
		api.Get("/users", handlers.Users(s))
		api.Post("/kindergartens", handlers.CreateKindergarten(s))
		api.Post("/applications", handlers.SubmitApplication(s))
		api.Post("/applications/{id}/review", handlers.ReviewApplication(s))

		// Kindergarten structure
		api.Get("/kindergartens/{id}/overview", handlers.KindergartenOverview(s))
		api.Post("/kindergartens/{id}/branches", handlers.AddBranch(s))
		api.Post("/branches/{id}/groups", handlers.AddGroup(s))
		api.Post("/branches/{id}/teachers", handlers.AddTeacher(s))
		api.Put("/groups/{id}/teacher", handlers.AssignTeacher(s))
		api.Post("/groups/{id}/students", handlers.AddStudent(s))

		// Teachers & students
		api.Get("/teachers/{id}/summary", handlers.TeacherSummary(s))
		api.Get("/teachers/{id}/code.png", handlers.TeacherCodeQR(s))
		api.Get("/students/{id}/profile", handlers.StudentProfile(s))
		api.Post("/students/{id}/payments", handlers.RecordPayment(s))
		api.Post("/students/{id}/attendance", handlers.RecordAttendance(s))

		// Notifications
		api.Get("/notifications", handlers.Notifications(s))
		api.Post("/notifications", handlers.SendNotification(s))

		// Login (user selection, no credentials)
		api.Post("/login/teacher", handlers.LoginTeacher(s))
		api.Post("/login/parent", handlers.LoginParent(s))

		// Reports
		rep := handlers.Reports{Store: s, Projector: p}
		api.Get("/kindergartens/{id}/groups/load", rep.GroupLoad)
		api.Get("/kindergartens/{id}/attendance", rep.Attendance)
		api.Get("/kindergartens/{id}/roster.csv", rep.RosterCSV)
	})

	return r
}
