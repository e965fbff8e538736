package main

import (
	"net/http"

	"github.com/gorilla/mux"

	"schoolPortal/internal/handlers"
	"schoolPortal/internal/models"
)

const idPattern = "{id:[0-9]+}"

// Router builds the JSON API. Roles gate each route: aluno can read
// courses, professor can read people, admin can change everything.
func (app *App) Router() *mux.Router {
	h := handlers.New(app.Portal, app.Exporter, AppLogger).WithStoreLock(&app.mu)

	r := mux.NewRouter()
	r.Use(RecoveryMiddleware)
	r.Use(LoggingMiddleware)
	r.Use(SessionMiddleware(app.SessionStore, app.Store, app.Portal, app.Config.SessionTimeout))

	// Sheets export waits on Google, so it only holds the lock while it
	// reads storage.
	r.HandleFunc("/api/reports/{kind}/sheets",
		requireRoleLocked(models.RoleAdmin, &app.mu, h.ExportToSheet)).Methods(http.MethodPost)

	locked := r.NewRoute().Subrouter()
	locked.Use(SerializeMiddleware(&app.mu))

	locked.HandleFunc("/health", handleHealth).Methods(http.MethodGet)

	api := locked.PathPrefix("/api").Subrouter()

	api.Handle("/login", RateLimitMiddleware(app.LoginLimiter, app.Config.TrustedProxies)(http.HandlerFunc(h.HandleLogin))).Methods(http.MethodPost)
	api.HandleFunc("/logout", h.HandleLogout).Methods(http.MethodPost)
	api.HandleFunc("/me", h.HandleMe).Methods(http.MethodGet)

	students := h.Students()
	api.HandleFunc("/students", RequireRole(models.RoleTeacher, students.List)).Methods(http.MethodGet)
	api.HandleFunc("/students/stats", RequireRole(models.RoleTeacher, students.Stats)).Methods(http.MethodGet)
	api.HandleFunc("/students/report", RequireRole(models.RoleTeacher, students.Report)).Methods(http.MethodGet)
	api.HandleFunc("/students/"+idPattern, RequireRole(models.RoleTeacher, students.Get)).Methods(http.MethodGet)
	api.HandleFunc("/students", RequireRole(models.RoleAdmin, students.Create)).Methods(http.MethodPost)
	api.HandleFunc("/students/"+idPattern, RequireRole(models.RoleAdmin, students.Update)).Methods(http.MethodPatch)
	api.HandleFunc("/students/"+idPattern, RequireRole(models.RoleAdmin, students.Delete)).Methods(http.MethodDelete)

	teachers := h.Teachers()
	api.HandleFunc("/teachers", RequireRole(models.RoleTeacher, teachers.List)).Methods(http.MethodGet)
	api.HandleFunc("/teachers/stats", RequireRole(models.RoleTeacher, teachers.Stats)).Methods(http.MethodGet)
	api.HandleFunc("/teachers/report", RequireRole(models.RoleTeacher, teachers.Report)).Methods(http.MethodGet)
	api.HandleFunc("/teachers/"+idPattern, RequireRole(models.RoleTeacher, teachers.Get)).Methods(http.MethodGet)
	api.HandleFunc("/teachers", RequireRole(models.RoleAdmin, teachers.Create)).Methods(http.MethodPost)
	api.HandleFunc("/teachers/"+idPattern, RequireRole(models.RoleAdmin, teachers.Update)).Methods(http.MethodPatch)
	api.HandleFunc("/teachers/"+idPattern, RequireRole(models.RoleAdmin, teachers.Delete)).Methods(http.MethodDelete)

	api.HandleFunc("/courses", RequireRole(models.RoleStudent, h.ListCourses)).Methods(http.MethodGet)
	api.HandleFunc("/courses/stats", RequireRole(models.RoleStudent, h.CourseStats)).Methods(http.MethodGet)
	api.HandleFunc("/courses/report", RequireRole(models.RoleStudent, h.CourseReport)).Methods(http.MethodGet)
	api.HandleFunc("/courses/{id}", RequireRole(models.RoleStudent, h.GetCourse)).Methods(http.MethodGet)
	api.HandleFunc("/courses", RequireRole(models.RoleAdmin, h.CreateCourse)).Methods(http.MethodPost)
	api.HandleFunc("/courses/{id}", RequireRole(models.RoleAdmin, h.UpdateCourse)).Methods(http.MethodPatch)
	api.HandleFunc("/courses/{id}", RequireRole(models.RoleAdmin, h.DeleteCourse)).Methods(http.MethodDelete)
	api.HandleFunc("/courses/{id}/seats", RequireRole(models.RoleAdmin, h.AdjustSeats)).Methods(http.MethodPost)

	api.HandleFunc("/users", RequireRole(models.RoleAdmin, h.ListUsers)).Methods(http.MethodGet)
	api.HandleFunc("/users/"+idPattern, RequireRole(models.RoleAdmin, h.GetUser)).Methods(http.MethodGet)
	api.HandleFunc("/users", RequireRole(models.RoleAdmin, h.CreateUser)).Methods(http.MethodPost)
	api.HandleFunc("/users/"+idPattern, RequireRole(models.RoleAdmin, h.UpdateUser)).Methods(http.MethodPatch)
	api.HandleFunc("/users/"+idPattern, RequireRole(models.RoleAdmin, h.DeleteUser)).Methods(http.MethodDelete)

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("ok"))
}
