package main

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/vincentcui-ui/workout-logger/internal/auth"
	"github.com/vincentcui-ui/workout-logger/internal/flash"
	"github.com/vincentcui-ui/workout-logger/internal/handlers"
	"github.com/vincentcui-ui/workout-logger/internal/view"
)

// App is the main application handler that sets up all routes.
type App struct {
	mux *http.ServeMux
	db  *gorm.DB
}

// NewApp creates a new application with all routes configured.
func NewApp(db *gorm.DB) *App {
	app := &App{
		mux: http.NewServeMux(),
		db:  db,
	}
	app.setupRoutes()
	return app
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	auth.Middleware(a.mux).ServeHTTP(w, r)
}

// setupRoutes configures all application routes.
func (a *App) setupRoutes() {
	ah := handlers.NewAuthHandler(a.db)
	wh := handlers.NewWorkoutHandler(a.db)
	eh := handlers.NewExerciseHandler(a.db)
	dh := handlers.NewWorkoutDetailHandler(a.db)

	// Public routes
	a.mux.HandleFunc("GET /login", ah.Login)
	a.mux.HandleFunc("POST /login", ah.Login)
	a.mux.HandleFunc("GET /register", ah.Register)
	a.mux.HandleFunc("POST /register", ah.Register)
	a.mux.HandleFunc("GET /logout", ah.Logout)

	// Landing page doubles as the session gate for "/"
	a.mux.Handle("GET /{$}", a.requireAuth(http.HandlerFunc(a.landingPage)))

	// Workouts
	a.mux.Handle("GET /add_workout", a.requireAuth(http.HandlerFunc(wh.Add)))
	a.mux.Handle("POST /add_workout", a.requireAuth(http.HandlerFunc(wh.Add)))
	a.mux.Handle("GET /list_workouts", a.requireAuth(http.HandlerFunc(wh.List)))
	a.mux.Handle("GET /edit_workout/{id}", a.requireAuth(http.HandlerFunc(wh.Edit)))
	a.mux.Handle("POST /edit_workout/{id}", a.requireAuth(http.HandlerFunc(wh.Edit)))
	a.mux.Handle("POST /delete_workout/{id}", a.requireAuth(http.HandlerFunc(wh.Delete)))
	a.mux.Handle("GET /filter_workouts", a.requireAuth(http.HandlerFunc(wh.Filter)))
	a.mux.Handle("POST /filter_workouts", a.requireAuth(http.HandlerFunc(wh.Filter)))

	// Workout details
	a.mux.Handle("GET /workouts/{id}", a.requireAuth(http.HandlerFunc(wh.View)))
	a.mux.Handle("POST /workouts/{id}/details", a.requireAuth(http.HandlerFunc(dh.AddItem)))
	a.mux.Handle("POST /workouts/{id}/details/{detail_id}/delete", a.requireAuth(http.HandlerFunc(dh.RemoveItem)))

	// Exercise catalog
	a.mux.Handle("GET /exercises", a.requireAuth(http.HandlerFunc(eh.List)))
	a.mux.Handle("POST /exercises", a.requireAuth(http.HandlerFunc(eh.Create)))
	a.mux.Handle("POST /exercises/{id}/delete", a.requireAuth(http.HandlerFunc(eh.Delete)))

	// Static files
	a.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))
}

// requireAuth wraps a handler to require an authenticated session.
func (a *App) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok || userID == 0 {
			flash.Add(w, r, "Please login first.")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (a *App) landingPage(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	if err := view.Render(w, r, "index.html", map[string]any{"UserID": userID}); err != nil {
		http.Error(w, "Failed to render template: "+err.Error(), http.StatusInternalServerError)
	}
}
