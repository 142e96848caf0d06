package server

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/claude/pitchlog/internal/schedule"
	"github.com/claude/pitchlog/internal/storage"
	"github.com/go-chi/chi/v5"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db       *storage.DB
	pipeline *schedule.Pipeline
	log      *slog.Logger
	apiKey   string
	router   chi.Router
}

// New creates a new Server with all routes configured.
func New(db *storage.DB, pipeline *schedule.Pipeline, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		db:       db,
		pipeline: pipeline,
		log:      log,
		apiKey:   apiKey,
		router:   chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)
	s.router.Use(DevUser)

	// Bulk schedule upload (API key required)
	s.router.Group(func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Post("/api/v1/schedule", s.handleUploadWeek)
		r.Post("/api/v1/workouts/{id}/schedule", s.handleUploadDay)
	})

	// Exercise catalog
	s.router.Get("/api/v1/exercises", s.handleListExercises)
	s.router.Post("/api/v1/exercises", s.handleCreateExercise)

	// Workouts, blocks, block exercises
	s.router.Get("/api/v1/workouts", s.handleListWorkouts)
	s.router.Post("/api/v1/workouts", s.handleCreateWorkout)
	s.router.Get("/api/v1/workouts/today", s.handleTodayWorkout)
	s.router.Get("/api/v1/workouts/{id}", s.handleGetWorkout)
	s.router.Put("/api/v1/workouts/{id}", s.handleUpdateWorkout)
	s.router.Delete("/api/v1/workouts/{id}", s.handleDeleteWorkout)
	s.router.Post("/api/v1/workouts/{id}/blocks", s.handleCreateBlock)
	s.router.Put("/api/v1/blocks/{id}", s.handleUpdateBlock)
	s.router.Delete("/api/v1/blocks/{id}", s.handleDeleteBlock)
	s.router.Post("/api/v1/blocks/{id}/exercises", s.handleCreateBlockExercise)
	s.router.Put("/api/v1/block-exercises/{id}", s.handleUpdateBlockExercise)
	s.router.Delete("/api/v1/block-exercises/{id}", s.handleDeleteBlockExercise)

	// Sessions and set logs
	s.router.Get("/api/v1/sessions", s.handleListSessions)
	s.router.Post("/api/v1/sessions", s.handleBeginSession)
	s.router.Get("/api/v1/sessions/stats", s.handleSessionStats)
	s.router.Get("/api/v1/sessions/active", s.handleActiveSession)
	s.router.Get("/api/v1/sessions/paused", s.handlePausedSessions)
	s.router.Get("/api/v1/sessions/{id}", s.handleGetSession)
	s.router.Delete("/api/v1/sessions/{id}", s.handleDeleteSession)
	s.router.Post("/api/v1/sessions/{id}/pause", s.handlePauseSession)
	s.router.Post("/api/v1/sessions/{id}/resume", s.handleResumeSession)
	s.router.Post("/api/v1/sessions/{id}/complete", s.handleCompleteSession)
	s.router.Get("/api/v1/sessions/{id}/logs", s.handleListSessionLogs)
	s.router.Post("/api/v1/sessions/{id}/sets", s.handleRecordSet)

	// Check-ins and stats
	s.router.Get("/api/v1/check-ins", s.handleListCheckIns)
	s.router.Post("/api/v1/check-ins", s.handleCreateCheckIn)
	s.router.Get("/api/v1/check-ins/latest", s.handleLatestCheckIn)
	s.router.Get("/api/v1/check-ins/{id}", s.handleGetCheckIn)
	s.router.Put("/api/v1/check-ins/{id}", s.handleUpdateCheckIn)
	s.router.Get("/api/v1/stats", s.handleUserStats)
	s.router.Post("/api/v1/stats/refresh", s.handleRefreshStats)
	s.router.Get("/api/v1/progress/weekly", s.handleWeeklyProgress)
}

// SetFrontend mounts the embedded SPA filesystem.
// Unmatched routes serve index.html for client-side routing.
func (s *Server) SetFrontend(webFS fs.FS) {
	fileServer := http.FileServerFS(webFS)

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		// Try to serve the exact file first
		f, err := webFS.Open(r.URL.Path[1:]) // strip leading /
		if err == nil {
			f.Close()
			fileServer.ServeHTTP(w, r)
			return
		}
		// Fallback to index.html for SPA routing
		r.URL.Path = "/"
		fileServer.ServeHTTP(w, r)
	})
}
