package http

import (
	"io/fs"
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"mergingtonactivities/internal/delivery/http/controllers"
	"mergingtonactivities/internal/delivery/http/middleware"
)

// NewRouter initializes the HTTP router with all application routes.
// static is the frontend file tree served under /static/; metrics may be nil.
func NewRouter(activityController *controllers.ActivityController, static fs.FS, metrics http.Handler) *http.ServeMux {
	mux := http.NewServeMux()

	// API Routes
	mux.HandleFunc("GET /activities", activityController.ListActivities)
	mux.HandleFunc("GET /activities/{name}", activityController.GetActivity)
	mux.HandleFunc("POST /activities/{name}/signup", activityController.Signup)
	mux.HandleFunc("DELETE /activities/{name}/unregister", activityController.Unregister)

	// Frontend
	mux.HandleFunc("GET /{$}", RedirectToIndex)
	mux.Handle("GET /static/{file...}", StaticHandler(static))

	// Operations
	mux.HandleFunc("GET /health", HealthHandler)
	if metrics != nil {
		mux.Handle("GET /metrics", metrics)
	}

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

// Chain wraps the router with the standard middleware stack. The metrics
// middleware sits innermost so it sees the pattern matched by the mux.
func Chain(mux http.Handler, logger *slog.Logger, corsOrigins []string, obs middleware.RequestObserver) http.Handler {
	h := mux
	if obs != nil {
		h = middleware.Metrics(obs, h)
	}
	h = middleware.CORS(corsOrigins, h)
	h = middleware.LoggingMiddleware(logger, h)
	return middleware.RequestID(h)
}
