package http

import (
	"log/slog"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "eventdiscovery/docs"
	"eventdiscovery/internal/delivery/http/controllers"
	"eventdiscovery/internal/delivery/http/middleware"
)

// RouterOptions configures the cross-cutting parts of the router.
type RouterOptions struct {
	AllowedOrigins []string
	// AdminToken guards DELETE /cache; empty leaves it open.
	AdminToken string
	// Metrics is served at GET /metrics when set.
	Metrics http.Handler
}

// NewRouter initializes the HTTP router with all application routes and wraps
// it in the middleware stack.
func NewRouter(eventController *controllers.EventController, logger *slog.Logger, opts RouterOptions) http.Handler {
	mux := http.NewServeMux()
	requireAdmin := middleware.RequireAdminToken(opts.AdminToken, logger)

	// API Routes
	mux.HandleFunc("GET /events", eventController.ListEvents)
	mux.HandleFunc("POST /events/search", eventController.SearchEvents)
	mux.HandleFunc("GET /events/{eventID}", eventController.GetEvent)
	mux.HandleFunc("DELETE /cache", requireAdmin(eventController.ClearCache))

	// Ops
	mux.HandleFunc("GET /healthz", eventController.Health)
	if opts.Metrics != nil {
		mux.Handle("GET /metrics", opts.Metrics)
	}

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	var h http.Handler = mux
	h = middleware.CORS(opts.AllowedOrigins, h)
	h = middleware.LoggingMiddleware(logger, h)
	h = chimiddleware.RealIP(h)
	h = chimiddleware.Recoverer(h)
	return h
}
