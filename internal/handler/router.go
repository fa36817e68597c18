package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	blogHandler "github.com/blogifyhq/blogify/internal/handler/blog"
	chatHandler "github.com/blogifyhq/blogify/internal/handler/chat"
	userHandler "github.com/blogifyhq/blogify/internal/handler/user"
	middlewarePkg "github.com/blogifyhq/blogify/internal/middleware"
	blogService "github.com/blogifyhq/blogify/internal/service/blog"
	userService "github.com/blogifyhq/blogify/internal/service/user"
)

// Deps collects everything the router wires together. Orchestrator may be
// nil when the AI upstream is not configured.
type Deps struct {
	Users        *userService.Service
	Blogs        *blogService.Service
	Orchestrator chatHandler.Orchestrator
	Verifier     middlewarePkg.Verifier

	// UploadsDir enables static serving of local uploads when non-empty.
	UploadsDir string
}

// NewRouter wires HTTP routes to core services.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)
	r.Use(middlewarePkg.Authenticate(deps.Verifier))

	r.Route("/api", func(api chi.Router) {
		api.Route("/user", userHandler.New(deps.Users).RegisterRoutes)
		api.Route("/blogs", blogHandler.New(deps.Blogs).RegisterRoutes)
		api.Route("/chat", chatHandler.New(deps.Orchestrator).RegisterRoutes)
	})

	if deps.UploadsDir != "" {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(deps.UploadsDir)))
		r.Handle("/uploads/*", fs)
	}

	return r
}
