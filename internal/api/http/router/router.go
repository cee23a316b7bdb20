package router

import (
	"net/http"

	"github.com/rs/cors"

	"github.com/dtroode/gophauth/internal/api/http/handler"
	"github.com/dtroode/gophauth/internal/api/http/middleware"
	"github.com/dtroode/gophauth/internal/logger"
	"github.com/dtroode/gophauth/internal/model"
	"github.com/dtroode/gophauth/internal/service"
)

// Options holds transport settings the router needs besides services.
type Options struct {
	Cookie         handler.CookieConfig
	MaxBodyBytes   int64
	AllowedOrigins []string
	Metrics        http.Handler
}

// Router wires handlers and middleware into a single http.Handler.
type Router struct {
	authService    *service.Auth
	sessionService *service.SessionService
	contextManager model.ContextManager
	opts           Options
	logger         *logger.Logger
}

// New creates new HTTP Router instance.
func New(
	authService *service.Auth,
	sessionService *service.SessionService,
	contextManager model.ContextManager,
	opts Options,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		sessionService: sessionService,
		contextManager: contextManager,
		opts:           opts,
		logger:         logger,
	}
}

// Register builds the handler chain: logging, recover, CORS, routes.
// Logging is outermost so requests that panic are still logged and counted.
func (r *Router) Register() http.Handler {
	mux := http.NewServeMux()
	r.registerIndexRoutes(mux)
	r.registerAuthRoutes(mux)

	recoverer := middleware.NewRecover(r.logger)
	logging := middleware.NewLogging(r.logger)

	return logging.Handle(recoverer.Handle(r.cors().Handler(mux)))
}

func (r *Router) registerIndexRoutes(mux *http.ServeMux) {
	index := handler.NewIndex(r.logger)

	mux.HandleFunc("GET /{$}", index.Root)
	mux.HandleFunc("GET /healthz", index.Health)
	if r.opts.Metrics != nil {
		mux.Handle("GET /metrics", r.opts.Metrics)
	}
	// Anything unmatched, including a known path with the wrong method,
	// gets the JSON 404 envelope.
	mux.HandleFunc("/", index.NotFound)
}

func (r *Router) registerAuthRoutes(mux *http.ServeMux) {
	auth := handler.NewAuth(r.authService, r.opts.Cookie, r.opts.MaxBodyBytes, r.logger)
	gate := middleware.NewAuthenticate(r.sessionService, r.contextManager, r.opts.Cookie.Name, r.logger)

	mux.HandleFunc("POST /register", auth.Register)
	mux.HandleFunc("POST /login", auth.Login)

	logout := gate.Handle(http.HandlerFunc(auth.Logout))
	mux.Handle("GET /logout", logout)
	mux.Handle("POST /logout", logout)
	mux.Handle("GET /perfil", gate.Handle(http.HandlerFunc(auth.Profile)))
}

func (r *Router) cors() *cors.Cors {
	origins := r.opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	wildcard := false
	for _, o := range origins {
		if o == "*" {
			wildcard = true
			break
		}
	}

	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: !wildcard,
	})
}
