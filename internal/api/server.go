// Package api exposes the Animes2u catalog over HTTP. Routes are registered
// with huma on top of a chi router; every response body travels inside the
// versioned envelope produced by EnvelopeTransformer.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/animes2u/catalog-server/internal/ratelimit"
	"github.com/animes2u/catalog-server/internal/store"
)

// Server is the HTTP API server for the catalog.
type Server struct {
	store            *store.Store
	services         *Services
	router           *chi.Mux
	api              huma.API
	logger           *slog.Logger
	loginRateLimiter *ratelimit.KeyedRateLimiter
}

// NewServer wires the router, middleware and all routes.
// corsOrigins lists the browser origins allowed to send the session cookie.
func NewServer(st *store.Store, services *Services, corsOrigins []string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	humaConfig := huma.DefaultConfig("Animes2u API", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"session": {
			Type: "apiKey",
			In:   "cookie",
			Name: sessionCookieName,
		},
	}
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	humaAPI := humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s := &Server{
		store:            st,
		services:         services,
		router:           router,
		api:              humaAPI,
		logger:           logger,
		loginRateLimiter: ratelimit.New(loginRatePerSecond, loginBurst),
	}

	s.registerHealthRoutes()
	s.registerAuthRoutes()
	s.registerAnimeRoutes()
	s.registerAdminRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Stop releases background resources held by the server.
func (s *Server) Stop() {
	s.loginRateLimiter.Stop()
}
