package server

import (
	"fmt"
	"net/http"
	"time"

	httpLogger "github.com/chi-middleware/logrus-logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
	"github.com/riandyrn/otelchi"

	"github.com/getzep/zep-extract/internal"
	"github.com/getzep/zep-extract/pkg/auth"
	"github.com/getzep/zep-extract/pkg/models"
)

const (
	ReadHeaderTimeout = 5 * time.Second
	RouterName        = "zep-extract"
)

var log = internal.GetLogger()

// Create creates a new HTTP server with the given app state
func Create(appState *models.AppState) (*http.Server, error) {
	router, err := setupRouter(appState)
	if err != nil {
		return nil, err
	}

	cfg := appState.Config.Server
	return &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: ReadHeaderTimeout,
	}, nil
}

func setupRouter(appState *models.AppState) (*chi.Mux, error) {
	cfg := appState.Config

	router := chi.NewRouter()
	router.Use(httpLogger.Logger("router", log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(SendVersion)
	router.Use(middleware.Heartbeat("/healthz"))
	if cfg.Server.MaxRequestSize > 0 {
		router.Use(middleware.RequestSize(cfg.Server.MaxRequestSize))
	}
	if cfg.Server.RequestTimeout > 0 {
		router.Use(middleware.Timeout(cfg.Server.RequestTimeout))
	}
	router.Use(otelchi.Middleware(
		RouterName,
		otelchi.WithChiRoutes(router),
		otelchi.WithRequestMethodInSpanName(true),
	))

	router.Get("/", RootHandler())

	var verifier func(http.Handler) http.Handler
	if cfg.Auth.Required {
		var err error
		verifier, err = auth.JWTVerifier(cfg)
		if err != nil {
			return nil, err
		}
		log.Info("JWT authentication required")
	}

	router.Group(func(r chi.Router) {
		if verifier != nil {
			r.Use(verifier)
			r.Use(jwtauth.Authenticator)
		}
		if rl := cfg.Server.RateLimit; rl.RequestsPerSecond > 0 {
			log.Infof("rate limiting /extract to %.2f requests/s", rl.RequestsPerSecond)
			r.Use(RateLimit(rl.RequestsPerSecond, rl.Burst))
		}
		r.Post("/extract", ExtractHandler(appState))
	})

	return router, nil
}
