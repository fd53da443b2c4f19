package main

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/sidelines/sidelines/internal/auth"
	"github.com/sidelines/sidelines/internal/cache"
	"github.com/sidelines/sidelines/internal/clock"
	"github.com/sidelines/sidelines/internal/config"
	"github.com/sidelines/sidelines/internal/handlers"
	"github.com/sidelines/sidelines/internal/middleware"
	"github.com/sidelines/sidelines/internal/repo"
)

// services are the collaborators the router wires into handlers.
type services struct {
	db       *sql.DB
	cache    *cache.Redis
	football handlers.FootballSource
	clock    clock.Clock
}

// newRouter builds the full HTTP handler. Background limiter sweeps stop when ctx is done.
func newRouter(ctx context.Context, svc services, cfg config.Config) http.Handler {
	userRepo := repo.NewUserRepo(svc.db)
	postRepo := repo.NewPostRepo(svc.db)
	commentRepo := repo.NewCommentRepo(svc.db)
	auditRepo := repo.NewAuditRepo(svc.db)

	errs := handlers.Errors{Debug: cfg.Debug()}
	tokens := auth.NewTokenCodec([]byte(cfg.JWTSecret), svc.clock)

	authHandler := &handlers.AuthHandler{
		Service: auth.NewService(userRepo, tokens, cfg.BcryptCost),
		Errors:  errs,
	}
	postHandler := &handlers.PostHandler{
		Posts:    postRepo,
		Comments: commentRepo,
		Users:    userRepo,
		Audit:    auditRepo,
		Errors:   errs,
	}
	transferHandler := &handlers.TransferHandler{Repo: repo.NewTransferRepo(svc.db), Errors: errs}
	referenceHandler := &handlers.ReferenceHandler{Repo: repo.NewLeagueRepo(svc.db), Errors: errs}
	footballHandler := &handlers.FootballHandler{Source: svc.football, Errors: errs}
	uploadHandler := &handlers.UploadHandler{Dir: cfg.UploadDir, URLPrefix: "/uploads", Errors: errs}
	userHandler := &handlers.UserHandler{Repo: userRepo, AuditRepo: auditRepo, Errors: errs}
	auditHandler := &handlers.AuditHandler{Repo: auditRepo, Errors: errs}

	authLimiter := middleware.AuthRateLimiter()
	uploadLimiter := middleware.NewIPRateLimiter(rate.Limit(20.0/60.0), 5)
	go authLimiter.SweepEvery(ctx, 10*time.Minute, 30*time.Minute)
	go uploadLimiter.SweepEvery(ctx, 10*time.Minute, 30*time.Minute)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders(cfg.TLSCertFile != ""))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	// ==========================
	// Operations
	// ==========================
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/ready", readyHandler(svc))
	r.Handle("/metrics", promhttp.Handler())
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", noDirListing(http.FileServer(http.Dir(cfg.UploadDir)))))

	r.Route("/api", func(r chi.Router) {
		// ==========================
		// Public
		// ==========================
		r.Group(func(r chi.Router) {
			r.Use(authLimiter.Middleware)
			r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))
			r.Post("/signup", authHandler.Signup)
			r.Post("/login", authHandler.Login)
		})
		r.With(uploadLimiter.Middleware, middleware.MaxBytes(middleware.UploadMaxBodyBytes)).
			Post("/upload", uploadHandler.Upload)

		r.Get("/posts", postHandler.ListPosts)
		r.Get("/posts/{postId}/comments", postHandler.ListComments)
		r.Get("/transfers/filter", transferHandler.Filter)

		r.Get("/leagues", referenceHandler.ListLeagues)
		r.Get("/teams/{leagueId}", referenceHandler.ListTeams)
		r.Get("/team/{teamId}", referenceHandler.GetTeam)

		r.Get("/standings/{leagueId}", footballHandler.Standings)
		r.Get("/fixtures/{leagueId}", footballHandler.Fixtures)
		r.Get("/rumors", footballHandler.Rumors)
		r.Get("/live-matches", footballHandler.LiveMatches)
		r.Get("/match-details/{fixtureId}", footballHandler.MatchDetails)

		// ==========================
		// Authenticated
		// ==========================
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(tokens))
			r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))

			r.Get("/me", userHandler.Me)
			r.Post("/posts", postHandler.CreatePost)
			r.Delete("/posts/{postId}", postHandler.DeletePost)
			r.Post("/posts/{postId}/like", postHandler.LikePost)
			r.Post("/posts/{postId}/comments", postHandler.CreateComment)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin(userRepo))
				r.Post("/users/{id}/admin", userHandler.GrantAdmin)
				r.Get("/audit", auditHandler.ListAudit)
			})
		})
	})

	// Older clients like posts without the /api prefix.
	r.With(middleware.Authenticate(tokens)).Post("/posts/{postId}/like", postHandler.LikePost)

	return r
}

func readyHandler(svc services) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := svc.db.PingContext(ctx); err != nil {
			handlers.JSONError(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		if err := svc.cache.Ping(ctx); err != nil {
			handlers.JSONError(w, "cache unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ready"))
	}
}

// noDirListing answers 404 for directory paths so the upload folder cannot be enumerated.
func noDirListing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}
