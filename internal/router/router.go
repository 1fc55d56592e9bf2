package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/Abhyam-Mathur/nagar-team/internal/config"
	"github.com/Abhyam-Mathur/nagar-team/internal/handlers"
	"github.com/Abhyam-Mathur/nagar-team/internal/middleware"
	"github.com/Abhyam-Mathur/nagar-team/internal/realtime"
	"github.com/Abhyam-Mathur/nagar-team/internal/repository/postgres"
	"github.com/Abhyam-Mathur/nagar-team/internal/service"
	"github.com/Abhyam-Mathur/nagar-team/internal/sms"
)

func New(log zerolog.Logger, db *pgxpool.Pool, hub *realtime.Hub, cfg config.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recoverer(log))
	r.Use(middleware.Metrics)
	r.Use(httprate.LimitByIP(200, time.Minute))

	// Health + metrics
	r.Get("/healthz", handlers.Health())
	r.Handle("/metrics", promhttp.Handler())

	// Notification gateway sets its own CORS headers (any origin) and
	// answers preflight itself, so it sits outside the cors middleware.
	nh := handlers.NewNotifyHTTP(sms.New(cfg.SMS), log)
	r.Post("/api/notify", nh.Send())
	r.Options("/api/notify", nh.Preflight())

	// Repos + services + handlers
	repo := postgres.NewComplaintRepo(db)
	ch := handlers.NewComplaintHTTP(repo, service.NewAssignmentService(repo, log), cfg.PageSize)
	sh := handlers.NewStatsHTTP(service.NewStatsService(repo))
	eh := handlers.NewEventsHTTP(hub, log)

	r.Group(func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{cfg.Origin},
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
		}))

		r.Route("/api/complaints", func(r chi.Router) {
			r.Get("/", ch.List())
			r.Get("/locations", ch.Locations())
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", ch.Get())
				r.Get("/updates", ch.Updates())
				r.Post("/assign", ch.Assign())
			})
		})

		r.Get("/api/stats", sh.Summary())
		r.Get("/api/events", eh.Stream())
	})

	return r
}
