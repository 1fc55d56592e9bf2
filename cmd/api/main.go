package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Abhyam-Mathur/nagar-team/internal/config"
	"github.com/Abhyam-Mathur/nagar-team/internal/database"
	"github.com/Abhyam-Mathur/nagar-team/internal/realtime"
	"github.com/Abhyam-Mathur/nagar-team/internal/router"
	"github.com/Abhyam-Mathur/nagar-team/pkg/logger"
)

func main() {
	// config + logger
	cfg := config.Load()
	l := logger.New(cfg.Env)

	// db
	if err := database.Migrate(cfg.DBURL); err != nil {
		l.Fatal().Err(err).Msg("migrations failed")
	}
	pool, err := database.Open(context.Background(), cfg)
	if err != nil {
		l.Fatal().Err(err).Msg("db connect failed")
	}
	defer pool.Close()

	// change feed
	feedCtx, stopFeed := context.WithCancel(context.Background())
	defer stopFeed()
	hub := realtime.NewHub()
	go realtime.Listen(feedCtx, pool, hub, l)

	// http
	r := router.New(l, pool, hub, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		// No WriteTimeout: /api/events holds a long-lived SSE stream.
	}
	go func() {
		l.Info().Str("addr", srv.Addr).Msg("api listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Fatal().Err(err).Msg("server error")
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	stopFeed()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	l.Info().Msg("shutdown complete")
}
