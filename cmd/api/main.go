package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"matatumonitor/internal/app"
	"matatumonitor/internal/appconf"
	"matatumonitor/internal/catalog"
	"matatumonitor/internal/logging"
	"matatumonitor/internal/metrics"
	"matatumonitor/internal/notify"
	"matatumonitor/internal/reports"
	"matatumonitor/internal/restapi"
	"matatumonitor/internal/session"
	"matatumonitor/internal/transit"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run starts the server and blocks until ctx is cancelled or the server fails.
func run(ctx context.Context, args []string, stdout io.Writer) error {
	cfg, err := appconf.Load(args)
	if err != nil {
		return err
	}

	logger := logging.NewStructuredLogger(stdout, cfg.LogLevel)
	slog.SetDefault(logger)

	hub := notify.NewHub(logger, nil)
	go hub.Run()
	defer hub.Stop()

	collector := metrics.NewCollector(hub.ClientCount)

	notifiers := notify.Fanout{hub}
	if cfg.NATSURL != "" {
		publisher, err := notify.NewNATSPublisher(cfg.NATSURL, cfg.NATSSubjectPrefix, logger)
		if err != nil {
			return err
		}
		defer logging.SafeCloseWithLogging(publisher, logger, "nats_publisher")
		notifiers = append(notifiers, publisher)
	}

	sess, err := newSession(ctx, cfg, session.Options{
		Logger:   logger,
		Notifier: notifiers,
		Metrics:  collector,
	})
	if err != nil {
		return err
	}

	api := restapi.NewRestAPI(&app.Application{
		Config:  cfg,
		Logger:  logger,
		Session: sess,
		Metrics: collector,
		Hub:     hub,
	})
	defer api.Stop()

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      api.Handler(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}
	srv.RegisterOnShutdown(hub.Stop)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", srv.Addr, "env", cfg.Env.String(),
			"routes", sess.Routes().Len(), "reports", len(sess.Reports()))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logging.ShutdownWithLogging(shutdownCtx, srv, logger, "http_server")
	return nil
}

// newSession builds the session from config: sample or GTFS routes, with or
// without the sample reports.
func newSession(ctx context.Context, cfg appconf.Config, opts session.Options) (*session.Session, error) {
	now := time.Now()

	routes := catalog.Sample(now)
	if cfg.GTFSSource != "" {
		var err error
		routes, err = catalog.LoadGTFS(ctx, cfg.GTFSSource, catalog.GTFSOptions{
			DefaultFare:    cfg.GTFSDefaultFare,
			DefaultTraffic: transit.TrafficModerate,
			Now:            now,
		})
		if err != nil {
			return nil, fmt.Errorf("loading routes from %s: %w", cfg.GTFSSource, err)
		}
	}
	routeCatalog, err := catalog.New(routes...)
	if err != nil {
		return nil, fmt.Errorf("building route catalog: %w", err)
	}

	var seed []reports.Report
	if cfg.SeedSampleData {
		seed = reports.SampleReports(now)
	}
	store, err := reports.NewStore(seed...)
	if err != nil {
		return nil, fmt.Errorf("seeding reports: %w", err)
	}

	return session.New(store, routeCatalog, opts), nil
}
