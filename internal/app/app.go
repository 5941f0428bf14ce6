// Package app wires configuration, logging, storage, the two stores and the
// terminal client into a runnable program.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/edutalk/internal/cli"
	"github.com/dmitrijs2005/edutalk/internal/config"
	"github.com/dmitrijs2005/edutalk/internal/content"
	"github.com/dmitrijs2005/edutalk/internal/logging"
	"github.com/dmitrijs2005/edutalk/internal/metrics"
	"github.com/dmitrijs2005/edutalk/internal/session"
	"github.com/dmitrijs2005/edutalk/internal/storage"
	"github.com/prometheus/client_golang/prometheus"
)

// IO groups the streams the program talks to.
type IO struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	sessions *session.Store
	content  *content.Store
	client   *cli.App
}

// NewApp opens the database, restores both stores and prepares the client.
func NewApp(ctx context.Context, c *config.Config, streams IO) (*App, error) {
	logger, err := logging.New(streams.Err, c.LogLevel, c.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	db, err := storage.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	sessions := session.New(db, session.Options{Latency: c.SimulatedLatency, Logger: logger, Metrics: m})
	feed := content.New(db, content.Options{Logger: logger, Metrics: m})

	if err := sessions.Initialize(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := feed.Initialize(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	client := cli.NewApp(sessions, feed, cli.Options{
		In:      streams.In,
		Out:     streams.Out,
		Logger:  logger,
		Metrics: reg,
	})

	return &App{
		config:   c,
		logger:   logger,
		db:       db,
		sessions: sessions,
		content:  feed,
		client:   client,
	}, nil
}

// Run blocks until the client exits or the process is interrupted, then
// closes the database.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.logger.Info(ctx, "starting", "dsn", a.config.DatabaseDSN, "latency", a.config.SimulatedLatency)
	a.client.Run(ctx)

	if err := a.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	a.logger.Debug(ctx, "stopped")
	return nil
}
