// Package wire provides dependency injection for the arbiter application.
// It creates singleton services with lazy initialization.
package wire

import (
	"database/sql"
	"sync"

	"go.uber.org/zap"

	"github.com/example/arbiter/internal/adapters/lichess"
	"github.com/example/arbiter/internal/adapters/sqlite"
	"github.com/example/arbiter/internal/app"
	"github.com/example/arbiter/internal/config"
	"github.com/example/arbiter/internal/db"
	"github.com/example/arbiter/internal/logging"
	"github.com/example/arbiter/internal/ports/primary"
)

var (
	cfg    *config.Config
	logger *zap.Logger
	conn   *sql.DB

	ingestService    primary.IngestService
	sessionBroker    primary.SessionBroker
	resultReconciler primary.ResultReconciler
	roundReporter    primary.RoundReporter

	once    sync.Once
	initErr error
)

// initServices initializes configuration, logging, the database and all
// services. Called once via sync.Once; a failure is remembered and
// returned by every accessor.
func initServices() {
	cfg, initErr = config.Load()
	if initErr != nil {
		return
	}

	logger, initErr = logging.New()
	if initErr != nil {
		return
	}

	conn, initErr = db.Open(cfg.DatabasePath)
	if initErr != nil {
		return
	}
	if initErr = db.InitSchema(conn); initErr != nil {
		return
	}

	ledger := sqlite.NewLedgerRepository(conn)
	host := lichess.NewClient(cfg, logger)

	ingestService = app.NewIngestService(ledger, logger)
	sessionBroker = app.NewSessionBroker(ledger, host, logger)
	resultReconciler = app.NewResultReconciler(ledger, host, logger)
	roundReporter = app.NewRoundReporter(ledger)
}

// Config returns the loaded configuration.
func Config() (*config.Config, error) {
	once.Do(initServices)
	return cfg, initErr
}

// Logger returns the shared logger. Safe to call before initialization
// succeeded; it falls back to a no-op logger.
func Logger() *zap.Logger {
	once.Do(initServices)
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

// IngestService returns the singleton IngestService instance.
func IngestService() (primary.IngestService, error) {
	once.Do(initServices)
	return ingestService, initErr
}

// SessionBroker returns the singleton SessionBroker instance.
func SessionBroker() (primary.SessionBroker, error) {
	once.Do(initServices)
	return sessionBroker, initErr
}

// ResultReconciler returns the singleton ResultReconciler instance.
func ResultReconciler() (primary.ResultReconciler, error) {
	once.Do(initServices)
	return resultReconciler, initErr
}

// RoundReporter returns the singleton RoundReporter instance.
func RoundReporter() (primary.RoundReporter, error) {
	once.Do(initServices)
	return roundReporter, initErr
}

// Shutdown flushes the logger and closes the database.
func Shutdown() {
	if logger != nil {
		_ = logger.Sync()
	}
	if conn != nil {
		_ = conn.Close()
	}
}
