package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/vietanhdev/agentweave/src/agentapi"
	"github.com/vietanhdev/agentweave/src/agentdata"
	"github.com/vietanhdev/agentweave/src/config"
	"github.com/vietanhdev/agentweave/src/history"
	"github.com/vietanhdev/agentweave/src/notify"
	"github.com/vietanhdev/agentweave/src/resource"
)

// app bundles everything a command needs: config, the domain store, the
// logger, and (lazily) the history database.
type app struct {
	cfg    *config.Config
	store  *agentdata.Store
	logger *slog.Logger

	historyDB *history.DB
}

// newApp loads config, applies CLI flag overrides, and wires the store.
func newApp(cli *CLI) (*app, error) {
	loader := config.NewLoader()
	cfg, err := loader.Load(cli.Config)
	if err != nil {
		return nil, err
	}

	if cli.ServerURL != "" {
		cfg.Server.URL = cli.ServerURL
	}
	if cli.LogLevel != "" {
		cfg.Logging.Level = cli.LogLevel
	}

	logger := createCLILogger(cfg.Logging.Level, cfg.Logging.Format)

	client := agentapi.NewClient(agentapi.Config{
		BaseURL:   cfg.Server.URL,
		Timeout:   cfg.ClientTimeout(),
		Logger:    logger,
		UserAgent: "agentweave-cli",
	})

	var notifier notify.Notifier = notify.NewConsole(os.Stderr)
	if cli.Quiet {
		notifier = notify.Discard{}
	}

	cache := resource.NewMemoryCache(cfg.Cache.TTL)
	store := agentdata.NewStore(client, cache,
		agentdata.WithNotifier(notifier),
		agentdata.WithLogger(logger),
	)

	return &app{
		cfg:    cfg,
		store:  store,
		logger: logger,
	}, nil
}

// history opens the conversation history database on first use. Returns nil
// with no error when history is disabled.
func (a *app) history() (*history.DB, error) {
	if a.cfg.History.Disabled {
		return nil, nil
	}
	if a.historyDB != nil {
		return a.historyDB, nil
	}

	path := a.cfg.HistoryPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := history.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	a.historyDB = db
	return db, nil
}

// close releases resources held by the app.
func (a *app) close() {
	if a.historyDB != nil {
		a.historyDB.Close()
	}
}
