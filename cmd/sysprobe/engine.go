package main

import (
	"context"
	"database/sql"
	"fmt"
	"runtime"

	_ "modernc.org/sqlite"

	configapp "sysprobe/internal/config/application"
	"sysprobe/internal/infrastructure/database"
	"sysprobe/internal/infrastructure/logger"
	probesapp "sysprobe/internal/probes/application"
	probesdomain "sysprobe/internal/probes/domain"
	probesinfra "sysprobe/internal/probes/infrastructure"
	"sysprobe/internal/schema"
)

// engine is the running probe stack shared by the commands
type engine struct {
	snapshot *probesapp.Snapshot
	service  *probesapp.Service
	loader   *configapp.Loader

	closers []func() error
}

// startEngine opens the optional snapshot mirror, starts the probes of the
// configured file and returns once every probe task is running.
func startEngine(ctx context.Context, appLogger *logger.Logger, cfg *configapp.RuntimeConfig) (*engine, error) {
	e := &engine{}

	var repo probesdomain.Repository
	if cfg.DBPath != "" {
		mirror, err := e.openMirror(ctx, appLogger, cfg.DBPath)
		if err != nil {
			e.close()
			return nil, err
		}
		repo = mirror
	}

	e.snapshot = probesapp.NewSnapshot(appLogger, repo)
	e.service = probesapp.NewService(appLogger, probesinfra.NewShellRunner(), e.snapshot)
	e.loader = configapp.NewLoader(appLogger, e.service)

	appLogger.Info("Loading configuration", "path", configPathLabel(cfg.ConfigPath))
	if err := e.loader.LoadFile(ctx, cfg.ConfigPath); err != nil {
		e.close()
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return e, nil
}

func (e *engine) openMirror(ctx context.Context, appLogger *logger.Logger, path string) (*probesinfra.Repository, error) {
	appLogger.Debug("Connecting to database", "file", path)

	dbRead, err := database.ConnectSQLite(path)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to read database: %w", err)
	}
	e.closers = append(e.closers, dbRead.Close)
	dbRead.SetMaxOpenConns(runtime.NumCPU())

	dbWrite, err := database.ConnectSQLite(path)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to write database: %w", err)
	}
	e.closers = append(e.closers, dbWrite.Close)
	dbWrite.SetMaxOpenConns(1)

	if err := initSchema(ctx, dbWrite); err != nil {
		return nil, err
	}

	repo := probesinfra.NewRepository(dbRead, dbWrite)
	// entries of a previous run belong to probes that may no longer exist
	if err := repo.ClearEntries(ctx); err != nil {
		return nil, fmt.Errorf("failed to clear snapshot mirror: %w", err)
	}

	appLogger.Debug("Snapshot mirror ready", "file", path)
	return repo, nil
}

func initSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema.DDL); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// stop stops every probe task, then closes the mirror
func (e *engine) stop(ctx context.Context) error {
	err := e.loader.Stop(ctx)
	e.close()
	return err
}

func (e *engine) close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		e.closers[i]()
	}
	e.closers = nil
}

func configPathLabel(path string) string {
	if path == "" {
		return "built-in"
	}
	return path
}
