// Package main is the entrypoint for the abacus calculator.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/abacus-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/abacus-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/abacus-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/abacus-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/abacus-cli/internal/core/domain"
	"github.com/custodia-labs/abacus-cli/internal/core/ports/driven"
	"github.com/custodia-labs/abacus-cli/internal/core/ports/driving"
	"github.com/custodia-labs/abacus-cli/internal/core/services"
	"github.com/custodia-labs/abacus-cli/internal/logger"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)

	var configStore driven.ConfigStore
	var watcher driven.ConfigWatcher
	fileStore, err := file.NewConfigStore("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: config unavailable, using defaults: %v\n", err)
		configStore = memory.NewConfigStore()
	} else {
		configStore = fileStore
		watcher = fileStore
	}

	settingsService := services.NewSettingsService(configStore)

	historyStore, closeHistory := openHistoryStore(settingsService)
	defer closeHistory()

	historyService := services.NewHistoryService(historyStore, settingsService)
	calculatorService := services.NewCalculatorService(historyService)

	cli.SetServices(calculatorService, historyService, settingsService)
	cli.SetTUIConfig(&cli.TUIConfig{
		CalculatorService: calculatorService,
		HistoryService:    historyService,
		SettingsService:   settingsService,
		ConfigWatcher:     watcher,
	})

	return cli.Execute(ctx)
}

// openHistoryStore opens the configured history backend. A SQLite store
// that cannot be opened falls back to memory so the calculator still works.
func openHistoryStore(settings driving.SettingsService) (store driven.HistoryStore, closeFn func()) {
	backend := domain.HistoryBackendSQLite
	if current, err := settings.Get(); err == nil {
		backend = current.History.Backend
	}

	if backend == domain.HistoryBackendMemory {
		return memory.NewHistoryStore(), func() {}
	}

	db, err := sqlite.NewStore("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: history database unavailable, keeping history in memory: %v\n", err)
		return memory.NewHistoryStore(), func() {}
	}

	return db.HistoryStore(), func() {
		if err := db.Close(); err != nil {
			logger.Warn("closing history database: %v", err)
		}
	}
}
