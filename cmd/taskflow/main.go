package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/sandeepkv93/taskflow/internal/auth"
	"github.com/sandeepkv93/taskflow/internal/config"
	"github.com/sandeepkv93/taskflow/internal/notify"
	"github.com/sandeepkv93/taskflow/internal/storage"
	"github.com/sandeepkv93/taskflow/internal/tasks"
	"github.com/sandeepkv93/taskflow/internal/update"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "taskflow failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := newLogger(cfg)

	repo, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer repo.DB().Close()
	if err := storage.MigrateUp(repo.DB()); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	var notifier notify.DesktopNotifier = notify.NoopDesktopNotifier{}
	if cfg.DesktopNotifications {
		notifier = notify.ExecDesktopNotifier{}
	}
	presenter := notify.NewPresenter(notify.DefaultSoundChain(cfg.SoundAssetPath), notifier, logger)

	engine := notify.NewEngine(cfg.SchedulerBuffer)
	ledger := notify.NewFileLedger(cfg.ReminderLedgerPath)
	reminders := notify.NewService(engine, ledger, presenter, logger)
	reminders.Start()
	defer reminders.Stop()

	// Recover persisted reminders before the UI can schedule new ones.
	reminders.RecoverAll()

	authSvc := auth.NewService(repo, time.Duration(cfg.SessionTTLHours)*time.Hour, logger)
	tasksSvc := tasks.NewService(repo, reminders, logger)

	model := update.NewModel(update.Deps{
		Auth:      authSvc,
		Tasks:     tasksSvc,
		Presenter: presenter,
		Logger:    logger,
	})

	program := tea.NewProgram(model)
	if _, err := program.Run(); err != nil {
		return err
	}
	return nil
}

func newLogger(cfg config.Config) *log.Logger {
	opts := log.Options{ReportTimestamp: true}
	if cfg.LogFormat == "json" {
		opts.Formatter = log.JSONFormatter
	}
	logger := log.NewWithOptions(os.Stderr, opts)
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}
	return logger
}
