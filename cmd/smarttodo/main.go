package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/smartdoit/smarttodo/internal/app"
	"github.com/smartdoit/smarttodo/internal/backend"
	"github.com/smartdoit/smarttodo/internal/credential"
	"github.com/smartdoit/smarttodo/internal/model"
)

var version = "0.1.0"

// statusPollInterval paces the startup availability check.
const statusPollInterval = 100 * time.Millisecond

func main() {
	configFlag := flag.String("config", model.DefaultConfigPath(), "Path to the config file")
	versionFlag := flag.Bool("version", false, "Print the version and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("smarttodo v%s\n", version)
		return
	}

	if err := run(*configFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return err
	}

	logger, closeLog, err := openLogger(configPath)
	if err != nil {
		return err
	}
	defer closeLog()

	dbPath := cfg.Backend.DatabasePath
	if dbPath == "" {
		dbPath = model.DefaultDatabasePath()
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	client, err := backend.NewSQLiteClient(dbPath)
	if err != nil {
		return fmt.Errorf("opening backend: %w", err)
	}
	defer client.Close()

	if err := waitForBackend(client, cfg.WaitTimeout()); err != nil {
		return err
	}
	logger.Info("backend available", "db", dbPath)

	// Silent re-login with remembered credentials. The resulting transition
	// is queued on the auth stream and picked up once the program starts.
	if cfg.Backend.RememberLogin {
		if username, password, ok := credential.LoadLogin(); ok {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if _, err := client.Login(ctx, username, password); err != nil {
				logger.Warn("remembered login failed", "user", username, "err", err)
			}
			cancel()
		}
	}

	root := app.New(client, cfg, configPath, logger, model.DateOf(time.Now()))
	p := tea.NewProgram(root, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// waitForBackend polls the backend until it reports connected or the
// configured bound elapses.
func waitForBackend(client backend.Client, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		ctx, cancel := context.WithTimeout(context.Background(), statusPollInterval)
		status := client.Status(ctx)
		cancel()
		if status.Connected {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("backend did not become available within %s; restart the app to try again", timeout)
		}
		time.Sleep(statusPollInterval)
	}
}

// openLogger writes structured logs next to the config file. The TUI owns
// the terminal, so logs never go to stderr while the program runs.
func openLogger(configPath string) (*log.Logger, func(), error) {
	logPath := filepath.Join(filepath.Dir(configPath), "smarttodo.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           log.InfoLevel,
	})
	return logger, func() { f.Close() }, nil
}
