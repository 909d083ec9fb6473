package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/notexe/reminders/internal/config"
	"github.com/notexe/reminders/internal/reminder"
	"github.com/notexe/reminders/internal/repl"
	"github.com/notexe/reminders/internal/ui"
)

func main() {
	configPath := flag.String("config", config.GetDefaultConfigPath(), "Path to configuration file")
	dataFile := flag.String("file", "", "Reminder file to open on start (overrides config)")
	backend := flag.String("backend", "", "Storage backend: auto, json, sqlite (overrides config)")
	noColor := flag.Bool("no-color", false, "Disable colored output")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Apply CLI flag overrides
	if *dataFile != "" {
		cfg.Storage.DataFile = *dataFile
	}
	if *backend != "" {
		cfg.Storage.Backend = *backend
	}
	if *noColor || !ui.IsTerminal(os.Stdout) {
		cfg.UI.ColoredOutput = false
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	session, err := reminder.NewSession(reminder.NewStore(), cfg.Storage.DataFile, cfg.Storage.Backend)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating session: %v\n", err)
		os.Exit(1)
	}

	// A broken default file is reported; the shell still starts with an
	// empty list.
	if err := session.LoadDefault(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to load reminders from %s: %v\n", cfg.Storage.DataFile, err)
	}

	replInstance, err := repl.NewREPL(session, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating REPL: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
		replInstance.Stop()
	}()

	if err := replInstance.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
