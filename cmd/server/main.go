// Package main provides the radio server entry point.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"

	"github.com/mwindeman/djradio/internal/api"
	"github.com/mwindeman/djradio/internal/app/fetch"
	"github.com/mwindeman/djradio/internal/app/session"
	"github.com/mwindeman/djradio/internal/app/synth"
	"github.com/mwindeman/djradio/internal/app/taste"
	"github.com/mwindeman/djradio/internal/domain/station"
	"github.com/mwindeman/djradio/internal/infra/config"
	"github.com/mwindeman/djradio/internal/infra/kvstore"
	"github.com/mwindeman/djradio/internal/infra/logger"
	"github.com/mwindeman/djradio/internal/infra/spotify"
)

var (
	app        = kingpin.New("djradio-server", "Personal DJ radio server")
	configPath = app.Flag("config", "Path to config file").Default("config/server.yaml").String()
	verbose    = app.Flag("verbose", "Enable verbose (DEBUG) logging").Short('v').Bool()
	logfile    = app.Flag("logfile", "Path to log file (default: stdout)").String()

	// list-voices command
	listVoicesCmd = app.Command("list-voices", "List available synthesis voices and exit")
)

func init() {
	// start command (default) - no need to store the command
	app.Command("start", "Start the server (default)").Default()
}

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	if command == listVoicesCmd.FullCommand() {
		printVoices()
		return
	}

	loggerConfig := logger.Config{
		Output: "stdout",
		Level:  "info",
	}
	if *verbose {
		loggerConfig.Level = "debug"
	}
	if *logfile != "" {
		loggerConfig.Output = *logfile
	}
	if err := logger.Init(loggerConfig); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	zlog.Info().Msgf("Loading config from %s", *configPath)
	cfg, err := config.Load(*configPath)
	if err != nil {
		zlog.Fatal().Msgf("Failed to load config: %v", err)
	}

	if err := run(cfg); err != nil {
		zlog.Error().Msgf("Server error: %v", err)
		os.Exit(1)
	}
}

// run executes the main server logic. Using a separate function ensures
// defer statements are executed even when returning with an error.
func run(cfg *config.Config) error {
	ctx := context.Background()

	catalog, err := spotify.New(ctx, spotify.Config{
		ClientID:     cfg.Spotify.ClientID,
		ClientSecret: cfg.Spotify.ClientSecret,
		RefreshToken: cfg.Spotify.RefreshToken,
	})
	if err != nil {
		return fmt.Errorf("failed to create catalog client: %w", err)
	}

	fetcher, err := fetch.NewFetcherFromConfig(cfg, catalog)
	if err != nil {
		return fmt.Errorf("failed to create fetcher: %w", err)
	}

	kv, err := kvstore.NewFileStore(cfg.Persistence.Dir)
	if err != nil {
		return fmt.Errorf("failed to open persistence dir: %w", err)
	}
	tasteStore := taste.NewStore(kv)
	defer func() {
		if err := tasteStore.Flush(); err != nil {
			zlog.Error().Msgf("Failed to flush taste profile: %v", err)
		}
	}()

	synthesizer, err := synth.NewService(synth.Config{
		WorkerCommand: cfg.Synthesis.WorkerCommand,
		WorkerTimeout: time.Duration(cfg.Synthesis.WorkerTimeoutSec) * time.Second,
		CacheTTL:      time.Duration(cfg.Synthesis.CacheTTLMin) * time.Minute,
		MaxTextLength: cfg.Synthesis.MaxTextLength,
		TempDir:       cfg.Synthesis.TempDir,
	})
	if err != nil {
		return fmt.Errorf("failed to create synthesis service: %w", err)
	}

	stations := make([]*station.Profile, 0, len(cfg.Stations))
	for i := range cfg.Stations {
		stations = append(stations, cfg.Stations[i].Profile())
	}

	sessionMgr := session.NewManager(stations, session.NewPrefStore(kv), session.Deps{
		Fetcher: fetcher,
		Taste:   tasteStore,
		Synth:   synthesizer,
	})

	apiServer := api.NewServer(cfg, synthesizer, sessionMgr)

	server := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: apiServer.Handler(),
	}

	serverErrCh := make(chan error, 1)
	serverStartedCh := make(chan struct{})

	go func() {
		zlog.Info().Msgf("Starting server: addr=%s", cfg.Server.Addr)
		close(serverStartedCh)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- err
		}
	}()

	// Wait for server to start listening
	<-serverStartedCh
	time.Sleep(100 * time.Millisecond)

	// Execute startup hooks after the server is running
	executeHooks(cfg.Server.Hooks.OnStarted, "on_started")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		zlog.Info().Msg("Received shutdown signal...")
	case err := <-serverErrCh:
		return fmt.Errorf("server error: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zlog.Error().Msgf("Failed to shutdown server: %v", err)
	}

	zlog.Info().Msg("Server stopped")

	executeHooks(cfg.Server.Hooks.OnStopped, "on_stopped")

	return nil
}

// printVoices prints the available synthesis voices.
func printVoices() {
	fmt.Println("Available Voices:")
	for _, v := range synth.Voices() {
		fmt.Printf("  %-8s - %s [%s, %s]\n", v.ID, v.Label, v.Language, v.Gender)
	}
}

// executeHooks runs a list of shell commands.
func executeHooks(hooks []string, stage string) {
	if len(hooks) == 0 {
		return
	}

	zlog.Info().Msgf("Executing %s hooks (%d commands)", stage, len(hooks))

	for _, hook := range hooks {
		zlog.Info().Msgf("Executing hook: %s", hook)
		// Use sh -c to allow shell features like redirection or pipes
		cmd := exec.Command("sh", "-c", hook)
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr

		if err := cmd.Run(); err != nil {
			zlog.Error().Err(err).Msgf("Failed to execute hook: %s", hook)
		}
	}
}
