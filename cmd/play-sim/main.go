package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/swiftrivia/internal/simulate"
	"github.com/okian/swiftrivia/pkg/logger"
)

// Default configuration constants.
const (
	defaultSessions    = 200
	defaultReplays     = 10
	defaultWorkers     = 4
	defaultCapacity    = 50
	defaultTimeout     = 10 * time.Second
	defaultTestTimeout = 5 * time.Minute
)

func main() {
	var (
		baseURL  = flag.String("url", "http://localhost:9080", "Base URL of the service")
		sessions = flag.Int("sessions", defaultSessions, "Number of sessions to play")
		replays  = flag.Int("replays", defaultReplays, "Number of finished sessions to submit again")
		workers  = flag.Int("workers", defaultWorkers, "Number of concurrent submitters")
		seed     = flag.Int64("seed", time.Now().UnixNano(), "Generator seed")
		capacity = flag.Int("capacity", defaultCapacity, "Expected leaderboard capacity")
		timeout  = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		username = flag.String("username", "Simulator", "Profile name to register")
		verbose  = flag.Bool("verbose", false, "Log the top of the leaderboard")
		help     = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		simulate.ShowHelp()
		return
	}

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTestTimeout)
	defer cancel()
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := &simulate.Config{
		BaseURL:  *baseURL,
		Sessions: *sessions,
		Replays:  *replays,
		Workers:  *workers,
		Seed:     *seed,
		Capacity: *capacity,
		Timeout:  *timeout,
		Username: *username,
		Avatar:   "🎸",
		Verbose:  *verbose,
	}

	if _, err := simulate.Run(ctx, cfg, logger.Named("play-sim")); err != nil {
		logger.Get().Error(ctx, "simulation failed", logger.Error(err))
		stop()
		cancel()
		os.Exit(1)
	}
}
