// tweetstream subscribes to a tweet stream over WebSocket and renders each
// tweet to the console, reconnecting on failure.
// Usage: go run ./cmd/tweetstream --config configs/tweetstream.example.yaml
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rickgao/tweetstream/internal/config"
	"github.com/rickgao/tweetstream/internal/connection"
	"github.com/rickgao/tweetstream/internal/metrics"
	"github.com/rickgao/tweetstream/internal/notify"
	"github.com/rickgao/tweetstream/internal/render"
	"github.com/rickgao/tweetstream/internal/status"
	"github.com/rickgao/tweetstream/internal/version"
)

const notificationHistory = 100

var errConnectionLost = errors.New("connection lost: retries exhausted")

func main() {
	configPath := flag.String("config", "", "path to config file (defaults are used when empty)")
	showVersion := flag.Bool("version", false, "print version and exit")
	statsInterval := flag.Duration("stats", time.Minute, "interval between stats log lines (0 disables)")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	level, err := cfg.Log.SlogLevel()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid log level: %v\n", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))

	logger.Info("starting tweetstream",
		"version", version.String(),
		"url", cfg.Stream.URL,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	if err := run(ctx, cfg, *statsInterval, logger); err != nil {
		logger.Error("tweetstream exited", "error", err)
		os.Exit(1)
	}
	logger.Info("tweetstream stopped")
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		cfg := config.Default()
		return cfg, cfg.Validate()
	}
	return config.LoadAndValidate(path)
}

// run streams until ctx is cancelled (nil) or the retry budget runs out
// (errConnectionLost).
func run(ctx context.Context, cfg *config.Config, statsInterval time.Duration, logger *slog.Logger) error {
	loc, err := cfg.Feed.Location()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := metrics.New()

	feed := render.NewFeed(cfg.Feed.Capacity)
	renderer := render.NewRenderer(feed, os.Stdout, loc, logger)

	history := notify.NewRecorder(notificationHistory)
	notifier := notify.Multi{
		notify.NewConsole(os.Stdout, logger),
		history,
	}

	mgr := connection.NewManager(
		managerConfig(cfg),
		m.Renderer(renderer),
		m.Notifier(notifier),
		logger,
	)
	m.RegisterManager(mgr)

	g, gctx := errgroup.WithContext(ctx)

	if cfg.HTTP.Port > 0 {
		srv := &http.Server{
			Addr: fmt.Sprintf(":%d", cfg.HTTP.Port),
			Handler: status.NewHandler(status.Sources{
				Manager:       mgr,
				Feed:          feed,
				Notifications: history,
				Metrics:       m.Handler(),
				Version:       version.String(),
			}, logger),
			ReadHeaderTimeout: 5 * time.Second,
		}

		g.Go(func() error {
			logger.Info("starting status server", "port", cfg.HTTP.Port)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("status server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	if err := mgr.Start(gctx); err != nil {
		cancel()
		g.Wait()
		return fmt.Errorf("start connection manager: %w", err)
	}

	if statsInterval > 0 {
		g.Go(func() error {
			reportStats(gctx, mgr, feed, statsInterval, logger)
			return nil
		})
	}

	g.Go(func() error {
		select {
		case <-mgr.Done():
			if ctx.Err() == nil {
				// Terminal without a shutdown request means the retry budget ran out.
				return errConnectionLost
			}
			return nil
		case <-gctx.Done():
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()
			return mgr.Stop(shutdownCtx)
		}
	})

	return g.Wait()
}

// reportStats logs a session summary every interval until ctx is done.
func reportStats(ctx context.Context, mgr connection.Manager, feed *render.Feed, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-mgr.Done():
			return
		case <-ticker.C:
			stats := mgr.Stats()
			logger.Info("stats",
				"state", stats.State,
				"attempt", stats.Attempt,
				"dials", stats.Dials,
				"reconnects", stats.Reconnects,
				"events", stats.Events,
				"decode_errors", stats.DecodeErrors,
				"feed_panels", feed.Len(),
			)
		}
	}
}

// managerConfig maps the YAML stream section onto the connection manager.
func managerConfig(cfg *config.Config) connection.ManagerConfig {
	s := cfg.Stream
	return connection.ManagerConfig{
		Client: connection.ClientConfig{
			URL:              s.URL,
			UserAgent:        version.UserAgent(),
			HandshakeTimeout: s.HandshakeTimeout,
			PingTimeout:      s.PingTimeout,
			WriteTimeout:     s.WriteTimeout,
			BufferSize:       s.BufferSize,
		},
		Handshake:  s.Handshake,
		RetryDelay: s.RetryDelay,
		MaxRetries: s.MaxRetries,
	}
}
