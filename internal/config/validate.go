package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"
)

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	if err := c.Stream.validate("stream"); err != nil {
		return err
	}

	if c.Feed.Capacity < 1 {
		return errors.New("feed.capacity must be >= 1")
	}
	if _, err := c.Feed.Location(); err != nil {
		return fmt.Errorf("feed.timezone: %w", err)
	}

	if c.HTTP.Port != -1 && (c.HTTP.Port < 1 || c.HTTP.Port > 65535) {
		return fmt.Errorf("http.port must be between 1 and 65535 (or -1 to disable), got %d", c.HTTP.Port)
	}

	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}

	return nil
}

func (s *StreamConfig) validate(prefix string) error {
	if s.URL == "" {
		return fmt.Errorf("%s.url is required", prefix)
	}
	u, err := url.Parse(s.URL)
	if err != nil {
		return fmt.Errorf("%s.url: %w", prefix, err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return fmt.Errorf("%s.url scheme must be ws or wss, got %q", prefix, u.Scheme)
	}
	if s.Handshake == "" {
		return fmt.Errorf("%s.handshake is required", prefix)
	}
	if s.RetryDelay < 0 {
		return fmt.Errorf("%s.retry_delay must be >= 0", prefix)
	}
	if s.MaxRetries < 1 {
		return fmt.Errorf("%s.max_retries must be >= 1", prefix)
	}
	if s.BufferSize < 1 {
		return fmt.Errorf("%s.buffer_size must be >= 1", prefix)
	}
	return nil
}

// Location resolves the configured timezone.
func (f *FeedConfig) Location() (*time.Location, error) {
	if f.Timezone == "" || f.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(f.Timezone)
}

// SlogLevel maps the configured level name to a slog.Level.
func (l *LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("log.level %q is not a valid level", l.Level)
	}
	return level, nil
}
