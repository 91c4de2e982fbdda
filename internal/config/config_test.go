package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	yaml := `
stream:
  url: wss://stream.example.com/tweets
  handshake: subscribe
  retry_delay: 2s
  max_retries: 4
feed:
  capacity: 25
  timezone: UTC
http:
  port: 9001
log:
  level: debug
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Stream.URL != "wss://stream.example.com/tweets" {
		t.Errorf("Stream.URL = %q, want %q", cfg.Stream.URL, "wss://stream.example.com/tweets")
	}
	if cfg.Stream.RetryDelay != 2*time.Second {
		t.Errorf("Stream.RetryDelay = %v, want 2s", cfg.Stream.RetryDelay)
	}
	if cfg.Stream.MaxRetries != 4 {
		t.Errorf("Stream.MaxRetries = %d, want 4", cfg.Stream.MaxRetries)
	}
	if cfg.Feed.Capacity != 25 {
		t.Errorf("Feed.Capacity = %d, want 25", cfg.Feed.Capacity)
	}
	if cfg.HTTP.Port != 9001 {
		t.Errorf("HTTP.Port = %d, want 9001", cfg.HTTP.Port)
	}
}

func TestLoadWithEnvSubstitution(t *testing.T) {
	t.Setenv("TEST_STREAM_HOST", "tweets.internal:7000")

	yaml := `
stream:
  url: ws://${TEST_STREAM_HOST}/stream
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Stream.URL != "ws://tweets.internal:7000/stream" {
		t.Errorf("Stream.URL = %q, want %q", cfg.Stream.URL, "ws://tweets.internal:7000/stream")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "read config file") {
		t.Errorf("error = %q, want read config file prefix", err.Error())
	}
}

func TestLoadWithDefaults(t *testing.T) {
	yaml := `
stream:
  url: ws://localhost:1234/tweets
`
	path := writeTempFile(t, yaml)

	cfg, err := LoadWithDefaults(path)
	if err != nil {
		t.Fatalf("LoadWithDefaults failed: %v", err)
	}

	if cfg.Stream.Handshake != DefaultHandshake {
		t.Errorf("Stream.Handshake = %q, want default %q", cfg.Stream.Handshake, DefaultHandshake)
	}
	if cfg.Stream.RetryDelay != DefaultRetryDelay {
		t.Errorf("Stream.RetryDelay = %v, want default %v", cfg.Stream.RetryDelay, DefaultRetryDelay)
	}
	if cfg.Stream.MaxRetries != DefaultMaxRetries {
		t.Errorf("Stream.MaxRetries = %d, want default %d", cfg.Stream.MaxRetries, DefaultMaxRetries)
	}
	if cfg.Feed.Capacity != DefaultFeedCapacity {
		t.Errorf("Feed.Capacity = %d, want default %d", cfg.Feed.Capacity, DefaultFeedCapacity)
	}
	if cfg.HTTP.Port != DefaultHTTPPort {
		t.Errorf("HTTP.Port = %d, want default %d", cfg.HTTP.Port, DefaultHTTPPort)
	}
	if cfg.Log.Level != DefaultLogLevel {
		t.Errorf("Log.Level = %q, want default %q", cfg.Log.Level, DefaultLogLevel)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.Stream.RetryDelay != 5*time.Second {
		t.Errorf("RetryDelay = %v, want 5s", cfg.Stream.RetryDelay)
	}
	if cfg.Stream.MaxRetries != 10 {
		t.Errorf("MaxRetries = %d, want 10", cfg.Stream.MaxRetries)
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		cfg := Default()
		return *cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "missing url",
			mutate:  func(c *Config) { c.Stream.URL = "" },
			wantErr: "stream.url is required",
		},
		{
			name:    "http scheme",
			mutate:  func(c *Config) { c.Stream.URL = "http://localhost/tweets" },
			wantErr: `stream.url scheme must be ws or wss, got "http"`,
		},
		{
			name:    "missing handshake",
			mutate:  func(c *Config) { c.Stream.Handshake = "" },
			wantErr: "stream.handshake is required",
		},
		{
			name:    "negative max retries",
			mutate:  func(c *Config) { c.Stream.MaxRetries = -1 },
			wantErr: "stream.max_retries must be >= 1",
		},
		{
			name:    "zero feed capacity",
			mutate:  func(c *Config) { c.Feed.Capacity = 0 },
			wantErr: "feed.capacity must be >= 1",
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.HTTP.Port = 70000 },
			wantErr: "http.port must be between 1 and 65535 (or -1 to disable), got 70000",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Log.Level = "loud" },
			wantErr: `log.level "loud" is not a valid level`,
		},
		{
			name:    "http disabled",
			mutate:  func(c *Config) { c.HTTP.Port = -1 },
			wantErr: "",
		},
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
			} else {
				if err == nil {
					t.Errorf("Validate() expected error containing %q, got nil", tt.wantErr)
				} else if err.Error() != tt.wantErr {
					t.Errorf("Validate() error = %q, want %q", err.Error(), tt.wantErr)
				}
			}
		})
	}
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
	}

	for _, tt := range tests {
		lc := LogConfig{Level: tt.level}
		got, err := lc.SlogLevel()
		if err != nil {
			t.Errorf("SlogLevel(%q) error: %v", tt.level, err)
			continue
		}
		if got != tt.want {
			t.Errorf("SlogLevel(%q) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestFeedLocation(t *testing.T) {
	f := FeedConfig{Timezone: "UTC"}
	loc, err := f.Location()
	if err != nil {
		t.Fatalf("Location failed: %v", err)
	}
	if loc != time.UTC {
		t.Errorf("Location = %v, want UTC", loc)
	}

	f = FeedConfig{Timezone: "Not/AZone"}
	if _, err := f.Location(); err == nil {
		t.Error("expected error for unknown timezone")
	}
}

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}
