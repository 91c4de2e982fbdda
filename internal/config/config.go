package config

import "time"

// Config is the root configuration for a tweetstream client.
type Config struct {
	Stream StreamConfig `yaml:"stream"`
	Feed   FeedConfig   `yaml:"feed"`
	HTTP   HTTPConfig   `yaml:"http"`
	Log    LogConfig    `yaml:"log"`
}

// StreamConfig holds the WebSocket subscription settings.
type StreamConfig struct {
	URL              string        `yaml:"url"`
	Handshake        string        `yaml:"handshake"` // First message sent after every open
	RetryDelay       time.Duration `yaml:"retry_delay"`
	MaxRetries       int           `yaml:"max_retries"`
	HandshakeTimeout time.Duration `yaml:"handshake_timeout"` // WebSocket upgrade timeout
	PingTimeout      time.Duration `yaml:"ping_timeout"`
	WriteTimeout     time.Duration `yaml:"write_timeout"`
	BufferSize       int           `yaml:"buffer_size"`
}

// FeedConfig holds the in-memory display document settings.
type FeedConfig struct {
	Capacity int    `yaml:"capacity"` // Max panels kept, newest first
	Timezone string `yaml:"timezone"` // IANA name or "Local"
}

// HTTPConfig holds the status server settings.
type HTTPConfig struct {
	Port int `yaml:"port"` // -1 disables the server
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}
