package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultStreamURL        = "ws://localhost:9000/tweets"
	DefaultHandshake        = "subscribe"
	DefaultRetryDelay       = 5 * time.Second
	DefaultMaxRetries       = 10
	DefaultHandshakeTimeout = 10 * time.Second
	DefaultPingTimeout      = 60 * time.Second
	DefaultWriteTimeout     = 5 * time.Second
	DefaultBufferSize       = 1000
	DefaultFeedCapacity     = 100
	DefaultTimezone         = "Local"
	DefaultHTTPPort         = 8080
	DefaultLogLevel         = "info"
)

// ApplyDefaults fills every zero-valued optional field.
func (c *Config) ApplyDefaults() {
	// Stream defaults
	if c.Stream.URL == "" {
		c.Stream.URL = DefaultStreamURL
	}
	if c.Stream.Handshake == "" {
		c.Stream.Handshake = DefaultHandshake
	}
	if c.Stream.RetryDelay == 0 {
		c.Stream.RetryDelay = DefaultRetryDelay
	}
	if c.Stream.MaxRetries == 0 {
		c.Stream.MaxRetries = DefaultMaxRetries
	}
	if c.Stream.HandshakeTimeout == 0 {
		c.Stream.HandshakeTimeout = DefaultHandshakeTimeout
	}
	if c.Stream.PingTimeout == 0 {
		c.Stream.PingTimeout = DefaultPingTimeout
	}
	if c.Stream.WriteTimeout == 0 {
		c.Stream.WriteTimeout = DefaultWriteTimeout
	}
	if c.Stream.BufferSize == 0 {
		c.Stream.BufferSize = DefaultBufferSize
	}

	// Feed defaults
	if c.Feed.Capacity == 0 {
		c.Feed.Capacity = DefaultFeedCapacity
	}
	if c.Feed.Timezone == "" {
		c.Feed.Timezone = DefaultTimezone
	}

	// -1 disables the status server
	if c.HTTP.Port == 0 {
		c.HTTP.Port = DefaultHTTPPort
	}

	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}
