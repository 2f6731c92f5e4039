package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "pixabay-gallery/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// PixabayConfig holds settings for the image search endpoint.
type PixabayConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// APIKey authenticates requests. Usually loaded from .secrets/pixabay-api-key.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// BaseURL overrides the endpoint (default https://pixabay.com/api/).
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty" mapstructure:"base_url"`
}

// NotifyConfig holds the toast display options shared by every notice.
type NotifyConfig struct {
	// Position is the screen corner (default "bottom-right").
	Position string `json:"position" yaml:"position" mapstructure:"position"`

	// Timeout is how long a toast stays visible (default 3s).
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// BorderRadius is a CSS length (default "3px").
	BorderRadius string `json:"border_radius" yaml:"border_radius" mapstructure:"border_radius"`
}

// ServerConfig holds settings for the web server.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`

	// SessionTTL is how long an idle visitor session is kept in memory (default 30m).
	SessionTTL time.Duration `json:"session_ttl" yaml:"session_ttl" mapstructure:"session_ttl"`

	// ShutdownTimeout bounds graceful shutdown (default 10s).
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`

	// LogLevel is one of debug, info, warn, error (default info).
	LogLevel string `json:"log_level" yaml:"log_level" mapstructure:"log_level"`
}

// HistoryConfig holds settings for the fetch log.
type HistoryConfig struct {
	// DBPath is the SQLite file. An empty path disables the log.
	DBPath string `json:"db_path" yaml:"db_path" mapstructure:"db_path"`

	// MaxResults is the default number of entries listed (default 20).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// AppConfig groups all component configurations.
type AppConfig struct {
	Pixabay PixabayConfig `json:"pixabay" yaml:"pixabay" mapstructure:"pixabay"`
	Notify  NotifyConfig  `json:"notify" yaml:"notify" mapstructure:"notify"`
	Server  ServerConfig  `json:"server" yaml:"server" mapstructure:"server"`
	History HistoryConfig `json:"history" yaml:"history" mapstructure:"history"`
}
