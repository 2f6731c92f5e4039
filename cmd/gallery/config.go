// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pixabay-gallery/internal/gallery"
	"github.com/pdiddy/pixabay-gallery/internal/pixabay"
	"github.com/pdiddy/pixabay-gallery/internal/secrets"
	"github.com/pdiddy/pixabay-gallery/pkg/types"
)

const (
	defaultTimeout   = 15 * time.Second
	defaultUserAgent = "pixabay-gallery/0.1"
	defaultDBPath    = "data/history.db"
)

// setDefaults registers every key so environment variables resolve for
// keys absent from the config file.
func setDefaults(v *viper.Viper) {
	v.SetDefault("pixabay.api_key", "")
	v.SetDefault("pixabay.base_url", pixabay.DefaultBaseURL)
	v.SetDefault("pixabay.timeout", defaultTimeout)
	v.SetDefault("pixabay.user_agent", defaultUserAgent)

	v.SetDefault("notify.position", "bottom-right")
	v.SetDefault("notify.timeout", 3*time.Second)
	v.SetDefault("notify.border_radius", "3px")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.session_ttl", gallery.DefaultSessionTTL)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.log_level", "info")

	v.SetDefault("history.db_path", defaultDBPath)
	v.SetDefault("history.max_results", 20)
}

// loadConfig decodes v into an AppConfig and fills the API key from
// .secrets/ when neither the config file nor the environment set one.
func loadConfig(v *viper.Viper) (types.AppConfig, error) {
	var cfg types.AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Pixabay.APIKey = secretDefault(secrets.PixabayAPIKey, cfg.Pixabay.APIKey)
	return cfg, nil
}

// flagKeys maps command flags to config keys. Binding happens when a
// command runs, since several commands share a key.
var flagKeys = map[string]string{
	"addr":       "server.addr",
	"history-db": "history.db_path",
}

func bindFlags(cmd *cobra.Command) {
	for flag, key := range flagKeys {
		if f := cmd.Flags().Lookup(flag); f != nil {
			viper.BindPFlag(key, f)
		}
	}
}
