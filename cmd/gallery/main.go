// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the gallery CLI: a web page for
// searching Pixabay images, plus one-shot search and history commands.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pixabay-gallery/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback if set, otherwise the secret value for key.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the gallery CLI.
var rootCmd = &cobra.Command{
	Use:   "gallery",
	Short: "Search Pixabay images by keyword",
	Long: `gallery serves a web page for searching the Pixabay image library by
keyword. Results arrive 40 at a time, a "Load more" button appends the next
page, and every image opens in a lightbox.

The serve subcommand runs the page. search runs a single query from the
terminal, and history lists the searches the server has made.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./gallery.yaml or ~/.config/pixabay-gallery/gallery.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	viper.BindPFlag("server.log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	if loaded, err := secrets.LoadDotEnv(".env.local", ".env"); err != nil {
		fmt.Fprintln(os.Stderr, "warning:", err)
	} else if len(loaded) > 0 {
		fmt.Fprintln(os.Stderr, "Loaded env files:", strings.Join(loaded, ", "))
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("gallery")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pixabay-gallery"))
		}
	}

	setDefaults(viper.GetViper())

	viper.SetEnvPrefix("GALLERY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
