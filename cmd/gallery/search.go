// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pixabay-gallery/internal/gallery"
	"github.com/pdiddy/pixabay-gallery/internal/notify"
	"github.com/pdiddy/pixabay-gallery/internal/pixabay"
	"github.com/pdiddy/pixabay-gallery/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "Run one image search and print the hits",
	Long: `Search sends one request to Pixabay for the given query and page and
prints the hits as a table, JSON, or YAML, followed by the notices the web
page would show. --save writes the query and hits to a YAML file.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().Int("page", 1, "results page (40 hits per page)")
	searchCmd.Flags().Bool("json", false, "output hits as JSON")
	searchCmd.Flags().Bool("yaml", false, "output hits as YAML")
	searchCmd.Flags().String("save", "", "write the query and hits to this YAML file")

	rootCmd.AddCommand(searchCmd)
}

// SavedSearch is the on-disk form written by --save.
type SavedSearch struct {
	Query     string          `yaml:"query"`
	Page      int             `yaml:"page"`
	TotalHits int             `yaml:"total_hits"`
	Hits      []types.Hit     `yaml:"hits"`
	Notices   []notify.Notice `yaml:"notices,omitempty"`
	Timestamp time.Time       `yaml:"timestamp"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}

	page, _ := cmd.Flags().GetInt("page")
	if page < 1 {
		return fmt.Errorf("--page must be at least 1")
	}
	text := strings.TrimSpace(strings.Join(args, " "))

	client := pixabay.NewClient(cfg.Pixabay)
	resp, err := client.Search(context.Background(), pixabay.Query{Text: text, Page: page})
	if err != nil {
		fmt.Fprintln(os.Stderr, errorNotice(err))
		return err
	}
	notices, _ := gallery.Evaluate(page, resp)

	if path, _ := cmd.Flags().GetString("save"); path != "" {
		if err := writeSavedSearch(path, SavedSearch{
			Query:     text,
			Page:      page,
			TotalHits: resp.TotalHits,
			Hits:      resp.Hits,
			Notices:   notices,
			Timestamp: time.Now(),
		}); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved %d hits to %s\n", len(resp.Hits), path)
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	yamlOutput, _ := cmd.Flags().GetBool("yaml")
	switch {
	case jsonOutput:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(resp.Hits); err != nil {
			return err
		}
	case yamlOutput:
		if err := yaml.NewEncoder(os.Stdout).Encode(resp.Hits); err != nil {
			return err
		}
	default:
		formatHits(os.Stdout, resp.Hits, page)
	}

	for _, n := range notices {
		fmt.Fprintln(os.Stderr, n)
	}
	return nil
}

// errorNotice picks the notice the web page would show for a failed search.
func errorNotice(err error) notify.Notice {
	if errors.Is(err, pixabay.ErrEmptyQuery) {
		return notify.EmptyQuery()
	}
	return notify.RequestFailed()
}

// formatHits writes hits as a table. Ranks continue across pages.
func formatHits(w io.Writer, hits []types.Hit, page int) {
	if len(hits) == 0 {
		return
	}
	fmt.Fprintf(w, "%-5s  %-10s  %-40s  %7s  %9s  %8s  %9s\n",
		"Rank", "ID", "Tags", "Likes", "Views", "Comments", "Downloads")
	fmt.Fprintln(w, strings.Repeat("-", 102))

	offset := (page - 1) * pixabay.PerPage
	for i, h := range hits {
		fmt.Fprintf(w, "%-5d  %-10d  %-40s  %7d  %9d  %8d  %9d\n",
			offset+i+1, h.ID, truncate(h.Tags, 40), h.Likes, h.Views, h.Comments, h.Downloads)
	}
}

// truncate shortens s to max runes, ending in "..." when cut.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

func writeSavedSearch(path string, s SavedSearch) error {
	data, err := yaml.Marshal(&s)
	if err != nil {
		return fmt.Errorf("marshaling saved search: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
