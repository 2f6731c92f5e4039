// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pixabay-gallery/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent image searches",
	Long: `History lists the requests the server sent to Pixabay, newest first.
--queries groups them per search text. --export writes the whole log to a
YAML file, or to JSON when the path ends in .json.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 0, "number of entries to list (default 20)")
	historyCmd.Flags().Bool("queries", false, "summarise per query instead of per request")
	historyCmd.Flags().Bool("json", false, "output as JSON")
	historyCmd.Flags().String("export", "", "write the full log to this file")
	historyCmd.Flags().String("history-db", "", "SQLite history database (default data/history.db)")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	bindFlags(cmd)
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	if cfg.History.DBPath == "" {
		return fmt.Errorf("history is disabled: history.db_path is empty")
	}

	store, err := history.NewStore(cfg.History)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()

	if path, _ := cmd.Flags().GetString("export"); path != "" {
		n, err := store.Export(ctx, path)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Exported %d entries to %s\n", n, path)
		return nil
	}

	limit, _ := cmd.Flags().GetInt("limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	if byQuery, _ := cmd.Flags().GetBool("queries"); byQuery {
		stats, err := store.Queries(ctx, limit)
		if err != nil {
			return err
		}
		if jsonOutput {
			return writeJSON(os.Stdout, stats)
		}
		formatQueryStats(os.Stdout, stats)
		return nil
	}

	entries, err := store.Recent(ctx, limit)
	if err != nil {
		return err
	}
	if jsonOutput {
		return writeJSON(os.Stdout, entries)
	}
	formatEntries(os.Stdout, entries)
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatEntries(w io.Writer, entries []history.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No searches recorded.")
		return
	}

	fmt.Fprintf(w, "%-19s  %-30s  %4s  %4s  %9s  %s\n",
		"Time", "Query", "Page", "Hits", "TotalHits", "Outcome")
	fmt.Fprintln(w, strings.Repeat("-", 90))

	for _, e := range entries {
		outcome := e.Outcome
		if e.Error != "" {
			outcome += ": " + truncate(e.Error, 40)
		}
		fmt.Fprintf(w, "%-19s  %-30s  %4d  %4d  %9d  %s\n",
			e.At.Local().Format("2006-01-02 15:04:05"), truncate(e.Query, 30),
			e.Page, e.Hits, e.TotalHits, outcome)
	}
}

func formatQueryStats(w io.Writer, stats []history.QueryStats) {
	if len(stats) == 0 {
		fmt.Fprintln(w, "No searches recorded.")
		return
	}

	fmt.Fprintf(w, "%-30s  %7s  %7s  %9s  %s\n", "Query", "Fetches", "MaxPage", "TotalHits", "Last")
	fmt.Fprintln(w, strings.Repeat("-", 80))

	for _, s := range stats {
		fmt.Fprintf(w, "%-30s  %7d  %7d  %9d  %s\n",
			truncate(s.Query, 30), s.Fetches, s.MaxPage, s.TotalHits,
			s.LastAt.Local().Format("2006-01-02 15:04:05"))
	}
}
