// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pixabay-gallery/internal/gallery"
	"github.com/pdiddy/pixabay-gallery/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(types.HistoryConfig{
		DBPath:     filepath.Join(t.TempDir(), "data", "history.db"),
		MaxResults: 10,
	})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func seed(t *testing.T, s *Store) time.Time {
	t.Helper()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	fetches := []gallery.Fetch{
		{Query: "cats", Page: 1, Hits: 40, TotalHits: 500, Outcome: gallery.OutcomeHits, At: base},
		{Query: "cats", Page: 2, Hits: 40, TotalHits: 500, Outcome: gallery.OutcomeHits, At: base.Add(time.Second)},
		{Query: "qwerty", Page: 1, Outcome: gallery.OutcomeEmpty, At: base.Add(2 * time.Second)},
		{Query: "dogs", Page: 1, Outcome: gallery.OutcomeFailure, Err: errors.New("HTTP 500"), At: base.Add(3 * time.Second)},
	}
	for _, f := range fetches {
		require.NoError(t, s.Record(context.Background(), f))
	}
	return base
}

func TestNewStore_EmptyPath(t *testing.T) {
	_, err := NewStore(types.HistoryConfig{})
	assert.Error(t, err)
}

func TestNewStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	s, err := NewStore(types.HistoryConfig{DBPath: path})
	require.NoError(t, err)
	require.NoError(t, s.Record(context.Background(), gallery.Fetch{Query: "cats", Page: 1, Outcome: gallery.OutcomeHits}))
	require.NoError(t, s.Close())

	s, err = NewStore(types.HistoryConfig{DBPath: path})
	require.NoError(t, err)
	defer s.Close()

	entries, err := s.Recent(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRecent_NewestFirst(t *testing.T) {
	s := testStore(t)
	base := seed(t, s)

	entries, err := s.Recent(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, entries, 4)

	assert.Equal(t, "dogs", entries[0].Query)
	assert.Equal(t, "failure", entries[0].Outcome)
	assert.Equal(t, "HTTP 500", entries[0].Error)
	assert.True(t, entries[0].At.Equal(base.Add(3*time.Second)))

	assert.Equal(t, "cats", entries[3].Query)
	assert.Equal(t, 1, entries[3].Page)
	assert.Equal(t, 40, entries[3].Hits)
	assert.Equal(t, 500, entries[3].TotalHits)
	assert.Empty(t, entries[3].Error)
}

func TestRecent_Limit(t *testing.T) {
	s := testStore(t)
	seed(t, s)

	entries, err := s.Recent(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestRecord_DefaultsTimestamp(t *testing.T) {
	s := testStore(t)
	before := time.Now().Add(-time.Second)
	require.NoError(t, s.Record(context.Background(), gallery.Fetch{Query: "cats", Page: 1, Outcome: gallery.OutcomeHits}))

	entries, err := s.Recent(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].At.After(before))
}

func TestQueries(t *testing.T) {
	s := testStore(t)
	seed(t, s)

	stats, err := s.Queries(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, stats, 3)

	assert.Equal(t, "dogs", stats[0].Query)
	assert.Equal(t, "qwerty", stats[1].Query)

	cats := stats[2]
	assert.Equal(t, "cats", cats.Query)
	assert.Equal(t, 2, cats.Fetches)
	assert.Equal(t, 2, cats.MaxPage)
	assert.Equal(t, 500, cats.TotalHits)
}

func TestExport_YAML(t *testing.T) {
	s := testStore(t)
	seed(t, s)

	path := filepath.Join(t.TempDir(), "history.yaml")
	n, err := s.Export(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entries []Entry
	require.NoError(t, yaml.Unmarshal(data, &entries))
	require.Len(t, entries, 4)
	assert.Equal(t, "dogs", entries[0].Query)
}

func TestExport_JSON(t *testing.T) {
	s := testStore(t)
	seed(t, s)

	path := filepath.Join(t.TempDir(), "history.json")
	_, err := s.Export(context.Background(), path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entries []Entry
	require.NoError(t, json.Unmarshal(data, &entries))
	assert.Len(t, entries, 4)
}

func TestExport_EmptyLog(t *testing.T) {
	s := testStore(t)

	path := filepath.Join(t.TempDir(), "history.json")
	n, err := s.Export(context.Background(), path)
	require.NoError(t, err)
	assert.Zero(t, n)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestStore_SatisfiesRecorder(t *testing.T) {
	var _ gallery.Recorder = (*Store)(nil)
}
