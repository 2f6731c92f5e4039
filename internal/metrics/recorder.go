// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package metrics

import (
	"context"

	"github.com/pdiddy/pixabay-gallery/internal/gallery"
)

// Recorder counts fetches by outcome and passes them on to Next, if set.
type Recorder struct {
	Next gallery.Recorder
}

// Record implements gallery.Recorder.
func (r Recorder) Record(ctx context.Context, f gallery.Fetch) error {
	FetchesTotal.WithLabelValues(string(f.Outcome)).Inc()
	if r.Next == nil {
		return nil
	}
	return r.Next.Record(ctx, f)
}
