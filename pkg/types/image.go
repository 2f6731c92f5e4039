// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for pixabay-gallery.
package types

// Hit is a single image record returned by the search endpoint. Only the
// two URLs, the tag string and the four counters are rendered; ID and
// PageURL are kept for the CLI and the fetch log.
type Hit struct {
	// ID is the endpoint's numeric image identifier.
	ID int64 `json:"id" yaml:"id"`

	// PageURL is the image's page on the source site.
	PageURL string `json:"pageURL,omitempty" yaml:"page_url,omitempty"`

	// Tags is a comma-separated keyword list, used as the alt text.
	Tags string `json:"tags" yaml:"tags"`

	// WebformatURL is the display-size image (640px max).
	WebformatURL string `json:"webformatURL" yaml:"webformat_url"`

	// LargeImageURL is the full-size image opened in the lightbox.
	LargeImageURL string `json:"largeImageURL" yaml:"large_image_url"`

	Likes     int `json:"likes" yaml:"likes"`
	Views     int `json:"views" yaml:"views"`
	Comments  int `json:"comments" yaml:"comments"`
	Downloads int `json:"downloads" yaml:"downloads"`
}

// SearchResponse is the decoded body of one search request.
type SearchResponse struct {
	// Total is the number of matches the endpoint knows about.
	Total int `json:"total" yaml:"total"`

	// TotalHits is the number of matches reachable through paging.
	TotalHits int `json:"totalHits" yaml:"total_hits"`

	Hits []Hit `json:"hits" yaml:"hits"`
}
