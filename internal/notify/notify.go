// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package notify defines the toast notices shown to the visitor and the
// display options they share.
package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/pixabay-gallery/pkg/types"
)

// Severity selects the toast style.
type Severity string

const (
	Success Severity = "success"
	Warning Severity = "warning"
	Info    Severity = "info"
	Failure Severity = "failure"
)

// ParseSeverity maps s to a Severity. Unknown values fall back to Info.
func ParseSeverity(s string) Severity {
	switch Severity(strings.ToLower(strings.TrimSpace(s))) {
	case Success:
		return Success
	case Warning:
		return Warning
	case Failure:
		return Failure
	default:
		return Info
	}
}

// Notice is one toast.
type Notice struct {
	Severity Severity `json:"severity" yaml:"severity"`
	Message  string   `json:"message" yaml:"message"`
}

func (n Notice) String() string {
	return fmt.Sprintf("[%s] %s", n.Severity, n.Message)
}

// Options are the display settings applied to every toast.
type Options struct {
	Position     string `json:"position"`
	TimeoutMS    int64  `json:"timeout"`
	BorderRadius string `json:"borderRadius"`
}

const (
	defaultPosition     = "bottom-right"
	defaultTimeout      = 3 * time.Second
	defaultBorderRadius = "3px"
)

// DefaultOptions returns bottom-right, 3000 ms, 3px.
func DefaultOptions() Options {
	return OptionsFrom(types.NotifyConfig{})
}

// OptionsFrom fills unset fields of cfg with the defaults.
func OptionsFrom(cfg types.NotifyConfig) Options {
	o := Options{
		Position:     cfg.Position,
		TimeoutMS:    cfg.Timeout.Milliseconds(),
		BorderRadius: cfg.BorderRadius,
	}
	if o.Position == "" {
		o.Position = defaultPosition
	}
	if o.TimeoutMS <= 0 {
		o.TimeoutMS = defaultTimeout.Milliseconds()
	}
	if o.BorderRadius == "" {
		o.BorderRadius = defaultBorderRadius
	}
	return o
}

// Found announces the match count of a new search.
func Found(totalHits int) Notice {
	return Notice{Severity: Success, Message: fmt.Sprintf("Hooray! We found %d images.", totalHits)}
}

// NoMatches reports an empty result set.
func NoMatches() Notice {
	return Notice{Severity: Warning, Message: "Sorry, there are no images matching your search query. Please try again."}
}

// EndOfResults reports that the last page has been shown.
func EndOfResults() Notice {
	return Notice{Severity: Info, Message: "We're sorry, but you've reached the end of search results."}
}

// RequestFailed is the catch-all for failed fetches.
func RequestFailed() Notice {
	return Notice{Severity: Failure, Message: "An error occurred. Please try again later."}
}

// EmptyQuery asks the visitor to type something before searching.
func EmptyQuery() Notice {
	return Notice{Severity: Warning, Message: "Please enter a search query."}
}
