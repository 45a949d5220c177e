// Package export writes snapshots of search results as JSONL and ships them
// to S3, a git repository, or a local file, once or on a schedule.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/alfredjeanlab/listings/internal/model"
	"github.com/alfredjeanlab/listings/internal/query"
)

// Searcher composes a search. *query.Searcher satisfies it.
type Searcher interface {
	Search(user *model.User, params query.Params, opts ...query.Option) (query.Relation, error)
}

// header is the first JSONL record of every snapshot.
type header struct {
	Version      string       `json:"version"`
	Type         string       `json:"type"`
	Timestamp    time.Time    `json:"timestamp"`
	ListingCount int          `json:"listing_count"`
	Params       query.Params `json:"params,omitempty"`
}

// record wraps a single JSONL line with a type discriminator.
type record struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Exporter runs one search and serialises its results.
type Exporter struct {
	Searcher Searcher
	// User the search runs as. Nil means an admin, so drafts are included.
	User   *model.User
	Params query.Params
}

func (e *Exporter) user() *model.User {
	if e.User != nil {
		return e.User
	}
	return &model.User{ID: "export", Admin: true}
}

// WriteJSONL runs the search and writes a header followed by one record per
// listing, sorted by ID. It returns the number of listings written.
func (e *Exporter) WriteJSONL(ctx context.Context, w io.Writer) (int, error) {
	rel, err := e.Searcher.Search(e.user(), e.Params)
	if err != nil {
		return 0, fmt.Errorf("compose search: %w", err)
	}
	listings, err := rel.Fetch(ctx)
	if err != nil {
		return 0, err
	}

	sort.Slice(listings, func(i, j int) bool {
		return listings[i].ID < listings[j].ID
	})

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(header{
		Version:      "1",
		Type:         "header",
		Timestamp:    time.Now().UTC(),
		ListingCount: len(listings),
		Params:       e.Params,
	}); err != nil {
		return 0, fmt.Errorf("encode header: %w", err)
	}

	for _, l := range listings {
		if err := enc.Encode(record{Type: "listing", Data: l}); err != nil {
			return 0, fmt.Errorf("encode listing %s: %w", l.ID, err)
		}
	}
	return len(listings), nil
}
