package pagination

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/helpcenter-tools/hc-export/pkg/logging"
)

// Getter is the interface the help-center client must implement for
// single-page fetching.
type Getter interface {
	GetJSON(ctx context.Context, rawURL string, params url.Values) (map[string]any, error)
}

// Walker fetches all pages of a cursor-paginated listing endpoint.
type Walker struct {
	fetcher Getter
	logger  zerolog.Logger
}

// NewWalker creates a new cursor walker.
func NewWalker(fetcher Getter) *Walker {
	return &Walker{
		fetcher: fetcher,
		logger:  logging.NewLogger("paginator"),
	}
}

// All walks the listing starting at startURL and returns the concatenated
// items found under itemsKey, in page order. Non-object entries in the
// items array are skipped.
func (w *Walker) All(ctx context.Context, startURL, itemsKey string) ([]map[string]any, error) {
	start := time.Now()

	var items []map[string]any
	nextPage := startURL
	pages := 0

	for nextPage != "" {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data, err := w.fetcher.GetJSON(ctx, nextPage, nil)
		if err != nil {
			return nil, fmt.Errorf("fetch page %d: %w", pages+1, err)
		}
		pages++

		pageItems, _ := data[itemsKey].([]any)
		for _, item := range pageItems {
			if obj, ok := item.(map[string]any); ok {
				items = append(items, obj)
			}
		}

		w.logger.Debug().
			Str("url", nextPage).
			Int("page", pages).
			Int("page_items", len(pageItems)).
			Msg("Fetched listing page")

		nextPage, _ = data["next_page"].(string)
	}

	w.logger.Info().
		Str("items_key", itemsKey).
		Int("pages", pages).
		Int("items", len(items)).
		Dur("duration", time.Since(start)).
		Msg("Listing walk complete")

	return items, nil
}
