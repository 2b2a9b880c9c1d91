package cache

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Key represents a unique identifier for a cached help-center response.
type Key struct {
	// URL is the full request URL, query string included.
	URL string
}

// String generates a deterministic cache key string.
// Format: hc:host:path:query1=val1:query2=val2
//
// Query parameters are sorted so that equivalent URLs with differently
// ordered queries share one entry.
func (k Key) String() string {
	parts := []string{"hc"}

	parsed, err := url.Parse(k.URL)
	if err != nil {
		// Unparseable URLs still get a stable key.
		return "hc:" + k.URL
	}

	if parsed.Host != "" {
		parts = append(parts, parsed.Host)
	}
	if path := strings.Trim(parsed.Path, "/"); path != "" {
		parts = append(parts, path)
	}

	query := parsed.Query()
	if len(query) > 0 {
		queryKeys := make([]string, 0, len(query))
		for key := range query {
			queryKeys = append(queryKeys, key)
		}
		sort.Strings(queryKeys)

		for _, key := range queryKeys {
			parts = append(parts, fmt.Sprintf("%s=%s", key, query.Get(key)))
		}
	}

	return strings.Join(parts, ":")
}
