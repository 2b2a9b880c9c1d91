// Package pagination walks cursor-style paginated help-center listing
// endpoints to completion.
//
// Each listing response carries its items under an endpoint-specific key
// (e.g. "articles") and a "next_page" URL pointing at the following page;
// a null or absent next_page terminates the walk. Items are accumulated
// in page order, preserving within-page order.
//
// Example usage:
//
//	walker := pagination.NewWalker(hcClient)
//	items, err := walker.All(ctx, baseURL+"/api/v2/help_center/articles.json", "articles")
//
// Duplicate items across pages are passed through as-is: the walker is a
// faithful accumulation of what the API returned, and deduplication would
// mask upstream paging bugs.
package pagination
