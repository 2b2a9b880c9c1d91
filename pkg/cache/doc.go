// Package cache provides an optional Redis-backed response cache for
// help-center GET requests.
//
// The help-center API emits no usable cache validators (no ETag, no
// Expires), so entries carry a fixed client-chosen TTL instead of
// conditional-request machinery. Caching keeps repeat export runs cheap
// and reduces pressure on the upstream rate limit.
package cache
