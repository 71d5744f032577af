// Package gateway maps inbound requests to the backend that owns their URL namespace.
package gateway

import (
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Predicate decides whether a route accepts a request. It must depend on the request
// alone (path, optionally method) and hold no state of its own.
type Predicate func(r *http.Request) bool

// PathPrefix matches requests whose path starts with one of prefixes. The comparison is
// literal, so "/api/cart" also matches "/api/cartoon".
func PathPrefix(prefixes ...string) Predicate {
	return func(r *http.Request) bool {
		for _, p := range prefixes {
			if hasPathPrefix(r.URL.Path, p) {
				return true
			}
		}

		return false
	}
}

// Route binds a predicate to one backend.
type Route struct {
	Name string
	// Prefixes are kept next to the predicate so the table can report overlaps.
	Prefixes  []string
	Predicate Predicate
	Target    *url.URL
	Timeout   time.Duration
}

func hasPathPrefix(path, prefix string) bool {
	return strings.HasPrefix(path, prefix)
}

func prefixesOverlap(a, b string) bool {
	return hasPathPrefix(a, b) || hasPathPrefix(b, a)
}
