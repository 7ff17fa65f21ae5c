// Package pathutil parses record ids from request paths and maps request
// paths to low-cardinality metric labels.
package pathutil

import "strings"

// UnmatchedPath is the label for paths that match no known route.
const UnmatchedPath = "/:unmatched"

const swaggerPrefix = "/swagger/"

// routes are the label templates; ":id" matches any single segment so that
// malformed ids, which still reach handlers, share their route's label.
// Static routes are listed before the wildcard route that would shadow them.
var routes = []string{
	"/health",
	"/ready",
	"/live",
	"/metrics",
	"/api/v1/auth",
	"/api/v1/auth/sign_in",
	"/api/v1/auth/sign_out",
	"/api/v1/articles",
	"/api/v1/articles/drafts",
	"/api/v1/articles/drafts/:id",
	"/api/v1/articles/:id",
	"/api/v1/current/articles",
}

// NormalizePath returns the route label for path. The query string and a
// trailing slash are ignored, anything under /swagger/ collapses to
// "/swagger/*" and unknown paths become UnmatchedPath.
//
//	NormalizePath("/api/v1/articles/123")      // "/api/v1/articles/:id"
//	NormalizePath("/api/v1/articles/drafts/7") // "/api/v1/articles/drafts/:id"
//	NormalizePath("/api/v1/articles/drafts")   // "/api/v1/articles/drafts"
//	NormalizePath("/wp-login.php")             // "/:unmatched"
func NormalizePath(path string) string {
	path, _, _ = strings.Cut(path, "?")
	if strings.HasPrefix(path, swaggerPrefix) {
		return swaggerPrefix + "*"
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}

	for _, tmpl := range routes {
		if matches(tmpl, path) {
			return tmpl
		}
	}
	return UnmatchedPath
}

// matches compares tmpl and path segment by segment.
func matches(tmpl, path string) bool {
	for {
		ts, trest, tmore := strings.Cut(tmpl, "/")
		ps, prest, pmore := strings.Cut(path, "/")
		if tmore != pmore {
			return false
		}
		if ts != ps && (ts != ":id" || ps == "") {
			return false
		}
		if !tmore {
			return true
		}
		tmpl, path = trest, prest
	}
}

// GetExpectedCardinality is the number of distinct labels NormalizePath can return.
func GetExpectedCardinality() int {
	return len(routes) + 2 // swagger, unmatched
}
