// Package article provides use cases for reading and changing articles.
// It applies the authorization and visibility policy, runs the lifecycle
// validation and delegates persistence to the article repository.
package article

import "errors"

// Sentinel errors for article use case operations.
var (
	// ErrArticleNotFound indicates that the article does not exist or is not
	// visible to the caller. Drafts of other users are reported this way.
	ErrArticleNotFound = errors.New("article not found")

	// ErrForbidden indicates that the caller is authenticated but does not own
	// the article it tried to change.
	ErrForbidden = errors.New("article belongs to another user")

	// ErrUnauthenticated indicates that the operation requires a signed-in user.
	ErrUnauthenticated = errors.New("authentication required")
)
