// Package policy decides who may see and change articles.
//
// The policy is a pure function of the operation, the acting identity and the
// target article. It knows nothing about storage or transport; the usecase
// layer maps a Decision to its own error values.
package policy

import "blog-api/internal/domain/entity"

// Operation names an article operation subject to the policy.
type Operation int

const (
	// OpViewPublic covers the public list and detail reads.
	OpViewPublic Operation = iota
	// OpViewOwnDraft covers the caller's draft list and draft detail.
	OpViewOwnDraft
	// OpListOwnPublished covers the caller's published list.
	OpListOwnPublished
	// OpCreate creates an article owned by the caller.
	OpCreate
	// OpUpdate changes an article by id.
	OpUpdate
	// OpDelete removes an article by id.
	OpDelete
)

func (op Operation) String() string {
	switch op {
	case OpViewPublic:
		return "view_public"
	case OpViewOwnDraft:
		return "view_own_draft"
	case OpListOwnPublished:
		return "list_own_published"
	case OpCreate:
		return "create"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// RequiresIdentity reports whether op fails without an authenticated actor.
func (op Operation) RequiresIdentity() bool {
	return op != OpViewPublic
}

// Decision is the outcome of an authorization check.
type Decision int

const (
	Allow Decision = iota
	Unauthenticated
	NotFound
	Forbidden
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case Unauthenticated:
		return "unauthenticated"
	case NotFound:
		return "not_found"
	case Forbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

// Actor is the authenticated caller. A nil *Actor means no identity.
type Actor struct {
	UserID int64
}

// Scope is the visible set of articles for a list operation.
// A zero OwnerID means any owner.
type Scope struct {
	Status  entity.Status
	OwnerID int64
}

// ScopeFor returns the visible set for a read operation.
// It returns Unauthenticated when op needs an identity and actor is nil.
func ScopeFor(op Operation, actor *Actor) (Scope, Decision) {
	if op.RequiresIdentity() && actor == nil {
		return Scope{}, Unauthenticated
	}
	switch op {
	case OpViewPublic:
		return Scope{Status: entity.StatusPublished}, Allow
	case OpViewOwnDraft:
		return Scope{Status: entity.StatusDraft, OwnerID: actor.UserID}, Allow
	case OpListOwnPublished:
		return Scope{Status: entity.StatusPublished, OwnerID: actor.UserID}, Allow
	default:
		// mutations are not list operations
		return Scope{}, Forbidden
	}
}

// Contains reports whether art falls inside the scope.
func (s Scope) Contains(art *entity.Article) bool {
	if art == nil {
		return false
	}
	if s.Status != "" && art.Status != s.Status {
		return false
	}
	return s.OwnerID == 0 || art.UserID == s.OwnerID
}

// Authorize decides whether actor may perform op on art.
// art is the article resolved by id over the unscoped set; nil means missing.
// For OpCreate art is ignored.
//
// Identity is checked first, then existence, then visibility or ownership.
// Articles outside a read scope are reported as NotFound so their existence
// is not disclosed.
func Authorize(op Operation, actor *Actor, art *entity.Article) Decision {
	if op.RequiresIdentity() && actor == nil {
		return Unauthenticated
	}

	switch op {
	case OpCreate:
		return Allow
	case OpUpdate, OpDelete:
		if art == nil {
			return NotFound
		}
		if !art.OwnedBy(actor.UserID) {
			return Forbidden
		}
		return Allow
	case OpViewPublic, OpViewOwnDraft, OpListOwnPublished:
		scope, d := ScopeFor(op, actor)
		if d != Allow {
			return d
		}
		if !scope.Contains(art) {
			return NotFound
		}
		return Allow
	default:
		return Forbidden
	}
}
