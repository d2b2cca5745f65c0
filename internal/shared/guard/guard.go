// Package guard implements the ownership checks gating every post and
// comment mutation. Instead of burying the checks in each handler, the two
// predicates (authenticated, owner) compose into a single tagged decision the
// handler translates into an HTTP outcome.
package guard

import "github.com/google/uuid"

// Decision is the outcome of an access check.
type Decision int

const (
	// Allowed: the requester may perform the mutation.
	Allowed Decision = iota
	// RedirectLogin: the requester is not authenticated; send them to login.
	RedirectLogin
	// RedirectSafe: authenticated but not the owner; silently redirect to a
	// safe view instead of surfacing an error.
	RedirectSafe
	// Forbidden: authenticated but not the owner, for flows that deny
	// explicitly rather than redirect.
	Forbidden
)

func (d Decision) String() string {
	switch d {
	case Allowed:
		return "allowed"
	case RedirectLogin:
		return "redirect_login"
	case RedirectSafe:
		return "redirect_safe"
	case Forbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

// Principal identifies the requester. The zero value is an anonymous reader.
type Principal struct {
	ID            uuid.UUID
	Authenticated bool
}

// Anonymous is the principal for requests without a valid token.
var Anonymous = Principal{}

// IsAuthenticated reports whether the principal carries a real identity.
func IsAuthenticated(p Principal) bool {
	return p.Authenticated && p.ID != uuid.Nil
}

// IsOwner reports whether the principal owns the entity with the given
// author id.
func IsOwner(p Principal, authorID uuid.UUID) bool {
	return IsAuthenticated(p) && p.ID == authorID
}

// PostMutation gates post edit/delete. Non-authors are redirected to the
// post's detail view with no error surfaced, unlike the comment guard which
// denies outright.
func PostMutation(p Principal, authorID uuid.UUID) Decision {
	if !IsAuthenticated(p) {
		return RedirectLogin
	}
	if !IsOwner(p, authorID) {
		return RedirectSafe
	}
	return Allowed
}

// CommentMutation gates comment edit/delete. Authentication and ownership
// funnel through the one check: unauthenticated requesters go to login,
// authenticated non-authors are denied outright.
func CommentMutation(p Principal, authorID uuid.UUID) Decision {
	if !IsAuthenticated(p) {
		return RedirectLogin
	}
	if !IsOwner(p, authorID) {
		return Forbidden
	}
	return Allowed
}
