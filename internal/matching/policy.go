package matching

import "copytrace/internal/domain"

// ModePolicy evaluates the mode precondition of spec.md section 4.4
// against the two configured users. It is checked before the kind
// predicate inside Index.TryAttach.
type ModePolicy struct {
	Mode  domain.Mode
	UserA int32
	UserB int32
}

func (p ModePolicy) inSet(userID int32) bool {
	return userID == p.UserA || userID == p.UserB
}

// Evaluate reports whether a (parentUser, childUser) pair is an
// accepted attachment under the configured mode, and if so whether it
// is a Mode B violation (parent and child share a user id).
//
// Mode A: accept iff {parentUser, childUser} == {UserA, UserB}.
// Mode B: accept iff {parentUser, childUser} ⊆ {UserA, UserB}; a pair
// with parentUser == childUser is tagged as a violation.
func (p ModePolicy) Evaluate(parentUser, childUser int32) (accept, violation bool) {
	if !p.inSet(parentUser) || !p.inSet(childUser) {
		return false, false
	}
	switch p.Mode {
	case domain.ModeA:
		return parentUser != childUser, false
	case domain.ModeB:
		return true, parentUser == childUser
	default:
		return false, false
	}
}
