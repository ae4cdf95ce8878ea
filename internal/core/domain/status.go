package domain

import "time"

// Account lifecycle statuses as stored by the credential store.
// The store is authoritative; this package only classifies snapshots.
const (
	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusSuspended = "suspended"
	StatusPending   = "pending"
)

// AccountSnapshot is the subset of an account record the evaluator needs.
type AccountSnapshot struct {
	Approved  bool
	Status    string
	ExpiresAt *time.Time
}

// EvaluateAccount classifies an account snapshot into a lifecycle outcome.
// It returns ("", true) when the account is usable, or the denial reason
// and false otherwise.
//
// Check order is part of the contract: operator-imposed blocks (suspension,
// deactivation) are reported even when the account is also time-expired, so
// expiry is the last negative check before falling through to active.
func EvaluateAccount(s AccountSnapshot, now time.Time) (DenialReason, bool) {
	if !s.Approved || s.Status == StatusPending {
		// Pending accounts are treated as not-yet-usable rather than
		// leaking their existence.
		return DenyAccountNotFound, false
	}
	if s.Status == StatusSuspended {
		return DenyAccountSuspended, false
	}
	if s.Status == StatusInactive {
		return DenyAccountDeactivated, false
	}
	if s.ExpiresAt != nil && s.ExpiresAt.Before(now) {
		return DenyAccountExpired, false
	}
	return "", true
}
