package domain

// DenialReason is the machine-readable tag attached to every failed
// credential resolution. Resolution is total: a request either resolves to
// an authorized identity or to exactly one of these reasons.
type DenialReason string

const (
	DenyNoToken            DenialReason = "NO_TOKEN"
	DenyInvalidToken       DenialReason = "INVALID_TOKEN"
	DenyExpiredToken       DenialReason = "EXPIRED_TOKEN"
	DenyAccountNotFound    DenialReason = "ACCOUNT_NOT_FOUND"
	DenyAccountSuspended   DenialReason = "ACCOUNT_SUSPENDED"
	DenyAccountDeactivated DenialReason = "ACCOUNT_DEACTIVATED"
	DenyAccountExpired     DenialReason = "ACCOUNT_EXPIRED"
)

// denialMessages maps each reason to its user-facing message.
// No denial is ever silently swallowed: every reason has a message.
var denialMessages = map[DenialReason]string{
	DenyNoToken:            "No token provided",
	DenyInvalidToken:       "Invalid access token",
	DenyExpiredToken:       "Access token expired",
	DenyAccountNotFound:    "Account not found or awaiting approval",
	DenyAccountSuspended:   "Account suspended, please contact support",
	DenyAccountDeactivated: "Account has been deactivated",
	DenyAccountExpired:     "Subscription expired, please renew your plan",
}

// Message returns the human-readable message for the reason
func (r DenialReason) Message() string {
	if msg, ok := denialMessages[r]; ok {
		return msg
	}
	return "Access denied"
}

// IsTokenFailure reports whether the denial happened before the account was
// identified. Token-level failures map to 401 with {error: message}; account
// status failures map to the {is_valid, status, message} payload.
func (r DenialReason) IsTokenFailure() bool {
	switch r {
	case DenyNoToken, DenyInvalidToken, DenyExpiredToken:
		return true
	}
	return false
}
