package moderation

// Status constants used by the review moderation state machine.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Priority orders statuses for the moderation queue so that unmoderated
// reviews surface first.
var Priority = map[string]int{
	StatusPending:  1,
	StatusApproved: 2,
	StatusRejected: 3,
}

var transitions = map[string]map[string]struct{}{
	StatusPending:  {StatusApproved: {}, StatusRejected: {}},
	StatusApproved: {StatusRejected: {}},
	StatusRejected: {StatusApproved: {}},
}

// Valid reports whether s is a known review status.
func Valid(s string) bool {
	_, ok := Priority[s]
	return ok
}

// Moderated reports whether s is a status an admin may set through the
// moderation endpoint.
func Moderated(s string) bool {
	return s == StatusApproved || s == StatusRejected
}

// CanTransition returns whether a review can move from the current status to
// the target status. Re-applying the current status is allowed.
func CanTransition(from, to string) bool {
	if from == to {
		return true
	}
	allowed, ok := transitions[from]
	if !ok {
		return false
	}
	_, ok = allowed[to]
	return ok
}
