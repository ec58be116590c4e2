package models

import "time"

// ListState is the client-selected filter for booking listings. It is
// distinct from a booking's own status: CURRENT/PAST/FUTURE classify by
// time window against "now", WAITING/REJECTED by status.
type ListState string

const (
	StateAll      ListState = "ALL"
	StateCurrent  ListState = "CURRENT"
	StatePast     ListState = "PAST"
	StateFuture   ListState = "FUTURE"
	StateWaiting  ListState = "WAITING"
	StateRejected ListState = "REJECTED"
)

// Known reports whether s is one of the recognized list states. Parsing
// stays permissive here; rejecting unknown values is the caller's job
// so the error message can carry the raw input.
func (s ListState) Known() bool {
	switch s {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return true
	}
	return false
}

// Matches reports whether a booking satisfies the state predicate at
// the given instant.
func (s ListState) Matches(b Booking, now time.Time) bool {
	switch s {
	case StateAll:
		return true
	case StateCurrent:
		return !b.Start.After(now) && b.End.After(now)
	case StatePast:
		return b.End.Before(now)
	case StateFuture:
		return b.Start.After(now)
	case StateWaiting:
		return b.Status == StatusWaiting
	case StateRejected:
		return b.Status == StatusRejected
	}
	return false
}
