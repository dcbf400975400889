package service

import "errors"

// Sentinel errors for the protocol-violation branch of the error taxonomy.
// Handlers map these to explicit "not found" / "conflict" responses for the
// actor that caused them; they never affect other sessions.
var (
	ErrIncidentNotFound  = errors.New("incident not found")
	ErrAlreadyTaken      = errors.New("incident already taken")
	ErrInvalidTransition = errors.New("incident is not in a state that allows this transition")
	ErrNotParticipant    = errors.New("actor is not a participant of this incident")
	ErrMissingLocation   = errors.New("location is missing or zero")
)

// IsDomainError reports whether err is one of the protocol sentinels, i.e.
// safe to echo back to the actor verbatim.
func IsDomainError(err error) bool {
	for _, sentinel := range []error{
		ErrIncidentNotFound,
		ErrAlreadyTaken,
		ErrInvalidTransition,
		ErrNotParticipant,
		ErrMissingLocation,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
