package rrecur

import "errors"

// ErrMissingAnchor is the sentinel underlying MissingDataError, usable with
// errors.Is by callers that only care about the error class.
var ErrMissingAnchor = errors.New("rrecur: rule has no anchor instant")

// MissingDataError is the one recoverable failure kind the expander raises
// (see spec §4.5 / §7): the rule has no Dtstart and none can be derived.
// All other inconsistencies (empty day sets, empty time sets, a period with
// no matches) are benign and simply advance the outer iteration.
type MissingDataError struct {
	Field string
}

func (e *MissingDataError) Error() string {
	if e.Field == "" {
		return ErrMissingAnchor.Error()
	}
	return ErrMissingAnchor.Error() + ": " + e.Field
}

func (e *MissingDataError) Unwrap() error { return ErrMissingAnchor }

// ErrInvalidDuration is returned by the transformer when the base event's
// end precedes its start.
var ErrInvalidDuration = errors.New("rrecur: event end precedes start")
