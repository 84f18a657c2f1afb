package rrecur

import "time"

// Predicate is the caller-supplied constraint collaborator for the pairing
// wrapper (spec §4.4). Callers implement this; this package only consumes
// it. See holidayconstraint for a concrete implementation.
type Predicate interface {
	// Test reports whether the given instant satisfies the constraint.
	Test(instant time.Time) bool
	// StopsTransformer reports whether a failed Test should terminate
	// enumeration altogether, rather than simply skip the instant.
	StopsTransformer() bool
}

// EventRule is a single rule plus the extra state the pairing wrapper needs
// that a bare Rule doesn't carry: an explicit end (to derive a duration)
// and its own RDATE/EXDATE lists already flattened — no EXRULEs at this
// layer (spec §4.4).
type EventRule struct {
	Rule    Rule
	End     time.Time // zero means no duration
	RDates  []time.Time
	EXDates []time.Time
}

// Pair is one emitted occurrence: an instant and its computed end.
type Pair struct {
	Start time.Time
	End   time.Time
}

// Transformer is the pairing wrapper (spec §4.4): it drives a single rule's
// expansion through an optional Predicate and emits (start, end) pairs.
type Transformer struct {
	rule                    EventRule
	predicate               Predicate
	countConstraintFailures bool
	cfg                     Config
}

// NewTransformer builds a Transformer. countConstraintFailures selects
// which of Rule.Count or Config.VirtualLimit governs termination:
//   - true (the default per spec §6): a predicate rejection still consumes
//     the rule's own COUNT budget, the same as any other candidate; the
//     transformer layers VirtualLimit on top as a hard backstop.
//   - false: rejections are free. The expander is told to ignore_count
//     entirely, and the transformer itself counts only predicate
//     acceptances toward Rule.Count, so COUNT limits real acceptances
//     rather than raw candidates. VirtualLimit then applies only to a rule
//     without a Count.
func NewTransformer(rule EventRule, predicate Predicate, countConstraintFailures bool, cfg Config) *Transformer {
	return &Transformer{rule: rule, predicate: predicate, countConstraintFailures: countConstraintFailures, cfg: cfg}
}

// Pairs runs the transformer to completion and returns the ordered list of
// accepted (start, end) pairs. It surfaces MissingData from the underlying
// expander unchanged (spec §4.5); it never partially returns on that
// failure.
func (t *Transformer) Pairs() ([]Pair, error) {
	var duration time.Duration
	if !t.rule.End.IsZero() {
		if t.rule.End.Before(t.rule.Rule.Dtstart) {
			return nil, ErrInvalidDuration
		}
		duration = t.rule.End.Sub(t.rule.Rule.Dtstart)
	}

	ignoreCount := !t.countConstraintFailures

	// When rejections are free and the rule has a Count, that Count bounds
	// acceptances in place of VirtualLimit.
	iterationLimit := t.cfg.virtualLimit()
	if ignoreCount && t.rule.Rule.Count > 0 {
		iterationLimit = 0
	}

	loc := t.rule.Rule.Dtstart.Location()
	stream, err := Generate([]Rule{t.rule.Rule}, t.rule.RDates, nil, t.rule.EXDates, GenerateOptions{
		Loc:            loc,
		IgnoreCount:    ignoreCount,
		IterationLimit: iterationLimit,
	})
	if err != nil {
		return nil, err
	}

	acceptTarget, hasAcceptTarget := 0, false
	if ignoreCount && t.rule.Rule.Count > 0 {
		acceptTarget, hasAcceptTarget = t.rule.Rule.Count, true
	}

	var pairs []Pair
	for {
		instant, ok := stream.Next()
		if !ok {
			break
		}
		if t.predicate != nil && !t.predicate.Test(instant) {
			if t.predicate.StopsTransformer() {
				log().Debug().Time("instant", instant).Msg("transformer: predicate stopped enumeration")
				break
			}
			continue
		}
		pairs = append(pairs, Pair{Start: instant, End: instant.Add(duration)})
		if hasAcceptTarget && len(pairs) >= acceptTarget {
			break
		}
	}
	return pairs, nil
}
