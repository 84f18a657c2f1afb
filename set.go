package rrecur

import "time"

// GenerateOptions carries the instance generator entry point's arguments
// (spec §6) beyond the five list inputs themselves.
type GenerateOptions struct {
	// Loc is the target zone. Every rule's Dtstart/Until is converted into
	// it before any wall-clock arithmetic runs; nil means UTC.
	Loc *time.Location

	// IgnoreCount disregards every inclusion rule's Count, used by the
	// pairing wrapper (spec §4.4) when it needs to keep pulling past a
	// rule's own COUNT to find enough constraint-satisfying pairs.
	IgnoreCount bool

	// IterationLimit is a hard ceiling on the number of instants the
	// resulting stream will ever emit; 0 means unlimited (the per-rule
	// maxYear bound still applies underneath).
	IterationLimit int
}

// Generate is the instance generator entry point (spec §6): it wires an
// Expander per inclusion/exclusion rule and a DateListStream per RDATE/EXDATE
// list into a single Merger, and returns it as a Stream. If all four list
// inputs are empty it returns an empty stream immediately without
// constructing a Merger.
func Generate(rules []Rule, rdates []time.Time, exrules []Rule, exdates []time.Time, opts GenerateOptions) (Stream, error) {
	if len(rules) == 0 && len(rdates) == 0 && len(exrules) == 0 && len(exdates) == 0 {
		return emptyStream{}, nil
	}

	loc := opts.Loc
	if loc == nil {
		loc = time.UTC
	}

	include, err := buildStreams(rules, loc, opts.IgnoreCount)
	if err != nil {
		return nil, err
	}
	exclude, err := buildStreams(exrules, loc, false)
	if err != nil {
		return nil, err
	}
	if len(rdates) > 0 {
		include = append(include, NewDateListStream(rdates, loc))
	}
	if len(exdates) > 0 {
		exclude = append(exclude, NewDateListStream(exdates, loc))
	}

	return NewMerger(include, exclude, opts.IterationLimit), nil
}

func buildStreams(rules []Rule, loc *time.Location, ignoreCount bool) ([]Stream, error) {
	var out []Stream
	for _, r := range rules {
		e, err := NewExpander(r, loc, ignoreCount)
		if err != nil {
			log().Error().Stringer("series", r.SeriesID).Err(err).Msg("generate: rule rejected")
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// emptyStream is the degenerate Stream returned when Generate is called
// with no rules and no explicit dates at all.
type emptyStream struct{}

func (emptyStream) Next() (time.Time, bool) { return time.Time{}, false }
