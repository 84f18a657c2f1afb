package rrecur

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Frequency is the period on which a Rule is evaluated. The ordering of the
// constants matters: the expander repeatedly compares frequencies with
// < and > to decide which by-fields default to dtstart's own field, so
// YEARLY must stay the smallest and SECONDLY the largest.
type Frequency int

const (
	YEARLY Frequency = iota
	MONTHLY
	WEEKLY
	DAILY
	HOURLY
	MINUTELY
	SECONDLY
)

func (f Frequency) String() string {
	switch f {
	case YEARLY:
		return "YEARLY"
	case MONTHLY:
		return "MONTHLY"
	case WEEKLY:
		return "WEEKLY"
	case DAILY:
		return "DAILY"
	case HOURLY:
		return "HOURLY"
	case MINUTELY:
		return "MINUTELY"
	case SECONDLY:
		return "SECONDLY"
	default:
		return fmt.Sprintf("Frequency(%d)", int(f))
	}
}

// Weekday pairs a weekday number (0=MO .. 6=SU) with an optional ordinal,
// e.g. the "2" in "2TU" (second Tuesday) or the "-1" in "-1FR" (last Friday).
// An ordinal of 0 means "every occurrence of this weekday" rather than a
// specific one.
type Weekday struct {
	weekday int
	n       int
}

// Nth returns a copy of the weekday qualified with the given ordinal.
func (w Weekday) Nth(n int) Weekday { return Weekday{weekday: w.weekday, n: n} }

// N reports the ordinal, 0 meaning unqualified.
func (w Weekday) N() int { return w.n }

// Day reports the weekday number, 0=Monday through 6=Sunday.
func (w Weekday) Day() int { return w.weekday }

func (w Weekday) String() string {
	names := [...]string{"MO", "TU", "WE", "TH", "FR", "SA", "SU"}
	label := names[pymod(w.weekday, 7)]
	if w.n == 0 {
		return label
	}
	return fmt.Sprintf("%+d%s", w.n, label)
}

// Weekday constants, unqualified (n == 0).
var (
	MO = Weekday{weekday: 0}
	TU = Weekday{weekday: 1}
	WE = Weekday{weekday: 2}
	TH = Weekday{weekday: 3}
	FR = Weekday{weekday: 4}
	SA = Weekday{weekday: 5}
	SU = Weekday{weekday: 6}
)

// Rule is the structured recurrence specification consumed by the expander.
// Callers are expected to have already parsed an RFC 5545 RRULE (or built
// one programmatically); rule parsing/serialization is an external
// collaborator this package never implements (see SPEC_FULL.md).
type Rule struct {
	Freq     Frequency
	Interval int // 0 is treated as 1
	Dtstart  time.Time
	Until    time.Time // zero means unset
	Count    int       // 0 means unset
	Wkst     Weekday   // default MO

	Bysecond   []int
	Byminute   []int
	Byhour     []int
	Bymonth    []int
	Byweekno   []int
	Byyearday  []int
	Bymonthday []int
	Byday      []Weekday
	Bysetpos   []int
	Byeaster   []int // RFC 7529 extension, supplemented (see SPEC_FULL.md)

	// SeriesID is an optional correlation identifier used only for the log
	// line Generate emits when it rejects the rule; it never participates
	// in comparison, ordering, or filtering.
	SeriesID uuid.UUID
}

// String renders a debug-oriented, one-directional approximation of the
// rule's RFC 5545 text form. It exists for log lines, not for round-trip
// parsing: this package deliberately does not ship a parser (see
// SPEC_FULL.md's "Rule parser/serializer" discussion).
func (r Rule) String() string {
	s := "FREQ=" + r.Freq.String()
	if r.Interval > 1 {
		s += fmt.Sprintf(";INTERVAL=%d", r.Interval)
	}
	if r.Count > 0 {
		s += fmt.Sprintf(";COUNT=%d", r.Count)
	}
	if !r.Until.IsZero() {
		s += ";UNTIL=" + r.Until.UTC().Format("20060102T150405Z")
	}
	appendInts(&s, "BYSECOND", r.Bysecond)
	appendInts(&s, "BYMINUTE", r.Byminute)
	appendInts(&s, "BYHOUR", r.Byhour)
	appendInts(&s, "BYMONTH", r.Bymonth)
	appendInts(&s, "BYMONTHDAY", r.Bymonthday)
	appendInts(&s, "BYYEARDAY", r.Byyearday)
	appendInts(&s, "BYWEEKNO", r.Byweekno)
	if len(r.Byday) > 0 {
		s += ";BYDAY="
		for i, d := range r.Byday {
			if i > 0 {
				s += ","
			}
			s += d.String()
		}
	}
	appendInts(&s, "BYSETPOS", r.Bysetpos)
	appendInts(&s, "BYEASTER", r.Byeaster)
	return s
}

func appendInts(s *string, name string, vals []int) {
	if len(vals) == 0 {
		return
	}
	*s += ";" + name + "="
	for i, v := range vals {
		if i > 0 {
			*s += ","
		}
		*s += fmt.Sprintf("%d", v)
	}
}
