// Package holidayconstraint is a concrete Predicate implementation (see the
// root rrecur package's Transformer) backed by github.com/rickar/cal/v2,
// grounded on atime/rruleplus/calendar.go's ICalendar/NewCalendar pattern.
// It is an example collaborator, not part of the core engine: a caller is
// free to implement rrecur.Predicate any other way.
package holidayconstraint

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rickar/cal/v2"
	cal_us "github.com/rickar/cal/v2/us"
)

// registry mirrors rruleplus's package-level ISO-to-calendar map so callers
// that already keyed calendars by country code can keep doing so here.
var (
	registry      = make(map[string]*cal.BusinessCalendar)
	registryMutex sync.RWMutex
)

// NewCalendar builds a business calendar for the given ISO country code.
// Only "us" is wired today; unknown codes are an error rather than a silent
// empty calendar.
func NewCalendar(iso string) (*cal.BusinessCalendar, error) {
	iso = cleanISO(iso)
	if iso == "" {
		return nil, fmt.Errorf("holidayconstraint: empty ISO code")
	}

	bc := cal.NewBusinessCalendar()
	switch iso {
	case "us":
		bc.AddHoliday(cal_us.Holidays...)
	default:
		return nil, fmt.Errorf("holidayconstraint: ISO code not supported: %s", iso)
	}
	return bc, nil
}

// RegisterCalendar stores a calendar under a normalized ISO code for later
// retrieval by GetCalendar.
func RegisterCalendar(iso string, c *cal.BusinessCalendar) {
	iso = cleanISO(iso)
	registryMutex.Lock()
	defer registryMutex.Unlock()
	registry[iso] = c
}

// GetCalendar retrieves a previously registered calendar.
func GetCalendar(iso string) (*cal.BusinessCalendar, error) {
	iso = cleanISO(iso)
	registryMutex.RLock()
	defer registryMutex.RUnlock()
	c, ok := registry[iso]
	if !ok {
		return nil, fmt.Errorf("holidayconstraint: no calendar registered for %s", iso)
	}
	return c, nil
}

func cleanISO(code string) string {
	return strings.TrimSpace(strings.ToLower(code))
}

// Constraint rejects instants that fall on a registered holiday, and
// optionally on a weekend. It implements rrecur.Predicate (Test,
// StopsTransformer) without importing rrecur itself, so it has no
// dependency cycle with the root package.
type Constraint struct {
	cal            *cal.BusinessCalendar
	skipWeekends   bool
	skipObserved   bool
	stopOnFirstHit bool
}

// NewConstraint builds a Constraint over the given ISO calendar.
// skipWeekends additionally rejects Saturday/Sunday instants; skipObserved
// rejects a holiday's observed date too, not just its actual date;
// stopOnFirstHit makes StopsTransformer report true, ending enumeration on
// the first rejected instant instead of merely skipping it.
func NewConstraint(iso string, skipWeekends, skipObserved, stopOnFirstHit bool) (*Constraint, error) {
	c, err := NewCalendar(iso)
	if err != nil {
		return nil, err
	}
	return &Constraint{cal: c, skipWeekends: skipWeekends, skipObserved: skipObserved, stopOnFirstHit: stopOnFirstHit}, nil
}

// Test reports whether instant is clear of every configured constraint.
func (c *Constraint) Test(instant time.Time) bool {
	if c.skipWeekends {
		switch instant.Weekday() {
		case time.Saturday, time.Sunday:
			return false
		}
	}
	actual, observed, _ := c.cal.IsHoliday(instant)
	if actual {
		return false
	}
	if c.skipObserved && observed {
		return false
	}
	return true
}

// StopsTransformer reports whether a failed Test should end enumeration
// rather than merely skip the instant.
func (c *Constraint) StopsTransformer() bool {
	return c.stopOnFirstHit
}
