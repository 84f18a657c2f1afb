package rrecur

import "time"

// Date utilities: year length, day-of-year tables, weekday arithmetic and
// modular helpers. These are pure functions with no external state, grounded
// on the teacher's (standup-raven/rrule-go) mask tables; the per-rule
// expander's year-context (yearInfo) is built from them fresh on every
// outer iteration and never cached across iterations (spec §3, §9).
//
// Every day-of-year mask below is extended 7 days past the end of the year
// so weekly periods that cross the year boundary can still be indexed
// without a bounds check.
var (
	month366Mask    []int
	month365Mask    []int
	monthDay366Mask []int
	monthDay365Mask []int
	negMonthDay366  []int
	negMonthDay365  []int
	weekdayMask     []int

	month366Ranges = []int{0, 31, 60, 91, 121, 152, 182, 213, 244, 274, 305, 335, 366}
	month365Ranges = []int{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334, 365}
)

// maxYear bounds the outer iteration so a pathological rule (e.g.
// FREQ=YEARLY with an impossible BYMONTHDAY) cannot run forever even with
// no COUNT/UNTIL; it is a belt-and-suspenders limit alongside
// iteration_limit/virtual_limit (spec §9 Open Question).
const maxYear = 9999

func init() {
	month366Mask = concat(
		repeat(1, 31), repeat(2, 29), repeat(3, 31), repeat(4, 30),
		repeat(5, 31), repeat(6, 30), repeat(7, 31), repeat(8, 31),
		repeat(9, 30), repeat(10, 31), repeat(11, 30), repeat(12, 31),
		repeat(1, 7),
	)
	month365Mask = concat(month366Mask[:59], month366Mask[60:])

	d29, d30, d31 := rangeInts(1, 30), rangeInts(1, 31), rangeInts(1, 32)
	monthDay366Mask = concat(d31, d29, d31, d30, d31, d30, d31, d31, d30, d31, d30, d31, d31[:7])
	monthDay365Mask = concat(monthDay366Mask[:59], monthDay366Mask[60:])

	n29, n30, n31 := rangeInts(-29, 0), rangeInts(-30, 0), rangeInts(-31, 0)
	negMonthDay366 = concat(n31, n29, n31, n30, n31, n30, n31, n31, n30, n31, n30, n31, n31[:7])
	negMonthDay365 = concat(negMonthDay366[:31], negMonthDay366[32:])

	weekdayMask = make([]int, 0, 385)
	for i := 0; i < 55; i++ {
		weekdayMask = append(weekdayMask, 0, 1, 2, 3, 4, 5, 6)
	}
}

func concat(parts ...[]int) []int {
	out := make([]int, 0)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func repeat(v, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// rangeInts returns the half-open integer range [from, to).
func rangeInts(from, to int) []int {
	if to <= from {
		return nil
	}
	out := make([]int, 0, to-from)
	for i := from; i < to; i++ {
		out = append(out, i)
	}
	return out
}

func contains(set []int, v int) bool {
	for _, x := range set {
		if x == v {
			return true
		}
	}
	return false
}

func containsWeekday(set []Weekday, weekday int) bool {
	for _, w := range set {
		if w.weekday == weekday {
			return true
		}
	}
	return false
}

// pymod is Python-style modulo: the result always has the sign of the
// divisor, unlike Go's %.
func pymod(a, b int) int {
	r := a % b
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}
	return r
}

func divmod(a, b int) (div, mod int) {
	div = a / b
	mod = a % b
	if mod != 0 && (mod < 0) != (b < 0) {
		div--
		mod += b
	}
	return
}

func isLeap(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

func yearLength(year int) int {
	if isLeap(year) {
		return 366
	}
	return 365
}

func daysInMonth(month time.Month, year int) int {
	switch month {
	case time.January, time.March, time.May, time.July, time.August, time.October, time.December:
		return 31
	case time.April, time.June, time.September, time.November:
		return 30
	case time.February:
		if isLeap(year) {
			return 29
		}
		return 28
	}
	return 30
}

// toPyWeekday converts Go's Sunday=0 weekday numbering to the rule's
// Monday=0 numbering used throughout §3/§4.
func toPyWeekday(d time.Weekday) int {
	return pymod(int(d)-1, 7)
}

// easter returns the Gregorian Easter Sunday for the given year using the
// Anonymous Gregorian algorithm (a public-domain computus formula; there is
// no library in the retrieval pack for this single closed-form
// computation, so it stays on stdlib arithmetic).
func easter(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// pySubscript indexes a slice the way Python's negative indices do: a
// negative i counts from the end. It reports an error (rather than
// panicking) for an out-of-range index, matching spec §4.2 step 7's
// requirement that |k| > n produce no output instead of a crash.
func pySubscript(items []int, i int) (int, error) {
	n := len(items)
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return 0, errIndexOutOfRange
	}
	return items[i], nil
}

var errIndexOutOfRange = &indexError{}

type indexError struct{}

func (*indexError) Error() string { return "rrecur: index out of range" }
