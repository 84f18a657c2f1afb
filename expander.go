package rrecur

import (
	"sort"
	"time"
)

// Stream is the pull-driven contract every instant source in this package
// implements (spec §5): Next returns the next ascending instant, or
// ok == false once the stream is exhausted. A Stream is not safe for
// concurrent use; nothing in this package ever shares one across
// goroutines.
type Stream interface {
	Next() (t time.Time, ok bool)
}

// compiledRule is the normalized, defaulted form of a Rule: negative
// bymonthday partitioned out, ordinalled byday partitioned out, and the
// frequency-appropriate defaults injected (spec §4.2 "Defaulting").
// Constructing it never mutates the caller's Rule.
type compiledRule struct {
	freq     Frequency
	interval int
	dtstart  time.Time
	until    time.Time
	hasUntil bool
	count    int
	wkst     int

	bymonth       []int
	byweekno      []int
	byyearday     []int
	bymonthday    []int
	bymonthdayNeg []int
	byweekday     []int
	byweekdayRel  []Weekday
	byeaster      []int
	bysetpos      []int
	byhour        []int
	byminute      []int
	bysecond      []int

	timeset []time.Time // precomputed for freq < HOURLY
}

func compileRule(rule Rule, loc *time.Location, ignoreCount bool) (*compiledRule, error) {
	if rule.Dtstart.IsZero() {
		return nil, &MissingDataError{Field: "Dtstart"}
	}

	c := &compiledRule{
		freq:    rule.Freq,
		dtstart: rule.Dtstart.In(loc),
		wkst:    rule.Wkst.weekday,
	}
	if rule.Interval <= 0 {
		c.interval = 1
	} else {
		c.interval = rule.Interval
	}
	if !ignoreCount {
		c.count = rule.Count
	}
	if !rule.Until.IsZero() {
		c.until = rule.Until.In(loc)
		c.hasUntil = true
	}

	bymonth := append([]int(nil), rule.Bymonth...)
	byweekno := append([]int(nil), rule.Byweekno...)
	byyearday := append([]int(nil), rule.Byyearday...)
	bymonthday := append([]int(nil), rule.Bymonthday...)
	byday := append([]Weekday(nil), rule.Byday...)
	byeaster := append([]int(nil), rule.Byeaster...)

	// Defaulting: inject frequency-appropriate defaults only when none of
	// byweekno/byyearday/bymonthday/byday is already set (spec §4.2).
	if len(byweekno) == 0 && len(byyearday) == 0 && len(bymonthday) == 0 && len(byday) == 0 && len(byeaster) == 0 {
		switch c.freq {
		case YEARLY:
			if len(bymonth) == 0 {
				bymonth = []int{int(c.dtstart.Month())}
			}
			bymonthday = []int{c.dtstart.Day()}
		case MONTHLY:
			bymonthday = []int{c.dtstart.Day()}
		case WEEKLY:
			byday = []Weekday{{weekday: toPyWeekday(c.dtstart.Weekday())}}
		}
	}

	c.bymonth = bymonth
	c.byweekno = byweekno
	c.byyearday = byyearday
	c.byeaster = byeaster
	c.bysetpos = append([]int(nil), rule.Bysetpos...)

	// Partition bymonthday into positive/negative (spec §4.2 "Partitioning").
	for _, d := range bymonthday {
		if d > 0 {
			c.bymonthday = append(c.bymonthday, d)
		} else if d < 0 {
			c.bymonthdayNeg = append(c.bymonthdayNeg, d)
		}
	}

	// Partition byday into plain weekday numbers vs ordinalled "relative"
	// weekdays. Below MONTHLY, an ordinal is meaningless and dropped to its
	// plain weekday the way the teacher's Freq > MONTHLY branch does.
	for _, w := range byday {
		if w.n == 0 || c.freq > MONTHLY {
			c.byweekday = append(c.byweekday, w.weekday)
		} else {
			c.byweekdayRel = append(c.byweekdayRel, w)
		}
	}

	if len(rule.Byhour) == 0 {
		if c.freq < HOURLY {
			c.byhour = []int{c.dtstart.Hour()}
		}
	} else {
		c.byhour = append([]int(nil), rule.Byhour...)
	}
	if len(rule.Byminute) == 0 {
		if c.freq < MINUTELY {
			c.byminute = []int{c.dtstart.Minute()}
		}
	} else {
		c.byminute = append([]int(nil), rule.Byminute...)
	}
	if len(rule.Bysecond) == 0 {
		if c.freq < SECONDLY {
			c.bysecond = []int{c.dtstart.Second()}
		}
	} else {
		c.bysecond = append([]int(nil), rule.Bysecond...)
	}

	if c.freq < HOURLY {
		for _, h := range c.byhour {
			for _, m := range c.byminute {
				for _, s := range c.bysecond {
					c.timeset = append(c.timeset, time.Date(1, 1, 1, h, m, s, 0, c.dtstart.Location()))
				}
			}
		}
		sort.Sort(byClock(c.timeset))
	}

	return c, nil
}

type byClock []time.Time

func (s byClock) Len() int      { return len(s) }
func (s byClock) Swap(i, j int) { s[i], s[j] = s[j], s[i] }
func (s byClock) Less(i, j int) bool {
	ci, cj := s[i], s[j]
	if ci.Hour() != cj.Hour() {
		return ci.Hour() < cj.Hour()
	}
	if ci.Minute() != cj.Minute() {
		return ci.Minute() < cj.Minute()
	}
	return ci.Second() < cj.Second()
}

// yearInfo is the year-context computed fresh on every outer iteration
// (spec §3 "Year-context"): it is an immutable value the iteration owns,
// never cached or reused between iterations (spec §9).
type yearInfo struct {
	year        int
	yearLen     int
	nextYearLen int
	firstYDay   time.Time
	yearWeekday int

	mmask      []int
	mdaymask   []int
	nmdaymask  []int
	mrange     []int
	wdaymask   []int
	wnomask    []int
	nwdaymask  []int // relative-weekday mask, computed per (year, month)
	eastermask []int

	lastMonth time.Month
}

func buildYearInfo(rule *compiledRule, year int) *yearInfo {
	yi := &yearInfo{year: year}
	yi.yearLen = yearLength(year)
	yi.nextYearLen = yearLength(year + 1)
	yi.firstYDay = time.Date(year, time.January, 1, 0, 0, 0, 0, rule.dtstart.Location())
	yi.yearWeekday = toPyWeekday(yi.firstYDay.Weekday())
	yi.wdaymask = weekdayMask[yi.yearWeekday:]

	if yi.yearLen == 365 {
		yi.mmask = month365Mask
		yi.mdaymask = monthDay365Mask
		yi.nmdaymask = negMonthDay365
		yi.mrange = month365Ranges
	} else {
		yi.mmask = month366Mask
		yi.mdaymask = monthDay366Mask
		yi.nmdaymask = negMonthDay366
		yi.mrange = month366Ranges
	}

	if len(rule.byweekno) > 0 {
		yi.wnomask = buildWeekNoMask(rule, yi)
	}

	if len(rule.byeaster) > 0 {
		yi.eastermask = make([]int, yi.yearLen+7)
		eyday := easter(year).YearDay() - 1
		for _, offset := range rule.byeaster {
			idx := eyday + offset
			if idx >= 0 && idx < len(yi.eastermask) {
				yi.eastermask[idx] = 1
			}
		}
	}

	return yi
}

// buildWeekNoMask implements spec §4.2 step 4, the ISO-like week numbering
// anchored at wkst, ported from the teacher's rebuild().
func buildWeekNoMask(rule *compiledRule, yi *yearInfo) []int {
	mask := make([]int, yi.yearLen+7)
	firstWkst := pymod(7-yi.yearWeekday+rule.wkst, 7)
	no1Wkst := firstWkst
	var wYearLen int
	if no1Wkst >= 4 {
		no1Wkst = 0
		wYearLen = yi.yearLen + pymod(yi.yearWeekday-rule.wkst, 7)
	} else {
		wYearLen = yi.yearLen - no1Wkst
	}
	div, mod := divmod(wYearLen, 7)
	numWeeks := div + mod/4

	fillWeek := func(i int) int {
		for j := 0; j < 7; j++ {
			if i < len(mask) {
				mask[i] = 1
			}
			i++
			if i < len(yi.wdaymask) && yi.wdaymask[i] == rule.wkst {
				break
			}
		}
		return i
	}

	for _, n := range rule.byweekno {
		if n < 0 {
			n += numWeeks + 1
		}
		if !(0 < n && n <= numWeeks) {
			continue
		}
		var i int
		if n > 1 {
			i = no1Wkst + (n-1)*7
			if no1Wkst != firstWkst {
				i -= 7 - firstWkst
			}
		} else {
			i = no1Wkst
		}
		fillWeek(i)
	}

	if contains(rule.byweekno, 1) {
		i := no1Wkst + numWeeks*7
		if no1Wkst != firstWkst {
			i -= 7 - firstWkst
		}
		if i < yi.yearLen {
			fillWeek(i)
		}
	}

	if no1Wkst != 0 {
		var lastNumWeeks int
		if !contains(rule.byweekno, -1) {
			lastYearWeekday := toPyWeekday(time.Date(yi.year-1, 1, 1, 0, 0, 0, 0, rule.dtstart.Location()).Weekday())
			lastNo1Wkst := pymod(7-lastYearWeekday+rule.wkst, 7)
			lastYearLen := yearLength(yi.year - 1)
			if lastNo1Wkst >= 4 {
				lastNumWeeks = 52 + pymod(lastYearLen+pymod(lastYearWeekday-rule.wkst, 7), 7)/4
			} else {
				lastNumWeeks = 52 + pymod(yi.yearLen-no1Wkst, 7)/4
			}
		} else {
			lastNumWeeks = -1
		}
		if contains(rule.byweekno, lastNumWeeks) {
			for i := 0; i < no1Wkst; i++ {
				mask[i] = 1
			}
		}
	}

	return mask
}

// buildRelativeWeekdayMask implements spec §4.2 step 5 for the given
// (year, month) outer iteration.
func buildRelativeWeekdayMask(rule *compiledRule, yi *yearInfo, month time.Month) []int {
	if len(rule.byweekdayRel) == 0 {
		return nil
	}
	var ranges [][2]int
	switch rule.freq {
	case YEARLY:
		if len(rule.bymonth) != 0 {
			for _, m := range rule.bymonth {
				ranges = append(ranges, [2]int{yi.mrange[m-1], yi.mrange[m]})
			}
		} else {
			ranges = [][2]int{{0, yi.yearLen}}
		}
	case MONTHLY:
		ranges = [][2]int{{yi.mrange[month-1], yi.mrange[month]}}
	default:
		return nil
	}

	mask := make([]int, yi.yearLen)
	for _, rg := range ranges {
		first, last := rg[0], rg[1]-1
		for _, y := range rule.byweekdayRel {
			wday, n := y.weekday, y.n
			var i int
			if n < 0 {
				i = last + (n+1)*7
				i -= pymod(yi.wdaymask[i]-wday, 7)
			} else {
				i = first + (n-1)*7
				i += pymod(7-yi.wdaymask[i]+wday, 7)
			}
			if first <= i && i <= last {
				mask[i] = 1
			}
		}
	}
	return mask
}

// daySet returns the contiguous day-of-year index range under
// consideration for one outer iteration (spec §4.2 step 2), plus the
// [start,end) window within it that actually holds this period's days.
func daySet(rule *compiledRule, yi *yearInfo, year int, month time.Month, day int) (set []int, start, end int) {
	switch rule.freq {
	case YEARLY:
		set = make([]int, yi.yearLen)
		for i := range set {
			set[i] = i
		}
		return set, 0, yi.yearLen
	case MONTHLY:
		set = make([]int, yi.yearLen)
		for i := range set {
			set[i] = -1
		}
		s, e := yi.mrange[month-1], yi.mrange[month]
		for i := s; i < e; i++ {
			set[i] = i
		}
		return set, s, e
	case WEEKLY:
		set = make([]int, yi.yearLen+7)
		for i := range set {
			set[i] = -1
		}
		i := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).YearDay() - 1
		start = i
		for j := 0; j < 7; j++ {
			set[i] = i
			i++
			if i < len(yi.wdaymask) && yi.wdaymask[i] == rule.wkst {
				break
			}
		}
		return set, start, i
	default: // DAILY, HOURLY, MINUTELY, SECONDLY
		set = make([]int, yi.yearLen)
		for i := range set {
			set[i] = -1
		}
		i := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).YearDay() - 1
		if i >= 0 && i < len(set) {
			set[i] = i
		}
		return set, i, i + 1
	}
}

// filterDaySet applies spec §4.2 step 6's reject rules in place, clearing
// rejected slots to -1. It reports whether any slot was rejected, which the
// sub-daily branches of advance use to fast-forward past an entirely empty
// day instead of stepping through it one second/minute/hour at a time.
func filterDaySet(rule *compiledRule, yi *yearInfo, relMask []int, set []int, start, end int) bool {
	filtered := false
	for idx := start; idx < end; idx++ {
		i := set[idx]
		if i < 0 {
			continue
		}
		if len(rule.bymonth) != 0 && !contains(rule.bymonth, yi.mmask[i]) {
			set[idx] = -1
			filtered = true
			continue
		}
		if len(rule.byweekno) != 0 && (i >= len(yi.wnomask) || yi.wnomask[i] == 0) {
			set[idx] = -1
			filtered = true
			continue
		}
		if len(rule.byweekday) != 0 && !contains(rule.byweekday, yi.wdaymask[i]) {
			set[idx] = -1
			filtered = true
			continue
		}
		if len(relMask) != 0 && (i >= len(relMask) || relMask[i] == 0) {
			set[idx] = -1
			filtered = true
			continue
		}
		if len(rule.byeaster) != 0 && (i >= len(yi.eastermask) || yi.eastermask[i] == 0) {
			set[idx] = -1
			filtered = true
			continue
		}
		if len(rule.bymonthday) != 0 || len(rule.bymonthdayNeg) != 0 {
			pos := len(rule.bymonthday) != 0 && contains(rule.bymonthday, yi.mdaymask[i])
			neg := len(rule.bymonthdayNeg) != 0 && contains(rule.bymonthdayNeg, yi.nmdaymask[i])
			if !pos && !neg {
				set[idx] = -1
				filtered = true
				continue
			}
		}
		if len(rule.byyearday) != 0 {
			var ok bool
			if i < yi.yearLen {
				ok = contains(rule.byyearday, i+1) || contains(rule.byyearday, -yi.yearLen+i)
			} else {
				ok = contains(rule.byyearday, i+1-yi.yearLen) || contains(rule.byyearday, -yi.nextYearLen+i-yi.yearLen)
			}
			if !ok {
				set[idx] = -1
				filtered = true
			}
		}
	}
	return filtered
}

// Expander is the per-rule expander (spec §4.2): given one Rule, it yields
// a lazy ascending Stream of instants. It is the core ~55% of this module.
type Expander struct {
	rule *compiledRule
	loc  *time.Location

	year, day     int
	month         time.Month
	hour, minute  int
	second        int
	weekday       int
	yi            *yearInfo
	timeset       []time.Time
	remain        []time.Time
	count         int // remaining COUNT budget; <=0 with rule.count==0 means unbounded
	hasCount      bool
	finished      bool
	totalEmitted  int
	filtered      bool // last day set had at least one rejected slot
}

// NewExpander constructs the per-rule expander. loc is the target zone: the
// rule's Dtstart/Until are converted into it (preserving the absolute
// instant) before any wall-clock arithmetic runs. ignoreCount, when true,
// makes the expander disregard rule.Count (used by the pairing wrapper,
// spec §4.4).
func NewExpander(rule Rule, loc *time.Location, ignoreCount bool) (*Expander, error) {
	if loc == nil {
		loc = time.UTC
	}
	cr, err := compileRule(rule, loc, ignoreCount)
	if err != nil {
		return nil, err
	}

	e := &Expander{rule: cr, loc: loc}
	e.year, e.month, e.day = cr.dtstart.Date()
	e.hour, e.minute, e.second = cr.dtstart.Clock()
	e.weekday = toPyWeekday(cr.dtstart.Weekday())

	e.yi = buildYearInfo(cr, e.year)
	relMask := buildRelativeWeekdayMask(cr, e.yi, e.month)
	e.yi.nwdaymask = relMask
	e.yi.lastMonth = e.month

	if cr.freq < HOURLY {
		e.timeset = cr.timeset
	} else {
		if (cr.freq >= HOURLY && len(cr.byhour) != 0 && !contains(cr.byhour, e.hour)) ||
			(cr.freq >= MINUTELY && len(cr.byminute) != 0 && !contains(cr.byminute, e.minute)) ||
			(cr.freq >= SECONDLY && len(cr.bysecond) != 0 && !contains(cr.bysecond, e.second)) {
			e.timeset = nil
		} else {
			e.timeset = timeSetFor(cr, e.hour, e.minute, e.second)
		}
	}

	if cr.count > 0 {
		e.count = cr.count
		e.hasCount = true
	}

	return e, nil
}

// timeSetIfValid implements spec §4.2 step 3's "if cur's hour/minute/second
// fails a respective by* filter, the time set is empty" rule after cur has
// been advanced to a new hour/minute/second.
func (e *Expander) timeSetIfValid() []time.Time {
	r := e.rule
	if (len(r.byhour) != 0 && !contains(r.byhour, e.hour)) ||
		(len(r.byminute) != 0 && !contains(r.byminute, e.minute)) ||
		(len(r.bysecond) != 0 && !contains(r.bysecond, e.second)) {
		return nil
	}
	return timeSetFor(r, e.hour, e.minute, e.second)
}

func timeSetFor(rule *compiledRule, hour, minute, second int) []time.Time {
	var result []time.Time
	switch rule.freq {
	case HOURLY:
		for _, m := range rule.byminute {
			for _, s := range rule.bysecond {
				result = append(result, time.Date(1, 1, 1, hour, m, s, 0, rule.dtstart.Location()))
			}
		}
		sort.Sort(byClock(result))
	case MINUTELY:
		for _, s := range rule.bysecond {
			result = append(result, time.Date(1, 1, 1, hour, minute, s, 0, rule.dtstart.Location()))
		}
		sort.Sort(byClock(result))
	case SECONDLY:
		result = []time.Time{time.Date(1, 1, 1, hour, minute, second, 0, rule.dtstart.Location())}
	}
	return result
}

// Next returns the next occurrence, advancing outer iterations as needed.
func (e *Expander) Next() (time.Time, bool) {
	if len(e.remain) == 0 && !e.finished {
		e.generate()
	}
	if len(e.remain) == 0 {
		return time.Time{}, false
	}
	v := e.remain[0]
	e.remain = e.remain[1:]
	return v, true
}

func (e *Expander) generate() {
	r := e.rule
	for len(e.remain) == 0 {
		set, start, end := daySet(r, e.yi, e.year, e.month, e.day)
		e.filtered = filterDaySet(r, e.yi, e.yi.nwdaymask, set, start, end)

		if len(r.bysetpos) != 0 && len(e.timeset) != 0 {
			e.emitBySetPos(set, start, end)
		} else {
			e.emitPlain(set, start, end)
		}
		if e.finished {
			return
		}

		e.advance()
		if e.finished {
			return
		}
	}
}

func (e *Expander) emitPlain(set []int, start, end int) {
	for idx := start; idx < end; idx++ {
		i := set[idx]
		if i < 0 {
			continue
		}
		date := e.yi.firstYDay.AddDate(0, 0, i)
		for _, tm := range e.timeset {
			res := time.Date(date.Year(), date.Month(), date.Day(), tm.Hour(), tm.Minute(), tm.Second(), tm.Nanosecond(), tm.Location())
			if !e.accept(res) {
				return
			}
		}
	}
}

func (e *Expander) emitBySetPos(set []int, start, end int) {
	var days []int
	for idx := start; idx < end; idx++ {
		if set[idx] >= 0 {
			days = append(days, set[idx])
		}
	}
	n := len(days) * len(e.timeset)
	var selected []time.Time
	for _, pos := range e.rule.bysetpos {
		var flat int
		if pos > 0 {
			flat = pos - 1
		} else {
			flat = n + pos
		}
		if flat < 0 || flat >= n {
			continue
		}
		dayPos, timePos := flat/len(e.timeset), flat%len(e.timeset)
		dayIdx, err := pySubscript(days, dayPos)
		if err != nil {
			continue
		}
		tm := e.timeset[timePos]
		date := e.yi.firstYDay.AddDate(0, 0, dayIdx)
		res := time.Date(date.Year(), date.Month(), date.Day(), tm.Hour(), tm.Minute(), tm.Second(), tm.Nanosecond(), tm.Location())
		if !timesContain(selected, res) {
			selected = append(selected, res)
		}
	}
	sortTimes(selected)
	for _, res := range selected {
		if !e.accept(res) {
			return
		}
	}
}

func sortTimes(ts []time.Time) {
	sort.Slice(ts, func(i, j int) bool { return ts[i].Before(ts[j]) })
}

// timesContain reports whether res is already present in ts, so distinct
// bysetpos values that resolve to the same (day, time) emit only once.
func timesContain(ts []time.Time, res time.Time) bool {
	for _, t := range ts {
		if t.Equal(res) {
			return true
		}
	}
	return false
}

// accept applies spec §4.2 step 8 to one candidate instant. It returns
// false once the expander must stop (Until crossed or COUNT exhausted).
func (e *Expander) accept(res time.Time) bool {
	if e.rule.hasUntil && res.After(e.rule.until) {
		e.finished = true
		return false
	}
	if res.Before(e.rule.dtstart) {
		return true
	}
	e.remain = append(e.remain, res)
	e.totalEmitted++
	if e.hasCount {
		e.count--
		if e.count == 0 {
			e.finished = true
			return false
		}
	}
	return true
}

// advance performs spec §4.2 step 9's period advance.
func (e *Expander) advance() {
	r := e.rule
	fixday := false
	switch r.freq {
	case YEARLY:
		e.year += r.interval
		if e.year > maxYear {
			e.finished = true
			return
		}
		e.rebuildYear()
	case MONTHLY:
		m := int(e.month) + r.interval
		if m > 12 {
			div, mod := divmod(m, 12)
			e.month = time.Month(mod)
			e.year += div
			if e.month == 0 {
				e.month = 12
				e.year--
			}
			if e.year > maxYear {
				e.finished = true
				return
			}
		} else {
			e.month = time.Month(m)
		}
		e.rebuildYear()
	case WEEKLY:
		var delta int
		if r.wkst > e.weekday {
			delta = -(e.weekday + 1 + (6 - r.wkst)) + r.interval*7
		} else {
			delta = -(e.weekday - r.wkst) + r.interval*7
		}
		e.day += delta
		e.weekday = r.wkst
		fixday = true
	case DAILY:
		e.day += r.interval
		fixday = true
	case HOURLY:
		if e.filtered {
			// The current day had no matching candidate at all (a
			// bymonth/bymonthday/etc. reject, not a by-clock one);
			// jump to the last hour of the day instead of stepping
			// through it one interval at a time.
			e.hour += ((23 - e.hour) / r.interval) * r.interval
		}
		e.hour += r.interval
		div, mod := divmod(e.hour, 24)
		if div != 0 {
			e.hour = mod
			e.day += div
			fixday = true
		}
		e.timeset = e.timeSetIfValid()
	case MINUTELY:
		if e.filtered {
			e.minute += ((1439 - (e.hour*60 + e.minute)) / r.interval) * r.interval
		}
		e.minute += r.interval
		div, mod := divmod(e.minute, 60)
		if div != 0 {
			e.minute = mod
			e.hour += div
			d2, m2 := divmod(e.hour, 24)
			if d2 != 0 {
				e.hour = m2
				e.day += d2
				fixday = true
			}
		}
		e.timeset = e.timeSetIfValid()
	case SECONDLY:
		if e.filtered {
			e.second += ((86399 - (e.hour*3600 + e.minute*60 + e.second)) / r.interval) * r.interval
		}
		e.second += r.interval
		div, mod := divmod(e.second, 60)
		if div != 0 {
			e.second = mod
			e.minute += div
			d2, m2 := divmod(e.minute, 60)
			if d2 != 0 {
				e.minute = m2
				e.hour += d2
				d3, m3 := divmod(e.hour, 24)
				if d3 != 0 {
					e.hour = m3
					e.day += d3
					fixday = true
				}
			}
		}
		e.timeset = e.timeSetIfValid()
	}

	if fixday && e.day > 28 {
		dim := daysInMonth(e.month, e.year)
		if e.day > dim {
			for e.day > dim {
				e.day -= dim
				e.month++
				if e.month == 13 {
					e.month = 1
					e.year++
					if e.year > maxYear {
						e.finished = true
						return
					}
				}
				dim = daysInMonth(e.month, e.year)
			}
			e.rebuildYear()
		}
	}
}

func (e *Expander) rebuildYear() {
	if e.yi.year != e.year {
		e.yi = buildYearInfo(e.rule, e.year)
		e.yi.lastMonth = 0
	}
	if e.yi.lastMonth != e.month {
		e.yi.nwdaymask = buildRelativeWeekdayMask(e.rule, e.yi, e.month)
		e.yi.lastMonth = e.month
	}
}
