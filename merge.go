package rrecur

import "time"

// headedStream caches the current head of a Stream so the merger can peek
// without consuming.
type headedStream struct {
	s    Stream
	head time.Time
	has  bool
}

func newHeadedStream(s Stream) *headedStream {
	h := &headedStream{s: s}
	h.advance()
	return h
}

func (h *headedStream) advance() {
	h.head, h.has = h.s.Next()
}

// Merger is the multi-stream merger (spec §4.3): a k-way ascending merge of
// inclusion streams, minus exclusion streams, deduplicated, with an
// optional hard iteration cap. It is itself a Stream, so it composes with
// anything else in this package.
type Merger struct {
	include []*headedStream
	exclude []*headedStream
	limit   int // 0 means unlimited
	emitted int
}

// NewMerger builds a merger over the given inclusion and exclusion streams.
// limit, when positive, is the spec's iteration_limit: a hard ceiling on
// the number of instants this merger will ever emit.
func NewMerger(include, exclude []Stream, limit int) *Merger {
	m := &Merger{limit: limit}
	for _, s := range include {
		m.include = append(m.include, newHeadedStream(s))
	}
	for _, s := range exclude {
		m.exclude = append(m.exclude, newHeadedStream(s))
	}
	return m
}

// Next implements spec §4.3's algorithm: drop exhausted inclusion streams,
// take the minimum head across what remains (comparison is always by
// absolute instant — time.Time's Before/Equal already ignore the zone a
// value is expressed in), advance exclusion streams past anything earlier
// than that minimum, and either emit it (advancing every inclusion stream
// tied with it) or skip it as excluded.
func (m *Merger) Next() (time.Time, bool) {
	for {
		if m.limit > 0 && m.emitted >= m.limit {
			log().Warn().Int("limit", m.limit).Msg("merger: iteration_limit reached, truncating output")
			return time.Time{}, false
		}

		m.include = dropExhausted(m.include)
		if len(m.include) == 0 {
			return time.Time{}, false
		}

		min := m.include[0].head
		for _, h := range m.include[1:] {
			if h.head.Before(min) {
				min = h.head
			}
		}

		excluded := false
		for _, ex := range m.exclude {
			for ex.has && ex.head.Before(min) {
				ex.advance()
			}
			if ex.has && ex.head.Equal(min) {
				excluded = true
			}
		}
		m.exclude = dropExhausted(m.exclude)

		for _, h := range m.include {
			if h.has && h.head.Equal(min) {
				h.advance()
			}
		}

		if excluded {
			log().Debug().Time("instant", min).Msg("merger: excluded by EXDATE/EXRULE")
			continue
		}

		m.emitted++
		return min, true
	}
}

func dropExhausted(streams []*headedStream) []*headedStream {
	out := streams[:0]
	for _, s := range streams {
		if s.has {
			out = append(out, s)
		}
	}
	return out
}
