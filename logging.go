package rrecur

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
)

// log is the package-level logger, grounded on alibs-slim/alog's pattern of
// a lazily-initialized *zerolog.Logger obtained through an accessor rather
// than a bare global. The engine itself never logs (it is a pure
// pull-driven iterator, see spec §5). The merger logs when its iteration
// limit actually truncates output (Warn) and when it drops an excluded
// instant (Debug); Generate logs a rejected rule (Error); the transformer
// logs when a predicate stops enumeration (Debug).
var (
	loggerOnce sync.Once
	logger     zerolog.Logger
)

func log() *zerolog.Logger {
	loggerOnce.Do(func() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true}).
			Level(zerolog.WarnLevel).
			With().Timestamp().Str("pkg", "rrecur").Logger()
	})
	return &logger
}

// SetLogger replaces the package logger, e.g. so a host application can
// raise the level to Debug or redirect output.
func SetLogger(l zerolog.Logger) {
	loggerOnce.Do(func() {})
	logger = l
}
