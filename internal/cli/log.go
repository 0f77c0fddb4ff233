package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns the logger shared by the runner and the HTTP server.
// Timestamps read "15:04:05.00" so per-stage encode and decode timings line up.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times one command, such as a verify round trip, and logs the
// elapsed time when it finishes. It is not safe for concurrent use.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress starts timing now.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, e.g. "Verified round trip (12ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
