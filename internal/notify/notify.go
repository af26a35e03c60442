// Package notify carries non-fatal diagnostics from the pipeline to the
// user-facing layer.
package notify

import "github.com/rs/zerolog"

// Notifier receives warning-level diagnostics. Implementations must not
// treat a report as fatal; the pipeline keeps running after reporting.
type Notifier interface {
	Report(msg string)
}

// Logger returns a Notifier that reports through a zerolog logger at warn
// level.
func Logger(l zerolog.Logger) Notifier {
	return loggerNotifier{l: l}
}

type loggerNotifier struct {
	l zerolog.Logger
}

func (n loggerNotifier) Report(msg string) {
	n.l.Warn().Msg(msg)
}

// Discard is a Notifier that drops every report.
var Discard Notifier = discard{}

type discard struct{}

func (discard) Report(string) {}

// Recorder collects reports in order. Used by tests and anywhere the caller
// wants to inspect diagnostics after a run.
type Recorder struct {
	Messages []string
}

func (r *Recorder) Report(msg string) {
	r.Messages = append(r.Messages, msg)
}

// Count returns the number of reports received.
func (r *Recorder) Count() int {
	return len(r.Messages)
}

// Counter forwards reports to Next (when set) and counts them. The CLI uses
// the count to decide the final exit status.
type Counter struct {
	Next  Notifier
	count int
}

func (c *Counter) Report(msg string) {
	c.count++
	if c.Next != nil {
		c.Next.Report(msg)
	}
}

// Count returns the number of reports received.
func (c *Counter) Count() int {
	return c.count
}
