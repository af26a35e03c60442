// Package splitter replays a capture log and emits only the lines inside a
// previously discovered boundary range.
package splitter

import (
	"errors"

	"github.com/xivtools/xivsplit/internal/netlog"
)

type state int

const (
	beforeRange state = iota
	inRange
	done
)

// Splitter is a three-state range machine over exact boundary lines. Both
// boundaries are inclusive. An empty end marker means "until end of
// stream"; the caller signals end of stream with Finish.
type Splitter struct {
	start string
	end   string

	includeGlobals bool
	analysisFilter bool

	st      state
	lastRaw string
	seen    bool
}

// New constructs a Splitter for the range [start, end]. start must be the
// verbatim text of the range's first line; an empty start is a caller
// contract violation. end may be "" meaning until EOF.
func New(start, end string, includeGlobals, analysisFilter bool) (*Splitter, error) {
	if start == "" {
		return nil, errors.New("splitter: start line must not be empty")
	}
	return &Splitter{
		start:          start,
		end:            end,
		includeGlobals: includeGlobals,
		analysisFilter: analysisFilter,
	}, nil
}

// Done reports whether the end boundary has been passed. Feeding lines after
// Done is a harmless no-op, but callers should stop.
func (s *Splitter) Done() bool {
	return s.st == done
}

// Process feeds one line in file order, calling emit for every line that
// belongs in the output. isRestart has the same repeat-tolerance semantics
// as the collector: an exact repeat of the previous line is skipped.
func (s *Splitter) Process(line netlog.Line, isRestart bool, emit func(netlog.Line) error) error {
	if s.st == done {
		return nil
	}
	if isRestart && s.seen && line.Raw == s.lastRaw {
		return nil
	}
	s.lastRaw = line.Raw
	s.seen = true

	if s.st == beforeRange {
		if line.Raw != s.start {
			return nil
		}
		s.st = inRange
	}

	var err error
	if s.wantLine(line) {
		err = emit(line)
	}

	if s.end != "" && line.Raw == s.end {
		s.st = done
	}
	return err
}

// wantLine applies the emission rules inside the range: with the analysis
// filter only interesting lines survive, and global lines are always kept
// when includeGlobals is set.
func (s *Splitter) wantLine(line netlog.Line) bool {
	if s.includeGlobals && line.IsGlobal() {
		return true
	}
	if s.analysisFilter {
		return line.IsInteresting()
	}
	return true
}

// Finish signals end of stream. A splitter with no end marker transitions
// to done here; one with an explicit end marker is left as is, so a caller
// can detect a range whose end was never seen.
func (s *Splitter) Finish() {
	if s.end == "" && s.st == inRange {
		s.st = done
	}
}
