// Package run orchestrates the two-pass split pipeline: boundary discovery,
// selector resolution, and one replay of the log per output file.
package run

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/xivtools/xivsplit/internal/anonymize"
	"github.com/xivtools/xivsplit/internal/collector"
	"github.com/xivtools/xivsplit/internal/netlog"
	"github.com/xivtools/xivsplit/internal/notify"
	"github.com/xivtools/xivsplit/internal/splitter"
)

// Sentinel errors the CLI maps to distinct exit codes.
var (
	// ErrUsage marks selector contract violations detected before any I/O.
	ErrUsage = errors.New("usage error")
	// ErrRangeNotFound marks a selector that resolved to no record.
	ErrRangeNotFound = errors.New("no matching fight or zone")
)

// Selector picks the fight(s) or zone(s) to split out. Exactly one field
// must be set; indexes are 1-based as shown by the list command.
type Selector struct {
	FightIndex int
	ZoneIndex  int
	FightRegex string
	ZoneRegex  string
}

// Validate enforces the exactly-one-selector contract.
func (s Selector) Validate() error {
	n := 0
	if s.FightIndex > 0 {
		n++
	}
	if s.ZoneIndex > 0 {
		n++
	}
	if s.FightRegex != "" {
		n++
	}
	if s.ZoneRegex != "" {
		n++
	}
	switch n {
	case 1:
		return nil
	case 0:
		return fmt.Errorf("%w: one of --fight, --zone, --fight-name, --zone-name is required", ErrUsage)
	default:
		return fmt.Errorf("%w: only one of --fight, --zone, --fight-name, --zone-name may be given", ErrUsage)
	}
}

// Options configures one split run.
type Options struct {
	Input          string
	OutDir         string
	Overwrite      bool
	Anonymize      bool
	AnalysisFilter bool
	IncludeGlobals bool
}

// target is one resolved output range.
type target struct {
	name  string
	start string
	end   string
	seq   int
}

// Split discovers boundaries in the input log, resolves the selector, and
// writes one output file per matched record. It returns the paths written.
// Each output is produced by an independent full re-read of the input with
// its own splitter and anonymizer, so no state leaks between files.
func Split(opts Options, sel Selector, n notify.Notifier) ([]string, error) {
	if err := sel.Validate(); err != nil {
		return nil, err
	}
	if n == nil {
		n = notify.Discard
	}

	c := collector.New(n)
	err := netlog.ScanFile(opts.Input, func(line netlog.Line) error {
		c.Process(line, false)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", opts.Input, err)
	}

	targets, err := resolve(sel, c)
	if err != nil {
		return nil, err
	}

	var written []string
	for _, t := range targets {
		path, err := splitOne(opts, t, n)
		if err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

// resolve maps the selector onto the collector's records. Regex selectors
// match case-insensitively against the display name (seal name first) and
// may resolve to several records.
func resolve(sel Selector, c *collector.Collector) ([]target, error) {
	fights := c.Fights()
	zones := c.Zones()

	switch {
	case sel.FightIndex > 0:
		if sel.FightIndex > len(fights) {
			return nil, fmt.Errorf("%w: fight %d of %d", ErrRangeNotFound, sel.FightIndex, len(fights))
		}
		f := fights[sel.FightIndex-1]
		return []target{{name: f.DisplayName(), start: f.StartLine, end: f.EndLine, seq: sel.FightIndex}}, nil

	case sel.ZoneIndex > 0:
		if sel.ZoneIndex > len(zones) {
			return nil, fmt.Errorf("%w: zone %d of %d", ErrRangeNotFound, sel.ZoneIndex, len(zones))
		}
		z := zones[sel.ZoneIndex-1]
		return []target{{name: z.Name, start: z.StartLine, end: z.EndLine, seq: sel.ZoneIndex}}, nil

	case sel.FightRegex != "":
		re, err := compileNamePattern(sel.FightRegex)
		if err != nil {
			return nil, err
		}
		var targets []target
		for i, f := range fights {
			if re.MatchString(f.DisplayName()) {
				targets = append(targets, target{name: f.DisplayName(), start: f.StartLine, end: f.EndLine, seq: i + 1})
			}
		}
		if len(targets) == 0 {
			return nil, fmt.Errorf("%w: no fight name matches %q", ErrRangeNotFound, sel.FightRegex)
		}
		return targets, nil

	default:
		re, err := compileNamePattern(sel.ZoneRegex)
		if err != nil {
			return nil, err
		}
		var targets []target
		for i, z := range zones {
			if re.MatchString(z.Name) {
				targets = append(targets, target{name: z.Name, start: z.StartLine, end: z.EndLine, seq: i + 1})
			}
		}
		if len(targets) == 0 {
			return nil, fmt.Errorf("%w: no zone name matches %q", ErrRangeNotFound, sel.ZoneRegex)
		}
		return targets, nil
	}
}

// compileNamePattern compiles a user-supplied name pattern. Matching is
// case-insensitive unless the pattern already sets its own flags.
func compileNamePattern(pattern string) (*regexp.Regexp, error) {
	if !strings.HasPrefix(pattern, "(?") {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid name pattern: %v", ErrUsage, err)
	}
	return re, nil
}

// splitOne replays the whole input once and writes the lines of one target
// range. The destination must not exist unless Overwrite is set; a partial
// file is left in place on write errors (write-once semantics, no cleanup).
func splitOne(opts Options, t target, n notify.Notifier) (string, error) {
	outPath := filepath.Join(opts.OutDir, collector.GenerateFileName(t.name, t.start, t.seq))

	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if opts.Overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	sp, err := splitter.New(t.start, t.end, opts.IncludeGlobals, opts.AnalysisFilter)
	if err != nil {
		return "", err
	}

	// The pseudonym mapping is scoped to one output file so selections
	// split from the same log do not share state.
	var anon *anonymize.Anonymizer
	if opts.Anonymize {
		anon = anonymize.New()
	}

	f, err := os.OpenFile(outPath, flags, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("output file %s exists (use --overwrite to replace it)", outPath)
		}
		return "", err
	}
	w := bufio.NewWriter(f)

	emit := func(line netlog.Line) error {
		out := line.Raw
		if anon != nil {
			rewritten, ok := anon.Process(line, n)
			if !ok {
				return nil
			}
			out = rewritten
		}
		if _, err := w.WriteString(out + "\n"); err != nil {
			return err
		}
		if anon != nil {
			anon.ValidateLine(out, n)
		}
		return nil
	}

	err = netlog.ScanFile(opts.Input, func(line netlog.Line) error {
		if sp.Done() {
			return errStopScan
		}
		return sp.Process(line, false, emit)
	})
	if err != nil && !errors.Is(err, errStopScan) {
		f.Close()
		return "", fmt.Errorf("writing %s: %w", outPath, err)
	}
	sp.Finish()

	if anon != nil {
		anon.ValidateIDs(n)
	}

	if err := w.Flush(); err != nil {
		f.Close()
		return "", fmt.Errorf("writing %s: %w", outPath, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", outPath, err)
	}
	return outPath, nil
}

// errStopScan short-circuits the file scan once the splitter is done.
var errStopScan = errors.New("stop scan")
