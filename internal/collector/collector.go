// Package collector discovers zone and encounter boundaries in a single
// forward pass over a capture log.
package collector

import (
	"fmt"

	"github.com/xivtools/xivsplit/internal/netlog"
	"github.com/xivtools/xivsplit/internal/notify"
)

// Zone is a contiguous map segment. EndLine is "" while the zone is still
// open (or was still open at EOF).
type Zone struct {
	Name      string
	StartLine string
	EndLine   string
}

// Fight is a delimited encounter. SealName, when set, takes priority over
// Name both for regex matching and for output file naming.
type Fight struct {
	Name      string
	SealName  string
	StartLine string
	EndLine   string
}

// DisplayName returns the name used for matching and file naming: the seal
// name when present, otherwise the generic fight name.
func (f Fight) DisplayName() string {
	if f.SealName != "" {
		return f.SealName
	}
	return f.Name
}

// Collector builds ordered Zone and Fight sequences from one pass over the
// log. Records are stored in append-only slices; openZone/openFight index
// the at-most-one open record of each kind (-1 when none is open).
type Collector struct {
	zones  []Zone
	fights []Fight

	openZone  int
	openFight int

	// pendingSeal is a seal name announced before its fight commenced.
	pendingSeal string
	// lastRaw lets a restarted feed of the same line be detected.
	lastRaw string
	seen    bool

	notifier notify.Notifier
}

// New returns an empty Collector reporting irregularities to n.
func New(n notify.Notifier) *Collector {
	if n == nil {
		n = notify.Discard
	}
	return &Collector{openZone: -1, openFight: -1, notifier: n}
}

// Process feeds one line in file order. isRestart marks a line the caller
// may already have fed (e.g. when seeding a collector mid-stream); an exact
// repeat of the previous line is then ignored instead of double-appended.
func (c *Collector) Process(line netlog.Line, isRestart bool) {
	if isRestart && c.seen && line.Raw == c.lastRaw {
		return
	}
	c.lastRaw = line.Raw
	c.seen = true

	switch {
	case line.IsZoneChange():
		c.openNewZone(line)
	case line.IsFightStart():
		c.openNewFight(line)
	case line.IsFightEnd():
		c.closeFight(line)
	default:
		if seal, ok := line.SealName(); ok {
			c.recordSeal(seal)
		}
	}
}

func (c *Collector) openNewZone(line netlog.Line) {
	if c.openZone >= 0 {
		c.zones[c.openZone].EndLine = line.Raw
	}
	c.zones = append(c.zones, Zone{Name: line.ZoneName(), StartLine: line.Raw})
	c.openZone = len(c.zones) - 1
}

func (c *Collector) openNewFight(line netlog.Line) {
	if c.openFight >= 0 {
		// A commence while a fight is open means the previous fight never
		// saw its end marker. Force-close it at this boundary.
		c.fights[c.openFight].EndLine = line.Raw
		c.notifier.Report(fmt.Sprintf(
			"fight %d (%s) had no end marker, closed at next fight start",
			c.openFight+1, c.fights[c.openFight].DisplayName()))
	}
	fight := Fight{StartLine: line.Raw}
	if c.openZone >= 0 {
		fight.Name = c.zones[c.openZone].Name
	}
	if c.pendingSeal != "" {
		fight.SealName = c.pendingSeal
		c.pendingSeal = ""
	}
	c.fights = append(c.fights, fight)
	c.openFight = len(c.fights) - 1
}

func (c *Collector) closeFight(line netlog.Line) {
	if c.openFight < 0 {
		c.notifier.Report("fight end marker with no open fight, ignored")
		return
	}
	c.fights[c.openFight].EndLine = line.Raw
	c.openFight = -1
}

func (c *Collector) recordSeal(seal string) {
	if c.openFight >= 0 {
		c.fights[c.openFight].SealName = seal
		return
	}
	// Seal announcements can precede the commence event.
	c.pendingSeal = seal
}

// Zones returns the discovered zones in order of first appearance.
func (c *Collector) Zones() []Zone {
	out := make([]Zone, len(c.zones))
	copy(out, c.zones)
	return out
}

// Fights returns the discovered fights in order of first appearance. A
// fight with no end marker before EOF is retained with EndLine == "";
// callers that need a closed range treat that as "until end of file".
func (c *Collector) Fights() []Fight {
	out := make([]Fight, len(c.fights))
	copy(out, c.fights)
	return out
}
