package anonymize

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xivtools/xivsplit/internal/netlog"
	"github.com/xivtools/xivsplit/internal/notify"
)

// ValidateIDs checks the assigned mapping for referential consistency after
// a whole file has been processed: every player ID seen anywhere must have a
// pseudonym, and no pseudonym may stand for two real tokens. Violations are
// reported through n; this never aborts a run.
func (a *Anonymizer) ValidateIDs(n notify.Notifier) {
	var orphans []string
	for id := range a.seenIDs {
		if _, ok := a.ids[id]; !ok {
			orphans = append(orphans, id)
		}
	}
	sort.Strings(orphans)
	for _, id := range orphans {
		n.Report(fmt.Sprintf("player id %s was seen but never assigned a pseudonym", id))
	}

	reportCollisions(a.names, n, "name")
	reportCollisions(a.ids, n, "id")
}

func reportCollisions(mapping map[string]string, n notify.Notifier, kind string) {
	reverse := make(map[string]string, len(mapping))
	for real, pseudo := range mapping {
		if other, ok := reverse[pseudo]; ok {
			first, second := real, other
			if second < first {
				first, second = second, first
			}
			n.Report(fmt.Sprintf("pseudonym %s assigned to two %ss (%s and %s)",
				pseudo, kind, first, second))
			continue
		}
		reverse[pseudo] = real
	}
}

// ValidateLine scans an already-written output line for residual identity
// tokens the rewriter should have caught. Defense in depth: findings are
// diagnostics, the line has already been written.
func (a *Anonymizer) ValidateLine(raw string, n notify.Notifier) {
	line := netlog.Parse(raw)

	for _, f := range line.Fields {
		if _, ok := a.ids[f]; ok {
			n.Report(fmt.Sprintf("residual player id %s in output line", f))
			continue
		}
		if netlog.IsPlayerID(f) {
			n.Report(fmt.Sprintf("unmapped player id %s in output line", f))
		}
	}

	for real := range a.names {
		if strings.Contains(raw, real) {
			n.Report(fmt.Sprintf("residual player name %q in output line", real))
		}
	}
}
