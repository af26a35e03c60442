package collector

import (
	"fmt"
	"strings"

	"github.com/xivtools/xivsplit/internal/netlog"
)

// GenerateFileName derives a filesystem-safe output name from a record name
// and the raw line that started the record. seq is the record's 1-based
// position, used as a fallback when no name resolves.
func GenerateFileName(name, startLine string, seq int) string {
	base := sanitize(name)
	if base == "" {
		base = fmt.Sprintf("unknown-%d", seq)
	}
	if ts := netlog.Parse(startLine).Timestamp; !ts.IsZero() {
		base += "-" + ts.Format("20060102-150405")
	}
	return base + ".log"
}

// sanitize replaces filesystem-hostile runes and collapses repeats so names
// like "The Bowl of Embers" become "The-Bowl-of-Embers".
func sanitize(name string) string {
	var b strings.Builder
	lastDash := false
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '_':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-.")
}
