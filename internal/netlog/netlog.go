// Package netlog parses and classifies network-capture combat log lines.
//
// The capture format is line oriented: one event per line, fields separated
// by '|'. Field 0 is a decimal event code and field 1 a timestamp; the
// meaning of the remaining fields depends on the code.
package netlog

import (
	"bufio"
	"os"
	"strconv"
	"strings"
	"time"
)

// Code identifies the event kind carried by a log line.
type Code int

const (
	CodeUnknown             Code = -1
	CodeLogMessage          Code = 0
	CodeChangeZone          Code = 1
	CodeChangePrimaryPlayer Code = 2
	CodeAddCombatant        Code = 3
	CodeRemoveCombatant     Code = 4
	CodeStartsCasting       Code = 20
	CodeAbility             Code = 21
	CodeAOEAbility          Code = 22
	CodeDoTHoT              Code = 24
	CodeDeath               Code = 25
	CodeStatusAdd           Code = 26
	CodeStatusRemove        Code = 30
	CodeDirector            Code = 33
	CodeActionSync          Code = 37
	CodeUpdateHP            Code = 39
	CodeDebug               Code = 251
	CodePacketDump          Code = 252
	CodeVersion             Code = 253
	CodeError               Code = 254
)

// Director commands marking encounter boundaries.
const (
	DirectorCommence = "40000001"
	DirectorVictory  = "40000003"
	DirectorFade     = "40000005"
	DirectorRestart  = "40000006"
	DirectorWipe     = "40000010"
)

// sealSuffix is the fixed tail of a territory-seal system message. The text
// before it names the sealed area.
const sealSuffix = " will be sealed off in 15 seconds!"

// SealChannel is the system chat channel that carries seal messages.
const SealChannel = "0839"

// timestampFormats lists the layouts seen in capture logs, most common first.
var timestampFormats = []string{
	"2006-01-02T15:04:05.0000000-07:00",
	time.RFC3339Nano,
	time.RFC3339,
}

// Line is a single classified log line. Immutable once parsed.
type Line struct {
	Raw       string
	Code      Code
	Timestamp time.Time
	// Fields holds the positional fields after the timestamp.
	Fields []string
}

// Parse classifies a raw line. It never fails: lines that do not follow the
// capture format come back with CodeUnknown and no fields.
func Parse(raw string) Line {
	line := Line{Raw: raw, Code: CodeUnknown}

	parts := strings.Split(raw, "|")
	if len(parts) < 2 {
		return line
	}

	code, err := strconv.Atoi(parts[0])
	if err != nil {
		return line
	}
	line.Code = Code(code)
	line.Timestamp = parseTimestamp(parts[1])
	line.Fields = parts[2:]

	return line
}

func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Field returns the positional field at index i, or "" when out of range.
func (l Line) Field(i int) string {
	if i < 0 || i >= len(l.Fields) {
		return ""
	}
	return l.Fields[i]
}

// IsPlayerID reports whether an actor ID token belongs to a player
// character. Player IDs are 8 hex digits starting with "10"; NPCs, pets and
// environment actors use other prefixes.
func IsPlayerID(id string) bool {
	if len(id) != 8 || !strings.HasPrefix(id, "10") {
		return false
	}
	for _, r := range id {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'A' && r <= 'F':
		case r >= 'a' && r <= 'f':
		default:
			return false
		}
	}
	return true
}

// ScanFile streams every non-empty line of a capture log through fn in file
// order. Scanning stops at the first error returned by fn.
func ScanFile(path string, fn func(Line) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	const maxScanTokenSize = 1024 * 1024
	buf := make([]byte, maxScanTokenSize)
	scanner.Buffer(buf, maxScanTokenSize)

	for scanner.Scan() {
		raw := scanner.Text()
		if strings.TrimSpace(raw) == "" {
			continue
		}
		if err := fn(Parse(raw)); err != nil {
			return err
		}
	}

	return scanner.Err()
}
