// Package output renders discovered zones and fights in text, JSON, and
// table formats.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/xivtools/xivsplit/internal/collector"
	"github.com/xivtools/xivsplit/internal/netlog"
)

// Format represents an output format type.
type Format string

const (
	FormatText  Format = "text"
	FormatJSON  Format = "json"
	FormatTable Format = "table"
)

// ParseFormat converts a string to a Format, defaulting to text.
func ParseFormat(s string) Format {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON
	case "table":
		return FormatTable
	default:
		return FormatText
	}
}

// Writer handles writing formatted listings.
type Writer struct {
	w      io.Writer
	format Format
}

// New creates a new output Writer.
func New(w io.Writer, format Format) *Writer {
	return &Writer{w: w, format: format}
}

// listing is the JSON shape of a full discovery result.
type listing struct {
	Zones  []zoneRecord  `json:"zones"`
	Fights []fightRecord `json:"fights"`
}

type zoneRecord struct {
	Index int    `json:"index"`
	Name  string `json:"name,omitempty"`
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
	Open  bool   `json:"open"`
}

type fightRecord struct {
	Index    int    `json:"index"`
	Name     string `json:"name,omitempty"`
	SealName string `json:"seal_name,omitempty"`
	Start    string `json:"start,omitempty"`
	End      string `json:"end,omitempty"`
	Open     bool   `json:"open"`
}

// WriteListing outputs the zones and fights of one log file. Records are
// numbered from 1, matching what the split command selectors accept.
func (wr *Writer) WriteListing(zones []collector.Zone, fights []collector.Fight) error {
	switch wr.format {
	case FormatJSON:
		return wr.writeJSON(zones, fights)
	case FormatTable:
		return wr.writeTable(zones, fights)
	default:
		return wr.writeText(zones, fights)
	}
}

func (wr *Writer) writeJSON(zones []collector.Zone, fights []collector.Fight) error {
	l := listing{Zones: []zoneRecord{}, Fights: []fightRecord{}}
	for i, z := range zones {
		l.Zones = append(l.Zones, zoneRecord{
			Index: i + 1,
			Name:  z.Name,
			Start: lineTime(z.StartLine),
			End:   lineTime(z.EndLine),
			Open:  z.EndLine == "",
		})
	}
	for i, f := range fights {
		l.Fights = append(l.Fights, fightRecord{
			Index:    i + 1,
			Name:     f.Name,
			SealName: f.SealName,
			Start:    lineTime(f.StartLine),
			End:      lineTime(f.EndLine),
			Open:     f.EndLine == "",
		})
	}

	enc := json.NewEncoder(wr.w)
	enc.SetIndent("", "  ")
	return enc.Encode(l)
}

func (wr *Writer) writeText(zones []collector.Zone, fights []collector.Fight) error {
	for i, z := range zones {
		fmt.Fprintf(wr.w, "zone %d: %s%s\n", i+1, displayName(z.Name), openSuffix(z.EndLine))
	}
	for i, f := range fights {
		fmt.Fprintf(wr.w, "fight %d: %s%s\n", i+1, displayName(f.DisplayName()), openSuffix(f.EndLine))
	}
	return nil
}

func (wr *Writer) writeTable(zones []collector.Zone, fights []collector.Fight) error {
	tw := tabwriter.NewWriter(wr.w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "ZONE\tNAME\tSTART\tEND")
	for i, z := range zones {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n",
			i+1, displayName(z.Name), lineTime(z.StartLine), endCell(z.EndLine))
	}

	fmt.Fprintln(tw, "FIGHT\tNAME\tSEAL\tSTART\tEND")
	for i, f := range fights {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			i+1, displayName(f.Name), f.SealName, lineTime(f.StartLine), endCell(f.EndLine))
	}

	return tw.Flush()
}

func displayName(name string) string {
	if name == "" {
		return "(unnamed)"
	}
	return name
}

func openSuffix(endLine string) string {
	if endLine == "" {
		return " (open at EOF)"
	}
	return ""
}

func endCell(endLine string) string {
	if endLine == "" {
		return "open"
	}
	return lineTime(endLine)
}

func lineTime(raw string) string {
	if raw == "" {
		return ""
	}
	ts := netlog.Parse(raw).Timestamp
	if ts.IsZero() {
		return ""
	}
	return ts.Format("2006-01-02 15:04:05")
}
