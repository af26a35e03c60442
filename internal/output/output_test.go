package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/xivtools/xivsplit/internal/collector"
	"github.com/xivtools/xivsplit/internal/netlog"
)

var (
	zoneStart  = "01|2024-03-14T20:00:00.0000000-07:00|220|The Bowl of Embers|"
	fightStart = "33|2024-03-14T20:01:00.0000000-07:00|80034E6C|40000001|00|00|00|"
	fightEnd   = "33|2024-03-14T20:02:00.0000000-07:00|80034E6C|40000003|00|00|00|"
)

func sampleRecords() ([]collector.Zone, []collector.Fight) {
	zones := []collector.Zone{{Name: "The Bowl of Embers", StartLine: zoneStart}}
	fights := []collector.Fight{{
		Name:      "The Bowl of Embers",
		SealName:  "The Bowl of Embers",
		StartLine: fightStart,
		EndLine:   fightEnd,
	}}
	return zones, fights
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"json", FormatJSON},
		{"TABLE", FormatTable},
		{"text", FormatText},
		{"", FormatText},
		{"bogus", FormatText},
	}
	for _, tt := range tests {
		if got := ParseFormat(tt.in); got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestWriteListingText(t *testing.T) {
	zones, fights := sampleRecords()
	var buf bytes.Buffer
	if err := New(&buf, FormatText).WriteListing(zones, fights); err != nil {
		t.Fatalf("WriteListing() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "zone 1: The Bowl of Embers (open at EOF)") {
		t.Errorf("text output missing open zone: %s", out)
	}
	if !strings.Contains(out, "fight 1: The Bowl of Embers") {
		t.Errorf("text output missing fight: %s", out)
	}
}

func TestWriteListingJSON(t *testing.T) {
	zones, fights := sampleRecords()
	var buf bytes.Buffer
	if err := New(&buf, FormatJSON).WriteListing(zones, fights); err != nil {
		t.Fatalf("WriteListing() error = %v", err)
	}

	var got struct {
		Zones []struct {
			Index int    `json:"index"`
			Name  string `json:"name"`
			Open  bool   `json:"open"`
		} `json:"zones"`
		Fights []struct {
			Index    int    `json:"index"`
			SealName string `json:"seal_name"`
			Start    string `json:"start"`
			Open     bool   `json:"open"`
		} `json:"fights"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if len(got.Zones) != 1 || got.Zones[0].Index != 1 || !got.Zones[0].Open {
		t.Errorf("zones = %+v", got.Zones)
	}
	if len(got.Fights) != 1 || got.Fights[0].SealName != "The Bowl of Embers" || got.Fights[0].Open {
		t.Errorf("fights = %+v", got.Fights)
	}
	if got.Fights[0].Start != "2024-03-14 20:01:00" {
		t.Errorf("fight start = %q", got.Fights[0].Start)
	}
}

func TestWriteListingTable(t *testing.T) {
	zones, fights := sampleRecords()
	var buf bytes.Buffer
	if err := New(&buf, FormatTable).WriteListing(zones, fights); err != nil {
		t.Fatalf("WriteListing() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "ZONE") || !strings.Contains(out, "FIGHT") {
		t.Errorf("table output missing headers: %s", out)
	}
	if !strings.Contains(out, "open") {
		t.Errorf("table output missing open marker: %s", out)
	}
}

func TestColorizeEvent(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		colored bool
	}{
		{"zone change", zoneStart, true},
		{"fight start", fightStart, true},
		{"victory", fightEnd, true},
		{"telemetry", "39|2024-03-14T20:01:11.0000000-07:00|10123456|Aria|45000|45000|0|0|0|", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ColorizeEvent(netlog.Parse(tt.raw), "text")
			if tt.colored && got == "text" {
				t.Errorf("ColorizeEvent() left %s uncolored", tt.name)
			}
			if !tt.colored && got != "text" {
				t.Errorf("ColorizeEvent() colored %s: %q", tt.name, got)
			}
		})
	}
}

func TestShouldColorize(t *testing.T) {
	var buf bytes.Buffer
	if ShouldColorize(ColorAlways, &buf) != true {
		t.Error("ColorAlways should colorize")
	}
	if ShouldColorize(ColorNever, &buf) != false {
		t.Error("ColorNever should not colorize")
	}
	// A plain buffer is not a terminal.
	if ShouldColorize(ColorAuto, &buf) != false {
		t.Error("ColorAuto should not colorize a buffer")
	}
}
