package netlog

import "testing"

const testTS = "2024-03-14T20:15:00.0000000-07:00"

func TestBoundaryPredicates(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		zoneChange bool
		fightStart bool
		fightEnd   bool
	}{
		{
			name:       "zone change",
			raw:        "01|" + testTS + "|220|The Bowl of Embers|",
			zoneChange: true,
		},
		{
			name:       "commence",
			raw:        "33|" + testTS + "|80034E6C|40000001|00|00|00|",
			fightStart: true,
		},
		{
			name:       "restart",
			raw:        "33|" + testTS + "|80034E6C|40000006|00|00|00|",
			fightStart: true,
		},
		{
			name:     "victory",
			raw:      "33|" + testTS + "|80034E6C|40000003|00|00|00|",
			fightEnd: true,
		},
		{
			name:     "fade wipe",
			raw:      "33|" + testTS + "|80034E6C|40000005|00|00|00|",
			fightEnd: true,
		},
		{
			name:     "party wipe",
			raw:      "33|" + testTS + "|80034E6C|40000010|00|00|00|",
			fightEnd: true,
		},
		{
			name: "director barrier update is no boundary",
			raw:  "33|" + testTS + "|80034E6C|40000011|00|00|00|",
		},
		{
			name: "ability is no boundary",
			raw:  "21|" + testTS + "|10123456|Aria Stormsong|1F|Fire III|4000A123|Ifrit|710003|5AC0|",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := Parse(tt.raw)
			if got := line.IsZoneChange(); got != tt.zoneChange {
				t.Errorf("IsZoneChange() = %v, want %v", got, tt.zoneChange)
			}
			if got := line.IsFightStart(); got != tt.fightStart {
				t.Errorf("IsFightStart() = %v, want %v", got, tt.fightStart)
			}
			if got := line.IsFightEnd(); got != tt.fightEnd {
				t.Errorf("IsFightEnd() = %v, want %v", got, tt.fightEnd)
			}
		})
	}
}

func TestVictoryAndWipeAreDistinct(t *testing.T) {
	victory := Parse("33|" + testTS + "|80034E6C|40000003|00|00|00|")
	wipe := Parse("33|" + testTS + "|80034E6C|40000010|00|00|00|")

	if !victory.IsVictory() || victory.IsWipe() {
		t.Errorf("victory line classified as IsVictory=%v IsWipe=%v", victory.IsVictory(), victory.IsWipe())
	}
	if !wipe.IsWipe() || wipe.IsVictory() {
		t.Errorf("wipe line classified as IsVictory=%v IsWipe=%v", wipe.IsVictory(), wipe.IsWipe())
	}
}

func TestZoneName(t *testing.T) {
	line := Parse("01|" + testTS + "|220|The Bowl of Embers|")
	if got := line.ZoneName(); got != "The Bowl of Embers" {
		t.Errorf("ZoneName() = %q", got)
	}

	other := Parse("21|" + testTS + "|10123456|Aria Stormsong|1F|Fire III|4000A123|Ifrit|710003|5AC0|")
	if got := other.ZoneName(); got != "" {
		t.Errorf("ZoneName() on non-zone line = %q, want empty", got)
	}
}

func TestSealName(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		seal string
		ok   bool
	}{
		{
			name: "seal announcement",
			raw:  "00|" + testTS + "|0839||The Bowl of Embers will be sealed off in 15 seconds!|",
			seal: "The Bowl of Embers",
			ok:   true,
		},
		{
			name: "unseal message",
			raw:  "00|" + testTS + "|0839||The Bowl of Embers is no longer sealed!|",
		},
		{
			name: "say chat mentioning seals",
			raw:  "00|" + testTS + "|000A|Aria Stormsong|this will be sealed off in 15 seconds!|",
		},
		{
			name: "non chat line",
			raw:  "01|" + testTS + "|220|The Bowl of Embers|",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seal, ok := Parse(tt.raw).SealName()
			if ok != tt.ok || seal != tt.seal {
				t.Errorf("SealName() = (%q, %v), want (%q, %v)", seal, ok, tt.seal, tt.ok)
			}
		})
	}
}

func TestInterestingAndGlobal(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		interesting bool
		global      bool
	}{
		{
			name:        "ability",
			raw:         "21|" + testTS + "|10123456|Aria Stormsong|1F|Fire III|4000A123|Ifrit|710003|5AC0|",
			interesting: true,
		},
		{
			name:        "death",
			raw:         "25|" + testTS + "|10123456|Aria Stormsong|4000A123|Ifrit|",
			interesting: true,
		},
		{
			name:        "status gain",
			raw:         "26|" + testTS + "|32|Thundercloud|10.0|10123456|Aria Stormsong|10123456|Aria Stormsong|",
			interesting: true,
		},
		{
			name: "hp telemetry",
			raw:  "39|" + testTS + "|10123456|Aria Stormsong|45000|45000|-3.2|14.5|0.2|",
		},
		{
			name: "action sync telemetry",
			raw:  "37|" + testTS + "|10123456|Aria Stormsong|0000349C|45000|",
		},
		{
			name:        "primary player change is global",
			raw:         "02|" + testTS + "|10123456|Aria Stormsong|",
			interesting: true,
			global:      true,
		},
		{
			name:   "version line is global",
			raw:    "253|" + testTS + "|version 7.0|",
			global: true,
		},
		{
			name: "unclassified",
			raw:  "free text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := Parse(tt.raw)
			if got := line.IsInteresting(); got != tt.interesting {
				t.Errorf("IsInteresting() = %v, want %v", got, tt.interesting)
			}
			if got := line.IsGlobal(); got != tt.global {
				t.Errorf("IsGlobal() = %v, want %v", got, tt.global)
			}
		})
	}
}
