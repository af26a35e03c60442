package cmd

import (
	"strings"
	"testing"

	"github.com/xivtools/xivsplit/internal/netlog"
)

func TestRenderEvent(t *testing.T) {
	const ts = "2024-03-14T20:15:00.0000000-07:00"

	tests := []struct {
		name string
		raw  string
		all  bool
		want string
		ok   bool
	}{
		{
			name: "zone change",
			raw:  "01|" + ts + "|220|The Bowl of Embers|",
			want: "zone: The Bowl of Embers",
			ok:   true,
		},
		{
			name: "fight start",
			raw:  "33|" + ts + "|80034E6C|40000001|00|00|00|",
			want: "fight commenced",
			ok:   true,
		},
		{
			name: "victory",
			raw:  "33|" + ts + "|80034E6C|40000003|00|00|00|",
			want: "victory",
			ok:   true,
		},
		{
			name: "wipe",
			raw:  "33|" + ts + "|80034E6C|40000010|00|00|00|",
			want: "wipe",
			ok:   true,
		},
		{
			name: "death",
			raw:  "25|" + ts + "|10123456|Aria Stormsong|4000A123|Ifrit|",
			want: "Aria Stormsong was defeated",
			ok:   true,
		},
		{
			name: "seal",
			raw:  "00|" + ts + "|0839||The Bowl of Embers will be sealed off in 15 seconds!|",
			want: "sealing: The Bowl of Embers",
			ok:   true,
		},
		{
			name: "ability hidden by default",
			raw:  "21|" + ts + "|10123456|Aria Stormsong|1F|Fire III|4000A123|Ifrit|710003|5AC0|",
		},
		{
			name: "ability shown with all",
			raw:  "21|" + ts + "|10123456|Aria Stormsong|1F|Fire III|4000A123|Ifrit|710003|5AC0|",
			all:  true,
			want: "10123456",
			ok:   true,
		},
		{
			name: "telemetry hidden even with all",
			raw:  "39|" + ts + "|10123456|Aria Stormsong|45000|45000|-3.2|14.5|0.2|",
			all:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := renderEvent(netlog.Parse(tt.raw), tt.all)
			if ok != tt.ok {
				t.Fatalf("renderEvent() ok = %v, want %v", ok, tt.ok)
			}
			if tt.ok && !strings.Contains(got, tt.want) {
				t.Errorf("renderEvent() = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}
