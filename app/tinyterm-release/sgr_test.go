package tinyterm

import "testing"

func TestSplit_BoldBrightensForeground(t *testing.T) {
	var a sgrAttrs
	a.reset()
	a.setFG(ColorRed)
	a.split("1")
	if a.fgcol != Color(ColorRed+8).RGBA() {
		t.Fatalf("fgcol = %v, want bright red", a.fgcol)
	}
}

func TestSplit_ShortExtendedColor(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"38", 1},
		{"48;5", 1},
		{"38;5;196", 3},
		{"31", 1},
	}
	for _, tt := range tests {
		var a sgrAttrs
		a.reset()
		got := a.split(tt.in)
		if len(got) != tt.want {
			t.Errorf("split(%q) = %q, want %d params", tt.in, got, tt.want)
		}
		if tt.want == 1 && tt.in != "31" && got[0] != "-1" {
			t.Errorf("split(%q) = %q, want unhandled attribute", tt.in, got)
		}
	}
}
