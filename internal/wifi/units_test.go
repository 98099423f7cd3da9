package wifi

import (
	"testing"
)

func TestNormalizeMAC(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"colon separated", "12:34:56:78:90:ab", "1234567890ab"},
		{"dash separated", "12-34-56-78-90-ab", "1234567890ab"},
		{"upper case", "12:34:56:78:90:AB", "1234567890ab"},
		{"already normalized", "1234567890ab", "1234567890ab"},
		{"mixed separators", "12:34-56:78-90:Ab", "1234567890ab"},
		{"empty", "", ""},
		{"not a mac", "<redacted>", "<redacted>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeMAC(tt.in); got != tt.want {
				t.Errorf("NormalizeMAC(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsValidMAC(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"1234567890ab", true},
		{"ABCDEF012345", true},
		{"1234567890a", false},
		{"1234567890abc", false},
		{"12:34:56:78:90:ab", false},
		{"1234567890ag", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsValidMAC(tt.in); got != tt.want {
			t.Errorf("IsValidMAC(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRSSIToPercentage(t *testing.T) {
	tests := []struct {
		name string
		rssi int
		want int
	}{
		{"far below floor", -150, 0},
		{"at floor", -100, 0},
		{"one above floor", -99, 2},
		{"midpoint", -70, 50},
		{"typical 5GHz", -56, 73},
		{"at ceiling", -40, 100},
		{"above ceiling", -30, 100},
		{"zero", 0, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RSSIToPercentage(tt.rssi); got != tt.want {
				t.Errorf("RSSIToPercentage(%d) = %d, want %d", tt.rssi, got, tt.want)
			}
		})
	}
}

func TestPercentageToRSSI(t *testing.T) {
	tests := []struct {
		name string
		pct  int
		want int
	}{
		{"0 percent", 0, -100},
		{"50 percent", 50, -70},
		{"92 percent", 92, -45},
		{"100 percent", 100, -40},
		{"below zero", -10, -100},
		{"above 100", 150, -40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PercentageToRSSI(tt.pct); got != tt.want {
				t.Errorf("PercentageToRSSI(%d) = %d, want %d", tt.pct, got, tt.want)
			}
		})
	}
}

func TestRSSIPercentageRoundTrip(t *testing.T) {
	for pct := 0; pct <= 100; pct++ {
		rssi := PercentageToRSSI(pct)
		if rssi > 0 {
			t.Fatalf("PercentageToRSSI(%d) = %d, want <= 0", pct, rssi)
		}
		back := RSSIToPercentage(rssi)
		if diff := back - pct; diff < -1 || diff > 1 {
			t.Errorf("round trip %d%% -> %d dBm -> %d%%", pct, rssi, back)
		}
	}
}

func TestChannelToBand(t *testing.T) {
	tests := []struct {
		channel int
		want    float64
	}{
		{1, 2.4},
		{11, 2.4},
		{14, 2.4},
		{15, 5},
		{36, 5},
		{165, 5},
	}

	for _, tt := range tests {
		if got := ChannelToBand(tt.channel); got != tt.want {
			t.Errorf("ChannelToBand(%d) = %v, want %v", tt.channel, got, tt.want)
		}
	}
}

func TestFrequencyToBand(t *testing.T) {
	tests := []struct {
		freq int
		want float64
	}{
		{2412, 2.4},
		{2484, 2.4},
		{5180, 5},
		{5885, 5},
		{5955, 6},
		{7115, 6},
		{900, 0},
		{0, 0},
	}

	for _, tt := range tests {
		if got := FrequencyToBand(tt.freq); got != tt.want {
			t.Errorf("FrequencyToBand(%d) = %v, want %v", tt.freq, got, tt.want)
		}
	}
}

func TestFrequencyToChannel(t *testing.T) {
	tests := []struct {
		name    string
		freqMHz int
		want    int
	}{
		// 2.4 GHz band
		{"2.4GHz channel 1", 2412, 1},
		{"2.4GHz channel 6", 2437, 6},
		{"2.4GHz channel 13", 2472, 13},
		{"2.4GHz channel 14 (Japan)", 2484, 14},

		// 5 GHz band
		{"5GHz channel 36", 5180, 36},
		{"5GHz channel 149", 5745, 149},

		// 6 GHz band (WiFi 6E)
		{"6GHz channel 1", 5955, 1},
		{"6GHz channel 233", 7115, 233},

		{"between bands", 3000, 0},
		{"zero frequency", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FrequencyToChannel(tt.freqMHz); got != tt.want {
				t.Errorf("FrequencyToChannel(%d) = %d, want %d", tt.freqMHz, got, tt.want)
			}
		})
	}
}

func TestMHzToGHz(t *testing.T) {
	tests := []struct {
		mhz  int
		want float64
	}{
		{5180, 5.18},
		{2412, 2.41},
		{2437, 2.44},
		{5955, 5.96},
		{0, 0},
	}

	for _, tt := range tests {
		if got := MHzToGHz(tt.mhz); got != tt.want {
			t.Errorf("MHzToGHz(%d) = %v, want %v", tt.mhz, got, tt.want)
		}
	}
}

func TestRecordSameAP(t *testing.T) {
	a := Record{BSSID: "1234567890ab"}
	b := Record{BSSID: "12:34:56:78:90:AB"}
	if !a.SameAP(b) {
		t.Error("expected records with equivalent BSSIDs to match")
	}
	if a.SameAP(Record{}) {
		t.Error("expected empty BSSID never to match")
	}
	if a.SameAP(Record{BSSID: "1234567890ac"}) {
		t.Error("expected different BSSIDs not to match")
	}
}
