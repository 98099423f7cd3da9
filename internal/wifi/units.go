package wifi

import (
	"math"
	"strings"
)

// RSSI range of the canonical signal curve. Readings at or below rssiFloor
// map to 0%, readings at or above rssiCeiling map to 100%.
const (
	rssiFloor   = -100
	rssiCeiling = -40
)

// NormalizeMAC strips ':' and '-' separators and lower-cases the rest.
// It does not validate; use IsValidMAC on the result.
func NormalizeMAC(s string) string {
	return strings.ToLower(strings.NewReplacer(":", "", "-", "").Replace(s))
}

// IsValidMAC reports whether s is exactly 12 hex characters.
func IsValidMAC(s string) bool {
	if len(s) != 12 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// RSSIToPercentage maps dBm onto 0-100 linearly between -100 and -40 dBm,
// clamping outside that range.
func RSSIToPercentage(rssi int) int {
	if rssi <= rssiFloor {
		return 0
	}
	if rssi >= rssiCeiling {
		return 100
	}
	span := float64(rssiCeiling - rssiFloor)
	return int(math.Round(float64(rssi-rssiFloor) / span * 100))
}

// PercentageToRSSI is the inverse of RSSIToPercentage.
func PercentageToRSSI(pct int) int {
	pct = max(0, min(pct, 100))
	span := float64(rssiCeiling - rssiFloor)
	return int(math.Round(rssiFloor + float64(pct)/100*span))
}

// ChannelToBand classifies a channel number: anything above 14 is 5 GHz.
// 6 GHz channels overlap the 5 GHz numbering and need a frequency or an
// explicit band from the platform to be told apart.
func ChannelToBand(channel int) float64 {
	if channel > 14 {
		return Band5
	}
	return Band24
}

// FrequencyToBand classifies a center frequency in MHz. Returns 0 for
// frequencies outside the WiFi bands.
func FrequencyToBand(freqMHz int) float64 {
	switch {
	case freqMHz >= 2400 && freqMHz <= 2500:
		return Band24
	case freqMHz >= 4900 && freqMHz < 5925:
		return Band5
	case freqMHz >= 5925 && freqMHz <= 7125:
		return Band6
	}
	return 0
}

// FrequencyToChannel converts a WiFi center frequency in MHz to a channel number.
// Returns 0 for unrecognised frequencies.
func FrequencyToChannel(freqMHz int) int {
	switch {
	// 2.4 GHz band: channels 1-14
	case freqMHz >= 2412 && freqMHz <= 2484:
		if freqMHz == 2484 {
			return 14 // Japan channel 14
		}
		return (freqMHz-2412)/5 + 1

	// 5 GHz band: channels 36-177
	case freqMHz >= 5180 && freqMHz <= 5885:
		return (freqMHz-5180)/5 + 36

	// 6 GHz band (WiFi 6E): channels 1-233
	case freqMHz >= 5955 && freqMHz <= 7115:
		return (freqMHz-5955)/5 + 1
	}
	return 0
}

// MHzToGHz converts MHz to GHz rounded to two decimals (5180 -> 5.18).
func MHzToGHz(mhz int) float64 {
	return math.Round(float64(mhz)/10) / 100
}
