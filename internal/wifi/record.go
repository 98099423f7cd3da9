// Package wifi normalizes WiFi link state read from platform tools (iw,
// wdutil, system_profiler, netsh) into a single Record.
package wifi

// LostConnectionRSSI is the RSSI reported when the radio has no signal
// reading, e.g. while roaming or disconnected.
const LostConnectionRSSI = -100

// Band values in GHz.
const (
	Band24 = 2.4
	Band5  = 5.0
	Band6  = 6.0
)

// Record is the normalized WiFi link state of one network.
type Record struct {
	SSID  string `json:"ssid" yaml:"ssid"`
	BSSID string `json:"bssid" yaml:"bssid"`

	// RSSI is in dBm and never positive.
	RSSI           int     `json:"rssi" yaml:"rssi"`
	SignalStrength int     `json:"signalStrength" yaml:"signalStrength"`
	Channel        int     `json:"channel" yaml:"channel"`
	Band           float64 `json:"band" yaml:"band"`

	// ChannelWidth is in MHz. netsh does not expose it, so it stays 0 on Windows.
	ChannelWidth int     `json:"channelWidth" yaml:"channelWidth"`
	TxRate       float64 `json:"txRate" yaml:"txRate"`
	PHYMode      string  `json:"phyMode" yaml:"phyMode"`
	Security     string  `json:"security" yaml:"security"`

	// Frequency is the center frequency in GHz, when the platform reports it.
	Frequency float64 `json:"frequency,omitempty" yaml:"frequency,omitempty"`
	Active    bool    `json:"active,omitempty" yaml:"active,omitempty"`
	Interface string  `json:"interface,omitempty" yaml:"interface,omitempty"`
}

// Connected reports whether the record carries a real signal reading.
func (r Record) Connected() bool {
	return r.RSSI < 0 && r.RSSI > LostConnectionRSSI
}

// SameAP reports whether both records were read from the same access point
// radio. Records without a BSSID never match.
func (r Record) SameAP(other Record) bool {
	if r.BSSID == "" || other.BSSID == "" {
		return false
	}
	return NormalizeMAC(r.BSSID) == NormalizeMAC(other.BSSID)
}
