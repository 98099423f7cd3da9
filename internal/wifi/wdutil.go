package wifi

import (
	"fmt"
	"strconv"
	"strings"
)

// wdutil prints this instead of SSID/BSSID when the caller lacks location
// permission.
const redacted = "<redacted>"

// ParseWdutilOutput builds a Record from `wdutil info` output. Only the
// section between the WIFI and BLUETOOTH headers is read.
func ParseWdutilOutput(out string) (Record, error) {
	section, ok := wdutilWifiSection(out)
	if !ok {
		return Record{}, ErrNoWifiSection
	}

	var rec Record
	var channel string
	rssiSeen := false

	eachLine(section, func(line string) {
		label, value, found := strings.Cut(line, ":")
		if !found {
			return
		}
		value = strings.TrimSpace(value)
		switch strings.TrimSpace(label) {
		case "SSID":
			rec.SSID = unredact(value)
		case "BSSID":
			rec.BSSID = NormalizeMAC(unredact(value))
		case "RSSI":
			if n, err := leadingInt(value); err == nil {
				rec.RSSI = n
				rssiSeen = true
			}
		case "Channel":
			channel = value
		case "Tx Rate":
			if fields := strings.Fields(value); len(fields) > 0 {
				rec.TxRate, _ = strconv.ParseFloat(fields[0], 64)
			}
		case "PHY Mode":
			rec.PHYMode = value
		case "Security":
			rec.Security = value
		}
	})

	if !rssiSeen || rec.RSSI == 0 {
		rec.RSSI = LostConnectionRSSI
	}
	rec.SignalStrength = RSSIToPercentage(rec.RSSI)

	if channel != "" && channel != "None" {
		spec, err := ParseChannelSpec(channel)
		if err != nil {
			return Record{}, fmt.Errorf("wdutil channel: %w", err)
		}
		rec.Channel, rec.Band, rec.ChannelWidth = spec.Resolve(rec.PHYMode)
	}
	return rec, nil
}

// wdutilWifiSection returns the lines between the WIFI and BLUETOOTH headers.
func wdutilWifiSection(out string) (string, bool) {
	var b strings.Builder
	inside, found := false, false
	for _, line := range strings.Split(out, "\n") {
		switch strings.TrimSpace(line) {
		case "WIFI":
			inside, found = true, true
			continue
		case "BLUETOOTH":
			inside = false
			continue
		}
		if inside {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	return b.String(), found
}

func unredact(s string) string {
	if s == redacted {
		return ""
	}
	return s
}

// leadingInt parses the signed integer before the first space: "-60 dBm" -> -60.
func leadingInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, ' '); i >= 0 {
		s = s[:i]
	}
	return strconv.Atoi(s)
}
