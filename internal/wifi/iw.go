package wifi

import (
	"bufio"
	"regexp"
	"strconv"
	"strings"
)

var (
	iwSignalRe  = regexp.MustCompile(`^signal:\s*(-?\d+).*dBm`)
	iwFreqRe    = regexp.MustCompile(`^freq:\s*(\d+)`)
	iwWidthRe   = regexp.MustCompile(`width:\s*(\d+)\s*MHz`)
	iwChannelRe = regexp.MustCompile(`^channel\s+(\d+)\s+\((\d+)\s+MHz\),\s+width:\s+(\d+)\s+MHz`)
)

// ParseIwOutput builds a Record from `iw dev <if> link` and `iw dev <if> info`
// output. Fields are matched by label prefix because values carry trailing
// text. A signal line without a value (seen while roaming) yields
// LostConnectionRSSI rather than 0.
func ParseIwOutput(link, info string) Record {
	var rec Record
	var freqMHz int
	signalSeen := false

	eachLine(link, func(line string) {
		switch {
		case strings.HasPrefix(line, "SSID:"):
			rec.SSID = strings.TrimSpace(strings.TrimPrefix(line, "SSID:"))
		case strings.HasPrefix(line, "Connected to"):
			if fields := strings.Fields(line); len(fields) >= 3 {
				rec.BSSID = NormalizeMAC(fields[2])
			}
		case strings.HasPrefix(line, "signal:"):
			if m := iwSignalRe.FindStringSubmatch(line); m != nil {
				rec.RSSI, _ = strconv.Atoi(m[1])
				signalSeen = true
			}
		case strings.HasPrefix(line, "freq:"):
			if m := iwFreqRe.FindStringSubmatch(line); m != nil {
				freqMHz, _ = strconv.Atoi(m[1])
			}
		case strings.HasPrefix(line, "tx bitrate:"):
			fields := strings.Fields(strings.TrimPrefix(line, "tx bitrate:"))
			if len(fields) > 0 {
				rec.TxRate, _ = strconv.ParseFloat(fields[0], 64)
			}
			if phy := phyFromBitrate(fields); phy != "" {
				rec.PHYMode = phy
			}
		case strings.Contains(line, "width:"):
			if m := iwWidthRe.FindStringSubmatch(line); m != nil {
				rec.ChannelWidth, _ = strconv.Atoi(m[1])
			}
		}
	})

	eachLine(info, func(line string) {
		if !strings.HasPrefix(line, "channel") {
			return
		}
		m := iwChannelRe.FindStringSubmatch(line)
		if m == nil {
			return
		}
		rec.Channel, _ = strconv.Atoi(m[1])
		if freqMHz == 0 {
			freqMHz, _ = strconv.Atoi(m[2])
		}
		rec.ChannelWidth, _ = strconv.Atoi(m[3])
	})

	if !signalSeen {
		rec.RSSI = LostConnectionRSSI
	}
	rec.SignalStrength = RSSIToPercentage(rec.RSSI)

	if freqMHz > 0 {
		rec.Frequency = MHzToGHz(freqMHz)
		rec.Band = FrequencyToBand(freqMHz)
		if rec.Channel == 0 {
			rec.Channel = FrequencyToChannel(freqMHz)
		}
	}
	if rec.Band == 0 && rec.Channel > 0 {
		rec.Band = ChannelToBand(rec.Channel)
	}
	return rec
}

// ParseIwDev returns the interface names listed by `iw dev`.
func ParseIwDev(out string) []string {
	var names []string
	eachLine(out, func(line string) {
		if name, ok := strings.CutPrefix(line, "Interface "); ok {
			names = append(names, strings.TrimSpace(name))
		}
	})
	return names
}

// phyFromBitrate picks the PHY standard from the MCS token iw prints after
// the rate, e.g. "866.7 MBit/s VHT-MCS 9 80MHz short GI VHT-NSS 2".
func phyFromBitrate(fields []string) string {
	for _, f := range fields {
		switch {
		case strings.HasPrefix(f, "EHT-"):
			return "802.11be"
		case strings.HasPrefix(f, "HE-"):
			return "802.11ax"
		case strings.HasPrefix(f, "VHT-"):
			return "802.11ac"
		case f == "MCS":
			return "802.11n"
		}
	}
	return ""
}

// eachLine calls fn with every trimmed, non-empty line of s.
func eachLine(s string, fn func(line string)) {
	sc := bufio.NewScanner(strings.NewReader(s))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fn(line)
	}
}
