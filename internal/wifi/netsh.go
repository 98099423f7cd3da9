package wifi

import (
	"strconv"
	"strings"

	"github.com/HerbHall/wifisurvey/internal/locale"
)

// netshDecoder stores one netsh value into the record.
type netshDecoder func(rec *Record, value string)

// netshFields is the coercion table for `netsh wlan show interfaces`. Keys
// the table does not list (profile, profileName, ...) are ignored.
var netshFields = map[string]netshDecoder{
	locale.KeySSID:  func(r *Record, v string) { r.SSID = v },
	locale.KeyBSSID: func(r *Record, v string) { r.BSSID = NormalizeMAC(v) },
	locale.KeySignalStrength: func(r *Record, v string) {
		r.SignalStrength = atoiOrZero(strings.TrimSpace(strings.TrimSuffix(v, "%")))
	},
	locale.KeyChannel: func(r *Record, v string) { r.Channel = atoiOrZero(v) },
	locale.KeyTxRate: func(r *Record, v string) {
		r.TxRate, _ = strconv.ParseFloat(strings.ReplaceAll(v, ",", "."), 64)
	},
	locale.KeyPHYMode:  func(r *Record, v string) { r.PHYMode = v },
	locale.KeySecurity: func(r *Record, v string) { r.Security = v },
}

// ParseNetshOutput builds a Record from `netsh wlan show interfaces` in any
// language loc has a dictionary for. Labels loc does not know are skipped.
//
// It fails with ErrNotLocalized when signal, channel and transmit rate are
// all unread, and with an *InvalidBSSIDError when the BSSID is not a MAC.
// netsh reports neither dBm nor channel width: RSSI is derived from the
// signal percentage and ChannelWidth stays 0.
func ParseNetshOutput(out string, loc *locale.Localizer) (Record, error) {
	var rec Record
	eachNetshField(out, loc, func(key, value string) {
		if decode, ok := netshFields[key]; ok {
			decode(&rec, value)
		}
	})

	if rec.SignalStrength == 0 && rec.Channel == 0 && rec.TxRate == 0 {
		return Record{}, ErrNotLocalized
	}
	if !IsValidMAC(rec.BSSID) {
		return Record{}, &InvalidBSSIDError{Source: "netsh", BSSID: rec.BSSID}
	}

	rec.SignalStrength = max(0, min(rec.SignalStrength, 100))
	rec.Band = ChannelToBand(rec.Channel)
	rec.RSSI = PercentageToRSSI(rec.SignalStrength)
	rec.ChannelWidth = 0
	return rec, nil
}

// ParseProfiles lists the profile names in `netsh wlan show profiles`.
func ParseProfiles(out string, loc *locale.Localizer) ([]string, error) {
	var names []string
	eachNetshField(out, loc, func(key, value string) {
		if key == locale.KeyAllUserProfile && value != "" {
			names = append(names, value)
		}
	})
	if len(names) == 0 {
		return nil, ErrNoProfiles
	}
	return names, nil
}

// FindProfileFromSSID reads `netsh wlan show profile name=<p>` output and
// returns the profile name when the profile is for ssid, or "" when it is
// for another network.
func FindProfileFromSSID(out, ssid string, loc *locale.Localizer) (string, error) {
	var name string
	var ssids []string
	eachNetshField(out, loc, func(key, value string) {
		switch key {
		case locale.KeyProfileName:
			if name == "" {
				name = value
			}
		case locale.KeySSIDName:
			ssids = append(ssids, strings.Trim(value, `"`))
		}
	})

	if name == "" {
		return "", ErrNoProfileName
	}
	if len(ssids) == 0 {
		return "", ErrNoSSIDName
	}
	for _, s := range ssids {
		if s == ssid {
			return name, nil
		}
	}
	return "", nil
}

// eachNetshField splits every "label : value" line at its first colon and
// calls fn with the canonical key of the label. Lines without a colon or
// with an unknown label are skipped.
func eachNetshField(out string, loc *locale.Localizer, fn func(key, value string)) {
	eachLine(out, func(line string) {
		label, value, found := strings.Cut(line, ":")
		if !found {
			return
		}
		key, ok := loc.Lookup(label)
		if !ok {
			return
		}
		fn(key, strings.TrimSpace(value))
	})
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
