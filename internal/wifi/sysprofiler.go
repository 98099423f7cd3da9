package wifi

import (
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"
)

// profilerDocument is the part of `system_profiler -json SPAirPortDataType`
// output we read. Network objects stay untyped because field types changed
// across macOS releases (channel was a number, then a string).
type profilerDocument struct {
	AirPort []struct {
		Interfaces []profilerInterface `json:"spairport_airport_interfaces"`
	} `json:"SPAirPortDataType"`
}

type profilerInterface struct {
	Name    string           `json:"_name"`
	Current map[string]any   `json:"spairport_current_network_information"`
	Others  []map[string]any `json:"spairport_airport_other_local_wireless_networks"`
}

// profilerField maps one system_profiler key onto the Record.
type profilerField struct {
	key   string
	apply func(rec *Record, value string)
}

// profilerFields is applied in order; channel is resolved afterwards because
// width inference needs the PHY mode.
var profilerFields = []profilerField{
	{"_name", func(r *Record, v string) { r.SSID = v }},
	{"spairport_network_bssid", func(r *Record, v string) { r.BSSID = NormalizeMAC(v) }},
	{"spairport_network_phymode", func(r *Record, v string) { r.PHYMode = v }},
	{"spairport_network_rate", func(r *Record, v string) { r.TxRate, _ = strconv.ParseFloat(v, 64) }},
	{"spairport_security_mode", func(r *Record, v string) { r.Security = securityLabel(v) }},
	{"spairport_signal_noise", func(r *Record, v string) {
		if n, err := leadingInt(v); err == nil {
			r.RSSI = n
		}
	}},
}

var profilerSecurityModes = map[string]string{
	"spairport_security_mode_none":                       "None",
	"spairport_security_mode_wep":                        "WEP",
	"spairport_security_mode_wpa_personal":               "WPA Personal",
	"spairport_security_mode_wpa_personal_mixed":         "WPA/WPA2 Personal",
	"spairport_security_mode_wpa2_personal":              "WPA2 Personal",
	"pairport_security_mode_wpa2_personal":               "WPA2 Personal", // misspelled by older releases
	"spairport_security_mode_wpa3_personal":              "WPA3 Personal",
	"spairport_security_mode_wpa3_transition":            "WPA2/WPA3 Personal",
	"spairport_security_mode_wpa_enterprise":             "WPA Enterprise",
	"spairport_security_mode_wpa_enterprise_mixed":       "WPA/WPA2 Enterprise",
	"spairport_security_mode_wpa2_enterprise":            "WPA2 Enterprise",
	"spairport_security_mode_wpa3_enterprise":            "WPA3 Enterprise",
	"spairport_security_mode_wpa3_enterprise_transition": "WPA2/WPA3 Enterprise",
	"spairport_security_mode_owe":                        "OWE",
	"spairport_security_mode_owe_transition":             "OWE Transition",
}

// ParseSystemProfiler returns the current and nearby networks seen by iface,
// strongest first. Networks without a signal reading and SSIDs in ignore are
// dropped. A nearby network with an unreadable channel is kept with its
// channel fields zeroed; only the associated network's channel is required.
// An empty iface selects the first associated interface, else the first one
// that lists nearby networks.
func ParseSystemProfiler(data []byte, iface string, ignore []string) ([]Record, error) {
	var doc profilerDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode system_profiler output: %w", err)
	}

	ifi, ok := findProfilerInterface(doc, iface)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInterfaceNotFound, iface)
	}

	type candidate struct {
		raw    map[string]any
		active bool
	}
	candidates := make([]candidate, 0, len(ifi.Others)+1)
	for _, n := range ifi.Others {
		candidates = append(candidates, candidate{raw: n})
	}
	if ifi.Current != nil {
		candidates = append(candidates, candidate{raw: ifi.Current, active: true})
	}

	records := make([]Record, 0, len(candidates))
	for _, c := range candidates {
		rec := mapProfilerNetwork(c.raw)
		if err := resolveProfilerChannel(&rec, c.raw); err != nil && c.active {
			return nil, err
		}
		if rec.RSSI == 0 {
			continue
		}
		if slices.Contains(ignore, rec.SSID) {
			continue
		}
		rec.Active = c.active
		rec.Interface = ifi.Name
		records = append(records, rec)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].SignalStrength > records[j].SignalStrength
	})
	return records, nil
}

// ActiveNetwork returns the record marked as the associated network.
func ActiveNetwork(records []Record) (Record, bool) {
	for _, r := range records {
		if r.Active {
			return r, true
		}
	}
	return Record{}, false
}

func findProfilerInterface(doc profilerDocument, name string) (profilerInterface, bool) {
	var scanning, named *profilerInterface
	for i := range doc.AirPort {
		for j := range doc.AirPort[i].Interfaces {
			ifi := &doc.AirPort[i].Interfaces[j]
			switch {
			case name != "":
				if ifi.Name == name {
					return *ifi, true
				}
			case ifi.Current != nil:
				return *ifi, true
			case scanning == nil && len(ifi.Others) > 0:
				scanning = ifi
			case named == nil && ifi.Name != "":
				named = ifi
			}
		}
	}
	if scanning != nil {
		return *scanning, true
	}
	if named != nil {
		return *named, true
	}
	return profilerInterface{}, false
}

// mapProfilerNetwork applies profilerFields to one network object. A missing
// signal field yields LostConnectionRSSI; an explicit "0 dBm" stays 0 so the
// caller can drop it.
func mapProfilerNetwork(raw map[string]any) Record {
	var rec Record
	rssiSeen := false
	for _, f := range profilerFields {
		v, ok := raw[f.key]
		if !ok {
			continue
		}
		if f.key == "spairport_signal_noise" {
			rssiSeen = true
		}
		f.apply(&rec, profilerString(v))
	}

	if !rssiSeen {
		rec.RSSI = LostConnectionRSSI
	}
	rec.SignalStrength = RSSIToPercentage(rec.RSSI)
	return rec
}

// resolveProfilerChannel fills channel, band and width. It needs the PHY mode
// already set on rec. On error rec is left untouched.
func resolveProfilerChannel(rec *Record, raw map[string]any) error {
	v, ok := raw["spairport_network_channel"]
	if !ok {
		return nil
	}
	spec, err := parseChannelInfo(profilerString(v))
	if err != nil {
		return fmt.Errorf("network %q: %w", rec.SSID, err)
	}
	rec.Channel, rec.Band, rec.ChannelWidth = spec.Resolve(rec.PHYMode)
	return nil
}

// parseChannelInfo accepts the three historical system_profiler grammars:
// "36", "149,+1" and "44 (5GHz, 80MHz)".
func parseChannelInfo(s string) (ChannelSpec, error) {
	spec, err := ParseChannelSpec(s)
	if err != nil {
		return ChannelSpec{}, err
	}
	if spec.Form == SlashForm {
		return ChannelSpec{}, fmt.Errorf("%w: %q", ErrUnknownChannelFormat, s)
	}
	return spec, nil
}

func securityLabel(mode string) string {
	if label, ok := profilerSecurityModes[mode]; ok {
		return label
	}
	return mode
}

// profilerString renders a decoded JSON value as the string the OS printed.
func profilerString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}
