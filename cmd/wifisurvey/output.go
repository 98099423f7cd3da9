package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/HerbHall/wifisurvey/internal/survey"
	"github.com/HerbHall/wifisurvey/internal/wifi"
	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

func checkFormat(f string) error {
	switch f {
	case formatText, formatJSON, formatYAML:
		return nil
	}
	return fmt.Errorf("unknown output format %q (want text, json or yaml)", f)
}

// render writes v as JSON or YAML, or calls text for the text format.
func render(w io.Writer, format string, v any, text func(io.Writer) error) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return text(w)
	}
}

func writeRecordText(w io.Writer, r wifi.Record) error {
	if !r.Connected() && r.SSID == "" {
		_, err := fmt.Fprintln(w, "not connected")
		return err
	}
	rows := [][2]string{
		{"SSID", r.SSID},
		{"BSSID", formatMAC(r.BSSID)},
		{"Signal", fmt.Sprintf("%d dBm (%d%%)", r.RSSI, r.SignalStrength)},
		{"Channel", formatChannel(r)},
		{"Tx rate", formatRate(r.TxRate)},
		{"PHY mode", r.PHYMode},
		{"Security", r.Security},
		{"Interface", r.Interface},
	}
	for _, row := range rows {
		if row[1] == "" {
			continue
		}
		if _, err := fmt.Fprintf(w, "%-10s %s\n", row[0]+":", row[1]); err != nil {
			return err
		}
	}
	return nil
}

func writeCandidatesText(w io.Writer, recs []wifi.Record) error {
	if _, err := fmt.Fprintf(w, "  %-32s %-8s %-7s %-8s %s\n", "SSID", "SIGNAL", "CHANNEL", "BAND", "SECURITY"); err != nil {
		return err
	}
	for _, r := range recs {
		mark := " "
		if r.Active {
			mark = "*"
		}
		_, err := fmt.Fprintf(w, "%s %-32s %-8s %-7d %-8s %s\n",
			mark, r.SSID, fmt.Sprintf("%d%%", r.SignalStrength), r.Channel, formatBand(r.Band), r.Security)
		if err != nil {
			return err
		}
	}
	return nil
}

func writeLines(w io.Writer, lines []string) error {
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}

func writeSampleText(w io.Writer, s survey.Sample) error {
	_, err := fmt.Fprintf(w, "sample %s at (%g, %g) on %s: %d dBm, %s latency, %s loss, %d attempt(s)\n",
		s.ID, s.X, s.Y, s.Floorplan, s.Link.RSSI,
		formatLatency(s.LatencyMS), formatLoss(s.PacketLoss), s.Attempts)
	return err
}

func writeSamplesText(w io.Writer, samples []survey.Sample, now time.Time) error {
	if len(samples) == 0 {
		_, err := fmt.Fprintln(w, "no samples")
		return err
	}
	for _, s := range samples {
		_, err := fmt.Fprintf(w, "%-12s (%g, %g)  %4d dBm  %-20s %s\n",
			s.Floorplan, s.X, s.Y, s.Link.RSSI, s.Link.SSID,
			humanize.RelTime(s.TakenAt, now, "ago", "from now"))
		if err != nil {
			return err
		}
	}
	return nil
}

// formatMAC renders a normalized BSSID with colons.
func formatMAC(bssid string) string {
	if len(bssid) != 12 {
		return bssid
	}
	out := make([]byte, 0, 17)
	for i := 0; i < 12; i += 2 {
		if i > 0 {
			out = append(out, ':')
		}
		out = append(out, bssid[i:i+2]...)
	}
	return string(out)
}

func formatChannel(r wifi.Record) string {
	if r.Channel == 0 {
		return ""
	}
	s := fmt.Sprintf("%d", r.Channel)
	if r.Band != 0 {
		s += " (" + formatBand(r.Band)
		if r.ChannelWidth > 0 {
			s += fmt.Sprintf(", %d MHz", r.ChannelWidth)
		}
		s += ")"
	}
	return s
}

func formatBand(band float64) string {
	if band == 0 {
		return "-"
	}
	return fmt.Sprintf("%g GHz", band)
}

// formatRate renders Mbps with an SI prefix, e.g. 866.7 -> "866.7 Mbit/s".
func formatRate(mbps float64) string {
	if mbps <= 0 {
		return ""
	}
	return humanize.SIWithDigits(mbps*1e6, 1, "bit/s")
}

func formatLatency(ms float64) string {
	if ms <= 0 {
		return "no"
	}
	return humanize.FtoaWithDigits(ms, 1) + " ms"
}

func formatLoss(pct float64) string {
	return humanize.FtoaWithDigits(pct, 1) + "%"
}
