// Package testutil builds link records and samples for tests outside the
// wifi and survey packages.
package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/HerbHall/wifisurvey/internal/survey"
	"github.com/HerbHall/wifisurvey/internal/wifi"
)

// NewRecord returns an associated 5 GHz link. Options run in order.
func NewRecord(opts ...func(*wifi.Record)) wifi.Record {
	r := wifi.Record{
		SSID:           "TestNetwork",
		BSSID:          "001122334455",
		RSSI:           -58,
		SignalStrength: wifi.RSSIToPercentage(-58),
		Channel:        44,
		Band:           wifi.Band5,
		ChannelWidth:   80,
		TxRate:         573,
		PHYMode:        "802.11ax",
		Security:       "WPA2 Personal",
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// WithSSID sets the SSID.
func WithSSID(ssid string) func(*wifi.Record) {
	return func(r *wifi.Record) { r.SSID = ssid }
}

// WithBSSID sets the normalized BSSID.
func WithBSSID(bssid string) func(*wifi.Record) {
	return func(r *wifi.Record) { r.BSSID = wifi.NormalizeMAC(bssid) }
}

// WithRSSI sets RSSI and the matching signal percentage.
func WithRSSI(rssi int) func(*wifi.Record) {
	return func(r *wifi.Record) {
		r.RSSI = rssi
		r.SignalStrength = wifi.RSSIToPercentage(rssi)
	}
}

// WithChannel sets the channel and its band.
func WithChannel(ch int) func(*wifi.Record) {
	return func(r *wifi.Record) {
		r.Channel = ch
		r.Band = wifi.ChannelToBand(ch)
	}
}

// NewSample returns a sample on floorplan taken now.
func NewSample(floorplan string, x, y float64, link wifi.Record) survey.Sample {
	return survey.Sample{
		ID:        uuid.NewString(),
		Floorplan: floorplan,
		X:         x,
		Y:         y,
		Link:      link,
		Attempts:  1,
		TakenAt:   time.Now().UTC(),
	}
}
