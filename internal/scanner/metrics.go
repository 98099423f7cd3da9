package scanner

import (
	"errors"
	"time"

	"github.com/HerbHall/wifisurvey/internal/wifi"
	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus scan metrics.
var (
	scansTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wifisurvey_scans_total",
			Help: "Total number of link reads by platform, source and result.",
		},
		[]string{"platform", "source", "result"},
	)
	scanDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wifisurvey_scan_duration_seconds",
			Help:    "Time spent reading the link state.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"platform"},
	)
	linkRSSI = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "wifisurvey_link_rssi_dbm",
		Help: "RSSI of the last successful link read.",
	})
	linkSignal = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "wifisurvey_link_signal_percent",
		Help: "Signal strength percentage of the last successful link read.",
	})
	linkChannel = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "wifisurvey_link_channel",
		Help: "Channel of the last successful link read.",
	})
	linkTxRate = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "wifisurvey_link_tx_rate_mbps",
		Help: "Transmit rate of the last successful link read.",
	})
)

func init() {
	prometheus.MustRegister(scansTotal)
	prometheus.MustRegister(scanDuration)
	prometheus.MustRegister(linkRSSI)
	prometheus.MustRegister(linkSignal)
	prometheus.MustRegister(linkChannel)
	prometheus.MustRegister(linkTxRate)
}

func observeScan(platform, source string, elapsed time.Duration, rec wifi.Record, err error) {
	scanDuration.WithLabelValues(platform).Observe(elapsed.Seconds())
	scansTotal.WithLabelValues(platform, source, scanResult(err)).Inc()
	if err != nil {
		return
	}
	linkRSSI.Set(float64(rec.RSSI))
	linkSignal.Set(float64(rec.SignalStrength))
	linkChannel.Set(float64(rec.Channel))
	linkTxRate.Set(rec.TxRate)
}

// scanResult maps an error to a low-cardinality label value.
func scanResult(err error) string {
	var cmdErr *CommandError
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, wifi.ErrNotLocalized):
		return "not_localized"
	case errors.Is(err, wifi.ErrInvalidBSSID):
		return "invalid_bssid"
	case errors.Is(err, ErrUnsupportedPlatform):
		return "unsupported"
	case errors.Is(err, ErrCommandNotFound):
		return "missing_tool"
	case errors.As(err, &cmdErr):
		return "command_failed"
	default:
		return "error"
	}
}
