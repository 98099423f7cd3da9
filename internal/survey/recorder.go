package survey

import (
	"context"
	"fmt"
	"time"

	"github.com/HerbHall/wifisurvey/internal/wifi"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LinkScanner reads the current link state.
type LinkScanner interface {
	Scan(ctx context.Context) (wifi.Record, error)
}

// SampleWriter persists samples.
type SampleWriter interface {
	Insert(ctx context.Context, s Sample) error
}

// Recorder takes samples: it reads the link, probes, and reads the link
// again, retrying when the client roamed in between.
type Recorder struct {
	scanner     LinkScanner
	prober      Prober
	store       SampleWriter
	maxAttempts int
	logger      *zap.Logger

	now func() time.Time
}

// NewRecorder creates a Recorder. prober may be nil to skip probing.
func NewRecorder(scanner LinkScanner, prober Prober, store SampleWriter, maxAttempts int, logger *zap.Logger) *Recorder {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Recorder{
		scanner:     scanner,
		prober:      prober,
		store:       store,
		maxAttempts: maxAttempts,
		logger:      logger,
		now:         time.Now,
	}
}

// Record measures the link at (x, y) on floorplan and stores the sample.
// It returns ErrInconsistentLink when every attempt saw the link change.
func (r *Recorder) Record(ctx context.Context, floorplan string, x, y float64) (Sample, error) {
	sample := Sample{Floorplan: floorplan, X: x, Y: y}
	if err := sample.Validate(); err != nil {
		return Sample{}, err
	}

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		before, err := r.scanner.Scan(ctx)
		if err != nil {
			return Sample{}, fmt.Errorf("read link: %w", err)
		}

		probe := r.probe(ctx, before)

		after, err := r.scanner.Scan(ctx)
		if err != nil {
			return Sample{}, fmt.Errorf("read link: %w", err)
		}

		if !sameLink(before, after) {
			r.logger.Info("link changed during sample, retrying",
				zap.Int("attempt", attempt),
				zap.String("before", before.BSSID),
				zap.String("after", after.BSSID),
			)
			continue
		}

		sample.ID = uuid.NewString()
		sample.Link = mergeReadings(before, after)
		sample.LatencyMS = float64(probe.Latency) / float64(time.Millisecond)
		sample.PacketLoss = probe.PacketLoss
		sample.Attempts = attempt
		sample.TakenAt = r.now().UTC()

		if err := r.store.Insert(ctx, sample); err != nil {
			return Sample{}, err
		}
		r.logger.Info("sample recorded",
			zap.String("id", sample.ID),
			zap.String("floorplan", floorplan),
			zap.Float64("x", x),
			zap.Float64("y", y),
			zap.Int("rssi", sample.Link.RSSI),
		)
		return sample, nil
	}

	return Sample{}, fmt.Errorf("%w after %d attempts", ErrInconsistentLink, r.maxAttempts)
}

// probe never fails the sample; an unreachable target counts as full loss.
func (r *Recorder) probe(ctx context.Context, link wifi.Record) ProbeResult {
	if !link.Connected() {
		return ProbeResult{PacketLoss: 100}
	}
	if r.prober == nil {
		return ProbeResult{}
	}
	res, err := r.prober.Probe(ctx)
	if err != nil {
		r.logger.Warn("probe failed", zap.Error(err))
		return ProbeResult{PacketLoss: 100}
	}
	return res
}

// sameLink reports whether two readings describe the same association.
// Without a BSSID (system_profiler on recent macOS) SSID and channel decide.
func sameLink(a, b wifi.Record) bool {
	if !a.Connected() && !b.Connected() {
		return true
	}
	if a.BSSID != "" || b.BSSID != "" {
		return a.SameAP(b)
	}
	return a.SSID == b.SSID && a.Channel == b.Channel
}

// mergeReadings keeps the later reading with the RSSI averaged over both.
func mergeReadings(before, after wifi.Record) wifi.Record {
	if !before.Connected() || !after.Connected() {
		return after
	}
	merged := after
	merged.RSSI = (before.RSSI + after.RSSI) / 2
	merged.SignalStrength = wifi.RSSIToPercentage(merged.RSSI)
	return merged
}
