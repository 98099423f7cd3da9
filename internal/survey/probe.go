package survey

import (
	"context"
	"fmt"
	"runtime"
	"time"

	probing "github.com/prometheus-community/pro-bing"
	"go.uber.org/zap"
)

// ProbeResult is the latency and loss toward a probe target.
type ProbeResult struct {
	Latency    time.Duration
	PacketLoss float64
}

// Prober measures reachability through the current link.
type Prober interface {
	Probe(ctx context.Context) (ProbeResult, error)
}

// PingProber sends ICMP echo requests with pro-bing.
type PingProber struct {
	target  string
	count   int
	timeout time.Duration
	logger  *zap.Logger
}

// NewPingProber creates a prober for target.
func NewPingProber(target string, count int, timeout time.Duration, logger *zap.Logger) *PingProber {
	return &PingProber{
		target:  target,
		count:   count,
		timeout: timeout,
		logger:  logger,
	}
}

// Probe pings the target and returns average RTT and loss.
func (p *PingProber) Probe(ctx context.Context) (ProbeResult, error) {
	pinger, err := probing.NewPinger(p.target)
	if err != nil {
		return ProbeResult{}, fmt.Errorf("create pinger for %s: %w", p.target, err)
	}
	pinger.Count = p.count
	pinger.Timeout = p.timeout
	// Windows has no unprivileged ICMP sockets.
	pinger.SetPrivileged(runtime.GOOS == "windows")

	done := make(chan error, 1)
	go func() { done <- pinger.Run() }()

	select {
	case err = <-done:
	case <-ctx.Done():
		pinger.Stop()
		<-done
		return ProbeResult{}, ctx.Err()
	}
	if err != nil {
		return ProbeResult{}, fmt.Errorf("ping %s: %w", p.target, err)
	}

	stats := pinger.Statistics()
	p.logger.Debug("probe finished",
		zap.String("target", p.target),
		zap.Int("sent", stats.PacketsSent),
		zap.Int("received", stats.PacketsRecv),
		zap.Duration("avg_rtt", stats.AvgRtt),
	)
	return ProbeResult{Latency: stats.AvgRtt, PacketLoss: stats.PacketLoss}, nil
}
