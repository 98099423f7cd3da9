// Package scanner reads the current WiFi link state by running the platform
// tool for the host OS and handing its output to the matching parser.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/HerbHall/wifisurvey/internal/locale"
	"github.com/HerbHall/wifisurvey/internal/wifi"
	"go.uber.org/zap"
)

var (
	ErrUnsupportedPlatform = errors.New("wifi scanning is not supported on this platform")
	ErrNoInterface         = errors.New("no wifi interface found")
	ErrNotAssociated       = errors.New("wifi interface is not associated with a network")
	ErrProfileNotFound     = errors.New("no saved profile for SSID")
)

// Sources a record can be read from.
const (
	SourceIw             = "iw"
	SourceNL80211        = "nl80211"
	SourceWdutil         = "wdutil"
	SourceSystemProfiler = "system_profiler"
	SourceNetsh          = "netsh"
)

// LinkReader reads link state without an external tool.
type LinkReader interface {
	ReadLink(ctx context.Context, iface string) (wifi.Record, error)
}

// Config selects the interface and platform behavior.
type Config struct {
	// GOOS overrides runtime.GOOS; tests use it to exercise every platform.
	GOOS         string
	Interface    string
	IgnoreSSIDs  []string
	PreferWdutil bool
}

// Option customizes a Scanner.
type Option func(*Scanner)

// WithNativeReader replaces the nl80211 fallback used on Linux when iw is
// missing. Pass nil to disable the fallback.
func WithNativeReader(r LinkReader) Option {
	return func(s *Scanner) { s.native = r }
}

// Scanner dispatches to the per-platform readers. Safe for concurrent use.
type Scanner struct {
	cfg    Config
	runner Runner
	loc    *locale.Localizer
	native LinkReader
	logger *zap.Logger
}

// New creates a Scanner. loc is only consulted on Windows.
func New(cfg Config, runner Runner, loc *locale.Localizer, logger *zap.Logger, opts ...Option) *Scanner {
	if cfg.GOOS == "" {
		cfg.GOOS = runtime.GOOS
	}
	s := &Scanner{
		cfg:    cfg,
		runner: runner,
		loc:    loc,
		logger: logger,
	}
	s.native = newNativeReader(logger)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Platform returns the OS the scanner dispatches for.
func (s *Scanner) Platform() string {
	return s.cfg.GOOS
}

// Scan reads the link state of the associated network.
func (s *Scanner) Scan(ctx context.Context) (wifi.Record, error) {
	start := time.Now()

	var (
		rec    wifi.Record
		source string
		err    error
	)
	switch s.cfg.GOOS {
	case "linux":
		rec, source, err = s.scanLinux(ctx)
	case "darwin":
		rec, source, err = s.scanDarwin(ctx)
	case "windows":
		rec, err = s.scanWindows(ctx)
		source = SourceNetsh
	default:
		err = fmt.Errorf("%w: %s", ErrUnsupportedPlatform, s.cfg.GOOS)
	}

	observeScan(s.cfg.GOOS, source, time.Since(start), rec, err)
	if err != nil {
		s.logger.Debug("wifi scan failed",
			zap.String("platform", s.cfg.GOOS),
			zap.String("source", source),
			zap.Error(err),
		)
		return wifi.Record{}, err
	}

	s.logger.Debug("wifi link read",
		zap.String("platform", s.cfg.GOOS),
		zap.String("source", source),
		zap.String("ssid", rec.SSID),
		zap.String("bssid", rec.BSSID),
		zap.Int("rssi", rec.RSSI),
		zap.Int("channel", rec.Channel),
	)
	return rec, nil
}

// scanLinux runs `iw dev <if> link` and `iw dev <if> info`. Without iw it
// falls back to the nl80211 reader.
func (s *Scanner) scanLinux(ctx context.Context) (wifi.Record, string, error) {
	iface, err := s.linuxInterface(ctx)
	if err != nil {
		return s.linuxFallback(ctx, err)
	}

	link, err := s.runner.Run(ctx, "iw", "dev", iface, "link")
	if err != nil {
		return s.linuxFallback(ctx, err)
	}

	info, err := s.runner.Run(ctx, "iw", "dev", iface, "info")
	if err != nil {
		// Channel and width come from info; the link data is still usable.
		s.logger.Warn("iw info failed, channel data unavailable",
			zap.String("interface", iface),
			zap.Error(err),
		)
		info = nil
	}

	rec := wifi.ParseIwOutput(string(link), string(info))
	rec.Interface = iface
	return rec, SourceIw, nil
}

func (s *Scanner) linuxFallback(ctx context.Context, cause error) (wifi.Record, string, error) {
	if !errors.Is(cause, ErrCommandNotFound) || s.native == nil {
		return wifi.Record{}, SourceIw, cause
	}
	s.logger.Debug("iw not installed, reading link via nl80211")
	rec, err := s.native.ReadLink(ctx, s.cfg.Interface)
	if err != nil {
		return wifi.Record{}, SourceNL80211, fmt.Errorf("nl80211: %w", err)
	}
	return rec, SourceNL80211, nil
}

func (s *Scanner) linuxInterface(ctx context.Context) (string, error) {
	if s.cfg.Interface != "" {
		return s.cfg.Interface, nil
	}
	out, err := s.runner.Run(ctx, "iw", "dev")
	if err != nil {
		return "", err
	}
	names := wifi.ParseIwDev(string(out))
	if len(names) == 0 {
		return "", ErrNoInterface
	}
	return names[0], nil
}

// scanDarwin prefers `wdutil info`, which needs root and may redact the
// BSSID, then falls back to system_profiler.
func (s *Scanner) scanDarwin(ctx context.Context) (wifi.Record, string, error) {
	if s.cfg.PreferWdutil {
		rec, err := s.readWdutil(ctx)
		if err == nil {
			return rec, SourceWdutil, nil
		}
		s.logger.Debug("wdutil unusable, falling back to system_profiler", zap.Error(err))
	}

	recs, err := s.Candidates(ctx)
	if err != nil {
		return wifi.Record{}, SourceSystemProfiler, err
	}
	active, ok := wifi.ActiveNetwork(recs)
	if !ok {
		return wifi.Record{}, SourceSystemProfiler, ErrNotAssociated
	}
	return active, SourceSystemProfiler, nil
}

func (s *Scanner) readWdutil(ctx context.Context) (wifi.Record, error) {
	out, err := s.runner.Run(ctx, "wdutil", "info")
	if err != nil {
		return wifi.Record{}, err
	}
	rec, err := wifi.ParseWdutilOutput(string(out))
	if err != nil {
		return wifi.Record{}, err
	}
	if rec.BSSID == "" {
		return wifi.Record{}, errors.New("wdutil output has no BSSID")
	}
	rec.Interface = s.cfg.Interface
	return rec, nil
}

// Candidates lists the current and nearby networks, strongest first.
// Only macOS exposes them.
func (s *Scanner) Candidates(ctx context.Context) ([]wifi.Record, error) {
	if s.cfg.GOOS != "darwin" {
		return nil, fmt.Errorf("%w: candidates need system_profiler", ErrUnsupportedPlatform)
	}
	out, err := s.runner.Run(ctx, "system_profiler", "-json", "SPAirPortDataType")
	if err != nil {
		return nil, err
	}
	return wifi.ParseSystemProfiler(out, s.cfg.Interface, s.cfg.IgnoreSSIDs)
}

func (s *Scanner) scanWindows(ctx context.Context) (wifi.Record, error) {
	out, err := s.runner.Run(ctx, "netsh", "wlan", "show", "interfaces")
	if err != nil {
		return wifi.Record{}, err
	}
	rec, err := wifi.ParseNetshOutput(string(out), s.loc)
	if err != nil {
		return wifi.Record{}, fmt.Errorf("parse netsh output: %w", err)
	}
	return rec, nil
}

// Profiles lists the saved WLAN profiles. Windows only.
func (s *Scanner) Profiles(ctx context.Context) ([]string, error) {
	if s.cfg.GOOS != "windows" {
		return nil, fmt.Errorf("%w: profiles need netsh", ErrUnsupportedPlatform)
	}
	out, err := s.runner.Run(ctx, "netsh", "wlan", "show", "profiles")
	if err != nil {
		return nil, err
	}
	return wifi.ParseProfiles(string(out), s.loc)
}

// ProfileForSSID returns the saved profile that connects to ssid. Profiles
// whose details cannot be parsed are skipped.
func (s *Scanner) ProfileForSSID(ctx context.Context, ssid string) (string, error) {
	profiles, err := s.Profiles(ctx)
	if err != nil {
		return "", err
	}
	for _, p := range profiles {
		out, err := s.runner.Run(ctx, "netsh", "wlan", "show", "profile", "name="+p)
		if err != nil {
			return "", err
		}
		name, err := wifi.FindProfileFromSSID(string(out), ssid, s.loc)
		if err != nil {
			s.logger.Warn("skipping unreadable profile", zap.String("profile", p), zap.Error(err))
			continue
		}
		if name != "" {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrProfileNotFound, ssid)
}
