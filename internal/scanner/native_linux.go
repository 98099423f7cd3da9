//go:build linux

package scanner

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/HerbHall/wifisurvey/internal/wifi"
	mdwifi "github.com/mdlayher/wifi"
	"go.uber.org/zap"
)

type nl80211Reader struct {
	logger *zap.Logger
}

func newNativeReader(logger *zap.Logger) LinkReader {
	return &nl80211Reader{logger: logger}
}

// ReadLink reads the associated BSS and station info over nl80211. An empty
// iface selects the first station-mode interface.
func (r *nl80211Reader) ReadLink(_ context.Context, iface string) (wifi.Record, error) {
	c, err := mdwifi.New()
	if err != nil {
		return wifi.Record{}, fmt.Errorf("open wifi client: %w", err)
	}
	defer c.Close()

	ifaces, err := c.Interfaces()
	if err != nil {
		if isPermissionError(err) {
			r.logger.Warn("nl80211 interface enumeration requires elevated privileges")
		}
		return wifi.Record{}, fmt.Errorf("enumerate wifi interfaces: %w", err)
	}

	var ifi *mdwifi.Interface
	for _, candidate := range ifaces {
		if candidate.Type != mdwifi.InterfaceTypeStation {
			continue
		}
		if iface == "" || candidate.Name == iface {
			ifi = candidate
			break
		}
	}
	if ifi == nil {
		return wifi.Record{}, ErrNoInterface
	}

	bss, err := c.BSS(ifi)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// Not associated.
			return wifi.Record{
				RSSI:      wifi.LostConnectionRSSI,
				Interface: ifi.Name,
			}, nil
		}
		return wifi.Record{}, fmt.Errorf("read bss: %w", err)
	}

	rec := wifi.Record{
		SSID:      bss.SSID,
		Channel:   wifi.FrequencyToChannel(bss.Frequency),
		Band:      wifi.FrequencyToBand(bss.Frequency),
		Frequency: wifi.MHzToGHz(bss.Frequency),
		Security:  rsnToSecurity(bss.RSN),
		Active:    true,
		Interface: ifi.Name,
		RSSI:      int(bss.Signal / 100), // mBm to dBm
	}
	if bss.BSSID != nil {
		rec.BSSID = wifi.NormalizeMAC(bss.BSSID.String())
	}

	stations, err := c.StationInfo(ifi)
	if err != nil {
		r.logger.Debug("nl80211 station info unavailable", zap.Error(err))
	} else if len(stations) > 0 {
		rec.RSSI = stations[0].Signal
		rec.TxRate = float64(stations[0].TransmitBitrate) / 1e6
	}
	if rec.RSSI == 0 {
		rec.RSSI = wifi.LostConnectionRSSI
	}
	rec.SignalStrength = wifi.RSSIToPercentage(rec.RSSI)
	return rec, nil
}

// rsnToSecurity labels an RSN element with the names system_profiler uses,
// so a link read over nl80211 reports security like the other readers.
func rsnToSecurity(rsn mdwifi.RSNInfo) string {
	if !rsn.IsInitialized() {
		return "None"
	}

	var wpa2, wpa3, enterprise bool
	for _, akm := range rsn.AKMs {
		switch akm {
		case mdwifi.RSNAkmSAE, mdwifi.RSNAkmFTSAE:
			wpa3 = true
		case mdwifi.RSNAkmPSK, mdwifi.RSNAkmFTPSK:
			wpa2 = true
		case mdwifi.RSNAkm8021X, mdwifi.RSNAkmFT8021X:
			wpa2, enterprise = true, true
		}
	}

	suffix := " Personal"
	if enterprise {
		suffix = " Enterprise"
	}
	switch {
	case wpa2 && wpa3:
		return "WPA2/WPA3" + suffix
	case wpa3:
		return "WPA3" + suffix
	case wpa2:
		return "WPA2" + suffix
	}

	// No AKM we know: the pairwise cipher still tells the generation.
	for _, cipher := range rsn.PairwiseCiphers {
		switch cipher {
		case mdwifi.RSNCipherCCMP128, mdwifi.RSNCipherCCMP256, mdwifi.RSNCipherGCMP128, mdwifi.RSNCipherGCMP256:
			return "WPA2 Personal"
		case mdwifi.RSNCipherTKIP:
			return "WPA Personal"
		case mdwifi.RSNCipherWEP40, mdwifi.RSNCipherWEP104:
			return "WEP"
		}
	}
	return "Unknown"
}

// isPermissionError reports a netlink EPERM or EACCES, which nl80211 returns
// to unprivileged callers.
func isPermissionError(err error) bool {
	return errors.Is(err, os.ErrPermission)
}
