//go:build linux

package scanner

import (
	"errors"
	"fmt"
	"syscall"
	"testing"

	mdwifi "github.com/mdlayher/wifi"
	"github.com/stretchr/testify/assert"
)

func TestRSNToSecurity(t *testing.T) {
	rsn := func(akms ...mdwifi.RSNAKM) mdwifi.RSNInfo {
		info := mdwifi.RSNInfo{Version: 1}
		info.AKMs = append(info.AKMs, akms...)
		return info
	}
	withCipher := func(c mdwifi.RSNCipher) mdwifi.RSNInfo {
		info := mdwifi.RSNInfo{Version: 1}
		info.PairwiseCiphers = append(info.PairwiseCiphers, c)
		return info
	}

	tests := []struct {
		name string
		rsn  mdwifi.RSNInfo
		want string
	}{
		{"open", mdwifi.RSNInfo{}, "None"},
		{"psk", rsn(mdwifi.RSNAkmPSK), "WPA2 Personal"},
		{"ft psk", rsn(mdwifi.RSNAkmFTPSK), "WPA2 Personal"},
		{"sae", rsn(mdwifi.RSNAkmSAE), "WPA3 Personal"},
		{"transition", rsn(mdwifi.RSNAkmPSK, mdwifi.RSNAkmSAE), "WPA2/WPA3 Personal"},
		{"802.1x", rsn(mdwifi.RSNAkm8021X), "WPA2 Enterprise"},
		{"ft 802.1x", rsn(mdwifi.RSNAkmFT8021X), "WPA2 Enterprise"},
		{"tkip only", withCipher(mdwifi.RSNCipherTKIP), "WPA Personal"},
		{"ccmp only", withCipher(mdwifi.RSNCipherCCMP128), "WPA2 Personal"},
		{"wep", withCipher(mdwifi.RSNCipherWEP104), "WEP"},
		{"nothing known", mdwifi.RSNInfo{Version: 1}, "Unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rsnToSecurity(tt.rsn))
		})
	}
}

func TestIsPermissionError(t *testing.T) {
	assert.True(t, isPermissionError(fmt.Errorf("genetlink: %w", syscall.EPERM)))
	assert.True(t, isPermissionError(syscall.EACCES))
	assert.False(t, isPermissionError(syscall.ENOENT))
	assert.False(t, isPermissionError(errors.New("permission denied")))
}
