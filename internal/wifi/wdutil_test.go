package wifi

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wdutilSonoma = `————————————————————————————————————————————————————————————————————
NETWORK
————————————————————————————————————————————————————————————————————
    Primary IPv4         : en0 (Wi-Fi / 6B5E1C1A-0D6A-4F5B-9C1E-3E6E9A8F2B11)
                         : 192.168.1.23
    DNS Addresses        : 192.168.1.1
————————————————————————————————————————————————————————————————————
WIFI
————————————————————————————————————————————————————————————————————
    MAC Address          : 8c:85:90:12:34:56 (hw=8c:85:90:12:34:56)
    Interface Name       : en0
    Power                : On [On]
    Op Mode              : STA
    SSID                 : HomeNetwork_5G
    BSSID                : 2C:30:33:AA:BB:CC
    RSSI                 : -58 dBm
    CCA                  : 6 %
    Noise                : -92 dBm
    Tx Rate              : 573.0 Mbps
    Security             : WPA2 Personal
    PHY Mode             : 11ax
    MCS Index            : 11
    Guard Interval       : 800
    NSS                  : 2
    Channel              : 5g44/40
    Country Code         : US
    Scan Cache Count     : 14
    NetworkServiceID     : 6B5E1C1A-0D6A-4F5B-9C1E-3E6E9A8F2B11
    IPv4 Config Method   : DHCP
————————————————————————————————————————————————————————————————————
BLUETOOTH
————————————————————————————————————————————————————————————————————
    Power                : On
    RSSI                 : -20 dBm
    Channel              : 99
`

const wdutilMonterey = `————————————————————————————————————————————————————————————————————
WIFI
————————————————————————————————————————————————————————————————————
    Interface Name       : en0
    Power                : On [On]
    SSID                 : CoffeeShop
    BSSID                : a0:b1:c2:d3:e4:f5
    RSSI                 : -67 dBm
    Tx Rate              : 144.0 Mbps
    Security             : WPA2 Personal
    PHY Mode             : 11n
    Channel              : 11 (20 MHz, Active)
————————————————————————————————————————————————————————————————————
BLUETOOTH
————————————————————————————————————————————————————————————————————
`

func TestParseWdutilOutput_SlashChannel(t *testing.T) {
	rec, err := ParseWdutilOutput(wdutilSonoma)
	require.NoError(t, err)

	assert.Equal(t, "HomeNetwork_5G", rec.SSID)
	assert.Equal(t, "2c3033aabbcc", rec.BSSID)
	assert.Equal(t, -58, rec.RSSI)
	assert.Equal(t, 70, rec.SignalStrength)
	assert.Equal(t, 44, rec.Channel)
	assert.Equal(t, 5.0, rec.Band)
	assert.Equal(t, 40, rec.ChannelWidth)
	assert.Equal(t, 573.0, rec.TxRate)
	assert.Equal(t, "11ax", rec.PHYMode)
	assert.Equal(t, "WPA2 Personal", rec.Security)
}

func TestParseWdutilOutput_ParenChannel(t *testing.T) {
	rec, err := ParseWdutilOutput(wdutilMonterey)
	require.NoError(t, err)

	assert.Equal(t, "CoffeeShop", rec.SSID)
	assert.Equal(t, "a0b1c2d3e4f5", rec.BSSID)
	assert.Equal(t, 11, rec.Channel)
	assert.Equal(t, 20, rec.ChannelWidth)
	assert.Equal(t, 2.4, rec.Band)
	assert.Equal(t, -67, rec.RSSI)
	assert.Equal(t, 55, rec.SignalStrength)
}

func TestParseWdutilOutput_IgnoresOtherSections(t *testing.T) {
	rec, err := ParseWdutilOutput(wdutilSonoma)
	require.NoError(t, err)

	// The BLUETOOTH section also has RSSI and Channel lines.
	assert.NotEqual(t, -20, rec.RSSI)
	assert.NotEqual(t, 99, rec.Channel)
}

func TestParseWdutilOutput_Redacted(t *testing.T) {
	out := strings.NewReplacer(
		"SSID                 : HomeNetwork_5G", "SSID                 : <redacted>",
		"BSSID                : 2C:30:33:AA:BB:CC", "BSSID                : <redacted>",
	).Replace(wdutilSonoma)

	rec, err := ParseWdutilOutput(out)
	require.NoError(t, err)

	assert.Empty(t, rec.SSID)
	assert.Empty(t, rec.BSSID)
	assert.Equal(t, 44, rec.Channel)
}

func TestParseWdutilOutput_Disassociated(t *testing.T) {
	out := "WIFI\n    Power                : On [On]\n    SSID                 : None\n    RSSI                 : 0 dBm\n    Channel              : None\nBLUETOOTH\n"

	rec, err := ParseWdutilOutput(out)
	require.NoError(t, err)

	assert.Equal(t, LostConnectionRSSI, rec.RSSI)
	assert.Equal(t, 0, rec.SignalStrength)
	assert.Equal(t, 0, rec.Channel)
}

func TestParseWdutilOutput_NoWifiSection(t *testing.T) {
	_, err := ParseWdutilOutput("NETWORK\n    DNS Addresses : 1.1.1.1\nBLUETOOTH\n")
	if !errors.Is(err, ErrNoWifiSection) {
		t.Fatalf("error = %v, want ErrNoWifiSection", err)
	}
}

func TestParseWdutilOutput_BadChannel(t *testing.T) {
	out := "WIFI\n    RSSI                 : -60 dBm\n    Channel              : 5g44\nBLUETOOTH\n"

	_, err := ParseWdutilOutput(out)
	assert.ErrorIs(t, err, ErrUnknownChannelFormat)
}
