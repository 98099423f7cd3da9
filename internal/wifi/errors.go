package wifi

import (
	"errors"
	"fmt"
)

// Stable error texts. The UI matches on these to show troubleshooting help.
var (
	// ErrNotLocalized means none of signal, channel or transmit rate could be
	// read from netsh output, which happens when the system language has no
	// dictionary.
	ErrNotLocalized = errors.New("could not read Wi-Fi info: netsh output is not localized for this system language")

	// ErrInvalidBSSID is matched by every *InvalidBSSIDError.
	ErrInvalidBSSID = errors.New("invalid BSSID")

	ErrNoWifiSection     = errors.New("no WIFI section in wdutil output")
	ErrInterfaceNotFound = errors.New("wifi interface not found")
	ErrNoProfiles        = errors.New("no profiles found in netsh output")
	ErrNoProfileName     = errors.New("no profile name found in profile output")
	ErrNoSSIDName        = errors.New("can't find an SSID in profile output")
)

// InvalidBSSIDError reports a BSSID that did not normalize to 12 hex chars.
type InvalidBSSIDError struct {
	Source string
	BSSID  string
}

func (e *InvalidBSSIDError) Error() string {
	return fmt.Sprintf("invalid BSSID %q in %s output", e.BSSID, e.Source)
}

// Is makes errors.Is(err, ErrInvalidBSSID) match.
func (e *InvalidBSSIDError) Is(target error) bool {
	return target == ErrInvalidBSSID
}
