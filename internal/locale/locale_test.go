package locale

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestLoad_FirstFileWins(t *testing.T) {
	fsys := fstest.MapFS{
		// Processed second even though it is listed first.
		"fr.json": {Data: []byte(`{"channel": "Canal", "ssid": "SSID"}`)},
		"es.json": {Data: []byte(`{"security": "Canal", "txRate": "Velocidad"}`)},
	}

	loc, err := Load(fsys, zaptest.NewLogger(t))
	require.NoError(t, err)

	key, ok := loc.Lookup("Canal")
	require.True(t, ok)
	assert.Equal(t, "security", key, "es.json sorts before fr.json")
	assert.Equal(t, []string{"es", "fr"}, loc.Languages())
	assert.Equal(t, 3, loc.Len())
}

func TestLoad_StripsComments(t *testing.T) {
	fsys := fstest.MapFS{
		"en.json": {Data: []byte(`// English labels
{
  // Windows 10 and 11
  "bssid": ["BSSID", "AP BSSID"],
  # trailing style comment
  "signalStrength": "Signal"
}
`)},
	}

	loc, err := Load(fsys, zaptest.NewLogger(t))
	require.NoError(t, err)

	for label, want := range map[string]string{
		"BSSID":    KeyBSSID,
		"AP BSSID": KeyBSSID,
		"Signal":   KeySignalStrength,
	} {
		got, ok := loc.Lookup(label)
		assert.True(t, ok, label)
		assert.Equal(t, want, got, label)
	}
}

func TestLoad_SkipsMalformedFile(t *testing.T) {
	fsys := fstest.MapFS{
		"bad.json":   {Data: []byte(`{"ssid": "SSID",,}`)},
		"en.json":    {Data: []byte(`{"ssid": "SSID"}`)},
		"notes.txt":  {Data: []byte(`not a dictionary`)},
		"types.json": {Data: []byte(`{"ssid": 42}`)},
	}

	loc, err := Load(fsys, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.Equal(t, []string{"en"}, loc.Languages())
	assert.Equal(t, []string{"bad.json", "types.json"}, loc.Skipped())
	key, ok := loc.Lookup("SSID")
	assert.True(t, ok)
	assert.Equal(t, KeySSID, key)
}

func TestLoad_NoDictionaries(t *testing.T) {
	_, err := Load(fstest.MapFS{"readme.md": {Data: []byte("#")}}, zaptest.NewLogger(t))
	if !errors.Is(err, ErrNoDictionaries) {
		t.Fatalf("error = %v, want ErrNoDictionaries", err)
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "en.json"), []byte(`{"channel": "Channel"}`), 0o600))

	loc, err := LoadDir(dir, zaptest.NewLogger(t))
	require.NoError(t, err)

	key, ok := loc.Lookup("  Channel  ")
	assert.True(t, ok)
	assert.Equal(t, KeyChannel, key)
}

func TestLoadDir_Missing(t *testing.T) {
	_, err := LoadDir(filepath.Join(t.TempDir(), "nope"), zaptest.NewLogger(t))
	assert.Error(t, err)
}

func TestLoadDir_NotADirectory(t *testing.T) {
	f := filepath.Join(t.TempDir(), "en.json")
	require.NoError(t, os.WriteFile(f, []byte(`{}`), 0o600))

	_, err := LoadDir(f, zaptest.NewLogger(t))
	assert.Error(t, err)
}

func TestLoadEmbedded(t *testing.T) {
	loc, err := LoadEmbedded(zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.Empty(t, loc.Skipped())
	assert.Contains(t, loc.Languages(), "en")
	assert.Contains(t, loc.Languages(), "de")

	tests := map[string]string{
		"Transmit rate (Mbps)":      KeyTxRate,
		"Übertragungsrate (MBit/s)": KeyTxRate,
		"Kanal":                     KeyChannel,
		"Señal":                     KeySignalStrength,
		"All User Profile":          KeyAllUserProfile,
		"SSID name":                 KeySSIDName,
	}
	for label, want := range tests {
		got, ok := loc.Lookup(label)
		assert.True(t, ok, label)
		assert.Equal(t, want, got, label)
	}
}

func TestLookup_Unknown(t *testing.T) {
	loc := New(map[string]string{"SSID": KeySSID})

	_, ok := loc.Lookup("X-SSID")
	assert.False(t, ok)

	var nilLoc *Localizer
	_, ok = nilLoc.Lookup("SSID")
	assert.False(t, ok)
}
