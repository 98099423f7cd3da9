// Package locale maps the labels netsh prints in the system language back
// to canonical record field names.
//
// Dictionaries are JSON objects, one file per language, mapping a canonical
// key to the localized label (or a list of labels when Windows releases
// disagree). Lines starting with // or # are comments. Files are processed
// in lexicographic order and the first file to claim a label keeps it.
package locale

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"go.uber.org/zap"
)

//go:embed data/*.json
var embedded embed.FS

// Canonical keys understood by the netsh parsers.
const (
	KeySSID           = "ssid"
	KeyBSSID          = "bssid"
	KeySignalStrength = "signalStrength"
	KeyChannel        = "channel"
	KeyTxRate         = "txRate"
	KeyPHYMode        = "phyMode"
	KeySecurity       = "security"
	KeyProfile        = "profile"
	KeyProfileName    = "profileName"
	KeySSIDName       = "ssidName"
	KeyAllUserProfile = "allUserProfile"
)

var (
	// ErrNoDictionaries is returned when a directory yields no usable dictionary.
	ErrNoDictionaries = errors.New("no localization dictionaries found")
)

// Localizer is an immutable reverse lookup from localized label to
// canonical key. Safe for concurrent use.
type Localizer struct {
	labels    map[string]string
	languages []string
	skipped   []string
}

// New returns a Localizer over a fixed label -> key map.
func New(labels map[string]string) *Localizer {
	m := make(map[string]string, len(labels))
	for label, key := range labels {
		m[strings.TrimSpace(label)] = key
	}
	return &Localizer{labels: m}
}

// LoadEmbedded builds a Localizer from the dictionaries compiled into the binary.
func LoadEmbedded(logger *zap.Logger) (*Localizer, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, fmt.Errorf("embedded dictionaries: %w", err)
	}
	return Load(sub, logger)
}

// LoadDir builds a Localizer from the *.json files in dir.
func LoadDir(dir string, logger *zap.Logger) (*Localizer, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("localization directory %q: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("localization directory %q: not a directory", dir)
	}
	return Load(os.DirFS(dir), logger)
}

// Load builds a Localizer from the *.json files at the root of fsys.
// A file that fails to parse is skipped with a warning; only an unreadable
// directory or one with no usable dictionary is fatal.
func Load(fsys fs.FS, logger *zap.Logger) (*Localizer, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read localization directory: %w", err)
	}

	l := &Localizer{labels: make(map[string]string)}
	// fs.ReadDir sorts by filename, which fixes precedence.
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".json" {
			continue
		}
		dict, err := readDictionary(fsys, e.Name())
		if err != nil {
			logger.Warn("skipping localization dictionary",
				zap.String("file", e.Name()),
				zap.Error(err),
			)
			l.skipped = append(l.skipped, e.Name())
			continue
		}
		added := l.merge(dict)
		l.languages = append(l.languages, strings.TrimSuffix(e.Name(), ".json"))
		logger.Debug("loaded localization dictionary",
			zap.String("file", e.Name()),
			zap.Int("labels", added),
		)
	}

	if len(l.languages) == 0 {
		return nil, ErrNoDictionaries
	}
	return l, nil
}

// Lookup returns the canonical key for a label as netsh printed it.
func (l *Localizer) Lookup(label string) (string, bool) {
	if l == nil {
		return "", false
	}
	key, ok := l.labels[strings.TrimSpace(label)]
	return key, ok
}

// Languages lists the dictionaries that loaded, in precedence order.
func (l *Localizer) Languages() []string {
	return append([]string(nil), l.languages...)
}

// Skipped lists the dictionary files that failed to parse.
func (l *Localizer) Skipped() []string {
	return append([]string(nil), l.skipped...)
}

// Len returns the number of known labels.
func (l *Localizer) Len() int {
	return len(l.labels)
}

// merge adds every label not already claimed and returns how many it added.
// Keys are visited in sorted order so duplicate labels inside one file
// resolve the same way every run.
func (l *Localizer) merge(dict map[string]labelList) int {
	keys := make([]string, 0, len(dict))
	for k := range dict {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	added := 0
	for _, key := range keys {
		for _, label := range dict[key] {
			label = strings.TrimSpace(label)
			if label == "" {
				continue
			}
			if _, exists := l.labels[label]; exists {
				continue
			}
			l.labels[label] = key
			added++
		}
	}
	return added
}

func readDictionary(fsys fs.FS, name string) (map[string]labelList, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, err
	}
	var dict map[string]labelList
	if err := json.Unmarshal(stripComments(data), &dict); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	return dict, nil
}

// stripComments drops lines whose first non-blank characters are // or #.
func stripComments(data []byte) []byte {
	var out bytes.Buffer
	for _, line := range bytes.Split(data, []byte("\n")) {
		t := bytes.TrimSpace(line)
		if bytes.HasPrefix(t, []byte("//")) || bytes.HasPrefix(t, []byte("#")) {
			continue
		}
		out.Write(line)
		out.WriteByte('\n')
	}
	return out.Bytes()
}

// labelList decodes either "label" or ["label", "other label"].
type labelList []string

func (ll *labelList) UnmarshalJSON(b []byte) error {
	var one string
	if err := json.Unmarshal(b, &one); err == nil {
		*ll = labelList{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(b, &many); err != nil {
		return fmt.Errorf("label must be a string or list of strings: %s", b)
	}
	*ll = many
	return nil
}
