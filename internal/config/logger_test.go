package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		format  string
		wantErr bool
	}{
		{"defaults", "info", "json", false},
		{"debug level", "debug", "json", false},
		{"console format", "warn", "console", false},
		{"empty format means json", "error", "", false},
		{"invalid level", "banana", "json", true},
		{"invalid format", "info", "xml", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			v.Set("logging.level", tt.level)
			v.Set("logging.format", tt.format)

			logger, err := NewLogger(v)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewLogger: %v", err)
			}
			if logger == nil {
				t.Fatal("expected non-nil logger")
			}
		})
	}
}

func TestNewLogger_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wifisurvey.log")
	v := viper.New()
	v.Set("logging.level", "info")
	v.Set("logging.format", "json")
	v.Set("logging.output", path)

	logger, err := NewLogger(v)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	logger.Info("scan finished")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "scan finished") {
		t.Errorf("log file = %q, want it to contain the message", data)
	}
	if !strings.Contains(string(data), `"logger":"wifisurvey"`) {
		t.Errorf("log file = %q, want the wifisurvey logger name", data)
	}
}
