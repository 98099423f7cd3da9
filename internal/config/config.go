// Package config loads wifisurvey settings from defaults, an optional YAML
// file, and WS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Settings is the typed view of the configuration tree.
type Settings struct {
	Logging  LoggingSettings  `mapstructure:"logging"`
	Server   ServerSettings   `mapstructure:"server"`
	Database DatabaseSettings `mapstructure:"database"`
	Wifi     WifiSettings     `mapstructure:"wifi"`
	Survey   SurveySettings   `mapstructure:"survey"`
}

type LoggingSettings struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

type ServerSettings struct {
	Host      string  `mapstructure:"host"`
	Port      int     `mapstructure:"port"`
	RateLimit float64 `mapstructure:"rate_limit"`
	RateBurst int     `mapstructure:"rate_burst"`
}

// Addr returns the listen address as host:port.
func (s ServerSettings) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseSettings struct {
	Path string `mapstructure:"path"`
}

// WifiSettings controls how link state is read from the OS.
type WifiSettings struct {
	Interface      string        `mapstructure:"interface"`
	LocaleDir      string        `mapstructure:"locale_dir"`
	CommandTimeout time.Duration `mapstructure:"command_timeout"`
	IgnoreSSIDs    []string      `mapstructure:"ignore_ssids"`
	PreferWdutil   bool          `mapstructure:"prefer_wdutil"`
}

// SurveySettings controls sample recording.
type SurveySettings struct {
	MaxAttempts  int           `mapstructure:"max_attempts"`
	ProbeTarget  string        `mapstructure:"probe_target"`
	ProbeCount   int           `mapstructure:"probe_count"`
	ProbeTimeout time.Duration `mapstructure:"probe_timeout"`
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stderr")

	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8090)
	v.SetDefault("server.rate_limit", 5)
	v.SetDefault("server.rate_burst", 10)

	v.SetDefault("database.path", "./data/wifisurvey.db")

	v.SetDefault("wifi.interface", "")
	v.SetDefault("wifi.locale_dir", "")
	v.SetDefault("wifi.command_timeout", "10s")
	v.SetDefault("wifi.ignore_ssids", []string{})
	v.SetDefault("wifi.prefer_wdutil", true)

	v.SetDefault("survey.max_attempts", 3)
	v.SetDefault("survey.probe_target", "")
	v.SetDefault("survey.probe_count", 3)
	v.SetDefault("survey.probe_timeout", "3s")
}

// Load reads configuration from file and environment variables. An empty
// configPath searches ., ./configs and /etc/wifisurvey for wifisurvey.yaml;
// a missing file there is not an error. An explicit path must exist.
func Load(configPath string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("wifisurvey")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/wifisurvey")
	}

	// Environment variable support: WS_WIFI_INTERFACE=wlan0
	v.SetEnvPrefix("WS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	return v, nil
}

// Decode unmarshals v into Settings and validates the result.
func Decode(v *viper.Viper) (Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decode config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate rejects values the rest of the program cannot work with.
func (s Settings) Validate() error {
	if s.Server.Port <= 0 || s.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", s.Server.Port)
	}
	if s.Wifi.CommandTimeout <= 0 {
		return fmt.Errorf("wifi.command_timeout must be positive, got %s", s.Wifi.CommandTimeout)
	}
	if s.Survey.MaxAttempts < 1 {
		return fmt.Errorf("survey.max_attempts must be at least 1, got %d", s.Survey.MaxAttempts)
	}
	if s.Survey.ProbeTarget != "" && s.Survey.ProbeCount < 1 {
		return fmt.Errorf("survey.probe_count must be at least 1, got %d", s.Survey.ProbeCount)
	}
	return nil
}
