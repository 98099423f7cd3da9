package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/HerbHall/wifisurvey/internal/config"
	"github.com/HerbHall/wifisurvey/internal/locale"
	"github.com/HerbHall/wifisurvey/internal/scanner"
	"github.com/HerbHall/wifisurvey/internal/store"
	"github.com/HerbHall/wifisurvey/internal/survey"
	"github.com/HerbHall/wifisurvey/internal/version"
	"go.uber.org/zap"
)

// app holds what every subcommand needs.
type app struct {
	settings config.Settings
	logger   *zap.Logger
	scanner  *scanner.Scanner
}

// commonFlags registers -config and -o on fs.
func commonFlags(fs *flag.FlagSet) (configPath, output *string) {
	configPath = fs.String("config", "", "path to configuration file")
	output = fs.String("o", formatText, "output format: text, json or yaml")
	return configPath, output
}

func newApp(configPath string) (*app, error) {
	v, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	settings, err := config.Decode(v)
	if err != nil {
		return nil, err
	}
	logger, err := config.NewLogger(v)
	if err != nil {
		return nil, err
	}
	if f := v.ConfigFileUsed(); f != "" {
		logger.Debug("configuration loaded", zap.String("source", f))
	}

	loc, err := loadLocalizer(settings.Wifi.LocaleDir, logger.Named("locale"))
	if err != nil {
		return nil, err
	}

	sc := scanner.New(scanner.Config{
		Interface:    settings.Wifi.Interface,
		IgnoreSSIDs:  settings.Wifi.IgnoreSSIDs,
		PreferWdutil: settings.Wifi.PreferWdutil,
	}, scanner.ExecRunner{Timeout: settings.Wifi.CommandTimeout}, loc, logger.Named("scanner"))

	return &app{settings: settings, logger: logger, scanner: sc}, nil
}

func loadLocalizer(dir string, logger *zap.Logger) (*locale.Localizer, error) {
	if dir == "" {
		return locale.LoadEmbedded(logger)
	}
	loc, err := locale.LoadDir(dir, logger)
	if err != nil {
		return nil, fmt.Errorf("load dictionaries from %s: %w", dir, err)
	}
	logger.Debug("dictionaries loaded",
		zap.String("dir", dir),
		zap.Strings("languages", loc.Languages()),
		zap.Strings("skipped", loc.Skipped()),
	)
	return loc, nil
}

// openSamples opens the database and the sample table. The caller closes db.
func (a *app) openSamples(ctx context.Context) (*store.SQLiteStore, *survey.SampleStore, error) {
	db, err := store.New(a.settings.Database.Path)
	if err != nil {
		return nil, nil, err
	}
	if err := db.CheckVersion(ctx, version.Short()); err != nil {
		db.Close()
		return nil, nil, err
	}
	samples, err := survey.NewSampleStore(ctx, db)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	a.logger.Debug("database opened", zap.String("path", a.settings.Database.Path))
	return db, samples, nil
}

func (a *app) newRecorder(samples *survey.SampleStore) *survey.Recorder {
	var prober survey.Prober
	if s := a.settings.Survey; s.ProbeTarget != "" {
		prober = survey.NewPingProber(s.ProbeTarget, s.ProbeCount, s.ProbeTimeout, a.logger.Named("probe"))
	}
	return survey.NewRecorder(a.scanner, prober, samples, a.settings.Survey.MaxAttempts, a.logger.Named("survey"))
}
