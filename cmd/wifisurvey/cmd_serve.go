package main

import (
	"context"
	"flag"
	"io"
	"time"

	"github.com/HerbHall/wifisurvey/internal/server"
	"github.com/HerbHall/wifisurvey/internal/version"
	"go.uber.org/zap"
)

func runServe(ctx context.Context, args []string, _ io.Writer) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to configuration file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	a, err := newApp(*configPath)
	if err != nil {
		return err
	}
	defer func() { _ = a.logger.Sync() }()

	a.logger.Info("wifisurvey server starting",
		zap.String("version", version.Short()),
		zap.String("platform", a.scanner.Platform()),
	)

	db, samples, err := a.openSamples(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	srv := server.New(server.Config{
		Addr:      a.settings.Server.Addr(),
		RateLimit: a.settings.Server.RateLimit,
		RateBurst: a.settings.Server.RateBurst,
	}, a.scanner, a.newRecorder(samples), samples, a.logger.Named("http"))

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		a.logger.Info("received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
