package main

import (
	"context"
	"flag"
	"io"

	"github.com/HerbHall/wifisurvey/internal/wifi"
)

func runScan(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("scan", flag.ContinueOnError)
	configPath, output := commonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := checkFormat(*output); err != nil {
		return err
	}

	a, err := newApp(*configPath)
	if err != nil {
		return err
	}
	defer func() { _ = a.logger.Sync() }()

	rec, err := a.scanner.Scan(ctx)
	if err != nil {
		return err
	}
	return render(stdout, *output, rec, func(w io.Writer) error {
		return writeRecordText(w, rec)
	})
}

func runCandidates(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("candidates", flag.ContinueOnError)
	configPath, output := commonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := checkFormat(*output); err != nil {
		return err
	}

	a, err := newApp(*configPath)
	if err != nil {
		return err
	}
	defer func() { _ = a.logger.Sync() }()

	recs, err := a.scanner.Candidates(ctx)
	if err != nil {
		return err
	}
	if recs == nil {
		recs = []wifi.Record{}
	}
	return render(stdout, *output, recs, func(w io.Writer) error {
		return writeCandidatesText(w, recs)
	})
}

func runProfiles(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("profiles", flag.ContinueOnError)
	configPath, output := commonFlags(fs)
	ssid := fs.String("ssid", "", "print only the profile that connects to this SSID")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := checkFormat(*output); err != nil {
		return err
	}

	a, err := newApp(*configPath)
	if err != nil {
		return err
	}
	defer func() { _ = a.logger.Sync() }()

	var names []string
	if *ssid != "" {
		name, err := a.scanner.ProfileForSSID(ctx, *ssid)
		if err != nil {
			return err
		}
		names = []string{name}
	} else if names, err = a.scanner.Profiles(ctx); err != nil {
		return err
	}
	return render(stdout, *output, names, func(w io.Writer) error {
		return writeLines(w, names)
	})
}
