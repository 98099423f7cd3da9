package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"time"
)

func runRecord(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("record", flag.ContinueOnError)
	configPath, output := commonFlags(fs)
	floorplan := fs.String("floorplan", "", "floor plan the position refers to (required)")
	x := fs.Float64("x", 0, "horizontal position on the floor plan")
	y := fs.Float64("y", 0, "vertical position on the floor plan")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *floorplan == "" {
		return errors.New("-floorplan is required")
	}
	if err := checkFormat(*output); err != nil {
		return err
	}

	a, err := newApp(*configPath)
	if err != nil {
		return err
	}
	defer func() { _ = a.logger.Sync() }()

	db, samples, err := a.openSamples(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	sample, err := a.newRecorder(samples).Record(ctx, *floorplan, *x, *y)
	if err != nil {
		return err
	}
	return render(stdout, *output, sample, func(w io.Writer) error {
		return writeSampleText(w, sample)
	})
}

func runSamples(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("samples", flag.ContinueOnError)
	configPath, output := commonFlags(fs)
	floorplan := fs.String("floorplan", "", "only list samples of this floor plan")
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

	db, samples, err := a.openSamples(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	list, err := samples.List(ctx, *floorplan)
	if err != nil {
		return err
	}
	now := time.Now()
	return render(stdout, *output, list, func(w io.Writer) error {
		return writeSamplesText(w, list, now)
	})
}
